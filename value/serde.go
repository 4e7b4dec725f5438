package value

import (
	"fmt"

	"github.com/eternal-io/keon/keon"
)

// Visitor builds a Value from whatever shape the parser's leading token
// dispatch (spec §4.2) routes to it. It is a zero-size type (mirroring the
// original's unit-struct `ValueVisitor`); a fresh Visitor{} literal is used
// wherever one is needed.
type Visitor struct{}

var _ keon.Visitor = Visitor{}

func (Visitor) Expecting() string { return "any value except a named enum variant" }

func (Visitor) VisitBool(v bool) (any, error)   { return Bool(v), nil }
func (Visitor) VisitI64(v int64) (any, error)   { return NumberValue(Int(v)), nil }
func (Visitor) VisitU64(v uint64) (any, error)  { return NumberValue(UInt(v)), nil }
func (Visitor) VisitF64(v float64) (any, error) { return NumberValue(Float(v)), nil }
func (Visitor) VisitChar(v rune) (any, error)   { return Char(v), nil }

func (Visitor) VisitStr(v string) (any, error)    { return String(v), nil }
func (Visitor) VisitString(v string) (any, error) { return String(v), nil }

func (Visitor) VisitBytes(v []byte) (any, error)    { return Bytes(v), nil }
func (Visitor) VisitByteBuf(v []byte) (any, error)  { return Bytes(v), nil }

func (Visitor) VisitNone() (any, error) { return None(), nil }

func (Visitor) VisitSome(d keon.Deserializer) (any, error) {
	inner, err := d.DeserializeAny(Visitor{})
	if err != nil {
		return nil, err
	}
	v := inner.(Value)
	return Some(v), nil
}

func (Visitor) VisitUnit() (any, error) { return Unit(), nil }

func (Visitor) VisitNewtypeStruct(d keon.Deserializer) (any, error) {
	inner, err := d.DeserializeAny(Visitor{})
	if err != nil {
		return nil, err
	}
	return NewtypeOf(inner.(Value)), nil
}

func (Visitor) VisitSeq(a keon.SeqAccess) (any, error) {
	n, known := a.SizeHint()
	if !known {
		n = 0
	}
	seq := make([]Value, 0, n)
	for {
		val, ok, err := a.NextElement(Visitor{})
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		seq = append(seq, val.(Value))
	}
	return SeqOf(seq), nil
}

func (Visitor) VisitMap(a keon.MapAccess) (any, error) {
	m := NewMap()
	for {
		key, ok, err := a.NextKey(Visitor{})
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		val, err := a.NextValue(Visitor{})
		if err != nil {
			return nil, err
		}
		m.Set(key.(Value), val.(Value))
	}
	return MapOf(m), nil
}

// VisitEnum cannot be represented by Value: the dynamic tree has no
// variant-discriminator arm, the Open Question the specification accepts
// rather than repairs (spec §9(a)).
func (Visitor) VisitEnum(a keon.EnumAccess) (any, error) {
	name, _, err := a.Variant()
	if err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("value: enum variant %q cannot round-trip through Value", name)
}

//------------------------------------------------------------------------------
// Serializable

var _ keon.Serializable = Value{}

// SerializeKEON dispatches on Kind to the matching Serializer call. Value
// never has a struct/enum name to offer, so Newtype always takes the
// nameless mayary form and Seq/Map always take the plain (non-struct) form —
// the same asymmetry spec §9(a) already accepts for deserialization.
func (v Value) SerializeKEON(s *keon.Serializer) error {
	switch v.Kind {
	case KindUnit:
		return s.SerializeUnit()
	case KindBool:
		return s.SerializeBool(v.Bool)
	case KindChar:
		return s.SerializeChar(v.Char)
	case KindNumber:
		switch v.Num.Kind {
		case NumberInt:
			return s.SerializeI64(v.Num.I64)
		case NumberUInt:
			return s.SerializeU64(v.Num.U64)
		default:
			return s.SerializeF64(v.Num.F64)
		}
	case KindString:
		return s.SerializeStr(v.Str)
	case KindBytes:
		return s.SerializeBytes(v.Bytes)
	case KindNewtype:
		return s.SerializeNewtypeStruct("", *v.Newtype)
	case KindOption:
		if v.Option == nil {
			return s.SerializeNone()
		}
		return s.SerializeSome(*v.Option)
	case KindSeq:
		enc, err := s.SerializeSeq()
		if err != nil {
			return err
		}
		for i := range v.Seq {
			if err := enc.SerializeElement(v.Seq[i]); err != nil {
				return err
			}
		}
		return enc.EndSeq()
	case KindMap:
		enc, err := s.SerializeMap()
		if err != nil {
			return err
		}
		for _, e := range v.Map.Entries() {
			if err := enc.SerializeEntry(e.Key, e.Val); err != nil {
				return err
			}
		}
		return enc.End()
	default:
		return fmt.Errorf("value: invalid Kind %d", v.Kind)
	}
}

// Parse parses exactly one KEON value from input into a Value, the dynamic
// fallback target (spec §3's "concrete witness" tree).
func Parse(filename string, input []byte) (Value, error) {
	val, err := keon.Unmarshal(filename, input, Visitor{})
	if err != nil {
		return Value{}, err
	}
	return val.(Value), nil
}

// Marshal serializes v under preset.
func Marshal(v Value, preset keon.Preset) ([]byte, error) {
	return keon.Marshal(v, preset)
}
