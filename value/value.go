// Package value implements KEON's dynamic Value tree: the concrete
// in-memory representation usable as a fallback deserialization target
// when the caller has no static type to deserialize into, and as a
// first-class Serializable for writing one back out.
//
// Grounded on _examples/original_source/src/value.rs: the same ten-arm sum
// (Unit, Bool, Char, Number, String, Bytes, Newtype, Option, Seq, Map) and
// the same Int < UInt < Float map-key ordering with NaN greatest and equal
// to itself. Represented here as a single tagged struct (mirroring
// token.Literal's shape in this repository) rather than a Go sum-of-types
// via interfaces, since every arm is a leaf or a single child and a tag
// switch reads the same either way while avoiding a type-assertion dance at
// every call site.
package value

import "fmt"

// Kind tags which arm of the Value sum is populated.
type Kind int

const (
	KindUnit Kind = iota
	KindBool
	KindChar
	KindNumber
	KindString
	KindBytes
	KindNewtype
	KindOption
	KindSeq
	KindMap
)

var kindNames = [...]string{
	"Unit", "Bool", "Char", "Number", "String", "Bytes", "Newtype", "Option", "Seq", "Map",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// NumberKind tags which arm of Number is populated.
type NumberKind int

const (
	NumberInt NumberKind = iota
	NumberUInt
	NumberFloat
)

// Number wraps one of i64/u64/f64, per spec §3's "Number(Int|UInt|Float)".
// In deserialized output Int is never positive (sign rule: a leading '-'
// parses signed, otherwise unsigned); "-0" yields Int(0).
type Number struct {
	Kind NumberKind
	I64  int64
	U64  uint64
	F64  float64
}

func Int(v int64) Number   { return Number{Kind: NumberInt, I64: v} }
func UInt(v uint64) Number { return Number{Kind: NumberUInt, U64: v} }
func Float(v float64) Number { return Number{Kind: NumberFloat, F64: v} }

// SaturatingInt64 converts to int64, saturating rather than overflowing.
func (n Number) SaturatingInt64() int64 {
	switch n.Kind {
	case NumberInt:
		return n.I64
	case NumberUInt:
		if n.U64 >= 1<<63 {
			return 1<<63 - 1
		}
		return int64(n.U64)
	default:
		f := n.F64
		if f >= float64(int64(1)<<62)*2 {
			return 1<<63 - 1
		}
		if f < -float64(int64(1)<<62)*2 {
			return -1 << 63
		}
		return int64(f)
	}
}

// SaturatingUint64 converts to uint64, saturating rather than overflowing.
func (n Number) SaturatingUint64() uint64 {
	switch n.Kind {
	case NumberInt:
		if n.I64 < 0 {
			return 0
		}
		return uint64(n.I64)
	case NumberUInt:
		return n.U64
	default:
		if n.F64 < 0 {
			return 0
		}
		if n.F64 >= float64(^uint64(0)) {
			return ^uint64(0)
		}
		return uint64(n.F64)
	}
}

// Float64 converts to float64 without saturation (all three arms fit).
func (n Number) Float64() float64 {
	switch n.Kind {
	case NumberInt:
		return float64(n.I64)
	case NumberUInt:
		return float64(n.U64)
	default:
		return n.F64
	}
}

// Value is the dynamic tree described by spec §3. Exactly the fields
// matching Kind are meaningful; Newtype and Option hold a pointer indirection
// for their child, the same "indirection for a self-referential tree node"
// idiom the retrieval pack's AST node types use for child pointers.
type Value struct {
	Kind    Kind
	Bool    bool
	Char    rune
	Num     Number
	Str     string
	Bytes   []byte
	Newtype *Value
	Option  *Value // nil means None
	Seq     []Value
	Map     *Map
}

func Unit() Value              { return Value{Kind: KindUnit} }
func Bool(v bool) Value        { return Value{Kind: KindBool, Bool: v} }
func Char(v rune) Value        { return Value{Kind: KindChar, Char: v} }
func NumberValue(n Number) Value { return Value{Kind: KindNumber, Num: n} }
func String(v string) Value    { return Value{Kind: KindString, Str: v} }
func Bytes(v []byte) Value     { return Value{Kind: KindBytes, Bytes: v} }
func NewtypeOf(v Value) Value  { return Value{Kind: KindNewtype, Newtype: &v} }
func None() Value               { return Value{Kind: KindOption} }
func Some(v Value) Value       { return Value{Kind: KindOption, Option: &v} }
func SeqOf(vs []Value) Value   { return Value{Kind: KindSeq, Seq: vs} }
func MapOf(m *Map) Value       { return Value{Kind: KindMap, Map: m} }

func (v Value) String() string {
	switch v.Kind {
	case KindUnit:
		return "()"
	case KindBool:
		return fmt.Sprintf("%t", v.Bool)
	case KindChar:
		return fmt.Sprintf("%q", v.Char)
	case KindNumber:
		switch v.Num.Kind {
		case NumberInt:
			return fmt.Sprintf("%d", v.Num.I64)
		case NumberUInt:
			return fmt.Sprintf("%d", v.Num.U64)
		default:
			return fmt.Sprintf("%v", v.Num.F64)
		}
	case KindString:
		return fmt.Sprintf("%q", v.Str)
	case KindBytes:
		return fmt.Sprintf("%x", v.Bytes)
	case KindNewtype:
		return "Newtype(" + v.Newtype.String() + ")"
	case KindOption:
		if v.Option == nil {
			return "None"
		}
		return "Some(" + v.Option.String() + ")"
	case KindSeq:
		return fmt.Sprintf("Seq(len=%d)", len(v.Seq))
	case KindMap:
		return fmt.Sprintf("Map(len=%d)", v.Map.Len())
	default:
		return "<invalid value>"
	}
}
