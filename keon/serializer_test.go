package keon_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eternal-io/keon/keon"
)

// rawBytes is a Serializable wrapping a byte slice directly, used as the
// payload of namedBytes below (Value itself has no name to offer the
// newtype-struct form).
type rawBytes []byte

func (b rawBytes) SerializeKEON(s *keon.Serializer) error { return s.SerializeBytes([]byte(b)) }

// namedBytes mirrors original_source/tests/bytes.rs's `struct Bytes(Vec<u8>)`
// newtype struct, the only way to exercise the named (verbose) newtype form.
type namedBytes []byte

func (b namedBytes) SerializeKEON(s *keon.Serializer) error {
	return s.SerializeNewtypeStruct("Bytes", rawBytes(b))
}

func marshalString(t *testing.T, v keon.Serializable, preset keon.Preset) string {
	t.Helper()
	out, err := keon.Marshal(v, preset)
	require.NoError(t, err)
	return string(out)
}

func TestSerializeNewtypeStructBytesMinimal(t *testing.T) {
	got := marshalString(t, namedBytes(nil), keon.Minimal())
	assert.Equal(t, `%b64""`, got)
}

func TestSerializeNewtypeStructBytesComfort(t *testing.T) {
	got := marshalString(t, namedBytes(nil), keon.Comfort())
	assert.Equal(t, `(Bytes) % b""`, got)
}

// tup3 is a bare (non-struct) 3-tuple, exercising SerializeTuple directly.
type tup3 struct{ a, b, c int64 }

func (t3 tup3) SerializeKEON(s *keon.Serializer) error {
	enc, err := s.SerializeTuple()
	if err != nil {
		return err
	}
	for _, v := range []int64{t3.a, t3.b, t3.c} {
		if err := enc.SerializeElement(i64(v)); err != nil {
			return err
		}
	}
	return enc.EndTuple()
}

type i64 int64

func (v i64) SerializeKEON(s *keon.Serializer) error { return s.SerializeI64(int64(v)) }

func TestSerializePlainTupleMinimal(t *testing.T) {
	got := marshalString(t, tup3{0, 1, 2}, keon.Minimal())
	assert.Equal(t, "(0,1,2)", got)
}

// tup1 is a single-element bare tuple, which must always carry the
// trailing comma regardless of verbosity.
type tup1 struct{ a int64 }

func (t1 tup1) SerializeKEON(s *keon.Serializer) error {
	enc, err := s.SerializeTuple()
	if err != nil {
		return err
	}
	if err := enc.SerializeElement(i64(t1.a)); err != nil {
		return err
	}
	return enc.EndTuple()
}

func TestSerializeSingleElementTupleComfort(t *testing.T) {
	got := marshalString(t, tup1{0}, keon.Comfort())
	assert.Equal(t, "(\n    0,\n)", got)
}

func TestSerializeCharAndEscapes(t *testing.T) {
	assert.Equal(t, "'✱'", marshalString(t, char('✱'), keon.Minimal()))
	assert.Equal(t, `'\x11'`, marshalString(t, char('\x11'), keon.Minimal()))
}

type char rune

func (c char) SerializeKEON(s *keon.Serializer) error { return s.SerializeChar(rune(c)) }

//------------------------------------------------------------------------------
// enumVal mirrors original_source/tests/variants.rs's Enum { Unit, Newtype(Box<Enum>),
// Tuple(i32,i32,i32), Struct{a,b: i32} } to exercise all four variant shapes.

type enumKind int

const (
	enumUnit enumKind = iota
	enumNewtype
	enumTuple
	enumStruct
)

type enumVal struct {
	kind    enumKind
	newtype *enumVal
	tuple   [3]int64
	a, b    int64
}

func (e enumVal) SerializeKEON(s *keon.Serializer) error {
	const typeName = "Enum"
	switch e.kind {
	case enumUnit:
		return s.SerializeUnitVariant(typeName, "Unit")
	case enumNewtype:
		return s.SerializeNewtypeVariant(typeName, "Newtype", *e.newtype)
	case enumTuple:
		enc, err := s.SerializeTupleVariant(typeName, "Tuple", 3)
		if err != nil {
			return err
		}
		for _, v := range e.tuple {
			if err := enc.SerializeElement(i64(v)); err != nil {
				return err
			}
		}
		return enc.EndTuple()
	case enumStruct:
		enc, err := s.SerializeStructVariant(typeName, "Struct")
		if err != nil {
			return err
		}
		if err := enc.SerializeField("a", i64(e.a)); err != nil {
			return err
		}
		if err := enc.SerializeField("b", i64(e.b)); err != nil {
			return err
		}
		return enc.End()
	default:
		panic("unreachable enumKind")
	}
}

func TestSerializeEnumVariantsMinimal(t *testing.T) {
	assert.Equal(t, "Unit", marshalString(t, enumVal{kind: enumUnit}, keon.Minimal()))
	assert.Equal(t, "Newtype%Unit", marshalString(t, enumVal{kind: enumNewtype, newtype: &enumVal{kind: enumUnit}}, keon.Minimal()))
	assert.Equal(t, "Tuple(1,2,3)", marshalString(t, enumVal{kind: enumTuple, tuple: [3]int64{1, 2, 3}}, keon.Minimal()))
	assert.Equal(t, "Struct{a:1,b:2}", marshalString(t, enumVal{kind: enumStruct, a: 1, b: 2}, keon.Minimal()))
}

func TestSerializeEnumVariantsComfort(t *testing.T) {
	assert.Equal(t, "Enum::Unit", marshalString(t, enumVal{kind: enumUnit}, keon.Comfort()))
	assert.Equal(t, "Enum::Newtype % Enum::Unit", marshalString(t, enumVal{kind: enumNewtype, newtype: &enumVal{kind: enumUnit}}, keon.Comfort()))
	assert.Equal(t, "Enum::Tuple(\n    1,\n    2,\n    3,\n)", marshalString(t, enumVal{kind: enumTuple, tuple: [3]int64{1, 2, 3}}, keon.Comfort()))
	assert.Equal(t, "Enum::Struct {\n    a: 1,\n    b: 2,\n}", marshalString(t, enumVal{kind: enumStruct, a: 1, b: 2}, keon.Comfort()))
}

//------------------------------------------------------------------------------
// Nullary (zero-payload) struct/enum forms, grounded on
// original_source/tests/nullaries.rs.

type structUnit struct{}

func (structUnit) SerializeKEON(s *keon.Serializer) error { return s.SerializeUnitStruct("StructUnit") }

type tupleStructUnit struct{}

func (tupleStructUnit) SerializeKEON(s *keon.Serializer) error {
	_, err := s.SerializeTupleStruct("TupleStructUnit", 0)
	return err
}

type enumTupleUnit struct{}

func (enumTupleUnit) SerializeKEON(s *keon.Serializer) error {
	_, err := s.SerializeTupleVariant("Enum", "TupleUnit", 0)
	return err
}

type enumStructUnit struct{}

func (enumStructUnit) SerializeKEON(s *keon.Serializer) error {
	enc, err := s.SerializeStructVariant("Enum", "StructUnit")
	if err != nil {
		return err
	}
	return enc.End()
}

func TestSerializeNullaryFormsMinimal(t *testing.T) {
	assert.Equal(t, "()", marshalString(t, structUnit{}, keon.Minimal()))
	assert.Equal(t, "%", marshalString(t, tupleStructUnit{}, keon.Minimal()))
	assert.Equal(t, "TupleUnit%", marshalString(t, enumTupleUnit{}, keon.Minimal()))
	assert.Equal(t, "StructUnit{}", marshalString(t, enumStructUnit{}, keon.Minimal()))
}

func TestSerializeNullaryFormsComfort(t *testing.T) {
	assert.Equal(t, "(StructUnit)", marshalString(t, structUnit{}, keon.Comfort()))
	assert.Equal(t, "(TupleStructUnit)%", marshalString(t, tupleStructUnit{}, keon.Comfort()))
	assert.Equal(t, "Enum::TupleUnit%", marshalString(t, enumTupleUnit{}, keon.Comfort()))
	assert.Equal(t, "Enum::StructUnit {}", marshalString(t, enumStructUnit{}, keon.Comfort()))
}

func TestSerializeRecursionBound(t *testing.T) {
	var deep keon.Serializable = namedBytes(nil)
	for i := 0; i < 10000; i++ {
		deep = optionSome{deep}
	}
	_, err := keon.Marshal(deep, keon.Minimal())
	require.Error(t, err)
}

type optionSome struct{ inner keon.Serializable }

func (o optionSome) SerializeKEON(s *keon.Serializer) error { return s.SerializeSome(o.inner) }
