// Package keon implements the KEON textual data-interchange format: a
// hand-written recursive-descent parser that drives a caller-supplied
// Visitor, and a Serializer that a caller-supplied Serializable value drives
// in the opposite direction.
//
// Go has no serde-equivalent visitor protocol to adapt from the retrieval
// pack — the interfaces in this file are the "external collaborator" the
// format's design assumes exists, authored fresh as the seam the dynamic
// value.Value tree (and any other caller type) plugs into.
package keon

import "github.com/eternal-io/keon/token"

// Visitor is the deserialization-side callback target: the parser inspects
// the next token's shape and calls exactly one Visit* method, exactly as
// serde's Visitor trait does in the original implementation this format is
// drawn from.
type Visitor interface {
	// Expecting describes what this visitor accepts, for error messages.
	Expecting() string

	VisitBool(v bool) (any, error)
	VisitI64(v int64) (any, error)
	VisitU64(v uint64) (any, error)
	VisitF64(v float64) (any, error)
	VisitChar(v rune) (any, error)

	// VisitStr receives a string that may be borrowed from the source text
	// (valid only for the lifetime of the parse); VisitString receives one
	// that was freshly decoded and is safe to retain indefinitely. A visitor
	// that doesn't care about the distinction may implement both the same
	// way.
	VisitStr(v string) (any, error)
	VisitString(v string) (any, error)

	VisitBytes(v []byte) (any, error)
	VisitByteBuf(v []byte) (any, error)

	VisitNone() (any, error)
	// VisitSome is called with a Deserializer positioned at the wrapped
	// value; the visitor recurses by calling d.DeserializeAny(self) or a
	// differently-typed sub-visitor.
	VisitSome(d Deserializer) (any, error)

	VisitUnit() (any, error)
	VisitNewtypeStruct(d Deserializer) (any, error)

	VisitSeq(a SeqAccess) (any, error)
	VisitMap(a MapAccess) (any, error)
	VisitEnum(a EnumAccess) (any, error)
}

// Deserializer is implemented by *Parser; it lets a visitor recurse into a
// nested value (the payload of an Option, a newtype wrapper, a sequence
// element, or a map key/value) without needing to see the parser type.
type Deserializer interface {
	DeserializeAny(v Visitor) (any, error)
}

// SeqAccess lets a visitor pull the elements of a sequence one at a time,
// the same shape serde's SeqAccess trait has: next returns (value, ok, err)
// where ok is false once the sequence is exhausted.
type SeqAccess interface {
	SizeHint() (int, bool)
	NextElement(v Visitor) (any, bool, error)
}

// MapAccess lets a visitor pull key/value pairs one at a time. Per spec
// §4.2.2 the key is delivered to v using whichever Visit* method matches the
// grammar form actually present (struct field → VisitString, enum-keyed →
// VisitEnum, arbitrary → full recursive dispatch) regardless of what v might
// "prefer"; v simply receives whatever shape the text contained.
type MapAccess interface {
	NextKey(v Visitor) (any, bool, error)
	NextValue(v Visitor) (any, error)
}

// EnumAccess is handed to VisitEnum once the parser has identified an
// enum-shaped value and read its variant name; Variant returns that name
// plus a VariantAccess the visitor uses to pick one of the four
// continuations described in spec §4.2.4.
type EnumAccess interface {
	Variant() (string, VariantAccess, error)
}

// VariantAccess lets the visitor commit to exactly one of the four variant
// shapes; calling any method other than the one matching what's actually in
// the source produces the corresponding Expected*Variant error.
type VariantAccess interface {
	UnitVariant() error
	NewtypeVariant(v Visitor) (any, error)
	TupleVariant(v Visitor) (any, error)
	StructVariant(v Visitor) (any, error)
}

// tokenShapeName renders a token kind for "unexpected token" style messages.
func tokenShapeName(k token.Kind) string { return k.String() }
