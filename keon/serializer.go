package keon

import (
	"bufio"
	"encoding/base32"
	"encoding/base64"
	"encoding/hex"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/eternal-io/keon/kerr"
)

var base32NoPadUpper = base32.StdEncoding.WithPadding(base32.NoPadding)

func encodeHexUpper(v []byte) string  { return strings.ToUpper(hex.EncodeToString(v)) }
func encodeBase32(v []byte) string    { return base32NoPadUpper.EncodeToString(v) }
func encodeBase64(v []byte) string    { return base64.RawURLEncoding.EncodeToString(v) }

// Serializable is the serialization-side callback target: a value describes
// itself to a Serializer by calling exactly one of its Serialize* methods,
// the mirror image of Visitor on the deserialization side.
type Serializable interface {
	SerializeKEON(s *Serializer) error
}

// reservedWords are the bare words the lexer recognizes as literals rather
// than identifiers; a struct field or enum name colliding with one of these
// must be emitted as a raw identifier.
var reservedWords = map[string]bool{"true": true, "false": true, "inf": true, "NaN": true}

// Serializer emits a KEON document for a Serializable value, honoring a
// Preset's verbosity/depth policy and the shared recursion budget.
type Serializer struct {
	w      *bufio.Writer
	preset Preset
	depth  int
	budget int
	logger Logger
}

// NewSerializer constructs a Serializer writing to w under preset.
func NewSerializer(w io.Writer, preset Preset) *Serializer {
	return &Serializer{w: bufio.NewWriter(w), preset: preset, budget: defaultRecursionBudget}
}

func (s *Serializer) SetLogger(l Logger) { s.logger = l }

// Flush must be called once after the top-level Serialize call returns nil.
func (s *Serializer) Flush() error { return s.w.Flush() }

func (s *Serializer) minimized() bool { return s.depth >= int(s.preset.MinimizeAfterDepth) }

func (s *Serializer) enter() error {
	if s.budget <= 0 {
		return kerr.New(kerr.ExceededRecursionLimit, kerr.Position{}, "exceeded recursion limit")
	}
	s.budget--
	return nil
}

// leave restores the budget enter charged, so the limit bounds nesting depth
// rather than the total number of values serialized across the whole
// document.
func (s *Serializer) leave() { s.budget++ }

// Serialize is the single recursive entry point every nested value goes
// through, so the recursion budget is charged uniformly regardless of
// whether the value is a top-level call, a sequence element, a map
// key/value, a struct field, or a variant payload.
func (s *Serializer) Serialize(v Serializable) error {
	if err := s.enter(); err != nil {
		return err
	}
	defer s.leave()
	if s.logger != nil {
		s.logger.Tracef("keon: serialize at depth=%d minimized=%v", s.depth, s.minimized())
	}
	return v.SerializeKEON(s)
}

func (s *Serializer) writeString(str string) error {
	_, err := s.w.WriteString(str)
	return err
}

func (s *Serializer) writeIndent(depth int) error {
	for i := 0; i < depth; i++ {
		if err := s.writeString("    "); err != nil {
			return err
		}
	}
	return nil
}

func (s *Serializer) writeIdent(name string) error {
	if reservedWords[name] {
		return s.writeString("`" + name)
	}
	return s.writeString(name)
}

//------------------------------------------------------------------------------
// Scalars

func (s *Serializer) SerializeBool(v bool) error {
	if v {
		return s.writeString("true")
	}
	return s.writeString("false")
}

func (s *Serializer) SerializeI64(v int64) error { return s.writeString(strconv.FormatInt(v, 10)) }
func (s *Serializer) SerializeU64(v uint64) error { return s.writeString(strconv.FormatUint(v, 10)) }

func (s *Serializer) SerializeF64(v float64) error {
	switch {
	case math.IsNaN(v):
		return s.writeString("NaN")
	case math.IsInf(v, 1):
		return s.writeString("inf")
	case math.IsInf(v, -1):
		return s.writeString("-inf")
	default:
		return s.writeString(strconv.FormatFloat(v, 'g', -1, 64))
	}
}

// escapeScalar renders one code point using the §4.3 char/string escape
// rule: {\0,\n,\t,\r,\',\"} and the backslash itself get named escapes,
// 0x01-0x19 and 0x7F get \xHH, everything else (including non-ASCII) is
// verbatim.
func escapeScalar(r rune, sb *strings.Builder) {
	switch r {
	case 0:
		sb.WriteString(`\0`)
	case '\n':
		sb.WriteString(`\n`)
	case '\t':
		sb.WriteString(`\t`)
	case '\r':
		sb.WriteString(`\r`)
	case '\'':
		sb.WriteString(`\'`)
	case '"':
		sb.WriteString(`\"`)
	case '\\':
		sb.WriteString(`\\`)
	default:
		if (r >= 0x01 && r <= 0x19) || r == 0x7F {
			sb.WriteString("\\x")
			const hex = "0123456789ABCDEF"
			sb.WriteByte(hex[(r>>4)&0xF])
			sb.WriteByte(hex[r&0xF])
		} else {
			sb.WriteRune(r)
		}
	}
}

func (s *Serializer) SerializeChar(v rune) error {
	var sb strings.Builder
	sb.WriteByte('\'')
	escapeScalar(v, &sb)
	sb.WriteByte('\'')
	return s.writeString(sb.String())
}

func (s *Serializer) SerializeStr(v string) error {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range v {
		escapeScalar(r, &sb)
	}
	sb.WriteByte('"')
	return s.writeString(sb.String())
}

// escapeByte renders one byte using the Normal bytes-flavor rule: every
// non-printable or non-ASCII byte gets \xHH; the named escapes still apply.
func escapeByte(b byte, sb *strings.Builder) {
	switch b {
	case 0:
		sb.WriteString(`\0`)
	case '\n':
		sb.WriteString(`\n`)
	case '\t':
		sb.WriteString(`\t`)
	case '\r':
		sb.WriteString(`\r`)
	case '\'':
		sb.WriteString(`\'`)
	case '"':
		sb.WriteString(`\"`)
	case '\\':
		sb.WriteString(`\\`)
	default:
		if b < 0x20 || b >= 0x7F {
			sb.WriteString("\\x")
			const hex = "0123456789ABCDEF"
			sb.WriteByte(hex[(b>>4)&0xF])
			sb.WriteByte(hex[b&0xF])
		} else {
			sb.WriteByte(b)
		}
	}
}

func (s *Serializer) SerializeBytes(v []byte) error {
	switch s.preset.BytesFlavor {
	case BytesBase16:
		return s.writeString(`b16"` + encodeHexUpper(v) + `"`)
	case BytesBase32:
		return s.writeString(`b32"` + encodeBase32(v) + `"`)
	case BytesBase64:
		return s.writeString(`b64"` + encodeBase64(v) + `"`)
	default:
		var sb strings.Builder
		sb.WriteString(`b"`)
		for _, b := range v {
			escapeByte(b, &sb)
		}
		sb.WriteByte('"')
		return s.writeString(sb.String())
	}
}

//------------------------------------------------------------------------------
// Unit / option / newtype

func (s *Serializer) SerializeUnit() error { return s.writeString("()") }

func (s *Serializer) SerializeUnitStruct(name string) error {
	if name == "" || s.minimized() {
		return s.writeString("()")
	}
	return s.writeString("(" + name + ")")
}

func (s *Serializer) SerializeNone() error { return s.writeString("?") }

func (s *Serializer) SerializeSome(v Serializable) error {
	if err := s.writeString("?"); err != nil {
		return err
	}
	if !s.minimized() {
		if err := s.writeString(" "); err != nil {
			return err
		}
	}
	return s.Serialize(v)
}

// SerializeNewtypeStruct emits `(Name) % v` verbose / `%v` minimized; an
// empty name (the dynamic Value tree has none to offer) always takes the
// nameless mayary form, since there is nothing to show in verbose mode
// either.
func (s *Serializer) SerializeNewtypeStruct(name string, v Serializable) error {
	if name == "" || s.minimized() {
		if err := s.writeString("%"); err != nil {
			return err
		}
		return s.Serialize(v)
	}
	if err := s.writeString("(" + name + ") % "); err != nil {
		return err
	}
	return s.Serialize(v)
}

//------------------------------------------------------------------------------
// Sequences / tuples

// SeqEncoder accumulates a sequence's or tuple's elements.
type SeqEncoder struct {
	s          *Serializer
	count      int
	wroteFirst bool
}

func (e *SeqEncoder) minimized() bool { return e.s.minimized() }

func (e *SeqEncoder) writeSep() error {
	if !e.wroteFirst {
		e.wroteFirst = true
		if e.minimized() {
			return nil
		}
		return e.s.writeString("\n")
	}
	if e.minimized() {
		return e.s.writeString(",")
	}
	return e.s.writeString(",\n")
}

func (e *SeqEncoder) SerializeElement(v Serializable) error {
	if err := e.writeSep(); err != nil {
		return err
	}
	if !e.minimized() {
		if err := e.s.writeIndent(e.s.depth); err != nil {
			return err
		}
	}
	e.count++
	return e.s.Serialize(v)
}

// End closes the sequence/tuple, emitting the trailing comma a single
// element always requires and that pretty mode always adds to every
// element.
func (e *SeqEncoder) End() error {
	e.s.depth--
	trailing := (!e.minimized() && e.count > 0) || e.count == 1
	if trailing && e.count > 0 {
		if err := e.s.writeString(","); err != nil {
			return err
		}
	}
	if !e.minimized() && e.count > 0 {
		if err := e.s.writeString("\n"); err != nil {
			return err
		}
		if err := e.s.writeIndent(e.s.depth); err != nil {
			return err
		}
	}
	return nil
}

func (s *Serializer) serializeSeqOpen(opener string) (*SeqEncoder, error) {
	if err := s.writeString(opener); err != nil {
		return nil, err
	}
	s.depth++
	return &SeqEncoder{s: s}, nil
}

func (s *Serializer) SerializeSeq() (*SeqEncoder, error) { return s.serializeSeqOpen("[") }

func (e *SeqEncoder) EndSeq() error {
	if err := e.End(); err != nil {
		return err
	}
	return e.s.writeString("]")
}

// SerializeTuple opens a bare `(...)` tuple body; the single-element
// trailing-comma rule is unconditional regardless of verbosity.
func (s *Serializer) SerializeTuple() (*SeqEncoder, error) { return s.serializeSeqOpen("(") }

func (e *SeqEncoder) EndTuple() error {
	if err := e.End(); err != nil {
		return err
	}
	return e.s.writeString(")")
}

// SerializeTupleStruct emits `(Name)(e0, ...)` verbose / `(e0, ...)`
// minimized; zero-length emits the mayary nullary form instead (the caller
// must check for a nil *SeqEncoder in that case).
func (s *Serializer) SerializeTupleStruct(name string, length int) (*SeqEncoder, error) {
	if length == 0 {
		if name == "" || s.minimized() {
			return nil, s.writeString("%")
		}
		return nil, s.writeString("(" + name + ")%")
	}
	if name != "" && !s.minimized() {
		if err := s.writeString("(" + name + ")"); err != nil {
			return nil, err
		}
	}
	return s.serializeSeqOpen("(")
}

//------------------------------------------------------------------------------
// Maps / structs

// MapEncoder accumulates a map's or struct's entries.
type MapEncoder struct {
	s          *Serializer
	count      int
	wroteFirst bool
}

func (e *MapEncoder) minimized() bool { return e.s.minimized() }

func (e *MapEncoder) writeSep() error {
	if !e.wroteFirst {
		e.wroteFirst = true
		if e.minimized() {
			return nil
		}
		return e.s.writeString("\n")
	}
	if e.minimized() {
		return e.s.writeString(",")
	}
	return e.s.writeString(",\n")
}

// SerializeEntry writes an arbitrary-keyed `k => v` entry.
func (e *MapEncoder) SerializeEntry(k, v Serializable) error {
	if err := e.writeSep(); err != nil {
		return err
	}
	if !e.minimized() {
		if err := e.s.writeIndent(e.s.depth); err != nil {
			return err
		}
	}
	e.count++
	if err := e.s.Serialize(k); err != nil {
		return err
	}
	arrow := " => "
	if e.minimized() {
		arrow = "=>"
	}
	if err := e.s.writeString(arrow); err != nil {
		return err
	}
	return e.s.Serialize(v)
}

// SerializeField writes a `name: v` struct field.
func (e *MapEncoder) SerializeField(name string, v Serializable) error {
	if err := e.writeSep(); err != nil {
		return err
	}
	if !e.minimized() {
		if err := e.s.writeIndent(e.s.depth); err != nil {
			return err
		}
	}
	e.count++
	if err := e.s.writeIdent(name); err != nil {
		return err
	}
	sep := ": "
	if e.minimized() {
		sep = ":"
	}
	if err := e.s.writeString(sep); err != nil {
		return err
	}
	return e.s.Serialize(v)
}

func (e *MapEncoder) End() error {
	e.s.depth--
	if !e.minimized() && e.count > 0 {
		if err := e.s.writeString(",\n"); err != nil {
			return err
		}
		if err := e.s.writeIndent(e.s.depth); err != nil {
			return err
		}
	}
	return e.s.writeString("}")
}

func (s *Serializer) SerializeMap() (*MapEncoder, error) {
	if err := s.writeString("{"); err != nil {
		return nil, err
	}
	s.depth++
	return &MapEncoder{s: s}, nil
}

// SerializeStruct emits `(Name) { ... }` verbose / `{...}` minimized.
func (s *Serializer) SerializeStruct(name string) (*MapEncoder, error) {
	if name != "" && !s.minimized() {
		if err := s.writeString("(" + name + ") "); err != nil {
			return nil, err
		}
	}
	return s.SerializeMap()
}

//------------------------------------------------------------------------------
// Enum variants

func (s *Serializer) variantPrefix(name, variant string) error {
	if name != "" && !s.minimized() {
		if err := s.writeString(name + "::"); err != nil {
			return err
		}
	}
	return s.writeIdent(variant)
}

func (s *Serializer) SerializeUnitVariant(name, variant string) error {
	return s.variantPrefix(name, variant)
}

func (s *Serializer) SerializeNewtypeVariant(name, variant string, v Serializable) error {
	if err := s.variantPrefix(name, variant); err != nil {
		return err
	}
	sep := "%"
	if !s.minimized() {
		sep = " % "
	}
	if err := s.writeString(sep); err != nil {
		return err
	}
	return s.Serialize(v)
}

func (s *Serializer) SerializeTupleVariant(name, variant string, length int) (*SeqEncoder, error) {
	if err := s.variantPrefix(name, variant); err != nil {
		return nil, err
	}
	if length == 0 {
		return nil, s.writeString("%")
	}
	return s.serializeSeqOpen("(")
}

func (s *Serializer) SerializeStructVariant(name, variant string) (*MapEncoder, error) {
	if err := s.variantPrefix(name, variant); err != nil {
		return nil, err
	}
	if !s.minimized() {
		if err := s.writeString(" "); err != nil {
			return nil, err
		}
	}
	return s.SerializeMap()
}
