package keon

import (
	"bytes"
	"io"
	"unicode/utf8"

	"github.com/eternal-io/keon/kerr"
)

// Unmarshal parses exactly one KEON value out of input and drives v,
// returning whatever v's Visit* method produced. filename is cosmetic: it is
// recorded in token positions but does not appear in returned errors.
func Unmarshal(filename string, input []byte, v Visitor) (any, error) {
	if !utf8.Valid(input) {
		return nil, kerr.New(kerr.Utf8, kerr.Position{}, "input is not valid UTF-8")
	}
	return ParseAll(filename, string(input), v)
}

// Decode is Unmarshal's io.Reader-oriented counterpart (the original
// implementation's `from_reader`): the whole reader is buffered, since the
// grammar needs lookahead a streaming decoder can't give without re-reading.
func Decode(r io.Reader, filename string, v Visitor) (any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, kerr.Wrap(kerr.Io, kerr.Position{}, err)
	}
	return Unmarshal(filename, data, v)
}

// Marshal serializes v under preset and returns the resulting document.
func Marshal(v Serializable, preset Preset) ([]byte, error) {
	var buf bytes.Buffer
	s := NewSerializer(&buf, preset)
	if err := s.Serialize(v); err != nil {
		return nil, err
	}
	if err := s.Flush(); err != nil {
		return nil, kerr.Wrap(kerr.Io, kerr.Position{}, err)
	}
	return buf.Bytes(), nil
}

// NewEncoder is Marshal's io.Writer-oriented counterpart (the original
// implementation's `to_writer`). The caller must call Flush once after the
// top-level Serialize call returns nil.
func NewEncoder(w io.Writer, preset Preset) *Serializer {
	return NewSerializer(w, preset)
}
