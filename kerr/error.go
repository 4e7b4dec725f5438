// Package kerr defines the uniform error taxonomy shared by the KEON lexer,
// parser, and serializer.
package kerr

import (
	"errors"
	"fmt"

	"github.com/alecthomas/participle/v2/lexer"
)

// Kind tags the closed set of ways a parse or serialize can fail, per spec §7.
type Kind int

const (
	UnexpectedEof Kind = iota
	UnexpectedToken
	UnexpectedNewline
	UnexpectedNonAscii
	UnexpectedUnicodeEscape
	UnbalancedLiteralClose
	InvalidNumber
	InvalidCharacterTooLess
	InvalidCharacterTooMany
	InvalidStringEscape
	InvalidBytesEscape
	InvalidAsciiEscape
	InvalidUnicodeEscape
	InvalidBytesEncoding
	ExpectedComma
	ExpectedFatArrow
	ExpectedNonUnitStruct
	ExpectedVariant
	ExpectedUnitVariant
	ExpectedNewtypeVariant
	ExpectedTupleVariant
	ExpectedStructVariant
	ExpectedEof
	ExceededRecursionLimit
	Io
	Utf8
	Custom
)

var kindNames = map[Kind]string{
	UnexpectedEof:           "UnexpectedEof",
	UnexpectedToken:         "UnexpectedToken",
	UnexpectedNewline:       "UnexpectedNewline",
	UnexpectedNonAscii:      "UnexpectedNonAscii",
	UnexpectedUnicodeEscape: "UnexpectedUnicodeEscape",
	UnbalancedLiteralClose:  "UnbalancedLiteralClose",
	InvalidNumber:           "InvalidNumber",
	InvalidCharacterTooLess: "InvalidCharacterTooLess",
	InvalidCharacterTooMany: "InvalidCharacterTooMany",
	InvalidStringEscape:     "InvalidStringEscape",
	InvalidBytesEscape:      "InvalidBytesEscape",
	InvalidAsciiEscape:      "InvalidAsciiEscape",
	InvalidUnicodeEscape:    "InvalidUnicodeEscape",
	InvalidBytesEncoding:    "InvalidBytesEncoding",
	ExpectedComma:           "ExpectedComma",
	ExpectedFatArrow:        "ExpectedFatArrow",
	ExpectedNonUnitStruct:   "ExpectedNonUnitStruct",
	ExpectedVariant:         "ExpectedVariant",
	ExpectedUnitVariant:     "ExpectedUnitVariant",
	ExpectedNewtypeVariant:  "ExpectedNewtypeVariant",
	ExpectedTupleVariant:    "ExpectedTupleVariant",
	ExpectedStructVariant:   "ExpectedStructVariant",
	ExpectedEof:             "ExpectedEof",
	ExceededRecursionLimit:  "ExceededRecursionLimit",
	Io:                      "Io",
	Utf8:                    "Utf8",
	Custom:                  "Custom",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Unknown"
}

// Position is the spec §3 source location: a 1-based line, and a 1-based
// column that is absent when the offending token began on a line after an
// unescaped newline inside an in-line-only literal (e.g. an unterminated
// quoted string spanning lines).
//
// This narrows participle's lexer.Position (which always has a Column) down
// to the optional-column shape the spec requires; FromTokenPos fills it in
// from a Token's fully-known position, and WithoutColumn is used by literal
// lexers that detect the newline-inside-single-line-literal case.
type Position struct {
	Line      int
	Column    int
	HasColumn bool
}

// FromTokenPos builds a Position from a fully-resolved participle lexer
// position, as attached to every Token.
func FromTokenPos(p lexer.Position) Position {
	return Position{Line: p.Line, Column: p.Column, HasColumn: true}
}

// WithoutColumn returns a Position reporting only the line, for errors whose
// token began on an earlier line than where the newline was found.
func WithoutColumn(line int) Position {
	return Position{Line: line}
}

func (p Position) String() string {
	if !p.HasColumn {
		return fmt.Sprintf("%d", p.Line)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Error is the single error type returned by every KEON lexer, parser, and
// serializer failure.
type Error struct {
	Kind Kind
	Pos  Position
	// Detail carries the Kind-specific message fragment (e.g. which digits
	// were invalid for InvalidNumber, or the custom message for Custom).
	Detail string
	// Wrapped holds a pass-through error for Io, Utf8, and Custom kinds.
	Wrapped error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Detail != "" {
		msg = e.Detail
	} else if e.Wrapped != nil {
		msg = e.Wrapped.Error()
	}
	if e.Pos == (Position{}) && e.Kind != UnexpectedEof {
		return msg
	}
	return fmt.Sprintf(":%s %s", e.Pos, msg)
}

func (e *Error) Unwrap() error { return e.Wrapped }

// New constructs a positioned Error of the given kind with a formatted detail.
func New(kind Kind, pos Position, format string, args ...any) *Error {
	return &Error{Kind: kind, Pos: pos, Detail: fmt.Sprintf(format, args...)}
}

// Wrap constructs a positioned Error around a pass-through cause (Io, Utf8).
func Wrap(kind Kind, pos Position, cause error) *Error {
	return &Error{Kind: kind, Pos: pos, Wrapped: cause}
}

// CustomAt builds the Custom channel error kind a visitor/serializer uses to
// report its own failures, attaching the position the core was at when the
// visitor was invoked.
func CustomAt(pos Position, format string, args ...any) *Error {
	return &Error{Kind: Custom, Pos: pos, Detail: fmt.Sprintf(format, args...)}
}

// Is reports whether err is, or wraps, an *Error of the given kind. Kind is
// not itself an error, so errors.Is(err, kerr.ExceededRecursionLimit) does
// not work; call kerr.Is(err, kerr.ExceededRecursionLimit) instead.
func Is(err error, kind Kind) bool {
	var ke *Error
	if errors.As(err, &ke) {
		return ke.Kind == kind
	}
	return false
}
