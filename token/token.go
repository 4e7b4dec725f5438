// Package token defines the lexical tokens produced by the KEON lexer.
package token

import (
	"fmt"

	"github.com/alecthomas/participle/v2/lexer"
)

// Kind identifies the syntactic class of a Token.
type Kind int

const (
	EOF Kind = iota

	Ident // identifier, raw or not; keyword-like words (true/false/inf/NaN) are recognized by the literal lexer, not here

	Literal // any literal value: bool, int, uint, float, char, string, bytes

	Comma    // ,
	Colon    // :
	Percent  // %
	Question // ?
	PathSep  // ::
	FatArrow // =>

	LParen // (
	RParen // )
	LBrack // [
	RBrack // ]
	LBrace // {
	RBrace // }
)

func (k Kind) String() string {
	switch k {
	case EOF:
		return "EOF"
	case Ident:
		return "identifier"
	case Literal:
		return "literal"
	case Comma:
		return "','"
	case Colon:
		return "':'"
	case Percent:
		return "'%'"
	case Question:
		return "'?'"
	case PathSep:
		return "'::'"
	case FatArrow:
		return "'=>'"
	case LParen:
		return "'('"
	case RParen:
		return "')'"
	case LBrack:
		return "'['"
	case RBrack:
		return "']'"
	case LBrace:
		return "'{'"
	case RBrace:
		return "'}'"
	default:
		return "unknown"
	}
}

// IsDelimiter reports whether a token of this kind can legally close a
// preceding optional body (an option, a mayary, or a bare enum variant),
// per spec §3's six-member delimiter set.
func (k Kind) IsDelimiter() bool {
	switch k {
	case Comma, Colon, FatArrow, RParen, RBrack, RBrace:
		return true
	default:
		return false
	}
}

// LitKind identifies the concrete shape of a Literal token's value.
type LitKind int

const (
	LitBool LitKind = iota
	LitI64
	LitU64
	LitF64
	LitChar
	LitBorrowedStr // string slice with no escapes: may alias the source
	LitOwnedStr    // decoded string: escapes were present
	LitBorrowedBytes
	LitOwnedBytes
)

// Literal is the decoded value carried by a Literal token.
//
// Exactly one of the typed fields is meaningful, selected by Kind. Str and
// Bytes additionally distinguish "borrowed" (aliases a sub-range of the
// source text, legal because no escape processing occurred) from "owned"
// (newly allocated during decoding) via Kind, matching spec §3's borrowed-
// vs-owned string/byte slice distinction.
type Literal struct {
	Kind LitKind

	Bool  bool
	I64   int64
	U64   uint64
	F64   float64
	Char  rune
	Str   string
	Bytes []byte
}

func (l Literal) String() string {
	switch l.Kind {
	case LitBool:
		return fmt.Sprintf("%t", l.Bool)
	case LitI64:
		return fmt.Sprintf("%d", l.I64)
	case LitU64:
		return fmt.Sprintf("%d", l.U64)
	case LitF64:
		return fmt.Sprintf("%v", l.F64)
	case LitChar:
		return fmt.Sprintf("%q", l.Char)
	case LitBorrowedStr, LitOwnedStr:
		return fmt.Sprintf("%q", l.Str)
	case LitBorrowedBytes, LitOwnedBytes:
		return fmt.Sprintf("%x", l.Bytes)
	default:
		return "<invalid literal>"
	}
}

// Token is a single lexical unit with its source position.
//
// Pos reuses participle's lexer.Position (Filename/Offset/Line/Column) the
// same way gosmi's parser AST nodes carry a `Pos lexer.Position` field;
// KEON's error model narrows this to the spec's (line, column?) pair only
// at the point an Error is constructed (kerr.Position), since a Token's own
// position is always fully known.
type Token struct {
	Kind Kind
	Text string // identifier name (without a raw identifier's backtick) or punctuation source text; unused for Literal
	Lit  Literal
	Pos  lexer.Position
}

func (t Token) String() string {
	if t.Kind == Literal {
		return t.Lit.String()
	}
	if t.Text != "" {
		return t.Text
	}
	return t.Kind.String()
}
