package lexer

import (
	"unicode"

	"github.com/eternal-io/keon/token"
)

// isIdentStart approximates XID_Start: a letter or underscore. Go's unicode
// package has no XID_Start/XID_Continue tables, so this uses the nearest
// stdlib categories, matching what every lexer in the retrieval pack that
// targets Unicode identifiers does (a letter/underscore start, letter/digit/
// underscore continuation).
func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentContinue(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// lexIdentOrKeyword consumes a plain (non-backtick) identifier and resolves
// the spec's bare-word literals true/false/inf/NaN.
func (l *Lexer) lexIdentOrKeyword() (token.Token, error) {
	l.next() // identifier start, already validated by the caller
	for isIdentContinue(l.peek()) {
		l.next()
	}
	word := l.text()

	switch word {
	case "true":
		return l.emitLit(token.Literal{Kind: token.LitBool, Bool: true})
	case "false":
		return l.emitLit(token.Literal{Kind: token.LitBool, Bool: false})
	case "inf":
		return l.emitLit(token.Literal{Kind: token.LitF64, F64: posInf})
	case "NaN":
		return l.emitLit(token.Literal{Kind: token.LitF64, F64: nan})
	default:
		return l.emit(token.Ident)
	}
}
