// Package lexer turns KEON source text into a pull-based stream of tokens.
//
// The state-machine shape (next/peek/peekAt, start/pos/line/column
// bookkeeping, emit slicing the source) follows the teacher's
// hand-rolled MIB lexer; the token sub-grammars themselves (raw strings,
// base-N byte strings, paragraphs, nested block comments) are new, since
// KEON's literal grammar has no analogue in the teacher.
package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	plexer "github.com/alecthomas/participle/v2/lexer"

	"github.com/eternal-io/keon/kerr"
	"github.com/eternal-io/keon/token"
)

const eof = -1

// Position is a re-export convenience so callers of this package don't need
// to import kerr just to read a token's location.
type Position = kerr.Position

// Lexer holds the scanning state for a single KEON source text. It is not
// safe for concurrent use; one Lexer exists per parse, matching the
// single-threaded, one-mutable-lexer-per-call resource model of spec §5.
type Lexer struct {
	input    string
	filename string

	start       int // byte offset of the token currently being scanned
	pos         int // byte offset of the next unread byte
	line        int
	column      int
	startLine   int
	startColumn int

	atLineStart bool // true while only horizontal whitespace has been seen since the last '\n' (or start of input)
}

// New creates a Lexer over input. filename is attached to every token's
// position and is purely cosmetic; kerr errors built from those positions
// do not carry it.
func New(filename, input string) *Lexer {
	return &Lexer{
		input:       input,
		filename:    filename,
		line:        1,
		column:      1,
		startLine:   1,
		startColumn: 1,
		atLineStart: true,
	}
}

// Offset reports the byte offset at which the token most recently returned
// by Next starts. The parser does not use it (keon.Parser.Offset reports
// Consumed); not part of the public keon API.
func (l *Lexer) Offset() int { return l.start }

// Consumed reports how many bytes of input have been scanned so far: the
// byte immediately past the last token Next returned. Unlike Offset (the
// start of that token), this is what a caller needs to slice the remaining,
// not-yet-parsed input off the original source after parsing one top-level
// value (spec §8's deser_offset fixture).
func (l *Lexer) Consumed() int { return l.pos }

func (l *Lexer) next() rune {
	if l.pos >= len(l.input) {
		return eof
	}
	r, w := utf8.DecodeRuneInString(l.input[l.pos:])
	l.pos += w
	if r == '\n' {
		l.line++
		l.column = 1
		l.atLineStart = true
	} else {
		l.column++
		if r != ' ' && r != '\t' {
			l.atLineStart = false
		}
	}
	return r
}

func (l *Lexer) peek() rune {
	if l.pos >= len(l.input) {
		return eof
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.pos:])
	return r
}

// peekAt looks at the rune n positions past the current one (n=0 is peek())
// without consuming anything.
func (l *Lexer) peekAt(n int) rune {
	p := l.pos
	var r rune = eof
	for i := 0; i <= n; i++ {
		if p >= len(l.input) {
			return eof
		}
		var w int
		r, w = utf8.DecodeRuneInString(l.input[p:])
		p += w
	}
	return r
}

func (l *Lexer) startsWith(s string) bool {
	return strings.HasPrefix(l.input[l.pos:], s)
}

func (l *Lexer) tokenPos() plexer.Position {
	return plexer.Position{Filename: l.filename, Offset: l.start, Line: l.startLine, Column: l.startColumn}
}

func (l *Lexer) errPos() kerr.Position {
	return kerr.FromTokenPos(l.tokenPos())
}

func (l *Lexer) markStart() {
	l.start = l.pos
	l.startLine = l.line
	l.startColumn = l.column
}

func (l *Lexer) text() string { return l.input[l.start:l.pos] }

func (l *Lexer) emit(kind token.Kind) (token.Token, error) {
	return token.Token{Kind: kind, Text: l.text(), Pos: l.tokenPos()}, nil
}

func (l *Lexer) emitLit(lit token.Literal) (token.Token, error) {
	return token.Token{Kind: token.Literal, Lit: lit, Pos: l.tokenPos()}, nil
}

func (l *Lexer) errAt(kind kerr.Kind, format string, args ...any) (token.Token, error) {
	return token.Token{}, kerr.New(kind, l.errPos(), format, args...)
}

// Next returns the next token in the stream, or a token.EOF-kinded token
// when the input is exhausted. The returned error is non-nil only for
// malformed input; in that case the returned token is meaningless.
func (l *Lexer) Next() (token.Token, error) {
	if err := l.skipTrivia(); err != nil {
		return token.Token{}, err
	}

	l.markStart()
	r := l.peek()

	switch {
	case r == eof:
		return l.emit(token.EOF)
	case r == '|' && l.atLineStart:
		return l.lexParagraph()
	case r == '"':
		return l.lexQuoted(false)
	case r == '\'':
		return l.lexChar()
	case r == '`':
		return l.lexBacktickForm(false)
	case r == 'b' && l.startsWith("b16\""):
		l.next3("b16")
		return l.lexEncodedBytes(bytesHex)
	case r == 'b' && l.startsWith("b32\""):
		l.next3("b32")
		return l.lexEncodedBytes(bytesB32)
	case r == 'b' && l.startsWith("b64\""):
		l.next3("b64")
		return l.lexEncodedBytes(bytesB64)
	case r == 'b' && l.peekAt(1) == '"':
		l.next()
		return l.lexQuoted(true)
	case r == 'b' && l.peekAt(1) == '`':
		l.next()
		return l.lexBacktickForm(true)
	case r == '-' || unicode.IsDigit(r):
		return l.lexNumber()
	case isIdentStart(r):
		return l.lexIdentOrKeyword()
	case r == ',':
		l.next()
		return l.emit(token.Comma)
	case r == ':':
		l.next()
		if l.peek() == ':' {
			l.next()
			return l.emit(token.PathSep)
		}
		return l.emit(token.Colon)
	case r == '%':
		l.next()
		return l.emit(token.Percent)
	case r == '?':
		l.next()
		return l.emit(token.Question)
	case r == '=' && l.peekAt(1) == '>':
		l.next()
		l.next()
		return l.emit(token.FatArrow)
	case r == '(':
		l.next()
		return l.emit(token.LParen)
	case r == ')':
		l.next()
		return l.emit(token.RParen)
	case r == '[':
		l.next()
		return l.emit(token.LBrack)
	case r == ']':
		l.next()
		return l.emit(token.RBrack)
	case r == '{':
		l.next()
		return l.emit(token.LBrace)
	case r == '}':
		l.next()
		return l.emit(token.RBrace)
	default:
		l.next()
		return l.errAt(kerr.UnexpectedToken, "unexpected character %q", r)
	}
}

// next3 consumes exactly len(prefix) runes, used after startsWith checks for
// the fixed ASCII prefixes "b16"/"b32"/"b64".
func (l *Lexer) next3(prefix string) {
	for range prefix {
		l.next()
	}
}

// skipTrivia consumes whitespace, line comments, and nested block comments.
func (l *Lexer) skipTrivia() error {
	for {
		r := l.peek()
		switch {
		case r == ' ' || r == '\t' || r == '\r' || r == '\n' || r == '\v' || r == '\f':
			l.next()
		case r == '/' && l.peekAt(1) == '/':
			l.next()
			l.next()
			for {
				r := l.peek()
				if r == '\n' || r == eof {
					break
				}
				l.next()
			}
		case r == '/' && l.peekAt(1) == '*':
			l.markStart()
			l.next()
			l.next()
			if err := l.skipBlockCommentBody(); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

// skipBlockCommentBody consumes a block comment's contents after the
// opening "/*" has already been consumed, honoring arbitrary nesting.
func (l *Lexer) skipBlockCommentBody() error {
	depth := 1
	for depth > 0 {
		r := l.next()
		switch r {
		case eof:
			return kerr.New(kerr.UnexpectedEof, l.errPos(), "unterminated block comment")
		case '/':
			if l.peek() == '*' {
				l.next()
				depth++
			}
		case '*':
			if l.peek() == '/' {
				l.next()
				depth--
			}
		}
	}
	return nil
}
