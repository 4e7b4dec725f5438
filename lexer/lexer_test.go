package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eternal-io/keon/kerr"
	"github.com/eternal-io/keon/token"
)

// lexAll drives a Lexer to EOF, returning every token including the final
// token.EOF one. Any lexer error fails the test immediately.
func lexAll(t *testing.T, input string) []token.Token {
	t.Helper()
	l := New("test.keon", input)
	var toks []token.Token
	for {
		tok, err := l.Next()
		require.NoError(t, err)
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return toks
}

func TestLexerPunctuation(t *testing.T) {
	toks := lexAll(t, ",:%?=>()[]{}::")
	kinds := make([]token.Kind, 0, len(toks))
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}
	assert.Equal(t, []token.Kind{
		token.Comma, token.Colon, token.Percent, token.Question, token.FatArrow,
		token.LParen, token.RParen, token.LBrack, token.RBrack, token.LBrace, token.RBrace,
		token.PathSep, token.EOF,
	}, kinds)
}

func TestLexerIdentsAndKeywords(t *testing.T) {
	toks := lexAll(t, "foo _bar true false inf NaN")
	require.Len(t, toks, 7)

	assert.Equal(t, token.Ident, toks[0].Kind)
	assert.Equal(t, "foo", toks[0].Text)

	assert.Equal(t, token.Ident, toks[1].Kind)
	assert.Equal(t, "_bar", toks[1].Text)

	assert.Equal(t, token.LitBool, toks[2].Lit.Kind)
	assert.True(t, toks[2].Lit.Bool)

	assert.Equal(t, token.LitBool, toks[3].Lit.Kind)
	assert.False(t, toks[3].Lit.Bool)

	assert.Equal(t, token.LitF64, toks[4].Lit.Kind)
	assert.True(t, toks[4].Lit.F64 > 0)

	assert.Equal(t, token.LitF64, toks[5].Lit.Kind)
	assert.True(t, toks[5].Lit.F64 != toks[5].Lit.F64) // NaN is unequal to itself
}

func TestLexerNumbers(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		kind    token.LitKind
		wantI64 int64
		wantU64 uint64
		wantF64 float64
	}{
		{"unsigned decimal", "42", token.LitU64, 0, 42, 0},
		{"signed decimal", "-42", token.LitI64, -42, 0, 0},
		{"binary", "0b1010", token.LitU64, 0, 10, 0},
		{"octal", "0o17", token.LitU64, 0, 15, 0},
		{"hex", "0xFF", token.LitU64, 0, 255, 0},
		{"float", "3.5", token.LitF64, 0, 0, 3.5},
		{"float exponent", "1e10", token.LitF64, 0, 0, 1e10},
		{"negative float", "-0.5", token.LitF64, 0, 0, -0.5},
		{"underscored", "1_000_000", token.LitU64, 0, 1000000, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks := lexAll(t, tt.input)
			require.Len(t, toks, 2)
			lit := toks[0].Lit
			require.Equal(t, tt.kind, lit.Kind)
			switch tt.kind {
			case token.LitI64:
				assert.Equal(t, tt.wantI64, lit.I64)
			case token.LitU64:
				assert.Equal(t, tt.wantU64, lit.U64)
			case token.LitF64:
				assert.InDelta(t, tt.wantF64, lit.F64, 1e-9)
			}
		})
	}
}

func TestLexerInfAndNaN(t *testing.T) {
	toks := lexAll(t, "inf -inf NaN")
	require.Len(t, toks, 4)
	assert.True(t, toks[0].Lit.F64 > 0)
	assert.True(t, toks[1].Lit.F64 < 0)
	assert.True(t, toks[2].Lit.F64 != toks[2].Lit.F64) // NaN
}

func TestLexerStringBorrowedVsOwned(t *testing.T) {
	toks := lexAll(t, `"plain" "with\nescape"`)
	require.Len(t, toks, 3)
	assert.Equal(t, token.LitBorrowedStr, toks[0].Lit.Kind)
	assert.Equal(t, "plain", toks[0].Lit.Str)
	assert.Equal(t, token.LitOwnedStr, toks[1].Lit.Kind)
	assert.Equal(t, "with\nescape", toks[1].Lit.Str)
}

func TestLexerByteString(t *testing.T) {
	toks := lexAll(t, `b"abc"`)
	require.Len(t, toks, 2)
	assert.Equal(t, token.LitBorrowedBytes, toks[0].Lit.Kind)
	assert.Equal(t, []byte("abc"), toks[0].Lit.Bytes)
}

func TestLexerEncodedBytes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []byte
	}{
		{"hex", `b16"68656c6c6f"`, []byte("hello")},
		{"hex upper", `b16"68656C6C6F"`, []byte("hello")},
		{"base32", `b32"NBSWY3DP"`, []byte("hello")},
		{"base64 url", `b64"aGVsbG8"`, []byte("hello")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks := lexAll(t, tt.input)
			require.Len(t, toks, 2)
			assert.Equal(t, tt.want, toks[0].Lit.Bytes)
		})
	}
}

func TestLexerRawString(t *testing.T) {
	toks := lexAll(t, "`\"has \"\" quote\"`")
	require.Len(t, toks, 2)
	assert.Equal(t, token.LitBorrowedStr, toks[0].Lit.Kind)
	assert.Equal(t, `has "" quote`, toks[0].Lit.Str)
}

func TestLexerRawStringNeedsMoreBackticks(t *testing.T) {
	toks := lexAll(t, "``\"he said \"hi`\" to me\"``")
	require.Len(t, toks, 2)
	assert.Equal(t, `he said "hi`+"`"+`" to me`, toks[0].Lit.Str)
}

func TestLexerRawIdent(t *testing.T) {
	toks := lexAll(t, "`type")
	require.Len(t, toks, 2)
	assert.Equal(t, token.Ident, toks[0].Kind)
	assert.Equal(t, "type", toks[0].Text)
}

func TestLexerCharLiteral(t *testing.T) {
	toks := lexAll(t, `'a' '\n' '\u{1F600}'`)
	require.Len(t, toks, 4)
	assert.Equal(t, 'a', toks[0].Lit.Char)
	assert.Equal(t, '\n', toks[1].Lit.Char)
	assert.Equal(t, rune(0x1F600), toks[2].Lit.Char)
}

func TestLexerCharLiteralTooMany(t *testing.T) {
	l := New("t.keon", `'ab'`)
	_, err := l.Next()
	require.Error(t, err)
	assert.True(t, kerr.Is(err, kerr.InvalidCharacterTooMany))
}

func TestLexerLineComment(t *testing.T) {
	toks := lexAll(t, "foo // a comment\nbar")
	require.Len(t, toks, 3)
	assert.Equal(t, "foo", toks[0].Text)
	assert.Equal(t, "bar", toks[1].Text)
}

func TestLexerNestedBlockComment(t *testing.T) {
	toks := lexAll(t, "foo /* outer /* inner */ still outer */ bar")
	require.Len(t, toks, 3)
	assert.Equal(t, "foo", toks[0].Text)
	assert.Equal(t, "bar", toks[1].Text)
}

func TestLexerUnterminatedBlockComment(t *testing.T) {
	l := New("t.keon", "foo /* never closes")
	_, err := l.Next() // foo
	require.NoError(t, err)
	_, err = l.Next()
	require.Error(t, err)
	assert.True(t, kerr.Is(err, kerr.UnexpectedEof))
}

// TestLexerDeferredNewlineError matches the original implementation's
// error_location fixture: a string literal containing a bare newline is not
// rejected at the newline itself. Scanning continues until the literal
// actually closes, and only then is UnexpectedNewline raised, positioned at
// the line where scanning stopped with the column omitted.
func TestLexerDeferredNewlineError(t *testing.T) {
	input := "\"broken!\n            string\""
	l := New("t.keon", input)
	_, err := l.Next()
	require.Error(t, err)
	var ke *kerr.Error
	require.ErrorAs(t, err, &ke)
	assert.Equal(t, kerr.UnexpectedNewline, ke.Kind)
	assert.Equal(t, 2, ke.Pos.Line)
	assert.False(t, ke.Pos.HasColumn)
}

func TestLexerBacktickAfterIdentIsUnexpected(t *testing.T) {
	// "asdf`" with nothing following the backtick that could start an
	// identifier or a quote is a lex error positioned at the backtick.
	l := New("t.keon", "asdf`")
	_, err := l.Next() // "asdf"
	require.NoError(t, err)
	_, err = l.Next()
	require.Error(t, err)
	var ke *kerr.Error
	require.ErrorAs(t, err, &ke)
	assert.Equal(t, kerr.UnexpectedToken, ke.Kind)
	assert.Equal(t, 1, ke.Pos.Line)
	assert.Equal(t, 5, ke.Pos.Column)
}

func TestLexerParagraphBasic(t *testing.T) {
	input := "| To be, or not to be,\n         | that is the question."
	toks := lexAll(t, input)
	require.Len(t, toks, 2)
	assert.Equal(t, "To be, or not to be, that is the question.", toks[0].Lit.Str)
}

func TestLexerParagraphContinuationKinds(t *testing.T) {
	input := "| one\n<two\n| three\n`four"
	toks := lexAll(t, input)
	require.Len(t, toks, 2)
	assert.Equal(t, "onetwo three\nfour", toks[0].Lit.Str)
}

func TestLexerParagraphStopsAtNonContinuation(t *testing.T) {
	input := "| a paragraph\nnotAContinuation"
	l := New("t.keon", input)
	tok, err := l.Next()
	require.NoError(t, err)
	assert.Equal(t, "a paragraph", tok.Lit.Str)

	tok, err = l.Next()
	require.NoError(t, err)
	assert.Equal(t, token.Ident, tok.Kind)
	assert.Equal(t, "notAContinuation", tok.Text)
}

func TestLexerOffsetTracksTokenStart(t *testing.T) {
	l := New("t.keon", "12 34")
	_, err := l.Next()
	require.NoError(t, err)
	firstOffset := l.Offset()
	assert.Equal(t, 0, firstOffset)

	_, err = l.Next()
	require.NoError(t, err)
	secondOffset := l.Offset()
	assert.Equal(t, 3, secondOffset)
}
