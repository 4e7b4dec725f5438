package lexer

import (
	"encoding/base32"
	"encoding/base64"
	"encoding/hex"

	"github.com/eternal-io/keon/kerr"
	"github.com/eternal-io/keon/token"
)

type bytesEncoding int

const (
	bytesHex bytesEncoding = iota
	bytesB32
	bytesB64
)

var (
	base32NoPad = base32.StdEncoding.WithPadding(base32.NoPadding)
)

// lexEncodedBytes scans a b16"…"/b32"…"/b64"…" literal after the fixed
// 3-byte prefix has already been consumed; only the quoted payload remains.
func (l *Lexer) lexEncodedBytes(enc bytesEncoding) (token.Token, error) {
	if l.peek() != '"' {
		return l.errAt(kerr.UnexpectedToken, "expected '\"' after byte-string encoding prefix")
	}
	l.next()
	contentStart := l.pos

	for {
		switch l.peek() {
		case eof:
			return l.errAt(kerr.UnexpectedEof, "unterminated encoded byte string")
		case '\n':
			return token.Token{}, kerr.New(kerr.UnexpectedNewline, kerr.WithoutColumn(l.line), "line break is not allowed in an encoded byte string")
		case '"':
			raw := l.input[contentStart:l.pos]
			l.next() // closing quote
			decoded, err := decodeBytesLiteral(enc, raw)
			if err != nil {
				return l.errAt(kerr.InvalidBytesEncoding, "%s", err)
			}
			return l.emitLit(token.Literal{Kind: token.LitOwnedBytes, Bytes: decoded})
		default:
			l.next()
		}
	}
}

// decodeBytesLiteral decodes raw per spec §6: HEXUPPER_PERMISSIVE (mixed
// case accepted), RFC 4648 Base32 with no padding, and URL-safe Base64 with
// no padding.
func decodeBytesLiteral(enc bytesEncoding, raw string) ([]byte, error) {
	switch enc {
	case bytesHex:
		return hex.DecodeString(raw)
	case bytesB32:
		return base32NoPad.DecodeString(raw)
	case bytesB64:
		return base64.RawURLEncoding.DecodeString(raw)
	default:
		panic("unreachable bytesEncoding")
	}
}
