package lexer

import (
	"strings"

	"github.com/eternal-io/keon/token"
)

// lexParagraph scans a `|`-introduced paragraph literal and its `|`/`<`/`` ` ``
// continuation lines, per spec §4.1. The leading '|' of the first line has
// not yet been consumed when this is called.
func (l *Lexer) lexParagraph() (token.Token, error) {
	var sb strings.Builder
	first := true

	for {
		marker := l.next() // '|', '<', or '`'

		lineStart := l.pos
		for {
			r := l.peek()
			if r == '\n' || r == eof {
				break
			}
			l.next()
		}
		lineText := l.input[lineStart:l.pos]

		if first {
			first = false
			text := strings.TrimPrefix(lineText, " ")
			text = strings.TrimRight(text, " \t\r")
			sb.WriteString(text)
		} else {
			text := strings.TrimSpace(lineText)
			switch marker {
			case '|':
				if text == "" {
					if !strings.HasSuffix(sb.String(), "\n") {
						sb.WriteByte('\n')
					}
				} else {
					sb.WriteByte(' ')
					sb.WriteString(text)
				}
			case '<':
				sb.WriteString(text)
			case '`':
				sb.WriteByte('\n')
				sb.WriteString(text)
			}
		}

		if l.peek() == eof {
			break
		}

		checkpointPos, checkpointLine, checkpointCol := l.pos, l.line, l.column
		l.next() // the '\n' ending this line

		p := l.pos
		for p < len(l.input) && (l.input[p] == ' ' || l.input[p] == '\t') {
			p++
		}
		if p < len(l.input) && (l.input[p] == '|' || l.input[p] == '<' || l.input[p] == '`') {
			for l.pos < p {
				l.next()
			}
			continue
		}

		// Not a continuation: the newline (and whatever follows) belongs to
		// the outer context.
		l.pos, l.line, l.column = checkpointPos, checkpointLine, checkpointCol
		break
	}

	return l.emitLit(token.Literal{Kind: token.LitOwnedStr, Str: sb.String()})
}
