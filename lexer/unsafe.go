package lexer

import "unsafe"

// borrowBytes aliases s's backing array as a []byte with no copy, the byte
// analogue of the zero-copy substring Go already gives us for free when we
// slice l.input. This is the one place this package reaches for unsafe; it
// exists purely to uphold the "borrowed byte slice" half of spec §3's
// literal-value model (the string half needs nothing special: ordinary Go
// substrings already alias their source).
func borrowBytes(s string) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}
