package keon

// BytesFlavor selects how Bytes values are rendered by the serializer.
type BytesFlavor int

const (
	BytesNormal BytesFlavor = iota
	BytesBase16
	BytesBase32
	BytesBase64
)

// Preset configures the serializer's verbosity and byte-string encoding, per
// spec §4.3. It is a plain struct rather than a persistent/file-backed
// config object — the format has no notion of a saved configuration, only a
// per-call one, matching the "no CLI, environment variable, or persistent
// state" non-goal.
type Preset struct {
	// MinimizeAfterDepth: at nesting depth >= this value the serializer
	// drops struct/enum type-name decoration, indentation, and spaces.
	MinimizeAfterDepth uint8
	BytesFlavor        BytesFlavor
}

// Minimal renders the most compact legal document: every level, the root
// included, is minimized, and byte strings use Base64.
func Minimal() Preset {
	return Preset{MinimizeAfterDepth: 0, BytesFlavor: BytesBase64}
}

// Comfort renders a human-friendly document: the first six nesting levels
// stay fully annotated and indented, and byte strings use the `b"…"` form.
func Comfort() Preset {
	return Preset{MinimizeAfterDepth: 6, BytesFlavor: BytesNormal}
}

// defaultRecursionBudget bounds nested visitor dispatch on both the parse
// and serialize sides, per spec §3. 256 is generous for a hand-written
// document while still catching runaway/cyclic input in bounded time.
const defaultRecursionBudget = 256
