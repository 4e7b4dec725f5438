package value

import (
	"hash/fnv"
	"math"
)

// CompareNumber totally orders Number by discriminant Int < UInt < Float,
// and within Float by value with NaN greatest and equal to itself, per
// _examples/original_source/src/value.rs's PartialOrd/Ord impl.
func CompareNumber(a, b Number) int {
	if a.Kind != b.Kind {
		return int(a.Kind) - int(b.Kind)
	}
	switch a.Kind {
	case NumberInt:
		switch {
		case a.I64 < b.I64:
			return -1
		case a.I64 > b.I64:
			return 1
		default:
			return 0
		}
	case NumberUInt:
		switch {
		case a.U64 < b.U64:
			return -1
		case a.U64 > b.U64:
			return 1
		default:
			return 0
		}
	default:
		aNaN, bNaN := math.IsNaN(a.F64), math.IsNaN(b.F64)
		switch {
		case aNaN && bNaN:
			return 0
		case aNaN:
			return 1
		case bNaN:
			return -1
		case a.F64 < b.F64:
			return -1
		case a.F64 > b.F64:
			return 1
		default:
			return 0
		}
	}
}

// Compare totally orders Value: first by Kind's declaration order (matching
// Rust's derived Ord on an enum, which compares by discriminant first), then
// by contained data within the same Kind. Used to keep Map's entries sorted.
func Compare(a, b Value) int {
	if a.Kind != b.Kind {
		return int(a.Kind) - int(b.Kind)
	}
	switch a.Kind {
	case KindUnit:
		return 0
	case KindBool:
		switch {
		case a.Bool == b.Bool:
			return 0
		case !a.Bool:
			return -1
		default:
			return 1
		}
	case KindChar:
		return int(a.Char) - int(b.Char)
	case KindNumber:
		return CompareNumber(a.Num, b.Num)
	case KindString:
		switch {
		case a.Str < b.Str:
			return -1
		case a.Str > b.Str:
			return 1
		default:
			return 0
		}
	case KindBytes:
		return compareBytes(a.Bytes, b.Bytes)
	case KindNewtype:
		return Compare(*a.Newtype, *b.Newtype)
	case KindOption:
		switch {
		case a.Option == nil && b.Option == nil:
			return 0
		case a.Option == nil:
			return -1
		case b.Option == nil:
			return 1
		default:
			return Compare(*a.Option, *b.Option)
		}
	case KindSeq:
		return compareSeqs(a.Seq, b.Seq)
	case KindMap:
		return compareMaps(a.Map, b.Map)
	default:
		return 0
	}
}

func compareBytes(a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return int(a[i]) - int(b[i])
		}
	}
	return len(a) - len(b)
}

func compareSeqs(a, b []Value) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if c := Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return len(a) - len(b)
}

func compareMaps(a, b *Map) int {
	ae, be := a.Entries(), b.Entries()
	n := len(ae)
	if len(be) < n {
		n = len(be)
	}
	for i := 0; i < n; i++ {
		if c := Compare(ae[i].Key, be[i].Key); c != 0 {
			return c
		}
		if c := Compare(ae[i].Val, be[i].Val); c != 0 {
			return c
		}
	}
	return len(ae) - len(be)
}

// Hash computes a structural hash matching the original's
// discriminant-then-bit-pattern Hash impl: a float hashes by its bit
// pattern. Values that Compare treats as equal hash alike, except floats
// whose bits differ: 0 and -0, or NaNs with different payloads, compare
// equal but hash differently.
func Hash(v Value) uint64 {
	h := fnv.New64a()
	hashInto(h, v)
	return h.Sum64()
}

func hashInto(h interface{ Write([]byte) (int, error) }, v Value) {
	var buf [8]byte
	writeU64 := func(u uint64) {
		for i := 0; i < 8; i++ {
			buf[i] = byte(u >> (8 * i))
		}
		h.Write(buf[:])
	}
	writeU64(uint64(v.Kind))
	switch v.Kind {
	case KindBool:
		if v.Bool {
			writeU64(1)
		} else {
			writeU64(0)
		}
	case KindChar:
		writeU64(uint64(v.Char))
	case KindNumber:
		writeU64(uint64(v.Num.Kind))
		switch v.Num.Kind {
		case NumberInt:
			writeU64(uint64(v.Num.I64))
		case NumberUInt:
			writeU64(v.Num.U64)
		default:
			writeU64(math.Float64bits(v.Num.F64))
		}
	case KindString:
		h.Write([]byte(v.Str))
	case KindBytes:
		h.Write(v.Bytes)
	case KindNewtype:
		hashInto(h, *v.Newtype)
	case KindOption:
		if v.Option != nil {
			writeU64(1)
			hashInto(h, *v.Option)
		} else {
			writeU64(0)
		}
	case KindSeq:
		for _, e := range v.Seq {
			hashInto(h, e)
		}
	case KindMap:
		for _, e := range v.Map.Entries() {
			hashInto(h, e.Key)
			hashInto(h, e.Val)
		}
	}
}
