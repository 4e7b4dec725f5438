package value

import "sort"

// Entry is one key/value pair of a Map.
type Entry struct {
	Key Value
	Val Value
}

// Map is Value's map arm: an ordered association of Value to Value, the
// same role _examples/original_source/src/value.rs's `BTreeMap<Value,
// Value>` plays. Implemented as a sorted slice rather than a Go map since
// Value is not comparable (it embeds []byte and *Value) and the spec
// requires the total order defined by Compare, not an arbitrary hash order.
type Map struct {
	entries []Entry
}

// NewMap returns an empty Map.
func NewMap() *Map { return &Map{} }

// Len reports the number of entries.
func (m *Map) Len() int { return len(m.entries) }

// Entries returns the entries in ascending key order. The caller must not
// mutate the returned slice.
func (m *Map) Entries() []Entry {
	if m == nil {
		return nil
	}
	return m.entries
}

func (m *Map) search(key Value) (int, bool) {
	i := sort.Search(len(m.entries), func(i int) bool {
		return Compare(m.entries[i].Key, key) >= 0
	})
	if i < len(m.entries) && Compare(m.entries[i].Key, key) == 0 {
		return i, true
	}
	return i, false
}

// Get returns the value stored at key, if any.
func (m *Map) Get(key Value) (Value, bool) {
	i, ok := m.search(key)
	if !ok {
		return Value{}, false
	}
	return m.entries[i].Val, true
}

// Set inserts or replaces the value stored at key, preserving sort order.
func (m *Map) Set(key, val Value) {
	i, ok := m.search(key)
	if ok {
		m.entries[i].Val = val
		return
	}
	m.entries = append(m.entries, Entry{})
	copy(m.entries[i+1:], m.entries[i:])
	m.entries[i] = Entry{Key: key, Val: val}
}
