package value

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompareNumberDiscriminant(t *testing.T) {
	assert.True(t, CompareNumber(Int(1000000), UInt(0)) < 0, "any Int is less than any UInt")
	assert.True(t, CompareNumber(UInt(0), Float(-1000000)) < 0, "any UInt is less than any Float")
}

func TestCompareNumberNaNGreatestAndEqualToItself(t *testing.T) {
	nan := Float(math.NaN())
	assert.Equal(t, 0, CompareNumber(nan, nan))
	assert.True(t, CompareNumber(nan, Float(math.MaxFloat64)) > 0)
	assert.True(t, CompareNumber(Float(math.MaxFloat64), nan) < 0)
}

func TestCompareValueKindOrder(t *testing.T) {
	assert.True(t, Compare(Unit(), Bool(false)) < 0)
	assert.True(t, Compare(Bool(true), Char('a')) < 0)
	assert.True(t, Compare(NumberValue(Int(0)), String("")) < 0)
}

func TestMapOrdersByCompare(t *testing.T) {
	m := NewMap()
	m.Set(NumberValue(UInt(3)), String("three"))
	m.Set(NumberValue(UInt(1)), String("one"))
	m.Set(NumberValue(UInt(2)), String("two"))

	entries := m.Entries()
	if assert.Len(t, entries, 3) {
		assert.Equal(t, NumberValue(UInt(1)), entries[0].Key)
		assert.Equal(t, NumberValue(UInt(2)), entries[1].Key)
		assert.Equal(t, NumberValue(UInt(3)), entries[2].Key)
	}
}

func TestMapSetReplacesExisting(t *testing.T) {
	m := NewMap()
	m.Set(String("k"), NumberValue(UInt(1)))
	m.Set(String("k"), NumberValue(UInt(2)))

	assert.Equal(t, 1, m.Len())
	got, ok := m.Get(String("k"))
	assert.True(t, ok)
	assert.Equal(t, NumberValue(UInt(2)), got)
}

func TestHashConsistentForEqualValues(t *testing.T) {
	a := SeqOf([]Value{Bool(true), String("x")})
	b := SeqOf([]Value{Bool(true), String("x")})
	assert.Equal(t, Hash(a), Hash(b))
}
