package floats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSub(t *testing.T) {
	a := New(1, 2, 3, 4, 5)
	b := New(1, 2, 3, 4, 5)
	c := a.Sub(b)
	assert.Equal(t, Slice{.0, .0, .0, .0, .0}, c)
	assert.Equal(t, 5, len(c))
	assert.Equal(t, 5, c.Length())
}

func TestAdd(t *testing.T) {
	a := New(1, 2, 3, 4, 5)
	b := New(1, 2, 3, 4, 5)
	c := a.Add(b)
	assert.Equal(t, Slice{2.0, 4.0, 6.0, 8.0, 10.0}, c)
}

func TestTruncate(t *testing.T) {
	a := New(1, 2, 3, 4, 5)
	for i := 5; i > 0; i-- {
		a = a.Truncate(i)
		assert.Equal(t, i, a.Length())
	}
}

func TestMeanSum(t *testing.T) {
	a := New(2, 4, 6)
	assert.Equal(t, 12.0, a.Sum())
	assert.Equal(t, 4.0, a.Mean())
	assert.Equal(t, 0.0, Slice{}.Mean())
}

func TestMinMax(t *testing.T) {
	a := New(3.2, -1.5, 9.9, 0.0)
	assert.Equal(t, -1.5, a.Min())
	assert.Equal(t, 9.9, a.Max())
}

func TestIsAscending(t *testing.T) {
	assert.True(t, New(1, 1, 2, 3).IsAscending())
	assert.True(t, New().IsAscending())
	assert.False(t, New(1, 3, 2).IsAscending())
}
