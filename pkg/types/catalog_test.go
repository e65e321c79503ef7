package types

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/seismolab/etas/pkg/datatype/floats"
)

func TestCatalogSortByTime(t *testing.T) {
	c := NewCatalog(4)
	c.Append(3.0, 5.5)
	c.Append(1.0, 4.0)
	c.Append(2.0, 6.1)

	assert.False(t, c.IsSortedByTime())

	c.SortByTime()
	assert.True(t, c.IsSortedByTime())
	assert.Equal(t, floats.Slice{1.0, 2.0, 3.0}, c.Times)
	assert.Equal(t, floats.Slice{4.0, 6.1, 5.5}, c.Mags)
}

func TestCatalogFilter(t *testing.T) {
	c := NewCatalog(5)
	for i, ts := range []float64{0.0, 1.0, 2.0, 3.0, 4.0} {
		c.Append(ts, 3.0+float64(i))
	}

	sub := c.Filter(NewTimeWindow(1.0, 3.0))
	assert.Equal(t, 3, sub.Len())
	assert.Equal(t, floats.Slice{1.0, 2.0, 3.0}, sub.Times)
	assert.Equal(t, floats.Slice{4.0, 5.0, 6.0}, sub.Mags)

	// both endpoints are inclusive
	all := c.Filter(NewTimeWindow(0.0, 4.0))
	assert.Equal(t, c.Len(), all.Len())

	// the receiver is untouched
	assert.Equal(t, 5, c.Len())
}

func TestCatalogMerge(t *testing.T) {
	a := NewCatalog(2)
	a.Append(1.0, 3.0)

	b := NewCatalog(2)
	b.Append(0.5, 4.5)
	b.Append(2.5, 3.3)

	a.Merge(b)
	assert.Equal(t, 3, a.Len())
	assert.Equal(t, Event{Time: 2.5, Magnitude: 3.3}, a.At(2))
}

func TestTimeWindow(t *testing.T) {
	w := NewTimeWindow(10, 25)
	assert.Equal(t, 15.0, w.Length())
	assert.True(t, w.Contains(10))
	assert.True(t, w.Contains(25))
	assert.False(t, w.Contains(25.0001))
}
