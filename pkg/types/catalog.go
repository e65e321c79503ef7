package types

import (
	"sort"

	"github.com/seismolab/etas/pkg/datatype/floats"
)

// Event is a single catalog entry.
type Event struct {
	Time      float64 `json:"time"`
	Magnitude float64 `json:"magnitude"`
}

// Catalog is a sequence of events stored as flat parallel slices, the layout
// the declustering kernel iterates over. Times is expected to be ascending;
// producers sort before handing a catalog out.
type Catalog struct {
	Times floats.Slice
	Mags  floats.Slice
}

func NewCatalog(capacity int) *Catalog {
	return &Catalog{
		Times: make(floats.Slice, 0, capacity),
		Mags:  make(floats.Slice, 0, capacity),
	}
}

func (c *Catalog) Len() int {
	return len(c.Times)
}

func (c *Catalog) Append(t, mag float64) {
	c.Times.Push(t)
	c.Mags.Push(mag)
}

func (c *Catalog) At(i int) Event {
	return Event{Time: c.Times[i], Magnitude: c.Mags[i]}
}

// Merge appends all events of other.
func (c *Catalog) Merge(other *Catalog) {
	c.Times.Append(other.Times...)
	c.Mags.Append(other.Mags...)
}

// SortByTime sorts events in place by ascending time, keeping each
// magnitude attached to its event.
func (c *Catalog) SortByTime() {
	sort.Sort(byTime{c})
}

// IsSortedByTime reports whether times are non-decreasing.
func (c *Catalog) IsSortedByTime() bool {
	return c.Times.IsAscending()
}

// Filter returns the events whose time falls inside w, both ends inclusive.
// The receiver is unchanged.
func (c *Catalog) Filter(w TimeWindow) *Catalog {
	out := NewCatalog(c.Len())
	for i := range c.Times {
		if w.Contains(c.Times[i]) {
			out.Append(c.Times[i], c.Mags[i])
		}
	}
	return out
}

type byTime struct {
	c *Catalog
}

func (s byTime) Len() int { return s.c.Len() }

func (s byTime) Less(i, j int) bool { return s.c.Times[i] < s.c.Times[j] }

func (s byTime) Swap(i, j int) {
	s.c.Times[i], s.c.Times[j] = s.c.Times[j], s.c.Times[i]
	s.c.Mags[i], s.c.Mags[j] = s.c.Mags[j], s.c.Mags[i]
}
