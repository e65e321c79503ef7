package floats

import (
	"gonum.org/v1/gonum/floats"
)

type Slice []float64

func New(a ...float64) Slice {
	return Slice(a)
}

func (s *Slice) Push(v float64) {
	*s = append(*s, v)
}

func (s *Slice) Append(vs ...float64) {
	*s = append(*s, vs...)
}

func (s Slice) Length() int {
	return len(s)
}

func (s Slice) Sum() (sum float64) {
	return floats.Sum(s)
}

func (s Slice) Mean() (mean float64) {
	length := len(s)
	if length == 0 {
		return 0.0
	}
	return s.Sum() / float64(length)
}

func (s Slice) Min() float64 {
	return floats.Min(s)
}

func (s Slice) Max() float64 {
	return floats.Max(s)
}

func (s Slice) Add(b Slice) (c Slice) {
	c = make(Slice, len(s))
	for i := range s {
		c[i] = s[i] + b[i]
	}
	return c
}

func (s Slice) Sub(b Slice) (c Slice) {
	c = make(Slice, len(s))
	for i := range s {
		c[i] = s[i] - b[i]
	}
	return c
}

func (s Slice) Copy() Slice {
	c := make(Slice, len(s))
	copy(c, s)
	return c
}

func (s Slice) Truncate(size int) Slice {
	if size < 0 || len(s) <= size {
		return s
	}
	return s[len(s)-size:]
}

// IsAscending reports whether the slice is sorted in non-decreasing order.
func (s Slice) IsAscending() bool {
	for i := 1; i < len(s); i++ {
		if s[i] < s[i-1] {
			return false
		}
	}
	return true
}
