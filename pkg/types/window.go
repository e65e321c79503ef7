package types

// TimeWindow is a closed interval [Start, End] on the catalog time axis.
type TimeWindow struct {
	Start float64 `json:"start" yaml:"start"`
	End   float64 `json:"end" yaml:"end"`
}

func NewTimeWindow(start, end float64) TimeWindow {
	return TimeWindow{Start: start, End: end}
}

func (w TimeWindow) Length() float64 {
	return w.End - w.Start
}

// Contains reports whether t falls inside the window, both ends inclusive.
func (w TimeWindow) Contains(t float64) bool {
	return t >= w.Start && t <= w.End
}
