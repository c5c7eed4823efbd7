package interaction

import "fmt"

// Touch describes the pointer over a chart. The zero value is NoTouch.
type Touch struct {
	active   bool
	fraction float64
}

// NoTouch is the idle state: no pointer is pressed over the chart.
var NoTouch = Touch{}

// TouchAt returns a touch at the given fraction of the chart width. Values
// outside [0,1] are accepted and clamped when read.
func TouchAt(fraction float64) Touch {
	return Touch{active: true, fraction: fraction}
}

// Fraction returns the touch position clamped to [0,1], and whether a touch
// is active at all.
func (t Touch) Fraction() (float64, bool) {
	if !t.active {
		return 0, false
	}
	return clampFraction(t.fraction), true
}

func (t Touch) Active() bool {
	return t.active
}

func (t Touch) String() string {
	if !t.active {
		return "no touch"
	}
	return fmt.Sprintf("touch at %.3f", t.fraction)
}
