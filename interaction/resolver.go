// Package interaction maps pointer positions over a bar chart to the data
// they point at, and decides where the floating value label goes.
//
// Everything here is a pure function of its inputs. The only state a caller
// carries between events is the touch itself and, optionally, a [Tracker]
// or [Session] owned by one chart instance.
package interaction

import (
	"fmt"
	"math"
	"strconv"
)

// Selection identifies the bar under the pointer.
type Selection struct {
	Label string
	Value float64
	Index int
}

// SelectedIndex resolves the touch to the bucket it falls in. Each point owns
// an equal 1/count slice of the chart width. The result is false when there
// is no touch or the dataset is empty.
//
// SelectedIndex panics if width is not positive.
func SelectedIndex(data Dataset, touch Touch, width float64) (Selection, bool) {
	if !finite(width) || width <= 0 {
		panic(fmt.Errorf("%w: width must be positive, got %v", ErrInvalidGeometry, width))
	}
	fraction, ok := touch.Fraction()
	count := data.Len()
	if !ok || count == 0 {
		return Selection{}, false
	}
	bucketWidth := width / float64(count)
	index := int(math.Floor(fraction * width / bucketWidth))
	index = max(0, min(count-1, index))
	p := data.Point(index)
	return Selection{Label: p.Label, Value: p.Value, Index: index}, true
}

// NormalizeHeights scales every value by the dataset maximum so that the
// tallest bar is exactly 1. When the maximum is zero every height is zero.
// Negative values produce negative heights; clipping them is up to the
// renderer.
func NormalizeHeights(data Dataset) []float64 {
	heights := make([]float64, data.Len())
	maxValue := data.MaxValue()
	if maxValue == 0 {
		return heights
	}
	for i := range heights {
		heights[i] = data.Point(i).Value / maxValue
	}
	return heights
}

// LabelOffset returns the horizontal offset of the label box so that it stays
// centered on the touch point without leaving the chart. The left edge wins
// when the chart is too narrow to satisfy both.
func LabelOffset(fraction float64, g Geometry) float64 {
	raw := g.rawLabelOffset(fraction)
	if raw < g.leftEdge() {
		return g.leftEdge()
	}
	if raw > g.rightEdge() {
		return g.rightEdge()
	}
	return raw
}

// ArrowOffset returns how far the arrow under the label must move from the
// label's center to keep pointing at the touch while the label is pinned to
// an edge. It is zero whenever the label is not clamped.
func ArrowOffset(fraction float64, g Geometry) float64 {
	raw := g.rawLabelOffset(fraction)
	if raw < g.leftEdge() {
		return raw - g.leftEdge()
	}
	if raw > g.rightEdge() {
		return raw - g.rightEdge()
	}
	return 0
}

// Resolver computes everything a chart needs to draw one interaction frame
// for a fixed geometry.
type Resolver struct {
	geometry Geometry
}

// NewResolver validates g once so that later calls never have to.
func NewResolver(g Geometry) (*Resolver, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return &Resolver{geometry: g}, nil
}

// MustResolver is like NewResolver but panics on invalid geometry.
func MustResolver(g Geometry) *Resolver {
	r, err := NewResolver(g)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Resolver) Geometry() Geometry {
	return r.geometry
}

// Result is the complete output of one resolution.
type Result struct {
	Selection Selection
	// Selected is false when there is no touch or no data.
	Selected    bool
	Heights     []float64
	LabelOffset float64
	ArrowOffset float64
	// ShowValue is set while a touch is active; the chart shows the
	// selected value in place of its title.
	ShowValue bool
	// ShowLabel is set when the floating label box should be drawn.
	ShowLabel bool
}

// Resolve computes the result for data under touch.
func (r *Resolver) Resolve(data Dataset, touch Touch) Result {
	res := Result{
		Heights: NormalizeHeights(data),
	}
	res.Selection, res.Selected = SelectedIndex(data, touch, r.geometry.Width)
	fraction, active := touch.Fraction()
	if !active {
		return res
	}
	res.ShowValue = true
	res.ShowLabel = res.Selected && data.LabelsProvided()
	res.LabelOffset = LabelOffset(fraction, r.geometry)
	res.ArrowOffset = ArrowOffset(fraction, r.geometry)
	return res
}

// Highlighted reports whether bar i is the selected one.
func (r Result) Highlighted(i int) bool {
	return r.Selected && r.Selection.Index == i
}

// Headline returns the text for the chart header: the title while idle, or
// the selected value truncated to an integer while a touch is active.
func (r Result) Headline(title string) string {
	if !r.ShowValue {
		return title
	}
	v := math.Trunc(r.Selection.Value)
	if v == 0 {
		// Drop the sign of -0.
		v = 0
	}
	return strconv.FormatFloat(v, 'f', 0, 64)
}
