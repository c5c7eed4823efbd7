package interaction

import (
	"errors"
	"fmt"
	"math"
)

const (
	// DefaultLabelBoxWidth is the width of the floating value label.
	DefaultLabelBoxWidth = 100
	// DefaultLabelBoxMargin is the minimum gap kept between the label and
	// either edge of the chart.
	DefaultLabelBoxMargin = 10
)

// ErrInvalidGeometry is returned (or panicked with) when a chart is laid out
// with a non-positive width or nonsensical label box dimensions. It always
// indicates a layout bug in the caller.
var ErrInvalidGeometry = errors.New("invalid chart geometry")

// Geometry holds the layout constants needed to place the label for a single
// render pass.
type Geometry struct {
	Width          float64
	LabelBoxWidth  float64
	LabelBoxMargin float64
}

// NewGeometry returns a geometry of the given width using the default label
// box dimensions.
func NewGeometry(width float64) Geometry {
	return Geometry{
		Width:          width,
		LabelBoxWidth:  DefaultLabelBoxWidth,
		LabelBoxMargin: DefaultLabelBoxMargin,
	}
}

func (g Geometry) Validate() error {
	switch {
	case !finite(g.Width) || g.Width <= 0:
		return fmt.Errorf("%w: width must be positive, got %v", ErrInvalidGeometry, g.Width)
	case !finite(g.LabelBoxWidth) || g.LabelBoxWidth < 0:
		return fmt.Errorf("%w: label box width must not be negative, got %v", ErrInvalidGeometry, g.LabelBoxWidth)
	case !finite(g.LabelBoxMargin) || g.LabelBoxMargin < 0:
		return fmt.Errorf("%w: label box margin must not be negative, got %v", ErrInvalidGeometry, g.LabelBoxMargin)
	}
	return nil
}

// leftEdge and rightEdge bound the label box's offset.
func (g Geometry) leftEdge() float64 {
	return g.LabelBoxMargin
}

func (g Geometry) rightEdge() float64 {
	return g.Width - g.LabelBoxWidth - g.LabelBoxMargin
}

// rawLabelOffset centers the label box on the touch point.
func (g Geometry) rawLabelOffset(fraction float64) float64 {
	return clampFraction(fraction)*g.Width - g.LabelBoxWidth/2
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// clampFraction forces a touch fraction into [0,1]. NaN becomes zero.
func clampFraction(f float64) float64 {
	if math.IsNaN(f) || f < 0 {
		return 0
	}
	return min(f, 1)
}
