// Package render lays out and draws bar charts independently of any UI
// toolkit. Hosts use [Layout] to place bars and [Snapshot] to produce
// images.
package render

const (
	// Padding surrounds the row of bars on the left, right and top.
	Padding = 10
	// inset is subtracted from the row width before sizing bars.
	inset = 22
	// highlightWidth and highlightHeight scale the bar under the pointer.
	highlightWidth  = 1.5
	highlightHeight = 1.1
)

// Rect is an axis-aligned rectangle with a top-left origin.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Bar is one laid out bar.
type Bar struct {
	Rect
	Index int
	// Height is the normalized height the bar was sized from.
	Height      float64
	Highlighted bool
}

// Layout places bars for the normalized heights inside a width x height
// area. Bars are bottom aligned and centered as a group. The bar at index
// highlight grows from its bottom center; pass -1 for none. Negative heights
// are drawn as empty bars.
func Layout(width, height float64, heights []float64, highlight int) []Bar {
	count := len(heights)
	if count == 0 || width <= 0 || height <= 0 {
		return nil
	}
	usable := max(width-inset, 0)
	cellWidth := usable / (float64(count) * 1.5)
	spacing := usable / float64(count*3)
	rowWidth := float64(count)*cellWidth + float64(count-1)*spacing
	left := (width - rowWidth) / 2
	maxBar := max(height-Padding, 0)

	bars := make([]Bar, count)
	for i, h := range heights {
		w := cellWidth
		barHeight := max(h, 0) * maxBar
		x := left + float64(i)*(cellWidth+spacing)
		highlighted := i == highlight
		if highlighted {
			w *= highlightWidth
			barHeight *= highlightHeight
			x -= (w - cellWidth) / 2
		}
		barHeight = min(barHeight, height)
		bars[i] = Bar{
			Rect: Rect{
				X: x,
				Y: height - barHeight,
				W: w,
				H: barHeight,
			},
			Index:       i,
			Height:      h,
			Highlighted: highlighted,
		}
	}
	return bars
}
