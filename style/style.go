// Package style picks bar colours. Bars are coloured by an explicit
// category rather than by inspecting their label text.
package style

import (
	"fmt"
	"image/color"
	"strings"

	"git.sr.ht/~whereswaldon/barchart/interaction"
)

// Category selects the gradient a bar is filled with.
type Category uint8

const (
	Orange Category = iota
	Blue
	Green
)

func (c Category) String() string {
	switch c {
	case Orange:
		return "orange"
	case Blue:
		return "blue"
	case Green:
		return "green"
	default:
		return "unknown"
	}
}

// ParseCategory is the inverse of [Category.String].
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "orange", "":
		return Orange, nil
	case "blue":
		return Blue, nil
	case "green":
		return Green, nil
	default:
		return Orange, fmt.Errorf("unknown category %q", s)
	}
}

// Gradient runs from the bottom of a bar to its top.
type Gradient struct {
	Start, End color.NRGBA
}

// At interpolates the gradient; t of 0 is the bottom of the bar.
func (g Gradient) At(t float64) color.NRGBA {
	t = max(0, min(1, t))
	lerp := func(a, b uint8) uint8 {
		return uint8(float64(a) + (float64(b)-float64(a))*t + .5)
	}
	return color.NRGBA{
		R: lerp(g.Start.R, g.End.R),
		G: lerp(g.Start.G, g.End.G),
		B: lerp(g.Start.B, g.End.B),
		A: lerp(g.Start.A, g.End.A),
	}
}

var gradients = map[Category]Gradient{
	Orange: {Start: color.NRGBA{R: 0xff, G: 0x78, B: 0x2c, A: 0xff}, End: color.NRGBA{R: 0xff, G: 0xc5, B: 0x4c, A: 0xff}},
	Blue:   {Start: color.NRGBA{R: 0x30, G: 0x6c, B: 0xe8, A: 0xff}, End: color.NRGBA{R: 0x4c, G: 0xc4, B: 0xff, A: 0xff}},
	Green:  {Start: color.NRGBA{R: 0x2a, G: 0x9d, B: 0x5c, A: 0xff}, End: color.NRGBA{R: 0x86, G: 0xe0, B: 0x6b, A: 0xff}},
}

func (c Category) Gradient() Gradient {
	if g, ok := gradients[c]; ok {
		return g
	}
	return gradients[Orange]
}

// Classifier assigns a category to each point.
type Classifier func(p interaction.DataPoint) Category

// Uniform colours every bar the same.
func Uniform(c Category) Classifier {
	return func(interaction.DataPoint) Category { return c }
}

// ByLabel looks a point's label up in an explicit table, falling back to
// Orange for labels that are not listed.
func ByLabel(table map[string]Category) Classifier {
	return func(p interaction.DataPoint) Category {
		if c, ok := table[p.Label]; ok {
			return c
		}
		return Orange
	}
}

// Palette holds the non-bar colours of a chart.
type Palette struct {
	Background color.NRGBA
	Text       color.NRGBA
	Legend     color.NRGBA
	Accent     color.NRGBA
}

var (
	Light = Palette{
		Background: color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		Text:       color.NRGBA{A: 0xff},
		Legend:     color.NRGBA{R: 0x8c, G: 0x8c, B: 0x8c, A: 0xff},
		Accent:     color.NRGBA{R: 0xff, G: 0x78, B: 0x2c, A: 0xff},
	}
	Dark = Palette{
		Background: color.NRGBA{R: 0x24, G: 0x24, B: 0x24, A: 0xff},
		Text:       color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		Legend:     color.NRGBA{R: 0xb4, G: 0xb4, B: 0xb4, A: 0xff},
		Accent:     color.NRGBA{R: 0xff, G: 0x9f, B: 0x4c, A: 0xff},
	}
)

// PaletteFor returns Dark for "dark" and Light otherwise.
func PaletteFor(theme string) Palette {
	if strings.EqualFold(theme, "dark") {
		return Dark
	}
	return Light
}

// Hex formats c as #rrggbb, the form terminal styling libraries accept.
func Hex(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
