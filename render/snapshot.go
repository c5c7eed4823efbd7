package render

import (
	"fmt"
	"image"
	"io"

	"github.com/fogleman/gg"

	"git.sr.ht/~whereswaldon/barchart/interaction"
	"git.sr.ht/~whereswaldon/barchart/style"
)

const (
	headerHeight = 36
	footerHeight = 40
	labelHeight  = 22
	arrowSize    = 6
)

// Options describes one still frame of a chart.
type Options struct {
	Title  string
	Legend string
	// ShowLegend draws Legend in the footer when no label is showing.
	ShowLegend bool
	Width      int
	Height     int
	Data       interaction.Dataset
	Touch      interaction.Touch
	// LabelBoxWidth and LabelBoxMargin are used as given; zero is a valid
	// margin. [NewOptions] fills in the usual sizes.
	LabelBoxWidth  float64
	LabelBoxMargin float64
	Palette        style.Palette
	Classify       style.Classifier
}

// NewOptions returns options for an idle width x height image with the
// default label box and the light palette.
func NewOptions(width, height int) Options {
	return Options{
		Width:          width,
		Height:         height,
		Touch:          interaction.NoTouch,
		LabelBoxWidth:  interaction.DefaultLabelBoxWidth,
		LabelBoxMargin: interaction.DefaultLabelBoxMargin,
		Palette:        style.Light,
	}
}

func (o Options) geometry() interaction.Geometry {
	return interaction.Geometry{
		Width:          float64(o.Width),
		LabelBoxWidth:  o.LabelBoxWidth,
		LabelBoxMargin: o.LabelBoxMargin,
	}
}

// Draw renders the chart as it looks under opts.Touch.
func Draw(opts Options) (image.Image, interaction.Result, error) {
	if opts.Height <= headerHeight+footerHeight {
		return nil, interaction.Result{}, fmt.Errorf("%w: height %d leaves no room for bars", interaction.ErrInvalidGeometry, opts.Height)
	}
	r, err := interaction.NewResolver(opts.geometry())
	if err != nil {
		return nil, interaction.Result{}, err
	}
	if opts.Classify == nil {
		opts.Classify = style.Uniform(style.Orange)
	}
	res := r.Resolve(opts.Data, opts.Touch)

	w, h := float64(opts.Width), float64(opts.Height)
	dc := gg.NewContext(opts.Width, opts.Height)
	dc.SetColor(opts.Palette.Background)
	dc.Clear()

	dc.SetColor(opts.Palette.Text)
	dc.DrawStringAnchored(res.Headline(opts.Title), Padding, headerHeight/2, 0, 0.5)

	highlight := -1
	if res.Selected {
		highlight = res.Selection.Index
	}
	plotHeight := h - headerHeight - footerHeight
	for _, bar := range Layout(w, plotHeight, res.Heights, highlight) {
		if bar.H <= 0 {
			continue
		}
		y := bar.Y + headerHeight
		gradient := opts.Classify(opts.Data.Point(bar.Index)).Gradient()
		fill := gg.NewLinearGradient(0, y+bar.H, 0, y)
		fill.AddColorStop(0, gradient.Start)
		fill.AddColorStop(1, gradient.End)
		dc.SetFillStyle(fill)
		dc.DrawRoundedRectangle(bar.X, y, bar.W, bar.H, min(4, bar.W/2))
		dc.Fill()
	}

	footerY := h - footerHeight
	switch {
	case res.ShowLabel:
		g := r.Geometry()
		boxY := footerY + (footerHeight-labelHeight)/2 + arrowSize/2
		center := res.LabelOffset + g.LabelBoxWidth/2
		tip := center + res.ArrowOffset

		dc.SetColor(opts.Palette.Accent)
		dc.MoveTo(tip, boxY-arrowSize)
		dc.LineTo(tip-arrowSize, boxY)
		dc.LineTo(tip+arrowSize, boxY)
		dc.ClosePath()
		dc.Fill()
		dc.DrawRoundedRectangle(res.LabelOffset, boxY, g.LabelBoxWidth, labelHeight, 4)
		dc.Fill()

		dc.SetColor(opts.Palette.Background)
		dc.DrawStringAnchored(res.Selection.Label, center, boxY+labelHeight/2, 0.5, 0.5)
	case opts.ShowLegend && opts.Legend != "":
		dc.SetColor(opts.Palette.Legend)
		dc.DrawStringAnchored(opts.Legend, Padding, footerY+footerHeight/2, 0, 0.5)
	}
	return dc.Image(), res, nil
}

// Snapshot draws the chart and writes it to out as PNG.
func Snapshot(out io.Writer, opts Options) (interaction.Result, error) {
	img, res, err := Draw(opts)
	if err != nil {
		return res, err
	}
	dc := gg.NewContextForImage(img)
	if err := dc.EncodePNG(out); err != nil {
		return res, fmt.Errorf("failed encoding snapshot: %w", err)
	}
	return res, nil
}
