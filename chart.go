package main

import (
	"image"
	"math"
	"strconv"

	"gioui.org/f32"
	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget/material"
	"gioui.org/x/component"
	"golang.org/x/exp/constraints"

	"git.sr.ht/~whereswaldon/barchart/config"
	"git.sr.ht/~whereswaldon/barchart/interaction"
	"git.sr.ht/~whereswaldon/barchart/render"
	"git.sr.ht/~whereswaldon/barchart/style"
)

// BarChart is an interactive bar chart. Pressing or dragging over it selects
// the bar under the pointer and shows its value; releasing returns it to the
// idle state.
type BarChart struct {
	cfg      config.Config
	palette  style.Palette
	classify style.Classifier

	session *interaction.Session
	result  interaction.Result
	// geometry is the label geometry, in pixels, that session's resolver was
	// built for.
	geometry interaction.Geometry
	// width is the pixel width of the touch area at the last layout.
	width int
	// pressed is set between a press and its release or cancel.
	pressed bool

	// OnSelectionChanged is called whenever a drag moves onto a different
	// bar. Hosts hang feedback such as haptics off it.
	OnSelectionChanged func(interaction.Selection)

	table component.GridState
}

func NewChart(cfg config.Config) *BarChart {
	return &BarChart{
		cfg:      cfg,
		palette:  cfg.Palette(),
		classify: cfg.Classifier(),
	}
}

// SetData replaces the data shown by the chart.
func (c *BarChart) SetData(data interaction.Dataset) {
	if c.session == nil {
		// Resolved against real geometry on the first layout.
		c.session = interaction.NewSession(nil, data)
		return
	}
	c.session.SetData(data)
	if c.width > 0 {
		c.result = c.session.Current()
	}
}

func (c *BarChart) data() interaction.Dataset {
	if c.session == nil {
		return interaction.Dataset{}
	}
	return c.session.Data()
}

// resize rebuilds the resolver when the chart's pixel geometry changes.
func (c *BarChart) resize(gtx C, width int) bool {
	g := interaction.Geometry{
		Width:          float64(width),
		LabelBoxWidth:  float64(gtx.Dp(unit.Dp(c.cfg.LabelBox.Width))),
		LabelBoxMargin: float64(gtx.Dp(unit.Dp(c.cfg.LabelBox.Margin))),
	}
	if c.session == nil {
		c.session = interaction.NewSession(nil, interaction.Dataset{})
	}
	if g == c.geometry && c.width == width {
		return true
	}
	r, err := interaction.NewResolver(g)
	if err != nil {
		// Nothing to lay out into yet.
		return false
	}
	c.geometry = g
	c.width = width
	c.session.SetResolver(r)
	c.result = c.session.Current()
	return true
}

func (c *BarChart) Update(gtx C) {
	if c.session == nil || c.width <= 0 {
		return
	}
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: c,
			Kinds:  pointer.Press | pointer.Drag | pointer.Release | pointer.Cancel | pointer.Leave,
		})
		if !ok {
			break
		}
		e, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		switch e.Kind {
		case pointer.Press, pointer.Drag:
			c.pressed = true
			var changed bool
			c.result, changed = c.session.Move(float64(e.Position.X) / float64(c.width))
			if changed && c.OnSelectionChanged != nil {
				c.OnSelectionChanged(c.result.Selection)
			}
		case pointer.Release, pointer.Cancel:
			c.pressed = false
			c.result = c.session.Release()
		case pointer.Leave:
			// A drag keeps its grab after leaving the chart.
			if !c.pressed {
				c.result = c.session.Release()
			}
		}
	}
}

// Layout draws the chart at its configured form size.
func (c *BarChart) Layout(gtx C, th *material.Theme) D {
	formW, formH, _ := c.cfg.Form.Size()
	size := image.Point{
		X: min(gtx.Dp(unit.Dp(formW)), gtx.Constraints.Max.X),
		Y: min(gtx.Dp(unit.Dp(formH)), gtx.Constraints.Max.Y),
	}
	if c.cfg.Form.FullWidth() {
		size.X = gtx.Constraints.Max.X
	}
	gtx.Constraints = layout.Exact(size)
	if !c.resize(gtx, size.X) {
		return D{Size: size}
	}
	c.Update(gtx)

	paint.FillShape(gtx.Ops, c.palette.Background, clip.RRect{
		Rect: image.Rectangle{Max: size},
		SE:   gtx.Dp(20), SW: gtx.Dp(20), NE: gtx.Dp(20), NW: gtx.Dp(20),
	}.Op(gtx.Ops))

	dims := layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			return layout.UniformInset(16).Layout(gtx, func(gtx C) D {
				l := material.Label(th, unit.Sp(20), c.result.Headline(c.cfg.Title))
				l.Color = c.palette.Text
				l.MaxLines = 1
				return l.Layout(gtx)
			})
		}),
		layout.Flexed(1, c.layoutBars),
		layout.Rigid(func(gtx C) D {
			return c.layoutFooter(gtx, th)
		}),
	)

	// The whole chart is the touch area so fractions match the bar layout.
	area := clip.Rect{Max: size}.Push(gtx.Ops)
	event.Op(gtx.Ops, c)
	area.Pop()
	return dims
}

func (c *BarChart) layoutBars(gtx C) D {
	size := gtx.Constraints.Max
	highlight := -1
	if c.result.Selected {
		highlight = c.result.Selection.Index
	}
	data := c.data()
	radius := gtx.Dp(4)
	for _, bar := range render.Layout(float64(size.X), float64(size.Y), c.result.Heights, highlight) {
		r := image.Rect(
			int(floor(bar.X)), int(floor(bar.Y)),
			int(ceil(bar.X+bar.W)), int(ceil(bar.Y+bar.H)),
		)
		if r.Empty() {
			continue
		}
		fillGradient(gtx.Ops, c.classify(data.Point(bar.Index)).Gradient(), r, min(radius, r.Dx()/2))
	}
	return D{Size: size}
}

func (c *BarChart) layoutFooter(gtx C, th *material.Theme) D {
	gtx.Constraints.Min.X = gtx.Constraints.Max.X
	if !c.result.ShowLabel {
		if !c.cfg.ShowsLegend() {
			return layout.Spacer{Height: 16}.Layout(gtx)
		}
		return layout.UniformInset(16).Layout(gtx, func(gtx C) D {
			l := material.H6(th, c.cfg.Legend)
			l.Color = c.palette.Legend
			return l.Layout(gtx)
		})
	}
	return layout.Inset{Top: 4, Bottom: 10}.Layout(gtx, func(gtx C) D {
		return c.layoutLabel(gtx, th)
	})
}

// layoutLabel draws the floating label under the touch point with an arrow
// pointing at the touch even when the box is pinned against an edge.
func (c *BarChart) layoutLabel(gtx C, th *material.Theme) D {
	arrow := gtx.Dp(6)
	boxW := int(c.geometry.LabelBoxWidth)
	gtx.Constraints.Min = image.Point{}

	l := material.Body1(th, c.result.Selection.Label)
	l.Color = c.palette.Background
	l.Alignment = text.Middle
	l.MaxLines = 1
	labelGtx := gtx
	labelGtx.Constraints = layout.Exact(image.Pt(boxW, gtx.Sp(22)))
	labelDims, labelCall := rec(labelGtx, l.Layout)
	boxH := max(labelDims.Size.Y, gtx.Sp(22))

	offset := op.Offset(image.Pt(int(floor(c.result.LabelOffset)), 0)).Push(gtx.Ops)
	tip := float32(c.geometry.LabelBoxWidth/2 + c.result.ArrowOffset)
	var p clip.Path
	p.Begin(gtx.Ops)
	p.MoveTo(f32.Pt(tip, 0))
	p.LineTo(f32.Pt(tip-float32(arrow), float32(arrow)))
	p.LineTo(f32.Pt(tip+float32(arrow), float32(arrow)))
	p.Close()
	paint.FillShape(gtx.Ops, c.palette.Accent, clip.Outline{Path: p.End()}.Op())

	box := op.Offset(image.Pt(0, arrow)).Push(gtx.Ops)
	paint.FillShape(gtx.Ops, c.palette.Accent, clip.UniformRRect(image.Rectangle{Max: image.Pt(boxW, boxH)}, gtx.Dp(4)).Op(gtx.Ops))
	labelCall.Add(gtx.Ops)
	box.Pop()
	offset.Pop()
	return D{Size: image.Pt(gtx.Constraints.Max.X, boxH+arrow)}
}

// LayoutTable lists every point, highlighting the selected one.
func (c *BarChart) LayoutTable(gtx C, th *material.Theme) D {
	data := c.data()
	table := component.Table(th, &c.table)
	table.HScrollbarStyle.Indicator.MinorWidth = 0
	table.HScrollbarStyle.Track.MinorPadding = 0
	const (
		colorCol = iota
		labelCol
		valueCol
		heightCol
		numCols
	)
	swatchColWidth := gtx.Dp(40)
	numberColWidth := gtx.Dp(90)
	labelColWidth := gtx.Constraints.Max.X - swatchColWidth - 2*numberColWidth - gtx.Dp(table.VScrollbarStyle.Width())
	rowHeight := gtx.Sp(20)
	return table.Layout(gtx, data.Len(), numCols,
		func(axis layout.Axis, index, constraint int) int {
			if axis == layout.Vertical {
				return min(constraint, rowHeight)
			}
			switch index {
			case colorCol:
				return min(constraint, swatchColWidth)
			case labelCol:
				return min(constraint, max(labelColWidth, 0))
			default:
				return min(constraint, numberColWidth)
			}
		},
		func(gtx C, col int) D {
			var l material.LabelStyle
			switch col {
			case colorCol:
				l = material.Body1(th, "")
			case labelCol:
				l = material.Body1(th, "Label")
			case valueCol:
				l = material.Body1(th, "Value")
				l.Alignment = text.End
			case heightCol:
				l = material.Body1(th, "Height")
				l.Alignment = text.End
			}
			l.Color = th.ContrastFg
			return layout.Background{}.Layout(gtx,
				func(gtx C) D {
					paint.FillShape(gtx.Ops, th.ContrastBg, clip.Rect{Max: gtx.Constraints.Max}.Op())
					return D{Size: gtx.Constraints.Min}
				},
				l.Layout,
			)
		},
		func(gtx C, row, col int) (dims D) {
			defer func() {
				dims.Size = gtx.Constraints.Constrain(dims.Size)
			}()
			point := data.Point(row)
			if c.result.Highlighted(row) {
				paint.FillShape(gtx.Ops, withAlpha(c.palette.Accent, 60), clip.Rect{Max: gtx.Constraints.Max}.Op())
			}
			return layout.UniformInset(2).Layout(gtx, func(gtx C) D {
				switch col {
				case colorCol:
					return layout.Center.Layout(gtx, func(gtx C) D {
						side := gtx.Dp(10)
						sz := image.Pt(side, side)
						paint.FillShape(gtx.Ops, c.classify(point).Gradient().End, clip.Rect{Max: sz}.Op())
						return D{Size: sz}
					})
				case labelCol:
					return material.Body2(th, point.Label).Layout(gtx)
				case valueCol:
					l := material.Body2(th, strconv.FormatFloat(point.Value, 'f', -1, 64))
					l.Alignment = text.End
					return l.Layout(gtx)
				case heightCol:
					var h float64
					if row < len(c.result.Heights) {
						h = c.result.Heights[row]
					}
					l := material.Body2(th, strconv.FormatFloat(h*100, 'f', 1, 64)+"%")
					l.Alignment = text.End
					return l.Layout(gtx)
				default:
					return D{Size: gtx.Constraints.Min}
				}
			})
		})
}

func rec(gtx C, w layout.Widget) (D, op.CallOp) {
	macro := op.Record(gtx.Ops)
	dims := w(gtx)
	call := macro.Stop()
	return dims, call
}

func ceil[T constraints.Integer | constraints.Float](a T) T {
	return T(math.Ceil(float64(a)))
}

func floor[T constraints.Integer | constraints.Float](a T) T {
	return T(math.Floor(float64(a)))
}
