package main

import (
	"image"
	"image/color"

	"gioui.org/f32"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"

	"git.sr.ht/~whereswaldon/barchart/style"
)

// fillGradient fills r with g, running from the bottom of r to its top.
func fillGradient(ops *op.Ops, g style.Gradient, r image.Rectangle, radius int) {
	defer clip.UniformRRect(r, radius).Push(ops).Pop()
	paint.LinearGradientOp{
		Stop1:  f32.Pt(0, float32(r.Max.Y)),
		Color1: g.Start,
		Stop2:  f32.Pt(0, float32(r.Min.Y)),
		Color2: g.End,
	}.Add(ops)
	paint.PaintOp{}.Add(ops)
}

func withAlpha(c color.NRGBA, a uint8) color.NRGBA {
	c.A = a
	return c
}
