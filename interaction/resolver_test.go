package interaction_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.sr.ht/~whereswaldon/barchart/interaction"
)

var quarters = interaction.NewDataset(
	interaction.DataPoint{Label: "Q1", Value: 8},
	interaction.DataPoint{Label: "Q2", Value: 23},
	interaction.DataPoint{Label: "Q3", Value: 54},
)

func TestSelectedIndex(t *testing.T) {
	t.Parallel()

	type testcase struct {
		name      string
		touch     interaction.Touch
		wantOK    bool
		wantIndex int
		wantValue float64
	}
	for _, tc := range []testcase{
		{name: "no touch", touch: interaction.NoTouch},
		{name: "left edge", touch: interaction.TouchAt(0), wantOK: true, wantIndex: 0, wantValue: 8},
		{name: "just past first bucket", touch: interaction.TouchAt(0.34), wantOK: true, wantIndex: 1, wantValue: 23},
		{name: "right edge", touch: interaction.TouchAt(0.999), wantOK: true, wantIndex: 2, wantValue: 54},
		{name: "exactly one", touch: interaction.TouchAt(1), wantOK: true, wantIndex: 2, wantValue: 54},
		{name: "slightly negative", touch: interaction.TouchAt(-0.0001), wantOK: true, wantIndex: 0, wantValue: 8},
		{name: "far right", touch: interaction.TouchAt(3), wantOK: true, wantIndex: 2, wantValue: 54},
		{name: "not a number", touch: interaction.TouchAt(math.NaN()), wantOK: true, wantIndex: 0, wantValue: 8},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			sel, ok := interaction.SelectedIndex(quarters, tc.touch, 300)
			require.Equal(t, tc.wantOK, ok)
			if !ok {
				return
			}
			assert.Equal(t, tc.wantIndex, sel.Index)
			assert.Equal(t, tc.wantValue, sel.Value)
			assert.Equal(t, quarters.Point(tc.wantIndex).Label, sel.Label)
		})
	}
}

func TestSelectedIndexEmpty(t *testing.T) {
	t.Parallel()

	_, ok := interaction.SelectedIndex(interaction.Dataset{}, interaction.TouchAt(0.5), 300)
	assert.False(t, ok)
}

func TestSelectedIndexInvalidWidth(t *testing.T) {
	t.Parallel()

	for _, width := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		assert.Panics(t, func() {
			interaction.SelectedIndex(quarters, interaction.TouchAt(0.5), width)
		}, "width %v", width)
	}
}

func TestSelectedIndexBoundsAndMonotonic(t *testing.T) {
	t.Parallel()

	const steps = 997
	for count := 1; count <= 24; count++ {
		data := interaction.FromValues(make([]float64, count)...)
		prev := 0
		for step := 0; step < steps; step++ {
			fraction := float64(step) / steps
			sel, ok := interaction.SelectedIndex(data, interaction.TouchAt(fraction), 320)
			require.True(t, ok)
			require.GreaterOrEqual(t, sel.Index, 0)
			require.Less(t, sel.Index, count)
			require.GreaterOrEqual(t, sel.Index, prev, "count %d fraction %v", count, fraction)
			prev = sel.Index
		}
	}
}

func TestNormalizeHeights(t *testing.T) {
	t.Parallel()

	values := []float64{8, 23, 54, 32, 12, 37, 7}
	heights := interaction.NormalizeHeights(interaction.FromValues(values...))
	require.Len(t, heights, len(values))
	for i, v := range values {
		assert.Equal(t, v/54, heights[i])
	}
	assert.Equal(t, 1.0, heights[2])

	assert.Empty(t, interaction.NormalizeHeights(interaction.Dataset{}))
	assert.Equal(t, []float64{0, 0}, interaction.NormalizeHeights(interaction.FromValues(0, 0)))
	assert.Equal(t, []float64{0, 0}, interaction.NormalizeHeights(interaction.FromValues(-3, -1)))
	assert.Equal(t, []float64{-0.5, 1}, interaction.NormalizeHeights(interaction.FromValues(-2, 4)))
}

func TestLabelOffset(t *testing.T) {
	t.Parallel()

	g := interaction.NewGeometry(300)
	assert.Equal(t, 10.0, interaction.LabelOffset(0.02, g))
	assert.Equal(t, 190.0, interaction.LabelOffset(0.98, g))
	assert.Equal(t, 100.0, interaction.LabelOffset(0.5, g))

	assert.InDelta(t, -54.0, interaction.ArrowOffset(0.02, g), 1e-9)
	assert.InDelta(t, 54.0, interaction.ArrowOffset(0.98, g), 1e-9)
	assert.Equal(t, 0.0, interaction.ArrowOffset(0.5, g))
}

func TestLabelOffsetBounds(t *testing.T) {
	t.Parallel()

	for _, width := range []float64{121, 180, 300, 360, 1024} {
		g := interaction.NewGeometry(width)
		lo := g.LabelBoxMargin
		hi := width - g.LabelBoxWidth - g.LabelBoxMargin
		for step := 0; step <= 1000; step++ {
			fraction := float64(step) / 1000
			offset := interaction.LabelOffset(fraction, g)
			require.GreaterOrEqual(t, offset, lo)
			require.LessOrEqual(t, offset, hi)

			arrow := interaction.ArrowOffset(fraction, g)
			raw := fraction*width - g.LabelBoxWidth/2
			require.InDelta(t, raw, offset+arrow, 1e-9, "arrow must point at the touch")
			require.GreaterOrEqual(t, arrow, -(g.LabelBoxWidth/2 + g.LabelBoxMargin))
		}
	}
}

func TestNewResolver(t *testing.T) {
	t.Parallel()

	_, err := interaction.NewResolver(interaction.NewGeometry(0))
	require.Error(t, err)
	assert.True(t, errors.Is(err, interaction.ErrInvalidGeometry))

	_, err = interaction.NewResolver(interaction.Geometry{Width: 100, LabelBoxWidth: -1})
	assert.ErrorIs(t, err, interaction.ErrInvalidGeometry)

	assert.Panics(t, func() { interaction.MustResolver(interaction.NewGeometry(-5)) })

	r, err := interaction.NewResolver(interaction.NewGeometry(300))
	require.NoError(t, err)
	assert.Equal(t, 300.0, r.Geometry().Width)
}

func TestResolve(t *testing.T) {
	t.Parallel()

	r := interaction.MustResolver(interaction.NewGeometry(300))

	idle := r.Resolve(quarters, interaction.NoTouch)
	assert.False(t, idle.Selected)
	assert.False(t, idle.ShowValue)
	assert.False(t, idle.ShowLabel)
	assert.Equal(t, "Model 3 sales", idle.Headline("Model 3 sales"))
	assert.Len(t, idle.Heights, 3)

	res := r.Resolve(quarters, interaction.TouchAt(0.5))
	require.True(t, res.Selected)
	assert.Equal(t, 1, res.Selection.Index)
	assert.True(t, res.ShowValue)
	assert.True(t, res.ShowLabel)
	assert.True(t, res.Highlighted(1))
	assert.False(t, res.Highlighted(0))
	assert.Equal(t, 100.0, res.LabelOffset)
	assert.Equal(t, 0.0, res.ArrowOffset)
	assert.Equal(t, "23", res.Headline("Model 3 sales"))

	// Identical inputs must give identical outputs.
	assert.Equal(t, res, r.Resolve(quarters, interaction.TouchAt(0.5)))

	unlabelled := r.Resolve(interaction.FromValues(1, 2.9), interaction.TouchAt(0.9))
	assert.True(t, unlabelled.Selected)
	assert.False(t, unlabelled.ShowLabel)
	assert.Equal(t, "2", unlabelled.Headline("title"))

	empty := r.Resolve(interaction.Dataset{}, interaction.TouchAt(0.5))
	assert.False(t, empty.Selected)
	assert.Empty(t, empty.Heights)
}

func TestHeadlineTruncates(t *testing.T) {
	t.Parallel()

	r := interaction.MustResolver(interaction.NewGeometry(300))
	for _, tc := range []struct {
		value float64
		want  string
	}{
		{value: 54, want: "54"},
		{value: 2.9, want: "2"},
		{value: -7.9, want: "-7"},
		{value: -0.5, want: "0"},
		{value: 1e20, want: "100000000000000000000"},
		{value: -3e19, want: "-30000000000000000000"},
	} {
		res := r.Resolve(interaction.FromValues(tc.value), interaction.TouchAt(0.5))
		require.True(t, res.ShowValue)
		assert.Equal(t, tc.want, res.Headline("title"), "value %v", tc.value)
	}
}
