package main

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"gioui.org/f32"
	"gioui.org/font/gofont"
	"gioui.org/io/input"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget/material"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.sr.ht/~whereswaldon/barchart/config"
	"git.sr.ht/~whereswaldon/barchart/interaction"
)

func TestLoadConfigFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.yaml")
	require.NoError(t, os.WriteFile(path, []byte("title: Sales\ndata: from-file.csv\n"), 0o600))

	cmd := newRootCommand()
	require.NoError(t, cmd.Flags().Parse([]string{"--data", "from-flag.csv", "--log-level", "debug"}))
	cfg, err := loadConfig(cmd, path, "from-flag.csv", "debug")
	require.NoError(t, err)
	assert.Equal(t, "Sales", cfg.Title)
	assert.Equal(t, "from-flag.csv", cfg.Data)
	assert.Equal(t, "debug", cfg.LogLevel)

	cmd = newRootCommand()
	cfg, err = loadConfig(cmd, path, "ignored.csv", "")
	require.NoError(t, err)
	assert.Equal(t, "from-file.csv", cfg.Data, "unset flags keep file values")

	cmd = newRootCommand()
	require.NoError(t, cmd.Flags().Parse([]string{"--log-level", "chatty"}))
	_, err = loadConfig(cmd, "", "", "chatty")
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func newTestContext() (C, *material.Theme) {
	th := material.NewTheme()
	th.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()), text.NoSystemFonts())
	gtx := layout.Context{
		Ops:         new(op.Ops),
		Metric:      unit.Metric{PxPerDp: 1, PxPerSp: 1},
		Constraints: layout.Exact(image.Pt(400, 600)),
	}
	return gtx, th
}

func TestBarChartLayout(t *testing.T) {
	gtx, th := newTestContext()
	cfg := config.Default()
	chart := NewChart(cfg)
	chart.SetData(interaction.FromValues(8, 23, 54))

	dims := chart.Layout(gtx, th)
	assert.Equal(t, image.Pt(180, 240), dims.Size)
	assert.Equal(t, 180, chart.width)
	assert.Equal(t, 180.0, chart.geometry.Width)
	assert.Len(t, chart.result.Heights, 3)
	assert.Equal(t, 1.0, chart.result.Heights[2])

	// New data after the first layout is resolved immediately.
	chart.SetData(interaction.FromValues(1, 2))
	assert.Equal(t, []float64{0.5, 1}, chart.result.Heights)

	chart.LayoutTable(gtx, th)
}

func TestBarChartFullWidth(t *testing.T) {
	gtx, th := newTestContext()
	cfg := config.Default()
	cfg.Form = config.Large
	chart := NewChart(cfg)
	dims := chart.Layout(gtx, th)
	assert.Equal(t, image.Pt(400, 120), dims.Size)
	assert.Equal(t, 400.0, chart.geometry.Width)
}

func TestBarChartPointer(t *testing.T) {
	var r input.Router
	gtx, th := newTestContext()
	gtx.Source = r.Source()
	chart := NewChart(config.Default())
	chart.SetData(interaction.FromValues(8, 23, 54))
	var changes []int
	chart.OnSelectionChanged = func(sel interaction.Selection) {
		changes = append(changes, sel.Index)
	}
	gtx.Ops.Reset()
	chart.Layout(gtx, th)
	r.Frame(gtx.Ops)

	// The chart is 180px wide, so each bar owns 60px.
	at := func(kind pointer.Kind, x, y float32) pointer.Event {
		return pointer.Event{
			Kind:     kind,
			Source:   pointer.Mouse,
			Buttons:  pointer.ButtonPrimary,
			Position: f32.Pt(x, y),
		}
	}

	r.Queue(at(pointer.Press, 10, 100))
	chart.Update(gtx)
	require.True(t, chart.result.Selected)
	assert.Equal(t, 0, chart.result.Selection.Index)
	assert.Equal(t, "8", chart.result.Headline(chart.cfg.Title))

	r.Queue(at(pointer.Move, 100, 100))
	chart.Update(gtx)
	assert.Equal(t, 1, chart.result.Selection.Index)

	// Dragging past the bottom edge leaves the area but keeps the drag.
	r.Queue(at(pointer.Move, 170, 300))
	chart.Update(gtx)
	require.True(t, chart.result.Selected)
	assert.Equal(t, 2, chart.result.Selection.Index)
	assert.True(t, chart.result.ShowValue)

	r.Queue(at(pointer.Release, 170, 300))
	chart.Update(gtx)
	assert.False(t, chart.result.Selected)
	assert.False(t, chart.result.ShowValue)
	assert.Equal(t, chart.cfg.Title, chart.result.Headline(chart.cfg.Title))
	assert.Equal(t, []int{0, 1, 2}, changes)

	// Hovering in and out without a press selects nothing.
	hover := func(x, y float32) pointer.Event {
		return pointer.Event{Kind: pointer.Move, Source: pointer.Mouse, Position: f32.Pt(x, y)}
	}
	r.Queue(hover(50, 50), hover(50, 400))
	chart.Update(gtx)
	assert.False(t, chart.result.Selected)
	assert.Equal(t, []int{0, 1, 2}, changes)
}
