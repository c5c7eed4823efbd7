package interaction_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.sr.ht/~whereswaldon/barchart/interaction"
)

func TestTracker(t *testing.T) {
	t.Parallel()

	var tr interaction.Tracker
	_, ok := tr.Last()
	assert.False(t, ok)

	assert.False(t, tr.Observe(interaction.Selection{}, false))
	assert.True(t, tr.Observe(interaction.Selection{Index: 0}, true))
	assert.False(t, tr.Observe(interaction.Selection{Index: 0}, true))
	assert.True(t, tr.Observe(interaction.Selection{Index: 2}, true))
	assert.False(t, tr.Observe(interaction.Selection{}, false))

	last, ok := tr.Last()
	assert.True(t, ok)
	assert.Equal(t, 2, last)

	tr.Reset()
	assert.True(t, tr.Observe(interaction.Selection{Index: 2}, true))
}

func TestSessionLifecycle(t *testing.T) {
	t.Parallel()

	s := interaction.NewSession(interaction.MustResolver(interaction.NewGeometry(300)), quarters)
	assert.Equal(t, interaction.Idle, s.Phase())

	res, changed := s.Move(0.1)
	assert.True(t, changed)
	assert.Equal(t, interaction.Dragging, s.Phase())
	require.True(t, res.Selected)
	assert.Equal(t, 0, res.Selection.Index)

	_, changed = s.Move(0.2)
	assert.False(t, changed, "still inside the first bucket")

	res, changed = s.Move(0.7)
	assert.True(t, changed)
	assert.Equal(t, 2, res.Selection.Index)
	assert.Equal(t, res, s.Current())

	idle := s.Release()
	assert.Equal(t, interaction.Idle, s.Phase())
	assert.False(t, idle.Selected)
	assert.False(t, idle.ShowValue)

	_, changed = s.Move(0.7)
	assert.True(t, changed, "a new drag starts a fresh selection")
}

func TestSessionsAreIndependent(t *testing.T) {
	t.Parallel()

	r := interaction.MustResolver(interaction.NewGeometry(300))
	a := interaction.NewSession(r, quarters)
	b := interaction.NewSession(r, interaction.FromValues(1, 2, 3, 4))

	a.Move(0.9)
	assert.Equal(t, interaction.Dragging, a.Phase())
	assert.Equal(t, interaction.Idle, b.Phase())

	res, _ := b.Move(0.9)
	assert.Equal(t, 3, res.Selection.Index)
	assert.Equal(t, 2, a.Current().Selection.Index)
}

func TestSessionSetData(t *testing.T) {
	t.Parallel()

	s := interaction.NewSession(interaction.MustResolver(interaction.NewGeometry(300)), quarters)
	s.Move(0.1)
	s.SetData(quarters.Append(interaction.DataPoint{Label: "Q4", Value: 32}))
	assert.Equal(t, 4, s.Data().Len())

	res, changed := s.Move(0.1)
	assert.True(t, changed)
	assert.Equal(t, 0, res.Selection.Index)
	assert.Equal(t, 3, quarters.Len(), "appending must not modify the original dataset")
}

func TestDataset(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0.0, interaction.Dataset{}.MaxValue())
	assert.False(t, interaction.Dataset{}.LabelsProvided())
	assert.False(t, interaction.FromValues(1, 2).LabelsProvided())
	assert.True(t, quarters.LabelsProvided())
	assert.Equal(t, 54.0, quarters.MaxValue())
	assert.Equal(t, []string{"Q1", "Q2", "Q3"}, quarters.Labels())
	assert.Equal(t, []float64{8, 23, 54}, quarters.Values())

	points := quarters.Points()
	points[0].Value = 1000
	assert.Equal(t, 8.0, quarters.Point(0).Value)
}

func TestTouch(t *testing.T) {
	t.Parallel()

	_, ok := interaction.NoTouch.Fraction()
	assert.False(t, ok)
	assert.Equal(t, "no touch", interaction.NoTouch.String())

	f, ok := interaction.TouchAt(1.5).Fraction()
	assert.True(t, ok)
	assert.Equal(t, 1.0, f)
	assert.Equal(t, "touch at 0.250", interaction.TouchAt(0.25).String())
}
