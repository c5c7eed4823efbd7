package style_test

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.sr.ht/~whereswaldon/barchart/interaction"
	"git.sr.ht/~whereswaldon/barchart/style"
)

func TestParseCategory(t *testing.T) {
	t.Parallel()

	for _, c := range []style.Category{style.Orange, style.Blue, style.Green} {
		got, err := style.ParseCategory(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
	got, err := style.ParseCategory(" Blue ")
	require.NoError(t, err)
	assert.Equal(t, style.Blue, got)

	_, err = style.ParseCategory("bottle")
	assert.Error(t, err)
}

func TestByLabel(t *testing.T) {
	t.Parallel()

	classify := style.ByLabel(map[string]style.Category{"right": style.Green})
	assert.Equal(t, style.Green, classify(interaction.DataPoint{Label: "right"}))
	// Labels are matched exactly, never by substring.
	assert.Equal(t, style.Orange, classify(interaction.DataPoint{Label: "all right"}))
	assert.Equal(t, style.Blue, style.Uniform(style.Blue)(interaction.DataPoint{}))
}

func TestGradient(t *testing.T) {
	t.Parallel()

	g := style.Gradient{
		Start: color.NRGBA{R: 0, A: 0xff},
		End:   color.NRGBA{R: 200, A: 0xff},
	}
	assert.Equal(t, g.Start, g.At(0))
	assert.Equal(t, g.End, g.At(1))
	assert.Equal(t, g.End, g.At(2))
	assert.Equal(t, uint8(100), g.At(.5).R)
	assert.Equal(t, style.Orange.Gradient(), style.Category(99).Gradient())
}

func TestPalette(t *testing.T) {
	t.Parallel()

	assert.Equal(t, style.Dark, style.PaletteFor("DARK"))
	assert.Equal(t, style.Light, style.PaletteFor("light"))
	assert.Equal(t, style.Light, style.PaletteFor(""))
	assert.Equal(t, "#ff782c", style.Hex(style.Light.Accent))
}
