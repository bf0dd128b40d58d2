package resources

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hourglass/internal/core/model"
	"hourglass/internal/ui/palette"
)

func decode(t *testing.T, state IconState) image.Image {
	t.Helper()
	resource, err := Hourglass(state)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(resource.Content()))
	require.NoError(t, err)
	return img
}

func alphaAt(img image.Image, x, y int) uint32 {
	_, _, _, a := img.At(x, y).RGBA()
	return a
}

func TestHourglass_Size(t *testing.T) {
	img := decode(t, IconState{Mode: model.ModeWork, Fraction: 0.5})
	assert.Equal(t, iconSize, img.Bounds().Dx())
	assert.Equal(t, iconSize, img.Bounds().Dy())
}

func TestHourglass_SandMovesDown(t *testing.T) {
	full := decode(t, IconState{Mode: model.ModeWork, Fraction: 1})
	assert.NotZero(t, alphaAt(full, 32, 30), "top bulb holds sand at the start")
	assert.Zero(t, alphaAt(full, 32, 54), "bottom bulb is empty at the start")

	empty := decode(t, IconState{Mode: model.ModeWork, Fraction: 0})
	assert.Zero(t, alphaAt(empty, 32, 30))
	assert.NotZero(t, alphaAt(empty, 32, 54))
}

func TestHourglass_SandUsesAccentColor(t *testing.T) {
	img := decode(t, IconState{Mode: model.ModeBreak, Fraction: 1, Urgency: 1})
	want := palette.RGBA(palette.Accent(model.ModeBreak, false, 1))

	r, g, b, _ := img.At(32, 30).RGBA()
	assert.Equal(t, uint32(want.R), r>>8)
	assert.Equal(t, uint32(want.G), g>>8)
	assert.Equal(t, uint32(want.B), b>>8)
}

func TestHourglass_CachesQuantizedStates(t *testing.T) {
	first, err := Hourglass(IconState{Mode: model.ModeWork, Fraction: 0.501, Urgency: 0.2})
	require.NoError(t, err)
	second, err := Hourglass(IconState{Mode: model.ModeWork, Fraction: 0.502, Urgency: 0.201})
	require.NoError(t, err)
	assert.Same(t, first, second)

	other, err := Hourglass(IconState{Mode: model.ModeBreak, Fraction: 0.501, Urgency: 0.2})
	require.NoError(t, err)
	assert.NotEqual(t, first.Name(), other.Name())
}

func TestHourglass_DimFadesSand(t *testing.T) {
	bright := decode(t, IconState{Mode: model.ModeWork, Fraction: 1})
	dim := decode(t, IconState{Mode: model.ModeWork, Fraction: 1, Dim: true})

	assert.Equal(t, uint32(0xffff), alphaAt(bright, 32, 30))
	assert.Equal(t, uint32(dimAlpha)*0x101, alphaAt(dim, 32, 30))
	assert.Equal(t, alphaAt(bright, 8, 5), alphaAt(dim, 8, 5), "frame is not faded")
}

func TestAppIcon(t *testing.T) {
	icon := AppIcon()
	require.NotNil(t, icon)
	assert.Equal(t, "hourglass-work-false-16-00.png", icon.Name())
}

func TestQuantize(t *testing.T) {
	assert.Equal(t, 0, quantize(-1))
	assert.Equal(t, 0, quantize(0))
	assert.Equal(t, 8, quantize(0.5))
	assert.Equal(t, iconSteps, quantize(1))
	assert.Equal(t, iconSteps, quantize(4))
}
