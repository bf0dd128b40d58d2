package resources

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"sync"

	"fyne.io/fyne/v2"

	"hourglass/internal/core/model"
	"hourglass/internal/ui/palette"
)

const (
	iconSize  = 64
	iconSteps = 16

	capTop      = 4
	bulbTop     = 8
	neckRow     = 31
	bulbBottom  = 55
	capBottom   = 59
	capInset    = 6
	neckHalf    = 2.0
	bulbHalf    = 24.0
	frameStroke = 1.5
	dimAlpha    = 0x66
)

var iconCache sync.Map

var frameColor = palette.RGBA(palette.For(model.ThemeDark).Subtle)

// IconState is the timer state an hourglass icon is drawn for.
type IconState struct {
	Mode      model.Mode
	LongBreak bool
	// Fraction of the interval still left, 1 when full.
	Fraction float64
	Urgency  float64
	// Dim draws the sand faded, used to show a paused timer.
	Dim bool
}

// Hourglass returns a PNG resource showing sand levels and urgency color for
// state. Fraction and urgency are quantized so the cache stays small.
func Hourglass(state IconState) (fyne.Resource, error) {
	fractionStep := quantize(state.Fraction)
	urgencyStep := quantize(state.Urgency)
	name := fmt.Sprintf("hourglass-%s-%t-%02d-%02d.png", state.Mode, state.LongBreak, fractionStep, urgencyStep)
	if state.Dim {
		name = "dim-" + name
	}

	if cached, ok := iconCache.Load(name); ok {
		return cached.(fyne.Resource), nil
	}

	sand := palette.RGBA(palette.Accent(state.Mode, state.LongBreak, float64(urgencyStep)/iconSteps))
	if state.Dim {
		sand = fade(sand, dimAlpha)
	}
	img := drawHourglass(float64(fractionStep)/iconSteps, sand)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode icon %s: %w", name, err)
	}

	resource := fyne.NewStaticResource(name, buf.Bytes())
	iconCache.Store(name, resource)
	return resource, nil
}

// MustHourglass returns an hourglass resource or panics on error.
func MustHourglass(state IconState) fyne.Resource {
	resource, err := Hourglass(state)
	if err != nil {
		panic(err)
	}
	return resource
}

// AppIcon returns the full, calm focus hourglass.
func AppIcon() fyne.Resource {
	return MustHourglass(IconState{Mode: model.ModeWork, Fraction: 1})
}

func drawHourglass(fraction float64, sand color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, iconSize, iconSize))
	bulbRows := neckRow - bulbTop + 1
	topSand := int(math.Round(fraction * float64(bulbRows)))
	bottomSand := bulbRows - topSand
	center := iconSize / 2.0

	for y := capTop; y <= capBottom; y++ {
		for x := 0; x < iconSize; x++ {
			if y < bulbTop || y > bulbBottom {
				if x >= capInset && x < iconSize-capInset {
					img.SetRGBA(x, y, frameColor)
				}
				continue
			}

			half := bulbHalfWidth(y)
			offset := math.Abs(float64(x) + 0.5 - center)
			switch {
			case offset > half:
				continue
			case offset > half-frameStroke:
				img.SetRGBA(x, y, frameColor)
			case y <= neckRow && y > neckRow-topSand:
				img.SetRGBA(x, y, sand)
			case y > neckRow && y > bulbBottom-bottomSand:
				img.SetRGBA(x, y, sand)
			}
		}
	}
	return img
}

func bulbHalfWidth(y int) float64 {
	span := float64(neckRow - bulbTop)
	if y <= neckRow {
		return neckHalf + (bulbHalf-neckHalf)*float64(neckRow-y)/span
	}
	return neckHalf + (bulbHalf-neckHalf)*float64(y-neckRow-1)/span
}

// fade returns c at alpha, premultiplied as image.RGBA expects.
func fade(c color.RGBA, alpha uint8) color.RGBA {
	scale := func(v uint8) uint8 {
		return uint8(uint16(v) * uint16(alpha) / 0xff)
	}
	return color.RGBA{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: alpha}
}

func quantize(value float64) int {
	if value <= 0 || math.IsNaN(value) {
		return 0
	}
	if value >= 1 {
		return iconSteps
	}
	return int(math.Round(value * iconSteps))
}
