// Package palette maps timer state to colors shared by the desktop and
// terminal renderers.
package palette

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"hourglass/internal/core/model"
)

// Palette holds the base colors for a theme.
type Palette struct {
	Background colorful.Color
	Surface    colorful.Color
	Foreground colorful.Color
	Subtle     colorful.Color
}

var (
	darkPalette = Palette{
		Background: mustHex("#1e1e2e"),
		Surface:    mustHex("#313244"),
		Foreground: mustHex("#cdd6f4"),
		Subtle:     mustHex("#7f849c"),
	}
	lightPalette = Palette{
		Background: mustHex("#eff1f5"),
		Surface:    mustHex("#ccd0da"),
		Foreground: mustHex("#4c4f69"),
		Subtle:     mustHex("#8c8fa1"),
	}

	focusCalm  = mustHex("#89b4fa")
	breakCalm  = mustHex("#a6e3a1")
	longCalm   = mustHex("#94e2d5")
	urgentWarm = mustHex("#fab387")
	urgentHot  = mustHex("#f38ba8")
)

// For returns the palette for theme.
func For(theme model.Theme) Palette {
	if theme == model.ThemeLight {
		return lightPalette
	}
	return darkPalette
}

// Accent returns the sand color for mode at the given urgency in [0,1].
// Calm intervals start in the mode color and heat up through orange to red.
func Accent(mode model.Mode, longBreak bool, urgency float64) colorful.Color {
	urgency = clamp(urgency)
	calm := focusCalm
	if mode == model.ModeBreak {
		calm = breakCalm
		if longBreak {
			calm = longCalm
		}
	}

	if urgency <= 0.5 {
		return calm.BlendLab(urgentWarm, urgency*2).Clamped()
	}
	return urgentWarm.BlendLab(urgentHot, (urgency-0.5)*2).Clamped()
}

// RGBA converts c to an opaque color.RGBA.
func RGBA(c colorful.Color) color.RGBA {
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// Hex returns c as #rrggbb.
func Hex(c colorful.Color) string {
	return c.Hex()
}

func clamp(value float64) float64 {
	switch {
	case value < 0:
		return 0
	case value > 1:
		return 1
	default:
		return value
	}
}

func mustHex(value string) colorful.Color {
	c, err := colorful.Hex(value)
	if err != nil {
		panic(err)
	}
	return c
}
