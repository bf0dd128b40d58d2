package timer

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"hourglass/internal/core/model"
	"hourglass/internal/ui/palette"
)

// appTheme pins fyne's default theme to one variant and takes its base
// colors from the palette.
type appTheme struct {
	fyne.Theme
	variant fyne.ThemeVariant
	colors  palette.Palette
}

// NewTheme returns the fyne theme for themeName.
func NewTheme(themeName model.Theme) fyne.Theme {
	variant := theme.VariantDark
	if themeName == model.ThemeLight {
		variant = theme.VariantLight
	}
	return &appTheme{
		Theme:   theme.DefaultTheme(),
		variant: variant,
		colors:  palette.For(themeName),
	}
}

func (current *appTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameBackground:
		return palette.RGBA(current.colors.Background)
	case theme.ColorNameForeground:
		return palette.RGBA(current.colors.Foreground)
	case theme.ColorNamePrimary:
		return palette.RGBA(palette.Accent(model.ModeWork, false, 0))
	default:
		return current.Theme.Color(name, current.variant)
	}
}
