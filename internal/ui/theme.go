package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// StaggerGridTheme wraps the default Fyne theme with compact sizes and an
// optional fixed light or dark variant.
type StaggerGridTheme struct {
	base         fyne.Theme
	variant      fyne.ThemeVariant
	followSystem bool
}

// NewStaggerGridTheme creates a theme that follows the system variant.
func NewStaggerGridTheme() *StaggerGridTheme {
	return &StaggerGridTheme{base: theme.DefaultTheme(), followSystem: true}
}

// SetPreference applies an AppConfig theme name: "light", "dark" or
// anything else for the system variant.
func (t *StaggerGridTheme) SetPreference(name string) {
	switch name {
	case "light":
		t.variant, t.followSystem = theme.VariantLight, false
	case "dark":
		t.variant, t.followSystem = theme.VariantDark, false
	default:
		t.followSystem = true
	}
}

func (t *StaggerGridTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if !t.followSystem {
		variant = t.variant
	}
	return t.base.Color(name, variant)
}

func (t *StaggerGridTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

func (t *StaggerGridTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

// Size returns compact sizing overrides for a dense editor layout.
func (t *StaggerGridTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		return 12
	case theme.SizeNameCaptionText:
		return 9
	case theme.SizeNameHeadingText:
		return 20
	case theme.SizeNameSubHeadingText:
		return 15
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameInlineIcon:
		return 16
	default:
		return t.base.Size(name)
	}
}
