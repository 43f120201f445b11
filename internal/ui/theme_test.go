package ui

import (
	"testing"

	"fyne.io/fyne/v2/theme"
)

func TestStaggerGridTheme_Preference(t *testing.T) {
	th := NewStaggerGridTheme()
	base := theme.DefaultTheme()
	name := theme.ColorNameBackground

	if th.Color(name, theme.VariantDark) != base.Color(name, theme.VariantDark) {
		t.Error("system preference should follow the requested variant")
	}

	th.SetPreference("light")
	if th.Color(name, theme.VariantDark) != base.Color(name, theme.VariantLight) {
		t.Error("light preference should ignore the requested variant")
	}

	th.SetPreference("dark")
	if th.Color(name, theme.VariantLight) != base.Color(name, theme.VariantDark) {
		t.Error("dark preference should ignore the requested variant")
	}

	th.SetPreference("system")
	if th.Color(name, theme.VariantLight) != base.Color(name, theme.VariantLight) {
		t.Error("system preference should follow the requested variant again")
	}
}

func TestStaggerGridTheme_CompactSizes(t *testing.T) {
	th := NewStaggerGridTheme()
	if th.Size(theme.SizeNameText) != 12 || th.Size(theme.SizeNamePadding) != 3 {
		t.Error("expected compact text and padding sizes")
	}
	if th.Size(theme.SizeNameScrollBar) != theme.DefaultTheme().Size(theme.SizeNameScrollBar) {
		t.Error("other sizes should come from the default theme")
	}
}
