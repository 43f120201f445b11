package ui

import (
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/staggergrid/internal/model"
)

// showAlignmentDialog edits the container gravity, padding and writing
// direction. Changes apply when the dialog closes with Apply.
func (a *App) showAlignmentDialog() {
	s := a.project.Settings

	intEntry := func(val *int) *widget.Entry {
		e := widget.NewEntry()
		e.SetText(strconv.Itoa(*val))
		e.OnChanged = func(text string) {
			if v, err := strconv.Atoi(strings.TrimSpace(text)); err == nil && v >= 0 {
				*val = v
			}
		}
		return e
	}

	hSelect := widget.NewSelect(horizontalAligns, func(selected string) {
		s.Gravity.Horizontal, _ = model.ParseAlign(selected)
	})
	hSelect.SetSelected(s.Gravity.Horizontal.String())
	vSelect := widget.NewSelect(verticalAligns, func(selected string) {
		s.Gravity.Vertical, _ = model.ParseAlign(selected)
	})
	vSelect.SetSelected(s.Gravity.Vertical.String())

	gravitySection := widget.NewCard("Container Gravity",
		"Used by items whose own gravity is Default",
		container.NewGridWithColumns(2,
			widget.NewLabel("Horizontal"), hSelect,
			widget.NewLabel("Vertical"), vSelect,
		))

	paddingSection := widget.NewCard("Padding",
		"Space between the container edge and the tiles",
		container.NewGridWithColumns(2,
			widget.NewLabel("Left"), intEntry(&s.Padding.Left),
			widget.NewLabel("Top"), intEntry(&s.Padding.Top),
			widget.NewLabel("Right"), intEntry(&s.Padding.Right),
			widget.NewLabel("Bottom"), intEntry(&s.Padding.Bottom),
		))

	rtlCheck := widget.NewCheck("Right-to-left", func(b bool) { s.RTL = b })
	rtlCheck.Checked = s.RTL
	directionSection := widget.NewCard("Writing Direction",
		"Mirrors Start and End on the horizontal axis",
		rtlCheck)

	content := container.NewVScroll(container.NewVBox(gravitySection, paddingSection, directionSection))

	d := dialog.NewCustomConfirm("Alignment & Padding", "Apply", "Cancel", content, func(ok bool) {
		if !ok {
			return
		}
		a.recordHistory("Alignment")
		a.project.Settings = s
		a.refreshSettingsPanel()
		a.runArrange()
	}, a.window)
	d.Resize(fyne.NewSize(480, 560))
	d.Show()
}
