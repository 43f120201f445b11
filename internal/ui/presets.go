package ui

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/staggergrid/internal/model"
	"github.com/piwi3910/staggergrid/internal/project"
)

// ─── Presets Dialog ────────────────────────────────────────

func (a *App) showPresetsDialog() {
	presetList := container.NewVBox()
	var refreshList func()

	refreshList = func() {
		presetList.RemoveAll()

		if len(a.presets.Presets) == 0 {
			presetList.Add(widget.NewLabel("No presets saved. Use Presets > Save Current as Preset."))
			return
		}

		bold := fyne.TextStyle{Bold: true}
		presetList.Add(container.NewGridWithColumns(5,
			widget.NewLabelWithStyle("Name", fyne.TextAlignLeading, bold),
			widget.NewLabelWithStyle("Container", fyne.TextAlignLeading, bold),
			widget.NewLabelWithStyle("Packing", fyne.TextAlignLeading, bold),
			widget.NewLabel(""),
			widget.NewLabel(""),
		))
		presetList.Add(widget.NewSeparator())

		for i := range a.presets.Presets {
			p := a.presets.Presets[i]
			presetList.Add(container.NewGridWithColumns(5,
				widget.NewLabel(p.Name),
				widget.NewLabel(fmt.Sprintf("%d x %d", p.Container.Width, p.Container.Height)),
				widget.NewLabel(describeSettings(p.Settings)),
				widget.NewButtonWithIcon("Apply", theme.ConfirmIcon(), func() {
					a.applyPreset(p)
				}),
				widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
					a.presets.Remove(p.ID)
					if err := a.savePresets(); err != nil {
						dialog.ShowError(err, a.window)
					}
					refreshList()
				}),
			))
		}
	}

	refreshList()

	content := container.NewBorder(nil, nil, nil, nil, container.NewVScroll(presetList))
	d := dialog.NewCustom("Presets", "Close", content, a.window)
	d.Resize(fyne.NewSize(650, 420))
	d.Show()
}

func describeSettings(s model.Settings) string {
	parts := []string{s.Orientation.String(), fmt.Sprintf("unit %d", s.UnitSize)}
	if s.GroupCount > 0 {
		parts = append(parts, fmt.Sprintf("%d groups", s.GroupCount))
	}
	if !s.Fullable {
		parts = append(parts, "no gaps")
	}
	return strings.Join(parts, ", ")
}

func (a *App) applyPreset(p model.Preset) {
	a.recordHistory("Apply Preset")
	p.ApplyTo(&a.project)
	a.refreshAll()
}

func (a *App) showSavePresetDialog() {
	nameEntry := widget.NewEntry()
	nameEntry.SetPlaceHolder("Preset name")
	descEntry := widget.NewEntry()
	descEntry.SetPlaceHolder("Optional description")

	formItems := []*widget.FormItem{
		widget.NewFormItem("Name", nameEntry),
		widget.NewFormItem("Description", descEntry),
	}

	d := dialog.NewForm("Save Preset", "Save", "Cancel", formItems,
		func(ok bool) {
			if !ok {
				return
			}
			name := strings.TrimSpace(nameEntry.Text)
			if name == "" {
				dialog.ShowError(fmt.Errorf("preset name is required"), a.window)
				return
			}
			a.presets.Add(model.NewPreset(name, descEntry.Text, a.project.Settings, a.project.Container))
			if err := a.savePresets(); err != nil {
				dialog.ShowError(err, a.window)
			}
		},
		a.window,
	)
	d.Resize(fyne.NewSize(420, 220))
	d.Show()
}

// savePresets persists the preset store to disk.
func (a *App) savePresets() error {
	return project.SavePresets(project.DefaultPresetPath(), a.presets)
}
