package ui

import (
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/staggergrid/internal/model"
	"github.com/piwi3910/staggergrid/internal/project"
)

// showPreferencesDialog edits the theme and the defaults used for new projects.
func (a *App) showPreferencesDialog() {
	cfg := a.config
	s := &cfg.DefaultSettings

	intEntry := func(val *int) *widget.Entry {
		e := widget.NewEntry()
		e.SetText(strconv.Itoa(*val))
		e.OnChanged = func(text string) {
			if v, err := strconv.Atoi(strings.TrimSpace(text)); err == nil {
				*val = v
			}
		}
		return e
	}

	themeSelect := widget.NewSelect([]string{"system", "light", "dark"}, func(selected string) {
		cfg.Theme = selected
	})
	themeSelect.SetSelected(cfg.Theme)

	orientationSelect := widget.NewSelect([]string{model.Vertical.String(), model.Horizontal.String()}, func(selected string) {
		if o, ok := model.ParseOrientation(selected); ok {
			s.Orientation = o
		}
	})
	orientationSelect.SetSelected(s.Orientation.String())

	fullableCheck := widget.NewCheck("", func(b bool) { s.Fullable = b })
	fullableCheck.Checked = s.Fullable

	formItems := []*widget.FormItem{
		widget.NewFormItem("Theme", themeSelect),
		widget.NewFormItem("", widget.NewSeparator()),
		widget.NewFormItem("Default Container Width", intEntry(&cfg.DefaultContainer.Width)),
		widget.NewFormItem("Default Container Height", intEntry(&cfg.DefaultContainer.Height)),
		widget.NewFormItem("Default Orientation", orientationSelect),
		widget.NewFormItem("Fill Leading Gaps", fullableCheck),
		widget.NewFormItem("Default Unit Size", intEntry(&s.UnitSize)),
		widget.NewFormItem("Default Column Groups", intEntry(&s.GroupCount)),
	}

	d := dialog.NewForm("Preferences", "Save", "Cancel", formItems,
		func(ok bool) {
			if !ok {
				return
			}
			cfg.DefaultSettings = cfg.DefaultSettings.Normalized()
			a.config = cfg
			a.applyTheme()
			if err := a.saveConfig(); err != nil {
				dialog.ShowError(fmt.Errorf("failed to save preferences: %w", err), a.window)
			}
		},
		a.window,
	)
	d.Resize(fyne.NewSize(480, 480))
	d.Show()
}

func (a *App) applyTheme() {
	a.theme.SetPreference(a.config.Theme)
	a.app.Settings().SetTheme(a.theme)
}

// showImportExportDialog backs up or restores preferences and presets.
func (a *App) showImportExportDialog() {
	exportBtn := widget.NewButton("Export All Data...", func() {
		d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
			if err != nil || writer == nil {
				return
			}
			writer.Close()
			path := writer.URI().Path()
			if err := project.ExportAllData(path, a.config, a.presets); err != nil {
				dialog.ShowError(err, a.window)
			} else {
				dialog.ShowInformation("Export Complete",
					fmt.Sprintf("All application data exported to:\n%s", path), a.window)
			}
		}, a.window)
		d.SetFileName("staggergrid-backup.json")
		d.Show()
	})

	importBtn := widget.NewButton("Import All Data...", func() {
		dialog.ShowConfirm("Import Data",
			"Importing data will replace your preferences and presets.\n\nAre you sure you want to continue?",
			func(ok bool) {
				if !ok {
					return
				}
				d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
					if err != nil || reader == nil {
						return
					}
					defer reader.Close()
					backup, err := project.ImportAllData(reader.URI().Path())
					if err != nil {
						dialog.ShowError(err, a.window)
						return
					}
					a.config = backup.Config
					a.presets = backup.Presets
					a.applyTheme()
					if err := a.saveConfig(); err != nil {
						dialog.ShowError(fmt.Errorf("failed to save imported preferences: %w", err), a.window)
						return
					}
					if err := a.savePresets(); err != nil {
						dialog.ShowError(fmt.Errorf("failed to save imported presets: %w", err), a.window)
						return
					}
					a.SetupMenus()
					dialog.ShowInformation("Import Complete",
						fmt.Sprintf("Data imported successfully from backup created at %s.", backup.CreatedAt), a.window)
				}, a.window)
				d.Show()
			},
			a.window,
		)
	})

	content := container.NewVBox(
		widget.NewLabel("Export preferences and presets to a backup file,\nor import from a previously exported backup."),
		widget.NewSeparator(),
		exportBtn,
		widget.NewSeparator(),
		importBtn,
	)

	d := dialog.NewCustom("Backup / Restore", "Close", content, a.window)
	d.Resize(fyne.NewSize(450, 250))
	d.Show()
}

// saveConfig persists the current app config to disk.
func (a *App) saveConfig() error {
	return project.SaveAppConfig(project.DefaultConfigPath(), a.config)
}
