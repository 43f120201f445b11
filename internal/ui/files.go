package ui

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"

	"github.com/piwi3910/staggergrid/internal/export"
	"github.com/piwi3910/staggergrid/internal/importer"
	"github.com/piwi3910/staggergrid/internal/model"
	"github.com/piwi3910/staggergrid/internal/project"
)

// ProjectExtension is the file extension for saved projects.
const ProjectExtension = ".sgrid"

// ─── Projects ──────────────────────────────────────────────

func (a *App) saveProject() {
	if a.projectPath == "" {
		a.saveProjectAs()
		return
	}
	a.writeProject(a.projectPath)
}

func (a *App) saveProjectAs() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		a.writeProject(writer.URI().Path())
	}, a.window)
	d.SetFileName(a.project.Name + ProjectExtension)
	d.Show()
}

func (a *App) writeProject(path string) {
	if err := project.Save(path, a.project); err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	a.projectPath = path
	a.rememberRecent(path)
	a.updateStatus()
}

func (a *App) loadProject() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		a.openProjectPath(reader.URI().Path())
	}, a.window)
	d.Show()
}

func (a *App) openProjectPath(path string) {
	proj, err := project.Load(path)
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	a.project = proj
	a.projectPath = path
	a.history.Clear()
	a.rememberRecent(path)
	a.refreshAll()
}

// rememberRecent records path in the recent list and rebuilds the menus.
func (a *App) rememberRecent(path string) {
	a.config.AddRecentProject(path, recentProjectLimit)
	if err := a.saveConfig(); err != nil {
		fyne.LogError("failed to save recent projects", err)
	}
	a.SetupMenus()
}

// ─── Import ────────────────────────────────────────────────

func (a *App) importCSV() {
	a.importWith(importer.ImportCSV)
}

func (a *App) importExcel() {
	a.importWith(importer.ImportExcel)
}

func (a *App) importDXF() {
	a.importWith(importer.ImportDXF)
}

func (a *App) importWith(load func(path string) importer.ImportResult) {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		a.handleImportResult(load(reader.URI().Path()))
	}, a.window)
}

func (a *App) handleImportResult(result importer.ImportResult) {
	if len(result.Errors) > 0 {
		errorMsg := "Errors encountered during import:\n\n" + strings.Join(result.Errors, "\n")
		dialog.ShowError(fmt.Errorf("%s", errorMsg), a.window)
	}

	if len(result.Warnings) > 0 {
		fyne.LogError("import warnings: "+strings.Join(result.Warnings, "; "), nil)
	}

	if len(result.Items) == 0 {
		return
	}

	a.recordHistory("Import Items")
	a.project.Items = append(a.project.Items, result.Items...)
	a.projectChanged()

	msg := fmt.Sprintf("Successfully imported %d items.", len(result.Items))
	if len(result.Errors) > 0 {
		msg += fmt.Sprintf("\n\nHowever, %d rows had errors and were skipped.", len(result.Errors))
	}
	dialog.ShowInformation("Import Complete", msg, a.window)
}

// ─── Settings files ────────────────────────────────────────

func (a *App) loadSettingsFile() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		s, c, err := project.LoadSettingsTOML(reader.URI().Path())
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.recordHistory("Load Settings")
		a.project.Settings = s
		if c.Width > 0 || c.Height > 0 {
			a.project.Container = c
		}
		a.refreshAll()
	}, a.window)
}

func (a *App) saveSettingsFile() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		if err := project.SaveSettingsTOML(writer.URI().Path(), a.project.Settings, a.project.Container); err != nil {
			dialog.ShowError(err, a.window)
		}
	}, a.window)
	d.SetFileName("layout.toml")
	d.Show()
}

// ─── Export ────────────────────────────────────────────────

// requireResult returns the current layout, or false after telling the user
// there is nothing to export.
func (a *App) requireResult() (model.LayoutResult, bool) {
	if a.project.Result == nil || len(a.project.Result.Placements) == 0 {
		dialog.ShowInformation("No layout", "Add items and arrange them before exporting.", a.window)
		return model.LayoutResult{}, false
	}
	return *a.project.Result, true
}

func (a *App) exportPDF() {
	a.exportWith("layout.pdf", "Layout PDF", export.ExportPDF)
}

func (a *App) exportTags() {
	a.exportWith("layout-tags.pdf", "Tile tags", export.ExportTags)
}

func (a *App) exportXLSX() {
	a.exportWith("layout.xlsx", "Placement workbook", export.ExportXLSX)
}

func (a *App) exportWith(defaultName, what string, write func(string, model.LayoutResult) error) {
	result, ok := a.requireResult()
	if !ok {
		return
	}
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		// The exporters write by path, so close the placeholder first.
		writer.Close()
		path := writer.URI().Path()
		if err := write(path, result); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		dialog.ShowInformation("Export Complete", fmt.Sprintf("%s saved to %s", what, path), a.window)
	}, a.window)
	d.SetFileName(defaultName)
	d.Show()
}

func (a *App) exportJSON() {
	result, ok := a.requireResult()
	if !ok {
		return
	}
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		if err := export.WriteJSON(writer, result); err != nil {
			dialog.ShowError(err, a.window)
		}
	}, a.window)
	d.SetFileName("layout.json")
	d.Show()
}
