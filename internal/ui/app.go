// Package ui provides the StaggerGrid desktop editor.
//
// The editor keeps a project of items and layout settings, arranges it with
// the packer and shows the result both as a scaled drawing and as live fyne
// objects placed by StaggeredLayout.
package ui

import (
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/staggergrid/internal/engine"
	"github.com/piwi3910/staggergrid/internal/importer"
	"github.com/piwi3910/staggergrid/internal/model"
	"github.com/piwi3910/staggergrid/internal/project"
	"github.com/piwi3910/staggergrid/internal/ui/widgets"
)

const recentProjectLimit = 10

// App holds all application state and UI references.
type App struct {
	app         fyne.App
	window      fyne.Window
	project     model.Project
	projectPath string
	config      model.AppConfig
	presets     model.PresetStore
	history     *History
	theme       *StaggerGridTheme
	showCells   bool

	// UI references for dynamic updates
	itemsContainer    *fyne.Container
	settingsContainer *fyne.Container
	previewContainer  *fyne.Container
	liveContainer     *fyne.Container
	statusLabel       *widget.Label
	previewTabs       *container.AppTabs
}

// NewApp loads the saved preferences and presets and starts an empty project
// from the default settings.
func NewApp(application fyne.App, window fyne.Window) *App {
	cfg, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		cfg = model.DefaultAppConfig()
	}
	presets, err := project.LoadPresets(project.DefaultPresetPath())
	if err != nil {
		presets = model.NewPresetStore()
	}

	a := &App{
		app:       application,
		window:    window,
		config:    cfg,
		presets:   presets,
		history:   NewHistory(),
		theme:     NewStaggerGridTheme(),
		showCells: true,
	}
	a.project = a.newProject()
	a.theme.SetPreference(cfg.Theme)
	application.Settings().SetTheme(a.theme)
	return a
}

func (a *App) newProject() model.Project {
	p := model.NewProject()
	a.config.ApplyToProject(&p)
	return p
}

// SetupMenus creates the native menu bar and keyboard shortcuts.
func (a *App) SetupMenus() {
	recentItem := fyne.NewMenuItem("Open Recent", nil)
	recentItem.ChildMenu = a.buildRecentMenu()

	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New Project", a.newProjectAction),
		fyne.NewMenuItem("Open Project...", a.loadProject),
		recentItem,
		fyne.NewMenuItem("Save Project", a.saveProject),
		fyne.NewMenuItem("Save Project As...", a.saveProjectAs),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Import Items from CSV...", a.importCSV),
		fyne.NewMenuItem("Import Items from Excel...", a.importExcel),
		fyne.NewMenuItem("Import Outlines from DXF...", a.importDXF),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Load Settings (TOML)...", a.loadSettingsFile),
		fyne.NewMenuItem("Save Settings (TOML)...", a.saveSettingsFile),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export Layout PDF...", a.exportPDF),
		fyne.NewMenuItem("Export Tile Tags...", a.exportTags),
		fyne.NewMenuItem("Export Placements (Excel)...", a.exportXLSX),
		fyne.NewMenuItem("Export Layout JSON...", a.exportJSON),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Backup / Restore...", a.showImportExportDialog),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Undo", a.undo),
		fyne.NewMenuItem("Redo", a.redo),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Add Item...", a.showAddItemDialog),
		fyne.NewMenuItem("Clear All Items", func() {
			a.recordHistory("Clear Items")
			a.project.Items = []model.Item{}
			a.projectChanged()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Preferences...", a.showPreferencesDialog),
	)

	toolsMenu := fyne.NewMenu("Tools",
		fyne.NewMenuItem("Arrange", a.runArrange),
		fyne.NewMenuItem("Alignment and Padding...", a.showAlignmentDialog),
		fyne.NewMenuItem("Compare Scenarios...", a.showCompareDialog),
		fyne.NewMenuItem("Optimize Item Order...", a.runOptimizeOrder),
	)

	presetsMenu := fyne.NewMenu("Presets",
		fyne.NewMenuItem("Save Current as Preset...", a.showSavePresetDialog),
		fyne.NewMenuItem("Manage Presets...", a.showPresetsDialog),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", a.showAboutDialog),
	)

	a.window.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, toolsMenu, presetsMenu, helpMenu))

	c := a.window.Canvas()
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault},
		func(fyne.Shortcut) { a.undo() })
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyY, Modifier: fyne.KeyModifierShortcutDefault},
		func(fyne.Shortcut) { a.redo() })
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyS, Modifier: fyne.KeyModifierShortcutDefault},
		func(fyne.Shortcut) { a.saveProject() })
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyReturn, Modifier: fyne.KeyModifierShortcutDefault},
		func(fyne.Shortcut) { a.runArrange() })
}

func (a *App) buildRecentMenu() *fyne.Menu {
	if len(a.config.RecentProjects) == 0 {
		empty := fyne.NewMenuItem("(none)", nil)
		empty.Disabled = true
		return fyne.NewMenu("", empty)
	}
	items := make([]*fyne.MenuItem, 0, len(a.config.RecentProjects))
	for _, path := range a.config.RecentProjects {
		p := path
		items = append(items, fyne.NewMenuItem(p, func() { a.openProjectPath(p) }))
	}
	return fyne.NewMenu("", items...)
}

func (a *App) showAboutDialog() {
	dialog.ShowInformation(
		"About StaggerGrid",
		"StaggerGrid\n\n"+
			"Packs rectangular tiles into a staggered grid that grows\n"+
			"along one axis, with grid snapping and per-tile alignment.\n\n"+
			"Version 1.0.0",
		a.window,
	)
}

// Build constructs the full UI and returns the root container.
func (a *App) Build() fyne.CanvasObject {
	editorTabs := container.NewAppTabs(
		container.NewTabItem("Items", a.buildItemsPanel()),
		container.NewTabItem("Settings", a.buildSettingsPanel()),
	)

	a.previewContainer = container.NewStack()
	a.liveContainer = container.NewStack()
	a.previewTabs = container.NewAppTabs(
		container.NewTabItem("Preview", a.previewContainer),
		container.NewTabItem("Live Layout", a.liveContainer),
	)
	a.refreshPreview()

	split := container.NewHSplit(editorTabs, a.previewTabs)
	split.Offset = 0.42

	a.statusLabel = widget.NewLabel("")
	a.updateStatus()

	return container.NewBorder(a.buildToolbar(), a.statusLabel, nil, nil, split)
}

func (a *App) buildToolbar() fyne.CanvasObject {
	cellsCheck := widget.NewCheck("Show cells", func(b bool) {
		a.showCells = b
		a.refreshPreview()
	})
	cellsCheck.SetChecked(a.showCells)

	return container.NewHBox(
		newIconButtonWithTooltip(theme.ContentAddIcon(), "Add item", a.showAddItemDialog),
		newIconButtonWithTooltip(theme.MediaPlayIcon(), "Arrange", a.runArrange),
		widget.NewSeparator(),
		newIconButtonWithTooltip(theme.ContentUndoIcon(), "Undo", a.undo),
		newIconButtonWithTooltip(theme.ContentRedoIcon(), "Redo", a.redo),
		widget.NewSeparator(),
		newIconButtonWithTooltip(theme.ViewRestoreIcon(), "Compare scenarios", a.showCompareDialog),
		newIconButtonWithTooltip(theme.ViewRefreshIcon(), "Optimize item order", a.runOptimizeOrder),
		layout.NewSpacer(),
		cellsCheck,
	)
}

// ─── Items Panel ───────────────────────────────────────────

func (a *App) buildItemsPanel() fyne.CanvasObject {
	a.itemsContainer = container.NewVBox()
	a.refreshItemsList()

	addBtn := widget.NewButtonWithIcon("Add Item", theme.ContentAddIcon(), a.showAddItemDialog)

	return container.NewBorder(
		container.NewHBox(
			widget.NewLabelWithStyle("Items (packed in this order)", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			layout.NewSpacer(),
			addBtn,
		),
		nil, nil, nil,
		container.NewVScroll(a.itemsContainer),
	)
}

func (a *App) refreshItemsList() {
	a.itemsContainer.RemoveAll()

	if len(a.project.Items) == 0 {
		a.itemsContainer.Add(widget.NewLabel("No items added yet. Click 'Add Item' to begin."))
		return
	}

	bold := fyne.TextStyle{Bold: true}
	a.itemsContainer.Add(container.NewGridWithColumns(8,
		widget.NewLabelWithStyle("Label", fyne.TextAlignLeading, bold),
		widget.NewLabelWithStyle("Width", fyne.TextAlignLeading, bold),
		widget.NewLabelWithStyle("Height", fyne.TextAlignLeading, bold),
		widget.NewLabelWithStyle("Qty", fyne.TextAlignLeading, bold),
		widget.NewLabelWithStyle("Gravity", fyne.TextAlignLeading, bold),
		widget.NewLabel(""), widget.NewLabel(""), widget.NewLabel(""),
	))
	a.itemsContainer.Add(widget.NewSeparator())

	for i := range a.project.Items {
		idx := i
		it := a.project.Items[idx]
		a.itemsContainer.Add(container.NewGridWithColumns(8,
			widget.NewLabel(it.Label),
			widget.NewLabel(strconv.Itoa(it.Width)),
			widget.NewLabel(strconv.Itoa(it.Height)),
			widget.NewLabel(strconv.Itoa(it.Quantity)),
			widget.NewLabel(formatGravity(it.Gravity)),
			widget.NewButtonWithIcon("", theme.DocumentCreateIcon(), func() { a.showEditItemDialog(idx) }),
			widget.NewButtonWithIcon("", theme.ContentCopyIcon(), func() { a.duplicateItem(idx) }),
			widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
				a.recordHistory("Delete Item")
				a.project.Items = append(a.project.Items[:idx], a.project.Items[idx+1:]...)
				a.projectChanged()
			}),
		))
	}
}

func formatGravity(g model.Gravity) string {
	if g == (model.Gravity{}) {
		return "inherit"
	}
	return fmt.Sprintf("%s / %s", g.Horizontal, g.Vertical)
}

var (
	horizontalAligns = []string{"Default", "Start", "Center", "End", "Left", "Right"}
	verticalAligns   = []string{"Default", "Start", "Center", "End"}
)

// itemForm holds the entries shared by the add and edit item dialogs.
type itemForm struct {
	label, width, height, qty, margin *widget.Entry
	hAlign, vAlign                    *widget.Select
}

func newItemForm(it model.Item) *itemForm {
	f := &itemForm{
		label:  widget.NewEntry(),
		width:  widget.NewEntry(),
		height: widget.NewEntry(),
		qty:    widget.NewEntry(),
		margin: widget.NewEntry(),
		hAlign: widget.NewSelect(horizontalAligns, nil),
		vAlign: widget.NewSelect(verticalAligns, nil),
	}
	f.label.SetText(it.Label)
	if it.Width > 0 {
		f.width.SetText(strconv.Itoa(it.Width))
	}
	if it.Height > 0 {
		f.height.SetText(strconv.Itoa(it.Height))
	}
	f.qty.SetText(strconv.Itoa(max(it.Quantity, 1)))
	f.margin.SetPlaceHolder("all, or left top right bottom")
	if m := it.Margin; m != (model.Insets{}) {
		f.margin.SetText(fmt.Sprintf("%d %d %d %d", m.Left, m.Top, m.Right, m.Bottom))
	}
	f.hAlign.SetSelected(it.Gravity.Horizontal.String())
	f.vAlign.SetSelected(it.Gravity.Vertical.String())
	return f
}

func (f *itemForm) items() []*widget.FormItem {
	return []*widget.FormItem{
		widget.NewFormItem("Label", f.label),
		widget.NewFormItem("Width", f.width),
		widget.NewFormItem("Height", f.height),
		widget.NewFormItem("Quantity", f.qty),
		widget.NewFormItem("Margin", f.margin),
		widget.NewFormItem("Horizontal Gravity", f.hAlign),
		widget.NewFormItem("Vertical Gravity", f.vAlign),
	}
}

// apply validates the entries and writes them into it.
func (f *itemForm) apply(it *model.Item) error {
	w, errW := strconv.Atoi(strings.TrimSpace(f.width.Text))
	h, errH := strconv.Atoi(strings.TrimSpace(f.height.Text))
	q, errQ := strconv.Atoi(strings.TrimSpace(f.qty.Text))
	if errW != nil || errH != nil || errQ != nil || w <= 0 || h <= 0 || q <= 0 {
		return fmt.Errorf("width, height, and quantity must be whole numbers > 0")
	}
	margin := model.Insets{}
	if text := strings.TrimSpace(f.margin.Text); text != "" {
		m, ok := importer.ParseMargin(text)
		if !ok {
			return fmt.Errorf("margin must be one value or four comma-separated values")
		}
		margin = m
	}
	hAlign, _ := model.ParseAlign(f.hAlign.Selected)
	vAlign, _ := model.ParseAlign(f.vAlign.Selected)

	it.Label = f.label.Text
	it.Width, it.Height, it.Quantity = w, h, q
	it.Margin = margin
	it.Gravity = model.Gravity{Horizontal: hAlign, Vertical: vAlign}
	return nil
}

func (a *App) showAddItemDialog() {
	f := newItemForm(model.Item{Label: fmt.Sprintf("Tile %d", len(a.project.Items)+1), Quantity: 1})

	form := dialog.NewForm("Add Item", "Add", "Cancel", f.items(),
		func(ok bool) {
			if !ok {
				return
			}
			it := model.NewItem("", 0, 0, 1)
			if err := f.apply(&it); err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			a.recordHistory("Add Item")
			a.project.Items = append(a.project.Items, it)
			a.projectChanged()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(420, 420))
	form.Show()
}

func (a *App) showEditItemDialog(idx int) {
	f := newItemForm(a.project.Items[idx])

	form := dialog.NewForm("Edit Item", "Save", "Cancel", f.items(),
		func(ok bool) {
			if !ok {
				return
			}
			it := a.project.Items[idx]
			if err := f.apply(&it); err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			a.recordHistory("Edit Item")
			a.project.Items[idx] = it
			a.projectChanged()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(420, 420))
	form.Show()
}

func (a *App) duplicateItem(idx int) {
	a.recordHistory("Duplicate Item")
	src := a.project.Items[idx]
	cp := model.NewItem(src.Label+" copy", src.Width, src.Height, src.Quantity)
	cp.Margin, cp.Gravity, cp.Color = src.Margin, src.Gravity, src.Color
	a.project.Items = append(a.project.Items[:idx+1], append([]model.Item{cp}, a.project.Items[idx+1:]...)...)
	a.projectChanged()
}

// ─── Settings Panel ────────────────────────────────────────

func (a *App) buildSettingsPanel() fyne.CanvasObject {
	a.settingsContainer = container.NewStack()
	a.refreshSettingsPanel()
	return container.NewVScroll(a.settingsContainer)
}

func (a *App) refreshSettingsPanel() {
	a.settingsContainer.RemoveAll()
	a.settingsContainer.Add(a.buildSettingsForm())
	a.settingsContainer.Refresh()
}

func (a *App) buildSettingsForm() fyne.CanvasObject {
	s := &a.project.Settings
	c := &a.project.Container

	// intEntry binds an entry to *val and rearranges on every valid edit.
	intEntry := func(val *int, minValue int) *widget.Entry {
		e := widget.NewEntry()
		e.SetText(strconv.Itoa(*val))
		e.OnChanged = func(text string) {
			if v, err := strconv.Atoi(strings.TrimSpace(text)); err == nil && v >= minValue {
				*val = v
				a.settingsChanged()
			}
		}
		return e
	}

	orientationSelect := widget.NewSelect([]string{model.Vertical.String(), model.Horizontal.String()}, func(selected string) {
		if o, ok := model.ParseOrientation(selected); ok && o != s.Orientation {
			s.Orientation = o
			a.settingsChanged()
		}
	})
	orientationSelect.SetSelected(s.Orientation.String())

	fullableCheck := widget.NewCheck("", func(b bool) {
		s.Fullable = b
		a.settingsChanged()
	})
	fullableCheck.Checked = s.Fullable

	containerSection := widget.NewCard("Container", "Size offered to the layout", container.NewGridWithColumns(2,
		widget.NewLabel("Width"), intEntry(&c.Width, 0),
		widget.NewLabel("Height"), intEntry(&c.Height, 0),
	))

	packingSection := widget.NewCard("Packing", "", container.NewGridWithColumns(2,
		widget.NewLabel("Orientation"), orientationSelect,
		widget.NewLabel("Fill Leading Gaps"), fullableCheck,
		widget.NewLabel("Unit Size"), intEntry(&s.UnitSize, 1),
		widget.NewLabel("Column Groups (0 = off)"), intEntry(&s.GroupCount, 0),
	))

	alignBtn := widget.NewButtonWithIcon("Alignment & Padding...", theme.SettingsIcon(), a.showAlignmentDialog)
	alignSection := widget.NewCard("Alignment", "", container.NewVBox(
		widget.NewLabel(fmt.Sprintf("Gravity %s, padding %d/%d/%d/%d, RTL %t",
			formatGravity(s.Gravity), s.Padding.Left, s.Padding.Top, s.Padding.Right, s.Padding.Bottom, s.RTL)),
		alignBtn,
	))

	return container.NewVBox(containerSection, packingSection, alignSection)
}

// ─── Preview ───────────────────────────────────────────────

func (a *App) refreshPreview() {
	if a.previewContainer == nil {
		return
	}
	a.previewContainer.RemoveAll()
	a.previewContainer.Add(widgets.RenderLayoutResult(a.project.Result, a.showCells))
	a.previewContainer.Refresh()

	a.liveContainer.RemoveAll()
	a.liveContainer.Add(a.buildLiveLayout())
	a.liveContainer.Refresh()
}

// buildLiveLayout places one rectangle per tile with StaggeredLayout, so the
// container's own size drives the arrangement.
func (a *App) buildLiveLayout() fyne.CanvasObject {
	items := model.ExpandItems(a.project.Items)
	if len(items) == 0 {
		return widget.NewLabel("No items to lay out.")
	}

	l := NewStaggeredLayout(a.project.Settings)
	objects := make([]fyne.CanvasObject, len(items))
	for i, it := range items {
		rect := canvas.NewRectangle(widgets.TileColor(i))
		rect.StrokeColor = theme.Color(theme.ColorNameForeground)
		rect.StrokeWidth = 1
		rect.SetMinSize(fyne.NewSize(float32(it.Width), float32(it.Height)))
		l.SetItemParams(rect, it.Margin, it.Gravity)
		objects[i] = rect
	}

	content := container.New(l, objects...)
	if a.project.Settings.Orientation == model.Horizontal {
		return container.NewHScroll(content)
	}
	return container.NewVScroll(content)
}

func (a *App) updateStatus() {
	if a.statusLabel == nil {
		return
	}
	name := a.project.Name
	if a.projectPath != "" {
		name = a.projectPath
	}
	status := fmt.Sprintf("%s | %d items", name, len(a.project.Items))
	if r := a.project.Result; r != nil {
		status += fmt.Sprintf(" | %d x %d, %.1f%% efficiency", r.Width, r.Height, r.Efficiency())
	}
	if label := a.history.UndoLabel(); label != "" {
		status += " | undo: " + label
	}
	a.statusLabel.SetText(status)
}

// ─── Actions ───────────────────────────────────────────────

// recordHistory snapshots the project before a modification.
func (a *App) recordHistory(label string) {
	a.history.Push(MakeSnapshot(a.project, label))
}

// projectChanged refreshes every view after items changed.
func (a *App) projectChanged() {
	a.refreshItemsList()
	a.runArrange()
}

// settingsChanged rearranges after a settings edit without rebuilding the
// settings form, which would steal focus from the edited entry.
func (a *App) settingsChanged() {
	a.runArrange()
}

func (a *App) runArrange() {
	if len(a.project.Items) == 0 {
		a.project.Result = nil
	} else {
		result := engine.Arrange(model.ExpandItems(a.project.Items), a.project.Container, a.project.Settings, nil)
		a.project.Result = &result
	}
	a.refreshPreview()
	a.updateStatus()
}

func (a *App) undo() {
	snap, ok := a.history.Undo(MakeSnapshot(a.project, ""))
	if !ok {
		return
	}
	snap.Restore(&a.project)
	a.refreshAll()
}

func (a *App) redo() {
	snap, ok := a.history.Redo(MakeSnapshot(a.project, ""))
	if !ok {
		return
	}
	snap.Restore(&a.project)
	a.refreshAll()
}

// refreshAll rebuilds every panel from the project.
func (a *App) refreshAll() {
	a.refreshItemsList()
	a.refreshSettingsPanel()
	a.runArrange()
}

func (a *App) newProjectAction() {
	a.project = a.newProject()
	a.projectPath = ""
	a.history.Clear()
	a.refreshAll()
}
