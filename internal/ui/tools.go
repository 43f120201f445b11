package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/staggergrid/internal/engine"
	"github.com/piwi3910/staggergrid/internal/model"
	"github.com/piwi3910/staggergrid/internal/ui/widgets"
)

// showCompareDialog arranges the items under a few alternative settings and
// lets the user adopt one of them.
func (a *App) showCompareDialog() {
	if len(a.project.Items) == 0 {
		dialog.ShowInformation("Nothing to compare", "Add at least one item first.", a.window)
		return
	}

	scenarios := engine.BuildDefaultScenarios(a.project.Settings)
	results := engine.CompareScenarios(scenarios, a.project.Items, a.project.Container)
	best := bestScenario(results)

	var d dialog.Dialog
	columns := make([]fyne.CanvasObject, 0, len(results))
	for i, r := range results {
		res := r
		title := res.Scenario.Name
		if i == best {
			title += " (best)"
		}
		useBtn := widget.NewButton("Use", func() {
			a.recordHistory("Use Scenario")
			a.project.Settings = res.Scenario.Settings
			a.refreshSettingsPanel()
			a.runArrange()
			d.Hide()
		})
		stats := widget.NewLabel(fmt.Sprintf("%d x %d\nExtent %d\n%.1f%% efficient",
			res.Result.Width, res.Result.Height, res.PrimaryExtent, res.Efficiency))
		preview := widgets.NewLayoutCanvas(res.Result, false, 180, 240)
		columns = append(columns, container.NewVBox(
			widget.NewLabelWithStyle(title, fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
			container.NewCenter(preview),
			stats,
			useBtn,
		))
	}

	content := container.NewHScroll(container.NewHBox(columns...))
	d = dialog.NewCustom("Compare Scenarios", "Close", content, a.window)
	d.Resize(fyne.NewSize(900, 480))
	d.Show()
}

// bestScenario returns the index with the smallest primary extent, preferring
// higher efficiency on ties.
func bestScenario(results []engine.ComparisonResult) int {
	best := -1
	for i, r := range results {
		if best < 0 ||
			r.PrimaryExtent < results[best].PrimaryExtent ||
			(r.PrimaryExtent == results[best].PrimaryExtent && r.Efficiency > results[best].Efficiency) {
			best = i
		}
	}
	return best
}

// runOptimizeOrder searches for a better item order in the background and
// offers to apply it.
func (a *App) runOptimizeOrder() {
	if len(a.project.Items) < 2 {
		dialog.ShowInformation("Nothing to optimize", "Add at least two items first.", a.window)
		return
	}

	items := model.ExpandItems(a.project.Items)
	c, s := a.project.Container, a.project.Settings
	current := engine.Arrange(items, c, s, nil)

	progress := dialog.NewCustomWithoutButtons("Optimizing Order",
		container.NewVBox(widget.NewLabel("Searching item orders..."), widget.NewProgressBarInfinite()), a.window)
	progress.Show()

	go func() {
		res := engine.OptimizeOrder(items, c, s, engine.ScaledGeneticConfig(len(items)), 1)
		fyne.Do(func() {
			progress.Hide()
			if res.Result.PrimaryExtent() >= current.PrimaryExtent() {
				dialog.ShowInformation("Optimize Order",
					fmt.Sprintf("The current order is already the most compact found (extent %d).", current.PrimaryExtent()),
					a.window)
				return
			}
			msg := fmt.Sprintf("Extent %d -> %d.\n\nReplace the item list with the suggested order?",
				current.PrimaryExtent(), res.Result.PrimaryExtent())
			dialog.ShowConfirm("Optimize Order", msg, func(ok bool) {
				if !ok {
					return
				}
				a.recordHistory("Optimize Order")
				a.project.Items = res.Items
				a.projectChanged()
			}, a.window)
		})
	}()
}
