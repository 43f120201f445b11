// StaggerGrid packs rectangular tiles into a staggered grid.
//
// Build:
//   go build -o staggergrid ./cmd/staggergrid
//
// Using fyne-cross for packaged builds:
//   go install github.com/fyne-io/fyne-cross@latest
//   fyne-cross windows -arch=amd64
//   fyne-cross darwin  -arch=amd64,arm64

package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	fynetooltip "github.com/dweymouth/fyne-tooltip"

	"github.com/piwi3910/staggergrid/internal/ui"
)

func main() {
	application := app.NewWithID("com.piwi3910.staggergrid")
	window := application.NewWindow("StaggerGrid")

	appUI := ui.NewApp(application, window)
	window.SetContent(fynetooltip.AddWindowToolTipLayer(appUI.Build(), window.Canvas()))
	appUI.SetupMenus()
	window.Resize(fyne.NewSize(1280, 800))
	window.CenterOnScreen()
	window.ShowAndRun()
}
