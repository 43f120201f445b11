package widgets

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/staggergrid/internal/model"
)

// tileColors cycle through placements for visual distinction.
var tileColors = []color.NRGBA{
	{R: 76, G: 175, B: 80, A: 200},  // green
	{R: 33, G: 150, B: 243, A: 200}, // blue
	{R: 255, G: 152, B: 0, A: 200},  // orange
	{R: 156, G: 39, B: 176, A: 200}, // purple
	{R: 0, G: 188, B: 212, A: 200},  // cyan
	{R: 244, G: 67, B: 54, A: 200},  // red
	{R: 255, G: 235, B: 59, A: 200}, // yellow
	{R: 121, G: 85, B: 72, A: 200},  // brown
}

// TileColor returns the display color of the i-th placement.
func TileColor(i int) color.NRGBA {
	return tileColors[i%len(tileColors)]
}

// LayoutCanvas draws a LayoutResult scaled to fit a box.
type LayoutCanvas struct {
	widget.BaseWidget
	result    model.LayoutResult
	showCells bool
	maxWidth  float32
	maxHeight float32
}

// NewLayoutCanvas creates a canvas fitting result into maxW x maxH. When
// showCells is set the packed cells are outlined behind the frames.
func NewLayoutCanvas(result model.LayoutResult, showCells bool, maxW, maxH float32) *LayoutCanvas {
	lc := &LayoutCanvas{
		result:    result,
		showCells: showCells,
		maxWidth:  maxW,
		maxHeight: maxH,
	}
	lc.ExtendBaseWidget(lc)
	return lc
}

func (lc *LayoutCanvas) CreateRenderer() fyne.WidgetRenderer {
	return newLayoutCanvasRenderer(lc)
}

// scale returns the factor that fits the layout into the canvas box.
func (lc *LayoutCanvas) scale() float32 {
	return fitScale(float32(lc.result.Width), float32(lc.result.Height), lc.maxWidth, lc.maxHeight)
}

// fitScale returns the largest factor that fits w x h into maxW x maxH.
// Degenerate sizes scale by 1.
func fitScale(w, h, maxW, maxH float32) float32 {
	if w <= 0 || h <= 0 {
		return 1
	}
	scale := maxW / w
	if s := maxH / h; s < scale {
		scale = s
	}
	return scale
}

type layoutCanvasRenderer struct {
	lc      *LayoutCanvas
	objects []fyne.CanvasObject
}

func newLayoutCanvasRenderer(lc *LayoutCanvas) *layoutCanvasRenderer {
	r := &layoutCanvasRenderer{lc: lc}
	r.rebuild()
	return r
}

func (r *layoutCanvasRenderer) rebuild() {
	r.objects = nil

	result := r.lc.result
	scale := r.lc.scale()
	canvasW := float32(result.Width) * scale
	canvasH := float32(result.Height) * scale

	bg := canvas.NewRectangle(color.NRGBA{R: 245, G: 245, B: 245, A: 255})
	bg.Resize(fyne.NewSize(canvasW, canvasH))
	r.objects = append(r.objects, bg)

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.NRGBA{R: 100, G: 100, B: 100, A: 255}
	border.StrokeWidth = 2
	border.Resize(fyne.NewSize(canvasW, canvasH))
	r.objects = append(r.objects, border)

	for i, p := range result.Placements {
		if r.lc.showCells {
			cell := canvas.NewRectangle(color.Transparent)
			cell.StrokeColor = color.NRGBA{R: 160, G: 160, B: 160, A: 255}
			cell.StrokeWidth = 1
			r.place(cell, p.Cell, scale)
			r.objects = append(r.objects, cell)
		}

		frame := canvas.NewRectangle(TileColor(i))
		r.place(frame, p.Frame, scale)
		r.objects = append(r.objects, frame)

		frameBorder := canvas.NewRectangle(color.Transparent)
		frameBorder.StrokeColor = color.NRGBA{R: 30, G: 30, B: 30, A: 255}
		frameBorder.StrokeWidth = 1
		r.place(frameBorder, p.Frame, scale)
		r.objects = append(r.objects, frameBorder)

		fw := float32(p.Frame.Width()) * scale
		fh := float32(p.Frame.Height()) * scale
		if fw > 30 && fh > 16 {
			label := canvas.NewText(
				fmt.Sprintf("%s\n%dx%d", p.Item.Label, p.Item.Width, p.Item.Height),
				color.Black,
			)
			label.TextSize = 10
			label.Move(fyne.NewPos(float32(p.Frame.Left)*scale+3, float32(p.Frame.Top)*scale+2))
			r.objects = append(r.objects, label)
		}
	}
}

func (r *layoutCanvasRenderer) place(obj fyne.CanvasObject, rect model.Rect, scale float32) {
	obj.Move(fyne.NewPos(float32(rect.Left)*scale, float32(rect.Top)*scale))
	obj.Resize(fyne.NewSize(float32(rect.Width())*scale, float32(rect.Height())*scale))
}

func (r *layoutCanvasRenderer) Layout(size fyne.Size)        {}
func (r *layoutCanvasRenderer) Refresh()                     { r.rebuild() }
func (r *layoutCanvasRenderer) Destroy()                     {}
func (r *layoutCanvasRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *layoutCanvasRenderer) MinSize() fyne.Size {
	result := r.lc.result
	scale := r.lc.scale()
	return fyne.NewSize(float32(result.Width)*scale, float32(result.Height)*scale)
}

// RenderLayoutResult creates a scrollable preview of result with a summary line.
func RenderLayoutResult(result *model.LayoutResult, showCells bool) fyne.CanvasObject {
	if result == nil || len(result.Placements) == 0 {
		return widget.NewLabel("No layout yet. Add items, then click Arrange.")
	}

	header := widget.NewLabel(fmt.Sprintf(
		"%d tiles in %d x %d (%s), %.1f%% efficiency",
		len(result.Placements), result.Width, result.Height,
		result.Settings.Orientation, result.Efficiency(),
	))
	header.TextStyle = fyne.TextStyle{Bold: true}

	lc := NewLayoutCanvas(*result, showCells, 600, 600)

	details := widget.NewLabel(fmt.Sprintf(
		"Container %d x %d | Unit %d | Groups %d | Fill leading gaps: %t",
		result.Container.Width, result.Container.Height,
		result.Settings.UnitSize, result.Settings.GroupCount, result.Settings.Fullable,
	))

	return container.NewVScroll(container.NewVBox(header, lc, widget.NewSeparator(), details))
}
