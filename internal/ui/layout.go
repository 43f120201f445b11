package ui

import (
	"math"

	"fyne.io/fyne/v2"

	"github.com/piwi3910/staggergrid/internal/engine"
	"github.com/piwi3910/staggergrid/internal/model"
)

// itemParams are the per-child margin and gravity of a StaggeredLayout.
type itemParams struct {
	margin  model.Insets
	gravity model.Gravity
}

// StaggeredLayout is a fyne.Layout that packs visible children in order into
// a staggered grid. Children are measured by MinSize; each is moved into its
// cell and aligned by its own gravity or the layout's.
type StaggeredLayout struct {
	Settings model.Settings

	params   map[fyne.CanvasObject]itemParams
	lastSize fyne.Size
}

// NewStaggeredLayout creates a layout with the given settings.
func NewStaggeredLayout(s model.Settings) *StaggeredLayout {
	return &StaggeredLayout{
		Settings: s.Normalized(),
		params:   make(map[fyne.CanvasObject]itemParams),
	}
}

// SetItemParams sets the margin and gravity of one child. AlignDefault axes
// inherit the layout's gravity.
func (l *StaggeredLayout) SetItemParams(obj fyne.CanvasObject, margin model.Insets, gravity model.Gravity) {
	if l.params == nil {
		l.params = make(map[fyne.CanvasObject]itemParams)
	}
	l.params[obj] = itemParams{margin: margin, gravity: gravity}
}

// ClearItemParams forgets all per-child parameters.
func (l *StaggeredLayout) ClearItemParams() {
	l.params = make(map[fyne.CanvasObject]itemParams)
}

// Layout moves and resizes the visible objects to their packed frames.
func (l *StaggeredLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	l.lastSize = size
	visible, result := l.arrange(objects, size)
	for i, obj := range visible {
		f := result.Placements[i].Frame
		obj.Move(fyne.NewPos(float32(f.Left), float32(f.Top)))
		obj.Resize(fyne.NewSize(float32(f.Width()), float32(f.Height())))
	}
}

// MinSize reports the packed size at the last laid-out cross extent. Before
// the first layout the cross extent is that of the widest child, which
// stacks children along the primary axis.
func (l *StaggeredLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	visible, items := l.measure(objects)
	if len(visible) == 0 {
		pad := l.Settings.Padding
		return fyne.NewSize(float32(pad.Horizontal()), float32(pad.Vertical()))
	}

	widest, tallest := 0, 0
	for _, it := range items {
		widest = max(widest, it.OuterWidth())
		tallest = max(tallest, it.OuterHeight())
	}
	pad := l.Settings.Padding
	minW := widest + pad.Horizontal()
	minH := tallest + pad.Vertical()

	size := l.lastSize
	if l.Settings.Orientation == model.Horizontal {
		if size.Height < float32(minH) {
			size.Height = float32(minH)
		}
	} else if size.Width < float32(minW) {
		size.Width = float32(minW)
	}

	result := engine.Arrange(items, containerFor(size), l.Settings, nil)
	if l.Settings.Orientation == model.Horizontal {
		return fyne.NewSize(float32(result.Width), float32(max(minH, result.Height)))
	}
	return fyne.NewSize(float32(max(minW, result.Width)), float32(result.Height))
}

// measure returns the visible objects and one item per object.
func (l *StaggeredLayout) measure(objects []fyne.CanvasObject) ([]fyne.CanvasObject, []model.Item) {
	visible := make([]fyne.CanvasObject, 0, len(objects))
	items := make([]model.Item, 0, len(objects))
	for _, obj := range objects {
		if !obj.Visible() {
			continue
		}
		ms := obj.MinSize()
		p := l.params[obj]
		visible = append(visible, obj)
		items = append(items, model.Item{
			Width:    int(math.Ceil(float64(ms.Width))),
			Height:   int(math.Ceil(float64(ms.Height))),
			Quantity: 1,
			Margin:   p.margin,
			Gravity:  p.gravity,
		})
	}
	return visible, items
}

func (l *StaggeredLayout) arrange(objects []fyne.CanvasObject, size fyne.Size) ([]fyne.CanvasObject, model.LayoutResult) {
	visible, items := l.measure(objects)
	return visible, engine.Arrange(items, containerFor(size), l.Settings, nil)
}

func containerFor(size fyne.Size) model.Container {
	return model.Container{Width: int(size.Width), Height: int(size.Height)}
}
