package engine

import "github.com/piwi3910/staggergrid/internal/model"

// axis maps primary/cross coordinates onto physical rectangles so the packing
// code is written once for both orientations.
type axis struct {
	vertical bool
}

func newAxis(o model.Orientation) axis {
	return axis{vertical: o != model.Horizontal}
}

// primary returns the span of r along the growing axis.
func (a axis) primary(r model.Rect) (start, end int) {
	if a.vertical {
		return r.Top, r.Bottom
	}
	return r.Left, r.Right
}

// cross returns the span of r along the bounded axis.
func (a axis) cross(r model.Rect) (start, end int) {
	if a.vertical {
		return r.Left, r.Right
	}
	return r.Top, r.Bottom
}

func (a axis) rect(crossStart, crossEnd, primaryStart, primaryEnd int) model.Rect {
	if a.vertical {
		return model.Rect{Left: crossStart, Top: primaryStart, Right: crossEnd, Bottom: primaryEnd}
	}
	return model.Rect{Left: primaryStart, Top: crossStart, Right: primaryEnd, Bottom: crossEnd}
}

// extent maps a physical width and height onto cross and primary extents.
func (a axis) extent(w, h int) Extent {
	if a.vertical {
		return Extent{Cross: w, Primary: h}
	}
	return Extent{Cross: h, Primary: w}
}

// size maps an extent back to a physical width and height.
func (a axis) size(e Extent) (w, h int) {
	if a.vertical {
		return e.Cross, e.Primary
	}
	return e.Primary, e.Cross
}

// leading orders the two leading slivers of a split. The sliver along the
// physical top edge always precedes the one along the left edge.
func (a axis) leading(crossLead, primaryLead []model.Rect) []model.Rect {
	if a.vertical {
		return append(primaryLead, crossLead...)
	}
	return append(crossLead, primaryLead...)
}
