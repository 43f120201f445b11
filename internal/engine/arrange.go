package engine

import "github.com/piwi3910/staggergrid/internal/model"

// Arrange packs items into container c and aligns each one inside its cell.
// Items are used as given; call model.ExpandItems first to honour quantities.
func Arrange(items []model.Item, c model.Container, s model.Settings, obs Observer) model.LayoutResult {
	s = s.Normalized()
	ax := newAxis(s.Orientation)
	pad := s.Padding

	crossExtent := c.Width - pad.Horizontal()
	if s.Orientation == model.Horizontal {
		crossExtent = c.Height - pad.Vertical()
	}

	extents := make([]Extent, len(items))
	for i, it := range items {
		extents[i] = ax.extent(it.OuterWidth(), it.OuterHeight())
	}

	opts := OptionsFromSettings(s)
	opts.Observer = obs
	packing := NewPacker(opts).Pack(extents, crossExtent)

	result := model.LayoutResult{
		Container:  c,
		Settings:   s,
		Placements: make([]model.Placement, len(items)),
	}
	for i, it := range items {
		cell := packing.Placements[i].Offset(pad.Left, pad.Top)
		left, top := Position(cell, it.Width, it.Height, it.Margin, it.Gravity.Or(s.Gravity), s.RTL)
		result.Placements[i] = model.Placement{
			Item:  it,
			Cell:  cell,
			Frame: model.Rect{Left: left, Top: top, Right: left + it.Width, Bottom: top + it.Height},
		}
	}

	w, h := ax.size(packing.Bounds)
	result.Width = w + pad.Horizontal()
	result.Height = h + pad.Vertical()
	return result
}
