package engine

import "github.com/piwi3910/staggergrid/internal/model"

// Position returns the top-left corner of a w x h item aligned inside cell.
// The cell already includes the item margins; the margins push the item away
// from the edge it is aligned to, and shift a centered item by their difference.
func Position(cell model.Rect, w, h int, margin model.Insets, g model.Gravity, rtl bool) (left, top int) {
	switch resolveHorizontal(g.Horizontal, rtl) {
	case model.AlignCenter:
		left = cell.Left + (cell.Width()-w)/2 + margin.Left - margin.Right
	case model.AlignRight:
		left = cell.Right - w - margin.Right
	default:
		left = cell.Left + margin.Left
	}

	switch g.Vertical {
	case model.AlignCenter:
		top = cell.Top + (cell.Height()-h)/2 + margin.Top - margin.Bottom
	case model.AlignEnd:
		top = cell.Bottom - h - margin.Bottom
	default:
		top = cell.Top + margin.Top
	}
	return left, top
}

// resolveHorizontal maps relative alignments to AlignLeft or AlignRight.
func resolveHorizontal(a model.Align, rtl bool) model.Align {
	switch a {
	case model.AlignCenter, model.AlignLeft, model.AlignRight:
		return a
	case model.AlignEnd:
		if rtl {
			return model.AlignLeft
		}
		return model.AlignRight
	default:
		if rtl {
			return model.AlignRight
		}
		return model.AlignLeft
	}
}
