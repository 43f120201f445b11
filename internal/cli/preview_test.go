package cli

import (
	"testing"

	"github.com/piwi3910/staggergrid/internal/engine"
	"github.com/piwi3910/staggergrid/internal/model"
)

func TestPreviewGrid(t *testing.T) {
	result := model.LayoutResult{
		Width:  100,
		Height: 40,
		Placements: []model.Placement{
			{Frame: model.Rect{Left: 0, Top: 0, Right: 100, Bottom: 20}},
			{Frame: model.Rect{Left: 0, Top: 20, Right: 50, Bottom: 40}},
		},
	}

	grid := previewGrid(result, 10)
	if len(grid) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(grid))
	}
	for x := 0; x < 10; x++ {
		if grid[0][x] != 0 {
			t.Errorf("row 0 col %d: expected tile 0, got %d", x, grid[0][x])
		}
	}
	for x := 0; x < 5; x++ {
		if grid[1][x] != 1 {
			t.Errorf("row 1 col %d: expected tile 1, got %d", x, grid[1][x])
		}
	}
	for x := 5; x < 10; x++ {
		if grid[1][x] != emptyCell {
			t.Errorf("row 1 col %d: expected empty, got %d", x, grid[1][x])
		}
	}
}

func TestPreviewGrid_TinyFrameStillVisible(t *testing.T) {
	result := model.LayoutResult{
		Width:  1000,
		Height: 10,
		Placements: []model.Placement{
			{Frame: model.Rect{Left: 999, Top: 0, Right: 1000, Bottom: 1}},
		},
	}

	grid := previewGrid(result, 10)
	if len(grid) != 1 {
		t.Fatalf("expected 1 row, got %d", len(grid))
	}
	if grid[0][9] != 0 {
		t.Errorf("expected the tile in the last column, got %v", grid[0])
	}
}

func TestPreviewGrid_FrameOutsideLeftEdgeIsClipped(t *testing.T) {
	result := model.LayoutResult{
		Width:  100,
		Height: 20,
		Placements: []model.Placement{
			{Frame: model.Rect{Left: -50, Top: -4, Right: 150, Bottom: 20}},
		},
	}

	grid := previewGrid(result, 10)
	if len(grid) != 1 {
		t.Fatalf("expected 1 row, got %d", len(grid))
	}
	for x := 0; x < 10; x++ {
		if grid[0][x] != 0 {
			t.Errorf("col %d: expected tile 0, got %d", x, grid[0][x])
		}
	}
}

func TestRenderPreview_CenteredItemWiderThanContainer(t *testing.T) {
	s := model.DefaultSettings()
	s.Gravity = model.Gravity{Horizontal: model.AlignCenter}
	items := []model.Item{{Label: "wide", Width: 200, Height: 20, Quantity: 1}}
	result := engine.Arrange(items, model.Container{Width: 100, Height: 100}, s, nil)

	if len(result.Placements) != 1 {
		t.Fatalf("expected 1 placement, got %d", len(result.Placements))
	}
	if result.Placements[0].Frame.Left >= 0 {
		t.Fatalf("expected the centered frame to overhang the left edge, got %+v", result.Placements[0].Frame)
	}

	grid := previewGrid(result, 40)
	if len(grid) == 0 || grid[0][0] != 0 {
		t.Errorf("expected the wide tile in the first column, got %v", grid)
	}
	if renderPreview(result, 40) == "" {
		t.Error("expected a rendering")
	}
}

func TestPreviewGrid_Empty(t *testing.T) {
	if previewGrid(model.LayoutResult{}, 10) != nil {
		t.Error("expected nil grid for an empty layout")
	}
	if got := renderPreview(model.LayoutResult{}, 10); got == "" {
		t.Error("expected placeholder text")
	}
}

func TestTileRune(t *testing.T) {
	if tileRune(0) != 'A' || tileRune(25) != 'Z' || tileRune(26) != 'A' {
		t.Error("unexpected tile letters")
	}
}
