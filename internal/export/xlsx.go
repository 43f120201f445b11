package export

import (
	"fmt"

	"github.com/piwi3910/staggergrid/internal/model"
	"github.com/xuri/excelize/v2"
)

const placementSheet = "Placements"

var placementHeaders = []string{
	"#", "ID", "Label", "Width", "Height",
	"Cell Left", "Cell Top", "Cell Right", "Cell Bottom",
	"Frame Left", "Frame Top", "Frame Right", "Frame Bottom",
}

// ExportXLSX writes one row per placement plus a summary sheet.
func ExportXLSX(path string, result model.LayoutResult) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), placementSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(placementSheet, "A1", &placementHeaders); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, p := range result.Placements {
		row := []interface{}{
			i + 1, p.Item.ID, p.Item.Label, p.Item.Width, p.Item.Height,
			p.Cell.Left, p.Cell.Top, p.Cell.Right, p.Cell.Bottom,
			p.Frame.Left, p.Frame.Top, p.Frame.Right, p.Frame.Bottom,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(placementSheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	if _, err := f.NewSheet("Summary"); err != nil {
		return fmt.Errorf("add summary sheet: %w", err)
	}
	s := result.Settings
	summary := [][]interface{}{
		{"Container Width", result.Container.Width},
		{"Container Height", result.Container.Height},
		{"Width", result.Width},
		{"Height", result.Height},
		{"Efficiency %", result.Efficiency()},
		{"Orientation", s.Orientation.String()},
		{"Fullable", s.Fullable},
		{"Unit Size", s.UnitSize},
		{"Group Count", s.GroupCount},
	}
	for i, row := range summary {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow("Summary", cell, &row); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
