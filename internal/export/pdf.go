// Package export writes arranged layouts to PDF, tag sheets, Excel and JSON.
package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/staggergrid/internal/model"
)

// tileColor represents an RGB color for a placed tile.
type tileColor struct {
	R, G, B int
}

// tileColors mirrors the color scheme used in the UI layout canvas widget.
var tileColors = []tileColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	legendHeight = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF writes the layout diagram on one page followed by a summary page.
func ExportPDF(path string, result model.LayoutResult) error {
	if len(result.Placements) == 0 {
		return fmt.Errorf("no tiles to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	pdf.AddPage()
	renderLayoutPage(pdf, result)

	pdf.AddPage()
	renderSummaryPage(pdf, result)

	return pdf.OutputFileAndClose(path)
}

// renderLayoutPage draws the scaled layout with cells, frames and labels.
func renderLayoutPage(pdf *fpdf.Fpdf, result model.LayoutResult) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Layout %d x %d (%s)", result.Width, result.Height, result.Settings.Orientation)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Tiles: %d | Used area: %.0f | Total area: %.0f | Efficiency: %.1f%%",
		len(result.Placements), result.UsedArea(), result.TotalArea(), result.Efficiency())
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - legendHeight

	layoutW := math.Max(float64(result.Width), 1)
	layoutH := math.Max(float64(result.Height), 1)
	scale := math.Min(drawWidth/layoutW, drawHeight/layoutH)

	canvasW := layoutW * scale
	canvasH := layoutH * scale
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Container background
	pdf.SetFillColor(245, 245, 245)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	for i, p := range result.Placements {
		col := tileColors[i%len(tileColors)]

		// Cell outline, dashed to distinguish it from the frame
		pdf.SetDrawColor(160, 160, 160)
		pdf.SetLineWidth(0.1)
		pdf.SetDashPattern([]float64{0.8, 0.8}, 0)
		cx, cy, cw, ch := scaleRect(p.Cell, scale, offsetX, offsetY)
		pdf.Rect(cx, cy, cw, ch, "D")
		pdf.SetDashPattern([]float64{}, 0)

		fx, fy, fw, fh := scaleRect(p.Frame, scale, offsetX, offsetY)
		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(fx, fy, fw, fh, "FD")

		if fw > 15 && fh > 8 {
			pdf.SetFont("Helvetica", "", labelFontSize(fw, fh))
			pdf.SetTextColor(0, 0, 0)

			label := p.Item.Label
			dims := fmt.Sprintf("%dx%d", p.Item.Width, p.Item.Height)
			labelW := pdf.GetStringWidth(label)
			dimsW := pdf.GetStringWidth(dims)

			if labelW < fw-2 {
				pdf.SetXY(fx+(fw-labelW)/2, fy+fh/2-4)
				pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
			}
			if fh > 14 && dimsW < fw-2 {
				pdf.SetXY(fx+(fw-dimsW)/2, fy+fh/2)
				pdf.CellFormat(dimsW, 4, dims, "", 0, "C", false, 0, "")
			}
		}
	}

	drawDimensionAnnotations(pdf, result, offsetX, offsetY, canvasW, canvasH)
	drawTilesLegend(pdf, result, offsetY+canvasH+5)
}

func scaleRect(r model.Rect, scale, offsetX, offsetY float64) (x, y, w, h float64) {
	return offsetX + float64(r.Left)*scale,
		offsetY + float64(r.Top)*scale,
		float64(r.Width()) * scale,
		float64(r.Height()) * scale
}

// drawDimensionAnnotations adds width and height labels outside the layout rectangle.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, result model.LayoutResult, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	widthLabel := fmt.Sprintf("%d", result.Width)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	heightLabel := fmt.Sprintf("%d", result.Height)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offsetX-3-hLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawTilesLegend renders a compact legend of placed tiles below the layout.
func drawTilesLegend(pdf *fpdf.Fpdf, result model.LayoutResult, startY float64) {
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Tiles placed:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := pageWidth - marginRight

	for i, p := range result.Placements {
		if startY > pageHeight-marginBottom {
			break
		}
		col := tileColors[i%len(tileColors)]
		label := fmt.Sprintf("%s (%dx%d)", p.Item.Label, p.Item.Width, p.Item.Height)
		labelW := pdf.GetStringWidth(label) + 6

		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")

		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 2
	}
}

// renderSummaryPage draws overall statistics, the settings used and a
// placement table.
func renderSummaryPage(pdf *fpdf.Fpdf, result model.LayoutResult) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Layout Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18
	s := result.Settings

	summaryItems := []struct {
		label string
		value string
	}{
		{"Container", fmt.Sprintf("%d x %d", result.Container.Width, result.Container.Height)},
		{"Arranged Size", fmt.Sprintf("%d x %d", result.Width, result.Height)},
		{"Efficiency", fmt.Sprintf("%.1f%%", result.Efficiency())},
		{"Orientation", s.Orientation.String()},
		{"Fill Leading Gaps", fmt.Sprintf("%t", s.Fullable)},
		{"Unit Size", fmt.Sprintf("%d", s.UnitSize)},
		{"Column Groups", fmt.Sprintf("%d", s.GroupCount)},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5
	colWidths := []float64{15, 70, 35, 60, 60}
	headers := []string{"#", "Tile", "Size", "Cell", "Frame"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, p := range result.Placements {
		if y > pageHeight-marginBottom-6 {
			pdf.AddPage()
			y = marginTop
		}
		rowData := []string{
			fmt.Sprintf("%d", i+1),
			p.Item.Label,
			fmt.Sprintf("%d x %d", p.Item.Width, p.Item.Height),
			formatRect(p.Cell),
			formatRect(p.Frame),
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		xPos = marginLeft
		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by StaggerGrid", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

func formatRect(r model.Rect) string {
	return fmt.Sprintf("(%d, %d) %dx%d", r.Left, r.Top, r.Width(), r.Height())
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}
