package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/staggergrid/internal/model"
	qrcode "github.com/skip2/go-qrcode"
)

// TagInfo holds the data encoded into each tile tag's QR code.
type TagInfo struct {
	Index  int        `json:"index"`
	ID     string     `json:"id"`
	Label  string     `json:"label"`
	Width  int        `json:"width"`
	Height int        `json:"height"`
	Frame  model.Rect `json:"frame"`
}

// Tag layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
// Each tag cell is approximately 66.7mm x 25.4mm on US Letter paper.
const (
	tagMarginTop  = 12.7 // mm
	tagMarginLeft = 4.8  // mm
	tagWidth      = 66.7 // mm per tag
	tagHeight     = 25.4 // mm per tag
	tagCols       = 3
	tagRows       = 10
	tagsPerPage   = tagCols * tagRows
	qrSize        = 20.0 // QR code size in mm
	tagPadding    = 2.0  // mm internal padding
)

// CollectTagInfos extracts one tag per placed tile, in placement order.
func CollectTagInfos(result model.LayoutResult) []TagInfo {
	tags := make([]TagInfo, 0, len(result.Placements))
	for i, p := range result.Placements {
		tags = append(tags, TagInfo{
			Index:  i + 1,
			ID:     p.Item.ID,
			Label:  p.Item.Label,
			Width:  p.Item.Width,
			Height: p.Item.Height,
			Frame:  p.Frame,
		})
	}
	return tags
}

// ExportTags generates a PDF of QR-coded tags for all placed tiles, laid out
// on a standard label sheet (Avery 5160, 3 columns x 10 rows on US Letter).
func ExportTags(path string, result model.LayoutResult) error {
	tags := CollectTagInfos(result)
	if len(tags) == 0 {
		return fmt.Errorf("no tiles placed to generate tags for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, tag := range tags {
		if i%tagsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % tagsPerPage
		col := posOnPage % tagCols
		row := posOnPage / tagCols

		x := tagMarginLeft + float64(col)*tagWidth
		y := tagMarginTop + float64(row)*tagHeight

		if err := renderTag(pdf, x, y, tag); err != nil {
			return fmt.Errorf("failed to render tag for %q: %w", tag.Label, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderTag draws a single tag at the given position.
func renderTag(pdf *fpdf.Fpdf, x, y float64, info TagInfo) error {
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, tagWidth, tagHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal tag info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%d", info.Index)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + tagWidth - qrSize - tagPadding
	qrY := y + (tagHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + tagPadding
	textW := tagWidth - qrSize - 3*tagPadding

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+tagPadding)

	label := info.Label
	if pdf.GetStringWidth(label) > textW {
		for len(label) > 0 && pdf.GetStringWidth(label+"...") > textW {
			label = label[:len(label)-1]
		}
		label += "..."
	}
	pdf.CellFormat(textW, 4.5, label, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+tagPadding+5)
	pdf.CellFormat(textW, 3.5, fmt.Sprintf("%d x %d", info.Width, info.Height), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+tagPadding+9)
	pos := fmt.Sprintf("#%d @ (%d, %d)", info.Index, info.Frame.Left, info.Frame.Top)
	pdf.CellFormat(textW, 3, pos, "", 1, "L", false, 0, "")

	pdf.SetTextColor(0, 0, 0)
	return nil
}
