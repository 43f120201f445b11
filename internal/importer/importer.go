// Package importer reads tile lists from CSV, Excel and DXF files.
// It supports automatic delimiter detection, flexible column mapping, and
// case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/piwi3910/staggergrid/internal/model"
	"github.com/xuri/excelize/v2"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Items    []model.Item
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Label    int
	Width    int
	Height   int
	Quantity int
	Margin   int
	Gravity  int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"label":    {"label", "name", "tile", "title", "description", "desc", "item", "id"},
	"width":    {"width", "w", "x"},
	"height":   {"height", "h", "y"},
	"quantity": {"quantity", "qty", "count", "num", "amount", "copies"},
	"margin":   {"margin", "margins", "spacing", "gap"},
	"gravity":  {"gravity", "align", "alignment", "anchor"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		// Only consider delimiters that produce more than 1 column
		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// Returns the mapping and true if a header was detected, or a default positional
// mapping and false if no header was found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{
		Label:    -1,
		Width:    -1,
		Height:   -1,
		Quantity: -1,
		Margin:   -1,
		Gravity:  -1,
	}
	slots := map[string]*int{
		"label":    &mapping.Label,
		"width":    &mapping.Width,
		"height":   &mapping.Height,
		"quantity": &mapping.Quantity,
		"margin":   &mapping.Margin,
		"gravity":  &mapping.Gravity,
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized == alias {
					isHeader = true
					if slot := slots[role]; *slot == -1 {
						*slot = i
					}
				}
			}
		}
	}

	if !isHeader {
		// Positional: Label, Width, Height, Quantity, Margin, Gravity
		return ColumnMapping{
			Label:    0,
			Width:    1,
			Height:   2,
			Quantity: 3,
			Margin:   4,
			Gravity:  5,
		}, false
	}

	return mapping, true
}

// ParseGravity parses "center" (both axes) or "horizontal/vertical", e.g.
// "end/center". Separators may be '/', ':' or whitespace.
func ParseGravity(s string) (model.Gravity, bool) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == '/' || r == ':' || r == ' ' || r == '\t'
	})
	switch len(fields) {
	case 0:
		return model.Gravity{}, true
	case 1:
		a, ok := model.ParseAlign(fields[0])
		if !ok {
			return model.Gravity{}, false
		}
		switch strings.ToLower(fields[0]) {
		case "top", "bottom":
			return model.Gravity{Vertical: a}, true
		case "left", "right", "start", "end":
			return model.Gravity{Horizontal: a}, true
		}
		return model.Gravity{Horizontal: a, Vertical: a}, true
	case 2:
		h, okH := model.ParseAlign(fields[0])
		v, okV := model.ParseAlign(fields[1])
		if !okH || !okV || v == model.AlignLeft || v == model.AlignRight {
			return model.Gravity{}, false
		}
		return model.Gravity{Horizontal: h, Vertical: v}, true
	default:
		return model.Gravity{}, false
	}
}

// ParseMargin parses one value for all sides or four values "left top right bottom".
func ParseMargin(s string) (model.Insets, bool) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == '/' || r == ' ' || r == '\t'
	})
	vals := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil || v < 0 {
			return model.Insets{}, false
		}
		vals[i] = v
	}
	switch len(vals) {
	case 0:
		return model.Insets{}, true
	case 1:
		return model.Insets{Left: vals[0], Top: vals[0], Right: vals[0], Bottom: vals[0]}, true
	case 4:
		return model.Insets{Left: vals[0], Top: vals[1], Right: vals[2], Bottom: vals[3]}, true
	default:
		return model.Insets{}, false
	}
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseSize parses a dimension and rounds it up to whole layout units.
func parseSize(s string) (int, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return int(math.Ceil(v)), nil
}

// parseRow extracts an Item from a row using the given column mapping.
// Returns the item, any error message, and any warning messages.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, itemCount int) (model.Item, string, []string) {
	label := getCell(row, mapping.Label)
	if label == "" {
		label = fmt.Sprintf("Tile %d", itemCount+1)
	}

	widthStr := getCell(row, mapping.Width)
	if widthStr == "" {
		return model.Item{}, fmt.Sprintf("%s: Missing width value", rowLabel), nil
	}
	width, err := parseSize(widthStr)
	if err != nil {
		return model.Item{}, fmt.Sprintf("%s: Invalid width '%s'", rowLabel, widthStr), nil
	}

	heightStr := getCell(row, mapping.Height)
	if heightStr == "" {
		return model.Item{}, fmt.Sprintf("%s: Missing height value", rowLabel), nil
	}
	height, err := parseSize(heightStr)
	if err != nil {
		return model.Item{}, fmt.Sprintf("%s: Invalid height '%s'", rowLabel, heightStr), nil
	}

	qty := 1
	if qtyStr := getCell(row, mapping.Quantity); qtyStr != "" {
		qty, err = strconv.Atoi(qtyStr)
		if err != nil {
			return model.Item{}, fmt.Sprintf("%s: Invalid quantity '%s'", rowLabel, qtyStr), nil
		}
	}

	if width <= 0 || height <= 0 || qty <= 0 {
		return model.Item{}, fmt.Sprintf("%s: Width, height, and quantity must be positive", rowLabel), nil
	}

	item := model.NewItem(label, width, height, qty)

	var warnings []string
	if marginStr := getCell(row, mapping.Margin); marginStr != "" {
		if m, ok := ParseMargin(marginStr); ok {
			item.Margin = m
		} else {
			warnings = append(warnings, fmt.Sprintf("%s: Invalid margin '%s', using 0", rowLabel, marginStr))
		}
	}
	if gravityStr := getCell(row, mapping.Gravity); gravityStr != "" {
		if g, ok := ParseGravity(gravityStr); ok {
			item.Gravity = g
		} else {
			warnings = append(warnings, fmt.Sprintf("%s: Unknown gravity '%s', using container gravity", rowLabel, gravityStr))
		}
	}

	return item, "", warnings
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports items from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	records, err := readCSV(bytes.NewReader(data), delimiter)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", result.Warnings)
}

// ImportCSVFromReader imports items from a CSV reader with a specific delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	result := ImportResult{}

	records, err := readCSV(reader, delimiter)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", nil)
}

func readCSV(r io.Reader, delimiter rune) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	return reader.ReadAll()
}

// ImportExcel imports items from the first sheet of an Excel file.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// importFromRows is the shared import logic for both CSV and Excel data.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		missing := []string{}
		if mapping.Width == -1 {
			missing = append(missing, "Width")
		}
		if mapping.Height == -1 {
			missing = append(missing, "Height")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if len(rows[0]) >= 3 {
		// A non-numeric width means an unrecognized header row
		if _, err := strconv.ParseFloat(strings.TrimSpace(rows[0][1]), 64); err != nil {
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		item, errMsg, warnings := parseRow(row, mapping, rowLabel, len(result.Items))
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		result.Warnings = append(result.Warnings, warnings...)
		result.Items = append(result.Items, item)
	}

	return result
}
