package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/IsidroTrevino/sebasnote-sub000/pkg/spreadsheet/models"
	"github.com/xuri/excelize/v2"
)

// Import limits; anything beyond is ignored.
const (
	MaxImportRows = 5000
	MaxImportCols = 702 // ZZ
)

// ExtractCells reads a sheet into a spreadsheet grid: values, formulas and
// the subset of styles the grid understands.
func ExtractCells(f *excelize.File, sheetName string) (*models.Spreadsheet, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	bounds := models.Range{R1: 0, C1: 0, R2: len(rows) - 1, C2: 0}
	for _, row := range rows {
		bounds.C2 = max(bounds.C2, len(row)-1)
	}
	if dim, err := f.GetSheetDimension(sheetName); err == nil && dim != "" {
		if r, ok := ParseRange(dim); ok {
			bounds.R2 = max(bounds.R2, r.R2)
			bounds.C2 = max(bounds.C2, r.C2)
		}
	}
	bounds.R2 = min(max(bounds.R2, 0), MaxImportRows-1)
	bounds.C2 = min(max(bounds.C2, 0), MaxImportCols-1)

	sheet := models.NewSpreadsheet(bounds.R2+1, bounds.C2+1)
	styles := make(map[int]*models.CellFormat)

	for _, pos := range bounds.Cells() {
		cellName, _ := excelize.CoordinatesToCellName(pos.Col+1, pos.Row+1)

		var cell models.Cell
		if pos.Row < len(rows) && pos.Col < len(rows[pos.Row]) {
			cell.Value = rows[pos.Row][pos.Col]
		}
		if formula, err := f.GetCellFormula(sheetName, cellName); err == nil && formula != "" {
			cell.Formula = "=" + strings.TrimPrefix(formula, "=")
		}

		styleID, err := f.GetCellStyle(sheetName, cellName)
		if err == nil && styleID != 0 {
			format, ok := styles[styleID]
			if !ok {
				if style, err := f.GetStyle(styleID); err == nil {
					format = StyleToFormat(style)
				}
				styles[styleID] = format
			}
			cell.Format = models.CloneFormat(format)
		}

		if cell.Value != "" || cell.Formula != "" || cell.Format != nil {
			sheet.Set(pos.Row, pos.Col, cell)
		}
	}

	return sheet, nil
}

// StyleToFormat maps an excelize style onto a cell format. It returns nil
// when nothing the grid renders is set.
func StyleToFormat(style *excelize.Style) *models.CellFormat {
	if style == nil {
		return nil
	}
	var f models.CellFormat

	if font := style.Font; font != nil {
		if font.Bold {
			f.Bold = models.Bool(true)
		}
		if font.Italic {
			f.Italic = models.Bool(true)
		}
		if font.Size > 0 {
			f.FontSize = PointsToPixels(font.Size)
		}
		f.TextColor = cssColor(font.Color)
	}
	if a := style.Alignment; a != nil {
		switch models.Alignment(a.Horizontal) {
		case models.AlignLeft, models.AlignCenter, models.AlignRight:
			f.Align = models.Alignment(a.Horizontal)
		}
	}
	if style.Fill.Type == "pattern" && style.Fill.Pattern == 1 && len(style.Fill.Color) > 0 {
		f.BackgroundColor = cssColor(style.Fill.Color[0])
	}
	for _, b := range style.Border {
		spec := borderSpec(b)
		switch b.Type {
		case "top":
			f.BorderTop = spec
		case "right":
			f.BorderRight = spec
		case "bottom":
			f.BorderBottom = spec
		case "left":
			f.BorderLeft = spec
		}
	}
	f.NumberFormat = numberFormatOf(style.NumFmt)

	if f == (models.CellFormat{}) {
		return nil
	}
	return &f
}

// FormatToStyle is the inverse of StyleToFormat, used on export.
func FormatToStyle(f *models.CellFormat) *excelize.Style {
	if f == nil {
		return nil
	}
	style := &excelize.Style{}

	if f.IsBold() || f.IsItalic() || f.FontSize > 0 || f.TextColor != "" {
		style.Font = &excelize.Font{
			Bold:   f.IsBold(),
			Italic: f.IsItalic(),
			Color:  excelColor(f.TextColor),
		}
		if f.FontSize > 0 {
			style.Font.Size = PixelsToPoints(f.FontSize)
		}
	}
	if f.Align != "" {
		style.Alignment = &excelize.Alignment{Horizontal: string(f.Align)}
	}
	if f.HasBackground() {
		style.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{excelColor(f.BackgroundColor)}}
	}
	for _, edge := range []struct {
		side string
		spec string
	}{
		{"top", f.BorderTop},
		{"right", f.BorderRight},
		{"bottom", f.BorderBottom},
		{"left", f.BorderLeft},
	} {
		if !models.BorderSet(edge.spec) {
			continue
		}
		b := parseBorderSpec(edge.spec)
		b.Type = edge.side
		style.Border = append(style.Border, b)
	}
	switch f.NumberFormat {
	case models.NumberFormatNumber:
		style.NumFmt = 4
	case models.NumberFormatCurrency:
		style.NumFmt = 7
	case models.NumberFormatPercent:
		style.NumFmt = 10
	}
	return style
}

// ParseValue converts a stored string into the typed value written to a
// workbook: int64 for integers, float64 for decimals, else the string.
func ParseValue(s string) interface{} {
	// Try integer first
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	// Try float
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	// Return as string
	return s
}

func numberFormatOf(numFmt int) models.NumberFormat {
	switch numFmt {
	case 1, 2, 3, 4:
		return models.NumberFormatNumber
	case 5, 6, 7, 8:
		return models.NumberFormatCurrency
	case 9, 10:
		return models.NumberFormatPercent
	case 49:
		return models.NumberFormatText
	}
	return ""
}

// borderStyles maps excelize border style indexes to CSS width and style.
var borderStyles = map[int]struct {
	width int
	style string
}{
	1: {1, "solid"},
	2: {2, "solid"},
	3: {1, "dashed"},
	4: {1, "dotted"},
	5: {3, "solid"},
	6: {3, "double"},
	7: {1, "solid"},
	8: {2, "dashed"},
}

func borderSpec(b excelize.Border) string {
	bs, ok := borderStyles[b.Style]
	if !ok {
		bs = borderStyles[1]
	}
	color := cssColor(b.Color)
	if color == "" {
		color = "#000000"
	}
	return fmt.Sprintf("%dpx %s %s", bs.width, bs.style, color)
}

func parseBorderSpec(spec string) excelize.Border {
	b := excelize.Border{Style: 1, Color: "000000"}
	width := 1
	style := "solid"
	for _, field := range strings.Fields(spec) {
		switch {
		case strings.HasSuffix(field, "px"):
			if w, err := strconv.Atoi(strings.TrimSuffix(field, "px")); err == nil {
				width = w
			}
		case strings.HasPrefix(field, "#"):
			b.Color = excelColor(field)
		default:
			style = field
		}
	}
	for idx, bs := range borderStyles {
		if bs.style == style && bs.width == width && idx != 7 {
			b.Style = idx
			return b
		}
	}
	switch {
	case width >= 3:
		b.Style = 5
	case width == 2:
		b.Style = 2
	}
	return b
}

// cssColor turns "FF00FF00" or "00FF00" into "#00FF00".
func cssColor(c string) string {
	c = strings.TrimPrefix(strings.TrimSpace(c), "#")
	if len(c) == 8 {
		c = c[2:]
	}
	if len(c) != 6 {
		return ""
	}
	return "#" + strings.ToUpper(c)
}

func excelColor(c string) string {
	css := cssColor(c)
	if css == "" {
		return ""
	}
	return css[1:]
}
