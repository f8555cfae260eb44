// Package parser converts between workbook files and spreadsheet grids and
// finds table regions inside a grid.
package parser

import (
	"math"

	"github.com/xuri/excelize/v2"
)

// PixelsPerInch is the screen resolution assumed for size conversions.
// 1 inch = 72 points = 96 pixels.
const PixelsPerInch = 96

// Default rendered sizes of a grid cell, in pixels.
const (
	DefaultColumnWidth = 100
	DefaultRowHeight   = 32
)

// Sizes Excel uses when a column or row has no explicit size.
const (
	excelDefaultColWidth  = 9.140625
	excelDefaultRowHeight = 15
)

// PointsToPixels converts a font or row size in points to pixels.
func PointsToPixels(pt float64) int {
	return int(math.Round(pt * PixelsPerInch / 72))
}

// PixelsToPoints converts pixels to points.
func PixelsToPoints(px int) float64 {
	return float64(px) * 72 / PixelsPerInch
}

// ColumnWidthToPixels converts an Excel column width (in characters of the
// default font) to pixels.
func ColumnWidthToPixels(width float64) int {
	return int(math.Round(width*7 + 5))
}

// ExtractGeometry reads explicit column widths and row heights of a sheet,
// in pixels, for the first cols columns and rows rows. Sizes equal to the
// grid defaults are omitted.
func ExtractGeometry(f *excelize.File, sheetName string, rows, cols int) (colWidths, rowHeights map[int]int) {
	colWidths = make(map[int]int)
	rowHeights = make(map[int]int)

	for c := 0; c < cols; c++ {
		name, err := excelize.ColumnNumberToName(c + 1)
		if err != nil {
			continue
		}
		w, err := f.GetColWidth(sheetName, name)
		if err != nil {
			continue
		}
		if px := ColumnWidthToPixels(w); px != ColumnWidthToPixels(excelDefaultColWidth) && px != DefaultColumnWidth {
			colWidths[c] = px
		}
	}
	for r := 0; r < rows; r++ {
		h, err := f.GetRowHeight(sheetName, r+1)
		if err != nil {
			continue
		}
		if px := PointsToPixels(h); px != PointsToPixels(excelDefaultRowHeight) && px != DefaultRowHeight {
			rowHeights[r] = px
		}
	}
	return colWidths, rowHeights
}
