package parser

import (
	"strings"

	"github.com/IsidroTrevino/sebasnote-sub000/pkg/spreadsheet/models"
	"github.com/xuri/excelize/v2"
)

// ExtractPrintAreas returns the print areas defined for sheetName, as
// zero-based ranges.
func ExtractPrintAreas(f *excelize.File, sheetName string) []models.Range {
	var result []models.Range
	for _, dn := range f.GetDefinedName() {
		if !strings.EqualFold(dn.Name, "_xlnm.Print_Area") {
			continue
		}
		sheet, areas := ParseRangeReference(dn.RefersTo)
		if sheet == sheetName {
			result = append(result, areas...)
		}
	}
	return result
}

// ParseRangeReference parses a range reference list.
// Format: 'SheetName'!$A$1:$D$10,SheetName!B2 or plain A1:D10.
func ParseRangeReference(ref string) (string, []models.Range) {
	var areas []models.Range

	var sheetName string
	for _, part := range strings.Split(strings.TrimPrefix(ref, "="), ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		rangeStr := part
		if idx := strings.LastIndex(part, "!"); idx >= 0 {
			sheet := strings.Trim(part[:idx], "'")
			if sheetName == "" {
				sheetName = sheet
			}
			rangeStr = part[idx+1:]
		}

		if area, ok := ParseRange(rangeStr); ok {
			areas = append(areas, area)
		}
	}

	return sheetName, areas
}

// ParseRange parses a range string like $A$1:$D$10 (or a single cell) into
// a zero-based, normalized range.
func ParseRange(rangeStr string) (models.Range, bool) {
	rangeStr = strings.ReplaceAll(strings.TrimSpace(rangeStr), "$", "")

	start, end, found := strings.Cut(rangeStr, ":")
	if !found {
		end = start
	}

	startCol, startRow, err := excelize.CellNameToCoordinates(start)
	if err != nil {
		return models.Range{}, false
	}

	endCol, endRow, err := excelize.CellNameToCoordinates(end)
	if err != nil {
		return models.Range{}, false
	}

	return models.NewRange(
		models.Coord{Row: startRow - 1, Col: startCol - 1},
		models.Coord{Row: endRow - 1, Col: endCol - 1},
	), true
}
