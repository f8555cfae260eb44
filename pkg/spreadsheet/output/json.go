// Package output provides JSON serialization of spreadsheet documents.
package output

import (
	"encoding/json"
	"fmt"

	"github.com/IsidroTrevino/sebasnote-sub000/pkg/spreadsheet/models"
)

// ToJSON serializes a spreadsheet in its persisted layout:
// {rows, cols, cells: {"r_c": {value, formula?, format?}}}.
func ToJSON(sheet *models.Spreadsheet, pretty bool) ([]byte, error) {
	return marshal(sheet, pretty)
}

// FromJSON parses a persisted spreadsheet document.
func FromJSON(data []byte) (*models.Spreadsheet, error) {
	var sheet models.Spreadsheet
	if err := json.Unmarshal(data, &sheet); err != nil {
		return nil, fmt.Errorf("decode spreadsheet: %w", err)
	}
	if sheet.Rows < 1 || sheet.Cols < 1 {
		return nil, fmt.Errorf("decode spreadsheet: invalid dimensions %dx%d", sheet.Rows, sheet.Cols)
	}
	if sheet.Cells == nil {
		sheet.Cells = make(map[string]models.Cell)
	}
	return &sheet, nil
}

// UpdatesToJSON serializes a batch of cell updates.
func UpdatesToJSON(updates []models.CellUpdate, pretty bool) ([]byte, error) {
	if updates == nil {
		updates = []models.CellUpdate{}
	}
	return marshal(updates, pretty)
}

// RangesToJSON serializes detected tables or other ranges.
func RangesToJSON(ranges []models.Range, pretty bool) ([]byte, error) {
	if ranges == nil {
		ranges = []models.Range{}
	}
	return marshal(ranges, pretty)
}

func marshal(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
