package parser

import (
	"github.com/IsidroTrevino/sebasnote-sub000/pkg/spreadsheet/models"
)

// TableDetectionParams holds parameters for table detection.
type TableDetectionParams struct {
	MinRows int
	MinCols int
}

// DefaultTableParams returns default table detection parameters.
func DefaultTableParams() TableDetectionParams {
	return TableDetectionParams{
		MinRows: 2,
		MinCols: 2,
	}
}

// DetectTableAt flood-fills from (row, col) over 4-connected cells that
// carry a border or a background and returns the bounding box of the
// region. It returns false when the start cell is not formatted or the box
// is smaller than the minimum table size.
func DetectTableAt(sheet *models.Spreadsheet, row, col int, params TableDetectionParams) (models.Range, bool) {
	region, ok := floodFill(sheet, models.Coord{Row: row, Col: col}, nil)
	if !ok {
		return models.Range{}, false
	}
	box := boundsOf(region)
	if box.Height() < params.MinRows || box.Width() < params.MinCols {
		return models.Range{}, false
	}
	return box, true
}

// FindTables scans formatted cells in row-major order and returns every
// table, each discovered once from its first cell. Cells already consumed
// by an earlier table are skipped.
func FindTables(sheet *models.Spreadsheet, params TableDetectionParams) []models.Range {
	var tables []models.Range
	consumed := make(map[models.Coord]bool)

	for _, start := range sheet.FormattedCells() {
		if consumed[start] {
			continue
		}
		region, ok := floodFill(sheet, start, consumed)
		if !ok {
			continue
		}
		box := boundsOf(region)
		if box.Height() < params.MinRows || box.Width() < params.MinCols {
			continue
		}
		for _, c := range box.Cells() {
			consumed[c] = true
		}
		tables = append(tables, box)
	}

	return tables
}

// TableAt returns the table whose top-left corner is origin.
func TableAt(tables []models.Range, origin models.Coord) (models.Range, bool) {
	for _, t := range tables {
		if t.TopLeft() == origin {
			return t, true
		}
	}
	return models.Range{}, false
}

// isTableCell reports whether a cell takes part in table detection.
func isTableCell(sheet *models.Spreadsheet, c models.Coord) bool {
	if !sheet.InBounds(c.Row, c.Col) {
		return false
	}
	f := sheet.Cell(c.Row, c.Col).Format
	return f.HasBorder() || f.HasBackground()
}

// floodFill collects the 4-connected formatted region containing start,
// marking visited cells in seen when it is non-nil.
func floodFill(sheet *models.Spreadsheet, start models.Coord, seen map[models.Coord]bool) ([]models.Coord, bool) {
	if !isTableCell(sheet, start) {
		return nil, false
	}
	if seen == nil {
		seen = make(map[models.Coord]bool)
	}

	var region []models.Coord
	visited := map[models.Coord]bool{start: true}
	queue := []models.Coord{start}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		region = append(region, c)
		seen[c] = true

		for _, next := range [...]models.Coord{c.Add(-1, 0), c.Add(1, 0), c.Add(0, -1), c.Add(0, 1)} {
			if visited[next] || !isTableCell(sheet, next) {
				continue
			}
			visited[next] = true
			queue = append(queue, next)
		}
	}
	return region, true
}

// boundsOf finds the bounding box of a set of cells.
func boundsOf(cells []models.Coord) models.Range {
	box := models.SingleCell(cells[0])
	for _, c := range cells[1:] {
		box.R1 = min(box.R1, c.Row)
		box.R2 = max(box.R2, c.Row)
		box.C1 = min(box.C1, c.Col)
		box.C2 = max(box.C2, c.Col)
	}
	return box
}
