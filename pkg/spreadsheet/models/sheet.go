package models

import (
	"slices"
	"strconv"
	"strings"
)

// Spreadsheet is the grid owned by one board.
type Spreadsheet struct {
	// Rows is the number of grid rows (>= 1).
	Rows int `json:"rows"`
	// Cols is the number of grid columns (>= 1).
	Cols int `json:"cols"`
	// Cells maps "row_col" keys to cell content. A missing key is an empty cell.
	Cells map[string]Cell `json:"cells"`
}

// NewSpreadsheet creates a grid with every cell pre-populated as blank.
func NewSpreadsheet(rows, cols int) *Spreadsheet {
	rows = max(rows, 1)
	cols = max(cols, 1)
	s := &Spreadsheet{
		Rows:  rows,
		Cols:  cols,
		Cells: make(map[string]Cell, rows*cols),
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			s.Cells[Key(r, c)] = Cell{}
		}
	}
	return s
}

// Key returns the persisted key for a coordinate.
func Key(row, col int) string {
	return strconv.Itoa(row) + "_" + strconv.Itoa(col)
}

// ParseKey splits a "row_col" key.
func ParseKey(key string) (Coord, bool) {
	rs, cs, ok := strings.Cut(key, "_")
	if !ok {
		return Coord{}, false
	}
	row, err := strconv.Atoi(rs)
	if err != nil || row < 0 {
		return Coord{}, false
	}
	col, err := strconv.Atoi(cs)
	if err != nil || col < 0 {
		return Coord{}, false
	}
	return Coord{Row: row, Col: col}, true
}

// InBounds reports whether (row, col) addresses a cell of the grid.
func (s *Spreadsheet) InBounds(row, col int) bool {
	return row >= 0 && col >= 0 && row < s.Rows && col < s.Cols
}

// Bounds returns the range covering the whole grid.
func (s *Spreadsheet) Bounds() Range {
	return Range{R1: 0, C1: 0, R2: s.Rows - 1, C2: s.Cols - 1}
}

// Cell returns the cell at (row, col), or an empty cell.
func (s *Spreadsheet) Cell(row, col int) Cell {
	if s.Cells == nil {
		return Cell{}
	}
	return s.Cells[Key(row, col)]
}

// Value returns the stored value at (row, col).
func (s *Spreadsheet) Value(row, col int) string {
	return s.Cell(row, col).Value
}

// Set stores c at (row, col) as is.
func (s *Spreadsheet) Set(row, col int, c Cell) {
	if s.Cells == nil {
		s.Cells = make(map[string]Cell)
	}
	s.Cells[Key(row, col)] = c
}

// Apply upserts one update. It returns false when the coordinate is out of
// bounds, in which case nothing is written.
func (s *Spreadsheet) Apply(u CellUpdate) bool {
	if !s.InBounds(u.Row, u.Col) {
		return false
	}
	c := s.Cell(u.Row, u.Col)
	if u.Value != nil {
		c.Value = *u.Value
	}
	if u.Formula != nil {
		c.Formula = *u.Formula
	}
	if u.Format != nil {
		if u.ReplaceFormat {
			c.Format = CloneFormat(u.Format)
		} else {
			c.Format = MergeFormat(c.Format, *u.Format)
		}
	}
	s.Set(u.Row, u.Col, c)
	return true
}

// Resize grows the grid and fills the new area with blank cells. Shrinking
// is not supported; smaller dimensions are ignored.
func (s *Spreadsheet) Resize(rows, cols int) {
	rows = max(rows, s.Rows)
	cols = max(cols, s.Cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if r < s.Rows && c < s.Cols {
				continue
			}
			if _, ok := s.Cells[Key(r, c)]; !ok {
				s.Set(r, c, Cell{})
			}
		}
	}
	s.Rows, s.Cols = rows, cols
}

// FormulaCells returns the coordinates of every in-bounds cell with a formula.
func (s *Spreadsheet) FormulaCells() []Coord {
	var out []Coord
	for key, c := range s.Cells {
		if !c.HasFormula() {
			continue
		}
		pos, ok := ParseKey(key)
		if !ok || !s.InBounds(pos.Row, pos.Col) {
			continue
		}
		out = append(out, pos)
	}
	sortCoords(out)
	return out
}

// FormattedCells returns, in row-major order, every in-bounds cell carrying
// a border or background.
func (s *Spreadsheet) FormattedCells() []Coord {
	var out []Coord
	for key, c := range s.Cells {
		if !c.Format.HasBorder() && !c.Format.HasBackground() {
			continue
		}
		pos, ok := ParseKey(key)
		if !ok || !s.InBounds(pos.Row, pos.Col) {
			continue
		}
		out = append(out, pos)
	}
	sortCoords(out)
	return out
}

func sortCoords(cs []Coord) {
	slices.SortFunc(cs, func(a, b Coord) int {
		if a.Row != b.Row {
			return a.Row - b.Row
		}
		return a.Col - b.Col
	})
}
