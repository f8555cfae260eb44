package models

import (
	"dario.cat/mergo"
	"github.com/tiendc/go-deepcopy"
)

// CellUpdate is one record of a batch update.
type CellUpdate struct {
	// Row is the target row (0-based).
	Row int `json:"row"`
	// Col is the target column (0-based).
	Col int `json:"col"`
	// Value replaces the stored value when set.
	Value *string `json:"value,omitempty"`
	// Formula replaces the stored formula when set; "" removes it.
	Formula *string `json:"formula,omitempty"`
	// Format is merged into the current format, or replaces it when
	// ReplaceFormat is true.
	Format *CellFormat `json:"format,omitempty"`
	// ReplaceFormat overwrites the format wholesale instead of merging.
	ReplaceFormat bool `json:"replaceFormat,omitempty"`
}

// Coord returns the update's target coordinate.
func (u CellUpdate) Coord() Coord {
	return Coord{Row: u.Row, Col: u.Col}
}

// ClearUpdate resets value, formula and format of (row, col).
func ClearUpdate(row, col int) CellUpdate {
	return CellUpdate{
		Row:           row,
		Col:           col,
		Value:         String(""),
		Formula:       String(""),
		Format:        &CellFormat{},
		ReplaceFormat: true,
	}
}

// WriteUpdate replaces the whole content of (row, col) with c.
func WriteUpdate(row, col int, c Cell) CellUpdate {
	format := CloneFormat(c.Format)
	if format == nil {
		format = &CellFormat{}
	}
	return CellUpdate{
		Row:           row,
		Col:           col,
		Value:         String(c.Value),
		Formula:       String(c.Formula),
		Format:        format,
		ReplaceFormat: true,
	}
}

// MergeFormat applies patch over current and returns the result. Fields
// left at their zero value in patch keep the current setting; pointer
// fields set to false are applied.
func MergeFormat(current *CellFormat, patch CellFormat) *CellFormat {
	out := CloneFormat(current)
	if out == nil {
		out = &CellFormat{}
	}
	src := CloneFormat(&patch)
	if err := mergo.Merge(out, src, mergo.WithOverride, mergo.WithoutDereference); err != nil {
		// mergo only fails on mismatched types, which cannot happen here
		return out
	}
	return out
}

// CloneFormat returns a deep copy of f.
func CloneFormat(f *CellFormat) *CellFormat {
	if f == nil {
		return nil
	}
	var out CellFormat
	if err := deepcopy.Copy(&out, *f); err != nil {
		out = *f
		if f.Bold != nil {
			out.Bold = Bool(*f.Bold)
		}
		if f.Italic != nil {
			out.Italic = Bool(*f.Italic)
		}
	}
	return &out
}

// CloneCell returns a deep copy of c, including its format.
func CloneCell(c Cell) Cell {
	return Cell{Value: c.Value, Formula: c.Formula, Format: CloneFormat(c.Format)}
}

// Clone returns a deep copy of the spreadsheet.
func (s *Spreadsheet) Clone() *Spreadsheet {
	out := &Spreadsheet{Rows: s.Rows, Cols: s.Cols}
	if err := deepcopy.Copy(&out.Cells, s.Cells); err != nil {
		out.Cells = make(map[string]Cell, len(s.Cells))
		for k, c := range s.Cells {
			out.Cells[k] = CloneCell(c)
		}
	}
	return out
}
