package models

import (
	"testing"
)

func TestKeyRoundTrip(t *testing.T) {
	tests := []struct {
		row, col int
		key      string
	}{
		{0, 0, "0_0"},
		{12, 3, "12_3"},
		{99, 100, "99_100"},
	}
	for _, tt := range tests {
		if got := Key(tt.row, tt.col); got != tt.key {
			t.Errorf("Key(%d, %d) = %q, expected %q", tt.row, tt.col, got, tt.key)
		}
		c, ok := ParseKey(tt.key)
		if !ok || c.Row != tt.row || c.Col != tt.col {
			t.Errorf("ParseKey(%q) = %v, %v", tt.key, c, ok)
		}
	}
	for _, bad := range []string{"", "1", "a_b", "-1_2", "1_"} {
		if _, ok := ParseKey(bad); ok {
			t.Errorf("ParseKey(%q) should fail", bad)
		}
	}
}

func TestNewSpreadsheetPrepopulates(t *testing.T) {
	s := NewSpreadsheet(3, 2)
	if len(s.Cells) != 6 {
		t.Errorf("Expected 6 cells, got %d", len(s.Cells))
	}
	if s := NewSpreadsheet(0, -4); s.Rows != 1 || s.Cols != 1 {
		t.Errorf("Expected dimensions clamped to 1x1, got %dx%d", s.Rows, s.Cols)
	}
}

func TestApplyMergeAndReplace(t *testing.T) {
	s := NewSpreadsheet(2, 2)
	s.Apply(CellUpdate{Row: 0, Col: 0, Value: String("x"), Format: &CellFormat{Bold: Bool(true), BackgroundColor: "#fff"}})
	s.Apply(CellUpdate{Row: 0, Col: 0, Format: &CellFormat{Italic: Bool(true)}})

	c := s.Cell(0, 0)
	if c.Value != "x" || !c.Format.IsBold() || !c.Format.IsItalic() || c.Format.BackgroundColor != "#fff" {
		t.Errorf("merge lost fields: %+v", c.Format)
	}

	s.Apply(CellUpdate{Row: 0, Col: 0, Format: &CellFormat{Bold: Bool(false)}})
	if s.Cell(0, 0).Format.IsBold() {
		t.Error("explicit false did not override bold")
	}

	s.Apply(ClearUpdate(0, 0))
	c = s.Cell(0, 0)
	if c.Value != "" || c.Formula != "" || c.Format == nil || *c.Format != (CellFormat{}) {
		t.Errorf("clear did not reset the cell: %+v", c)
	}

	if s.Apply(CellUpdate{Row: 5, Col: 0, Value: String("y")}) {
		t.Error("out of bounds update should be rejected")
	}
	if _, ok := s.Cells[Key(5, 0)]; ok {
		t.Error("out of bounds update was written")
	}
}

func TestMergeFormatDoesNotAlias(t *testing.T) {
	patch := CellFormat{Bold: Bool(true)}
	merged := MergeFormat(nil, patch)
	*patch.Bold = false
	if !merged.IsBold() {
		t.Error("merged format shares memory with the patch")
	}
}

func TestResizeGrows(t *testing.T) {
	s := NewSpreadsheet(2, 2)
	s.Set(1, 1, Cell{Value: "keep"})
	s.Resize(3, 4)
	if s.Rows != 3 || s.Cols != 4 {
		t.Fatalf("Expected 3x4, got %dx%d", s.Rows, s.Cols)
	}
	if len(s.Cells) != 12 {
		t.Errorf("Expected 12 cells, got %d", len(s.Cells))
	}
	if s.Value(1, 1) != "keep" {
		t.Error("resize clobbered existing content")
	}
	s.Resize(1, 1)
	if s.Rows != 3 || s.Cols != 4 {
		t.Error("resize must not shrink")
	}
}

func TestFormattedCellsOrder(t *testing.T) {
	s := NewSpreadsheet(3, 3)
	s.Set(2, 0, Cell{Format: &CellFormat{BackgroundColor: "#eee"}})
	s.Set(0, 2, Cell{Format: &CellFormat{BorderTop: "1px solid #000"}})
	s.Set(1, 1, Cell{Format: &CellFormat{BorderTop: BorderNone, Bold: Bool(true)}})
	got := s.FormattedCells()
	if len(got) != 2 || got[0] != (Coord{Row: 0, Col: 2}) || got[1] != (Coord{Row: 2, Col: 0}) {
		t.Errorf("unexpected formatted cells %v", got)
	}
}

func TestCloneIsDeep(t *testing.T) {
	s := NewSpreadsheet(1, 1)
	s.Set(0, 0, Cell{Value: "a", Format: &CellFormat{Bold: Bool(true)}})
	c := s.Clone()
	*s.Cells[Key(0, 0)].Format.Bold = false
	if !c.Cell(0, 0).Format.IsBold() {
		t.Error("clone shares format memory")
	}
}

func TestRangeHelpers(t *testing.T) {
	r := NewRange(Coord{Row: 3, Col: 1}, Coord{Row: 1, Col: 4})
	if r != (Range{R1: 1, C1: 1, R2: 3, C2: 4}) {
		t.Fatalf("NewRange not normalized: %v", r)
	}
	if r.Height() != 3 || r.Width() != 4 || len(r.Cells()) != 12 {
		t.Errorf("unexpected size %dx%d", r.Height(), r.Width())
	}
	moved := r.MoveTo(Coord{Row: 0, Col: 0})
	if moved != (Range{R1: 0, C1: 0, R2: 2, C2: 3}) {
		t.Errorf("MoveTo = %v", moved)
	}
	if !r.Contains(Coord{Row: 2, Col: 2}) || r.Contains(Coord{Row: 0, Col: 2}) {
		t.Error("Contains is wrong")
	}
	if got, ok := r.Intersect(Range{R1: 2, C1: 0, R2: 2_000_000, C2: 18_000}); !ok || got != (Range{R1: 2, C1: 1, R2: 3, C2: 4}) {
		t.Errorf("Intersect = %v, %v", got, ok)
	}
	if _, ok := r.Intersect(Range{R1: 10, C1: 10, R2: 20, C2: 20}); ok {
		t.Error("Expected disjoint ranges not to intersect")
	}
}
