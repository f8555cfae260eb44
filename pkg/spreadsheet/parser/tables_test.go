package parser

import (
	"testing"

	"github.com/IsidroTrevino/sebasnote-sub000/pkg/spreadsheet/models"
)

func bordered(s *models.Spreadsheet, r models.Range) {
	for _, c := range r.Cells() {
		s.Set(c.Row, c.Col, models.Cell{Format: &models.CellFormat{BorderTop: "1px solid #000"}})
	}
}

func TestDetectTableAt(t *testing.T) {
	s := models.NewSpreadsheet(10, 10)
	bordered(s, models.Range{R1: 1, C1: 1, R2: 2, C2: 2})

	got, ok := DetectTableAt(s, 2, 2, DefaultTableParams())
	if !ok {
		t.Fatal("expected a table")
	}
	if got != (models.Range{R1: 1, C1: 1, R2: 2, C2: 2}) {
		t.Errorf("unexpected bounds %v", got)
	}

	if _, ok := DetectTableAt(s, 0, 0, DefaultTableParams()); ok {
		t.Error("unformatted start cell must not yield a table")
	}
}

func TestDetectTableRejectsSmallRegions(t *testing.T) {
	s := models.NewSpreadsheet(10, 10)
	s.Set(5, 5, models.Cell{Format: &models.CellFormat{BackgroundColor: "#eee"}})
	bordered(s, models.Range{R1: 0, C1: 0, R2: 4, C2: 0})

	if _, ok := DetectTableAt(s, 5, 5, DefaultTableParams()); ok {
		t.Error("single background cell is not a table")
	}
	if _, ok := DetectTableAt(s, 2, 0, DefaultTableParams()); ok {
		t.Error("1-wide strip is not a table")
	}
}

func TestDetectTableDiagonalNotConnected(t *testing.T) {
	s := models.NewSpreadsheet(4, 4)
	bordered(s, models.SingleCell(models.Coord{Row: 0, Col: 0}))
	bordered(s, models.SingleCell(models.Coord{Row: 1, Col: 1}))
	if _, ok := DetectTableAt(s, 0, 0, DefaultTableParams()); ok {
		t.Error("diagonal neighbours are not 4-connected")
	}
}

func TestFindTables(t *testing.T) {
	s := models.NewSpreadsheet(12, 12)
	bordered(s, models.Range{R1: 0, C1: 0, R2: 2, C2: 3})
	bordered(s, models.Range{R1: 6, C1: 6, R2: 7, C2: 7})
	s.Set(10, 10, models.Cell{Format: &models.CellFormat{BackgroundColor: "#eee"}})

	tables := FindTables(s, DefaultTableParams())
	if len(tables) != 2 {
		t.Fatalf("Expected 2 tables, got %d: %v", len(tables), tables)
	}
	if tables[0] != (models.Range{R1: 0, C1: 0, R2: 2, C2: 3}) {
		t.Errorf("first table = %v", tables[0])
	}
	if tables[1] != (models.Range{R1: 6, C1: 6, R2: 7, C2: 7}) {
		t.Errorf("second table = %v", tables[1])
	}

	if _, ok := TableAt(tables, models.Coord{Row: 6, Col: 6}); !ok {
		t.Error("TableAt did not find the second table by origin")
	}
	if _, ok := TableAt(tables, models.Coord{Row: 7, Col: 7}); ok {
		t.Error("TableAt must match the top-left corner only")
	}
}
