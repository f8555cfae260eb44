package parser

import (
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestUnitConversions(t *testing.T) {
	if got := PointsToPixels(12); got != 16 {
		t.Errorf("Expected 12pt to be 16px, got %d", got)
	}
	if got := PixelsToPoints(16); got != 12 {
		t.Errorf("Expected 16px to be 12pt, got %v", got)
	}
	if got := ColumnWidthToPixels(20); got != 145 {
		t.Errorf("Expected width 20 to be 145px, got %d", got)
	}
}

func TestExtractGeometry(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetColWidth("Sheet1", "B", "B", 20); err != nil {
		t.Fatalf("Failed to set column width: %v", err)
	}
	if err := f.SetRowHeight("Sheet1", 3, 30); err != nil {
		t.Fatalf("Failed to set row height: %v", err)
	}

	colWidths, rowHeights := ExtractGeometry(f, "Sheet1", 4, 4)

	if len(colWidths) != 1 || colWidths[1] != 145 {
		t.Errorf("Expected only column B at 145px, got %v", colWidths)
	}
	if len(rowHeights) != 1 || rowHeights[2] != 40 {
		t.Errorf("Expected only row 3 at 40px, got %v", rowHeights)
	}
}
