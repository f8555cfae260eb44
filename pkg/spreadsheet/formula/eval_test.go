package formula

import (
	"testing"

	"github.com/IsidroTrevino/sebasnote-sub000/pkg/spreadsheet/cellref"
	"github.com/IsidroTrevino/sebasnote-sub000/pkg/spreadsheet/models"
)

// grid is a Reader keyed by reference for compact fixtures. It spans
// A1:Z100.
type grid map[string]string

func (g grid) Value(row, col int) string {
	return g[cellref.Format(models.Coord{Row: row, Col: col})]
}

func (g grid) Bounds() models.Range {
	return models.Range{R2: 99, C2: 25}
}

func TestEvaluate(t *testing.T) {
	cells := grid{"A1": "2", "A2": "4", "A3": "", "B1": "0", "C1": "hello", "C2": "-7.5", "D1": "=A1+1"}

	tests := []struct {
		formula  string
		expected string
	}{
		{"plain text", "plain text"},
		{"42", "42"},
		{"=SUM(A1:A3)", "6"},
		{"=sum(a1:a3)", "6"},
		{"=SUM(A3:A1)", "6"},
		{"=SUM(A1,A2,10)", "16"},
		{"=SUM(A1:A2,-1)", "5"},
		{"=AVERAGE(A1:A3)", "3.00"},
		{"=AVERAGE(A3)", "0"},
		{"=COUNT(A1:A3)", "2"},
		{"=COUNT(C1)", "0"},
		{"=MIN(A1:A3)", "2"},
		{"=MAX(A1:A3,C2)", "4"},
		{"=MIN(A3)", "0"},
		{"=MAX(C1)", "0"},
		{"=A1/B1", "#DIV/0!"},
		{"=A2/A1", "2"},
		{"=A1*A2", "8"},
		{"=A2-10", "-6"},
		{"=1/4", "0.25"},
		{"=A1+C1", "2"},
		{"=A1 + 3", "5"},
		{`=IF(A1>3,"big","small")`, "small"},
		{`=IF(A2>3,"big","small")`, "big"},
		{`=IF(A1>=2,"yes","no")`, "yes"},
		{`=IF(A1!=2,"yes","no")`, "no"},
		{`=IF(A1=2,1,0)`, "1"},
		{`=IF(A3<1,"x","y")`, "y"},
		{`=IF(A3!=1,"x","y")`, "x"},
		{`=IF(C2<-5,"neg","pos")`, "neg"},
		{`=IF(A1>1,yes,no)`, "YES"},
		{`=CONCAT("Total: ",A2)`, "Total: 4"},
		{`=CONCAT(C1,"-",D1)`, "hello-=A1+1"},
		{"=ABS(C2)", "7.5"},
		{"=ROUND(C2)", "-8"},
		{"=ROUND(A2,1)", "4"},
		{"=A1", "2"},
		{"=A3", "0"},
		{"=D1", "=A1+1"},
		{"=FOO(1,2)", "#ERROR"},
		{"=SUM()", "#ERROR"},
		{"=SUM(A1:A2)+1", "#ERROR"},
		{"=A1+A2+A3", "#ERROR"},
		{"=5", "#ERROR"},
		{"=", "#ERROR"},
		{"=IF(A1,1,2)", "#ERROR"},
		{`=ABS(A1,A2)`, "#ERROR"},

		// malformed references
		{"=A0", "#ERROR"},
		{"=A0+1", "#ERROR"},
		{"=A99999999999999999999", "#ERROR"},
		{"=SUM(A0,A0)", "#ERROR"},
		{"=SUM(A0:B2)", "#ERROR"},
		{"=CONCAT(A0)", "#ERROR"},
		{`=IF(A0>1,"x","y")`, "#ERROR"},
		{"=ABS(A0)", "#ERROR"},
		{"=ABCDEFGH1", "#ERROR"},

		// ranges and references past the grid edge
		{"=COUNT(A1:ZZZ2000000)", "4"},
		{"=SUM(A1:ZZZ2000000)", "-1.5"},
		{"=SUM(AA500:AB600)", "0"},
		{"=COUNT(Y99:AZ200)", "0"},
		{"=A500", "0"},
		{"=AA1+1", "1"},
	}

	for _, tt := range tests {
		result := Evaluate(tt.formula, cells)
		if result != tt.expected {
			t.Errorf("Evaluate(%q) = %q, expected %q", tt.formula, result, tt.expected)
		}
	}
}

func TestEvaluateWithSpreadsheet(t *testing.T) {
	s := models.NewSpreadsheet(3, 3)
	s.Set(0, 0, models.Cell{Value: "5"})
	if got := Evaluate(`=IF(A1>3,"big","small")`, s); got != "big" {
		t.Errorf("expected big, got %q", got)
	}
	s.Set(0, 0, models.Cell{Value: "1"})
	if got := Evaluate(`=IF(A1>3,"big","small")`, s); got != "small" {
		t.Errorf("expected small, got %q", got)
	}
}

func TestRoundHalf(t *testing.T) {
	cells := grid{"A1": "2.345", "A2": "2.5"}
	if got := Evaluate("=ROUND(A1,2)", cells); got != "2.35" && got != "2.34" {
		t.Errorf("ROUND(A1,2) = %q", got)
	}
	if got := Evaluate("=ROUND(A2)", cells); got != "3" {
		t.Errorf("ROUND(A2) = %q, expected 3", got)
	}
}

func TestExpectsReference(t *testing.T) {
	tests := []struct {
		buffer   string
		expected bool
	}{
		{"=", true},
		{"=A1+", true},
		{"=SUM(", true},
		{"=SUM(A1,", true},
		{"=SUM(A1:", true},
		{"=A1", false},
		{"=SUM(A1)", false},
		{"A1+", false},
		{"", false},
		{"=A1 * ", true},
	}
	for _, tt := range tests {
		if got := ExpectsReference(tt.buffer); got != tt.expected {
			t.Errorf("ExpectsReference(%q) = %v, expected %v", tt.buffer, got, tt.expected)
		}
	}
}

func TestReferences(t *testing.T) {
	bounds := models.Range{R2: 9, C2: 9}
	refs := References("=SUM(A1:B2)", bounds)
	expected := []models.Coord{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 1, Col: 0}, {Row: 1, Col: 1}}
	if len(refs) != len(expected) {
		t.Fatalf("expected %d references, got %d", len(expected), len(refs))
	}
	for i := range refs {
		if refs[i] != expected[i] {
			t.Errorf("reference %d = %v, expected %v", i, refs[i], expected[i])
		}
	}
	if refs := References("=C3/D4", bounds); len(refs) != 2 || refs[0] != (models.Coord{Row: 2, Col: 2}) {
		t.Errorf("unexpected references %v", refs)
	}
	if refs := References("=FOO(A1)", bounds); refs != nil {
		t.Errorf("expected nil for unparseable formula, got %v", refs)
	}
	if refs := References("=SUM(I9:ZZZ2000000)", bounds); len(refs) != 4 {
		t.Errorf("expected the range clipped to 4 cells, got %d", len(refs))
	}
	if refs := References("=A1+K20", bounds); len(refs) != 1 {
		t.Errorf("expected the out-of-grid reference dropped, got %v", refs)
	}
}
