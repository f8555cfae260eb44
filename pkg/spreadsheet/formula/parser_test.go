package formula

import (
	"errors"
	"testing"

	"github.com/IsidroTrevino/sebasnote-sub000/pkg/spreadsheet/models"
)

func TestParseVariants(t *testing.T) {
	tests := []struct {
		formula string
		check   func(Node) bool
	}{
		{"=SUM(A1:B2, 3)", func(n Node) bool {
			a, ok := n.(*Aggregate)
			return ok && a.Func == FuncSum && len(a.Args) == 2 &&
				a.Args[0].Kind == ArgRange && a.Args[0].Range == models.Range{R1: 0, C1: 0, R2: 1, C2: 1} &&
				a.Args[1].Kind == ArgNumber && a.Args[1].Number == 3
		}},
		{`=IF(B3 <= 10, "low", "high")`, func(n Node) bool {
			i, ok := n.(*If)
			return ok && i.Ref == models.Coord{Row: 2, Col: 1} && i.Op == OpLessEqual &&
				i.Bound == 10 && i.Then == "low" && i.Else == "high"
		}},
		{`=CONCAT("a", C1)`, func(n Node) bool {
			c, ok := n.(*Concat)
			return ok && len(c.Parts) == 2 && !c.Parts[0].IsRef && c.Parts[1].IsRef
		}},
		{"=ABS(A1)", func(n Node) bool {
			a, ok := n.(*Abs)
			return ok && a.Arg.IsRef
		}},
		{"=ROUND(A1, 2)", func(n Node) bool {
			r, ok := n.(*Round)
			return ok && r.Digits == 2
		}},
		{"=A1*2", func(n Node) bool {
			b, ok := n.(*Binary)
			return ok && b.Op == OpMul && b.Left.IsRef && !b.Right.IsRef && b.Right.Number == 2
		}},
		{"=z10", func(n Node) bool {
			r, ok := n.(*Ref)
			return ok && r.At == models.Coord{Row: 9, Col: 25}
		}},
	}

	for _, tt := range tests {
		node, err := Parse(tt.formula)
		if err != nil {
			t.Errorf("Parse(%q) failed: %v", tt.formula, err)
			continue
		}
		if !tt.check(node) {
			t.Errorf("Parse(%q) produced unexpected node %#v", tt.formula, node)
		}
	}
}

func TestParseErrors(t *testing.T) {
	for _, f := range []string{"=FOO(1,2)", "=ROUND(A1,1.5)", "=IF(A1>B1,1,2)", "=A1&B1", "=SUM(SUM(A1))", "=A0", "=SUM(A0:B2)", "=CONCAT(A0)", "=A99999999999999999999"} {
		_, err := Parse(f)
		if err == nil {
			t.Errorf("Parse(%q) expected error", f)
			continue
		}
		if !errors.Is(err, ErrUnsupported) {
			t.Errorf("Parse(%q) error %v does not wrap ErrUnsupported", f, err)
		}
	}
}
