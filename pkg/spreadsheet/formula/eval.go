// Package formula implements the grid's small formula language: a
// tokenizer, a tagged-variant AST and an evaluator over the cell store.
package formula

import (
	"math"
	"strconv"
	"strings"

	"github.com/IsidroTrevino/sebasnote-sub000/pkg/spreadsheet/models"
)

// Error markers stored as a cell's value when evaluation fails.
const (
	ErrorMarker   = "#ERROR"
	DivZeroMarker = "#DIV/0!"
)

// Reader gives read access to stored cell values. Cells outside Bounds
// are empty.
type Reader interface {
	Value(row, col int) string
	Bounds() models.Range
}

// IsErrorMarker reports whether v is one of the evaluator's error markers.
func IsErrorMarker(v string) bool {
	return v == ErrorMarker || v == DivZeroMarker
}

// Evaluate computes the display value of a formula. Input that does not
// start with "=" is returned unchanged. Evaluation reads stored values only
// and never recurses into other formulas; it never panics.
func Evaluate(formula string, cells Reader) (result string) {
	if !strings.HasPrefix(formula, "=") {
		return formula
	}
	defer func() {
		if r := recover(); r != nil {
			result = ErrorMarker
		}
	}()
	node, err := Parse(formula)
	if err != nil {
		return ErrorMarker
	}
	return Eval(node, cells)
}

// Eval evaluates a parsed formula against cells.
func Eval(node Node, cells Reader) string {
	switch n := node.(type) {
	case *Aggregate:
		return evalAggregate(n, cells)
	case *If:
		return evalIf(n, cells)
	case *Concat:
		var b strings.Builder
		for _, part := range n.Parts {
			if part.IsRef {
				b.WriteString(cells.Value(part.Ref.Row, part.Ref.Col))
			} else {
				b.WriteString(part.Literal)
			}
		}
		return b.String()
	case *Abs:
		return finite(math.Abs(operandValue(n.Arg, cells)))
	case *Round:
		p := math.Pow(10, float64(n.Digits))
		return finite(math.Round(operandValue(n.Arg, cells)*p) / p)
	case *Binary:
		return evalBinary(n, cells)
	case *Ref:
		v := cells.Value(n.At.Row, n.At.Col)
		if v == "" {
			return "0"
		}
		return v
	}
	return ErrorMarker
}

func evalAggregate(n *Aggregate, cells Reader) string {
	var values []float64
	for _, arg := range n.Args {
		switch arg.Kind {
		case ArgNumber:
			values = append(values, arg.Number)
		case ArgRange, ArgRef:
			r, ok := arg.Range.Intersect(cells.Bounds())
			if !ok {
				continue
			}
			for row := r.R1; row <= r.R2; row++ {
				for col := r.C1; col <= r.C2; col++ {
					if v, ok := numeric(cells.Value(row, col)); ok {
						values = append(values, v)
					}
				}
			}
		}
	}

	switch n.Func {
	case FuncSum:
		return finite(sum(values))
	case FuncAverage:
		if len(values) == 0 {
			return "0"
		}
		return strconv.FormatFloat(sum(values)/float64(len(values)), 'f', 2, 64)
	case FuncCount:
		return strconv.Itoa(len(values))
	case FuncMin, FuncMax:
		if len(values) == 0 {
			return "0"
		}
		best := values[0]
		for _, v := range values[1:] {
			if (n.Func == FuncMin && v < best) || (n.Func == FuncMax && v > best) {
				best = v
			}
		}
		return finite(best)
	}
	return ErrorMarker
}

func evalIf(n *If, cells Reader) string {
	v, ok := numeric(cells.Value(n.Ref.Row, n.Ref.Col))
	if !ok {
		v = math.NaN()
	}
	var hit bool
	switch n.Op {
	case OpGreater:
		hit = v > n.Bound
	case OpLess:
		hit = v < n.Bound
	case OpEqual:
		hit = v == n.Bound
	case OpGreaterEqual:
		hit = v >= n.Bound
	case OpLessEqual:
		hit = v <= n.Bound
	case OpNotEqual:
		hit = v != n.Bound
	}
	if hit {
		return n.Then
	}
	return n.Else
}

func evalBinary(n *Binary, cells Reader) string {
	a := operandValue(n.Left, cells)
	b := operandValue(n.Right, cells)
	switch n.Op {
	case OpAdd:
		return finite(a + b)
	case OpSub:
		return finite(a - b)
	case OpMul:
		return finite(a * b)
	case OpDiv:
		if b == 0 {
			return DivZeroMarker
		}
		return finite(a / b)
	}
	return ErrorMarker
}

// operandValue resolves an operand to a number; empty or non-numeric cells
// count as 0.
func operandValue(op Operand, cells Reader) float64 {
	if !op.IsRef {
		return op.Number
	}
	v, ok := numeric(cells.Value(op.Ref.Row, op.Ref.Col))
	if !ok {
		return 0
	}
	return v
}

// numeric parses a stored value as a number.
func numeric(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

func sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}

func finite(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ErrorMarker
	}
	return formatNumber(v)
}

// ExpectsReference reports whether an edit buffer holding a formula ends
// where a cell reference can be inserted: after "=", an operator, a comma
// or an open parenthesis.
func ExpectsReference(buffer string) bool {
	if !strings.HasPrefix(buffer, "=") {
		return false
	}
	trimmed := strings.TrimRight(buffer, " ")
	if trimmed == "" {
		return false
	}
	return strings.ContainsRune("=+-*/(,:<>", rune(trimmed[len(trimmed)-1]))
}

// References lists the cells inside bounds a formula reads, in order of
// appearance. Ranges are expanded after clipping to bounds. Unparseable
// formulas yield nil.
func References(formula string, bounds models.Range) []models.Coord {
	node, err := Parse(formula)
	if err != nil {
		return nil
	}
	var out []models.Coord
	add := func(c models.Coord) {
		if bounds.Contains(c) {
			out = append(out, c)
		}
	}
	switch n := node.(type) {
	case *Aggregate:
		for _, arg := range n.Args {
			if arg.Kind != ArgRange && arg.Kind != ArgRef {
				continue
			}
			if r, ok := arg.Range.Intersect(bounds); ok {
				out = append(out, r.Cells()...)
			}
		}
	case *If:
		add(n.Ref)
	case *Concat:
		for _, part := range n.Parts {
			if part.IsRef {
				add(part.Ref)
			}
		}
	case *Abs:
		if n.Arg.IsRef {
			add(n.Arg.Ref)
		}
	case *Round:
		if n.Arg.IsRef {
			add(n.Arg.Ref)
		}
	case *Binary:
		if n.Left.IsRef {
			add(n.Left.Ref)
		}
		if n.Right.IsRef {
			add(n.Right.Ref)
		}
	case *Ref:
		add(n.At)
	}
	return out
}
