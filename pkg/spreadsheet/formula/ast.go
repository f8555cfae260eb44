package formula

import (
	"strconv"

	"github.com/IsidroTrevino/sebasnote-sub000/pkg/spreadsheet/models"
)

// Node is a parsed formula. The concrete types below are the only
// implementations; Eval switches over them.
type Node interface {
	node()
}

// AggregateFunc names one of the range aggregate functions.
type AggregateFunc string

const (
	FuncSum     AggregateFunc = "SUM"
	FuncAverage AggregateFunc = "AVERAGE"
	FuncCount   AggregateFunc = "COUNT"
	FuncMin     AggregateFunc = "MIN"
	FuncMax     AggregateFunc = "MAX"
)

// ArgKind tells how an aggregate argument contributes values.
type ArgKind int

const (
	ArgRange ArgKind = iota
	ArgRef
	ArgNumber
	// ArgIgnored is accepted but never contributes.
	ArgIgnored
)

// Arg is one item of an aggregate argument list.
type Arg struct {
	Kind   ArgKind
	Range  models.Range
	Number float64
}

// Operand is a reference or a plain number.
type Operand struct {
	IsRef  bool
	Ref    models.Coord
	Number float64
}

// CompareOp is a comparison operator of an IF condition.
type CompareOp string

const (
	OpGreater      CompareOp = ">"
	OpLess         CompareOp = "<"
	OpEqual        CompareOp = "="
	OpGreaterEqual CompareOp = ">="
	OpLessEqual    CompareOp = "<="
	OpNotEqual     CompareOp = "!="
)

// ArithOp is a binary arithmetic operator.
type ArithOp byte

const (
	OpAdd ArithOp = '+'
	OpSub ArithOp = '-'
	OpMul ArithOp = '*'
	OpDiv ArithOp = '/'
)

// Aggregate is SUM/AVERAGE/COUNT/MIN/MAX over its arguments.
type Aggregate struct {
	Func AggregateFunc
	Args []Arg
}

// If is IF(<ref> <op> <number>, then, else). Branches are literal text.
type If struct {
	Ref   models.Coord
	Op    CompareOp
	Bound float64
	Then  string
	Else  string
}

// ConcatPart is a literal or a reference inside CONCAT.
type ConcatPart struct {
	IsRef   bool
	Ref     models.Coord
	Literal string
}

// Concat joins its parts with no separator.
type Concat struct {
	Parts []ConcatPart
}

// Abs is ABS(operand).
type Abs struct {
	Arg Operand
}

// Round is ROUND(operand[, digits]).
type Round struct {
	Arg    Operand
	Digits int
}

// Binary is "A op B".
type Binary struct {
	Op    ArithOp
	Left  Operand
	Right Operand
}

// Ref is a bare single reference.
type Ref struct {
	At models.Coord
}

func (*Aggregate) node() {}
func (*If) node()        {}
func (*Concat) node()    {}
func (*Abs) node()       {}
func (*Round) node()     {}
func (*Binary) node()    {}
func (*Ref) node()       {}

// formatNumber renders a float the way the grid stores numbers: shortest
// representation, no trailing zeros, no negative zero.
func formatNumber(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
