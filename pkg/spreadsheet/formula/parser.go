package formula

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/IsidroTrevino/sebasnote-sub000/pkg/spreadsheet/cellref"
	"github.com/IsidroTrevino/sebasnote-sub000/pkg/spreadsheet/models"
)

// ErrUnsupported is returned for formula shapes outside the grammar.
var ErrUnsupported = errors.New("unsupported formula")

// ParseError describes why a formula could not be parsed.
type ParseError struct {
	Formula string
	Reason  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %q: %s", e.Formula, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return ErrUnsupported
}

// Parse turns a formula into its AST. The accepted shapes are tried in
// order: a whole function call, binary arithmetic, a bare reference.
func Parse(formula string) (Node, error) {
	tokens, err := Tokenize(formula)
	if err != nil {
		return nil, &ParseError{Formula: formula, Reason: err.Error()}
	}
	p := &parser{formula: formula, tokens: tokens}
	return p.parse()
}

type parser struct {
	formula string
	tokens  []Token
}

func (p *parser) fail(format string, args ...any) error {
	return &ParseError{Formula: p.formula, Reason: fmt.Sprintf(format, args...)}
}

func (p *parser) parse() (Node, error) {
	body := p.tokens[:len(p.tokens)-1] // drop EOF
	if len(body) == 0 {
		return nil, p.fail("empty formula")
	}
	if body[0].Kind == TokenFunctionStart {
		return p.parseCall(body)
	}
	if len(body) == 1 && body[0].Kind == TokenRef {
		at, err := p.ref(body[0])
		if err != nil {
			return nil, err
		}
		return &Ref{At: at}, nil
	}
	return p.parseBinary(body)
}

// parseCall handles NAME(args) spanning the whole formula.
func (p *parser) parseCall(body []Token) (Node, error) {
	name := body[0].Value
	args, rest, err := p.splitArgs(body[1:])
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, p.fail("unexpected tokens after %s(...)", name)
	}
	if len(args) == 0 {
		return nil, p.fail("%s needs arguments", name)
	}

	switch name {
	case string(FuncSum), string(FuncAverage), string(FuncCount), string(FuncMin), string(FuncMax):
		return p.parseAggregate(AggregateFunc(name), args)
	case "IF":
		return p.parseIf(args)
	case "CONCAT":
		return p.parseConcat(args)
	case "ABS":
		if len(args) != 1 {
			return nil, p.fail("ABS takes one argument")
		}
		op, err := p.operand(args[0])
		if err != nil {
			return nil, err
		}
		return &Abs{Arg: op}, nil
	case "ROUND":
		return p.parseRound(args)
	}
	return nil, p.fail("unknown function %s", name)
}

// splitArgs consumes tokens up to the FunctionStop matching an already
// consumed FunctionStart and splits them at top-level separators.
func (p *parser) splitArgs(tokens []Token) ([][]Token, []Token, error) {
	var (
		args    [][]Token
		current []Token
		depth   int
	)
	for i, t := range tokens {
		switch t.Kind {
		case TokenFunctionStart, TokenGroupStart:
			depth++
		case TokenGroupStop:
			depth--
		case TokenFunctionStop:
			if depth == 0 {
				if len(current) > 0 || len(args) > 0 {
					args = append(args, current)
				}
				return args, tokens[i+1:], nil
			}
			depth--
		case TokenArgSep:
			if depth == 0 {
				args = append(args, current)
				current = nil
				continue
			}
		}
		current = append(current, t)
	}
	return nil, nil, p.fail("unbalanced parentheses")
}

func (p *parser) parseAggregate(fn AggregateFunc, args [][]Token) (Node, error) {
	node := &Aggregate{Func: fn}
	for _, arg := range args {
		a, err := p.aggregateArg(arg)
		if err != nil {
			return nil, err
		}
		node.Args = append(node.Args, a)
	}
	return node, nil
}

func (p *parser) aggregateArg(tokens []Token) (Arg, error) {
	if n, ok := number(tokens); ok {
		return Arg{Kind: ArgNumber, Number: n}, nil
	}
	if len(tokens) != 1 {
		if len(tokens) == 0 {
			return Arg{Kind: ArgIgnored}, nil
		}
		return Arg{}, p.fail("nested expressions are not supported")
	}
	t := tokens[0]
	switch t.Kind {
	case TokenRange:
		r, ok := cellref.ParseRange(t.Value)
		if !ok {
			return Arg{}, p.fail("invalid range %q", t.Value)
		}
		return Arg{Kind: ArgRange, Range: r}, nil
	case TokenRef:
		at, err := p.ref(t)
		if err != nil {
			return Arg{}, err
		}
		return Arg{Kind: ArgRef, Range: models.SingleCell(at)}, nil
	case TokenText, TokenWord, TokenLogical:
		return Arg{Kind: ArgIgnored}, nil
	}
	return Arg{}, p.fail("unexpected argument %q", t.Value)
}

func (p *parser) parseIf(args [][]Token) (Node, error) {
	if len(args) != 3 {
		return nil, p.fail("IF takes three arguments")
	}
	cond := args[0]
	if len(cond) < 3 || cond[0].Kind != TokenRef || cond[1].Kind != TokenCompareOp {
		return nil, p.fail("IF condition must be <ref> <op> <number>")
	}
	bound, ok := number(cond[2:])
	if !ok {
		return nil, p.fail("IF condition must compare against a number")
	}
	op, err := compareOp(cond[1].Value)
	if err != nil {
		return nil, p.fail("%v", err)
	}
	at, err := p.ref(cond[0])
	if err != nil {
		return nil, err
	}

	then, err := p.branch(args[1])
	if err != nil {
		return nil, err
	}
	els, err := p.branch(args[2])
	if err != nil {
		return nil, err
	}
	return &If{Ref: at, Op: op, Bound: bound, Then: then, Else: els}, nil
}

// branch returns an IF branch verbatim: text literals unquoted, anything
// else as written (upper-cased).
func (p *parser) branch(tokens []Token) (string, error) {
	if len(tokens) == 2 && tokens[0].Kind == TokenPrefixOp && tokens[1].Kind == TokenNumber {
		return tokens[0].Value + tokens[1].Value, nil
	}
	if len(tokens) != 1 {
		return "", p.fail("IF branches must be a single value")
	}
	switch t := tokens[0]; t.Kind {
	case TokenText, TokenNumber, TokenRef, TokenRange, TokenWord, TokenLogical:
		return t.Value, nil
	}
	return "", p.fail("unexpected IF branch %q", tokens[0].Value)
}

func (p *parser) parseConcat(args [][]Token) (Node, error) {
	node := &Concat{}
	for _, arg := range args {
		if len(arg) != 1 {
			return nil, p.fail("CONCAT arguments must be literals or references")
		}
		switch t := arg[0]; t.Kind {
		case TokenText, TokenNumber:
			node.Parts = append(node.Parts, ConcatPart{Literal: t.Value})
		case TokenRef:
			at, err := p.ref(t)
			if err != nil {
				return nil, err
			}
			node.Parts = append(node.Parts, ConcatPart{IsRef: true, Ref: at})
		default:
			return nil, p.fail("unexpected CONCAT argument %q", t.Value)
		}
	}
	return node, nil
}

func (p *parser) parseRound(args [][]Token) (Node, error) {
	if len(args) < 1 || len(args) > 2 {
		return nil, p.fail("ROUND takes one or two arguments")
	}
	op, err := p.operand(args[0])
	if err != nil {
		return nil, err
	}
	node := &Round{Arg: op}
	if len(args) == 2 {
		d, ok := number(args[1])
		if !ok || d != float64(int(d)) {
			return nil, p.fail("ROUND digits must be an integer")
		}
		node.Digits = int(d)
	}
	return node, nil
}

// parseBinary handles "A op B" where A and B are references or numbers.
func (p *parser) parseBinary(body []Token) (Node, error) {
	for i, t := range body {
		if t.Kind != TokenInfixOp {
			continue
		}
		left, err := p.operand(body[:i])
		if err != nil {
			return nil, err
		}
		right, err := p.operand(body[i+1:])
		if err != nil {
			return nil, err
		}
		if len(t.Value) != 1 {
			return nil, p.fail("unsupported operator %q", t.Value)
		}
		op := ArithOp(t.Value[0])
		switch op {
		case OpAdd, OpSub, OpMul, OpDiv:
			return &Binary{Op: op, Left: left, Right: right}, nil
		}
		return nil, p.fail("unsupported operator %q", t.Value)
	}
	return nil, p.fail("unrecognised formula shape")
}

func (p *parser) operand(tokens []Token) (Operand, error) {
	if n, ok := number(tokens); ok {
		return Operand{Number: n}, nil
	}
	if len(tokens) == 1 && tokens[0].Kind == TokenRef {
		at, err := p.ref(tokens[0])
		if err != nil {
			return Operand{}, err
		}
		return Operand{IsRef: true, Ref: at}, nil
	}
	return Operand{}, p.fail("expected a reference or a number")
}

// ref resolves a reference token. Row 0, overflowing rows and overlong
// column labels are rejected.
func (p *parser) ref(t Token) (models.Coord, error) {
	at, ok := cellref.Parse(t.Value)
	if !ok {
		return models.Coord{}, p.fail("invalid reference %q", t.Value)
	}
	return at, nil
}

// number reads an optionally signed numeric literal.
func number(tokens []Token) (float64, bool) {
	sign := 1.0
	if len(tokens) == 2 && tokens[0].Kind == TokenPrefixOp {
		if tokens[0].Value == "-" {
			sign = -1
		}
		tokens = tokens[1:]
	}
	if len(tokens) != 1 || tokens[0].Kind != TokenNumber {
		return 0, false
	}
	v, err := strconv.ParseFloat(tokens[0].Value, 64)
	if err != nil {
		return 0, false
	}
	return sign * v, true
}

func compareOp(s string) (CompareOp, error) {
	switch s {
	case ">":
		return OpGreater, nil
	case "<":
		return OpLess, nil
	case "=":
		return OpEqual, nil
	case ">=":
		return OpGreaterEqual, nil
	case "<=":
		return OpLessEqual, nil
	case "<>", "!=":
		return OpNotEqual, nil
	}
	return "", fmt.Errorf("unsupported comparison %q", s)
}
