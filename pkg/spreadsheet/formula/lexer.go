package formula

import (
	"fmt"
	"strings"

	"github.com/xuri/efp"
)

// TokenKind classifies a formula token.
type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenFunctionStart
	TokenFunctionStop
	TokenArgSep
	TokenGroupStart
	TokenGroupStop
	TokenNumber
	TokenText
	TokenRef
	TokenRange
	TokenWord
	TokenLogical
	TokenPrefixOp
	TokenInfixOp
	TokenCompareOp
)

// Token is one lexical unit of a formula. Function names, references and
// bare words are upper-cased; text literals keep their case.
type Token struct {
	Kind  TokenKind
	Value string
}

func (t Token) String() string {
	return fmt.Sprintf("%d:%q", t.Kind, t.Value)
}

// Tokenize splits a formula (with its leading "=") into tokens, dropping
// whitespace and ending with a TokenEOF.
func Tokenize(formula string) ([]Token, error) {
	text := strings.TrimSpace(formula)
	if !strings.HasPrefix(text, "=") {
		return nil, fmt.Errorf("formula must start with '='")
	}
	body := strings.TrimSpace(text[1:])
	if body == "" {
		return nil, fmt.Errorf("empty formula")
	}

	ps := efp.ExcelParser()
	raw := ps.Parse("=" + normalizeNotEqual(body))

	tokens := make([]Token, 0, len(raw)+1)
	for _, t := range raw {
		tok, keep, err := convertToken(t)
		if err != nil {
			return nil, err
		}
		if keep {
			tokens = append(tokens, tok)
		}
	}
	if len(tokens) == 0 {
		return nil, fmt.Errorf("no tokens in %q", formula)
	}
	return append(tokens, Token{Kind: TokenEOF}), nil
}

func convertToken(t efp.Token) (Token, bool, error) {
	switch t.TType {
	case efp.TokenTypeWhitespace:
		return Token{}, false, nil
	case efp.TokenTypeFunction:
		if t.TSubType == efp.TokenSubTypeStart {
			return Token{Kind: TokenFunctionStart, Value: strings.ToUpper(t.TValue)}, true, nil
		}
		return Token{Kind: TokenFunctionStop}, true, nil
	case efp.TokenTypeSubexpression:
		if t.TSubType == efp.TokenSubTypeStart {
			return Token{Kind: TokenGroupStart, Value: "("}, true, nil
		}
		return Token{Kind: TokenGroupStop, Value: ")"}, true, nil
	case efp.TokenTypeArgument:
		return Token{Kind: TokenArgSep, Value: ","}, true, nil
	case efp.TokenTypeOperatorPrefix:
		return Token{Kind: TokenPrefixOp, Value: t.TValue}, true, nil
	case efp.TokenTypeOperatorInfix:
		switch t.TSubType {
		case efp.TokenSubTypeLogical:
			return Token{Kind: TokenCompareOp, Value: t.TValue}, true, nil
		case efp.TokenSubTypeMath:
			return Token{Kind: TokenInfixOp, Value: t.TValue}, true, nil
		}
		return Token{}, false, fmt.Errorf("unsupported operator %q", t.TValue)
	case efp.TokenTypeOperand:
		return convertOperand(t)
	}
	return Token{}, false, fmt.Errorf("unexpected token %q", t.TValue)
}

func convertOperand(t efp.Token) (Token, bool, error) {
	switch t.TSubType {
	case efp.TokenSubTypeNumber:
		return Token{Kind: TokenNumber, Value: t.TValue}, true, nil
	case efp.TokenSubTypeText:
		return Token{Kind: TokenText, Value: t.TValue}, true, nil
	case efp.TokenSubTypeLogical:
		return Token{Kind: TokenLogical, Value: strings.ToUpper(t.TValue)}, true, nil
	case efp.TokenSubTypeRange:
		v := strings.ToUpper(t.TValue)
		if isRef(v) {
			return Token{Kind: TokenRef, Value: v}, true, nil
		}
		if a, b, ok := strings.Cut(v, ":"); ok && isRef(a) && isRef(b) {
			return Token{Kind: TokenRange, Value: v}, true, nil
		}
		return Token{Kind: TokenWord, Value: v}, true, nil
	}
	return Token{}, false, fmt.Errorf("unsupported operand %q", t.TValue)
}

// normalizeNotEqual rewrites "!=" outside string literals to "<>", which is
// the spelling the tokenizer understands.
func normalizeNotEqual(s string) string {
	if !strings.Contains(s, "!=") {
		return s
	}
	var b strings.Builder
	inString := false
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch == '"' {
			inString = !inString
		}
		if !inString && ch == '!' && i+1 < len(s) && s[i+1] == '=' {
			b.WriteString("<>")
			i++
			continue
		}
		b.WriteByte(ch)
	}
	return b.String()
}

// isRef reports whether s is letters followed by digits, e.g. "AB12".
func isRef(s string) bool {
	i := 0
	for i < len(s) && s[i] >= 'A' && s[i] <= 'Z' {
		i++
	}
	if i == 0 || i == len(s) {
		return false
	}
	for j := i; j < len(s); j++ {
		if s[j] < '0' || s[j] > '9' {
			return false
		}
	}
	return true
}
