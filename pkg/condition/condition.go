// Package condition evaluates the boolean expressions attached to flow graph
// edges and field display rules: comparisons over prior answers composed
// with && and ||.
//
// Supported forms:
//   - truthiness: `newsletter`
//   - equality: `plan == "pro"`, `consent != true`
//   - ordering: `age >= 18`, `score < 40`
//   - composition: `plan == "pro" && age >= 18`, `!(a || b)`
//
// Identifiers resolve against Context.Answers by field id, with dot-path
// traversal into nested answer maps.
package condition

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Context carries the answers collected so far, keyed by field id.
type Context struct {
	Answers map[string]any
}

// Eval evaluates rule against ctx. An empty rule is unconditional and
// evaluates to true.
func Eval(rule string, ctx Context) (bool, error) {
	node, err := parse(rule)
	if err != nil {
		return false, err
	}
	if node == nil {
		return true, nil
	}
	return node.eval(ctx)
}

// Check parses rule without evaluating it, so authoring tools can lint edge
// conditions before any answers exist.
func Check(rule string) error {
	_, err := parse(rule)
	return err
}

func parse(rule string) (node, error) {
	trimmed := strings.TrimSpace(rule)
	if trimmed == "" {
		return nil, nil
	}
	tokens, err := scan(trimmed)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, nil
	}
	p := &parser{tokens: tokens}
	root, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.pos < len(p.tokens) {
		return nil, fmt.Errorf("condition: unexpected token %q", p.tokens[p.pos].raw)
	}
	return root, nil
}

type kind int

const (
	kindIdent kind = iota
	kindString
	kindNumber
	kindBool
	kindNull
	kindEq
	kindNeq
	kindLT
	kindLTE
	kindGT
	kindGTE
	kindAnd
	kindOr
	kindNot
	kindLParen
	kindRParen
)

type tok struct {
	kind kind
	raw  string
}

func scan(input string) ([]tok, error) {
	var tokens []tok
	i := 0
	for i < len(input) {
		ch := input[i]
		switch {
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			i++
		case ch == '(':
			tokens = append(tokens, tok{kindLParen, "("})
			i++
		case ch == ')':
			tokens = append(tokens, tok{kindRParen, ")"})
			i++
		case ch == '!':
			if i+1 < len(input) && input[i+1] == '=' {
				tokens = append(tokens, tok{kindNeq, "!="})
				i += 2
			} else {
				tokens = append(tokens, tok{kindNot, "!"})
				i++
			}
		case ch == '=':
			if i+1 >= len(input) || input[i+1] != '=' {
				return nil, errors.New("condition: unexpected '='; use '=='")
			}
			tokens = append(tokens, tok{kindEq, "=="})
			i += 2
		case ch == '<':
			if i+1 < len(input) && input[i+1] == '=' {
				tokens = append(tokens, tok{kindLTE, "<="})
				i += 2
			} else {
				tokens = append(tokens, tok{kindLT, "<"})
				i++
			}
		case ch == '>':
			if i+1 < len(input) && input[i+1] == '=' {
				tokens = append(tokens, tok{kindGTE, ">="})
				i += 2
			} else {
				tokens = append(tokens, tok{kindGT, ">"})
				i++
			}
		case ch == '&':
			if i+1 >= len(input) || input[i+1] != '&' {
				return nil, errors.New("condition: unexpected '&'; use '&&'")
			}
			tokens = append(tokens, tok{kindAnd, "&&"})
			i += 2
		case ch == '|':
			if i+1 >= len(input) || input[i+1] != '|' {
				return nil, errors.New("condition: unexpected '|'; use '||'")
			}
			tokens = append(tokens, tok{kindOr, "||"})
			i += 2
		case ch == '"' || ch == '\'':
			value, width, err := scanString(input[i:])
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok{kindString, value})
			i += width
		default:
			start := i
			for i < len(input) && !strings.ContainsRune(" \t\n\r()!=&|<>", rune(input[i])) {
				i++
			}
			raw := input[start:i]
			switch strings.ToLower(raw) {
			case "true", "false":
				tokens = append(tokens, tok{kindBool, strings.ToLower(raw)})
			case "null", "nil":
				tokens = append(tokens, tok{kindNull, "null"})
			default:
				if isNumeric(raw) {
					tokens = append(tokens, tok{kindNumber, raw})
				} else {
					tokens = append(tokens, tok{kindIdent, raw})
				}
			}
		}
	}
	return tokens, nil
}

// scanString consumes a quoted literal starting at input[0] and returns the
// unquoted value plus the number of bytes consumed.
func scanString(input string) (string, int, error) {
	quote := input[0]
	escaped := false
	for i := 1; i < len(input); i++ {
		c := input[i]
		if escaped {
			escaped = false
			continue
		}
		if c == '\\' {
			escaped = true
			continue
		}
		if c == quote {
			raw := `"` + input[1:i] + `"`
			if quote == '\'' {
				raw = `"` + strings.ReplaceAll(input[1:i], `"`, `\"`) + `"`
			}
			value, err := strconv.Unquote(raw)
			if err != nil {
				return "", 0, fmt.Errorf("condition: invalid string literal: %w", err)
			}
			return value, i + 1, nil
		}
	}
	return "", 0, errors.New("condition: unterminated string literal")
}

func isNumeric(raw string) bool {
	if raw == "" {
		return false
	}
	_, err := strconv.ParseFloat(raw, 64)
	return err == nil
}
