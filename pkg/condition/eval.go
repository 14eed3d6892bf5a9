package condition

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type node interface {
	eval(ctx Context) (bool, error)
}

type orNode struct{ left, right node }

func (n orNode) eval(ctx Context) (bool, error) {
	ok, err := n.left.eval(ctx)
	if err != nil || ok {
		return ok, err
	}
	return n.right.eval(ctx)
}

type andNode struct{ left, right node }

func (n andNode) eval(ctx Context) (bool, error) {
	ok, err := n.left.eval(ctx)
	if err != nil || !ok {
		return ok, err
	}
	return n.right.eval(ctx)
}

type notNode struct{ inner node }

func (n notNode) eval(ctx Context) (bool, error) {
	ok, err := n.inner.eval(ctx)
	return !ok, err
}

type truthyNode struct{ ident string }

func (n truthyNode) eval(ctx Context) (bool, error) {
	value, ok := lookup(ctx.Answers, n.ident)
	if !ok {
		return false, nil
	}
	return truthy(value), nil
}

type compareNode struct {
	ident string
	op    kind
	lit   tok
}

func (n compareNode) eval(ctx Context) (bool, error) {
	value, _ := lookup(ctx.Answers, n.ident)

	switch n.op {
	case kindEq, kindNeq:
		equal, err := n.equals(value)
		if err != nil {
			return false, err
		}
		if n.op == kindNeq {
			return !equal, nil
		}
		return equal, nil
	case kindLT, kindLTE, kindGT, kindGTE:
		if n.lit.kind != kindNumber {
			return false, fmt.Errorf("condition: ordering comparison requires a number literal, got %q", n.lit.raw)
		}
		want, err := strconv.ParseFloat(n.lit.raw, 64)
		if err != nil {
			return false, fmt.Errorf("condition: invalid number literal %q", n.lit.raw)
		}
		got, ok := asNumber(value)
		if !ok {
			return false, nil
		}
		switch n.op {
		case kindLT:
			return got < want, nil
		case kindLTE:
			return got <= want, nil
		case kindGT:
			return got > want, nil
		default:
			return got >= want, nil
		}
	default:
		return false, fmt.Errorf("condition: unsupported operator")
	}
}

func (n compareNode) equals(value any) (bool, error) {
	switch n.lit.kind {
	case kindNull:
		return value == nil, nil
	case kindBool:
		want := n.lit.raw == "true"
		return asBool(value) == want, nil
	case kindNumber:
		want, err := strconv.ParseFloat(n.lit.raw, 64)
		if err != nil {
			return false, fmt.Errorf("condition: invalid number literal %q", n.lit.raw)
		}
		got, ok := asNumber(value)
		return ok && got == want, nil
	case kindString, kindIdent:
		// Bare identifiers on the right-hand side compare as strings to keep
		// hand-authored rules forgiving.
		return asString(value) == n.lit.raw, nil
	default:
		return false, errors.New("condition: unsupported literal")
	}
}

type parser struct {
	tokens []tok
	pos    int
}

func (p *parser) parseOr() (node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.match(kindOr) {
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = orNode{left, right}
	}
	return left, nil
}

func (p *parser) parseAnd() (node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.match(kindAnd) {
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = andNode{left, right}
	}
	return left, nil
}

func (p *parser) parseUnary() (node, error) {
	if p.match(kindNot) {
		inner, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return notNode{inner}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (node, error) {
	if p.match(kindLParen) {
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if !p.match(kindRParen) {
			return nil, errors.New("condition: missing closing ')'")
		}
		return inner, nil
	}

	if p.pos >= len(p.tokens) {
		return nil, errors.New("condition: empty expression")
	}
	ident := p.tokens[p.pos]
	if ident.kind != kindIdent {
		return nil, fmt.Errorf("condition: expected identifier, got %q", ident.raw)
	}
	p.pos++

	for _, op := range []kind{kindEq, kindNeq, kindLT, kindLTE, kindGT, kindGTE} {
		if !p.match(op) {
			continue
		}
		if p.pos >= len(p.tokens) {
			return nil, errors.New("condition: missing literal after operator")
		}
		lit := p.tokens[p.pos]
		switch lit.kind {
		case kindString, kindNumber, kindBool, kindNull, kindIdent:
			p.pos++
			return compareNode{ident: ident.raw, op: op, lit: lit}, nil
		default:
			return nil, fmt.Errorf("condition: expected literal, got %q", lit.raw)
		}
	}

	return truthyNode{ident: ident.raw}, nil
}

func (p *parser) match(k kind) bool {
	if p.pos >= len(p.tokens) || p.tokens[p.pos].kind != k {
		return false
	}
	p.pos++
	return true
}

func lookup(answers map[string]any, path string) (any, bool) {
	if len(answers) == 0 {
		return nil, false
	}
	if v, ok := answers[path]; ok {
		return v, true
	}
	var current any = answers
	for _, part := range strings.Split(path, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return strings.TrimSpace(v) != ""
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0
	case []any:
		return len(v) > 0
	case []string:
		return len(v) > 0
	case map[string]any:
		return len(v) > 0
	default:
		return true
	}
}

func asBool(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(v))
		if err == nil {
			return parsed
		}
		return strings.TrimSpace(v) != ""
	default:
		return truthy(value)
	}
}

func asNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func asString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(value)
	}
}
