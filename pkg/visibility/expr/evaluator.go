package expr

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"text/scanner"

	"github.com/goliatone/go-cybertalent/pkg/visibility"
)

// Evaluator is a small visibility rule evaluator.
//
// Supported syntax:
//   - truthiness: `consent`
//   - comparisons: `fundingStatus == "self-funded"`, `startTimeframe != ""`
//   - membership: `fundingStatus in ["employer-sponsored", "other-sponsored"]`
//   - composition: `!a`, `a && b`, `a || (b && c)`
//
// Identifiers resolve against visibility.Context.Values; the `extras.` prefix
// reads visibility.Context.Extras instead. When the value is a list (for
// example affordability), comparisons match if any element matches.
//
// Compiled rules are cached, so an Evaluator should be reused.
type Evaluator struct {
	mu    sync.RWMutex
	cache map[string]*Expr
}

// New returns an Evaluator with an empty rule cache.
func New() *Evaluator {
	return &Evaluator{cache: make(map[string]*Expr)}
}

var _ visibility.Evaluator = (*Evaluator)(nil)

// Eval compiles (or reuses) rule and evaluates it. An empty rule is always
// visible.
func (e *Evaluator) Eval(_ string, rule string, ctx visibility.Context) (bool, error) {
	rule = strings.TrimSpace(rule)
	if rule == "" {
		return true, nil
	}
	compiled, err := e.compile(rule)
	if err != nil {
		return false, err
	}
	return compiled.Eval(ctx), nil
}

func (e *Evaluator) compile(rule string) (*Expr, error) {
	e.mu.RLock()
	cached, ok := e.cache[rule]
	e.mu.RUnlock()
	if ok {
		return cached, nil
	}

	compiled, err := Parse(rule)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	if e.cache == nil {
		e.cache = make(map[string]*Expr)
	}
	e.cache[rule] = compiled
	e.mu.Unlock()
	return compiled, nil
}

// Expr is a compiled visibility rule.
type Expr struct {
	root node
}

// Eval reports whether the rule holds for ctx.
func (x *Expr) Eval(ctx visibility.Context) bool {
	if x == nil || x.root == nil {
		return true
	}
	return x.root.eval(ctx)
}

type node interface {
	eval(ctx visibility.Context) bool
}

type orNode struct{ left, right node }

func (n orNode) eval(ctx visibility.Context) bool { return n.left.eval(ctx) || n.right.eval(ctx) }

type andNode struct{ left, right node }

func (n andNode) eval(ctx visibility.Context) bool { return n.left.eval(ctx) && n.right.eval(ctx) }

type notNode struct{ inner node }

func (n notNode) eval(ctx visibility.Context) bool { return !n.inner.eval(ctx) }

type truthyNode struct{ ident string }

func (n truthyNode) eval(ctx visibility.Context) bool {
	value, ok := lookup(ctx, n.ident)
	return ok && truthy(value)
}

type compareNode struct {
	ident   string
	negate  bool
	choices []any
}

func (n compareNode) eval(ctx visibility.Context) bool {
	value, _ := lookup(ctx, n.ident)
	matched := false
	for _, choice := range n.choices {
		if matches(value, choice) {
			matched = true
			break
		}
	}
	if n.negate {
		return !matched
	}
	return matched
}

// Parse compiles rule. It is exported so callers can validate rules at
// configuration time.
func Parse(rule string) (*Expr, error) {
	p := &parser{}
	p.s.Init(strings.NewReader(rule))
	p.s.Mode = scanner.ScanIdents | scanner.ScanStrings | scanner.ScanRawStrings | scanner.ScanInts | scanner.ScanFloats
	p.s.IsIdentRune = func(ch rune, i int) bool {
		return ch == '_' || ch == '-' && i > 0 || ch == '.' && i > 0 ||
			('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') || ('0' <= ch && ch <= '9' && i > 0)
	}
	p.s.Error = func(_ *scanner.Scanner, msg string) {
		if p.err == nil {
			p.err = fmt.Errorf("visibility/expr: %s", msg)
		}
	}
	p.next()

	out, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.err != nil {
		return nil, p.err
	}
	if p.tok != scanner.EOF {
		return nil, fmt.Errorf("visibility/expr: unexpected %q", p.text)
	}
	return &Expr{root: out}, nil
}

type parser struct {
	s    scanner.Scanner
	tok  rune
	text string
	err  error
}

func (p *parser) next() {
	p.tok = p.s.Scan()
	p.text = p.s.TokenText()
}

// accept consumes a one or two character operator.
func (p *parser) accept(op string) bool {
	if p.tok != rune(op[0]) {
		return false
	}
	if len(op) == 2 {
		if p.s.Peek() != rune(op[1]) {
			return false
		}
		p.s.Next()
	}
	p.next()
	return true
}

func (p *parser) parseOr() (node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.accept("||") {
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = orNode{left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.accept("&&") {
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = andNode{left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseUnary() (node, error) {
	if p.tok == '!' && p.s.Peek() != '=' {
		p.next()
		inner, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return notNode{inner: inner}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (node, error) {
	if p.accept("(") {
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if !p.accept(")") {
			return nil, errors.New("visibility/expr: missing closing ')'")
		}
		return inner, nil
	}

	if p.tok != scanner.Ident {
		if p.tok == scanner.EOF {
			return nil, errors.New("visibility/expr: empty expression")
		}
		return nil, fmt.Errorf("visibility/expr: expected identifier, got %q", p.text)
	}
	ident := p.text
	p.next()

	switch {
	case p.accept("=="):
		lit, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		return compareNode{ident: ident, choices: []any{lit}}, nil
	case p.accept("!="):
		lit, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		return compareNode{ident: ident, negate: true, choices: []any{lit}}, nil
	case p.tok == scanner.Ident && p.text == "in":
		p.next()
		choices, err := p.parseList()
		if err != nil {
			return nil, err
		}
		return compareNode{ident: ident, choices: choices}, nil
	}
	return truthyNode{ident: ident}, nil
}

func (p *parser) parseList() ([]any, error) {
	if !p.accept("[") {
		return nil, fmt.Errorf("visibility/expr: expected '[' after in, got %q", p.text)
	}
	var out []any
	for !p.accept("]") {
		if len(out) > 0 && !p.accept(",") {
			return nil, fmt.Errorf("visibility/expr: expected ',' or ']', got %q", p.text)
		}
		lit, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		out = append(out, lit)
	}
	return out, nil
}

func (p *parser) parseLiteral() (any, error) {
	text := p.text
	switch p.tok {
	case scanner.String, scanner.RawString:
		p.next()
		value, err := strconv.Unquote(text)
		if err != nil {
			return nil, fmt.Errorf("visibility/expr: invalid string literal %s: %w", text, err)
		}
		return value, nil
	case scanner.Int, scanner.Float:
		p.next()
		value, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, fmt.Errorf("visibility/expr: invalid number literal %s", text)
		}
		return value, nil
	case scanner.Ident:
		p.next()
		switch strings.ToLower(text) {
		case "true":
			return true, nil
		case "false":
			return false, nil
		case "null", "nil":
			return nil, nil
		}
		return text, nil
	case scanner.EOF:
		return nil, errors.New("visibility/expr: missing literal")
	}
	return nil, fmt.Errorf("visibility/expr: expected literal, got %q", text)
}

func lookup(ctx visibility.Context, key string) (any, bool) {
	if rest, ok := strings.CutPrefix(key, "extras."); ok {
		value, found := ctx.Extras[rest]
		return value, found
	}
	value, found := ctx.Values[key]
	return value, found
}

func matches(value, want any) bool {
	switch typed := value.(type) {
	case []any:
		for _, item := range typed {
			if matches(item, want) {
				return true
			}
		}
		return false
	case []string:
		for _, item := range typed {
			if matches(item, want) {
				return true
			}
		}
		return false
	}

	switch w := want.(type) {
	case nil:
		return value == nil
	case bool:
		return truthy(value) == w
	case float64:
		got, ok := number(value)
		return ok && got == w
	case string:
		return value != nil && fmt.Sprint(value) == w
	}
	return false
}

func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		if parsed, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			return parsed
		}
		return strings.TrimSpace(v) != ""
	case []any:
		return len(v) > 0
	case []string:
		return len(v) > 0
	}
	if n, ok := number(value); ok {
		return n != 0
	}
	return true
}

func number(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case float64:
		return v, true
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return n, err == nil
	}
	return 0, false
}
