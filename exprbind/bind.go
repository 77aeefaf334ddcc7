// Package exprbind evaluates expr-lang expressions against tracked
// containers. A compiled rule reads its inputs through a view, so a rule
// evaluated inside an effect, or bound as a computed, re-evaluates when the
// keys it references change and stays quiet when they don't.
package exprbind

import (
	"fmt"
	"sort"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/parser"
	"github.com/expr-lang/expr/vm"

	tracked "github.com/pumped-fn/tracked-go"
)

// Option configures an Engine.
type Option func(*Engine)

// WithCache wires a ProgramCache into the engine.
func WithCache(cache ProgramCache) Option {
	return func(e *Engine) {
		e.cache = cache
	}
}

// WithFunction registers a helper callable from expressions.
func WithFunction(name string, fn func(args ...any) (any, error)) Option {
	return func(e *Engine) {
		e.funcs[name] = fn
	}
}

// Engine compiles expressions and evaluates them against one realm's views.
type Engine struct {
	realm *tracked.Realm
	cache ProgramCache
	funcs map[string]func(args ...any) (any, error)
}

// NewEngine returns an Engine bound to realm. A nil realm means the default
// realm.
func NewEngine(realm *tracked.Realm, opts ...Option) *Engine {
	if realm == nil {
		realm = tracked.Default()
	}
	e := &Engine{
		realm: realm,
		funcs: map[string]func(args ...any) (any, error){},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// Compile parses and compiles expression, loading through the cache when one
// is configured.
func (e *Engine) Compile(expression string) (*Rule, error) {
	if expression == "" {
		return nil, wrapEvalError(expression, fmt.Errorf("expression must not be empty"))
	}
	idents, err := identifiers(expression, e.funcs)
	if err != nil {
		return nil, wrapEvalError(expression, err)
	}
	program, err := e.loadOrCompile(expression)
	if err != nil {
		return nil, err
	}
	return &Rule{
		engine:     e,
		program:    program,
		expression: expression,
		idents:     idents,
	}, nil
}

// Eval compiles expression and runs it once against source.
func (e *Engine) Eval(source tracked.Composite, expression string) (any, error) {
	rule, err := e.Compile(expression)
	if err != nil {
		return nil, err
	}
	return rule.Eval(source)
}

func (e *Engine) loadOrCompile(expression string) (*vm.Program, error) {
	if e.cache != nil {
		if program, ok := e.cache.Get(expression); ok {
			return program, nil
		}
	}
	options := []expr.Option{
		expr.Env(map[string]any{}),
		expr.AllowUndefinedVariables(),
	}
	for name, fn := range e.funcs {
		options = append(options, expr.Function(name, fn))
	}
	program, err := expr.Compile(expression, options...)
	if err != nil {
		return nil, wrapEvalError(expression, err)
	}
	if e.cache != nil {
		e.cache.Set(expression, program)
	}
	return program, nil
}

// Rule is a compiled expression bound to its engine.
type Rule struct {
	engine     *Engine
	program    *vm.Program
	expression string
	idents     []string
}

// Expression returns the rule's source text.
func (r *Rule) Expression() string { return r.expression }

// Identifiers returns the names the rule reads from its input, sorted.
func (r *Rule) Identifiers() []string {
	out := make([]string, len(r.idents))
	copy(out, r.idents)
	return out
}

// Eval runs the rule against source. Only the identifiers the expression
// references are read, through a view, so evaluating inside an effect
// subscribes that effect to exactly those keys.
func (r *Rule) Eval(source tracked.Composite) (any, error) {
	env := r.environment(source)
	result, err := expr.Run(r.program, env)
	if err != nil {
		return nil, wrapEvalError(r.expression, err)
	}
	return result, nil
}

// Computed binds the rule to source as a lazily cached value on the engine's
// realm. Each recomputation carries the evaluation outcome as a Result.
func (r *Rule) Computed(source tracked.Composite) *tracked.Computed {
	return r.engine.realm.Computed(func() any {
		value, err := r.Eval(source)
		return Result{Value: value, Err: err}
	})
}

// Watch evaluates the rule now and re-evaluates whenever a referenced key
// changes, handing each outcome to fn.
func (r *Rule) Watch(source tracked.Composite, fn func(value any, err error)) *tracked.Effect {
	return r.engine.realm.Watch(func() {
		fn(r.Eval(source))
	})
}

// Result carries one evaluation outcome through a computed.
type Result struct {
	Value any
	Err   error
}

func (r *Rule) environment(source tracked.Composite) map[string]any {
	env := make(map[string]any, len(r.idents))
	if source == nil {
		return env
	}
	view, ok := r.engine.realm.Mutable(source).(tracked.Composite)
	if !ok {
		view = source
	}
	for _, name := range r.idents {
		if value, present := view.Get(name); present {
			env[name] = tracked.ToGo(value)
		}
	}
	return env
}

type identVisitor struct {
	skip  map[string]struct{}
	seen  map[string]struct{}
	names []string
}

func (v *identVisitor) Visit(node *ast.Node) {
	ident, ok := (*node).(*ast.IdentifierNode)
	if !ok {
		return
	}
	if _, skip := v.skip[ident.Value]; skip {
		return
	}
	if _, dup := v.seen[ident.Value]; dup {
		return
	}
	v.seen[ident.Value] = struct{}{}
	v.names = append(v.names, ident.Value)
}

// identifiers lists the top-level names expression references, excluding
// registered function names.
func identifiers(expression string, funcs map[string]func(args ...any) (any, error)) ([]string, error) {
	tree, err := parser.Parse(expression)
	if err != nil {
		return nil, err
	}
	skip := make(map[string]struct{}, len(funcs))
	for name := range funcs {
		skip[name] = struct{}{}
	}
	v := &identVisitor{skip: skip, seen: map[string]struct{}{}}
	ast.Walk(&tree.Node, v)
	sort.Strings(v.names)
	return v.names, nil
}
