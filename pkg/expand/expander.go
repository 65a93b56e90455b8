package expand

import (
	"fmt"
	"strconv"
	"unicode"

	"github.com/scalpel-ui/scalpel/pkg/syntax"
)

// Runtime call-form heads the expander emits. The evaluator dispatches on
// these; authors never write them.
const (
	SymElement         = "sx/element"
	SymFragment        = "sx/fragment"
	SymComponent       = "sx/component"
	SymGetter          = "sx/getter"
	SymClassList       = "sx/class-list"
	SymStyle           = "sx/style"
	SymCondView        = "sx/cond-view"
	SymSwitchView      = "sx/switch-view"
	SymCaseView        = "sx/case-view"
	SymListView        = "sx/list-view"
	SymErrorBoundary   = "sx/error-boundary"
	SymBatch           = "sx/batch"
	SymDefineComponent = "sx/define-component"
)

// Error is a structural macro-expansion failure. It fails compilation at
// the offending form's source position.
type Error struct {
	Pos syntax.Position
	Msg string
}

func (e *Error) Error() string {
	return e.Pos.String() + ": " + e.Msg
}

func errorAt(e *syntax.Expr, format string, args ...interface{}) *Error {
	var pos syntax.Position
	if e != nil {
		pos = e.Pos
	}
	return &Error{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// expander carries per-run state: a counter for generated binding names.
type expander struct {
	gensyms int
}

func (x *expander) gensym(hint string) *syntax.Expr {
	x.gensyms++
	return syntax.Symbol(hint + "__" + strconv.Itoa(x.gensyms))
}

// Form expands one top-level SX form.
func Form(e *syntax.Expr) (*syntax.Expr, error) {
	x := &expander{}
	return x.expand(e)
}

// Forms expands a sequence of top-level SX forms, failing on the first
// structural error.
func Forms(forms []*syntax.Expr) ([]*syntax.Expr, error) {
	x := &expander{}
	out := make([]*syntax.Expr, 0, len(forms))
	for _, f := range forms {
		expanded, err := x.expand(f)
		if err != nil {
			return nil, err
		}
		out = append(out, expanded)
	}
	return out, nil
}

// expand rewrites one expression tree. UI-construction vectors lower to
// runtime element/component calls, control-flow macros lower to their
// runtime view primitive, and everything else is walked structurally.
func (x *expander) expand(e *syntax.Expr) (*syntax.Expr, error) {
	if e == nil || e.IsLiteral() || e.Kind == syntax.KindSymbol {
		return e, nil
	}
	switch e.Kind {
	case syntax.KindVector:
		if isFragmentForm(e) {
			return x.expandFragment(e)
		}
		if isElementForm(e) {
			return x.expandElement(e)
		}
		if isComponentForm(e) {
			return x.expandComponent(e)
		}
		return x.expandItems(e)
	case syntax.KindMap:
		return x.expandMapValues(e)
	case syntax.KindList:
		head := e.Head()
		if fn, ok := macros[head]; ok {
			return fn(x, e)
		}
		switch head {
		case "fn":
			return x.expandFnBody(e)
		case "defui":
			return x.expandDefui(e)
		}
		return x.expandItems(e)
	}
	return e, nil
}

func (x *expander) expandItems(e *syntax.Expr) (*syntax.Expr, error) {
	items := make([]*syntax.Expr, len(e.Items))
	for i, item := range e.Items {
		expanded, err := x.expand(item)
		if err != nil {
			return nil, err
		}
		items[i] = expanded
	}
	return &syntax.Expr{Kind: e.Kind, Items: items, Pos: e.Pos}, nil
}

func (x *expander) expandMapValues(e *syntax.Expr) (*syntax.Expr, error) {
	pairs := make([]syntax.Pair, len(e.Pairs))
	for i, p := range e.Pairs {
		val, err := x.expand(p.Val)
		if err != nil {
			return nil, err
		}
		pairs[i] = syntax.Pair{Key: p.Key, Val: val}
	}
	return &syntax.Expr{Kind: syntax.KindMap, Pairs: pairs, Pos: e.Pos}, nil
}

// expandFnBody walks a (fn [params] body...) form, expanding the body but
// leaving the parameter vector untouched.
func (x *expander) expandFnBody(e *syntax.Expr) (*syntax.Expr, error) {
	if len(e.Items) < 2 {
		return e, nil
	}
	items := make([]*syntax.Expr, len(e.Items))
	copy(items, e.Items[:2])
	for i := 2; i < len(e.Items); i++ {
		expanded, err := x.expand(e.Items[i])
		if err != nil {
			return nil, err
		}
		items[i] = expanded
	}
	return &syntax.Expr{Kind: syntax.KindList, Items: items, Pos: e.Pos}, nil
}

// isElementForm reports whether e is a tag-style UI-construction vector
// like [:div ...].
func isElementForm(e *syntax.Expr) bool {
	return e.Kind == syntax.KindVector && len(e.Items) > 0 &&
		e.Items[0].Kind == syntax.KindKeyword && e.Items[0].Str != "<>"
}

// isFragmentForm reports whether e is [:<> ...].
func isFragmentForm(e *syntax.Expr) bool {
	return e.Kind == syntax.KindVector && len(e.Items) > 0 && e.Items[0].IsKeyword("<>")
}

// isComponentForm reports whether e is a component-style vector like
// [Counter {...}]. Components are capitalized symbols, matching the Go
// convention for exported constructors.
func isComponentForm(e *syntax.Expr) bool {
	if e.Kind != syntax.KindVector || len(e.Items) == 0 || e.Items[0].Kind != syntax.KindSymbol {
		return false
	}
	name := e.Items[0].Str
	return name != "" && unicode.IsUpper(rune(name[0]))
}

// isSelfContained reports whether a child form expands into a unit that
// already manages its own reactivity and must not be re-wrapped.
func isSelfContained(e *syntax.Expr) bool {
	if isElementForm(e) || isFragmentForm(e) || isComponentForm(e) {
		return true
	}
	_, ok := macros[e.Head()]
	return ok
}

// thunk wraps an already-expanded expression as a zero-argument fn form.
func thunk(e *syntax.Expr) *syntax.Expr {
	return syntax.List(syntax.Symbol("fn"), syntax.Vector(), e)
}

// fn1 builds (fn [param] body...).
func fn1(param *syntax.Expr, body ...*syntax.Expr) *syntax.Expr {
	items := append([]*syntax.Expr{syntax.Symbol("fn"), syntax.Vector(param)}, body...)
	return syntax.List(items...)
}

// doForm wraps multiple forms in (do ...), or returns the single form.
func doForm(forms []*syntax.Expr) *syntax.Expr {
	if len(forms) == 1 {
		return forms[0]
	}
	items := append([]*syntax.Expr{syntax.Symbol("do")}, forms...)
	return syntax.List(items...)
}
