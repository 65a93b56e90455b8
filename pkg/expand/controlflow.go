package expand

import (
	"github.com/scalpel-ui/scalpel/pkg/syntax"
)

// macros maps control-flow construct heads to their expanders. Each
// construct lowers to exactly one runtime view primitive, with its test
// or collection expression deferred rather than evaluated at expansion
// time. Populated in init because the expanders recurse into expand.
var macros map[string]func(*expander, *syntax.Expr) (*syntax.Expr, error)

func init() {
	macros = map[string]func(*expander, *syntax.Expr) (*syntax.Expr, error){
		"if":        (*expander).expandIf,
		"when":      (*expander).expandWhen,
		"if-let":    (*expander).expandIfLet,
		"when-let":  (*expander).expandWhenLet,
		"if-some":   (*expander).expandIfSome,
		"when-some": (*expander).expandWhenSome,
		"or":        (*expander).expandOr,
		"some->":    (*expander).expandSomeFirst,
		"some->>":   (*expander).expandSomeLast,
		"cond":      (*expander).expandCond,
		"case":      (*expander).expandCase,
		"for":       (*expander).expandFor,
		"index":     (*expander).expandIndex,
		"try":       (*expander).expandTry,
		"batch":     (*expander).expandBatch,
	}
}

// IsMacroHead reports whether name is a control-flow construct the
// expander rewrites. Used by the lint pass to recognize tracked scopes.
func IsMacroHead(name string) bool {
	_, ok := macros[name]
	return ok
}

func condModeKeyword(some bool) *syntax.Expr {
	if some {
		return syntax.Keyword("some")
	}
	return syntax.Keyword("truthy")
}

// condView assembles (sx/cond-view <mode> test-thunk then-fn else-fn).
func condView(some bool, testThunk, thenFn, elseFn *syntax.Expr) *syntax.Expr {
	if elseFn == nil {
		elseFn = syntax.Nil()
	}
	return syntax.List(syntax.Symbol(SymCondView), condModeKeyword(some), testThunk, thenFn, elseFn)
}

func (x *expander) expandIf(e *syntax.Expr) (*syntax.Expr, error) {
	if len(e.Items) < 3 || len(e.Items) > 4 {
		return nil, errorAt(e, "%s expects a test, a then branch and an optional else branch", e.Head())
	}
	test, err := x.expand(e.Items[1])
	if err != nil {
		return nil, err
	}
	then, err := x.expand(e.Items[2])
	if err != nil {
		return nil, err
	}
	var elseFn *syntax.Expr
	if len(e.Items) == 4 {
		els, err := x.expand(e.Items[3])
		if err != nil {
			return nil, err
		}
		elseFn = thunk(els)
	}
	return condView(false, thunk(test), fn1(syntax.Symbol("_"), then), elseFn), nil
}

func (x *expander) expandWhen(e *syntax.Expr) (*syntax.Expr, error) {
	if len(e.Items) < 3 {
		return nil, errorAt(e, "%s expects a test and a body", e.Head())
	}
	test, err := x.expand(e.Items[1])
	if err != nil {
		return nil, err
	}
	body, err := x.expandAll(e.Items[2:])
	if err != nil {
		return nil, err
	}
	return condView(false, thunk(test), fn1(syntax.Symbol("_"), doForm(body)), nil), nil
}

// bindingPair validates the [binding test] vector of the binding
// conditionals and returns its parts.
func bindingPair(e *syntax.Expr) (*syntax.Expr, *syntax.Expr, error) {
	if len(e.Items) < 2 || e.Items[1].Kind != syntax.KindVector || len(e.Items[1].Items) != 2 {
		return nil, nil, errorAt(e, "%s expects a [binding test] vector", e.Head())
	}
	binding := e.Items[1].Items[0]
	if binding.Kind != syntax.KindSymbol {
		return nil, nil, errorAt(binding, "%s binding must be a symbol", e.Head())
	}
	return binding, e.Items[1].Items[1], nil
}

func (x *expander) expandIfLet(e *syntax.Expr) (*syntax.Expr, error) {
	return x.expandBindingCond(e, false, true)
}

func (x *expander) expandWhenLet(e *syntax.Expr) (*syntax.Expr, error) {
	return x.expandBindingCond(e, false, false)
}

func (x *expander) expandIfSome(e *syntax.Expr) (*syntax.Expr, error) {
	return x.expandBindingCond(e, true, true)
}

func (x *expander) expandWhenSome(e *syntax.Expr) (*syntax.Expr, error) {
	return x.expandBindingCond(e, true, false)
}

// expandBindingCond lowers if-let/when-let/if-some/when-some. The binding
// is visible only in the then branch, bound to the test's resolved value.
func (x *expander) expandBindingCond(e *syntax.Expr, some, hasElse bool) (*syntax.Expr, error) {
	binding, test, err := bindingPair(e)
	if err != nil {
		return nil, err
	}
	testX, err := x.expand(test)
	if err != nil {
		return nil, err
	}

	var thenForms []*syntax.Expr
	var elseFn *syntax.Expr
	if hasElse {
		if len(e.Items) < 3 || len(e.Items) > 4 {
			return nil, errorAt(e, "%s expects a then branch and an optional else branch", e.Head())
		}
		then, err := x.expand(e.Items[2])
		if err != nil {
			return nil, err
		}
		thenForms = []*syntax.Expr{then}
		if len(e.Items) == 4 {
			els, err := x.expand(e.Items[3])
			if err != nil {
				return nil, err
			}
			elseFn = thunk(els)
		}
	} else {
		if len(e.Items) < 3 {
			return nil, errorAt(e, "%s expects a body", e.Head())
		}
		thenForms, err = x.expandAll(e.Items[2:])
		if err != nil {
			return nil, err
		}
	}

	return condView(some, thunk(testX), fn1(binding, doForm(thenForms)), elseFn), nil
}

// expandOr lowers (or a b ... z) to nested conditional views: the first
// truthy value renders, the last value is the unconditional fallback.
func (x *expander) expandOr(e *syntax.Expr) (*syntax.Expr, error) {
	return x.expandOrRest(e.Items[1:])
}

func (x *expander) expandOrRest(alts []*syntax.Expr) (*syntax.Expr, error) {
	if len(alts) == 0 {
		return syntax.Nil(), nil
	}
	if len(alts) == 1 {
		return x.expand(alts[0])
	}
	head, err := x.expand(alts[0])
	if err != nil {
		return nil, err
	}
	rest, err := x.expandOrRest(alts[1:])
	if err != nil {
		return nil, err
	}
	v := x.gensym("v")
	return condView(false, thunk(head), fn1(v, v), thunk(rest)), nil
}

func (x *expander) expandSomeFirst(e *syntax.Expr) (*syntax.Expr, error) {
	return x.expandSomeThread(e, true)
}

func (x *expander) expandSomeLast(e *syntax.Expr) (*syntax.Expr, error) {
	return x.expandSomeThread(e, false)
}

// expandSomeThread lowers the nil-safe pipelines: each step short-circuits
// to absent when the previous step resolved to nil.
func (x *expander) expandSomeThread(e *syntax.Expr, threadFirst bool) (*syntax.Expr, error) {
	if len(e.Items) < 2 {
		return nil, errorAt(e, "%s expects an initial expression", e.Head())
	}
	return x.someStep(e.Items[1], e.Items[2:], threadFirst)
}

func (x *expander) someStep(expr *syntax.Expr, steps []*syntax.Expr, threadFirst bool) (*syntax.Expr, error) {
	if len(steps) == 0 {
		return x.expand(expr)
	}
	cur, err := x.expand(expr)
	if err != nil {
		return nil, err
	}
	v := x.gensym("v")
	next, err := x.someStep(threadInto(steps[0], v, threadFirst), steps[1:], threadFirst)
	if err != nil {
		return nil, err
	}
	return condView(true, thunk(cur), fn1(v, next), nil), nil
}

// threadInto inserts the threaded value into a pipeline step: second
// position for some->, last position for some->>. Bare symbols become
// single-argument calls.
func threadInto(step *syntax.Expr, v *syntax.Expr, first bool) *syntax.Expr {
	if step.Kind != syntax.KindList {
		return syntax.List(step, v)
	}
	items := make([]*syntax.Expr, 0, len(step.Items)+1)
	if first && len(step.Items) > 0 {
		items = append(items, step.Items[0], v)
		items = append(items, step.Items[1:]...)
	} else {
		items = append(items, step.Items...)
		items = append(items, v)
	}
	return &syntax.Expr{Kind: syntax.KindList, Items: items, Pos: step.Pos}
}

// expandCond lowers (cond t1 b1 ... :else bN) to one switch view. The
// trailing :else branch is mandatory; a missing or misplaced marker is a
// compile-time failure.
func (x *expander) expandCond(e *syntax.Expr) (*syntax.Expr, error) {
	clauses := e.Items[1:]
	if len(clauses) == 0 || len(clauses)%2 != 0 {
		return nil, errorAt(e, "cond expects test/branch pairs followed by an :else branch")
	}

	var branches []*syntax.Expr
	var fallback *syntax.Expr
	for i := 0; i < len(clauses); i += 2 {
		test, body := clauses[i], clauses[i+1]
		if test.IsKeyword("else") {
			if i != len(clauses)-2 {
				return nil, errorAt(test, "cond :else branch must be last")
			}
			expanded, err := x.expand(body)
			if err != nil {
				return nil, err
			}
			fallback = thunk(expanded)
			break
		}
		testX, err := x.expand(test)
		if err != nil {
			return nil, err
		}
		bodyX, err := x.expand(body)
		if err != nil {
			return nil, err
		}
		branches = append(branches, thunk(testX), thunk(bodyX))
	}
	if fallback == nil {
		return nil, errorAt(e, "cond requires a trailing :else branch")
	}

	return syntax.List(syntax.Symbol(SymSwitchView), syntax.Vector(branches...), fallback), nil
}

// expandCase lowers (case scrutinee v1 b1 ... default?) to a case view:
// the scrutinee is evaluated once per re-run into a shared value, and
// each branch test becomes an equality check against it.
func (x *expander) expandCase(e *syntax.Expr) (*syntax.Expr, error) {
	if len(e.Items) < 2 {
		return nil, errorAt(e, "case expects a scrutinee")
	}
	scrut, err := x.expand(e.Items[1])
	if err != nil {
		return nil, err
	}

	rest := e.Items[2:]
	var branches []*syntax.Expr
	fallback := syntax.Nil()
	for len(rest) > 0 {
		if len(rest) == 1 {
			expanded, err := x.expand(rest[0])
			if err != nil {
				return nil, err
			}
			fallback = thunk(expanded)
			break
		}
		val := rest[0]
		body, err := x.expand(rest[1])
		if err != nil {
			return nil, err
		}
		branches = append(branches, val, thunk(body))
		rest = rest[2:]
	}

	return syntax.List(syntax.Symbol(SymCaseView), thunk(scrut), syntax.Vector(branches...), fallback), nil
}

// listBinding parses the [[item index] collection] binding of the list
// constructs. The index binding is optional.
func listBinding(e *syntax.Expr) (item, index, coll *syntax.Expr, err error) {
	if len(e.Items) < 3 || e.Items[1].Kind != syntax.KindVector || len(e.Items[1].Items) != 2 {
		return nil, nil, nil, errorAt(e, "%s expects a [binding collection] vector and a body", e.Head())
	}
	bind := e.Items[1].Items[0]
	coll = e.Items[1].Items[1]
	switch {
	case bind.Kind == syntax.KindSymbol:
		return bind, nil, coll, nil
	case bind.Kind == syntax.KindVector && len(bind.Items) == 2 &&
		bind.Items[0].Kind == syntax.KindSymbol && bind.Items[1].Kind == syntax.KindSymbol:
		return bind.Items[0], bind.Items[1], coll, nil
	}
	return nil, nil, nil, errorAt(bind, "%s binding must be a symbol or [item index] vector", e.Head())
}

func (x *expander) expandFor(e *syntax.Expr) (*syntax.Expr, error) {
	return x.expandListForm(e, syntax.Keyword("identity"))
}

func (x *expander) expandIndex(e *syntax.Expr) (*syntax.Expr, error) {
	return x.expandListForm(e, syntax.Keyword("position"))
}

// expandListForm lowers for/index to one list view. The binding
// convention differs by keying and must be preserved exactly: for binds
// the item by value and the index as a reactive handle; index binds the
// item as a reactive handle and the index by value.
func (x *expander) expandListForm(e *syntax.Expr, keying *syntax.Expr) (*syntax.Expr, error) {
	item, index, coll, err := listBinding(e)
	if err != nil {
		return nil, err
	}
	if index == nil {
		index = x.gensym("i")
	}
	collX, err := x.expand(coll)
	if err != nil {
		return nil, err
	}
	body, err := x.expandAll(e.Items[2:])
	if err != nil {
		return nil, err
	}
	render := syntax.List(syntax.Symbol("fn"), syntax.Vector(item, index), doForm(body))
	return syntax.List(syntax.Symbol(SymListView), keying, thunk(collX), render), nil
}

// expandTry lowers (try body... (catch e handler...)) to one error
// boundary. A missing catch clause is a compile-time failure.
func (x *expander) expandTry(e *syntax.Expr) (*syntax.Expr, error) {
	if len(e.Items) < 2 {
		return nil, errorAt(e, "try expects a body and a (catch e ...) clause")
	}
	last := e.Items[len(e.Items)-1]
	if !last.IsCall("catch") {
		return nil, errorAt(e, "try requires a (catch e ...) clause as its final form")
	}
	if len(last.Items) < 3 || last.Items[1].Kind != syntax.KindSymbol {
		return nil, errorAt(last, "catch expects an error binding symbol and a handler body")
	}

	body, err := x.expandAll(e.Items[1 : len(e.Items)-1])
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		body = []*syntax.Expr{syntax.Nil()}
	}
	handler, err := x.expandAll(last.Items[2:])
	if err != nil {
		return nil, err
	}

	return syntax.List(
		syntax.Symbol(SymErrorBoundary),
		thunk(doForm(body)),
		fn1(last.Items[1], doForm(handler)),
	), nil
}

// expandBatch lowers (batch body...) to one batch primitive call. The
// whole region stays in a single runtime call so state propagation is
// deferred until the last form completes. An empty region is a no-op
// thunk rather than an error.
func (x *expander) expandBatch(e *syntax.Expr) (*syntax.Expr, error) {
	if len(e.Items) < 2 {
		return syntax.List(syntax.Symbol(SymBatch), thunk(syntax.Nil())), nil
	}
	body, err := x.expandAll(e.Items[1:])
	if err != nil {
		return nil, err
	}
	return syntax.List(syntax.Symbol(SymBatch), thunk(doForm(body))), nil
}

func (x *expander) expandAll(forms []*syntax.Expr) ([]*syntax.Expr, error) {
	out := make([]*syntax.Expr, len(forms))
	for i, f := range forms {
		expanded, err := x.expand(f)
		if err != nil {
			return nil, err
		}
		out[i] = expanded
	}
	return out, nil
}
