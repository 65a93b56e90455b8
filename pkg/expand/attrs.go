package expand

import (
	"github.com/scalpel-ui/scalpel/pkg/syntax"
)

// Reserved attribute keys.
const (
	refKey   = "ref"
	styleKey = "style"
	classKey = "class"
)

// eventKey reports whether a keyword attribute name uses the event
// handler prefix convention, e.g. :on-click.
func eventKey(name string) bool {
	return len(name) > 3 && name[:3] == "on-"
}

// directive is one symbol-keyed attribute entry: an imperative callback
// run against the element at mount, in declaration order.
type directive struct {
	fn  *syntax.Expr
	arg *syntax.Expr
}

// compileElementAttrs rewrites a tag-style attribute map. Event handler
// values pass through, style and class delegate to their sub-compilers,
// directive keys fold into a composite ref callback, and every other
// non-literal value is deferred behind a thunk. Key iteration order is
// preserved; remaining keys are camelCased except the aria-/data-
// prefixed ones.
func (x *expander) compileElementAttrs(attrMap *syntax.Expr) (*syntax.Expr, error) {
	if attrMap == nil {
		return syntax.Map(), nil
	}

	var (
		pairs      []syntax.Pair
		directives []directive
		refExpr    *syntax.Expr
		refSlot    = -1
	)

	for _, p := range attrMap.Pairs {
		if p.Key.Kind == syntax.KindSymbol {
			arg, err := x.expand(p.Val)
			if err != nil {
				return nil, err
			}
			directives = append(directives, directive{fn: p.Key, arg: arg})
			continue
		}

		name := p.Key.Str
		switch {
		case name == refKey:
			expanded, err := x.expand(p.Val)
			if err != nil {
				return nil, err
			}
			refExpr = expanded
			refSlot = len(pairs)
			pairs = append(pairs, syntax.Pair{}) // placeholder, filled below
		case eventKey(name):
			expanded, err := x.expand(p.Val)
			if err != nil {
				return nil, err
			}
			pairs = append(pairs, syntax.Pair{Key: syntax.String(CamelCase(name)), Val: expanded})
		case name == styleKey:
			compiled, err := x.compileStyle(p.Val)
			if err != nil {
				return nil, err
			}
			pairs = append(pairs, syntax.Pair{Key: syntax.String(styleKey), Val: compiled})
		case name == classKey:
			compiled, err := x.compileClass(p.Val)
			if err != nil {
				return nil, err
			}
			pairs = append(pairs, syntax.Pair{Key: syntax.String(classKey), Val: compiled})
		default:
			compiled, err := x.compileAttrValue(p.Val)
			if err != nil {
				return nil, err
			}
			pairs = append(pairs, syntax.Pair{Key: syntax.String(CamelCase(name)), Val: compiled})
		}
	}

	if refExpr != nil || len(directives) > 0 {
		composite := x.compositeRef(refExpr, directives)
		if refSlot >= 0 {
			pairs[refSlot] = syntax.Pair{Key: syntax.String(refKey), Val: composite}
		} else {
			pairs = append(pairs, syntax.Pair{Key: syntax.String(refKey), Val: composite})
		}
	}

	return &syntax.Expr{Kind: syntax.KindMap, Pairs: pairs, Pos: attrMap.Pos}, nil
}

// compileAttrValue defers a non-literal, non-callback attribute value.
func (x *expander) compileAttrValue(v *syntax.Expr) (*syntax.Expr, error) {
	switch Classify(v) {
	case Literal:
		return v, nil
	case FunctionLiteral:
		return x.expandFnBody(v)
	}
	expanded, err := x.expand(v)
	if err != nil {
		return nil, err
	}
	return thunk(expanded), nil
}

// compositeRef builds the mount callback: invoke the author's ref first
// (or nothing), then each directive as (directive-fn element arg) in the
// order the directives appeared in the attribute map.
func (x *expander) compositeRef(refExpr *syntax.Expr, directives []directive) *syntax.Expr {
	el := x.gensym("el")
	var body []*syntax.Expr
	if refExpr != nil {
		body = append(body, syntax.List(refExpr, el))
	}
	for _, d := range directives {
		body = append(body, syntax.List(d.fn, el, d.arg))
	}
	if len(body) == 0 {
		body = append(body, syntax.Nil())
	}
	return fn1(el, doForm(body))
}

// compileComponentAttrs rewrites a component-style attribute map: every
// non-literal, non-callback value is wrapped in a reactive property
// wrapper so the component's property accessor can decide at read time
// whether to invoke a getter.
func (x *expander) compileComponentAttrs(attrMap *syntax.Expr) (*syntax.Expr, error) {
	if attrMap == nil {
		return syntax.Map(), nil
	}
	pairs := make([]syntax.Pair, 0, len(attrMap.Pairs))
	for _, p := range attrMap.Pairs {
		key := syntax.String(p.Key.Str)
		switch Classify(p.Val) {
		case Literal:
			pairs = append(pairs, syntax.Pair{Key: key, Val: p.Val})
		case FunctionLiteral:
			expanded, err := x.expandFnBody(p.Val)
			if err != nil {
				return nil, err
			}
			pairs = append(pairs, syntax.Pair{Key: key, Val: expanded})
		default:
			expanded, err := x.expand(p.Val)
			if err != nil {
				return nil, err
			}
			wrapped := syntax.List(syntax.Symbol(SymGetter), thunk(expanded))
			pairs = append(pairs, syntax.Pair{Key: key, Val: wrapped})
		}
	}
	return &syntax.Expr{Kind: syntax.KindMap, Pairs: pairs, Pos: attrMap.Pos}, nil
}

// expandComponent lowers [Name attrs? child...] to
// (sx/component Name props children-thunk?).
func (x *expander) expandComponent(e *syntax.Expr) (*syntax.Expr, error) {
	name := e.Items[0]
	rest := e.Items[1:]

	var attrMap *syntax.Expr
	if len(rest) > 0 && rest[0].Kind == syntax.KindMap {
		attrMap = rest[0]
		rest = rest[1:]
	}

	props, err := x.compileComponentAttrs(attrMap)
	if err != nil {
		return nil, err
	}

	items := []*syntax.Expr{syntax.Symbol(SymComponent), name, props}
	if len(rest) > 0 {
		children, err := x.expandChildren(rest)
		if err != nil {
			return nil, err
		}
		frag := append([]*syntax.Expr{syntax.Symbol(SymFragment)}, children...)
		items = append(items, thunk(syntax.List(frag...)))
	}
	return &syntax.Expr{Kind: syntax.KindList, Items: items, Pos: e.Pos}, nil
}
