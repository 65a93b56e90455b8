package expand

import (
	"github.com/scalpel-ui/scalpel/pkg/syntax"
)

// expandElement lowers [:tag attrs? child...] to (sx/element "tag" attrs'
// child'...).
func (x *expander) expandElement(e *syntax.Expr) (*syntax.Expr, error) {
	tag := e.Items[0].Str
	rest := e.Items[1:]

	var attrMap *syntax.Expr
	if len(rest) > 0 && rest[0].Kind == syntax.KindMap {
		attrMap = rest[0]
		rest = rest[1:]
	}

	compiledAttrs, err := x.compileElementAttrs(attrMap)
	if err != nil {
		return nil, err
	}

	children, err := x.expandChildren(rest)
	if err != nil {
		return nil, err
	}

	items := []*syntax.Expr{syntax.Symbol(SymElement), syntax.String(tag), compiledAttrs}
	items = append(items, children...)
	return &syntax.Expr{Kind: syntax.KindList, Items: items, Pos: e.Pos}, nil
}

// expandFragment lowers [:<> child...] to (sx/fragment child'...).
func (x *expander) expandFragment(e *syntax.Expr) (*syntax.Expr, error) {
	children, err := x.expandChildren(e.Items[1:])
	if err != nil {
		return nil, err
	}
	items := append([]*syntax.Expr{syntax.Symbol(SymFragment)}, children...)
	return &syntax.Expr{Kind: syntax.KindList, Items: items, Pos: e.Pos}, nil
}

// expandChildren applies the children wrapper: every child is deferred
// behind a thunk except compile-time literals, callbacks and forms that
// are already self-contained reactive units.
func (x *expander) expandChildren(children []*syntax.Expr) ([]*syntax.Expr, error) {
	out := make([]*syntax.Expr, 0, len(children))
	for _, child := range children {
		wrapped, err := x.wrapChild(child)
		if err != nil {
			return nil, err
		}
		out = append(out, wrapped)
	}
	return out, nil
}

func (x *expander) wrapChild(child *syntax.Expr) (*syntax.Expr, error) {
	switch Classify(child) {
	case Literal:
		return child, nil
	case FunctionLiteral:
		return x.expandFnBody(child)
	}
	if isSelfContained(child) {
		return x.expand(child)
	}
	expanded, err := x.expand(child)
	if err != nil {
		return nil, err
	}
	return thunk(expanded), nil
}
