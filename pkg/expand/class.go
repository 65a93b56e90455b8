package expand

import (
	"strings"

	"github.com/scalpel-ui/scalpel/pkg/syntax"
)

// compileClass rewrites a class value. A map literal becomes a reactive
// class list: each value is thunked and the runtime toggles the class
// names independently. A vector of keywords and strings collapses to one
// static string at expansion time. Every other shape passes through to
// the generic attribute path.
func (x *expander) compileClass(v *syntax.Expr) (*syntax.Expr, error) {
	switch v.Kind {
	case syntax.KindMap:
		items := []*syntax.Expr{syntax.Symbol(SymClassList)}
		for _, p := range v.Pairs {
			items = append(items, syntax.String(p.Key.DisplayName()))
			expanded, err := x.expand(p.Val)
			if err != nil {
				return nil, err
			}
			items = append(items, thunk(expanded))
		}
		return &syntax.Expr{Kind: syntax.KindList, Items: items, Pos: v.Pos}, nil
	case syntax.KindVector:
		if staticClassVector(v) {
			names := make([]string, 0, len(v.Items))
			for _, item := range v.Items {
				names = append(names, item.DisplayName())
			}
			return syntax.String(strings.Join(names, " ")), nil
		}
		// A mixed vector is data, not markup: expand the entries in
		// place and defer the join to run time.
		expanded, err := x.expandItems(v)
		if err != nil {
			return nil, err
		}
		return thunk(expanded), nil
	}
	return x.compileAttrValue(v)
}

// staticClassVector reports whether every element is a keyword or string,
// i.e. the whole vector resolves to one static class string.
func staticClassVector(v *syntax.Expr) bool {
	for _, item := range v.Items {
		if item.Kind != syntax.KindKeyword && item.Kind != syntax.KindString {
			return false
		}
	}
	return true
}
