package expand

import (
	"github.com/scalpel-ui/scalpel/pkg/syntax"
)

// compileStyle rewrites a style value. A map literal is compiled key by
// key at expansion time, preserving insertion order: literal values pass
// through, everything else becomes a thunk. Any other shape is a dynamic
// style producing its mapping at run time, so it is deferred whole and
// the runtime interprets it per key instead.
func (x *expander) compileStyle(v *syntax.Expr) (*syntax.Expr, error) {
	if v.Kind != syntax.KindMap {
		expanded, err := x.expand(v)
		if err != nil {
			return nil, err
		}
		return thunk(expanded), nil
	}

	items := []*syntax.Expr{syntax.Symbol(SymStyle)}
	for _, p := range v.Pairs {
		items = append(items, syntax.String(styleProp(p.Key)))
		compiled, err := x.compileAttrValue(p.Val)
		if err != nil {
			return nil, err
		}
		items = append(items, compiled)
	}
	return &syntax.Expr{Kind: syntax.KindList, Items: items, Pos: v.Pos}, nil
}

// styleProp normalizes a style map key to the camelCased property name
// the unit-less whitelist is keyed by.
func styleProp(key *syntax.Expr) string {
	return CamelCase(key.DisplayName())
}
