package expand

import (
	"github.com/scalpel-ui/scalpel/pkg/syntax"
)

// expandDefui lowers (defui Name [props] body...) to a component
// definition form. The constructor it defines intercepts the incoming
// property bag behind a lazy property accessor before the body runs, so
// property reads stay live even when the body appears to read them
// directly.
func (x *expander) expandDefui(e *syntax.Expr) (*syntax.Expr, error) {
	if len(e.Items) < 4 {
		return nil, errorAt(e, "defui expects a name, a [props] vector and a body")
	}
	name := e.Items[1]
	if name.Kind != syntax.KindSymbol {
		return nil, errorAt(name, "defui name must be a symbol")
	}
	params := e.Items[2]
	if params.Kind != syntax.KindVector || len(params.Items) != 1 || params.Items[0].Kind != syntax.KindSymbol {
		return nil, errorAt(params, "defui expects a single [props] binding vector")
	}

	body, err := x.expandAll(e.Items[3:])
	if err != nil {
		return nil, err
	}

	render := fn1(params.Items[0], doForm(body))
	return syntax.List(syntax.Symbol(SymDefineComponent), name, render), nil
}
