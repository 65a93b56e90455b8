package eval

import (
	"fmt"

	"github.com/scalpel-ui/scalpel/pkg/syntax"
	"github.com/scalpel-ui/scalpel/pkg/view"
)

// Form evaluates one expanded form, converting runtime panics into
// errors. Thunks escaping into the reactive runtime keep panicking so
// error boundaries can catch them.
func Form(form *syntax.Expr, env *Env) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
				return
			}
			err = fmt.Errorf("%v", r)
		}
	}()
	return eval(form, env), nil
}

// Forms evaluates a sequence of expanded forms and returns the last
// result.
func Forms(forms []*syntax.Expr, env *Env) (any, error) {
	var out any
	for _, form := range forms {
		v, err := Form(form, env)
		if err != nil {
			return nil, err
		}
		out = v
	}
	return out, nil
}

func eval(e *syntax.Expr, env *Env) any {
	switch e.Kind {
	case syntax.KindNil:
		return nil
	case syntax.KindBool:
		return e.Truth
	case syntax.KindNumber:
		return e.Num
	case syntax.KindString:
		return e.Str
	case syntax.KindKeyword:
		return Keyword(e.Str)
	case syntax.KindSymbol:
		return env.resolve(e.Str)
	case syntax.KindVector:
		items := make([]any, len(e.Items))
		for i, item := range e.Items {
			items[i] = eval(item, env)
		}
		return items
	case syntax.KindMap:
		rec := view.NewRecord()
		for _, p := range e.Pairs {
			rec.Set(eval(p.Key, env), eval(p.Val, env))
		}
		return rec
	case syntax.KindList:
		return evalList(e, env)
	}
	panic(fmt.Errorf("cannot evaluate form %s", e))
}

func evalList(e *syntax.Expr, env *Env) any {
	if len(e.Items) == 0 {
		return nil
	}
	if head := e.Head(); head != "" {
		switch head {
		case "fn":
			return makeFn(e, env)
		case "do":
			var out any
			for _, form := range e.Items[1:] {
				out = eval(form, env)
			}
			return out
		case "let":
			return evalLet(e, env)
		case "def":
			return evalDef(e, env)
		case "deref":
			if len(e.Items) != 2 {
				panic(fmt.Errorf("deref expects one argument"))
			}
			return Deref(eval(e.Items[1], env))
		}
		if fn, ok := viewForms[head]; ok {
			return fn(e, env)
		}
	}

	fn := eval(e.Items[0], env)
	args := make([]any, len(e.Items)-1)
	for i, arg := range e.Items[1:] {
		args[i] = eval(arg, env)
	}
	return Apply(fn, args...)
}

func makeFn(e *syntax.Expr, env *Env) *Fn {
	if len(e.Items) < 2 || e.Items[1].Kind != syntax.KindVector {
		panic(fmt.Errorf("fn expects a parameter vector"))
	}
	params := make([]string, len(e.Items[1].Items))
	for i, p := range e.Items[1].Items {
		if p.Kind != syntax.KindSymbol {
			panic(fmt.Errorf("fn parameter must be a symbol, got %s", p))
		}
		params[i] = p.Str
	}
	return &Fn{params: params, body: e.Items[2:], env: env}
}

func evalLet(e *syntax.Expr, env *Env) any {
	if len(e.Items) < 2 || e.Items[1].Kind != syntax.KindVector || len(e.Items[1].Items)%2 != 0 {
		panic(fmt.Errorf("let expects an even binding vector"))
	}
	scope := env.Child()
	bindings := e.Items[1].Items
	for i := 0; i+1 < len(bindings); i += 2 {
		if bindings[i].Kind != syntax.KindSymbol {
			panic(fmt.Errorf("let binding must be a symbol, got %s", bindings[i]))
		}
		scope.Define(bindings[i].Str, eval(bindings[i+1], scope))
	}
	var out any
	for _, form := range e.Items[2:] {
		out = eval(form, scope)
	}
	return out
}

func evalDef(e *syntax.Expr, env *Env) any {
	if len(e.Items) != 3 || e.Items[1].Kind != syntax.KindSymbol {
		panic(fmt.Errorf("def expects a symbol and a value"))
	}
	v := eval(e.Items[2], env)
	env.Define(e.Items[1].Str, v)
	return v
}

// evalThunk evaluates a compiled thunk position: the expander emits
// (fn [] ...) forms, nil means no branch.
func evalThunk(e *syntax.Expr, env *Env) view.Thunk {
	if e == nil || e.Kind == syntax.KindNil {
		return nil
	}
	return thunkOf(eval(e, env))
}
