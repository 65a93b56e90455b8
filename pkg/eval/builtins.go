package eval

import (
	"fmt"
	"strings"

	"github.com/scalpel-ui/scalpel/pkg/reactive"
	"github.com/scalpel-ui/scalpel/pkg/view"
)

// installBuiltins loads the host function set every root environment
// starts with: the reactive primitives plus a small standard library used
// by component bodies.
func installBuiltins(env *Env) {
	env.Define("cell", HostFunc(func(args ...any) any {
		var initial any
		if len(args) > 0 {
			initial = args[0]
		}
		return reactive.NewCell(initial)
	}))
	env.Define("set!", HostFunc(func(args ...any) any {
		cellArg(args, "set!").Set(args[1])
		return args[1]
	}))
	env.Define("swap!", HostFunc(func(args ...any) any {
		c := cellArg(args, "swap!")
		fn := args[1]
		c.Update(func(v any) any { return Apply(fn, v) })
		return c.Peek()
	}))
	env.Define("effect", HostFunc(func(args ...any) any {
		fn := args[0]
		return reactive.NewEffect(func() { Apply(fn) })
	}))
	env.Define("memo", HostFunc(func(args ...any) any {
		fn := args[0]
		return reactive.NewDerived(func() any { return Apply(fn) })
	}))
	env.Define("untrack", HostFunc(func(args ...any) any {
		fn := args[0]
		return reactive.Untrack(func() any { return Apply(fn) })
	}))

	env.Define("=", HostFunc(func(args ...any) any {
		return len(args) == 2 && args[0] == args[1]
	}))
	env.Define("not", HostFunc(func(args ...any) any {
		return !view.Truthy(args[0])
	}))
	env.Define("nil?", HostFunc(func(args ...any) any {
		return args[0] == nil
	}))
	env.Define("str", HostFunc(func(args ...any) any {
		var b strings.Builder
		for _, a := range args {
			b.WriteString(view.DisplayString(a))
		}
		return b.String()
	}))
	env.Define("count", HostFunc(func(args ...any) any {
		switch c := args[0].(type) {
		case nil:
			return float64(0)
		case string:
			return float64(len(c))
		case []any:
			return float64(len(c))
		case *view.Record:
			return float64(c.Len())
		}
		panic(fmt.Errorf("count: uncountable value %v", args[0]))
	}))
	env.Define("+", numOp("+", func(a, b float64) float64 { return a + b }))
	env.Define("-", numOp("-", func(a, b float64) float64 { return a - b }))
	env.Define("*", numOp("*", func(a, b float64) float64 { return a * b }))
	env.Define("inc", HostFunc(func(args ...any) any {
		return num(args[0], "inc") + 1
	}))
	env.Define("dec", HostFunc(func(args ...any) any {
		return num(args[0], "dec") - 1
	}))
	env.Define("<", HostFunc(func(args ...any) any {
		return num(args[0], "<") < num(args[1], "<")
	}))
	env.Define(">", HostFunc(func(args ...any) any {
		return num(args[0], ">") > num(args[1], ">")
	}))
	env.Define("get", HostFunc(func(args ...any) any {
		var def any
		if len(args) > 2 {
			def = args[2]
		}
		switch c := args[0].(type) {
		case nil:
			return def
		case *view.Record:
			if v, ok := c.Get(args[1]); ok {
				return v
			}
		case *view.Props:
			return c.GetOr(view.DisplayString(args[1]), def)
		case []any:
			if i, ok := args[1].(float64); ok && int(i) >= 0 && int(i) < len(c) {
				return c[int(i)]
			}
		}
		return def
	}))
	env.Define("empty?", HostFunc(func(args ...any) any {
		return len(view.ToSlice(args[0])) == 0
	}))
	env.Define("without", HostFunc(func(args ...any) any {
		var out []any
		for _, v := range view.ToSlice(args[0]) {
			if v != args[1] {
				out = append(out, v)
			}
		}
		return out
	}))
	env.Define("first", HostFunc(func(args ...any) any {
		if s := view.ToSlice(args[0]); len(s) > 0 {
			return s[0]
		}
		return nil
	}))
	env.Define("upper-case", HostFunc(func(args ...any) any {
		return strings.ToUpper(view.DisplayString(args[0]))
	}))
}

func cellArg(args []any, op string) *reactive.Cell {
	if len(args) < 2 {
		panic(fmt.Errorf("%s expects a cell and a value", op))
	}
	c, ok := args[0].(*reactive.Cell)
	if !ok {
		panic(fmt.Errorf("%s expects a reactive cell, got %v", op, args[0]))
	}
	return c
}

func num(v any, op string) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	}
	panic(fmt.Errorf("%s expects a number, got %v", op, v))
}

func numOp(name string, op func(a, b float64) float64) HostFunc {
	return func(args ...any) any {
		if len(args) == 0 {
			return float64(0)
		}
		acc := num(args[0], name)
		for _, a := range args[1:] {
			acc = op(acc, num(a, name))
		}
		return acc
	}
}
