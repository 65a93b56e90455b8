package view

import (
	"github.com/scalpel-ui/scalpel/pkg/reactive"
)

// CondMode selects how a conditional view decides which branch renders.
type CondMode uint8

const (
	// CondTruthy selects the then branch when the test is truthy.
	CondTruthy CondMode = iota
	// CondSome selects the then branch when the test is non-nil, so
	// false and 0 still render the then branch.
	CondSome
)

// ConditionalView re-evaluates test reactively and swaps between the then
// and else render trees. The then renderer receives the test's resolved
// value, which is how the binding conditionals expose it.
func ConditionalView(mode CondMode, test Thunk, then func(any) *Node, els func() *Node) *Node {
	slot := NewFragment()
	slot.own(reactive.NewEffect(func() {
		v := test()
		hit := Truthy(v)
		if mode == CondSome {
			hit = v != nil
		}
		var next *Node
		if hit {
			if then != nil {
				next = then(v)
			}
		} else if els != nil {
			next = els()
		}
		renderInto(slot, next)
	}))
	return slot
}
