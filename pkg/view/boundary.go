package view

import (
	"github.com/scalpel-ui/scalpel/pkg/reactive"
)

// ErrorBoundaryView renders children and swaps to the handler's rendering
// when building them panics. The recovered value is passed to handler as
// the bound error.
func ErrorBoundaryView(children func() *Node, handler func(err any) *Node) *Node {
	slot := NewFragment()
	slot.own(reactive.NewEffect(func() {
		next, err := tryRender(children)
		if err != nil {
			next = handler(err)
		}
		renderInto(slot, next)
	}))
	return slot
}

func tryRender(fn func() *Node) (node *Node, caught any) {
	defer func() {
		if r := recover(); r != nil {
			caught = r
			node = nil
		}
	}()
	return fn(), nil
}
