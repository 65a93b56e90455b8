package view

import (
	"github.com/scalpel-ui/scalpel/pkg/reactive"
)

// SwitchBranch is one (test, render) pair of a multi-branch view.
type SwitchBranch struct {
	Test   Thunk
	Render func() *Node
}

// SwitchView renders the first branch whose test is truthy, falling back
// to fallback when none match. Tests re-evaluate reactively; branch order
// is the author's order.
func SwitchView(branches []SwitchBranch, fallback func() *Node) *Node {
	slot := NewFragment()
	slot.own(reactive.NewEffect(func() {
		for _, br := range branches {
			if Truthy(br.Test()) {
				renderInto(slot, br.Render())
				return
			}
		}
		var next *Node
		if fallback != nil {
			next = fallback()
		}
		renderInto(slot, next)
	}))
	return slot
}

// CaseBranch is one (value, render) pair of a value-switch view.
type CaseBranch struct {
	Value  any
	Render func() *Node
}

// CaseView evaluates the scrutinee once per re-run into a shared value and
// renders the first branch whose value equals it.
func CaseView(scrutinee Thunk, branches []CaseBranch, fallback func() *Node) *Node {
	slot := NewFragment()
	slot.own(reactive.NewEffect(func() {
		v := scrutinee()
		for _, br := range branches {
			if br.Value == v {
				renderInto(slot, br.Render())
				return
			}
		}
		var next *Node
		if fallback != nil {
			next = fallback()
		}
		renderInto(slot, next)
	}))
	return slot
}
