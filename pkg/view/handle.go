package view

import (
	"github.com/scalpel-ui/scalpel/pkg/reactive"
)

// Handle is a read-only reactive view over a value owned by a list view:
// the item handle in position-keyed lists, the index handle in
// identity-keyed ones. Reading it inside a tracked scope subscribes to
// in-place updates.
type Handle struct {
	cell *reactive.Cell
}

func newHandle(initial any) *Handle {
	return &Handle{cell: reactive.NewCell(initial)}
}

// Get returns the current value, tracked.
func (h *Handle) Get() any {
	return h.cell.Get()
}

func (h *Handle) set(v any) {
	h.cell.Set(v)
}
