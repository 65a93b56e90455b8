package view

import (
	"github.com/scalpel-ui/scalpel/pkg/reactive"
)

// Keying selects how a list view matches items across re-runs.
type Keying uint8

const (
	// KeyByIdentity matches items by their value, so reordering the
	// collection repositions nodes without remounting them.
	KeyByIdentity Keying = iota
	// KeyByPosition matches items by index, so removing an item updates
	// every following slot in place instead of shifting node identities.
	KeyByPosition
)

type listEntry struct {
	node *Node
	// item holds the live item in position-keyed lists; index holds the
	// live index in identity-keyed ones. Only one is in use per keying.
	item  *Handle
	index *Handle
}

// ListView renders one node per collection item. The collection thunk is
// coerced to a concrete slice on every re-run.
//
// With KeyByIdentity, render receives the item by value and the index as
// a read-only handle. With KeyByPosition the binding convention inverts:
// render receives the item as a handle and the index as a plain value.
func ListView(keying Keying, items Thunk, render func(item, index any) *Node) *Node {
	slot := NewFragment()

	byKey := make(map[any][]*listEntry)
	var byPos []*listEntry

	slot.own(reactive.NewEffect(func() {
		coll := ToSlice(items())
		if keying == KeyByIdentity {
			byKey = reconcileByIdentity(slot, byKey, coll, render)
		} else {
			byPos = reconcileByPosition(slot, byPos, coll, render)
		}
	}))
	return slot
}

func reconcileByIdentity(slot *Node, prev map[any][]*listEntry, coll []any, render func(item, index any) *Node) map[any][]*listEntry {
	next := make(map[any][]*listEntry)
	kids := make([]*Node, 0, len(coll))

	for i, item := range coll {
		var entry *listEntry
		if pool := prev[item]; len(pool) > 0 {
			entry, prev[item] = pool[0], pool[1:]
			entry.index.set(i)
		} else {
			entry = &listEntry{index: newHandle(i)}
			entry.node = render(item, entry.index)
		}
		next[item] = append(next[item], entry)
		kids = append(kids, entry.node)
	}

	for _, pool := range prev {
		for _, entry := range pool {
			entry.node.Dispose()
		}
	}

	slot.Kids = kids
	return next
}

func reconcileByPosition(slot *Node, prev []*listEntry, coll []any, render func(item, index any) *Node) []*listEntry {
	next := make([]*listEntry, 0, len(coll))
	kids := make([]*Node, 0, len(coll))

	for i, item := range coll {
		if i < len(prev) {
			entry := prev[i]
			entry.item.set(item)
			next = append(next, entry)
			kids = append(kids, entry.node)
			continue
		}
		entry := &listEntry{item: newHandle(item)}
		entry.node = render(entry.item, i)
		next = append(next, entry)
		kids = append(kids, entry.node)
	}

	if len(coll) < len(prev) {
		for _, entry := range prev[len(coll):] {
			entry.node.Dispose()
		}
	}

	slot.Kids = kids
	return next
}

// ToSlice coerces a runtime collection value to a concrete slice.
func ToSlice(v any) []any {
	switch c := v.(type) {
	case nil:
		return nil
	case []any:
		return c
	case *Record:
		out := make([]any, 0, c.Len())
		for _, kv := range c.Pairs() {
			out = append(out, []any{kv.Key, kv.Val})
		}
		return out
	case []string:
		out := make([]any, len(c))
		for i, s := range c {
			out[i] = s
		}
		return out
	default:
		return nil
	}
}
