package view

import (
	"strings"

	"github.com/scalpel-ui/scalpel/pkg/reactive"
)

// ClassEntry pairs one class name with its boolean test thunk.
type ClassEntry struct {
	Name string
	Test Thunk
}

// ClassList is the compiled form of a class map literal: each class name
// toggles independently, without rewriting the whole class attribute.
type ClassList struct {
	Entries []ClassEntry
}

func (cl *ClassList) apply(n *Node) {
	for _, entry := range cl.Entries {
		entry := entry
		n.own(reactive.NewEffect(func() {
			n.setClass(entry.Name, Truthy(entry.Test()))
		}))
	}
}

// classValueString renders a dynamic class value: a slice joins its
// truthy entries with spaces, anything else displays as-is.
func classValueString(v any) string {
	items, ok := v.([]any)
	if !ok {
		return DisplayString(v)
	}
	var parts []string
	for _, it := range items {
		if !Truthy(it) {
			continue
		}
		if s := DisplayString(it); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// Truthy implements the DSL truth rule: nil and false are falsy,
// everything else (including 0 and "") is truthy.
func Truthy(v any) bool {
	if v == nil {
		return false
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return true
}
