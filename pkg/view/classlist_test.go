package view

import (
	"testing"

	"github.com/scalpel-ui/scalpel/pkg/reactive"
)

func TestClassListTogglesIndependently(t *testing.T) {
	active := reactive.NewCell(true)
	admin := reactive.NewCell(false)
	cl := &ClassList{Entries: []ClassEntry{
		{Name: "active", Test: func() any { return active.Get() }},
		{Name: "is-admin", Test: func() any { return admin.Get() }},
	}}
	n := Element("div", []Attr{{Name: "class", Value: cl}})
	if got := n.ClassString(); got != "active" {
		t.Errorf("expected active, got %q", got)
	}
	admin.Set(true)
	if got := n.ClassString(); got != "active is-admin" {
		t.Errorf("expected active is-admin, got %q", got)
	}
	active.Set(false)
	if got := n.ClassString(); got != "is-admin" {
		t.Errorf("expected is-admin, got %q", got)
	}
}

func TestStaticClassString(t *testing.T) {
	n := Element("div", []Attr{{Name: "class", Value: "btn btn-primary extra"}})
	if got := n.ClassString(); got != "btn btn-primary extra" {
		t.Errorf("expected btn btn-primary extra, got %q", got)
	}
}

func TestDynamicClassVector(t *testing.T) {
	extra := reactive.NewCell(any("wide"))
	n := Element("div", []Attr{{Name: "class", Value: Thunk(func() any {
		return []any{"btn", extra.Get()}
	})}})
	if got := n.ClassString(); got != "btn wide" {
		t.Errorf("expected btn wide, got %q", got)
	}
	extra.Set(nil)
	if got := n.ClassString(); got != "btn" {
		t.Errorf("expected btn after clearing, got %q", got)
	}
}

func TestTruthy(t *testing.T) {
	cases := []struct {
		in   any
		want bool
	}{
		{nil, false},
		{false, false},
		{true, true},
		{float64(0), true},
		{"", true},
		{[]any{}, true},
	}
	for _, c := range cases {
		if got := Truthy(c.in); got != c.want {
			t.Errorf("Truthy(%v): expected %v, got %v", c.in, c.want, got)
		}
	}
}
