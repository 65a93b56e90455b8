package view

import (
	"testing"

	"github.com/scalpel-ui/scalpel/pkg/reactive"
)

func TestListViewIdentityReorderKeepsNodes(t *testing.T) {
	items := reactive.NewCell([]any{"a", "b", "c"})
	renders := 0
	lv := ListView(KeyByIdentity, func() any { return items.Get() }, func(item, index any) *Node {
		renders++
		return NewText(item.(string))
	})
	if got := lv.Render(); got != "abc" {
		t.Fatalf("unexpected initial render: %s", got)
	}
	a, b, c := lv.Kids[0], lv.Kids[1], lv.Kids[2]

	items.Set([]any{"c", "a", "b"})
	if got := lv.Render(); got != "cab" {
		t.Errorf("unexpected render after reorder: %s", got)
	}
	if lv.Kids[0] != c || lv.Kids[1] != a || lv.Kids[2] != b {
		t.Error("expected reorder to reposition existing nodes, not remount them")
	}
	if renders != 3 {
		t.Errorf("expected 3 renders total, got %d", renders)
	}
}

func TestListViewIdentityIndexHandleUpdates(t *testing.T) {
	items := reactive.NewCell([]any{"a", "b"})
	lv := ListView(KeyByIdentity, func() any { return items.Get() }, func(item, index any) *Node {
		h := index.(*Handle)
		return Element("li", nil, Thunk(func() any { return h.Get() }))
	})
	if got := lv.Render(); got != "<li>0</li><li>1</li>" {
		t.Fatalf("unexpected initial render: %s", got)
	}
	b := lv.Kids[1]
	items.Set([]any{"b", "a"})
	if lv.Kids[0] != b {
		t.Fatal("expected b's node to move, not remount")
	}
	if got := lv.Render(); got != "<li>0</li><li>1</li>" {
		t.Errorf("expected index handles to update in place, got %s", got)
	}
}

func TestListViewIdentityRemovalDisposes(t *testing.T) {
	items := reactive.NewCell([]any{"a", "b", "c"})
	lv := ListView(KeyByIdentity, func() any { return items.Get() }, func(item, index any) *Node {
		return NewText(item.(string))
	})
	items.Set([]any{"a", "c"})
	if got := lv.Render(); got != "ac" {
		t.Errorf("unexpected render after removal: %s", got)
	}
	if len(lv.Kids) != 2 {
		t.Errorf("expected 2 nodes, got %d", len(lv.Kids))
	}
}

func TestListViewPositionUpdatesInPlace(t *testing.T) {
	items := reactive.NewCell([]any{"a", "b", "c"})
	renders := 0
	lv := ListView(KeyByPosition, func() any { return items.Get() }, func(item, index any) *Node {
		renders++
		h := item.(*Handle)
		return Element("li", nil, Thunk(func() any { return h.Get() }))
	})
	if got := lv.Render(); got != "<li>a</li><li>b</li><li>c</li>" {
		t.Fatalf("unexpected initial render: %s", got)
	}
	first := lv.Kids[0]

	// Removing the middle item shifts values through existing slots.
	items.Set([]any{"a", "c"})
	if got := lv.Render(); got != "<li>a</li><li>c</li>" {
		t.Errorf("unexpected render after removal: %s", got)
	}
	if lv.Kids[0] != first {
		t.Error("expected slot nodes to keep their identity")
	}
	if renders != 3 {
		t.Errorf("expected no re-renders on shrink, got %d total renders", renders)
	}

	items.Set([]any{"x", "y", "z", "w"})
	if got := lv.Render(); got != "<li>x</li><li>y</li><li>z</li><li>w</li>" {
		t.Errorf("unexpected render after growth: %s", got)
	}
	if renders != 5 {
		t.Errorf("expected 2 new renders on growth, got %d total", renders)
	}
}

func TestToSlice(t *testing.T) {
	if got := ToSlice(nil); got != nil {
		t.Errorf("expected nil, got %v", got)
	}
	if got := ToSlice([]string{"a", "b"}); len(got) != 2 || got[0] != "a" {
		t.Errorf("unexpected coercion of []string: %v", got)
	}
	if got := ToSlice([]any{1, 2, 3}); len(got) != 3 {
		t.Errorf("unexpected coercion of []any: %v", got)
	}
}
