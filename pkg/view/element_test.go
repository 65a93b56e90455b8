package view

import (
	"testing"

	"github.com/scalpel-ui/scalpel/pkg/reactive"
)

func TestElementStaticAttributes(t *testing.T) {
	n := Element("input", []Attr{
		{Name: "type", Value: "text"},
		{Name: "placeholder", Value: "Name"},
	})
	if got := n.Render(); got != `<input type="text" placeholder="Name"></input>` {
		t.Errorf("unexpected render: %s", got)
	}
}

func TestElementThunkedAttributeTracks(t *testing.T) {
	title := reactive.NewCell("first")
	n := Element("div", []Attr{
		{Name: "title", Value: Thunk(func() any { return title.Get() })},
	})
	if got, _ := n.Attr("title"); got != "first" {
		t.Errorf("expected title first, got %q", got)
	}
	title.Set("second")
	if got, _ := n.Attr("title"); got != "second" {
		t.Errorf("expected title second after set, got %q", got)
	}
}

func TestElementEventHandlerStoredNotInvoked(t *testing.T) {
	calls := 0
	n := Element("button", []Attr{
		{Name: "onClick", Value: func() { calls++ }},
	})
	if calls != 0 {
		t.Fatalf("expected handler not to run at mount, ran %d times", calls)
	}
	h, ok := n.Handler("onClick").(func())
	if !ok {
		t.Fatal("expected onClick handler to be registered")
	}
	h()
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestElementRefRunsAfterChildren(t *testing.T) {
	var seenKids int
	n := Element("div", []Attr{
		{Name: "ref", Value: RefFunc(func(el *Node) { seenKids = len(el.Kids) })},
	}, "a", "b")
	if seenKids != 2 {
		t.Errorf("expected ref to observe 2 children, got %d", seenKids)
	}
	if len(n.Kids) != 2 {
		t.Errorf("expected 2 children, got %d", len(n.Kids))
	}
}

func TestThunkedChildRerenders(t *testing.T) {
	count := reactive.NewCell(float64(0))
	n := Element("div", nil, "count: ", Thunk(func() any { return count.Get() }))
	if got := n.Render(); got != "<div>count: 0</div>" {
		t.Errorf("unexpected initial render: %s", got)
	}
	count.Set(float64(3))
	if got := n.Render(); got != "<div>count: 3</div>" {
		t.Errorf("unexpected render after set: %s", got)
	}
}

func TestThunkedChildPatchesOnlyItsSlot(t *testing.T) {
	count := reactive.NewCell(float64(0))
	n := Element("div", nil, "static", Thunk(func() any { return count.Get() }))
	static := n.Kids[0]
	count.Set(float64(1))
	if n.Kids[0] != static {
		t.Error("expected static sibling to keep its node identity")
	}
}

func TestFragmentRendersChildrenFlat(t *testing.T) {
	n := Fragment("a", Element("b", nil), "c")
	if got := n.Render(); got != "a<b></b>c" {
		t.Errorf("unexpected render: %s", got)
	}
}

func TestDisposeStopsAttributeEffects(t *testing.T) {
	title := reactive.NewCell("first")
	n := Element("div", []Attr{
		{Name: "title", Value: Thunk(func() any { return title.Get() })},
	})
	n.Dispose()
	title.Set("second")
	if got, _ := n.Attr("title"); got != "first" {
		t.Errorf("expected disposed node to stop tracking, got %q", got)
	}
}

func TestDisplayString(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"text", "text"},
		{true, "true"},
		{float64(3), "3"},
		{float64(2.5), "2.5"},
		{7, "7"},
	}
	for _, c := range cases {
		if got := DisplayString(c.in); got != c.want {
			t.Errorf("DisplayString(%v): expected %q, got %q", c.in, c.want, got)
		}
	}
}
