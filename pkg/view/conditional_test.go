package view

import (
	"testing"

	"github.com/scalpel-ui/scalpel/pkg/reactive"
)

func TestConditionalViewSwapsBranches(t *testing.T) {
	open := reactive.NewCell(false)
	n := ConditionalView(CondTruthy,
		func() any { return open.Get() },
		func(any) *Node { return NewText("open") },
		func() *Node { return NewText("closed") },
	)
	if got := n.Render(); got != "closed" {
		t.Errorf("expected closed, got %q", got)
	}
	open.Set(true)
	if got := n.Render(); got != "open" {
		t.Errorf("expected open after set, got %q", got)
	}
}

func TestConditionalViewPassesResolvedValue(t *testing.T) {
	user := reactive.NewCell(any("ada"))
	n := ConditionalView(CondTruthy,
		func() any { return user.Get() },
		func(v any) *Node { return NewText("hi " + v.(string)) },
		nil,
	)
	if got := n.Render(); got != "hi ada" {
		t.Errorf("expected hi ada, got %q", got)
	}
	user.Set(nil)
	if got := n.Render(); got != "" {
		t.Errorf("expected empty render without else branch, got %q", got)
	}
}

func TestConditionalViewSomeMode(t *testing.T) {
	v := reactive.NewCell(any(false))
	n := ConditionalView(CondSome,
		func() any { return v.Get() },
		func(val any) *Node { return NewText("some") },
		func() *Node { return NewText("none") },
	)
	// false is present under :some, absent only on nil.
	if got := n.Render(); got != "some" {
		t.Errorf("expected some for false, got %q", got)
	}
	v.Set(nil)
	if got := n.Render(); got != "none" {
		t.Errorf("expected none for nil, got %q", got)
	}
}

func TestSwitchViewFirstTruthyBranchWins(t *testing.T) {
	role := reactive.NewCell("user")
	n := SwitchView([]SwitchBranch{
		{Test: func() any { return role.Get() == "admin" }, Render: func() *Node { return NewText("admin") }},
		{Test: func() any { return role.Get() == "user" }, Render: func() *Node { return NewText("user") }},
	}, func() *Node { return NewText("guest") })
	if got := n.Render(); got != "user" {
		t.Errorf("expected user, got %q", got)
	}
	role.Set("admin")
	if got := n.Render(); got != "admin" {
		t.Errorf("expected admin, got %q", got)
	}
	role.Set("nobody")
	if got := n.Render(); got != "guest" {
		t.Errorf("expected guest fallback, got %q", got)
	}
}

func TestCaseViewEvaluatesScrutineeOnce(t *testing.T) {
	tab := reactive.NewCell("home")
	evals := 0
	n := CaseView(func() any { evals++; return tab.Get() }, []CaseBranch{
		{Value: "home", Render: func() *Node { return NewText("home") }},
		{Value: "about", Render: func() *Node { return NewText("about") }},
	}, nil)
	if got := n.Render(); got != "home" {
		t.Errorf("expected home, got %q", got)
	}
	if evals != 1 {
		t.Errorf("expected scrutinee evaluated once, got %d", evals)
	}
	tab.Set("about")
	if got := n.Render(); got != "about" {
		t.Errorf("expected about, got %q", got)
	}
	if evals != 2 {
		t.Errorf("expected one evaluation per re-run, got %d", evals)
	}
}

func TestErrorBoundaryCatchesPanics(t *testing.T) {
	broken := reactive.NewCell(true)
	n := ErrorBoundaryView(func() *Node {
		if Truthy(broken.Get()) {
			panic("render failed")
		}
		return NewText("content")
	}, func(err any) *Node {
		return NewText("caught: " + err.(string))
	})
	if got := n.Render(); got != "caught: render failed" {
		t.Errorf("expected handler output, got %q", got)
	}
	broken.Set(false)
	if got := n.Render(); got != "content" {
		t.Errorf("expected recovery after dependency change, got %q", got)
	}
}

func TestConditionalViewNilBranchNode(t *testing.T) {
	show := reactive.NewCell(true)
	n := ConditionalView(CondTruthy,
		func() any { return show.Get() },
		func(any) *Node {
			var none *Node
			return none
		},
		nil,
	)
	if got := n.Render(); got != "" {
		t.Errorf("expected empty render for nil branch node, got %q", got)
	}
	show.Set(false)
	if got := n.Render(); got != "" {
		t.Errorf("expected empty render without else branch, got %q", got)
	}
	show.Set(true)
	if got := n.Render(); got != "" {
		t.Errorf("expected empty render after re-show, got %q", got)
	}
}

func TestSwitchViewNoMatchNilFallback(t *testing.T) {
	role := reactive.NewCell("guest")
	n := SwitchView([]SwitchBranch{
		{Test: func() any { return role.Get() == "admin" }, Render: func() *Node { return NewText("admin") }},
	}, nil)
	if got := n.Render(); got != "" {
		t.Errorf("expected empty render with no match and no fallback, got %q", got)
	}
	role.Set("admin")
	if got := n.Render(); got != "admin" {
		t.Errorf("expected admin after set, got %q", got)
	}
	role.Set("guest")
	if got := n.Render(); got != "" {
		t.Errorf("expected empty render after leaving admin, got %q", got)
	}
}

func TestCaseViewNilFallback(t *testing.T) {
	tab := reactive.NewCell(any("home"))
	n := CaseView(
		func() any { return tab.Get() },
		[]CaseBranch{
			{Value: "home", Render: func() *Node { return NewText("home") }},
		},
		nil,
	)
	if got := n.Render(); got != "home" {
		t.Errorf("expected home, got %q", got)
	}
	tab.Set("other")
	if got := n.Render(); got != "" {
		t.Errorf("expected empty render with nil fallback, got %q", got)
	}
}
