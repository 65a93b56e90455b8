package view

import (
	"testing"

	"github.com/scalpel-ui/scalpel/pkg/reactive"
)

func TestPropsResolvesGettersLive(t *testing.T) {
	title := reactive.NewCell("first")
	rec := NewRecord()
	rec.Set("title", NewGetter(func() any { return title.Get() }))
	rec.Set("size", float64(2))
	p := NewProps(rec)

	if got := p.Get("title"); got != "first" {
		t.Errorf("expected first, got %v", got)
	}
	title.Set("second")
	if got := p.Get("title"); got != "second" {
		t.Errorf("expected live read to see second, got %v", got)
	}
	if got := p.Get("size"); got != float64(2) {
		t.Errorf("expected plain value 2, got %v", got)
	}
}

func TestPropsGetOrAndHas(t *testing.T) {
	rec := NewRecord()
	rec.Set("title", "hi")
	p := NewProps(rec)

	if got := p.GetOr("title", "fallback"); got != "hi" {
		t.Errorf("expected hi, got %v", got)
	}
	if got := p.GetOr("missing", "fallback"); got != "fallback" {
		t.Errorf("expected fallback, got %v", got)
	}
	if got := p.Get("missing"); got != nil {
		t.Errorf("expected nil for absent key, got %v", got)
	}
	if !p.Has("title") || p.Has("missing") {
		t.Error("unexpected Has results")
	}
}

func TestPropsKeysInDeclarationOrder(t *testing.T) {
	rec := NewRecord()
	rec.Set("b", 1)
	rec.Set("a", 2)
	rec.Set("c", 3)
	p := NewProps(rec)
	keys := p.Keys()
	if len(keys) != 3 || keys[0] != "b" || keys[1] != "a" || keys[2] != "c" {
		t.Errorf("expected declaration order b,a,c, got %v", keys)
	}
}

func TestNewPropsNilRecord(t *testing.T) {
	p := NewProps(nil)
	if p.Len() != 0 {
		t.Errorf("expected empty props, got %d entries", p.Len())
	}
	if got := p.Get("anything"); got != nil {
		t.Errorf("expected nil, got %v", got)
	}
}
