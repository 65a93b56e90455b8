package view

import (
	"testing"

	"github.com/scalpel-ui/scalpel/pkg/reactive"
)

func TestStyleValueUnits(t *testing.T) {
	cases := []struct {
		prop string
		in   any
		want string
	}{
		{"width", float64(100), "100px"},
		{"marginTop", 16, "16px"},
		{"width", float64(0), "0"},
		{"zIndex", float64(5), "5"},
		{"opacity", float64(0.5), "0.5"},
		{"flexGrow", float64(2), "2"},
		{"lineHeight", float64(1.4), "1.4"},
		{"strokeWidth", float64(3), "3"},
		// Strings are opaque: no suffixing, no parsing.
		{"width", "50%", "50%"},
		{"margin", "0 auto", "0 auto"},
	}
	for _, c := range cases {
		if got := StyleValue(c.prop, c.in); got != c.want {
			t.Errorf("StyleValue(%q, %v): expected %q, got %q", c.prop, c.in, c.want, got)
		}
	}
}

func TestIsUnitless(t *testing.T) {
	for _, prop := range []string{"zIndex", "opacity", "fontWeight", "flex", "gridRow", "strokeOpacity"} {
		if !IsUnitless(prop) {
			t.Errorf("expected %s to be unit-less", prop)
		}
	}
	for _, prop := range []string{"width", "marginTop", "fontSize", "top"} {
		if IsUnitless(prop) {
			t.Errorf("expected %s to take units", prop)
		}
	}
}

func TestStyleMapAppliesInOrder(t *testing.T) {
	m := &StyleMap{Entries: []StyleEntry{
		{Prop: "marginTop", Value: float64(8)},
		{Prop: "zIndex", Value: float64(2)},
		{Prop: "color", Value: "red"},
	}}
	n := Element("div", []Attr{{Name: "style", Value: m}})
	if got := n.Render(); got != `<div style="marginTop: 8px; zIndex: 2; color: red"></div>` {
		t.Errorf("unexpected render: %s", got)
	}
}

func TestStyleMapThunkedEntryTracks(t *testing.T) {
	width := reactive.NewCell(float64(100))
	m := &StyleMap{Entries: []StyleEntry{
		{Prop: "width", Value: Thunk(func() any { return width.Get() })},
	}}
	n := Element("div", []Attr{{Name: "style", Value: m}})
	if got, _ := n.Style("width"); got != "100px" {
		t.Errorf("expected 100px, got %q", got)
	}
	width.Set(float64(0))
	if got, _ := n.Style("width"); got != "0" {
		t.Errorf("expected bare 0 after set, got %q", got)
	}
}

func TestDynamicStyleThunk(t *testing.T) {
	big := reactive.NewCell(false)
	style := Thunk(func() any {
		size := float64(12)
		if Truthy(big.Get()) {
			size = 24
		}
		return map[string]any{"fontSize": size}
	})
	n := Element("div", []Attr{{Name: "style", Value: style}})
	if got, _ := n.Style("fontSize"); got != "12px" {
		t.Errorf("expected 12px, got %q", got)
	}
	big.Set(true)
	if got, _ := n.Style("fontSize"); got != "24px" {
		t.Errorf("expected 24px after set, got %q", got)
	}
}

func TestInterpretStyleNormalizesHyphenatedProps(t *testing.T) {
	n := Element("div", nil)
	InterpretStyle(n, map[string]any{"line-height": 1.5, "margin-top": float64(8)})
	if got, _ := n.Style("lineHeight"); got != "1.5" {
		t.Errorf("expected bare 1.5 for lineHeight, got %q", got)
	}
	if got, _ := n.Style("marginTop"); got != "8px" {
		t.Errorf("expected 8px for marginTop, got %q", got)
	}

	rec := NewRecord()
	rec.Set("z-index", float64(3))
	n2 := Element("div", nil)
	InterpretStyle(n2, rec)
	if got, _ := n2.Style("zIndex"); got != "3" {
		t.Errorf("expected bare 3 for zIndex, got %q", got)
	}
}
