// Package view implements the rendering primitives the expanded call tree
// targets: element and text nodes, conditional/switch/list/error-boundary
// views, reactive class lists and style interpretation.
//
// Nodes form a live tree rather than an immutable snapshot: thunked
// children and attributes own effects that patch the exact text node or
// attribute that changed, which is what keeps updates surgical.
package view

import (
	"strconv"
	"strings"

	"github.com/scalpel-ui/scalpel/pkg/reactive"
)

// Thunk is a zero-argument deferred computation evaluated by the runtime
// inside a tracked scope.
type Thunk = func() any

// NodeKind identifies the type of a live node.
type NodeKind uint8

const (
	// KindElement is a DOM element node.
	KindElement NodeKind = iota
	// KindText is a text node.
	KindText
	// KindFragment groups children without a parent element.
	KindFragment
)

// Node is one live tree node. Attribute, class and style state is mutated
// in place by the effects owned by the node, so a node's identity is
// stable across reactive updates.
type Node struct {
	Kind NodeKind
	Tag  string
	Text string
	Kids []*Node

	attrNames  []string
	attrValues map[string]string
	handlers   map[string]any
	classBase  string
	classNames []string
	classOn    map[string]bool
	styleNames []string
	styleVals  map[string]string

	effects []*reactive.Effect
}

// NewText creates a text node.
func NewText(text string) *Node {
	return &Node{Kind: KindText, Text: text}
}

// NewFragment creates a fragment node over children.
func NewFragment(kids ...*Node) *Node {
	return &Node{Kind: KindFragment, Kids: kids}
}

func newElement(tag string) *Node {
	return &Node{
		Kind:       KindElement,
		Tag:        tag,
		attrValues: make(map[string]string),
		handlers:   make(map[string]any),
		classOn:    make(map[string]bool),
		styleVals:  make(map[string]string),
	}
}

// own records an effect whose lifetime is tied to the node.
func (n *Node) own(e *reactive.Effect) {
	n.effects = append(n.effects, e)
}

// Dispose stops every effect owned by the node and its descendants.
func (n *Node) Dispose() {
	for _, e := range n.effects {
		e.Dispose()
	}
	n.effects = nil
	for _, kid := range n.Kids {
		kid.Dispose()
	}
}

// setAttr writes an attribute value, preserving first-set name order.
func (n *Node) setAttr(name, value string) {
	if _, ok := n.attrValues[name]; !ok {
		n.attrNames = append(n.attrNames, name)
	}
	n.attrValues[name] = value
}

// Attr returns the current value of an attribute.
func (n *Node) Attr(name string) (string, bool) {
	v, ok := n.attrValues[name]
	return v, ok
}

// AttrNames returns attribute names in the order they were first set.
func (n *Node) AttrNames() []string {
	return n.attrNames
}

// Handler returns the event handler registered under name, e.g. "onClick".
func (n *Node) Handler(name string) any {
	return n.handlers[name]
}

// setClass toggles a single class name without touching the others.
func (n *Node) setClass(name string, on bool) {
	if _, seen := n.classOn[name]; !seen {
		n.classNames = append(n.classNames, name)
	}
	n.classOn[name] = on
}

// ClassString joins the static class string with the currently enabled
// toggled class names, in declaration order.
func (n *Node) ClassString() string {
	var on []string
	if n.classBase != "" {
		on = append(on, n.classBase)
	}
	for _, name := range n.classNames {
		if n.classOn[name] {
			on = append(on, name)
		}
	}
	return strings.Join(on, " ")
}

// setStyle writes one style declaration, preserving declaration order.
func (n *Node) setStyle(prop, value string) {
	if _, ok := n.styleVals[prop]; !ok {
		n.styleNames = append(n.styleNames, prop)
	}
	n.styleVals[prop] = value
}

// Style returns the current value of one style property.
func (n *Node) Style(prop string) (string, bool) {
	v, ok := n.styleVals[prop]
	return v, ok
}

// StyleNames returns style property names in declaration order.
func (n *Node) StyleNames() []string {
	return n.styleNames
}

// Render flattens the live tree to an HTML-ish string. Used by tests and
// the dev server preview; not a real DOM serializer.
func (n *Node) Render() string {
	var b strings.Builder
	n.render(&b)
	return b.String()
}

func (n *Node) render(b *strings.Builder) {
	switch n.Kind {
	case KindText:
		b.WriteString(n.Text)
	case KindFragment:
		for _, kid := range n.Kids {
			kid.render(b)
		}
	case KindElement:
		b.WriteByte('<')
		b.WriteString(n.Tag)
		if cls := n.ClassString(); cls != "" {
			b.WriteString(` class="`)
			b.WriteString(cls)
			b.WriteByte('"')
		}
		if len(n.styleNames) > 0 {
			b.WriteString(` style="`)
			for i, prop := range n.styleNames {
				if i > 0 {
					b.WriteString("; ")
				}
				b.WriteString(prop)
				b.WriteString(": ")
				b.WriteString(n.styleVals[prop])
			}
			b.WriteByte('"')
		}
		for _, name := range n.attrNames {
			b.WriteByte(' ')
			b.WriteString(name)
			b.WriteString(`="`)
			b.WriteString(n.attrValues[name])
			b.WriteByte('"')
		}
		b.WriteByte('>')
		for _, kid := range n.Kids {
			kid.render(b)
		}
		b.WriteString("</")
		b.WriteString(n.Tag)
		b.WriteByte('>')
	}
}

// DisplayString renders a child value the way text interpolation does.
func DisplayString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'g', -1, 64)
	case int:
		return strconv.Itoa(t)
	case Keywordish:
		return t.KeywordName()
	case error:
		return t.Error()
	default:
		if s, ok := v.(interface{ String() string }); ok {
			return s.String()
		}
		return ""
	}
}

// Keywordish lets keyword values from the syntax layer display their name
// without this package importing it.
type Keywordish interface {
	KeywordName() string
}
