package view

import (
	"github.com/scalpel-ui/scalpel/pkg/reactive"
)

// Attr is one compiled attribute entry. Value is the compiled form: a
// literal, a Thunk, a *ClassList, a *StyleMap, an event handler or a ref
// callback, depending on the name.
type Attr struct {
	Name  string
	Value any
}

// RefFunc receives the live element once, at mount.
type RefFunc = func(*Node)

// Element constructs a live element node from compiled attributes and
// children. Attribute entries are applied in order; the ref callback, if
// any, runs last, after children are attached.
func Element(tag string, attrs []Attr, children ...any) *Node {
	n := newElement(tag)

	var ref RefFunc
	for _, a := range attrs {
		switch {
		case a.Name == "ref":
			if fn, ok := a.Value.(RefFunc); ok {
				ref = fn
			}
		case len(a.Name) > 2 && a.Name[0] == 'o' && a.Name[1] == 'n' && a.Name[2] >= 'A' && a.Name[2] <= 'Z':
			n.handlers[a.Name] = a.Value
		case a.Name == "class":
			applyClass(n, a.Value)
		case a.Name == "style":
			applyStyle(n, a.Value)
		default:
			applyAttr(n, a.Name, a.Value)
		}
	}

	for _, child := range children {
		n.Kids = append(n.Kids, mountChild(n, child))
	}

	if ref != nil {
		ref(n)
	}
	return n
}

// Fragment constructs a live fragment node from compiled children, with
// the same thunk handling as Element.
func Fragment(children ...any) *Node {
	n := NewFragment()
	for _, child := range children {
		n.Kids = append(n.Kids, mountChild(n, child))
	}
	return n
}

// mountChild turns one compiled child into a live node. Thunked children
// own an effect that patches only their own slot.
func mountChild(owner *Node, child any) *Node {
	switch c := child.(type) {
	case *Node:
		return c
	case Thunk:
		slot := NewFragment()
		owner.own(reactive.NewEffect(func() {
			renderInto(slot, c())
		}))
		return slot
	default:
		return NewText(DisplayString(child))
	}
}

// renderInto replaces a slot's content with the rendering of v.
func renderInto(slot *Node, v any) {
	for _, kid := range slot.Kids {
		kid.Dispose()
	}
	switch t := v.(type) {
	case nil:
		slot.Kids = nil
	case *Node:
		// A typed-nil node arrives here instead of the nil case.
		if t == nil {
			slot.Kids = nil
			return
		}
		slot.Kids = []*Node{t}
	case []*Node:
		slot.Kids = t
	case Thunk:
		renderInto(slot, t())
	default:
		slot.Kids = []*Node{NewText(DisplayString(t))}
	}
}

func applyAttr(n *Node, name string, value any) {
	if thunk, ok := value.(Thunk); ok {
		n.own(reactive.NewEffect(func() {
			n.setAttr(name, DisplayString(thunk()))
		}))
		return
	}
	n.setAttr(name, DisplayString(value))
}

func applyClass(n *Node, value any) {
	switch v := value.(type) {
	case *ClassList:
		v.apply(n)
	case Thunk:
		n.own(reactive.NewEffect(func() {
			n.classBase = classValueString(v())
		}))
	default:
		n.classBase = classValueString(v)
	}
}

func applyStyle(n *Node, value any) {
	switch v := value.(type) {
	case *StyleMap:
		v.apply(n)
	case Thunk:
		// Dynamic style: the whole mapping is re-interpreted when its
		// dependencies change.
		n.own(reactive.NewEffect(func() {
			InterpretStyle(n, v())
		}))
	default:
		InterpretStyle(n, v)
	}
}
