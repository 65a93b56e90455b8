package view

import (
	"strings"

	"github.com/scalpel-ui/scalpel/pkg/reactive"
)

// unitlessProps are the CSS properties whose numeric values are applied
// without a length unit. Any numeric, non-zero value for a property not
// in this set is suffixed with "px".
var unitlessProps = map[string]bool{
	"animationIterationCount": true,
	"aspectRatio":             true,
	"borderImageOutset":       true,
	"borderImageSlice":        true,
	"borderImageWidth":        true,
	"boxFlex":                 true,
	"boxFlexGroup":            true,
	"boxOrdinalGroup":         true,
	"columnCount":             true,
	"columns":                 true,
	"flex":                    true,
	"flexGrow":                true,
	"flexPositive":            true,
	"flexShrink":              true,
	"flexNegative":            true,
	"flexOrder":               true,
	"gridArea":                true,
	"gridRow":                 true,
	"gridRowEnd":              true,
	"gridRowSpan":             true,
	"gridRowStart":            true,
	"gridColumn":              true,
	"gridColumnEnd":           true,
	"gridColumnSpan":          true,
	"gridColumnStart":         true,
	"fontWeight":              true,
	"lineClamp":               true,
	"lineHeight":              true,
	"opacity":                 true,
	"order":                   true,
	"orphans":                 true,
	"tabSize":                 true,
	"widows":                  true,
	"zIndex":                  true,
	"zoom":                    true,
	"fillOpacity":             true,
	"floodOpacity":            true,
	"stopOpacity":             true,
	"strokeDasharray":         true,
	"strokeDashoffset":        true,
	"strokeMiterlimit":        true,
	"strokeOpacity":           true,
	"strokeWidth":             true,
}

// IsUnitless reports whether prop takes bare numbers.
func IsUnitless(prop string) bool {
	return unitlessProps[prop]
}

// StyleValue serializes one style value for prop. Numeric, non-zero
// values for non-whitelisted properties gain a "px" suffix; zero and
// whitelisted properties stay bare. Strings pass through untouched.
func StyleValue(prop string, v any) string {
	var num float64
	switch t := v.(type) {
	case float64:
		num = t
	case int:
		num = float64(t)
	default:
		return DisplayString(v)
	}
	s := DisplayString(num)
	if num != 0 && !unitlessProps[prop] {
		return s + "px"
	}
	return s
}

// StyleEntry is one compiled style declaration. Value is a literal or a
// Thunk, classified at compile time.
type StyleEntry struct {
	Prop  string
	Value any
}

// StyleMap is the compiled form of a static style map literal. Entry
// order is the author's insertion order and governs application order.
type StyleMap struct {
	Entries []StyleEntry
}

func (m *StyleMap) apply(n *Node) {
	for _, entry := range m.Entries {
		entry := entry
		if thunk, ok := entry.Value.(Thunk); ok {
			n.own(reactive.NewEffect(func() {
				n.setStyle(entry.Prop, StyleValue(entry.Prop, thunk()))
			}))
			continue
		}
		n.setStyle(entry.Prop, StyleValue(entry.Prop, entry.Value))
	}
}

// InterpretStyle applies a style mapping produced at run time. It performs
// the same per-key normalization, classification and unit suffixing as
// the compile-time path, but over a runtime value instead of a map
// literal.
func InterpretStyle(n *Node, v any) {
	switch m := v.(type) {
	case nil:
	case *StyleMap:
		m.apply(n)
	case *Record:
		for _, kv := range m.Pairs() {
			prop := normalizeStyleProp(DisplayString(kv.Key))
			if thunk, ok := kv.Val.(Thunk); ok {
				n.setStyle(prop, StyleValue(prop, thunk()))
				continue
			}
			n.setStyle(prop, StyleValue(prop, kv.Val))
		}
	case map[string]any:
		for name, val := range m {
			prop := normalizeStyleProp(name)
			n.setStyle(prop, StyleValue(prop, val))
		}
	}
}

// normalizeStyleProp camelCases a hyphenated property name so runtime
// style mappings consult the whitelist under the same key the compiled
// path uses.
func normalizeStyleProp(name string) string {
	if !strings.Contains(name, "-") {
		return name
	}
	parts := strings.Split(name, "-")
	var b strings.Builder
	b.WriteString(parts[0])
	for _, part := range parts[1:] {
		if part == "" {
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	return b.String()
}
