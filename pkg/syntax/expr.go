// Package syntax defines the SX expression tree and its reader.
//
// SX is the author-facing UI syntax: s-expression forms built from
// literals, keywords, symbols, lists, vectors and insertion-ordered
// maps. The expander in pkg/expand rewrites these trees; it never
// looks at runtime values, only at the shapes defined here.
package syntax

import (
	"strconv"
	"strings"
)

// Kind identifies the shape of an expression node.
type Kind uint8

const (
	// KindNil is the literal nil.
	KindNil Kind = iota
	// KindBool is the literal true or false.
	KindBool
	// KindNumber is a numeric literal.
	KindNumber
	// KindString is a string literal.
	KindString
	// KindKeyword is an enumerated-tag literal like :div or :on-click.
	KindKeyword
	// KindSymbol is an identifier resolved in an environment at run time.
	KindSymbol
	// KindList is a call form (head arg...).
	KindList
	// KindVector is an ordered literal like [:div ...] or [:btn "x"].
	KindVector
	// KindMap is a map literal with insertion order preserved.
	KindMap
)

// Position locates an expression in its source file. Line and Col are
// 1-based; a zero Position means the form was built in memory.
type Position struct {
	File string
	Line int
	Col  int
}

func (p Position) String() string {
	if p.Line == 0 {
		return "<generated>"
	}
	file := p.File
	if file == "" {
		file = "<input>"
	}
	return file + ":" + strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Col)
}

// Pair is one map entry. Maps are stored as pair slices so that key
// order survives every transformation.
type Pair struct {
	Key *Expr
	Val *Expr
}

// Expr is a single SX node. Exactly one of the value fields is
// meaningful, selected by Kind.
type Expr struct {
	Kind Kind

	Str   string  // string value, keyword name or symbol name
	Num   float64 // number value
	Truth bool    // bool value

	Items []*Expr // list and vector elements
	Pairs []Pair  // map entries, insertion order

	Pos Position
}

// Nil returns the nil literal.
func Nil() *Expr { return &Expr{Kind: KindNil} }

// Bool returns a boolean literal.
func Bool(v bool) *Expr { return &Expr{Kind: KindBool, Truth: v} }

// Number returns a numeric literal.
func Number(v float64) *Expr { return &Expr{Kind: KindNumber, Num: v} }

// String returns a string literal.
func String(v string) *Expr { return &Expr{Kind: KindString, Str: v} }

// Keyword returns a keyword literal. The name excludes the leading colon.
func Keyword(name string) *Expr { return &Expr{Kind: KindKeyword, Str: name} }

// Symbol returns a symbol.
func Symbol(name string) *Expr { return &Expr{Kind: KindSymbol, Str: name} }

// List returns a call form.
func List(items ...*Expr) *Expr { return &Expr{Kind: KindList, Items: items} }

// Vector returns a vector form.
func Vector(items ...*Expr) *Expr { return &Expr{Kind: KindVector, Items: items} }

// Map returns a map form from alternating key/value expressions.
func Map(kvs ...*Expr) *Expr {
	pairs := make([]Pair, 0, len(kvs)/2)
	for i := 0; i+1 < len(kvs); i += 2 {
		pairs = append(pairs, Pair{Key: kvs[i], Val: kvs[i+1]})
	}
	return &Expr{Kind: KindMap, Pairs: pairs}
}

// IsLiteral reports whether the node is an atomic compile-time constant:
// nil, bool, number, string or keyword.
func (e *Expr) IsLiteral() bool {
	if e == nil {
		return true
	}
	switch e.Kind {
	case KindNil, KindBool, KindNumber, KindString, KindKeyword:
		return true
	}
	return false
}

// IsCall reports whether the node is a list whose head is the given symbol.
func (e *Expr) IsCall(head string) bool {
	return e != nil && e.Kind == KindList && len(e.Items) > 0 &&
		e.Items[0].Kind == KindSymbol && e.Items[0].Str == head
}

// Head returns the head symbol name of a list form, or "" when the node
// is not a list headed by a symbol.
func (e *Expr) Head() string {
	if e != nil && e.Kind == KindList && len(e.Items) > 0 && e.Items[0].Kind == KindSymbol {
		return e.Items[0].Str
	}
	return ""
}

// IsKeyword reports whether the node is the keyword :name.
func (e *Expr) IsKeyword(name string) bool {
	return e != nil && e.Kind == KindKeyword && e.Str == name
}

// DisplayName is the text a keyword, symbol or string contributes when
// concatenated into markup, e.g. class lists.
func (e *Expr) DisplayName() string {
	switch e.Kind {
	case KindKeyword, KindSymbol, KindString:
		return e.Str
	case KindNumber:
		return FormatNumber(e.Num)
	case KindBool:
		return strconv.FormatBool(e.Truth)
	}
	return ""
}

// FormatNumber renders a number the way the reader accepted it: integral
// values print without a decimal point.
func FormatNumber(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// String renders the expression back to SX text. The output is meant for
// diagnostics and golden tests, not round-trip fidelity of whitespace.
func (e *Expr) String() string {
	var b strings.Builder
	writeExpr(&b, e)
	return b.String()
}

func writeExpr(b *strings.Builder, e *Expr) {
	if e == nil {
		b.WriteString("nil")
		return
	}
	switch e.Kind {
	case KindNil:
		b.WriteString("nil")
	case KindBool:
		b.WriteString(strconv.FormatBool(e.Truth))
	case KindNumber:
		b.WriteString(FormatNumber(e.Num))
	case KindString:
		b.WriteString(strconv.Quote(e.Str))
	case KindKeyword:
		b.WriteByte(':')
		b.WriteString(e.Str)
	case KindSymbol:
		b.WriteString(e.Str)
	case KindList:
		b.WriteByte('(')
		writeItems(b, e.Items)
		b.WriteByte(')')
	case KindVector:
		b.WriteByte('[')
		writeItems(b, e.Items)
		b.WriteByte(']')
	case KindMap:
		b.WriteByte('{')
		for i, p := range e.Pairs {
			if i > 0 {
				b.WriteString(", ")
			}
			writeExpr(b, p.Key)
			b.WriteByte(' ')
			writeExpr(b, p.Val)
		}
		b.WriteByte('}')
	}
}

func writeItems(b *strings.Builder, items []*Expr) {
	for i, it := range items {
		if i > 0 {
			b.WriteByte(' ')
		}
		writeExpr(b, it)
	}
}
