package syntax

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Reader is a recursive descent reader for SX source text.
type Reader struct {
	input    string
	pos      int
	line     int
	col      int
	filename string
}

// NewReader creates a reader over one source file's text.
func NewReader(filename, input string) *Reader {
	return &Reader{
		input:    input,
		pos:      0,
		line:     1,
		col:      1,
		filename: filename,
	}
}

// ReadString reads every top-level form in src.
func ReadString(src string) ([]*Expr, error) {
	return NewReader("<input>", src).ReadAll()
}

// ReadOne reads exactly one form from src and rejects trailing forms.
func ReadOne(src string) (*Expr, error) {
	forms, err := ReadString(src)
	if err != nil {
		return nil, err
	}
	if len(forms) != 1 {
		return nil, fmt.Errorf("expected a single form, got %d", len(forms))
	}
	return forms[0], nil
}

// ReadAll reads forms until end of input.
func (r *Reader) ReadAll() ([]*Expr, error) {
	var forms []*Expr
	for {
		r.skipSpace()
		if r.pos >= len(r.input) {
			return forms, nil
		}
		form, err := r.readForm()
		if err != nil {
			return nil, err
		}
		forms = append(forms, form)
	}
}

func (r *Reader) readForm() (*Expr, error) {
	r.skipSpace()
	if r.pos >= len(r.input) {
		return nil, r.errorf("unexpected end of input")
	}

	pos := r.here()
	ch := r.input[r.pos]
	switch {
	case ch == '(':
		return r.readSeq(')', KindList, pos)
	case ch == '[':
		return r.readSeq(']', KindVector, pos)
	case ch == '{':
		return r.readMap(pos)
	case ch == ')' || ch == ']' || ch == '}':
		return nil, r.errorf("unexpected %q", ch)
	case ch == '"':
		return r.readString(pos)
	case ch == ':':
		return r.readKeyword(pos)
	case ch == '@':
		// Reader sugar: @x expands to (deref x).
		r.advance()
		inner, err := r.readForm()
		if err != nil {
			return nil, err
		}
		deref := Symbol("deref")
		deref.Pos = pos
		form := List(deref, inner)
		form.Pos = pos
		return form, nil
	default:
		return r.readAtom(pos)
	}
}

func (r *Reader) readSeq(close byte, kind Kind, pos Position) (*Expr, error) {
	r.advance() // opening delimiter
	var items []*Expr
	for {
		r.skipSpace()
		if r.pos >= len(r.input) {
			return nil, r.errorf("unterminated %s starting at %s", kindName(kind), pos)
		}
		if r.input[r.pos] == close {
			r.advance()
			return &Expr{Kind: kind, Items: items, Pos: pos}, nil
		}
		item, err := r.readForm()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
}

func (r *Reader) readMap(pos Position) (*Expr, error) {
	r.advance() // '{'
	var pairs []Pair
	for {
		r.skipSpace()
		if r.pos >= len(r.input) {
			return nil, r.errorf("unterminated map starting at %s", pos)
		}
		if r.input[r.pos] == '}' {
			r.advance()
			return &Expr{Kind: KindMap, Pairs: pairs, Pos: pos}, nil
		}
		key, err := r.readForm()
		if err != nil {
			return nil, err
		}
		r.skipSpace()
		if r.pos < len(r.input) && r.input[r.pos] == '}' {
			return nil, r.errorf("map literal has a key with no value")
		}
		val, err := r.readForm()
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, Pair{Key: key, Val: val})
	}
}

func (r *Reader) readString(pos Position) (*Expr, error) {
	r.advance() // opening quote
	var b strings.Builder
	for r.pos < len(r.input) {
		ch := r.input[r.pos]
		switch ch {
		case '"':
			r.advance()
			return &Expr{Kind: KindString, Str: b.String(), Pos: pos}, nil
		case '\\':
			r.advance()
			if r.pos >= len(r.input) {
				return nil, r.errorf("unterminated string escape")
			}
			switch r.input[r.pos] {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			case '"':
				b.WriteByte('"')
			case '\\':
				b.WriteByte('\\')
			default:
				return nil, r.errorf("unknown string escape \\%c", r.input[r.pos])
			}
			r.advance()
		default:
			b.WriteByte(ch)
			r.advance()
		}
	}
	return nil, r.errorf("unterminated string starting at %s", pos)
}

func (r *Reader) readKeyword(pos Position) (*Expr, error) {
	r.advance() // ':'
	name := r.readToken()
	if name == "" {
		return nil, r.errorf("expected keyword name after ':'")
	}
	return &Expr{Kind: KindKeyword, Str: name, Pos: pos}, nil
}

func (r *Reader) readAtom(pos Position) (*Expr, error) {
	tok := r.readToken()
	if tok == "" {
		return nil, r.errorf("unexpected character %q", r.input[r.pos])
	}
	switch tok {
	case "nil":
		return &Expr{Kind: KindNil, Pos: pos}, nil
	case "true":
		return &Expr{Kind: KindBool, Truth: true, Pos: pos}, nil
	case "false":
		return &Expr{Kind: KindBool, Truth: false, Pos: pos}, nil
	}
	if n, err := strconv.ParseFloat(tok, 64); err == nil && looksNumeric(tok) {
		return &Expr{Kind: KindNumber, Num: n, Pos: pos}, nil
	}
	return &Expr{Kind: KindSymbol, Str: tok, Pos: pos}, nil
}

// readToken consumes symbol/keyword constituent characters.
func (r *Reader) readToken() string {
	start := r.pos
	for r.pos < len(r.input) {
		ch := rune(r.input[r.pos])
		if unicode.IsSpace(ch) || strings.ContainsRune("()[]{}\",;@", ch) {
			break
		}
		r.advance()
	}
	return r.input[start:r.pos]
}

func looksNumeric(tok string) bool {
	ch := tok[0]
	if ch >= '0' && ch <= '9' {
		return true
	}
	return (ch == '-' || ch == '+') && len(tok) > 1 && tok[1] >= '0' && tok[1] <= '9'
}

// skipSpace consumes whitespace, commas and line comments.
func (r *Reader) skipSpace() {
	for r.pos < len(r.input) {
		ch := r.input[r.pos]
		if ch == ';' {
			for r.pos < len(r.input) && r.input[r.pos] != '\n' {
				r.advance()
			}
			continue
		}
		if ch == ',' || unicode.IsSpace(rune(ch)) {
			r.advance()
			continue
		}
		return
	}
}

func (r *Reader) advance() {
	if r.pos < len(r.input) {
		if r.input[r.pos] == '\n' {
			r.line++
			r.col = 1
		} else {
			r.col++
		}
		r.pos++
	}
}

func (r *Reader) here() Position {
	return Position{File: r.filename, Line: r.line, Col: r.col}
}

func (r *Reader) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("%s:%d:%d: %s", r.filename, r.line, r.col, fmt.Sprintf(format, args...))
}

func kindName(k Kind) string {
	switch k {
	case KindList:
		return "list"
	case KindVector:
		return "vector"
	case KindMap:
		return "map"
	}
	return "form"
}
