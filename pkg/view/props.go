package view

// Getter marks a component property that must be invoked to read its
// current, possibly changing value. The attribute compiler wraps every
// non-literal, non-callback property value passed to a component in a
// Getter; plain values and callbacks are stored as-is.
type Getter struct {
	fn Thunk
}

// NewGetter wraps a thunk as a reactive property wrapper.
func NewGetter(fn Thunk) *Getter {
	return &Getter{fn: fn}
}

// Value evaluates the underlying expression, registering dependencies in
// the calling tracked scope.
func (g *Getter) Value() any {
	return g.fn()
}

// Props is the property accessor handed to a component body. A lookup on
// a plain value returns it unchanged; a lookup on a Getter invokes it and
// returns the live result. Reads are snapshots: correct inside a tracked
// scope, stale if taken once outside one.
type Props struct {
	rec *Record
}

// NewProps creates a props accessor over compiled property entries.
func NewProps(rec *Record) *Props {
	if rec == nil {
		rec = NewRecord()
	}
	return &Props{rec: rec}
}

// Get resolves the property named key, or nil when absent.
func (p *Props) Get(key string) any {
	v, ok := p.rec.Get(key)
	if !ok {
		return nil
	}
	return resolve(v)
}

// GetOr resolves the property named key, or returns def when absent.
func (p *Props) GetOr(key string, def any) any {
	v, ok := p.rec.Get(key)
	if !ok {
		return def
	}
	return resolve(v)
}

// Has reports whether the property is present.
func (p *Props) Has(key string) bool {
	_, ok := p.rec.Get(key)
	return ok
}

// Keys returns present property names in declaration order.
func (p *Props) Keys() []string {
	keys := make([]string, 0, p.rec.Len())
	for _, kv := range p.rec.Pairs() {
		keys = append(keys, DisplayString(kv.Key))
	}
	return keys
}

// Len returns the number of present properties.
func (p *Props) Len() int {
	return p.rec.Len()
}

func resolve(v any) any {
	if g, ok := v.(*Getter); ok {
		return g.Value()
	}
	return v
}
