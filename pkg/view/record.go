package view

// KV is one entry of a Record.
type KV struct {
	Key any
	Val any
}

// Record is the runtime representation of an SX map value: ordered
// key/value pairs. Iteration order is insertion order.
type Record struct {
	pairs []KV
	index map[any]int
}

// NewRecord creates an empty record.
func NewRecord() *Record {
	return &Record{index: make(map[any]int)}
}

// Set inserts or replaces a key, preserving first-insertion order.
func (r *Record) Set(key, val any) {
	if i, ok := r.index[key]; ok {
		r.pairs[i].Val = val
		return
	}
	r.index[key] = len(r.pairs)
	r.pairs = append(r.pairs, KV{Key: key, Val: val})
}

// Get looks a key up.
func (r *Record) Get(key any) (any, bool) {
	if i, ok := r.index[key]; ok {
		return r.pairs[i].Val, true
	}
	return nil, false
}

// Pairs returns entries in insertion order.
func (r *Record) Pairs() []KV {
	return r.pairs
}

// Len returns the entry count.
func (r *Record) Len() int {
	return len(r.pairs)
}
