// Package reactive implements the runtime primitive surface the expander
// compiles against: reactive cells, effects, derived values, batching and
// untracked reads.
//
// The runtime is single-threaded and cooperative. Dependency tracking is
// automatic: reading a cell inside an effect or derived computation
// registers the computation as an observer, and the next write to the
// cell re-runs it. All propagation happens synchronously on the calling
// goroutine.
package reactive

// computation is one tracked scope: an effect body or a derived
// recomputation. It records the cells it read on its last run so the
// subscription set can be rebuilt from scratch on every run.
type computation struct {
	run      func()
	sources  []*Cell
	disposed bool
}

// observer is the computation currently executing, if any. Reads outside
// any computation register nothing, which is exactly the "untracked read"
// hazard the lint pass warns about.
var observer *computation

// Cell is a mutable storage location whose reads are trackable and whose
// writes re-run dependent computations.
type Cell struct {
	value     any
	observers map[*computation]struct{}
}

// NewCell creates a reactive cell holding initial.
func NewCell(initial any) *Cell {
	return &Cell{
		value:     initial,
		observers: make(map[*computation]struct{}),
	}
}

// Get returns the current value and subscribes the running computation.
func (c *Cell) Get() any {
	if observer != nil && !observer.disposed {
		if _, ok := c.observers[observer]; !ok {
			c.observers[observer] = struct{}{}
			observer.sources = append(observer.sources, c)
		}
	}
	return c.value
}

// Peek returns the current value without registering a dependency.
func (c *Cell) Peek() any {
	return c.value
}

// Set stores a new value and re-runs every observer. Inside a batch the
// observers are collected instead and run once when the batch completes.
func (c *Cell) Set(value any) {
	c.value = value
	c.notify()
}

// Update applies fn to the current value and stores the result.
func (c *Cell) Update(fn func(any) any) {
	c.Set(fn(c.value))
}

func (c *Cell) notify() {
	if len(c.observers) == 0 {
		return
	}
	if activeBatch != nil {
		for comp := range c.observers {
			activeBatch.add(comp)
		}
		return
	}
	// Copy before running: observers may resubscribe while running.
	pending := make([]*computation, 0, len(c.observers))
	for comp := range c.observers {
		pending = append(pending, comp)
	}
	for _, comp := range pending {
		if !comp.disposed {
			comp.run()
		}
	}
}

// Effect runs fn immediately inside a tracked scope and re-runs it
// whenever any cell it read changes.
type Effect struct {
	comp *computation
}

// NewEffect creates and immediately runs an effect.
func NewEffect(fn func()) *Effect {
	comp := &computation{}
	comp.run = func() {
		comp.unsubscribe()
		prev := observer
		observer = comp
		defer func() { observer = prev }()
		fn()
	}
	comp.run()
	return &Effect{comp: comp}
}

// Dispose stops the effect permanently.
func (e *Effect) Dispose() {
	e.comp.disposed = true
	e.comp.unsubscribe()
}

func (comp *computation) unsubscribe() {
	for _, src := range comp.sources {
		delete(src.observers, comp)
	}
	comp.sources = comp.sources[:0]
}

// Derived is a memoized computed value. Its Get is itself trackable, so
// chains of derived values propagate invalidation to the final effects.
type Derived struct {
	out  *Cell
	eff  *Effect
	init bool
}

// NewDerived creates a derived value over compute. The computation runs
// once eagerly and again whenever a dependency changes; downstream
// observers only re-run when the derived result is stored.
func NewDerived(compute func() any) *Derived {
	d := &Derived{out: NewCell(nil)}
	d.eff = NewEffect(func() {
		v := compute()
		if !d.init {
			// First run happens inside NewEffect; store without notifying
			// observers that cannot exist yet.
			d.out.value = v
			d.init = true
			return
		}
		d.out.Set(v)
	})
	return d
}

// Get returns the current derived value, tracked like a cell read.
func (d *Derived) Get() any {
	return d.out.Get()
}

// Dispose stops recomputation.
func (d *Derived) Dispose() {
	d.eff.Dispose()
}

// batch collects computations touched by writes inside a Batch region so
// each one runs exactly once after the region completes.
type batch struct {
	order []*computation
	seen  map[*computation]struct{}
}

var activeBatch *batch

func (b *batch) add(comp *computation) {
	if _, ok := b.seen[comp]; ok {
		return
	}
	b.seen[comp] = struct{}{}
	b.order = append(b.order, comp)
}

// Batch runs fn, deferring all observer re-runs until fn returns. Nested
// batches flush with the outermost region. Each distinct computation runs
// once regardless of how many of its sources were written.
func Batch(fn func()) {
	if activeBatch != nil {
		fn()
		return
	}
	b := &batch{seen: make(map[*computation]struct{})}
	activeBatch = b
	defer func() {
		activeBatch = nil
		for _, comp := range b.order {
			if !comp.disposed {
				comp.run()
			}
		}
	}()
	fn()
}

// Untrack runs fn with dependency tracking suspended and returns its
// result. Cell reads inside fn register no subscriptions.
func Untrack(fn func() any) any {
	prev := observer
	observer = nil
	defer func() { observer = prev }()
	return fn()
}
