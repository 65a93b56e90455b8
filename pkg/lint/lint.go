package lint

import (
	"unicode"
	"unicode/utf8"

	"github.com/scalpel-ui/scalpel/pkg/expand"
	"github.com/scalpel-ui/scalpel/pkg/syntax"
)

// mode describes how reads behave in the scope being walked.
type mode int

const (
	// modeUntracked runs once, before any tracking scope exists.
	modeUntracked mode = iota
	// modeTracked re-runs when its reactive dependencies change.
	modeTracked
	// modeExempt runs at some later, caller-controlled time. Reads there
	// are neither tracked nor one-shot, so nothing is reported.
	modeExempt
)

// effectHeads open a tracked scope around their function argument.
var effectHeads = map[string]bool{
	"effect":  true,
	"memo":    true,
	"derived": true,
}

// onceHeads run their body exactly once on purpose.
var onceHeads = map[string]bool{
	"on-mount":     true,
	"on-cleanup":   true,
	"set-timeout":  true,
	"set-interval": true,
}

// asyncHeads introduce continuations that outlive the current tracking
// scope.
var asyncHeads = map[string]bool{
	"go":      true,
	"async":   true,
	"await":   true,
	"promise": true,
	"then":    true,
}

// cellHeads are constructors whose result is a reactive container.
var cellHeads = map[string]bool{
	"cell":    true,
	"signal":  true,
	"memo":    true,
	"derived": true,
}

// scope carries the walker state down the form tree. Maps are cloned
// before mutation so sibling branches stay independent.
type scope struct {
	mode       mode
	inEffect   bool
	effectKind string
	cells      map[string]bool
	propsName  string
}

func (s scope) with(m mode) scope {
	s.mode = m
	return s
}

func (s scope) bindCell(name string) scope {
	cells := make(map[string]bool, len(s.cells)+1)
	for k := range s.cells {
		cells[k] = true
	}
	cells[name] = true
	s.cells = cells
	return s
}

func (s scope) shadow(names ...string) scope {
	cells := make(map[string]bool, len(s.cells))
	for k := range s.cells {
		cells[k] = true
	}
	for _, n := range names {
		delete(cells, n)
	}
	s.cells = cells
	return s
}

type linter struct {
	component string
	issues    []Issue
}

// File lints every component definition in forms. Forms that are not
// component definitions are walked as anonymous top-level code.
func File(forms []*syntax.Expr) []Issue {
	var issues []Issue
	for _, f := range forms {
		if f.IsCall("defui") && len(f.Items) >= 3 {
			name := f.Items[1].Str
			props := ""
			if f.Items[2].Kind == syntax.KindVector && len(f.Items[2].Items) == 1 {
				props = f.Items[2].Items[0].Str
			}
			issues = append(issues, lintBody(name, props, f.Items[3:])...)
			continue
		}
		issues = append(issues, lintBody("", "", []*syntax.Expr{f})...)
	}
	return issues
}

// Component lints the body forms of one component.
func Component(name string, body []*syntax.Expr) []Issue {
	return lintBody(name, "props", body)
}

func lintBody(component, propsName string, body []*syntax.Expr) []Issue {
	l := &linter{component: component}
	sc := scope{mode: modeUntracked, cells: map[string]bool{}, propsName: propsName}
	for _, f := range body {
		l.walk(f, sc)
	}
	return l.issues
}

func (l *linter) report(kind Kind, e *syntax.Expr, sc scope) {
	l.issues = append(l.issues, Issue{
		Kind:       kind,
		Component:  l.component,
		Form:       e.String(),
		Pos:        e.Pos,
		EffectKind: sc.effectKind,
	})
}

func (l *linter) walk(e *syntax.Expr, sc scope) {
	if e == nil {
		return
	}
	switch e.Kind {
	case syntax.KindSymbol:
		if sc.cells[e.Str] {
			l.report(SignalNotDereferenced, e, sc)
		}
	case syntax.KindVector:
		if isElementVector(e) {
			l.walkElement(e, sc)
			return
		}
		if isComponentVector(e) {
			l.walkComponent(e, sc)
			return
		}
		for _, it := range e.Items {
			l.walk(it, sc)
		}
	case syntax.KindMap:
		for _, p := range e.Pairs {
			l.walk(p.Val, sc)
		}
	case syntax.KindList:
		l.walkList(e, sc)
	}
}

func (l *linter) walkList(e *syntax.Expr, sc scope) {
	head := e.Head()
	switch {
	case head == "deref":
		if sc.mode == modeUntracked {
			l.report(UntrackedReactiveRead, e, sc)
		}
		// The target symbol is a deliberate bare cell use here.
		for _, arg := range e.Items[1:] {
			if arg.Kind != syntax.KindSymbol {
				l.walk(arg, sc)
			}
		}
	case head == "fn":
		l.walkFn(e, sc.with(modeExempt))
	case head == "let":
		l.walkLet(e, sc)
	case head == "set!" || head == "swap!" || head == "reset!":
		// First argument names the cell being written, not read.
		for i, arg := range e.Items[1:] {
			if i == 0 && arg.Kind == syntax.KindSymbol {
				continue
			}
			l.walk(arg, sc)
		}
	case effectHeads[head]:
		inner := sc.with(modeTracked)
		inner.inEffect = true
		inner.effectKind = head
		for _, arg := range e.Items[1:] {
			if arg.IsCall("fn") {
				l.walkFn(arg, inner)
			} else {
				l.walk(arg, inner)
			}
		}
	case onceHeads[head]:
		for _, arg := range e.Items[1:] {
			l.walk(arg, sc.with(modeExempt))
		}
	case asyncHeads[head]:
		if sc.inEffect {
			l.report(AsyncInTrackedScope, e, sc)
		}
		inner := sc.with(modeExempt)
		inner.inEffect = false
		inner.effectKind = ""
		for _, arg := range e.Items[1:] {
			l.walk(arg, inner)
		}
	case expand.IsMacroHead(head):
		l.walkMacro(e, sc)
	default:
		for i, arg := range e.Items {
			if i == 0 && arg.Kind == syntax.KindSymbol {
				continue
			}
			l.walk(arg, sc)
		}
	}
}

// walkFn analyzes a function literal body under the given scope, with its
// parameters shadowing any outer cell bindings of the same name.
func (l *linter) walkFn(e *syntax.Expr, sc scope) {
	if len(e.Items) < 2 || e.Items[1].Kind != syntax.KindVector {
		return
	}
	var names []string
	for _, p := range e.Items[1].Items {
		names = append(names, p.Str)
	}
	inner := sc.shadow(names...)
	for _, body := range e.Items[2:] {
		l.walk(body, inner)
	}
}

func (l *linter) walkLet(e *syntax.Expr, sc scope) {
	if len(e.Items) < 2 || e.Items[1].Kind != syntax.KindVector {
		return
	}
	binds := e.Items[1].Items
	inner := sc
	for i := 0; i+1 < len(binds); i += 2 {
		name, init := binds[i], binds[i+1]
		l.walk(init, inner)
		if name.Kind != syntax.KindSymbol {
			continue
		}
		if sc.mode == modeUntracked && readsProps(init, sc.propsName) {
			l.report(EarlyPropertyDestructure, init, sc)
		}
		if cellHeads[init.Head()] {
			inner = inner.bindCell(name.Str)
		} else {
			inner = inner.shadow(name.Str)
		}
	}
	for _, body := range e.Items[2:] {
		l.walk(body, inner)
	}
}

// walkMacro handles control-flow constructs, whose expressions end up in
// thunks re-evaluated under tracking.
func (l *linter) walkMacro(e *syntax.Expr, sc scope) {
	inner := sc.with(modeTracked)
	head := e.Head()
	args := e.Items[1:]
	switch head {
	case "if-let", "when-let", "if-some", "when-some", "for", "index":
		if len(args) > 0 && args[0].Kind == syntax.KindVector && len(args[0].Items) >= 1 {
			bound := args[0].Items[0]
			var names []string
			if bound.Kind == syntax.KindVector {
				for _, it := range bound.Items {
					names = append(names, it.Str)
				}
			} else {
				names = append(names, bound.Str)
			}
			for _, init := range args[0].Items[1:] {
				l.walk(init, inner)
			}
			inner = inner.shadow(names...)
			args = args[1:]
		}
	}
	for _, arg := range args {
		l.walk(arg, inner)
	}
}

// walkElement lints a [:tag {...} children...] vector. Attribute values
// and children are compiled into tracked thunks, except event handlers,
// which run outside tracking when the event fires.
func (l *linter) walkElement(e *syntax.Expr, sc scope) {
	tag := e.Items[0].Str
	rest := e.Items[1:]
	if len(rest) > 0 && rest[0].Kind == syntax.KindMap {
		for _, p := range rest[0].Pairs {
			attr := p.Key.Str
			switch {
			case p.Key.Kind == syntax.KindKeyword && len(attr) > 3 && attr[:3] == "on-":
				l.walkEventValue(p.Val, sc, tag, attr)
			case p.Key.Kind == syntax.KindSymbol || (p.Key.Kind == syntax.KindKeyword && attr == "ref"):
				l.walk(p.Val, sc.with(modeExempt))
			default:
				l.walk(p.Val, sc.with(modeTracked))
			}
		}
		rest = rest[1:]
	}
	for _, child := range rest {
		l.walk(child, sc.with(modeTracked))
	}
}

func (l *linter) walkComponent(e *syntax.Expr, sc scope) {
	rest := e.Items[1:]
	if len(rest) > 0 && rest[0].Kind == syntax.KindMap {
		for _, p := range rest[0].Pairs {
			l.walk(p.Val, sc.with(modeTracked))
		}
		rest = rest[1:]
	}
	for _, child := range rest {
		l.walk(child, sc.with(modeTracked))
	}
}

// walkEventValue checks an event handler attribute. A function literal
// is the expected shape and its body runs untracked later, which is
// fine. Any other shape that dereferences a cell captures a single
// stale value at construction time.
func (l *linter) walkEventValue(v *syntax.Expr, sc scope, tag, attr string) {
	if v.IsCall("fn") {
		l.walkFn(v, sc.with(modeExempt))
		return
	}
	if d := firstDeref(v); d != nil {
		l.issues = append(l.issues, Issue{
			Kind:      UntrackedEventHandlerRead,
			Component: l.component,
			Form:      d.String(),
			Pos:       d.Pos,
			Tag:       tag,
			Attr:      attr,
		})
	}
}

func firstDeref(e *syntax.Expr) *syntax.Expr {
	if e == nil {
		return nil
	}
	if e.IsCall("deref") {
		return e
	}
	for _, it := range e.Items {
		if d := firstDeref(it); d != nil {
			return d
		}
	}
	for _, p := range e.Pairs {
		if d := firstDeref(p.Val); d != nil {
			return d
		}
	}
	return nil
}

// readsProps reports whether init pulls a value out of the component's
// props accessor.
func readsProps(e *syntax.Expr, props string) bool {
	if props == "" || e == nil || e.IsCall("fn") {
		return false
	}
	if e.Kind == syntax.KindSymbol && e.Str == props {
		return true
	}
	for _, it := range e.Items {
		if readsProps(it, props) {
			return true
		}
	}
	return false
}

func isElementVector(e *syntax.Expr) bool {
	return e.Kind == syntax.KindVector && len(e.Items) > 0 &&
		e.Items[0].Kind == syntax.KindKeyword
}

func isComponentVector(e *syntax.Expr) bool {
	if e.Kind != syntax.KindVector || len(e.Items) == 0 || e.Items[0].Kind != syntax.KindSymbol {
		return false
	}
	r, _ := utf8.DecodeRuneInString(e.Items[0].Str)
	return unicode.IsUpper(r)
}
