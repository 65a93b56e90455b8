// Package lint implements the advisory static pass over pre-expansion SX
// forms. It flags reactive reads that happen outside any tracked scope
// and asynchronous constructs inside tracked ones. Findings are warnings:
// they never fail compilation and never alter the expanded output.
package lint

import (
	"fmt"

	"github.com/scalpel-ui/scalpel/pkg/syntax"
)

// Kind classifies a lint finding.
type Kind string

const (
	// UntrackedReactiveRead is a deref outside any tracked scope: the
	// value is captured once and will never update.
	UntrackedReactiveRead Kind = "untracked-reactive-read"
	// UntrackedEventHandlerRead is a deref in an event handler position
	// whose value is not a function literal.
	UntrackedEventHandlerRead Kind = "untracked-event-handler-read"
	// AsyncInTrackedScope is an asynchronous construct inside an
	// effect, memo or derived body.
	AsyncInTrackedScope Kind = "async-in-tracked-scope"
	// SignalNotDereferenced is a locally bound reactive cell used bare
	// where its value was probably intended.
	SignalNotDereferenced Kind = "signal-not-dereferenced"
	// EarlyPropertyDestructure is a property read bound at component
	// top level, outside any tracked scope, where it snapshots once.
	EarlyPropertyDestructure Kind = "early-property-destructure"
)

// Issue is one advisory finding, with enough context to point the author
// at the offending sub-expression.
type Issue struct {
	Kind      Kind
	Component string
	Form      string
	Pos       syntax.Position

	// Contextual fields, populated where they apply.
	Attr       string
	Tag        string
	EffectKind string
}

func (i Issue) String() string {
	msg := fmt.Sprintf("%s: %s: %s", i.Pos, i.Kind, i.Form)
	if i.Component != "" {
		msg += " (component " + i.Component + ")"
	}
	return msg
}
