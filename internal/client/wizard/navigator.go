// Package wizard holds the active step of the project setup wizard.
package wizard

import (
	"context"
	"fmt"
	"sync"
)

type Cause string

const (
	CauseAdvance Cause = "advance"
	CauseJump    Cause = "jump"
)

type Transition struct {
	From  Step
	To    Step
	Cause Cause
}

type Listener func(Transition)

// Activation is what a panel receives when its step becomes active. Ctx is
// cancelled as soon as another step takes over, and Advance only moves the
// wizard while this activation is still the current one.
type Activation struct {
	Step Step
	Ctx  context.Context

	nav *Navigator
	gen uint64
}

// Advance moves to the step after this activation's step. It reports false
// when the activation is stale or the step is the last one.
func (a Activation) Advance() bool {
	return a.nav.advanceFrom(a.gen)
}

// Active reports whether this activation is still the current one.
func (a Activation) Active() bool {
	a.nav.mu.Lock()
	defer a.nav.mu.Unlock()
	return a.nav.gen == a.gen
}

type Navigator struct {
	mu        sync.Mutex
	parent    context.Context
	active    Step
	gen       uint64
	ctx       context.Context
	cancel    context.CancelFunc
	listeners map[int]Listener
	nextID    int
}

// New starts the wizard at start, or at Requirements when start is not a step.
func New(parent context.Context, start Step) *Navigator {
	if !start.Valid() {
		start = Requirements
	}
	n := &Navigator{
		parent:    parent,
		active:    start,
		listeners: make(map[int]Listener),
	}
	n.ctx, n.cancel = context.WithCancel(parent)
	return n
}

func (n *Navigator) Active() Step {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.active
}

// Current returns the activation of the active step.
func (n *Navigator) Current() Activation {
	n.mu.Lock()
	defer n.mu.Unlock()
	return Activation{Step: n.active, Ctx: n.ctx, nav: n, gen: n.gen}
}

// ActiveContext is cancelled on the next transition.
func (n *Navigator) ActiveContext() context.Context {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.ctx
}

// Advance moves from the active step to the next one. At the last step it
// does nothing and reports false.
func (n *Navigator) Advance() bool {
	n.mu.Lock()
	gen := n.gen
	n.mu.Unlock()
	return n.advanceFrom(gen)
}

func (n *Navigator) advanceFrom(gen uint64) bool {
	n.mu.Lock()
	if gen != n.gen {
		n.mu.Unlock()
		return false
	}
	next, ok := n.active.Next()
	if !ok {
		n.mu.Unlock()
		return false
	}
	t := n.switchLocked(next, CauseAdvance)
	listeners := n.snapshotLocked()
	n.mu.Unlock()

	notify(listeners, t)
	return true
}

// Jump activates any step directly, regardless of progress.
func (n *Navigator) Jump(step Step) error {
	if !step.Valid() {
		return fmt.Errorf("unknown wizard step %q", step)
	}

	n.mu.Lock()
	t := n.switchLocked(step, CauseJump)
	listeners := n.snapshotLocked()
	n.mu.Unlock()

	notify(listeners, t)
	return nil
}

// Subscribe registers l for every transition and returns its cancel func.
func (n *Navigator) Subscribe(l Listener) func() {
	n.mu.Lock()
	defer n.mu.Unlock()
	id := n.nextID
	n.nextID++
	n.listeners[id] = l
	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.listeners, id)
	}
}

// Close cancels the active step's context.
func (n *Navigator) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.gen++
	n.cancel()
}

func (n *Navigator) switchLocked(to Step, cause Cause) Transition {
	t := Transition{From: n.active, To: to, Cause: cause}
	n.cancel()
	n.gen++
	n.active = to
	n.ctx, n.cancel = context.WithCancel(n.parent)
	return t
}

func (n *Navigator) snapshotLocked() []Listener {
	out := make([]Listener, 0, len(n.listeners))
	for _, l := range n.listeners {
		out = append(out, l)
	}
	return out
}

func notify(listeners []Listener, t Transition) {
	for _, l := range listeners {
		l(t)
	}
}
