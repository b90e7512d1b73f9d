package onboarding

import (
	"sync"
	"time"
)

// Effects defers completion effects for a host UI. At most one effect is pending:
// scheduling a new one, navigating elsewhere, or closing cancels the previous one.
type Effects struct {
	mu     sync.Mutex
	timer  *time.Timer
	gen    uint64
	closed bool
	fire   func(step int)
}

// NewEffects returns an Effects that calls fire when a scheduled effect is due.
func NewEffects(fire func(step int)) *Effects {
	return &Effects{fire: fire}
}

// Schedule arms the effect, replacing any pending one.
func (e *Effects) Schedule(pe PendingEffect) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.stopLocked()
	gen := e.gen
	step := pe.Step
	e.timer = time.AfterFunc(pe.Delay, func() {
		e.mu.Lock()
		stale := e.closed || e.gen != gen
		if !stale {
			e.timer = nil
		}
		e.mu.Unlock()
		if !stale {
			e.fire(step)
		}
	})
}

// Observe reacts to a transition: a new effect is scheduled, any other step change cancels.
func (e *Effects) Observe(t Transition) {
	switch {
	case t.Effect != nil:
		e.Schedule(*t.Effect)
	case t.From != t.To || t.Destination == RouteDashboard:
		e.Cancel()
	}
}

// Pending reports whether an effect is waiting to fire.
func (e *Effects) Pending() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.timer != nil
}

// Cancel drops the pending effect, if any.
func (e *Effects) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopLocked()
}

// Close cancels the pending effect and ignores later schedules.
func (e *Effects) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopLocked()
	e.closed = true
}

func (e *Effects) stopLocked() {
	e.gen++
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
}
