package onboarding

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"SavQuest/internal/model"
	"SavQuest/internal/recorder"

	"go.uber.org/zap"
)

var (
	ErrTooManyGoals    = fmt.Errorf("at most %d goals may be selected", MaxGoals)
	ErrUnknownGoal     = errors.New("unknown goal")
	ErrInvalidLiteracy = errors.New("literacy level must be between 1 and 5")
	ErrUnknownTrait    = errors.New("unknown trait")
)

// DefaultEffectDelay lets the exit animation of a step finish before the celebration starts.
const DefaultEffectDelay = 300 * time.Millisecond

// PendingEffect asks the host to play the one-time completion effect for Step after Delay.
type PendingEffect struct {
	Step  int
	Delay time.Duration
}

// Transition is the outcome of a navigation operation.
type Transition struct {
	From        int
	To          int
	Destination RouteID
	Clamped     bool           // the request hit a boundary and the step did not change
	Effect      *PendingEffect // set only on the first advance out of a step
}

// EffectHandler is notified of every pending effect emitted by Advance.
type EffectHandler func(PendingEffect)

// Manager drives the onboarding flow and persists every change.
type Manager struct {
	mu       sync.Mutex
	state    model.OnboardingState
	repo     Repository
	rec      recorder.Recorder
	log      *zap.Logger
	handlers []EffectHandler
	ctx      context.Context

	totalSteps  int
	literacy    int
	effectDelay time.Duration
}

// Option configures a Manager.
type Option func(*Manager)

func WithLogger(l *zap.Logger) Option         { return func(m *Manager) { m.log = l } }
func WithRecorder(r recorder.Recorder) Option { return func(m *Manager) { m.rec = r } }
func WithEffectDelay(d time.Duration) Option  { return func(m *Manager) { m.effectDelay = d } }

// WithTotalSteps overrides the number of steps. Values below 1 are ignored.
func WithTotalSteps(n int) Option {
	return func(m *Manager) {
		if n >= 1 {
			m.totalSteps = n
		}
	}
}

// WithDefaultLiteracy overrides the initial literacy level. Out-of-range values are ignored.
func WithDefaultLiteracy(n int) Option {
	return func(m *Manager) {
		if n >= minLiteracy && n <= maxLiteracy {
			m.literacy = n
		}
	}
}

// NewManager loads the stored record, or starts from defaults when none exists or it cannot be read.
func NewManager(ctx context.Context, repo Repository, opts ...Option) *Manager {
	m := &Manager{
		repo:        repo,
		rec:         recorder.NewNoopRecorder(),
		log:         zap.NewNop(),
		totalSteps:  DefaultTotalSteps,
		literacy:    DefaultLiteracyLevel,
		effectDelay: DefaultEffectDelay,
	}
	for _, opt := range opts {
		opt(m)
	}
	// Saves keep the caller's values but outlive its cancellation, so shutdown never drops a write.
	m.ctx = context.WithoutCancel(ctx)

	state, found, err := repo.Load(ctx)
	switch {
	case err != nil:
		m.log.Error("load onboarding state, using defaults", zap.Error(err))
		m.state = DefaultState(m.totalSteps, m.literacy)
	case !found:
		m.state = DefaultState(m.totalSteps, m.literacy)
	default:
		m.state = Normalize(state, m.totalSteps, m.literacy)
	}

	m.persist()
	return m
}

// OnEffect registers a handler for pending effects. Handlers run after the state is saved,
// outside the manager lock.
func (m *Manager) OnEffect(h EffectHandler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers = append(m.handlers, h)
}

// State returns a copy of the current state.
func (m *Manager) State() model.OnboardingState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Clone()
}

// Advance moves to the next step. At the last step it is a no-op.
func (m *Manager) Advance() Transition {
	m.mu.Lock()
	t := m.advanceLocked()
	handlers := append([]EffectHandler(nil), m.handlers...)
	m.mu.Unlock()

	if t.Effect != nil {
		if err := m.rec.RecordStepCompleted(&recorder.StepCompletedEvent{Step: t.From, NextStep: t.To}); err != nil {
			m.log.Error("record step completion", zap.Int("step", t.From), zap.Error(err))
		}
		for _, h := range handlers {
			h(*t.Effect)
		}
	}
	return t
}

func (m *Manager) advanceLocked() Transition {
	from := m.state.CurrentStep
	if from >= m.state.TotalSteps {
		return Transition{From: from, To: from, Destination: DestinationForStep(from), Clamped: true}
	}
	to := from + 1
	m.state.CurrentStep = to

	t := Transition{From: from, To: to, Destination: DestinationForStep(to)}
	// Both guards must agree the step is new; anything else fails closed.
	if from > m.state.LastCompletedStep && !m.state.EffectFired(from) {
		m.state.EffectsFired = append(m.state.EffectsFired, from)
		t.Effect = &PendingEffect{Step: from, Delay: m.effectDelay}
	}
	if from > m.state.LastCompletedStep {
		m.state.LastCompletedStep = from
	}

	m.persist()
	m.log.Debug("onboarding advanced", zap.Int("from", from), zap.Int("to", to), zap.Bool("effect", t.Effect != nil))
	return t
}

// Retreat moves to the previous step. At step 1 it is a no-op.
func (m *Manager) Retreat() Transition {
	m.mu.Lock()
	defer m.mu.Unlock()

	from := m.state.CurrentStep
	if from <= 1 {
		return Transition{From: from, To: from, Destination: DestinationForStep(from), Clamped: true}
	}
	to := from - 1
	m.state.CurrentStep = to
	m.persist()
	m.log.Debug("onboarding retreated", zap.Int("from", from), zap.Int("to", to))
	return Transition{From: from, To: to, Destination: DestinationForStep(to)}
}

// SetGoals replaces the selected goals. Duplicates are collapsed.
func (m *Manager) SetGoals(goals []string) error {
	clean := make([]string, 0, len(goals))
	seen := make(map[string]bool)
	for _, g := range goals {
		if _, ok := model.FindGoal(g); !ok {
			return fmt.Errorf("%w: %q", ErrUnknownGoal, g)
		}
		if seen[g] {
			continue
		}
		seen[g] = true
		clean = append(clean, g)
	}
	if len(clean) > MaxGoals {
		return ErrTooManyGoals
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.FinancialGoals = clean
	m.persist()
	return nil
}

// SetLiteracyLevel records the self-assessed literacy level (1..5).
func (m *Manager) SetLiteracyLevel(level int) error {
	if level < minLiteracy || level > maxLiteracy {
		return fmt.Errorf("%w: got %d", ErrInvalidLiteracy, level)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.LiteracyLevel = level
	m.persist()
	return nil
}

// SetSelectedTrait records the focus trait. An empty id clears the selection.
func (m *Manager) SetSelectedTrait(trait string) error {
	if trait != "" {
		if _, ok := model.FindTrait(trait); !ok {
			return fmt.Errorf("%w: %q", ErrUnknownTrait, trait)
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.SelectedTrait = trait
	m.persist()
	return nil
}

// Complete marks onboarding finished from any step and sends the user to the dashboard.
// Calling it again is harmless.
func (m *Manager) Complete() Transition {
	m.mu.Lock()
	first := !m.state.Completed
	m.state.Completed = true
	m.persist()
	snap := m.state.Clone()
	m.mu.Unlock()

	if first {
		if err := m.rec.RecordOnboardingCompleted(&recorder.OnboardingCompletedEvent{
			Step:          snap.CurrentStep,
			Goals:         snap.FinancialGoals,
			LiteracyLevel: snap.LiteracyLevel,
			Trait:         snap.SelectedTrait,
			Skipped:       snap.CurrentStep < snap.TotalSteps,
		}); err != nil {
			m.log.Error("record onboarding completion", zap.Error(err))
		}
		m.log.Info("onboarding completed", zap.Int("step", snap.CurrentStep))
	}
	return Transition{From: snap.CurrentStep, To: snap.CurrentStep, Destination: RouteDashboard}
}

// persist saves the state; failures are logged and the in-memory state stays authoritative.
// Callers must hold m.mu.
func (m *Manager) persist() {
	if err := m.repo.Save(m.ctx, m.state.Clone()); err != nil {
		m.log.Error("save onboarding state", zap.Error(err))
	}
}
