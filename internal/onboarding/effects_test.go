package onboarding

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestEffects_FiresAfterDelay(t *testing.T) {
	fired := make(chan int, 1)
	e := NewEffects(func(step int) { fired <- step })
	defer e.Close()

	e.Schedule(PendingEffect{Step: 2, Delay: 10 * time.Millisecond})
	assert.True(t, e.Pending())

	select {
	case step := <-fired:
		assert.Equal(t, 2, step)
	case <-time.After(2 * time.Second):
		t.Fatal("effect did not fire")
	}
	assert.Eventually(t, func() bool { return !e.Pending() }, time.Second, 5*time.Millisecond)
}

func TestEffects_NewScheduleSupersedesPending(t *testing.T) {
	fired := make(chan int, 4)
	e := NewEffects(func(step int) { fired <- step })
	defer e.Close()

	e.Schedule(PendingEffect{Step: 1, Delay: time.Hour})
	e.Schedule(PendingEffect{Step: 2, Delay: 10 * time.Millisecond})

	select {
	case step := <-fired:
		assert.Equal(t, 2, step)
	case <-time.After(2 * time.Second):
		t.Fatal("effect did not fire")
	}
	select {
	case step := <-fired:
		t.Fatalf("stale effect for step %d fired", step)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestEffects_CancelAndClose(t *testing.T) {
	fired := make(chan int, 1)
	e := NewEffects(func(step int) { fired <- step })

	e.Schedule(PendingEffect{Step: 1, Delay: 20 * time.Millisecond})
	e.Cancel()
	assert.False(t, e.Pending())

	e.Close()
	e.Schedule(PendingEffect{Step: 3, Delay: time.Millisecond})
	assert.False(t, e.Pending())

	select {
	case step := <-fired:
		t.Fatalf("cancelled effect for step %d fired", step)
	case <-time.After(60 * time.Millisecond):
	}
}

func TestEffects_ObserveNavigation(t *testing.T) {
	fired := make(chan int, 1)
	e := NewEffects(func(step int) { fired <- step })
	defer e.Close()

	m, _ := newTestManager(t, WithEffectDelay(time.Hour))
	m.OnEffect(e.Schedule)

	m.Advance()
	require.True(t, e.Pending())

	// Going back before the timer fires drops the stale effect.
	e.Observe(m.Retreat())
	assert.False(t, e.Pending())

	// A clamped retreat leaves nothing to cancel and schedules nothing.
	e.Observe(m.Retreat())
	assert.False(t, e.Pending())

	e.Schedule(PendingEffect{Step: 9, Delay: time.Hour})
	e.Observe(m.Complete())
	assert.False(t, e.Pending())
}
