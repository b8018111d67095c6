package progress

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu     sync.Mutex
	states []State
}

func (r *recorder) tick(s State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, s)
}

func (r *recorder) snapshot() []State {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]State, len(r.states))
	copy(out, r.states)
	return out
}

func TestRun_TicksAreMonotonicAndCapped(t *testing.T) {
	rec := &recorder{}
	est := NewEstimator(5*time.Millisecond, rec.tick)

	run := est.Start(0, 1, 0, 100)
	time.Sleep(100 * time.Millisecond)
	run.Stop()

	states := rec.snapshot()
	require.NotEmpty(t, states)

	prev := -1.0
	for _, s := range states {
		require.GreaterOrEqual(t, s.Percent, prev, "percent must never decrease in flight")
		require.GreaterOrEqual(t, s.Percent, 0.0)
		require.Less(t, s.Percent, 100.0, "simulated ticks stay below the ceiling")
		prev = s.Percent
	}
	// all checkpoints exhausted well within the sleep window
	require.InDelta(t, 93.0, run.Value(), 0.01)
}

func TestRun_CompleteSnapsToUpper(t *testing.T) {
	rec := &recorder{}
	est := NewEstimator(time.Hour, rec.tick) // never ticks on its own

	run := est.Start(0, 2, 0, 50)
	run.Complete()

	require.Equal(t, 50.0, run.Value())
	states := rec.snapshot()
	require.Equal(t, 50.0, states[len(states)-1].Percent)
}

func TestRun_AbortResetsToFloorAndFreezes(t *testing.T) {
	rec := &recorder{}
	est := NewEstimator(5*time.Millisecond, rec.tick)

	run := est.Start(1, 2, 50, 100)
	time.Sleep(30 * time.Millisecond)
	run.Abort()

	require.Equal(t, 50.0, run.Value())

	// no further movement after abort
	time.Sleep(30 * time.Millisecond)
	require.Equal(t, 50.0, run.Value())

	states := rec.snapshot()
	require.Equal(t, 50.0, states[len(states)-1].Percent)
}

func TestRun_CompleteAfterStopIsNoop(t *testing.T) {
	est := NewEstimator(time.Hour, nil)
	run := est.Start(0, 1, 0, 100)
	run.Stop()
	run.Complete()
	require.Equal(t, 0.0, run.Value())
}

func TestRun_BoundsScaleWithItemRange(t *testing.T) {
	rec := &recorder{}
	est := NewEstimator(5*time.Millisecond, rec.tick)

	run := est.Start(1, 4, 25, 50)
	time.Sleep(100 * time.Millisecond)
	run.Stop()

	for _, s := range rec.snapshot() {
		require.GreaterOrEqual(t, s.Percent, 25.0)
		require.Less(t, s.Percent, 50.0)
		require.Equal(t, 1, s.ItemIndex)
		require.Equal(t, 4, s.TotalItems)
	}
}
