package progress

import (
	"sync"
	"time"
)

// State is the externally visible progress of a batch. Percent never
// decreases while an item is in flight.
type State struct {
	ItemIndex  int
	TotalItems int
	Percent    float64 // 0..100
}

// checkpoints are the fractions of an item's progress range a run walks
// through on its tick cadence. The last one stays short of the ceiling so
// the bar never claims completion before the backend confirms it.
var checkpoints = []float64{0.12, 0.27, 0.45, 0.62, 0.76, 0.86, 0.93}

// Estimator produces simulated, monotonically increasing progress for remote
// operations whose real duration is unknown in advance. One Estimator per
// pipeline; one Run per artifact.
type Estimator struct {
	cadence time.Duration
	onTick  func(State)
}

func NewEstimator(cadence time.Duration, onTick func(State)) *Estimator {
	if onTick == nil {
		onTick = func(State) {}
	}
	return &Estimator{cadence: cadence, onTick: onTick}
}

// Run is one active simulation over [lower, upper] for item itemIndex of
// totalItems. Exactly one of Complete, Abort or Stop must be called on
// every exit path so the tick goroutine never leaks.
type Run struct {
	mu      sync.Mutex
	lower   float64
	upper   float64
	current float64
	next    int // index into checkpoints
	item    int
	total   int
	onTick  func(State)
	done    chan struct{}
	stopped bool
}

func (e *Estimator) Start(itemIndex, totalItems int, lower, upper float64) *Run {
	r := &Run{
		lower:   lower,
		upper:   upper,
		current: lower,
		item:    itemIndex,
		total:   totalItems,
		onTick:  e.onTick,
		done:    make(chan struct{}),
	}
	r.emit()

	go func() {
		ticker := time.NewTicker(e.cadence)
		defer ticker.Stop()
		for {
			select {
			case <-r.done:
				return
			case <-ticker.C:
				r.advance()
			}
		}
	}()

	return r
}

func (r *Run) advance() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopped || r.next >= len(checkpoints) {
		return
	}
	r.current = r.lower + checkpoints[r.next]*(r.upper-r.lower)
	r.next++
	// emitted under the lock so observers see states in order; onTick must
	// not call back into the Run
	r.onTick(r.state())
}

// Complete cancels the timer and snaps the value to the item's ceiling.
func (r *Run) Complete() {
	r.finish(r.upperValue())
}

// Abort cancels the timer and resets the value to the item's floor, where it
// stays frozen. Used when the batch fails on this item.
func (r *Run) Abort() {
	r.finish(r.lowerValue())
}

// Stop cancels the timer without moving the value. Teardown path.
func (r *Run) Stop() {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return
	}
	r.stopped = true
	close(r.done)
	r.mu.Unlock()
}

func (r *Run) finish(value float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopped {
		return
	}
	r.stopped = true
	close(r.done)
	r.current = value
	r.onTick(r.state())
}

func (r *Run) Value() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

func (r *Run) upperValue() float64 { return r.upper }
func (r *Run) lowerValue() float64 { return r.lower }

func (r *Run) emit() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onTick(r.state())
}

// state must be called with r.mu held.
func (r *Run) state() State {
	return State{
		ItemIndex:  r.item,
		TotalItems: r.total,
		Percent:    r.current,
	}
}
