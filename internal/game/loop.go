package game

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"leafglide/internal/core"
)

// Loop drives the engine at a fixed frame rate on its own goroutine and is
// the engine's only concurrency boundary: every engine access (frames,
// actions, queries, rendering) goes through the loop's mutex, so the engine
// itself stays single-threaded.
// Notification hooks run on the loop goroutine while the mutex is held;
// handlers must be quick and must not call back into the Loop.
// A panic inside one frame is caught, logged, and retried after a short
// delay; sustained faults trip a circuit breaker that halts the loop and
// forces a playing session to ended.
type Loop struct {
	mu     sync.Mutex
	eng    *Engine
	logger *log.Logger

	interval time.Duration
	cancel   chan struct{}
	done     chan struct{}
	running  bool

	faults  faultTracker
	retryAt time.Time

	// step is the per-frame body; tests substitute a failing step to
	// exercise the breaker.
	step func(now time.Time)
}

// NewLoop wraps an engine in a frame loop running at the given tick rate.
func NewLoop(eng *Engine, tickRate int, logger *log.Logger) *Loop {
	if tickRate <= 0 {
		tickRate = 60
	}
	if logger == nil {
		logger = log.Default()
	}
	l := &Loop{
		eng:      eng,
		logger:   logger,
		interval: time.Second / time.Duration(tickRate),
	}
	l.step = eng.Update
	return l
}

// Start begins the frame chain. Starting an already-running loop is
// idempotent: the existing chain is cancelled before the new one begins, so
// exactly one chain is ever active.
func (l *Loop) Start() {
	l.Stop()

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.faults.tripped {
		return
	}

	l.cancel = make(chan struct{})
	l.done = make(chan struct{})
	l.running = true
	go l.run(l.cancel, l.done)
}

// Stop halts the loop and waits for any in-flight frame to finish. No
// further updates occur after Stop returns. Pending retry delays are
// abandoned along with the frame chain.
func (l *Loop) Stop() {
	l.mu.Lock()
	if !l.running {
		l.mu.Unlock()
		return
	}
	cancel, done := l.cancel, l.done
	l.running = false
	l.mu.Unlock()

	close(cancel)
	<-done
}

// Running reports whether a frame chain is active.
func (l *Loop) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.running
}

// Faulted reports whether the circuit breaker has tripped.
func (l *Loop) Faulted() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.faults.tripped
}

// run is the frame chain. It exits when cancelled or when the breaker
// trips.
func (l *Loop) run(cancel <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-cancel:
			return
		case <-ticker.C:
			if !l.frame(time.Now()) {
				l.mu.Lock()
				l.running = false
				l.mu.Unlock()
				return
			}
		}
	}
}

// frame executes one guarded engine update. Returns false when the breaker
// has tripped and the chain must end.
func (l *Loop) frame(now time.Time) (ok bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.faults.tripped {
		return false
	}
	if now.Before(l.retryAt) {
		return true
	}

	defer func() {
		r := recover()
		if r == nil {
			l.faults.recordSuccess(now)
			ok = true
			return
		}
		l.logger.Error("frame failed", "panic", r)
		l.retryAt = now.Add(faultRetryDelay)
		if l.faults.recordFault(now) {
			l.logger.Error("frame loop circuit breaker tripped, halting")
			l.eng.ForceEnd()
			ok = false
			return
		}
		ok = true
	}()

	l.step(now)
	return true
}

// Reset cancels the effect of any in-flight frame (frames are serialized on
// the mutex), performs the engine's full ready transition, and clears fault
// tracking. This is the only way out of a tripped breaker.
func (l *Loop) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.eng.Reset(time.Now())
	l.faults.reset()
	l.retryAt = time.Time{}
}

// StartRun begins a run from the ready screen.
func (l *Loop) StartRun() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.eng.StartRun(time.Now())
}

// Flap applies the flap impulse.
func (l *Loop) Flap() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.eng.Flap()
}

// SetLevel overrides the current level.
func (l *Loop) SetLevel(level int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.eng.SetLevel(level)
}

// Snapshot returns the current session snapshot.
func (l *Loop) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.eng.Snapshot(time.Now())
}

// Render draws the current scene into the screen buffer.
func (l *Loop) Render(dst *core.Screen) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.eng.Render(dst, time.Now())
}
