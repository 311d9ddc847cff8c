package game

import "time"

// Circuit breaker policy for the frame loop. A single transient fault only
// delays the next frame; a sustained fault pattern halts the loop for good.
const (
	maxConsecutiveFaults = 5
	maxFaultsInWindow    = 8
	faultWindow          = 10 * time.Second
	maxFrameSilence      = 3 * time.Second
	faultRetryDelay      = 250 * time.Millisecond
)

// faultTracker is the small state machine behind the loop's circuit
// breaker: a consecutive-fault counter, a rolling window of fault
// timestamps, and the time of the last successful frame.
type faultTracker struct {
	consecutive int
	window      []time.Time
	lastSuccess time.Time
	tripped     bool
}

// recordSuccess notes a completed frame and clears the consecutive counter.
func (f *faultTracker) recordSuccess(now time.Time) {
	f.consecutive = 0
	f.lastSuccess = now
}

// recordFault notes a failed frame and re-evaluates the trip conditions.
// Returns true if this fault tripped the breaker.
func (f *faultTracker) recordFault(now time.Time) bool {
	f.consecutive++
	f.window = append(f.window, now)
	f.prune(now)

	if f.consecutive >= maxConsecutiveFaults {
		f.tripped = true
	}
	if len(f.window) >= maxFaultsInWindow {
		f.tripped = true
	}
	if !f.lastSuccess.IsZero() && now.Sub(f.lastSuccess) > maxFrameSilence {
		f.tripped = true
	}
	return f.tripped
}

// prune drops fault timestamps older than the rolling window.
func (f *faultTracker) prune(now time.Time) {
	cutoff := now.Add(-faultWindow)
	keep := f.window[:0]
	for _, t := range f.window {
		if t.After(cutoff) {
			keep = append(keep, t)
		}
	}
	f.window = keep
}

// reset clears all fault tracking; only an explicit session reset recovers
// a tripped breaker.
func (f *faultTracker) reset() {
	f.consecutive = 0
	f.window = f.window[:0]
	f.lastSuccess = time.Time{}
	f.tripped = false
}
