package game

import "time"

// Snapshot is a plain-data view of the session for the HUD and tests.
// The platform layer reads snapshots; it never touches engine state
// directly.
type Snapshot struct {
	Phase     Phase
	Score     int
	Level     int
	Frames    uint64
	Stats     Stats
	Effects   []EffectStatus
	Obstacles int
	PowerUps  int
	Leaves    int
}

// Snapshot captures the current session state at the given time.
func (e *Engine) Snapshot(now time.Time) Snapshot {
	return Snapshot{
		Phase:     e.phase,
		Score:     e.score,
		Level:     e.level,
		Frames:    e.frames,
		Stats:     e.DifficultyStats(),
		Effects:   e.ActiveEffects(now),
		Obstacles: len(e.obstacles),
		PowerUps:  len(e.powerups),
		Leaves:    len(e.leaves),
	}
}
