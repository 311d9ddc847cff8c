package game

import (
	"math/rand"
	"time"

	"leafglide/internal/config"
	"leafglide/internal/core"
)

// Phase is the engine's session state.
type Phase int

const (
	// PhaseReady is the idle state before a run: the character and
	// obstacles hold still, only leaves keep drifting.
	PhaseReady Phase = iota
	// PhasePlaying is the full simulation.
	PhasePlaying
	// PhaseEnded is the frozen state after a boundary exit or an
	// unshielded collision. The host layer decides when to restart.
	PhaseEnded
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseReady:
		return "ready"
	case PhasePlaying:
		return "playing"
	case PhaseEnded:
		return "ended"
	default:
		return "?"
	}
}

// Hooks are the engine's outward notifications. The engine only ever calls
// out through these; it never blocks on them and never reads host state.
// Nil handlers are skipped.
type Hooks struct {
	OnScore    func(points int)
	OnLevelUp  func(level int)
	OnPowerUp  func(kind PowerKind)
	OnGameOver func(score int)
}

// Stats is a read-only snapshot of the current difficulty for the HUD.
type Stats struct {
	Level         int
	ObstacleSpeed float64
	SpawnInterval time.Duration
}

// EffectStatus describes one active power-up effect for HUD rendering.
type EffectStatus struct {
	Kind      PowerKind
	Magnitude float64
	ExpiresAt time.Time // Zero for the barrier
}

// Engine owns the authoritative entity collections and all session state.
// It is not safe for concurrent use: the Loop (or a test) must serialize
// every call. Entities never reference the engine or each other; all
// cross-entity logic lives in Update.
type Engine struct {
	cfg   config.GameConfig
	rng   *rand.Rand
	hooks Hooks

	phase  Phase
	score  int
	level  int
	frames uint64

	character Character
	obstacles []Obstacle
	powerups  []PowerUp
	leaves    []Leaf

	effects    map[PowerKind]ActiveEffect
	graceUntil time.Time

	lastObstacle time.Time
	lastPowerUp  time.Time
	lastLeaf     time.Time
}

// NewEngine creates an engine in the ready phase.
func NewEngine(cfg config.GameConfig, seed int64, hooks Hooks) *Engine {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	e := &Engine{
		cfg:   cfg,
		rng:   rand.New(rand.NewSource(seed)),
		hooks: hooks,
	}
	e.Reset(time.Now())
	return e
}

// Reset performs the full ready transition: clears obstacles, power-ups and
// active effects, zeroes score and level, reseeds every spawn timestamp to
// now, and puts the character back at its start position. Decorative leaves
// survive the reset; they are independent of the game phase.
func (e *Engine) Reset(now time.Time) {
	e.phase = PhaseReady
	e.score = 0
	e.level = 1
	e.character = NewCharacter(
		e.cfg.Character.X,
		e.cfg.Character.Width,
		e.cfg.Character.Height,
		e.cfg.Playfield.Height,
	)
	e.obstacles = e.obstacles[:0]
	e.powerups = e.powerups[:0]
	e.effects = make(map[PowerKind]ActiveEffect)
	e.graceUntil = time.Time{}
	e.lastObstacle = now
	e.lastPowerUp = now
	e.lastLeaf = now
}

// SetPhase forces a phase transition. Transitioning to ready performs the
// full reset.
func (e *Engine) SetPhase(p Phase, now time.Time) {
	if p == PhaseReady {
		e.Reset(now)
		return
	}
	if p == PhasePlaying && e.phase != PhasePlaying {
		// Reseed spawn clocks so a long idle on the ready screen does not
		// dump a backlog of obstacles on the first frame.
		e.lastObstacle = now
		e.lastPowerUp = now
	}
	e.phase = p
}

// StartRun begins a run from the ready screen. No-op in any other phase.
func (e *Engine) StartRun(now time.Time) {
	if e.phase != PhaseReady {
		return
	}
	e.SetPhase(PhasePlaying, now)
}

// Flap applies the current level's upward impulse. No-op outside playing.
func (e *Engine) Flap() {
	if e.phase != PhasePlaying {
		return
	}
	e.character.Flap(e.cfg.LevelFor(e.level).FlapImpulse)
}

// SetLevel overrides the current level, clamped to the difficulty table.
// Existing obstacles and power-ups are untouched; the new level's constants
// apply from the next spawn and the next physics frame onward.
func (e *Engine) SetLevel(level int) {
	e.level = core.Clamp(level, 1, e.cfg.MaxLevel())
}

// Update advances the simulation by one frame.
func (e *Engine) Update(now time.Time) {
	e.frames++

	if e.phase == PhasePlaying {
		e.character.Update(e.currentGravity(now), e.cfg.Character.MaxFallSpeed)

		floor := e.cfg.Playfield.Height - e.cfg.Playfield.GroundHeight - e.character.H
		if e.character.Y < 0 || e.character.Y > floor {
			e.endRun()
		}
	}

	// Leaves animate in every phase.
	e.updateLeaves(now)

	if e.phase != PhasePlaying {
		return
	}

	e.expireEffects(now)
	e.updateObstacles(now)
	if e.phase != PhasePlaying {
		return
	}
	e.updatePowerUps(now)
}

// currentGravity returns the level's gravity, scaled down while a feather
// effect is active.
func (e *Engine) currentGravity(now time.Time) float64 {
	gravity := e.cfg.LevelFor(e.level).Gravity
	if eff, ok := e.effects[PowerFeather]; ok && eff.Active(now) {
		gravity *= eff.Magnitude
	}
	return gravity
}

// expireEffects drops timed effects whose expiry has passed. The barrier
// has no timed expiry and persists until consumed by a hit.
func (e *Engine) expireEffects(now time.Time) {
	for kind, eff := range e.effects {
		if !eff.ExpiresAt.IsZero() && !now.Before(eff.ExpiresAt) {
			delete(e.effects, kind)
		}
	}
}

// updateObstacles spawns, advances, scores, and collision-checks obstacles.
// May end the run.
func (e *Engine) updateObstacles(now time.Time) {
	settings := e.cfg.LevelFor(e.level)

	if due(now, e.lastObstacle, settings.SpawnInterval()) {
		start := gapStart(e.rng, e.cfg.Playfield.Height, settings.GapSize, e.cfg.Obstacles.MinGapMargin)
		e.obstacles = append(e.obstacles, NewObstacle(
			e.cfg.Playfield.Width,
			e.cfg.Playfield.Height,
			e.cfg.Obstacles.Width,
			start,
			settings.GapSize,
		))
		e.lastObstacle = now
	}

	kept := e.obstacles[:0]
	for i := 0; i < len(e.obstacles); i++ {
		o := &e.obstacles[i]
		o.Update(settings.Speed)

		if o.OffScreen() {
			continue
		}

		if !o.Scored && o.X+o.W < e.character.X {
			o.Scored = true
			e.award(now)
		}

		fatal := false
		if CharacterHitsObstacle(&e.character, o, e.cfg.Playfield.Height) {
			switch {
			case e.effectActive(PowerBarrier, now):
				// The barrier absorbs exactly one hit and converts into a
				// short grace window; the remaining obstacles this frame
				// are still checked against that window.
				delete(e.effects, PowerBarrier)
				e.graceUntil = now.Add(barrierGrace)
			case e.effectActive(PowerShield, now) || now.Before(e.graceUntil):
				// Invulnerable, pass through.
			default:
				fatal = true
			}
		}

		kept = append(kept, *o)
		if fatal {
			// Abort the rest of the loop for this frame; the untouched
			// tail is carried over as-is.
			kept = append(kept, e.obstacles[i+1:]...)
			e.obstacles = kept
			e.endRun()
			return
		}
	}
	e.obstacles = kept
}

// award grants the points for one passed obstacle and re-evaluates level
// progression. The level is a clamped function of score and never
// decreases within a session.
func (e *Engine) award(now time.Time) {
	points := 1
	if e.effectActive(PowerDoublePoints, now) {
		points = 2
	}
	e.score += points
	if e.hooks.OnScore != nil {
		e.hooks.OnScore(points)
	}

	level := core.Clamp(e.score/e.cfg.Scoring.PointsPerLevel+1, 1, e.cfg.MaxLevel())
	if level > e.level {
		e.level = level
		if e.hooks.OnLevelUp != nil {
			e.hooks.OnLevelUp(level)
		}
	}
}

// updatePowerUps spawns and advances power-ups and resolves pickups.
func (e *Engine) updatePowerUps(now time.Time) {
	pu := e.cfg.PowerUps

	if due(now, e.lastPowerUp, time.Duration(pu.SpawnIntervalMS)*time.Millisecond) {
		kind := pick(e.rng, AllPowerKinds())
		y := bandY(e.rng, e.cfg.Playfield.Height, pu.TopMargin, pu.BottomMargin)
		e.powerups = append(e.powerups, NewPowerUp(kind, e.cfg.Playfield.Width, y, pu.Size))
		e.lastPowerUp = now
	}

	kept := e.powerups[:0]
	for i := range e.powerups {
		p := &e.powerups[i]
		p.Update(pu.Drift, pu.BobAmplitude)

		if EntitiesOverlap(e.character.Rect(), p.Rect()) {
			p.Collected = true
			e.applyEffect(p.Kind, now)
			if e.hooks.OnPowerUp != nil {
				e.hooks.OnPowerUp(p.Kind)
			}
			continue
		}
		if p.OffScreen() {
			continue
		}
		kept = append(kept, *p)
	}
	e.powerups = kept
}

// applyEffect sets or refreshes the active effect for a collected power-up.
// A repeated pickup of the same kind overwrites the prior entry.
func (e *Engine) applyEffect(kind PowerKind, now time.Time) {
	spec := effectTable[kind]
	eff := ActiveEffect{Kind: kind, Magnitude: spec.Magnitude}
	if spec.Duration > 0 {
		eff.ExpiresAt = now.Add(spec.Duration)
	}
	e.effects[kind] = eff
}

// updateLeaves advances the decorative layer and keeps the live count
// capped, trimming the oldest first.
func (e *Engine) updateLeaves(now time.Time) {
	pc := e.cfg.Particles

	if due(now, e.lastLeaf, time.Duration(pc.SpawnIntervalMS)*time.Millisecond) {
		e.leaves = append(e.leaves, newLeaf(e.rng, e.cfg.Playfield.Width, pc.OverflowMargin))
		e.lastLeaf = now
	}

	kept := e.leaves[:0]
	for i := range e.leaves {
		l := &e.leaves[i]
		l.Update()
		if l.OffScreen(e.cfg.Playfield.Width, e.cfg.Playfield.Height) {
			continue
		}
		kept = append(kept, *l)
	}
	e.leaves = kept

	if pc.MaxCount > 0 && len(e.leaves) > pc.MaxCount {
		e.leaves = append(e.leaves[:0], e.leaves[len(e.leaves)-pc.MaxCount:]...)
	}
}

// newLeaf creates a leaf drifting in from the top of the world.
func newLeaf(rng *rand.Rand, playfieldW, overflow float64) Leaf {
	return Leaf{
		X:      overflowX(rng, playfieldW, overflow),
		Y:      -10,
		VX:     -0.8 + rng.Float64()*0.6,
		VY:     0.8 + rng.Float64()*0.9,
		RotVel: -0.05 + rng.Float64()*0.1,
		Color:  rng.Intn(len(leafGlyphs)),
		Alpha:  0.7 + rng.Float64()*0.3,
	}
}

// effectActive reports whether an effect of the given kind is in force.
func (e *Engine) effectActive(kind PowerKind, now time.Time) bool {
	eff, ok := e.effects[kind]
	return ok && eff.Active(now)
}

// endRun is the terminal transition for boundary exits and unshielded
// collisions. These are normal game outcomes, not faults.
func (e *Engine) endRun() {
	e.phase = PhaseEnded
	if e.hooks.OnGameOver != nil {
		e.hooks.OnGameOver(e.score)
	}
}

// ForceEnd is used by the frame loop's circuit breaker: a tripped loop must
// leave the session in a terminal state rather than frozen mid-play.
func (e *Engine) ForceEnd() {
	if e.phase == PhasePlaying {
		e.endRun()
	}
}

// Phase returns the current session phase.
func (e *Engine) Phase() Phase {
	return e.phase
}

// Score returns the current score.
func (e *Engine) Score() int {
	return e.score
}

// Level returns the current level.
func (e *Engine) Level() int {
	return e.level
}

// Frames returns the number of frames simulated since construction.
func (e *Engine) Frames() uint64 {
	return e.frames
}

// DifficultyStats returns the current difficulty snapshot for the HUD.
func (e *Engine) DifficultyStats() Stats {
	settings := e.cfg.LevelFor(e.level)
	return Stats{
		Level:         e.level,
		ObstacleSpeed: settings.Speed,
		SpawnInterval: settings.SpawnInterval(),
	}
}

// ActiveEffects lists the effects in force at the given time, in kind
// order for stable HUD layout.
func (e *Engine) ActiveEffects(now time.Time) []EffectStatus {
	out := make([]EffectStatus, 0, len(e.effects))
	for k := PowerKind(0); k < powerKindCount; k++ {
		if eff, ok := e.effects[k]; ok && eff.Active(now) {
			out = append(out, EffectStatus{Kind: k, Magnitude: eff.Magnitude, ExpiresAt: eff.ExpiresAt})
		}
	}
	return out
}
