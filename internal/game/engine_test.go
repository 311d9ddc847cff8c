package game

import (
	"testing"
	"time"

	"leafglide/internal/config"
)

// recorder captures hook notifications for assertions.
type recorder struct {
	scores    []int
	levelUps  []int
	powerUps  []PowerKind
	gameOvers []int
}

func (r *recorder) hooks() Hooks {
	return Hooks{
		OnScore:    func(p int) { r.scores = append(r.scores, p) },
		OnLevelUp:  func(l int) { r.levelUps = append(r.levelUps, l) },
		OnPowerUp:  func(k PowerKind) { r.powerUps = append(r.powerUps, k) },
		OnGameOver: func(s int) { r.gameOvers = append(r.gameOvers, s) },
	}
}

var t0 = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

func newTestEngine(t *testing.T) (*Engine, *recorder) {
	t.Helper()
	rec := &recorder{}
	e := NewEngine(config.DefaultGameConfig(), 1, rec.hooks())
	e.Reset(t0)
	return e, rec
}

// passableObstacle returns an obstacle whose gap fully surrounds the
// character, positioned so that one update at the given speed moves its
// trailing edge past the character's leading edge.
func passableObstacle(e *Engine, speed float64) Obstacle {
	o := NewObstacle(
		e.cfg.Playfield.Width,
		e.cfg.Playfield.Height,
		e.cfg.Obstacles.Width,
		e.character.Y-80,
		e.character.H+160,
	)
	o.X = e.character.X - o.W - speed/2
	return o
}

// blockingObstacle returns an obstacle with no usable gap overlapping the
// character's column.
func blockingObstacle(e *Engine) Obstacle {
	o := NewObstacle(
		e.cfg.Playfield.Width,
		e.cfg.Playfield.Height,
		e.cfg.Obstacles.Width,
		0, // Gap at the very top, far from the character
		1,
	)
	o.X = e.character.X - 1
	return o
}

func TestPhaseTransitions(t *testing.T) {
	e, rec := newTestEngine(t)

	if e.Phase() != PhaseReady {
		t.Fatalf("new engine phase = %v, want ready", e.Phase())
	}

	// Flap outside playing is a no-op
	velBefore := e.character.VelY
	e.Flap()
	if e.character.VelY != velBefore {
		t.Error("Flap() changed velocity outside playing")
	}

	e.StartRun(t0)
	if e.Phase() != PhasePlaying {
		t.Fatalf("phase after StartRun = %v, want playing", e.Phase())
	}

	// StartRun is only valid from ready
	e.SetPhase(PhaseEnded, t0)
	e.StartRun(t0)
	if e.Phase() != PhaseEnded {
		t.Errorf("StartRun from ended moved phase to %v", e.Phase())
	}

	if len(rec.gameOvers) != 0 {
		t.Errorf("forced phase change emitted %d game-over notifications", len(rec.gameOvers))
	}
}

func TestReadyPhaseFreezesSimulation(t *testing.T) {
	e, _ := newTestEngine(t)
	e.obstacles = append(e.obstacles, passableObstacle(e, 2))

	yBefore := e.character.Y
	xBefore := e.obstacles[0].X
	e.Update(t0.Add(16 * time.Millisecond))

	if e.character.Y != yBefore {
		t.Error("character moved in ready phase")
	}
	if e.obstacles[0].X != xBefore {
		t.Error("obstacle moved in ready phase")
	}
	if e.Score() != 0 {
		t.Error("score changed in ready phase")
	}
}

func TestGravityAndFlap(t *testing.T) {
	e, _ := newTestEngine(t)
	e.StartRun(t0)

	yBefore := e.character.Y
	e.Update(t0.Add(16 * time.Millisecond))
	if e.character.Y <= yBefore {
		t.Error("gravity did not pull the character down")
	}
	if e.character.VelY <= 0 {
		t.Errorf("velocity after gravity = %v, want positive", e.character.VelY)
	}

	e.Flap()
	want := e.cfg.LevelFor(1).FlapImpulse
	if e.character.VelY != want {
		t.Errorf("velocity after flap = %v, want %v", e.character.VelY, want)
	}
	if e.character.FlapFrames != flapAnimFrames {
		t.Errorf("flap animation counter = %d, want %d", e.character.FlapFrames, flapAnimFrames)
	}
}

func TestBoundaryExitEndsRun(t *testing.T) {
	e, rec := newTestEngine(t)
	e.StartRun(t0)

	e.character.Y = e.cfg.Playfield.Height // Below the floor
	e.character.VelY = 5
	e.Update(t0.Add(16 * time.Millisecond))

	if e.Phase() != PhaseEnded {
		t.Fatalf("phase = %v, want ended after floor exit", e.Phase())
	}
	if len(rec.gameOvers) != 1 {
		t.Fatalf("game-over notifications = %d, want 1", len(rec.gameOvers))
	}

	// Ceiling exit too
	e.Reset(t0)
	e.StartRun(t0)
	e.character.Y = -50
	e.character.VelY = -10
	e.Update(t0.Add(16 * time.Millisecond))
	if e.Phase() != PhaseEnded {
		t.Errorf("phase = %v, want ended after ceiling exit", e.Phase())
	}
}

func TestScoringIsMonotonicAndSingle(t *testing.T) {
	e, rec := newTestEngine(t)
	e.StartRun(t0)

	speed := e.cfg.LevelFor(1).Speed
	e.obstacles = append(e.obstacles, passableObstacle(e, speed))

	now := t0.Add(16 * time.Millisecond)
	e.Update(now)
	if e.Score() != 1 {
		t.Fatalf("score after pass = %d, want 1", e.Score())
	}
	if len(rec.scores) != 1 || rec.scores[0] != 1 {
		t.Fatalf("score notifications = %v, want [1]", rec.scores)
	}

	// Further frames never double-score the same obstacle
	for i := 2; i < 10; i++ {
		e.Update(t0.Add(time.Duration(i) * 16 * time.Millisecond))
	}
	if e.Score() != 1 {
		t.Errorf("score after extra frames = %d, want 1 (scored flag must stick)", e.Score())
	}
}

func TestLevelUpBoundary(t *testing.T) {
	e, rec := newTestEngine(t)
	e.StartRun(t0)

	// Score 9, one more pass reaches pointsPerLevel
	e.score = 9
	speed := e.cfg.LevelFor(1).Speed
	e.obstacles = append(e.obstacles, passableObstacle(e, speed))
	e.Update(t0.Add(16 * time.Millisecond))

	if e.Score() != 10 {
		t.Fatalf("score = %d, want 10", e.Score())
	}
	if e.Level() != 2 {
		t.Fatalf("level = %d, want 2", e.Level())
	}
	if len(rec.levelUps) != 1 || rec.levelUps[0] != 2 {
		t.Fatalf("level-up notifications = %v, want [2]", rec.levelUps)
	}

	// Nine more passes (score 19) stay on level 2 with no further events
	for i := 0; i < 9; i++ {
		now := t0.Add(time.Duration(i+2) * 16 * time.Millisecond)
		e.obstacles = append(e.obstacles, passableObstacle(e, e.cfg.LevelFor(e.Level()).Speed))
		e.Update(now)
	}
	if e.Score() != 19 {
		t.Fatalf("score = %d, want 19", e.Score())
	}
	if e.Level() != 2 {
		t.Errorf("level = %d, want 2", e.Level())
	}
	if len(rec.levelUps) != 1 {
		t.Errorf("level-up notifications = %v, want exactly one", rec.levelUps)
	}
}

func TestLevelClampsAtMax(t *testing.T) {
	e, rec := newTestEngine(t)
	e.StartRun(t0)

	e.score = 990
	e.obstacles = append(e.obstacles, passableObstacle(e, e.cfg.LevelFor(1).Speed))
	e.Update(t0.Add(16 * time.Millisecond))

	if e.Level() != e.cfg.MaxLevel() {
		t.Errorf("level = %d, want clamped to %d", e.Level(), e.cfg.MaxLevel())
	}
	if len(rec.levelUps) != 1 || rec.levelUps[0] != e.cfg.MaxLevel() {
		t.Errorf("level-up notifications = %v", rec.levelUps)
	}
}

func TestSetLevelClamps(t *testing.T) {
	e, _ := newTestEngine(t)

	e.SetLevel(99)
	if e.Level() != e.cfg.MaxLevel() {
		t.Errorf("SetLevel(99) -> %d, want %d", e.Level(), e.cfg.MaxLevel())
	}
	e.SetLevel(-1)
	if e.Level() != 1 {
		t.Errorf("SetLevel(-1) -> %d, want 1", e.Level())
	}

	stats := e.DifficultyStats()
	if stats.Level != 1 || stats.ObstacleSpeed != e.cfg.Levels[0].Speed {
		t.Errorf("stats after SetLevel = %+v", stats)
	}
}

func TestDoublePointsAwardsTwo(t *testing.T) {
	e, rec := newTestEngine(t)
	e.StartRun(t0)

	now := t0.Add(16 * time.Millisecond)
	e.applyEffect(PowerDoublePoints, now)
	e.obstacles = append(e.obstacles, passableObstacle(e, e.cfg.LevelFor(1).Speed))
	e.Update(now)

	if e.Score() != 2 {
		t.Fatalf("score with double-points = %d, want 2", e.Score())
	}
	if len(rec.scores) != 1 || rec.scores[0] != 2 {
		t.Fatalf("score notifications = %v, want [2]", rec.scores)
	}

	// After the effect expires the next pass is worth one again
	later := now.Add(effectTable[PowerDoublePoints].Duration + time.Second)
	e.obstacles = append(e.obstacles, passableObstacle(e, e.cfg.LevelFor(1).Speed))
	e.Update(later)
	if e.Score() != 3 {
		t.Errorf("score after effect expiry = %d, want 3", e.Score())
	}
}

func TestUnshieldedCollisionEndsRun(t *testing.T) {
	e, rec := newTestEngine(t)
	e.StartRun(t0)

	e.obstacles = append(e.obstacles, blockingObstacle(e))
	e.Update(t0.Add(16 * time.Millisecond))

	if e.Phase() != PhaseEnded {
		t.Fatalf("phase = %v, want ended", e.Phase())
	}
	if len(rec.gameOvers) != 1 {
		t.Errorf("game-over notifications = %d, want 1", len(rec.gameOvers))
	}
}

func TestBarrierAbsorbsHitThenGraceProtects(t *testing.T) {
	e, _ := newTestEngine(t)
	e.StartRun(t0)

	now := t0.Add(16 * time.Millisecond)
	e.applyEffect(PowerBarrier, now)

	// First hit consumes the barrier instead of ending the run
	e.obstacles = append(e.obstacles, blockingObstacle(e))
	e.Update(now)
	if e.Phase() != PhasePlaying {
		t.Fatalf("phase after barrier hit = %v, want playing", e.Phase())
	}
	if _, ok := e.effects[PowerBarrier]; ok {
		t.Fatal("barrier entry not consumed by the hit")
	}
	if !now.Before(e.graceUntil) {
		t.Fatal("no grace window granted after barrier consumption")
	}

	// A hit within the grace window is also absorbed
	within := now.Add(barrierGrace / 2)
	e.obstacles = append(e.obstacles, blockingObstacle(e))
	e.Update(within)
	if e.Phase() != PhasePlaying {
		t.Fatalf("phase during grace = %v, want playing", e.Phase())
	}

	// After grace, with no active effect, a hit is fatal
	after := now.Add(barrierGrace + time.Second)
	e.obstacles = append(e.obstacles, blockingObstacle(e))
	e.Update(after)
	if e.Phase() != PhaseEnded {
		t.Errorf("phase after grace expiry = %v, want ended", e.Phase())
	}
}

func TestBarrierAbsorbsOnlyOneHitPerFrame(t *testing.T) {
	e, _ := newTestEngine(t)
	e.StartRun(t0)

	now := t0.Add(16 * time.Millisecond)
	e.applyEffect(PowerBarrier, now)

	// Two overlapping obstacles in the same frame: the barrier absorbs the
	// first and the fresh grace window covers the second.
	e.obstacles = append(e.obstacles, blockingObstacle(e), blockingObstacle(e))
	e.Update(now)

	if e.Phase() != PhasePlaying {
		t.Fatalf("phase = %v, want playing", e.Phase())
	}
	if _, ok := e.effects[PowerBarrier]; ok {
		t.Error("barrier survived a hit")
	}
}

func TestShieldEffectBlocksDamageUntilExpiry(t *testing.T) {
	e, _ := newTestEngine(t)
	e.StartRun(t0)

	now := t0.Add(16 * time.Millisecond)
	e.applyEffect(PowerShield, now)

	e.obstacles = append(e.obstacles, blockingObstacle(e))
	e.Update(now)
	if e.Phase() != PhasePlaying {
		t.Fatalf("phase with shield = %v, want playing", e.Phase())
	}
	// Shield persists after the hit, unlike the barrier
	if _, ok := e.effects[PowerShield]; !ok {
		t.Error("shield was consumed by a hit")
	}

	expired := now.Add(effectTable[PowerShield].Duration + time.Second)
	e.obstacles = append(e.obstacles, blockingObstacle(e))
	e.Update(expired)
	if e.Phase() != PhaseEnded {
		t.Errorf("phase after shield expiry = %v, want ended", e.Phase())
	}
}

func TestFeatherReducesGravity(t *testing.T) {
	e, _ := newTestEngine(t)
	e.StartRun(t0)

	now := t0.Add(16 * time.Millisecond)
	base := e.currentGravity(now)

	e.applyEffect(PowerFeather, now)
	reduced := e.currentGravity(now)

	want := base * effectTable[PowerFeather].Magnitude
	if reduced != want {
		t.Errorf("gravity with feather = %v, want %v", reduced, want)
	}

	expired := now.Add(effectTable[PowerFeather].Duration + time.Second)
	e.expireEffects(expired)
	if e.currentGravity(expired) != base {
		t.Errorf("gravity after feather expiry = %v, want %v", e.currentGravity(expired), base)
	}
}

func TestEffectRefreshOverwrites(t *testing.T) {
	e, _ := newTestEngine(t)

	now := t0.Add(16 * time.Millisecond)
	e.applyEffect(PowerDoublePoints, now)
	first := e.effects[PowerDoublePoints].ExpiresAt

	later := now.Add(3 * time.Second)
	e.applyEffect(PowerDoublePoints, later)
	second := e.effects[PowerDoublePoints].ExpiresAt

	if !second.After(first) {
		t.Error("re-collecting an effect did not refresh its expiry")
	}
	if len(e.effects) != 1 {
		t.Errorf("effects map holds %d entries of one kind, want 1", len(e.effects))
	}
}

func TestPowerUpPickup(t *testing.T) {
	e, rec := newTestEngine(t)
	e.StartRun(t0)

	p := NewPowerUp(PowerDoublePoints, e.cfg.Playfield.Width, e.character.Y, e.cfg.PowerUps.Size)
	p.X = e.character.X // Overlapping
	p.BaseY = e.character.Y
	e.powerups = append(e.powerups, p)

	now := t0.Add(16 * time.Millisecond)
	e.Update(now)

	if len(e.powerups) != 0 {
		t.Error("collected power-up still in the live list")
	}
	if !e.effectActive(PowerDoublePoints, now) {
		t.Error("pickup did not activate its effect")
	}
	if len(rec.powerUps) != 1 || rec.powerUps[0] != PowerDoublePoints {
		t.Errorf("pickup notifications = %v", rec.powerUps)
	}
}

func TestSpawnCadence(t *testing.T) {
	e, _ := newTestEngine(t)
	e.StartRun(t0)

	interval := e.cfg.LevelFor(1).SpawnInterval()

	// Not yet due: exactly the interval is strictly not enough
	e.Update(t0.Add(interval))
	if len(e.obstacles) != 0 {
		t.Fatal("obstacle spawned at exactly the interval (strict inequality violated)")
	}

	// One frame later it is due, and the timestamp reseeds
	e.Update(t0.Add(interval + 16*time.Millisecond))
	if len(e.obstacles) != 1 {
		t.Fatalf("obstacles = %d, want 1", len(e.obstacles))
	}
	e.Update(t0.Add(interval + 32*time.Millisecond))
	if len(e.obstacles) != 1 {
		t.Error("burst-spawned a second obstacle in the next frame")
	}
}

func TestResetClearsSession(t *testing.T) {
	e, _ := newTestEngine(t)
	e.StartRun(t0)

	// Accumulate a mid-run mess
	e.score = 17
	e.level = 2
	e.obstacles = append(e.obstacles, passableObstacle(e, 2))
	e.powerups = append(e.powerups, NewPowerUp(PowerShield, e.cfg.Playfield.Width, 100, 26))
	e.applyEffect(PowerBarrier, t0)
	e.graceUntil = t0.Add(time.Hour)
	e.character.Y = 42

	e.SetPhase(PhaseReady, t0.Add(time.Minute))

	if e.Phase() != PhaseReady {
		t.Errorf("phase = %v, want ready", e.Phase())
	}
	if e.Score() != 0 || e.Level() != 1 {
		t.Errorf("score/level = %d/%d, want 0/1", e.Score(), e.Level())
	}
	if len(e.obstacles) != 0 || len(e.powerups) != 0 || len(e.effects) != 0 {
		t.Error("entity collections not cleared by reset")
	}
	start := NewCharacter(e.cfg.Character.X, e.cfg.Character.Width, e.cfg.Character.Height, e.cfg.Playfield.Height)
	if e.character.Y != start.Y || e.character.VelY != 0 {
		t.Errorf("character not back at start position: y=%v vel=%v", e.character.Y, e.character.VelY)
	}
}

func TestLeavesAnimateInEveryPhaseAndStayCapped(t *testing.T) {
	e, _ := newTestEngine(t)

	// Ready phase: leaves spawn and drift
	interval := time.Duration(e.cfg.Particles.SpawnIntervalMS) * time.Millisecond
	now := t0
	for i := 0; i < e.cfg.Particles.MaxCount*3; i++ {
		now = now.Add(interval + time.Millisecond)
		e.Update(now)
	}
	if len(e.leaves) == 0 {
		t.Fatal("no leaves spawned in ready phase")
	}
	if len(e.leaves) > e.cfg.Particles.MaxCount {
		t.Errorf("leaf count %d exceeds cap %d", len(e.leaves), e.cfg.Particles.MaxCount)
	}

	// Leaves survive a reset
	e.Reset(now)
	if len(e.leaves) == 0 {
		t.Error("reset cleared the decorative layer")
	}
}

func TestObstacleGeometryScenario(t *testing.T) {
	// canvasHeight=600, gapSize=170, gapStart=100 -> top=100, bottom=330
	o := NewObstacle(800, 600, 70, 100, 170)
	if o.TopHeight != 100 {
		t.Errorf("TopHeight = %v, want 100", o.TopHeight)
	}
	if o.BottomHeight != 330 {
		t.Errorf("BottomHeight = %v, want 330", o.BottomHeight)
	}

	// Approaching the obstacle but not yet overlapping its column
	c := Character{X: 700, Y: 50, W: 34, H: 30}
	o.X = 780
	if CharacterHitsObstacle(&c, &o, 600) {
		t.Error("character ahead of the obstacle reported a hit")
	}

	c.X = 790 // Inside the obstacle's column
	c.Y = 0
	if !CharacterHitsObstacle(&c, &o, 600) {
		t.Error("character overlapping the top barrier reported no hit")
	}

	// Anywhere strictly inside the gap's vertical span is safe
	for _, y := range []float64{100.5, 150, 239.5} {
		c.Y = y
		c.H = 30
		if y+c.H >= 270 {
			c.H = 270 - y - 0.5
		}
		if CharacterHitsObstacle(&c, &o, 600) {
			t.Errorf("character strictly inside the gap at y=%v reported a hit", y)
		}
	}

	// Any overlap into the bottom barrier is fatal
	c.Y = 260
	c.H = 30
	if !CharacterHitsObstacle(&c, &o, 600) {
		t.Error("character overlapping the bottom barrier reported no hit")
	}
}

func TestZeroHeightBarrierIsSkipped(t *testing.T) {
	o := NewObstacle(800, 600, 70, 0, 600) // Gap spans the whole playfield
	o.X = 100
	c := Character{X: 110, Y: 300, W: 34, H: 24}
	if CharacterHitsObstacle(&c, &o, 600) {
		t.Error("zero-height barriers must never collide")
	}
}

func TestDeterminismWithSeed(t *testing.T) {
	run := func() (int, uint64) {
		rec := &recorder{}
		e := NewEngine(config.DefaultGameConfig(), 42, rec.hooks())
		e.Reset(t0)
		e.StartRun(t0)
		now := t0
		for i := 0; i < 600; i++ {
			now = now.Add(16 * time.Millisecond)
			if i%20 == 0 {
				e.Flap()
			}
			e.Update(now)
			if e.Phase() == PhaseEnded {
				break
			}
		}
		return e.Score(), e.Frames()
	}

	s1, f1 := run()
	s2, f2 := run()
	if s1 != s2 || f1 != f2 {
		t.Errorf("same seed and inputs diverged: score %d/%d, frames %d/%d", s1, s2, f1, f2)
	}
}
