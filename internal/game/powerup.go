package game

import (
	"math"
	"time"

	"leafglide/internal/core"
)

// PowerKind identifies one of the closed set of power-up types.
type PowerKind int

const (
	// PowerShield grants timed invincibility against obstacle hits.
	PowerShield PowerKind = iota
	// PowerDoublePoints doubles the score awarded per passed obstacle.
	PowerDoublePoints
	// PowerFeather reduces gravity while active.
	PowerFeather
	// PowerBarrier is the instant shield: it has no timed expiry and is
	// consumed by the first obstacle hit, which converts it into a short
	// invulnerability window.
	PowerBarrier
	powerKindCount // Sentinel for counting types
)

// Glyph returns the display character for a power-up kind.
func (k PowerKind) Glyph() rune {
	switch k {
	case PowerShield:
		return 'S'
	case PowerDoublePoints:
		return '2'
	case PowerFeather:
		return 'F'
	case PowerBarrier:
		return 'B'
	default:
		return '?'
	}
}

// String returns the name of the power-up kind.
func (k PowerKind) String() string {
	switch k {
	case PowerShield:
		return "shield"
	case PowerDoublePoints:
		return "double-points"
	case PowerFeather:
		return "feather"
	case PowerBarrier:
		return "barrier"
	default:
		return "?"
	}
}

// AllPowerKinds lists every spawnable power-up kind.
// The spawner picks uniformly from this set.
func AllPowerKinds() []PowerKind {
	kinds := make([]PowerKind, 0, powerKindCount)
	for k := PowerKind(0); k < powerKindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// EffectSpec is one row of the effect table: duration and magnitude of the
// active effect a power-up grants. Adding a power-up type means adding a
// row here, not new logic.
type EffectSpec struct {
	Duration  time.Duration // Zero means no timed expiry (barrier)
	Magnitude float64
}

// effectTable maps each power-up kind to its effect payload.
var effectTable = map[PowerKind]EffectSpec{
	PowerShield:       {Duration: 5 * time.Second, Magnitude: 1},
	PowerDoublePoints: {Duration: 10 * time.Second, Magnitude: 2},
	PowerFeather:      {Duration: 8 * time.Second, Magnitude: 0.55},
	PowerBarrier:      {Duration: 0, Magnitude: 1},
}

// barrierGrace is the invulnerability window granted when a barrier is
// consumed by an obstacle hit.
const barrierGrace = 1500 * time.Millisecond

// ActiveEffect is an engine-owned record of a collected power-up's effect.
// At most one effect per kind is active; re-collecting refreshes it.
type ActiveEffect struct {
	Kind      PowerKind
	Magnitude float64
	ExpiresAt time.Time // Zero for the barrier, which only expires on consumption
}

// Active reports whether the effect is still in force at the given time.
func (e ActiveEffect) Active(now time.Time) bool {
	return e.ExpiresAt.IsZero() || now.Before(e.ExpiresAt)
}

// PowerUp is a collectible drifting leftward with a sinusoidal bob.
// Its drift is independent of the level's scroll speed.
type PowerUp struct {
	Kind      PowerKind
	X         float64
	BaseY     float64 // Center of the bob
	Y         float64
	W, H      float64
	Phase     float64 // Bob animation phase
	Collected bool
}

// bobRate is the phase advance per frame for the floating animation.
const bobRate = 0.09

// NewPowerUp creates a power-up at the right edge of the playfield.
func NewPowerUp(kind PowerKind, playfieldW, y, size float64) PowerUp {
	return PowerUp{
		Kind:  kind,
		X:     playfieldW,
		BaseY: y,
		Y:     y,
		W:     size,
		H:     size,
	}
}

// Update advances the drift and bob animation by one frame.
func (p *PowerUp) Update(drift, bobAmplitude float64) {
	p.X -= drift
	p.Phase += bobRate
	p.Y = p.BaseY + math.Sin(p.Phase)*bobAmplitude
}

// OffScreen reports whether the power-up has fully left the playfield.
func (p *PowerUp) OffScreen() bool {
	return p.X+p.W < 0
}

// Rect returns the pickup rectangle.
func (p *PowerUp) Rect() core.Rect {
	return core.NewRect(p.X, p.Y, p.W, p.H)
}

// Draw renders the power-up as a bracketed glyph.
func (p *PowerUp) Draw(dst *core.Screen, vp core.Viewport) {
	x := vp.CellX(p.X)
	y := vp.CellY(p.Y)
	dst.Set(x, y, '[')
	dst.Set(x+1, y, p.Kind.Glyph())
	dst.Set(x+2, y, ']')
}
