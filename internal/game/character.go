// Package game implements the Leafglide simulation core: the entity types,
// spawn timing, collision resolution, scoring, power-up effects, and the
// frame loop that drives them.
package game

import (
	"leafglide/internal/core"
)

// flapAnimFrames is how many frames the wing animation runs after a flap.
const flapAnimFrames = 8

// Character is the player-controlled glider. It owns its own kinematics and
// nothing else: velocity changes only through gravity accumulation in Update
// or a discrete impulse in Flap.
type Character struct {
	X, Y       float64
	W, H       float64
	VelY       float64
	FlapFrames int // Frames remaining in the flap animation
}

// NewCharacter creates a character at its start position: vertically
// centered in the playfield at the configured x column.
func NewCharacter(x, w, h, playfieldH float64) Character {
	return Character{
		X: x,
		Y: (playfieldH - h) / 2,
		W: w,
		H: h,
	}
}

// Update advances one frame of vertical kinematics: gravity accumulates
// into velocity, velocity moves the position. Fall speed is clamped so the
// character stays controllable after long drops.
func (c *Character) Update(gravity, maxFallSpeed float64) {
	c.VelY += gravity
	if c.VelY > maxFallSpeed {
		c.VelY = maxFallSpeed
	}
	c.Y += c.VelY
	if c.FlapFrames > 0 {
		c.FlapFrames--
	}
}

// Flap replaces the vertical velocity with the level's upward impulse
// (negative = up) and restarts the wing animation.
func (c *Character) Flap(impulse float64) {
	c.VelY = impulse
	c.FlapFrames = flapAnimFrames
}

// Rect returns the character's collision rectangle.
func (c *Character) Rect() core.Rect {
	return core.NewRect(c.X, c.Y, c.W, c.H)
}

// Draw renders the character through the viewport.
func (c *Character) Draw(dst *core.Screen, vp core.Viewport) {
	x := vp.CellX(c.X)
	y := vp.CellY(c.Y)
	w := vp.CellsW(c.W)
	h := vp.CellsH(c.H)

	body := '●'
	if c.FlapFrames > 0 {
		body = '◉'
	}
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			if dx == w-1 && dy == 0 {
				dst.Set(x+dx, y+dy, '▶')
			} else {
				dst.Set(x+dx, y+dy, body)
			}
		}
	}
}
