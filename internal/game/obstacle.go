package game

import (
	"leafglide/internal/core"
)

// Obstacle is a paired top/bottom barrier with a gap between them.
// The gap size and position are fixed at spawn; only X changes afterwards.
// Scored flips exactly once, when the character passes the trailing edge.
type Obstacle struct {
	X            float64
	W            float64
	TopHeight    float64
	BottomHeight float64
	Scored       bool
}

// NewObstacle creates an obstacle at the right edge of the playfield with
// the gap starting at gapStart. The invariant topHeight + gap + bottomHeight
// == playfieldH holds by construction.
func NewObstacle(playfieldW, playfieldH, width, gapStart, gapSize float64) Obstacle {
	return Obstacle{
		X:            playfieldW,
		W:            width,
		TopHeight:    gapStart,
		BottomHeight: playfieldH - gapStart - gapSize,
	}
}

// Update moves the obstacle left by the level's scroll speed.
func (o *Obstacle) Update(speed float64) {
	o.X -= speed
}

// OffScreen reports whether the obstacle has fully left the playfield.
func (o *Obstacle) OffScreen() bool {
	return o.X+o.W < 0
}

// TopRect returns the collision rectangle of the top barrier.
func (o *Obstacle) TopRect() core.Rect {
	return core.NewRect(o.X, 0, o.W, o.TopHeight)
}

// BottomRect returns the collision rectangle of the bottom barrier.
func (o *Obstacle) BottomRect(playfieldH float64) core.Rect {
	return core.NewRect(o.X, playfieldH-o.BottomHeight, o.W, o.BottomHeight)
}

// Draw renders both barriers through the viewport.
func (o *Obstacle) Draw(dst *core.Screen, vp core.Viewport) {
	x := vp.CellX(o.X)
	w := vp.CellsW(o.W)

	topH := vp.CellY(o.TopHeight)
	for y := 0; y < topH; y++ {
		dst.DrawHLine(x, y, w, '█')
	}
	if topH > 0 {
		dst.DrawHLine(x, topH-1, w, '▄')
	}

	bottomY := vp.CellY(vp.WorldH - o.BottomHeight)
	for y := bottomY; y < vp.ScreenH; y++ {
		dst.DrawHLine(x, y, w, '█')
	}
	if bottomY < vp.ScreenH {
		dst.DrawHLine(x, bottomY, w, '▀')
	}
}
