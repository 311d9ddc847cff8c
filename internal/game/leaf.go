package game

import (
	"math"

	"leafglide/internal/core"
)

// leafGlyphs is the palette of runes for falling leaves, indexed by color.
var leafGlyphs = []rune{'❦', '✿', '❧', '*', '·'}

// Leaf is a purely decorative particle. It never interacts with gameplay
// and keeps drifting in every phase, including the ready and ended screens.
type Leaf struct {
	X, Y   float64
	VX, VY float64
	Rot    float64
	RotVel float64
	Color  int // Index into the leaf palette
	Alpha  float64
}

// Update advances the drift by one frame. Leaves sway horizontally with
// their rotation and fade slightly as they fall.
func (l *Leaf) Update() {
	l.Rot += l.RotVel
	l.X += l.VX + math.Sin(l.Rot)*0.4
	l.Y += l.VY
	l.Alpha -= 0.0008
	if l.Alpha < 0 {
		l.Alpha = 0
	}
}

// OffScreen reports whether the leaf has drifted out of the world.
func (l *Leaf) OffScreen(playfieldW, playfieldH float64) bool {
	return l.Y > playfieldH || l.X < -60 || l.X > playfieldW+60
}

// Draw renders the leaf, dimming the glyph as alpha decays.
func (l *Leaf) Draw(dst *core.Screen, vp core.Viewport) {
	glyph := leafGlyphs[l.Color%len(leafGlyphs)]
	if l.Alpha < 0.5 {
		glyph = '·'
	}
	dst.Set(vp.CellX(l.X), vp.CellY(l.Y), glyph)
}
