package game

import (
	"fmt"
	"time"

	"leafglide/internal/core"
)

// Render draws the whole scene into the screen buffer. Entities draw
// themselves; this only decides ordering and the HUD.
func (e *Engine) Render(dst *core.Screen, now time.Time) {
	dst.Clear()

	vp := core.NewViewport(e.cfg.Playfield.Width, e.cfg.Playfield.Height, dst.Width(), dst.Height())

	for i := range e.leaves {
		e.leaves[i].Draw(dst, vp)
	}
	for i := range e.obstacles {
		e.obstacles[i].Draw(dst, vp)
	}

	// Ground covers the bottom band of the world.
	groundY := vp.CellY(e.cfg.Playfield.Height - e.cfg.Playfield.GroundHeight)
	dst.DrawHLine(0, groundY, dst.Width(), '═')
	for y := groundY + 1; y < dst.Height(); y++ {
		dst.DrawHLine(0, y, dst.Width(), '░')
	}

	for i := range e.powerups {
		e.powerups[i].Draw(dst, vp)
	}
	e.character.Draw(dst, vp)

	e.drawHUD(dst, now)

	switch e.phase {
	case PhaseReady:
		e.drawCenteredMessage(dst, "LEAFGLIDE", "Press SPACE to start")
	case PhaseEnded:
		e.drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", e.score))
	}
}

func (e *Engine) drawHUD(dst *core.Screen, now time.Time) {
	dst.DrawText(2, 0, fmt.Sprintf(" Score: %d  Level: %d ", e.score, e.level))

	x := dst.Width() - 2
	for _, eff := range e.ActiveEffects(now) {
		label := string(eff.Kind.Glyph())
		if !eff.ExpiresAt.IsZero() {
			remaining := eff.ExpiresAt.Sub(now).Round(time.Second)
			label = fmt.Sprintf("%c:%ds", eff.Kind.Glyph(), int(remaining.Seconds()))
		}
		x -= len(label) + 1
		dst.DrawText(x, 0, label)
	}
}

func (e *Engine) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.FillRect(boxX, boxY, boxW, boxH, ' ')
	dst.DrawBox(boxX, boxY, boxW, boxH)

	dst.DrawText(boxX+(boxW-len(title))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}
