package game

import (
	"leafglide/internal/core"
)

// CharacterHitsObstacle checks the character's rectangle against the
// obstacle's top and bottom barriers independently. A barrier with zero or
// negative height is skipped entirely.
func CharacterHitsObstacle(c *Character, o *Obstacle, playfieldH float64) bool {
	r := c.Rect()
	if o.TopHeight > 0 && r.Intersects(o.TopRect()) {
		return true
	}
	if o.BottomHeight > 0 && r.Intersects(o.BottomRect(playfieldH)) {
		return true
	}
	return false
}

// EntitiesOverlap is the plain AABB check used for character-vs-power-up
// pickup. Every collision decision goes through core.Rect.Intersects; there
// is deliberately no per-entity variant.
func EntitiesOverlap(a, b core.Rect) bool {
	return a.Intersects(b)
}
