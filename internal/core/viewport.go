package core

// Viewport projects world coordinates (abstract pixels) onto screen cells.
// The simulation always runs at the same world dimensions regardless of
// terminal size; only the projection changes when the terminal is resized.
type Viewport struct {
	WorldW, WorldH   float64
	ScreenW, ScreenH int
}

// NewViewport creates a projection from a world of the given size onto a
// screen buffer of the given cell dimensions.
func NewViewport(worldW, worldH float64, screenW, screenH int) Viewport {
	if worldW <= 0 {
		worldW = 1
	}
	if worldH <= 0 {
		worldH = 1
	}
	return Viewport{WorldW: worldW, WorldH: worldH, ScreenW: screenW, ScreenH: screenH}
}

// CellX converts a world x-coordinate to a screen column.
func (v Viewport) CellX(x float64) int {
	return int(x / v.WorldW * float64(v.ScreenW))
}

// CellY converts a world y-coordinate to a screen row.
func (v Viewport) CellY(y float64) int {
	return int(y / v.WorldH * float64(v.ScreenH))
}

// CellsW converts a world width to a cell span, at least one cell wide so
// thin entities stay visible on small terminals.
func (v Viewport) CellsW(w float64) int {
	n := int(w / v.WorldW * float64(v.ScreenW))
	if n < 1 {
		n = 1
	}
	return n
}

// CellsH converts a world height to a cell span, at least one cell tall.
func (v Viewport) CellsH(h float64) int {
	n := int(h / v.WorldH * float64(v.ScreenH))
	if n < 1 {
		n = 1
	}
	return n
}
