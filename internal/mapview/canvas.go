package mapview

import "github.com/Doppler617492/MagacinTracker-sub002/internal/warehouse"

// CellKind describes what a canvas cell is part of, so the UI layer can pick
// a style without re-deriving geometry.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellGrid
	CellFill
	CellBorder
	CellHoverBorder
	CellLabel
)

// Cell is one terminal cell of the rendered map.
type Cell struct {
	Rune  rune
	Kind  CellKind
	Level warehouse.OccupancyLevel
}

// Canvas is a fixed-size cell grid. Cells outside the bounds are silently
// ignored on write, so shapes may spill over the edges without bounds
// checking at every call site.
type Canvas struct {
	Width  int
	Height int
	cells  []Cell
}

// NewCanvas creates an empty canvas of the given dimensions.
func NewCanvas(width, height int) *Canvas {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return &Canvas{
		Width:  width,
		Height: height,
		cells:  make([]Cell, width*height),
	}
}

// At returns the cell at (x, y). Out-of-bounds reads return the zero cell.
func (c *Canvas) At(x, y int) Cell {
	if x < 0 || x >= c.Width || y < 0 || y >= c.Height {
		return Cell{}
	}
	return c.cells[y*c.Width+x]
}

func (c *Canvas) set(x, y int, cell Cell) {
	if x < 0 || x >= c.Width || y < 0 || y >= c.Height {
		return
	}
	c.cells[y*c.Width+x] = cell
}

// Row returns the cells of row y in order.
func (c *Canvas) Row(y int) []Cell {
	if y < 0 || y >= c.Height {
		return nil
	}
	return c.cells[y*c.Width : (y+1)*c.Width]
}
