package mapview

import (
	"math"

	"github.com/Doppler617492/MagacinTracker-sub002/internal/warehouse"
)

// GridSpacing is the background grid pitch in domain units.
const GridSpacing = 5.0

const (
	gridRune   = '·'
	fillRune   = '█'
	borderRune = '▓'
)

// Renderer draws a snapshot onto a cell canvas. Width, Height and Padding
// are in cells and must match the values used to build the transform handed
// to the hit tester.
type Renderer struct {
	Width   int
	Height  int
	Padding float64
}

// Render draws the snapshot: background grid first, then every location in
// snapshot order (later entries paint over earlier ones), with the hover
// target's border highlighted and bin codes labelled below their squares.
// hoverID zero means no hover target.
func (r Renderer) Render(snap *warehouse.MapSnapshot, t Transform, hoverID int64) *Canvas {
	canvas := NewCanvas(r.Width, r.Height)
	if snap == nil || len(snap.Locations) == 0 {
		return canvas
	}

	r.drawGrid(canvas, snap, t)
	for _, loc := range snap.Locations {
		r.drawLocation(canvas, t, loc, loc.ID == hoverID)
	}
	return canvas
}

// drawGrid paints dotted lines at every multiple of GridSpacing inside the
// domain extents of the snapshot.
func (r Renderer) drawGrid(canvas *Canvas, snap *warehouse.MapSnapshot, t Transform) {
	minX, maxX := snap.Locations[0].X, snap.Locations[0].X
	minY, maxY := snap.Locations[0].Y, snap.Locations[0].Y
	for _, loc := range snap.Locations[1:] {
		minX = math.Min(minX, loc.X)
		maxX = math.Max(maxX, loc.X)
		minY = math.Min(minY, loc.Y)
		maxY = math.Max(maxY, loc.Y)
	}

	for gx := math.Ceil(minX/GridSpacing) * GridSpacing; gx <= maxX; gx += GridSpacing {
		cx, _ := t.Apply(gx, minY)
		col := int(math.Round(cx))
		for y := 0; y < canvas.Height; y++ {
			canvas.set(col, y, Cell{Rune: gridRune, Kind: CellGrid})
		}
	}
	for gy := math.Ceil(minY/GridSpacing) * GridSpacing; gy <= maxY; gy += GridSpacing {
		_, cy := t.Apply(minX, gy)
		row := int(math.Round(cy))
		for x := 0; x < canvas.Width; x++ {
			canvas.set(x, row, Cell{Rune: gridRune, Kind: CellGrid})
		}
	}
}

func (r Renderer) drawLocation(canvas *Canvas, t Transform, loc warehouse.Location, hovered bool) {
	bounds := t.LocationBounds(loc)
	level := warehouse.ClassifyOccupancy(loc.OccupancyPercent)

	borderKind := CellBorder
	if hovered {
		borderKind = CellHoverBorder
	}

	for y := bounds.Y0; y <= bounds.Y1; y++ {
		for x := bounds.X0; x <= bounds.X1; x++ {
			onEdge := x == bounds.X0 || x == bounds.X1 || y == bounds.Y0 || y == bounds.Y1
			if onEdge {
				canvas.set(x, y, Cell{Rune: borderRune, Kind: borderKind, Level: level})
			} else {
				canvas.set(x, y, Cell{Rune: fillRune, Kind: CellFill, Level: level})
			}
		}
	}

	if loc.Type == warehouse.TypeBin {
		r.drawLabel(canvas, bounds, loc.Code, level)
	}
}

// drawLabel centers the location code one row below its square.
func (r Renderer) drawLabel(canvas *Canvas, bounds CellRect, code string, level warehouse.OccupancyLevel) {
	runes := []rune(code)
	centerX := (bounds.X0 + bounds.X1) / 2
	startX := centerX - len(runes)/2
	y := bounds.Y1 + 1
	for i, ch := range runes {
		canvas.set(startX+i, y, Cell{Rune: ch, Kind: CellLabel, Level: level})
	}
}
