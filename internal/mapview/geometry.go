package mapview

import (
	"math"

	"github.com/Doppler617492/MagacinTracker-sub002/internal/warehouse"
)

// Square side multipliers per location type, in units of the transform
// scale. Coarser levels of the hierarchy draw larger: zone > rack > shelf >
// bin.
const (
	sizeZone  = 3.0
	sizeRack  = 2.0
	sizeShelf = 1.5
	sizeBin   = 1.0
)

func sizeMultiplier(t warehouse.LocationType) float64 {
	switch t {
	case warehouse.TypeZone:
		return sizeZone
	case warehouse.TypeRack:
		return sizeRack
	case warehouse.TypeShelf:
		return sizeShelf
	default:
		return sizeBin
	}
}

// CellRect is an inclusive rectangle in canvas cell coordinates.
type CellRect struct {
	X0, Y0, X1, Y1 int
}

// Contains reports whether the cell (x, y) lies inside the rectangle.
func (r CellRect) Contains(x, y int) bool {
	return x >= r.X0 && x <= r.X1 && y >= r.Y0 && y <= r.Y1
}

// LocationBounds is the bounding square of a location on the canvas. The
// renderer paints exactly this rectangle and the hit tester probes exactly
// this rectangle, so the two can never disagree about what a pointer is over.
func (t Transform) LocationBounds(loc warehouse.Location) CellRect {
	cx, cy := t.Apply(loc.X, loc.Y)
	side := int(math.Round(sizeMultiplier(loc.Type) * t.Scale))
	if side < 1 {
		side = 1
	}
	x0 := int(math.Round(cx)) - side/2
	y0 := int(math.Round(cy)) - side/2
	return CellRect{X0: x0, Y0: y0, X1: x0 + side - 1, Y1: y0 + side - 1}
}
