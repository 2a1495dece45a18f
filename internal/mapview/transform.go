// Package mapview projects warehouse locations onto a terminal cell canvas:
// a uniform-scale coordinate transform, a grid renderer, a pointer hit
// tester, and a polling session that owns the snapshot lifecycle.
package mapview

import (
	"errors"

	"github.com/Doppler617492/MagacinTracker-sub002/internal/warehouse"
)

// ErrNoPoints is returned when a transform is requested for an empty set.
var ErrNoPoints = errors.New("mapview: no points to fit")

// Point is a position in warehouse domain units.
type Point struct {
	X float64
	Y float64
}

// Transform maps domain coordinates into canvas cells. The scale is uniform
// across both axes so shapes keep their aspect ratio regardless of how the
// warehouse extents relate to the canvas extents.
type Transform struct {
	Scale   float64
	MinX    float64
	MinY    float64
	Padding float64
}

// FitTransform computes the transform that fits all points into a canvas of
// the given cell dimensions, leaving padding cells on every edge. A
// degenerate axis (all points sharing one coordinate) has its range floored
// to 1 so the scale stays finite.
func FitTransform(points []Point, width, height, padding float64) (Transform, error) {
	if len(points) == 0 {
		return Transform{}, ErrNoPoints
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	rangeX := maxX - minX
	if rangeX < 1 {
		rangeX = 1
	}
	rangeY := maxY - minY
	if rangeY < 1 {
		rangeY = 1
	}

	scaleX := (width - 2*padding) / rangeX
	scaleY := (height - 2*padding) / rangeY
	scale := scaleX
	if scaleY < scale {
		scale = scaleY
	}

	return Transform{Scale: scale, MinX: minX, MinY: minY, Padding: padding}, nil
}

// FitLocations is FitTransform over the positions of a location slice.
func FitLocations(locs []warehouse.Location, width, height, padding float64) (Transform, error) {
	points := make([]Point, len(locs))
	for i, loc := range locs {
		points[i] = Point{X: loc.X, Y: loc.Y}
	}
	return FitTransform(points, width, height, padding)
}

// Apply maps a domain point to canvas coordinates.
func (t Transform) Apply(x, y float64) (float64, float64) {
	return t.Padding + (x-t.MinX)*t.Scale, t.Padding + (y-t.MinY)*t.Scale
}
