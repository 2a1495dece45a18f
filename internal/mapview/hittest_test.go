package mapview

import (
	"testing"

	"github.com/Doppler617492/MagacinTracker-sub002/internal/warehouse"
)

func TestHitTestFirstMatchWins(t *testing.T) {
	// A and B occupy the same square; a pointer in the overlap must resolve
	// to A, the earlier snapshot entry, even though B renders on top.
	snap := &warehouse.MapSnapshot{
		Locations: []warehouse.Location{
			{ID: 1, Code: "A", Type: warehouse.TypeBin, X: 5, Y: 5},
			{ID: 2, Code: "B", Type: warehouse.TypeBin, X: 5, Y: 5},
			{ID: 3, Code: "C", Type: warehouse.TypeBin, X: 20, Y: 20},
		},
	}
	tr, err := FitLocations(snap.Locations, 60, 60, 4)
	if err != nil {
		t.Fatalf("FitLocations: %v", err)
	}

	cx, cy := center(tr.LocationBounds(snap.Locations[0]))
	loc, ok := HitTest(snap, tr, cx, cy)
	if !ok {
		t.Fatal("no hit in overlap")
	}
	if loc.Code != "A" {
		t.Errorf("hit = %s, want A (first in snapshot order)", loc.Code)
	}
}

func TestHitTestMiss(t *testing.T) {
	snap := testSnapshot()
	tr, _ := FitLocations(snap.Locations, 80, 40, 4)

	if _, ok := HitTest(snap, tr, 0, 0); ok {
		t.Error("corner of the padding area must not hit")
	}
	if _, ok := HitTest(nil, tr, 10, 10); ok {
		t.Error("nil snapshot must not hit")
	}
}

func TestHitTestMatchesRenderedSquare(t *testing.T) {
	snap := testSnapshot()
	r := Renderer{Width: 80, Height: 40, Padding: 4}
	tr, err := FitLocations(snap.Locations, float64(r.Width), float64(r.Height), r.Padding)
	if err != nil {
		t.Fatalf("FitLocations: %v", err)
	}

	canvas := r.Render(snap, tr, 0)

	// Hovering the center of the 95%-occupancy square resolves to that
	// location, and the probed cell really is painted full.
	full := snap.Locations[2]
	cx, cy := center(tr.LocationBounds(full))

	loc, ok := HitTest(snap, tr, cx, cy)
	if !ok {
		t.Fatal("no hit on rendered square")
	}
	if loc.ID != full.ID {
		t.Errorf("hit = %s, want %s", loc.Code, full.Code)
	}
	if cell := canvas.At(cx, cy); cell.Level != warehouse.Full {
		t.Errorf("probed cell level = %v, want Full", cell.Level)
	}
}

func TestHitTestEveryPaintedCellResolves(t *testing.T) {
	snap := testSnapshot()
	tr, _ := FitLocations(snap.Locations, 80, 40, 4)

	// Every cell of every bounding square must hit some location: renderer
	// and hit tester share the same geometry.
	for _, loc := range snap.Locations {
		b := tr.LocationBounds(loc)
		for y := b.Y0; y <= b.Y1; y++ {
			for x := b.X0; x <= b.X1; x++ {
				if _, ok := HitTest(snap, tr, x, y); !ok {
					t.Fatalf("cell (%d, %d) inside %s's square does not hit", x, y, loc.Code)
				}
			}
		}
	}
}
