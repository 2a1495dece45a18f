package mapview

import "github.com/Doppler617492/MagacinTracker-sub002/internal/warehouse"

// HitTest returns the first location in snapshot order whose bounding square
// contains the pointer cell, and false when nothing is hit.
//
// Note the ordering: this is the first entry in the Locations slice, not the
// topmost rendered shape. Rendering paints later entries over earlier ones,
// so when two squares overlap the pointer resolves to the earlier entry even
// though the later one is visible on top. Snapshots from the backend do not
// place distinct locations on overlapping squares in practice; keep the
// first-match rule unless the backend contract changes.
func HitTest(snap *warehouse.MapSnapshot, t Transform, x, y int) (warehouse.Location, bool) {
	if snap == nil {
		return warehouse.Location{}, false
	}
	for _, loc := range snap.Locations {
		if t.LocationBounds(loc).Contains(x, y) {
			return loc, true
		}
	}
	return warehouse.Location{}, false
}
