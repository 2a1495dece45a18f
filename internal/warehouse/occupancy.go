package warehouse

// OccupancyLevel is the semantic fill bucket of a location.
type OccupancyLevel int

const (
	Free OccupancyLevel = iota
	Partial
	Full
)

// Occupancy bucket thresholds, in percent.
const (
	partialThreshold = 50
	fullThreshold    = 90
)

// ClassifyOccupancy maps an occupancy percentage to its bucket:
// below 50 is free, 50 up to (but excluding) 90 is partial, 90 and above is
// full. Input is clamped to [0,100] first; the backend should never send
// values outside that range, but a bad row must not produce a fourth bucket.
func ClassifyOccupancy(pct float64) OccupancyLevel {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	switch {
	case pct >= fullThreshold:
		return Full
	case pct >= partialThreshold:
		return Partial
	default:
		return Free
	}
}

func (l OccupancyLevel) String() string {
	switch l {
	case Full:
		return "full"
	case Partial:
		return "partial"
	default:
		return "free"
	}
}

// Severity names the display color class for a bucket, matching the badge
// colors used across the dashboard: free renders success, partial renders
// warning, full renders danger.
func (l OccupancyLevel) Severity() string {
	switch l {
	case Full:
		return "danger"
	case Partial:
		return "warning"
	default:
		return "success"
	}
}
