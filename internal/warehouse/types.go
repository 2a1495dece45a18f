// Package warehouse defines the domain types shared by the map view, the
// guided workflows and the REST client. Everything here mirrors what the
// MagacinTracker backend serves; nothing is persisted client-side.
package warehouse

import "time"

// LocationType is the level of a location in the warehouse hierarchy.
type LocationType string

const (
	TypeZone  LocationType = "zone"
	TypeRack  LocationType = "rack"
	TypeShelf LocationType = "shelf"
	TypeBin   LocationType = "bin"
)

// Location is one addressable point in the warehouse. Immutable for the
// lifetime of the snapshot that carries it.
type Location struct {
	ID               int64        `json:"id"`
	Code             string       `json:"code"`
	Name             string       `json:"name"`
	Type             LocationType `json:"type"`
	X                float64      `json:"x"`
	Y                float64      `json:"y"`
	OccupancyPercent float64      `json:"occupancy_percent"`
	Active           bool         `json:"active"`
}

// MapSnapshot is a wholesale-replaced view of the warehouse map as of one
// poll. Location order is significant: it is both the render order and the
// hit-test priority order.
type MapSnapshot struct {
	WarehouseID   string     `json:"magacin_id"`
	WarehouseName string     `json:"magacin_name"`
	Locations     []Location `json:"locations"`
	Zones         []string   `json:"zones"`
	Timestamp     time.Time  `json:"timestamp"`
}

// CycleCountStatus is the lifecycle state of a cycle count document.
type CycleCountStatus string

const (
	CountScheduled  CycleCountStatus = "scheduled"
	CountInProgress CycleCountStatus = "in_progress"
	CountCompleted  CycleCountStatus = "completed"
)

// CycleCountItem is one countable inventory line within a cycle count.
type CycleCountItem struct {
	ID               string  `json:"id"`
	Sequence         int     `json:"sequence"`
	ArticleCode      string  `json:"article_code"`
	ArticleName      string  `json:"article_name"`
	LocationCode     string  `json:"location_code"`
	ExpectedQuantity float64 `json:"expected_quantity"`
}

// CycleCount is the server-side cycle count document as fetched on view
// entry. AccuracyPercent is only meaningful once Status is CountCompleted.
type CycleCount struct {
	ID              string           `json:"id"`
	WarehouseID     string           `json:"magacin_id"`
	Status          CycleCountStatus `json:"status"`
	Items           []CycleCountItem `json:"items"`
	AccuracyPercent float64          `json:"accuracy_percentage"`
}

// CountEntry is one line of the completion batch.
type CountEntry struct {
	ItemID          string  `json:"item_id"`
	CountedQuantity float64 `json:"counted_quantity"`
	Reason          string  `json:"reason,omitempty"`
}

// PickTask is one stop on a pick route. Sequence numbers are unique and
// strictly increasing within a route.
type PickTask struct {
	ID           string  `json:"id"`
	Sequence     int     `json:"sequence"`
	LocationCode string  `json:"location_code"`
	LocationPath string  `json:"location_path"`
	ArticleCode  string  `json:"article_code"`
	ArticleName  string  `json:"article_name"`
	Quantity     float64 `json:"quantity"`
}

// PickRoute is an ordered pick route for one outbound document. The route is
// immutable once loaded; only the client-side completed set changes.
type PickRoute struct {
	DocumentID       string     `json:"document_id"`
	Algorithm        string     `json:"algorithm"`
	Tasks            []PickTask `json:"tasks"`
	TotalDistanceM   float64    `json:"total_distance_m"`
	EstimatedSeconds int        `json:"estimated_seconds"`
}

// DashboardStats are the aggregate occupancy figures for the dashboard page.
type DashboardStats struct {
	WarehouseID    string `json:"magacin_id"`
	TotalLocations int    `json:"total_locations"`
	FreeCount      int    `json:"free_count"`
	PartialCount   int    `json:"partial_count"`
	FullCount      int    `json:"full_count"`
	ActiveCounts   int    `json:"active_cycle_counts"`
	OpenPickDocs   int    `json:"open_pick_documents"`
}
