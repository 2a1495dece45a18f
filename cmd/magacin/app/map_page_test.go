package app

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Doppler617492/MagacinTracker-sub002/cmd/magacin/ui"
	"github.com/Doppler617492/MagacinTracker-sub002/internal/mapview"
	"github.com/Doppler617492/MagacinTracker-sub002/internal/warehouse"
)

func mapTestSnapshot() *warehouse.MapSnapshot {
	return &warehouse.MapSnapshot{
		WarehouseID:   "1",
		WarehouseName: "Centralni magacin",
		Locations: []warehouse.Location{
			{ID: 1, Code: "A-01", Type: warehouse.TypeBin, X: 0, Y: 0, OccupancyPercent: 95, Active: true},
			{ID: 2, Code: "A-02", Type: warehouse.TypeBin, X: 10, Y: 0, OccupancyPercent: 95, Active: true},
			{ID: 3, Code: "B-01", Type: warehouse.TypeBin, X: 20, Y: 10, OccupancyPercent: 95, Active: true},
		},
		Zones: []string{"A", "B"},
	}
}

// mapModelWithSnapshot builds a root model sitting on the map page with a
// snapshot already applied, bypassing the REST client.
func mapModelWithSnapshot(t *testing.T) Model {
	t.Helper()
	snap := mapTestSnapshot()
	session := mapview.NewSession(func(ctx context.Context, warehouseID, zone string) (*warehouse.MapSnapshot, error) {
		return snap, nil
	}, "1", time.Hour)
	session.Start(context.Background())
	t.Cleanup(session.Stop)

	select {
	case <-session.Updates():
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the first snapshot")
	}

	styles := ui.DefaultStyles()
	m := Model{
		styles: styles,
		page:   pageMap,
		width:  80,
		height: 24,
		ready:  true,
		mapPage: mapPage{
			styles:   styles,
			session:  session,
			debounce: ui.NewDebouncer(ui.DefaultFilterDuration),
		},
	}
	m.mapPage.setSize(80, 24)
	return m
}

// The mouse translation constant must equal the number of rendered rows
// above the canvas, otherwise every hover lands one row off.
func TestMapViewRowsAboveCanvasMatchMouseOffset(t *testing.T) {
	m := mapModelWithSnapshot(t)

	// Vertical gridlines paint canvas row 0, so the first view line with a
	// grid dot is where the canvas starts on screen.
	lines := strings.Split(m.View(), "\n")
	canvasLine := -1
	for i, line := range lines {
		if strings.ContainsRune(line, '·') {
			canvasLine = i
			break
		}
	}
	require.NotEqual(t, -1, canvasLine, "no grid cells in the rendered view")
	assert.Equal(t, mapHeaderRows, canvasLine,
		"mouse rows are translated by %d but the canvas starts at view line %d", mapHeaderRows, canvasLine)
}

func TestMapPageMouseHoverResolvesPointedSquare(t *testing.T) {
	m := mapModelWithSnapshot(t)

	tr, ok := m.mapPage.transform()
	require.True(t, ok)

	target := m.mapPage.session.Snapshot().Locations[2]
	bounds := tr.LocationBounds(target)
	cx := (bounds.X0 + bounds.X1) / 2
	cy := (bounds.Y0 + bounds.Y1) / 2

	m.mapPage.update(tea.MouseMsg{X: cx, Y: cy + mapHeaderRows, Action: tea.MouseActionMotion})

	require.True(t, m.mapPage.hovered, "pointer over a painted square must hover it")
	assert.Equal(t, target.ID, m.mapPage.hover.ID)

	// One row above the square's top edge is empty space.
	m.mapPage.update(tea.MouseMsg{X: cx, Y: bounds.Y0 - 1 + mapHeaderRows, Action: tea.MouseActionMotion})
	assert.False(t, m.mapPage.hovered, "pointer above the square must not hover it")
}
