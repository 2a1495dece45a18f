package app

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Doppler617492/MagacinTracker-sub002/cmd/magacin/ui"
	"github.com/Doppler617492/MagacinTracker-sub002/internal/api"
	"github.com/Doppler617492/MagacinTracker-sub002/internal/warehouse"
)

type fakePickBackend struct {
	route    *warehouse.PickRoute
	notFound bool
}

func (f *fakePickBackend) PickRoute(ctx context.Context, documentID string) (*warehouse.PickRoute, error) {
	if f.notFound {
		return nil, api.ErrNotFound
	}
	return f.route, nil
}

func (f *fakePickBackend) GeneratePickRoute(ctx context.Context, documentID, algorithm string) (*warehouse.PickRoute, error) {
	return f.route, nil
}

func loadedPickPage(t *testing.T, notFound bool) *pickPage {
	t.Helper()
	backend := &fakePickBackend{
		notFound: notFound,
		route: &warehouse.PickRoute{
			DocumentID: "DOC-9",
			Algorithm:  "nearest_neighbor",
			Tasks: []warehouse.PickTask{
				{ID: "t1", Sequence: 1, LocationCode: "A-01", Quantity: 1},
				{ID: "t2", Sequence: 2, LocationCode: "B-02", Quantity: 3},
			},
			TotalDistanceM: 18,
		},
	}

	page := newPickPage(ui.DefaultStyles(), "DOC-9")
	cmds := page.enter(backend, "nearest_neighbor")
	require.NotEmpty(t, cmds)

	msg := cmds[0]()
	loaded, ok := msg.(pickLoadedMsg)
	require.True(t, ok, "expected pickLoadedMsg, got %T", msg)
	page.onLoaded(loaded)
	return &page
}

func TestPickPageEnterWithoutDocument(t *testing.T) {
	page := newPickPage(ui.DefaultStyles(), "")
	assert.Empty(t, page.enter(&fakePickBackend{}, "nearest_neighbor"))
	assert.Contains(t, page.view(), "magacin pick")
}

func TestPickPageSpaceCompletesAndAdvances(t *testing.T) {
	page := loadedPickPage(t, false)

	page.update(tea.KeyMsg{Type: tea.KeySpace})
	assert.True(t, page.session.IsCompleted("t1"))
	assert.Equal(t, 1, page.session.Index())
	assert.Equal(t, pickWalking, page.mode)
}

func TestPickPageLastTaskFinishes(t *testing.T) {
	page := loadedPickPage(t, false)

	page.update(tea.KeyMsg{Type: tea.KeySpace})
	page.update(tea.KeyMsg{Type: tea.KeySpace})

	assert.Equal(t, pickDone, page.mode)
	assert.Equal(t, 1, page.session.Index(), "cursor stays on the last task")
	assert.Contains(t, page.view(), "Ruta završena")
}

func TestPickPageGeneratedRouteMarked(t *testing.T) {
	page := loadedPickPage(t, true)
	assert.True(t, page.session.Generated())
	assert.Contains(t, page.view(), "generisana")
}
