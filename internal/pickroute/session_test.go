package pickroute

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Doppler617492/MagacinTracker-sub002/internal/api"
	"github.com/Doppler617492/MagacinTracker-sub002/internal/warehouse"
)

type fakeBackend struct {
	existing *warehouse.PickRoute
	getErr   error

	generated   *warehouse.PickRoute
	generateErr error

	generateCalls int
	algorithm     string
}

func (f *fakeBackend) PickRoute(ctx context.Context, documentID string) (*warehouse.PickRoute, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.existing, nil
}

func (f *fakeBackend) GeneratePickRoute(ctx context.Context, documentID, algorithm string) (*warehouse.PickRoute, error) {
	f.generateCalls++
	f.algorithm = algorithm
	if f.generateErr != nil {
		return nil, f.generateErr
	}
	return f.generated, nil
}

func threeTaskRoute() *warehouse.PickRoute {
	return &warehouse.PickRoute{
		DocumentID: "DOC-77",
		Algorithm:  "nearest_neighbor",
		Tasks: []warehouse.PickTask{
			{ID: "t1", Sequence: 1, LocationCode: "A-01-01", Quantity: 2},
			{ID: "t2", Sequence: 2, LocationCode: "A-02-03", Quantity: 1},
			{ID: "t3", Sequence: 3, LocationCode: "B-01-01", Quantity: 5},
		},
		TotalDistanceM:   42.5,
		EstimatedSeconds: 180,
	}
}

func TestLoadUsesExistingRoute(t *testing.T) {
	backend := &fakeBackend{existing: threeTaskRoute()}
	s, err := Load(context.Background(), backend, "DOC-77", "nearest_neighbor")
	require.NoError(t, err)

	assert.Zero(t, backend.generateCalls)
	assert.False(t, s.Generated())
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, "t1", s.Current().ID)
}

func TestLoadGeneratesOnNotFound(t *testing.T) {
	backend := &fakeBackend{getErr: api.ErrNotFound, generated: threeTaskRoute()}
	s, err := Load(context.Background(), backend, "DOC-77", "shortest_path")
	require.NoError(t, err)

	assert.Equal(t, 1, backend.generateCalls)
	assert.Equal(t, "shortest_path", backend.algorithm)
	assert.True(t, s.Generated())
}

func TestLoadGenerationFailureIsTerminal(t *testing.T) {
	backend := &fakeBackend{getErr: api.ErrNotFound, generateErr: errors.New("optimizer unavailable")}
	_, err := Load(context.Background(), backend, "DOC-77", "nearest_neighbor")
	require.Error(t, err)
	assert.Equal(t, 1, backend.generateCalls, "exactly one generation attempt")
}

func TestLoadTransportFailureDoesNotGenerate(t *testing.T) {
	backend := &fakeBackend{getErr: errors.New("connection refused")}
	_, err := Load(context.Background(), backend, "DOC-77", "nearest_neighbor")
	require.Error(t, err)
	assert.Zero(t, backend.generateCalls, "only a 404 triggers generation")
}

func TestLoadRejectsNonIncreasingSequences(t *testing.T) {
	route := threeTaskRoute()
	route.Tasks[2].Sequence = 2
	backend := &fakeBackend{existing: route}
	_, err := Load(context.Background(), backend, "DOC-77", "nearest_neighbor")
	require.ErrorIs(t, err, ErrBadSequence)
}

func TestCompleteTaskAdvances(t *testing.T) {
	backend := &fakeBackend{existing: threeTaskRoute()}
	s, err := Load(context.Background(), backend, "DOC-77", "nearest_neighbor")
	require.NoError(t, err)

	s.CompleteTask()
	assert.True(t, s.IsCompleted("t1"))
	assert.Equal(t, 1, s.Index(), "completion advances the cursor")
	assert.InDelta(t, 100.0/3.0, s.Progress(), 1e-9)
}

func TestCompleteLastTaskStaysInBounds(t *testing.T) {
	backend := &fakeBackend{existing: threeTaskRoute()}
	s, err := Load(context.Background(), backend, "DOC-77", "nearest_neighbor")
	require.NoError(t, err)

	s.CompleteTask()
	s.CompleteTask()
	assert.Equal(t, 2, s.Index())

	s.CompleteTask()
	assert.Equal(t, 2, s.Index(), "cursor stays on the last task")
	assert.True(t, s.AllCompleted())
	assert.Equal(t, 100.0, s.Progress())
}
