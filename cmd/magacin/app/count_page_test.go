package app

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Doppler617492/MagacinTracker-sub002/cmd/magacin/ui"
	"github.com/Doppler617492/MagacinTracker-sub002/internal/warehouse"
)

type fakeCountBackend struct {
	doc       *warehouse.CycleCount
	submitted []warehouse.CountEntry
}

func (f *fakeCountBackend) CycleCount(ctx context.Context, id string) (*warehouse.CycleCount, error) {
	return f.doc, nil
}

func (f *fakeCountBackend) StartCycleCount(ctx context.Context, id string) error {
	return nil
}

func (f *fakeCountBackend) CompleteCycleCount(ctx context.Context, id string, counts []warehouse.CountEntry) (float64, error) {
	f.submitted = counts
	return 98.0, nil
}

func loadedCountPage(t *testing.T) (*countPage, *fakeCountBackend) {
	t.Helper()
	backend := &fakeCountBackend{doc: &warehouse.CycleCount{
		ID:     "cc-1",
		Status: warehouse.CountInProgress,
		Items: []warehouse.CycleCountItem{
			{ID: "i1", Sequence: 1, ArticleCode: "ART-1", LocationCode: "A-01", ExpectedQuantity: 10},
			{ID: "i2", Sequence: 2, ArticleCode: "ART-2", LocationCode: "A-02", ExpectedQuantity: 5},
		},
	}}

	page := newCountPage(ui.DefaultStyles(), "cc-1")
	cmds := page.enter(backend)
	require.NotEmpty(t, cmds)

	msg := cmds[0]()
	loaded, ok := msg.(countLoadedMsg)
	require.True(t, ok, "expected countLoadedMsg, got %T", msg)
	page.onLoaded(loaded)
	return &page, backend
}

func TestCountPageEnterWithoutID(t *testing.T) {
	page := newCountPage(ui.DefaultStyles(), "")
	assert.Empty(t, page.enter(&fakeCountBackend{}))
	assert.Contains(t, page.view(), "magacin count")
}

func TestCountPageEnterGatesNext(t *testing.T) {
	page, _ := loadedCountPage(t)

	page.handleKey(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 0, page.session.Index(), "right must not advance an uncounted item")
	assert.NotEmpty(t, page.hint)
}

func TestCountPageEnterRecordsAndAdvances(t *testing.T) {
	page, _ := loadedCountPage(t)

	page.qty.SetValue("10")
	page.handleKey(tea.KeyMsg{Type: tea.KeyEnter})

	assert.True(t, page.session.IsRecorded("i1"))
	assert.Equal(t, 1, page.session.Index())
	assert.Empty(t, page.qty.Value(), "input resets for the next item")
}

func TestCountPageVarianceDemandsReason(t *testing.T) {
	page, _ := loadedCountPage(t)

	// 10 expected, 8 counted: -20%, above the tolerated deviation.
	page.qty.SetValue("8")
	page.handleKey(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, 0, page.session.Index(), "focus moves to the reason before advancing")
	assert.True(t, page.reason.Focused())
	assert.NotEmpty(t, page.hint)
}

func TestCountPageOverviewJump(t *testing.T) {
	page, _ := loadedCountPage(t)

	page.handleKey(tea.KeyMsg{Type: tea.KeyCtrlO})
	assert.Equal(t, countOverview, page.mode)

	page.handleKey(tea.KeyMsg{Type: tea.KeyDown})
	page.handleKey(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, countEntry, page.mode)
	assert.Equal(t, 1, page.session.Index(), "overview jump skips the gate")
}

func TestCountPagePartialCompleteConfirms(t *testing.T) {
	page, backend := loadedCountPage(t)

	page.qty.SetValue("10")
	page.handleKey(tea.KeyMsg{Type: tea.KeyEnter})

	cmds := page.handleKey(tea.KeyMsg{Type: tea.KeyCtrlD})
	assert.Empty(t, cmds)
	assert.Equal(t, countConfirm, page.mode, "partial count needs confirmation")

	cmds = page.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
	require.Len(t, cmds, 1)

	msg := cmds[0]()
	done, ok := msg.(countCompletedMsg)
	require.True(t, ok, "expected countCompletedMsg, got %T", msg)
	page.onCompleted(float64(done))

	assert.Equal(t, countDone, page.mode)
	require.Len(t, backend.submitted, 2)
	assert.Equal(t, 5.0, backend.submitted[1].CountedQuantity, "unrecorded item defaults to expected")
	assert.Contains(t, page.view(), "98.0")
}
