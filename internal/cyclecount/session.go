// Package cyclecount implements the guided cycle count workflow: one
// countable line per item, explicit forward navigation gated on a recorded
// quantity, and a single batch submit at the end.
package cyclecount

import (
	"context"
	"fmt"

	"github.com/Doppler617492/MagacinTracker-sub002/internal/logging"
	"github.com/Doppler617492/MagacinTracker-sub002/internal/warehouse"
	"github.com/Doppler617492/MagacinTracker-sub002/internal/workflow"
)

// Backend is the slice of the REST client the session needs.
type Backend interface {
	CycleCount(ctx context.Context, id string) (*warehouse.CycleCount, error)
	StartCycleCount(ctx context.Context, id string) error
	CompleteCycleCount(ctx context.Context, id string, counts []warehouse.CountEntry) (float64, error)
}

// Session drives one cycle count document from load to completion. All
// state between the initial fetch and the final submit lives in memory;
// abandoning the session loses nothing server-side.
type Session struct {
	backend Backend

	id       string
	status   warehouse.CycleCountStatus
	ctrl     *workflow.Controller[warehouse.CycleCountItem]
	reasons  map[string]string
	accuracy float64
}

// Load fetches the cycle count document and builds a session positioned on
// the first item.
func Load(ctx context.Context, backend Backend, id string) (*Session, error) {
	cc, err := backend.CycleCount(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading cycle count %s: %w", id, err)
	}

	ctrl, err := workflow.NewController(cc.Items,
		func(it warehouse.CycleCountItem) string { return it.ID },
		workflow.Policy{RequireRecordToAdvance: true})
	if err != nil {
		return nil, fmt.Errorf("cycle count %s: %w", id, err)
	}

	logging.Workflow("cycle count %s loaded: %d items, status %s", id, len(cc.Items), cc.Status)
	return &Session{
		backend: backend,
		id:      cc.ID,
		status:  cc.Status,
		ctrl:    ctrl,
		reasons: make(map[string]string),
	}, nil
}

// ID returns the cycle count document id.
func (s *Session) ID() string { return s.id }

// Status returns the document lifecycle state.
func (s *Session) Status() warehouse.CycleCountStatus { return s.status }

// Items returns the countable lines in sequence order.
func (s *Session) Items() []warehouse.CycleCountItem { return s.ctrl.Items() }

// Current returns the item under the cursor.
func (s *Session) Current() warehouse.CycleCountItem { return s.ctrl.Current() }

// Index returns the cursor position.
func (s *Session) Index() int { return s.ctrl.Index() }

// Len returns the number of items.
func (s *Session) Len() int { return s.ctrl.Len() }

// Start moves a scheduled document to in_progress on the server. Calling it
// on a document that is already in progress is a no-op.
func (s *Session) Start(ctx context.Context) error {
	if s.status != warehouse.CountScheduled {
		return nil
	}
	if err := s.backend.StartCycleCount(ctx, s.id); err != nil {
		return fmt.Errorf("starting cycle count %s: %w", s.id, err)
	}
	s.status = warehouse.CountInProgress
	logging.Workflow("cycle count %s started", s.id)
	return nil
}

// RecordCount stores the counted quantity for the current item.
// Re-recording overwrites.
func (s *Session) RecordCount(quantity float64) {
	s.ctrl.Record(s.Current().ID, quantity)
}

// SetReason stores the justification text for the current item. An empty
// string clears it.
func (s *Session) SetReason(reason string) {
	if reason == "" {
		delete(s.reasons, s.Current().ID)
		return
	}
	s.reasons[s.Current().ID] = reason
}

// Reason returns the justification recorded for an item, if any.
func (s *Session) Reason(itemID string) string { return s.reasons[itemID] }

// CountedQuantity returns the recorded quantity for an item and whether one
// exists.
func (s *Session) CountedQuantity(itemID string) (float64, bool) {
	r, ok := s.ctrl.RecordedValue(itemID)
	return r.Quantity, ok
}

// CurrentVariance evaluates the current item's recorded quantity against its
// expected quantity. The second return is false while nothing is recorded.
func (s *Session) CurrentVariance() (workflow.VarianceResult, bool) {
	item := s.Current()
	r, ok := s.ctrl.RecordedValue(item.ID)
	if !ok {
		return workflow.VarianceResult{}, false
	}
	return workflow.Evaluate(item.ExpectedQuantity, r.Quantity), true
}

// Next advances to the following item; refused while the current item has no
// recorded quantity.
func (s *Session) Next() bool { return s.ctrl.Next() }

// Previous moves back one item.
func (s *Session) Previous() bool { return s.ctrl.Previous() }

// JumpTo moves the cursor to any item, recorded or not.
func (s *Session) JumpTo(index int) bool { return s.ctrl.JumpTo(index) }

// IsRecorded reports whether an item has a counted quantity.
func (s *Session) IsRecorded(itemID string) bool { return s.ctrl.IsRecorded(itemID) }

// RecordedCount returns how many items have a counted quantity.
func (s *Session) RecordedCount() int { return s.ctrl.RecordedCount() }

// AllRecorded reports whether every item has a counted quantity.
func (s *Session) AllRecorded() bool { return s.ctrl.AllRecorded() }

// Progress returns the recorded share as a percentage.
func (s *Session) Progress() float64 { return s.ctrl.Progress() }

// Entries builds the completion batch in item order. Items without a
// recorded quantity default to their expected quantity; whether that is
// acceptable is confirmed by the caller before Complete, not enforced here.
func (s *Session) Entries() []warehouse.CountEntry {
	items := s.ctrl.Items()
	entries := make([]warehouse.CountEntry, 0, len(items))
	for _, it := range items {
		qty := it.ExpectedQuantity
		if r, ok := s.ctrl.RecordedValue(it.ID); ok {
			qty = r.Quantity
		}
		entries = append(entries, warehouse.CountEntry{
			ItemID:          it.ID,
			CountedQuantity: qty,
			Reason:          s.reasons[it.ID],
		})
	}
	return entries
}

// Complete submits the batch and stores the server-computed accuracy. On
// failure the session is unchanged and may be submitted again.
func (s *Session) Complete(ctx context.Context) error {
	accuracy, err := s.backend.CompleteCycleCount(ctx, s.id, s.Entries())
	if err != nil {
		return fmt.Errorf("completing cycle count %s: %w", s.id, err)
	}
	s.status = warehouse.CountCompleted
	s.accuracy = accuracy
	logging.Workflow("cycle count %s completed, accuracy %.1f%%", s.id, accuracy)
	return nil
}

// Accuracy returns the server-computed accuracy percentage. Valid only once
// the session is completed; the second return is false before that.
func (s *Session) Accuracy() (float64, bool) {
	if s.status != warehouse.CountCompleted {
		return 0, false
	}
	return s.accuracy, true
}
