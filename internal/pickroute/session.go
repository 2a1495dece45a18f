// Package pickroute implements the guided picking workflow: an ordered,
// immutable route of pick tasks where completing a task is also the forward
// navigation trigger.
package pickroute

import (
	"context"
	"errors"
	"fmt"

	"github.com/Doppler617492/MagacinTracker-sub002/internal/api"
	"github.com/Doppler617492/MagacinTracker-sub002/internal/logging"
	"github.com/Doppler617492/MagacinTracker-sub002/internal/warehouse"
	"github.com/Doppler617492/MagacinTracker-sub002/internal/workflow"
)

// ErrBadSequence marks a route whose task sequence numbers are not strictly
// increasing. Such a route cannot be walked reliably and is rejected at load.
var ErrBadSequence = errors.New("pickroute: task sequences not strictly increasing")

// Backend is the slice of the REST client the session needs.
type Backend interface {
	PickRoute(ctx context.Context, documentID string) (*warehouse.PickRoute, error)
	GeneratePickRoute(ctx context.Context, documentID, algorithm string) (*warehouse.PickRoute, error)
}

// Session drives one pick route. The route itself never changes after Load;
// only the completed set and the cursor move.
type Session struct {
	route     *warehouse.PickRoute
	ctrl      *workflow.Controller[warehouse.PickTask]
	completed map[string]struct{}
	generated bool
}

// Load fetches the route for an outbound document. A 404 on the fetch is the
// normal "no route yet" case and triggers exactly one generation request
// with the given algorithm; any failure after that is terminal for the
// session and surfaced to the caller.
func Load(ctx context.Context, backend Backend, documentID, algorithm string) (*Session, error) {
	generated := false
	route, err := backend.PickRoute(ctx, documentID)
	if errors.Is(err, api.ErrNotFound) {
		logging.Workflow("no route for document %s, generating with %s", documentID, algorithm)
		route, err = backend.GeneratePickRoute(ctx, documentID, algorithm)
		generated = true
	}
	if err != nil {
		return nil, fmt.Errorf("loading pick route for %s: %w", documentID, err)
	}

	if err := validateSequences(route.Tasks); err != nil {
		return nil, fmt.Errorf("pick route for %s: %w", documentID, err)
	}

	ctrl, err := workflow.NewController(route.Tasks,
		func(t warehouse.PickTask) string { return t.ID },
		workflow.Policy{})
	if err != nil {
		return nil, fmt.Errorf("pick route for %s: %w", documentID, err)
	}

	logging.Workflow("route for document %s loaded: %d tasks, %.1fm", documentID, len(route.Tasks), route.TotalDistanceM)
	return &Session{
		route:     route,
		ctrl:      ctrl,
		completed: make(map[string]struct{}, len(route.Tasks)),
		generated: generated,
	}, nil
}

func validateSequences(tasks []warehouse.PickTask) error {
	for i := 1; i < len(tasks); i++ {
		if tasks[i].Sequence <= tasks[i-1].Sequence {
			return ErrBadSequence
		}
	}
	return nil
}

// Route returns the immutable route document.
func (s *Session) Route() *warehouse.PickRoute { return s.route }

// Generated reports whether the route came from a generation request rather
// than an existing one.
func (s *Session) Generated() bool { return s.generated }

// Tasks returns the route's tasks in walking order.
func (s *Session) Tasks() []warehouse.PickTask { return s.ctrl.Items() }

// Current returns the task under the cursor.
func (s *Session) Current() warehouse.PickTask { return s.ctrl.Current() }

// Index returns the cursor position.
func (s *Session) Index() int { return s.ctrl.Index() }

// Len returns the number of tasks.
func (s *Session) Len() int { return s.ctrl.Len() }

// CompleteTask marks the current task done and advances the cursor, unless
// it is the last task, in which case the cursor stays put. Completing an
// already completed task is a harmless no-op apart from the advance.
func (s *Session) CompleteTask() {
	task := s.ctrl.Current()
	s.completed[task.ID] = struct{}{}
	s.ctrl.Record(task.ID, task.Quantity)
	if !s.ctrl.AtLast() {
		s.ctrl.Next()
	}
}

// IsCompleted reports whether a task is in the completed set.
func (s *Session) IsCompleted(taskID string) bool {
	_, ok := s.completed[taskID]
	return ok
}

// CompletedCount returns the number of completed tasks.
func (s *Session) CompletedCount() int { return len(s.completed) }

// AllCompleted reports whether every task is done.
func (s *Session) AllCompleted() bool { return len(s.completed) == s.ctrl.Len() }

// Previous moves the cursor back one task, e.g. to re-check a pick.
func (s *Session) Previous() bool { return s.ctrl.Previous() }

// JumpTo moves the cursor to any task.
func (s *Session) JumpTo(index int) bool { return s.ctrl.JumpTo(index) }

// Progress returns the completed share as a percentage.
func (s *Session) Progress() float64 { return s.ctrl.Progress() }
