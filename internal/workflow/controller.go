// Package workflow implements the generic guided-workflow engine: an ordered
// list of work items, a cursor, and per-item recorded values. The cycle
// count and pick route sessions specialize it with different advance
// policies.
package workflow

import "errors"

// ErrNoItems is returned when a controller is built over an empty item list.
var ErrNoItems = errors.New("workflow: at least one item required")

// Recorded is the explicit completion entry for an item. An item is done
// exactly when a Recorded value exists for it; there is no separate
// completion flag to drift out of sync.
type Recorded struct {
	Quantity float64
}

// Policy selects how the controller treats forward navigation.
type Policy struct {
	// RequireRecordToAdvance makes Next a no-op while the current item has
	// no recorded value. Cycle counts set this; pick routes advance through
	// task completion instead and leave it unset.
	RequireRecordToAdvance bool
}

// Controller drives one guided workflow over items of type T. It is a pure
// in-memory state machine; persistence happens outside, on completion.
type Controller[T any] struct {
	items    []T
	key      func(T) string
	policy   Policy
	index    int
	recorded map[string]Recorded
}

// NewController builds a controller positioned on the first item. The item
// list must be non-empty; key extracts the stable identifier used for the
// recorded-values map.
func NewController[T any](items []T, key func(T) string, policy Policy) (*Controller[T], error) {
	if len(items) == 0 {
		return nil, ErrNoItems
	}
	return &Controller[T]{
		items:    items,
		key:      key,
		policy:   policy,
		recorded: make(map[string]Recorded, len(items)),
	}, nil
}

// Len returns the number of items.
func (c *Controller[T]) Len() int { return len(c.items) }

// Items returns the ordered items.
func (c *Controller[T]) Items() []T { return c.items }

// Index returns the current cursor position.
func (c *Controller[T]) Index() int { return c.index }

// Current returns the item under the cursor.
func (c *Controller[T]) Current() T { return c.items[c.index] }

// JumpTo moves the cursor to any valid index, regardless of completion
// state; used when the operator picks an item from the overview list. It
// reports whether the index was valid.
func (c *Controller[T]) JumpTo(index int) bool {
	if index < 0 || index >= len(c.items) {
		return false
	}
	c.index = index
	return true
}

// Next advances the cursor by one. It refuses to move past the last item,
// and under RequireRecordToAdvance it also refuses while the current item is
// unrecorded. Returns whether the cursor moved.
func (c *Controller[T]) Next() bool {
	if c.index >= len(c.items)-1 {
		return false
	}
	if c.policy.RequireRecordToAdvance && !c.IsRecorded(c.key(c.Current())) {
		return false
	}
	c.index++
	return true
}

// Previous moves the cursor back by one, reporting whether it moved.
func (c *Controller[T]) Previous() bool {
	if c.index <= 0 {
		return false
	}
	c.index--
	return true
}

// Record stores the actual value for an item. Re-recording overwrites.
func (c *Controller[T]) Record(key string, quantity float64) {
	c.recorded[key] = Recorded{Quantity: quantity}
}

// RecordedValue returns the entry for an item and whether one exists.
func (c *Controller[T]) RecordedValue(key string) (Recorded, bool) {
	r, ok := c.recorded[key]
	return r, ok
}

// IsRecorded reports whether an item has a recorded value.
func (c *Controller[T]) IsRecorded(key string) bool {
	_, ok := c.recorded[key]
	return ok
}

// RecordedCount returns how many items have recorded values.
func (c *Controller[T]) RecordedCount() int { return len(c.recorded) }

// AllRecorded reports whether every item has a recorded value.
func (c *Controller[T]) AllRecorded() bool { return len(c.recorded) == len(c.items) }

// AtLast reports whether the cursor sits on the final item.
func (c *Controller[T]) AtLast() bool { return c.index == len(c.items)-1 }

// Progress returns the share of recorded items as a percentage in [0,100].
func (c *Controller[T]) Progress() float64 {
	return float64(len(c.recorded)) / float64(len(c.items)) * 100
}
