package mapview

import (
	"context"
	"sync"
	"time"

	"github.com/Doppler617492/MagacinTracker-sub002/internal/logging"
	"github.com/Doppler617492/MagacinTracker-sub002/internal/warehouse"
)

// DefaultPollInterval is how often the session refreshes its snapshot when
// nothing else triggers a reload.
const DefaultPollInterval = 30 * time.Second

// FetchFunc loads the map snapshot for a warehouse, optionally scoped to one
// zone (empty string means all zones).
type FetchFunc func(ctx context.Context, warehouseID, zone string) (*warehouse.MapSnapshot, error)

type fetchResult struct {
	seq  uint64
	snap *warehouse.MapSnapshot
	err  error
}

// Session owns the map snapshot, the poll schedule and the zone filter. Its
// lifecycle is explicit: the owning view calls Start when it becomes active
// and Stop when it is torn down; no UI framework hook is involved.
//
// Overlapping fetches are possible (a poll tick can race a zone change) and
// the last response to arrive wins regardless of which request was issued
// first. The session tags requests with sequence numbers so an out-of-order
// apply is at least visible in the logs, but it deliberately does not fence:
// discarding stale responses would change the observed reload behavior.
type Session struct {
	fetch       FetchFunc
	warehouseID string
	interval    time.Duration

	mu       sync.Mutex
	zone     string
	snapshot *warehouse.MapSnapshot
	running  bool
	seq      uint64
	applied  uint64

	triggers chan struct{}
	stop     chan struct{}
	done     chan struct{}
	updates  chan *warehouse.MapSnapshot
	errs     chan error
}

// NewSession creates a stopped session. interval <= 0 falls back to
// DefaultPollInterval.
func NewSession(fetch FetchFunc, warehouseID string, interval time.Duration) *Session {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Session{
		fetch:       fetch,
		warehouseID: warehouseID,
		interval:    interval,
		triggers:    make(chan struct{}, 1),
		updates:     make(chan *warehouse.MapSnapshot, 1),
		errs:        make(chan error, 1),
	}
}

// Start launches the poll loop and requests an immediate first load.
// Starting a running session is a no-op.
func (s *Session) Start(ctx context.Context) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	s.mu.Unlock()

	go s.loop(ctx)
	s.requestFetch()
}

// Stop cancels the poll schedule and waits for the loop to exit. In-flight
// requests are not canceled; their responses are simply never applied.
//
// The update and error channels are closed and replaced so that receivers
// armed before Stop wake up and terminate instead of consuming deliveries
// meant for a later restart.
func (s *Session) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	stop, done := s.stop, s.done
	s.mu.Unlock()

	close(stop)
	<-done

	s.mu.Lock()
	select {
	case <-s.updates:
	default:
	}
	select {
	case <-s.errs:
	default:
	}
	close(s.updates)
	close(s.errs)
	s.updates = make(chan *warehouse.MapSnapshot, 1)
	s.errs = make(chan error, 1)
	s.mu.Unlock()
}

// SetZone changes the zone filter and triggers a reload.
func (s *Session) SetZone(zone string) {
	s.mu.Lock()
	changed := s.zone != zone
	s.zone = zone
	s.mu.Unlock()
	if changed {
		s.requestFetch()
	}
}

// Zone returns the current zone filter.
func (s *Session) Zone() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.zone
}

// Refresh triggers a reload outside the poll schedule.
func (s *Session) Refresh() {
	s.requestFetch()
}

// Snapshot returns the most recently applied snapshot, nil before the first
// successful load.
func (s *Session) Snapshot() *warehouse.MapSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot
}

// Updates delivers applied snapshots. The channel holds the latest value
// only; a slow consumer sees the freshest snapshot, not every intermediate
// one. Stop closes the returned channel; receivers must treat close as
// terminal and call Updates again after a restart.
func (s *Session) Updates() <-chan *warehouse.MapSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updates
}

// Errors delivers fetch failures. The prior snapshot stays in place when a
// fetch fails; nothing is retried. Stop closes the returned channel, like
// Updates.
func (s *Session) Errors() <-chan error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errs
}

func (s *Session) requestFetch() {
	select {
	case s.triggers <- struct{}{}:
	default:
	}
}

func (s *Session) loop(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	results := make(chan fetchResult)

	for {
		select {
		case <-s.stop:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.spawnFetch(ctx, results)
		case <-s.triggers:
			s.spawnFetch(ctx, results)
		case r := <-results:
			s.apply(r)
		}
	}
}

func (s *Session) spawnFetch(ctx context.Context, results chan<- fetchResult) {
	s.mu.Lock()
	s.seq++
	seq := s.seq
	zone := s.zone
	s.mu.Unlock()

	stop := s.stop
	go func() {
		snap, err := s.fetch(ctx, s.warehouseID, zone)
		select {
		case results <- fetchResult{seq: seq, snap: snap, err: err}:
		case <-stop:
		}
	}()
}

func (s *Session) apply(r fetchResult) {
	if r.err != nil {
		logging.MapError("snapshot fetch %d failed: %v", r.seq, r.err)
		select {
		case s.errs <- r.err:
		default:
		}
		return
	}

	s.mu.Lock()
	if r.seq < s.applied {
		// Last response wins, even when it answers an older request.
		logging.MapWarn("snapshot %d applied after %d; showing older data", r.seq, s.applied)
	} else {
		s.applied = r.seq
	}
	s.snapshot = r.snap
	s.mu.Unlock()

	select {
	case s.updates <- r.snap:
	default:
		select {
		case <-s.updates:
		default:
		}
		s.updates <- r.snap
	}
}
