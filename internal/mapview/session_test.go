package mapview

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/Doppler617492/MagacinTracker-sub002/internal/warehouse"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// scriptedFetch hands out canned responses and records the zones it was
// asked for.
type scriptedFetch struct {
	mu    sync.Mutex
	zones []string
	next  func() (*warehouse.MapSnapshot, error)
}

func (f *scriptedFetch) fetch(ctx context.Context, warehouseID, zone string) (*warehouse.MapSnapshot, error) {
	f.mu.Lock()
	f.zones = append(f.zones, zone)
	next := f.next
	f.mu.Unlock()
	return next()
}

func (f *scriptedFetch) setNext(next func() (*warehouse.MapSnapshot, error)) {
	f.mu.Lock()
	f.next = next
	f.mu.Unlock()
}

func (f *scriptedFetch) seenZones() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.zones...)
}

func waitUpdate(t *testing.T, s *Session) *warehouse.MapSnapshot {
	t.Helper()
	select {
	case snap := <-s.Updates():
		return snap
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for snapshot update")
		return nil
	}
}

func waitError(t *testing.T, s *Session) error {
	t.Helper()
	select {
	case err := <-s.Errors():
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for fetch error")
		return nil
	}
}

func TestSessionLoadsOnStart(t *testing.T) {
	want := &warehouse.MapSnapshot{WarehouseID: "1", Zones: []string{"A"}}
	f := &scriptedFetch{}
	f.setNext(func() (*warehouse.MapSnapshot, error) { return want, nil })

	s := NewSession(f.fetch, "1", time.Hour)
	s.Start(context.Background())
	defer s.Stop()

	if got := waitUpdate(t, s); got != want {
		t.Errorf("update = %+v, want the fetched snapshot", got)
	}
	if s.Snapshot() != want {
		t.Error("Snapshot() does not return the applied snapshot")
	}
}

func TestSessionStartTwiceIsNoop(t *testing.T) {
	f := &scriptedFetch{}
	f.setNext(func() (*warehouse.MapSnapshot, error) {
		return &warehouse.MapSnapshot{}, nil
	})

	s := NewSession(f.fetch, "1", time.Hour)
	s.Start(context.Background())
	s.Start(context.Background())
	waitUpdate(t, s)
	s.Stop()
	s.Stop()
}

func TestSessionSetZoneTriggersReload(t *testing.T) {
	f := &scriptedFetch{}
	f.setNext(func() (*warehouse.MapSnapshot, error) {
		return &warehouse.MapSnapshot{}, nil
	})

	s := NewSession(f.fetch, "1", time.Hour)
	s.Start(context.Background())
	defer s.Stop()
	waitUpdate(t, s)

	s.SetZone("A")
	waitUpdate(t, s)

	zones := f.seenZones()
	if len(zones) < 2 || zones[len(zones)-1] != "A" {
		t.Errorf("fetched zones = %v, want a reload scoped to A", zones)
	}
	if s.Zone() != "A" {
		t.Errorf("Zone() = %q", s.Zone())
	}
}

func TestSessionSetSameZoneDoesNotReload(t *testing.T) {
	f := &scriptedFetch{}
	f.setNext(func() (*warehouse.MapSnapshot, error) {
		return &warehouse.MapSnapshot{}, nil
	})

	s := NewSession(f.fetch, "1", time.Hour)
	s.Start(context.Background())
	defer s.Stop()
	waitUpdate(t, s)

	before := len(f.seenZones())
	s.SetZone("")
	time.Sleep(50 * time.Millisecond)
	if got := len(f.seenZones()); got != before {
		t.Errorf("fetch count went %d -> %d after a no-op zone change", before, got)
	}
}

func TestSessionFailureKeepsPriorSnapshot(t *testing.T) {
	good := &warehouse.MapSnapshot{WarehouseID: "1"}
	f := &scriptedFetch{}
	f.setNext(func() (*warehouse.MapSnapshot, error) { return good, nil })

	s := NewSession(f.fetch, "1", time.Hour)
	s.Start(context.Background())
	defer s.Stop()
	waitUpdate(t, s)

	f.setNext(func() (*warehouse.MapSnapshot, error) {
		return nil, errors.New("backend is syncing")
	})
	s.Refresh()

	if err := waitError(t, s); err == nil {
		t.Fatal("expected a fetch error")
	}
	if s.Snapshot() != good {
		t.Error("failed fetch must leave the prior snapshot in place")
	}
}

func TestSessionLastResponseWins(t *testing.T) {
	first := &warehouse.MapSnapshot{WarehouseID: "1", Zones: []string{"A"}}
	second := &warehouse.MapSnapshot{WarehouseID: "1", Zones: []string{"B"}}

	f := &scriptedFetch{}
	f.setNext(func() (*warehouse.MapSnapshot, error) { return first, nil })

	s := NewSession(f.fetch, "1", time.Hour)
	s.Start(context.Background())
	defer s.Stop()
	waitUpdate(t, s)

	f.setNext(func() (*warehouse.MapSnapshot, error) { return second, nil })
	s.Refresh()
	waitUpdate(t, s)

	if s.Snapshot() != second {
		t.Error("the most recently resolved response must be the visible snapshot")
	}
}

func TestSessionStopClosesDeliveryChannels(t *testing.T) {
	f := &scriptedFetch{}
	f.setNext(func() (*warehouse.MapSnapshot, error) {
		return &warehouse.MapSnapshot{WarehouseID: "1"}, nil
	})

	s := NewSession(f.fetch, "1", time.Hour)
	s.Start(context.Background())
	waitUpdate(t, s)

	// Receivers armed before Stop hold the old channels and must see them
	// close, so a lingering receiver from a torn-down view cannot consume
	// the first snapshot after a restart.
	updates := s.Updates()
	errs := s.Errors()
	s.Stop()

	if _, ok := <-updates; ok {
		t.Error("update channel delivered after Stop, want close")
	}
	if _, ok := <-errs; ok {
		t.Error("error channel delivered after Stop, want close")
	}

	s.Start(context.Background())
	defer s.Stop()
	if got := waitUpdate(t, s); got == nil {
		t.Fatal("no snapshot delivered after restart")
	}
}

func TestSessionStopWithInFlightFetch(t *testing.T) {
	release := make(chan struct{})
	f := &scriptedFetch{}
	f.setNext(func() (*warehouse.MapSnapshot, error) {
		<-release
		return &warehouse.MapSnapshot{}, nil
	})

	s := NewSession(f.fetch, "1", time.Hour)
	s.Start(context.Background())

	// Give the fetch goroutine a moment to block, then stop the session
	// while the request is still in flight. The response is dropped and the
	// goroutine exits; goleak verifies that in TestMain.
	time.Sleep(20 * time.Millisecond)
	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()
	close(release)

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Stop did not return with an in-flight fetch")
	}
}
