package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Doppler617492/MagacinTracker-sub002/internal/cyclecount"
	"github.com/Doppler617492/MagacinTracker-sub002/internal/mapview"
	"github.com/Doppler617492/MagacinTracker-sub002/internal/pickroute"
	"github.com/Doppler617492/MagacinTracker-sub002/internal/warehouse"
)

// Messages for tea updates. The two error kinds are structs rather than
// named error types so the type switch in Update can tell them apart.
type (
	snapshotMsg       *warehouse.MapSnapshot
	mapErrMsg         struct{ err error }
	statsMsg          *warehouse.DashboardStats
	countLoadedMsg    *cyclecount.Session
	countStartedMsg   struct{}
	countCompletedMsg float64
	pickLoadedMsg     *pickroute.Session
	errMsg            struct{ err error }
)

// waitForSnapshot blocks on the map session's update channel and re-arms
// itself after every delivery.
func waitForSnapshot(s *mapview.Session) tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-s.Updates()
		if !ok {
			return nil
		}
		return snapshotMsg(snap)
	}
}

// waitForMapError mirrors waitForSnapshot for the error channel.
func waitForMapError(s *mapview.Session) tea.Cmd {
	return func() tea.Msg {
		err, ok := <-s.Errors()
		if !ok {
			return nil
		}
		return mapErrMsg{err}
	}
}

func loadStats(backend statsBackend, warehouseID string) tea.Cmd {
	return func() tea.Msg {
		stats, err := backend.DashboardStats(context.Background(), warehouseID)
		if err != nil {
			return errMsg{err}
		}
		return statsMsg(stats)
	}
}

func loadCycleCount(backend cyclecount.Backend, id string) tea.Cmd {
	return func() tea.Msg {
		session, err := cyclecount.Load(context.Background(), backend, id)
		if err != nil {
			return errMsg{err}
		}
		return countLoadedMsg(session)
	}
}

func startCycleCount(session *cyclecount.Session) tea.Cmd {
	return func() tea.Msg {
		if err := session.Start(context.Background()); err != nil {
			return errMsg{err}
		}
		return countStartedMsg{}
	}
}

func completeCycleCount(session *cyclecount.Session) tea.Cmd {
	return func() tea.Msg {
		if err := session.Complete(context.Background()); err != nil {
			return errMsg{err}
		}
		accuracy, _ := session.Accuracy()
		return countCompletedMsg(accuracy)
	}
}

func loadPickRoute(backend pickroute.Backend, documentID, algorithm string) tea.Cmd {
	return func() tea.Msg {
		session, err := pickroute.Load(context.Background(), backend, documentID, algorithm)
		if err != nil {
			return errMsg{err}
		}
		return pickLoadedMsg(session)
	}
}
