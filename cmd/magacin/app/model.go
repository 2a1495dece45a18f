// Package app implements the interactive terminal client: a dashboard, the
// warehouse map, and the two guided floor workflows, all driven by one
// bubbletea model.
package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Doppler617492/MagacinTracker-sub002/cmd/magacin/ui"
	"github.com/Doppler617492/MagacinTracker-sub002/internal/api"
	"github.com/Doppler617492/MagacinTracker-sub002/internal/config"
	"github.com/Doppler617492/MagacinTracker-sub002/internal/logging"
	"github.com/Doppler617492/MagacinTracker-sub002/internal/warehouse"
)

// statsBackend is the slice of the REST client the dashboard needs.
type statsBackend interface {
	DashboardStats(ctx context.Context, warehouseID string) (*warehouse.DashboardStats, error)
}

type page int

const (
	pageDashboard page = iota
	pageMap
	pageCount
	pagePick
)

func (p page) title() string {
	switch p {
	case pageMap:
		return "Mapa magacina"
	case pageCount:
		return "Popis"
	case pagePick:
		return "Picking"
	default:
		return "Pregled"
	}
}

// Options selects what the client opens on and which documents it works on.
type Options struct {
	StartPage  string // "dashboard", "map", "count", "pick"
	CountID    string
	DocumentID string
}

// Model is the root bubbletea model. Each page keeps its own state struct;
// the root routes messages and composes the final view.
type Model struct {
	cfg    config.Config
	styles ui.Styles
	client *api.Client

	page   page
	width  int
	height int
	ready  bool

	status string
	err    error

	dashboard dashboardPage
	mapPage   mapPage
	count     countPage
	pick      pickPage
}

// New builds the root model. The map session is created here but only
// started when the map page becomes active.
func New(cfg config.Config, client *api.Client, opts Options) Model {
	styles := ui.DefaultStyles()

	m := Model{
		cfg:       cfg,
		styles:    styles,
		client:    client,
		dashboard: newDashboardPage(styles),
		mapPage:   newMapPage(cfg, client, styles),
		count:     newCountPage(styles, opts.CountID),
		pick:      newPickPage(styles, opts.DocumentID),
	}

	switch opts.StartPage {
	case "map":
		m.page = pageMap
	case "count":
		m.page = pageCount
	case "pick":
		m.page = pagePick
	default:
		m.page = pageDashboard
	}
	return m
}

// Init starts the workloads of the opening page and enables mouse tracking
// for map hover.
func (m Model) Init() tea.Cmd {
	logging.Session("client opened on %s page", m.page.title())
	cmds := []tea.Cmd{tea.EnableMouseCellMotion}
	cmds = append(cmds, m.enterPage(m.page)...)
	return tea.Batch(cmds...)
}

// enterPage returns the commands that bring a page to life. Switching to
// the map page starts the poll session; leaving it stops the session so the
// timer does not tick for an invisible page.
func (m *Model) enterPage(p page) []tea.Cmd {
	switch p {
	case pageDashboard:
		return []tea.Cmd{loadStats(m.client, m.cfg.Warehouse.ID)}
	case pageMap:
		return m.mapPage.enter()
	case pageCount:
		return m.count.enter(m.client)
	case pagePick:
		return m.pick.enter(m.client, m.cfg.PickRoute.Algorithm)
	}
	return nil
}

func (m *Model) leavePage(p page) {
	if p == pageMap {
		m.mapPage.leave()
	}
}

// switchPage moves between pages, handling session lifecycles.
func (m *Model) switchPage(p page) []tea.Cmd {
	if p == m.page {
		return nil
	}
	m.leavePage(m.page)
	m.page = p
	m.err = nil
	m.status = ""
	logging.Session("switched to %s page", p.title())
	return m.enterPage(p)
}

// Close tears down background work; called when the program exits.
func (m *Model) Close() {
	m.mapPage.leave()
	logging.Session("client closed")
}
