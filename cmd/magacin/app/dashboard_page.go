package app

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/Doppler617492/MagacinTracker-sub002/cmd/magacin/ui"
	"github.com/Doppler617492/MagacinTracker-sub002/internal/warehouse"
)

type dashboardPage struct {
	styles ui.Styles
	stats  *warehouse.DashboardStats
}

func newDashboardPage(styles ui.Styles) dashboardPage {
	return dashboardPage{styles: styles}
}

func (p *dashboardPage) onStats(stats *warehouse.DashboardStats) {
	p.stats = stats
}

func (p *dashboardPage) view() string {
	if p.stats == nil {
		return p.styles.Muted.Render("Učitavanje pregleda...")
	}

	s := p.stats
	occupancy := ui.NewSimpleTable("Popunjenost lokacija", []string{"Stanje", "Broj"})
	occupancy.AlignRight(1)
	occupancy.AddRow("slobodno", strconv.Itoa(s.FreeCount))
	occupancy.AddRow("delimično", strconv.Itoa(s.PartialCount))
	occupancy.AddRow("puno", strconv.Itoa(s.FullCount))
	occupancy.AddRow("ukupno", strconv.Itoa(s.TotalLocations))

	work := ui.NewSimpleTable("Aktivnosti", []string{"", "Broj"})
	work.AlignRight(1)
	work.AddRow("aktivni popisi", strconv.Itoa(s.ActiveCounts))
	work.AddRow("otvoreni picking dokumenti", strconv.Itoa(s.OpenPickDocs))

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		p.styles.Card.Render(occupancy.View(p.styles)),
		" ",
		p.styles.Card.Render(work.View(p.styles)),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		cards,
		p.styles.Muted.Render("[m] mapa  [1] pregled  [q] izlaz"),
	)
}
