package app

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/Doppler617492/MagacinTracker-sub002/internal/logging"
)

// View composes the active page with the shared header and footer. A panic
// anywhere in a page renderer is caught and turned into a fallback error
// view instead of killing the program mid-shift.
func (m Model) View() (out string) {
	defer func() {
		if r := recover(); r != nil {
			logging.Session("render panic: %v", r)
			out = m.styles.Error.Render(fmt.Sprintf("Greška u prikazu: %v", r)) +
				"\n" + m.styles.Muted.Render("[1] pregled  [q] izlaz")
		}
	}()

	if !m.ready {
		return "Pokretanje..."
	}

	header := m.renderHeader()
	footer := m.renderFooter()

	var body string
	switch m.page {
	case pageMap:
		// The map page manages its own margins so mouse coordinates map
		// straight onto canvas cells.
		body = m.mapPage.view()
	case pageCount:
		body = m.styles.Content.Render(m.count.view())
	case pagePick:
		body = m.styles.Content.Render(m.pick.view())
	default:
		body = m.styles.Content.Render(m.dashboard.view())
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m Model) renderHeader() string {
	title := m.styles.Header.Render(" MagacinTracker ")
	pageBadge := m.styles.Badge.Render(m.page.title())
	return title + " " + pageBadge
}

func (m Model) renderFooter() string {
	if m.err != nil {
		return m.styles.Error.Render("Greška: " + m.err.Error())
	}
	if m.status != "" {
		return m.styles.Footer.Render(m.status)
	}
	return m.styles.Footer.Render("[1] pregled  [m] mapa  [q] izlaz")
}
