package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Doppler617492/MagacinTracker-sub002/internal/logging"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.Close()
			return m, tea.Quit
		case "q":
			// q quits everywhere except inside a text input.
			if !m.typing() {
				m.Close()
				return m, tea.Quit
			}
		case "1":
			if !m.typing() {
				cmds = append(cmds, m.switchPage(pageDashboard)...)
				return m, tea.Batch(cmds...)
			}
		case "m":
			if !m.typing() {
				cmds = append(cmds, m.switchPage(pageMap)...)
				return m, tea.Batch(cmds...)
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.mapPage.setSize(msg.Width, msg.Height)
		m.count.setSize(msg.Width, msg.Height)
		m.pick.setSize(msg.Width, msg.Height)
		return m, nil

	case statsMsg:
		m.dashboard.onStats(msg)
		return m, nil

	case countLoadedMsg:
		m.count.onLoaded(msg)
		// A scheduled document moves to in_progress as soon as the operator
		// opens it.
		return m, startCycleCount(msg)

	case countStartedMsg:
		m.status = "Popis u toku"
		return m, nil

	case countCompletedMsg:
		m.count.onCompleted(float64(msg))
		m.status = ""
		return m, nil

	case pickLoadedMsg:
		m.pick.onLoaded(msg)
		return m, nil

	case errMsg:
		m.err = msg.err
		logging.Session("page error: %v", msg.err)
		return m, nil

	case mapErrMsg:
		m.err = msg.err
		cmds = append(cmds, m.mapPage.update(msg)...)
		return m, tea.Batch(cmds...)

	case snapshotMsg:
		m.err = nil
		cmds = append(cmds, m.mapPage.update(msg)...)
		return m, tea.Batch(cmds...)
	}

	// Route everything else to the active page.
	switch m.page {
	case pageMap:
		cmds = append(cmds, m.mapPage.update(msg)...)
	case pageCount:
		cmds = append(cmds, m.count.update(msg)...)
	case pagePick:
		cmds = append(cmds, m.pick.update(msg)...)
	}
	return m, tea.Batch(cmds...)
}

// typing reports whether a text input currently owns the keyboard, so
// global single-letter shortcuts stay out of the way.
func (m Model) typing() bool {
	if m.page != pageCount {
		return false
	}
	return m.count.qty.Focused() || m.count.reason.Focused()
}
