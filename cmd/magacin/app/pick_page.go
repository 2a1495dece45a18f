package app

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Doppler617492/MagacinTracker-sub002/cmd/magacin/ui"
	"github.com/Doppler617492/MagacinTracker-sub002/internal/pickroute"
)

type pickMode int

const (
	pickLoading pickMode = iota
	pickWalking
	pickDone
)

type pickPage struct {
	styles     ui.Styles
	documentID string

	session *pickroute.Session
	mode    pickMode

	tasks table.Model
	spin  spinner.Model
	hint  string

	width  int
	height int
}

func newPickPage(styles ui.Styles, documentID string) pickPage {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Lokacija", Width: 14},
		{Title: "Artikal", Width: 12},
		{Title: "Naziv", Width: 28},
		{Title: "Kol.", Width: 8},
		{Title: "", Width: 4},
	}
	tbl := table.New(
		table.WithColumns(columns),
		table.WithFocused(false),
		table.WithHeight(12),
	)

	return pickPage{
		styles:     styles,
		documentID: documentID,
		spin:       sp,
		tasks:      tbl,
		mode:       pickLoading,
	}
}

func (p *pickPage) enter(backend pickroute.Backend, algorithm string) []tea.Cmd {
	if p.documentID == "" {
		p.hint = "Nije zadat dokument; pokrenite sa: magacin pick <document-id>"
		return nil
	}
	if p.session != nil {
		return nil
	}
	return []tea.Cmd{loadPickRoute(backend, p.documentID, algorithm), p.spin.Tick}
}

func (p *pickPage) setSize(width, height int) {
	p.width = width
	p.height = height
	rows := height - 12
	if rows < 4 {
		rows = 4
	}
	p.tasks.SetHeight(rows)
}

func (p *pickPage) onLoaded(session *pickroute.Session) {
	p.session = session
	p.mode = pickWalking
	p.syncTable()
}

// syncTable rebuilds the task rows and keeps the table cursor on the
// session's current task.
func (p *pickPage) syncTable() {
	rows := make([]table.Row, 0, p.session.Len())
	for _, t := range p.session.Tasks() {
		mark := ""
		if p.session.IsCompleted(t.ID) {
			mark = "✓"
		}
		rows = append(rows, table.Row{
			strconv.Itoa(t.Sequence),
			t.LocationCode,
			t.ArticleCode,
			t.ArticleName,
			strconv.FormatFloat(t.Quantity, 'f', -1, 64),
			mark,
		})
	}
	p.tasks.SetRows(rows)
	p.tasks.SetCursor(p.session.Index())
}

func (p *pickPage) update(msg tea.Msg) []tea.Cmd {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if p.mode == pickLoading {
			var cmd tea.Cmd
			p.spin, cmd = p.spin.Update(msg)
			return []tea.Cmd{cmd}
		}
	case tea.KeyMsg:
		if p.session == nil || p.mode != pickWalking {
			return nil
		}
		switch msg.String() {
		case " ":
			p.session.CompleteTask()
			p.syncTable()
			if p.session.AllCompleted() {
				p.mode = pickDone
			}
		case "left":
			if p.session.Previous() {
				p.syncTable()
			}
		case "right":
			// Forward skip without completing, e.g. a blocked aisle.
			if p.session.JumpTo(p.session.Index() + 1) {
				p.syncTable()
			}
		}
	}
	return nil
}

func (p *pickPage) view() string {
	if p.hint != "" && p.session == nil {
		return p.styles.Warning.Render(p.hint)
	}

	switch p.mode {
	case pickLoading:
		return p.spin.View() + " " + p.styles.Muted.Render("Učitavanje rute...")
	case pickDone:
		route := p.session.Route()
		return lipgloss.JoinVertical(lipgloss.Left,
			p.styles.Success.Render("Ruta završena."),
			p.styles.Body.Render(fmt.Sprintf("%d stavki pokupljeno, pređeno ~%.0f m", p.session.Len(), route.TotalDistanceM)),
		)
	default:
		return p.viewWalking()
	}
}

func (p *pickPage) viewWalking() string {
	route := p.session.Route()
	current := p.session.Current()

	source := "postojeća ruta"
	if p.session.Generated() {
		source = "generisana (" + route.Algorithm + ")"
	}
	header := lipgloss.JoinHorizontal(lipgloss.Left,
		p.styles.Bold.Render("Dokument "+route.DocumentID),
		p.styles.Muted.Render(fmt.Sprintf("  %s  ~%.0f m, ~%d s", source, route.TotalDistanceM, route.EstimatedSeconds)),
	)

	currentLine := p.styles.Info.Render(fmt.Sprintf(
		"Sledeće: %s  %s x%s  (%s)",
		current.LocationCode, current.ArticleCode,
		strconv.FormatFloat(current.Quantity, 'f', -1, 64),
		current.LocationPath,
	))

	progress := p.styles.Muted.Render(fmt.Sprintf(
		"%d/%d pokupljeno", p.session.CompletedCount(), p.session.Len()))

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		currentLine,
		p.tasks.View(),
		progress,
		p.styles.Muted.Render("[space] pokupljeno  [←] nazad  [→] preskoči"),
	)
}
