package app

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Doppler617492/MagacinTracker-sub002/cmd/magacin/ui"
	"github.com/Doppler617492/MagacinTracker-sub002/internal/cyclecount"
	"github.com/Doppler617492/MagacinTracker-sub002/internal/workflow"
)

type countMode int

const (
	countLoading countMode = iota
	countEntry
	countOverview
	countConfirm
	countDone
)

type countPage struct {
	styles  ui.Styles
	countID string

	session *cyclecount.Session
	mode    countMode

	qty      textinput.Model
	reason   textinput.Model
	progress progress.Model
	spin     spinner.Model

	overviewIdx int
	accuracy    float64
	hint        string

	width  int
	height int
}

func newCountPage(styles ui.Styles, countID string) countPage {
	qty := textinput.New()
	qty.Placeholder = "izbrojana količina"
	qty.CharLimit = 12
	qty.Width = 20
	qty.Focus()

	reason := textinput.New()
	reason.Placeholder = "razlog odstupanja"
	reason.CharLimit = 120
	reason.Width = 48

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	return countPage{
		styles:   styles,
		countID:  countID,
		qty:      qty,
		reason:   reason,
		progress: progress.New(progress.WithDefaultGradient()),
		spin:     sp,
		mode:     countLoading,
	}
}

func (p *countPage) enter(backend cyclecount.Backend) []tea.Cmd {
	if p.countID == "" {
		p.hint = "Nije zadat popis; pokrenite sa: magacin count <id>"
		return nil
	}
	if p.session != nil {
		return nil
	}
	return []tea.Cmd{loadCycleCount(backend, p.countID), p.spin.Tick}
}

func (p *countPage) setSize(width, height int) {
	p.width = width
	p.height = height
	w := width - 2*ui.ContentIndent
	if w > 60 {
		w = 60
	}
	if w > 0 {
		p.progress.Width = w
	}
}

// onLoaded installs the session and syncs the inputs to the first item.
func (p *countPage) onLoaded(session *cyclecount.Session) {
	p.session = session
	p.mode = countEntry
	p.syncInputs()
}

func (p *countPage) onCompleted(accuracy float64) {
	p.accuracy = accuracy
	p.mode = countDone
}

// syncInputs loads the current item's recorded state into the text inputs.
func (p *countPage) syncInputs() {
	item := p.session.Current()
	p.qty.SetValue("")
	if v, ok := p.session.CountedQuantity(item.ID); ok {
		p.qty.SetValue(strconv.FormatFloat(v, 'f', -1, 64))
	}
	p.reason.SetValue(p.session.Reason(item.ID))
	p.qty.Focus()
	p.reason.Blur()
	p.hint = ""
}

// liveVariance evaluates the quantity currently being typed, before it is
// recorded, so the operator sees the deviation as they edit.
func (p *countPage) liveVariance() (workflow.VarianceResult, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(p.qty.Value()), 64)
	if err != nil {
		return workflow.VarianceResult{}, false
	}
	return workflow.Evaluate(p.session.Current().ExpectedQuantity, v), true
}

func (p *countPage) recordCurrent() bool {
	v, err := strconv.ParseFloat(strings.TrimSpace(p.qty.Value()), 64)
	if err != nil {
		p.hint = "Unesite broj"
		return false
	}
	p.session.RecordCount(v)
	p.session.SetReason(strings.TrimSpace(p.reason.Value()))
	p.hint = ""
	return true
}

func (p *countPage) update(msg tea.Msg) []tea.Cmd {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if p.mode == countLoading {
			var cmd tea.Cmd
			p.spin, cmd = p.spin.Update(msg)
			return []tea.Cmd{cmd}
		}
	case tea.KeyMsg:
		return p.handleKey(msg)
	}
	return nil
}

func (p *countPage) handleKey(msg tea.KeyMsg) []tea.Cmd {
	if p.session == nil {
		return nil
	}

	switch p.mode {
	case countEntry:
		return p.handleEntryKey(msg)
	case countOverview:
		return p.handleOverviewKey(msg)
	case countConfirm:
		switch msg.String() {
		case "y", "d":
			return []tea.Cmd{completeCycleCount(p.session)}
		case "n", "esc":
			p.mode = countEntry
		}
	}
	return nil
}

func (p *countPage) handleEntryKey(msg tea.KeyMsg) []tea.Cmd {
	switch msg.String() {
	case "enter":
		if p.recordCurrent() {
			if v, ok := p.session.CurrentVariance(); ok && v.RequiresReason && p.session.Reason(p.session.Current().ID) == "" {
				p.hint = fmt.Sprintf("Odstupanje %.1f%% zahteva razlog", v.VariancePercent)
				p.qty.Blur()
				p.reason.Focus()
				return nil
			}
			if !p.session.Next() && p.session.AllRecorded() {
				p.hint = "Sve stavke izbrojane; [ctrl+d] za završetak"
				return nil
			}
			p.syncInputs()
		}
		return nil
	case "tab":
		if p.qty.Focused() {
			p.qty.Blur()
			p.reason.Focus()
		} else {
			p.reason.Blur()
			p.qty.Focus()
		}
		return nil
	case "right":
		if p.session.Next() {
			p.syncInputs()
		} else if !p.session.IsRecorded(p.session.Current().ID) {
			p.hint = "Prvo unesite količinu"
		}
		return nil
	case "left":
		if p.session.Previous() {
			p.syncInputs()
		}
		return nil
	case "ctrl+o":
		p.mode = countOverview
		p.overviewIdx = p.session.Index()
		return nil
	case "ctrl+d":
		return p.requestComplete()
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	if p.qty.Focused() {
		p.qty, cmd = p.qty.Update(msg)
		cmds = append(cmds, cmd)
	} else if p.reason.Focused() {
		p.reason, cmd = p.reason.Update(msg)
		cmds = append(cmds, cmd)
	}
	return cmds
}

func (p *countPage) handleOverviewKey(msg tea.KeyMsg) []tea.Cmd {
	switch msg.String() {
	case "up", "k":
		if p.overviewIdx > 0 {
			p.overviewIdx--
		}
	case "down", "j":
		if p.overviewIdx < p.session.Len()-1 {
			p.overviewIdx++
		}
	case "enter":
		p.session.JumpTo(p.overviewIdx)
		p.mode = countEntry
		p.syncInputs()
	case "c":
		return p.requestComplete()
	case "esc", "ctrl+o":
		p.mode = countEntry
	}
	return nil
}

// requestComplete submits directly when everything is counted; otherwise it
// asks for confirmation because unrecorded items default to their expected
// quantities.
func (p *countPage) requestComplete() []tea.Cmd {
	if p.session.AllRecorded() {
		return []tea.Cmd{completeCycleCount(p.session)}
	}
	p.mode = countConfirm
	return nil
}

func (p *countPage) view() string {
	if p.hint != "" && p.session == nil {
		return p.styles.Warning.Render(p.hint)
	}

	switch p.mode {
	case countLoading:
		return p.spin.View() + " " + p.styles.Muted.Render("Učitavanje popisa...")
	case countOverview:
		return p.viewOverview()
	case countConfirm:
		remaining := p.session.Len() - p.session.RecordedCount()
		return lipgloss.JoinVertical(lipgloss.Left,
			p.styles.Warning.Render(fmt.Sprintf("%d stavki nije izbrojano.", remaining)),
			p.styles.Body.Render("Za neizbrojane stavke biće upisana očekivana količina."),
			p.styles.Bold.Render("Završiti popis? [y/n]"),
		)
	case countDone:
		return lipgloss.JoinVertical(lipgloss.Left,
			p.styles.Success.Render("Popis završen."),
			p.styles.Bold.Render(fmt.Sprintf("Tačnost: %.1f%%", p.accuracy)),
		)
	default:
		return p.viewEntry()
	}
}

func (p *countPage) viewEntry() string {
	item := p.session.Current()

	header := p.styles.Bold.Render(fmt.Sprintf("Stavka %d/%d", p.session.Index()+1, p.session.Len()))
	article := fmt.Sprintf("%s  %s", p.styles.Bold.Render(item.ArticleCode), item.ArticleName)
	location := p.styles.Muted.Render("lokacija: " + item.LocationCode)
	expected := fmt.Sprintf("očekivano: %s", strconv.FormatFloat(item.ExpectedQuantity, 'f', -1, 64))

	varianceLine := p.styles.Muted.Render("odstupanje: -")
	if v, ok := p.liveVariance(); ok {
		line := fmt.Sprintf("odstupanje: %+.1f (%+.1f%%)", v.Variance, v.VariancePercent)
		if v.RequiresReason {
			varianceLine = p.styles.Warning.Render(line + "  (razlog obavezan)")
		} else {
			varianceLine = p.styles.Body.Render(line)
		}
	}

	rows := []string{
		header,
		article,
		location,
		expected,
		"",
		p.qty.View(),
		varianceLine,
	}

	if v, ok := p.liveVariance(); ok && v.RequiresReason || p.reason.Value() != "" || p.reason.Focused() {
		rows = append(rows, p.reason.View())
	}

	rows = append(rows,
		"",
		p.progress.ViewAs(p.session.Progress()/100),
		p.styles.Muted.Render("[enter] upiši  [←/→] stavke  [ctrl+o] pregled  [ctrl+d] završi"),
	)

	if p.hint != "" {
		rows = append(rows, p.styles.Warning.Render(p.hint))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (p *countPage) viewOverview() string {
	table := ui.NewSimpleTable(
		fmt.Sprintf("Popis %s", p.session.ID()),
		[]string{"", "Artikal", "Lokacija", "Očekivano", "Izbrojano"},
	)
	table.AlignRight(3, 4)

	for i, item := range p.session.Items() {
		marker := " "
		if i == p.overviewIdx {
			marker = ">"
		}
		counted := "-"
		if v, ok := p.session.CountedQuantity(item.ID); ok {
			counted = strconv.FormatFloat(v, 'f', -1, 64)
		}
		table.AddRow(marker, item.ArticleCode, item.LocationCode,
			strconv.FormatFloat(item.ExpectedQuantity, 'f', -1, 64), counted)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		table.View(p.styles),
		p.styles.Muted.Render("[↑/↓] izbor  [enter] idi na stavku  [c] završi  [esc] nazad"),
	)
}
