package app

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Doppler617492/MagacinTracker-sub002/cmd/magacin/ui"
	"github.com/Doppler617492/MagacinTracker-sub002/internal/api"
	"github.com/Doppler617492/MagacinTracker-sub002/internal/config"
	"github.com/Doppler617492/MagacinTracker-sub002/internal/mapview"
	"github.com/Doppler617492/MagacinTracker-sub002/internal/warehouse"
)

// mapHeaderRows is the number of terminal rows above the canvas: the app
// header, the map header line and the blank line under it. Mouse coordinates
// are translated by this much before hit testing, so the map page renders
// without horizontal padding to keep the x axis aligned.
const mapHeaderRows = 3

type mapPage struct {
	styles  ui.Styles
	session *mapview.Session

	width  int
	height int

	hover   warehouse.Location
	hovered bool

	zoneIdx  int // 0 means all zones, 1..n index into snapshot zones
	debounce *ui.Debouncer
}

func newMapPage(cfg config.Config, client *api.Client, styles ui.Styles) mapPage {
	session := mapview.NewSession(client.WarehouseMap, cfg.Warehouse.ID, cfg.GetPollInterval())
	if cfg.Warehouse.Zone != "" {
		session.SetZone(cfg.Warehouse.Zone)
	}
	return mapPage{
		styles:   styles,
		session:  session,
		debounce: ui.NewDebouncer(ui.DefaultFilterDuration),
	}
}

// enter starts the poll session and arms the channel listeners. Start and
// Stop are idempotent on the session side, which matters because bubbletea
// discards model mutations made during Init.
func (p *mapPage) enter() []tea.Cmd {
	p.session.Start(context.Background())
	return []tea.Cmd{waitForSnapshot(p.session), waitForMapError(p.session)}
}

func (p *mapPage) leave() {
	p.session.Stop()
	p.debounce.Cancel()
}

func (p *mapPage) setSize(width, height int) {
	p.width = width
	p.height = height
}

func (p *mapPage) canvasSize() (int, int) {
	layout := ui.NewLayoutConfig(p.width, p.height)
	canvasW, _ := layout.MapPaneWidths()
	canvasH := ui.MapCanvasHeight(p.height)
	if canvasW < 1 {
		canvasW = 1
	}
	return canvasW, canvasH
}

func (p *mapPage) transform() (mapview.Transform, bool) {
	snap := p.session.Snapshot()
	if snap == nil || len(snap.Locations) == 0 {
		return mapview.Transform{}, false
	}
	w, h := p.canvasSize()
	tr, err := mapview.FitLocations(snap.Locations, float64(w), float64(h), ui.MapCanvasPadding)
	if err != nil {
		return mapview.Transform{}, false
	}
	return tr, true
}

// cycleZone advances the zone filter: all -> each zone -> all. The reload is
// debounced so holding the key fires one fetch, not one per press.
func (p *mapPage) cycleZone() {
	snap := p.session.Snapshot()
	if snap == nil || len(snap.Zones) == 0 {
		return
	}
	p.zoneIdx = (p.zoneIdx + 1) % (len(snap.Zones) + 1)
	zone := ""
	if p.zoneIdx > 0 {
		zone = snap.Zones[p.zoneIdx-1]
	}
	p.debounce.Debounce(func() { p.session.SetZone(zone) })
}

func (p *mapPage) update(msg tea.Msg) []tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "z":
			p.cycleZone()
		case "r":
			p.session.Refresh()
		}

	case tea.MouseMsg:
		tr, ok := p.transform()
		if !ok {
			p.hovered = false
			return nil
		}
		loc, hit := mapview.HitTest(p.session.Snapshot(), tr, msg.X, msg.Y-mapHeaderRows)
		p.hover, p.hovered = loc, hit

	case snapshotMsg:
		// Hover may point at a location that no longer exists after a
		// reload; drop it rather than show stale detail.
		p.hovered = false
		return []tea.Cmd{waitForSnapshot(p.session)}

	case mapErrMsg:
		return []tea.Cmd{waitForMapError(p.session)}
	}
	return nil
}

func (p *mapPage) view() string {
	snap := p.session.Snapshot()
	if snap == nil {
		return p.styles.Muted.Render("Učitavanje mape...")
	}

	var sb strings.Builder
	sb.WriteString(p.renderMapHeader(snap))
	sb.WriteString("\n")

	canvasView := p.renderCanvas(snap)
	layout := ui.NewLayoutConfig(p.width, p.height)
	if _, detailW := layout.MapPaneWidths(); detailW > 0 {
		detail := p.renderDetail(detailW)
		canvasView = lipgloss.JoinHorizontal(lipgloss.Top, canvasView, detail)
	}
	sb.WriteString(canvasView)
	sb.WriteString("\n")
	sb.WriteString(p.renderLegend())
	return sb.String()
}

func (p *mapPage) renderMapHeader(snap *warehouse.MapSnapshot) string {
	zone := p.session.Zone()
	if zone == "" {
		zone = "sve zone"
	}
	name := snap.WarehouseName
	if name == "" {
		name = snap.WarehouseID
	}
	left := p.styles.Bold.Render(name)
	right := p.styles.Muted.Render(fmt.Sprintf("zona: %s  [z] filter  [r] osveži", zone))
	return left + "  " + right + "\n"
}

func (p *mapPage) renderCanvas(snap *warehouse.MapSnapshot) string {
	w, h := p.canvasSize()
	renderer := mapview.Renderer{Width: w, Height: h, Padding: ui.MapCanvasPadding}

	tr, ok := p.transform()
	if !ok {
		return p.styles.Muted.Render("Nema lokacija za prikaz")
	}

	var hoverID int64
	if p.hovered {
		hoverID = p.hover.ID
	}
	canvas := renderer.Render(snap, tr, hoverID)

	var sb strings.Builder
	for y := 0; y < canvas.Height; y++ {
		for _, cell := range canvas.Row(y) {
			sb.WriteString(p.renderCell(cell))
		}
		if y < canvas.Height-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func (p *mapPage) renderCell(cell mapview.Cell) string {
	switch cell.Kind {
	case mapview.CellEmpty:
		return " "
	case mapview.CellGrid:
		return p.styles.MapGrid.Render(string(cell.Rune))
	case mapview.CellHoverBorder:
		return p.styles.MapHover.Render(string(cell.Rune))
	case mapview.CellLabel:
		return p.styles.MapLabel.Render(string(cell.Rune))
	default:
		return p.styles.MapCellStyle(cell.Level).Render(string(cell.Rune))
	}
}

func (p *mapPage) renderDetail(width int) string {
	content := p.styles.Muted.Render("Pređite mišem preko lokacije")
	if p.hovered {
		loc := p.hover
		level := warehouse.ClassifyOccupancy(loc.OccupancyPercent)
		state := "slobodna"
		switch level {
		case warehouse.Partial:
			state = "delimično puna"
		case warehouse.Full:
			state = "puna"
		}
		active := "da"
		if !loc.Active {
			active = "ne"
		}
		content = lipgloss.JoinVertical(lipgloss.Left,
			p.styles.Bold.Render(loc.Code),
			p.styles.Body.Render(loc.Name),
			p.styles.Muted.Render(string(loc.Type)),
			fmt.Sprintf("popunjenost: %.0f%% (%s)", loc.OccupancyPercent, state),
			fmt.Sprintf("pozicija: (%.1f, %.1f)", loc.X, loc.Y),
			fmt.Sprintf("aktivna: %s", active),
		)
	}
	return p.styles.Sidebar.Width(width - ui.PanelBorderWidth).Render(content)
}

func (p *mapPage) renderLegend() string {
	free := p.styles.MapFree.Render("█ slobodno (<50%)")
	partial := p.styles.MapPartial.Render("█ delimično (50-89%)")
	full := p.styles.MapFull.Render("█ puno (≥90%)")
	return "  " + free + "   " + partial + "   " + full
}
