// Package ui layout constants for consistent spacing and dimensions
package ui

// Layout constants for viewport and panel sizing
const (
	// Viewport padding and margins
	ViewportHorizontalPadding = 4
	ViewportVerticalPadding   = 8

	// Panel borders and spacing
	PanelBorderWidth = 2
	PanelPaddingH    = 1
	PanelPaddingV    = 0
	ContentIndent    = 2

	// Map page split: canvas left, detail pane right
	MapDetailPaneWidth = 34
	MapCanvasPadding   = 4

	// Control areas
	HeaderHeight    = 2
	FooterHeight    = 2
	StatusBarHeight = 1
	LegendHeight    = 1

	// Responsive breakpoints
	MinimumTerminalWidth  = 80
	MinimumTerminalHeight = 24
	CompactModeWidth      = 100
)

// LayoutConfig provides computed layout dimensions based on terminal size
type LayoutConfig struct {
	TerminalWidth  int
	TerminalHeight int
	IsCompact      bool
}

// NewLayoutConfig creates a layout configuration for the given terminal size
func NewLayoutConfig(width, height int) LayoutConfig {
	return LayoutConfig{
		TerminalWidth:  width,
		TerminalHeight: height,
		IsCompact:      width < CompactModeWidth,
	}
}

// ContentWidth returns the usable content width for a viewport
func (l LayoutConfig) ContentWidth() int {
	return l.TerminalWidth - ViewportHorizontalPadding
}

// ContentHeight returns the usable content height for a viewport
func (l LayoutConfig) ContentHeight() int {
	return l.TerminalHeight - ViewportVerticalPadding
}

// MapPaneWidths calculates canvas and detail pane widths for the map page.
// In compact mode the detail pane collapses and the canvas takes the full
// width.
func (l LayoutConfig) MapPaneWidths() (canvasWidth, detailWidth int) {
	if l.IsCompact {
		return l.ContentWidth(), 0
	}
	detailWidth = MapDetailPaneWidth
	canvasWidth = l.ContentWidth() - detailWidth - 1
	return
}

// PanelContentWidth returns the content width inside a bordered panel
func PanelContentWidth(panelWidth int) int {
	return panelWidth - (PanelBorderWidth * 2) - (PanelPaddingH * 2)
}

// PanelContentHeight returns the content height inside a bordered panel
func PanelContentHeight(panelHeight int) int {
	return panelHeight - (PanelBorderWidth * 2) - (PanelPaddingV * 2)
}

// MapCanvasHeight calculates the cell rows available to the map canvas.
func MapCanvasHeight(totalHeight int) int {
	h := totalHeight - HeaderHeight - FooterHeight - StatusBarHeight - LegendHeight
	if h < 1 {
		h = 1
	}
	return h
}
