package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	sidebarWidth = 28
	headerHeight = 1
	footerHeight = 2
)

// layout holds the screen regions derived from the window size.
type layout struct {
	contentW, contentH int
	sidebarW           int
	mapX, mapY         int // canvas origin on screen
	mapW, mapH         int
}

func (m Model) layout() layout {
	l := layout{
		contentW: max(10, m.width),
		contentH: max(4, m.height-headerHeight-footerHeight),
		mapY:     headerHeight,
	}
	if m.showSidebar {
		l.sidebarW = sidebarWidth
		l.mapX = sidebarWidth + 1
	}
	l.mapW = max(10, l.contentW-l.sidebarW-1)
	l.mapH = l.contentH
	return l
}

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	l := m.layout()

	// Update list size with accurate content height when sidebar visible
	if m.showSidebar {
		m.l.SetSize(sidebarWidth-2, l.contentH-2)
	}

	header := titleStyle.Render(" polyscan ─ sweep-line polygon fill ")
	header = lipgloss.NewStyle().Width(l.contentW).Padding(0).Render(header)

	var sidebar string
	if m.showSidebar {
		sidebar = lipgloss.NewStyle().Width(sidebarWidth).Render(m.l.View())
	}

	var canvas string
	switch {
	case m.showStats:
		m.tbl.SetHeight(min(l.mapH-4, 20))
		box := boxStyle.Render(m.tbl.View())
		if m.lastErr != nil {
			box = lipgloss.JoinVertical(lipgloss.Left, box, errStyle.Render(m.lastErr.Error()))
		}
		canvas = lipgloss.Place(l.mapW, l.mapH, lipgloss.Center, lipgloss.Center, box)
	case m.pasteMode:
		m.ta.SetWidth(l.mapW)
		m.ta.SetHeight(min(l.mapH, 12))
		canvas = lipgloss.NewStyle().Width(l.mapW).Height(l.mapH).Render(m.ta.View())
	default:
		rows, _, _ := m.renderFrame(l.mapW, l.mapH)
		canvas = canvasStyle.Width(l.mapW).Height(l.mapH).Render(strings.Join(rows, "\n"))
	}

	body := canvas
	if m.showSidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", canvas)
	}

	help := m.renderHelp()
	status := dimStyle.Render(" " + m.status + " ")
	info := fmt.Sprintf("  %s  %.1f°  zoom %.2fx  ", m.mode, m.Angle(), m.zoom)
	if m.hovering {
		mark := "○"
		if m.hoverHit {
			mark = "●"
		}
		info = fmt.Sprintf("  cell %d,%d %s", m.hoverX, m.hoverY, mark) + info
	}
	coords := dimStyle.Render(info)
	left := lipgloss.JoinHorizontal(lipgloss.Bottom, status, help)
	spacerW := max(0, l.contentW-lipgloss.Width(left)-lipgloss.Width(coords))
	right := lipgloss.Place(spacerW+lipgloss.Width(coords), 1, lipgloss.Right, lipgloss.Center, coords)
	footer := lipgloss.NewStyle().Width(l.contentW).Render(lipgloss.JoinHorizontal(lipgloss.Bottom, left, right))

	ui := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	return appStyle.Width(l.contentW).Height(m.height).Render(ui)
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	keys := []string{
		"space animate",
		"[ ] rotate",
		"↑↓←→ pan",
		"+/- zoom",
		"m mode",
		"o outline",
		"s stats",
		"p paste",
		"Tab files",
		"r reset",
		"h help",
		"q quit",
	}
	return dimStyle.Render("  " + strings.Join(keys, "  "))
}
