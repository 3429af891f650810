package tui

import (
	"fmt"
	"strings"
	"time"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"polyscan/internal/geom"
)

// tickMsg advances the animation. Ticks from an older loop are ignored.
type tickMsg struct {
	gen int
	at  time.Time
}

func (m Model) tick() tea.Cmd {
	gen := m.gen
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg{gen: gen, at: t} })
}

const rotateStep = 15 // degrees per [ or ]

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.showSidebar {
			m.l.SetSize(sidebarWidth-2, m.layout().contentH-2)
		}
		if m.showStats {
			m.refreshStats()
		}
	case tickMsg:
		if !m.animate || msg.gen != m.gen {
			return m, nil
		}
		m.frame++
		if m.showStats {
			m.refreshStats()
		}
		return m, m.tick()
	case tea.KeyMsg:
		// If list is visible and filtering, send keys to list and ignore global commands
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if m.pasteMode {
			return m.updatePaste(msg)
		}
		var cmd tea.Cmd
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case " ", "space":
			m.animate = !m.animate
			if m.animate {
				m.gen++
				cmd = m.tick()
				m.status = "animating"
			} else {
				m.status = fmt.Sprintf("paused at %.1f°", m.Angle())
			}
		case "+", "=":
			if m.zoom < 64 {
				m.zoom *= 1.2
				m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
			}
		case "-", "_":
			if m.zoom > 0.05 {
				m.zoom /= 1.2
				m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
			}
		case "[":
			m.angle += rotateStep
			m.status = fmt.Sprintf("angle: %.1f°", m.Angle())
		case "]":
			m.angle -= rotateStep
			m.status = fmt.Sprintf("angle: %.1f°", m.Angle())
		case "r":
			m.zoom, m.offsetX, m.offsetY, m.angle, m.frame = 1, 0, 0, 0, 0
			m.status = "view reset"
		case "m":
			if m.mode == ModeBraille {
				m.mode = ModeBlock
			} else {
				m.mode = ModeBraille
			}
			m.status = "mode: " + m.mode.String()
		case "o":
			m.outline = !m.outline
			m.status = fmt.Sprintf("outline: %v", m.outline)
		case "s":
			m.showStats = !m.showStats
			if m.showStats {
				m.refreshStats()
			}
		case "tab":
			m.showSidebar = !m.showSidebar
			if m.showSidebar {
				m.refreshDir()
				m.l.SetSize(sidebarWidth-2, m.layout().contentH-2)
			}
		case "p":
			m.pasteMode = true
			m.ta.SetValue("")
			m.status = "paste mode"
			cmd = m.ta.Focus()
		case "h":
			m.helpVisible = !m.helpVisible
		case "enter":
			if m.showSidebar {
				if it, ok := m.l.SelectedItem().(fileItem); ok {
					m.loadPath(it.path)
				}
			}
		case "up":
			m.offsetY--
		case "down":
			m.offsetY++
		case "left":
			m.offsetX -= 2
		case "right":
			m.offsetX += 2
		}
		if m.showStats && msg.String() != "s" {
			m.refreshStats()
		}
		if cmd != nil {
			return m, cmd
		}
	case tea.MouseMsg:
		l := m.layout()
		cx, cy := msg.X-l.mapX, msg.Y-l.mapY
		m.hovering = cx >= 0 && cx < l.mapW && cy >= 0 && cy < l.mapH
		if m.hovering {
			m.hoverX, m.hoverY = cx, cy
			rows, _, _ := m.renderFrame(l.mapW, l.mapH)
			m.hoverHit = cy < len(rows) && cellAt(rows[cy], cx) != ' '
		}
	}
	// Pass messages to list when visible
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

// updatePaste handles keys while the WKT textarea has focus.
func (m Model) updatePaste(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.pasteMode = false
		m.ta.Blur()
		m.status = "view mode"
		return m, nil
	case "enter":
		w := strings.TrimSpace(m.ta.Value())
		if w == "" {
			m.status = "paste: empty"
			return m, nil
		}
		d, err := geom.ParseWKT(w)
		if err != nil {
			m.status = "wkt error: " + err.Error()
			return m, nil
		}
		m.selPath = ""
		m.setData(d, "rendered WKT")
		m.pasteMode = false
		m.ta.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.ta, cmd = m.ta.Update(msg)
	return m, cmd
}

func cellAt(row string, x int) rune {
	for i, r := range []rune(row) {
		if i == x {
			return r
		}
	}
	return ' '
}
