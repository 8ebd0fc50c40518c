package tui

import (
	"fmt"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"chronomap/internal/geojson"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.showSidebar {
			m.l.SetSize(28-2, m.height-1-2) // provisional; refined in View
		}
	case tickMsg:
		if m.player == nil || !m.player.Clock().Playing() {
			return m, nil
		}
		frame, ok := m.player.Advance()
		m.frame = frame
		if len(frame.Errors) > 0 {
			m.status = fmt.Sprintf("tick: %d feature(s) skipped: %v", len(frame.Errors), frame.Errors[0])
		}
		if !ok {
			m.status = "playback finished"
			return m, nil
		}
		return m, tickCmd(m.player.Clock().Interval())
	case tea.KeyMsg:
		// If list is visible and filtering, send keys to list and ignore global commands
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if m.pasteMode {
			switch msg.String() {
			case "esc":
				m.pasteMode = false
				m.ta.Blur()
				return m, nil
			case "enter":
				raw := strings.TrimSpace(m.ta.Value())
				if raw == "" {
					m.status = "paste: empty"
					return m, nil
				}
				fc, err := geojson.Decode([]byte(raw))
				if err != nil {
					m.status = "geojson error: " + err.Error()
					return m, nil
				}
				if err := m.setCollection(fc); err != nil {
					m.status = "playback error: " + err.Error()
					return m, nil
				}
				m.selPath = ""
				m.status = fmt.Sprintf("pasted GeoJSON  features: %d", len(fc.Features))
				m.pasteMode = false
				m.ta.Blur()
				return m, m.Init()
			}
			var cmd tea.Cmd
			m.ta, cmd = m.ta.Update(msg)
			return m, cmd
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case " ":
			if m.player != nil {
				if m.player.Clock().Toggle() {
					m.status = "playing"
					return m, tickCmd(m.player.Clock().Interval())
				}
				m.status = "paused"
			}
		case ".", ">":
			if m.player != nil {
				frame, _ := m.player.Advance()
				m.frame = frame
				m.status = "step → " + m.player.Clock().FormatCursor()
			}
		case ",", "<":
			if m.player != nil {
				m.player.Clock().StepBack()
				m.frame = m.player.Frame()
				m.status = "step ← " + m.player.Clock().FormatCursor()
			}
		case "]":
			if m.player != nil {
				c := m.player.Clock()
				c.SetSpeed(c.Speed() * 2)
				m.status = fmt.Sprintf("speed: %.1fx", c.Speed())
			}
		case "[":
			if m.player != nil {
				c := m.player.Clock()
				c.SetSpeed(c.Speed() / 2)
				m.status = fmt.Sprintf("speed: %.1fx", c.Speed())
			}
		case "r":
			if m.player != nil {
				m.player.Clock().Rewind()
				m.frame = m.player.Frame()
				m.status = "rewound to " + m.player.Clock().FormatCursor()
			}
		case "1":
			m.showPoints = !m.showPoints
			m.status = fmt.Sprintf("points: %v", m.showPoints)
		case "2":
			m.showLines = !m.showLines
			m.status = fmt.Sprintf("lines: %v", m.showLines)
		case "3":
			m.showPolys = !m.showPolys
			m.status = fmt.Sprintf("polys: %v", m.showPolys)
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
		case "tab":
			m.showSidebar = !m.showSidebar
			if m.showSidebar {
				m.refreshDir()
				m.l.SetSize(28-2, m.height-1-2)
			}
		case "p":
			m.pasteMode = !m.pasteMode
			if m.pasteMode {
				m.ta.SetValue("")
				m.status = "paste mode"
				m.ta.Focus()
			} else {
				m.status = "view mode"
				m.ta.Blur()
			}
		case "a":
			m.showAttrs = !m.showAttrs
			if m.showAttrs {
				m.refreshAttrsFromCurrent()
			}
		case "h":
			m.helpVisible = !m.helpVisible
		case "l":
			// toggle all layers
			all := m.showPoints && m.showLines && m.showPolys
			m.showPoints = !all
			m.showLines = !all
			m.showPolys = !all
			m.status = fmt.Sprintf("layers: pts=%v ls=%v poly=%v", m.showPoints, m.showLines, m.showPolys)
		case "enter":
			if m.showSidebar {
				if it, ok := m.l.SelectedItem().(fileItem); ok {
					m.loadPath(it.path)
					return m, m.Init()
				}
			}
		case "up":
			m.offsetY -= 1
		case "down":
			m.offsetY += 1
		case "left":
			m.offsetX -= 2
		case "right":
			m.offsetX += 2
		}
	}
	// Pass messages to the focused widget when visible
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	if m.showAttrs {
		var cmd tea.Cmd
		m.tbl, cmd = m.tbl.Update(msg)
		return m, cmd
	}
	return m, nil
}
