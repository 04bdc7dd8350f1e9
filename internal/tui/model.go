// Package tui is a terminal front end for searching collection points.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vbonduro/ecoleta/internal/selection"
	"github.com/vbonduro/ecoleta/internal/service"
)

type pane int

const (
	paneItems pane = iota
	paneRegions
	paneCities
)

// StateChangedMsg tells the model to re-read the controller state.
type StateChangedMsg struct{}

type Model struct {
	ctrl    *selection.Controller
	items   []service.ItemView
	state   selection.State
	focus   pane
	cursors [3]int
	width   int
}

func New(ctrl *selection.Controller, items []service.ItemView) Model {
	return Model{ctrl: ctrl, items: items, state: ctrl.State()}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

	case StateChangedMsg:
		m.state = m.ctrl.State()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			m.focus = (m.focus + 1) % 3
		case "shift+tab":
			m.focus = (m.focus + 2) % 3
		case "j", "down":
			if m.cursors[m.focus] < m.listLen(m.focus)-1 {
				m.cursors[m.focus]++
			}
		case "k", "up":
			if m.cursors[m.focus] > 0 {
				m.cursors[m.focus]--
			}
		case " ", "enter":
			m.activate()
			m.state = m.ctrl.State()
		}
	}
	return m, nil
}

func (m Model) listLen(p pane) int {
	switch p {
	case paneItems:
		return len(m.items)
	case paneRegions:
		return len(m.state.Regions.Values)
	default:
		return len(m.state.Cities.Values)
	}
}

func (m *Model) activate() {
	i := m.cursors[m.focus]
	if i >= m.listLen(m.focus) {
		return
	}

	switch m.focus {
	case paneItems:
		m.ctrl.Dispatch(selection.ToggleItem{ID: m.items[i].ID})
	case paneRegions:
		m.ctrl.Dispatch(selection.SetRegion{Code: m.state.Regions.Values[i]})
		m.cursors[paneCities] = 0
	case paneCities:
		m.ctrl.Dispatch(selection.SetCity{Name: m.state.Cities.Values[i]})
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Ecoleta"))
	b.WriteString(mutedStyle.Render(fmt.Sprintf("  %s / %s", orDash(m.state.Region), orDash(m.state.City))))
	b.WriteString("\n\n")

	filters := lipgloss.JoinHorizontal(lipgloss.Top,
		m.pane(paneItems, "Items", m.itemLines()),
		m.pane(paneRegions, "UF", m.refLines(paneRegions, m.state.Regions, m.state.Region)),
		m.pane(paneCities, "City", m.refLines(paneCities, m.state.Cities, m.state.City)),
	)
	b.WriteString(filters)
	b.WriteString("\n\n")

	b.WriteString(headerStyle.Render(fmt.Sprintf("%d collection points", len(m.state.Points))))
	b.WriteString("\n")
	for _, p := range m.state.Points {
		fmt.Fprintf(&b, "  %s %s\n", p.Name, mutedStyle.Render(fmt.Sprintf("%s/%s · %s", p.City, p.UF, p.WhatsApp)))
	}

	if m.state.Err != nil {
		b.WriteString(warnStyle.Render("last search failed; showing previous results"))
		b.WriteString("\n")
	}
	b.WriteString(mutedStyle.Render("tab switch · space select · q quit"))
	return b.String()
}

func (m Model) pane(p pane, title string, lines []string) string {
	style := paneStyle
	if m.focus == p {
		style = focusedPaneStyle
	}
	return style.Render(headerStyle.Render(title) + "\n" + strings.Join(lines, "\n"))
}

func (m Model) itemLines() []string {
	lines := make([]string, 0, len(m.items))
	for i, item := range m.items {
		box := "[ ]"
		if m.state.IsSelected(item.ID) {
			box = "[x]"
		}
		lines = append(lines, m.cursorMark(paneItems, i)+box+" "+item.Title)
	}
	return lines
}

func (m Model) refLines(p pane, list selection.RefList, current string) []string {
	switch list.Status {
	case selection.StatusLoading:
		return []string{mutedStyle.Render("loading…")}
	case selection.StatusUnavailable:
		return []string{warnStyle.Render("unavailable")}
	}

	lines := make([]string, 0, len(list.Values))
	for i, v := range list.Values {
		if v == current {
			v = cursorStyle.Render(v)
		}
		lines = append(lines, m.cursorMark(p, i)+v)
	}
	return lines
}

func (m Model) cursorMark(p pane, i int) string {
	if m.focus == p && m.cursors[p] == i {
		return cursorStyle.Render(">") + " "
	}
	return "  "
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
