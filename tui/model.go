// Package tui is a terminal host for widget lists. Each list renders as an
// [ Add ] control followed by one control per item; moving the cursor onto a
// control and pressing enter clicks it.
package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ryanhamamura/addlist/widget"
)

const defaultTitle = "Add list"

// control is one focusable button. item is -1 for the Add trigger.
type control struct {
	list int
	item int
}

type Option func(*Model)

func WithTitle(title string) Option {
	return func(m *Model) { m.title = title }
}

// Model is a bubbletea model over one or more lists.
type Model struct {
	title  string
	lists  []*widget.List
	cursor int
	width  int
}

// New returns a model rendering lists top to bottom.
func New(lists []*widget.List, opts ...Option) Model {
	m := Model{title: defaultTitle, lists: lists}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k", "left", "h", "shift+tab":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j", "right", "l", "tab":
		if m.cursor < len(m.controls())-1 {
			m.cursor++
		}
	case "enter", " ":
		m.click()
	}
	return m, nil
}

// click runs the add-action of the list owning the focused control. Items of
// a list built WithInertItems do nothing.
func (m Model) click() {
	ctrls := m.controls()
	if m.cursor >= len(ctrls) {
		return
	}
	ctrl := ctrls[m.cursor]
	l := m.lists[ctrl.list]
	if ctrl.item >= 0 && !l.ItemsTrigger() {
		return
	}
	l.Add()
}

func (m Model) controls() []control {
	var out []control
	for i, l := range m.lists {
		out = append(out, control{list: i, item: -1})
		for j := range l.Len() {
			out = append(out, control{list: i, item: j})
		}
	}
	return out
}

// Cursor returns the index of the focused control across all lists.
func (m Model) Cursor() int {
	return m.cursor
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n\n")

	pos := 0
	for _, l := range m.lists {
		row := []string{m.renderControl(addStyle, "Add", pos)}
		pos++
		style := controlStyle
		if !l.ItemsTrigger() {
			style = inertStyle
		}
		for _, it := range l.Items() {
			row = append(row, m.renderControl(style, it.Label, pos))
			pos++
		}
		b.WriteString(m.wrap(row))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("↑/↓ move • enter click • q quit"))
	return b.String()
}

func (m Model) renderControl(style lipgloss.Style, label string, pos int) string {
	if pos == m.cursor {
		style = focusedStyle
	}
	return style.Render(label)
}

// wrap joins controls horizontally, breaking rows at the terminal width.
func (m Model) wrap(ctrls []string) string {
	if m.width <= 0 {
		return lipgloss.JoinHorizontal(lipgloss.Top, ctrls...)
	}
	var rows []string
	var cur []string
	w := 0
	for _, c := range ctrls {
		cw := lipgloss.Width(c)
		if len(cur) > 0 && w+cw > m.width {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cur...))
			cur, w = nil, 0
		}
		cur = append(cur, c)
		w += cw
	}
	if len(cur) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cur...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// Run starts an interactive program on the alternate screen.
func Run(lists []*widget.List, opts ...Option) error {
	_, err := tea.NewProgram(New(lists, opts...), tea.WithAltScreen()).Run()
	return err
}
