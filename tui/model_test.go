package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"
	"github.com/ryanhamamura/addlist/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	space = tea.KeyMsg{Type: tea.KeySpace}
	down  = tea.KeyMsg{Type: tea.KeyDown}
	up    = tea.KeyMsg{Type: tea.KeyUp}
)

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func labels(l *widget.List) []string {
	var out []string
	for _, it := range l.Items() {
		out = append(out, it.Label)
	}
	return out
}

func TestClickScenario(t *testing.T) {
	l := widget.NewList(widget.NewCounter(0))
	m := New([]*widget.List{l})

	// Add, Add, then the item labelled "0"
	m = send(t, m, enter, space, down, enter)

	if diff := cmp.Diff([]string{"0", "1", "2"}, labels(l)); diff != "" {
		t.Errorf("labels mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, int64(3), l.Counter().Peek())
	assert.Equal(t, 1, m.Cursor())
}

func TestInertItemsIgnoreClicks(t *testing.T) {
	l := widget.NewList(nil, widget.WithInertItems())
	m := New([]*widget.List{l})

	m = send(t, m, enter, runes("j"), enter, enter)
	assert.Equal(t, 1, l.Len())
	assert.Equal(t, 1, m.Cursor())
}

func TestCursorStaysInBounds(t *testing.T) {
	l := widget.NewList(nil)
	m := New([]*widget.List{l})

	m = send(t, m, up, runes("k"))
	assert.Equal(t, 0, m.Cursor())

	m = send(t, m, enter, down, down, down)
	assert.Equal(t, 1, m.Cursor())
}

func TestCursorCrossesLists(t *testing.T) {
	counter := widget.NewCounter(10)
	first := widget.NewList(counter)
	second := widget.NewList(counter)
	m := New([]*widget.List{first, second})

	// controls: [Add#1, Add#2]; after the first click [Add#1, 10, Add#2]
	m = send(t, m, enter, down, down, enter)

	assert.Equal(t, []string{"10"}, labels(first))
	assert.Equal(t, []string{"11"}, labels(second))
	assert.Equal(t, 2, m.Cursor())
}

func TestQuit(t *testing.T) {
	testcases := []struct {
		desc string
		msg  tea.KeyMsg
	}{
		{"q", runes("q")},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}},
	}
	for _, tc := range testcases {
		t.Run(tc.desc, func(t *testing.T) {
			_, cmd := New(nil).Update(tc.msg)
			require.NotNil(t, cmd)
			assert.Equal(t, tea.Quit(), cmd())
		})
	}
}

func TestViewShowsControlsInOrder(t *testing.T) {
	l := widget.NewList(nil, widget.WithInertItems())
	l.Add()
	l.Add()
	m := New([]*widget.List{l}, WithTitle("Widgets"))

	view := m.View()
	assert.True(t, strings.HasPrefix(view, titleStyle.Render("Widgets")))
	add := strings.Index(view, "Add")
	zero := strings.Index(view, "0")
	one := strings.Index(view, "1")
	require.True(t, add >= 0 && zero >= 0 && one >= 0)
	assert.Less(t, add, zero)
	assert.Less(t, zero, one)
	assert.Contains(t, view, "q quit")
}

func TestViewWrapsAtWidth(t *testing.T) {
	l := widget.NewList(nil)
	for range 20 {
		l.Add()
	}
	m := send(t, New([]*widget.List{l}), tea.WindowSizeMsg{Width: 30, Height: 20})

	for _, line := range strings.Split(m.View(), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), 40)
	}
}
