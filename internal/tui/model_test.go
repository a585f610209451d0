package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wlpick/internal/rank"
)

type stubSource struct {
	items   []rank.Candidate
	deleted []string
	err     error
}

func (s *stubSource) Fetch() ([]rank.Candidate, error) { return s.items, s.err }
func (s *stubSource) Delete(c rank.Candidate) error {
	s.deleted = append(s.deleted, c.Primary)
	return nil
}

type stubExecutor struct {
	executed []string
	err      error
}

func (e *stubExecutor) Execute(c rank.Candidate) error {
	e.executed = append(e.executed, c.Primary)
	return e.err
}

func newTestModel(items []rank.Candidate, allowDelete bool) (*Model, *stubSource, *stubExecutor) {
	src := &stubSource{items: items}
	exe := &stubExecutor{}
	m := New(Options{
		Title:       "test",
		Source:      src,
		Executor:    exe,
		Policy:      &rank.SubstringPolicy{},
		AllowDelete: allowDelete,
	})
	m.Update(fetchedMsg{items: items})
	return m, src, exe
}

func clipCandidates() []rank.Candidate {
	return []rank.Candidate{
		{ID: "1", Primary: "apple pie"},
		{ID: "2", Primary: "banana"},
		{ID: "3", Primary: "pineapple"},
	}
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "ctrl+x":
		return tea.KeyMsg{Type: tea.KeyCtrlX}
	case "ctrl+l":
		return tea.KeyMsg{Type: tea.KeyCtrlL}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestTypingFiltersList(t *testing.T) {
	m, _, _ := newTestModel(clipCandidates(), false)

	m.Update(keyMsg("p"))
	m.Update(keyMsg("p"))

	require.Len(t, m.filtered, 2)
	assert.Equal(t, "apple pie", m.filtered[0].Primary)
	assert.Equal(t, "pineapple", m.filtered[1].Primary)
	assert.Equal(t, 0, m.selected)
}

func TestNavigationClamped(t *testing.T) {
	m, _, _ := newTestModel(clipCandidates(), false)

	m.Update(keyMsg("up"))
	assert.Equal(t, 0, m.selected)
	for i := 0; i < 5; i++ {
		m.Update(keyMsg("down"))
	}
	assert.Equal(t, 2, m.selected)
}

func TestSelectExecutesAndQuits(t *testing.T) {
	m, _, exe := newTestModel(clipCandidates(), false)
	m.Update(keyMsg("down"))

	_, cmd := m.Update(keyMsg("enter"))
	require.NotNil(t, cmd)
	assert.Equal(t, []string{"banana"}, exe.executed)
	require.NotNil(t, m.Picked)
	assert.Equal(t, "banana", m.Picked.Primary)
}

func TestSelectSurfacesExecutorError(t *testing.T) {
	m, _, exe := newTestModel(clipCandidates(), false)
	exe.err = errors.New("boom")

	_, cmd := m.Update(keyMsg("enter"))
	assert.Nil(t, cmd, "stay open on failure")
	assert.Contains(t, m.statusMsg, "boom")
}

func TestDeleteRespectsCapability(t *testing.T) {
	m, src, _ := newTestModel(clipCandidates(), false)
	m.Update(keyMsg("ctrl+x"))
	assert.Empty(t, src.deleted)

	m, src, _ = newTestModel(clipCandidates(), true)
	m.Update(keyMsg("ctrl+x"))
	assert.Equal(t, []string{"apple pie"}, src.deleted)
}

func TestClearSearch(t *testing.T) {
	m, _, _ := newTestModel(clipCandidates(), false)
	m.Update(keyMsg("p"))
	m.Update(keyMsg("p"))
	require.Len(t, m.filtered, 2)

	m.Update(keyMsg("ctrl+l"))
	assert.Empty(t, m.input.Value())
	assert.Len(t, m.filtered, 3)
}

func TestFetchErrorShowsStatus(t *testing.T) {
	m, _, _ := newTestModel(nil, false)
	m.Update(fetchedMsg{err: errors.New("no daemon")})
	assert.Contains(t, m.statusMsg, "no daemon")
	assert.Empty(t, m.filtered)
}

func TestViewRendersSelection(t *testing.T) {
	m, _, _ := newTestModel(clipCandidates(), false)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	out := m.View()
	assert.Contains(t, out, "apple pie")
	assert.Contains(t, out, "3/3")
}
