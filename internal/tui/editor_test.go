package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

func typeText(m *EditorModel, text string) {
	for _, r := range text {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// shiftEnter fakes the extended key event a capable terminal delivers for
// shift+enter.
func shiftEnter() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("shift+enter")}
}

func collect(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}

func TestEditor_EnterSubmits(t *testing.T) {
	m := NewEditorModel()
	typeText(m, "What does VBM mean?")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	msg := collect(cmd)

	submit, ok := msg.(SubmitMsg)
	require.True(t, ok)
	require.Equal(t, "What does VBM mean?", submit.Content)
	require.Empty(t, m.Value(), "input resets after submit")
}

func TestEditor_EnterOnEmptyInputDoesNothing(t *testing.T) {
	m := NewEditorModel()
	typeText(m, "   ")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Nil(t, collect(cmd))
}

func TestEditor_ShiftEnterInsertsNewlineInsteadOfSending(t *testing.T) {
	m := NewEditorModel()
	typeText(m, "first line")

	_, cmd := m.Update(shiftEnter())
	require.Nil(t, collect(cmd), "shift+enter must not submit")
	require.Equal(t, "first line\n", m.Value())

	typeText(m, "second line")
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	submit, ok := collect(cmd).(SubmitMsg)
	require.True(t, ok)
	require.Equal(t, "first line\nsecond line", submit.Content)
}

func TestEditor_EscCloses(t *testing.T) {
	m := NewEditorModel()
	typeText(m, "half-typed thought")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	_, ok := collect(cmd).(CloseMsg)
	require.True(t, ok)
}

func TestEditor_BusyDisablesInputButNotEsc(t *testing.T) {
	m := NewEditorModel()
	typeText(m, "pending question")
	m.SetBusy(true)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Nil(t, collect(cmd), "no submit while a send is pending")

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	_, ok := collect(cmd).(CloseMsg)
	require.True(t, ok, "ESC still closes while pending")
}

func TestEditor_PrefillSetsValue(t *testing.T) {
	m := NewEditorModel()
	m.SetValue("Why did the framing layer score low?")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	submit, ok := collect(cmd).(SubmitMsg)
	require.True(t, ok)
	require.Equal(t, "Why did the framing layer score low?", submit.Content)
}
