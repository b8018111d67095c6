package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// SubmitMsg is emitted when the user submits the current input.
type SubmitMsg struct {
	Content string
}

// CloseMsg is emitted on ESC: the chat panel closes, history stays.
type CloseMsg struct{}

type editorKeyMap struct {
	Send    key.Binding
	NewLine key.Binding
	Close   key.Binding
}

var editorKeys = editorKeyMap{
	Send: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "send message"),
	),
	NewLine: key.NewBinding(
		key.WithKeys("shift+enter"),
		key.WithHelp("shift+enter", "new line"),
	),
	Close: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "close chat"),
	),
}

// EditorModel is the chat input. Enter submits unless Shift is held, in
// which case a newline is inserted instead; ESC closes the panel.
type EditorModel struct {
	textarea textarea.Model
	busy     bool // input disabled while a send is pending
}

func NewEditorModel() *EditorModel {
	ta := textarea.New()
	ta.Placeholder = "Ask about your results... (Enter to send, Shift+Enter for new line)"
	ta.CharLimit = 4000
	ta.SetWidth(80)
	ta.SetHeight(3)
	ta.ShowLineNumbers = false
	ta.Focus()

	return &EditorModel{textarea: ta}
}

func (m *EditorModel) Init() tea.Cmd {
	return textarea.Blink
}

// SetValue pre-fills the input, e.g. from a ChatPrefillRequested event.
func (m *EditorModel) SetValue(value string) {
	m.textarea.SetValue(value)
	m.textarea.CursorEnd()
}

func (m *EditorModel) Value() string {
	return m.textarea.Value()
}

// SetBusy disables submission while a message is in flight.
func (m *EditorModel) SetBusy(busy bool) {
	m.busy = busy
}

func (m *EditorModel) submit() tea.Cmd {
	value := strings.TrimSpace(m.textarea.Value())
	if value == "" {
		return nil
	}
	m.textarea.Reset()
	return func() tea.Msg {
		return SubmitMsg{Content: value}
	}
}

func (m *EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, editorKeys.Close) {
			return m, func() tea.Msg { return CloseMsg{} }
		}
		if m.busy {
			return m, nil
		}
		if key.Matches(msg, editorKeys.NewLine) {
			value := m.textarea.Value()
			m.textarea.SetValue(value + "\n")
			m.textarea.CursorEnd()
			return m, nil
		}
		if key.Matches(msg, editorKeys.Send) {
			return m, m.submit()
		}
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

var (
	editorStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
	pendingStyle = lipgloss.NewStyle().Faint(true)
)

func (m *EditorModel) View() string {
	if m.busy {
		return editorStyle.Render(pendingStyle.Render("waiting for reply..."))
	}
	return editorStyle.Render(m.textarea.View())
}
