package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/aisgbizdev/BIAS-PRO-V2-sub001/internal/dto"
	"github.com/aisgbizdev/BIAS-PRO-V2-sub001/internal/entity"
	"github.com/aisgbizdev/BIAS-PRO-V2-sub001/internal/service"
	"github.com/aisgbizdev/BIAS-PRO-V2-sub001/internal/tui"
)

func init() {
	chatCmd.AddCommand(chatClearCmd)
	rootCmd.AddCommand(chatCmd)
}

var chatCmd = &cobra.Command{
	Use:   "chat [message]",
	Short: "Discuss your analysis results",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := ensureSession(ctx); err != nil {
			return err
		}
		if err := container.ChatService.ListenPrefill(ctx); err != nil {
			return err
		}

		history, err := container.ChatService.Open(ctx)
		if err != nil {
			return err
		}

		model := newChatModel(ctx, container.ChatService, history)
		if len(args) > 0 {
			model.editor.SetValue(args[0])
		} else if prefill, ok := container.ChatService.TakePrefill(); ok {
			model.editor.SetValue(prefill)
		}

		_, err = tea.NewProgram(model).Run()
		return err
	},
}

var chatClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the chat history for this session",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := ensureSession(ctx); err != nil {
			return err
		}
		if err := container.ChatService.Clear(ctx); err != nil {
			return err
		}
		fmt.Println("Chat history cleared.")
		return nil
	},
}

type chatReplyMsg struct {
	reply *dto.ChatReply
	err   error
}

type chatModel struct {
	ctx    context.Context
	chat   service.IChatService
	editor *tui.EditorModel
	lines  []string
}

var (
	userStyle     = lipgloss.NewStyle().Bold(true)
	advisoryStyle = lipgloss.NewStyle().Faint(true).Italic(true)
)

func newChatModel(ctx context.Context, chat service.IChatService, history []*entity.ChatMessage) *chatModel {
	m := &chatModel{
		ctx:    ctx,
		chat:   chat,
		editor: tui.NewEditorModel(),
	}
	for _, msg := range history {
		m.appendMessage(msg.Role, msg.Message)
	}
	return m
}

func (m *chatModel) appendMessage(role, text string) {
	prefix := "assistant"
	if role == entity.ChatRoleUser {
		prefix = userStyle.Render("you")
	}
	m.lines = append(m.lines, fmt.Sprintf("%s: %s", prefix, text))
}

func (m *chatModel) Init() tea.Cmd {
	return m.editor.Init()
}

func (m *chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tui.CloseMsg:
		m.chat.Close()
		return m, tea.Quit

	case tui.SubmitMsg:
		m.appendMessage(entity.ChatRoleUser, msg.Content)
		m.editor.SetBusy(true)
		return m, func() tea.Msg {
			reply, err := m.chat.Send(m.ctx, msg.Content)
			return chatReplyMsg{reply: reply, err: err}
		}

	case chatReplyMsg:
		m.editor.SetBusy(false)
		if msg.err != nil {
			m.lines = append(m.lines, advisoryStyle.Render("error: "+msg.err.Error()))
			return m, nil
		}
		m.appendMessage(entity.ChatRoleAssistant, msg.reply.Reply)
		if !msg.reply.IsOnTopic {
			m.lines = append(m.lines, advisoryStyle.Render("(this chat works best for questions about your analysis)"))
		}
		return m, nil
	}

	model, cmd := m.editor.Update(msg)
	m.editor = model.(*tui.EditorModel)
	return m, cmd
}

func (m *chatModel) View() string {
	view := ""
	for _, line := range m.lines {
		view += line + "\n"
	}
	return view + "\n" + m.editor.View()
}
