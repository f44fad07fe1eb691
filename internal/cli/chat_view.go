package cli

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/faqbot/internal/app"
	"github.com/alexanderramin/faqbot/internal/cli/formatter"
)

// chatCommand is a slash or bare command typed into a chat.
type chatCommand int

const (
	chatAsk chatCommand = iota
	chatQuit
	chatReset
	chatHistory
)

func parseChatCommand(input string) chatCommand {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "/quit", "/exit", "/q", "quit", "exit", "bye", "goodbye":
		return chatQuit
	case "/reset":
		return chatReset
	case "/history":
		return chatHistory
	default:
		return chatAsk
	}
}

// chatView is the interactive chat TUI.
type chatView struct {
	ctx       context.Context
	assistant app.Assistant
	sessionID string
	verbose   bool

	input    textinput.Model
	messages []string
	quitting bool
}

func newChatView(ctx context.Context, a app.Assistant, sessionID string, verbose bool) *chatView {
	ti := textinput.New()
	ti.Focus()
	ti.Prompt = ""
	ti.Placeholder = "Ask about ConfigMaster"
	ti.CharLimit = 2000

	v := &chatView{
		ctx:       ctx,
		assistant: a,
		sessionID: sessionID,
		verbose:   verbose,
		input:     ti,
	}
	v.messages = append(v.messages,
		formatter.StyleHeader.Render(a.Greet()),
		formatter.Dim("Type /history, /reset or /quit."),
	)
	return v
}

func (v *chatView) Init() tea.Cmd {
	return textinput.Blink
}

func (v *chatView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.input.Width = max(msg.Width-4, 10)
		return v, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return v.quit()
		case tea.KeyEnter:
			input := strings.TrimSpace(v.input.Value())
			v.input.Reset()
			if input == "" {
				return v, nil
			}
			return v.handleInput(input)
		}
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *chatView) View() string {
	var b strings.Builder

	for _, msg := range v.messages {
		b.WriteString(msg)
		b.WriteString("\n")
	}
	if v.quitting {
		return b.String()
	}

	b.WriteString(formatter.StylePurple.Render("you"))
	b.WriteString(formatter.Dim("> "))
	b.WriteString(v.input.View())
	return b.String()
}

func (v *chatView) handleInput(input string) (tea.Model, tea.Cmd) {
	switch parseChatCommand(input) {
	case chatQuit:
		return v.quit()
	case chatReset:
		v.assistant.Reset(v.sessionID)
		v.messages = append(v.messages, formatter.Dim("Conversation reset."))
		return v, nil
	case chatHistory:
		v.messages = append(v.messages, formatter.FormatHistory(v.sessionID, v.assistant.History(v.sessionID)))
		return v, nil
	}

	resp := v.assistant.Respond(v.ctx, v.sessionID, input)
	v.messages = append(v.messages,
		formatter.Dim("You: ")+input,
		formatter.FormatResponse(resp, v.verbose),
	)
	return v, nil
}

func (v *chatView) quit() (tea.Model, tea.Cmd) {
	v.messages = append(v.messages, formatter.StyleHeader.Render(v.assistant.Farewell(v.sessionID)))
	v.quitting = true
	return v, tea.Quit
}
