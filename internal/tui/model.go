// Package tui renders one chat session in the terminal: a scrolling
// transcript, an input line, and a spinner while a question is out to the
// answering service. The session object is the source of truth; the model
// re-reads it whenever a SessionChangedMsg arrives.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jakejg/outward-bound-chat-fe/internal/model"
	"github.com/jakejg/outward-bound-chat-fe/internal/session"
)

// SessionChangedMsg tells the model the session mutated and the transcript
// view should be rebuilt. The app wires the session's on-change callback to
// program.Send with this message.
type SessionChangedMsg struct{}

// submitDoneMsg reports a finished submission cycle. Err is only ever one of
// the no-op sentinels; service failures surface in the transcript instead.
type submitDoneMsg struct{ Err error }

// probeDoneMsg reports the one-shot readiness probe has settled.
type probeDoneMsg struct{}

var (
	userStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	assistantStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	titleStyle     = lipgloss.NewStyle().Bold(true).Padding(0, 1)
)

// Model is the root bubbletea model for the chat widget.
type Model struct {
	session        *session.Session
	userLabel      string
	assistantLabel string

	viewport viewport.Model
	input    textarea.Model
	spinner  spinner.Model

	width  int
	height int
	ready  bool
}

func New(sess *session.Session, userLabel, assistantLabel string) Model {
	input := textarea.New()
	input.Placeholder = "Ask about your course..."
	input.CharLimit = 500
	input.SetHeight(1)
	input.ShowLineNumbers = false
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		session:        sess,
		userLabel:      userLabel,
		assistantLabel: assistantLabel,
		input:          input,
		spinner:        sp,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.spinner.Tick,
		m.probeCmd(),
	)
}

// probeCmd fires the one-shot readiness probe. Fire-and-forget: the session
// flips its advisory flag on success and a SessionChangedMsg follows.
func (m Model) probeCmd() tea.Cmd {
	sess := m.session
	return func() tea.Msg {
		sess.ProbeReadiness(context.Background())
		return probeDoneMsg{}
	}
}

// submitCmd runs one full submission cycle off the UI goroutine.
func (m Model) submitCmd(text string) tea.Cmd {
	sess := m.session
	return func() tea.Msg {
		return submitDoneMsg{Err: sess.Submit(context.Background(), text)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			// Submission control is disabled while a reply is pending;
			// the keystroke is dropped, nothing is queued.
			if m.session.AwaitingReply() {
				return m, nil
			}
			text := m.input.Value()
			m.input.Reset()
			m.session.SetPendingInput("")
			return m, m.submitCmd(text)
		}

	case SessionChangedMsg:
		m.refreshTranscript()
		return m, nil

	case submitDoneMsg, probeDoneMsg:
		// State already lives in the session; the change notifications
		// have done the rendering work.
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.session.SetPendingInput(m.input.Value())
	cmds = append(cmds, cmd)

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *Model) layout() {
	headerHeight := 1
	statusHeight := 1
	inputHeight := 1

	vpHeight := m.height - headerHeight - statusHeight - inputHeight
	if vpHeight < 1 {
		vpHeight = 1
	}

	if !m.ready {
		m.viewport = viewport.New(m.width, vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = m.width
		m.viewport.Height = vpHeight
	}
	m.input.SetWidth(m.width)
	m.refreshTranscript()
}

// refreshTranscript rebuilds the viewport content from the session and
// keeps the view pinned to the newest message.
func (m *Model) refreshTranscript() {
	if !m.ready {
		return
	}
	var lines []string
	for _, msg := range m.session.Messages() {
		label := m.assistantLabel
		style := assistantStyle
		if msg.Sender == model.SenderUser {
			label = m.userLabel
			style = userStyle
		}
		lines = append(lines, style.Render(label+":")+" "+msg.Text)
	}
	m.viewport.SetContent(lipgloss.NewStyle().Width(m.viewport.Width).Render(strings.Join(lines, "\n")))
	m.viewport.GotoBottom()
}

func (m Model) statusLine() string {
	if m.session.AwaitingReply() {
		return m.spinner.View() + statusStyle.Render("Thinking...")
	}
	if !m.session.ServiceReady() {
		return statusStyle.Render("The assistant may still be waking up.")
	}
	return statusStyle.Render("Press Enter to send, Esc to quit.")
}

func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	return titleStyle.Render("Outward Bound Chat") + "\n" +
		m.viewport.View() + "\n" +
		m.statusLine() + "\n" +
		m.input.View()
}
