// Package tui is a full-screen front end built on Bubble Tea. It drives the
// same session state machine as the line console: every Enter hands one line
// to the session and appends the reply to a scrolling transcript.
package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/fairrps/internal/console"
	"github.com/lox/fairrps/internal/session"
)

const sidebarWidth = 30

// Options holds optional TUI settings
type Options struct {
	IdleTimeout time.Duration // Zero waits forever
	ShowScore   bool          // Print the tally when the session ends
}

// idleMsg fires when no line was entered for the idle timeout. Only the tick
// armed last counts.
type idleMsg struct{ seq int }

// Model is the Bubble Tea model for one game session
type Model struct {
	session *session.Session
	logger  *log.Logger
	styles  *console.Styles

	// UI components
	transcriptView viewport.Model
	input          textinput.Model

	transcript []string
	lastResult string
	notice     string
	quitting   bool
	err        error

	idleTimeout time.Duration
	idleSeq     int
	showScore   bool

	width  int
	height int
}

// NewModel starts the session and returns a model showing its first prompt
func NewModel(sess *session.Session, logger *log.Logger, opts Options) (*Model, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	vp := viewport.New(10, 5)
	vp.SetContent("")

	ti := textinput.New()
	ti.Placeholder = "move number, ? for help, 0 to exit"
	ti.Focus()
	ti.CharLimit = 32
	ti.Width = 40
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	ti.Prompt = console.MovePrompt

	m := &Model{
		session:        sess,
		logger:         logger.WithPrefix("tui"),
		styles:         console.DefaultStyles(),
		transcriptView: vp,
		input:          ti,
		idleTimeout:    opts.IdleTimeout,
		showScore:      opts.ShowScore,
	}

	reply, err := sess.Start()
	if err != nil {
		return nil, err
	}
	m.apply(reply)
	return m, nil
}

// Init initializes the TUI model
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.armIdle())
}

// armIdle starts a new idle countdown, superseding any earlier one
func (m *Model) armIdle() tea.Cmd {
	if m.idleTimeout <= 0 {
		return nil
	}
	m.idleSeq++
	seq := m.idleSeq
	return tea.Tick(m.idleTimeout, func(time.Time) tea.Msg {
		return idleMsg{seq: seq}
	})
}

// Update handles messages in the TUI
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case idleMsg:
		if msg.seq != m.idleSeq || m.quitting {
			return m, nil
		}
		m.logger.Debug("Idle timeout", "after", m.idleTimeout)
		m.session.Abort("idle timeout")
		m.notice = fmt.Sprintf("No input for %s, exiting.", m.idleTimeout)
		m.quitting = true
		return m, tea.Quit

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.session.Abort("interrupted")
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			line := m.input.Value()
			m.input.SetValue("")
			m.append(m.input.Prompt + line)

			reply, err := m.session.Handle(line)
			if err != nil {
				m.logger.Error("Session failed", "error", err)
				m.err = err
				m.quitting = true
				return m, tea.Quit
			}
			m.apply(reply)
			if m.session.Done() {
				m.quitting = true
				return m, tea.Quit
			}
			return m, m.armIdle()
		case tea.KeyPgUp:
			m.transcriptView.HalfPageUp()
		case tea.KeyPgDown:
			m.transcriptView.HalfPageDown()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		// Leave the outcome and key on screen after the program exits.
		if m.err != nil {
			return ErrorStyle.Render(m.err.Error()) + "\n"
		}
		var b strings.Builder
		b.WriteString(m.lastResult)
		if m.notice != "" {
			b.WriteString(InfoStyle.Render(m.notice) + "\n")
		}
		if stats := m.session.Stats(); m.showScore && stats.Rounds > 0 {
			b.WriteString(ScoreStyle.Render(stats.Summary()) + "\n")
		}
		return b.String()
	}

	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	header := HeaderStyle.Render("fairrps") + " " + InfoStyle.Render("PgUp/PgDn scroll · Esc quits")
	transcript := paneBorder.Render(m.transcriptView.View())
	sidebar := paneBorder.
		Width(sidebarWidth).
		Height(m.transcriptView.Height).
		Render(m.renderSidebar())
	input := inputBorder.Width(max(m.width-2, 1)).Render(m.input.View())

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		lipgloss.JoinHorizontal(lipgloss.Top, transcript, sidebar),
		input,
	)
}

// Transcript returns everything shown in the transcript pane, in order
func (m *Model) Transcript() []string {
	return m.transcript
}

// Err returns the error that stopped the session, if any
func (m *Model) Err() error {
	return m.err
}

func (m *Model) resize() {
	const chrome = 2 // border on each side
	headerHeight := 1
	inputHeight := 3

	w := m.width - sidebarWidth - 2*chrome
	h := m.height - headerHeight - inputHeight - chrome
	m.transcriptView.Width = max(w, 1)
	m.transcriptView.Height = max(h, 1)
	m.input.Width = max(m.width-len(m.input.Prompt)-chrome-1, 1)
	m.transcriptView.GotoBottom()
}

func (m *Model) renderSidebar() string {
	var b strings.Builder
	if p := m.session.Prompt(); p != nil && !m.session.Done() {
		fmt.Fprintf(&b, "%s %d\n", SidebarLabelStyle.Render("Round"), p.Round)
		fmt.Fprintf(&b, "%s\n%s\n", SidebarLabelStyle.Render("Round ID"), p.RoundID)
		fmt.Fprintf(&b, "%s\n%s\n", SidebarLabelStyle.Render("HMAC"), DigestStyle.Render(wrap(p.Digest, sidebarWidth-2)))
	}
	stats := m.session.Stats()
	fmt.Fprintf(&b, "\n%s\n", SidebarLabelStyle.Render("Score"))
	fmt.Fprintf(&b, "%s\n", ScoreStyle.Render(fmt.Sprintf("W %d  L %d  D %d", stats.Wins, stats.Losses, stats.Draws)))
	return b.String()
}

func (m *Model) apply(reply session.Reply) {
	switch reply.Kind {
	case session.ReplyPrompt:
		m.showPrompt(reply.Prompt)
	case session.ReplyHelp:
		m.append(reply.Rules)
		m.append(console.FormatHelpMenu())
		m.input.Prompt = console.ChoicePrompt
	case session.ReplyInvalid:
		m.append(m.styles.Error.Render(reply.Message))
		if reply.Prompt != nil {
			m.showPrompt(reply.Prompt)
		} else {
			m.append(console.FormatHelpMenu())
		}
	case session.ReplyResult:
		m.lastResult = console.FormatResult(reply.Result, m.styles)
		m.append(m.lastResult)
		if reply.Next != nil {
			m.showPrompt(reply.Next)
		}
	case session.ReplyExit:
	}
}

func (m *Model) showPrompt(p *session.Prompt) {
	m.append(console.FormatPrompt(p, m.styles))
	m.input.Prompt = console.MovePrompt
}

func (m *Model) append(entry string) {
	m.transcript = append(m.transcript, strings.TrimRight(entry, "\n"))
	m.transcriptView.SetContent(strings.Join(m.transcript, "\n"))
	if m.transcriptView.Height > 0 && m.transcriptView.Width > 0 {
		m.transcriptView.GotoBottom()
	}
}

func wrap(s string, width int) string {
	if width <= 0 {
		return s
	}
	var lines []string
	for len(s) > width {
		lines = append(lines, s[:width])
		s = s[width:]
	}
	return strings.Join(append(lines, s), "\n")
}

// Run runs the TUI until the session is done
func Run(sess *session.Session, logger *log.Logger, opts Options, programOpts ...tea.ProgramOption) error {
	m, err := NewModel(sess, logger, opts)
	if err != nil {
		return err
	}
	final, err := tea.NewProgram(m, programOpts...).Run()
	if err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return final.(*Model).Err()
}
