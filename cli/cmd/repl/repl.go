package repl

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/pcalc/log"
)

// Styles.
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	contPromptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("5")).
			Bold(true)
	inputStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	matchStyle      = lipgloss.NewStyle().
			Foreground(lipgloss.Color("4")).
			Bold(true)
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
	selectedMatchStyle = selectedStyle.Bold(true)
)

const (
	defaultWidth = 80
	charLimit    = 1024
	emptyHint    = "Type an expression, or :help for keywords and commands"
)

// Run starts the full-screen REPL on the terminal. The session's output
// writers are replaced by buffers that the program prints after each line.
func Run(ctx context.Context, s *Session, hist *History, logger log.Logger) error {
	if hist == nil {
		hist = new(History)
	}

	m := newModel(ctx, s, hist, logger)

	logger.TraceContext(ctx, "repl start", slog.Int("history", hist.Len()))

	_, err := tea.NewProgram(m, tea.WithContext(ctx)).Run()

	return err
}

// model is the Bubble Tea model for the REPL.
type model struct {
	ctx     context.Context
	session *Session
	out     *bytes.Buffer
	errOut  *bytes.Buffer
	logger  log.Logger

	input      textinput.Model
	history    *History
	historyIdx int

	comp         completion
	suggIdx      int    // selected candidate index
	tabActive    bool   // whether user is tab-cycling
	preTabText   string // input text before tab-cycling began
	preTabCursor int    // cursor position before tab-cycling began

	width    int
	quitting bool
}

func newModel(ctx context.Context, s *Session, hist *History, logger log.Logger) model {
	var out, errOut bytes.Buffer

	s.redirect(&out, &errOut)

	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = charLimit
	ti.Width = defaultWidth

	m := model{
		ctx:        ctx,
		session:    s,
		out:        &out,
		errOut:     &errOut,
		logger:     logger,
		input:      ti,
		history:    hist,
		historyIdx: hist.Len(),
		suggIdx:    -1,
		width:      defaultWidth,
	}
	m.setPrompt()

	return m
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(msg.Width-len(contPrompt)-2, 1)

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")

	switch {
	case m.historyIdx < m.history.Len():
		hint := fmt.Sprintf("%s/%d",
			lipgloss.NewStyle().Bold(true).Render(strconv.Itoa(m.historyIdx+1)),
			m.history.Len())
		b.WriteString(hintStyle.Render(hint))

	case strings.TrimSpace(m.input.Value()) == "":
		b.WriteString(hintStyle.Render(emptyHint))

	default:
		b.WriteString(renderCandidateBar(m.comp.matches, m.suggIdx, m.tabActive, m.width))
	}

	b.WriteString("\n")

	return b.String()
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.tabActive = false
		m.historyIdx = m.history.Len()
		m.refresh()

		return m, nil

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		return m, nil

	case tea.KeyEnter:
		if m.tabActive && len(m.comp.matches) > 0 {
			// Lock in the current candidate without executing.
			m.tabActive = false
			m.refresh()

			return m, nil
		}

		return m.execute()

	case tea.KeyTab:
		return m.cycle(1), nil

	case tea.KeyShiftTab:
		return m.cycle(-1), nil

	case tea.KeyUp:
		return m.historyMove(-1), nil

	case tea.KeyDown:
		return m.historyMove(1), nil

	case tea.KeyEsc:
		if m.tabActive {
			m.tabActive = false
			m.input.SetValue(m.preTabText)
			m.input.SetCursor(m.preTabCursor)
			m.refresh()
		}

		return m, nil

	case tea.KeyRunes:
		if m.tabActive && msg.String() == " " {
			m.tabActive = false
		}
	default:
		m.tabActive = false
	}

	var cmd tea.Cmd

	m.historyIdx = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	m.refresh()

	return m, cmd
}

// cycle moves through the completion candidates in direction dir, replacing
// the word at the cursor. A single candidate is accepted immediately.
func (m model) cycle(dir int) model {
	n := len(m.comp.matches)
	if n == 0 {
		return m
	}

	if n == 1 {
		m.accept(m.comp.matches[0].Str)
		m.tabActive = false
		m.refresh()

		return m
	}

	if !m.tabActive {
		m.tabActive = true
		m.preTabText = m.input.Value()
		m.preTabCursor = m.input.Position()
		m.suggIdx = -1

		if dir < 0 {
			m.suggIdx = 0
		}
	}

	m.suggIdx = (m.suggIdx + dir + n) % n
	m.accept(m.comp.matches[m.suggIdx].Str)

	return m
}

// accept replaces the word being completed with s.
func (m *model) accept(s string) {
	text, cursor := m.comp.replace(m.input.Value(), s)

	m.input.SetValue(text)
	m.input.SetCursor(cursor)
	m.comp.end = cursor
}

// refresh recomputes completions for the word at the cursor.
func (m *model) refresh() {
	m.comp = complete(m.input.Value(), m.input.Position(), m.session.Candidates())

	if !m.tabActive {
		m.suggIdx = -1
	}
}

// historyMove steps through history; moving past the newest entry clears
// the input.
func (m model) historyMove(dir int) model {
	idx := m.historyIdx + dir
	if idx < 0 {
		return m
	}

	m.tabActive = false
	m.historyIdx = min(idx, m.history.Len())

	line, err := m.history.Entry(m.historyIdx)
	if err != nil {
		line = ""
	}

	m.input.SetValue(line)
	m.input.SetCursor(len(line))
	m.refresh()

	return m
}

// execute passes the input line to the session and prints what it wrote.
func (m model) execute() (model, tea.Cmd) {
	line := m.input.Value()
	echo := promptStyle.Render(m.session.Prompt()) + inputStyle.Render(line)

	m.input.SetValue("")
	m.tabActive = false

	if err := m.history.Add(line); err != nil {
		m.logger.WarnContext(m.ctx, "history not saved", slog.Any("error", err))
	}

	m.historyIdx = m.history.Len()

	m.logger.TraceContext(m.ctx, "repl input", slog.String("line", line))

	err := m.session.Input(line)

	cmds := []tea.Cmd{tea.Println(echo)}
	cmds = append(cmds, printLines(m.out, resultStyle)...)
	cmds = append(cmds, printLines(m.errOut, errorStyle)...)

	if IsQuit(err) {
		m.quitting = true
		cmds = append(cmds, tea.Quit)
	}

	m.setPrompt()
	m.refresh()

	return m, tea.Sequence(cmds...)
}

func (m *model) setPrompt() {
	if p := m.session.Prompt(); p == prompt {
		m.input.Prompt = promptStyle.Render(p)
	} else {
		m.input.Prompt = contPromptStyle.Render(p)
	}
}

// printLines drains buf into one print command per line.
func printLines(buf *bytes.Buffer, style lipgloss.Style) []tea.Cmd {
	text := strings.TrimSuffix(buf.String(), "\n")
	buf.Reset()

	if text == "" {
		return nil
	}

	lines := strings.Split(text, "\n")
	cmds := make([]tea.Cmd, len(lines))

	for i, line := range lines {
		cmds[i] = tea.Println(style.Render(line))
	}

	return cmds
}
