// Package repl is the interactive rusty prompt: a bubbletea program over
// one persistent [Session].
package repl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/posidron/rusty/pkg/log"
	"github.com/posidron/rusty/pkg/rusty"
)

const (
	prompt       = "> "
	defaultWidth = 80
)

var (
	promptStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	inputStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	outputStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	selectedStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
)

type config struct {
	history     string
	logger      log.Logger
	interpreter []rusty.Option
	teaOptions  []tea.ProgramOption
}

type Option func(config) config

// WithHistory persists the history to path
func WithHistory(path string) Option {
	return func(c config) config {
		c.history = path
		return c
	}
}

func WithLogger(logger log.Logger) Option {
	return func(c config) config {
		c.logger = logger
		return c
	}
}

// WithInterpreter passes options through to the session's interpreter.
func WithInterpreter(opts ...rusty.Option) Option {
	return func(c config) config {
		c.interpreter = append(c.interpreter, opts...)
		return c
	}
}

// WithProgramOptions passes options to the bubbletea program, e.g. its
// input and output.
func WithProgramOptions(opts ...tea.ProgramOption) Option {
	return func(c config) config {
		c.teaOptions = append(c.teaOptions, opts...)
		return c
	}
}

// Run starts the REPL and blocks until the user leaves it.
func Run(ctx context.Context, opts ...Option) error {
	var cfg config
	for _, opt := range opts {
		cfg = opt(cfg)
	}
	cfg.logger.TraceContext(ctx, "repl start", slog.String("history", cfg.history))

	history := NewHistory(cfg.history)
	if err := history.Load(); err != nil {
		cfg.logger.WarnContext(ctx, "could not load history", slog.Any("error", err))
	}

	session := NewSession(cfg.logger, cfg.interpreter...)
	m := newModel(ctx, session, history, cfg.logger)

	program := tea.NewProgram(m, append([]tea.ProgramOption{tea.WithContext(ctx)}, cfg.teaOptions...)...)
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// model is the bubbletea model for the REPL.
type model struct {
	ctxFunc    func() context.Context
	input      textinput.Model
	session    *Session
	history    *History
	historyIdx int
	logger     log.Logger
	matches    fuzzy.Matches
	wordStart  int
	wordEnd    int
	suggIdx    int  // selected candidate, -1 for none
	tabActive  bool // cycling with Tab
	preTab     string
	width      int
	quitting   bool
}

func newModel(ctx context.Context, session *Session, history *History, logger log.Logger) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(prompt)
	ti.Focus()
	ti.CharLimit = 4096
	ti.Width = defaultWidth

	return model{
		ctxFunc:    func() context.Context { return ctx },
		input:      ti,
		session:    session,
		history:    history,
		historyIdx: history.Len(),
		logger:     logger,
		suggIdx:    -1,
		width:      defaultWidth,
	}
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
		m.input.Width = msg.Width - len(prompt) - 2
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
		b.WriteString(hintStyle.Render("Type rusty source or .help for commands"))
	case len(m.matches) > 0:
		selected := -1
		if m.tabActive {
			selected = m.suggIdx
		}
		b.WriteString(renderCandidates(m.matches, selected, m.width))
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
		if m.tabActive {
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
			m.input.SetValue(m.preTab)
			m.input.CursorEnd()
			m.refresh()
		}
		return m, nil
	}

	if msg.Type == tea.KeyRunes && m.tabActive && msg.String() == " " {
		m.tabActive = false
	} else if msg.Type != tea.KeyRunes {
		m.tabActive = false
	}
	var cmd tea.Cmd
	m.historyIdx = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	m.refresh()
	return m, cmd
}

// cycle moves the selected completion by step, wrapping around. A lone
// candidate is accepted outright.
func (m model) cycle(step int) model {
	if len(m.matches) == 0 {
		return m
	}
	if len(m.matches) == 1 {
		m.replaceWord(m.matches[0].Str)
		m.tabActive = false
		m.matches = nil
		m.suggIdx = -1
		return m
	}
	if !m.tabActive {
		m.tabActive = true
		m.preTab = m.input.Value()
		m.suggIdx = -1
		if step < 0 {
			m.suggIdx = 0
		}
	}
	m.suggIdx = (m.suggIdx + step + len(m.matches)) % len(m.matches)
	m.replaceWord(m.matches[m.suggIdx].Str)
	return m
}

func (m *model) replaceWord(replacement string) {
	input := m.input.Value()
	head := input[:m.wordStart] + replacement
	m.input.SetValue(head + input[m.wordEnd:])
	m.input.SetCursor(utf8.RuneCountInString(head))
	m.wordEnd = m.wordStart + len(replacement)
}

// refresh recomputes completions unless Tab cycling owns them.
func (m *model) refresh() {
	if m.tabActive {
		return
	}
	m.matches, m.wordStart, m.wordEnd = m.computeMatches()
	m.suggIdx = -1
}

func (m model) historyMove(step int) model {
	idx := m.historyIdx + step
	switch {
	case idx < 0:
		return m
	case idx >= m.history.Len():
		m.historyIdx = m.history.Len()
		m.input.SetValue("")
	default:
		line, _ := m.history.Get(idx)
		m.historyIdx = idx
		m.input.SetValue(line)
		m.input.CursorEnd()
	}
	m.tabActive = false
	m.refresh()
	return m
}

func (m model) execute() (model, tea.Cmd) {
	input := m.input.Value()
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	m.input.SetValue("")
	m.matches = nil
	if err := m.history.Add(input); err != nil {
		m.logger.WarnContext(m.ctxFunc(), "could not save history", slog.Any("error", err))
	}
	m.historyIdx = m.history.Len()

	echo := tea.Println(promptStyle.Render(prompt) + inputStyle.Render(input))
	if isCommand(input) {
		return m.command(input, echo)
	}
	m.logger.TraceContext(m.ctxFunc(), "repl eval", slog.String("input", input))
	out, err := m.session.Eval(m.ctxFunc(), input)
	return m, tea.Sequence(echo, printResult(out, err))
}

func (m model) command(input string, echo tea.Cmd) (model, tea.Cmd) {
	cmd, err := parseCommand(input)
	if err != nil {
		return m, tea.Sequence(echo,
			tea.Println(errorStyle.Render("Unknown command: "+strings.TrimSpace(input)+" (try .help)")))
	}
	m.logger.TraceContext(m.ctxFunc(), "repl command", slog.String("input", input))

	switch {
	case cmd.Exit:
		m.quitting = true
		return m, tea.Sequence(echo, tea.Quit)
	case cmd.Help:
		return m, tea.Sequence(echo, tea.Println(hintStyle.Render(helpMessage())))
	case cmd.Clear:
		return m, tea.ClearScreen
	case cmd.Env:
		return m, tea.Sequence(echo, tea.Println(m.session.Env()))
	case cmd.Load != nil:
		out, err := m.session.Load(m.ctxFunc(), *cmd.Load)
		return m, tea.Sequence(echo, printResult(out, err))
	}
	return m, echo
}

func printResult(out string, err error) tea.Cmd {
	var cmds []tea.Cmd
	if out = strings.TrimSuffix(out, "\n"); out != "" {
		cmds = append(cmds, tea.Println(outputStyle.Render(out)))
	}
	if err != nil {
		cmds = append(cmds, tea.Println(errorStyle.Render(err.Error())))
	}
	return tea.Sequence(cmds...)
}
