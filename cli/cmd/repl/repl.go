// Package repl implements an interactive query shell over a material.
package repl

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"path/filepath"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/smf/log"
	"github.com/ardnew/smf/material"
	"github.com/ardnew/smf/query"
)

// Loader builds the material the shell queries. It is called once at start
// and again on each reload.
type Loader func(ctx context.Context) (*material.Material, error)

// reloadMsg carries the result of a reload.
type reloadMsg struct {
	m   *material.Material
	err error
}

// editDoneMsg is sent when the external editor exits.
type editDoneMsg struct{ err error }

const (
	evalPrompt = "➜ "
	ctrlPrompt = " :"
)

func helpMessage() string {
	var fns []string

	for _, name := range slices.Sorted(maps.Keys(querySignatures)) {
		fns = append(fns, querySignatures[name].text)
	}

	return `
: Commands (press Esc to toggle mode, or prefix with ':'):

  help     Print this text
  list     List the names an expression can use
  reload   Rebuild the material from its source
  edit     Edit the source in $EDITOR, then reload
  clear    Clear screen
  quit     Exit REPL

Expressions:
  shader, vars, setup, render, and each variable by name
  ` + strings.Join(fns, ", ") + `
  e.g. kind("tint"), len(render), resolve("Sine", "resultVar")

Usage:
  Completions appear automatically as you type
  Press Tab / Shift-Tab to cycle through candidates
  Use Up/Down arrows for history navigation
  Use Shift+Up/Shift+Down for history within the current mode only
  Press Ctrl+C on empty line or Ctrl+D to exit
`
}

// inputMode represents the current input mode.
type inputMode int

const (
	modeEval inputMode = iota
	modeCtrl
)

// Styles.
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	ctrlPromptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("5")).
			Bold(true)
	inputStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	selectedStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
)

// formatCommand formats the echo line of a submitted input.
func formatCommand(mode inputMode, input string) string {
	if mode == modeCtrl {
		return ctrlPromptStyle.Render(ctrlPrompt) + inputStyle.Render(input)
	}

	return promptStyle.Render(evalPrompt) + inputStyle.Render(input)
}

// model is the Bubble Tea model for the REPL.
type model struct {
	ctxFunc      func() context.Context
	load         Loader
	editPath     string
	input        textinput.Model
	material     *material.Material
	env          map[string]any
	logger       log.Logger
	history      *History
	historyIdx   int
	matches      fuzzy.Matches // current fuzzy match results
	wordStart    int           // byte offset of current word start
	wordEnd      int           // byte offset of current word end
	suggIdx      int           // selected candidate index
	tabActive    bool          // whether user is tab-cycling
	preTabText   string        // input text before tab-cycling began
	preTabCursor int           // cursor position before tab-cycling began
	width        int           // terminal width for ellipsization
	quitting     bool
	mode         inputMode
	evalText     string
	evalCursor   int
	ctrlText     string
	ctrlCursor   int
}

// Option configures [Run].
type Option func(*model)

// WithEditPath names the file the edit command opens.
func WithEditPath(path string) Option {
	return func(m *model) { m.editPath = path }
}

// Run loads a material and starts the shell. History is kept in cacheDir,
// or in memory if cacheDir is empty.
func Run(
	ctx context.Context,
	load Loader,
	cacheDir string,
	logger log.Logger,
	opts ...Option,
) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	if load == nil {
		return ErrNoLoader
	}

	mat, err := load(ctx)
	if err != nil {
		return err
	}

	logger.TraceContext(ctx, "repl material loaded",
		slog.String("shader", mat.Shader),
		slog.String("cache_dir", cacheDir),
	)

	var history *History
	if cacheDir == "" {
		history = NewHistory("")
	} else {
		history = NewHistory(filepath.Join(cacheDir, baseHistory))
	}

	if err := history.Load(); err != nil {
		logger.WarnContext(ctx, "could not load history", slog.Any("error", err))
	}

	m := newModel(ctx, load, mat, history, logger)
	for _, opt := range opts {
		opt(&m)
	}

	_, err = tea.NewProgram(m, tea.WithContext(ctx)).Run()

	return err
}

const defaultWidth = 80

func newModel(
	ctx context.Context,
	load Loader,
	mat *material.Material,
	history *History,
	logger log.Logger,
) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(evalPrompt)
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = defaultWidth

	return model{
		ctxFunc:    func() context.Context { return ctx },
		load:       load,
		input:      ti,
		material:   mat,
		env:        query.Env(mat),
		logger:     logger,
		history:    history,
		historyIdx: history.Len(),
		width:      defaultWidth,
		suggIdx:    -1,
		mode:       modeEval,
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
		m.input.Width = msg.Width - len(evalPrompt) - 2

		return m, nil

	case reloadMsg:
		if msg.err != nil {
			return m, tea.Println(errorStyle.Render("reload failed: " + msg.err.Error()))
		}

		m.material = msg.m
		m.env = query.Env(msg.m)
		refreshMatches(&m, false)

		m.logger.TraceContext(m.ctxFunc(), "repl reload complete",
			slog.String("shader", msg.m.Shader))

		return m, tea.Println(resultStyle.Render("reloaded " + msg.m.Shader))

	case editDoneMsg:
		if msg.err != nil {
			return m, tea.Println(errorStyle.Render("edit failed: " + msg.err.Error()))
		}

		return m, m.reload()
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
	b.WriteString(m.hintLine())
	b.WriteString("\n")

	return b.String()
}

// hintLine renders the line below the prompt: a history position, a usage
// hint, a signature hint, or the completion bar.
func (m model) hintLine() string {
	input := m.input.Value()

	if m.historyIdx < m.history.Len() {
		return hintStyle.Render(fmt.Sprintf("%s/%d",
			lipgloss.NewStyle().Bold(true).Render(strconv.Itoa(m.historyIdx+1)),
			m.history.Len()))
	}

	if strings.TrimSpace(input) == "" {
		if m.mode == modeEval {
			return hintStyle.Render("Type an expression or press Esc for commands")
		}

		return hintStyle.Render("Type: " + strings.Join(ctrlCommands, ", ") +
			" (press Esc to return)")
	}

	if m.mode == modeEval && len(m.matches) == 0 {
		call := detectFunctionCall(input, m.input.Position())
		if s, ok := signatureOf(call.name); call.inCall && ok {
			return renderSignatureHint(call.name, s, call.argIndex)
		}
	}

	return renderCandidateBar(m.matches, m.suggIdx, m.tabActive, m.width, m.isFunc)
}

func (m model) isFunc(name string) bool {
	if v, ok := m.env[name]; ok {
		return isFuncValue(v)
	}

	_, ok := exprSignatures[name]

	return ok
}

func isFuncValue(v any) bool {
	t := reflect.TypeOf(v)

	return t != nil && t.Kind() == reflect.Func
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
		refreshMatches(&m, false)

		return m, nil

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		return m, nil

	case tea.KeyEnter:
		if !m.tabActive || len(m.matches) == 0 {
			return m.executeInput()
		}

		m.tabActive = false
		refreshMatches(&m, true)

		return m, nil

	case tea.KeyTab:
		return m.cycle(1), nil

	case tea.KeyShiftTab:
		return m.cycle(-1), nil

	case tea.KeyUp:
		return m.historyStep(-1, false), nil

	case tea.KeyDown:
		return m.historyStep(1, false), nil

	case tea.KeyShiftUp:
		return m.historyStep(-1, true), nil

	case tea.KeyShiftDown:
		return m.historyStep(1, true), nil

	case tea.KeyEsc:
		if m.tabActive {
			m.tabActive = false
			m.input.SetValue(m.preTabText)
			m.input.SetCursor(m.preTabCursor)
			refreshMatches(&m, false)

			return m, nil
		}

		return m.switchToMode(1 - m.mode), nil
	}

	if msg.Type == tea.KeyRunes && m.tabActive && msg.String() == " " {
		m.tabActive = false
	}

	if msg.Type != tea.KeyRunes {
		m.tabActive = false
	}

	var cmd tea.Cmd

	m.historyIdx = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	refreshMatches(&m, msg.Type == tea.KeyRunes)

	return m, cmd
}

// cycle moves the tab selection by step. A single candidate is completed and
// confirmed immediately.
func (m model) cycle(step int) model {
	n := len(m.matches)
	if n == 0 {
		return m
	}

	if n == 1 {
		replaceCurrentWord(&m, m.matches[0].Str)
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil

		return m
	}

	if m.tabActive {
		m.suggIdx = (m.suggIdx + step + n) % n
	} else {
		m.tabActive = true
		m.preTabText = m.input.Value()
		m.preTabCursor = m.input.Position()
		m.suggIdx = 0

		if step < 0 {
			m.suggIdx = n - 1
		}
	}

	replaceCurrentWord(&m, m.matches[m.suggIdx].Str)

	return m
}

// replaceCurrentWord replaces the current word in the input with replacement
// and moves the cursor after it.
func replaceCurrentWord(m *model, replacement string) {
	input := m.input.Value()
	cursor := m.wordStart + len(replacement)

	m.input.SetValue(input[:m.wordStart] + replacement + input[m.wordEnd:])
	m.input.SetCursor(cursor)

	m.wordEnd = cursor
}

// refreshMatches recomputes fuzzy matches for the current input. With
// autoConfirm it also confirms a sole candidate the typed word already
// equals; it is false for deletions and cursor movement so editing never
// completes unexpectedly.
func refreshMatches(m *model, autoConfirm bool) {
	m.matches, m.wordStart, m.wordEnd = m.computeMatches()

	if !m.tabActive {
		m.suggIdx = -1
	}

	if !autoConfirm || len(m.matches) != 1 {
		return
	}

	if m.input.Value()[m.wordStart:m.wordEnd] == m.matches[0].Str {
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil
	}
}

func (m model) executeInput() (model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	if input == "" {
		return m, nil
	}

	mode := m.mode
	if s, ok := strings.CutPrefix(input, ":"); ok && mode == modeEval {
		mode, input = modeCtrl, strings.TrimSpace(s)
	}

	m.evalText, m.evalCursor = "", 0
	m.ctrlText, m.ctrlCursor = "", 0
	m.input.SetValue("")
	m.matches = nil

	if err := m.history.Add(input, mode); err != nil {
		m.logger.WarnContext(m.ctxFunc(), "could not save history",
			slog.Any("error", err))
	}

	m.historyIdx = m.history.Len()

	if mode == modeCtrl {
		return m.executeCommand(input)
	}

	echo := tea.Println(formatCommand(modeEval, input))

	result, err := query.Eval(m.ctxFunc(), input, m.material)
	if err != nil {
		m.logger.TraceContext(m.ctxFunc(), "repl eval failed",
			slog.String("input", input), slog.Any("error", err))

		return m, tea.Sequence(echo, tea.Println(errorStyle.Render("error: "+err.Error())))
	}

	m.logger.TraceContext(m.ctxFunc(), "repl eval",
		slog.String("input", input),
		slog.String("result_type", fmt.Sprintf("%T", result)))

	return m, tea.Sequence(echo, tea.Println(resultStyle.Render(query.FormatResult(result))))
}

func (m model) executeCommand(input string) (model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}

	echo := tea.Println(formatCommand(modeCtrl, input))

	m.logger.TraceContext(m.ctxFunc(), "repl command",
		slog.String("command", parts[0]), slog.Any("args", parts[1:]))

	switch parts[0] {
	case "q", "quit", "exit":
		m.quitting = true

		return m, tea.Sequence(echo, tea.Quit)

	case "h", "help":
		return m, tea.Sequence(echo, tea.Println(helpMessage()))

	case "l", "list":
		return m, tea.Sequence(echo, tea.Println(m.list()))

	case "r", "reload":
		return m, tea.Sequence(echo, m.reload())

	case "e", "edit":
		if m.editPath == "" {
			return m, tea.Sequence(echo,
				tea.Println(errorStyle.Render(ErrNoEditPath.Error())))
		}

		return m, tea.Sequence(echo, editCmd(m.editPath))

	case "c", "clear":
		return m, tea.ClearScreen

	default:
		return m, tea.Println(
			errorStyle.Render("Unknown command: " + parts[0] + " (try 'help')"),
		)
	}
}

// reload returns a command that rebuilds the material.
func (m model) reload() tea.Cmd {
	ctx, load := m.ctxFunc(), m.load

	return func() tea.Msg {
		mat, err := load(ctx)

		return reloadMsg{m: mat, err: err}
	}
}

// list renders every environment name with a preview of its value.
func (m model) list() string {
	var b strings.Builder

	for _, name := range slices.Sorted(maps.Keys(m.env)) {
		v := m.env[name]

		if isFuncValue(v) {
			if s, ok := signatureOf(name); ok {
				fmt.Fprintf(&b, "  %s %s\n", name, hintStyle.Render(s.text))
			}

			continue
		}

		fmt.Fprintf(&b, "  %s %s\n", name, hintStyle.Render(preview(v)))
	}

	return strings.TrimRight(b.String(), "\n")
}

// historyStep moves through history by step. With sameMode only entries of
// the current mode are visited; otherwise the mode follows the entry.
func (m model) historyStep(step int, sameMode bool) model {
	for i := m.historyIdx + step; 0 <= i && i < m.history.Len(); i += step {
		entry, err := m.history.Entry(i)
		if err != nil {
			break
		}

		if sameMode && entry.Mode != m.mode {
			continue
		}

		if entry.Mode != m.mode {
			m = m.switchToMode(entry.Mode)
		}

		m.historyIdx = i
		m.input.SetValue(entry.Line)
		m.input.SetCursor(len(entry.Line))
		refreshMatches(&m, false)

		return m
	}

	if step > 0 && m.historyIdx < m.history.Len() {
		m.historyIdx = m.history.Len()
		m.input.SetValue("")
		refreshMatches(&m, false)
	}

	return m
}

// switchToMode switches to mode, keeping each mode's pending input.
func (m model) switchToMode(mode inputMode) model {
	if m.mode == modeEval {
		m.evalText, m.evalCursor = m.input.Value(), m.input.Position()
	} else {
		m.ctrlText, m.ctrlCursor = m.input.Value(), m.input.Position()
	}

	m.mode = mode

	if mode == modeEval {
		m.input.Prompt = promptStyle.Render(evalPrompt)
		m.input.SetValue(m.evalText)
		m.input.SetCursor(m.evalCursor)
	} else {
		m.input.Prompt = ctrlPromptStyle.Render(ctrlPrompt)
		m.input.SetValue(m.ctrlText)
		m.input.SetCursor(m.ctrlCursor)
	}

	refreshMatches(&m, false)

	return m
}
