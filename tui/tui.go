package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nathoo/alchemy/cli"
	"github.com/nathoo/alchemy/engine"
	"github.com/nathoo/alchemy/engine/parser"
	"github.com/nathoo/alchemy/types"
)

// Input prompts. While the first element is pending the prompt shows it.
const (
	promptReady    = "> "
	promptFinished = "[press enter to quit] "
)

// rawLine stores an unstyled output line with its classification,
// so we can re-wrap and re-style when the terminal is resized.
type rawLine struct {
	text     string
	kind     lineKind
	isInput  bool // true for echoed player input
	isSystem bool // true for system messages
}

// Model is the Bubble Tea model for the Alchemy TUI.
type Model struct {
	engine *engine.Engine

	viewport viewport.Model
	input    textinput.Model
	history  *History

	rawLines []rawLine // accumulated narrative lines (unstyled, for re-wrapping)

	pendingFirst string // first element of a turn awaiting its partner

	width    int
	height   int
	ready    bool
	trace    bool
	finished bool // game over; next enter quits
	quitting bool
}

// startMsg triggers the intro once the program is running.
type startMsg struct{}

// tickMsg refreshes the status bar clock.
type tickMsg time.Time

// gameOutputMsg carries output into the Update loop.
type gameOutputMsg struct {
	input    string   // echoed player input (empty for intro)
	lines    []string // output lines
	isSystem bool     // true for meta-command output
}

// New creates a TUI model wired to the given engine.
func New(eng *engine.Engine, trace bool) Model {
	ti := textinput.New()
	ti.Prompt = promptReady
	ti.Placeholder = "water + fire"
	ti.Focus()
	ti.CharLimit = 256
	ti.PromptStyle = styleInputPrompt

	return Model{
		engine:  eng,
		input:   ti,
		history: NewHistory(100),
		trace:   trace,
	}
}

// Run starts the Bubble Tea program.
func Run(eng *engine.Engine, trace bool) error {
	m := New(eng, trace)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

// Init returns the initial commands: cursor blink, intro, and clock.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, start, tick())
}

func start() tea.Msg {
	return startMsg{}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages (key presses, window resize, game output).
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		vpHeight := m.height - 2 // 1 status bar + 1 input line
		if vpHeight < 1 {
			vpHeight = 1
		}

		if !m.ready {
			m.viewport = viewport.New(m.width, vpHeight)
			m.viewport.KeyMap = viewportKeyMap()
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = vpHeight
		}

		m.refreshViewport()

	case startMsg:
		m = m.appendOutput(gameOutputMsg{lines: m.introLines()})

	case tickMsg:
		if m.quitting || m.finished {
			return m, nil
		}
		return m, tick()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "enter":
			return m.handleEnter()

		case "esc":
			if m.pendingFirst != "" {
				m.pendingFirst = ""
				m.input.Prompt = promptReady
			}
			return m, nil

		case "up":
			if prev, ok := m.history.Prev(); ok {
				m.input.SetValue(prev)
				m.input.CursorEnd()
			}
			return m, nil

		case "down":
			if next, ok := m.history.Next(); ok {
				m.input.SetValue(next)
				m.input.CursorEnd()
			} else {
				m.input.SetValue("")
				m.history.ResetCursor()
			}
			return m, nil

		case "pgup", "pgdown":
			var vpCmd tea.Cmd
			m.viewport, vpCmd = m.viewport.Update(msg)
			return m, vpCmd
		}

	case gameOutputMsg:
		m = m.appendOutput(msg)
	}

	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	cmds = append(cmds, inputCmd)

	return m, tea.Batch(cmds...)
}

func (m Model) introLines() []string {
	defs := m.engine.Defs
	lines := []string{defs.Game.Title + " v" + defs.Game.Version + " by " + defs.Game.Author, ""}
	lines = append(lines, m.engine.Start().Output...)
	lines = append(lines, m.engine.AvailableLine(), "Type two elements (water + fire), or one at a time. /help for help.")
	return lines
}

// handleEnter processes the submitted input line.
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")

	if m.finished {
		m.quitting = true
		return m, tea.Quit
	}

	if input != "" {
		m.history.Push(input)
	}
	m.history.ResetCursor()

	// Second element of a two-stage turn.
	if m.pendingFirst != "" {
		if input == "" {
			return m, nil
		}
		first := m.pendingFirst
		m.pendingFirst = ""
		m.input.Prompt = promptReady
		return m.step(first+" + "+input, first, input), nil
	}

	cmd := parser.Parse(input)
	switch cmd.Kind {
	case parser.KindEmpty:
		return m, nil

	case parser.KindMeta:
		output, quit := m.handleMeta(cmd)
		m = m.appendOutput(gameOutputMsg{input: input, lines: output, isSystem: true})
		if quit {
			m = m.finish()
		}
		return m, nil
	}

	// Anything else starts a turn: check the clock first.
	if result, over := m.engine.BeginTurn(); over {
		m = m.appendOutput(gameOutputMsg{input: input, lines: m.withTrace(result)})
		return m.finish(), nil
	}

	switch cmd.Kind {
	case parser.KindExit:
		m = m.appendOutput(gameOutputMsg{input: input, lines: m.engine.Exit().Output})
		return m.finish(), nil

	case parser.KindPair:
		return m.step(input, cmd.First, cmd.Second), nil

	default:
		m.pendingFirst = cmd.First
		m.input.Prompt = cmd.First + " + "
		return m, nil
	}
}

// step runs one combination and appends its output.
func (m Model) step(echo, first, second string) Model {
	result := m.engine.Step(first, second)
	lines := m.withTrace(result)
	if discoveredNew(result) {
		lines = append(lines, m.engine.AvailableLine())
	}
	m = m.appendOutput(gameOutputMsg{input: echo, lines: lines})
	if m.engine.State.GameOver {
		m = m.finish()
	}
	return m
}

func (m Model) withTrace(result types.Result) []string {
	lines := result.Output
	if m.trace {
		lines = append(lines, cli.TraceLines(result)...)
	}
	return lines
}

// finish switches the input line to "press enter to quit".
func (m Model) finish() Model {
	m.finished = true
	m.pendingFirst = ""
	m.input.Prompt = promptFinished
	m.input.Placeholder = ""
	return m
}

// discoveredNew reports whether a step added a new element.
func discoveredNew(result types.Result) bool {
	for _, ev := range result.Events {
		if ev.Type == engine.EventElementCreated && ev.Data["new"] == true {
			return true
		}
	}
	return false
}

// appendOutput adds lines to the narrative and refreshes the viewport.
func (m Model) appendOutput(msg gameOutputMsg) Model {
	if msg.input != "" {
		m.rawLines = append(m.rawLines, rawLine{
			text: "> " + msg.input, isInput: true,
		})
	}

	for _, line := range msg.lines {
		rl := rawLine{text: line, isSystem: msg.isSystem}
		if !msg.isSystem {
			rl.kind = classifyLine(line)
		}
		m.rawLines = append(m.rawLines, rl)
	}

	// Blank line separator between turns.
	m.rawLines = append(m.rawLines, rawLine{})

	m.refreshViewport()

	return m
}

// refreshViewport re-wraps and re-styles all raw lines at the current width
// and updates the viewport content.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}

	width := m.width
	if width < 10 {
		width = 10
	}

	var styled []string
	for _, rl := range m.rawLines {
		if rl.text == "" {
			styled = append(styled, "")
			continue
		}

		wrapped := wordWrap(rl.text, width)

		switch {
		case rl.isInput:
			styled = append(styled, stylePlayerInput.Render(wrapped))
		case rl.isSystem:
			styled = append(styled, styledSystemMsg(wrapped))
		default:
			styled = append(styled, renderLineKind(wrapped, rl.kind))
		}
	}

	m.viewport.SetContent(strings.Join(styled, "\n"))
	m.viewport.GotoBottom()
}

// wordWrap wraps text to fit within the given width, breaking at word
// boundaries.
func wordWrap(text string, width int) string {
	if width <= 0 || len(text) <= width {
		return text
	}

	var result strings.Builder
	words := strings.Fields(text)
	lineLen := 0

	for i, word := range words {
		wLen := len(word)

		if i == 0 {
			result.WriteString(word)
			lineLen = wLen
			continue
		}

		if lineLen+1+wLen > width {
			result.WriteString("\n")
			result.WriteString(word)
			lineLen = wLen
		} else {
			result.WriteString(" ")
			result.WriteString(word)
			lineLen += 1 + wLen
		}
	}

	return result.String()
}

// View renders the full TUI layout: viewport + status bar + input.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	return m.viewport.View() + "\n" + m.renderStatusBar() + "\n" + m.input.View()
}

// handleMeta dispatches meta-commands. Returns output lines and quit flag.
func (m *Model) handleMeta(cmd parser.Command) ([]string, bool) {
	switch cmd.Meta {
	case "/quit", "/exit":
		return m.engine.Exit().Output, true

	case "/help":
		return append(cli.HelpLines(), "",
			"Navigation: PgUp/PgDn to scroll, Up/Down for history, Esc to cancel a half-entered pair"), false

	case "/state":
		return cli.StateLines(m.engine), false

	case "/trace":
		m.trace = !m.trace
		if m.trace {
			return []string{"Trace output enabled."}, false
		}
		return []string{"Trace output disabled."}, false

	default:
		return []string{fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd.Meta)}, false
	}
}

// viewportKeyMap returns a viewport keymap with Up/Down disabled
// (we use those for input history).
func viewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		Up:           key.NewBinding(key.WithDisabled()),
		Down:         key.NewBinding(key.WithDisabled()),
	}
}
