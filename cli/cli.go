// Package cli provides line-based terminal I/O and meta-command dispatch
// for the Alchemy game.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/nathoo/alchemy/engine"
	"github.com/nathoo/alchemy/engine/parser"
	"github.com/nathoo/alchemy/types"
)

// Prompts shown for the two element names of a turn.
const (
	PromptFirst  = "Enter the first element: "
	PromptSecond = "Enter the second element: "
)

// CLI handles terminal interaction with the player.
type CLI struct {
	Engine    *engine.Engine
	In        io.Reader
	Out       io.Writer
	Trace     bool
	EchoInput bool // echo each input line after the prompt (for script playback)

	scanner *bufio.Scanner
}

// New creates a CLI wired to the given engine.
func New(eng *engine.Engine) *CLI {
	return &CLI{
		Engine: eng,
		In:     os.Stdin,
		Out:    os.Stdout,
	}
}

// Run starts the game loop. It shows the intro and first request, then loops:
// time check → status → two prompts → combine → output.
func (c *CLI) Run() {
	c.scanner = bufio.NewScanner(c.In)

	c.printResult(c.Engine.Start())

	for !c.Engine.State.GameOver {
		if result, over := c.Engine.BeginTurn(); over {
			c.printResult(result)
			return
		}

		c.printStatus()

		first, ok := c.readLine(PromptFirst)
		if !ok {
			c.printResult(c.Engine.Exit())
			return
		}

		cmd := parser.Parse(first)
		switch cmd.Kind {
		case parser.KindEmpty:
			continue
		case parser.KindExit:
			c.printResult(c.Engine.Exit())
			return
		case parser.KindMeta:
			if c.handleMeta(cmd) {
				return // /quit
			}
			continue
		case parser.KindPair:
			c.step(cmd.First, cmd.Second)
			continue
		}

		second, ok := c.readLine(PromptSecond)
		if !ok {
			c.printResult(c.Engine.Exit())
			return
		}
		c.step(cmd.First, second)
	}
}

func (c *CLI) step(first, second string) {
	result := c.Engine.Step(first, second)
	c.printResult(result)
	if c.Trace {
		c.printTrace(result)
	}
}

// readLine prompts and reads one trimmed line. Comment lines (for script
// files) are skipped. Returns false at end of input.
func (c *CLI) readLine(prompt string) (string, bool) {
	c.print(prompt)
	for c.scanner.Scan() {
		input := strings.TrimSpace(c.scanner.Text())
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}
		return input, true
	}
	c.printLine("")
	return "", false
}

// handleMeta dispatches meta-commands. Returns true if the game should exit.
func (c *CLI) handleMeta(cmd parser.Command) bool {
	switch cmd.Meta {
	case "/quit", "/exit":
		c.printResult(c.Engine.Exit())
		return true

	case "/help":
		c.cmdHelp()

	case "/state":
		c.cmdState()

	case "/trace":
		c.Trace = !c.Trace
		if c.Trace {
			c.printSystem("Trace output enabled.")
		} else {
			c.printSystem("Trace output disabled.")
		}

	default:
		c.printSystem(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd.Meta))
	}

	return false
}

func (c *CLI) cmdHelp() {
	for _, line := range HelpLines() {
		c.printLine(line)
	}
}

// HelpLines returns the help text shared by the console front ends.
func HelpLines() []string {
	return []string{
		"System:",
		"  /quit    Exit game (same as typing exit)",
		"  /help    Show this help",
		"  /state   Debug: dump current state",
		"  /trace   Toggle debug trace output",
		"",
		"Playing:",
		"  Enter one element at each prompt, or both at once:",
		"    water + fire",
		"    mix steam with air",
		"  Names are not case-sensitive. Type exit at any prompt to quit.",
	}
}

func (c *CLI) cmdState() {
	for _, line := range StateLines(c.Engine) {
		c.printSystem(line)
	}
}

// StateLines returns a debug dump of the engine state.
func StateLines(e *engine.Engine) []string {
	st := e.Status()
	lines := []string{
		fmt.Sprintf("Turn: %d", st.Turn),
		fmt.Sprintf("Score: %d", st.Score),
		fmt.Sprintf("Discovered: %d/%d", st.Discovered, st.Total),
		fmt.Sprintf("Seed: %d (draws: %d)", e.State.RNGSeed, e.RNG.Position()),
	}
	if n := len(e.State.CommandLog); n > 0 {
		lines = append(lines, fmt.Sprintf("Last move: %s", e.State.CommandLog[n-1]))
	}
	if st.Request != nil {
		lines = append(lines, fmt.Sprintf("Request: %s (%d points)", st.Request.Element(), st.Request.Points()))
	}
	if st.Timed {
		lines = append(lines, fmt.Sprintf("Time: %s left of %s",
			engine.FormatSeconds(st.Remaining), engine.FormatSeconds(e.TimeLimit())))
	}
	return lines
}

// TraceLines formats the events of a result for trace output.
func TraceLines(result types.Result) []string {
	if len(result.Events) == 0 {
		return nil
	}
	lines := []string{fmt.Sprintf("[trace] Events: %d", len(result.Events))}
	for _, e := range result.Events {
		lines = append(lines, fmt.Sprintf("[trace]   %s %s", e.Type, formatData(e.Data)))
	}
	return lines
}

// formatData renders event data with keys sorted, e.g. "element=Steam new=true".
func formatData(data map[string]any) string {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, data[k]))
	}
	return strings.Join(parts, " ")
}

func (c *CLI) printStatus() {
	c.printLine("")
	c.printLine(c.Engine.AvailableLine())
	c.printLine(c.Engine.ScoreLine())
	c.printLine(c.Engine.RequestLine())
	c.printLine("Type 'exit' to quit the game.")
}

func (c *CLI) printTrace(result types.Result) {
	for _, line := range TraceLines(result) {
		c.printLine(line)
	}
}

func (c *CLI) printResult(result types.Result) {
	for _, line := range result.Output {
		c.printLine(line)
	}
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	fmt.Fprintf(c.Out, "[%s]\n", text)
}
