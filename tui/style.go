package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles used throughout the TUI.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleStatusWarn = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("208")).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleText = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleElements = lipgloss.NewStyle().
			Bold(true)

	styleCreated = lipgloss.NewStyle().
			Foreground(lipgloss.Color("81"))

	styleRequest = lipgloss.NewStyle().
			Foreground(lipgloss.Color("228"))

	styleVictory = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Bold(true)

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	stylePlayerInput = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleTrace = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// lineKind identifies the type of an output line for styling.
type lineKind int

const (
	kindText lineKind = iota
	kindAvailable
	kindCreated
	kindRequest
	kindVictory
	kindSystem
	kindError
	kindTrace
)

const availablePrefix = "Available elements: "

// classifyLine determines what kind of output line this is.
func classifyLine(line string) lineKind {
	switch {
	case strings.HasPrefix(line, "[trace]"):
		return kindTrace
	case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
		return kindSystem
	case strings.HasPrefix(line, availablePrefix):
		return kindAvailable
	case strings.HasPrefix(line, "You created:"),
		strings.HasPrefix(line, "New element discovered:"):
		return kindCreated
	case strings.HasPrefix(line, "New request:"),
		strings.HasPrefix(line, "Current request:"),
		strings.HasPrefix(line, "Request fulfilled!"),
		strings.HasPrefix(line, "Time limit extended"):
		return kindRequest
	case strings.HasPrefix(line, "Congratulations!"):
		return kindVictory
	case strings.HasPrefix(line, "One or both"),
		strings.HasPrefix(line, "No combination"),
		strings.HasPrefix(line, "Did you mean"),
		strings.HasPrefix(line, "Time's up!"):
		return kindError
	default:
		return kindText
	}
}

// renderLineKind applies the style for a classified line.
func renderLineKind(line string, kind lineKind) string {
	switch kind {
	case kindAvailable:
		return styledAvailable(line)
	case kindCreated:
		return styleCreated.Render(line)
	case kindRequest:
		return styleRequest.Render(line)
	case kindVictory:
		return styleVictory.Render(line)
	case kindSystem:
		return styleSystem.Render(line)
	case kindError:
		return styleError.Render(line)
	case kindTrace:
		return styleTrace.Render(line)
	default:
		return styleText.Render(line)
	}
}

// styledAvailable renders "Available elements: a, b" with the names bold.
func styledAvailable(line string) string {
	if !strings.HasPrefix(line, availablePrefix) {
		return styleText.Render(line)
	}
	return styleText.Render(availablePrefix) + styleElements.Render(line[len(availablePrefix):])
}

// styledSystemMsg renders a system message in gray with brackets.
func styledSystemMsg(text string) string {
	return styleSystem.Render("[" + text + "]")
}
