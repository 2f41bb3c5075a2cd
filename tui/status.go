package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/alchemy/engine"
)

// lowTime is when the clock in the status bar turns to the warning color.
const lowTime = 10 * time.Second

// renderStatusBar produces a full-width inverted status line showing
// score, current request, discovery progress, time left, and turn count.
func (m Model) renderStatusBar() string {
	st := m.engine.Status()

	request := "none"
	if st.Request != nil {
		request = fmt.Sprintf("%s (%d)", st.Request.Element(), st.Request.Points())
	}

	left := fmt.Sprintf(" Score: %d | Request: %s", st.Score, request)
	right := fmt.Sprintf("%d/%d | T:%d ", st.Discovered, st.Total, st.Turn)

	clock := ""
	if st.Timed {
		clock = engine.FormatSeconds(st.Remaining) + " left | "
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(clock) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	style := styleStatusBar
	if st.Timed && st.Remaining <= lowTime {
		style = styleStatusWarn
	}

	bar := left + strings.Repeat(" ", gap) + clock + right
	return style.Width(m.width).Render(bar)
}
