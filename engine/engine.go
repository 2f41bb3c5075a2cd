// Package engine provides the turn orchestrator that wires together name
// resolution, combination, requests, scoring, and the time budget.
package engine

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nathoo/alchemy/engine/alchemy"
	"github.com/nathoo/alchemy/engine/parser"
	"github.com/nathoo/alchemy/engine/request"
	"github.com/nathoo/alchemy/engine/resolve"
	"github.com/nathoo/alchemy/engine/state"
	"github.com/nathoo/alchemy/types"
)

// Event types emitted in Result.Events.
const (
	EventElementCreated   = "element_created"
	EventNoCombination    = "no_combination"
	EventInvalidElement   = "invalid_element"
	EventRequestIssued    = "request_issued"
	EventRequestFulfilled = "request_fulfilled"
	EventGameWon          = "game_won"
	EventTimeUp           = "time_up"
	EventExit             = "exit"
)

// Options configures a new engine.
type Options struct {
	Seed      int64
	TimeLimit time.Duration // zero disables the time budget
	TimeBonus time.Duration // added to the limit per fulfilled request
}

// Engine holds the game definitions and mutable state.
type Engine struct {
	Defs    *state.Defs
	State   *types.State
	Alchemy *alchemy.Alchemy
	RNG     *RNG
	Request request.Request // nil when no request is active

	// Clock supplies the current time. Replace it before Start in tests.
	Clock func() time.Time

	timeLimit time.Duration
	timeBonus time.Duration
	started   time.Time
}

// Status is a snapshot of the game for status displays.
type Status struct {
	Score      int
	Request    request.Request
	Discovered int
	Total      int
	Turn       int
	Timed      bool
	Remaining  time.Duration
	GameOver   bool
	Won        bool
}

// New creates a new engine from definitions.
func New(defs *state.Defs, opts Options) *Engine {
	return &Engine{
		Defs:      defs,
		State:     state.NewState(opts.Seed),
		Alchemy:   alchemy.New(defs),
		RNG:       NewRNG(opts.Seed),
		Clock:     time.Now,
		timeLimit: opts.TimeLimit,
		timeBonus: opts.TimeBonus,
	}
}

// Timed reports whether the game runs against a time budget.
func (e *Engine) Timed() bool {
	return e.timeLimit > 0
}

// TimeLimit returns the current time limit.
func (e *Engine) TimeLimit() time.Duration {
	return e.timeLimit
}

// Start begins the clock and issues the first request. It returns the
// introduction text.
func (e *Engine) Start() types.Result {
	var result types.Result
	e.started = e.Clock()

	if e.Defs.Game.Intro != "" {
		result.Output = append(result.Output, e.Defs.Game.Intro)
	}
	if e.Timed() {
		line := fmt.Sprintf("You have %s.", FormatSeconds(e.timeLimit))
		if e.timeBonus > 0 {
			line += fmt.Sprintf(" Each fulfilled request adds %s.", FormatSeconds(e.timeBonus))
		}
		result.Output = append(result.Output, line)
	}
	e.issueRequest(&result)
	return result
}

// IsExit reports whether token is the reserved exit token.
func (e *Engine) IsExit(token string) bool {
	return parser.IsExit(token)
}

// BeginTurn checks the time budget before input is read. It returns true
// if the game is over.
func (e *Engine) BeginTurn() (types.Result, bool) {
	var result types.Result

	if e.State.GameOver {
		result.Output = append(result.Output, "Game over.")
		return result, true
	}

	if e.Timed() && e.elapsed() > e.timeLimit {
		e.State.GameOver = true
		result.Output = append(result.Output,
			"Time's up!",
			fmt.Sprintf("Final score: %d", e.State.Score))
		result.Events = append(result.Events, types.Event{
			Type: EventTimeUp,
			Data: map[string]any{"limit": e.timeLimit.String(), "score": e.State.Score},
		})
		return result, true
	}

	return result, false
}

// Step resolves one combination attempt and returns the result.
func (e *Engine) Step(first, second string) types.Result {
	var result types.Result

	// 0. Game over blocks everything.
	if e.State.GameOver {
		result.Output = append(result.Output, "Game over.")
		return result
	}

	// 1. Exit token at either position.
	if e.IsExit(first) || e.IsExit(second) {
		return e.Exit()
	}

	// 2. Resolve both names. Any failure skips the turn untouched.
	a, errA := resolve.Resolve(e.Alchemy, parser.Normalize(first))
	b, errB := resolve.Resolve(e.Alchemy, parser.Normalize(second))
	if errA != nil || errB != nil {
		result.Output = append(result.Output, "One or both elements are not valid.")
		for _, err := range []error{errA, errB} {
			var nf *resolve.NotFoundError
			if errors.As(err, &nf) {
				if len(nf.Suggestions) > 0 {
					result.Output = append(result.Output,
						fmt.Sprintf("Did you mean %s?", strings.Join(nf.Suggestions, ", ")))
				}
				result.Events = append(result.Events, types.Event{
					Type: EventInvalidElement,
					Data: map[string]any{"name": nf.Name},
				})
			}
		}
		return result
	}

	// 3. Combine.
	product, ok := e.Alchemy.Combine(a, b)
	e.State.TurnCount++
	e.State.CommandLog = append(e.State.CommandLog, a.Name+" + "+b.Name)
	if !ok {
		result.Output = append(result.Output, "No combination found for these elements.")
		result.Events = append(result.Events, types.Event{
			Type: EventNoCombination,
			Data: map[string]any{"first": a.Name, "second": b.Name},
		})
		return result
	}

	isNew := e.Alchemy.AddDiscovered(product.Name)
	result.Output = append(result.Output, fmt.Sprintf("You created: %s from %s and %s", product, a, b))
	if isNew {
		result.Output = append(result.Output, fmt.Sprintf("New element discovered: %s!", product))
	}
	result.Events = append(result.Events, types.Event{
		Type: EventElementCreated,
		Data: map[string]any{"element": product.Name, "new": isNew},
	})

	// 4. Request check.
	if e.Request != nil && e.Request.Element() == product.Name {
		e.fulfil(&result)
	}

	// 5. Win check.
	if e.Alchemy.Complete() {
		e.State.GameOver = true
		e.State.Won = true
		result.Output = append(result.Output,
			fmt.Sprintf("Congratulations! You discovered all %d elements.", e.Alchemy.TotalElements()),
			fmt.Sprintf("Final score: %d", e.State.Score))
		result.Events = append(result.Events, types.Event{
			Type: EventGameWon,
			Data: map[string]any{"score": e.State.Score},
		})
	}

	return result
}

// Exit ends the session without touching score or discoveries.
func (e *Engine) Exit() types.Result {
	var result types.Result
	if e.State.GameOver {
		return result
	}
	e.State.GameOver = true
	result.Output = append(result.Output,
		"Thanks for playing!",
		fmt.Sprintf("Final score: %d", e.State.Score))
	result.Events = append(result.Events, types.Event{
		Type: EventExit,
		Data: map[string]any{"score": e.State.Score},
	})
	return result
}

// Status returns a snapshot of the current game.
func (e *Engine) Status() Status {
	st := Status{
		Score:      e.State.Score,
		Request:    e.Request,
		Discovered: e.Alchemy.DiscoveredCount(),
		Total:      e.Alchemy.TotalElements(),
		Turn:       e.State.TurnCount,
		Timed:      e.Timed(),
		GameOver:   e.State.GameOver,
		Won:        e.State.Won,
	}
	if st.Timed {
		st.Remaining = e.timeLimit - e.elapsed()
		if st.Remaining < 0 {
			st.Remaining = 0
		}
	}
	return st
}

// AvailableLine lists the discovered elements.
func (e *Engine) AvailableLine() string {
	return "Available elements: " + strings.Join(e.Alchemy.Discovered(), ", ")
}

// RequestLine describes the active request.
func (e *Engine) RequestLine() string {
	if e.Request == nil {
		return "Current request: none"
	}
	return "Current request: " + e.Request.Describe()
}

// ScoreLine reports the score, and the time left in the timed variant.
func (e *Engine) ScoreLine() string {
	line := fmt.Sprintf("Score: %d", e.State.Score)
	if st := e.Status(); st.Timed {
		line += fmt.Sprintf(" | Time left: %s", FormatSeconds(st.Remaining))
	}
	return line
}

// fulfil awards the active request and replaces it.
func (e *Engine) fulfil(result *types.Result) {
	points := e.Request.Points()
	e.State.Score += points
	result.Output = append(result.Output,
		fmt.Sprintf("Request fulfilled! +%d points. Score: %d", points, e.State.Score))
	result.Events = append(result.Events, types.Event{
		Type: EventRequestFulfilled,
		Data: map[string]any{"element": e.Request.Element(), "points": points},
	})

	if e.Timed() && e.timeBonus > 0 {
		e.timeLimit += e.timeBonus
		result.Output = append(result.Output,
			fmt.Sprintf("Time limit extended by %s.", FormatSeconds(e.timeBonus)))
	}

	e.issueRequest(result)
}

// issueRequest replaces the active request with a fresh one, or clears it
// when every element is already known.
func (e *Engine) issueRequest(result *types.Result) {
	req, ok := request.Generate(e.Alchemy, e.RNG)
	if !ok {
		e.Request = nil
		result.Output = append(result.Output, "No new requests: you're close to mastering alchemy!")
		return
	}
	e.Request = req
	result.Output = append(result.Output, "New request: "+req.Describe())
	result.Events = append(result.Events, types.Event{
		Type: EventRequestIssued,
		Data: map[string]any{"element": req.Element(), "points": req.Points()},
	})
}

// elapsed is zero until Start runs.
func (e *Engine) elapsed() time.Duration {
	if e.started.IsZero() {
		return 0
	}
	return e.Clock().Sub(e.started)
}

// FormatSeconds renders a duration as whole seconds, e.g. "42s".
func FormatSeconds(d time.Duration) string {
	return fmt.Sprintf("%ds", int(d/time.Second))
}
