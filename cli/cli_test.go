package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/nathoo/alchemy/engine"
	"github.com/nathoo/alchemy/engine/request"
	"github.com/nathoo/alchemy/engine/state"
	"github.com/nathoo/alchemy/types"
)

// testDefs returns the built-in element and recipe table for CLI testing.
func testDefs() *state.Defs {
	defs := &state.Defs{
		Game: types.GameDef{
			Title: "Test Game",
			Intro: "Welcome to the test.",
		},
	}
	for _, name := range []string{"Water", "Fire", "Earth", "Air", "Metal", "Wood"} {
		defs.Elements = append(defs.Elements, types.Element{Name: name})
	}
	for _, r := range [][3]string{
		{"Water", "Fire", "Steam"},
		{"Water", "Earth", "Mud"},
		{"Fire", "Air", "Smoke"},
		{"Earth", "Air", "Dust"},
		{"Wood", "Fire", "Charcoal"},
		{"Metal", "Fire", "Liquid Metal"},
		{"Water", "Air", "Cloud"},
		{"Steam", "Air", "Cloud"},
		{"Mud", "Earth", "Clay"},
	} {
		defs.Recipes = append(defs.Recipes, types.RecipeDef{First: r[0], Second: r[1], Result: r[2]})
	}
	return defs
}

func newTestCLI(t *testing.T, input string) (*CLI, *bytes.Buffer) {
	t.Helper()
	eng := engine.New(testDefs(), engine.Options{Seed: 3})
	var out bytes.Buffer
	c := &CLI{
		Engine: eng,
		In:     strings.NewReader(input),
		Out:    &out,
	}
	return c, &out
}

func TestCLI_IntroAndStatus(t *testing.T) {
	c, out := newTestCLI(t, "exit\n")
	c.Run()

	output := out.String()
	for _, want := range []string{
		"Welcome to the test.",
		"Available elements: Water, Fire, Earth, Air, Metal, Wood",
		"Score: 0",
		"Current request: Create",
		"Type 'exit' to quit the game.",
		PromptFirst,
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}
}

func TestCLI_TwoPrompts(t *testing.T) {
	c, out := newTestCLI(t, "Water\nFire\nexit\n")
	c.Run()

	output := out.String()
	if !strings.Contains(output, PromptSecond) {
		t.Error("expected second prompt")
	}
	if !strings.Contains(output, "You created: Steam from Water and Fire") {
		t.Errorf("expected Steam, got:\n%s", output)
	}
	if !strings.Contains(output, "Available elements: Water, Fire, Earth, Air, Metal, Wood, Steam") {
		t.Errorf("expected Steam in available list, got:\n%s", output)
	}
}

func TestCLI_OneLinePair(t *testing.T) {
	c, out := newTestCLI(t, "water + earth\nexit\n")
	c.Run()

	output := out.String()
	if !strings.Contains(output, "You created: Mud from Water and Earth") {
		t.Errorf("expected Mud, got:\n%s", output)
	}
	if strings.Contains(output, PromptSecond) {
		t.Error("one-line pair should not ask for a second element")
	}
}

func TestCLI_ExitAtFirstPrompt(t *testing.T) {
	c, out := newTestCLI(t, "EXIT\nWater\nFire\n")
	c.Run()

	output := out.String()
	if strings.Contains(output, PromptSecond) {
		t.Error("exit at first prompt should not ask for the second element")
	}
	if strings.Contains(output, "You created") {
		t.Error("no turn should run after exit")
	}
	if !strings.Contains(output, "Final score: 0") {
		t.Errorf("expected final score, got:\n%s", output)
	}
	if !c.Engine.State.GameOver {
		t.Error("expected game over")
	}
}

func TestCLI_ExitAtSecondPrompt(t *testing.T) {
	c, out := newTestCLI(t, "Water\nexit\n")
	c.Run()

	if strings.Contains(out.String(), "You created") {
		t.Error("no combination should happen")
	}
	if c.Engine.Alchemy.DiscoveredCount() != 6 {
		t.Errorf("discovered set changed: %d", c.Engine.Alchemy.DiscoveredCount())
	}
	if c.Engine.State.Score != 0 {
		t.Errorf("score changed: %d", c.Engine.State.Score)
	}
}

func TestCLI_InvalidElement(t *testing.T) {
	c, out := newTestCLI(t, "Plasma\nFire\nexit\n")
	c.Run()

	if !strings.Contains(out.String(), "One or both elements are not valid.") {
		t.Errorf("expected invalid message, got:\n%s", out.String())
	}
}

func TestCLI_NoCombination(t *testing.T) {
	c, out := newTestCLI(t, "Metal\nWood\nexit\n")
	c.Run()

	if !strings.Contains(out.String(), "No combination found for these elements.") {
		t.Errorf("expected no-combination message, got:\n%s", out.String())
	}
}

func TestCLI_EOFEndsGame(t *testing.T) {
	c, out := newTestCLI(t, "Water\n")
	c.Run()

	if !c.Engine.State.GameOver {
		t.Error("expected game over at end of input")
	}
	if !strings.Contains(out.String(), "Final score:") {
		t.Errorf("expected final score, got:\n%s", out.String())
	}
}

func TestCLI_RequestFulfilled(t *testing.T) {
	c, out := newTestCLI(t, "")
	c.Engine.Start()
	c.Engine.Request = request.For(c.Engine.Alchemy, "Charcoal")

	c.step("wood", "fire")
	if !strings.Contains(out.String(), "Request fulfilled! +10 points. Score: 10") {
		t.Errorf("expected fulfilment, got:\n%s", out.String())
	}
}

func TestCLI_WinEndsLoop(t *testing.T) {
	input := strings.Join([]string{
		"water + fire",
		"water + earth",
		"fire + air",
		"earth + air",
		"wood + fire",
		"metal + fire",
		"water + air",
		"mud + earth",
		"water + fire", // never read
	}, "\n") + "\n"
	c, out := newTestCLI(t, input)
	c.Run()

	output := out.String()
	if !strings.Contains(output, "Congratulations! You discovered all 14 elements.") {
		t.Errorf("expected victory, got:\n%s", output)
	}
	if !c.Engine.State.Won {
		t.Error("expected win")
	}
	if strings.Count(output, "You created: Steam") != 1 {
		t.Error("input after the win should not be processed")
	}
}

func TestCLI_TimeUp(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	eng := engine.New(testDefs(), engine.Options{Seed: 1, TimeLimit: 30 * time.Second})
	eng.Clock = func() time.Time {
		now = now.Add(20 * time.Second)
		return now
	}

	var out bytes.Buffer
	c := &CLI{
		Engine: eng,
		In:     strings.NewReader("water + fire\nwater + earth\nwater + air\n"),
		Out:    &out,
	}
	c.Run()

	output := out.String()
	if !strings.Contains(output, "Time's up!") {
		t.Errorf("expected time's up, got:\n%s", output)
	}
	if strings.Contains(output, "You created: Cloud") {
		t.Error("turns after the time limit should not run")
	}
}

func TestCLI_HelpCommand(t *testing.T) {
	c, out := newTestCLI(t, "/help\nexit\n")
	c.Run()

	output := out.String()
	for _, want := range []string{"/quit", "/trace", "water + fire"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in help output", want)
		}
	}
}

func TestCLI_QuitCommand(t *testing.T) {
	c, out := newTestCLI(t, "/quit\nWater\nFire\n")
	c.Run()

	if !c.Engine.State.GameOver {
		t.Error("expected game over after /quit")
	}
	if strings.Contains(out.String(), "You created") {
		t.Error("no turns after /quit")
	}
}

func TestCLI_StateCommand(t *testing.T) {
	c, out := newTestCLI(t, "water + fire\n/state\nexit\n")
	c.Run()

	output := out.String()
	if !strings.Contains(output, "[Turn: 1]") {
		t.Errorf("expected turn in state dump, got:\n%s", output)
	}
	if !strings.Contains(output, "[Discovered: 7/14]") {
		t.Errorf("expected discovered count in state dump, got:\n%s", output)
	}
	if !strings.Contains(output, "[Seed: 3") {
		t.Errorf("expected seed in state dump, got:\n%s", output)
	}
	if !strings.Contains(output, "[Last move: Water + Fire]") {
		t.Errorf("expected last move in state dump, got:\n%s", output)
	}
}

func TestCLI_UnknownMeta(t *testing.T) {
	c, out := newTestCLI(t, "/dance\nexit\n")
	c.Run()

	if !strings.Contains(out.String(), "Unknown command: /dance") {
		t.Error("expected unknown command message")
	}
}

func TestCLI_TraceToggle(t *testing.T) {
	c, out := newTestCLI(t, "/trace\nwater + fire\nexit\n")
	c.Run()

	output := out.String()
	if !strings.Contains(output, "Trace output enabled.") {
		t.Error("expected trace enabled message")
	}
	if !strings.Contains(output, "[trace]   element_created element=Steam new=true") {
		t.Errorf("expected trace line, got:\n%s", output)
	}
}

func TestCLI_ScriptMode(t *testing.T) {
	script := "# a comment line\nwater\n# between prompts\nfire\nexit\n"
	c, out := newTestCLI(t, script)
	c.EchoInput = true
	c.Run()

	output := out.String()
	if !strings.Contains(output, PromptFirst+"water\n") {
		t.Errorf("expected echoed first input, got:\n%s", output)
	}
	if !strings.Contains(output, PromptSecond+"fire\n") {
		t.Errorf("expected echoed second input, got:\n%s", output)
	}
	if strings.Contains(output, "a comment line") {
		t.Error("comment lines should not be echoed")
	}
	if !strings.Contains(output, "You created: Steam") {
		t.Error("expected Steam")
	}
}

func TestTraceLines(t *testing.T) {
	result := types.Result{Events: []types.Event{
		{Type: "request_fulfilled", Data: map[string]any{"points": 15, "element": "Clay"}},
	}}
	got := TraceLines(result)
	want := []string{
		"[trace] Events: 1",
		"[trace]   request_fulfilled element=Clay points=15",
	}
	if len(got) != len(want) {
		t.Fatalf("TraceLines = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
	if TraceLines(types.Result{}) != nil {
		t.Error("expected no trace lines without events")
	}
}
