package request

import (
	"strings"
	"testing"

	"github.com/nathoo/alchemy/engine/alchemy"
	"github.com/nathoo/alchemy/engine/state"
	"github.com/nathoo/alchemy/types"
)

func testDefs() *state.Defs {
	defs := &state.Defs{Game: types.GameDef{Title: "Test"}}
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

// fixedPicker always returns the same index.
type fixedPicker int

func (p fixedPicker) Pick(n int) int {
	if int(p) >= n {
		return n - 1
	}
	return int(p)
}

// recordingPicker records the n it was asked for.
type recordingPicker struct {
	lastN int
}

func (p *recordingPicker) Pick(n int) int {
	p.lastN = n
	return 0
}

func TestFor_FlatRequest(t *testing.T) {
	a := alchemy.New(testDefs())
	req := For(a, "Charcoal")

	flat, ok := req.(Flat)
	if !ok {
		t.Fatalf("expected Flat, got %T", req)
	}
	if flat.Element() != "Charcoal" {
		t.Errorf("Element = %q", flat.Element())
	}
	if flat.Points() != 10 {
		t.Errorf("Points = %d, want 10", flat.Points())
	}
}

func TestFor_ComplexRequest(t *testing.T) {
	a := alchemy.New(testDefs())
	req := For(a, "Clay")

	c, ok := req.(Complex)
	if !ok {
		t.Fatalf("expected Complex, got %T", req)
	}
	if c.Compounds != 1 {
		t.Errorf("Compounds = %d, want 1", c.Compounds)
	}
	if c.Points() != 15 {
		t.Errorf("Points = %d, want 15", c.Points())
	}
}

func TestFor_CloudUsesFirstRecipe(t *testing.T) {
	a := alchemy.New(testDefs())
	// Water + Air comes before Steam + Air, so Cloud is flat.
	if _, ok := For(a, "Cloud").(Flat); !ok {
		t.Errorf("expected Cloud to be a flat request")
	}
}

func TestFor_TargetWithoutRecipeIsFlat(t *testing.T) {
	a := alchemy.New(testDefs())
	req := For(a, "Water")
	if _, ok := req.(Flat); !ok {
		t.Fatalf("expected a flat request for a basic element, got %T", req)
	}
	if req.Points() != BasePoints {
		t.Errorf("Points = %d, want %d", req.Points(), BasePoints)
	}
}

func TestComplex_PointsScale(t *testing.T) {
	tests := []struct {
		compounds int
		want      int
	}{
		{1, 15},
		{2, 20},
		{3, 25},
	}
	for _, tt := range tests {
		got := Complex{Target: "X", Compounds: tt.compounds}.Points()
		if got != tt.want {
			t.Errorf("Complex{%d}.Points() = %d, want %d", tt.compounds, got, tt.want)
		}
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		req  Request
		want string
	}{
		{Flat{Target: "Steam"}, "Create Steam for 10 points."},
		{Complex{Target: "Clay", Compounds: 1}, "Create Clay (1 compound ingredient) for 15 points."},
		{Complex{Target: "Brick", Compounds: 2}, "Create Brick (2 compound ingredients) for 20 points."},
	}
	for _, tt := range tests {
		if got := tt.req.Describe(); got != tt.want {
			t.Errorf("Describe() = %q, want %q", got, tt.want)
		}
	}
}

func TestGenerate_PicksFromUndiscovered(t *testing.T) {
	a := alchemy.New(testDefs())
	a.AddDiscovered("Steam")

	p := &recordingPicker{}
	req, ok := Generate(a, p)
	if !ok {
		t.Fatal("expected a request")
	}
	if p.lastN != 7 {
		t.Errorf("picker asked for n=%d, want 7 undiscovered", p.lastN)
	}
	if req.Element() != "Mud" {
		t.Errorf("Element = %q, want Mud (first undiscovered)", req.Element())
	}
}

func TestGenerate_NeverPicksDiscovered(t *testing.T) {
	a := alchemy.New(testDefs())
	a.AddDiscovered("Mud")
	a.AddDiscovered("Cloud")

	for i := 0; i < 10; i++ {
		req, ok := Generate(a, fixedPicker(i))
		if !ok {
			t.Fatal("expected a request")
		}
		if a.IsDiscovered(req.Element()) {
			t.Errorf("pick %d: request for already discovered %q", i, req.Element())
		}
		if strings.TrimSpace(req.Describe()) == "" {
			t.Errorf("pick %d: empty description", i)
		}
	}
}

func TestGenerate_NoneWhenAllDiscovered(t *testing.T) {
	defs := testDefs()
	a := alchemy.New(defs)
	for _, name := range state.ResultNames(defs) {
		a.AddDiscovered(name)
	}

	req, ok := Generate(a, fixedPicker(0))
	if ok || req != nil {
		t.Errorf("expected no request, got %v", req)
	}
}
