// Package types defines the shared data structures for the Alchemy engine.
// This package contains only type definitions and trivial accessors.
package types

// Element is a named substance. Basic elements have no components; compound
// elements carry the two elements that produced them, in input order.
type Element struct {
	Name       string
	Components []Element // nil for basic elements, len 2 for compounds
}

// IsCompound reports whether the element was produced by a combination.
func (e Element) IsCompound() bool {
	return len(e.Components) == 2
}

func (e Element) String() string {
	return e.Name
}

// RecipeDef maps an unordered ingredient pair to a result name.
type RecipeDef struct {
	First       string
	Second      string
	Result      string
	SourceOrder int
}

// Matches reports whether the recipe's ingredients equal {a, b} in any order.
func (r RecipeDef) Matches(a, b string) bool {
	return (r.First == a && r.Second == b) || (r.First == b && r.Second == a)
}

// GameDef holds game metadata from Lua.
type GameDef struct {
	Title   string
	Author  string
	Version string
	Intro   string
}

// Event is emitted by a game step.
type Event struct {
	Type string
	Data map[string]any
}

// Result is the output of a single game step.
type Result struct {
	Events []Event
	Output []string
}

// State is the complete mutable game state apart from the discovered set,
// which the alchemy engine owns.
type State struct {
	Score      int
	TurnCount  int
	RNGSeed    int64
	GameOver   bool
	Won        bool
	CommandLog []string
}
