// Package state holds the immutable game definitions and the mutable game
// state built from them.
package state

import "github.com/nathoo/alchemy/types"

// Defs holds the immutable game definitions loaded from Lua.
type Defs struct {
	Game     types.GameDef
	Elements []types.Element // basic elements, in declaration order
	Recipes  []types.RecipeDef
}

// NewState creates a fresh game state for the given RNG seed.
func NewState(seed int64) *types.State {
	return &types.State{
		RNGSeed:    seed,
		CommandLog: []string{},
	}
}

// IsBase returns true if name is one of the basic elements (exact match).
func IsBase(defs *Defs, name string) bool {
	for _, e := range defs.Elements {
		if e.Name == name {
			return true
		}
	}
	return false
}

// BaseNames returns the names of the basic elements in declaration order.
func BaseNames(defs *Defs) []string {
	names := make([]string, 0, len(defs.Elements))
	for _, e := range defs.Elements {
		names = append(names, e.Name)
	}
	return names
}

// ResultNames returns the distinct recipe results in table order.
func ResultNames(defs *Defs) []string {
	seen := map[string]bool{}
	var names []string
	for _, r := range defs.Recipes {
		if seen[r.Result] {
			continue
		}
		seen[r.Result] = true
		names = append(names, r.Result)
	}
	return names
}

// TotalElements returns the number of distinct elements in the game: every
// basic element plus every distinct recipe result.
func TotalElements(defs *Defs) int {
	return len(defs.Elements) + len(ResultNames(defs))
}
