// Package alchemy owns the recipe table and the set of discovered elements,
// and resolves combination attempts against the table.
package alchemy

import (
	"github.com/nathoo/alchemy/engine/state"
	"github.com/nathoo/alchemy/types"
)

// Alchemy holds the element list, recipe table, and discovered set.
type Alchemy struct {
	defs       *state.Defs
	discovered []string // insertion order, for display
	index      map[string]bool
}

// New creates an Alchemy with every basic element already discovered.
func New(defs *state.Defs) *Alchemy {
	a := &Alchemy{
		defs:  defs,
		index: map[string]bool{},
	}
	for _, e := range defs.Elements {
		a.AddDiscovered(e.Name)
	}
	return a
}

// Combine returns the compound element produced by a and b, if any recipe's
// ingredient pair equals {a.Name, b.Name}. The first matching recipe wins.
// Combine has no side effects; the caller registers the result.
func (a *Alchemy) Combine(x, y types.Element) (types.Element, bool) {
	for _, r := range a.defs.Recipes {
		if r.Matches(x.Name, y.Name) {
			return types.Element{Name: r.Result, Components: []types.Element{x, y}}, true
		}
	}
	return types.Element{}, false
}

// ComponentsOf returns the ingredients of the first recipe producing result.
func (a *Alchemy) ComponentsOf(result string) (string, string, bool) {
	for _, r := range a.defs.Recipes {
		if r.Result == result {
			return r.First, r.Second, true
		}
	}
	return "", "", false
}

// AddDiscovered inserts name into the discovered set. Returns true if the
// name was not already present.
func (a *Alchemy) AddDiscovered(name string) bool {
	if a.index[name] {
		return false
	}
	a.index[name] = true
	a.discovered = append(a.discovered, name)
	return true
}

// IsDiscovered reports whether name (exact match) has been discovered.
func (a *Alchemy) IsDiscovered(name string) bool {
	return a.index[name]
}

// Discovered returns a copy of the discovered names in discovery order.
func (a *Alchemy) Discovered() []string {
	out := make([]string, len(a.discovered))
	copy(out, a.discovered)
	return out
}

// DiscoveredCount returns the size of the discovered set.
func (a *Alchemy) DiscoveredCount() int {
	return len(a.discovered)
}

// Undiscovered returns the distinct recipe results not yet discovered,
// in recipe table order.
func (a *Alchemy) Undiscovered() []string {
	var out []string
	for _, name := range state.ResultNames(a.defs) {
		if !a.index[name] {
			out = append(out, name)
		}
	}
	return out
}

// IsBase reports whether name is a basic element.
func (a *Alchemy) IsBase(name string) bool {
	return state.IsBase(a.defs, name)
}

// BaseElements returns the basic elements in declaration order.
func (a *Alchemy) BaseElements() []types.Element {
	return a.defs.Elements
}

// TotalElements returns the number of discoverable elements.
func (a *Alchemy) TotalElements() int {
	return state.TotalElements(a.defs)
}

// Complete reports whether every element has been discovered.
func (a *Alchemy) Complete() bool {
	return a.DiscoveredCount() == a.TotalElements()
}
