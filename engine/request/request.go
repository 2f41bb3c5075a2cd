// Package request builds the player's point-scoring objectives.
package request

import (
	"fmt"

	"github.com/nathoo/alchemy/engine/alchemy"
)

// Point values. A complex request earns BasePoints plus CompoundBonus for
// each compound ingredient of the requested element.
const (
	BasePoints    = 10
	CompoundBonus = 5
)

// Request is the player's active objective.
type Request interface {
	Element() string
	Points() int
	Describe() string
}

// Flat is a request for an element made from two basic elements.
type Flat struct {
	Target string
}

func (r Flat) Element() string { return r.Target }
func (r Flat) Points() int     { return BasePoints }

func (r Flat) Describe() string {
	return fmt.Sprintf("Create %s for %d points.", r.Target, r.Points())
}

// Complex is a request for an element whose recipe needs compound ingredients.
type Complex struct {
	Target    string
	Compounds int // number of immediate ingredients that are not basic
}

func (r Complex) Element() string { return r.Target }

func (r Complex) Points() int {
	return BasePoints + CompoundBonus*r.Compounds
}

func (r Complex) Describe() string {
	noun := "ingredients"
	if r.Compounds == 1 {
		noun = "ingredient"
	}
	return fmt.Sprintf("Create %s (%d compound %s) for %d points.", r.Target, r.Compounds, noun, r.Points())
}

// Picker chooses an index in [0, n).
type Picker interface {
	Pick(n int) int
}

// Generate picks an undiscovered recipe result and builds a request for it.
// Returns false when every result has been discovered.
func Generate(a *alchemy.Alchemy, p Picker) (Request, bool) {
	candidates := a.Undiscovered()
	if len(candidates) == 0 {
		return nil, false
	}
	target := candidates[p.Pick(len(candidates))]
	return For(a, target), true
}

// For builds the request for a specific target element. A target that no
// recipe produces gets a flat request; Generate never passes one.
func For(a *alchemy.Alchemy, target string) Request {
	first, second, ok := a.ComponentsOf(target)
	if !ok {
		return Flat{Target: target}
	}
	compounds := 0
	for _, ing := range []string{first, second} {
		if !a.IsBase(ing) {
			compounds++
		}
	}
	if compounds > 0 {
		return Complex{Target: target, Compounds: compounds}
	}
	return Flat{Target: target}
}
