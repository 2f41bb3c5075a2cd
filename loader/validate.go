package loader

import (
	"fmt"
	"os"
	"strings"

	"github.com/nathoo/alchemy/engine/resolve"
	"github.com/nathoo/alchemy/engine/state"
)

// ValidationError collects all validation errors and warnings.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

// validate checks the compiled defs for referential integrity and consistency.
func validate(defs *state.Defs) error {
	ve := &ValidationError{}

	// Game title required.
	if defs.Game.Title == "" {
		ve.Errors = append(ve.Errors, "Game.Title is required")
	}

	if len(defs.Elements) == 0 {
		ve.Errors = append(ve.Errors, "at least one Element is required")
	}
	if len(defs.Recipes) == 0 {
		ve.Errors = append(ve.Errors, "at least one Recipe is required")
	}

	// Element names unique, ignoring case: players type them case-insensitively.
	base := map[string]string{}
	for _, e := range defs.Elements {
		key := resolve.Key(e.Name)
		if prev, ok := base[key]; ok {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"duplicate element %q (already declared as %q)", e.Name, prev))
			continue
		}
		base[key] = e.Name
	}

	results := map[string]bool{}
	spelled := map[string]string{}
	for _, r := range defs.Recipes {
		results[r.Result] = true
		key := resolve.Key(r.Result)
		if prev, ok := spelled[key]; ok && prev != r.Result {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"recipe #%d result %q differs only in case from %q", r.SourceOrder, r.Result, prev))
			continue
		}
		spelled[key] = r.Result
	}

	pairs := map[[2]string]string{}
	used := map[string]bool{}
	for _, r := range defs.Recipes {
		// Results must be new elements, in any spelling.
		if prev, ok := base[resolve.Key(r.Result)]; ok {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"recipe #%d (%s + %s) produces basic element %q", r.SourceOrder, r.First, r.Second, prev))
		}

		// Ingredients must be basic elements or another recipe's result.
		for _, ing := range []string{r.First, r.Second} {
			used[ing] = true
			if !state.IsBase(defs, ing) && !results[ing] {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"recipe #%d for %q uses undefined element %q", r.SourceOrder, r.Result, ing))
			}
		}

		// Ingredient pairs unique regardless of order.
		key := pairKey(r.First, r.Second)
		if prev, ok := pairs[key]; ok {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"recipe #%d: %s + %s already produces %q", r.SourceOrder, r.First, r.Second, prev))
			continue
		}
		pairs[key] = r.Result
	}

	// Every result must be producible starting from the basic elements.
	for _, name := range unreachable(defs) {
		ve.Errors = append(ve.Errors, fmt.Sprintf(
			"element %q cannot be produced from the basic elements", name))
	}

	// Warnings: basic elements that no recipe uses.
	for _, e := range defs.Elements {
		if !used[e.Name] {
			ve.Warnings = append(ve.Warnings, fmt.Sprintf(
				"basic element %q is not used by any recipe", e.Name))
		}
	}

	// Print warnings to stderr.
	for _, w := range ve.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}

func pairKey(a, b string) [2]string {
	if b < a {
		a, b = b, a
	}
	return [2]string{a, b}
}

// unreachable returns recipe results that no sequence of combinations
// starting from the basic elements can produce, in table order.
func unreachable(defs *state.Defs) []string {
	known := map[string]bool{}
	for _, e := range defs.Elements {
		known[e.Name] = true
	}

	for changed := true; changed; {
		changed = false
		for _, r := range defs.Recipes {
			if !known[r.Result] && known[r.First] && known[r.Second] {
				known[r.Result] = true
				changed = true
			}
		}
	}

	var out []string
	for _, name := range state.ResultNames(defs) {
		if !known[name] {
			out = append(out, name)
		}
	}
	return out
}
