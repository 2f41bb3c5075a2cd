// Package resolve maps typed element names to elements.
package resolve

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/cases"

	"github.com/nathoo/alchemy/engine/alchemy"
	"github.com/nathoo/alchemy/types"
)

// maxSuggestions caps the "did you mean" list.
const maxSuggestions = 3

// NotFoundError indicates no basic or discovered element matched a name.
type NotFoundError struct {
	Name        string
	Suggestions []string
}

func (e *NotFoundError) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("unknown element %q", e.Name)
	}
	return fmt.Sprintf("unknown element %q (did you mean %s?)", e.Name, strings.Join(e.Suggestions, ", "))
}

// Key returns the case-folded lookup key for an element name. Every
// case-insensitive name comparison goes through it.
func Key(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}

// Resolve maps a name to an element. Basic elements are matched first, then
// the discovered set; both comparisons ignore case. Discovered compounds are
// returned as plain elements carrying only their canonical name.
func Resolve(a *alchemy.Alchemy, name string) (types.Element, error) {
	key := Key(name)

	if key != "" {
		for _, e := range a.BaseElements() {
			if Key(e.Name) == key {
				return e, nil
			}
		}
		for _, d := range a.Discovered() {
			if Key(d) == key {
				return types.Element{Name: d}, nil
			}
		}
	}

	return types.Element{}, &NotFoundError{Name: name, Suggestions: suggest(a, key)}
}

type candidate struct {
	name string
	dist int
}

// suggest returns discovered names close to key, nearest first.
func suggest(a *alchemy.Alchemy, key string) []string {
	if len(key) < 2 {
		return nil
	}
	var cands []candidate
	for _, d := range a.Discovered() {
		folded := Key(d)
		dist := levenshtein.ComputeDistance(key, folded)
		if strings.HasPrefix(folded, key) {
			dist = 0
		}
		if dist > distanceLimit(len(folded)) {
			continue
		}
		cands = append(cands, candidate{name: d, dist: dist})
	}

	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].dist == cands[j].dist {
			return cands[i].name < cands[j].name
		}
		return cands[i].dist < cands[j].dist
	})

	var out []string
	for _, c := range cands {
		out = append(out, c.name)
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}

func distanceLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
