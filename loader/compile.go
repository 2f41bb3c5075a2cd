// Package loader loads the Lua element and recipe table into Go structs.
// The Lua VM is discarded after loading, so no Lua runs during play.
package loader

import (
	"fmt"
	"strings"

	"github.com/nathoo/alchemy/engine/state"
	"github.com/nathoo/alchemy/types"
	lua "github.com/yuin/gopher-lua"
)

// rawElement holds an element declaration before compilation.
type rawElement struct {
	name  string
	order int
}

// rawRecipe holds a recipe declaration before compilation.
type rawRecipe struct {
	first  string
	second string
	result string
	order  int
}

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	v := tbl.RawGetString(key)
	if s, ok := v.(lua.LString); ok {
		return string(s)
	}
	return ""
}

// compile converts all collected Lua data into a Defs struct.
func compile(coll *collector) (*state.Defs, error) {
	if coll.game == nil {
		return nil, fmt.Errorf("no Game{} definition found")
	}

	defs := &state.Defs{
		Game: types.GameDef{
			Title:   getString(coll.game, "title"),
			Author:  getString(coll.game, "author"),
			Version: getString(coll.game, "version"),
			Intro:   getString(coll.game, "intro"),
		},
	}

	for _, raw := range coll.elements {
		name := strings.TrimSpace(raw.name)
		if name == "" {
			return nil, fmt.Errorf("element #%d has an empty name", raw.order)
		}
		defs.Elements = append(defs.Elements, types.Element{Name: name})
	}

	for _, raw := range coll.recipes {
		r := types.RecipeDef{
			First:       strings.TrimSpace(raw.first),
			Second:      strings.TrimSpace(raw.second),
			Result:      strings.TrimSpace(raw.result),
			SourceOrder: raw.order,
		}
		if r.First == "" || r.Second == "" || r.Result == "" {
			return nil, fmt.Errorf("recipe #%d has an empty name", raw.order)
		}
		defs.Recipes = append(defs.Recipes, r)
	}

	return defs, nil
}
