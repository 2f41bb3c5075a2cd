package loader

import (
	_ "embed"
	"fmt"

	"github.com/nathoo/alchemy/engine/state"
	lua "github.com/yuin/gopher-lua"
)

//go:embed data/alchemy.lua
var builtin string

// collector accumulates Lua definitions during file execution.
type collector struct {
	game     *lua.LTable
	elements []rawElement
	recipes  []rawRecipe
	order    int
}

func (c *collector) nextSourceOrder() int {
	c.order++
	return c.order
}

// Load compiles the built-in element and recipe table, validates it, and
// returns the immutable Defs. The Lua VM is discarded after loading.
func Load() (*state.Defs, error) {
	return loadSource("alchemy.lua", builtin)
}

// loadSource executes one Lua chunk in a sandboxed VM and compiles the
// collected definitions.
func loadSource(name, src string) (*state.Defs, error) {
	// Create sandboxed VM.
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	openSafeLibs(L)
	sandbox(L)

	coll := &collector{}
	registerAPI(L, coll)

	if err := L.DoString(src); err != nil {
		return nil, fmt.Errorf("executing %s: %w", name, err)
	}

	defs, err := compile(coll)
	if err != nil {
		return nil, fmt.Errorf("compiling game data: %w", err)
	}

	if err := validate(defs); err != nil {
		return nil, err
	}

	return defs, nil
}

// openSafeLibs opens only the safe subset of Lua standard libraries.
func openSafeLibs(L *lua.LState) {
	// Base library (print, type, tostring, tonumber, pairs, ipairs, etc.)
	lua.OpenBase(L)
	// Table library (table.insert, table.sort, etc.)
	lua.OpenTable(L)
	// String library (string.format, string.sub, etc.)
	lua.OpenString(L)
}

// sandbox removes dangerous globals and functions.
func sandbox(L *lua.LState) {
	dangerous := []string{
		"dofile", "loadfile", "load", "loadstring",
		"rawset", "rawget", "rawequal",
		"collectgarbage", "require", "module",
	}
	for _, name := range dangerous {
		L.SetGlobal(name, lua.LNil)
	}
}
