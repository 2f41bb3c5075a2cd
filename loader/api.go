package loader

import (
	lua "github.com/yuin/gopher-lua"
)

// registerAPI registers the Lua constructors as globals.
func registerAPI(L *lua.LState, coll *collector) {
	// Game { title = "...", ... }
	L.SetGlobal("Game", L.NewFunction(func(L *lua.LState) int {
		tbl := L.CheckTable(1)
		coll.game = tbl
		return 0
	}))

	// Element "Name" declares a basic element.
	L.SetGlobal("Element", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		coll.elements = append(coll.elements, rawElement{
			name:  name,
			order: coll.nextSourceOrder(),
		})
		return 0
	}))

	// Recipe("A", "B", "Result"); ingredients are unordered.
	L.SetGlobal("Recipe", L.NewFunction(func(L *lua.LState) int {
		coll.recipes = append(coll.recipes, rawRecipe{
			first:  L.CheckString(1),
			second: L.CheckString(2),
			result: L.CheckString(3),
			order:  coll.nextSourceOrder(),
		})
		return 0
	}))
}
