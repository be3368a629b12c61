package loader

import (
	lua "github.com/yuin/gopher-lua"
)

// beatMarker tags tables produced by Beat so Epic can tell them apart.
const beatMarker = "__beat"

// registerAPI registers all Lua constructors and helpers as globals.
func registerAPI(L *lua.LState, coll *collector) {
	registerConstructors(L, coll)
	registerHelpers(L)
}

// curried returns a global of the form Name "id" { ... }.
func curried(L *lua.LState, sink func(name string, tbl *lua.LTable)) *lua.LFunction {
	return L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			sink(name, tbl)
			return 0
		}))
		return 1
	})
}

func registerConstructors(L *lua.LState, coll *collector) {
	// Archetype "name" { tier = "...", requires = {...}, cascade = {...} }
	L.SetGlobal("Archetype", curried(L, func(name string, tbl *lua.LTable) {
		coll.archetypes = append(coll.archetypes, rawNamed{name: name, table: tbl})
	}))

	// Thread "name" { rarity = "...", nature = {...} }
	L.SetGlobal("Thread", curried(L, func(name string, tbl *lua.LTable) {
		coll.threads = append(coll.threads, rawNamed{name: name, table: tbl})
	}))

	// Epic "name" { projection = "...", Beat "label" {...}, ... }
	L.SetGlobal("Epic", curried(L, func(name string, tbl *lua.LTable) {
		coll.epics = append(coll.epics, rawNamed{name: name, table: tbl})
	}))

	// Beat "label" { ... } is curried and returns the marked table so it can
	// sit in an Epic's list.
	L.SetGlobal("Beat", L.NewFunction(func(L *lua.LState) int {
		label := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			tbl.RawSetString(beatMarker, lua.LString(label))
			L.Push(tbl)
			return 1
		}))
		return 1
	}))
}

func registerHelpers(L *lua.LState) {
	// Traits("bright", "cold") → { bright = true, cold = true }
	L.SetGlobal("Traits", L.NewFunction(func(L *lua.LState) int {
		tbl := L.NewTable()
		for i := 1; i <= L.GetTop(); i++ {
			tbl.RawSetString(L.CheckString(i), lua.LTrue)
		}
		L.Push(tbl)
		return 1
	}))

	// Mood("warm", "#ff8800", 0.3) → { tone = ..., hue = ..., intensity = ... }
	L.SetGlobal("Mood", L.NewFunction(func(L *lua.LState) int {
		tbl := L.NewTable()
		tbl.RawSetString("tone", lua.LString(L.OptString(1, "")))
		tbl.RawSetString("hue", lua.LString(L.OptString(2, "")))
		if L.GetTop() >= 3 {
			tbl.RawSetString("intensity", L.CheckNumber(3))
		}
		L.Push(tbl)
		return 1
	}))
}
