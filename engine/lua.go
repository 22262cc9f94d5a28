package engine

import (
	"context"
	"fmt"

	libs "github.com/metafates/mangal-lua-libs"
	"github.com/samber/lo"
	lua "github.com/yuin/gopher-lua"
)

// openLibs are the standard libraries available to programs.
// io, os, debug and channel are left out: programs get no filesystem or process access.
var openLibs = []struct {
	name string
	fn   lua.LGFunction
}{
	{lua.LoadLibName, lua.OpenPackage},
	{lua.BaseLibName, lua.OpenBase},
	{lua.TabLibName, lua.OpenTable},
	{lua.StringLibName, lua.OpenString},
	{lua.MathLibName, lua.OpenMath},
	{lua.CoroutineLibName, lua.OpenCoroutine},
}

// strippedGlobals are base functions that read files.
var strippedGlobals = []string{"dofile", "loadfile"}

// helperModules are the preloaded helper modules programs may require.
// Network, browser and filesystem modules are removed from package.preload.
// urls and levenshtein come from preloadModules.
var helperModules = map[string]bool{
	"html":        true,
	"json":        true,
	"strings":     true,
	"regexp":      true,
	"urls":        true,
	"base64":      true,
	"time":        true,
	"inspect":     true,
	"levenshtein": true,
	"crypto":      true,
}

var savedPathDefault string

// initLua prepares gopher-lua's package-level state. It runs once per Engine.
func initLua() Runtime {
	savedPathDefault = lua.LuaPathDefault
	lua.LuaPathDefault = ""
	return luaRuntime{}
}

func shutdownLua() {
	lua.LuaPathDefault = savedPathDefault
}

type luaRuntime struct{}

func (luaRuntime) NewContext(ctx context.Context) (Context, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})

	for _, lib := range openLibs {
		L.Push(L.NewFunction(lib.fn))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}

	for _, name := range strippedGlobals {
		L.SetGlobal(name, lua.LNil)
	}

	pkg := L.GetGlobal(lua.LoadLibName)
	L.SetField(pkg, "path", lua.LString(""))
	L.SetField(pkg, "cpath", lua.LString(""))

	libs.Preload(L)
	preloadModules(L)
	if preload, ok := L.GetField(pkg, "preload").(*lua.LTable); ok {
		var denied []lua.LValue
		preload.ForEach(func(k, _ lua.LValue) {
			if !helperModules[k.String()] {
				denied = append(denied, k)
			}
		})
		for _, k := range denied {
			preload.RawSet(k, lua.LNil)
		}
	}

	if ctx != nil && ctx.Done() != nil {
		L.SetContext(ctx)
	}

	return &luaContext{state: L, sources: make(map[string]string)}, nil
}

type luaContext struct {
	state *lua.LState
	// sources maps chunk names to their text so runtime errors can quote the offending line.
	sources map[string]string
}

func (c *luaContext) Install(namespace string, bindings []Binding) error {
	L := c.state
	ns := L.NewTable()

	for _, b := range bindings {
		if b.Name == "" {
			return fmt.Errorf("binding without a name in %s", namespace)
		}

		if b.Func == nil {
			ns.RawSetString(b.Name, lua.LString(b.Value))
			continue
		}

		ns.RawSetString(b.Name, L.NewFunction(wrap(b)))
	}

	L.SetGlobal(namespace, ns)
	return nil
}

// wrap adapts a host function to the Lua calling convention.
func wrap(b Binding) lua.LGFunction {
	return func(L *lua.LState) int {
		n := L.GetTop()
		if err := b.checkArity(n); err != nil {
			L.RaiseError("%s", err.Error())
			return 0
		}

		args := make([]any, n)
		for i := range args {
			args[i] = toHost(L.Get(i + 1))
		}

		ret, err := b.Func(args)
		if err != nil {
			L.RaiseError("%s", err.Error())
			return 0
		}

		if value, ok := ret.Get(); ok {
			L.Push(lua.LString(value))
			return 1
		}
		return 0
	}
}

func (c *luaContext) CompileAndRun(chunk, source string) error {
	c.sources[chunk] = source

	proto, err := compile(chunk, source)
	if err != nil {
		return compileDiagnostic(chunk, source, err)
	}

	L := c.state
	L.Push(L.NewFunctionFromProto(proto))
	if err := L.PCall(0, 0, nil); err != nil {
		return runtimeDiagnostic(chunk, c.sources, err)
	}

	return nil
}

func (c *luaContext) Lookup(namespace, name string) (any, error) {
	ns, ok := c.state.GetGlobal(namespace).(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("global %s is not a table", namespace)
	}

	value := ns.RawGetString(name)
	if table, ok := value.(*lua.LTable); ok {
		return lo.Times(table.Len(), func(i int) any {
			return toHost(table.RawGetInt(i + 1))
		}), nil
	}

	return toHost(value), nil
}

func (c *luaContext) Close() {
	c.state.Close()
}

// toHost marshals a Lua value into its host form.
func toHost(value lua.LValue) any {
	switch v := value.(type) {
	case *lua.LNilType:
		return nil
	case lua.LString:
		return string(v)
	case lua.LNumber:
		return float64(v)
	case lua.LBool:
		return bool(v)
	default:
		return Opaque(value.String())
	}
}
