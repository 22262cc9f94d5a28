package engine

import (
	"net/url"

	levenshtein "github.com/ka-weihe/fast-levenshtein"
	lua "github.com/yuin/gopher-lua"
)

// preloadModules registers the helper modules ymd adds on top of mangal-lua-libs.
func preloadModules(L *lua.LState) {
	L.PreloadModule("urls", loader(urlsAPI))
	L.PreloadModule("levenshtein", loader(levenshteinAPI))
}

func loader(api map[string]lua.LGFunction) lua.LGFunction {
	return func(L *lua.LState) int {
		L.Push(L.SetFuncs(L.NewTable(), api))
		return 1
	}
}

var urlsAPI = map[string]lua.LGFunction{
	"encode":      urlsEncode,
	"decode":      urlsDecode,
	"path_escape": urlsPathEscape,
	"parse_query": urlsParseQuery,
	"parse":       urlsParse,
	"resolve":     urlsResolve,
}

// urls.encode(s) escapes s for use as a query component.
func urlsEncode(L *lua.LState) int {
	L.Push(lua.LString(url.QueryEscape(L.CheckString(1))))
	return 1
}

// urls.decode(s) returns the unescaped query component, or nil and an error.
func urlsDecode(L *lua.LState) int {
	s, err := url.QueryUnescape(L.CheckString(1))
	return pushResult(L, lua.LString(s), err)
}

func urlsPathEscape(L *lua.LState) int {
	L.Push(lua.LString(url.PathEscape(L.CheckString(1))))
	return 1
}

// urls.parse_query(s) returns a table holding the first value of every key.
func urlsParseQuery(L *lua.LState) int {
	values, err := url.ParseQuery(L.CheckString(1))
	if err != nil {
		return pushResult(L, lua.LNil, err)
	}

	t := L.NewTable()
	for k := range values {
		t.RawSetString(k, lua.LString(values.Get(k)))
	}
	return pushResult(L, t, nil)
}

// urls.parse(s) splits an absolute or relative URL into its parts.
func urlsParse(L *lua.LState) int {
	u, err := url.Parse(L.CheckString(1))
	if err != nil {
		return pushResult(L, lua.LNil, err)
	}

	t := L.NewTable()
	t.RawSetString("scheme", lua.LString(u.Scheme))
	t.RawSetString("host", lua.LString(u.Host))
	t.RawSetString("path", lua.LString(u.Path))
	t.RawSetString("query", lua.LString(u.RawQuery))
	t.RawSetString("fragment", lua.LString(u.Fragment))
	return pushResult(L, t, nil)
}

// urls.resolve(base, ref) resolves ref against base.
func urlsResolve(L *lua.LState) int {
	base, err := url.Parse(L.CheckString(1))
	if err != nil {
		return pushResult(L, lua.LNil, err)
	}

	ref, err := url.Parse(L.CheckString(2))
	if err != nil {
		return pushResult(L, lua.LNil, err)
	}

	return pushResult(L, lua.LString(base.ResolveReference(ref).String()), nil)
}

var levenshteinAPI = map[string]lua.LGFunction{
	"distance": func(L *lua.LState) int {
		L.Push(lua.LNumber(levenshtein.Distance(L.CheckString(1), L.CheckString(2))))
		return 1
	},
}

// pushResult follows the value, err convention of mangal-lua-libs.
func pushResult(L *lua.LState, value lua.LValue, err error) int {
	if err != nil {
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}

	L.Push(value)
	L.Push(lua.LNil)
	return 2
}
