package loader

import (
	"context"
	"fmt"
	"io"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// DefaultLuaTimeout bounds how long a config script may run.
const DefaultLuaTimeout = time.Second

// LuaLoader loads configuration from a Lua script that returns a table:
//
//	return {
//	  editor = { wrap_width = 72 },
//	  keymap = { ["ctrl+w"] = "quit" },
//	}
//
// Scripts run in a sandbox with only the base, table, string and math
// libraries, and without dofile, loadfile, load or loadstring.
type LuaLoader struct {
	fs      FileSystem
	path    string
	timeout time.Duration
}

// NewLuaLoader creates a new Lua loader for the given path.
func NewLuaLoader(path string) *LuaLoader {
	return NewLuaLoaderWithFS(DefaultFS(), path)
}

// NewLuaLoaderWithFS creates a Lua loader with a custom file system.
func NewLuaLoaderWithFS(fs FileSystem, path string) *LuaLoader {
	return &LuaLoader{
		fs:      fs,
		path:    path,
		timeout: DefaultLuaTimeout,
	}
}

// SetTimeout changes the script execution timeout.
func (l *LuaLoader) SetTimeout(d time.Duration) {
	if d > 0 {
		l.timeout = d
	}
}

// Load reads configuration from the configured path.
func (l *LuaLoader) Load() (map[string]any, error) {
	return l.LoadFrom(l.path)
}

// LoadFrom reads configuration from a specific path.
func (l *LuaLoader) LoadFrom(path string) (map[string]any, error) {
	data, found, err := readFile(l.fs, path)
	if err != nil || !found {
		return nil, err
	}
	return l.run(path, string(data))
}

// LoadFromReader reads configuration from an io.Reader.
func (l *LuaLoader) LoadFromReader(r io.Reader) (map[string]any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return l.run("<reader>", string(data))
}

// run executes the script and converts its result.
func (l *LuaLoader) run(source, code string) (config map[string]any, err error) {
	L := newSandboxState()
	defer L.Close()

	ctx, cancel := context.WithTimeout(context.Background(), l.timeout)
	defer cancel()
	L.SetContext(ctx)

	defer func() {
		if r := recover(); r != nil {
			config = nil
			err = &ParseError{Path: source, Message: fmt.Sprintf("lua panic: %v", r)}
		}
	}()

	fn, err := L.LoadString(code)
	if err != nil {
		return nil, &ParseError{Path: source, Message: err.Error(), Err: err}
	}
	L.Push(fn)
	if err := L.PCall(0, 1, nil); err != nil {
		return nil, &ParseError{Path: source, Message: err.Error(), Err: err}
	}

	ret := L.Get(-1)
	L.Pop(1)
	switch v := ret.(type) {
	case *lua.LNilType:
		return make(map[string]any), nil
	case *lua.LTable:
		m, ok := luaToGo(v, make(map[*lua.LTable]bool)).(map[string]any)
		if !ok {
			return nil, &ParseError{Path: source, Message: "script must return a table with string keys"}
		}
		return m, nil
	default:
		return nil, &ParseError{Path: source, Message: fmt.Sprintf("script returned %s, want table", ret.Type())}
	}
}

// newSandboxState creates a Lua state with only safe libraries.
func newSandboxState() *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})

	// Open base library (print, type, pairs, ipairs, etc.)
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		L.SetGlobal(name, lua.LNil)
	}
	return L
}

// luaToGo converts a Lua value to a Go value. Tables with keys 1..n become
// []any; other tables become map[string]any. Cycles convert to nil.
func luaToGo(lv lua.LValue, visited map[*lua.LTable]bool) any {
	switch v := lv.(type) {
	case lua.LBool:
		return bool(v)
	case lua.LNumber:
		f := float64(v)
		if f == float64(int64(f)) {
			return int64(f)
		}
		return f
	case lua.LString:
		return string(v)
	case *lua.LTable:
		if visited[v] {
			return nil
		}
		visited[v] = true
		defer delete(visited, v)
		return tableToGo(v, visited)
	default:
		return nil
	}
}

func tableToGo(t *lua.LTable, visited map[*lua.LTable]bool) any {
	if n := t.Len(); n > 0 {
		count := 0
		t.ForEach(func(_, _ lua.LValue) { count++ })
		if count == n {
			arr := make([]any, n)
			for i := 1; i <= n; i++ {
				arr[i-1] = luaToGo(t.RawGetInt(i), visited)
			}
			return arr
		}
	}

	m := make(map[string]any)
	t.ForEach(func(k, v lua.LValue) {
		switch k.(type) {
		case lua.LString, lua.LNumber:
			m[k.String()] = luaToGo(v, visited)
		}
	})
	return m
}
