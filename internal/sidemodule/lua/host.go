// Package lua hosts sandboxed Lua side modules: small scripts a dictionary
// author writes to compute a replacement in cases a pattern/target pair
// can't express (table lookups, string transformations). No state carries
// over from one call to the next.
// Each invocation gets its own lua.LState opened with only a safe subset of
// the standard library, so two dictionaries sharing a script never
// interfere with each other's globals and a script cannot touch the
// filesystem or network on its own.
package lua

import (
	"context"
	"os"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/avitko/dicrector/internal/dicerr"
	"github.com/avitko/dicrector/internal/sidemodule"
)

// allowedLibs is the sandboxed standard library surface: no io, os, or
// package/require, so a script can only transform the string it is given.
var allowedLibs = []struct {
	name string
	open lua.LGFunction
}{
	{lua.BaseLibName, lua.OpenBase},
	{lua.StringLibName, lua.OpenString},
	{lua.TableLibName, lua.OpenTable},
	{lua.MathLibName, lua.OpenMath},
}

// Host caches script source by path and runs each call in its own
// bounded-lifetime Lua state.
type Host struct {
	mu      sync.Mutex
	scripts map[string]string
	timeout time.Duration
}

// NewHost builds a Host. timeout bounds a single resolver call; a script
// that loops forever is killed rather than stalling the corrector.
func NewHost(timeout time.Duration) *Host {
	return &Host{scripts: make(map[string]string), timeout: timeout}
}

// Resolver loads the script at path (cached after the first read) and
// returns a sidemodule.Resolver bound to the global function named fn.
func (h *Host) Resolver(path, fn string) (sidemodule.Resolver, error) {
	src, err := h.load(path)
	if err != nil {
		return nil, err
	}
	return func(probe string) (string, bool) {
		return h.call(src, fn, probe)
	}, nil
}

func (h *Host) load(path string) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if src, ok := h.scripts[path]; ok {
		return src, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", dicerr.SideModuleMissing(path)
	}
	src := string(data)
	h.scripts[path] = src
	return src, nil
}

func (h *Host) call(src, fn, probe string) (string, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()
	L.SetContext(ctx)

	for _, lib := range allowedLibs {
		if err := L.CallByParam(lua.P{Fn: L.NewFunction(lib.open), NRet: 0, Protect: true}, lua.LString(lib.name)); err != nil {
			return "", false
		}
	}

	if err := L.DoString(src); err != nil {
		return "", false
	}

	target := L.GetGlobal(fn)
	if target.Type() != lua.LTFunction {
		return "", false
	}
	if err := L.CallByParam(lua.P{Fn: target, NRet: 1, Protect: true}, lua.LString(probe)); err != nil {
		return "", false
	}

	ret := L.Get(-1)
	L.Pop(1)
	if ret == lua.LNil || ret == lua.LFalse {
		return "", false
	}
	return lua.LVAsString(ret), true
}
