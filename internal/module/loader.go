package module

import (
	"os"
	"strings"

	"github.com/lumenlang/lumen/internal/ast"
	"github.com/lumenlang/lumen/internal/langerr"
	"github.com/lumenlang/lumen/internal/scope"
	"github.com/lumenlang/lumen/internal/value"
)

// ParseFunc turns source text into a tagged parse tree. The grammar itself
// is out of scope for this core; the host wires a real
// parser in here. Tests substitute a trivial stub.
type ParseFunc func(source []byte, path string) (*ast.Program, error)

// RunFunc executes a parsed program in sc. Supplied by package eval at
// startup (e.g. eval.EvalProgram) so this package never imports eval,
// keeping the package graph acyclic.
type RunFunc func(prog *ast.Program, sc *scope.Scope) (value.Value, error)

// Loader ties together path resolution, the module cache, circular-import
// detection, and overlay composition.
type Loader struct {
	Registry *Registry
	Settings *Settings
	Parse    ParseFunc
	Run      RunFunc
}

func NewLoader(reg *Registry, settings *Settings, parse ParseFunc, run RunFunc) *Loader {
	return &Loader{Registry: reg, Settings: settings, Parse: parse, Run: run}
}

// LoadFile imports a `.`-relative or search-path module by source path and
// returns it named alias; binding it in sc is left to the caller.
func (l *Loader) LoadFile(sc *scope.Scope, importPath, alias string) (*value.Module, error) {
	resolved, err := l.resolvePath(sc, importPath)
	if err != nil {
		return nil, err
	}

	if cached, ok := sc.GetCachedModule(resolved); ok {
		return cached, nil
	}
	if sc.IsLoadingModule(resolved) {
		return nil, langerr.Import("circular import detected: %s -> %s", sc.GetLoadingChain(), resolved)
	}

	mod, err := l.evalModuleFile(sc, resolved, alias)
	if err != nil {
		return nil, err
	}
	sc.CacheModule(resolved, mod)
	return mod, nil
}

func (l *Loader) resolvePath(sc *scope.Scope, importPath string) (string, error) {
	if strings.HasPrefix(importPath, ".") {
		return ResolveRelative(sc.CurrentScriptPath, importPath)
	}
	return ResolveSearchPath(importPath, l.Settings.SearchPaths)
}

func (l *Loader) evalModuleFile(sc *scope.Scope, resolvedPath, name string) (*value.Module, error) {
	source, err := os.ReadFile(resolvedPath)
	if err != nil {
		return nil, langerr.IO("failed to read module file %q: %s", resolvedPath, err)
	}
	prog, err := l.Parse(source, resolvedPath)
	if err != nil {
		return nil, langerr.Syntax("parse error in module %q: %s", resolvedPath, err)
	}

	moduleSc := scope.New()
	moduleSc.ModuleCache = sc.ModuleCache
	moduleSc.CurrentScriptPath = resolvedPath

	sc.PushLoadingModule(resolvedPath)
	defer sc.PopLoadingModule()
	moduleSc.ModuleLoadingStack = append([]string(nil), sc.ModuleLoadingStack...)

	if _, err := l.Run(prog, moduleSc); err != nil {
		return nil, err
	}

	members := moduleSc.CurrentFrame()
	mod := value.NewModule(name, members, resolvedPath, prog.Docstring)
	for n := range moduleSc.PublicItems {
		mod.MarkPublic(n)
	}
	return mod, nil
}

// LoadNative builds a registered native module and, if an overlay file
// exists at {searchPath}/{name}.lm or {searchPath}/{name}/index.lm, merges
// it on top: Lumen code replaces/extends the native surface, with
// __builtin__ bound to the native module for the overlay to delegate back
// to.
func (l *Loader) LoadNative(sc *scope.Scope, name string) (*value.Module, error) {
	nm, ok := l.Registry.Get(name)
	if !ok {
		return nil, langerr.Import("no such native module %q", name)
	}
	native := nm.Build()

	overlayPath, ok := l.findOverlay(name)
	if !ok {
		return native, nil
	}

	source, err := os.ReadFile(overlayPath)
	if err != nil {
		return native, nil
	}
	prog, err := l.Parse(source, overlayPath)
	if err != nil {
		return nil, langerr.Syntax("parse error in overlay %q: %s", overlayPath, err)
	}

	overlaySc := scope.New()
	overlaySc.ModuleCache = sc.ModuleCache
	overlaySc.CurrentScriptPath = overlayPath
	overlaySc.Declare("__builtin__", native)

	if _, err := l.Run(prog, overlaySc); err != nil {
		return nil, err
	}

	overlayMembers := value.NewModule(name, overlaySc.CurrentFrame(), overlayPath, prog.Docstring)
	return native.MergeOverlay(overlayMembers), nil
}

func (l *Loader) findOverlay(name string) (string, bool) {
	for _, dir := range l.Settings.SearchPaths {
		filePath := dir + "/" + name + fileExt
		if fileExists(filePath) {
			return filePath, true
		}
		dirPath := dir + "/" + name + "/index" + fileExt
		if fileExists(dirPath) {
			return dirPath, true
		}
	}
	return "", false
}
