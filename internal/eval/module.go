package eval

import (
	"strings"

	"github.com/lumenlang/lumen/internal/ast"
	"github.com/lumenlang/lumen/internal/langerr"
	"github.com/lumenlang/lumen/internal/module"
	"github.com/lumenlang/lumen/internal/scope"
	"github.com/lumenlang/lumen/internal/value"
)

// loader is package E wired up at interpreter startup via SetLoader. It is
// nil until then, so a `use` statement in a standalone eval-package test
// that never calls SetLoader fails predictably with ConfigurationErr rather than
// a nil-pointer panic.
var loader *module.Loader

// SetLoader wires the module loader into the evaluator. The
// host calls this once, after constructing a Loader whose RunFunc is
// EvalProgram, the one place eval and module's mutual need for each
// other (module hands eval a parsed Program; eval runs it back through
// module's scope bookkeeping) is resolved by this single injection point.
func SetLoader(l *module.Loader) { loader = l }

func evalUseStmt(n *ast.UseStmt, sc *scope.Scope) (value.Value, Signal, error) {
	if loader == nil {
		return nil, noSignal, langerr.Configuration("no module loader configured")
	}
	alias := n.Alias
	if alias == "" {
		alias = lastPathComponent(n.Path)
	}

	var mod *value.Module
	var err error
	switch {
	case strings.HasPrefix(n.Path, "std/"):
		// std/<name> paths consult the native-module registry first,
		// with overlay composition if a script overlay exists.
		mod, err = loader.LoadNative(sc, n.Path)
	case strings.HasPrefix(n.Path, "."):
		mod, err = loader.LoadFile(sc, n.Path, alias)
	default:
		mod, err = loader.LoadFile(sc, n.Path, alias)
	}
	if err != nil {
		return nil, noSignal, err
	}
	if err := sc.Declare(alias, mod); err != nil {
		return nil, noSignal, err
	}
	return mod, noSignal, nil
}

func lastPathComponent(p string) string {
	p = strings.TrimSuffix(p, "/")
	if i := strings.LastIndexByte(p, '/'); i >= 0 {
		return p[i+1:]
	}
	return p
}
