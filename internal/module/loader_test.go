package module

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lumenlang/lumen/internal/ast"
	"github.com/lumenlang/lumen/internal/scope"
	"github.com/lumenlang/lumen/internal/value"
)

// stubParse never inspects source text; it returns an empty program so
// these tests exercise path resolution, caching, and cycle detection
// without depending on the (out-of-scope) grammar.
func stubParse(source []byte, path string) (*ast.Program, error) {
	return &ast.Program{}, nil
}

func stubRun(prog *ast.Program, sc *scope.Scope) (value.Value, error) {
	return value.Nil, nil
}

func newTestLoader() *Loader {
	return NewLoader(NewRegistry(), &Settings{}, stubParse, stubRun)
}

// Module load is idempotent: two loads of the same
// resolved path in one run return the same module id.
func TestLoadFileIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.lm"), []byte(""), 0o644))

	l := newTestLoader()
	sc := scope.New()
	sc.CurrentScriptPath = filepath.Join(dir, "main.lm")

	m1, err := l.LoadFile(sc, "./a", "a")
	require.NoError(t, err)
	m2, err := l.LoadFile(sc, "./a", "a")
	require.NoError(t, err)
	require.Equal(t, m1.ID(), m2.ID())
}

// A circular import fails ImportErr naming the
// cycle, detected via the module-loading stack pushed/popped around
// evalModuleFile.
func TestCircularImportDetected(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "self.lm"), []byte(""), 0o644))

	l := newTestLoader()
	sc := scope.New()
	sc.CurrentScriptPath = filepath.Join(dir, "main.lm")

	// Simulate self.lm being mid-load (as if its own body issued `use
	// "./self"`) by pushing the resolved path before loading again.
	resolved, err := l.resolvePath(sc, "./self")
	require.NoError(t, err)
	sc.PushLoadingModule(resolved)
	defer sc.PopLoadingModule()

	_, err = l.LoadFile(sc, "./self", "self")
	require.Error(t, err)
	require.Contains(t, err.Error(), "circular import")
}

func TestResolveRelativeRequiresCurrentScriptPath(t *testing.T) {
	_, err := ResolveRelative("", "./sibling")
	require.Error(t, err)
}
