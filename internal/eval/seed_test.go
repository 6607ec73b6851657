package eval

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lumenlang/lumen/internal/ast"
	"github.com/lumenlang/lumen/internal/langerr"
	"github.com/lumenlang/lumen/internal/scope"
	"github.com/lumenlang/lumen/internal/value"
)

// newScriptScope builds a root scope with globals installed and stdout
// captured into buf, the way a host would before calling EvalProgram.
func newScriptScope(buf *strings.Builder) *scope.Scope {
	sc := scope.New()
	InstallGlobals(sc)
	sc.StdoutTarget = scope.OutputTarget{Writer: func(s string) error {
		buf.WriteString(s)
		return nil
	}}
	return sc
}

func ident(name string) *ast.Identifier { return &ast.Identifier{Name: name} }

func callBare(recv ast.Node, args ...ast.Node) *ast.CallExpr {
	callArgs := make([]ast.Arg, len(args))
	for i, a := range args {
		callArgs[i] = ast.Arg{Value: a}
	}
	return &ast.CallExpr{Recv: recv, Args: callArgs}
}

func putsCall(arg ast.Node) *ast.ExprStmt {
	return &ast.ExprStmt{Expr: callBare(ident("puts"), arg)}
}

// let x = 2 + 3 * 4; puts(x) -> "14\n"
func TestSeedArithmeticPrecedence(t *testing.T) {
	var buf strings.Builder
	sc := newScriptScope(&buf)
	prog := &ast.Program{Body: []ast.Node{
		&ast.LetStmt{Name: "x", Value: &ast.BinaryExpr{
			Op:   "+",
			Left: &ast.IntLit{Value: 2},
			Right: &ast.BinaryExpr{
				Op:    "*",
				Left:  &ast.IntLit{Value: 3},
				Right: &ast.IntLit{Value: 4},
			},
		}},
		putsCall(ident("x")),
	}}
	_, err := EvalProgram(prog, sc)
	require.NoError(t, err)
	require.Equal(t, "14\n", buf.String())
}

// let a = [1,2,3]; a[-1] = 99; puts(a[2]) -> "99\n"
func TestSeedArrayNegativeIndexAssign(t *testing.T) {
	var buf strings.Builder
	sc := newScriptScope(&buf)
	prog := &ast.Program{Body: []ast.Node{
		&ast.LetStmt{Name: "a", Value: &ast.ArrayLit{Elements: []ast.Node{
			&ast.IntLit{Value: 1}, &ast.IntLit{Value: 2}, &ast.IntLit{Value: 3},
		}}},
		&ast.IndexAssignStmt{
			Target: ident("a"),
			Index:  &ast.UnaryExpr{Op: "-", Operand: &ast.IntLit{Value: 1}},
			Op:     "=",
			Value:  &ast.IntLit{Value: 99},
		},
		putsCall(&ast.IndexExpr{Recv: ident("a"), Index: &ast.IntLit{Value: 2}}),
	}}
	_, err := EvalProgram(prog, sc)
	require.NoError(t, err)
	require.Equal(t, "99\n", buf.String())
}

// fun f(n) if n <= 1 return 1 end return n * f(n - 1) end
// puts(f(5)) -> "120\n"
func TestSeedRecursiveFactorial(t *testing.T) {
	var buf strings.Builder
	sc := newScriptScope(&buf)
	fDecl := &ast.FunDecl{
		Name:   "f",
		Params: []ast.Param{{Name: "n"}},
		Body: []ast.Node{
			&ast.IfStmt{
				Cond: &ast.BinaryExpr{Op: "<=", Left: ident("n"), Right: &ast.IntLit{Value: 1}},
				Then: []ast.Node{&ast.ReturnStmt{Value: &ast.IntLit{Value: 1}}},
			},
			&ast.ReturnStmt{Value: &ast.BinaryExpr{
				Op:   "*",
				Left: ident("n"),
				Right: callBare(ident("f"), &ast.BinaryExpr{
					Op: "-", Left: ident("n"), Right: &ast.IntLit{Value: 1},
				}),
			}},
		},
	}
	prog := &ast.Program{Body: []ast.Node{
		fDecl,
		putsCall(callBare(ident("f"), &ast.IntLit{Value: 5})),
	}}
	_, err := EvalProgram(prog, sc)
	require.NoError(t, err)
	require.Equal(t, "120\n", buf.String())
}

// try raise ValueErr.new("bad") catch e: ValueErr puts(e.message) end
func TestSeedTryCatchTypedKind(t *testing.T) {
	var buf strings.Builder
	sc := newScriptScope(&buf)
	raiseExpr := &ast.CallExpr{Recv: ident("ValueErr"), Name: "new", Args: []ast.Arg{
		{Value: &ast.StrLit{Value: "bad"}},
	}}
	prog := &ast.Program{Body: []ast.Node{
		&ast.TryStmt{
			Body: []ast.Node{&ast.RaiseStmt{Value: raiseExpr}},
			Catches: []ast.CatchClause{{
				VarName: "e",
				Kind:    "ValueErr",
				Body:    []ast.Node{putsCall(&ast.MemberExpr{Recv: ident("e"), Name: "message"})},
			}},
		},
	}}
	_, err := EvalProgram(prog, sc)
	require.NoError(t, err)
	require.Equal(t, "bad\n", buf.String())
}

// type Pt x y end; let p = Pt.new(1, 2); puts(p.update(y: 9).y)
func TestSeedStructUpdate(t *testing.T) {
	var buf strings.Builder
	sc := newScriptScope(&buf)
	typeDecl := &ast.TypeDecl{
		Name:   "Pt",
		Fields: []ast.FieldDecl{{Name: "x"}, {Name: "y"}},
	}
	ctor := &ast.CallExpr{Recv: ident("Pt"), Name: "new", Args: []ast.Arg{
		{Value: &ast.IntLit{Value: 1}}, {Value: &ast.IntLit{Value: 2}},
	}}
	updateCall := &ast.CallExpr{Recv: ident("p"), Name: "update", Args: []ast.Arg{
		{Name: "y", Value: &ast.IntLit{Value: 9}},
	}}
	prog := &ast.Program{Body: []ast.Node{
		typeDecl,
		&ast.LetStmt{Name: "p", Value: ctor},
		putsCall(&ast.MemberExpr{Recv: updateCall, Name: "y"}),
	}}
	_, err := EvalProgram(prog, sc)
	require.NoError(t, err)
	require.Equal(t, "9\n", buf.String())
}

// let d = {"a": 1}; puts(d.get("missing")) -> "nil\n"
func TestSeedDictGetMissingIsNil(t *testing.T) {
	var buf strings.Builder
	sc := newScriptScope(&buf)
	prog := &ast.Program{Body: []ast.Node{
		&ast.LetStmt{Name: "d", Value: &ast.DictLit{
			Keys:   []ast.Node{&ast.StrLit{Value: "a"}},
			Values: []ast.Node{&ast.IntLit{Value: 1}},
		}},
		putsCall(&ast.CallExpr{Recv: ident("d"), Name: "get", Args: []ast.Arg{
			{Value: &ast.StrLit{Value: "missing"}},
		}}),
	}}
	_, err := EvalProgram(prog, sc)
	require.NoError(t, err)
	require.Equal(t, "nil\n", buf.String())
}

// ensure runs exactly once per try entry, on every exit path.
func TestEnsureRunsExactlyOnceOnError(t *testing.T) {
	var buf strings.Builder
	sc := newScriptScope(&buf)
	prog := &ast.Program{Body: []ast.Node{
		&ast.TryStmt{
			Body:   []ast.Node{&ast.RaiseStmt{Value: &ast.StrLit{Value: "boom"}}},
			Ensure: []ast.Node{putsCall(&ast.StrLit{Value: "cleanup"})},
		},
	}}
	_, err := EvalProgram(prog, sc)
	require.Error(t, err)
	require.Equal(t, "cleanup\n", buf.String())
}

func TestEnsureRunsExactlyOnceOnNormalExit(t *testing.T) {
	var buf strings.Builder
	sc := newScriptScope(&buf)
	prog := &ast.Program{Body: []ast.Node{
		&ast.TryStmt{
			Body:   []ast.Node{putsCall(&ast.StrLit{Value: "body"})},
			Ensure: []ast.Node{putsCall(&ast.StrLit{Value: "cleanup"})},
		},
	}}
	_, err := EvalProgram(prog, sc)
	require.NoError(t, err)
	require.Equal(t, "body\ncleanup\n", buf.String())
}

// A top-level `return` exits cleanly with Nil and does not propagate as
// an error.
func TestTopLevelReturnExitsCleanly(t *testing.T) {
	var buf strings.Builder
	sc := newScriptScope(&buf)
	prog := &ast.Program{Body: []ast.Node{
		putsCall(&ast.StrLit{Value: "before"}),
		&ast.ReturnStmt{},
		putsCall(&ast.StrLit{Value: "after"}),
	}}
	v, err := EvalProgram(prog, sc)
	require.NoError(t, err)
	require.True(t, value.IsNil(v))
	require.Equal(t, "before\n", buf.String())
}

// FunctionReturn/break/continue are non-local exits, not exceptions: a
// catch block must not intercept them.
func TestCatchDoesNotInterceptBreak(t *testing.T) {
	var buf strings.Builder
	sc := newScriptScope(&buf)
	prog := &ast.Program{Body: []ast.Node{
		&ast.WhileStmt{
			Cond: &ast.BoolLit{Value: true},
			Body: []ast.Node{
				&ast.TryStmt{
					Body:    []ast.Node{&ast.BreakStmt{}},
					Catches: []ast.CatchClause{{Body: []ast.Node{putsCall(&ast.StrLit{Value: "unreachable"})}}},
				},
				putsCall(&ast.StrLit{Value: "also unreachable"}),
			},
		},
		putsCall(&ast.StrLit{Value: "after loop"}),
	}}
	_, err := EvalProgram(prog, sc)
	require.NoError(t, err)
	require.Equal(t, "after loop\n", buf.String())
}

// A value's id is stable across repeated reads.
func TestValueIDStableAcrossReads(t *testing.T) {
	var buf strings.Builder
	sc := newScriptScope(&buf)
	prog := &ast.Program{Body: []ast.Node{
		&ast.LetStmt{Name: "s", Value: &ast.StrLit{Value: "hi"}},
		putsCall(&ast.CallExpr{Recv: ident("s"), Name: "_id"}),
		putsCall(&ast.CallExpr{Recv: ident("s"), Name: "_id"}),
	}}
	_, err := EvalProgram(prog, sc)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	require.Equal(t, lines[0], lines[1])
}

// A raise inside a function snapshots the call stack into the exception;
// the catch-bound struct exposes it under `stack` (one frame per active
// call at raise time).
func TestCaughtExceptionCarriesStack(t *testing.T) {
	var buf strings.Builder
	sc := newScriptScope(&buf)
	raiseExpr := &ast.CallExpr{Recv: ident("ValueErr"), Name: "new", Args: []ast.Arg{
		{Value: &ast.StrLit{Value: "boom"}},
	}}
	fDecl := &ast.FunDecl{
		Name: "f",
		Body: []ast.Node{&ast.RaiseStmt{Value: raiseExpr}},
	}
	stackLen := &ast.CallExpr{
		Recv: &ast.MemberExpr{Recv: ident("e"), Name: "stack"},
		Name: "len",
	}
	prog := &ast.Program{Body: []ast.Node{
		fDecl,
		&ast.TryStmt{
			Body: []ast.Node{&ast.ExprStmt{Expr: callBare(ident("f"))}},
			Catches: []ast.CatchClause{{
				VarName: "e",
				Body:    []ast.Node{putsCall(stackLen)},
			}},
		},
	}}
	_, err := EvalProgram(prog, sc)
	require.NoError(t, err)
	require.Equal(t, "1\n", buf.String())
}

// A top-level `return expr` still evaluates expr for its side effects but
// the script's result is Nil.
func TestTopLevelReturnWithValueStillExitsNil(t *testing.T) {
	var buf strings.Builder
	sc := newScriptScope(&buf)
	prog := &ast.Program{Body: []ast.Node{
		&ast.ReturnStmt{Value: &ast.IntLit{Value: 42}},
		putsCall(&ast.StrLit{Value: "unreachable"}),
	}}
	v, err := EvalProgram(prog, sc)
	require.NoError(t, err)
	require.True(t, value.IsNil(v))
	require.Equal(t, "", buf.String())
}

// Unbounded recursion hits the depth cap and surfaces as a catchable
// RuntimeErr instead of overflowing the host stack.
func TestUnboundedRecursionRaisesRuntimeErr(t *testing.T) {
	var buf strings.Builder
	sc := newScriptScope(&buf)
	fDecl := &ast.FunDecl{
		Name:   "f",
		Params: []ast.Param{{Name: "n"}},
		Body: []ast.Node{
			&ast.ReturnStmt{Value: callBare(ident("f"),
				&ast.BinaryExpr{Op: "+", Left: ident("n"), Right: &ast.IntLit{Value: 1}})},
		},
	}
	prog := &ast.Program{Body: []ast.Node{
		fDecl,
		&ast.ExprStmt{Expr: callBare(ident("f"), &ast.IntLit{Value: 0})},
	}}
	_, err := EvalProgram(prog, sc)
	require.Error(t, err)
	lerr, ok := err.(*langerr.Error)
	require.True(t, ok)
	require.Equal(t, langerr.KindRuntimeErr, lerr.Kind)
	require.Contains(t, lerr.Message, "recursion depth")
}

// The same cap is catchable from inside the script.
func TestRecursionCapIsCatchable(t *testing.T) {
	var buf strings.Builder
	sc := newScriptScope(&buf)
	fDecl := &ast.FunDecl{
		Name:   "f",
		Params: []ast.Param{{Name: "n"}},
		Body: []ast.Node{
			&ast.ReturnStmt{Value: callBare(ident("f"),
				&ast.BinaryExpr{Op: "+", Left: ident("n"), Right: &ast.IntLit{Value: 1}})},
		},
	}
	prog := &ast.Program{Body: []ast.Node{
		fDecl,
		&ast.TryStmt{
			Body: []ast.Node{&ast.ExprStmt{Expr: callBare(ident("f"), &ast.IntLit{Value: 0})}},
			Catches: []ast.CatchClause{{
				VarName: "e",
				Kind:    "RuntimeErr",
				Body:    []ast.Node{putsCall(&ast.StrLit{Value: "caught"})},
			}},
		},
	}}
	_, err := EvalProgram(prog, sc)
	require.NoError(t, err)
	require.Equal(t, "caught\n", buf.String())
}
