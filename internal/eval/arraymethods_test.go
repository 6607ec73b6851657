package eval

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lumenlang/lumen/internal/ast"
)

func arrLit(vals ...int64) *ast.ArrayLit {
	elems := make([]ast.Node, len(vals))
	for i, v := range vals {
		elems[i] = &ast.IntLit{Value: v}
	}
	return &ast.ArrayLit{Elements: elems}
}

// arr.reverse().reverse() == arr.
func TestArrayReverseTwiceIsIdentity(t *testing.T) {
	var buf strings.Builder
	sc := newScriptScope(&buf)
	prog := &ast.Program{Body: []ast.Node{
		&ast.LetStmt{Name: "a", Value: arrLit(1, 2, 3)},
		putsCall(&ast.CallExpr{
			Recv: &ast.CallExpr{Recv: ident("a"), Name: "reverse"},
			Name: "reverse",
		}),
	}}
	_, err := EvalProgram(prog, sc)
	require.NoError(t, err)
	require.Equal(t, "[1, 2, 3]\n", buf.String())
}

func TestArrayZipPairsByShorterLength(t *testing.T) {
	var buf strings.Builder
	sc := newScriptScope(&buf)
	prog := &ast.Program{Body: []ast.Node{
		&ast.LetStmt{Name: "a", Value: arrLit(1, 2, 3)},
		&ast.LetStmt{Name: "b", Value: arrLit(10, 20)},
		putsCall(&ast.CallExpr{Recv: ident("a"), Name: "zip", Args: []ast.Arg{{Value: ident("b")}}}),
	}}
	_, err := EvalProgram(prog, sc)
	require.NoError(t, err)
	require.Equal(t, "[[1, 10], [2, 20]]\n", buf.String())
}

func TestArraySortByDescendingComparator(t *testing.T) {
	var buf strings.Builder
	sc := newScriptScope(&buf)
	cmp := &ast.FunExpr{
		Params: []ast.Param{{Name: "x"}, {Name: "y"}},
		Body: []ast.Node{
			&ast.ReturnStmt{Value: &ast.BinaryExpr{Op: "-", Left: ident("y"), Right: ident("x")}},
		},
	}
	prog := &ast.Program{Body: []ast.Node{
		&ast.LetStmt{Name: "a", Value: arrLit(3, 1, 2)},
		putsCall(&ast.CallExpr{Recv: ident("a"), Name: "sort_by", Args: []ast.Arg{{Value: cmp}}}),
	}}
	_, err := EvalProgram(prog, sc)
	require.NoError(t, err)
	require.Equal(t, "[3, 2, 1]\n", buf.String())
}

func TestArrayFlattenAndUnique(t *testing.T) {
	var buf strings.Builder
	sc := newScriptScope(&buf)
	nested := &ast.ArrayLit{Elements: []ast.Node{
		arrLit(1, 2), arrLit(2, 3),
	}}
	prog := &ast.Program{Body: []ast.Node{
		&ast.LetStmt{Name: "a", Value: nested},
		putsCall(&ast.CallExpr{
			Recv: &ast.CallExpr{Recv: ident("a"), Name: "flatten"},
			Name: "unique",
		}),
	}}
	_, err := EvalProgram(prog, sc)
	require.NoError(t, err)
	require.Equal(t, "[1, 2, 3]\n", buf.String())
}

// The common one-parameter callback form: surplus method-supplied
// arguments (the index) are dropped, not an ArgErr.
func TestArrayMapSingleParamCallback(t *testing.T) {
	var buf strings.Builder
	sc := newScriptScope(&buf)
	double := &ast.FunExpr{
		Params: []ast.Param{{Name: "x"}},
		Body: []ast.Node{
			&ast.ReturnStmt{Value: &ast.BinaryExpr{Op: "*", Left: ident("x"), Right: &ast.IntLit{Value: 2}}},
		},
	}
	prog := &ast.Program{Body: []ast.Node{
		&ast.LetStmt{Name: "a", Value: arrLit(1, 2, 3)},
		putsCall(&ast.CallExpr{Recv: ident("a"), Name: "map", Args: []ast.Arg{{Value: double}}}),
	}}
	_, err := EvalProgram(prog, sc)
	require.NoError(t, err)
	require.Equal(t, "[2, 4, 6]\n", buf.String())
}

// A two-parameter callback receives element and index.
func TestArrayFilterCallbackReceivesIndex(t *testing.T) {
	var buf strings.Builder
	sc := newScriptScope(&buf)
	evenIndex := &ast.FunExpr{
		Params: []ast.Param{{Name: "x"}, {Name: "i"}},
		Body: []ast.Node{
			&ast.ReturnStmt{Value: &ast.BinaryExpr{
				Op:    "==",
				Left:  &ast.BinaryExpr{Op: "%", Left: ident("i"), Right: &ast.IntLit{Value: 2}},
				Right: &ast.IntLit{Value: 0},
			}},
		},
	}
	prog := &ast.Program{Body: []ast.Node{
		&ast.LetStmt{Name: "a", Value: arrLit(10, 11, 12, 13)},
		putsCall(&ast.CallExpr{Recv: ident("a"), Name: "filter", Args: []ast.Arg{{Value: evenIndex}}}),
	}}
	_, err := EvalProgram(prog, sc)
	require.NoError(t, err)
	require.Equal(t, "[10, 12]\n", buf.String())
}

func TestArrayReduceTwoParamCallback(t *testing.T) {
	var buf strings.Builder
	sc := newScriptScope(&buf)
	sum := &ast.FunExpr{
		Params: []ast.Param{{Name: "acc"}, {Name: "x"}},
		Body: []ast.Node{
			&ast.ReturnStmt{Value: &ast.BinaryExpr{Op: "+", Left: ident("acc"), Right: ident("x")}},
		},
	}
	prog := &ast.Program{Body: []ast.Node{
		&ast.LetStmt{Name: "a", Value: arrLit(1, 2, 3, 4)},
		putsCall(&ast.CallExpr{Recv: ident("a"), Name: "reduce", Args: []ast.Arg{{Value: sum}}}),
	}}
	_, err := EvalProgram(prog, sc)
	require.NoError(t, err)
	require.Equal(t, "10\n", buf.String())
}
