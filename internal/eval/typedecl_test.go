package eval

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lumenlang/lumen/internal/ast"
)

// A required field omitted at construction fails TypeErr; an optional
// field omitted defaults to Nil.
func TestStructConstructionRequiredAndOptionalFields(t *testing.T) {
	var buf strings.Builder
	sc := newScriptScope(&buf)
	typeDecl := &ast.TypeDecl{
		Name: "Box",
		Fields: []ast.FieldDecl{
			{Name: "x"},
			{Name: "y", Optional: true},
		},
	}
	_, _, err := EvalStmt(typeDecl, sc)
	require.NoError(t, err)

	// Missing required field x -> TypeErr.
	_, err = EvalExpr(&ast.CallExpr{Recv: ident("Box"), Name: "new", Args: []ast.Arg{
		{Name: "y", Value: &ast.IntLit{Value: 1}},
	}}, sc)
	require.Error(t, err)

	// x supplied, y omitted -> y defaults to Nil.
	v, err := EvalExpr(&ast.CallExpr{Recv: ident("Box"), Name: "new", Args: []ast.Arg{
		{Name: "x", Value: &ast.IntLit{Value: 1}},
	}}, sc)
	require.NoError(t, err)

	yVal, err := memberAccess(v, "y")
	require.NoError(t, err)
	require.Equal(t, "nil", yVal.Display())
}

// A decorator `@Name` above `fun f(...)` rewrites f into
// `Name(func)` at declaration time, calling the decorator type's `_call`
// when the resulting struct is later invoked.
func TestDecoratorWrapsFunction(t *testing.T) {
	var buf strings.Builder
	sc := newScriptScope(&buf)

	// type Logged func: end with an instance method `_call(n)` that
	// doubles the wrapped function's result.
	callMethod := &ast.FunDecl{
		Name:   "_call",
		Params: []ast.Param{{Name: "n"}},
		Body: []ast.Node{
			&ast.ReturnStmt{Value: &ast.BinaryExpr{
				Op:   "*",
				Left: &ast.IntLit{Value: 2},
				Right: callBare(
					&ast.MemberExpr{Recv: ident("self"), Name: "func"},
					ident("n"),
				),
			}},
		},
	}
	typeDecl := &ast.TypeDecl{
		Name:            "Logged",
		Fields:          []ast.FieldDecl{{Name: "func"}},
		InstanceMethods: []*ast.FunDecl{callMethod},
	}
	_, _, err := EvalStmt(typeDecl, sc)
	require.NoError(t, err)

	fDecl := &ast.FunDecl{
		Name:       "f",
		Params:     []ast.Param{{Name: "n"}},
		Decorators: []ast.Decorator{{Name: "Logged"}},
		Body: []ast.Node{
			&ast.ReturnStmt{Value: &ast.BinaryExpr{Op: "+", Left: ident("n"), Right: &ast.IntLit{Value: 1}}},
		},
	}
	_, _, err = EvalStmt(fDecl, sc)
	require.NoError(t, err)

	prog := &ast.Program{Body: []ast.Node{
		putsCall(callBare(ident("f"), &ast.IntLit{Value: 4})),
	}}
	_, err = EvalProgram(prog, sc)
	require.NoError(t, err)
	require.Equal(t, "10\n", buf.String())
}

// The builtin struct surface (`is`/`does`/`update`) wins over a user
// method of the same name.
func TestBuiltinStructMethodsNotShadowed(t *testing.T) {
	var buf strings.Builder
	sc := newScriptScope(&buf)
	shadow := &ast.FunDecl{
		Name: "update",
		Body: []ast.Node{&ast.ReturnStmt{Value: &ast.StrLit{Value: "shadowed"}}},
	}
	typeDecl := &ast.TypeDecl{
		Name:            "Pt",
		Fields:          []ast.FieldDecl{{Name: "x"}},
		InstanceMethods: []*ast.FunDecl{shadow},
	}
	_, _, err := EvalStmt(typeDecl, sc)
	require.NoError(t, err)

	ctor := &ast.CallExpr{Recv: ident("Pt"), Name: "new", Args: []ast.Arg{
		{Value: &ast.IntLit{Value: 1}},
	}}
	updated, err := EvalExpr(&ast.CallExpr{Recv: ctor, Name: "update", Args: []ast.Arg{
		{Name: "x", Value: &ast.IntLit{Value: 7}},
	}}, sc)
	require.NoError(t, err)

	xVal, err := memberAccess(updated, "x")
	require.NoError(t, err)
	require.Equal(t, "7", xVal.Display())
}

// `.is(T)` takes the Type value itself, not just its name.
func TestStructIsAcceptsTypeValue(t *testing.T) {
	var buf strings.Builder
	sc := newScriptScope(&buf)
	_, _, err := EvalStmt(&ast.TypeDecl{Name: "Pt", Fields: []ast.FieldDecl{{Name: "x"}}}, sc)
	require.NoError(t, err)
	_, _, err = EvalStmt(&ast.TypeDecl{Name: "Other"}, sc)
	require.NoError(t, err)

	ctor := &ast.CallExpr{Recv: ident("Pt"), Name: "new", Args: []ast.Arg{
		{Value: &ast.IntLit{Value: 1}},
	}}
	v, err := EvalExpr(&ast.CallExpr{Recv: ctor, Name: "is", Args: []ast.Arg{{Value: ident("Pt")}}}, sc)
	require.NoError(t, err)
	require.Equal(t, "true", v.Display())

	v, err = EvalExpr(&ast.CallExpr{Recv: ctor, Name: "is", Args: []ast.Arg{{Value: ident("Other")}}}, sc)
	require.NoError(t, err)
	require.Equal(t, "false", v.Display())
}

// `.update` rejects unknown fields and validates typed fields.
func TestStructUpdateValidatesFields(t *testing.T) {
	var buf strings.Builder
	sc := newScriptScope(&buf)
	typeDecl := &ast.TypeDecl{
		Name:   "Acct",
		Fields: []ast.FieldDecl{{Name: "balance", Annotation: "Int"}},
	}
	_, _, err := EvalStmt(typeDecl, sc)
	require.NoError(t, err)

	ctor := &ast.CallExpr{Recv: ident("Acct"), Name: "new", Args: []ast.Arg{
		{Value: &ast.IntLit{Value: 10}},
	}}
	_, err = EvalExpr(&ast.CallExpr{Recv: ctor, Name: "update", Args: []ast.Arg{
		{Name: "owner", Value: &ast.StrLit{Value: "x"}},
	}}, sc)
	require.Error(t, err)

	_, err = EvalExpr(&ast.CallExpr{Recv: ctor, Name: "update", Args: []ast.Arg{
		{Name: "balance", Value: &ast.StrLit{Value: "not an int"}},
	}}, sc)
	require.Error(t, err)

	v, err := EvalExpr(&ast.CallExpr{Recv: ctor, Name: "update", Args: []ast.Arg{
		{Name: "balance", Value: &ast.IntLit{Value: 20}},
	}}, sc)
	require.NoError(t, err)
	bal, err := memberAccess(v, "balance")
	require.NoError(t, err)
	require.Equal(t, "20", bal.Display())
}
