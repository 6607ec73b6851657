// Package eval implements the recursive tree-walking
// evaluator. It is the only package that knows how to run an ast.Node;
// package types resolves methods but never invokes their bodies, and
// package module hands back loaded ast.Program values for eval to run.
package eval

import (
	"github.com/lumenlang/lumen/internal/ast"
	"github.com/lumenlang/lumen/internal/langerr"
	"github.com/lumenlang/lumen/internal/scope"
	"github.com/lumenlang/lumen/internal/types"
	"github.com/lumenlang/lumen/internal/value"
)

// EvalProgram runs every top-level statement of prog in sc, returning the
// value of the last statement
// or Nil if the program is empty. A top-level `return expr?` exits
// cleanly with value Nil and status 0 regardless of the returned
// expression, which is still evaluated for its side effects.
func EvalProgram(prog *ast.Program, sc *scope.Scope) (value.Value, error) {
	v, sig, err := EvalBody(prog.Body, sc)
	if err != nil {
		return nil, err
	}
	if sig.Kind == SignalReturn {
		return value.Nil, nil
	}
	return v, nil
}

// EvalBody runs a statement list in the current frame (callers push/pop a
// nested frame around this when the body belongs to a new lexical block),
// propagating the first non-local-exit signal it encounters.
func EvalBody(body []ast.Node, sc *scope.Scope) (value.Value, Signal, error) {
	var last value.Value = value.Nil
	for _, stmt := range body {
		v, sig, err := EvalStmt(stmt, sc)
		if err != nil {
			return nil, noSignal, err
		}
		last = v
		if sig.Kind != SignalNone {
			return last, sig, nil
		}
	}
	return last, noSignal, nil
}

// EvalStmt dispatches one statement node. Expression statements fall
// through to EvalExpr via the ExprStmt case.
func EvalStmt(node ast.Node, sc *scope.Scope) (value.Value, Signal, error) {
	switch n := node.(type) {
	case *ast.LetStmt:
		return evalLetStmt(n, sc)
	case *ast.DestructureStmt:
		return evalDestructureStmt(n, sc)
	case *ast.AssignStmt:
		return evalAssignStmt(n, sc)
	case *ast.IndexAssignStmt:
		return evalIndexAssignStmt(n, sc)
	case *ast.MemberAssignStmt:
		return evalMemberAssignStmt(n, sc)
	case *ast.ExprStmt:
		v, err := EvalExpr(n.Expr, sc)
		return v, noSignal, err
	case *ast.IfStmt:
		return evalIfStmt(n, sc)
	case *ast.WhileStmt:
		return evalWhileStmt(n, sc)
	case *ast.ForStmt:
		return evalForStmt(n, sc)
	case *ast.TryStmt:
		return evalTryStmt(n, sc)
	case *ast.RaiseStmt:
		return nil, noSignal, evalRaiseStmt(n, sc)
	case *ast.ReturnStmt:
		return evalReturnStmt(n, sc)
	case *ast.BreakStmt:
		return value.Nil, Signal{Kind: SignalBreak}, nil
	case *ast.ContinueStmt:
		return value.Nil, Signal{Kind: SignalContinue}, nil
	case *ast.FunDecl:
		return evalFunDecl(n, sc)
	case *ast.TypeDecl:
		return evalTypeDecl(n, sc)
	case *ast.TraitDecl:
		return evalTraitDecl(n, sc)
	case *ast.UseStmt:
		return evalUseStmt(n, sc)
	default:
		v, err := EvalExpr(node, sc)
		return v, noSignal, err
	}
}

func evalLetStmt(n *ast.LetStmt, sc *scope.Scope) (value.Value, Signal, error) {
	v, err := EvalExpr(n.Value, sc)
	if err != nil {
		return nil, noSignal, err
	}
	if n.Annotation != "" {
		if err := checkAnnotation(n.Annotation, v, false); err != nil {
			return nil, noSignal, err
		}
		if err := sc.DeclareWithType(n.Name, v, n.Annotation); err != nil {
			return nil, noSignal, err
		}
	} else if n.Const {
		if err := sc.DeclareConst(n.Name, v); err != nil {
			return nil, noSignal, err
		}
	} else {
		if err := sc.Declare(n.Name, v); err != nil {
			return nil, noSignal, err
		}
	}
	if n.Public {
		sc.MarkPublic(n.Name)
	}
	return v, noSignal, nil
}

func evalDestructureStmt(n *ast.DestructureStmt, sc *scope.Scope) (value.Value, Signal, error) {
	v, err := EvalExpr(n.Value, sc)
	if err != nil {
		return nil, noSignal, err
	}
	var elems []value.Value
	switch t := v.(type) {
	case *value.Array:
		elems = t.Elements
	case *value.Dict:
		elems = t.Keys()
	default:
		return nil, noSignal, langerr.Type("cannot destructure a %s", v.ClassName())
	}
	if len(elems) != len(n.Names) {
		return nil, noSignal, langerr.Value("destructure expects %d values, got %d", len(n.Names), len(elems))
	}
	for i, name := range n.Names {
		if err := sc.Declare(name, elems[i]); err != nil {
			return nil, noSignal, err
		}
	}
	return v, noSignal, nil
}

func evalReturnStmt(n *ast.ReturnStmt, sc *scope.Scope) (value.Value, Signal, error) {
	if n.Value == nil {
		return value.Nil, Signal{Kind: SignalReturn, Value: value.Nil}, nil
	}
	v, err := EvalExpr(n.Value, sc)
	if err != nil {
		return nil, noSignal, err
	}
	return v, Signal{Kind: SignalReturn, Value: v}, nil
}

func evalRaiseStmt(n *ast.RaiseStmt, sc *scope.Scope) error {
	if n.Value == nil {
		if sc.CurrentException == nil {
			return langerr.Runtime("bare raise outside of a catch block")
		}
		return sc.CurrentException
	}
	v, err := EvalExpr(n.Value, sc)
	if err != nil {
		return err
	}
	return raiseValue(v, sc)
}

// raiseValue converts a raised runtime value into a *langerr.Error,
// snapshotting the live call stack onto it exactly once, then clearing
// the live stack so a re-raise cannot capture it again. An
// exception-type instance
// (a Struct built via `Kind.new(message)`) carries its Kind as the
// struct's type name and its message under field "message"; any other
// raised value is wrapped as a plain Err with its display form as message.
func raiseValue(v value.Value, sc *scope.Scope) error {
	e := errorFromValue(v).WithStack(toLangerrFrames(sc.GetStackTrace()))
	sc.ClearCallStack()
	return e
}

func errorFromValue(v value.Value) *langerr.Error {
	if s, ok := v.(*types.Struct); ok {
		msg := ""
		if m, ok := s.Fields["message"]; ok {
			msg = m.Display()
		}
		return langerr.New(langerr.Kind(s.Type.Name), "%s", msg)
	}
	if sv, ok := v.(value.Str); ok {
		return langerr.New(langerr.KindErr, "%s", string(sv))
	}
	return langerr.New(langerr.KindErr, "%s", v.Display())
}

func toLangerrFrames(stack []string) []langerr.Frame {
	out := make([]langerr.Frame, len(stack))
	for i, s := range stack {
		out[i] = langerr.Frame{Function: s}
	}
	return out
}
