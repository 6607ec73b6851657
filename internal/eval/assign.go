package eval

import (
	"github.com/lumenlang/lumen/internal/ast"
	"github.com/lumenlang/lumen/internal/langerr"
	"github.com/lumenlang/lumen/internal/scope"
	"github.com/lumenlang/lumen/internal/value"
)

func evalAssignStmt(n *ast.AssignStmt, sc *scope.Scope) (value.Value, Signal, error) {
	rhs, err := EvalExpr(n.Value, sc)
	if err != nil {
		return nil, noSignal, err
	}
	if sc.IsConst(n.Name) {
		return nil, noSignal, langerr.Name("cannot assign to constant %q", n.Name)
	}
	result := rhs
	if n.Op != "=" {
		cur, ok := sc.Get(n.Name)
		if !ok {
			return nil, noSignal, langerr.Name("cannot assign to undeclared variable %q", n.Name)
		}
		result, err = applyCompound(n.Op, cur, rhs)
		if err != nil {
			return nil, noSignal, err
		}
	}
	if ann, ok := sc.GetVariableType(n.Name); ok {
		if err := checkAnnotation(ann, result, false); err != nil {
			return nil, noSignal, err
		}
	}
	if err := sc.Update(n.Name, result); err != nil {
		return nil, noSignal, err
	}
	return result, noSignal, nil
}

// applyCompound implements `+=, -=, *=, /=, %=` under the same numeric-
// tower semantics as the corresponding binary operator.
func applyCompound(op string, cur, rhs value.Value) (value.Value, error) {
	arithOp, ok := compoundToArith[op]
	if !ok {
		return nil, langerr.Type("unknown compound operator %s", op)
	}
	return evalArithDispatch(arithOp, cur, rhs)
}

var compoundToArith = map[string]value.ArithOp{
	"+=": value.OpAdd,
	"-=": value.OpSub,
	"*=": value.OpMul,
	"/=": value.OpDiv,
	"%=": value.OpMod,
}

func evalIndexAssignStmt(n *ast.IndexAssignStmt, sc *scope.Scope) (value.Value, Signal, error) {
	target, err := EvalExpr(n.Target, sc)
	if err != nil {
		return nil, noSignal, err
	}
	idxVal, err := EvalExpr(n.Index, sc)
	if err != nil {
		return nil, noSignal, err
	}
	rhs, err := EvalExpr(n.Value, sc)
	if err != nil {
		return nil, noSignal, err
	}

	result := rhs
	if n.Op != "=" {
		cur, err := readIndex(target, idxVal)
		if err != nil {
			return nil, noSignal, err
		}
		arithOp := compoundToArith[n.Op]
		result, err = evalArithDispatch(arithOp, cur, rhs)
		if err != nil {
			return nil, noSignal, err
		}
	}

	switch t := target.(type) {
	case *value.Array:
		idx, ok := idxVal.(value.Int)
		if !ok {
			return nil, noSignal, langerr.Type("array index must be Int, got %s", idxVal.ClassName())
		}
		if err := t.Set(int(idx), result); err != nil {
			return nil, noSignal, err
		}
	case *value.Dict:
		key, ok := idxVal.(value.Str)
		if !ok {
			return nil, noSignal, langerr.Type("dict key must be Str, got %s", idxVal.ClassName())
		}
		t.SetMut(string(key), result)
	default:
		return nil, noSignal, langerr.Type("%s does not support index assignment", target.ClassName())
	}
	return result, noSignal, nil
}

func readIndex(target, idxVal value.Value) (value.Value, error) {
	switch t := target.(type) {
	case *value.Array:
		idx, ok := idxVal.(value.Int)
		if !ok {
			return nil, langerr.Type("array index must be Int, got %s", idxVal.ClassName())
		}
		return t.Get(int(idx))
	case *value.Dict:
		key, ok := idxVal.(value.Str)
		if !ok {
			return nil, langerr.Type("dict key must be Str, got %s", idxVal.ClassName())
		}
		return t.Get(string(key)), nil
	default:
		return nil, langerr.Type("%s is not indexable", target.ClassName())
	}
}

func evalMemberAssignStmt(n *ast.MemberAssignStmt, sc *scope.Scope) (value.Value, Signal, error) {
	target, err := EvalExpr(n.Target, sc)
	if err != nil {
		return nil, noSignal, err
	}
	rhs, err := EvalExpr(n.Value, sc)
	if err != nil {
		return nil, noSignal, err
	}
	result := rhs
	if mod, ok := target.(*value.Module); ok {
		if n.Op != "=" {
			cur := mod.Get(n.Name)
			result, err = evalArithDispatch(compoundToArith[n.Op], cur, rhs)
			if err != nil {
				return nil, noSignal, err
			}
		}
		mod.Members.Vars[n.Name] = result
		return result, noSignal, nil
	}
	return nil, noSignal, langerr.Attr("cannot assign member %q on %s; use .update() for struct fields", n.Name, target.ClassName())
}
