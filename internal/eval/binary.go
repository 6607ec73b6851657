package eval

import (
	"math/big"

	"github.com/lumenlang/lumen/internal/ast"
	"github.com/lumenlang/lumen/internal/langerr"
	"github.com/lumenlang/lumen/internal/scope"
	"github.com/lumenlang/lumen/internal/types"
	"github.com/lumenlang/lumen/internal/value"
)

var binaryArithOps = map[string]value.ArithOp{
	"+": value.OpAdd, "-": value.OpSub, "*": value.OpMul, "/": value.OpDiv, "%": value.OpMod,
}

var structArithMethods = map[value.ArithOp]string{
	value.OpAdd: "plus", value.OpSub: "minus", value.OpMul: "times",
	value.OpDiv: "divide", value.OpMod: "modulo",
}

func evalBinaryExpr(n *ast.BinaryExpr, sc *scope.Scope) (value.Value, error) {
	// and/or short-circuit before evaluating the right operand.
	if n.Op == "and" || n.Op == "&&" {
		left, err := EvalExpr(n.Left, sc)
		if err != nil {
			return nil, err
		}
		if !value.Truthy(left) {
			return left, nil
		}
		return EvalExpr(n.Right, sc)
	}
	if n.Op == "or" || n.Op == "||" {
		left, err := EvalExpr(n.Left, sc)
		if err != nil {
			return nil, err
		}
		if value.Truthy(left) {
			return left, nil
		}
		return EvalExpr(n.Right, sc)
	}

	left, err := EvalExpr(n.Left, sc)
	if err != nil {
		return nil, err
	}
	right, err := EvalExpr(n.Right, sc)
	if err != nil {
		return nil, err
	}

	switch n.Op {
	case "+", "-", "*", "/", "%":
		return evalArithDispatch(binaryArithOps[n.Op], left, right)
	case "==":
		return value.Bool(value.Equal(left, right)), nil
	case "!=":
		return value.Bool(!value.Equal(left, right)), nil
	case "<", "<=", ">", ">=":
		c, err := value.Compare(left, right)
		if err != nil {
			return nil, err
		}
		switch n.Op {
		case "<":
			return value.Bool(c < 0), nil
		case "<=":
			return value.Bool(c <= 0), nil
		case ">":
			return value.Bool(c > 0), nil
		default:
			return value.Bool(c >= 0), nil
		}
	default:
		return nil, langerr.Type("unknown binary operator %q", n.Op)
	}
}

// evalArithDispatch: when either operand is a user Struct, arithmetic
// dispatches to the
// matching receiver method (plus/minus/times/divide/modulo) instead of the
// numeric tower, giving struct types a stable way to opt into `+ - * / %`.
func evalArithDispatch(op value.ArithOp, left, right value.Value) (value.Value, error) {
	if s, ok := left.(*types.Struct); ok {
		return callStructArithMethod(op, s, right)
	}
	if s, ok := right.(*types.Struct); ok {
		return callStructArithMethod(op, s, left)
	}
	return value.Arith(op, left, right)
}

func callStructArithMethod(op value.ArithOp, s *types.Struct, other value.Value) (value.Value, error) {
	name := structArithMethods[op]
	resolved, ok := types.ResolveMethod(s, name)
	if !ok {
		return nil, langerr.Type("%s has no method %q required for operator %s", s.ClassName(), name, op)
	}
	return CallUserMethod(resolved, []value.Value{other}, nil)
}

func evalUnaryExpr(n *ast.UnaryExpr, sc *scope.Scope) (value.Value, error) {
	v, err := EvalExpr(n.Operand, sc)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case "-":
		switch t := v.(type) {
		case value.Int:
			return -t, nil
		case value.Float:
			return -t, nil
		case value.BigInt:
			neg := new(big.Int).Neg(t.I)
			return value.NewBigInt(neg), nil
		case value.Decimal:
			return value.NewDecimal(t.D.Neg()), nil
		default:
			return nil, langerr.Type("unary - not supported for %s", v.ClassName())
		}
	case "not", "!":
		return value.Bool(!value.Truthy(v)), nil
	default:
		return nil, langerr.Type("unknown unary operator %q", n.Op)
	}
}
