package eval

import (
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/lumenlang/lumen/internal/ast"
	"github.com/lumenlang/lumen/internal/langerr"
	"github.com/lumenlang/lumen/internal/scope"
	"github.com/lumenlang/lumen/internal/value"
)

// EvalExpr dispatches one expression node to a value, consulting sc for
// identifier resolution and postfix-chain evaluation.
func EvalExpr(node ast.Node, sc *scope.Scope) (value.Value, error) {
	switch n := node.(type) {
	case *ast.IntLit:
		return value.Int(n.Value), nil
	case *ast.FloatLit:
		return value.Float(n.Value), nil
	case *ast.DecimalLit:
		d, err := decimal.NewFromString(n.Text)
		if err != nil {
			return nil, langerr.Syntax("invalid decimal literal %q: %s", n.Text, err)
		}
		return value.NewDecimal(d), nil
	case *ast.BigIntLit:
		i, ok := new(big.Int).SetString(n.Text, 10)
		if !ok {
			return nil, langerr.Syntax("invalid bigint literal %q", n.Text)
		}
		return value.NewBigInt(i), nil
	case *ast.StrLit:
		return value.Str(n.Value), nil
	case *ast.BoolLit:
		return value.Bool(n.Value), nil
	case *ast.NilLit:
		return value.Nil, nil
	case *ast.FStringLit:
		return evalFStringLit(n, sc)
	case *ast.ArrayLit:
		return evalArrayLit(n, sc)
	case *ast.DictLit:
		return evalDictLit(n, sc)
	case *ast.SetLit:
		return evalSetLit(n, sc)
	case *ast.Identifier:
		v, ok := sc.Get(n.Name)
		if !ok {
			return nil, langerr.Name("undefined variable %q", n.Name)
		}
		return v, nil
	case *ast.BinaryExpr:
		return evalBinaryExpr(n, sc)
	case *ast.UnaryExpr:
		return evalUnaryExpr(n, sc)
	case *ast.FunExpr:
		return value.NewUserFun("", n.Params, n.Body, captureClosure(sc), ""), nil
	case *ast.RangeExpr:
		return evalRangeAsArray(n, sc)
	case *ast.MemberExpr:
		return evalMemberExpr(n, sc)
	case *ast.CallExpr:
		return evalCallExpr(n, sc)
	case *ast.IndexExpr:
		return evalIndexExpr(n, sc)
	default:
		return nil, langerr.Runtime("cannot evaluate node of type %T as an expression", node)
	}
}

func evalFStringLit(n *ast.FStringLit, sc *scope.Scope) (value.Value, error) {
	var out []byte
	for _, part := range n.Parts {
		if part.Expr == nil {
			out = append(out, part.Literal...)
			continue
		}
		v, err := EvalExpr(part.Expr, sc)
		if err != nil {
			return nil, err
		}
		if part.Spec == "" {
			out = append(out, v.Display()...)
			continue
		}
		fs, err := value.ParseFormatSpec(part.Spec)
		if err != nil {
			return nil, err
		}
		rendered, err := value.Apply(fs, v)
		if err != nil {
			return nil, err
		}
		out = append(out, rendered...)
	}
	return value.Str(out), nil
}

func evalArrayLit(n *ast.ArrayLit, sc *scope.Scope) (value.Value, error) {
	elems := make([]value.Value, len(n.Elements))
	for i, e := range n.Elements {
		v, err := EvalExpr(e, sc)
		if err != nil {
			return nil, err
		}
		elems[i] = v
	}
	return value.NewArray(elems), nil
}

func evalDictLit(n *ast.DictLit, sc *scope.Scope) (value.Value, error) {
	d := value.NewDict()
	for i, k := range n.Keys {
		kv, err := EvalExpr(k, sc)
		if err != nil {
			return nil, err
		}
		key, ok := kv.(value.Str)
		if !ok {
			return nil, langerr.Type("dict key must be Str, got %s", kv.ClassName())
		}
		vv, err := EvalExpr(n.Values[i], sc)
		if err != nil {
			return nil, err
		}
		d.SetMut(string(key), vv)
	}
	return d, nil
}

func evalSetLit(n *ast.SetLit, sc *scope.Scope) (value.Value, error) {
	s := value.NewSet()
	for _, e := range n.Elements {
		v, err := EvalExpr(e, sc)
		if err != nil {
			return nil, err
		}
		if err := s.Add(v); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// evalRangeAsArray materializes a bare range expression used outside a
// `for` header (e.g. `let r = 1 to 5`) as an Array; `for` itself iterates
// an ast.RangeExpr directly without going through here (evalForRange).
func evalRangeAsArray(n *ast.RangeExpr, sc *scope.Scope) (value.Value, error) {
	start, err := EvalExpr(n.Start, sc)
	if err != nil {
		return nil, err
	}
	end, err := EvalExpr(n.End, sc)
	if err != nil {
		return nil, err
	}
	startI, ok1 := start.(value.Int)
	endI, ok2 := end.(value.Int)
	if !ok1 || !ok2 {
		return nil, langerr.Type("range bounds must be Int")
	}
	step := value.Int(1)
	if n.Step != nil {
		sv, err := EvalExpr(n.Step, sc)
		if err != nil {
			return nil, err
		}
		si, ok := sv.(value.Int)
		if !ok {
			return nil, langerr.Type("range step must be Int")
		}
		step = si
	} else if endI < startI {
		step = -1
	}
	if step == 0 {
		return nil, langerr.Value("range step must not be zero")
	}
	var elems []value.Value
	for i := startI; (step > 0 && (i < endI || (n.Inclusive && i == endI))) || (step < 0 && (i > endI || (n.Inclusive && i == endI))); i += step {
		elems = append(elems, i)
	}
	return value.NewArray(elems), nil
}
