package eval

import (
	"github.com/lumenlang/lumen/internal/ast"
	"github.com/lumenlang/lumen/internal/langerr"
	"github.com/lumenlang/lumen/internal/scope"
	"github.com/lumenlang/lumen/internal/value"
)

// evalIfStmt evaluates the first true branch in a fresh nested scope,
// returning that branch's last value, or Nil if no branch matched.
func evalIfStmt(n *ast.IfStmt, sc *scope.Scope) (value.Value, Signal, error) {
	cond, err := EvalExpr(n.Cond, sc)
	if err != nil {
		return nil, noSignal, err
	}
	if value.Truthy(cond) {
		return runBlock(n.Then, sc)
	}
	for _, elif := range n.Elifs {
		c, err := EvalExpr(elif.Cond, sc)
		if err != nil {
			return nil, noSignal, err
		}
		if value.Truthy(c) {
			return runBlock(elif.Body, sc)
		}
	}
	if n.Else != nil {
		return runBlock(n.Else, sc)
	}
	return value.Nil, noSignal, nil
}

func runBlock(body []ast.Node, sc *scope.Scope) (value.Value, Signal, error) {
	sc.Push()
	defer sc.Pop()
	return EvalBody(body, sc)
}

// evalWhileStmt re-enters a fresh nested scope each iteration.
func evalWhileStmt(n *ast.WhileStmt, sc *scope.Scope) (value.Value, Signal, error) {
	var last value.Value = value.Nil
	for {
		cond, err := EvalExpr(n.Cond, sc)
		if err != nil {
			return nil, noSignal, err
		}
		if !value.Truthy(cond) {
			break
		}
		v, sig, err := runBlock(n.Body, sc)
		if err != nil {
			return nil, noSignal, err
		}
		last = v
		if sig.Kind == SignalBreak {
			break
		}
		if sig.Kind == SignalReturn {
			return last, sig, nil
		}
		// SignalContinue falls through to the next iteration.
	}
	return last, noSignal, nil
}

// evalForStmt iterates an Array (elements), a Dict (keys), or a range
// expression, with the two-variable forms `for k, v in dict` /
// `for elem, idx in array`.
func evalForStmt(n *ast.ForStmt, sc *scope.Scope) (value.Value, Signal, error) {
	if n.Range != nil {
		return evalForRange(n, sc)
	}
	iterable, err := EvalExpr(n.Iterable, sc)
	if err != nil {
		return nil, noSignal, err
	}
	switch t := iterable.(type) {
	case *value.Array:
		for i, elem := range t.Elements {
			v, sig, done, err := forIteration(n, sc, elem, value.Int(i))
			if err != nil || done {
				return v, sig, err
			}
		}
	case *value.Dict:
		for _, k := range t.Keys() {
			key := k.(value.Str)
			v, sig, done, err := forIteration(n, sc, key, t.Get(string(key)))
			if err != nil || done {
				return v, sig, err
			}
		}
	case *value.SetVal:
		for _, elem := range t.Elements() {
			v, sig, done, err := forIteration(n, sc, elem, value.Nil)
			if err != nil || done {
				return v, sig, err
			}
		}
	default:
		return nil, noSignal, langerr.Type("%s is not iterable", iterable.ClassName())
	}
	return value.Nil, noSignal, nil
}

// forIteration runs one loop body with VarName/IndexName bound, returning
// done=true when a break or return should stop the enclosing loop.
func forIteration(n *ast.ForStmt, sc *scope.Scope, first, second value.Value) (value.Value, Signal, bool, error) {
	sc.Push()
	defer sc.Pop()
	sc.Declare(n.VarName, first)
	if n.IndexName != "" {
		sc.Declare(n.IndexName, second)
	}
	v, sig, err := EvalBody(n.Body, sc)
	if err != nil {
		return nil, noSignal, true, err
	}
	switch sig.Kind {
	case SignalBreak:
		return v, noSignal, true, nil
	case SignalReturn:
		return v, sig, true, nil
	default:
		return v, noSignal, false, nil
	}
}

func evalForRange(n *ast.ForStmt, sc *scope.Scope) (value.Value, Signal, error) {
	start, err := EvalExpr(n.Range.Start, sc)
	if err != nil {
		return nil, noSignal, err
	}
	end, err := EvalExpr(n.Range.End, sc)
	if err != nil {
		return nil, noSignal, err
	}
	startI, ok1 := start.(value.Int)
	endI, ok2 := end.(value.Int)
	if !ok1 || !ok2 {
		return nil, noSignal, langerr.Type("range bounds must be Int")
	}
	step := value.Int(1)
	if n.Range.Step != nil {
		sv, err := EvalExpr(n.Range.Step, sc)
		if err != nil {
			return nil, noSignal, err
		}
		si, ok := sv.(value.Int)
		if !ok {
			return nil, noSignal, langerr.Type("range step must be Int")
		}
		step = si
	} else if endI < startI {
		step = -1
	}
	if step == 0 {
		return nil, noSignal, langerr.Value("range step must not be zero")
	}
	if (step > 0 && endI < startI) || (step < 0 && endI > startI) {
		return nil, noSignal, langerr.Value("range step sign must be consistent with direction")
	}

	idx := 0
	for i := startI; (step > 0 && (i < endI || (n.Range.Inclusive && i == endI))) || (step < 0 && (i > endI || (n.Range.Inclusive && i == endI))); i += step {
		v, sig, done, err := forIteration(n, sc, i, value.Int(idx))
		if err != nil || done {
			return v, sig, err
		}
		idx++
	}
	return value.Nil, noSignal, nil
}

// evalTryStmt implements try/catch/ensure: ensure runs on every exit path
// (normal completion, a caught exception, an uncaught exception, or a
// non-local signal), exactly once.
func evalTryStmt(n *ast.TryStmt, sc *scope.Scope) (result value.Value, sig Signal, rerr error) {
	if n.Ensure != nil {
		defer func() {
			sc.Push()
			_, _, ensureErr := EvalBody(n.Ensure, sc)
			sc.Pop()
			if ensureErr != nil {
				rerr = ensureErr
			}
		}()
	}

	sc.Push()
	v, bodySig, err := EvalBody(n.Body, sc)
	sc.Pop()

	if err == nil {
		return v, bodySig, nil
	}

	lerr, ok := err.(*langerr.Error)
	if !ok {
		return nil, noSignal, err
	}
	for _, catch := range n.Catches {
		if catch.Kind != "" && catch.Kind != string(lerr.Kind) {
			continue
		}
		prevExc := sc.CurrentException
		sc.CurrentException = lerr
		sc.Push()
		if catch.VarName != "" {
			sc.Declare(catch.VarName, excStructFromError(lerr))
		}
		cv, csig, cerr := EvalBody(catch.Body, sc)
		sc.Pop()
		sc.CurrentException = prevExc
		return cv, csig, cerr
	}
	return nil, noSignal, err
}
