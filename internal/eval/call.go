package eval

import (
	"github.com/lumenlang/lumen/internal/ast"
	"github.com/lumenlang/lumen/internal/langerr"
	"github.com/lumenlang/lumen/internal/scope"
	"github.com/lumenlang/lumen/internal/types"
	"github.com/lumenlang/lumen/internal/value"
)

// declClosures maps a function declaration to the frame chain captured at
// its definition site (module-level `fun`, or a type's instance/static
// methods at `type` declaration time). Kept out-of-band here rather than
// on ast.FunDecl (a pure parse-tree node) or types.Type, which must not
// depend on scope/eval.
var declClosures = map[*ast.FunDecl][]*value.Frame{}

func captureClosure(sc *scope.Scope) []*value.Frame { return sc.Frames() }

// CallFunDecl invokes decl's body with args bound to its parameters,
// optionally binding self for an instance method. It pushes a call-stack
// frame for exception reporting and enforces the recursion depth cap.
func CallFunDecl(decl *ast.FunDecl, args []value.Value, kwargs map[string]value.Value, self value.Value, callerScope *scope.Scope) (value.Value, error) {
	closure := declClosures[decl]
	callSc := newCallScope(closure, callerScope)
	callSc.Push()

	if self != nil {
		callSc.Set("self", self)
	}
	if err := bindParams(decl.Params, args, kwargs, callSc); err != nil {
		return nil, err
	}

	frameName := decl.Name
	if frameName == "" {
		frameName = "<anonymous>"
	}
	callSc.PushStackFrame(scope.StackFrame{FunctionName: frameName})
	defer callSc.PopStackFrame()

	if err := callSc.EnterEval(); err != nil {
		return nil, err
	}
	defer callSc.ExitEval()

	_, sig, err := EvalBody(decl.Body, callSc)
	if err != nil {
		return nil, err
	}
	if sig.Kind == SignalReturn {
		if sig.Value != nil {
			return sig.Value, nil
		}
		return value.Nil, nil
	}
	return value.Nil, nil
}

// newCallScope builds the scope a function body runs in: the captured
// closure frames (outermost to innermost) plus a fresh top frame for this
// invocation's locals, sharing the caller's module cache and IO targets
// and starting from a copy of the caller's call stack, so cross-cutting
// state is consistent throughout one run. The
// recursion-depth counter carries over too; without it every call would
// restart counting at zero and the MaxEvalDepth cap could never trigger
// across nested calls.
func newCallScope(closure []*value.Frame, caller *scope.Scope) *scope.Scope {
	base := scope.FromFrames(closure, caller.ModuleCache)
	base.StdoutTarget = caller.StdoutTarget
	base.StderrTarget = caller.StderrTarget
	base.CallStack = append([]scope.StackFrame(nil), caller.CallStack...)
	base.EvalDepth = caller.EvalDepth
	return base
}

// bindParams implements positional/keyword/default/variadic argument
// binding: unknown keywords and bad arity fail ArgErr.
func bindParams(params []ast.Param, args []value.Value, kwargs map[string]value.Value, sc *scope.Scope) error {
	variadicIdx := -1
	for i, p := range params {
		if p.Variadic {
			variadicIdx = i
			break
		}
	}

	positionalLimit := len(params)
	if variadicIdx >= 0 {
		positionalLimit = variadicIdx
	}
	if len(args) > positionalLimit && variadicIdx < 0 {
		return langerr.Arg("expected at most %d positional arguments, got %d", positionalLimit, len(args))
	}

	used := make(map[string]bool, len(kwargs))
	for i, p := range params {
		if p.Variadic {
			rest := append([]value.Value(nil), args[min(i, len(args)):]...)
			if err := sc.Declare(p.Name, value.NewArray(rest)); err != nil {
				return err
			}
			continue
		}
		var v value.Value
		if i < len(args) && i < positionalLimit {
			v = args[i]
		} else if kv, ok := kwargs[p.Name]; ok {
			v = kv
			used[p.Name] = true
		} else if p.Default != nil {
			dv, err := EvalExpr(p.Default, sc)
			if err != nil {
				return err
			}
			v = dv
		} else {
			return langerr.Arg("missing required argument %q", p.Name)
		}
		if p.Annotation != "" {
			if err := checkAnnotation(p.Annotation, v, false); err != nil {
				return err
			}
		}
		if err := sc.Declare(p.Name, v); err != nil {
			return err
		}
	}
	for name := range kwargs {
		if !used[name] && !paramExists(params, name) {
			return langerr.Arg("unknown keyword argument %q", name)
		}
	}
	return nil
}

func paramExists(params []ast.Param, name string) bool {
	for _, p := range params {
		if p.Name == name {
			return true
		}
	}
	return false
}

// CallUserMethod invokes a resolved instance method with self already
// bound (types.ResolveMethod). callerScope may be nil when invoked from a
// context with no live scope (e.g. struct-operand arithmetic); a bare
// top-level scope is substituted in that case.
func CallUserMethod(resolved *types.ResolvedMethod, args []value.Value, callerScope *scope.Scope) (value.Value, error) {
	if callerScope == nil {
		callerScope = scope.New()
	}
	return CallFunDecl(resolved.Decl, args, nil, resolved.Self, callerScope)
}

// CallUserFun invokes a value.UserFun (an anonymous or named fun literal
// bound in a variable), honoring BoundSelf if the UserFun is a bound
// method reference.
func CallUserFun(fn *value.UserFun, args []value.Value, kwargs map[string]value.Value, callerScope *scope.Scope) (value.Value, error) {
	callSc := newCallScope(fn.Closure, callerScope)
	callSc.Push()
	if fn.BoundSelf != nil {
		callSc.Set("self", fn.BoundSelf)
	}
	if err := bindParams(fn.Params, args, kwargs, callSc); err != nil {
		return nil, err
	}
	name := fn.Name
	if name == "" {
		name = "<anonymous>"
	}
	callSc.PushStackFrame(scope.StackFrame{FunctionName: name})
	defer callSc.PopStackFrame()
	if err := callSc.EnterEval(); err != nil {
		return nil, err
	}
	defer callSc.ExitEval()

	_, sig, err := EvalBody(fn.Body, callSc)
	if err != nil {
		return nil, err
	}
	if sig.Kind == SignalReturn && sig.Value != nil {
		return sig.Value, nil
	}
	return value.Nil, nil
}
