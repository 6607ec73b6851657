package eval

import (
	"github.com/lumenlang/lumen/internal/ast"
	"github.com/lumenlang/lumen/internal/langerr"
	"github.com/lumenlang/lumen/internal/scope"
	"github.com/lumenlang/lumen/internal/types"
	"github.com/lumenlang/lumen/internal/value"
)

// evalArgs evaluates a call's argument list into positional values and a
// keyword map, left-to-right.
func evalArgs(argNodes []ast.Arg, sc *scope.Scope) ([]value.Value, map[string]value.Value, error) {
	var positional []value.Value
	kwargs := make(map[string]value.Value)
	for _, a := range argNodes {
		v, err := EvalExpr(a.Value, sc)
		if err != nil {
			return nil, nil, err
		}
		if a.Name == "" {
			positional = append(positional, v)
		} else {
			kwargs[a.Name] = v
		}
	}
	return positional, kwargs, nil
}

// evalMemberExpr implements bare `recv.name` access (not immediately
// called): Module member lookup, Struct field-or-bound-method, Type static
// method reference, and a bound builtin-method reference for every other
// kind.
func evalMemberExpr(n *ast.MemberExpr, sc *scope.Scope) (value.Value, error) {
	recv, err := EvalExpr(n.Recv, sc)
	if err != nil {
		return nil, err
	}
	return memberAccess(recv, n.Name)
}

func memberAccess(recv value.Value, name string) (value.Value, error) {
	switch r := recv.(type) {
	case *value.Module:
		return r.Get(name), nil
	case *types.Struct:
		if v, ok := r.Fields[name]; ok {
			return v, nil
		}
		if resolved, ok := types.ResolveMethod(r, name); ok {
			return value.NewUserFun(resolved.Decl.Name, resolved.Decl.Params, resolved.Decl.Body, declClosures[resolved.Decl], resolved.Decl.Docstring).BindSelf(r), nil
		}
		return nil, langerr.Attr("%s has no attribute %q", r.ClassName(), name)
	case *types.Type:
		if decl, ok := types.ResolveStaticMethod(r, name); ok {
			return value.NewUserFun(decl.Name, decl.Params, decl.Body, declClosures[decl], decl.Docstring), nil
		}
		return nil, langerr.Attr("type %s has no static method %q", r.Name, name)
	default:
		return boundBuiltinMethod(recv, name)
	}
}

// boundBuiltinMethod wraps a builtin-kind method reference (e.g. `arr.push`
// passed around as a value) as a native Fun that dispatches back through
// callBuiltinMethod when invoked.
func boundBuiltinMethod(recv value.Value, name string) (value.Value, error) {
	return value.NewFun(recv.ClassName(), name, "", func(args []value.Value, scAny any) (value.Value, error) {
		sc, _ := scAny.(*scope.Scope)
		return callBuiltinMethod(recv, name, args, sc)
	}), nil
}

// evalIndexExpr implements `recv[expr]`: Array by Int index,
// Dict by Str key (missing key reads Nil), Set membership test.
func evalIndexExpr(n *ast.IndexExpr, sc *scope.Scope) (value.Value, error) {
	recv, err := EvalExpr(n.Recv, sc)
	if err != nil {
		return nil, err
	}
	idx, err := EvalExpr(n.Index, sc)
	if err != nil {
		return nil, err
	}
	if s, ok := recv.(*value.SetVal); ok {
		return value.Bool(s.Contains(idx)), nil
	}
	return readIndex(recv, idx)
}

// evalCallExpr implements both bare calls (`recv(args)`) and method calls
// (`recv.Name(args)`), dispatching by the runtime kind of the (possibly
// method-receiver) evaluated recv.
func evalCallExpr(n *ast.CallExpr, sc *scope.Scope) (value.Value, error) {
	recv, err := EvalExpr(n.Recv, sc)
	if err != nil {
		return nil, err
	}

	if n.Name == "" {
		args, kwargs, err := evalArgs(n.Args, sc)
		if err != nil {
			return nil, err
		}
		return invokeCallable(recv, args, kwargs, sc)
	}

	args, kwargs, err := evalArgs(n.Args, sc)
	if err != nil {
		return nil, err
	}
	return invokeMethod(recv, n.Name, args, kwargs, sc)
}

// invokeCallable calls a bare callee value: a user function, a native Fun,
// a Type (sugar for `Type.new(...)`), or a callable struct, one whose
// type defines `_call`, the shape a decorator's instantiated struct is
// invoked through.
func invokeCallable(callee value.Value, args []value.Value, kwargs map[string]value.Value, sc *scope.Scope) (value.Value, error) {
	switch c := callee.(type) {
	case *value.UserFun:
		return CallUserFun(c, args, kwargs, sc)
	case *value.Fun:
		return c.Call(args, sc)
	case *types.Type:
		return constructStruct(c, args, kwargs)
	case *types.Struct:
		resolved, ok := types.ResolveMethod(c, "_call")
		if !ok {
			return nil, langerr.Type("%s is not callable (no _call method)", c.ClassName())
		}
		return CallUserMethod(resolved, args, sc)
	default:
		return nil, langerr.Type("%s is not callable", callee.ClassName())
	}
}

// invokeMethod implements `recv.name(args)` across every receiver kind.
func invokeMethod(recv value.Value, name string, args []value.Value, kwargs map[string]value.Value, sc *scope.Scope) (value.Value, error) {
	switch r := recv.(type) {
	case *types.Type:
		if name == "new" {
			return constructStruct(r, args, kwargs)
		}
		if decl, ok := types.ResolveStaticMethod(r, name); ok {
			return CallFunDecl(decl, args, kwargs, nil, sc)
		}
		return nil, langerr.Attr("type %s has no static method %q", r.Name, name)
	case *types.Struct:
		return invokeStructMethod(r, name, args, kwargs, sc)
	case *value.Module:
		member := r.Get(name)
		return invokeCallable(member, args, kwargs, sc)
	default:
		return callBuiltinMethod(recv, name, args, sc)
	}
}

// invokeStructMethod dispatches the fixed builtin struct surface first
// (`.is`, `.does`, `.update` are never shadowed by a user method of the
// same name), then falls back to the type's instance methods.
func invokeStructMethod(s *types.Struct, name string, args []value.Value, kwargs map[string]value.Value, sc *scope.Scope) (value.Value, error) {
	switch name {
	case "is":
		if len(args) != 1 {
			return nil, langerr.Arg("is expects 1 argument, got %d", len(args))
		}
		tn, err := typeNameOf(args[0])
		if err != nil {
			return nil, err
		}
		return value.Bool(s.Is(tn)), nil
	case "does":
		if len(args) != 1 {
			return nil, langerr.Arg("does expects 1 argument, got %d", len(args))
		}
		trn, err := traitNameOf(args[0])
		if err != nil {
			return nil, err
		}
		return value.Bool(s.Does(trn)), nil
	case "update":
		if len(args) > 0 {
			return nil, langerr.Arg("update takes keyword arguments only, got %d positional", len(args))
		}
		fields := make(map[string]value.Value, len(kwargs))
		for k, v := range kwargs {
			f, ok := fieldDecl(s.Type, k)
			if !ok {
				return nil, langerr.Arg("%s has no field %q", s.Type.Name, k)
			}
			if f.Annotation != "" {
				if err := checkAnnotation(f.Annotation, v, f.Optional); err != nil {
					return nil, err
				}
			}
			fields[k] = v
		}
		return s.Update(fields), nil
	}
	if resolved, ok := types.ResolveMethod(s, name); ok {
		return CallUserMethod(resolved, args, sc)
	}
	return nil, langerr.Attr("%s has no method %q", s.ClassName(), name)
}

// typeNameOf accepts the Type value itself (`p.is(Pt)`) or its name as a
// Str (`p.is("Pt")`).
func typeNameOf(v value.Value) (string, error) {
	switch t := v.(type) {
	case *types.Type:
		return t.Name, nil
	case value.Str:
		return string(t), nil
	}
	return "", langerr.Type("is expects a Type or type name, got %s", v.ClassName())
}

func traitNameOf(v value.Value) (string, error) {
	switch t := v.(type) {
	case *types.Trait:
		return t.Name, nil
	case value.Str:
		return string(t), nil
	}
	return "", langerr.Type("does expects a Trait or trait name, got %s", v.ClassName())
}

func fieldDecl(t *types.Type, name string) (ast.FieldDecl, bool) {
	for _, f := range t.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return ast.FieldDecl{}, false
}
