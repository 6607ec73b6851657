package eval

import (
	"github.com/lumenlang/lumen/internal/ast"
	"github.com/lumenlang/lumen/internal/langerr"
	"github.com/lumenlang/lumen/internal/scope"
	"github.com/lumenlang/lumen/internal/types"
	"github.com/lumenlang/lumen/internal/value"
)

// traitRegistry tracks declared traits by name so ValidateTraits can check
// a type's `impl Trait` claims against the trait actually in scope. Traits
// are a fixed, whole-program namespace, so a flat map keyed by name is sufficient.
var traitRegistry = map[string]*types.Trait{}

func evalFunDecl(n *ast.FunDecl, sc *scope.Scope) (value.Value, Signal, error) {
	fn, err := buildDecoratedFun(n, sc)
	if err != nil {
		return nil, noSignal, err
	}
	if err := sc.Declare(n.Name, fn); err != nil {
		return nil, noSignal, err
	}
	if n.Public {
		sc.MarkPublic(n.Name)
	}
	return fn, noSignal, nil
}

// buildDecoratedFun captures decl's closure, wraps it as a value.UserFun,
// then applies decorators innermost-first by instantiating each decorator
// type with the function as its first argument (the decorator
// type is instantiated with the function as the first positional
// argument").
func buildDecoratedFun(decl *ast.FunDecl, sc *scope.Scope) (value.Value, error) {
	declClosures[decl] = captureClosure(sc)
	fn := value.NewUserFun(decl.Name, decl.Params, decl.Body, declClosures[decl], decl.Docstring)

	var result value.Value = fn
	for _, dec := range decl.Decorators {
		decType, ok := sc.Get(dec.Name)
		if !ok {
			return nil, langerr.Name("undefined decorator type %q", dec.Name)
		}
		t, ok := decType.(*types.Type)
		if !ok {
			return nil, langerr.Type("decorator %q is not a type", dec.Name)
		}
		args := []value.Value{result}
		kwargs := map[string]value.Value{}
		for _, a := range dec.Args {
			v, err := EvalExpr(a.Value, sc)
			if err != nil {
				return nil, err
			}
			if a.Name == "" {
				args = append(args, v)
			} else {
				kwargs[a.Name] = v
			}
		}
		inst, err := constructStruct(t, args, kwargs)
		if err != nil {
			return nil, err
		}
		result = inst
	}
	return result, nil
}

func evalTypeDecl(n *ast.TypeDecl, sc *scope.Scope) (value.Value, Signal, error) {
	t := types.NewTypeFromDecl(n)
	for _, m := range t.InstanceMethods {
		declClosures[m] = captureClosure(sc)
	}
	for _, m := range t.StaticMethods {
		declClosures[m] = captureClosure(sc)
	}
	if err := types.ValidateTraits(t, traitRegistry); err != nil {
		return nil, noSignal, err
	}
	if err := sc.Declare(n.Name, t); err != nil {
		return nil, noSignal, err
	}
	if n.Public {
		sc.MarkPublic(n.Name)
	}
	return t, noSignal, nil
}

func evalTraitDecl(n *ast.TraitDecl, sc *scope.Scope) (value.Value, Signal, error) {
	tr := types.NewTrait(n)
	traitRegistry[n.Name] = tr
	if err := sc.Declare(n.Name, tr); err != nil {
		return nil, noSignal, err
	}
	if n.Public {
		sc.MarkPublic(n.Name)
	}
	return tr, noSignal, nil
}

// constructStruct implements `Type.new(...)`/bare `Type(...)` construction:
// positional args bind to fields in declaration order, keyword args bind
// by name, missing required fields fail TypeErr.
func constructStruct(t *types.Type, args []value.Value, kwargs map[string]value.Value) (*types.Struct, error) {
	// A single positional Dict argument is a named-arg map.
	if len(args) == 1 && len(kwargs) == 0 {
		if d, ok := args[0].(*value.Dict); ok {
			merged := make(map[string]value.Value, d.Len())
			for _, k := range d.Keys() {
				key := string(k.(value.Str))
				merged[key] = d.Get(key)
			}
			return constructStruct(t, nil, merged)
		}
	}

	fields := make(map[string]value.Value, len(t.Fields))
	names := t.FieldNames()
	if len(args) > len(names) {
		return nil, langerr.Arg("%s takes at most %d fields, got %d positional arguments", t.Name, len(names), len(args))
	}
	for i, v := range args {
		fields[names[i]] = v
	}
	for k, v := range kwargs {
		found := false
		for _, n := range names {
			if n == k {
				found = true
				break
			}
		}
		if !found {
			return nil, langerr.Arg("%s has no field %q", t.Name, k)
		}
		fields[k] = v
	}
	for _, f := range t.Fields {
		if _, ok := fields[f.Name]; !ok {
			if f.Optional {
				fields[f.Name] = value.Nil
				continue
			}
			return nil, langerr.Type("missing required field %q for %s", f.Name, t.Name)
		}
		if f.Annotation != "" {
			if err := checkAnnotation(f.Annotation, fields[f.Name], f.Optional); err != nil {
				return nil, err
			}
		}
	}
	return types.NewStruct(t, fields), nil
}

// checkAnnotation implements the light-weight type-annotation check used
// by typed `let`, typed fields, and typed parameters: the
// annotation must name either a builtin kind or a declared Type, and the
// value's runtime ClassName must match. Nil never satisfies a non-optional
// annotation; an optional annotation (`T?:` field) also admits Nil.
func checkAnnotation(annotation string, v value.Value, optional bool) error {
	if annotation == "" || annotation == "Obj" {
		return nil
	}
	if optional && value.IsNil(v) {
		return nil
	}
	if v.ClassName() == annotation {
		return nil
	}
	if annotation == "Num" {
		switch v.(type) {
		case value.Int, value.Float, value.BigInt, value.Decimal:
			return nil
		}
	}
	return langerr.Type("expected %s, got %s", annotation, v.ClassName())
}
