package eval

import (
	"github.com/lumenlang/lumen/internal/langerr"
	"github.com/lumenlang/lumen/internal/scope"
	"github.com/lumenlang/lumen/internal/value"
)

// callArrayMethod implements the Array builtin surface. The higher-order methods (map/filter/each/reduce/any/all/
// find/find_index) invoke a callback value, which only this package can do
// (value.Array itself has no notion of calling anything).
func callArrayMethod(a *value.Array, name string, args []value.Value, sc *scope.Scope) (value.Value, error) {
	switch name {
	case "push":
		if len(args) != 1 {
			return nil, langerr.Arg("push expects 1 argument, got %d", len(args))
		}
		a.Push(args[0])
		return a, nil
	case "pop":
		return a.Pop()
	case "len":
		return value.Int(a.Len()), nil
	case "reverse":
		return a.Reverse(), nil
	case "sort":
		if len(args) == 0 {
			return a.Sort()
		}
		return sortBy(a, args[0], sc)
	case "sort_by":
		if len(args) != 1 {
			return nil, langerr.Arg("sort_by expects 1 argument, got %d", len(args))
		}
		return sortBy(a, args[0], sc)
	case "unique":
		return a.Unique(), nil
	case "flatten":
		return a.Flatten(), nil
	case "zip":
		if len(args) != 1 {
			return nil, langerr.Arg("zip expects 1 argument, got %d", len(args))
		}
		other, ok := args[0].(*value.Array)
		if !ok {
			return nil, langerr.Type("zip expects an Array argument, got %s", args[0].ClassName())
		}
		return a.Zip(other), nil
	case "get":
		if len(args) != 1 {
			return nil, langerr.Arg("get expects 1 argument, got %d", len(args))
		}
		idx, ok := args[0].(value.Int)
		if !ok {
			return nil, langerr.Type("get expects an Int index")
		}
		return a.Get(int(idx))
	case "map":
		return mapArray(a, callbackArg(args), sc)
	case "filter":
		return filterArray(a, callbackArg(args), sc)
	case "each":
		return eachArray(a, callbackArg(args), sc)
	case "reduce":
		return reduceArray(a, args, sc)
	case "any":
		return anyArray(a, callbackArg(args), sc)
	case "all":
		return allArray(a, callbackArg(args), sc)
	case "find":
		return findArray(a, callbackArg(args), sc)
	case "find_index":
		return findIndexArray(a, callbackArg(args), sc)
	default:
		return nil, langerr.Attr("Array has no method %q", name)
	}
}

func callbackArg(args []value.Value) value.Value {
	if len(args) == 0 {
		return nil
	}
	return args[0]
}

// callCallback invokes a user or native function value with positional
// args, the shared dispatch point for every Array higher-order method.
// Methods supply their full argument set (element plus index, or
// acc/element/index for reduce); a callback declaring fewer parameters
// receives only as many as it names, so the common `fun(x)` form works.
func callCallback(fn value.Value, args []value.Value, sc *scope.Scope) (value.Value, error) {
	if fn == nil {
		return nil, langerr.Arg("missing callback argument")
	}
	switch f := fn.(type) {
	case *value.UserFun:
		return CallUserFun(f, trimCallbackArgs(f, args), nil, sc)
	case *value.Fun:
		return f.Call(args, sc)
	default:
		return nil, langerr.Type("%s is not callable", fn.ClassName())
	}
}

func trimCallbackArgs(fn *value.UserFun, args []value.Value) []value.Value {
	for _, p := range fn.Params {
		if p.Variadic {
			return args
		}
	}
	if len(args) > len(fn.Params) {
		return args[:len(fn.Params)]
	}
	return args
}

func mapArray(a *value.Array, fn value.Value, sc *scope.Scope) (value.Value, error) {
	out := make([]value.Value, len(a.Elements))
	for i, e := range a.Elements {
		v, err := callCallback(fn, []value.Value{e, value.Int(i)}, sc)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return value.NewArray(out), nil
}

func filterArray(a *value.Array, fn value.Value, sc *scope.Scope) (value.Value, error) {
	var out []value.Value
	for i, e := range a.Elements {
		v, err := callCallback(fn, []value.Value{e, value.Int(i)}, sc)
		if err != nil {
			return nil, err
		}
		if value.Truthy(v) {
			out = append(out, e)
		}
	}
	return value.NewArray(out), nil
}

func eachArray(a *value.Array, fn value.Value, sc *scope.Scope) (value.Value, error) {
	for i, e := range a.Elements {
		if _, err := callCallback(fn, []value.Value{e, value.Int(i)}, sc); err != nil {
			return nil, err
		}
	}
	return value.Nil, nil
}

func reduceArray(a *value.Array, args []value.Value, sc *scope.Scope) (value.Value, error) {
	if len(args) == 0 {
		return nil, langerr.Arg("reduce expects a callback argument")
	}
	fn := args[0]
	elems := a.Elements
	var acc value.Value
	start := 0
	if len(args) > 1 {
		acc = args[1]
	} else {
		if len(elems) == 0 {
			return nil, langerr.Value("reduce of empty array with no initial value")
		}
		acc = elems[0]
		start = 1
	}
	for i := start; i < len(elems); i++ {
		v, err := callCallback(fn, []value.Value{acc, elems[i], value.Int(i)}, sc)
		if err != nil {
			return nil, err
		}
		acc = v
	}
	return acc, nil
}

func anyArray(a *value.Array, fn value.Value, sc *scope.Scope) (value.Value, error) {
	for i, e := range a.Elements {
		v, err := callCallback(fn, []value.Value{e, value.Int(i)}, sc)
		if err != nil {
			return nil, err
		}
		if value.Truthy(v) {
			return value.Bool(true), nil
		}
	}
	return value.Bool(false), nil
}

func allArray(a *value.Array, fn value.Value, sc *scope.Scope) (value.Value, error) {
	for i, e := range a.Elements {
		v, err := callCallback(fn, []value.Value{e, value.Int(i)}, sc)
		if err != nil {
			return nil, err
		}
		if !value.Truthy(v) {
			return value.Bool(false), nil
		}
	}
	return value.Bool(true), nil
}

func findArray(a *value.Array, fn value.Value, sc *scope.Scope) (value.Value, error) {
	for i, e := range a.Elements {
		v, err := callCallback(fn, []value.Value{e, value.Int(i)}, sc)
		if err != nil {
			return nil, err
		}
		if value.Truthy(v) {
			return e, nil
		}
	}
	return value.Nil, nil
}

func findIndexArray(a *value.Array, fn value.Value, sc *scope.Scope) (value.Value, error) {
	for i, e := range a.Elements {
		v, err := callCallback(fn, []value.Value{e, value.Int(i)}, sc)
		if err != nil {
			return nil, err
		}
		if value.Truthy(v) {
			return value.Int(i), nil
		}
	}
	return value.Int(-1), nil
}

// sortBy sorts by a comparator callback returning an Int (<0/0/>0), used by
// `.sort(cmp)`, distinct from Array.Sort's natural-order path.
func sortBy(a *value.Array, fn value.Value, sc *scope.Scope) (*value.Array, error) {
	out := append([]value.Value(nil), a.Elements...)
	var sortErr error
	insertionSortStable(out, func(x, y value.Value) bool {
		if sortErr != nil {
			return false
		}
		v, err := callCallback(fn, []value.Value{x, y}, sc)
		if err != nil {
			sortErr = err
			return false
		}
		i, ok := v.(value.Int)
		if !ok {
			sortErr = langerr.Type("sort comparator must return an Int")
			return false
		}
		return i < 0
	})
	if sortErr != nil {
		return nil, sortErr
	}
	return value.NewArray(out), nil
}

// insertionSortStable avoids pulling sort.SliceStable's panic-on-error
// comparator pattern into a path that must propagate a callback error.
func insertionSortStable(elems []value.Value, less func(a, b value.Value) bool) {
	for i := 1; i < len(elems); i++ {
		for j := i; j > 0 && less(elems[j], elems[j-1]); j-- {
			elems[j], elems[j-1] = elems[j-1], elems[j]
		}
	}
}
