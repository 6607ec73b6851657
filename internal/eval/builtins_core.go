package eval

import (
	"github.com/lumenlang/lumen/internal/langerr"
	"github.com/lumenlang/lumen/internal/scope"
	"github.com/lumenlang/lumen/internal/value"
)

// callBuiltinMethod dispatches `recv.name(args)` for every value kind that
// isn't a user Type/Struct/Module/UserFun (those are handled in postfix.go).
// The object-introspection protocol is
// universal, checked before the per-kind tables.
func callBuiltinMethod(recv value.Value, name string, args []value.Value, sc *scope.Scope) (value.Value, error) {
	if v, ok, err := objectProtocolMethod(recv, name, args); ok {
		return v, err
	}
	switch r := recv.(type) {
	case value.Str:
		return callStrMethod(r, name, args)
	case *value.Array:
		return callArrayMethod(r, name, args, sc)
	case *value.Dict:
		return callDictMethod(r, name, args)
	case *value.SetVal:
		return callSetMethod(r, name, args)
	case *value.Fun:
		if name == "call" {
			return r.Call(args, sc)
		}
	}
	return nil, langerr.Attr("%s has no method %q", recv.ClassName(), name)
}

func objectProtocolMethod(recv value.Value, name string, args []value.Value) (value.Value, bool, error) {
	switch name {
	case "cls":
		return value.Str(recv.ClassName()), true, nil
	case "_str":
		return value.Str(recv.Display()), true, nil
	case "_rep":
		return value.Str(recv.Inspect()), true, nil
	case "_doc":
		return value.Str(recv.Docstring()), true, nil
	case "_id":
		return value.Int(recv.ID()), true, nil
	}
	return nil, false, nil
}
