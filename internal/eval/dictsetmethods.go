package eval

import (
	"github.com/lumenlang/lumen/internal/langerr"
	"github.com/lumenlang/lumen/internal/value"
)

// callDictMethod implements the Dict builtin surface.
func callDictMethod(d *value.Dict, name string, args []value.Value) (value.Value, error) {
	switch name {
	case "get":
		key, err := strArg(args, 0)
		if err != nil {
			return nil, err
		}
		return d.Get(string(key)), nil
	case "has":
		key, err := strArg(args, 0)
		if err != nil {
			return nil, err
		}
		return value.Bool(d.Has(string(key))), nil
	case "set":
		key, err := strArg(args, 0)
		if err != nil {
			return nil, err
		}
		if len(args) < 2 {
			return nil, langerr.Arg("set expects 2 arguments, got %d", len(args))
		}
		return d.Set(string(key), args[1]), nil
	case "remove":
		key, err := strArg(args, 0)
		if err != nil {
			return nil, err
		}
		return d.Remove(string(key)), nil
	case "keys":
		return value.NewArray(d.Keys()), nil
	case "values":
		return value.NewArray(d.Values()), nil
	case "len":
		return value.Int(d.Len()), nil
	default:
		return nil, langerr.Attr("Dict has no method %q", name)
	}
}

// callSetMethod implements the Set builtin surface.
func callSetMethod(s *value.SetVal, name string, args []value.Value) (value.Value, error) {
	switch name {
	case "add":
		if len(args) != 1 {
			return nil, langerr.Arg("add expects 1 argument, got %d", len(args))
		}
		if err := s.Add(args[0]); err != nil {
			return nil, err
		}
		return value.Nil, nil
	case "contains":
		if len(args) != 1 {
			return nil, langerr.Arg("contains expects 1 argument, got %d", len(args))
		}
		return value.Bool(s.Contains(args[0])), nil
	case "remove":
		if len(args) != 1 {
			return nil, langerr.Arg("remove expects 1 argument, got %d", len(args))
		}
		s.Remove(args[0])
		return value.Nil, nil
	case "len":
		return value.Int(s.Len()), nil
	case "to_array":
		return value.NewArray(s.Elements()), nil
	default:
		return nil, langerr.Attr("Set has no method %q", name)
	}
}
