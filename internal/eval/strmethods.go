package eval

import (
	"github.com/lumenlang/lumen/internal/langerr"
	"github.com/lumenlang/lumen/internal/value"
)

// callStrMethod implements the Str builtin surface.
func callStrMethod(s value.Str, name string, args []value.Value) (value.Value, error) {
	switch name {
	case "upper":
		return s.Upper(), nil
	case "lower":
		return s.Lower(), nil
	case "capitalize":
		return s.Capitalize(), nil
	case "title":
		return s.Title(), nil
	case "trim":
		return s.Trim(), nil
	case "ltrim":
		return s.LTrim(), nil
	case "rtrim":
		return s.RTrim(), nil
	case "isalpha":
		return s.IsAlpha(), nil
	case "isdigit":
		return s.IsDigit(), nil
	case "isspace":
		return s.IsSpace(), nil
	case "contains":
		sub, err := strArg(args, 0)
		if err != nil {
			return nil, err
		}
		return s.Contains(sub), nil
	case "startswith":
		p, err := strArg(args, 0)
		if err != nil {
			return nil, err
		}
		return s.StartsWith(p), nil
	case "endswith":
		p, err := strArg(args, 0)
		if err != nil {
			return nil, err
		}
		return s.EndsWith(p), nil
	case "index_of":
		sub, err := strArg(args, 0)
		if err != nil {
			return nil, err
		}
		return s.IndexOf(sub), nil
	case "count":
		sub, err := strArg(args, 0)
		if err != nil {
			return nil, err
		}
		return s.Count(sub), nil
	case "slice":
		if len(args) != 2 {
			return nil, langerr.Arg("slice expects 2 arguments, got %d", len(args))
		}
		start, ok1 := args[0].(value.Int)
		end, ok2 := args[1].(value.Int)
		if !ok1 || !ok2 {
			return nil, langerr.Type("slice bounds must be Int")
		}
		return s.Slice(int(start), int(end))
	case "split":
		delim := value.Str("")
		if len(args) > 0 {
			d, err := strArg(args, 0)
			if err != nil {
				return nil, err
			}
			delim = d
		}
		return value.NewArray(s.Split(delim)), nil
	case "hash":
		algo, err := strArg(args, 0)
		if err != nil {
			return nil, err
		}
		return s.Hash(string(algo))
	case "len":
		return value.Int(len([]rune(string(s)))), nil
	case "fmt":
		return value.FmtPositional(string(s), args)
	default:
		return nil, langerr.Attr("Str has no method %q", name)
	}
}

func strArg(args []value.Value, idx int) (value.Str, error) {
	if idx >= len(args) {
		return "", langerr.Arg("missing argument %d", idx)
	}
	s, ok := args[idx].(value.Str)
	if !ok {
		return "", langerr.Type("expected Str argument, got %s", args[idx].ClassName())
	}
	return s, nil
}
