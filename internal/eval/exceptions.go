package eval

import (
	"github.com/lumenlang/lumen/internal/langerr"
	"github.com/lumenlang/lumen/internal/types"
	"github.com/lumenlang/lumen/internal/value"
)

// builtinExceptionTypes is the fixed taxonomy, built once and
// reused for every caught exception so repeated catches of the same kind
// share one Type identity, matching how a user type is a single
// declaration reused across instances.
var builtinExceptionTypes = types.BuiltinExceptionTypes()

func exceptionTypeFor(kind langerr.Kind) *types.Type {
	if t, ok := builtinExceptionTypes[string(kind)]; ok {
		return t
	}
	t := types.NewType(string(kind), string(kind)+" exception type")
	builtinExceptionTypes[string(kind)] = t
	return t
}

// excStructFromError builds the Struct bound to a `catch e: Kind`
// variable: `message` carries the message, `stack` the frames
// captured at raise time, `line`/`file` the source location when known.
// Raising it again via a bare `raise` recovers the original Kind/message.
func excStructFromError(e *langerr.Error) *types.Struct {
	t := exceptionTypeFor(e.Kind)
	frames := make([]value.Value, len(e.Stack))
	for i, f := range e.Stack {
		frames[i] = value.Str(f.String())
	}
	fields := map[string]value.Value{
		"message": value.Str(e.Message),
		"line":    value.Nil,
		"file":    value.Nil,
		"stack":   value.NewArray(frames),
	}
	if e.Line > 0 {
		fields["line"] = value.Int(e.Line)
	}
	if e.File != "" {
		fields["file"] = value.Str(e.File)
	}
	return types.NewStruct(t, fields)
}
