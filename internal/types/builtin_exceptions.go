package types

import (
	"github.com/lumenlang/lumen/internal/ast"
	"github.com/lumenlang/lumen/internal/langerr"
)

// BuiltinExceptionTypes returns the 13 fixed exception Types, keyed by
// name, ready to be declared into the top-level scope. Each carries a
// required `message` field so `Kind.new(message: Str)` constructs the same
// way a user-defined type would, plus the optional location/stack fields
// the evaluator fills in when a raise is caught.
func BuiltinExceptionTypes() map[string]*Type {
	out := make(map[string]*Type, len(langerr.AllKinds))
	for _, kind := range langerr.AllKinds {
		name := string(kind)
		t := NewType(name, name+" exception type")
		t.Fields = []ast.FieldDecl{
			{Name: "message", Annotation: "Str"},
			{Name: "line", Annotation: "Int", Optional: true},
			{Name: "file", Annotation: "Str", Optional: true},
			{Name: "stack", Annotation: "Array", Optional: true},
		}
		out[name] = t
	}
	return out
}
