package eval

import (
	"github.com/lumenlang/lumen/internal/scope"
	"github.com/lumenlang/lumen/internal/value"
)

// InstallGlobals declares the small set of always-available top-level
// functions and the
// fixed exception-kind taxonomy, each bound as its Type name so
// scripts can `raise SomeKind.new("msg")` the same way they construct any
// other user type. The host calls this once on a freshly constructed root
// scope, alongside SetLoader.
func InstallGlobals(sc *scope.Scope) {
	sc.Declare("puts", value.NewFun("", "puts", "writes each argument's display form followed by a newline to stdout", builtinPuts))
	sc.Declare("print", value.NewFun("", "print", "writes each argument's display form to stdout with no trailing newline", builtinPrint))
	sc.Declare("eprint", value.NewFun("", "eprint", "writes each argument's display form followed by a newline to stderr", builtinEprint))
	for name, t := range builtinExceptionTypes {
		sc.Declare(name, t)
	}
}

func builtinPuts(args []value.Value, scAny any) (value.Value, error) {
	sc, _ := scAny.(*scope.Scope)
	for _, a := range args {
		if err := sc.StdoutTarget.Write(a.Display() + "\n"); err != nil {
			return nil, err
		}
	}
	if len(args) == 0 {
		if err := sc.StdoutTarget.Write("\n"); err != nil {
			return nil, err
		}
	}
	return value.Nil, nil
}

func builtinPrint(args []value.Value, scAny any) (value.Value, error) {
	sc, _ := scAny.(*scope.Scope)
	for _, a := range args {
		if err := sc.StdoutTarget.Write(a.Display()); err != nil {
			return nil, err
		}
	}
	return value.Nil, nil
}

func builtinEprint(args []value.Value, scAny any) (value.Value, error) {
	sc, _ := scAny.(*scope.Scope)
	for _, a := range args {
		if err := sc.StderrTarget.Write(a.Display() + "\n"); err != nil {
			return nil, err
		}
	}
	return value.Nil, nil
}
