package value

import (
	"strings"

	"github.com/lumenlang/lumen/internal/ast"
)

// NativeFunc is the shape every builtin-module function is called
// through: `call_builtin(namespaced_name, args, scope)`. scope is passed
// through as `any` so this leaf package never has to import the scope
// package; callers (internal/module, internal/eval) type-assert it back to
// *scope.Scope when they need it.
type NativeFunc func(args []Value, scope any) (Value, error)

// Fun is a native builtin reference: a name plus its parent-type
// namespace. Calling it dispatches to Call under the namespaced name
// "{ParentType}.{Name}".
type Fun struct {
	id         int64
	Name       string
	ParentType string
	Doc        string
	Call       NativeFunc
}

func NewFun(parentType, name string, doc string, call NativeFunc) *Fun {
	return &Fun{id: NextID(), Name: name, ParentType: parentType, Doc: doc, Call: call}
}

// NamespacedName is the "{parent_type}.{name}" key used by the registry.
func (f *Fun) NamespacedName() string { return f.ParentType + "." + f.Name }

func (f *Fun) ClassName() string { return "Fun" }
func (f *Fun) Display() string   { return "<fun " + f.NamespacedName() + ">" }
func (f *Fun) Inspect() string   { return f.Display() }
func (f *Fun) Docstring() string { return f.Doc }
func (f *Fun) ID() int64         { return f.id }

// UserFun is a function defined in the language itself: parameters, body,
// and the closure frames captured at definition time, shared by reference
// so mutations through the closure stay visible.
type UserFun struct {
	id        int64
	Name      string // "" for an anonymous FunExpr
	Params    []ast.Param
	Body      []ast.Node
	Closure   []*Frame
	Doc       string
	IsStatic  bool
	BoundSelf Value // non-nil once bound to a receiver (a resolved instance method)
}

func NewUserFun(name string, params []ast.Param, body []ast.Node, closure []*Frame, doc string) *UserFun {
	return &UserFun{id: NextID(), Name: name, Params: params, Body: body, Closure: closure, Doc: doc}
}

// BindSelf returns a copy of f with BoundSelf set, used when a postfix
// `.name` member access yields a bound-method reference.
func (f *UserFun) BindSelf(self Value) *UserFun {
	cp := *f
	cp.id = NextID()
	cp.BoundSelf = self
	return &cp
}

func (f *UserFun) ClassName() string { return "UserFun" }
func (f *UserFun) Display() string {
	name := f.Name
	if name == "" {
		name = "<anonymous>"
	}
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.Name
	}
	return "<fun " + name + "(" + strings.Join(params, ", ") + ")>"
}
func (f *UserFun) Inspect() string   { return f.Display() }
func (f *UserFun) Docstring() string { return f.Doc }
func (f *UserFun) ID() int64         { return f.id }

// RequiredParamCount returns the number of positional parameters that have
// neither a default nor the variadic marker (used for ArgErr checks).
func (f *UserFun) RequiredParamCount() int {
	n := 0
	for _, p := range f.Params {
		if p.Default == nil && !p.Variadic {
			n++
		}
	}
	return n
}
