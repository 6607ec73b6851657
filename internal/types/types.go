// Package types implements user type declarations, struct
// instances, trait satisfaction checking, and method *resolution* (lookup
// and self-binding). Actual invocation of a resolved method body is left
// to package eval, which is the only package that knows how to run an
// ast.Node; this keeps types free of an eval import, avoiding a cycle.
package types

import (
	"strings"

	"github.com/lumenlang/lumen/internal/ast"
	"github.com/lumenlang/lumen/internal/langerr"
	"github.com/lumenlang/lumen/internal/value"
)

// Trait is a declared trait: a named set of required method signatures.
type Trait struct {
	id        int64
	Name      string
	Doc       string
	Methods   []ast.TraitMethodSig
	Public    bool
}

func NewTrait(decl *ast.TraitDecl) *Trait {
	return &Trait{id: value.NextID(), Name: decl.Name, Doc: decl.Docstring, Methods: decl.Methods, Public: decl.Public}
}

func (t *Trait) ClassName() string { return "Trait" }
func (t *Trait) Display() string   { return "<trait " + t.Name + ">" }
func (t *Trait) Inspect() string   { return t.Display() }
func (t *Trait) Docstring() string { return t.Doc }
func (t *Trait) ID() int64         { return t.id }

// Type is a declared user type: fields, instance/static
// methods (split by impl block or bare), and the set of traits it claims
// to satisfy.
type Type struct {
	id              int64
	Name            string
	Doc             string
	Fields          []ast.FieldDecl
	InstanceMethods map[string]*ast.FunDecl // includes impl-block methods
	StaticMethods   map[string]*ast.FunDecl
	TraitImpls      map[string]*ast.FunDecl // trait name -> marker; membership via TraitNames
	TraitNames      []string
	Public          bool
}

func NewType(name, doc string) *Type {
	return &Type{
		id:              value.NextID(),
		Name:            name,
		Doc:             doc,
		InstanceMethods: make(map[string]*ast.FunDecl),
		StaticMethods:   make(map[string]*ast.FunDecl),
	}
}

func (t *Type) ClassName() string { return "Type" }
func (t *Type) Display() string   { return "<type " + t.Name + ">" }
func (t *Type) Inspect() string   { return t.Display() }
func (t *Type) Docstring() string { return t.Doc }
func (t *Type) ID() int64         { return t.id }

// NewTypeFromDecl builds a Type from its parsed declaration, merging
// bare instance/static methods with those nested in `impl Trait` blocks
// Each `impl Trait` block both registers the trait name and contributes
// its method implementations.
func NewTypeFromDecl(decl *ast.TypeDecl) *Type {
	t := NewType(decl.Name, decl.Docstring)
	t.Fields = decl.Fields
	t.Public = decl.Public
	for _, m := range decl.InstanceMethods {
		t.InstanceMethods[m.Name] = m
	}
	for _, m := range decl.StaticMethods {
		t.StaticMethods[m.Name] = m
	}
	for _, impl := range decl.Impls {
		t.TraitNames = append(t.TraitNames, impl.TraitName)
		for _, m := range impl.Methods {
			t.InstanceMethods[m.Name] = m
		}
	}
	return t
}

// FieldNames returns the ordered field names declared on t.
func (t *Type) FieldNames() []string {
	out := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		out[i] = f.Name
	}
	return out
}

// RequiredFieldNames returns fields that must be supplied at construction
// (non-optional), in declaration order.
func (t *Type) RequiredFieldNames() []string {
	var out []string
	for _, f := range t.Fields {
		if !f.Optional {
			out = append(out, f.Name)
		}
	}
	return out
}

// Implements reports whether t claims to implement trait.
func (t *Type) Implements(traitName string) bool {
	for _, n := range t.TraitNames {
		if n == traitName {
			return true
		}
	}
	return false
}

// ValidateTraits checks that every trait T claims to implement is
// actually satisfied: each required method must exist on T with matching
// arity; a missing method fails TypeErr.
func ValidateTraits(t *Type, traits map[string]*Trait) error {
	for _, traitName := range t.TraitNames {
		trait, ok := traits[traitName]
		if !ok {
			return langerr.Type("type %s declares impl of unknown trait %s", t.Name, traitName)
		}
		for _, sig := range trait.Methods {
			m, ok := t.InstanceMethods[sig.Name]
			if !ok {
				return langerr.Type("type %s does not implement required method %s.%s from trait %s", t.Name, t.Name, sig.Name, traitName)
			}
			if len(m.Params) != sig.ParamCount {
				return langerr.Type("type %s method %s has arity %d, trait %s requires %d", t.Name, sig.Name, len(m.Params), traitName, sig.ParamCount)
			}
		}
	}
	return nil
}

// Struct is an instance of a user Type: an ordered field map plus a back
// reference to its Type for method resolution and `.is`/`.does` checks.
type Struct struct {
	id     int64
	Type   *Type
	Fields map[string]value.Value
}

func NewStruct(t *Type, fields map[string]value.Value) *Struct {
	return &Struct{id: value.NextID(), Type: t, Fields: fields}
}

func (s *Struct) ClassName() string { return s.Type.Name }
func (s *Struct) Display() string {
	var b strings.Builder
	b.WriteString(s.Type.Name)
	b.WriteString("(")
	for i, name := range s.Type.FieldNames() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(name)
		b.WriteString(": ")
		if v, ok := s.Fields[name]; ok {
			b.WriteString(v.Inspect())
		} else {
			b.WriteString("nil")
		}
	}
	b.WriteString(")")
	return b.String()
}
func (s *Struct) Inspect() string   { return s.Display() }
func (s *Struct) Docstring() string { return s.Type.Doc }
func (s *Struct) ID() int64         { return s.id }

// Is implements the builtin `.is(TypeName)` check.
func (s *Struct) Is(typeName string) bool { return s.Type.Name == typeName }

// Does implements the builtin `.does(TraitName)` check.
func (s *Struct) Does(traitName string) bool { return s.Type.Implements(traitName) }

// Update returns a new Struct with the named field replaced, matching the
// copy-on-write update convention used by Dict.Set.
func (s *Struct) Update(fields map[string]value.Value) *Struct {
	out := make(map[string]value.Value, len(s.Fields))
	for k, v := range s.Fields {
		out[k] = v
	}
	for k, v := range fields {
		out[k] = v
	}
	return NewStruct(s.Type, out)
}

// ResolvedMethod is the result of looking a method up on a Struct: the
// declaration plus the receiver it should be bound to. eval.CallUserMethod
// invokes it by running the declaration with its captured closure and
// `self` bound to Self.
type ResolvedMethod struct {
	Decl *ast.FunDecl
	Self value.Value
}

// ResolveMethod looks up name as an instance method on the struct's type.
// It does not invoke anything; eval is the only package that walks a
// method body.
func ResolveMethod(s *Struct, name string) (*ResolvedMethod, bool) {
	m, ok := s.Type.InstanceMethods[name]
	if !ok {
		return nil, false
	}
	return &ResolvedMethod{Decl: m, Self: s}, true
}

// ResolveStaticMethod looks up name as a static method on t.
func ResolveStaticMethod(t *Type, name string) (*ast.FunDecl, bool) {
	m, ok := t.StaticMethods[name]
	return m, ok
}
