package types

import (
	"testing"

	"github.com/kr/pretty"
	"github.com/stretchr/testify/require"

	"github.com/lumenlang/lumen/internal/ast"
	"github.com/lumenlang/lumen/internal/value"
)

func TestValidateTraitsMissingMethodFails(t *testing.T) {
	trait := NewTrait(&ast.TraitDecl{
		Name:    "Greeter",
		Methods: []ast.TraitMethodSig{{Name: "greet", ParamCount: 0}},
	})
	registry := map[string]*Trait{"Greeter": trait}

	ty := NewTypeFromDecl(&ast.TypeDecl{
		Name:  "Mute",
		Impls: []ast.ImplBlock{{TraitName: "Greeter"}},
	})
	err := ValidateTraits(ty, registry)
	require.Error(t, err)
}

func TestValidateTraitsArityMismatchFails(t *testing.T) {
	trait := NewTrait(&ast.TraitDecl{
		Name:    "Greeter",
		Methods: []ast.TraitMethodSig{{Name: "greet", ParamCount: 1}},
	})
	registry := map[string]*Trait{"Greeter": trait}

	greetDecl := &ast.FunDecl{Name: "greet"} // zero params, trait wants one
	ty := NewTypeFromDecl(&ast.TypeDecl{
		Name:  "Mime",
		Impls: []ast.ImplBlock{{TraitName: "Greeter", Methods: []*ast.FunDecl{greetDecl}}},
	})
	err := ValidateTraits(ty, registry)
	require.Error(t, err)
}

func TestValidateTraitsSatisfiedPasses(t *testing.T) {
	trait := NewTrait(&ast.TraitDecl{
		Name:    "Greeter",
		Methods: []ast.TraitMethodSig{{Name: "greet", ParamCount: 0}},
	})
	registry := map[string]*Trait{"Greeter": trait}

	greetDecl := &ast.FunDecl{Name: "greet"}
	ty := NewTypeFromDecl(&ast.TypeDecl{
		Name:  "Polite",
		Impls: []ast.ImplBlock{{TraitName: "Greeter", Methods: []*ast.FunDecl{greetDecl}}},
	})
	require.NoError(t, ValidateTraits(ty, registry))
	require.True(t, ty.Implements("Greeter"))
}

func TestStructIsDoesUpdate(t *testing.T) {
	ty := NewTypeFromDecl(&ast.TypeDecl{
		Name:   "Pt",
		Fields: []ast.FieldDecl{{Name: "x"}, {Name: "y"}},
	})
	ty.TraitNames = []string{"Shape"}

	s := NewStruct(ty, map[string]value.Value{"x": value.Int(1), "y": value.Int(2)})
	require.True(t, s.Is("Pt"))
	require.False(t, s.Is("Circle"))
	require.True(t, s.Does("Shape"))
	require.False(t, s.Does("Solid"))

	updated := s.Update(map[string]value.Value{"y": value.Int(9)})
	require.Equal(t, value.Int(1), updated.Fields["x"], "updated fields: %s", pretty.Sprint(updated.Fields))
	require.Equal(t, value.Int(9), updated.Fields["y"], "updated fields: %s", pretty.Sprint(updated.Fields))
	// original struct is untouched (copy-on-write, same convention as
	// Dict.Set).
	require.Equal(t, value.Int(2), s.Fields["y"], "receiver fields: %s", pretty.Sprint(s.Fields))
}

func TestBuiltinExceptionTypesHaveMessageField(t *testing.T) {
	types := BuiltinExceptionTypes()
	valueErr, ok := types["ValueErr"]
	require.True(t, ok)
	require.Equal(t, []string{"message", "line", "file", "stack"}, valueErr.FieldNames())
	require.Equal(t, []string{"message"}, valueErr.RequiredFieldNames())
}
