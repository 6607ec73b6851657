// Package ast defines the tagged parse-tree node shapes the evaluator
// consumes. The grammar/parser that produces these nodes is an external
// collaborator (a PEG-like rule set); this package only fixes the contract.
package ast

// Node is implemented by every parse-tree node.
type Node interface {
	Pos() Position
}

// Position is a source location, used for stack frames and error messages.
type Position struct {
	Line int
	File string
}

func (p Position) Pos() Position { return p }

// Program is the root of a parsed script or module file.
type Program struct {
	Position
	Docstring string // first top-level string literal, if any
	Body      []Node
}

// --- Statements ---

// LetStmt declares a new binding: `let name = expr`, `let name: Annot = expr`,
// or `const name = expr`.
type LetStmt struct {
	Position
	Name       string
	Annotation string // "" if untyped
	Const      bool
	Value      Node
	Public     bool // `pub let`
}

// DestructureStmt binds multiple names from an Array/Dict in one statement:
// `let a, b = pair`.
type DestructureStmt struct {
	Position
	Names []string
	Value Node
}

// AssignStmt covers `name = expr` and compound forms `name += expr`.
type AssignStmt struct {
	Position
	Name string
	Op   string // "=", "+=", "-=", "*=", "/=", "%="
	Value Node
}

// IndexAssignStmt covers `target[idx] = expr` and compound forms.
type IndexAssignStmt struct {
	Position
	Target Node
	Index  Node
	Op     string
	Value  Node
}

// MemberAssignStmt covers `target.field = expr` (struct field mutation is
// actually done via .update(), but plain member reassignment on mutable
// containers like Module state still needs a path).
type MemberAssignStmt struct {
	Position
	Target Node
	Name   string
	Op     string
	Value  Node
}

// ExprStmt is an expression evaluated for its side effect / value.
type ExprStmt struct {
	Position
	Expr Node
}

// IfStmt covers if/elif/else.
type IfStmt struct {
	Position
	Cond Node
	Then []Node
	// Elifs are evaluated in order if Cond is false.
	Elifs []ElifClause
	Else  []Node // nil if no else branch
}

type ElifClause struct {
	Cond Node
	Body []Node
}

// WhileStmt covers `while cond … end`.
type WhileStmt struct {
	Position
	Cond Node
	Body []Node
}

// ForStmt covers `for var in iterable … end` and the two-variable forms.
type ForStmt struct {
	Position
	VarName   string
	IndexName string // second binding in `for k, v in dict` / `for elem, idx in array`; "" if absent
	Iterable  Node   // nil if Range is set
	Range     *RangeExpr
	Body      []Node
}

// TryStmt covers try/catch/ensure.
type TryStmt struct {
	Position
	Body    []Node
	Catches []CatchClause
	Ensure  []Node // nil if no ensure block
}

type CatchClause struct {
	VarName string // name bound to the exception, "" if `catch` with no binding
	Kind    string // "" means catches any kind
	Body    []Node
}

// RaiseStmt covers `raise`, `raise "msg"`, `raise expr`.
type RaiseStmt struct {
	Position
	Value Node // nil for a bare re-raise
}

// ReturnStmt covers `return expr?`.
type ReturnStmt struct {
	Position
	Value Node // nil means return Nil
}

// BreakStmt / ContinueStmt carry no data beyond position.
type BreakStmt struct{ Position }
type ContinueStmt struct{ Position }

// FunDecl declares a named function: `fun name(params) … end`.
type FunDecl struct {
	Position
	Name       string
	Params     []Param
	Body       []Node
	Docstring  string
	Static     bool // `static fun` inside a type body
	Decorators []Decorator
	Public     bool
}

// Decorator is `@Name(args…)` above a `fun` definition.
type Decorator struct {
	Name string
	Args []Arg
}

// Param is one function parameter.
type Param struct {
	Name       string
	Annotation string // "" if untyped
	Default    Node   // nil if required
	Variadic   bool   // `*name` collects trailing positionals into an Array
}

// TypeDecl declares a user type: `type T … end`.
type TypeDecl struct {
	Position
	Name            string
	Docstring       string
	Fields          []FieldDecl
	InstanceMethods []*FunDecl
	StaticMethods   []*FunDecl
	Impls           []ImplBlock
	Public          bool
}

// FieldDecl is one field member of a type.
type FieldDecl struct {
	Name       string
	Annotation string // "" if untyped
	Optional   bool
}

// ImplBlock is `impl Trait … end` inside a type body.
type ImplBlock struct {
	TraitName string
	Methods   []*FunDecl
}

// TraitDecl declares a trait: `trait T … end`.
type TraitDecl struct {
	Position
	Name      string
	Docstring string
	Methods   []TraitMethodSig
	Public    bool
}

// TraitMethodSig is a required method signature in a trait.
type TraitMethodSig struct {
	Name       string
	ParamCount int
	ReturnType string // informational only, "" if unspecified
}

// UseStmt is `use "path" [as alias]`.
type UseStmt struct {
	Position
	Path  string
	Alias string // defaults to the last path component if empty in source
}

// --- Expressions ---

// IntLit, FloatLit, DecimalLit, BigIntLit, StrLit, BoolLit, NilLit are leaf literals.
type IntLit struct {
	Position
	Value int64
}

type FloatLit struct {
	Position
	Value float64
}

// DecimalLit/BigIntLit carry the literal's textual form; value construction
// happens in the evaluator so it can share the Decimal/BigInt parsing path
// used by runtime conversions.
type DecimalLit struct {
	Position
	Text string
}

type BigIntLit struct {
	Position
	Text string
}

type StrLit struct {
	Position
	Value string
}

type BoolLit struct {
	Position
	Value bool
}

type NilLit struct{ Position }

// FStringLit is an f-string: literal chunks interleaved with interpolation holes.
type FStringLit struct {
	Position
	Parts []FStringPart
}

// FStringPart is either a literal chunk or an interpolation hole.
type FStringPart struct {
	Literal string // used when Expr == nil
	Expr    Node   // interpolated expression, nil for a pure literal chunk
	Spec    string // format spec after ':', "" if absent
}

// ArrayLit / DictLit / SetLit build container literals.
type ArrayLit struct {
	Position
	Elements []Node
}

type DictLit struct {
	Position
	Keys   []Node
	Values []Node
}

type SetLit struct {
	Position
	Elements []Node
}

// Identifier references a binding by name.
type Identifier struct {
	Position
	Name string
}

// BinaryExpr covers arithmetic, comparison, and logical binary operators.
type BinaryExpr struct {
	Position
	Op    string
	Left  Node
	Right Node
}

// UnaryExpr covers `-x`, `not x`, `!x`.
type UnaryExpr struct {
	Position
	Op      string
	Operand Node
}

// FunExpr is an anonymous function literal.
type FunExpr struct {
	Position
	Params []Param
	Body   []Node
}

// RangeExpr is `start to|until end [step k]`.
type RangeExpr struct {
	Position
	Start     Node
	End       Node
	Inclusive bool // true for `to`, false for `until`
	Step      Node // nil means default step of 1 (direction-adjusted)
}

// Postfix chain nodes: a primary followed by .name / (args) / [expr],
// evaluated strictly left-to-right by wrapping the previous node as Recv.

// MemberExpr is `recv.name` (not immediately followed by a call).
type MemberExpr struct {
	Position
	Recv Node
	Name string
}

// CallExpr is `recv(args)` or, when Name != "", `recv.Name(args)`.
type CallExpr struct {
	Position
	Recv Node // the callee for a bare call; the method receiver for a method call
	Name string // "" for a bare call on Recv; the method name for `recv.Name(args)`
	Args []Arg
}

// Arg is one call argument, positional or keyword.
type Arg struct {
	Name  string // "" for positional
	Value Node
}

// IndexExpr is `recv[expr]`.
type IndexExpr struct {
	Position
	Recv  Node
	Index Node
}
