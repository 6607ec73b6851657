// Package value implements the tagged-union runtime value model shared by every other package in this module.
package value

import "sync/atomic"

// Value is implemented by every runtime value. The five methods form the
// object-introspection protocol every kind exposes under the names
// cls()/_str()/_rep()/_doc()/_id() in the language surface.
type Value interface {
	// ClassName returns the language-visible type name (cls()).
	ClassName() string
	// Display returns the human-facing string form (_str()), used by puts
	// and string interpolation.
	Display() string
	// Inspect returns the debug/repr form (_rep()), used by containers when
	// printing their elements.
	Inspect() string
	// Docstring returns the attached docstring, or "" if none (_doc()).
	Docstring() string
	// ID returns the value's globally-unique id (_id()).
	ID() int64
}

var idCounter int64 // starts at 0; Nil claims id 0, kinds with identity get NextID(), value-typed scalars derive ids from content

// NextID mints a fresh globally-unique value id. Nil is the sole value with
// id 0, so the counter starts handing out ids from 1.
func NextID() int64 {
	return atomic.AddInt64(&idCounter, 1)
}

// NilValue is the Nil singleton; it alone has id 0.
type NilValue struct{}

// Nil is the single shared Nil instance; every absent/missing value in this
// module is this exact value, never a fresh allocation.
var Nil = NilValue{}

func (NilValue) ClassName() string { return "Nil" }
func (NilValue) Display() string   { return "nil" }
func (NilValue) Inspect() string   { return "nil" }
func (NilValue) Docstring() string { return "" }
func (NilValue) ID() int64         { return 0 }

// IsNil reports whether v is the Nil value (as opposed to a nil Go
// interface, which should never occur for a well-formed Value).
func IsNil(v Value) bool {
	_, ok := v.(NilValue)
	return ok
}

// Bool wraps a boolean.
type Bool bool

func (b Bool) ClassName() string { return "Bool" }
func (b Bool) Display() string {
	if b {
		return "true"
	}
	return "false"
}
func (b Bool) Inspect() string   { return b.Display() }
func (b Bool) Docstring() string { return "" }
func (b Bool) ID() int64 {
	if b {
		return boolTrueID
	}
	return boolFalseID
}

// Bool is conceptually value-typed, but _id() must still be stable
// across reads of the same literal value; two fixed ids for true/false
// satisfy that without per-read allocation.
var boolTrueID = NextID()
var boolFalseID = NextID()

// Truthy implements the language's truthiness rule used by if/while/and/or:
// only Bool(false) and Nil are falsy; everything else (including Int(0),
// "" and empty containers) is truthy.
func Truthy(v Value) bool {
	switch t := v.(type) {
	case NilValue:
		return false
	case Bool:
		return bool(t)
	default:
		return true
	}
}
