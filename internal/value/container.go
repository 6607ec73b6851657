package value

import (
	"sort"
	"strings"

	"github.com/lumenlang/lumen/internal/langerr"
)

// Array is an ordered sequence of values with shared interior
// mutability: assigning an Array and mutating it elsewhere is observable,
// because Array is always held through this pointer.
type Array struct {
	id       int64
	Elements []Value
}

func NewArray(elems []Value) *Array {
	return &Array{id: NextID(), Elements: elems}
}

func (a *Array) ClassName() string { return "Array" }
func (a *Array) Display() string   { return a.Inspect() }
func (a *Array) Inspect() string {
	parts := make([]string, len(a.Elements))
	for i, e := range a.Elements {
		parts[i] = e.Inspect()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
func (a *Array) Docstring() string { return "" }
func (a *Array) ID() int64         { return a.id }

// Get implements Array indexing with negative indices from the end.
// Out-of-range indexing fails IndexErr.
func (a *Array) Get(idx int) (Value, error) {
	n := len(a.Elements)
	i := normalizeIndex(idx, n)
	if i < 0 || i >= n {
		return nil, langerr.Index("array index %d out of range (len %d)", idx, n)
	}
	return a.Elements[i], nil
}

// Set mutates the element in place (shared interior mutability).
func (a *Array) Set(idx int, v Value) error {
	n := len(a.Elements)
	i := normalizeIndex(idx, n)
	if i < 0 || i >= n {
		return langerr.Index("array index %d out of range (len %d)", idx, n)
	}
	a.Elements[i] = v
	return nil
}

func (a *Array) Push(v Value) { a.Elements = append(a.Elements, v) }

func (a *Array) Pop() (Value, error) {
	n := len(a.Elements)
	if n == 0 {
		return nil, langerr.Index("pop from empty array")
	}
	v := a.Elements[n-1]
	a.Elements = a.Elements[:n-1]
	return v, nil
}

func (a *Array) Len() int { return len(a.Elements) }

// Reverse returns a new Array with elements reversed. A fresh copy keeps
// the receiver's backing slice unaliased, so
// `arr.reverse().reverse() == arr` holds trivially.
func (a *Array) Reverse() *Array {
	n := len(a.Elements)
	out := make([]Value, n)
	for i, e := range a.Elements {
		out[n-1-i] = e
	}
	return NewArray(out)
}

// Sort returns a new Array sorted by the numeric tower / Str ordering.
// The custom-comparator path lives in package eval since it must invoke
// a language-level callback.
func (a *Array) Sort() (*Array, error) {
	out := append([]Value(nil), a.Elements...)
	var sortErr error
	sort.SliceStable(out, func(i, j int) bool {
		if sortErr != nil {
			return false
		}
		if ls, ok := out[i].(Str); ok {
			if rs, ok := out[j].(Str); ok {
				return ls < rs
			}
		}
		c, err := Compare(out[i], out[j])
		if err != nil {
			sortErr = err
			return false
		}
		return c < 0
	})
	if sortErr != nil {
		return nil, sortErr
	}
	return NewArray(out), nil
}

// Unique returns a new Array keeping only the first occurrence of each
// distinct element, compared with Equal.
func (a *Array) Unique() *Array {
	var out []Value
	for _, e := range a.Elements {
		dup := false
		for _, seen := range out {
			if Equal(e, seen) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, e)
		}
	}
	return NewArray(out)
}

// Flatten returns a new Array with one level of nested Arrays flattened.
func (a *Array) Flatten() *Array {
	var out []Value
	for _, e := range a.Elements {
		if inner, ok := e.(*Array); ok {
			out = append(out, inner.Elements...)
		} else {
			out = append(out, e)
		}
	}
	return NewArray(out)
}

// Zip pairs this Array's elements with other's, index for index, truncating
// to the shorter length; each pair is itself a 2-element Array.
func (a *Array) Zip(other *Array) *Array {
	n := len(a.Elements)
	if len(other.Elements) < n {
		n = len(other.Elements)
	}
	out := make([]Value, n)
	for i := 0; i < n; i++ {
		out[i] = NewArray([]Value{a.Elements[i], other.Elements[i]})
	}
	return NewArray(out)
}

// Dict maps Str keys to values, with the same shared interior mutability
// as Array. set/remove return *new* Dicts; direct index assignment
// (`d["k"] = v`) mutates in place via SetMut.
type Dict struct {
	id     int64
	keys   []string // insertion order; kept for deterministic iteration
	values map[string]Value
}

func NewDict() *Dict {
	return &Dict{id: NextID(), values: make(map[string]Value)}
}

func (d *Dict) ClassName() string { return "Dict" }
func (d *Dict) Display() string   { return d.Inspect() }
func (d *Dict) Inspect() string {
	parts := make([]string, 0, len(d.keys))
	for _, k := range d.keys {
		parts = append(parts, Str(k).Inspect()+": "+d.values[k].Inspect())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
func (d *Dict) Docstring() string { return "" }
func (d *Dict) ID() int64         { return d.id }

// Get returns Nil, not an error, for a missing key.
func (d *Dict) Get(key string) Value {
	if v, ok := d.values[key]; ok {
		return v
	}
	return Nil
}

func (d *Dict) Has(key string) bool {
	_, ok := d.values[key]
	return ok
}

// SetMut mutates this Dict in place (used by index-assignment).
func (d *Dict) SetMut(key string, v Value) {
	if _, exists := d.values[key]; !exists {
		d.keys = append(d.keys, key)
	}
	d.values[key] = v
}

// RemoveMut deletes key from this Dict in place.
func (d *Dict) RemoveMut(key string) {
	if _, ok := d.values[key]; !ok {
		return
	}
	delete(d.values, key)
	for i, k := range d.keys {
		if k == key {
			d.keys = append(d.keys[:i], d.keys[i+1:]...)
			break
		}
	}
}

// Set returns a *new* Dict with key bound to v, leaving the receiver
// unchanged.
func (d *Dict) Set(key string, v Value) *Dict {
	out := d.Clone()
	out.SetMut(key, v)
	return out
}

// Remove returns a *new* Dict with key absent, leaving the receiver
// unchanged.
func (d *Dict) Remove(key string) *Dict {
	out := d.Clone()
	out.RemoveMut(key)
	return out
}

func (d *Dict) Clone() *Dict {
	out := NewDict()
	out.keys = append([]string(nil), d.keys...)
	for k, v := range d.values {
		out.values[k] = v
	}
	return out
}

func (d *Dict) Keys() []Value {
	out := make([]Value, len(d.keys))
	for i, k := range d.keys {
		out[i] = Str(k)
	}
	return out
}

func (d *Dict) Values() []Value {
	out := make([]Value, len(d.keys))
	for i, k := range d.keys {
		out[i] = d.values[k]
	}
	return out
}

func (d *Dict) Len() int { return len(d.keys) }

// Set (the container kind) holds hashable scalar values only:
// Int/Float/Str/Bool.
type SetVal struct {
	id      int64
	order   []string // stable iteration order, keyed by hashKey
	members map[string]Value
}

func NewSet() *SetVal {
	return &SetVal{id: NextID(), members: make(map[string]Value)}
}

// hashKey produces a Go map key for a hashable element; non-hashable kinds
// fail TypeErr here.
func hashKey(v Value) (string, error) {
	switch t := v.(type) {
	case Int:
		return "i:" + t.Display(), nil
	case Float:
		return "f:" + t.Display(), nil
	case Str:
		return "s:" + string(t), nil
	case Bool:
		return "b:" + t.Display(), nil
	default:
		return "", langerr.Type("unhashable type %s", v.ClassName())
	}
}

func (s *SetVal) ClassName() string { return "Set" }
func (s *SetVal) Display() string   { return s.Inspect() }
func (s *SetVal) Inspect() string {
	parts := make([]string, 0, len(s.order))
	for _, k := range s.order {
		parts = append(parts, s.members[k].Inspect())
	}
	return "Set{" + strings.Join(parts, ", ") + "}"
}
func (s *SetVal) Docstring() string { return "" }
func (s *SetVal) ID() int64         { return s.id }

func (s *SetVal) Add(v Value) error {
	k, err := hashKey(v)
	if err != nil {
		return err
	}
	if _, ok := s.members[k]; !ok {
		s.order = append(s.order, k)
	}
	s.members[k] = v
	return nil
}

func (s *SetVal) Contains(v Value) bool {
	k, err := hashKey(v)
	if err != nil {
		return false
	}
	_, ok := s.members[k]
	return ok
}

func (s *SetVal) Remove(v Value) {
	k, err := hashKey(v)
	if err != nil {
		return
	}
	if _, ok := s.members[k]; !ok {
		return
	}
	delete(s.members, k)
	for i, o := range s.order {
		if o == k {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *SetVal) Len() int { return len(s.order) }

func (s *SetVal) Elements() []Value {
	out := make([]Value, len(s.order))
	for i, k := range s.order {
		out[i] = s.members[k]
	}
	return out
}
