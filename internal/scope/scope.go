// Package scope implements the lexical scope chain: a stack
// of shared frames, constant/type tracking per frame, the module cache,
// the call stack used for exception stack traces, and I/O redirection
// targets.
package scope

import (
	"strings"

	"github.com/lumenlang/lumen/internal/langerr"
	"github.com/lumenlang/lumen/internal/value"
)

// StackFrame records one entry of the call stack for exception stack
// traces; a raise snapshots the whole list into the exception.
type StackFrame struct {
	FunctionName string
	Line         int
	File         string
	HasLine      bool
	HasFile      bool
}

func (f StackFrame) String() string {
	var b strings.Builder
	b.WriteString("  at ")
	b.WriteString(f.FunctionName)
	if f.HasFile {
		b.WriteString(" (")
		b.WriteString(f.File)
		if f.HasLine {
			b.WriteString(":")
			b.WriteString(itoa(f.Line))
		}
		b.WriteString(")")
	}
	return b.String()
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	if neg {
		return "-" + string(digits)
	}
	return string(digits)
}

// TargetKind distinguishes the three I/O redirection destinations.
type TargetKind int

const (
	TargetDefault TargetKind = iota
	TargetFile
	TargetStringIO
)

// OutputTarget is where print/eprint writes go: the host's stdio, an
// append-mode file, or an in-memory StringIO buffer.
type OutputTarget struct {
	Kind     TargetKind
	FilePath string
	Buffer   *value.StringIO
	Writer   func(data string) error // injected by the host for TargetDefault
}

func (t OutputTarget) Write(data string) error {
	switch t.Kind {
	case TargetDefault:
		if t.Writer != nil {
			return t.Writer(data)
		}
		return nil
	case TargetFile:
		return appendToFile(t.FilePath, data)
	case TargetStringIO:
		t.Buffer.Write(data)
		return nil
	}
	return nil
}

// Scope is the lexical environment threaded through evaluation: a stack of
// shared frames (innermost last), plus the cross-cutting state every
// interpreter instance needs (module cache, call stack, I/O targets,
// current exception, module-loading stack).
type Scope struct {
	frames []*value.Frame

	ModuleCache        map[string]*value.Module
	CurrentException   *langerr.Error
	CallStack          []StackFrame
	CurrentScriptPath  string
	PublicItems        map[string]bool
	StdoutTarget       OutputTarget
	StderrTarget       OutputTarget
	ModuleLoadingStack []string
	EvalDepth          int
}

// MaxEvalDepth caps evaluation-recursion depth; exceeding it raises
// RuntimeErr. See DESIGN.md for how the cap was chosen.
const MaxEvalDepth = 768

// New creates a fresh top-level scope with one frame.
func New() *Scope {
	s := &Scope{
		frames:      []*value.Frame{value.NewFrame()},
		ModuleCache: make(map[string]*value.Module),
		PublicItems: make(map[string]bool),
	}
	return s
}

// WithSharedBase creates a scope whose sole frame is shared with base,
// used for module-function calls so they observe the module's top-level
// state.
func WithSharedBase(base *value.Frame, moduleCache map[string]*value.Module) *Scope {
	return &Scope{
		frames:      []*value.Frame{base},
		ModuleCache: moduleCache,
		PublicItems: make(map[string]bool),
	}
}

// FromFrames creates a scope whose frame chain is exactly frames
// (innermost last), used to rebuild the scope a closure was captured in.
func FromFrames(frames []*value.Frame, moduleCache map[string]*value.Module) *Scope {
	if len(frames) == 0 {
		frames = []*value.Frame{value.NewFrame()}
	}
	return &Scope{
		frames:      append([]*value.Frame(nil), frames...),
		ModuleCache: moduleCache,
		PublicItems: make(map[string]bool),
	}
}

// AdoptFrame appends an already-existing shared frame onto the chain,
// used when reconstructing a closure's multi-level frame stack.
func (s *Scope) AdoptFrame(f *value.Frame) { s.frames = append(s.frames, f) }

func (s *Scope) PushStackFrame(f StackFrame) { s.CallStack = append(s.CallStack, f) }

func (s *Scope) PopStackFrame() {
	if len(s.CallStack) > 0 {
		s.CallStack = s.CallStack[:len(s.CallStack)-1]
	}
}

// ClearCallStack drops the live call stack after a raise has snapshotted
// it into the exception, so a re-raise does not capture the frames twice.
func (s *Scope) ClearCallStack() { s.CallStack = nil }

// GetStackTrace snapshots the current call stack as display strings.
func (s *Scope) GetStackTrace() []string {
	out := make([]string, len(s.CallStack))
	for i, f := range s.CallStack {
		out[i] = f.String()
	}
	return out
}

// Push enters a new nested frame (if/while/for/function bodies).
func (s *Scope) Push() { s.frames = append(s.frames, value.NewFrame()) }

// Pop leaves the innermost frame; a no-op at the top-level frame.
func (s *Scope) Pop() {
	if len(s.frames) > 1 {
		s.frames = s.frames[:len(s.frames)-1]
	}
}

// Depth returns the number of active frames.
func (s *Scope) Depth() int { return len(s.frames) }

func (s *Scope) current() *value.Frame { return s.frames[len(s.frames)-1] }

// CurrentFrame exposes the innermost frame, e.g. so the module loader can
// take a module's top-level frame as its member mapping.
func (s *Scope) CurrentFrame() *value.Frame { return s.current() }

// Frames exposes the full chain (innermost last), used when capturing a
// closure at function-definition time.
func (s *Scope) Frames() []*value.Frame {
	out := make([]*value.Frame, len(s.frames))
	copy(out, s.frames)
	return out
}

// Get searches innermost-to-outermost for name.
func (s *Scope) Get(name string) (value.Value, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if v, ok := s.frames[i].Vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Set writes name in the frame where it is already bound, or the current
// frame if new. `self` is always written only to the current frame, so a
// method call can never leak its receiver into an enclosing scope.
func (s *Scope) Set(name string, v value.Value) {
	if name == "self" {
		s.current().Vars[name] = v
		return
	}
	for i := len(s.frames) - 1; i >= 0; i-- {
		if _, ok := s.frames[i].Vars[name]; ok {
			s.frames[i].Vars[name] = v
			return
		}
	}
	s.current().Vars[name] = v
}

// Declare binds a new variable in the current frame only.
func (s *Scope) Declare(name string, v value.Value) error {
	if s.ContainsInCurrent(name) {
		return langerr.Name("variable %q already declared in this scope", name)
	}
	s.current().Vars[name] = v
	return nil
}

// DeclareConst binds a new constant in the current frame.
func (s *Scope) DeclareConst(name string, v value.Value) error {
	if s.ContainsInCurrent(name) {
		return langerr.Name("constant %q already declared in this scope", name)
	}
	s.current().Vars[name] = v
	s.current().Consts[name] = true
	return nil
}

// DeclareWithType binds a new type-annotated variable in the current frame.
func (s *Scope) DeclareWithType(name string, v value.Value, typeAnnotation string) error {
	if s.ContainsInCurrent(name) {
		return langerr.Name("variable %q already declared in this scope", name)
	}
	s.current().Vars[name] = v
	s.current().Types[name] = typeAnnotation
	return nil
}

// IsConst reports whether name is bound as a constant in any active frame.
func (s *Scope) IsConst(name string) bool {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if s.frames[i].Consts[name] {
			return true
		}
	}
	return false
}

// GetVariableType returns the declared type annotation for name, if any.
func (s *Scope) GetVariableType(name string) (string, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if t, ok := s.frames[i].Types[name]; ok {
			return t, true
		}
	}
	return "", false
}

// Update assigns to an already-declared variable; it is a NameErr to
// assign to something never declared.
func (s *Scope) Update(name string, v value.Value) error {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if _, ok := s.frames[i].Vars[name]; ok {
			s.frames[i].Vars[name] = v
			return nil
		}
	}
	return langerr.Name("cannot assign to undeclared variable %q. Use 'let %s = ...' to declare it first.", name, name)
}

// Delete removes name from the current frame only; deleting something
// that only exists in an outer frame is a RuntimeErr, deleting a module
// binding is a RuntimeErr, and deleting something undefined anywhere is a
// NameErr.
func (s *Scope) Delete(name string) error {
	cur := s.current()
	v, ok := cur.Vars[name]
	if !ok {
		for i := len(s.frames) - 2; i >= 0; i-- {
			if _, ok := s.frames[i].Vars[name]; ok {
				return langerr.Runtime("cannot delete variable %q from outer scope", name)
			}
		}
		return langerr.Name("cannot delete undefined variable %q", name)
	}
	if _, isModule := v.(*value.Module); isModule {
		return langerr.Runtime("cannot delete module binding %q", name)
	}
	delete(cur.Vars, name)
	delete(cur.Consts, name)
	delete(cur.Types, name)
	return nil
}

// ContainsInCurrent reports whether name is bound in the current frame only.
func (s *Scope) ContainsInCurrent(name string) bool {
	_, ok := s.current().Vars[name]
	return ok
}

// MarkPublic records name as exported from the current (module top-level)
// scope.
func (s *Scope) MarkPublic(name string) { s.PublicItems[name] = true }

func (s *Scope) IsPublic(name string) bool { return s.PublicItems[name] }

// GetCachedModule returns a previously loaded module by resolved path.
func (s *Scope) GetCachedModule(path string) (*value.Module, bool) {
	m, ok := s.ModuleCache[path]
	return m, ok
}

func (s *Scope) CacheModule(path string, m *value.Module) { s.ModuleCache[path] = m }

// IsLoadingModule reports whether path is already on the loading stack,
// i.e. a circular import.
func (s *Scope) IsLoadingModule(path string) bool {
	for _, p := range s.ModuleLoadingStack {
		if p == path {
			return true
		}
	}
	return false
}

func (s *Scope) PushLoadingModule(path string) {
	s.ModuleLoadingStack = append(s.ModuleLoadingStack, path)
}

func (s *Scope) PopLoadingModule() {
	if len(s.ModuleLoadingStack) > 0 {
		s.ModuleLoadingStack = s.ModuleLoadingStack[:len(s.ModuleLoadingStack)-1]
	}
}

// GetLoadingChain renders the current module-loading stack for a
// circular-import error message.
func (s *Scope) GetLoadingChain() string {
	return strings.Join(s.ModuleLoadingStack, " -> ")
}

// RedirectStdout swaps stdout to a new target and returns a guard that restores
// the previous one. Restore is idempotent (value.RedirectGuard).
func (s *Scope) RedirectStdout(target OutputTarget) *value.RedirectGuard {
	prev := s.StdoutTarget
	s.StdoutTarget = target
	return value.NewRedirectGuard(func() { s.StdoutTarget = prev })
}

func (s *Scope) RedirectStderr(target OutputTarget) *value.RedirectGuard {
	prev := s.StderrTarget
	s.StderrTarget = target
	return value.NewRedirectGuard(func() { s.StderrTarget = prev })
}
