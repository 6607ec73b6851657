package value

import (
	"bytes"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// Uuid is an opaque UUID handle, backed by google/uuid;
// the host mints these through the std/uuid native module.
type Uuid struct {
	id    int64
	Value uuid.UUID
}

func NewUuid(u uuid.UUID) Uuid { return Uuid{id: NextID(), Value: u} }

func (u Uuid) ClassName() string { return "Uuid" }
func (u Uuid) Display() string   { return u.Value.String() }
func (u Uuid) Inspect() string   { return u.Value.String() }
func (u Uuid) Docstring() string { return "" }
func (u Uuid) ID() int64         { return u.id }

// Timestamp is an opaque wall-clock handle.
type Timestamp struct {
	id    int64
	Value time.Time
}

func NewTimestamp(t time.Time) Timestamp { return Timestamp{id: NextID(), Value: t} }

func (t Timestamp) ClassName() string { return "Timestamp" }
func (t Timestamp) Display() string   { return t.Value.Format(time.RFC3339) }
func (t Timestamp) Inspect() string   { return t.Display() }
func (t Timestamp) Docstring() string { return "" }
func (t Timestamp) ID() int64         { return t.id }

// Rng is an opaque random-number-generator handle.
type Rng struct {
	id     int64
	Source *rand.Rand
}

func NewRng(seed int64) *Rng {
	return &Rng{id: NextID(), Source: rand.New(rand.NewSource(seed))}
}

func (r *Rng) ClassName() string { return "Rng" }
func (r *Rng) Display() string   { return "<rng>" }
func (r *Rng) Inspect() string   { return r.Display() }
func (r *Rng) Docstring() string { return "" }
func (r *Rng) ID() int64         { return r.id }

// StringIO is an in-memory read/write buffer, backing the StringIO branch of an OutputTarget.
type StringIO struct {
	id  int64
	Buf *bytes.Buffer
}

func NewStringIO() *StringIO {
	return &StringIO{id: NextID(), Buf: &bytes.Buffer{}}
}

func (s *StringIO) ClassName() string { return "StringIO" }
func (s *StringIO) Display() string   { return s.Buf.String() }
func (s *StringIO) Inspect() string   { return "<stringio>" }
func (s *StringIO) Docstring() string { return "" }
func (s *StringIO) ID() int64         { return s.id }

func (s *StringIO) Write(data string) { s.Buf.WriteString(data) }

// RedirectGuard is returned by the redirect API. restore() is
// idempotent: it may be called zero or more times, and calls after the
// first are no-ops. RestoreFn is supplied by internal/scope, which owns
// the stdout/stderr target fields this guard restores, keeping this
// package free of a dependency on scope.
type RedirectGuard struct {
	id        int64
	restored  bool
	RestoreFn func()
}

func NewRedirectGuard(restore func()) *RedirectGuard {
	return &RedirectGuard{id: NextID(), RestoreFn: restore}
}

func (g *RedirectGuard) ClassName() string { return "RedirectGuard" }
func (g *RedirectGuard) Display() string   { return "<redirect_guard>" }
func (g *RedirectGuard) Inspect() string   { return g.Display() }
func (g *RedirectGuard) Docstring() string { return "" }
func (g *RedirectGuard) ID() int64         { return g.id }

// Restore runs RestoreFn exactly once; later calls are no-ops.
func (g *RedirectGuard) Restore() {
	if g.restored {
		return
	}
	g.restored = true
	if g.RestoreFn != nil {
		g.RestoreFn()
	}
}

// Opaque is the catch-all shape for host-provided handles this core never
// looks inside: database connections/cursors, HTTP client/request/response,
// and OS processes. The concrete backing clients for these live in native
// builtin modules outside this core, so Opaque only fixes the shape a
// native module would return, never a real connection.
type Opaque struct {
	id   int64
	Kind string // e.g. "DBHandle", "DBCursor", "HTTPClient", "HTTPRequest", "HTTPResponse", "Process"
	Data any    // host-side payload; this core never inspects it
}

func NewOpaque(kind string, data any) *Opaque {
	return &Opaque{id: NextID(), Kind: kind, Data: data}
}

func (o *Opaque) ClassName() string { return o.Kind }
func (o *Opaque) Display() string   { return "<" + o.Kind + ">" }
func (o *Opaque) Inspect() string   { return o.Display() }
func (o *Opaque) Docstring() string { return "" }
func (o *Opaque) ID() int64         { return o.id }
