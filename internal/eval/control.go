package eval

import "github.com/lumenlang/lumen/internal/value"

// SignalKind distinguishes the three non-local exits from an ordinary
// completed evaluation. These
// are never represented as langerr.Error; propagating them as a separate
// channel keeps `try/catch` from ever intercepting a `break` that merely
// passes through it.
type SignalKind int

const (
	SignalNone SignalKind = iota
	SignalReturn
	SignalBreak
	SignalContinue
)

// Signal carries a non-local exit up through nested Eval calls.
type Signal struct {
	Kind  SignalKind
	Value value.Value // meaningful only for SignalReturn
}

var noSignal = Signal{Kind: SignalNone}
