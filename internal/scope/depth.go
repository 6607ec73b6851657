package scope

import (
	"github.com/dustin/go-humanize"

	"github.com/lumenlang/lumen/internal/langerr"
)

// EnterEval increments the evaluation-recursion counter, raising
// RuntimeErr once MaxEvalDepth is exceeded. Pair with ExitEval via defer.
func (s *Scope) EnterEval() error {
	s.EvalDepth++
	if s.EvalDepth > MaxEvalDepth {
		s.EvalDepth--
		return langerr.Runtime("maximum recursion depth exceeded (%s)", humanize.Comma(int64(MaxEvalDepth)))
	}
	return nil
}

func (s *Scope) ExitEval() {
	if s.EvalDepth > 0 {
		s.EvalDepth--
	}
}
