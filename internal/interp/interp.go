// Package interp wires the runtime, evaluator, and host together into one
// orchestrator owning the full lifetime of a program run.
package interp

import (
	"github.com/dinothaurs/cs131interpretor/internal/dialect"
	"github.com/dinothaurs/cs131interpretor/internal/interp/evaluator"
	"github.com/dinothaurs/cs131interpretor/pkg/element"
)

// Interpreter owns one Evaluator for the lifetime of a single program run.
// It is not safe for concurrent use.
type Interpreter struct {
	eval *evaluator.Evaluator
}

// New builds an Interpreter from Options. A nil opts selects the v4
// dialect, the default recursion depth, and a stdout/stdin host.
func New(opts Options) *Interpreter {
	cfg := evaluator.Config{Dialect: dialect.V4}
	var h = defaultHost()

	if opts != nil {
		if d := opts.GetDialect(); d.Name != "" {
			cfg.Dialect = d
		}
		cfg.MaxRecursionDepth = opts.GetMaxRecursionDepth()
		if oh := opts.GetExternalHost(); oh != nil {
			h = oh
		}
	}

	return &Interpreter{eval: evaluator.New(h, cfg)}
}

// Run loads program's top-level struct/function definitions and then
// invokes main/0 (spec.md §4.1).
func (i *Interpreter) Run(program []element.Element) error {
	if err := i.eval.LoadProgram(program); err != nil {
		return err
	}
	return i.eval.Run()
}
