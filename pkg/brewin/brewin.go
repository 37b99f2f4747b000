// Package brewin is the public embedding API: a host Go program links this
// package to run Brewin programs without reaching into internal/.
package brewin

import (
	"github.com/dinothaurs/cs131interpretor/internal/interp"
	"github.com/dinothaurs/cs131interpretor/pkg/element"
)

// Interpreter runs one Brewin program. It is the exported counterpart of
// internal/interp.Interpreter.
type Interpreter struct {
	inner *interp.Interpreter
}

// New builds an Interpreter from opts. A nil opts is valid and selects the
// v4 dialect, the default recursion depth, and a stdout/stdin host.
func New(opts Options) *Interpreter {
	return &Interpreter{inner: interp.New(adaptOptions(opts))}
}

// Run loads program's top-level struct and function definitions and
// invokes main/0 (spec.md §4.1). program is an already-built AST — Brewin
// itself never parses source text; see internal/frontend/fromtext for the
// bundled reference front end that produces an element.Element tree from
// source.
func (i *Interpreter) Run(program []element.Element) error {
	return i.inner.Run(program)
}
