// Package builtins implements the three built-in routines spec.md §6.3
// names: print, inputi, inputs, as a Registry of name -> Func populated
// once at construction.
package builtins

import (
	"github.com/dinothaurs/cs131interpretor/internal/interp/host"
	"github.com/dinothaurs/cs131interpretor/internal/interp/runtime"
)

// Func is a built-in's implementation: already-evaluated arguments in, a
// Value or error out. Builtins never receive unevaluated AST — spec.md
// §4.5 says "Builtins ... bypass the [function] table" but does not exempt
// them from ordinary left-to-right argument evaluation.
type Func func(h host.Host, args []runtime.Value) (runtime.Value, error)

// Registry maps a built-in's name to its implementation.
type Registry struct {
	funcs map[string]Func
}

// NewRegistry returns the registry populated with Brewin's fixed built-in
// set, which is closed by spec.md §6.3 and never grows by configuration.
func NewRegistry() *Registry {
	r := &Registry{funcs: make(map[string]Func)}
	r.register("print", Print)
	r.register("inputi", InputI)
	r.register("inputs", InputS)
	return r
}

func (r *Registry) register(name string, fn Func) {
	r.funcs[name] = fn
}

// Lookup returns the built-in named name, if any.
func (r *Registry) Lookup(name string) (Func, bool) {
	fn, ok := r.funcs[name]
	return fn, ok
}
