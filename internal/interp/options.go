package interp

import (
	"github.com/dinothaurs/cs131interpretor/internal/dialect"
	"github.com/dinothaurs/cs131interpretor/internal/interp/host"
)

// Options configures the interpreter. Keeping it an interface breaks the
// dependency cycle with the public facade: pkg/brewin's concrete Options
// implementation satisfies it without internal/interp ever importing
// pkg/brewin.
type Options interface {
	// GetDialect returns the language dialect governing which v1-v4
	// features are active (spec.md §6.5).
	GetDialect() dialect.Dialect

	// GetMaxRecursionDepth returns the maximum activation-record depth.
	// Returns 0 if not set, in which case the caller uses
	// evaluator.DefaultMaxRecursionDepth.
	GetMaxRecursionDepth() int

	// GetExternalHost returns the print sink / input source the program's
	// print/inputi/inputs calls are wired to (spec.md §6.1).
	GetExternalHost() host.Host
}
