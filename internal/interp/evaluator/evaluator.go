// Package evaluator is the heart of the interpreter: expression
// evaluation, statement execution, call machinery, and exception
// propagation, fused into one Evaluator that owns the run's mutable state.
package evaluator

import (
	"github.com/dinothaurs/cs131interpretor/internal/dialect"
	"github.com/dinothaurs/cs131interpretor/internal/interp/builtins"
	ierrors "github.com/dinothaurs/cs131interpretor/internal/interp/errors"
	"github.com/dinothaurs/cs131interpretor/internal/interp/host"
	"github.com/dinothaurs/cs131interpretor/internal/interp/runtime"
	"github.com/dinothaurs/cs131interpretor/pkg/element"
)

// DefaultMaxRecursionDepth bounds activation-record depth so a runaway
// recursive program faults instead of crashing the process with a stack
// overflow.
const DefaultMaxRecursionDepth = 2500

// Config bundles the Evaluator's construction-time settings.
type Config struct {
	Dialect           dialect.Dialect
	MaxRecursionDepth int
}

// Evaluator owns all mutable interpretation state for one program run: the
// environment, the struct/function tables, and the host I/O hooks. It is
// not safe for concurrent use — spec.md §5 specifies a single-threaded
// execution model, so there is no synchronization here at all.
type Evaluator struct {
	Env      *runtime.Environment
	Structs  *runtime.StructRegistry
	Funcs    *runtime.FunctionTable
	Host     host.Host
	Dialect  dialect.Dialect
	Builtins *builtins.Registry

	maxRecursionDepth int
}

// New builds an Evaluator ready to load struct/function definitions.
func New(h host.Host, cfg Config) *Evaluator {
	maxDepth := cfg.MaxRecursionDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxRecursionDepth
	}
	return &Evaluator{
		Env:               runtime.NewEnvironment(),
		Structs:           runtime.NewStructRegistry(),
		Funcs:             runtime.NewFunctionTable(),
		Host:              h,
		Dialect:           cfg.Dialect,
		Builtins:          builtins.NewRegistry(),
		maxRecursionDepth: maxDepth,
	}
}

// EvalExpr reduces an AST expression node to a Value (spec.md §4.3).
func (ev *Evaluator) EvalExpr(e element.Element) (runtime.Value, error) {
	switch e.Type() {
	case "int":
		v, _ := element.GetInt64(e, "val")
		return runtime.IntValue(v), nil
	case "string":
		v, _ := element.GetString(e, "val")
		return runtime.StringValue(v), nil
	case "bool":
		v, _ := element.GetBool(e, "val")
		return runtime.BoolValue(v), nil
	case "nil":
		return runtime.Nil, nil
	case "var":
		return ev.evalVar(e)
	case "fcall":
		return ev.evalCallExpr(e, true)
	case "neg":
		return ev.evalNeg(e)
	case "!":
		return ev.evalNot(e)
	case "new":
		return ev.evalNew(e)
	case "+", "-", "*", "/", "==", "!=", "<", "<=", ">", ">=", "&&", "||":
		return ev.evalBinary(e)
	default:
		return nil, ierrors.NewName(ierrors.ErrMsgUnknownExpression, e.Type())
	}
}
