package evaluator

import (
	"strings"

	ierrors "github.com/dinothaurs/cs131interpretor/internal/interp/errors"
	"github.com/dinothaurs/cs131interpretor/internal/interp/runtime"
	"github.com/dinothaurs/cs131interpretor/pkg/element"
)

// evalExprForStmt evaluates e for a statement context, translating a
// *runtime.RaiseError surfacing from the expression into a Raise Signal
// rather than letting it flow further as a plain Go error: this is the
// boundary where "control flow as error return" (expressions) rejoins
// "control flow as tagged Signal" (statements), per spec.md §9's preference
// for tagged returns over host exceptions.
func (ev *Evaluator) evalExprForStmt(e element.Element) (runtime.Value, runtime.Signal, bool, error) {
	v, err := ev.EvalExpr(e)
	if err != nil {
		if re, ok := err.(*runtime.RaiseError); ok {
			return nil, runtime.RaiseSignal(re.Tag), true, nil
		}
		return nil, runtime.Signal{}, false, err
	}
	return v, runtime.Signal{}, false, nil
}

// ExecBlock runs stmts in a fresh block scope, stopping at the first
// non-Continue signal (spec.md §4.4).
func (ev *Evaluator) ExecBlock(stmts []element.Element) (runtime.Signal, error) {
	ev.Env.PushScope()
	defer ev.Env.PopScope()

	for _, stmt := range stmts {
		sig, err := ev.ExecStmt(stmt)
		if err != nil {
			return runtime.Signal{}, err
		}
		if sig.Kind != runtime.Continue {
			return sig, nil
		}
	}
	return runtime.ContinueSignal(), nil
}

// ExecStmt executes one statement node, returning the Signal it produces
// (spec.md §4.4).
func (ev *Evaluator) ExecStmt(e element.Element) (runtime.Signal, error) {
	switch e.Type() {
	case "vardef":
		return ev.execVarDef(e)
	case "=":
		return ev.execAssign(e)
	case "fcall":
		return ev.execCallStmt(e)
	case "return":
		return ev.execReturn(e)
	case "if":
		return ev.execIf(e)
	case "for":
		return ev.execFor(e)
	case "try":
		return ev.execTry(e)
	case "raise":
		return ev.execRaise(e)
	default:
		return runtime.Signal{}, ierrors.NewName(ierrors.ErrMsgUnknownStatement, e.Type())
	}
}

func (ev *Evaluator) execVarDef(e element.Element) (runtime.Signal, error) {
	name, _ := element.GetString(e, "name")

	// Untyped dialects ignore any declared type on the node: the slot
	// starts as Nil ("the value of an untyped uninitialized slot", spec.md
	// §3) and later assignments are unchecked.
	if !ev.Dialect.TypedVars {
		if err := ev.Env.CreateValue(name, runtime.Nil); err != nil {
			return runtime.Signal{}, ierrors.NewName(ierrors.ErrMsgDuplicateDefinition, name)
		}
		return runtime.ContinueSignal(), nil
	}

	varType, _ := element.GetString(e, "var_type")
	if varType == "void" || !ev.Structs.IsKnownType(varType) {
		return runtime.Signal{}, ierrors.NewType(ierrors.ErrMsgInvalidVarType, varType)
	}
	zero, err := ev.Structs.ZeroValue(varType)
	if err != nil {
		return runtime.Signal{}, ierrors.NewType(ierrors.ErrMsgInvalidVarType, varType)
	}
	if err := ev.Env.Create(name, runtime.Binding{DeclaredType: varType, Value: zero}); err != nil {
		return runtime.Signal{}, ierrors.NewName(ierrors.ErrMsgDuplicateDefinition, name)
	}
	return runtime.ContinueSignal(), nil
}

func (ev *Evaluator) execAssign(e element.Element) (runtime.Signal, error) {
	name, _ := element.GetString(e, "name")
	valNode, _ := element.GetElement(e, "val")

	rhs, err := ev.bindAssignmentValue(valNode)
	if err != nil {
		if re, ok := err.(*runtime.RaiseError); ok {
			return runtime.RaiseSignal(re.Tag), nil
		}
		return runtime.Signal{}, err
	}

	if strings.Contains(name, ".") {
		inst, leaf, declaredType, ferr := ev.resolveFieldLValue(name)
		if ferr != nil {
			// Walking the path can force intermediate thunks, so a raise
			// can surface here too.
			if re, ok := ferr.(*runtime.RaiseError); ok {
				return runtime.RaiseSignal(re.Tag), nil
			}
			return runtime.Signal{}, ferr
		}
		coerced, cerr := ev.coerceAssignedValue(declaredType, rhs)
		if cerr != nil {
			return runtime.Signal{}, cerr
		}
		inst.SetField(leaf, coerced)
		return runtime.ContinueSignal(), nil
	}

	b, ok := ev.Env.Lookup(name)
	if !ok {
		return runtime.Signal{}, ierrors.NewName(ierrors.ErrMsgUndefinedVariable, name)
	}
	coerced, cerr := ev.coerceAssignedValue(b.DeclaredType, rhs)
	if cerr != nil {
		return runtime.Signal{}, cerr
	}
	ev.Env.Assign(name, coerced)
	return runtime.ContinueSignal(), nil
}

// bindAssignmentValue evaluates the RHS of an assignment, wrapping it in an
// unforced Thunk under LazyParams dialects (v4) exactly the way a lazy
// function argument is bound (spec.md §4.6): assignment and parameter
// passing share the same call-by-need surface.
func (ev *Evaluator) bindAssignmentValue(e element.Element) (runtime.Value, error) {
	if ev.Dialect.LazyParams {
		return runtime.NewThunk(e, ev.captureForExpr(e)), nil
	}
	v, err := ev.EvalExpr(e)
	if err != nil {
		return nil, err
	}
	return ev.force(v)
}

// coerceAssignedValue type-checks rhs against declaredType without forcing
// a still-unforced Thunk: forcing happens lazily at the next read, not at
// bind time, or call-by-need buys nothing.
func (ev *Evaluator) coerceAssignedValue(declaredType string, rhs runtime.Value) (runtime.Value, error) {
	if declaredType == "" {
		return rhs, nil
	}
	if _, isThunk := rhs.(*runtime.Thunk); isThunk {
		return rhs, nil
	}
	return ev.coerceToDeclaredType(declaredType, rhs)
}

func (ev *Evaluator) execCallStmt(e element.Element) (runtime.Signal, error) {
	_, err := ev.evalCallExpr(e, false)
	if err != nil {
		if re, ok := err.(*runtime.RaiseError); ok {
			return runtime.RaiseSignal(re.Tag), nil
		}
		return runtime.Signal{}, err
	}
	return runtime.ContinueSignal(), nil
}

func (ev *Evaluator) execReturn(e element.Element) (runtime.Signal, error) {
	valNode, ok := element.GetElement(e, "val")
	if !ok {
		return runtime.ReturnSignal(runtime.Nil), nil
	}
	v, sig, raised, err := ev.evalExprForStmt(valNode)
	if err != nil {
		return runtime.Signal{}, err
	}
	if raised {
		return sig, nil
	}
	v, err = ev.force(v)
	if err != nil {
		if re, ok := err.(*runtime.RaiseError); ok {
			return runtime.RaiseSignal(re.Tag), nil
		}
		return runtime.Signal{}, err
	}
	return runtime.ReturnSignal(v), nil
}

func (ev *Evaluator) execIf(e element.Element) (runtime.Signal, error) {
	condNode, _ := element.GetElement(e, "condition")
	v, sig, raised, err := ev.evalExprForStmt(condNode)
	if err != nil {
		return runtime.Signal{}, err
	}
	if raised {
		return sig, nil
	}
	v, err = ev.force(v)
	if err != nil {
		if re, ok := err.(*runtime.RaiseError); ok {
			return runtime.RaiseSignal(re.Tag), nil
		}
		return runtime.Signal{}, err
	}
	cond, err := ev.coerceToBool(v)
	if err != nil {
		return runtime.Signal{}, err
	}

	thenStmts, _ := element.GetElements(e, "statements")
	elseStmts, hasElse := element.GetElements(e, "else_statements")

	if cond {
		return ev.ExecBlock(thenStmts)
	}
	if hasElse {
		return ev.ExecBlock(elseStmts)
	}
	return runtime.ContinueSignal(), nil
}

func (ev *Evaluator) execFor(e element.Element) (runtime.Signal, error) {
	condNode, _ := element.GetElement(e, "condition")
	body, _ := element.GetElements(e, "statements")

	if initNode, ok := element.GetElement(e, "init"); ok {
		sig, err := ev.ExecStmt(initNode)
		if err != nil {
			return runtime.Signal{}, err
		}
		if sig.Kind == runtime.Raise {
			return sig, nil
		}
		// A Return out of a for-loop's init clause is undefined; we treat it
		// as a no-op and keep looping, which is the documented resolution.
	}

	for {
		v, sig, raised, err := ev.evalExprForStmt(condNode)
		if err != nil {
			return runtime.Signal{}, err
		}
		if raised {
			return sig, nil
		}
		v, err = ev.force(v)
		if err != nil {
			if re, ok := err.(*runtime.RaiseError); ok {
				return runtime.RaiseSignal(re.Tag), nil
			}
			return runtime.Signal{}, err
		}
		cond, err := ev.coerceToBool(v)
		if err != nil {
			return runtime.Signal{}, err
		}
		if !cond {
			return runtime.ContinueSignal(), nil
		}

		bodySig, err := ev.ExecBlock(body)
		if err != nil {
			return runtime.Signal{}, err
		}
		if bodySig.Kind == runtime.Return || bodySig.Kind == runtime.Raise {
			return bodySig, nil
		}

		if updateNode, ok := element.GetElement(e, "update"); ok {
			upSig, err := ev.ExecStmt(updateNode)
			if err != nil {
				return runtime.Signal{}, err
			}
			if upSig.Kind == runtime.Raise {
				return upSig, nil
			}
		}
	}
}

func (ev *Evaluator) execRaise(e element.Element) (runtime.Signal, error) {
	if !ev.Dialect.Exceptions {
		return runtime.Signal{}, ierrors.NewName(ierrors.ErrMsgUnknownStatement, "raise")
	}
	exprNode, _ := element.GetElement(e, "expression")
	v, sig, raised, err := ev.evalExprForStmt(exprNode)
	if err != nil {
		return runtime.Signal{}, err
	}
	if raised {
		return sig, nil
	}
	v, err = ev.force(v)
	if err != nil {
		if re, ok := err.(*runtime.RaiseError); ok {
			return runtime.RaiseSignal(re.Tag), nil
		}
		return runtime.Signal{}, err
	}
	sv, ok := v.(runtime.StringValue)
	if !ok {
		return runtime.Signal{}, ierrors.NewType(ierrors.ErrMsgNonStringRaise, v.Type())
	}
	return runtime.RaiseSignal(string(sv)), nil
}

// execTry runs the try body and, on a Raise, scans catchers in order for an
// exact tag match (spec.md §4.7). A matching catcher's body runs in a fresh
// scope that pre-binds a variable named after the tag itself to that same
// tag string — an unusual but explicit reading of the catch-binding rule,
// recorded in DESIGN.md. A caught raise's Continue/Return/Raise result
// (including one produced anew by the catcher body) becomes the try
// statement's own signal; an unmatched raise propagates untouched.
func (ev *Evaluator) execTry(e element.Element) (runtime.Signal, error) {
	if !ev.Dialect.Exceptions {
		return runtime.Signal{}, ierrors.NewName(ierrors.ErrMsgUnknownStatement, "try")
	}
	body, _ := element.GetElements(e, "statements")
	catchers, _ := element.GetElements(e, "catchers")

	sig, err := ev.ExecBlock(body)
	if err != nil {
		return runtime.Signal{}, err
	}
	if sig.Kind != runtime.Raise {
		return sig, nil
	}

	tag := sig.Tag()
	for _, catcher := range catchers {
		exceptionType, _ := element.GetString(catcher, "exception_type")
		if exceptionType != tag {
			continue
		}
		catchBody, _ := element.GetElements(catcher, "statements")
		return ev.execCatchBody(tag, catchBody)
	}
	return sig, nil
}

func (ev *Evaluator) execCatchBody(tag string, stmts []element.Element) (runtime.Signal, error) {
	ev.Env.PushScope()
	defer ev.Env.PopScope()

	if err := ev.Env.CreateValue(tag, runtime.StringValue(tag)); err != nil {
		return runtime.Signal{}, err
	}

	for _, stmt := range stmts {
		sig, err := ev.ExecStmt(stmt)
		if err != nil {
			return runtime.Signal{}, err
		}
		if sig.Kind != runtime.Continue {
			return sig, nil
		}
	}
	return runtime.ContinueSignal(), nil
}
