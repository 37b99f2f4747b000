package evaluator

import (
	ierrors "github.com/dinothaurs/cs131interpretor/internal/interp/errors"
	"github.com/dinothaurs/cs131interpretor/internal/interp/runtime"
	"github.com/dinothaurs/cs131interpretor/pkg/element"
)

// evalCallExpr is the Call Machinery (spec.md §4.5), reached both from
// EvalExpr (a call used in expression position) and execCallStmt (a call
// used for its side effects alone). Built-ins bypass the function table
// entirely and always receive already-evaluated, already-forced arguments,
// regardless of dialect. exprPosition distinguishes the two entry points:
// under ReturnTypeCheck dialects a function declared void may only appear
// in statement position, so a void call reached with exprPosition set is a
// type error (spec.md §7); other dialects do not check this.
func (ev *Evaluator) evalCallExpr(e element.Element, exprPosition bool) (runtime.Value, error) {
	name, _ := element.GetString(e, "name")
	argNodes, _ := element.GetElements(e, "args")

	if fn, ok := ev.Builtins.Lookup(name); ok {
		args := make([]runtime.Value, 0, len(argNodes))
		for _, argNode := range argNodes {
			v, err := ev.EvalExpr(argNode)
			if err != nil {
				return nil, err
			}
			v, err = ev.force(v)
			if err != nil {
				return nil, err
			}
			args = append(args, v)
		}
		return fn(ev.Host, args)
	}

	def, ok := ev.Funcs.Lookup(name, len(argNodes))
	if !ok {
		if ev.Funcs.HasName(name) {
			return nil, ierrors.NewName(ierrors.ErrMsgNoMatchingArity, name, len(argNodes))
		}
		return nil, ierrors.NewName(ierrors.ErrMsgUndefinedFunction, name)
	}
	if exprPosition && ev.Dialect.ReturnTypeCheck {
		if rt, _ := element.GetString(def, "return_type"); rt == "void" {
			return nil, ierrors.NewType(ierrors.ErrMsgVoidInExpression, name)
		}
	}
	return ev.invoke(def, argNodes)
}

// invoke binds def's formal parameters, pushes a fresh activation record,
// runs the body, and converts the resulting Signal back into a (Value,
// error) call result (spec.md §4.5). Arguments are evaluated — or, under
// LazyParams dialects, captured unevaluated as Thunks — against the
// *caller's* environment, before the callee's activation is pushed; a
// Thunk's captured environment is therefore always the caller's, never the
// callee's, which is what makes call-by-need behave like ordinary
// lexical closures rather than dynamic scoping.
func (ev *Evaluator) invoke(def element.Element, argNodes []element.Element) (runtime.Value, error) {
	params, _ := element.GetElements(def, "args")
	returnType, _ := element.GetString(def, "return_type")
	body, _ := element.GetElements(def, "statements")
	fname, _ := element.GetString(def, "name")

	// Captures are taken left-to-right before the callee's activation
	// exists (spec.md §5 mandates the capture order even though forcing
	// may happen in any order later, or never).
	bound := make([]runtime.Value, len(params))
	for i, param := range params {
		paramType, _ := element.GetString(param, "var_type")
		if ev.Dialect.LazyParams {
			bound[i] = runtime.NewThunk(argNodes[i], ev.captureForExpr(argNodes[i]))
			continue
		}
		v, err := ev.EvalExpr(argNodes[i])
		if err != nil {
			return nil, err
		}
		v, err = ev.force(v)
		if err != nil {
			return nil, err
		}
		if ev.Dialect.TypedVars {
			v, err = ev.coerceToDeclaredType(paramType, v)
			if err != nil {
				return nil, err
			}
		}
		bound[i] = v
	}

	if ev.Env.Depth()+1 > ev.maxRecursionDepth {
		return nil, ierrors.NewFault("maximum recursion depth exceeded calling %s", fname)
	}

	ev.Env.PushActivation()
	for i, param := range params {
		paramName, _ := element.GetString(param, "name")
		// Untyped dialects leave the declared type empty so assignments to
		// the parameter are unchecked, same as any other untyped slot.
		var paramType string
		if ev.Dialect.TypedVars {
			paramType, _ = element.GetString(param, "var_type")
		}
		if err := ev.Env.Create(paramName, runtime.Binding{DeclaredType: paramType, Value: bound[i]}); err != nil {
			ev.Env.PopActivation()
			return nil, ierrors.NewName(ierrors.ErrMsgDuplicateDefinition, paramName)
		}
	}

	sig, err := ev.execStmtsNoScope(body)
	ev.Env.PopActivation()
	if err != nil {
		return nil, err
	}

	switch sig.Kind {
	case runtime.Raise:
		return nil, &runtime.RaiseError{Tag: sig.Tag()}
	case runtime.Return:
		return ev.finalizeReturn(returnType, sig.Value)
	default:
		return ev.finalizeReturn(returnType, runtime.Nil)
	}
}

// finalizeReturn applies the declared-return-type conversion of spec.md
// §4.5: a Nil return (explicit, or synthesized on fall-through) becomes the
// type's zero value for primitives and stays Nil for struct and void
// returns; anything else must match the declared type, with the usual
// Int->Bool coercion.
func (ev *Evaluator) finalizeReturn(returnType string, v runtime.Value) (runtime.Value, error) {
	if !ev.Dialect.ReturnTypeCheck {
		return v, nil
	}
	if v == runtime.Nil && returnType != "void" {
		zero, err := ev.Structs.ZeroValue(returnType)
		if err != nil {
			return nil, ierrors.NewName(ierrors.ErrMsgUnknownStructType, returnType)
		}
		return zero, nil
	}
	return ev.coerceToDeclaredType(returnType, v)
}

// execStmtsNoScope runs stmts directly in the activation's current top
// scope rather than pushing another one: a function's parameter scope
// (already pushed by invoke, via PushActivation) doubles as the body's
// outermost scope, matching spec.md §3 invariant 1 without an extra,
// redundant block level.
func (ev *Evaluator) execStmtsNoScope(stmts []element.Element) (runtime.Signal, error) {
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
