package evaluator

import (
	"strings"

	"github.com/dinothaurs/cs131interpretor/internal/interp/runtime"
	"github.com/dinothaurs/cs131interpretor/pkg/element"
)

// captureForExpr builds the lexical capture for expr: the current bindings
// of exactly the names free in expr, nothing more (spec.md §4.5). Function
// names are not bindings and are not captured — calls inside the thunk
// resolve through the function table at force time. A free name with no
// current binding is simply omitted; forcing will surface the name error
// if the expression actually reads it.
func (ev *Evaluator) captureForExpr(expr element.Element) runtime.CapturedScope {
	capture := make(runtime.CapturedScope)
	ev.collectFreeVars(expr, capture)
	return capture
}

func (ev *Evaluator) collectFreeVars(e element.Element, capture runtime.CapturedScope) {
	switch e.Type() {
	case "var":
		name, _ := element.GetString(e, "name")
		// Only the head of a dotted path is a variable; the rest are
		// field selections resolved against its value.
		if i := strings.IndexByte(name, '.'); i >= 0 {
			name = name[:i]
		}
		if _, seen := capture[name]; seen {
			return
		}
		if b, ok := ev.Env.Lookup(name); ok {
			capture[name] = b
		}
	case "fcall":
		args, _ := element.GetElements(e, "args")
		for _, a := range args {
			ev.collectFreeVars(a, capture)
		}
	default:
		if op, ok := element.GetElement(e, "op1"); ok {
			ev.collectFreeVars(op, capture)
		}
		if op, ok := element.GetElement(e, "op2"); ok {
			ev.collectFreeVars(op, capture)
		}
	}
}

// forceThunk evaluates a Thunk's captured expression exactly once, under
// the bindings captured at creation time rather than whatever frame happens
// to be on top when the force occurs (spec.md §4.6 call-by-need): the
// snapshot becomes the sole scope of a freshly pushed activation, the
// expression evaluates there, and the activation is popped again. A raise
// that surfaces while forcing propagates to the forcing site unchanged,
// carried the same way any other mid-expression raise is: as a
// *runtime.RaiseError Go error. The thunk stays un-memoized in that case,
// so forcing it again re-evaluates and re-raises (see DESIGN.md on the
// open question in spec.md §9).
func (ev *Evaluator) forceThunk(t *runtime.Thunk) (runtime.Value, error) {
	if v, ok := t.Forced(); ok {
		return v, nil
	}

	ev.Env.PushCapturedActivation(t.Capture)
	v, err := ev.EvalExpr(t.Expr)
	ev.Env.PopActivation()

	if err != nil {
		return nil, err
	}
	t.Memoize(v)
	return v, nil
}
