package evaluator

import (
	"strings"

	ierrors "github.com/dinothaurs/cs131interpretor/internal/interp/errors"
	"github.com/dinothaurs/cs131interpretor/internal/interp/runtime"
	"github.com/dinothaurs/cs131interpretor/pkg/element"
)

// force resolves v to a concrete Value, forcing it if it is an unevaluated
// Thunk (spec.md §4.6). Non-thunk values pass through unchanged.
func (ev *Evaluator) force(v runtime.Value) (runtime.Value, error) {
	t, ok := v.(*runtime.Thunk)
	if !ok {
		return v, nil
	}
	return ev.forceThunk(t)
}

// evalVar resolves a `var` node, which may name a plain variable or a
// dotted path into struct fields (spec.md §4.3 "Var" / "Dotted var").
func (ev *Evaluator) evalVar(e element.Element) (runtime.Value, error) {
	name, _ := element.GetString(e, "name")
	if strings.Contains(name, ".") {
		return ev.readDottedPath(name)
	}

	v, ok := ev.Env.LookupValue(name)
	if !ok {
		return nil, ierrors.NewName(ierrors.ErrMsgUndefinedVariable, name)
	}
	return ev.force(v)
}

// evalNeg implements unary `-`, which requires an Int operand.
func (ev *Evaluator) evalNeg(e element.Element) (runtime.Value, error) {
	operand, _ := element.GetElement(e, "op1")
	v, err := ev.EvalExpr(operand)
	if err != nil {
		return nil, err
	}
	v, err = ev.force(v)
	if err != nil {
		return nil, err
	}
	i, ok := v.(runtime.IntValue)
	if !ok {
		return nil, ierrors.NewType(ierrors.ErrMsgUnaryOperandType, "-", "int", v.Type())
	}
	return -i, nil
}

// evalNot implements unary `!`, a Bool-expecting context: Int coerces under
// dialects that allow it (spec.md §4.3 coercion table).
func (ev *Evaluator) evalNot(e element.Element) (runtime.Value, error) {
	operand, _ := element.GetElement(e, "op1")
	v, err := ev.EvalExpr(operand)
	if err != nil {
		return nil, err
	}
	v, err = ev.force(v)
	if err != nil {
		return nil, err
	}
	b, err := ev.coerceToBool(v)
	if err != nil {
		return nil, err
	}
	return !b, nil
}

// evalNew implements `new T`: materialize a zero-initialized struct
// instance per the registry's schema (spec.md §4.2).
func (ev *Evaluator) evalNew(e element.Element) (runtime.Value, error) {
	typeName, _ := element.GetString(e, "name")
	def, ok := ev.Structs.Lookup(typeName)
	if !ok {
		return nil, ierrors.NewName(ierrors.ErrMsgUnknownStructType, typeName)
	}
	inst, err := ev.Structs.NewInstance(def)
	if err != nil {
		return nil, ierrors.NewType("%v", err)
	}
	return inst, nil
}
