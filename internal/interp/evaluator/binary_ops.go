package evaluator

import (
	ierrors "github.com/dinothaurs/cs131interpretor/internal/interp/errors"
	"github.com/dinothaurs/cs131interpretor/internal/interp/runtime"
	"github.com/dinothaurs/cs131interpretor/pkg/element"
)

// evalBinary dispatches every binary elem_type (spec.md §4.3). && and ||
// are short-circuiting only under dialects that set ShortCircuit, so they
// get their own operand-evaluation order ahead of the rest.
func (ev *Evaluator) evalBinary(e element.Element) (runtime.Value, error) {
	op := e.Type()
	leftNode, _ := element.GetElement(e, "op1")
	rightNode, _ := element.GetElement(e, "op2")

	if op == "&&" || op == "||" {
		return ev.evalLogical(op, leftNode, rightNode)
	}

	left, err := ev.EvalExpr(leftNode)
	if err != nil {
		return nil, err
	}
	left, err = ev.force(left)
	if err != nil {
		return nil, err
	}
	right, err := ev.EvalExpr(rightNode)
	if err != nil {
		return nil, err
	}
	right, err = ev.force(right)
	if err != nil {
		return nil, err
	}

	switch op {
	case "+":
		return ev.evalAdd(left, right)
	case "-", "*", "/":
		return ev.evalArith(op, left, right)
	case "<", "<=", ">", ">=":
		return ev.evalCompare(op, left, right)
	case "==":
		return runtime.BoolValue(ev.valuesEqual(left, right)), nil
	case "!=":
		return runtime.BoolValue(!ev.valuesEqual(left, right)), nil
	default:
		return nil, ierrors.NewName(ierrors.ErrMsgUnknownOperator, op)
	}
}

// evalLogical implements && and ||. Under ShortCircuit dialects the right
// operand is never evaluated once the left operand already determines the
// result; otherwise both sides are always evaluated, matching the earlier
// dialects' eager-both-operands behavior.
func (ev *Evaluator) evalLogical(op string, leftNode, rightNode element.Element) (runtime.Value, error) {
	leftVal, err := ev.EvalExpr(leftNode)
	if err != nil {
		return nil, err
	}
	leftVal, err = ev.force(leftVal)
	if err != nil {
		return nil, err
	}
	leftBool, err := ev.coerceToBool(leftVal)
	if err != nil {
		return nil, err
	}

	if ev.Dialect.ShortCircuit {
		if op == "&&" && !leftBool {
			return runtime.BoolValue(false), nil
		}
		if op == "||" && leftBool {
			return runtime.BoolValue(true), nil
		}
	}

	rightVal, err := ev.EvalExpr(rightNode)
	if err != nil {
		return nil, err
	}
	rightVal, err = ev.force(rightVal)
	if err != nil {
		return nil, err
	}
	rightBool, err := ev.coerceToBool(rightVal)
	if err != nil {
		return nil, err
	}

	if op == "&&" {
		return runtime.BoolValue(bool(leftBool) && bool(rightBool)), nil
	}
	return runtime.BoolValue(bool(leftBool) || bool(rightBool)), nil
}

// evalAdd implements `+`, which overloads Int sum and String concatenation
// and nothing else (spec.md §4.3).
func (ev *Evaluator) evalAdd(left, right runtime.Value) (runtime.Value, error) {
	if l, ok := left.(runtime.IntValue); ok {
		if r, ok := right.(runtime.IntValue); ok {
			return l + r, nil
		}
	}
	if l, ok := left.(runtime.StringValue); ok {
		if r, ok := right.(runtime.StringValue); ok {
			return l + r, nil
		}
	}
	return nil, ierrors.NewType(ierrors.ErrMsgIncompatibleOperands, "+", left.Type(), right.Type())
}

// evalArith implements `-`, `*`, `/`, all Int-only. Division floors toward
// negative infinity, matching spec.md §8's boundary example (-7)/2 == -4
// rather than Go's truncate-toward-zero `/`. Division by zero is either a
// catchable "div0" raise (DivZeroRaises dialects, v4) or a FAULT_ERROR that
// aborts the run (earlier dialects) — spec.md §7 calls the latter "fatal",
// which is exactly what FAULT_ERROR means elsewhere in this interpreter.
func (ev *Evaluator) evalArith(op string, left, right runtime.Value) (runtime.Value, error) {
	l, ok := left.(runtime.IntValue)
	if !ok {
		return nil, ierrors.NewType(ierrors.ErrMsgIncompatibleOperands, op, left.Type(), right.Type())
	}
	r, ok := right.(runtime.IntValue)
	if !ok {
		return nil, ierrors.NewType(ierrors.ErrMsgIncompatibleOperands, op, left.Type(), right.Type())
	}

	switch op {
	case "-":
		return l - r, nil
	case "*":
		return l * r, nil
	case "/":
		if r == 0 {
			if ev.Dialect.DivZeroRaises {
				return nil, &runtime.RaiseError{Tag: "div0"}
			}
			return nil, ierrors.NewFault(ierrors.ErrMsgDivideByZero)
		}
		return floorDiv(l, r), nil
	default:
		return nil, ierrors.NewName(ierrors.ErrMsgUnknownOperator, op)
	}
}

func floorDiv(a, b runtime.IntValue) runtime.IntValue {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// evalCompare implements the Int-only ordering operators.
func (ev *Evaluator) evalCompare(op string, left, right runtime.Value) (runtime.Value, error) {
	l, ok := left.(runtime.IntValue)
	if !ok {
		return nil, ierrors.NewType(ierrors.ErrMsgIncompatibleOperands, op, left.Type(), right.Type())
	}
	r, ok := right.(runtime.IntValue)
	if !ok {
		return nil, ierrors.NewType(ierrors.ErrMsgIncompatibleOperands, op, left.Type(), right.Type())
	}

	switch op {
	case "<":
		return runtime.BoolValue(l < r), nil
	case "<=":
		return runtime.BoolValue(l <= r), nil
	case ">":
		return runtime.BoolValue(l > r), nil
	case ">=":
		return runtime.BoolValue(l >= r), nil
	default:
		return nil, ierrors.NewName(ierrors.ErrMsgUnknownOperator, op)
	}
}
