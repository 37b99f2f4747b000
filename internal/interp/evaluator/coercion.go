package evaluator

import (
	ierrors "github.com/dinothaurs/cs131interpretor/internal/interp/errors"
	"github.com/dinothaurs/cs131interpretor/internal/interp/runtime"
)

// coerceToBool implements the Bool-expecting-context coercion of spec.md
// §4.3: a literal Bool passes through; an Int coerces (nonzero=true,
// zero=false) only under dialects with TypedVars (v3); anything else is
// a type error. The caller is responsible for forcing thunks first.
func (ev *Evaluator) coerceToBool(v runtime.Value) (runtime.BoolValue, error) {
	switch vv := v.(type) {
	case runtime.BoolValue:
		return vv, nil
	case runtime.IntValue:
		if ev.Dialect.TypedVars {
			return runtime.BoolValue(vv != 0), nil
		}
	}
	return false, ierrors.NewType(ierrors.ErrMsgTypeMismatch, "bool", v.Type())
}

// coerceToDeclaredType enforces and converts a value against a formal
// declared type: used for VarDef-typed assignment (§4.4), parameter
// binding (§4.5), and return-value conversion (§4.5). declaredType is
// "int"/"string"/"bool"/"void" or a struct type name.
func (ev *Evaluator) coerceToDeclaredType(declaredType string, v runtime.Value) (runtime.Value, error) {
	switch declaredType {
	case "int":
		if iv, ok := v.(runtime.IntValue); ok {
			return iv, nil
		}
		return nil, ierrors.NewType(ierrors.ErrMsgTypeMismatch, "int", v.Type())

	case "string":
		if sv, ok := v.(runtime.StringValue); ok {
			return sv, nil
		}
		return nil, ierrors.NewType(ierrors.ErrMsgTypeMismatch, "string", v.Type())

	case "bool":
		if bv, ok := v.(runtime.BoolValue); ok {
			return bv, nil
		}
		if iv, ok := v.(runtime.IntValue); ok && ev.Dialect.TypedVars {
			return runtime.BoolValue(iv != 0), nil
		}
		return nil, ierrors.NewType(ierrors.ErrMsgTypeMismatch, "bool", v.Type())

	case "void":
		if v == runtime.Nil {
			return runtime.Nil, nil
		}
		return nil, ierrors.NewType(ierrors.ErrMsgTypeMismatch, "void", v.Type())

	default:
		// A struct type: Nil is always acceptable, otherwise the instance's
		// own type name must match exactly (spec.md §3 invariant 3).
		if v == runtime.Nil {
			return runtime.Nil, nil
		}
		inst, ok := v.(*runtime.StructInstance)
		if !ok || inst.TypeName != declaredType {
			return nil, ierrors.NewType(ierrors.ErrMsgTypeMismatch, declaredType, v.Type())
		}
		return inst, nil
	}
}

// valuesEqual implements spec.md §4.3's equality semantics: struct
// instances compare by identity, Nil compares equal only to Nil (including
// a Nil-valued struct slot), same-typed primitives compare by value, and an
// Int/Bool mix coerces under TypedVars dialects; any other cross-type pair
// is simply unequal rather than an error.
func (ev *Evaluator) valuesEqual(a, b runtime.Value) bool {
	ai, aIsStruct := a.(*runtime.StructInstance)
	bi, bIsStruct := b.(*runtime.StructInstance)
	if aIsStruct || bIsStruct {
		if aIsStruct && bIsStruct {
			return ai == bi
		}
		return false
	}
	if a == runtime.Nil || b == runtime.Nil {
		return a == runtime.Nil && b == runtime.Nil
	}

	switch av := a.(type) {
	case runtime.IntValue:
		if bv, ok := b.(runtime.IntValue); ok {
			return av == bv
		}
		if bv, ok := b.(runtime.BoolValue); ok && ev.Dialect.TypedVars {
			return (av != 0) == bool(bv)
		}
		return false
	case runtime.StringValue:
		bv, ok := b.(runtime.StringValue)
		return ok && av == bv
	case runtime.BoolValue:
		if bv, ok := b.(runtime.BoolValue); ok {
			return av == bv
		}
		if bv, ok := b.(runtime.IntValue); ok && ev.Dialect.TypedVars {
			return bool(av) == (bv != 0)
		}
		return false
	default:
		return false
	}
}
