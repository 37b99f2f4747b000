package evaluator

import (
	"strings"

	ierrors "github.com/dinothaurs/cs131interpretor/internal/interp/errors"
	"github.com/dinothaurs/cs131interpretor/internal/interp/runtime"
)

// readDottedPath resolves `a.b.c` (spec.md §4.2): the head must resolve to
// a struct slot, Nil at any intermediate step faults, an undeclared
// intermediate or leaf field name errors, and a Nil leaf simply reads as
// Nil. Thunks encountered along the way are forced (spec.md §4.3).
func (ev *Evaluator) readDottedPath(path string) (runtime.Value, error) {
	parts := strings.Split(path, ".")

	v, ok := ev.Env.LookupValue(parts[0])
	if !ok {
		return nil, ierrors.NewName(ierrors.ErrMsgUndefinedVariable, parts[0])
	}
	v, err := ev.force(v)
	if err != nil {
		return nil, err
	}

	for i := 1; i < len(parts); i++ {
		inst, err := ev.asStructForFieldAccess(v, parts[i], strings.Join(parts[:i], "."))
		if err != nil {
			return nil, err
		}
		fv, exists := inst.Field(parts[i])
		if !exists {
			return nil, ierrors.NewName(ierrors.ErrMsgUnknownField, parts[i])
		}
		fv, err = ev.force(fv)
		if err != nil {
			return nil, err
		}
		v = fv
	}
	return v, nil
}

// asStructForFieldAccess requires v to be a non-nil *StructInstance,
// producing the fault/type errors spec.md §4.2 calls for otherwise.
func (ev *Evaluator) asStructForFieldAccess(v runtime.Value, field, pathSoFar string) (*runtime.StructInstance, error) {
	if v == runtime.Nil {
		return nil, ierrors.NewFault(ierrors.ErrMsgNilDereference, field, pathSoFar)
	}
	inst, ok := v.(*runtime.StructInstance)
	if !ok {
		return nil, ierrors.NewType("cannot access field %q on non-struct value of type %s", field, v.Type())
	}
	return inst, nil
}

// resolveFieldLValue walks `a.b. ... .leaf` down to the struct instance
// that owns leaf and that field's declared type, so Assign (statements.go)
// can type-check the RHS before mutating it.
func (ev *Evaluator) resolveFieldLValue(path string) (inst *runtime.StructInstance, leaf string, declaredType string, err error) {
	parts := strings.Split(path, ".")

	v, ok := ev.Env.LookupValue(parts[0])
	if !ok {
		return nil, "", "", ierrors.NewName(ierrors.ErrMsgUndefinedVariable, parts[0])
	}
	v, err = ev.force(v)
	if err != nil {
		return nil, "", "", err
	}

	for i := 1; i < len(parts)-1; i++ {
		cur, ferr := ev.asStructForFieldAccess(v, parts[i], strings.Join(parts[:i], "."))
		if ferr != nil {
			return nil, "", "", ferr
		}
		fv, exists := cur.Field(parts[i])
		if !exists {
			return nil, "", "", ierrors.NewName(ierrors.ErrMsgUnknownField, parts[i])
		}
		fv, err = ev.force(fv)
		if err != nil {
			return nil, "", "", err
		}
		v = fv
	}

	leafName := parts[len(parts)-1]
	owner, ferr := ev.asStructForFieldAccess(v, leafName, strings.Join(parts[:len(parts)-1], "."))
	if ferr != nil {
		return nil, "", "", ferr
	}
	if _, exists := owner.Field(leafName); !exists {
		return nil, "", "", ierrors.NewName(ierrors.ErrMsgUnknownField, leafName)
	}

	def, _ := ev.Structs.Lookup(owner.TypeName)
	for _, f := range def.Fields {
		if f.Name == leafName {
			declaredType = f.TypeName
			break
		}
	}
	return owner, leafName, declaredType, nil
}
