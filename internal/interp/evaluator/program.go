package evaluator

import (
	ierrors "github.com/dinothaurs/cs131interpretor/internal/interp/errors"
	"github.com/dinothaurs/cs131interpretor/internal/interp/runtime"
	"github.com/dinothaurs/cs131interpretor/pkg/element"
)

// LoadProgram registers every top-level struct and function definition
// into the Evaluator's Struct Registry and Function Table (spec.md §2).
// Order does not matter: both tables are fully populated before any
// function body runs, so forward references (a struct naming a field of a
// struct defined later in the file, a function calling one defined later)
// resolve correctly.
func (ev *Evaluator) LoadProgram(tops []element.Element) error {
	for _, top := range tops {
		switch top.Type() {
		case "struct":
			def, err := structDefFromNode(top)
			if err != nil {
				return err
			}
			if err := ev.Structs.Define(def); err != nil {
				return ierrors.NewName(ierrors.ErrMsgDuplicateStruct, def.Name)
			}
		case "func":
			name, _ := element.GetString(top, "name")
			params, _ := element.GetElements(top, "args")
			if err := ev.Funcs.Define(name, len(params), top); err != nil {
				return ierrors.NewName(ierrors.ErrMsgDuplicateFunction, name, len(params))
			}
		default:
			return ierrors.NewName(ierrors.ErrMsgUnknownStatement, top.Type())
		}
	}
	return nil
}

func structDefFromNode(e element.Element) (*runtime.StructDef, error) {
	name, _ := element.GetString(e, "name")
	fieldNodes, _ := element.GetElements(e, "fields")
	fields := make([]runtime.FieldSchema, 0, len(fieldNodes))
	for _, fn := range fieldNodes {
		fieldName, _ := element.GetString(fn, "name")
		fieldType, _ := element.GetString(fn, "var_type")
		fields = append(fields, runtime.FieldSchema{Name: fieldName, TypeName: fieldType})
	}
	return &runtime.StructDef{Name: name, Fields: fields}, nil
}

// Run locates main/0 and invokes it (spec.md §4.1 "Program entry point").
// A raise that escapes main entirely is promoted to a FAULT_ERROR: spec.md
// §4.4 invariant 5 treats an uncaught exception reaching the top of the
// call stack as fatal to the whole run, same as any other fault.
func (ev *Evaluator) Run() error {
	def, ok := ev.Funcs.Lookup("main", 0)
	if !ok {
		return ierrors.NewName(ierrors.ErrMsgNoMainFunction)
	}
	_, err := ev.invoke(def, nil)
	if err != nil {
		if re, ok := err.(*runtime.RaiseError); ok {
			return ierrors.NewFault(ierrors.ErrMsgUncaughtRaise, re.Tag)
		}
		return err
	}
	return nil
}
