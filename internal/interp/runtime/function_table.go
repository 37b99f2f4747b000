package runtime

import (
	"fmt"

	"github.com/dinothaurs/cs131interpretor/pkg/element"
)

// FuncKey resolves overloads by arity only (spec.md §2, "Function Table").
type FuncKey struct {
	Name  string
	Arity int
}

// FunctionTable maps (name, arity) to the function's AST definition.
type FunctionTable struct {
	funcs map[FuncKey]element.Element
}

// NewFunctionTable returns an empty table.
func NewFunctionTable() *FunctionTable {
	return &FunctionTable{funcs: make(map[FuncKey]element.Element)}
}

// Define registers a function under (name, arity). Two definitions sharing
// both name and arity conflict — that is not overloading, it is redefining
// the very same callable.
func (t *FunctionTable) Define(name string, arity int, def element.Element) error {
	key := FuncKey{Name: name, Arity: arity}
	if _, exists := t.funcs[key]; exists {
		return fmt.Errorf("function %s/%d already defined", name, arity)
	}
	t.funcs[key] = def
	return nil
}

// Lookup resolves (name, arity) to its function definition.
func (t *FunctionTable) Lookup(name string, arity int) (element.Element, bool) {
	def, ok := t.funcs[FuncKey{Name: name, Arity: arity}]
	return def, ok
}

// HasName reports whether any arity of name is defined, used to distinguish
// "wrong arity" from "no such function at all" when reporting name errors.
func (t *FunctionTable) HasName(name string) bool {
	for k := range t.funcs {
		if k.Name == name {
			return true
		}
	}
	return false
}
