package runtime

import "fmt"

// Binding is what a scope actually stores: the slot's declared type (fixed
// for the slot's lifetime by VarDef, or "" for dialects without typed
// variables) alongside its current Value. Keeping the declared type beside
// the value — rather than inferring it from the value's current runtime
// type — is what lets a struct-typed variable holding Nil still be
// type-checked on a later assignment (spec.md §3 invariant 3): the value
// alone can't tell you what struct type a Nil slot was declared as.
type Binding struct {
	DeclaredType string
	Value        Value
}

// scope is a single block-level lookup frame: a mapping from name to Binding.
type scope map[string]Binding

// activation is a function-call frame: a stack of block scopes. Invariant 1
// of spec.md §3 ("every activation record contains >= 1 block scope at all
// times") is maintained by always pushing exactly one scope in
// PushActivation and never letting PopScope empty it out from outside.
type activation struct {
	scopes []scope
}

// Environment is the stack of activation records described in spec.md §4.1.
// Lookup walks the current record's scopes inner-to-outer and never crosses
// into an enclosing activation record — lexical scoping stops at the
// function boundary, exactly as spec.md requires.
type Environment struct {
	activations []*activation
}

// NewEnvironment creates an environment with no activation records yet.
// The caller (Call Machinery, or program start-up for top-level execution)
// is responsible for pushing the first activation.
func NewEnvironment() *Environment {
	return &Environment{}
}

// PushActivation appends a new record containing one empty scope.
func (e *Environment) PushActivation() {
	e.activations = append(e.activations, &activation{scopes: []scope{make(scope)}})
}

// PopActivation discards the top record.
func (e *Environment) PopActivation() {
	e.activations = e.activations[:len(e.activations)-1]
}

// Depth reports how many activation records are currently pushed; used by
// Call Machinery to enforce a maximum recursion depth.
func (e *Environment) Depth() int { return len(e.activations) }

func (e *Environment) top() *activation {
	return e.activations[len(e.activations)-1]
}

// PushScope pushes a new block scope onto the top activation record.
func (e *Environment) PushScope() {
	a := e.top()
	a.scopes = append(a.scopes, make(scope))
}

// PopScope pops the innermost block scope of the top activation record.
func (e *Environment) PopScope() {
	a := e.top()
	a.scopes = a.scopes[:len(a.scopes)-1]
}

// Create inserts name into the innermost scope of the top activation
// record. It fails if name is already bound there (spec.md §3 invariant 2);
// shadowing an outer scope's binding of the same name is not an error.
func (e *Environment) Create(name string, b Binding) error {
	a := e.top()
	innermost := a.scopes[len(a.scopes)-1]
	if _, exists := innermost[name]; exists {
		return fmt.Errorf("%s already defined in this scope", name)
	}
	innermost[name] = b
	return nil
}

// CreateValue is a convenience for Create with no declared type, used by
// dialects without typed variables and by internal bookkeeping (e.g.
// binding a catcher's tag variable) that doesn't need one.
func (e *Environment) CreateValue(name string, v Value) error {
	return e.Create(name, Binding{Value: v})
}

// Lookup searches the top activation record's scopes innermost-first and
// returns the full binding (value plus declared type).
func (e *Environment) Lookup(name string) (Binding, bool) {
	a := e.top()
	for i := len(a.scopes) - 1; i >= 0; i-- {
		if b, ok := a.scopes[i][name]; ok {
			return b, true
		}
	}
	return Binding{}, false
}

// LookupValue is a convenience for callers that only need the value.
func (e *Environment) LookupValue(name string) (Value, bool) {
	b, ok := e.Lookup(name)
	if !ok {
		return nil, false
	}
	return b.Value, true
}

// CapturedScope is a by-value snapshot of selected bindings, taken at
// thunk-creation time. Thunks hold one of these instead of a live
// *Environment: spec.md §4.6 requires the capture to be a snapshot, so
// later assignments in the capturing frame (and the frame's own pop) must
// not leak into the thunk's view of its free variables.
type CapturedScope map[string]Binding

// PushCapturedActivation pushes a new activation record whose single scope
// holds a copy of snap's bindings. Thunk forcing uses this to install the
// captured environment without exposing the forcing site's own frame.
func (e *Environment) PushCapturedActivation(snap CapturedScope) {
	sc := make(scope, len(snap))
	for name, b := range snap {
		sc[name] = b
	}
	e.activations = append(e.activations, &activation{scopes: []scope{sc}})
}

// Assign locates the existing binding for name (innermost-first within the
// top activation record) and replaces its Value in place, preserving the
// slot's declared type. It reports false if no such binding exists
// anywhere in the current record.
func (e *Environment) Assign(name string, v Value) bool {
	a := e.top()
	for i := len(a.scopes) - 1; i >= 0; i-- {
		if b, ok := a.scopes[i][name]; ok {
			b.Value = v
			a.scopes[i][name] = b
			return true
		}
	}
	return false
}
