// Package runtime holds the value representation and execution state shared
// by the evaluator: Value and its variants, the Environment (activation
// records and block scopes), the struct registry, and the function table.
// It is data only; behavior lives in internal/interp/evaluator.
package runtime

import (
	"strconv"

	"github.com/dinothaurs/cs131interpretor/pkg/element"
)

// Value is the tagged union described in spec.md §3: Int, String, Bool,
// Nil, StructInstance, Thunk, and Exception all implement it.
type Value interface {
	// Type returns the runtime type tag: "int", "string", "bool", "nil",
	// a struct type name, or "thunk"/"exception" for the internal variants.
	Type() string
	// String renders the value the way print() would.
	String() string
}

// IntValue is a two's-complement 64-bit integer.
type IntValue int64

func (v IntValue) Type() string   { return "int" }
func (v IntValue) String() string { return strconv.FormatInt(int64(v), 10) }

// StringValue is an immutable byte sequence.
type StringValue string

func (v StringValue) Type() string   { return "string" }
func (v StringValue) String() string { return string(v) }

// BoolValue renders as "true"/"false" per spec.md §6.3.
type BoolValue bool

func (v BoolValue) Type() string { return "bool" }
func (v BoolValue) String() string {
	if v {
		return "true"
	}
	return "false"
}

// nilValue is the Nil singleton: the value of an untyped uninitialized slot
// and of any un-`new`ed struct-typed variable.
type nilValue struct{}

func (nilValue) Type() string   { return "nil" }
func (nilValue) String() string { return "nil" }

// Nil is the single shared Nil value. Comparisons against it use plain
// equality; there is never a second nilValue instance to go stale.
var Nil Value = nilValue{}

// StructInstance carries reference semantics: it is always stored and
// passed around as *StructInstance, so aliasing two variables to the same
// instance (spec.md §3 invariant) falls out of ordinary Go pointer and map
// sharing rather than needing an extra indirection layer.
type StructInstance struct {
	TypeName string
	fields   map[string]Value
	order    []string
}

// NewStructInstance builds a struct instance with fields pre-populated in
// declaration order (order matters for nothing semantic here, but keeping
// it lets Fields() and debugging output be deterministic).
func NewStructInstance(typeName string, order []string, fields map[string]Value) *StructInstance {
	return &StructInstance{TypeName: typeName, fields: fields, order: order}
}

func (s *StructInstance) Type() string   { return s.TypeName }
func (s *StructInstance) String() string { return "nil" } // see DESIGN.md open question 2 / spec.md §9: unspecified for non-nil instances, and "nil" is always the struct's own null rendering.

// Field reads a declared field. ok is false only for an undeclared name;
// the caller (evaluator) distinguishes "undeclared" (name error) from
// "declared but currently nil" (a legitimate Value read).
func (s *StructInstance) Field(name string) (Value, bool) {
	v, ok := s.fields[name]
	return v, ok
}

// SetField mutates a declared field in place; every alias of this instance
// observes the change immediately, satisfying spec.md §3's reference-
// semantics invariant.
func (s *StructInstance) SetField(name string, v Value) bool {
	if _, ok := s.fields[name]; !ok {
		return false
	}
	s.fields[name] = v
	return true
}

// FieldOrder returns field names in declaration order.
func (s *StructInstance) FieldOrder() []string { return append([]string(nil), s.order...) }

// Thunk is a call-by-need parameter binding (v4, spec.md §3/§4.6): an
// unevaluated expression, the environment snapshot captured at call time,
// and a once-only memoization cell.
type Thunk struct {
	Expr    element.Element
	Capture CapturedScope
	forced  bool
	memo    Value
}

// NewThunk wraps expr with its by-value capture snapshot, unforced.
func NewThunk(expr element.Element, capture CapturedScope) *Thunk {
	return &Thunk{Expr: expr, Capture: capture}
}

func (t *Thunk) Type() string   { return "thunk" }
func (t *Thunk) String() string { return "<thunk>" }

// Forced reports whether this thunk has already been forced, and if so its
// memoized value.
func (t *Thunk) Forced() (Value, bool) {
	if t.forced {
		return t.memo, true
	}
	return nil, false
}

// Memoize transitions the thunk's memo slot from empty to v exactly once
// (spec.md §3 invariant 4). Calling it twice is a programming error in the
// evaluator, not a user-triggerable one, so it panics rather than returning
// an error nobody is positioned to handle.
func (t *Thunk) Memoize(v Value) {
	if t.forced {
		panic("runtime: thunk memoized twice")
	}
	t.forced = true
	t.memo = v
}

// ExceptionValue is the in-flight payload of a Raise status (spec.md §3).
// Once a try/catch binds it to a name, the binding is a plain StringValue
// carrying the tag (spec.md §4.7) — ExceptionValue only exists while the
// Raise status is still propagating.
type ExceptionValue struct {
	Tag string
}

func (e *ExceptionValue) Type() string   { return "exception" }
func (e *ExceptionValue) String() string { return e.Tag }
