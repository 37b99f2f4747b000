// Package dialect encodes the Brewin v1-v4 feature matrix as a small set
// of flags, so the evaluator asks a config value instead of branching on a
// version number scattered through the codebase.
package dialect

// Dialect is a bundle of feature flags consulted at the exact points named
// in SPEC_FULL.md §C.6. Nothing in the evaluator hard-codes a version
// comparison; it only ever asks "is this flag set".
type Dialect struct {
	Name string

	// TypedVars enables declared-type checking on vardef/assign/params and
	// the Int->Bool coercion rules. v3 only. Struct definitions and `new`
	// are not gated by this flag; they are accepted under every dialect.
	TypedVars bool

	// ReturnTypeCheck enables the return-type enforcement and conversion
	// rules of §4.5. v3 only.
	ReturnTypeCheck bool

	// LazyParams switches Call Machinery to call-by-need thunk binding
	// (§4.5/§4.6) instead of eager by-value binding. v4 only.
	LazyParams bool

	// ShortCircuit makes && and || skip the right operand once the left
	// determines the result (§4.3). v4 only; v3 evaluates both operands.
	ShortCircuit bool

	// Exceptions enables try/catch/raise dispatch (§4.4/§4.7). v4 only.
	Exceptions bool

	// DivZeroRaises makes integer division by zero a catchable "div0"
	// exception instead of a fatal FAULT_ERROR (§6.5). v4 only.
	DivZeroRaises bool
}

// V1 is the bare dialect: untyped variables, no exceptions, eager
// left-to-right evaluation throughout.
var V1 = Dialect{Name: "v1"}

// V2 adds nothing the evaluator needs to branch on beyond V1 at this
// interpreter's scope; it exists as a named rung in the dialect ladder so
// --dialect=v2 is accepted and documented rather than silently aliased.
var V2 = Dialect{Name: "v2"}

// V3 adds typed variables, structs, and return-type enforcement.
var V3 = Dialect{
	Name:            "v3",
	TypedVars:       true,
	ReturnTypeCheck: true,
}

// V4 trades v3's static typing back out for call-by-need parameters,
// short-circuit logicals, and try/raise/catch: variables are untyped again
// and there is no Int->Bool coercion, matching the feature matrix rather
// than accumulating every earlier dialect's flags.
var V4 = Dialect{
	Name:          "v4",
	LazyParams:    true,
	ShortCircuit:  true,
	Exceptions:    true,
	DivZeroRaises: true,
}

// ByName resolves a dialect by its CLI/config spelling.
func ByName(name string) (Dialect, bool) {
	switch name {
	case "v1":
		return V1, true
	case "v2":
		return V2, true
	case "v3":
		return V3, true
	case "v4":
		return V4, true
	default:
		return Dialect{}, false
	}
}
