package runtime

import "fmt"

// FieldSchema is one (name, declared-type) pair within a struct definition.
type FieldSchema struct {
	Name     string
	TypeName string
}

// StructDef is the field schema for one user struct type (spec.md §3
// "struct schema"): an ordered sequence of (field_name, declared_type).
type StructDef struct {
	Name   string
	Fields []FieldSchema
}

// StructRegistry maps struct-type name to its field schema (spec.md §2,
// "Struct Registry"). It is populated once at program load and read many
// times during evaluation; there is no mutation after Define.
type StructRegistry struct {
	defs map[string]*StructDef
}

// NewStructRegistry returns an empty registry.
func NewStructRegistry() *StructRegistry {
	return &StructRegistry{defs: make(map[string]*StructDef)}
}

// Define interns a struct definition. Redefining a name is an error: the
// original Brewin AST never distinguishes "forward declaration" from
// "definition", so encountering the same name twice always means two
// conflicting `struct` blocks.
func (r *StructRegistry) Define(def *StructDef) error {
	if _, exists := r.defs[def.Name]; exists {
		return fmt.Errorf("struct %s already defined", def.Name)
	}
	r.defs[def.Name] = def
	return nil
}

// Lookup returns the schema for name, if any struct by that name was defined.
func (r *StructRegistry) Lookup(name string) (*StructDef, bool) {
	d, ok := r.defs[name]
	return d, ok
}

// IsKnownType reports whether name is int/string/bool or a declared struct
// type — the full set of valid type tags besides "void" (spec.md §3).
func (r *StructRegistry) IsKnownType(name string) bool {
	switch name {
	case "int", "string", "bool":
		return true
	}
	_, ok := r.defs[name]
	return ok
}

// ZeroValue materializes a zero-initialized instance of a primitive or
// struct type tag per spec.md §4.2: int->0, string->"", bool->false,
// struct-typed->Nil. Calling it with a declared struct type name returns
// Nil without allocating anything; only NewInstance allocates.
func (r *StructRegistry) ZeroValue(typeName string) (Value, error) {
	switch typeName {
	case "int":
		return IntValue(0), nil
	case "string":
		return StringValue(""), nil
	case "bool":
		return BoolValue(false), nil
	case "void":
		return Nil, nil
	}

	if _, ok := r.defs[typeName]; !ok {
		return nil, fmt.Errorf("unknown type: %s", typeName)
	}
	return Nil, nil
}

// NewInstance materializes a fresh *StructInstance for def with every
// field zero-initialized, implementing `new T` (spec.md §4.2). Nested
// struct-typed fields are zero-initialized to Nil, not to a recursively
// allocated instance — only `new` allocates.
func (r *StructRegistry) NewInstance(def *StructDef) (*StructInstance, error) {
	order := make([]string, 0, len(def.Fields))
	fields := make(map[string]Value, len(def.Fields))
	for _, f := range def.Fields {
		var zero Value
		if _, isStruct := r.defs[f.TypeName]; isStruct {
			zero = Nil
		} else {
			z, err := r.ZeroValue(f.TypeName)
			if err != nil {
				return nil, err
			}
			zero = z
		}
		fields[f.Name] = zero
		order = append(order, f.Name)
	}
	return NewStructInstance(def.Name, order, fields), nil
}
