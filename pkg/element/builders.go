package element

// Builders construct Element trees directly, standing in for whatever real
// parser produces them. They are used by the bundled reference front end
// (internal/frontend/fromtext) and by every test in this module that needs
// a program without going through source text at all.
//
// Keys follow §6.2 of the interpreter's contract: "args", "op1", "op2",
// "condition", "statements", "else_statements", "init", "update", "name",
// "val", "var_type", "return_type", "fields", "catchers", "exception_type",
// "expression".

func IntLit(v int64) Element { return NewNode("int").Set("val", v) }

func StringLit(v string) Element { return NewNode("string").Set("val", v) }

func BoolLit(v bool) Element { return NewNode("bool").Set("val", v) }

func NilLit() Element { return NewNode("nil") }

// Var references a (possibly dotted, e.g. "a.b.c") variable path.
func Var(name string) Element { return NewNode("var").Set("name", name) }

// Call builds a function-call expression/statement node.
func Call(name string, args ...Element) Element {
	return NewNode("fcall").Set("name", name).Set("args", args)
}

// Neg and Not build the two unary operators.
func Neg(operand Element) Element { return NewNode("neg").Set("op1", operand) }
func Not(operand Element) Element { return NewNode("!").Set("op1", operand) }

// Binary builds a binary-operator node. op must be one of
// +  -  *  /  ==  !=  <  <=  >  >=  &&  ||
func Binary(op string, left, right Element) Element {
	return NewNode(op).Set("op1", left).Set("op2", right)
}

// NewStruct builds a `new T` instantiation expression.
func NewStruct(typeName string) Element { return NewNode("new").Set("name", typeName) }

// VarDef builds a `var x: T` declaration statement. The same node shape
// doubles as a formal-parameter descriptor inside Func's params list.
func VarDef(name, varType string) Element {
	return NewNode("vardef").Set("name", name).Set("var_type", varType)
}

// Assign builds an `lhs = expr` statement. name may be dotted.
func Assign(name string, val Element) Element {
	return NewNode("=").Set("name", name).Set("val", val)
}

// Return builds a return statement; pass nil for a bare `return;`.
func Return(val Element) Element {
	n := NewNode("return")
	if val != nil {
		n.Set("val", val)
	}
	return n
}

// If builds an if/else statement. elseStatements may be nil.
func If(condition Element, thenStatements, elseStatements []Element) Element {
	n := NewNode("if").Set("condition", condition).Set("statements", thenStatements)
	if elseStatements != nil {
		n.Set("else_statements", elseStatements)
	}
	return n
}

// For builds a C-style for loop. init and update may be nil.
func For(init, condition, update Element, body []Element) Element {
	n := NewNode("for").Set("condition", condition).Set("statements", body)
	if init != nil {
		n.Set("init", init)
	}
	if update != nil {
		n.Set("update", update)
	}
	return n
}

// Func builds a function definition. params is a list built with VarDef.
func Func(name string, params []Element, returnType string, body []Element) Element {
	return NewNode("func").
		Set("name", name).
		Set("args", params).
		Set("return_type", returnType).
		Set("statements", body)
}

// Field builds one struct field declaration, used inside StructDef's fields list.
func Field(name, varType string) Element {
	return NewNode("field").Set("name", name).Set("var_type", varType)
}

// StructDef builds a struct type definition.
func StructDef(name string, fields []Element) Element {
	return NewNode("struct").Set("name", name).Set("fields", fields)
}

// Try builds a try/catch statement. catchers is a list built with Catch.
func Try(body []Element, catchers []Element) Element {
	return NewNode("try").Set("statements", body).Set("catchers", catchers)
}

// Catch builds one catch arm, matching on exceptionType exactly.
func Catch(exceptionType string, body []Element) Element {
	return NewNode("catch").Set("exception_type", exceptionType).Set("statements", body)
}

// Raise builds a raise statement; expr must evaluate to a string tag.
func Raise(expr Element) Element {
	return NewNode("raise").Set("expression", expr)
}
