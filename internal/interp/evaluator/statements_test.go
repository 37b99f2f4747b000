package evaluator

import (
	"testing"

	"github.com/dinothaurs/cs131interpretor/internal/dialect"
	ierrors "github.com/dinothaurs/cs131interpretor/internal/interp/errors"
	"github.com/dinothaurs/cs131interpretor/pkg/element"
)

func TestFactorialRecursion(t *testing.T) {
	fact := element.Func("fact", []element.Element{element.VarDef("n", "int")}, "int", []element.Element{
		element.If(element.Binary("<=", element.Var("n"), element.IntLit(1)),
			[]element.Element{element.Return(element.IntLit(1))}, nil),
		element.Return(element.Binary("*", element.Var("n"),
			element.Call("fact", element.Binary("-", element.Var("n"), element.IntLit(1))))),
	})
	h, err := runProgram(t, dialect.V3, []element.Element{
		fact,
		element.Func("main", nil, "void", []element.Element{
			element.Call("print", element.Call("fact", element.IntLit(5))),
		}),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantLines(t, h, "120")
}

func TestForLoopRunsInitCondUpdate(t *testing.T) {
	h, err := runProgram(t, dialect.V3, mainWith(
		element.VarDef("i", "int"),
		element.For(
			element.Assign("i", element.IntLit(0)),
			element.Binary("<", element.Var("i"), element.IntLit(3)),
			element.Assign("i", element.Binary("+", element.Var("i"), element.IntLit(1))),
			[]element.Element{element.Call("print", element.Var("i"))},
		),
	))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantLines(t, h, "0", "1", "2")
}

func TestReturnInsideLoopUnwindsToCaller(t *testing.T) {
	find := element.Func("find", nil, "int", []element.Element{
		element.VarDef("i", "int"),
		element.For(
			element.Assign("i", element.IntLit(0)),
			element.Binary("<", element.Var("i"), element.IntLit(10)),
			element.Assign("i", element.Binary("+", element.Var("i"), element.IntLit(1))),
			[]element.Element{
				element.If(element.Binary("==", element.Var("i"), element.IntLit(4)),
					[]element.Element{element.Return(element.Var("i"))}, nil),
			},
		),
		element.Return(element.Neg(element.IntLit(1))),
	})
	h, err := runProgram(t, dialect.V3, []element.Element{
		find,
		element.Func("main", nil, "void", []element.Element{
			element.Call("print", element.Call("find")),
		}),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantLines(t, h, "4")
}

func TestBlockScopeShadowingAndPop(t *testing.T) {
	h, err := runProgram(t, dialect.V3, mainWith(
		element.VarDef("x", "int"),
		element.Assign("x", element.IntLit(1)),
		element.If(element.BoolLit(true), []element.Element{
			element.VarDef("x", "int"),
			element.Assign("x", element.IntLit(2)),
			element.Call("print", element.Var("x")),
		}, nil),
		element.Call("print", element.Var("x")),
	))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantLines(t, h, "2", "1")
}

func TestFallThroughReturnsDeclaredZeroValue(t *testing.T) {
	h, err := runProgram(t, dialect.V3, []element.Element{
		element.Func("noret_int", nil, "int", nil),
		element.Func("noret_str", nil, "string", nil),
		element.Func("noret_bool", nil, "bool", nil),
		element.Func("main", nil, "void", []element.Element{
			element.Call("print", element.Call("noret_int")),
			element.Call("print", element.Call("noret_str")),
			element.Call("print", element.Call("noret_bool")),
		}),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantLines(t, h, "0", "", "false")
}

func TestNilReturnFromStructFunctionStaysNil(t *testing.T) {
	h, err := runProgram(t, dialect.V3, []element.Element{
		element.StructDef("s", []element.Element{element.Field("a", "int")}),
		element.Func("make_nothing", nil, "s", []element.Element{
			element.Return(element.NilLit()),
		}),
		element.Func("main", nil, "void", []element.Element{
			element.Call("print", element.Call("make_nothing")),
		}),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantLines(t, h, "nil")
}

func TestVoidFunctionInExpressionPositionIsTypeError(t *testing.T) {
	_, err := runProgram(t, dialect.V3, []element.Element{
		element.Func("shout", nil, "void", []element.Element{
			element.Call("print", element.StringLit("hi")),
		}),
		element.Func("main", nil, "void", []element.Element{
			element.Call("print", element.Call("shout")),
		}),
	})
	wantErrKind(t, err, ierrors.TypeError)
}

func TestVoidFunctionInStatementPositionIsFine(t *testing.T) {
	h, err := runProgram(t, dialect.V3, []element.Element{
		element.Func("shout", nil, "void", []element.Element{
			element.Call("print", element.StringLit("hi")),
		}),
		element.Func("main", nil, "void", []element.Element{
			element.Call("shout"),
		}),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantLines(t, h, "hi")
}

func TestWrongReturnTypeIsTypeError(t *testing.T) {
	_, err := runProgram(t, dialect.V3, []element.Element{
		element.Func("f", nil, "int", []element.Element{
			element.Return(element.StringLit("not an int")),
		}),
		element.Func("main", nil, "void", []element.Element{
			element.Call("print", element.Call("f")),
		}),
	})
	wantErrKind(t, err, ierrors.TypeError)
}

func TestArityResolvesOverloadsAndMismatches(t *testing.T) {
	one := element.Func("f", []element.Element{element.VarDef("a", "int")}, "int", []element.Element{
		element.Return(element.IntLit(1)),
	})
	two := element.Func("f", []element.Element{element.VarDef("a", "int"), element.VarDef("b", "int")}, "int", []element.Element{
		element.Return(element.IntLit(2)),
	})

	h, err := runProgram(t, dialect.V3, []element.Element{
		one, two,
		element.Func("main", nil, "void", []element.Element{
			element.Call("print", element.Call("f", element.IntLit(0))),
			element.Call("print", element.Call("f", element.IntLit(0), element.IntLit(0))),
		}),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantLines(t, h, "1", "2")

	_, err = runProgram(t, dialect.V3, []element.Element{
		one,
		element.Func("main", nil, "void", []element.Element{
			element.Call("f", element.IntLit(0), element.IntLit(0), element.IntLit(0)),
		}),
	})
	wantErrKind(t, err, ierrors.NameError)
}

func TestUndefinedFunctionIsNameError(t *testing.T) {
	_, err := runProgram(t, dialect.V1, mainWith(
		element.Call("nope"),
	))
	wantErrKind(t, err, ierrors.NameError)
}

func TestRunawayRecursionFaults(t *testing.T) {
	_, err := runProgram(t, dialect.V3, []element.Element{
		element.Func("spin", nil, "void", []element.Element{
			element.Call("spin"),
		}),
		element.Func("main", nil, "void", []element.Element{
			element.Call("spin"),
		}),
	})
	wantErrKind(t, err, ierrors.FaultError)
}

func TestTryCatchHandlesMatchingTag(t *testing.T) {
	h, err := runProgram(t, dialect.V4, mainWith(
		element.Try(
			[]element.Element{element.Raise(element.StringLit("oops"))},
			[]element.Element{element.Catch("oops", []element.Element{
				element.Call("print", element.StringLit("caught")),
			})},
		),
		element.Call("print", element.StringLit("after")),
	))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantLines(t, h, "caught", "after")
}

func TestCatcherSelectionByTag(t *testing.T) {
	h, err := runProgram(t, dialect.V4, mainWith(
		element.Try(
			[]element.Element{element.Raise(element.StringLit("b"))},
			[]element.Element{
				element.Catch("a", []element.Element{element.Call("print", element.StringLit("wrong"))}),
				element.Catch("b", []element.Element{element.Call("print", element.StringLit("right"))}),
			},
		),
	))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantLines(t, h, "right")
}

func TestCatcherBindsTagToItsOwnName(t *testing.T) {
	h, err := runProgram(t, dialect.V4, mainWith(
		element.Try(
			[]element.Element{element.Raise(element.StringLit("oops"))},
			[]element.Element{element.Catch("oops", []element.Element{
				element.Call("print", element.Var("oops")),
			})},
		),
	))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantLines(t, h, "oops")
}

func TestUnmatchedRaisePropagatesThroughCalls(t *testing.T) {
	h, err := runProgram(t, dialect.V4, []element.Element{
		element.Func("deep", nil, "void", []element.Element{
			element.Raise(element.StringLit("inner")),
		}),
		element.Func("mid", nil, "void", []element.Element{
			element.Try(
				[]element.Element{element.Call("deep")},
				[]element.Element{element.Catch("other", []element.Element{
					element.Call("print", element.StringLit("wrong handler")),
				})},
			),
		}),
		element.Func("main", nil, "void", []element.Element{
			element.Try(
				[]element.Element{element.Call("mid")},
				[]element.Element{element.Catch("inner", []element.Element{
					element.Call("print", element.StringLit("outer caught")),
				})},
			),
		}),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantLines(t, h, "outer caught")
}

func TestUncaughtRaiseEscapingMainIsFault(t *testing.T) {
	_, err := runProgram(t, dialect.V4, mainWith(
		element.Raise(element.StringLit("loose")),
	))
	wantErrKind(t, err, ierrors.FaultError)
}

func TestNonStringRaiseIsTypeError(t *testing.T) {
	_, err := runProgram(t, dialect.V4, mainWith(
		element.Raise(element.IntLit(3)),
	))
	wantErrKind(t, err, ierrors.TypeError)
}

func TestDivZeroRaisesCatchableTagUnderV4(t *testing.T) {
	h, err := runProgram(t, dialect.V4, mainWith(
		element.Try(
			[]element.Element{element.Call("print", element.Binary("/", element.IntLit(10), element.IntLit(0)))},
			[]element.Element{element.Catch("div0", []element.Element{
				element.Call("print", element.StringLit("zero")),
			})},
		),
	))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantLines(t, h, "zero")
}

func TestDivZeroIsFatalUnderV3(t *testing.T) {
	_, err := runProgram(t, dialect.V3, mainWith(
		element.Call("print", element.Binary("/", element.IntLit(10), element.IntLit(0))),
	))
	wantErrKind(t, err, ierrors.FaultError)
}

func TestLazyArgumentIsNeverForcedWhenUnused(t *testing.T) {
	h, err := runProgram(t, dialect.V4, []element.Element{
		element.Func("crash", nil, "int", []element.Element{
			element.Raise(element.StringLit("boom")),
		}),
		element.Func("f", []element.Element{element.VarDef("x", "int"), element.VarDef("y", "int")}, "int", []element.Element{
			element.Return(element.Var("x")),
		}),
		element.Func("main", nil, "void", []element.Element{
			element.Call("print", element.Call("f", element.IntLit(1), element.Call("crash"))),
		}),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantLines(t, h, "1")
}

func TestThunkForcedExactlyOnce(t *testing.T) {
	h, err := runProgram(t, dialect.V4, []element.Element{
		element.Func("side_effect", nil, "int", []element.Element{
			element.Call("print", element.StringLit("!")),
			element.Return(element.IntLit(3)),
		}),
		element.Func("f", []element.Element{element.VarDef("x", "int")}, "int", []element.Element{
			element.Return(element.Binary("+", element.Var("x"), element.Var("x"))),
		}),
		element.Func("main", nil, "void", []element.Element{
			element.Call("print", element.Call("f", element.Call("side_effect"))),
		}),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantLines(t, h, "!", "6")
}

func TestThunkSeesBindingsAsOfCaptureTime(t *testing.T) {
	// r is bound lazily to f(x) while x holds 1; reassigning x afterwards
	// must not leak into the capture when r is finally forced.
	h, err := runProgram(t, dialect.V4, []element.Element{
		element.Func("f", []element.Element{element.VarDef("y", "int")}, "int", []element.Element{
			element.Return(element.Var("y")),
		}),
		element.Func("main", nil, "void", []element.Element{
			element.VarDef("x", "int"),
			element.Assign("x", element.IntLit(1)),
			element.VarDef("r", "int"),
			element.Assign("r", element.Call("f", element.Var("x"))),
			element.Assign("x", element.IntLit(2)),
			element.Call("print", element.Var("r")),
			element.Call("print", element.Var("x")),
		}),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantLines(t, h, "1", "2")
}

func TestRaisingThunkReRaisesOnEveryForce(t *testing.T) {
	// A thunk whose evaluation raises is left un-memoized, so each force
	// runs the expression again and raises again.
	h, err := runProgram(t, dialect.V4, []element.Element{
		element.Func("crash", nil, "int", []element.Element{
			element.Call("print", element.StringLit("evaluating")),
			element.Raise(element.StringLit("boom")),
		}),
		element.Func("f", []element.Element{element.VarDef("x", "int")}, "void", []element.Element{
			element.Try(
				[]element.Element{element.Call("print", element.Var("x"))},
				[]element.Element{element.Catch("boom", []element.Element{
					element.Call("print", element.StringLit("first")),
				})},
			),
			element.Try(
				[]element.Element{element.Call("print", element.Var("x"))},
				[]element.Element{element.Catch("boom", []element.Element{
					element.Call("print", element.StringLit("second")),
				})},
			),
		}),
		element.Func("main", nil, "void", []element.Element{
			element.Call("f", element.Call("crash")),
		}),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantLines(t, h, "evaluating", "first", "evaluating", "second")
}

func TestRaiseDuringThunkForcePropagatesFromForcingSite(t *testing.T) {
	h, err := runProgram(t, dialect.V4, []element.Element{
		element.Func("crash", nil, "int", []element.Element{
			element.Raise(element.StringLit("late")),
		}),
		element.Func("f", []element.Element{element.VarDef("x", "int")}, "int", []element.Element{
			element.Return(element.Var("x")),
		}),
		element.Func("main", nil, "void", []element.Element{
			element.Try(
				[]element.Element{element.Call("print", element.Call("f", element.Call("crash")))},
				[]element.Element{element.Catch("late", []element.Element{
					element.Call("print", element.StringLit("deferred raise caught here")),
				})},
			),
		}),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantLines(t, h, "deferred raise caught here")
}

func TestRaiseOutsideExceptionDialectIsRejected(t *testing.T) {
	_, err := runProgram(t, dialect.V3, mainWith(
		element.Raise(element.StringLit("nope")),
	))
	wantErrKind(t, err, ierrors.NameError)
}

func TestInputBuiltinsRoundTrip(t *testing.T) {
	h := &captureHost{in: []string{"17", "hello"}}
	ev := New(h, Config{Dialect: dialect.V3})
	prog := mainWith(
		element.Call("print", element.Binary("+", element.Call("inputi"), element.IntLit(1))),
		element.Call("print", element.Call("inputs")),
	)
	if err := ev.LoadProgram(prog); err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := ev.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	wantLines(t, h, "18", "hello")
}
