package builtins

import (
	"strings"
	"testing"

	"github.com/dinothaurs/cs131interpretor/internal/interp/host"
	"github.com/dinothaurs/cs131interpretor/internal/interp/runtime"
)

func TestPrintConcatenatesAndRendersTypes(t *testing.T) {
	var out strings.Builder
	h := host.NewStd(&out, strings.NewReader(""))

	v, err := Print(h, []runtime.Value{runtime.StringValue("n="), runtime.IntValue(5), runtime.BoolValue(true), runtime.Nil})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != runtime.Nil {
		t.Fatalf("print must return Nil, got %v", v)
	}
	if out.String() != "n=5truenil\n" {
		t.Fatalf("unexpected output: %q", out.String())
	}
}

func TestInputIParsesInteger(t *testing.T) {
	var out strings.Builder
	h := host.NewStd(&out, strings.NewReader("42\n"))

	v, err := InputI(h, []runtime.Value{runtime.StringValue("n? ")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != runtime.IntValue(42) {
		t.Fatalf("expected 42, got %v", v)
	}
	if out.String() != "n? \n" {
		t.Fatalf("expected prompt to be printed as its own line, got %q", out.String())
	}
}

func TestInputIRejectsMalformedInput(t *testing.T) {
	h := host.NewStd(&strings.Builder{}, strings.NewReader("not-a-number\n"))

	if _, err := InputI(h, nil); err == nil {
		t.Fatalf("expected malformed integer input to error")
	}
}

func TestInputSReturnsRawLine(t *testing.T) {
	h := host.NewStd(&strings.Builder{}, strings.NewReader("hello world\n"))

	v, err := InputS(h, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != runtime.StringValue("hello world") {
		t.Fatalf("expected echoed line, got %v", v)
	}
}
