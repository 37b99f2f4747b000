package builtins

import (
	"strconv"
	"strings"

	ierrors "github.com/dinothaurs/cs131interpretor/internal/interp/errors"
	"github.com/dinothaurs/cs131interpretor/internal/interp/host"
	"github.com/dinothaurs/cs131interpretor/internal/interp/runtime"
)

// Print implements print(a1, a2, ...): concatenate each argument's printable
// rendering and write a single line. Booleans render true/false, Nil
// renders nil, non-nil struct rendering is implementation-defined (spec.md
// §9) — here it renders "nil" unconditionally via Value.String(), same as
// a nil struct, since StructInstance.String() never distinguishes the two
// (see runtime.StructInstance.String's doc comment).
func Print(h host.Host, args []runtime.Value) (runtime.Value, error) {
	var b strings.Builder
	for _, a := range args {
		b.WriteString(renderArg(a))
	}
	h.Print(b.String())
	return runtime.Nil, nil
}

func renderArg(v runtime.Value) string {
	if v == nil {
		return "nil"
	}
	return v.String()
}

// InputI implements inputi(prompt?): optional prompt, then reads one line
// and parses it as a signed integer. Malformed input is a type error.
func InputI(h host.Host, args []runtime.Value) (runtime.Value, error) {
	if len(args) > 1 {
		return nil, ierrors.NewName(ierrors.ErrMsgWrongArity, "inputi", 1, len(args))
	}
	if len(args) == 1 {
		h.Print(renderArg(args[0]))
	}
	line, err := h.ReadLine()
	if err != nil {
		return nil, ierrors.NewFault("inputi: %v", err)
	}
	n, perr := strconv.ParseInt(strings.TrimSpace(line), 10, 64)
	if perr != nil {
		return nil, ierrors.NewType(ierrors.ErrMsgMalformedInt, line)
	}
	return runtime.IntValue(n), nil
}

// InputS implements inputs(prompt?): optional prompt, then returns the raw
// input line verbatim as a string.
func InputS(h host.Host, args []runtime.Value) (runtime.Value, error) {
	if len(args) > 1 {
		return nil, ierrors.NewName(ierrors.ErrMsgWrongArity, "inputs", 1, len(args))
	}
	if len(args) == 1 {
		h.Print(renderArg(args[0]))
	}
	line, err := h.ReadLine()
	if err != nil {
		return nil, ierrors.NewFault("inputs: %v", err)
	}
	return runtime.StringValue(line), nil
}
