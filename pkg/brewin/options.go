package brewin

import (
	"io"
	"os"

	"github.com/dinothaurs/cs131interpretor/internal/dialect"
	"github.com/dinothaurs/cs131interpretor/internal/interp"
	"github.com/dinothaurs/cs131interpretor/internal/interp/host"
)

// Options configures an embedded Interpreter. It mirrors
// internal/interp.Options in everything but shape: here the host is split
// into GetStdout/GetStdin so an embedder never needs to import
// internal/interp/host just to satisfy the interface — brewin.New adapts
// the two into one host.Host internally.
type Options interface {
	// GetDialect returns the language dialect (spec.md §6.5).
	GetDialect() dialect.Dialect
	// GetMaxRecursionDepth returns the maximum activation-record depth,
	// or 0 to use the evaluator's default.
	GetMaxRecursionDepth() int
	// GetStdout returns where print() writes. Nil selects os.Stdout.
	GetStdout() io.Writer
	// GetStdin returns where inputi()/inputs() read from. Nil selects
	// os.Stdin.
	GetStdin() io.Reader
}

// adaptOptions bridges an Options (or nil) into internal/interp.Options.
func adaptOptions(opts Options) interp.Options {
	if opts == nil {
		return nil
	}
	return &optionsAdapter{opts: opts}
}

type optionsAdapter struct {
	opts Options
}

func (a *optionsAdapter) GetDialect() dialect.Dialect { return a.opts.GetDialect() }
func (a *optionsAdapter) GetMaxRecursionDepth() int   { return a.opts.GetMaxRecursionDepth() }
func (a *optionsAdapter) GetExternalHost() host.Host {
	out := a.opts.GetStdout()
	in := a.opts.GetStdin()
	if out == nil && in == nil {
		return nil
	}
	return host.NewStd(requireWriter(out), requireReader(in))
}

func requireWriter(w io.Writer) io.Writer {
	if w != nil {
		return w
	}
	return os.Stdout
}

func requireReader(r io.Reader) io.Reader {
	if r != nil {
		return r
	}
	return os.Stdin
}

// StaticOptions is a plain-value Options implementation, convenient for the
// CLI and for embedders that don't need per-call configuration logic.
type StaticOptions struct {
	Dialect           dialect.Dialect
	MaxRecursionDepth int
	Stdout            io.Writer
	Stdin             io.Reader
}

func (o StaticOptions) GetDialect() dialect.Dialect { return o.Dialect }
func (o StaticOptions) GetMaxRecursionDepth() int   { return o.MaxRecursionDepth }
func (o StaticOptions) GetStdout() io.Writer        { return o.Stdout }
func (o StaticOptions) GetStdin() io.Reader         { return o.Stdin }
