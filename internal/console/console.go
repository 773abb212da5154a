// Package console carries the output sink and verbosity for one command
// invocation, so operations never touch process-global logging state.
package console

import (
	"fmt"
	"io"
	"os"
)

// Verbosity selects how much a Console prints.
type Verbosity int

const (
	Normal Verbosity = iota
	Verbose
)

// Console is passed into every operation. It is safe to construct over a
// bytes.Buffer in tests.
type Console struct {
	out       io.Writer
	errOut    io.Writer
	verbosity Verbosity
}

// New creates a Console writing regular output to out and warnings/errors
// to errOut.
func New(out, errOut io.Writer, verbosity Verbosity) *Console {
	return &Console{out: out, errOut: errOut, verbosity: verbosity}
}

// Default returns a Console bound to stdout/stderr.
func Default(verbose bool) *Console {
	v := Normal
	if verbose {
		v = Verbose
	}
	return New(os.Stdout, os.Stderr, v)
}

// Infof prints user-visible progress output.
func (c *Console) Infof(format string, args ...any) {
	fmt.Fprintf(c.out, format+"\n", args...)
}

// Debugf prints only when the console is verbose.
func (c *Console) Debugf(format string, args ...any) {
	if c.verbosity >= Verbose {
		fmt.Fprintf(c.out, format+"\n", args...)
	}
}

// Warnf reports a recoverable problem; the operation continues.
func (c *Console) Warnf(format string, args ...any) {
	fmt.Fprintf(c.errOut, "WARNING: "+format+"\n", args...)
}

// Errorf reports a failure that aborts the current item or command.
func (c *Console) Errorf(format string, args ...any) {
	fmt.Fprintf(c.errOut, "❌ "+format+"\n", args...)
}
