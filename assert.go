package xmem

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"
)

// AssertionError describes a failed precondition. It is the panic value
// raised by Assert in checked builds.
type AssertionError struct {
	Expr string
	File string
	Func string
	Line int
}

func (e *AssertionError) Error() string {
	return fmt.Sprintf("xmem: failed assertion %q at %s:%d (%s)", e.Expr, e.File, e.Line, e.Func)
}

var (
	assertMu  sync.Mutex
	assertOut io.Writer = os.Stderr
)

// SetAssertOutput replaces the writer receiving assertion diagnostics and
// returns the previous one.
func SetAssertOutput(w io.Writer) io.Writer {
	assertMu.Lock()
	defer assertMu.Unlock()
	prev := assertOut
	if w == nil {
		w = io.Discard
	}
	assertOut = w
	return prev
}

// Checked reports whether precondition checks are compiled in.
func Checked() bool {
	return checked
}

// Assert verifies a documented precondition. When cond is false in a
// checked build, the failing expression, file, function and line are
// written to the assertion output and Assert panics with an
// *AssertionError. In builds tagged xmem_opt_unchecked the call compiles
// to nothing.
func Assert(cond bool, expr string) {
	//goland:noinspection ALL
	if checked && !cond {
		assertFailed(expr, 2)
	}
}

//go:noinline
func assertFailed(expr string, skip int) {
	e := &AssertionError{Expr: expr, File: "?", Func: "?"}
	if pc, file, line, ok := runtime.Caller(skip); ok {
		e.File, e.Line = file, line
		if fn := runtime.FuncForPC(pc); fn != nil {
			e.Func = fn.Name()
		}
	}

	assertMu.Lock()
	_, _ = fmt.Fprintf(assertOut,
		"\n***** Failed Assertion *****\nFailed expression: %s\nFile: %s\nFunc: %s\nLine: %d\n\n",
		e.Expr, e.File, e.Func, e.Line)
	assertMu.Unlock()

	panic(e)
}
