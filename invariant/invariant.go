// Package invariant implements the fail-fast precondition check used by every
// fixedmem package.
//
// A failed check is a programmer error, not a runtime condition: the violation
// is logged and the goroutine panics with a *Violation. Callers are not
// expected to recover it outside of tests.
package invariant

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pavanmanishd/fixedmem/logging"
	"github.com/sirupsen/logrus"
)

const pkgPath = "github.com/pavanmanishd/fixedmem/invariant"

// Violation describes a failed precondition and the call site that checked it.
type Violation struct {
	Message string
	File    string
	Line    int
	Func    string
}

func (v *Violation) Error() string {
	return fmt.Sprintf("assertion failed (%s:%d %s): %s", v.File, v.Line, v.Func, v.Message)
}

// Assert panics with a *Violation when cond is false.
func Assert(cond bool, format string, args ...any) {
	if cond {
		return
	}
	fail(format, args...)
}

// Fail panics unconditionally with a *Violation.
func Fail(format string, args ...any) {
	fail(format, args...)
}

func fail(format string, args ...any) {
	v := &Violation{Message: format}
	if len(args) > 0 {
		v.Message = fmt.Sprintf(format, args...)
	}

	if f, ok := caller(); ok {
		v.File = filepath.Base(f.File)
		v.Line = f.Line
		name := f.Function
		if i := strings.LastIndexByte(name, '/'); i >= 0 {
			name = name[i+1:]
		}
		v.Func = name
	}

	logging.For("invariant").WithFields(logrus.Fields{
		"file": v.File,
		"line": v.Line,
		"func": v.Func,
	}).Error(v.Message)

	panic(v)
}

// caller returns the first frame outside of this package's entry points.
func caller() (runtime.Frame, bool) {
	var pcs [8]uintptr
	n := runtime.Callers(2, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])
	for {
		f, more := frames.Next()
		switch f.Function {
		case pkgPath + ".fail", pkgPath + ".Assert", pkgPath + ".Fail":
		default:
			return f, f.Function != ""
		}
		if !more {
			return runtime.Frame{}, false
		}
	}
}
