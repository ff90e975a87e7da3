// Package errors is a drop-in replacement for the standard errors package that annotates errors with the call
// site and [slog.Attr] so that the failure can be logged as structured data with [SlogError].
package errors

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
)

// maxStackDepth limits the frames captured by DecoratePanic.
const maxStackDepth = 32

// Is reports whether any error in err's tree matches target. See [errors.Is].
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target. See [errors.As].
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Unwrap returns the result of calling the Unwrap method on err. See [errors.Unwrap].
func Unwrap(err error) error {
	return errors.Unwrap(err)
}

// Join returns an error that wraps the given errors. See [errors.Join].
func Join(errs ...error) error {
	return errors.Join(errs...)
}

type sentinelError struct {
	msg string
}

func (e *sentinelError) Error() string {
	return e.msg
}

// NewSentinel creates an error without call site information. Use it for package level sentinel values that are
// compared with [Is].
func NewSentinel(msg string) error {
	return &sentinelError{msg: msg}
}

type annotatedError struct {
	msg   string
	err   error
	attrs []slog.Attr
	pc    uintptr
	stack []uintptr
}

func (e *annotatedError) Error() string {
	if e.err == nil {
		return e.msg
	}
	return e.msg + ": " + e.err.Error()
}

func (e *annotatedError) Unwrap() error {
	return e.err
}

func callerPC() uintptr {
	var pcs [1]uintptr
	// Skip runtime.Callers, callerPC and the exported constructor.
	runtime.Callers(3, pcs[:]) //nolint:mnd // see comment above
	return pcs[0]
}

// New creates an error annotated with the call site and the given attributes.
func New(msg string, attrs ...slog.Attr) error {
	return &annotatedError{msg: msg, err: nil, attrs: attrs, pc: callerPC(), stack: nil}
}

// Wrap annotates err with msg, the call site and the given attributes. Wrap returns nil if err is nil.
func Wrap(err error, msg string, attrs ...slog.Attr) error {
	if err == nil {
		return nil
	}
	return &annotatedError{msg: msg, err: err, attrs: attrs, pc: callerPC(), stack: nil}
}

// DecoratePanic converts a value returned by recover into an error carrying the stack of the panicking goroutine.
// It returns nil when v is nil.
func DecoratePanic(v any) error {
	if v == nil {
		return nil
	}
	pcs := make([]uintptr, maxStackDepth)
	n := runtime.Callers(2, pcs) //nolint:mnd // skip runtime.Callers and DecoratePanic
	cause, ok := v.(error)
	if !ok {
		cause = NewSentinel(fmt.Sprint(v))
	}
	return &annotatedError{msg: "panic", err: cause, attrs: nil, pc: 0, stack: pcs[:n]}
}

// SlogError converts err into an "error" group attribute containing the message, the innermost annotated call site,
// all annotations collected from the error chain and, for recovered panics, the stack trace.
func SlogError(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}

	var (
		attrs       []slog.Attr
		annotations []any
		source      string
		stack       string
	)
	attrs = append(attrs, slog.String("message", err.Error()))

	for current := err; current != nil; current = errors.Unwrap(current) {
		var ae *annotatedError
		if !errors.As(current, &ae) {
			break
		}
		for _, a := range ae.attrs {
			annotations = append(annotations, a)
		}
		if ae.pc != 0 {
			source = formatFrame(ae.pc)
		}
		if len(ae.stack) > 0 {
			stack = formatStack(ae.stack)
		}
		current = ae
	}

	if source != "" {
		attrs = append(attrs, slog.String("source", source))
	}
	if stack != "" {
		attrs = append(attrs, slog.String("stack", stack))
	}
	if len(annotations) > 0 {
		attrs = append(attrs, slog.Group("annotations", annotations...))
	}

	args := make([]any, 0, len(attrs))
	for _, a := range attrs {
		args = append(args, a)
	}
	return slog.Group("error", args...)
}

// formatFrame returns file:line of the frame. pc is a return address so the frame lookup goes through CallersFrames.
func formatFrame(pc uintptr) string {
	frame, _ := runtime.CallersFrames([]uintptr{pc}).Next()
	if frame.File == "" {
		return ""
	}
	return filepath.Base(frame.File) + ":" + strconv.Itoa(frame.Line)
}

func formatStack(pcs []uintptr) string {
	var sb strings.Builder
	frames := runtime.CallersFrames(pcs)
	for {
		frame, more := frames.Next()
		if !strings.HasPrefix(frame.Function, "runtime.") && !isOwnFrame(frame.File) && frame.File != "" {
			if sb.Len() > 0 {
				sb.WriteString(" ")
			}
			sb.WriteString(filepath.Base(frame.File) + ":" + strconv.Itoa(frame.Line))
		}
		if !more {
			break
		}
	}
	return sb.String()
}

func isOwnFrame(file string) bool {
	return filepath.Base(file) == "annotatederror.go"
}
