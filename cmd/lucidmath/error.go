package main

import (
	"log/slog"
	"strings"
)

var (
	ErrGiven    = NewError("invalid definition")
	ErrFailed   = NewError("formulas failed")
	ErrCompile  = NewError("compiling formula")
	ErrMismatch = NewError("inconsistent results")
)

// Error is a command error with attributes for structured logging.
type Error struct {
	msg   string
	err   error
	attrs []slog.Attr
}

func NewError(msg string) *Error {
	return &Error{msg: msg}
}

func (e *Error) Error() string {
	part := make([]string, 0, 2)
	if e.msg != "" {
		part = append(part, e.msg)
	}
	if e.err != nil {
		part = append(part, e.err.Error())
	}
	return strings.Join(part, ": ")
}

func (e *Error) Unwrap() error { return e.err }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.msg == e.msg
}

func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)
	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}
	if e.err != nil {
		attrs = append(attrs, slog.Any("cause", e.err))
	}
	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping err.
func (e *Error) Wrap(err error) *Error {
	return &Error{msg: e.msg, err: err, attrs: e.attrs}
}

// With creates a new Error with additional attributes.
func (e *Error) With(attrs ...slog.Attr) *Error {
	a := make([]slog.Attr, 0, len(e.attrs)+len(attrs))
	a = append(a, e.attrs...)
	a = append(a, attrs...)
	return &Error{msg: e.msg, err: e.err, attrs: a}
}
