// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package errors provides helpers for reporting errors that
// are logged rather than returned, which is how the models report
// caller misuse from inside event callbacks. It also re-exports the
// standard library functions so that callers only need one import.
package errors

import (
	"errors"
	"log/slog"
	"runtime"
	"strconv"
)

// New is the standard [errors.New].
func New(text string) error { return errors.New(text) }

// Is is the standard [errors.Is].
func Is(err, target error) bool { return errors.Is(err, target) }

// As is the standard [errors.As].
func As(err error, target any) bool { return errors.As(err, target) }

// Join is the standard [errors.Join].
func Join(errs ...error) error { return errors.Join(errs...) }

// Log takes the given error and logs it if it is non-nil.
// The intended usage is:
//
//	errors.Log(MyFunc(v))
//	// or
//	return errors.Log(MyFunc(v))
func Log(err error) error {
	if err != nil {
		slog.Error(err.Error() + " | " + callerInfo())
	}
	return err
}

// Log1 takes the given value and error and returns the value if
// the error is nil, and logs the error and returns a zero value
// if the error is non-nil. The intended usage is:
//
//	a := errors.Log1(MyFunc(v))
func Log1[T any](v T, err error) T {
	if err != nil {
		slog.Error(err.Error() + " | " + callerInfo())
	}
	return v
}

// Ignore1 returns the given value, ignoring the error.
func Ignore1[T any](v T, err error) T {
	return v
}

// Must takes the given error and panics if it is non-nil.
func Must(err error) {
	if err != nil {
		panic(err)
	}
}

// Must1 takes the given value and error and returns the value if
// the error is nil, and panics if the error is non-nil.
func Must1[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// Precondition logs a failed precondition of the named operation.
// It always returns false so that guard clauses can be written as
//
//	if !valid {
//		return errors.Precondition("liststore.Remove", "invalid iterator")
//	}
//
// in functions that report success with a bool.
func Precondition(op, msg string, args ...any) bool {
	slog.Error(op+": "+msg, args...)
	return false
}

// callerInfo returns string information about the caller
// of the function that called callerInfo.
func callerInfo() string {
	pc, file, line, _ := runtime.Caller(2)
	return runtime.FuncForPC(pc).Name() + " " + file + ":" + strconv.Itoa(line)
}
