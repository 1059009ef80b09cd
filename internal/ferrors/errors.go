/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package ferrors gives every failure path in the gateway a numeric code,
// the same way an HTTP status does, so callers can branch on error kind
// without string matching while still getting a human message and a
// wrapped cause for logging.
package ferrors

import "fmt"

// Code classifies an error by the handling policy it implies.
type Code uint16

const (
	// CodeUnknown is the zero value: no classification was assigned.
	CodeUnknown Code = iota
	// CodeConfig covers a missing file or a missing/typed-wrong field.
	// Policy: fatal at startup.
	CodeConfig
	// CodeBind covers bind failure, audit file unopenable, socket create.
	// Policy: fatal at startup.
	CodeBind
	// CodeDecode covers wrong packet size or a bad nibble.
	// Policy: drop the packet, warn, continue.
	CodeDecode
	// CodeIO covers transient receive/send failures.
	// Policy: treat as no-op, continue.
	CodeIO
	// CodeHTTP covers a malformed HTTP request.
	// Policy: 400 response, continue.
	CodeHTTP
)

func (c Code) String() string {
	switch c {
	case CodeConfig:
		return "config"
	case CodeBind:
		return "bind"
	case CodeDecode:
		return "decode"
	case CodeIO:
		return "io"
	case CodeHTTP:
		return "http"
	default:
		return "unknown"
	}
}

// Error is a code-carrying error with an optional wrapped cause.
type Error struct {
	code  Code
	msg   string
	cause error
}

// New builds an Error with the given code and message, with no cause.
func New(code Code, msg string) *Error {
	return &Error{code: code, msg: msg}
}

// Wrap builds an Error with the given code and message, wrapping cause.
// If cause is nil, the result behaves exactly like New.
func Wrap(code Code, msg string, cause error) *Error {
	return &Error{code: code, msg: msg, cause: cause}
}

// Code returns the classification of this error.
func (e *Error) Code() Code {
	if e == nil {
		return CodeUnknown
	}
	return e.code
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.code, e.msg, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.code, e.msg)
}

// Unwrap exposes the wrapped cause to errors.Is / errors.As.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// Is reports whether target is a *Error carrying the same code, so
// sentinel-less comparisons like errors.Is(err, ferrors.New(CodeDecode, ""))
// work on code alone.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.code == t.code
}
