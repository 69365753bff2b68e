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
 */

// Package errors gives every networking package its own numeric error space:
// register a MinPkgX offset in modules.go, declare codes as iota+MinPkgX, and
// wrap with CodeError.Error(parent). The result chains onto a parent error the
// way fmt.Errorf("%w", ...) does, but keeps the code queryable instead of
// burying it in a formatted string.
package errors

// Error extends error with a numeric code and a list of parent errors, so a
// low-level failure (a failed syscall) can be wrapped by a higher-level one
// (a named CodeError) without losing either.
type Error interface {
	error

	// IsCode reports whether this error's own code equals code.
	IsCode(code CodeError) bool
	// HasCode reports whether this error or any parent carries code.
	HasCode(code CodeError) bool
	// GetCode returns this error's own code.
	GetCode() CodeError

	// Is implements errors.Is: equal if trace, message or code line up.
	Is(e error) bool
	// IsError reports whether err's message matches this error's own message.
	IsError(err error) bool
	// HasError reports whether err's message matches this error or a parent.
	HasError(err error) bool
	// HasParent reports whether this error has at least one parent.
	HasParent() bool
	// GetParent returns every parent error, including this one when withSelf.
	GetParent(withSelf bool) []error

	// Add appends every non-nil error to this error's parent list.
	Add(parent ...error)
	// SetParent replaces the parent list wholesale.
	SetParent(parent ...error)

	// Code returns the numeric code as a plain uint16.
	Code() uint16

	// StringError returns this error's own message, ignoring parents.
	StringError() string

	// GetError returns a plain stdlib error carrying this error's own message.
	GetError() error

	// Unwrap exposes the parent list to errors.Is/errors.As.
	Unwrap() []error

	// GetTrace returns the "file#line" this error was constructed at.
	GetTrace() string
}
