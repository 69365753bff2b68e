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

package logger

// Logger is the facade every networking component is constructed with. A nil
// Logger is a valid value everywhere it's accepted and simply means "drop these
// messages" — callers check for nil before every call rather than this package
// handing back a no-op implementation.
type Logger interface {
	// Debug logs a low-level diagnostic, e.g. a retry about to be scheduled.
	Debug(message string, err error)

	// Info logs a state change with no impact on the caller's control flow.
	Info(message string, err error)

	// Warning logs a recovered error: the caller continues.
	Warning(message string, err error)

	// Error logs an error that aborted the current operation but not the process.
	Error(message string, err error)

	// Fatal logs an unrecoverable error and terminates the process (os.Exit).
	Fatal(message string, err error)

	// Panic logs an invariant violation and panics.
	Panic(message string, err error)

	// SetLevel changes the minimal level a message must have to be emitted.
	SetLevel(lvl Level)

	// GetLevel returns the minimal level a message must have to be emitted.
	GetLevel() Level

	// Clone returns an independent Logger sharing the same output and level.
	Clone() Logger
}
