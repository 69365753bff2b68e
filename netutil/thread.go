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

package netutil

import (
	"bytes"
	"runtime"
	"strconv"
)

// ThreadID identifies the goroutine currently executing. Go has no public
// goroutine-id API; this uses the same trick as the logger package's
// stack-trace field (parse the "goroutine N [...]" header that runtime.Stack
// always emits first) rather than reaching for an unsafe/cgo shortcut.
type ThreadID uint64

// CurrentThreadID returns the id of the calling goroutine.
func CurrentThreadID() ThreadID {
	b := make([]byte, 64)
	b = b[:runtime.Stack(b, false)]
	b = bytes.TrimPrefix(b, []byte("goroutine "))
	b = b[:bytes.IndexByte(b, ' ')]

	n, _ := strconv.ParseUint(string(b), 10, 64)
	return ThreadID(n)
}

// CurrentThread records the goroutine id an event loop was constructed on, so the
// loop can cheaply assert every mutation of its own state happens on that goroutine.
type CurrentThread struct {
	id ThreadID
}

// NewCurrentThread captures the identity of the calling goroutine.
func NewCurrentThread() CurrentThread {
	return CurrentThread{id: CurrentThreadID()}
}

func (c CurrentThread) ID() ThreadID {
	return c.id
}

// IsCurrent reports whether the calling goroutine is the one that built this token.
func (c CurrentThread) IsCurrent() bool {
	return c.id == CurrentThreadID()
}
