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

package reactor

import (
	"runtime"

	"github.com/nabbar/netreactor/logger"
)

// LoopThread spawns one OS-locked goroutine, constructs a Loop on it, and
// publishes that loop back to the creator through a single-use rendezvous
// channel.
type LoopThread struct {
	log      logger.Logger
	initFunc func(*Loop)
	ready    chan *Loop
}

// NewLoopThread builds a loop-thread; initFunc, if non-nil, runs on the new
// loop's goroutine immediately after construction and before Run.
func NewLoopThread(log logger.Logger, initFunc func(*Loop)) *LoopThread {
	return &LoopThread{
		log:      log,
		initFunc: initFunc,
		ready:    make(chan *Loop, 1),
	}
}

// StartLoop spawns the OS thread and blocks until the new loop has been
// constructed and published, returning its pointer.
func (t *LoopThread) StartLoop() *Loop {
	go t.threadFunc()
	return <-t.ready
}

func (t *LoopThread) threadFunc() {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	l, err := New(t.log)
	if err != nil {
		if t.log != nil {
			t.log.Fatal("error constructing sub-loop", err)
		}
		t.ready <- nil
		return
	}

	if t.initFunc != nil {
		t.initFunc(l)
	}

	t.ready <- l
	l.Run()
}
