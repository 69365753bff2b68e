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
	"sync"
	"sync/atomic"
	"time"

	"github.com/nabbar/netreactor/logger"
	"github.com/nabbar/netreactor/netutil"
	"github.com/nabbar/netreactor/poller"
)

// pollTimeout bounds every call into the notifier; it is not a sleep, merely the
// cadence at which the loop re-checks its quit flag when nothing else wakes it.
const pollTimeout = 10 * time.Second

// Loop is a single-threaded reactor: it owns a notifier, a fixed set of channels
// registered with that notifier, and a cross-thread task queue. Every field below
// is mutated only by the goroutine that called Run, except pending (guarded by
// mu) and the atomic flags.
type Loop struct {
	log logger.Logger

	owner netutil.CurrentThread
	poll  poller.Poller

	wakeRead  int
	wakeWrite int
	wakeChan  *Channel

	active []poller.Channel

	quit    atomic.Int32
	running atomic.Int32

	mu             sync.Mutex
	pending        []func()
	callingPending bool
}

// New constructs a loop bound to the calling goroutine; the caller is expected to
// immediately call Run from that same goroutine (the "constructed and destroyed on
// the same thread that calls loop()" invariant).
func New(log logger.Logger) (*Loop, error) {
	p, err := poller.New()
	if err != nil {
		return nil, err
	}

	rd, wr, werr := newWakeDescriptor()
	if werr != nil {
		return nil, werr
	}

	l := &Loop{
		log:       log,
		owner:     netutil.NewCurrentThread(),
		poll:      p,
		wakeRead:  rd,
		wakeWrite: wr,
	}

	l.wakeChan = NewChannel(l, rd)
	l.wakeChan.SetReadCallback(func(time.Time) {
		if err := wakeDrain(l.wakeRead); err != nil && l.log != nil {
			l.log.Warning("error draining loop wake descriptor", err)
		}
	})
	l.wakeChan.EnableReading()

	return l, nil
}

// IsInLoopThread reports whether the calling goroutine is this loop's owner.
func (l *Loop) IsInLoopThread() bool {
	return l.owner.IsCurrent()
}

func (l *Loop) assertInLoopThread() {
	if !l.IsInLoopThread() && l.log != nil {
		l.log.Panic("loop mutated from a goroutine that does not own it", ErrorWrongThread)
	}
}

// Run executes iterations until Quit is observed: clear the active list, poll
// with a bounded timeout, dispatch handleEvent on every ready channel in the
// order the notifier returned them, then drain pending tasks.
func (l *Loop) Run() {
	l.assertInLoopThread()
	l.running.Store(1)
	defer l.running.Store(0)

	for l.quit.Load() == 0 {
		l.active = l.active[:0]

		ts, active, err := l.poll.Poll(pollTimeout, l.active)
		if err != nil {
			if l.log != nil {
				l.log.Error("readiness wait failed", err)
			}
			continue
		}
		l.active = active

		for _, ch := range l.active {
			if c, ok := ch.(*Channel); ok {
				c.handleEvent(ts)
			}
		}

		l.doPendingFunctors()
	}
}

// Quit requests the loop to stop. Safe to call from any goroutine; if called off
// the loop's own thread it wakes the loop so the flag is observed promptly.
func (l *Loop) Quit() {
	l.quit.Store(1)
	if !l.IsInLoopThread() {
		l.wakeup()
	}
}

// RunInLoop runs f synchronously if called on the loop's own thread, else defers
// it via QueueInLoop.
func (l *Loop) RunInLoop(f func()) {
	if l.IsInLoopThread() {
		f()
	} else {
		l.QueueInLoop(f)
	}
}

// QueueInLoop appends f to the pending-task queue and wakes the loop unless the
// calling thread is the loop's own and the loop is not currently draining pending
// tasks — avoiding a wasted wakeup for same-thread enqueues while still waking
// when a running task enqueues more tasks the current drain snapshot would miss.
func (l *Loop) QueueInLoop(f func()) {
	l.mu.Lock()
	l.pending = append(l.pending, f)
	calling := l.callingPending
	l.mu.Unlock()

	if !l.IsInLoopThread() || calling {
		l.wakeup()
	}
}

func (l *Loop) wakeup() {
	if err := wakeWrite(l.wakeWrite); err != nil && l.log != nil {
		l.log.Warning("error waking loop", err)
	}
}

// doPendingFunctors swaps the pending queue with a local slice under the mutex and
// runs every task outside the mutex, so a task may itself call QueueInLoop.
func (l *Loop) doPendingFunctors() {
	l.mu.Lock()
	l.callingPending = true
	tasks := l.pending
	l.pending = nil
	l.mu.Unlock()

	for _, f := range tasks {
		f()
	}

	l.mu.Lock()
	l.callingPending = false
	l.mu.Unlock()
}

func (l *Loop) updateChannel(ch *Channel) {
	l.assertInLoopThread()
	if err := l.poll.UpdateChannel(ch); err != nil && l.log != nil {
		l.log.Error("error updating channel with notifier", err)
	}
}

func (l *Loop) removeChannel(ch *Channel) {
	l.assertInLoopThread()
	if err := l.poll.RemoveChannel(ch); err != nil && l.log != nil {
		l.log.Error("error removing channel from notifier", err)
	}
}
