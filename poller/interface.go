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

// Package poller implements the readiness notifier abstraction: a thin, swappable
// layer over epoll(7) or poll(2) that reports which registered channels are ready
// and for what, without knowing anything about sockets, buffers or connections.
package poller

import (
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// Event bitmasks reuse the poll(2)/epoll(7) numeric values directly: on Linux
// EPOLLIN/EPOLLOUT/EPOLLERR/EPOLLHUP/EPOLLPRI are defined to equal their POLLxxx
// counterparts, so a Channel's interest and returned-event masks are meaningful
// unchanged to either backend.
const (
	EventReadable uint32 = unix.POLLIN
	EventUrgent   uint32 = unix.POLLPRI
	EventWritable uint32 = unix.POLLOUT
	EventError    uint32 = unix.POLLERR
	EventHangup   uint32 = unix.POLLHUP
)

// Channel is the slice of reactor.Channel the notifier needs to track readiness:
// its fd, its current interest mask, a place to stash the events a poll returned,
// and a backend-private index slot (epoll keeps the channel's membership state
// there; the poll backend keeps the channel's position in its pollfd array, to
// avoid a linear fd search on update).
type Channel interface {
	Fd() int
	Events() uint32
	SetRevents(events uint32)
	Index() int
	SetIndex(index int)
}

// Poller waits for readiness on its registered channels and tracks channel
// membership so repeated updates are cheap.
type Poller interface {
	// Poll blocks for up to timeout for at least one ready channel, appending each
	// ready channel (with its Revents populated) to active, and returns the
	// timestamp of the call's return.
	Poll(timeout time.Duration, active []Channel) (time.Time, []Channel, error)

	// UpdateChannel registers a new channel or applies an interest-mask change for
	// one already registered; a channel whose interest becomes empty is removed
	// from the underlying backend but not forgotten by the poller (it may be
	// re-armed later).
	UpdateChannel(ch Channel) error

	// RemoveChannel forgets a channel entirely.
	RemoveChannel(ch Channel) error
}

// usePoll reports whether the portable poll(2) backend was requested via
// NETREACTOR_USE_POLL.
func usePoll() bool {
	return os.Getenv("NETREACTOR_USE_POLL") != ""
}

// New selects and constructs the platform readiness notifier: epoll by default on
// Linux, or the portable poll(2) backend when NETREACTOR_USE_POLL is set.
func New() (Poller, error) {
	if usePoll() {
		return newPollPoller()
	}
	return newEpollPoller()
}
