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

// Package reactor implements the event loop core: the Channel/Loop/LoopThread/Pool
// quartet that every other component (acceptor, connector, tcp connection) is
// built on top of.
package reactor

import (
	"time"

	"github.com/nabbar/netreactor/poller"
)

// Resolver promotes a channel's weak tie to its owning connection. An ok of
// false means the tied object has already been destroyed and the event must
// be silently dropped.
type Resolver func() (tied interface{}, ok bool)

// Channel is inert data plus function pointers; it never owns the fd and never
// talks to the notifier directly — Update/Remove forward to the owning Loop,
// which forwards to its Poller.
type Channel struct {
	loop *Loop
	fd   int

	events  uint32
	revents uint32
	index   int

	tie        Resolver
	addedToTie bool

	readCallback  func(t time.Time)
	writeCallback func()
	closeCallback func()
	errorCallback func()
}

// NewChannel builds a channel for fd, owned by loop. It starts with no interest
// and in the "never registered" membership state.
func NewChannel(loop *Loop, fd int) *Channel {
	return &Channel{
		loop:  loop,
		fd:    fd,
		index: poller.StateNew,
	}
}

func (c *Channel) Fd() int            { return c.fd }
func (c *Channel) Events() uint32     { return c.events }
func (c *Channel) SetRevents(e uint32) { c.revents = e }
func (c *Channel) Index() int         { return c.index }
func (c *Channel) SetIndex(i int)     { c.index = i }

func (c *Channel) SetReadCallback(f func(t time.Time)) { c.readCallback = f }
func (c *Channel) SetWriteCallback(f func())           { c.writeCallback = f }
func (c *Channel) SetCloseCallback(f func())           { c.closeCallback = f }
func (c *Channel) SetErrorCallback(f func())           { c.errorCallback = f }

// Tie ties the channel to a shared object's resolver so handleEvent can detect it
// has already been destroyed and skip dispatch instead of touching freed state.
func (c *Channel) Tie(r Resolver) {
	c.tie = r
	c.addedToTie = true
}

func (c *Channel) IsNoneEvent() bool { return c.events == 0 }

func (c *Channel) EnableReading() {
	c.events |= poller.EventReadable | poller.EventUrgent
	c.update()
}

func (c *Channel) DisableReading() {
	c.events &^= poller.EventReadable | poller.EventUrgent
	c.update()
}

func (c *Channel) EnableWriting() {
	c.events |= poller.EventWritable
	c.update()
}

func (c *Channel) DisableWriting() {
	c.events &^= poller.EventWritable
	c.update()
}

func (c *Channel) DisableAll() {
	c.events = 0
	c.update()
}

func (c *Channel) IsWriting() bool {
	return c.events&poller.EventWritable != 0
}

func (c *Channel) IsReading() bool {
	return c.events&poller.EventReadable != 0
}

func (c *Channel) update() {
	c.loop.updateChannel(c)
}

// Remove unregisters the channel from its loop and notifier. The channel must
// have no active interest first.
func (c *Channel) Remove() {
	c.loop.removeChannel(c)
}

// handleEvent is the dispatch entry invoked by the loop for each channel a poll
// returned. Dispatch order is contractual: hangup-without-read surfaces as close,
// error surfaces next, then read (so a hangup observed together with pending
// readable data still delivers the data before the close), then write.
func (c *Channel) handleEvent(t time.Time) {
	if c.addedToTie {
		if c.tie == nil {
			return
		}
		if _, ok := c.tie(); !ok {
			return
		}
	}

	if c.revents&poller.EventHangup != 0 && c.revents&poller.EventReadable == 0 {
		if c.closeCallback != nil {
			c.closeCallback()
		}
		return
	}

	if c.revents&poller.EventError != 0 {
		if c.errorCallback != nil {
			c.errorCallback()
		}
	}

	if c.revents&(poller.EventReadable|poller.EventUrgent) != 0 {
		if c.readCallback != nil {
			c.readCallback(t)
		}
	}

	if c.revents&poller.EventWritable != 0 {
		if c.writeCallback != nil {
			c.writeCallback()
		}
	}
}
