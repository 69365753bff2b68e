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

// Package tcpconn implements the per-connection state machine shared by both the
// server and client sides: buffered, non-blocking read/write over a single
// accepted or connected socket.
package tcpconn

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sys/unix"

	"github.com/nabbar/netreactor/buffer"
	"github.com/nabbar/netreactor/duration"
	"github.com/nabbar/netreactor/logger"
	"github.com/nabbar/netreactor/netutil"
	"github.com/nabbar/netreactor/reactor"
)

type State int32

const (
	StateConnecting State = iota
	StateConnected
	StateDisconnecting
	StateDisconnected
)

const DefaultHighWaterMark = 64 * 1024 * 1024

type (
	ConnectionFunc     func(c *Conn)
	MessageFunc        func(c *Conn, in *buffer.Buffer, t time.Time)
	WriteCompleteFunc  func(c *Conn)
	HighWaterMarkFunc  func(c *Conn, bytesQueued int)
	CloseFunc          func(c *Conn)
)

// Conn is a single TCP connection's buffered read/write state machine. Every
// field below is touched only on the owning loop's goroutine, except the
// atomics (state and lastActivity are also read from other goroutines, and
// Send updates lastActivity from its caller's goroutine) and the Context map,
// which has its own lock.
type Conn struct {
	log  logger.Logger
	loop *reactor.Loop
	name string
	cid  uuid.UUID

	sock *netutil.Socket
	ch   *reactor.Channel

	local netutil.InetAddress
	peer  netutil.InetAddress

	state atomic.Int32
	alive atomic.Bool
	fault bool

	lastActivity atomic.Int64

	in  *buffer.Buffer
	out *buffer.Buffer

	highWaterMark int

	onConnection    ConnectionFunc
	onMessage       MessageFunc
	onWriteComplete WriteCompleteFunc
	onHighWaterMark HighWaterMarkFunc
	closeCallback   CloseFunc

	ctxMu sync.RWMutex
	ctx   map[string]interface{}
}

// New builds a connection wrapping sock, owned by loop. The connection starts in
// the connecting state; the caller must call ConnectEstablished once it has
// finished wiring user callbacks.
func New(log logger.Logger, loop *reactor.Loop, name string, sock *netutil.Socket, local, peer netutil.InetAddress) *Conn {
	c := &Conn{
		log:           log,
		loop:          loop,
		name:          name,
		cid:           uuid.New(),
		sock:          sock,
		local:         local,
		peer:          peer,
		in:            buffer.New(),
		out:           buffer.New(),
		highWaterMark: DefaultHighWaterMark,
		ctx:           make(map[string]interface{}),
	}
	c.state.Store(int32(StateConnecting))
	c.lastActivity.Store(time.Now().UnixNano())

	c.ch = reactor.NewChannel(loop, sock.Fd())
	c.ch.SetReadCallback(c.handleRead)
	c.ch.SetWriteCallback(c.handleWrite)
	c.ch.SetCloseCallback(c.handleClose)
	c.ch.SetErrorCallback(c.handleError)

	return c
}

func (c *Conn) Name() string { return c.name }

// Cid is a correlation id, distinct from the human-readable connection Name,
// attached to every log line this connection emits so the lines from one
// connection can be grepped out of an interleaved server log.
func (c *Conn) Cid() uuid.UUID { return c.cid }
func (c *Conn) LocalAddr() netutil.InetAddress { return c.local }
func (c *Conn) PeerAddr() netutil.InetAddress  { return c.peer }
func (c *Conn) Loop() *reactor.Loop            { return c.loop }
func (c *Conn) State() State                   { return State(c.state.Load()) }
func (c *Conn) Connected() bool                { return c.State() == StateConnected }

func (c *Conn) SetConnectionCallback(f ConnectionFunc)       { c.onConnection = f }
func (c *Conn) SetMessageCallback(f MessageFunc)             { c.onMessage = f }
func (c *Conn) SetWriteCompleteCallback(f WriteCompleteFunc) { c.onWriteComplete = f }
func (c *Conn) SetHighWaterMarkCallback(f HighWaterMarkFunc, mark int) {
	c.onHighWaterMark = f
	c.highWaterMark = mark
}
func (c *Conn) SetCloseCallback(f CloseFunc) { c.closeCallback = f }

// Context returns the caller-defined per-connection slot, synchronized with its
// own lock since handlers on other loops may read it (e.g. a server's stats
// sweep), unlike every other field on Conn.
func (c *Conn) Context(key string) (interface{}, bool) {
	c.ctxMu.RLock()
	defer c.ctxMu.RUnlock()
	v, ok := c.ctx[key]
	return v, ok
}

func (c *Conn) SetContext(key string, value interface{}) {
	c.ctxMu.Lock()
	defer c.ctxMu.Unlock()
	c.ctx[key] = value
}

// ConnectEstablished ties the channel to this connection, enables read interest
// and invokes the connection-up callback. Must be called on the owning loop.
func (c *Conn) ConnectEstablished() {
	c.state.Store(int32(StateConnected))
	c.alive.Store(true)

	c.ch.Tie(func() (interface{}, bool) {
		return c, c.alive.Load()
	})
	c.ch.EnableReading()

	if c.onConnection != nil {
		c.onConnection(c)
	}
}

// ConnectDestroyed disables all interest, removes the channel from the notifier,
// marks the tie dead so any event still in flight is dropped, and closes the
// socket. Terminal.
func (c *Conn) ConnectDestroyed() {
	if c.State() == StateConnected {
		c.state.Store(int32(StateDisconnected))
		c.ch.DisableAll()
	}
	c.alive.Store(false)
	c.ch.Remove()
	_ = c.sock.Close()
}

// LastActivity returns the last time this connection observed a read or a
// queued write, used by a server's idle sweep to time out quiet peers.
func (c *Conn) LastActivity() time.Time {
	return time.Unix(0, c.lastActivity.Load())
}

// IdleSince reports whether this connection has been quiet for at least
// timeout as of now.
func (c *Conn) IdleSince(now time.Time, timeout duration.Duration) bool {
	if timeout <= 0 {
		return false
	}
	return now.Sub(c.LastActivity()) >= timeout.Time()
}

func (c *Conn) touch() {
	c.lastActivity.Store(time.Now().UnixNano())
}

// warn logs message tagged with this connection's correlation id, so a single
// connection's lines can be picked out of a busy server's interleaved log.
func (c *Conn) warn(message string, err error) {
	if c.log == nil {
		return
	}
	c.log.Warning(fmt.Sprintf("%s [cid=%s]", message, c.cid), err)
}

func (c *Conn) handleRead(t time.Time) {
	n, err := c.in.ReadFd(c.sock.Fd())
	if err != nil {
		c.warn("error reading connection", err)
		c.handleError()
		return
	}

	switch {
	case n > 0:
		c.touch()
		if c.onMessage != nil {
			c.onMessage(c, c.in, t)
		}
	case n == 0:
		c.handleClose()
	}
}

func (c *Conn) handleWrite() {
	if !c.ch.IsWriting() {
		return
	}

	_, err := c.out.WriteFd(c.sock.Fd())
	if err != nil {
		c.warn("error writing connection", err)
		return
	}

	if c.out.ReadableBytes() == 0 {
		c.ch.DisableWriting()
		if c.onWriteComplete != nil {
			f := c.onWriteComplete
			c.loop.QueueInLoop(func() { f(c) })
		}
		if c.State() == StateDisconnecting {
			c.shutdownInLoop()
		}
	}
}

func (c *Conn) handleClose() {
	c.state.Store(int32(StateDisconnected))
	c.ch.DisableAll()

	if c.onConnection != nil {
		c.onConnection(c)
	}
	if c.closeCallback != nil {
		c.closeCallback(c)
	}
}

func (c *Conn) handleError() {
	c.warn("connection error event", ErrorRead)
}

// Send queues data for writing. Dropped silently if the connection is not
// connected. data is copied before crossing threads; the caller's slice is
// never retained past this call.
func (c *Conn) Send(data []byte) {
	if c.State() != StateConnected {
		return
	}

	c.touch()

	if c.loop.IsInLoopThread() {
		c.sendInLoop(data)
		return
	}

	cp := append([]byte(nil), data...)
	c.loop.RunInLoop(func() { c.sendInLoop(cp) })
}

func (c *Conn) sendInLoop(data []byte) {
	if c.fault {
		return
	}

	wrote := 0

	if !c.ch.IsWriting() && c.out.ReadableBytes() == 0 {
		n, err := unix.Write(c.sock.Fd(), data)
		switch {
		case err == nil:
			wrote = n
			if wrote == len(data) {
				if c.onWriteComplete != nil {
					f := c.onWriteComplete
					c.loop.QueueInLoop(func() { f(c) })
				}
				return
			}
		case err == unix.EAGAIN:
			wrote = 0
		case err == unix.EPIPE || err == unix.ECONNRESET:
			c.fault = true
			return
		default:
			c.warn("error on direct write", ErrorWrite.Error(err))
			return
		}
	}

	remaining := data[wrote:]
	if len(remaining) == 0 {
		return
	}

	oldLen := c.out.ReadableBytes()
	newLen := oldLen + len(remaining)
	if oldLen < c.highWaterMark && newLen >= c.highWaterMark && c.onHighWaterMark != nil {
		f := c.onHighWaterMark
		c.loop.QueueInLoop(func() { f(c, newLen) })
	}

	c.out.Append(remaining)
	if !c.ch.IsWriting() {
		c.ch.EnableWriting()
	}
}

// Shutdown half-closes the connection for writing once any queued output has
// drained.
func (c *Conn) Shutdown() {
	if c.State() != StateConnected {
		return
	}
	c.loop.RunInLoop(c.shutdownSetup)
}

func (c *Conn) shutdownSetup() {
	if c.State() != StateConnected {
		return
	}
	if c.ch.IsWriting() {
		c.state.Store(int32(StateDisconnecting))
		return
	}
	c.shutdownInLoop()
}

func (c *Conn) shutdownInLoop() {
	if err := c.sock.ShutdownWrite(); err != nil {
		c.warn("error shutting down connection write side", err)
	}
}

// ForceClose runs the close sequence immediately regardless of queued output:
// the connection becomes disconnected, all interest is dropped and the
// connection and close callbacks fire. The socket itself is closed by
// ConnectDestroyed.
func (c *Conn) ForceClose() {
	c.loop.RunInLoop(func() {
		if c.State() != StateDisconnected {
			c.handleClose()
		}
	})
}
