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

// Package connector implements the client-side connection state machine:
// non-blocking connect with errno classification, self-connect rejection, and
// capped exponential backoff retry.
package connector

import (
	"time"

	"golang.org/x/sys/unix"

	"github.com/nabbar/netreactor/logger"
	"github.com/nabbar/netreactor/netutil"
	"github.com/nabbar/netreactor/reactor"
)

type State int

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
)

const (
	initialRetryDelay = 500 * time.Millisecond
	maxRetryDelay     = 30 * time.Second
)

// NewConnectionFunc is invoked on the connector's loop once a non-self connect
// has succeeded.
type NewConnectionFunc func(sock *netutil.Socket)

// Connector drives a single outbound connection attempt at a time.
type Connector struct {
	log  logger.Logger
	loop *reactor.Loop
	addr netutil.InetAddress

	state            State
	connectRequested bool
	retryDelay       time.Duration

	sock *netutil.Socket
	ch   *reactor.Channel

	onNewConnection NewConnectionFunc
}

// New builds a connector targeting addr. The connector starts disconnected.
func New(log logger.Logger, loop *reactor.Loop, addr netutil.InetAddress) *Connector {
	return &Connector{
		log:        log,
		loop:       loop,
		addr:       addr,
		state:      StateDisconnected,
		retryDelay: initialRetryDelay,
	}
}

func (c *Connector) SetNewConnectionCallback(f NewConnectionFunc) {
	c.onNewConnection = f
}

// Start transitions disconnected -> connecting: opens a socket, issues a
// non-blocking connect, and classifies the immediate result.
func (c *Connector) Start() {
	c.connectRequested = true
	c.loop.RunInLoop(c.startInLoop)
}

func (c *Connector) startInLoop() {
	if !c.connectRequested {
		return
	}

	sock, err := netutil.NewStreamSocket()
	if err != nil {
		if c.log != nil {
			c.log.Error("error creating connecting socket", ErrorSocketSetup.Error(err))
		}
		return
	}

	e := sock.Connect(c.addr)
	switch classify(e) {
	case outcomeConnecting:
		c.state = StateConnecting
		c.connecting(sock)
	case outcomeRetry:
		_ = sock.Close()
		if c.log != nil {
			c.log.Debug("connect failed, scheduling retry", e)
		}
		c.retry()
	case outcomeGiveUp:
		_ = sock.Close()
		if c.log != nil {
			c.log.Error("connect failed permanently", ErrorConnectFailed.Error(e))
		}
	}
}

func (c *Connector) connecting(sock *netutil.Socket) {
	c.sock = sock
	c.ch = reactor.NewChannel(c.loop, sock.Fd())
	c.ch.SetWriteCallback(c.handleWrite)
	c.ch.SetErrorCallback(c.handleError)
	c.ch.EnableWriting()
}

func (c *Connector) handleWrite() {
	if c.state != StateConnecting {
		return
	}

	sock := c.sock
	c.removeChannel()

	errno, err := sock.SocketError()
	if err != nil || errno != 0 {
		_ = sock.Close()
		c.retry()
		return
	}

	local, lerr := sock.LocalAddr()
	peer, perr := sock.PeerAddr()
	if lerr != nil || perr != nil || local.Equal(peer) {
		if c.log != nil {
			c.log.Warning("rejecting self-connect", ErrorSelfConnect)
		}
		_ = sock.Close()
		c.retry()
		return
	}

	c.state = StateConnected
	if c.onNewConnection != nil {
		c.onNewConnection(sock)
	}
}

func (c *Connector) handleError() {
	if c.state != StateConnecting {
		return
	}
	sock := c.sock
	c.removeChannel()
	_ = sock.Close()
	c.retry()
}

func (c *Connector) removeChannel() {
	if c.ch != nil {
		c.ch.DisableAll()
		c.ch.Remove()
		c.ch = nil
	}
	c.sock = nil
}

// retry schedules another Start after the current backoff delay, off the loop
// thread, doubling the delay (capped at 30s) for next time.
func (c *Connector) retry() {
	c.state = StateDisconnected
	delay := c.retryDelay

	c.retryDelay *= 2
	if c.retryDelay > maxRetryDelay {
		c.retryDelay = maxRetryDelay
	}

	go func() {
		time.Sleep(delay)
		c.loop.RunInLoop(func() {
			if c.connectRequested {
				c.startInLoop()
			}
		})
	}()
}

// Stop cancels any pending retry and closes the owned fd, if any.
func (c *Connector) Stop() {
	c.connectRequested = false
	c.loop.RunInLoop(func() {
		sock := c.sock
		c.removeChannel()
		if sock != nil {
			_ = sock.Close()
		}
		c.state = StateDisconnected
	})
}

// Restart resets the backoff delay and starts again from disconnected.
func (c *Connector) Restart() {
	c.retryDelay = initialRetryDelay
	c.Start()
}

func (c *Connector) State() State {
	return c.state
}

type outcome int

const (
	outcomeConnecting outcome = iota
	outcomeRetry
	outcomeGiveUp
)

// classify maps a raw connect(2) errno onto the three-way outcome the state table
// in spec.md 4.7 describes.
func classify(err error) outcome {
	switch err {
	case nil, unix.EINPROGRESS, unix.EINTR, unix.EISCONN:
		return outcomeConnecting
	case unix.EAGAIN, unix.EADDRINUSE, unix.EADDRNOTAVAIL, unix.ECONNREFUSED, unix.ENETUNREACH:
		return outcomeRetry
	case unix.EACCES, unix.EPERM, unix.EAFNOSUPPORT, unix.EFAULT, unix.ENOTSOCK:
		return outcomeGiveUp
	default:
		return outcomeRetry
	}
}
