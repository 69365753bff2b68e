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

// Package acceptor implements the listening side of a TCP server: a single
// non-blocking listening socket registered on the base loop, handing each
// accepted connection off to a caller-supplied callback.
package acceptor

import (
	"time"

	"golang.org/x/sys/unix"

	"github.com/nabbar/netreactor/logger"
	"github.com/nabbar/netreactor/netutil"
	"github.com/nabbar/netreactor/reactor"
)

// NewConnectionFunc is invoked on the base loop's goroutine for every accepted
// connection.
type NewConnectionFunc func(sock *netutil.Socket, peer netutil.InetAddress)

// Acceptor owns the listening socket and its channel.
type Acceptor struct {
	log  logger.Logger
	loop *reactor.Loop

	sock *netutil.Socket
	ch *reactor.Channel

	listening bool
	idleFd    int

	onNewConnection NewConnectionFunc
}

// New creates a non-blocking, close-on-exec listening socket bound to addr, with
// SO_REUSEADDR always set and SO_REUSEPORT set when reusePort is true.
func New(log logger.Logger, loop *reactor.Loop, addr netutil.InetAddress, reusePort bool) (*Acceptor, error) {
	sock, err := netutil.NewStreamSocket()
	if err != nil {
		return nil, ErrorSocketSetup.Error(err)
	}

	if err := sock.SetReuseAddr(true); err != nil {
		return nil, ErrorSocketSetup.Error(err)
	}
	if reusePort {
		if err := sock.SetReusePort(true); err != nil {
			return nil, ErrorSocketSetup.Error(err)
		}
	}
	if err := sock.Bind(addr); err != nil {
		return nil, ErrorSocketSetup.Error(err)
	}

	idleFd, err2 := unix.Open("/dev/null", unix.O_RDONLY|unix.O_CLOEXEC, 0)
	if err2 != nil {
		idleFd = -1
	}

	a := &Acceptor{
		log:    log,
		loop:   loop,
		sock:   sock,
		idleFd: idleFd,
	}

	a.ch = reactor.NewChannel(loop, sock.Fd())
	a.ch.SetReadCallback(a.handleRead)

	return a, nil
}

// SetNewConnectionCallback sets the function invoked for every accepted
// connection. Must be called before Listen.
func (a *Acceptor) SetNewConnectionCallback(f NewConnectionFunc) {
	a.onNewConnection = f
}

// Listen enters the OS listen state and enables read interest.
func (a *Acceptor) Listen() error {
	a.listening = true
	if err := a.sock.Listen(); err != nil {
		return ErrorListen.Error(err)
	}
	a.ch.EnableReading()
	return nil
}

func (a *Acceptor) handleRead(_ time.Time) {
	conn, peer, err := a.sock.Accept()
	if err == nil {
		if a.onNewConnection != nil {
			a.onNewConnection(conn, peer)
		} else {
			_ = conn.Close()
		}
		return
	}

	if err == unix.EMFILE {
		if a.log != nil {
			a.log.Error("file descriptor exhaustion accepting connection", ErrorFdExhaustion.Error(err))
		}
		if a.idleFd >= 0 {
			_ = unix.Close(a.idleFd)
			if fd, e := unix.Accept(a.sock.Fd()); e == nil {
				_ = unix.Close(fd)
			}
			a.idleFd, _ = unix.Open("/dev/null", unix.O_RDONLY|unix.O_CLOEXEC, 0)
		}
		return
	}

	if a.log != nil {
		a.log.Warning("error accepting connection", ErrorAccept.Error(err))
	}
}
