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

// Package tcp implements the client side of a TCP connection: a connector state
// machine driving at most one live connection at a time, with optional
// reconnect-on-disconnect.
package tcp

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nabbar/netreactor/buffer"
	"github.com/nabbar/netreactor/connector"
	"github.com/nabbar/netreactor/logger"
	"github.com/nabbar/netreactor/netutil"
	"github.com/nabbar/netreactor/reactor"
	"github.com/nabbar/netreactor/socket/config"
	"github.com/nabbar/netreactor/tcpconn"
)

type UpdateFunc func(sock *netutil.Socket)
type HandlerFunc func(c *tcpconn.Conn, in *buffer.Buffer, t time.Time)

// ClientTcp owns a connector and at most one live connection.
type ClientTcp struct {
	log logger.Logger
	cfg *config.Config

	update  UpdateFunc
	handler HandlerFunc

	loop *reactor.Loop
	conn *connector.Connector

	connectRequested atomic.Bool
	nextConn         int64

	mu      sync.Mutex
	current *tcpconn.Conn
}

// New validates cfg and builds a client ready to Connect. It owns its own
// background loop.
func New(update UpdateFunc, handler HandlerFunc, cfg *config.Config) (*ClientTcp, error) {
	if cfg == nil || cfg.Address == "" {
		return nil, ErrInvalidAddress.Error(nil)
	}

	addr, err := netutil.NewInetAddress(cfg.Address)
	if err != nil {
		return nil, ErrInvalidAddress.Error(err)
	}

	l, lerr := reactor.New(nil)
	if lerr != nil {
		return nil, lerr
	}

	c := &ClientTcp{
		cfg:     cfg,
		update:  update,
		handler: handler,
		loop:    l,
		conn:    connector.New(nil, l, addr),
	}
	c.conn.SetNewConnectionCallback(c.newConnection)

	go l.Run()

	return c, nil
}

func (c *ClientTcp) SetLogger(log logger.Logger) {
	c.log = log
}

// Connect starts the connector; actual connection establishment happens
// asynchronously on the client's loop.
func (c *ClientTcp) Connect() {
	c.connectRequested.Store(true)
	c.conn.Start()
}

// Disconnect shuts down the current connection, if any.
func (c *ClientTcp) Disconnect() {
	c.connectRequested.Store(false)

	c.mu.Lock()
	cur := c.current
	c.mu.Unlock()

	if cur != nil {
		cur.Shutdown()
	} else {
		c.conn.Stop()
	}
}

// Connection returns the current connection, if any.
func (c *ClientTcp) Connection() (*tcpconn.Conn, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current, c.current != nil
}

func (c *ClientTcp) newConnection(sock *netutil.Socket) {
	if c.update != nil {
		c.update(sock)
	}
	if c.cfg.SoKeepAlive {
		_ = sock.SetKeepAlive(true)
	}
	if c.cfg.SoNoDelay {
		_ = sock.SetNoDelay(true)
	}

	id := atomic.AddInt64(&c.nextConn, 1)
	local, _ := sock.LocalAddr()
	peer, _ := sock.PeerAddr()
	name := fmt.Sprintf("client-%s#%d", peer.String(), id)

	conn := tcpconn.New(c.log, c.loop, name, sock, local, peer)
	conn.SetMessageCallback(c.handler)
	conn.SetCloseCallback(c.removeConnection)

	c.mu.Lock()
	c.current = conn
	c.mu.Unlock()

	c.loop.RunInLoop(conn.ConnectEstablished)
}

func (c *ClientTcp) removeConnection(conn *tcpconn.Conn) {
	c.loop.RunInLoop(func() {
		c.mu.Lock()
		if c.current == conn {
			c.current = nil
		}
		c.mu.Unlock()

		conn.ConnectDestroyed()

		if c.cfg.RetryOnDisconnect && c.connectRequested.Load() {
			c.conn.Restart()
		} else {
			c.conn.Stop()
		}
	})
}

// Shutdown tears down the client's loop and current connection.
func (c *ClientTcp) Shutdown() {
	c.Disconnect()
	c.loop.Quit()
}
