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

// Package tcp implements the multi-reactor TCP server: a base loop running the
// acceptor, a pool of sub-loops each hosting a share of the accepted
// connections, and the connection registry needed to tear everything down
// cleanly.
package tcp

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nabbar/netreactor/acceptor"
	"github.com/nabbar/netreactor/buffer"
	"github.com/nabbar/netreactor/logger"
	"github.com/nabbar/netreactor/netutil"
	"github.com/nabbar/netreactor/reactor"
	"github.com/nabbar/netreactor/socket/config"
	"github.com/nabbar/netreactor/tcpconn"
)

// idleSweepInterval is how often Start's idle sweep wakes up to check every
// tracked connection's last activity against cfg.ConIdleTimeout. It is a
// fraction of the shortest sane timeout so a connection is never kept alive
// much past its deadline.
const idleSweepInterval = time.Second

// UpdateFunc tunes a newly accepted socket (beyond the config's SoKeepAlive /
// SoNoDelay defaults) before the connection is constructed.
type UpdateFunc func(sock *netutil.Socket)

// HandlerFunc is invoked for every message the connection's input buffer
// receives.
type HandlerFunc func(c *tcpconn.Conn, in *buffer.Buffer, t time.Time)

// ServerTcp is a running (or not-yet-started) multi-reactor TCP server.
type ServerTcp struct {
	log logger.Logger
	cfg *config.Config

	update  UpdateFunc
	handler HandlerFunc

	base     *reactor.Loop
	pool     *reactor.Pool
	accept   *acceptor.Acceptor
	nextConn int64

	startOnce sync.Once
	started   atomic.Bool

	mu    sync.Mutex
	conns map[string]*tcpconn.Conn

	idleStop chan struct{}
}

// New validates cfg and wires a server ready to Start. update may be nil;
// handler is the per-message callback forwarded to every connection.
func New(update UpdateFunc, handler HandlerFunc, cfg *config.Config) (*ServerTcp, error) {
	if cfg == nil || cfg.Address == "" {
		return nil, ErrInvalidAddress.Error(nil)
	}

	addr, err := netutil.NewInetAddress(cfg.Address)
	if err != nil {
		return nil, ErrInvalidAddress.Error(err)
	}

	base, berr := reactor.New(nil)
	if berr != nil {
		return nil, berr
	}

	acc, aerr := acceptor.New(nil, base, addr, cfg.SoReusePort)
	if aerr != nil {
		return nil, aerr
	}

	s := &ServerTcp{
		cfg:     cfg,
		update:  update,
		handler: handler,
		base:    base,
		pool:    reactor.NewPool(nil, base),
		accept:  acc,
		conns:   make(map[string]*tcpconn.Conn),
	}

	acc.SetNewConnectionCallback(s.newConnection)

	return s, nil
}

// SetLogger injects the logger used by the idle sweep and handed to every
// connection accepted afterward. The base loop, the pool's loops and the
// acceptor are built without a logger and do not receive this one.
// Must be called before Start.
func (s *ServerTcp) SetLogger(log logger.Logger) {
	s.log = log
}

// IsRunning reports whether Start has been called and the server has not been
// torn down.
func (s *ServerTcp) IsRunning() bool {
	return s.started.Load()
}

// IsGone reports whether the server has never started, or has been fully torn
// down, with no connections left to drain.
func (s *ServerTcp) IsGone() bool {
	return !s.started.Load() && s.OpenConnections() == 0
}

// OpenConnections returns the number of connections currently tracked.
func (s *ServerTcp) OpenConnections() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.conns))
}

// Start is idempotent: the pool is started and the acceptor begins listening
// exactly once.
func (s *ServerTcp) Start() error {
	var outerr error

	s.startOnce.Do(func() {
		s.pool.Start(s.cfg.NbThread, nil)
		s.base.RunInLoop(func() {
			if err := s.accept.Listen(); err != nil {
				outerr = err
			}
		})
		s.started.Store(true)
		go s.base.Run()

		if s.cfg.ConIdleTimeout.Time() > 0 {
			s.idleStop = make(chan struct{})
			go s.sweepIdle(s.idleStop)
		}
	})

	return outerr
}

// sweepIdle closes every connection that has been quiet for at least
// cfg.ConIdleTimeout, until stop is closed by Shutdown.
func (s *ServerTcp) sweepIdle(stop chan struct{}) {
	t := time.NewTicker(idleSweepInterval)
	defer t.Stop()

	for {
		select {
		case <-stop:
			return
		case now := <-t.C:
			s.mu.Lock()
			idle := make([]*tcpconn.Conn, 0)
			for _, c := range s.conns {
				if c.IdleSince(now, s.cfg.ConIdleTimeout) {
					idle = append(idle, c)
				}
			}
			s.mu.Unlock()

			for _, c := range idle {
				if s.log != nil {
					s.log.Info(fmt.Sprintf("closing idle connection %s (idle >= %s)",
						c.Name(), s.cfg.ConIdleTimeout.TruncateSeconds()), nil)
				}
				c.ForceClose()
			}
		}
	}
}

func (s *ServerTcp) newConnection(sock *netutil.Socket, peer netutil.InetAddress) {
	if s.update != nil {
		s.update(sock)
	}
	if s.cfg.SoKeepAlive {
		_ = sock.SetKeepAlive(true)
	}
	if s.cfg.SoNoDelay {
		_ = sock.SetNoDelay(true)
	}

	sub := s.pool.GetNextLoop()

	id := atomic.AddInt64(&s.nextConn, 1)
	name := fmt.Sprintf("server-%s#%d", peer.String(), id)

	local, _ := sock.LocalAddr()

	conn := tcpconn.New(s.log, sub, name, sock, local, peer)
	conn.SetMessageCallback(s.handler)
	conn.SetCloseCallback(s.removeConnection)

	s.mu.Lock()
	s.conns[name] = conn
	s.mu.Unlock()

	sub.RunInLoop(conn.ConnectEstablished)
}

func (s *ServerTcp) removeConnection(c *tcpconn.Conn) {
	s.base.RunInLoop(func() {
		s.mu.Lock()
		delete(s.conns, c.Name())
		s.mu.Unlock()

		c.Loop().RunInLoop(c.ConnectDestroyed)
	})
}

// Shutdown stops the acceptor and the event loops; already-open connections are
// force-closed.
func (s *ServerTcp) Shutdown() {
	if s.idleStop != nil {
		close(s.idleStop)
		s.idleStop = nil
	}

	s.mu.Lock()
	conns := make([]*tcpconn.Conn, 0, len(s.conns))
	for _, c := range s.conns {
		conns = append(conns, c)
	}
	s.mu.Unlock()

	for _, c := range conns {
		c.ForceClose()
	}

	for _, l := range s.pool.GetAllLoops() {
		l.Quit()
	}
	s.base.Quit()

	s.started.Store(false)
}
