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

//go:build unix

package netutil

import (
	"net"

	"golang.org/x/sys/unix"

	liberr "github.com/nabbar/netreactor/errors"
)

// Socket is the sole owner of one file descriptor. It is closed exactly once, at
// Close, matching the "exclusively owned, closed exactly once" invariant.
type Socket struct {
	fd     int
	closed bool
}

// NewStreamSocket creates a non-blocking, close-on-exec IPv4 TCP socket.
func NewStreamSocket() (*Socket, liberr.Error) {
	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_STREAM|unix.SOCK_NONBLOCK|unix.SOCK_CLOEXEC, unix.IPPROTO_TCP)
	if err != nil {
		return nil, ErrorSocketCreate.Error(err)
	}
	return &Socket{fd: fd}, nil
}

// NewSocketFromFd wraps an already-open fd (e.g. one returned by accept(2)) without
// creating a new one. The caller transfers ownership.
func NewSocketFromFd(fd int) *Socket {
	return &Socket{fd: fd}
}

func (s *Socket) Fd() int {
	return s.fd
}

func (s *Socket) Close() liberr.Error {
	if s == nil || s.closed {
		return nil
	}
	s.closed = true
	if err := unix.Close(s.fd); err != nil {
		return ErrorSocketCreate.Error(err)
	}
	return nil
}

func (s *Socket) SetReuseAddr(enable bool) liberr.Error {
	return s.setSockOptBool(unix.SOL_SOCKET, unix.SO_REUSEADDR, enable)
}

func (s *Socket) SetReusePort(enable bool) liberr.Error {
	return s.setSockOptBool(unix.SOL_SOCKET, unix.SO_REUSEPORT, enable)
}

func (s *Socket) SetKeepAlive(enable bool) liberr.Error {
	return s.setSockOptBool(unix.SOL_SOCKET, unix.SO_KEEPALIVE, enable)
}

func (s *Socket) SetNoDelay(enable bool) liberr.Error {
	return s.setSockOptBool(unix.IPPROTO_TCP, unix.TCP_NODELAY, enable)
}

func (s *Socket) setSockOptBool(level, name int, enable bool) liberr.Error {
	v := 0
	if enable {
		v = 1
	}
	if err := unix.SetsockoptInt(s.fd, level, name, v); err != nil {
		return ErrorSocketOption.Error(err)
	}
	return nil
}

// Bind binds the socket to the given IPv4 address/port.
func (s *Socket) Bind(addr InetAddress) liberr.Error {
	sa := &unix.SockaddrInet4{Port: int(addr.Port())}
	copy(sa.Addr[:], addr.IP().To4())

	if err := unix.Bind(s.fd, sa); err != nil {
		return ErrorSocketBind.Error(err)
	}
	return nil
}

// Listen puts the socket into the listening state with a backlog of SOMAXCONN.
func (s *Socket) Listen() liberr.Error {
	if err := unix.Listen(s.fd, unix.SOMAXCONN); err != nil {
		return ErrorSocketListen.Error(err)
	}
	return nil
}

// Accept accepts one pending connection, returning a new non-blocking,
// close-on-exec socket and the peer's address.
func (s *Socket) Accept() (*Socket, InetAddress, error) {
	nfd, sa, err := unix.Accept4(s.fd, unix.SOCK_NONBLOCK|unix.SOCK_CLOEXEC)
	if err != nil {
		return nil, InetAddress{}, err
	}

	addr := sockaddrToInet(sa)
	return &Socket{fd: nfd}, addr, nil
}

// Connect issues a non-blocking connect; the raw errno is returned unwrapped so the
// connector can classify it against the errno table in spec.md section 4.7.
func (s *Socket) Connect(addr InetAddress) error {
	sa := &unix.SockaddrInet4{Port: int(addr.Port())}
	copy(sa.Addr[:], addr.IP().To4())
	return unix.Connect(s.fd, sa)
}

// ShutdownWrite half-closes the write side of the connection.
func (s *Socket) ShutdownWrite() liberr.Error {
	if err := unix.Shutdown(s.fd, unix.SHUT_WR); err != nil {
		return ErrorSocketOption.Error(err)
	}
	return nil
}

// LocalAddr returns the address the socket is bound to.
func (s *Socket) LocalAddr() (InetAddress, liberr.Error) {
	sa, err := unix.Getsockname(s.fd)
	if err != nil {
		return InetAddress{}, ErrorSocketAddress.Error(err)
	}
	return sockaddrToInet(sa), nil
}

// PeerAddr returns the address of the connected peer.
func (s *Socket) PeerAddr() (InetAddress, liberr.Error) {
	sa, err := unix.Getpeername(s.fd)
	if err != nil {
		return InetAddress{}, ErrorSocketAddress.Error(err)
	}
	return sockaddrToInet(sa), nil
}

// SocketError returns the socket's pending SO_ERROR (0 if none), used after a
// write-ready connect() completion to learn whether it actually succeeded.
func (s *Socket) SocketError() (int, liberr.Error) {
	v, err := unix.GetsockoptInt(s.fd, unix.SOL_SOCKET, unix.SO_ERROR)
	if err != nil {
		return 0, ErrorSocketOption.Error(err)
	}
	return v, nil
}

// Read reads directly from the socket fd.
func (s *Socket) Read(p []byte) (int, error) {
	return unix.Read(s.fd, p)
}

func (s *Socket) Write(p []byte) (int, error) {
	return unix.Write(s.fd, p)
}

func sockaddrToInet(sa unix.Sockaddr) InetAddress {
	switch v := sa.(type) {
	case *unix.SockaddrInet4:
		ip := net.IPv4(v.Addr[0], v.Addr[1], v.Addr[2], v.Addr[3])
		return NewInetAddressFrom(ip, uint16(v.Port))
	default:
		return NewInetAddressFrom(net.IPv4zero, 0)
	}
}
