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

package netutil

import (
	"fmt"
	"net"
	"strconv"

	liberr "github.com/nabbar/netreactor/errors"
)

// InetAddress is an immutable IPv4 address and port pair. The formatted "ip:port"
// representation is cached at construction since the value never changes afterward
// and every accepted/connected connection needs it at least once to synthesize its
// name.
type InetAddress struct {
	ip   net.IP
	port uint16
	str  string
}

// NewInetAddress parses a dotted-quad "ip:port" or ":port" (wildcard) string.
func NewInetAddress(addr string) (InetAddress, liberr.Error) {
	host, ps, err := net.SplitHostPort(addr)
	if err != nil {
		return InetAddress{}, ErrorInvalidAddress.Error(err)
	}

	p, err := strconv.ParseUint(ps, 10, 16)
	if err != nil {
		return InetAddress{}, ErrorInvalidAddress.Error(err)
	}

	var ip net.IP
	if host == "" {
		ip = net.IPv4zero
	} else {
		ip = net.ParseIP(host).To4()
		if ip == nil {
			return InetAddress{}, ErrorInvalidAddress.Error(fmt.Errorf("not an IPv4 address: %q", host))
		}
	}

	return InetAddress{
		ip:   ip,
		port: uint16(p),
		str:  fmt.Sprintf("%s:%d", ip.String(), p),
	}, nil
}

// NewInetAddressFrom builds an InetAddress from a raw IP and port, as returned by
// accept(2)/getsockname(2)/getpeername(2).
func NewInetAddressFrom(ip net.IP, port uint16) InetAddress {
	ip4 := ip.To4()
	if ip4 == nil {
		ip4 = net.IPv4zero
	}

	return InetAddress{
		ip:   ip4,
		port: port,
		str:  fmt.Sprintf("%s:%d", ip4.String(), port),
	}
}

func (a InetAddress) IP() net.IP {
	return a.ip
}

func (a InetAddress) Port() uint16 {
	return a.port
}

// String returns the cached "ip:port" representation.
func (a InetAddress) String() string {
	return a.str
}

// IsUnspecified reports whether the address is the wildcard address (0.0.0.0).
func (a InetAddress) IsUnspecified() bool {
	return a.ip == nil || a.ip.IsUnspecified()
}

// Equal compares two addresses by ip and port, the self-connect detection primitive
// used by the connector.
func (a InetAddress) Equal(o InetAddress) bool {
	return a.port == o.port && a.ip.Equal(o.ip)
}
