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

package netutil_test

import (
	"net"

	"github.com/nabbar/netreactor/netutil"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("InetAddress", func() {
	Describe("NewInetAddress", func() {
		It("parses a dotted-quad host and port", func() {
			a, err := netutil.NewInetAddress("127.0.0.1:8080")
			Expect(err).To(BeNil())
			Expect(a.IP().String()).To(Equal("127.0.0.1"))
			Expect(a.Port()).To(Equal(uint16(8080)))
			Expect(a.String()).To(Equal("127.0.0.1:8080"))
		})

		It("treats an empty host as the wildcard address", func() {
			a, err := netutil.NewInetAddress(":9000")
			Expect(err).To(BeNil())
			Expect(a.IP().Equal(net.IPv4zero)).To(BeTrue())
			Expect(a.IsUnspecified()).To(BeTrue())
		})

		It("rejects a non-IPv4 host", func() {
			_, err := netutil.NewInetAddress("[::1]:8080")
			Expect(err).ToNot(BeNil())
		})

		It("rejects a malformed port", func() {
			_, err := netutil.NewInetAddress("127.0.0.1:not-a-port")
			Expect(err).ToNot(BeNil())
		})

		It("rejects a string with no port at all", func() {
			_, err := netutil.NewInetAddress("127.0.0.1")
			Expect(err).ToNot(BeNil())
		})

		It("rejects a hostname that does not resolve to a literal IPv4 address", func() {
			_, err := netutil.NewInetAddress("not-an-ip:8080")
			Expect(err).ToNot(BeNil())
		})
	})

	Describe("NewInetAddressFrom", func() {
		It("builds an address from a raw IP and port", func() {
			a := netutil.NewInetAddressFrom(net.IPv4(10, 0, 0, 1), 4242)
			Expect(a.IP().String()).To(Equal("10.0.0.1"))
			Expect(a.Port()).To(Equal(uint16(4242)))
			Expect(a.String()).To(Equal("10.0.0.1:4242"))
		})

		It("falls back to the wildcard address for a non-IPv4 input", func() {
			a := netutil.NewInetAddressFrom(net.ParseIP("::1"), 80)
			Expect(a.IP().Equal(net.IPv4zero)).To(BeTrue())
		})
	})

	Describe("IsUnspecified", func() {
		It("is false for a concrete address", func() {
			a := netutil.NewInetAddressFrom(net.IPv4(192, 168, 1, 1), 80)
			Expect(a.IsUnspecified()).To(BeFalse())
		})

		It("is true for the zero value", func() {
			var a netutil.InetAddress
			Expect(a.IsUnspecified()).To(BeTrue())
		})
	})

	Describe("Equal", func() {
		It("reports equal for identical ip and port", func() {
			a := netutil.NewInetAddressFrom(net.IPv4(127, 0, 0, 1), 8080)
			b := netutil.NewInetAddressFrom(net.IPv4(127, 0, 0, 1), 8080)
			Expect(a.Equal(b)).To(BeTrue())
		})

		It("reports unequal when the port differs", func() {
			a := netutil.NewInetAddressFrom(net.IPv4(127, 0, 0, 1), 8080)
			b := netutil.NewInetAddressFrom(net.IPv4(127, 0, 0, 1), 8081)
			Expect(a.Equal(b)).To(BeFalse())
		})

		It("reports unequal when the ip differs", func() {
			a := netutil.NewInetAddressFrom(net.IPv4(127, 0, 0, 1), 8080)
			b := netutil.NewInetAddressFrom(net.IPv4(127, 0, 0, 2), 8080)
			Expect(a.Equal(b)).To(BeFalse())
		})
	})
})
