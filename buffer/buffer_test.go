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

package buffer_test

import (
	"bytes"

	"github.com/nabbar/netreactor/buffer"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Buffer", func() {
	var b *buffer.Buffer

	BeforeEach(func() {
		b = buffer.New()
	})

	It("starts empty with the default capacity", func() {
		Expect(b.ReadableBytes()).To(Equal(0))
		Expect(b.WritableBytes()).To(Equal(buffer.InitialSize))
		Expect(b.PrependableBytes()).To(Equal(buffer.CheapPrepend))
	})

	It("makes appended data readable in order", func() {
		b.Append([]byte("hello"))
		b.Append([]byte(" world"))
		Expect(b.ReadableBytes()).To(Equal(11))
		Expect(string(b.Peek())).To(Equal("hello world"))
	})

	It("retrieves a prefix and leaves the remainder readable", func() {
		b.Append([]byte("hello world"))
		Expect(b.RetrieveAsString(5)).To(Equal("hello"))
		Expect(b.ReadableBytes()).To(Equal(6))
		Expect(string(b.Peek())).To(Equal(" world"))
	})

	It("resets to the headroom boundary once fully retrieved", func() {
		b.Append([]byte("hi"))
		b.RetrieveAll()
		Expect(b.ReadableBytes()).To(Equal(0))
		Expect(b.PrependableBytes()).To(Equal(buffer.CheapPrepend))
	})

	It("retrieving more than readable is equivalent to RetrieveAll", func() {
		b.Append([]byte("hi"))
		b.Retrieve(1000)
		Expect(b.ReadableBytes()).To(Equal(0))
		Expect(b.PrependableBytes()).To(Equal(buffer.CheapPrepend))
	})

	It("reclaims prependable space on the next append after a full retrieve", func() {
		b.Append(bytes.Repeat([]byte("a"), 100))
		b.Retrieve(100)
		Expect(b.ReadableBytes()).To(Equal(0))
		b.Append([]byte("b"))
		Expect(b.ReadableBytes()).To(Equal(1))
		Expect(string(b.Peek())).To(Equal("b"))
	})

	It("grows when neither writable nor reclaimable space suffices", func() {
		big := bytes.Repeat([]byte("x"), buffer.InitialSize*2)
		b.Append(big)
		Expect(b.ReadableBytes()).To(Equal(len(big)))
		Expect(string(b.Peek())).To(Equal(string(big)))
	})

	It("prepends into the reserved headroom", func() {
		b.Append([]byte("body"))
		b.Prepend([]byte("head"))
		Expect(b.ReadableBytes()).To(Equal(8))
		Expect(string(b.Peek())).To(Equal("headbody"))
	})

	It("RetrieveAllAsString drains everything", func() {
		b.Append([]byte("abc"))
		Expect(b.RetrieveAllAsString()).To(Equal("abc"))
		Expect(b.ReadableBytes()).To(Equal(0))
	})
})
