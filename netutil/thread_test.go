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
	"time"

	"github.com/nabbar/netreactor/netutil"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("CurrentThreadID", func() {
	It("is stable across repeated calls on the same goroutine", func() {
		a := netutil.CurrentThreadID()
		b := netutil.CurrentThreadID()
		Expect(a).To(Equal(b))
	})

	It("differs between two concurrently running goroutines", func() {
		ids := make(chan netutil.ThreadID, 2)

		go func() { ids <- netutil.CurrentThreadID() }()
		go func() { ids <- netutil.CurrentThreadID() }()

		first := <-ids
		second := <-ids
		Expect(first).ToNot(Equal(second))
	})
})

var _ = Describe("CurrentThread", func() {
	It("reports IsCurrent true from the goroutine that built it", func() {
		t := netutil.NewCurrentThread()
		Expect(t.IsCurrent()).To(BeTrue())
		Expect(t.ID()).To(Equal(netutil.CurrentThreadID()))
	})

	It("reports IsCurrent false when checked from a different goroutine", func() {
		t := netutil.NewCurrentThread()

		result := make(chan bool, 1)
		go func() {
			result <- t.IsCurrent()
		}()

		Eventually(result, time.Second).Should(Receive(BeFalse()))
	})
})
