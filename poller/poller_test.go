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

package poller_test

import (
	"os"
	"time"

	"github.com/nabbar/netreactor/poller"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// fakeChannel is the minimal poller.Channel implementation a test needs; real
// channels are reactor.Channel, but the poller package must not depend on
// reactor, so tests exercise it against a standalone stub instead.
type fakeChannel struct {
	fd      int
	events  uint32
	revents uint32
	index   int
}

func (c *fakeChannel) Fd() int                 { return c.fd }
func (c *fakeChannel) Events() uint32          { return c.events }
func (c *fakeChannel) SetRevents(e uint32)     { c.revents = e }
func (c *fakeChannel) Index() int              { return c.index }
func (c *fakeChannel) SetIndex(i int)          { c.index = i }

var _ = Describe("Poller", func() {
	var (
		p          poller.Poller
		r, w       *os.File
		ch         *fakeChannel
		createErr  error
	)

	BeforeEach(func() {
		p, createErr = poller.New()
		Expect(createErr).ToNot(HaveOccurred())

		var err error
		r, w, err = os.Pipe()
		Expect(err).ToNot(HaveOccurred())

		ch = &fakeChannel{fd: int(r.Fd()), events: poller.EventReadable, index: poller.StateNew}
		Expect(p.UpdateChannel(ch)).ToNot(HaveOccurred())
	})

	AfterEach(func() {
		_ = r.Close()
		_ = w.Close()
	})

	It("reports nothing ready before any write", func() {
		_, active, err := p.Poll(50*time.Millisecond, nil)
		Expect(err).ToNot(HaveOccurred())
		Expect(active).To(BeEmpty())
	})

	It("reports the channel ready for reading once data is written", func() {
		_, err := w.Write([]byte("x"))
		Expect(err).ToNot(HaveOccurred())

		_, active, perr := p.Poll(time.Second, nil)
		Expect(perr).ToNot(HaveOccurred())
		Expect(active).To(HaveLen(1))
		Expect(active[0].(*fakeChannel).fd).To(Equal(ch.fd))
	})

	It("stops reporting a channel once it is removed", func() {
		Expect(p.RemoveChannel(ch)).ToNot(HaveOccurred())

		_, err := w.Write([]byte("x"))
		Expect(err).ToNot(HaveOccurred())

		_, active, perr := p.Poll(50*time.Millisecond, nil)
		Expect(perr).ToNot(HaveOccurred())
		Expect(active).To(BeEmpty())
	})

	It("stops reporting a channel once its interest is cleared", func() {
		ch.events = 0
		Expect(p.UpdateChannel(ch)).ToNot(HaveOccurred())

		_, err := w.Write([]byte("x"))
		Expect(err).ToNot(HaveOccurred())

		_, active, perr := p.Poll(50*time.Millisecond, nil)
		Expect(perr).ToNot(HaveOccurred())
		Expect(active).To(BeEmpty())
	})
})
