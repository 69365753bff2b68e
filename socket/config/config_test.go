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

package config_test

import (
	"time"

	"github.com/nabbar/netreactor/socket/config"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Config", func() {
	It("accepts a minimal valid configuration", func() {
		c := &config.Config{
			Address: "127.0.0.1:8080",
		}
		Expect(c.Validate()).To(BeNil())
	})

	It("rejects a missing address", func() {
		c := &config.Config{}
		err := c.Validate()
		Expect(err).ToNot(BeNil())
	})

	It("rejects an address without a port", func() {
		c := &config.Config{
			Address: "127.0.0.1",
		}
		err := c.Validate()
		Expect(err).ToNot(BeNil())
	})

	It("rejects a negative thread count", func() {
		c := &config.Config{
			Address:  "127.0.0.1:8080",
			NbThread: -1,
		}
		err := c.Validate()
		Expect(err).ToNot(BeNil())
	})

	It("rejects a negative high water mark", func() {
		c := &config.Config{
			Address:       "127.0.0.1:8080",
			HighWaterMark: -1,
		}
		err := c.Validate()
		Expect(err).ToNot(BeNil())
	})

	It("accepts a fully populated configuration", func() {
		c := &config.Config{
			Address:           "0.0.0.0:9000",
			SoReusePort:       true,
			SoKeepAlive:       true,
			SoNoDelay:         true,
			NbThread:          4,
			HighWaterMark:     1024,
			RetryOnDisconnect: true,
		}
		Expect(c.Validate()).To(BeNil())
	})

	Describe("Decode", func() {
		It("fills the struct from a loosely-typed map", func() {
			c := &config.Config{}
			err := config.Decode(map[string]interface{}{
				"address":   "127.0.0.1:8080",
				"nbThread":  "4",
				"soNoDelay": true,
			}, c)

			Expect(err).ToNot(HaveOccurred())
			Expect(c.Address).To(Equal("127.0.0.1:8080"))
			Expect(c.NbThread).To(Equal(4))
			Expect(c.SoNoDelay).To(BeTrue())
		})

		It("parses a string ConIdleTimeout through the duration decoder hook", func() {
			c := &config.Config{}
			err := config.Decode(map[string]interface{}{
				"address":        "127.0.0.1:8080",
				"conIdleTimeout": "1d30s",
			}, c)

			Expect(err).ToNot(HaveOccurred())
			Expect(c.ConIdleTimeout.Time()).To(Equal(24*time.Hour + 30*time.Second))
		})

		It("rejects an unparseable ConIdleTimeout", func() {
			c := &config.Config{}
			err := config.Decode(map[string]interface{}{
				"address":        "127.0.0.1:8080",
				"conIdleTimeout": "not-a-duration",
			}, c)

			Expect(err).To(HaveOccurred())
		})
	})
})
