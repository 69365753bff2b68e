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

package logger_test

import (
	"bytes"
	"errors"

	"github.com/nabbar/netreactor/logger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Logger", func() {
	var (
		buf *bytes.Buffer
		log logger.Logger
	)

	BeforeEach(func() {
		buf = &bytes.Buffer{}
		log = logger.NewWithWriter(buf)
	})

	It("defaults to info level", func() {
		Expect(log.GetLevel()).To(Equal(logger.InfoLevel))
	})

	It("writes a message at info level by default", func() {
		log.Info("server started", nil)
		Expect(buf.String()).To(ContainSubstring("server started"))
	})

	It("suppresses debug messages until the level is lowered", func() {
		log.Debug("not yet visible", nil)
		Expect(buf.String()).To(BeEmpty())

		log.SetLevel(logger.DebugLevel)
		Expect(log.GetLevel()).To(Equal(logger.DebugLevel))

		log.Debug("now visible", nil)
		Expect(buf.String()).To(ContainSubstring("now visible"))
	})

	It("includes the error in the formatted line when one is given", func() {
		log.Warning("retrying connect", errors.New("connection refused"))
		Expect(buf.String()).To(ContainSubstring("retrying connect"))
		Expect(buf.String()).To(ContainSubstring("connection refused"))
	})

	It("clones into an independent logger sharing the base level", func() {
		log.SetLevel(logger.ErrorLevel)
		clone := log.Clone()
		Expect(clone.GetLevel()).To(Equal(logger.ErrorLevel))

		clone.SetLevel(logger.DebugLevel)
		Expect(log.GetLevel()).To(Equal(logger.ErrorLevel))
	})
})
