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

package errors_test

import (
	goerrors "errors"

	liberr "github.com/nabbar/netreactor/errors"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("New", func() {
	It("carries the given code and message", func() {
		e := liberr.New(7, "boom")
		Expect(e.Code()).To(Equal(uint16(7)))
		Expect(e.StringError()).To(Equal("boom"))
		Expect(e.Error()).To(Equal("[Error #7] boom"))
	})

	It("wraps raw errors passed as parents", func() {
		e := liberr.New(7, "boom", goerrors.New("underlying"))
		Expect(e.HasParent()).To(BeTrue())
		Expect(e.HasError(goerrors.New("underlying"))).To(BeTrue())
	})

	It("drops nil parents", func() {
		e := liberr.New(7, "boom", nil)
		Expect(e.HasParent()).To(BeFalse())
	})
})

var _ = Describe("Make", func() {
	It("returns nil for a nil error", func() {
		Expect(liberr.Make(nil)).To(BeNil())
	})

	It("passes an existing Error through unchanged", func() {
		e := liberr.New(3, "original")
		Expect(liberr.Make(e)).To(Equal(e))
	})

	It("wraps a plain error with code 0", func() {
		e := liberr.Make(goerrors.New("plain"))
		Expect(e.Code()).To(Equal(uint16(0)))
		Expect(e.StringError()).To(Equal("plain"))
	})
})

var _ = Describe("Is and Get", func() {
	It("reports true only for values that carry an Error", func() {
		Expect(liberr.Is(liberr.New(1, "x"))).To(BeTrue())
		Expect(liberr.Is(goerrors.New("plain"))).To(BeFalse())
	})

	It("extracts the Error or returns nil", func() {
		e := liberr.New(1, "x")
		Expect(liberr.Get(e)).To(Equal(e))
		Expect(liberr.Get(goerrors.New("plain"))).To(BeNil())
	})
})

var _ = Describe("Add and SetParent", func() {
	It("appends parents incrementally", func() {
		e := liberr.New(1, "top")
		e.Add(liberr.New(2, "first"))
		e.Add(liberr.New(3, "second"))
		Expect(e.GetParent(false)).To(HaveLen(2))
	})

	It("accepts a plain error, wrapping it with code 0", func() {
		e := liberr.New(1, "top")
		e.Add(goerrors.New("raw"))
		Expect(e.GetParent(false)).To(HaveLen(1))
		Expect(e.HasError(goerrors.New("raw"))).To(BeTrue())
	})

	It("replaces the whole parent list", func() {
		e := liberr.New(1, "top", liberr.New(2, "old"))
		e.SetParent(liberr.New(3, "new"))
		Expect(e.GetParent(false)).To(HaveLen(1))
		Expect(e.HasCode(liberr.NewCodeError(3))).To(BeTrue())
		Expect(e.HasCode(liberr.NewCodeError(2))).To(BeFalse())
	})

	It("includes itself in GetParent when withSelf is true", func() {
		e := liberr.New(1, "top")
		Expect(e.GetParent(true)).To(HaveLen(1))
	})
})

var _ = Describe("HasCode and IsCode", func() {
	It("matches its own code", func() {
		e := liberr.New(5, "x")
		Expect(e.IsCode(liberr.NewCodeError(5))).To(BeTrue())
		Expect(e.IsCode(liberr.NewCodeError(6))).To(BeFalse())
	})

	It("finds a code nested in a parent", func() {
		e := liberr.New(1, "top", liberr.New(9, "deep"))
		Expect(e.HasCode(liberr.NewCodeError(9))).To(BeTrue())
	})
})

var _ = Describe("Unwrap", func() {
	It("exposes parents for errors.Is and errors.As", func() {
		inner := goerrors.New("sentinel")
		e := liberr.New(1, "wrapper", inner)
		Expect(goerrors.Is(e, inner)).To(BeTrue()) // found through the wrapped parent
		Expect(e.Unwrap()).To(HaveLen(1))
	})

	It("returns nil when there is nothing to unwrap", func() {
		e := liberr.New(1, "leaf")
		Expect(e.Unwrap()).To(BeNil())
	})
})

var _ = Describe("GetError", func() {
	It("returns a plain error carrying only this error's own message", func() {
		e := liberr.New(1, "top", liberr.New(2, "child"))
		Expect(e.GetError().Error()).To(Equal("top"))
	})
})
