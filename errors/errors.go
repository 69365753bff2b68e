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

package errors

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// ers is the sole implementation of Error.
type ers struct {
	c uint16
	e string
	p []Error
	t runtime.Frame
}

// New wraps message and code into an Error, attaching parent as its parent
// chain. Any parent not already an Error is itself wrapped with code 0.
func New(code uint16, message string, parent ...error) Error {
	return &ers{
		c: code,
		e: message,
		p: wrapParents(parent),
		t: getFrame(),
	}
}

func wrapParents(parent []error) []Error {
	p := make([]Error, 0, len(parent))
	for _, e := range parent {
		if er := Make(e); er != nil {
			p = append(p, er)
		}
	}
	return p
}

// Make returns e as an Error, wrapping it with code 0 if it isn't already one.
func Make(e error) Error {
	if e == nil {
		return nil
	}

	var err Error
	if errors.As(e, &err) {
		return err
	}

	return &ers{e: e.Error()}
}

// Is reports whether e carries an Error.
func Is(e error) bool {
	var err Error
	return errors.As(e, &err)
}

// Get returns e as an Error, or nil if it isn't one.
func Get(e error) Error {
	var err Error
	if errors.As(e, &err) {
		return err
	}
	return nil
}

func (e *ers) is(err *ers) bool {
	if e == nil || err == nil {
		return false
	}

	if st, dt := e.GetTrace(), err.GetTrace(); st != "" || dt != "" {
		return strings.EqualFold(st, dt)
	}
	if sm, dm := e.Error(), err.Error(); sm != "" || dm != "" {
		return strings.EqualFold(sm, dm)
	}
	if sc, dc := e.Code(), err.Code(); sc > 0 || dc > 0 {
		return sc == dc
	}

	return false
}

func (e *ers) Is(err error) bool {
	if err == nil {
		return false
	}
	if er, ok := err.(*ers); ok {
		return e.is(er)
	}
	return e.IsError(err)
}

func (e *ers) Add(parent ...error) {
	for _, v := range parent {
		if v == nil {
			continue
		}

		if er, ok := v.(*ers); ok {
			if e.IsError(er) {
				e.Add(er.p...)
				continue
			}
			e.p = append(e.p, er)
		} else if err, ok := v.(Error); ok {
			e.p = append(e.p, err)
		} else {
			e.p = append(e.p, &ers{e: v.Error()})
		}
	}
}

func (e *ers) IsCode(code CodeError) bool {
	return e.c == code.Uint16()
}

func (e *ers) IsError(err error) bool {
	return strings.EqualFold(e.e, err.Error())
}

func (e *ers) HasCode(code CodeError) bool {
	if e.IsCode(code) {
		return true
	}
	for _, p := range e.p {
		if p.HasCode(code) {
			return true
		}
	}
	return false
}

func (e *ers) GetCode() CodeError {
	return CodeError(e.c)
}

func (e *ers) HasError(err error) bool {
	if e.IsError(err) {
		return true
	}
	for _, p := range e.p {
		if p.IsError(err) || p.HasError(err) {
			return true
		}
	}
	return false
}

func (e *ers) HasParent() bool {
	return len(e.p) > 0
}

func (e *ers) GetParent(withSelf bool) []error {
	res := make([]error, 0, len(e.p)+1)
	if withSelf {
		res = append(res, &ers{c: e.c, e: e.e, t: e.t})
	}
	for _, er := range e.p {
		res = append(res, er.GetParent(true)...)
	}
	return res
}

func (e *ers) SetParent(parent ...error) {
	e.p = nil
	e.Add(parent...)
}

func (e *ers) Code() uint16 {
	return e.c
}

// Error renders "[Error #code] message", matching the CodeError registry's
// numbering so a log line can be grepped by code.
func (e *ers) Error() string {
	return fmt.Sprintf("[Error #%d] %s", e.c, e.e)
}

func (e *ers) StringError() string {
	return e.e
}

func (e *ers) GetError() error {
	//nolint:err113
	return errors.New(e.e)
}

func (e *ers) Unwrap() []error {
	if len(e.p) == 0 {
		return nil
	}
	res := make([]error, 0, len(e.p))
	for _, v := range e.p {
		res = append(res, v)
	}
	return res
}

func (e *ers) GetTrace() string {
	return filterTrace(e.t)
}
