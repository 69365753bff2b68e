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

package reactor

import (
	"github.com/nabbar/netreactor/logger"
)

// Pool owns a base loop plus N sub-loops started on demand, and round-robins
// connection dispatch across the sub-loops (or keeps everything on the base loop
// when N == 0).
type Pool struct {
	log     logger.Logger
	base    *Loop
	threads []*LoopThread
	loops   []*Loop
	next    int
}

// NewPool wraps baseLoop; Start decides, based on the requested thread count,
// whether any sub-loops actually get spawned.
func NewPool(log logger.Logger, baseLoop *Loop) *Pool {
	return &Pool{log: log, base: baseLoop}
}

// Start spawns n loop-threads and collects their loops. If n == 0, initCb (when
// non-nil) runs once against the base loop and no sub-loops are created.
func (p *Pool) Start(n int, initCb func(*Loop)) {
	if n <= 0 {
		if initCb != nil {
			initCb(p.base)
		}
		return
	}

	p.threads = make([]*LoopThread, n)
	p.loops = make([]*Loop, n)

	for i := 0; i < n; i++ {
		t := NewLoopThread(p.log, initCb)
		p.threads[i] = t
		p.loops[i] = t.StartLoop()
	}
}

// GetNextLoop returns the base loop when no sub-loops exist, else round-robins
// through the sub-loop list.
func (p *Pool) GetNextLoop() *Loop {
	if len(p.loops) == 0 {
		return p.base
	}

	l := p.loops[p.next]
	p.next = (p.next + 1) % len(p.loops)
	return l
}

// GetAllLoops returns every loop that takes part in the pool: just the base loop
// when N == 0, else the full sub-loop list.
func (p *Pool) GetAllLoops() []*Loop {
	if len(p.loops) == 0 {
		return []*Loop{p.base}
	}
	return p.loops
}
