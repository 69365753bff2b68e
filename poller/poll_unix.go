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

//go:build unix

package poller

import (
	"time"

	"golang.org/x/sys/unix"
)

// pollPoller is the portable fallback selected by MUDUO_USE_POLL, or the
// only backend available on non-Linux unix targets.
type pollPoller struct {
	fds      []unix.PollFd
	channels map[int]Channel
}

func newPollPoller() (Poller, error) {
	return &pollPoller{
		channels: make(map[int]Channel),
	}, nil
}

func (p *pollPoller) Poll(timeout time.Duration, active []Channel) (time.Time, []Channel, error) {
	n, err := unix.Poll(p.fds, int(timeout/time.Millisecond))
	ts := time.Now()

	if err != nil {
		if err == unix.EINTR {
			return ts, active, nil
		}
		return ts, active, ErrorPollWait.Error(err)
	}

	if n <= 0 {
		return ts, active, nil
	}

	for i := range p.fds {
		if p.fds[i].Revents == 0 {
			continue
		}
		ch, ok := p.channels[int(p.fds[i].Fd)]
		if !ok {
			continue
		}
		ch.SetRevents(uint32(p.fds[i].Revents))
		active = append(active, ch)
	}

	return ts, active, nil
}

func (p *pollPoller) UpdateChannel(ch Channel) error {
	fd := ch.Fd()

	if ch.Index() < 0 {
		p.channels[fd] = ch
		p.fds = append(p.fds, unix.PollFd{Fd: int32(fd), Events: int16(ch.Events())})
		ch.SetIndex(len(p.fds) - 1)
		return nil
	}

	idx := ch.Index()
	p.fds[idx].Events = int16(ch.Events())
	p.fds[idx].Revents = 0
	return nil
}

func (p *pollPoller) RemoveChannel(ch Channel) error {
	fd := ch.Fd()
	idx := ch.Index()
	if idx < 0 {
		return nil
	}

	last := len(p.fds) - 1
	if idx != last {
		p.fds[idx] = p.fds[last]
		for _, other := range p.channels {
			if other.Fd() == int(p.fds[idx].Fd) && other != ch {
				other.SetIndex(idx)
			}
		}
	}
	p.fds = p.fds[:last]

	delete(p.channels, fd)
	ch.SetIndex(StateNew)
	return nil
}
