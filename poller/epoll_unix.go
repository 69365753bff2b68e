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

//go:build linux

package poller

import (
	"time"

	"golang.org/x/sys/unix"
)

const initialEventCap = 16

// epollPoller is the default backend on Linux.
type epollPoller struct {
	epfd     int
	events   []unix.EpollEvent
	channels map[int]Channel
}

func newEpollPoller() (Poller, error) {
	fd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, ErrorPollerCreate.Error(err)
	}

	return &epollPoller{
		epfd:     fd,
		events:   make([]unix.EpollEvent, initialEventCap),
		channels: make(map[int]Channel),
	}, nil
}

func (p *epollPoller) Poll(timeout time.Duration, active []Channel) (time.Time, []Channel, error) {
	n, err := unix.EpollWait(p.epfd, p.events, int(timeout/time.Millisecond))
	ts := time.Now()

	if err != nil {
		if err == unix.EINTR {
			return ts, active, nil
		}
		return ts, active, ErrorPollWait.Error(err)
	}

	for i := 0; i < n; i++ {
		fd := int(p.events[i].Fd)
		ch, ok := p.channels[fd]
		if !ok {
			continue
		}
		ch.SetRevents(p.events[i].Events)
		active = append(active, ch)
	}

	if n == len(p.events) {
		p.events = make([]unix.EpollEvent, len(p.events)*2)
	}

	return ts, active, nil
}

func (p *epollPoller) UpdateChannel(ch Channel) error {
	fd := ch.Fd()

	switch ch.Index() {
	case StateNew, StateDeleted:
		p.channels[fd] = ch
		ch.SetIndex(StateAdded)
		if err := p.ctl(unix.EPOLL_CTL_ADD, ch); err != nil {
			return ErrorChannelUpdate.Error(err)
		}
	default:
		if ch.Events() == 0 {
			if err := p.ctl(unix.EPOLL_CTL_DEL, ch); err != nil {
				return ErrorChannelUpdate.Error(err)
			}
			ch.SetIndex(StateDeleted)
		} else if err := p.ctl(unix.EPOLL_CTL_MOD, ch); err != nil {
			return ErrorChannelUpdate.Error(err)
		}
	}

	return nil
}

func (p *epollPoller) RemoveChannel(ch Channel) error {
	fd := ch.Fd()
	delete(p.channels, fd)

	if ch.Index() == StateAdded {
		if err := p.ctl(unix.EPOLL_CTL_DEL, ch); err != nil {
			return ErrorChannelRemove.Error(err)
		}
	}

	ch.SetIndex(StateNew)
	return nil
}

func (p *epollPoller) ctl(op int, ch Channel) error {
	ev := unix.EpollEvent{
		Events: ch.Events(),
		Fd:     int32(ch.Fd()),
	}
	return unix.EpollCtl(p.epfd, op, ch.Fd(), &ev)
}
