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

package buffer

import (
	"golang.org/x/sys/unix"

	liberr "github.com/nabbar/netreactor/errors"
)

// extraBufSize is the size of the stack-allocated scratch buffer used to absorb
// whatever does not fit in the current writable region in a single readv(2) call,
// so one call can take in up to extraBufSize bytes beyond the current writable
// region while growing the buffer at most once.
const extraBufSize = 65536

// ReadFd performs one scatter-read from fd: the first iovec targets the buffer's
// own writable tail, the second (when that tail is smaller than extraBufSize)
// targets a stack scratch buffer, whose spillover is then appended, growing the
// buffer at most once per call regardless of how much data arrived.
func (b *Buffer) ReadFd(fd int) (int64, liberr.Error) {
	var extra [extraBufSize]byte

	writable := b.WritableBytes()

	iov := make([][]byte, 0, 2)
	iov = append(iov, b.data[b.writer:])
	if writable < extraBufSize {
		iov = append(iov, extra[:])
	}

	n, err := unix.Readv(fd, iov)
	if err != nil {
		if err == unix.EAGAIN {
			return 0, nil
		}
		return 0, ErrorReadFd.Error(err)
	}

	switch {
	case n <= 0:
		return int64(n), nil
	case n <= writable:
		b.writer += n
	default:
		b.writer = len(b.data)
		b.Append(extra[:n-writable])
	}

	return int64(n), nil
}

// WriteFd writes every currently readable byte to fd in a single write(2) call and
// retrieves what was written. Short writes leave the remainder readable for the
// next write-ready notification.
func (b *Buffer) WriteFd(fd int) (int64, liberr.Error) {
	n, err := unix.Write(fd, b.Peek())
	if err != nil {
		if err == unix.EAGAIN {
			return 0, nil
		}
		return 0, ErrorWriteFd.Error(err)
	}

	b.Retrieve(n)
	return int64(n), nil
}
