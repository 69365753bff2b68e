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

//go:build unix && !linux

package reactor

import (
	"golang.org/x/sys/unix"

	liberr "github.com/nabbar/netreactor/errors"
)

// newWakeDescriptor falls back to a pipe(2) pair on unix targets without
// eventfd(2): the write end wakes the loop, the read end is what its channel
// watches for read-ready.
func newWakeDescriptor() (read int, write int, err liberr.Error) {
	var fds [2]int
	if e := unix.Pipe2(fds[:], unix.O_NONBLOCK|unix.O_CLOEXEC); e != nil {
		return 0, 0, ErrorEventFdCreate.Error(e)
	}
	return fds[0], fds[1], nil
}

func wakeWrite(fd int) error {
	_, err := unix.Write(fd, []byte{1})
	return err
}

func wakeDrain(fd int) error {
	var buf [64]byte
	_, err := unix.Read(fd, buf[:])
	return err
}
