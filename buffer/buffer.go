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

// Package buffer implements the application-level growable FIFO byte buffer used
// for both the inbound and outbound side of every TCP connection: a contiguous
// region with prepend headroom, reader and writer indices, and a compact-or-grow
// policy on append.
package buffer

const (
	// CheapPrepend is the headroom reserved at the front of every buffer so a
	// protocol can stamp a length/type prefix without a second allocation.
	CheapPrepend = 8

	// InitialSize is the default size of the readable/writable region, excluding
	// the prepend headroom.
	InitialSize = 1024
)

// Buffer is a contiguous byte region with three indices (prepend headroom, reader,
// writer) satisfying 0 <= reader <= writer <= len(data). It is not safe for
// concurrent use; every Buffer belongs to exactly one connection and is touched
// only on that connection's owning loop goroutine.
type Buffer struct {
	data   []byte
	reader int
	writer int
}

// New returns a Buffer with the default initial size.
func New() *Buffer {
	return NewSize(InitialSize)
}

// NewSize returns a Buffer whose writable region can hold size bytes before any
// growth, plus the fixed prepend headroom.
func NewSize(size int) *Buffer {
	return &Buffer{
		data:   make([]byte, CheapPrepend+size),
		reader: CheapPrepend,
		writer: CheapPrepend,
	}
}

// ReadableBytes returns the number of bytes available to Peek/Retrieve.
func (b *Buffer) ReadableBytes() int {
	return b.writer - b.reader
}

// WritableBytes returns the number of bytes that can be appended without growth.
func (b *Buffer) WritableBytes() int {
	return len(b.data) - b.writer
}

// PrependableBytes returns the number of bytes currently available before the
// reader index, including the fixed headroom recovered by a previous Retrieve.
func (b *Buffer) PrependableBytes() int {
	return b.reader
}

// Peek returns the readable window without consuming it. The slice aliases the
// buffer's storage and is only valid until the next mutating call.
func (b *Buffer) Peek() []byte {
	return b.data[b.reader:b.writer]
}

// Retrieve advances the reader index by n, or resets both indices to the headroom
// boundary if n covers (or exceeds) everything readable.
func (b *Buffer) Retrieve(n int) {
	if n < b.ReadableBytes() {
		b.reader += n
	} else {
		b.RetrieveAll()
	}
}

// RetrieveAll resets both indices to the headroom boundary, discarding all
// readable bytes without copying them out.
func (b *Buffer) RetrieveAll() {
	b.reader = CheapPrepend
	b.writer = CheapPrepend
}

// RetrieveAsString copies out the first n readable bytes as a string, then
// retrieves them.
func (b *Buffer) RetrieveAsString(n int) string {
	s := string(b.Peek()[:n])
	b.Retrieve(n)
	return s
}

// RetrieveAllAsString copies out every readable byte as a string, then retrieves
// all of them.
func (b *Buffer) RetrieveAllAsString() string {
	return b.RetrieveAsString(b.ReadableBytes())
}

// Append writes p at the writer index, growing the buffer first via
// EnsureWritable if necessary.
func (b *Buffer) Append(p []byte) {
	b.EnsureWritable(len(p))
	copy(b.data[b.writer:], p)
	b.writer += len(p)
}

// Prepend writes p immediately before the current reader index, into the
// headroom. The caller must not prepend more than PrependableBytes() at once
// — prepend is meant for small fixed-size framing prefixes, never grown on
// demand.
func (b *Buffer) Prepend(p []byte) {
	b.reader -= len(p)
	copy(b.data[b.reader:], p)
}

// EnsureWritable guarantees WritableBytes() >= n, compacting in place when the
// combined writable-plus-reclaimable-prepend space suffices, else growing the
// underlying region.
func (b *Buffer) EnsureWritable(n int) {
	if b.WritableBytes() >= n {
		return
	}

	if b.WritableBytes()+b.PrependableBytes()-CheapPrepend >= n {
		readable := b.ReadableBytes()
		copy(b.data[CheapPrepend:], b.data[b.reader:b.writer])
		b.reader = CheapPrepend
		b.writer = b.reader + readable
		return
	}

	grown := make([]byte, b.writer+n)
	copy(grown, b.data[:b.writer])
	b.data = grown
}
