// Copyright 2025 CloudWeGo Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package plyio

import (
	"math/bits"

	"github.com/bytedance/gopkg/lang/dirtmake"
)

var _ Writer = (*BytesWriter)(nil)

// BytesWriter implements Writer and accumulates a []byte result. It is
// used by SliceSource-backed writes and by tests that want the
// serialized PLY file without going through an io.Writer.
//
// It uses a deferred-copy scheme to avoid copying on every buffer
// growth: when the buffer needs to grow, the old buffer is saved and a
// new one is allocated without copying the old data; slices returned
// by Malloc still point into the old backing array. At Flush, the
// final buffer is reconstructed by copying each old snapshot's delta
// forward.
type BytesWriter struct {
	wn     int
	buf    []byte
	oldBuf [][]byte
	toBuf  *[]byte
}

// NewBytesWriter returns a BytesWriter that appends to buf[len(buf):cap(buf)].
// Existing data in buf[:len(buf)] is preserved.
func NewBytesWriter(buf *[]byte) *BytesWriter {
	return &BytesWriter{toBuf: buf, buf: *buf}
}

func (w *BytesWriter) acquire(n int) {
	if len(w.buf)+n <= cap(w.buf) {
		return
	}
	w.acquireSlow(n)
}

func (w *BytesWriter) acquireSlow(n int) {
	need := len(w.buf) + n
	ncap := 1 << bits.Len(uint(need-1))
	if ncap < defaultBufSize {
		ncap = defaultBufSize
	}
	deltaLen := len(w.buf)
	if len(w.oldBuf) > 0 {
		deltaLen -= len(w.oldBuf[len(w.oldBuf)-1])
	}
	if deltaLen > 0 {
		w.oldBuf = append(w.oldBuf, w.buf)
	}
	nbuf := dirtmake.Bytes(ncap, ncap)
	w.buf = nbuf[:len(w.buf)]
}

func (w *BytesWriter) Malloc(n int) (buf []byte, err error) {
	if n < 0 {
		err = errNegativeCount
		return
	}
	w.acquire(n)
	buf = w.buf[len(w.buf) : len(w.buf)+n]
	w.buf = w.buf[:len(w.buf)+n]
	w.wn += n
	return
}

func (w *BytesWriter) WriteBinary(bs []byte) (n int, err error) {
	w.acquire(len(bs))
	n = copy(w.buf[len(w.buf):cap(w.buf)], bs)
	w.buf = w.buf[:len(w.buf)+n]
	w.wn += n
	return
}

func (w *BytesWriter) WrittenLen() int {
	return w.wn
}

func (w *BytesWriter) Flush() (err error) {
	var offset int
	for _, old := range w.oldBuf {
		offset += copy(w.buf[offset:], old[offset:])
	}
	*w.toBuf = w.buf[:len(w.buf):len(w.buf)]
	w.oldBuf = nil
	w.wn = 0
	return nil
}
