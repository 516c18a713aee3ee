// Copyright 2024 CloudWeGo Authors
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
	"errors"
	"io"

	"github.com/bytedance/gopkg/lang/mcache"
)

const maxConsecutiveEmptyReads = 100

var _ Reader = (*StreamReader)(nil)

// StreamReader is a Reader over an io.Reader, such as an *os.File or a
// net.Conn. It is the Reader used by HeaderParser and RecordReader
// whenever the caller hands them a byte stream rather than an
// in-memory buffer.
type StreamReader struct {
	buf    []byte // buf[ri:] is the buffer for reading.
	ri     int    // buf read position
	ref    bool   // Next/Peek returned a slice into buf
	toFree [][]byte

	rn int // read len since last Release

	bufSize int // minimum buffer size for acquire

	rd  io.Reader
	err error

	maxSizeStats maxSizeStats
}

const (
	defaultBufSize        = 8 * 1024
	directlyReadThreshold = 4 * 1024
	skipBufSize           = 64 * 1024
)

var errNegativeCount = errors.New("plyio: negative count")

// NewStreamReader returns a StreamReader reading from rd with a
// default internal buffer size.
func NewStreamReader(rd io.Reader) *StreamReader {
	return NewStreamReaderSize(rd, defaultBufSize)
}

// NewStreamReaderSize returns a StreamReader reading from rd with at
// least the given internal buffer size.
func NewStreamReaderSize(rd io.Reader, size int) *StreamReader {
	if size < defaultBufSize {
		size = defaultBufSize
	}
	return &StreamReader{rd: rd, bufSize: size}
}

// Buffered returns the number of bytes currently held in the internal
// buffer and not yet consumed.
func (r *StreamReader) Buffered() int {
	return len(r.buf) - r.ri
}

func (r *StreamReader) acquire(n int) error {
	if r.err != nil {
		return r.err
	}

	if n > cap(r.buf)-r.ri {
		size := r.maxSizeStats.maxSize()
		if size < r.bufSize {
			size = r.bufSize
		}
		for ; size < n; size *= 2 {
		}
		buf := mcache.Malloc(size)
		if len(r.buf)-r.ri > 0 {
			copy(buf, r.buf[r.ri:])
		}
		if cap(r.buf) > 0 {
			if r.ref {
				r.toFree = append(r.toFree, r.buf)
			} else {
				mcache.Free(r.buf)
			}
		}
		r.buf = buf[:len(r.buf)-r.ri]
		r.ri = 0
		r.ref = false
	}

	need := n - r.Buffered()
	if need <= 0 {
		panic("[BUG] acquire with enough buffer")
	}
	var nl int
	nl, r.err = readAtLeast(r.rd, r.buf[len(r.buf):cap(r.buf)], need)
	r.buf = r.buf[:len(r.buf)+nl]
	return r.err
}

func (r *StreamReader) Next(n int) (buf []byte, err error) {
	if n < 0 {
		err = errNegativeCount
		return
	}
	if n > r.Buffered() {
		if err = r.acquire(n); err != nil {
			return
		}
	}
	buf = r.buf[r.ri : r.ri+n : r.ri+n]
	r.ri += n
	r.rn += n
	if n > 0 {
		r.ref = true
	}
	return
}

func readAtLeast(r io.Reader, buf []byte, min int) (n int, err error) {
	if len(buf) < min {
		return 0, io.ErrShortBuffer
	}
	emptyRead := 0
	for n < min && err == nil {
		var nn int
		nn, err = r.Read(buf[n:])
		n += nn
		if nn > 0 {
			emptyRead = 0
			continue
		}
		emptyRead++
		if emptyRead > maxConsecutiveEmptyReads {
			err = io.ErrNoProgress
			return
		}
	}
	if n >= min {
		err = nil
	} else if n > 0 && err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return
}

func (r *StreamReader) Peek(n int) (buf []byte, err error) {
	if n < 0 {
		err = errNegativeCount
		return
	}
	if n > r.Buffered() {
		if err = r.acquire(n); err != nil {
			end := len(r.buf)
			buf = r.buf[r.ri:end:end]
			if len(buf) > 0 {
				r.ref = true
			}
			return
		}
	}
	buf = r.buf[r.ri : r.ri+n : r.ri+n]
	if n > 0 {
		r.ref = true
	}
	return
}

func (r *StreamReader) Skip(n int) (err error) {
	if n < 0 {
		err = errNegativeCount
		return
	}
	if bufn := r.Buffered(); n > bufn {
		r.ri += bufn
		r.rn += bufn
		n -= bufn
		if !r.ref && cap(r.buf) > 0 {
			mcache.Free(r.buf)
			r.buf = nil
			r.ri = 0
		}
		var nn int
		nn, r.err = skipReader(r.rd, n)
		r.rn += nn
		err = r.err
		return
	}
	r.ri += n
	r.rn += n
	return
}

func skipReader(rd io.Reader, n int) (skipped int, err error) {
	buf := mcache.Malloc(skipBufSize)
	defer mcache.Free(buf)
	var emptyRead int
	for skipped < n {
		sz := n - skipped
		if sz > skipBufSize {
			sz = skipBufSize
		}
		var nn int
		nn, err = rd.Read(buf[:sz])
		skipped += nn
		if nn > 0 {
			emptyRead = 0
		} else {
			emptyRead++
			if emptyRead > maxConsecutiveEmptyReads {
				return skipped, io.ErrNoProgress
			}
		}
		if err != nil {
			break
		}
	}
	if skipped >= n {
		err = nil
	} else if skipped > 0 && err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return
}

func (r *StreamReader) ReadLen() (n int) {
	return r.rn
}

// ReadBinary reads exactly len(bs) bytes into bs, blocking until done
// or returning the actual read length and error if the stream is
// exhausted first.
func (r *StreamReader) ReadBinary(bs []byte) (n int, err error) {
	if len(bs) == 0 {
		return
	}
	n = copy(bs, r.buf[r.ri:])
	r.ri += n
	if need := len(bs) - n; need > 0 {
		if need >= directlyReadThreshold {
			var nn int
			nn, r.err = readAtLeast(r.rd, bs[n:], need)
			n += nn
			err = r.err
		} else {
			err = r.acquire(need)
			m := copy(bs[n:], r.buf[r.ri:])
			r.ri += m
			n += m
		}
		r.rn += n
		return
	}
	r.rn += n
	return
}

// Release frees buffers retained by Next/Peek. Call it once per
// header parse / record read before starting the next, or at the end
// of use.
func (r *StreamReader) Release(e error) error {
	if r.toFree != nil {
		for i, buf := range r.toFree {
			mcache.Free(buf)
			r.toFree[i] = nil
		}
		r.toFree = r.toFree[:0]
	}
	if len(r.buf)-r.ri == 0 {
		if cap(r.buf) > 0 {
			mcache.Free(r.buf)
		}
		r.buf = nil
		r.ri = 0
	}
	r.ref = false
	r.maxSizeStats.update(r.rn)
	r.rn = 0
	// DO NOT reset r.err: a later call must keep returning it.
	return nil
}

const (
	statsBucketNum = 10
	maxSizeLimit   = 8 * 1024 * 1024
)

type maxSizeStats struct {
	buckets   [statsBucketNum]int
	bucketIdx int
	_maxSize  int
}

func (s *maxSizeStats) update(size int) {
	s.buckets[s.bucketIdx] = size
	s.bucketIdx = (s.bucketIdx + 1) % statsBucketNum
	var maxSize int
	for _, size := range s.buckets {
		if maxSize < size {
			maxSize = size
		}
	}
	if maxSize > maxSizeLimit {
		maxSize = maxSizeLimit
	}
	s._maxSize = maxSize
}

func (s *maxSizeStats) maxSize() int {
	return s._maxSize
}
