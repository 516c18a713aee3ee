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

import "errors"

var errNoRemainingData = errors.New("plyio: no remaining data left")

var _ Reader = (*BytesReader)(nil)

// BytesReader is a Reader over a fixed in-memory buffer. It is used by
// tests and by any caller that already holds the whole PLY file in
// memory and wants to parse it without going through an io.Reader.
type BytesReader struct {
	buf []byte
	ri  int
}

// NewBytesReader returns a BytesReader reading buf[:len(buf)]. It does
// not copy or mutate buf.
func NewBytesReader(buf []byte) *BytesReader {
	return &BytesReader{buf: buf}
}

func (r *BytesReader) Next(n int) (buf []byte, err error) {
	if n < 0 {
		err = errNegativeCount
		return
	}
	if n > len(r.buf)-r.ri {
		err = errNoRemainingData
		return
	}
	buf = r.buf[r.ri : r.ri+n]
	r.ri += n
	return
}

func (r *BytesReader) Peek(n int) (buf []byte, err error) {
	if n < 0 {
		err = errNegativeCount
		return
	}
	if n > len(r.buf)-r.ri {
		err = errNoRemainingData
		return
	}
	buf = r.buf[r.ri : r.ri+n]
	return
}

func (r *BytesReader) Skip(n int) (err error) {
	if n < 0 {
		err = errNegativeCount
		return
	}
	if n > len(r.buf)-r.ri {
		err = errNoRemainingData
		return
	}
	r.ri += n
	return
}

func (r *BytesReader) ReadLen() (n int) {
	return r.ri
}

func (r *BytesReader) ReadBinary(bs []byte) (n int, err error) {
	if len(bs) > len(r.buf)-r.ri {
		err = errNoRemainingData
		return
	}
	n = copy(bs, r.buf[r.ri:])
	r.ri += n
	return
}

func (r *BytesReader) Release(e error) error {
	r.buf = r.buf[r.ri:]
	r.ri = 0
	return nil
}
