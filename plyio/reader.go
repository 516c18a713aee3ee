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

// Package plyio provides the buffered byte-stream primitives the ply
// header parser and record reader/writer are built on. It does not
// know anything about the PLY grammar; it only exposes a small
// nocopy-oriented Reader/Writer pair so the rest of the module can
// treat a file, a socket, or an in-memory buffer uniformly.
package plyio

// Reader is a buffered byte-stream reader, providing a user-space
// nocopy method to reduce allocation and copy overhead while scanning
// a PLY header line by line and decoding payload rows.
type Reader interface {
	// Next reads the next n bytes sequentially and returns a slice p of
	// length n, otherwise returns an error if unable to read n bytes.
	// The returned p can be a shallow copy of the internal buffer.
	// Callers must not use the returned data after the next call that
	// advances the reader, nor after Release.
	Next(n int) (p []byte, err error)

	// ReadBinary reads exactly len(bs) bytes into bs, copying. Unlike
	// Next, the data in bs remains valid after Release.
	ReadBinary(bs []byte) (n int, err error)

	// Peek behaves like Next except it does not advance the reader.
	Peek(n int) (buf []byte, err error)

	// Skip advances the reader by n bytes without returning them.
	Skip(n int) (err error)

	// ReadLen returns the number of bytes read since the last Release.
	ReadLen() (n int)

	// Release frees buffers retained by Next/Peek since the last
	// Release. e, if non-nil, is the error that ended the read (some
	// implementations only release on a clean read).
	Release(e error) (err error)
}
