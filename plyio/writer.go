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

// Writer is a buffered byte-stream writer, providing a user-space
// nocopy method to reduce allocation and copy overhead while emitting
// a PLY header and payload.
type Writer interface {
	// Malloc returns a slice of length n taken from the write buffer.
	// Data written to it is only guaranteed to reach the underlying
	// stream after Flush.
	Malloc(n int) (buf []byte, err error)

	// WriteBinary appends bs to the buffer; it may be a nocopy write
	// for large bs. Callers must not mutate bs before Flush.
	WriteBinary(bs []byte) (n int, err error)

	// WrittenLen returns the number of bytes buffered since the last
	// Flush.
	WrittenLen() (length int)

	// Flush writes any buffered data to the underlying stream and
	// resets WrittenLen to zero.
	Flush() (err error)
}
