// Copyright 2025 CloudWeGo Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package plyio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBytesReader_BasicFunctionality(t *testing.T) {
	r := NewBytesReader([]byte("ply\rformat ascii 1.0\r"))

	buf, err := r.Next(3)
	require.NoError(t, err)
	assert.Equal(t, []byte("ply"), buf)

	peek, err := r.Peek(1)
	require.NoError(t, err)
	assert.Equal(t, []byte("\r"), peek)

	require.NoError(t, r.Skip(1))
	assert.Equal(t, 4, r.ReadLen())

	_, err = r.Next(1000)
	assert.Equal(t, errNoRemainingData, err)

	require.NoError(t, r.Release(nil))
	assert.Equal(t, 0, r.ReadLen())
}

func TestBytesWriter_GrowsWithoutCopyingUntilFlush(t *testing.T) {
	var out []byte
	w := NewBytesWriter(&out)

	buf, err := w.Malloc(3)
	require.NoError(t, err)
	copy(buf, "ply")

	for i := 0; i < defaultBufSize; i++ {
		_, err := w.WriteBinary([]byte{'.'})
		require.NoError(t, err)
	}

	require.NoError(t, w.Flush())
	assert.Equal(t, "ply"+stringsRepeatDot(defaultBufSize), string(out))
	assert.Equal(t, 0, w.WrittenLen())
}

func stringsRepeatDot(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = '.'
	}
	return string(b)
}
