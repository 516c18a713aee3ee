// Copyright 2024 CloudWeGo Authors
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
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamReader_BasicFunctionality(t *testing.T) {
	data := []byte("ply\rformat ascii 1.0\r")
	r := NewStreamReader(bytes.NewReader(data))

	buf, err := r.Next(3)
	require.NoError(t, err)
	assert.Equal(t, []byte("ply"), buf)
	assert.Equal(t, 3, r.ReadLen())

	peek, err := r.Peek(1)
	require.NoError(t, err)
	assert.Equal(t, []byte("\r"), peek)
	assert.Equal(t, 3, r.ReadLen())

	require.NoError(t, r.Skip(1))
	assert.Equal(t, 4, r.ReadLen())

	rest, err := r.Next(len("format ascii 1.0\r"))
	require.NoError(t, err)
	assert.Equal(t, []byte("format ascii 1.0\r"), rest)

	var tail [4]byte
	n, err := r.ReadBinary(tail[:])
	require.Equal(t, io.EOF, err)
	assert.Equal(t, 0, n)

	require.NoError(t, r.Release(nil))
}

func TestStreamReader_NegativeCount(t *testing.T) {
	r := NewStreamReader(bytes.NewReader([]byte("data")))
	_, err := r.Next(-1)
	assert.Equal(t, errNegativeCount, err)
	_, err = r.Peek(-1)
	assert.Equal(t, errNegativeCount, err)
	err = r.Skip(-1)
	assert.Equal(t, errNegativeCount, err)
}

func TestStreamReader_SpansAcquireBoundary(t *testing.T) {
	data := bytes.Repeat([]byte("x"), defaultBufSize+128)
	r := NewStreamReaderSize(bytes.NewReader(data), 64)

	buf, err := r.Next(defaultBufSize + 100)
	require.NoError(t, err)
	assert.Len(t, buf, defaultBufSize+100)

	require.NoError(t, r.Skip(28))
	assert.Equal(t, defaultBufSize+128, r.ReadLen())
}

func TestStreamReader_SkipBeyondBuffer(t *testing.T) {
	data := bytes.Repeat([]byte("y"), skipBufSize+10)
	r := NewStreamReader(bytes.NewReader(data))
	require.NoError(t, r.Skip(len(data)))
	assert.Equal(t, len(data), r.ReadLen())
}
