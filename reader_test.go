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

package ply

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plyodine/ply/plyio"
)

type recordedCall struct {
	element  string
	property string
	ordinal  int
	value    Value
}

type collectSink struct {
	header  *Header
	calls   []recordedCall
	finished bool
}

func (s *collectSink) Start(h *Header) error { s.header = h; return nil }

func (s *collectSink) Handle(element, property string, ordinal int, value Value) error {
	s.calls = append(s.calls, recordedCall{element, property, ordinal, value})
	return nil
}

func (s *collectSink) Finish() error { s.finished = true; return nil }

func TestRecordReader_Ascii(t *testing.T) {
	src := "ply\nformat ascii 1.0\n" +
		"element vertex 2\n" +
		"property float x\n" +
		"property float y\n" +
		"element face 1\n" +
		"property list uchar int vertex_indices\n" +
		"end_header\n" +
		"0 1\n" +
		"2 3\n" +
		"3 0 1 2\n"
	hdr, n, err := ParseHeader(plyio.NewBytesReader([]byte(src)))
	require.NoError(t, err)

	r := plyio.NewBytesReader([]byte(src)[n:])
	sink := &collectSink{}
	rr := NewRecordReader(hdr, r)
	require.NoError(t, rr.ReadAll(sink))
	assert.True(t, sink.finished)
	require.Len(t, sink.calls, 5)
	assert.Equal(t, "vertex", sink.calls[0].element)
	assert.Equal(t, 0.0, sink.calls[0].value.Float())
	assert.Equal(t, 1.0, sink.calls[1].value.Float())
	assert.Equal(t, "face", sink.calls[4].element)
	assert.Equal(t, []Scalar{{I: 0}, {I: 1}, {I: 2}}, sink.calls[4].value.List)
}

func TestRecordReader_Ascii_TooFewTokens(t *testing.T) {
	src := "ply\nformat ascii 1.0\nelement vertex 1\nproperty float x\nproperty float y\nend_header\n1\n"
	hdr, n, err := ParseHeader(plyio.NewBytesReader([]byte(src)))
	require.NoError(t, err)
	r := plyio.NewBytesReader([]byte(src)[n:])
	err = NewRecordReader(hdr, r).ReadAll(&collectSink{})
	require.Error(t, err)
	assert.True(t, NewError(TooFewTokens).Is(err))
}

func TestRecordReader_Ascii_ExtraTokens(t *testing.T) {
	src := "ply\nformat ascii 1.0\nelement vertex 1\nproperty float x\nend_header\n1 2\n"
	hdr, n, err := ParseHeader(plyio.NewBytesReader([]byte(src)))
	require.NoError(t, err)
	r := plyio.NewBytesReader([]byte(src)[n:])
	err = NewRecordReader(hdr, r).ReadAll(&collectSink{})
	require.Error(t, err)
	assert.True(t, NewError(ExtraTokens).Is(err))
}

func TestRecordReader_Binary(t *testing.T) {
	src := "ply\nformat binary_big_endian 1.0\nelement vertex 1\nproperty uchar x\nend_header\n"
	hdr, n, err := ParseHeader(plyio.NewBytesReader([]byte(src)))
	require.NoError(t, err)
	payload := append([]byte(nil), []byte(src)[n:]...)
	payload = append(payload, 42)
	r := plyio.NewBytesReader(payload)
	sink := &collectSink{}
	require.NoError(t, NewRecordReader(hdr, r).ReadAll(sink))
	require.Len(t, sink.calls, 1)
	assert.Equal(t, int64(42), sink.calls[0].value.Int())
}
