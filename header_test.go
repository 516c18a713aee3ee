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

func TestParseHeader_MinimalVertexOnly(t *testing.T) {
	src := "ply\n" +
		"format ascii 1.0\n" +
		"comment made by test\n" +
		"element vertex 3\n" +
		"property float x\n" +
		"property float y\n" +
		"property float z\n" +
		"end_header\n"
	r := plyio.NewBytesReader([]byte(src))
	hdr, n, err := ParseHeader(r)
	require.NoError(t, err)
	assert.Equal(t, int64(len(src)), n)
	assert.Equal(t, Ascii, hdr.Format)
	assert.Equal(t, []string{"made by test"}, hdr.Comments)
	require.Len(t, hdr.Elements, 1)
	assert.Equal(t, "vertex", hdr.Elements[0].Name)
	assert.Equal(t, uint64(3), hdr.Elements[0].Count)
	require.Len(t, hdr.Elements[0].Properties, 3)
	assert.Equal(t, "x", hdr.Elements[0].Properties[0].Name)
}

func TestParseHeader_ListProperty(t *testing.T) {
	src := "ply\n" +
		"format binary_little_endian 1.0\n" +
		"element face 2\n" +
		"property list uchar int vertex_indices\n" +
		"end_header\n"
	r := plyio.NewBytesReader([]byte(src))
	hdr, _, err := ParseHeader(r)
	require.NoError(t, err)
	prop := hdr.Elements[0].Properties[0]
	assert.True(t, prop.Kind.IsList)
	assert.Equal(t, U8, prop.Kind.SizeKind)
	assert.Equal(t, I32, prop.Kind.ElemKind)
}

func TestParseHeader_MissingMagic(t *testing.T) {
	r := plyio.NewBytesReader([]byte("nope\nformat ascii 1.0\nend_header\n"))
	_, _, err := ParseHeader(r)
	require.Error(t, err)
	assert.True(t, NewError(MissingMagic).Is(err))
}

func TestParseHeader_DuplicateElementName(t *testing.T) {
	src := "ply\nformat ascii 1.0\n" +
		"element vertex 1\nproperty float x\n" +
		"element vertex 1\nproperty float x\n" +
		"end_header\n"
	_, _, err := ParseHeader(plyio.NewBytesReader([]byte(src)))
	require.Error(t, err)
	assert.True(t, NewError(DuplicateElementName).Is(err))
}

func TestParseHeader_NakedProperty(t *testing.T) {
	src := "ply\nformat ascii 1.0\nproperty float x\nend_header\n"
	_, _, err := ParseHeader(plyio.NewBytesReader([]byte(src)))
	require.Error(t, err)
	assert.True(t, NewError(NakedProperty).Is(err))
}

func TestParseHeader_ListSizeMustNotBeFloat(t *testing.T) {
	src := "ply\nformat ascii 1.0\nelement face 1\n" +
		"property list float int vertex_indices\nend_header\n"
	_, _, err := ParseHeader(plyio.NewBytesReader([]byte(src)))
	require.Error(t, err)
	assert.True(t, NewError(ListTypeFloat).Is(err))
}

func TestParseHeader_LineLeadsWithSpace(t *testing.T) {
	src := "ply\n format ascii 1.0\nend_header\n"
	_, _, err := ParseHeader(plyio.NewBytesReader([]byte(src)))
	require.Error(t, err)
	assert.True(t, NewError(LineLeadsWithSpace).Is(err))
}

func TestParseHeader_ExtraSpaces(t *testing.T) {
	src := "ply\nformat  ascii 1.0\nend_header\n"
	_, _, err := ParseHeader(plyio.NewBytesReader([]byte(src)))
	require.Error(t, err)
	assert.True(t, NewError(LineExtraSpaces).Is(err))
}

func TestParseHeader_UnsupportedVersion(t *testing.T) {
	src := "ply\nformat ascii 2.0\nend_header\n"
	_, _, err := ParseHeader(plyio.NewBytesReader([]byte(src)))
	require.Error(t, err)
	assert.True(t, NewError(UnsupportedVersion).Is(err))
}

func TestParseHeader_CRLFLineEndingDetectedAndEnforced(t *testing.T) {
	src := "ply\r\nformat ascii 1.0\r\nelement vertex 1\r\nproperty float x\r\nend_header\r\n"
	hdr, n, err := ParseHeader(plyio.NewBytesReader([]byte(src)))
	require.NoError(t, err)
	assert.Equal(t, "\r\n", hdr.LineEnding)
	assert.Equal(t, int64(len(src)), n)
}

func TestParseHeader_MismatchedLineEndings(t *testing.T) {
	src := "ply\nformat ascii 1.0\r\nend_header\n"
	_, _, err := ParseHeader(plyio.NewBytesReader([]byte(src)))
	require.Error(t, err)
	assert.True(t, NewError(MismatchedLineEndings).Is(err))
}
