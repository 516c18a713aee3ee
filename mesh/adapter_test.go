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

package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plyodine/ply"
	"github.com/plyodine/ply/plyio"
)

func TestTriangleMeshAdapter_FanTriangulatesPentagon(t *testing.T) {
	src := "ply\nformat ascii 1.0\n" +
		"element vertex 5\n" +
		"property float x\nproperty float y\nproperty float z\n" +
		"element face 1\n" +
		"property list uchar int vertex_indices\n" +
		"end_header\n" +
		"0 0 0\n1 0 0\n1 1 0\n0.5 1.5 0\n0 1 0\n" +
		"5 0 1 2 3 4\n"
	hdr, n, err := ply.ParseHeader(plyio.NewBytesReader([]byte(src)))
	require.NoError(t, err)

	a := NewTriangleMeshAdapter()
	r := plyio.NewBytesReader([]byte(src)[n:])
	require.NoError(t, ply.NewRecordReader(hdr, r).ReadAll(a))

	m := a.Mesh()
	require.Len(t, m.Vertices, 5)
	require.Len(t, m.Triangles, 3)
	assert.Equal(t, [3]uint32{0, 1, 2}, m.Triangles[0])
	assert.Equal(t, [3]uint32{0, 2, 3}, m.Triangles[1])
	assert.Equal(t, [3]uint32{0, 3, 4}, m.Triangles[2])
}

func TestTriangleMeshAdapter_NormalsAndUV(t *testing.T) {
	src := "ply\nformat ascii 1.0\n" +
		"element vertex 1\n" +
		"property float x\nproperty float y\nproperty float z\n" +
		"property float nx\nproperty float ny\nproperty float nz\n" +
		"property float u\nproperty float v\n" +
		"element face 0\n" +
		"property list uchar int vertex_indices\n" +
		"end_header\n" +
		"1 2 3 0 0 1 0.25 0.75\n"
	hdr, n, err := ply.ParseHeader(plyio.NewBytesReader([]byte(src)))
	require.NoError(t, err)

	a := NewTriangleMeshAdapter()
	require.NoError(t, ply.NewRecordReader(hdr, plyio.NewBytesReader([]byte(src)[n:])).ReadAll(a))

	v := a.Mesh().Vertices[0]
	assert.Equal(t, Vector3{1, 2, 3}, v.Position)
	require.NotNil(t, v.Normal)
	assert.Equal(t, Vector3{0, 0, 1}, *v.Normal)
	require.NotNil(t, v.UV)
	assert.Equal(t, Vector2{0.25, 0.75}, *v.UV)
}

func TestTriangleMeshAdapter_VertexIndexOutOfRange(t *testing.T) {
	src := "ply\nformat ascii 1.0\n" +
		"element vertex 1\nproperty float x\nproperty float y\nproperty float z\n" +
		"element face 1\nproperty list uchar int vertex_indices\n" +
		"end_header\n0 0 0\n3 0 1 2\n"
	hdr, n, err := ply.ParseHeader(plyio.NewBytesReader([]byte(src)))
	require.NoError(t, err)

	a := NewTriangleMeshAdapter()
	err = ply.NewRecordReader(hdr, plyio.NewBytesReader([]byte(src)[n:])).ReadAll(a)
	require.Error(t, err)
	assert.True(t, ply.NewError(ply.VertexIndexOutOfRange).Is(err))
}

func TestTriangleMeshAdapter_MissingXYZ(t *testing.T) {
	src := "ply\nformat ascii 1.0\nelement vertex 1\nproperty float x\nend_header\n1\n"
	hdr, _, err := ply.ParseHeader(plyio.NewBytesReader([]byte(src)))
	require.NoError(t, err)

	a := NewTriangleMeshAdapter()
	err = a.Start(hdr)
	require.Error(t, err)
	assert.True(t, ply.NewError(ply.MissingXYZ).Is(err))
}
