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

// Package mesh adapts a streamed PLY "vertex"/"face" schema into an
// in-memory triangle mesh, fan-triangulating any face with more than
// three vertex indices.
package mesh

import "github.com/plyodine/ply"

// Vector3 is a position or normal.
type Vector3 struct{ X, Y, Z float64 }

// Vector2 is a texture coordinate pair.
type Vector2 struct{ U, V float64 }

// Vertex is one row of the recognized "vertex" element. Normal and UV
// are nil when the source header declared neither nx/ny/nz nor a
// recognized texture-coordinate pair.
type Vertex struct {
	Position Vector3
	Normal   *Vector3
	UV       *Vector2
}

func (v *Vertex) ensureNormal() *Vector3 {
	if v.Normal == nil {
		v.Normal = new(Vector3)
	}
	return v.Normal
}

func (v *Vertex) ensureUV() *Vector2 {
	if v.UV == nil {
		v.UV = new(Vector2)
	}
	return v.UV
}

// Mesh is the triangle mesh assembled by a TriangleMeshAdapter: one
// Vertex per row of the source "vertex" element, and one [3]uint32 of
// vertex indices per triangle produced by fan-triangulating the
// source "face" element's vertex_indices.
type Mesh struct {
	Vertices  []Vertex
	Triangles [][3]uint32
}

// TriangleMeshAdapter is a ply.Sink that recognizes the conventional
// mesh schema (a "vertex" element with x/y/z, optional nx/ny/nz,
// optional texture coordinates; a "face" element with an integral list
// property named vertex_indices or vertex_index) and assembles it into
// a Mesh. Start fails with MissingFaceIndices when the header has no
// "face" element.
type TriangleMeshAdapter struct {
	mesh Mesh

	vertexElem        string
	xName, yName, zName string
	hasNormal         bool
	hasUV             bool
	uName, vName      string
	vertexCount       int

	faceElem    string
	faceIdxName string
}

// NewTriangleMeshAdapter returns an empty TriangleMeshAdapter.
func NewTriangleMeshAdapter() *TriangleMeshAdapter {
	return &TriangleMeshAdapter{}
}

// Mesh returns the mesh assembled so far. It is only complete once
// the driving RecordReader.ReadAll has returned successfully.
func (a *TriangleMeshAdapter) Mesh() *Mesh { return &a.mesh }

func (a *TriangleMeshAdapter) Start(h *ply.Header) error {
	vi := h.ElementIndex("vertex")
	if vi < 0 {
		return ply.NewError(ply.MissingXYZ)
	}
	ve := &h.Elements[vi]

	xi, yi, zi := ve.PropertyIndex("x"), ve.PropertyIndex("y"), ve.PropertyIndex("z")
	if xi < 0 || yi < 0 || zi < 0 {
		return ply.NewError(ply.MissingXYZ)
	}
	for _, idx := range [3]int{xi, yi, zi} {
		if !scalarFloat(ve.Properties[idx].Kind) {
			return ply.NewError(ply.XYZWrongType)
		}
	}
	a.vertexElem, a.xName, a.yName, a.zName = "vertex", "x", "y", "z"

	nxi, nyi, nzi := ve.PropertyIndex("nx"), ve.PropertyIndex("ny"), ve.PropertyIndex("nz")
	a.hasNormal = nxi >= 0 && nyi >= 0 && nzi >= 0
	if a.hasNormal {
		for _, idx := range [3]int{nxi, nyi, nzi} {
			if !scalarFloat(ve.Properties[idx].Kind) {
				return ply.NewError(ply.NormalWrongType)
			}
		}
	}

	for _, pair := range [][2]string{{"u", "v"}, {"s", "t"}, {"texture_u", "texture_v"}, {"texture_s", "texture_t"}} {
		ui, vi2 := ve.PropertyIndex(pair[0]), ve.PropertyIndex(pair[1])
		if ui >= 0 && vi2 >= 0 {
			if !scalarFloat(ve.Properties[ui].Kind) || !scalarFloat(ve.Properties[vi2].Kind) {
				return ply.NewError(ply.UVWrongType)
			}
			a.hasUV, a.uName, a.vName = true, pair[0], pair[1]
			break
		}
	}

	a.vertexCount = int(ve.Count)
	a.mesh.Vertices = make([]Vertex, ve.Count)

	fi := h.ElementIndex("face")
	if fi < 0 {
		return ply.NewError(ply.MissingFaceIndices)
	}
	fe := &h.Elements[fi]
	pi := fe.PropertyIndex("vertex_indices")
	if pi < 0 {
		pi = fe.PropertyIndex("vertex_index")
	}
	if pi < 0 {
		return ply.NewError(ply.MissingFaceIndices)
	}
	k := fe.Properties[pi].Kind
	if !k.IsList || !k.ElemKind.IsInteger() {
		return ply.NewError(ply.FaceIndicesWrongType)
	}
	a.faceElem = "face"
	a.faceIdxName = fe.Properties[pi].Name
	return nil
}

func scalarFloat(k ply.PropertyKind) bool {
	return !k.IsList && k.ElemKind.IsFloat()
}

func (a *TriangleMeshAdapter) Handle(elementName, propertyName string, ordinal int, value ply.Value) error {
	switch elementName {
	case a.vertexElem:
		return a.handleVertex(propertyName, ordinal, value)
	case a.faceElem:
		return a.handleFace(propertyName, value)
	}
	return nil
}

func (a *TriangleMeshAdapter) handleVertex(propertyName string, ordinal int, value ply.Value) error {
	v := &a.mesh.Vertices[ordinal]
	switch propertyName {
	case a.xName:
		v.Position.X = value.Float()
	case a.yName:
		v.Position.Y = value.Float()
	case a.zName:
		v.Position.Z = value.Float()
	case "nx":
		if a.hasNormal {
			v.ensureNormal().X = value.Float()
		}
	case "ny":
		if a.hasNormal {
			v.ensureNormal().Y = value.Float()
		}
	case "nz":
		if a.hasNormal {
			v.ensureNormal().Z = value.Float()
		}
	default:
		if a.hasUV && propertyName == a.uName {
			v.ensureUV().U = value.Float()
		} else if a.hasUV && propertyName == a.vName {
			v.ensureUV().V = value.Float()
		}
	}
	return nil
}

// fan triangulation: a convex or simple n-gon (v0 v1 ... v(n-1)) is
// split into n-2 triangles, all sharing vertex 0: (v0,v1,v2),
// (v0,v2,v3), ... (v0,v(n-2),v(n-1)).
func (a *TriangleMeshAdapter) handleFace(propertyName string, value ply.Value) error {
	if propertyName != a.faceIdxName {
		return nil
	}
	n := len(value.List)
	if n < 3 {
		return nil
	}
	idx := make([]uint32, n)
	for i, s := range value.List {
		vi := s.Int()
		if vi < 0 || vi >= int64(a.vertexCount) {
			return ply.NewError(ply.VertexIndexOutOfRange)
		}
		idx[i] = uint32(vi)
	}
	for i := 1; i < n-1; i++ {
		a.mesh.Triangles = append(a.mesh.Triangles, [3]uint32{idx[0], idx[i], idx[i+1]})
	}
	return nil
}

func (a *TriangleMeshAdapter) Finish() error { return nil }
