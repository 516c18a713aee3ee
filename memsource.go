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

// SliceSource is an in-memory Source: every element, property, and
// row is added programmatically before RecordWriter ever calls into
// it. It defaults each list property's declared size kind to the
// smallest of uchar/ushort/uint that fits every row's list length,
// per §4.4; SetListSizeKind overrides that default.
type SliceSource struct {
	comments []string
	objInfos []string
	elements []ElementDecl
	rows     [][][]Value // rows[elementIndex][row][propertyIndex]
	sizeKind map[[2]int]Kind
}

// NewSliceSource returns an empty SliceSource.
func NewSliceSource() *SliceSource {
	return &SliceSource{sizeKind: make(map[[2]int]Kind)}
}

// AddComment appends a comment line.
func (s *SliceSource) AddComment(c string) { s.comments = append(s.comments, c) }

// AddObjInfo appends an obj_info line.
func (s *SliceSource) AddObjInfo(o string) { s.objInfos = append(s.objInfos, o) }

// AddElement declares a new, initially empty element and returns its
// index for use with AddProperty, AddRow, and SetListSizeKind.
func (s *SliceSource) AddElement(name string) int {
	s.elements = append(s.elements, ElementDecl{Name: name})
	s.rows = append(s.rows, nil)
	return len(s.elements) - 1
}

// AddProperty declares a property on the element at elementIndex, in
// call order. All rows subsequently added to that element must supply
// a Value for every declared property, in the same order.
func (s *SliceSource) AddProperty(elementIndex int, name string, kind PropertyKind) {
	e := &s.elements[elementIndex]
	e.Properties = append(e.Properties, PropertyDecl{Name: name, Kind: kind})
}

// AddRow appends one row of values to the element at elementIndex.
// len(values) must equal the number of properties declared on it.
func (s *SliceSource) AddRow(elementIndex int, values []Value) {
	s.rows[elementIndex] = append(s.rows[elementIndex], values)
}

// SetListSizeKind overrides the default smallest-fit size kind for
// the list property at propertyIndex of the element at elementIndex.
func (s *SliceSource) SetListSizeKind(elementIndex, propertyIndex int, k Kind) {
	s.sizeKind[[2]int{elementIndex, propertyIndex}] = k
}

func (s *SliceSource) Comments() []string { return s.comments }
func (s *SliceSource) ObjInfos() []string { return s.objInfos }

func (s *SliceSource) Elements() []ElementDecl {
	out := make([]ElementDecl, len(s.elements))
	for i, e := range s.elements {
		e.Count = uint64(len(s.rows[i]))
		out[i] = e
	}
	return out
}

func (s *SliceSource) ListSizeKind(elementIndex, propertyIndex int) Kind {
	if k, ok := s.sizeKind[[2]int{elementIndex, propertyIndex}]; ok {
		return k
	}
	max := 0
	for _, row := range s.rows[elementIndex] {
		if n := len(row[propertyIndex].List); n > max {
			max = n
		}
	}
	switch {
	case max <= 0xff:
		return U8
	case max <= 0xffff:
		return U16
	default:
		return U32
	}
}

func (s *SliceSource) Value(elementIndex, propertyIndex, row int) (Value, error) {
	rows := s.rows[elementIndex]
	if row >= len(rows) {
		return Value{}, NewError(MissingData)
	}
	return rows[row][propertyIndex], nil
}
