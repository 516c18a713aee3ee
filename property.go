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

// Format is one of the three PLY payload encodings.
type Format int8

const (
	Ascii Format = iota
	BinaryBigEndian
	BinaryLittleEndian
)

func (f Format) String() string {
	switch f {
	case Ascii:
		return "ascii"
	case BinaryBigEndian:
		return "binary_big_endian"
	case BinaryLittleEndian:
		return "binary_little_endian"
	default:
		return "invalid"
	}
}

var formatKeywords = map[string]Format{
	"ascii":                Ascii,
	"binary_big_endian":    BinaryBigEndian,
	"binary_little_endian": BinaryLittleEndian,
}

// PropertyKind is either a Scalar(kind) or a List(sizeKind, elemKind).
// IsList distinguishes the two; SizeKind is only meaningful when
// IsList is true.
type PropertyKind struct {
	IsList   bool
	SizeKind Kind // U8, U16, or U32 when IsList
	ElemKind Kind // the scalar kind, or the list's element kind
}

// ScalarKind builds a PropertyKind for a plain scalar property.
func ScalarKind(k Kind) PropertyKind {
	return PropertyKind{ElemKind: k}
}

// ListKind builds a PropertyKind for a list property. sizeKind must be
// one of U8, U16, U32.
func ListKind(sizeKind, elemKind Kind) PropertyKind {
	return PropertyKind{IsList: true, SizeKind: sizeKind, ElemKind: elemKind}
}

// PropertyDecl is one declared column of an ElementDecl.
type PropertyDecl struct {
	Name string
	Kind PropertyKind
}

// ElementDecl is one declared row-table: a name, a row count, and its
// ordered properties.
type ElementDecl struct {
	Name       string
	Count      uint64
	Properties []PropertyDecl
}

// PropertyIndex returns the ordinal of the named property within e, or
// -1 if e has no property with that name.
func (e *ElementDecl) PropertyIndex(name string) int {
	for i := range e.Properties {
		if e.Properties[i].Name == name {
			return i
		}
	}
	return -1
}

// Header is the immutable, fully parsed declaration of a PLY file:
// its encoding, comments, obj_infos, and ordered elements. A Header is
// built once by ParseHeader (from the reader side) or assembled by a
// Source (from the writer side) and is never mutated afterward.
type Header struct {
	Format     Format
	LineEnding string // one of "\n", "\r", "\r\n"; reader-only, ignored by the writer
	Major      int    // always 1
	Minor      int    // always 0
	Comments   []string
	ObjInfos   []string
	Elements   []ElementDecl
}

// ElementIndex returns the ordinal of the named element, or -1.
func (h *Header) ElementIndex(name string) int {
	for i := range h.Elements {
		if h.Elements[i].Name == name {
			return i
		}
	}
	return -1
}
