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

// Kind is the closed enumeration of the eight numeric primitive types
// a PLY property scalar or list element can carry.
type Kind int8

const (
	I8 Kind = iota
	U8
	I16
	U16
	I32
	U32
	F32
	F64
)

// String returns the canonical header keyword the writer emits for k.
func (k Kind) String() string {
	switch k {
	case I8:
		return "char"
	case U8:
		return "uchar"
	case I16:
		return "short"
	case U16:
		return "ushort"
	case I32:
		return "int"
	case U32:
		return "uint"
	case F32:
		return "float"
	case F64:
		return "double"
	default:
		return "invalid"
	}
}

// Size returns the fixed binary width of k in bytes.
func (k Kind) Size() int {
	switch k {
	case I8, U8:
		return 1
	case I16, U16:
		return 2
	case I32, U32, F32:
		return 4
	case F64:
		return 8
	default:
		return 0
	}
}

// IsFloat reports whether k is F32 or F64.
func (k Kind) IsFloat() bool {
	return k == F32 || k == F64
}

// IsInteger reports whether k is one of the six integral kinds.
func (k Kind) IsInteger() bool {
	return !k.IsFloat() && k.Valid()
}

// Valid reports whether k is one of the eight declared kinds.
func (k Kind) Valid() bool {
	return k >= I8 && k <= F64
}

// kindKeywords maps every header keyword accepted for a scalar or list
// element type to its Kind, per the keyword table in §3.1.
var kindKeywords = map[string]Kind{
	"char": I8, "int8": I8,
	"uchar": U8, "uint8": U8,
	"short": I16, "int16": I16,
	"ushort": U16, "uint16": U16,
	"int": I32, "int32": I32,
	"uint": U32, "uint32": U32,
	"float": F32, "float32": F32,
	"double": F64, "float64": F64,
}

// LookupKind resolves a header type keyword (e.g. "uchar", "float32")
// to its Kind. ok is false for any keyword not in the table.
func LookupKind(keyword string) (k Kind, ok bool) {
	k, ok = kindKeywords[keyword]
	return
}
