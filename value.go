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

// Value is the tagged-union carrier exchanged between NumericCodec and
// both Sink.Handle and a Source's per-property producer. It holds one
// of sixteen shapes: one of the eight scalar kinds, or a list of one
// of the eight element kinds (per DESIGN NOTES §9 / §3.7).
//
// A scalar Value stores its payload in I and F depending on
// Kind.IsFloat; a list Value stores its payload in List, one entry per
// element, each itself holding only I or F (Kind.SizeKind is not
// re-encoded per element).
type Value struct {
	Kind PropertyKind

	// Scalar payload, valid when !Kind.IsList.
	I int64   // valid when !Kind.ElemKind.IsFloat()
	F float64 // valid when Kind.ElemKind.IsFloat()

	// List payload, valid when Kind.IsList. One entry per decoded
	// element; the list's length is len(List).
	List []Scalar
}

// Scalar is one element of a decoded list, or the payload of a scalar
// Value without its Kind (the Kind is carried by the enclosing Value
// or PropertyDecl).
type Scalar struct {
	I int64
	F float64
}

// Int returns v's scalar payload as an int64, for integer kinds.
func (v Value) Int() int64 { return v.I }

// Float returns v's scalar payload as a float64, for float kinds.
func (v Value) Float() float64 { return v.F }

// IntScalar builds an integer-kind scalar Value.
func IntScalar(k Kind, i int64) Value {
	return Value{Kind: ScalarKind(k), I: i}
}

// FloatScalar builds a float-kind scalar Value.
func FloatScalar(k Kind, f float64) Value {
	return Value{Kind: ScalarKind(k), F: f}
}

// ListValue builds a list Value with the given size and element kinds.
func ListValue(sizeKind, elemKind Kind, elems []Scalar) Value {
	return Value{Kind: ListKind(sizeKind, elemKind), List: elems}
}
