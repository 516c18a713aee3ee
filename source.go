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

// Source is the pull side a RecordWriter drives to produce a PLY file.
// It describes the elements and properties to declare in the header,
// then is asked for each row's values in declaration order.
type Source interface {
	// Comments and ObjInfos are emitted verbatim, in order, between the
	// format line and the first element line.
	Comments() []string
	ObjInfos() []string

	// Elements returns the element declarations to write, in order.
	// Count on each must match the number of rows the Source will
	// produce for that element.
	Elements() []ElementDecl

	// ListSizeKind returns the size kind to declare (and encode with)
	// for the list property at propertyIndex within the element at
	// elementIndex. It is only called for properties whose
	// PropertyKind.IsList is true.
	ListSizeKind(elementIndex, propertyIndex int) Kind

	// Value returns the value to write for the property at
	// propertyIndex of the row-th instance of the element at
	// elementIndex.
	Value(elementIndex, propertyIndex, row int) (Value, error)
}
