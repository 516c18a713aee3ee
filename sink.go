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

// Sink is the push target a RecordReader drives as it decodes a PLY
// payload row by row. It never sees raw bytes: RecordReader has
// already applied NumericCodec and handed it a typed Value.
type Sink interface {
	// Start is called once, after the header has been parsed, before
	// any row is decoded. Returning an error aborts the read before any
	// row is handled.
	Start(header *Header) error

	// Handle is called once per decoded property value, in declaration
	// order, for every row of every element. ordinal is the zero-based
	// row index within elementName.
	Handle(elementName, propertyName string, ordinal int, value Value) error

	// Finish is called once after the last row of the last element has
	// been handled successfully. It is not called if decoding fails.
	Finish() error
}

// DiscardSink is a Sink that validates nothing and retains nothing; it
// drives a RecordReader purely for its side effect of checking that a
// payload decodes cleanly against its header, as ply-validate does.
type DiscardSink struct{}

func (DiscardSink) Start(*Header) error { return nil }

func (DiscardSink) Handle(elementName, propertyName string, ordinal int, value Value) error {
	return nil
}

func (DiscardSink) Finish() error { return nil }
