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
	"bytes"
	"encoding/binary"

	"github.com/plyodine/ply/plyio"
)

// RecordReader decodes the payload that follows a parsed Header,
// driving a Sink with one Handle call per property value.
type RecordReader struct {
	header *Header
	r      plyio.Reader
}

// NewRecordReader returns a RecordReader that decodes header's
// elements, in declaration order, from r. r must be positioned at the
// first byte of the payload (immediately after the end_header line).
func NewRecordReader(header *Header, r plyio.Reader) *RecordReader {
	return &RecordReader{header: header, r: r}
}

// ReadAll decodes every element's every row and calls sink.Finish once
// the whole payload has been consumed. Any decode error aborts without
// calling Finish.
func (rr *RecordReader) ReadAll(sink Sink) error {
	if err := sink.Start(rr.header); err != nil {
		return err
	}
	if rr.header.Format == Ascii {
		return rr.readAscii(sink)
	}
	return rr.readBinary(sink, byteOrderFor(rr.header.Format))
}

func (rr *RecordReader) readAscii(sink Sink) error {
	for ei := range rr.header.Elements {
		elem := &rr.header.Elements[ei]
		for row := 0; row < int(elem.Count); row++ {
			line, ending, rawErr := readRawLine(rr.r)
			if rawErr != nil {
				return NewError(UnexpectedEof)
			}
			if rr.header.LineEnding != "" && ending != rr.header.LineEnding {
				return NewError(MismatchedLineEndings)
			}
			for _, c := range line {
				if c != ' ' && (c < 0x20 || c > 0x7e) {
					return NewError(InvalidCharacter)
				}
			}
			toks, err := splitRowTokens(line)
			if err != nil {
				return err
			}
			cursor := 0
			for pi := range elem.Properties {
				prop := &elem.Properties[pi]
				value, n, err := decodeAsciiProperty(prop.Kind, toks, cursor)
				if err != nil {
					return err
				}
				cursor = n
				if err := sink.Handle(elem.Name, prop.Name, row, value); err != nil {
					return err
				}
			}
			if cursor != len(toks) {
				return NewError(ExtraTokens)
			}
		}
	}
	return sink.Finish()
}

func decodeAsciiProperty(kind PropertyKind, toks [][]byte, cursor int) (Value, int, error) {
	if !kind.IsList {
		if cursor >= len(toks) {
			return Value{}, 0, NewError(TooFewTokens)
		}
		s, err := DecodeScalarAscii(kind.ElemKind, toks[cursor])
		if err != nil {
			return Value{}, 0, err
		}
		return Value{Kind: kind, I: s.I, F: s.F}, cursor + 1, nil
	}

	if cursor >= len(toks) {
		return Value{}, 0, NewError(TooFewTokens)
	}
	size, err := DecodeListSizeAscii(kind.SizeKind, toks[cursor])
	if err != nil {
		return Value{}, 0, err
	}
	cursor++
	elems := make([]Scalar, size)
	for i := uint64(0); i < size; i++ {
		if cursor >= len(toks) {
			return Value{}, 0, NewError(TooFewTokens)
		}
		s, err := DecodeScalarAscii(kind.ElemKind, toks[cursor])
		if err != nil {
			return Value{}, 0, err
		}
		elems[i] = s
		cursor++
	}
	return Value{Kind: kind, List: elems}, cursor, nil
}

func (rr *RecordReader) readBinary(sink Sink, bo binary.ByteOrder) error {
	for ei := range rr.header.Elements {
		elem := &rr.header.Elements[ei]
		for row := 0; row < int(elem.Count); row++ {
			for pi := range elem.Properties {
				prop := &elem.Properties[pi]
				value, err := decodeBinaryProperty(bo, prop.Kind, rr.r)
				if err != nil {
					return err
				}
				if err := sink.Handle(elem.Name, prop.Name, row, value); err != nil {
					return err
				}
			}
		}
	}
	return sink.Finish()
}

func decodeBinaryProperty(bo binary.ByteOrder, kind PropertyKind, r plyio.Reader) (Value, error) {
	if !kind.IsList {
		s, err := DecodeScalarBinary(bo, kind.ElemKind, r)
		if err != nil {
			return Value{}, err
		}
		return Value{Kind: kind, I: s.I, F: s.F}, nil
	}
	size, err := DecodeListSizeBinary(bo, kind.SizeKind, r)
	if err != nil {
		return Value{}, err
	}
	elems := make([]Scalar, size)
	for i := uint64(0); i < size; i++ {
		s, err := DecodeScalarBinary(bo, kind.ElemKind, r)
		if err != nil {
			return Value{}, err
		}
		elems[i] = s
	}
	return Value{Kind: kind, List: elems}, nil
}

// splitRowTokens splits an ASCII payload line strictly on single
// spaces; a leading, trailing, or repeated space is ExtraWhitespace
// rather than the header's more specific LineLeadsWithSpace family,
// since a malformed payload row is a reader error, not a header one.
func splitRowTokens(line []byte) ([][]byte, error) {
	if len(line) == 0 {
		return nil, nil
	}
	if line[0] == ' ' || line[len(line)-1] == ' ' {
		return nil, NewError(ExtraWhitespace)
	}
	parts := bytes.Split(line, []byte(" "))
	for _, p := range parts {
		if len(p) == 0 {
			return nil, NewError(ExtraWhitespace)
		}
	}
	return parts, nil
}
