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

import "errors"

// Code is the stable identity of one diagnostic in the PLY error
// taxonomy (§7). It is grouped by the phase that can raise it, but the
// groups are not disjoint: MismatchedLineEndings and InvalidCharacter,
// for instance, apply to both the header and any ASCII payload line.
type Code int32

const (
	// Stream: I/O failure on the underlying byte stream, or unexpected
	// EOF distinct from a clean end of declared content.
	Stream Code = iota
	UnexpectedEof

	// Header errors.
	BadStream
	MissingMagic
	MismatchedLineEndings
	InvalidCharacter
	LineLeadsWithSpace
	LineTrailingSpaces
	LineExtraSpaces
	MissingFormat
	InvalidFormat
	UnsupportedVersion
	FormatSpecifierTooLong
	NakedProperty
	PropertyTooShort
	InvalidType
	ListTypeFloat
	ListTypeDouble
	DuplicatePropertyName
	PropertyTooLong
	ElementTooShort
	DuplicateElementName
	CountOutOfRange
	CountParseFailed
	ElementTooLong
	EndHeaderExtra
	UnknownKeyword

	// Reader (payload decode) errors.
	NegativeListSize
	TooFewTokens
	ExtraWhitespace
	ExtraTokens
	ListSizeOutOfRange
	PropertyOutOfRange
	ListSizeParseFailed
	PropertyParseFailed

	// Writer errors.
	CommentHasNewline
	ObjInfoHasNewline
	EmptyName
	NameInvalidChars
	OverflowU8List
	OverflowU16List
	OverflowU32List
	MissingData
	AsciiFloatNotFinite
	AsciiFloatListNotFinite
	ElementHasNoProperties

	// TriangleMeshAdapter errors.
	MissingXYZ
	XYZWrongType
	NormalWrongType
	UVWrongType
	MissingFaceIndices
	FaceIndicesWrongType
	VertexIndexOutOfRange
)

// originally modeled on protocol/thrift's defaultApplicationExceptionMessage table.
var codeMessages = map[Code]string{
	Stream:        "stream I/O error",
	UnexpectedEof: "unexpected end of stream",

	BadStream:              "stream is not positioned at a readable PLY header",
	MissingMagic:           "missing \"ply\" magic line",
	MismatchedLineEndings:  "line ending does not match the header's detected line ending",
	InvalidCharacter:       "line contains a character that is not printable ASCII or space",
	LineLeadsWithSpace:     "line begins with a space",
	LineTrailingSpaces:     "line ends with a space",
	LineExtraSpaces:        "line contains more than one consecutive space between tokens",
	MissingFormat:          "missing \"format\" line",
	InvalidFormat:          "format line does not name a recognized encoding",
	UnsupportedVersion:     "format line does not declare version 1.0",
	FormatSpecifierTooLong: "format line has more tokens than expected",
	NakedProperty:          "property line precedes any element line",
	PropertyTooShort:       "property line has fewer tokens than its kind requires",
	InvalidType:            "property line names a type that is not one of the eight primitive kinds",
	ListTypeFloat:          "list property's size type must not be float",
	ListTypeDouble:         "list property's size type must not be double",
	DuplicatePropertyName:  "property name is already declared on this element",
	PropertyTooLong:        "property line has more tokens than its kind requires",
	ElementTooShort:        "element line has fewer than two tokens",
	DuplicateElementName:   "element name is already declared in this header",
	CountOutOfRange:        "element count does not fit in an unsigned 64-bit integer",
	CountParseFailed:       "element count is not a valid decimal integer",
	ElementTooLong:         "element line has more than two tokens",
	EndHeaderExtra:         "end_header line has extra tokens",
	UnknownKeyword:         "line begins with an unrecognized keyword",

	NegativeListSize:    "list size token is negative",
	TooFewTokens:        "row has fewer tokens than its declared properties require",
	ExtraWhitespace:     "row contains leading, trailing, or repeated whitespace",
	ExtraTokens:         "row has more tokens than its declared properties consume",
	ListSizeOutOfRange:  "list size exceeds the declared size kind's range",
	PropertyOutOfRange:  "scalar token's value does not fit in the declared kind",
	ListSizeParseFailed: "list size token is not a valid decimal integer",
	PropertyParseFailed: "scalar token is not a valid literal of the declared kind",

	CommentHasNewline:      "comment text contains a line terminator",
	ObjInfoHasNewline:      "obj_info text contains a line terminator",
	EmptyName:              "element or property name is empty",
	NameInvalidChars:       "element or property name contains a non-graphic character",
	OverflowU8List:         "list length exceeds the maximum representable in a uchar size kind",
	OverflowU16List:        "list length exceeds the maximum representable in a ushort size kind",
	OverflowU32List:        "list length exceeds the maximum representable in a uint size kind",
	MissingData:            "source produced fewer rows than the element's declared count",
	AsciiFloatNotFinite:    "ASCII encoding cannot represent a non-finite float value",
	AsciiFloatListNotFinite: "ASCII encoding cannot represent a non-finite float value in a list",
	ElementHasNoProperties: "element declares zero properties",

	MissingXYZ:            "vertex element is missing one of x, y, z",
	XYZWrongType:          "vertex element's x, y, or z is not a float or double",
	NormalWrongType:       "vertex element's nx, ny, or nz is not a float or double",
	UVWrongType:           "vertex element's texture coordinate property is not a float or double",
	MissingFaceIndices:    "face element is missing an integral list property named vertex_indices",
	FaceIndicesWrongType:  "face element's vertex_indices is not an integral list",
	VertexIndexOutOfRange: "face vertex index is negative or exceeds the vertex element's row count",
}

// Error is the single tagged diagnostic type returned by every
// operation in this module: a stable Code plus its fixed English
// message, optionally wrapping the underlying stream error (Code ==
// Stream or Code == BadStream).
//
// originally modeled on protocol/thrift's ApplicationException/ProtocolException pair.
type Error struct {
	Code Code
	err  error // non-nil only for Stream / BadStream
}

// NewError returns an *Error for code with its fixed taxonomy message.
func NewError(code Code) *Error {
	return &Error{Code: code}
}

// WrapStreamError returns a Stream *Error wrapping the underlying I/O
// failure err. If err is already a *Error it is returned unchanged.
func WrapStreamError(err error) *Error {
	if e, ok := err.(*Error); ok {
		return e
	}
	return &Error{Code: Stream, err: err}
}

func (e *Error) Error() string {
	if e.err != nil {
		return codeMessages[e.Code] + ": " + e.err.Error()
	}
	if m, ok := codeMessages[e.Code]; ok {
		return m
	}
	return "ply: unknown error"
}

// Unwrap exposes the wrapped stream error, if any, to errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is a *Error with the same Code, or
// whether the wrapped stream error matches target.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return t.Code == e.Code
	}
	return errors.Is(e.err, target)
}
