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
	"encoding/binary"
	"math"
	"strconv"
	"strings"

	"github.com/bytedance/gopkg/lang/span"

	"github.com/plyodine/ply/plyio"
)

// byteCache optionally copies the text of comment and obj_info header
// lines through a shared allocator instead of individually heap
// allocating, mirroring protocol/thrift's SetSpanCache/spanCache.Copy.
var (
	byteCache       = span.NewSpanCache(1024 * 1024)
	byteCacheEnable = false
)

// SetByteCache enables or disables the shared byte-span allocator used
// when ParseHeader copies a comment or obj_info line's text out of the
// reader's internal buffer. Payload decoding does not use it. Disabled
// by default.
func SetByteCache(enable bool) {
	byteCacheEnable = enable
}

func cacheBytes(b []byte) []byte {
	if byteCacheEnable {
		return byteCache.Copy(b)
	}
	return append([]byte(nil), b...)
}

// EncodeScalarAscii writes value's decimal textual form for kind to
// out. Integers use the shortest decimal form; floats are printed with
// max_digits10 significant digits (9 for F32, 17 for F64), which
// round-trips to the same IEEE value, with trailing fractional zeros
// and a bare trailing '.' dropped. Non-finite floats fail with
// AsciiFloatNotFinite.
func EncodeScalarAscii(kind Kind, value Scalar, out *[]byte) error {
	if kind.IsFloat() {
		if math.IsNaN(value.F) || math.IsInf(value.F, 0) {
			return NewError(AsciiFloatNotFinite)
		}
		*out = appendAsciiFloat(*out, kind, value.F)
		return nil
	}
	*out = appendAsciiInt(*out, kind, value.I)
	return nil
}

func appendAsciiFloat(out []byte, kind Kind, f float64) []byte {
	prec, bitSize := 9, 32
	if kind == F64 {
		prec, bitSize = 17, 64
	}
	s := strconv.FormatFloat(f, 'g', prec, bitSize)
	s = trimTrailingZeros(s)
	return append(out, s...)
}

// trimTrailingZeros trims trailing zeros from the fractional part of
// a non-exponential decimal string, and the decimal point itself if
// the whole fractional part vanishes.
func trimTrailingZeros(s string) string {
	if strings.ContainsAny(s, "eE") {
		return s
	}
	dot := strings.IndexByte(s, '.')
	if dot < 0 {
		return s
	}
	end := len(s)
	for end > dot+1 && s[end-1] == '0' {
		end--
	}
	if end == dot+1 {
		end = dot
	}
	return s[:end]
}

func appendAsciiInt(out []byte, kind Kind, i int64) []byte {
	if kind.IsInteger() && isUnsignedKind(kind) {
		return strconv.AppendUint(out, uint64(i), 10)
	}
	return strconv.AppendInt(out, i, 10)
}

func isUnsignedKind(k Kind) bool {
	return k == U8 || k == U16 || k == U32
}

// EncodeScalarBinary writes value's raw bits for kind, in the
// requested byte order, to out.
func EncodeScalarBinary(bo binary.ByteOrder, kind Kind, value Scalar, out *[]byte) {
	var buf [8]byte
	switch kind {
	case I8:
		*out = append(*out, byte(value.I))
	case U8:
		*out = append(*out, byte(value.I))
	case I16, U16:
		bo.PutUint16(buf[:2], uint16(value.I))
		*out = append(*out, buf[:2]...)
	case I32, U32:
		bo.PutUint32(buf[:4], uint32(value.I))
		*out = append(*out, buf[:4]...)
	case F32:
		bo.PutUint32(buf[:4], math.Float32bits(float32(value.F)))
		*out = append(*out, buf[:4]...)
	case F64:
		bo.PutUint64(buf[:8], math.Float64bits(value.F))
		*out = append(*out, buf[:8]...)
	}
}

// DecodeScalarAscii strictly parses token as a literal of kind: no
// leading whitespace, no trailing characters.
func DecodeScalarAscii(kind Kind, token []byte) (Scalar, error) {
	s := string(token)
	if kind.IsFloat() {
		bitSize := 64
		if kind == F32 {
			bitSize = 32
		}
		f, err := strconv.ParseFloat(s, bitSize)
		if err != nil {
			return Scalar{}, classifyNumError(err, PropertyOutOfRange, PropertyParseFailed)
		}
		return Scalar{F: f}, nil
	}
	if isUnsignedKind(kind) {
		u, err := strconv.ParseUint(s, 10, kind.Size()*8)
		if err != nil {
			return Scalar{}, classifyNumError(err, PropertyOutOfRange, PropertyParseFailed)
		}
		return Scalar{I: int64(u)}, nil
	}
	i, err := strconv.ParseInt(s, 10, kind.Size()*8)
	if err != nil {
		return Scalar{}, classifyNumError(err, PropertyOutOfRange, PropertyParseFailed)
	}
	return Scalar{I: i}, nil
}

func classifyNumError(err error, rangeCode, parseCode Code) *Error {
	if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
		return NewError(rangeCode)
	}
	return NewError(parseCode)
}

// DecodeListSizeAscii parses token as the unsigned list-length literal
// for sizeKind, distinguishing a negative literal (NegativeListSize)
// from one that is merely out of sizeKind's range
// (ListSizeOutOfRange) from a malformed one (ListSizeParseFailed).
func DecodeListSizeAscii(sizeKind Kind, token []byte) (uint64, error) {
	if len(token) > 0 && token[0] == '-' {
		return 0, NewError(NegativeListSize)
	}
	u, err := strconv.ParseUint(string(token), 10, sizeKind.Size()*8)
	if err != nil {
		return 0, classifyNumError(err, ListSizeOutOfRange, ListSizeParseFailed)
	}
	return u, nil
}

// DecodeScalarBinary reads kind's fixed width from r in byte order bo.
func DecodeScalarBinary(bo binary.ByteOrder, kind Kind, r plyio.Reader) (Scalar, error) {
	b, err := r.Next(kind.Size())
	if err != nil {
		return Scalar{}, WrapStreamError(err)
	}
	switch kind {
	case I8:
		return Scalar{I: int64(int8(b[0]))}, nil
	case U8:
		return Scalar{I: int64(b[0])}, nil
	case I16:
		return Scalar{I: int64(int16(bo.Uint16(b)))}, nil
	case U16:
		return Scalar{I: int64(bo.Uint16(b))}, nil
	case I32:
		return Scalar{I: int64(int32(bo.Uint32(b)))}, nil
	case U32:
		return Scalar{I: int64(bo.Uint32(b))}, nil
	case F32:
		return Scalar{F: float64(math.Float32frombits(bo.Uint32(b)))}, nil
	case F64:
		return Scalar{F: math.Float64frombits(bo.Uint64(b))}, nil
	default:
		return Scalar{}, NewError(InvalidType)
	}
}

// DecodeListSizeBinary reads sizeKind's fixed width from r as an
// unsigned list length.
func DecodeListSizeBinary(bo binary.ByteOrder, sizeKind Kind, r plyio.Reader) (uint64, error) {
	s, err := DecodeScalarBinary(bo, sizeKind, r)
	if err != nil {
		return 0, err
	}
	return uint64(s.I), nil
}

// byteOrderFor returns the encoding/binary.ByteOrder for a binary
// Format; it panics for Ascii, which has no binary byte order.
func byteOrderFor(f Format) binary.ByteOrder {
	switch f {
	case BinaryBigEndian:
		return binary.BigEndian
	case BinaryLittleEndian:
		return binary.LittleEndian
	default:
		panic("ply: byteOrderFor called with Ascii format")
	}
}
