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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plyodine/ply/plyio"
)

func TestEncodeScalarAscii_FloatShortestRoundTrip(t *testing.T) {
	var out []byte
	err := EncodeScalarAscii(F32, Scalar{F: float64(float32(math.Pi))}, &out)
	require.NoError(t, err)
	assert.Equal(t, "3.14159274", string(out))

	out = out[:0]
	err = EncodeScalarAscii(F64, Scalar{F: 2.5}, &out)
	require.NoError(t, err)
	assert.Equal(t, "2.5", string(out))
}

func TestEncodeScalarAscii_NonFiniteFloatFails(t *testing.T) {
	var out []byte
	err := EncodeScalarAscii(F32, Scalar{F: math.Inf(1)}, &out)
	require.Error(t, err)
	assert.True(t, NewError(AsciiFloatNotFinite).Is(err))
}

func TestEncodeScalarAscii_Integers(t *testing.T) {
	var out []byte
	require.NoError(t, EncodeScalarAscii(I32, Scalar{I: -42}, &out))
	assert.Equal(t, "-42", string(out))

	out = out[:0]
	require.NoError(t, EncodeScalarAscii(U8, Scalar{I: 255}, &out))
	assert.Equal(t, "255", string(out))
}

func TestDecodeScalarAscii_RangeAndParseErrors(t *testing.T) {
	_, err := DecodeScalarAscii(U8, []byte("256"))
	require.Error(t, err)
	assert.True(t, NewError(PropertyOutOfRange).Is(err))

	_, err = DecodeScalarAscii(I32, []byte("abc"))
	require.Error(t, err)
	assert.True(t, NewError(PropertyParseFailed).Is(err))

	s, err := DecodeScalarAscii(F64, []byte("3.5"))
	require.NoError(t, err)
	assert.Equal(t, 3.5, s.F)
}

func TestDecodeListSizeAscii_Negative(t *testing.T) {
	_, err := DecodeListSizeAscii(U8, []byte("-1"))
	require.Error(t, err)
	assert.True(t, NewError(NegativeListSize).Is(err))
}

func TestBinaryScalarRoundTrip(t *testing.T) {
	for _, kind := range []Kind{I8, U8, I16, U16, I32, U32, F32, F64} {
		var buf []byte
		var v Scalar
		if kind.IsFloat() {
			v = Scalar{F: 12.5}
		} else {
			v = Scalar{I: 7}
		}
		EncodeScalarBinary(binary.BigEndian, kind, v, &buf)
		assert.Len(t, buf, kind.Size())

		r := plyio.NewBytesReader(buf)
		got, err := DecodeScalarBinary(binary.BigEndian, kind, r)
		require.NoError(t, err)
		if kind.IsFloat() {
			assert.Equal(t, v.F, got.F)
		} else {
			assert.Equal(t, v.I, got.I)
		}
	}
}
