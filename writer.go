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
	"strconv"
	"strings"

	"github.com/plyodine/ply/plyio"
)

// RecordWriter emits a header built from a Source's declared elements
// followed by that Source's payload, in the requested Format.
type RecordWriter struct {
	w plyio.Writer
}

// NewRecordWriter returns a RecordWriter that writes to w.
func NewRecordWriter(w plyio.Writer) *RecordWriter {
	return &RecordWriter{w: w}
}

// WriteAll builds the header from src, writes it, writes every row of
// every element by pulling from src, and flushes w.
func (rw *RecordWriter) WriteAll(format Format, src Source) error {
	header, err := buildHeader(format, src)
	if err != nil {
		return err
	}
	if err := rw.writeHeader(header); err != nil {
		return err
	}
	if header.Format == Ascii {
		if err := rw.writeAscii(header, src); err != nil {
			return err
		}
	} else {
		if err := rw.writeBinary(header, src, byteOrderFor(header.Format)); err != nil {
			return err
		}
	}
	return rw.w.Flush()
}

func buildHeader(format Format, src Source) (*Header, error) {
	hdr := &Header{Format: format, Major: 1, Minor: 0}
	for _, c := range src.Comments() {
		if strings.ContainsAny(c, "\r\n") {
			return nil, NewError(CommentHasNewline)
		}
		hdr.Comments = append(hdr.Comments, c)
	}
	for _, o := range src.ObjInfos() {
		if strings.ContainsAny(o, "\r\n") {
			return nil, NewError(ObjInfoHasNewline)
		}
		hdr.ObjInfos = append(hdr.ObjInfos, o)
	}

	elems := src.Elements()
	hdr.Elements = make([]ElementDecl, len(elems))
	for ei, e := range elems {
		if err := validateName(e.Name); err != nil {
			return nil, err
		}
		if len(e.Properties) == 0 {
			return nil, NewError(ElementHasNoProperties)
		}
		seen := make(map[string]struct{}, len(e.Properties))
		props := make([]PropertyDecl, len(e.Properties))
		for pi, p := range e.Properties {
			if err := validateName(p.Name); err != nil {
				return nil, err
			}
			if _, dup := seen[p.Name]; dup {
				return nil, NewError(DuplicatePropertyName)
			}
			seen[p.Name] = struct{}{}
			if p.Kind.IsList {
				p.Kind.SizeKind = src.ListSizeKind(ei, pi)
			}
			props[pi] = p
		}
		hdr.Elements[ei] = ElementDecl{Name: e.Name, Count: e.Count, Properties: props}
	}
	return hdr, nil
}

func validateName(name string) error {
	if name == "" {
		return NewError(EmptyName)
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c <= 0x20 || c > 0x7e {
			return NewError(NameInvalidChars)
		}
	}
	return nil
}

func (rw *RecordWriter) writeHeader(h *Header) error {
	if err := rw.writeLine("ply\r"); err != nil {
		return err
	}
	if err := rw.writeLine("format " + h.Format.String() + " 1.0\r"); err != nil {
		return err
	}
	for _, c := range h.Comments {
		if err := rw.writeLine("comment " + c + "\r"); err != nil {
			return err
		}
	}
	for _, o := range h.ObjInfos {
		if err := rw.writeLine("obj_info " + o + "\r"); err != nil {
			return err
		}
	}
	for _, e := range h.Elements {
		if err := rw.writeLine("element " + e.Name + " " + strconv.FormatUint(e.Count, 10) + "\r"); err != nil {
			return err
		}
		for _, p := range e.Properties {
			var line string
			if p.Kind.IsList {
				line = "property list " + p.Kind.SizeKind.String() + " " + p.Kind.ElemKind.String() + " " + p.Name + "\r"
			} else {
				line = "property " + p.Kind.ElemKind.String() + " " + p.Name + "\r"
			}
			if err := rw.writeLine(line); err != nil {
				return err
			}
		}
	}
	return rw.writeLine("end_header\r")
}

func (rw *RecordWriter) writeLine(s string) error {
	_, err := rw.w.WriteBinary([]byte(s))
	if err != nil {
		return WrapStreamError(err)
	}
	return nil
}

func (rw *RecordWriter) writeAscii(h *Header, src Source) error {
	for ei := range h.Elements {
		elem := &h.Elements[ei]
		for row := 0; row < int(elem.Count); row++ {
			var line []byte
			for pi := range elem.Properties {
				prop := &elem.Properties[pi]
				if pi > 0 {
					line = append(line, ' ')
				}
				v, err := src.Value(ei, pi, row)
				if err != nil {
					return err
				}
				if prop.Kind.IsList {
					if err := checkListOverflow(prop.Kind.SizeKind, len(v.List)); err != nil {
						return err
					}
					line = appendAsciiInt(line, prop.Kind.SizeKind, int64(len(v.List)))
					for _, s := range v.List {
						line = append(line, ' ')
						if err := EncodeScalarAscii(prop.Kind.ElemKind, s, &line); err != nil {
							return asListFloatErr(err)
						}
					}
				} else {
					if err := EncodeScalarAscii(prop.Kind.ElemKind, Scalar{I: v.I, F: v.F}, &line); err != nil {
						return err
					}
				}
			}
			line = append(line, '\r')
			if _, err := rw.w.WriteBinary(line); err != nil {
				return WrapStreamError(err)
			}
		}
	}
	return nil
}

func (rw *RecordWriter) writeBinary(h *Header, src Source, bo binary.ByteOrder) error {
	for ei := range h.Elements {
		elem := &h.Elements[ei]
		for row := 0; row < int(elem.Count); row++ {
			var buf []byte
			for pi := range elem.Properties {
				prop := &elem.Properties[pi]
				v, err := src.Value(ei, pi, row)
				if err != nil {
					return err
				}
				if prop.Kind.IsList {
					if err := checkListOverflow(prop.Kind.SizeKind, len(v.List)); err != nil {
						return err
					}
					EncodeScalarBinary(bo, prop.Kind.SizeKind, Scalar{I: int64(len(v.List))}, &buf)
					for _, s := range v.List {
						EncodeScalarBinary(bo, prop.Kind.ElemKind, s, &buf)
					}
				} else {
					EncodeScalarBinary(bo, prop.Kind.ElemKind, Scalar{I: v.I, F: v.F}, &buf)
				}
			}
			if _, err := rw.w.WriteBinary(buf); err != nil {
				return WrapStreamError(err)
			}
		}
	}
	return nil
}

func asListFloatErr(err error) error {
	if e, ok := err.(*Error); ok && e.Code == AsciiFloatNotFinite {
		return NewError(AsciiFloatListNotFinite)
	}
	return err
}

func checkListOverflow(sizeKind Kind, n int) error {
	var max uint64
	switch sizeKind {
	case U8:
		max = 1<<8 - 1
	case U16:
		max = 1<<16 - 1
	case U32:
		max = 1<<32 - 1
	default:
		return nil
	}
	if uint64(n) <= max {
		return nil
	}
	switch sizeKind {
	case U8:
		return NewError(OverflowU8List)
	case U16:
		return NewError(OverflowU16List)
	default:
		return NewError(OverflowU32List)
	}
}
