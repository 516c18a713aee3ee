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

// Command ply-sanitize re-encodes a PLY file through the core reader
// and writer, canonicalizing whitespace and line endings while keeping
// each list property's size kind as declared in the input header.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/plyodine/ply"
	"github.com/plyodine/ply/plyio"
)

func main() {
	flag.Parse()
	args := flag.Args()
	if len(args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: ply-sanitize <in.ply> <out.ply>")
		os.Exit(1)
	}
	if err := sanitize(args[0], args[1]); err != nil {
		fmt.Fprintln(os.Stderr, "ply-sanitize:", err)
		os.Exit(1)
	}
}

func sanitize(inPath, outPath string) error {
	in, err := os.Open(inPath)
	if err != nil {
		return err
	}
	defer in.Close()

	r := plyio.NewStreamReader(in)
	hdr, _, err := ply.ParseHeader(r)
	if err != nil {
		return err
	}

	src := ply.NewSliceSource()
	for _, c := range hdr.Comments {
		src.AddComment(c)
	}
	for _, o := range hdr.ObjInfos {
		src.AddObjInfo(o)
	}
	elemIdx := make([]int, len(hdr.Elements))
	for i, e := range hdr.Elements {
		ei := src.AddElement(e.Name)
		elemIdx[i] = ei
		for pi, p := range e.Properties {
			src.AddProperty(ei, p.Name, p.Kind)
			if p.Kind.IsList {
				src.SetListSizeKind(ei, pi, p.Kind.SizeKind)
			}
		}
	}

	collector := &rowCollector{header: hdr, src: src, elemIdx: elemIdx}
	if err := ply.NewRecordReader(hdr, r).ReadAll(collector); err != nil {
		return err
	}

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer out.Close()

	w := plyio.NewStreamWriter(out)
	return ply.NewRecordWriter(w).WriteAll(hdr.Format, src)
}

// rowCollector is a ply.Sink that reassembles each element's rows
// into a ply.SliceSource, since RecordReader hands values one
// property at a time but SliceSource.AddRow wants a whole row.
type rowCollector struct {
	header  *ply.Header
	src     *ply.SliceSource
	elemIdx []int

	curElem int
	curRow  int
	rowBuf  []ply.Value
}

func (c *rowCollector) Start(*ply.Header) error {
	c.curElem = -1
	return nil
}

func (c *rowCollector) Handle(elementName, propertyName string, ordinal int, value ply.Value) error {
	ei := c.header.ElementIndex(elementName)
	elem := &c.header.Elements[ei]
	pi := elem.PropertyIndex(propertyName)

	if ei != c.curElem || ordinal != c.curRow {
		c.curElem = ei
		c.curRow = ordinal
		c.rowBuf = make([]ply.Value, len(elem.Properties))
	}
	c.rowBuf[pi] = value
	if pi == len(elem.Properties)-1 {
		c.src.AddRow(c.elemIdx[ei], c.rowBuf)
	}
	return nil
}

func (c *rowCollector) Finish() error { return nil }
