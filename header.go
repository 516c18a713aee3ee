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
	"strconv"

	"github.com/plyodine/ply/plyio"
)

// ParseHeader reads and validates a PLY header from r, starting at
// r's current position, through and including the end_header line.
// It returns the fully parsed Header and the number of header bytes
// consumed, so a caller holding a seekable stream can reposition to
// the start of the binary or ASCII payload without re-scanning.
func ParseHeader(r plyio.Reader) (*Header, int64, error) {
	line, ending, rawErr := readRawLine(r)
	if rawErr != nil {
		return nil, 0, NewError(BadStream)
	}
	offset := int64(len(line)) + int64(len(ending))
	if string(line) != "ply" {
		return nil, 0, NewError(MissingMagic)
	}
	canonicalEnding := ending

	hdr := &Header{Major: 1, Minor: 0}
	haveFormat := false
	var curElem *ElementDecl

	for {
		line, ending, rawErr = readRawLine(r)
		if rawErr != nil {
			return nil, 0, NewError(UnexpectedEof)
		}
		offset += int64(len(line)) + int64(len(ending))
		if ending != canonicalEnding {
			return nil, 0, NewError(MismatchedLineEndings)
		}
		if len(line) == 0 {
			return nil, 0, NewError(UnknownKeyword)
		}

		word, rest, hasRest := splitFirst(line)

		// comment and obj_info bodies are taken verbatim, including any
		// leading or trailing space, but must still be printable ASCII;
		// every other keyword's line is a strict space-separated token
		// sequence.
		if word != "comment" && word != "obj_info" {
			if err := validateLine(line); err != nil {
				return nil, 0, err
			}
		} else {
			for _, c := range line {
				if c != ' ' && (c < 0x20 || c > 0x7e) {
					return nil, 0, NewError(InvalidCharacter)
				}
			}
		}

		switch word {
		case "format":
			toks, err := splitTokens(line)
			if err != nil {
				return nil, 0, err
			}
			if len(toks) < 3 {
				return nil, 0, NewError(InvalidFormat)
			}
			fmtKind, ok := formatKeywords[toks[1]]
			if !ok {
				return nil, 0, NewError(InvalidFormat)
			}
			if !checkVersion(toks[2]) {
				return nil, 0, NewError(UnsupportedVersion)
			}
			if len(toks) > 3 {
				return nil, 0, NewError(FormatSpecifierTooLong)
			}
			hdr.Format = fmtKind
			haveFormat = true

		case "comment":
			text := ""
			if hasRest {
				text = string(cacheBytes(rest))
			}
			hdr.Comments = append(hdr.Comments, text)

		case "obj_info":
			text := ""
			if hasRest {
				text = string(cacheBytes(rest))
			}
			hdr.ObjInfos = append(hdr.ObjInfos, text)

		case "element":
			if !haveFormat {
				return nil, 0, NewError(MissingFormat)
			}
			toks, err := splitTokens(line)
			if err != nil {
				return nil, 0, err
			}
			if len(toks) < 3 {
				return nil, 0, NewError(ElementTooShort)
			}
			if len(toks) > 3 {
				return nil, 0, NewError(ElementTooLong)
			}
			name := toks[1]
			if hdr.ElementIndex(name) >= 0 {
				return nil, 0, NewError(DuplicateElementName)
			}
			count, perr := strconv.ParseUint(toks[2], 10, 64)
			if perr != nil {
				return nil, 0, classifyNumError(perr, CountOutOfRange, CountParseFailed)
			}
			hdr.Elements = append(hdr.Elements, ElementDecl{Name: name, Count: count})
			curElem = &hdr.Elements[len(hdr.Elements)-1]

		case "property":
			if !haveFormat {
				return nil, 0, NewError(MissingFormat)
			}
			if curElem == nil {
				return nil, 0, NewError(NakedProperty)
			}
			toks, err := splitTokens(line)
			if err != nil {
				return nil, 0, err
			}
			if len(toks) < 3 {
				return nil, 0, NewError(PropertyTooShort)
			}
			if toks[1] == "list" {
				if len(toks) < 5 {
					return nil, 0, NewError(PropertyTooShort)
				}
				if len(toks) > 5 {
					return nil, 0, NewError(PropertyTooLong)
				}
				sizeKind, ok := LookupKind(toks[2])
				if !ok {
					return nil, 0, NewError(InvalidType)
				}
				if sizeKind == F32 {
					return nil, 0, NewError(ListTypeFloat)
				}
				if sizeKind == F64 {
					return nil, 0, NewError(ListTypeDouble)
				}
				elemKind, ok := LookupKind(toks[3])
				if !ok {
					return nil, 0, NewError(InvalidType)
				}
				name := toks[4]
				if curElem.PropertyIndex(name) >= 0 {
					return nil, 0, NewError(DuplicatePropertyName)
				}
				curElem.Properties = append(curElem.Properties, PropertyDecl{
					Name: name,
					Kind: ListKind(sizeKind, elemKind),
				})
			} else {
				if len(toks) > 3 {
					return nil, 0, NewError(PropertyTooLong)
				}
				k, ok := LookupKind(toks[1])
				if !ok {
					return nil, 0, NewError(InvalidType)
				}
				name := toks[2]
				if curElem.PropertyIndex(name) >= 0 {
					return nil, 0, NewError(DuplicatePropertyName)
				}
				curElem.Properties = append(curElem.Properties, PropertyDecl{
					Name: name,
					Kind: ScalarKind(k),
				})
			}

		case "end_header":
			if !haveFormat {
				return nil, 0, NewError(MissingFormat)
			}
			if hasRest {
				return nil, 0, NewError(EndHeaderExtra)
			}
			hdr.LineEnding = canonicalEnding
			return hdr, offset, nil

		default:
			return nil, 0, NewError(UnknownKeyword)
		}
	}
}

// readRawLine reads one line from r, returning its content without the
// terminator and the terminator itself ("\n", "\r", or "\r\n"). err is
// the underlying stream error when a full line could not be read; the
// caller decides how to classify it (BadStream vs UnexpectedEof) based
// on header position.
func readRawLine(r plyio.Reader) (content []byte, ending string, err error) {
	var line []byte
	for {
		b, nerr := r.Next(1)
		if nerr != nil {
			return nil, "", nerr
		}
		switch b[0] {
		case '\n':
			return line, "\n", nil
		case '\r':
			pk, perr := r.Peek(1)
			if perr == nil && len(pk) == 1 && pk[0] == '\n' {
				if _, err := r.Next(1); err != nil {
					return nil, "", err
				}
				return line, "\r\n", nil
			}
			return line, "\r", nil
		default:
			line = append(line, b[0])
		}
	}
}

// validateLine checks the whole-line rules that apply regardless of
// keyword: printable ASCII or space only, no leading or trailing
// space.
func validateLine(line []byte) error {
	if len(line) == 0 {
		return nil
	}
	if line[0] == ' ' {
		return NewError(LineLeadsWithSpace)
	}
	if line[len(line)-1] == ' ' {
		return NewError(LineTrailingSpaces)
	}
	for _, c := range line {
		if c != ' ' && (c < 0x20 || c > 0x7e) {
			return NewError(InvalidCharacter)
		}
	}
	return nil
}

// checkVersion reports whether s is a valid PLY format version token:
// zero or more leading '0's, then '1', optionally followed by '.' and
// zero or more '0's. "1", "1.", "01", "0001.", and "1.0000" are all
// valid; "2", "0.0", "1..0", and "-1" are not.
func checkVersion(s string) bool {
	i := 0
	for i < len(s) && s[i] == '0' {
		i++
	}
	if i >= len(s) || s[i] != '1' {
		return false
	}
	i++
	if i >= len(s) {
		return true
	}
	if s[i] != '.' {
		return false
	}
	i++
	for ; i < len(s); i++ {
		if s[i] != '0' {
			return false
		}
	}
	return true
}

// splitFirst splits line at its first space, returning the leading
// word and the remainder (without the separating space).
func splitFirst(line []byte) (word string, rest []byte, hasRest bool) {
	idx := bytes.IndexByte(line, ' ')
	if idx < 0 {
		return string(line), nil, false
	}
	return string(line[:idx]), line[idx+1:], true
}

// splitTokens splits a single-space-separated line strictly: any
// repeated space (which would yield an empty token) is rejected with
// LineExtraSpaces. Leading/trailing space is rejected by validateLine
// before splitTokens is ever called.
func splitTokens(line []byte) ([]string, error) {
	parts := bytes.Split(line, []byte(" "))
	toks := make([]string, len(parts))
	for i, p := range parts {
		if len(p) == 0 {
			return nil, NewError(LineExtraSpaces)
		}
		toks[i] = string(p)
	}
	return toks, nil
}
