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

// Command ply-validate parses and streams a single PLY file to a
// no-op sink, reporting the first decode error, if any.
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
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: ply-validate <file.ply>")
		os.Exit(1)
	}
	if err := validate(args[0]); err != nil {
		fmt.Fprintln(os.Stderr, "ply-validate:", err)
		os.Exit(1)
	}
}

func validate(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	r := plyio.NewStreamReader(f)
	hdr, _, err := ply.ParseHeader(r)
	if err != nil {
		return err
	}
	return ply.NewRecordReader(hdr, r).ReadAll(ply.DiscardSink{})
}
