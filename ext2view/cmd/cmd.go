// Copyright 2025 The ext2view Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package cmd holds implementations of the ext2view commands. Commands
// consume the core only through the three read operations: list a
// directory, read a file, report inode metadata.
package cmd

import (
	"fmt"
	"os"

	"github.com/ext2view/ext2view/pkg/ext2"
)

// Fatalf prints an error message to stderr and exits. It is used when a
// command cannot continue; the core's errors already carry the on-disk
// context.
func Fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "ext2view: "+format+"\n", args...)
	os.Exit(1)
}

// openVolume opens the image passed through the top-level -image flag.
// The first Execute argument is always that flag's value.
func openVolume(args []any) *ext2.Volume {
	if len(args) < 1 {
		panic("image path not plumbed through subcommand args")
	}
	image := args[0].(string)
	if image == "" {
		Fatalf("no image specified, use -image")
	}
	v, err := ext2.Open(image)
	if err != nil {
		Fatalf("opening %q: %v", image, err)
	}
	return v
}
