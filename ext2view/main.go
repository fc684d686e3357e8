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

// Binary ext2view is a read-only inspector for single-block-group ext2
// images: it lists directories, prints file contents and reports inode
// metadata.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"

	"github.com/ext2view/ext2view/ext2view/cmd"
)

var (
	image = flag.String("image", "", "path to the ext2 image to inspect (required)")
	debug = flag.Bool("debug", false, "enable debug logging")
)

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(new(cmd.Ls), "")
	subcommands.Register(new(cmd.Cat), "")
	subcommands.Register(new(cmd.Stat), "")

	// All subcommands must be registered before flag parsing.
	flag.Parse()

	logrus.SetOutput(os.Stderr)
	if *debug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	os.Exit(int(subcommands.Execute(context.Background(), *image)))
}
