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

package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"os"

	"github.com/google/subcommands"

	"github.com/ext2view/ext2view/pkg/ext2"
)

// Stat implements subcommands.Command for the "stat" command.
type Stat struct {
	inode uint
}

// Name implements subcommands.Command.Name.
func (*Stat) Name() string {
	return "stat"
}

// Synopsis implements subcommands.Command.Synopsis.
func (*Stat) Synopsis() string {
	return "report an inode's full metadata as JSON"
}

// Usage implements subcommands.Command.Usage.
func (*Stat) Usage() string {
	return `stat [-i <inode>] [<path>]

Reports the metadata of one inode, selected either by path (following
symbolic links) or by inode number with -i. Exactly one selector must be
given.

OPTIONS:
`
}

// SetFlags implements subcommands.Command.SetFlags.
func (s *Stat) SetFlags(f *flag.FlagSet) {
	f.UintVar(&s.inode, "i", 0, "inode number to report (mutually exclusive with a path)")
}

// Execute implements subcommands.Command.Execute.
func (s *Stat) Execute(_ context.Context, f *flag.FlagSet, args ...any) subcommands.ExitStatus {
	byPath := f.NArg() == 1
	byNumber := s.inode != 0
	if byPath == byNumber || f.NArg() > 1 {
		// Exactly one of path and -i must be given.
		f.Usage()
		return subcommands.ExitUsageError
	}

	v := openVolume(args)
	defer v.Close()

	var (
		in  *ext2.Inode
		err error
	)
	if byPath {
		in, err = v.Resolve(f.Arg(0), true)
		if err != nil {
			Fatalf("resolving %q: %v", f.Arg(0), err)
		}
	} else {
		in, err = v.Inode(uint32(s.inode))
		if err != nil {
			Fatalf("inode %d: %v", s.inode, err)
		}
	}

	info, err := v.Stat(in)
	if err != nil {
		Fatalf("stat inode %d: %v", in.Number(), err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(info); err != nil {
		Fatalf("encoding metadata: %v", err)
	}
	return subcommands.ExitSuccess
}
