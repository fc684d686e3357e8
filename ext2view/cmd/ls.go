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
	"flag"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/google/subcommands"

	"github.com/ext2view/ext2view/pkg/ext2"
)

// Ls implements subcommands.Command for the "ls" command.
type Ls struct {
	long bool
}

// Name implements subcommands.Command.Name.
func (*Ls) Name() string {
	return "ls"
}

// Synopsis implements subcommands.Command.Synopsis.
func (*Ls) Synopsis() string {
	return "list the names in a directory, in on-disk order"
}

// Usage implements subcommands.Command.Usage.
func (*Ls) Usage() string {
	return `ls [-l] <path>

Lists the child names of the directory at <path> (default "/") in the
order their entries appear on disk.

OPTIONS:
`
}

// SetFlags implements subcommands.Command.SetFlags.
func (l *Ls) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&l.long, "l", false, "long listing: type, inode number and size per entry")
}

// Execute implements subcommands.Command.Execute.
func (l *Ls) Execute(_ context.Context, f *flag.FlagSet, args ...any) subcommands.ExitStatus {
	if f.NArg() > 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	path := "/"
	if f.NArg() == 1 {
		path = f.Arg(0)
	}

	v := openVolume(args)
	defer v.Close()

	names, err := v.List(path)
	if err != nil {
		Fatalf("listing %q: %v", path, err)
	}

	if !l.long {
		for _, name := range names {
			fmt.Println(name)
		}
		return subcommands.ExitSuccess
	}

	dir, err := v.Resolve(path, true)
	if err != nil {
		Fatalf("resolving %q: %v", path, err)
	}
	for _, name := range names {
		ent, ok := dir.Lookup(name)
		if !ok {
			continue
		}
		child, err := v.Inode(ent.Ino)
		if err != nil {
			Fatalf("entry %q: %v", name, err)
		}
		fmt.Printf("%c %8d %8s %s\n", typeChar(child), child.Number(),
			humanize.IBytes(uint64(child.DiskInode().Size)), colorName(child, name))
	}
	return subcommands.ExitSuccess
}

func typeChar(in *ext2.Inode) byte {
	switch {
	case in.IsDir():
		return 'd'
	case in.IsSymlink():
		return 'l'
	case in.IsRegular():
		return '-'
	}
	return '?'
}

func colorName(in *ext2.Inode, name string) string {
	switch {
	case in.IsDir():
		return color.New(color.FgBlue, color.Bold).Sprint(name)
	case in.IsSymlink():
		target, err := in.DiskInode().SymlinkTarget()
		if err != nil {
			return color.New(color.FgRed).Sprint(name)
		}
		return fmt.Sprintf("%s -> %s", color.New(color.FgCyan).Sprint(name), target)
	}
	return name
}
