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
	"os"

	"github.com/google/subcommands"
)

// Cat implements subcommands.Command for the "cat" command.
type Cat struct{}

// Name implements subcommands.Command.Name.
func (*Cat) Name() string {
	return "cat"
}

// Synopsis implements subcommands.Command.Synopsis.
func (*Cat) Synopsis() string {
	return "print a file's bytes to stdout"
}

// Usage implements subcommands.Command.Usage.
func (*Cat) Usage() string {
	return `cat <path>

Reads the regular file at <path>, following symbolic links, and writes
its contents to stdout.

`
}

// SetFlags implements subcommands.Command.SetFlags.
func (*Cat) SetFlags(*flag.FlagSet) {}

// Execute implements subcommands.Command.Execute.
func (*Cat) Execute(_ context.Context, f *flag.FlagSet, args ...any) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	path := f.Arg(0)

	v := openVolume(args)
	defer v.Close()

	data, err := v.ReadFile(path)
	if err != nil {
		Fatalf("reading %q: %v", path, err)
	}
	if _, err := os.Stdout.Write(data); err != nil {
		Fatalf("writing output: %v", err)
	}
	return subcommands.ExitSuccess
}
