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

package ext2

import (
	"errors"

	"github.com/ext2view/ext2view/pkg/binread"
	"github.com/ext2view/ext2view/pkg/ext2/disklayout"
)

// Error kinds surfaced by this package. All failures are fail-fast and
// non-recoverable at the point of detection; errors are wrapped with
// enough context (offending path component, declared vs actual sizes) to
// diagnose the on-disk inconsistency, and match these sentinels with
// errors.Is.
var (
	// ErrMalformedRecord indicates a fixed-layout structure was handed a
	// buffer of the wrong size.
	ErrMalformedRecord = binread.ErrMalformedRecord

	// ErrUnsupportedVolume indicates the volume has more than one block
	// group.
	ErrUnsupportedVolume = errors.New("unsupported volume")

	// ErrInconsistentGeometry indicates the superblock's inode-table
	// arithmetic does not add up.
	ErrInconsistentGeometry = errors.New("inconsistent geometry")

	// ErrCorruptDirectory indicates a directory entry declared a record
	// length outside the valid bounds.
	ErrCorruptDirectory = errors.New("corrupt directory")

	// ErrBrokenSymlink indicates an inline symlink target with no
	// terminator.
	ErrBrokenSymlink = disklayout.ErrBrokenSymlink

	// ErrNotFound indicates a path component does not exist.
	ErrNotFound = errors.New("no such file or directory")

	// ErrNotAFile indicates a read was attempted on a non-regular file.
	ErrNotAFile = errors.New("not a regular file")

	// ErrNotADirectory indicates a directory operation was attempted on
	// a non-directory.
	ErrNotADirectory = errors.New("not a directory")

	// ErrUnsupportedFile indicates a file whose declared size exceeds
	// what its direct block pointers can address.
	ErrUnsupportedFile = errors.New("unsupported file")

	// ErrSymlinkLoop indicates symlink resolution exceeded the hop
	// limit.
	ErrSymlinkLoop = errors.New("too many levels of symbolic links")
)
