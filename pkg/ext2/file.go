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
	"fmt"

	"github.com/ext2view/ext2view/pkg/ext2/disklayout"
)

// directPointerCount is the number of block-pointer slots used as direct
// pointers. Indirect pointers are not supported.
const directPointerCount = len(disklayout.Inode{}.Block)

// ReadAll returns the full contents of a regular file, walking its
// direct block pointers and reading up to one block per pointer until the
// declared size is satisfied. A size that needs more blocks than the
// direct array holds, or than are actually populated, fails with
// ErrUnsupportedFile; indirect pointers are never followed.
func (v *Volume) ReadAll(in *Inode) ([]byte, error) {
	if !in.IsRegular() {
		return nil, fmt.Errorf("inode %d (mode %#x): %w", in.num, in.disk.Mode, ErrNotAFile)
	}

	blkSize := int64(v.sb.BlockSize())
	size := int64(in.disk.Size)
	if needed := (size + blkSize - 1) / blkSize; needed > int64(directPointerCount) {
		return nil, fmt.Errorf("inode %d: size %d needs %d blocks, direct pointers hold at most %d: %w",
			in.num, size, needed, directPointerCount, ErrUnsupportedFile)
	}

	buf := make([]byte, 0, size)
	remaining := size
	for _, blk := range in.disk.Block {
		if remaining == 0 {
			break
		}
		if blk == 0 {
			return nil, fmt.Errorf("inode %d: size %d implies more blocks than are populated: %w",
				in.num, size, ErrUnsupportedFile)
		}
		n := remaining
		if n > blkSize {
			n = blkSize
		}
		chunk, err := readRange(v.dev, int64(blk)*blkSize, n)
		if err != nil {
			return nil, fmt.Errorf("inode %d: reading block %d: %w", in.num, blk, err)
		}
		buf = append(buf, chunk...)
		remaining -= n
	}

	return buf, nil
}

// ReadFile resolves path (following symlinks) and returns the file's
// bytes. Fails with ErrNotAFile if the terminal inode is not a regular
// file.
func (v *Volume) ReadFile(path string) ([]byte, error) {
	in, err := v.Resolve(path, true)
	if err != nil {
		return nil, err
	}
	return v.ReadAll(in)
}
