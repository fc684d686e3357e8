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

package disklayout

import (
	"github.com/ext2view/ext2view/pkg/binread"
)

// BlockGroupDesc represents one entry of the block group descriptor
// table. It records where the group keeps its allocation bitmaps and its
// inode table. The three usage counters are retained for informational
// purposes only.
//
// Immutable after ParseBlockGroupDesc.
type BlockGroupDesc struct {
	// BlockBitmap is the id of the block holding the group's block
	// allocation bitmap.
	BlockBitmap uint32

	// InodeBitmap is the id of the block holding the group's inode
	// allocation bitmap.
	InodeBitmap uint32

	// InodeTable is the id of the first block of the group's inode table.
	InodeTable uint32

	FreeBlocksCount int16
	FreeInodesCount int16
	UsedDirsCount   int16
}

// ParseBlockGroupDesc decodes a block group descriptor from buf, which
// must be exactly BlockGroupDescSize bytes. The 14 bytes of padding that
// complete the 32-byte record are left unread.
func ParseBlockGroupDesc(buf []byte) (*BlockGroupDesc, error) {
	r, err := binread.New(buf, BlockGroupDescSize)
	if err != nil {
		return nil, err
	}
	return &BlockGroupDesc{
		BlockBitmap:     r.Uint32(),
		InodeBitmap:     r.Uint32(),
		InodeTable:      r.Uint32(),
		FreeBlocksCount: r.Int16(),
		FreeInodesCount: r.Int16(),
		UsedDirsCount:   r.Int16(),
	}, nil
}
