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

// Package ext2 implements a read-only view of a single-block-group ext2
// volume. A Volume materializes the superblock, the group descriptor, the
// allocation bitmaps and the full inode table once at open time; after
// that it is immutable apart from lazy directory parsing, and safe for
// concurrent readers.
package ext2

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/ext2view/ext2view/pkg/ext2/disklayout"
)

// Volume is an opened ext2 volume. Opening is all-or-nothing: any
// geometry failure leaves no usable Volume.
type Volume struct {
	dev    io.ReaderAt
	closer io.Closer

	sb   *disklayout.SuperBlock
	desc *disklayout.BlockGroupDesc
	grp  *group
	root *Inode

	// mu serializes lazy directory parsing during path resolution.
	// Everything else is immutable after open.
	mu sync.Mutex
}

// Open opens the ext2 image at path. The caller owns the returned Volume
// and must Close it.
func Open(path string) (*Volume, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	v, err := NewVolume(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	v.closer = f
	return v, nil
}

// NewVolume decodes the volume structures from dev: the superblock, the
// (length-1) group descriptor table and the single group, caching the
// root inode for traversal. dev must remain valid for the Volume's
// lifetime.
func NewVolume(dev io.ReaderAt) (*Volume, error) {
	sbBuf, err := readRange(dev, disklayout.SuperBlockOffset, disklayout.SuperBlockSize)
	if err != nil {
		return nil, fmt.Errorf("reading superblock: %w", err)
	}
	sb, err := disklayout.ParseSuperBlock(sbBuf)
	if err != nil {
		return nil, fmt.Errorf("decoding superblock: %w", err)
	}
	logrus.Debugf("ext2: block size %d, %d inodes per group, first allocatable inode %d",
		sb.BlockSize(), sb.InodesPerGroup, sb.FirstInode)

	if n := sb.BlockGroupCount(); n != 1 {
		return nil, fmt.Errorf("volume has %d block groups, want exactly 1: %w", n, ErrUnsupportedVolume)
	}
	if got, want := sb.InodeTableBlocks()*sb.InodesPerBlock(), sb.InodesPerGroup; got != want {
		return nil, fmt.Errorf("inode table holds %d inodes but the superblock declares %d per group: %w",
			got, want, ErrInconsistentGeometry)
	}

	// The descriptor table begins in the block immediately following the
	// superblock's block.
	descBuf, err := readRange(dev, int64(sb.BlockSize()), disklayout.BlockGroupDescSize)
	if err != nil {
		return nil, fmt.Errorf("reading group descriptor: %w", err)
	}
	desc, err := disklayout.ParseBlockGroupDesc(descBuf)
	if err != nil {
		return nil, fmt.Errorf("decoding group descriptor: %w", err)
	}

	grp, err := newGroup(dev, sb, desc)
	if err != nil {
		return nil, fmt.Errorf("constructing block group: %w", err)
	}

	root, ok := grp.inodes[disklayout.RootDirInode]
	if !ok {
		return nil, fmt.Errorf("root inode %d is not allocated: %w", disklayout.RootDirInode, ErrNotFound)
	}

	return &Volume{dev: dev, sb: sb, desc: desc, grp: grp, root: root}, nil
}

// Close releases the backing file if the Volume was opened with Open.
func (v *Volume) Close() error {
	if v.closer != nil {
		return v.closer.Close()
	}
	return nil
}

// SuperBlock returns the decoded superblock.
func (v *Volume) SuperBlock() *disklayout.SuperBlock {
	return v.sb
}

// BlockGroupDesc returns the decoded group descriptor.
func (v *Volume) BlockGroupDesc() *disklayout.BlockGroupDesc {
	return v.desc
}

// Root returns the root directory inode.
func (v *Volume) Root() *Inode {
	return v.root
}

// Inode returns the materialized inode with the given number, or
// ErrNotFound if its bitmap bit is clear (no record exists for it).
func (v *Volume) Inode(num uint32) (*Inode, error) {
	in, ok := v.grp.inodes[num]
	if !ok {
		return nil, fmt.Errorf("inode %d is not allocated: %w", num, ErrNotFound)
	}
	return in, nil
}

// readRange reads exactly size bytes at off from dev.
func readRange(dev io.ReaderAt, off int64, size int64) ([]byte, error) {
	logrus.Debugf("ext2: reading %d bytes at offset %d", size, off)
	buf := make([]byte, size)
	if _, err := dev.ReadAt(buf, off); err != nil {
		return nil, fmt.Errorf("reading %d bytes at offset %d: %w", size, off, err)
	}
	return buf, nil
}
