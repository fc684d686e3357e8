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
	"io"

	"github.com/sirupsen/logrus"

	"github.com/ext2view/ext2view/pkg/ext2/disklayout"
)

// group owns one block group's allocation bitmaps and its materialized
// inode table. Exactly one group exists per supported volume.
type group struct {
	desc *disklayout.BlockGroupDesc

	blockBitmap disklayout.Bitmap
	inodeBitmap disklayout.Bitmap

	// inodes maps inode number to its materialized record. Slots whose
	// inode bitmap bit is clear get no entry at all.
	inodes map[uint32]*Inode
}

// newGroup reads the group's bitmaps and materializes every allocated
// inode in its range. Directory contents are parsed eagerly only for the
// root inode and for special low-numbered inodes (below the superblock's
// first ordinarily-allocatable index); other directories are stored
// unparsed and picked up lazily by path resolution.
func newGroup(dev io.ReaderAt, sb *disklayout.SuperBlock, desc *disklayout.BlockGroupDesc) (*group, error) {
	blkSize := int64(sb.BlockSize())

	blockBitmap, err := readRange(dev, int64(desc.BlockBitmap)*blkSize, blkSize)
	if err != nil {
		return nil, fmt.Errorf("reading block bitmap at block %d: %w", desc.BlockBitmap, err)
	}
	inodeBitmap, err := readRange(dev, int64(desc.InodeBitmap)*blkSize, blkSize)
	if err != nil {
		return nil, fmt.Errorf("reading inode bitmap at block %d: %w", desc.InodeBitmap, err)
	}

	g := &group{
		desc:        desc,
		blockBitmap: disklayout.NewBitmap(blockBitmap),
		inodeBitmap: disklayout.NewBitmap(inodeBitmap),
		inodes:      make(map[uint32]*Inode),
	}

	inodesPerBlock := sb.InodesPerBlock()
	inodeTableOff := int64(desc.InodeTable) * blkSize

	for i := uint32(0); i < sb.InodeTableBlocks(); i++ {
		tableBlockOff := inodeTableOff + int64(i)*blkSize

		for j := uint32(0); j < inodesPerBlock; j++ {
			// Inode numbering is 1-based; the bitmap is 0-based.
			num := i*inodesPerBlock + j + 1
			if !g.inodeBitmap.IsSet(num - 1) {
				continue
			}

			recOff := tableBlockOff + int64(j)*int64(sb.InodeRecordSize)
			rec, err := readRange(dev, recOff, int64(sb.InodeRecordSize))
			if err != nil {
				return nil, fmt.Errorf("reading inode %d at offset %d: %w", num, recOff, err)
			}
			disk, err := disklayout.ParseInode(rec[:disklayout.InodeRecordSize], sb.LogBlockSize)
			if err != nil {
				return nil, fmt.Errorf("decoding inode %d: %w", num, err)
			}

			in := &Inode{num: num, disk: disk}
			logrus.Debugf("ext2: materialized inode %d (mode %#o)", num, disk.Mode)

			// Only the root and the special low-numbered inodes get
			// their directory contents parsed during construction.
			if (num == disklayout.RootDirInode || num < sb.FirstInode) && disk.IsDirectory() {
				if err := parseDirectory(dev, sb, in); err != nil {
					return nil, fmt.Errorf("inode %d: %w", num, err)
				}
			}

			g.inodes[num] = in
		}
	}

	return g, nil
}

// parseDirectory walks the variable-length directory entries in every
// non-zero block pointed to by in's direct pointers and populates the
// child map. Idempotent; no-op if the contents were already parsed.
//
// Preconditions: in is a directory; the caller holds the volume's mu if
// the volume is already shared.
func parseDirectory(dev io.ReaderAt, sb *disklayout.SuperBlock, in *Inode) error {
	if in.children != nil {
		return nil
	}

	blkSize := int64(sb.BlockSize())
	children := make(map[string]DirEntry)
	var names []string

	for _, blk := range in.disk.Block {
		if blk == 0 {
			continue
		}

		data, err := readRange(dev, int64(blk)*blkSize, blkSize)
		if err != nil {
			return fmt.Errorf("reading directory block %d: %w", blk, err)
		}

		for off := 0; off+disklayout.DirentHeaderSize <= len(data); {
			hdr := disklayout.ParseDirentHeader(data[off : off+disklayout.DirentHeaderSize])
			if hdr.Inode == 0 {
				// An unused entry terminates the block's entry list.
				break
			}
			// Bound the declared record length before trusting it: an
			// oversized length would walk off into unrelated blocks on a
			// corrupted image, and an undersized one would never advance.
			if hdr.RecordLength > disklayout.MaxDirentSize || hdr.RecordLength < disklayout.DirentHeaderSize {
				return fmt.Errorf("dirent at block %d offset %d declares record length %d (valid range %d..%d): %w",
					blk, off, hdr.RecordLength, disklayout.DirentHeaderSize, disklayout.MaxDirentSize, ErrCorruptDirectory)
			}
			if off+disklayout.DirentHeaderSize+int(hdr.NameLength) > len(data) {
				return fmt.Errorf("dirent at block %d offset %d: name of %d bytes overruns block: %w",
					blk, off, hdr.NameLength, ErrCorruptDirectory)
			}

			name := string(data[off+disklayout.DirentHeaderSize : off+disklayout.DirentHeaderSize+int(hdr.NameLength)])
			if _, ok := children[name]; ok {
				// First occurrence wins.
				logrus.Warnf("ext2: duplicate name %q in directory inode %d, keeping first", name, in.num)
			} else {
				children[name] = DirEntry{Ino: hdr.Inode, Type: hdr.FileType}
				names = append(names, name)
			}

			off += int(hdr.RecordLength)
		}
	}

	in.children = children
	in.childNames = names
	return nil
}
