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
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/ext2view/ext2view/pkg/binread"
)

// ErrBrokenSymlink is returned when an inline symlink target has no NUL
// terminator within the block-pointer array.
var ErrBrokenSymlink = errors.New("broken symlink")

// File type codes stored in bits 12-15 of the inode mode.
const (
	// FileTypeMask selects the type sub-field of the mode.
	FileTypeMask = 0xF000

	// ModeRegular is the regular file type code.
	ModeRegular = 0x8000

	// ModeDirectory is the directory type code.
	ModeDirectory = 0x4000

	// ModeSymlink is the symbolic link type code.
	ModeSymlink = 0xA000
)

// fastSymlinkSize is the capacity of the block-pointer array when it is
// reused to store a short symlink target inline: 15 four-byte slots.
const fastSymlinkSize = 60

// Inode represents the 128-byte ext2 inode record. It emulates Linux's
// ext2_inode struct. All time fields are seconds since the epoch; a raw
// value of exactly 0 means the timestamp was never set.
//
// Immutable after ParseInode.
type Inode struct {
	// Mode holds the type nibble and the permission bits.
	Mode uint16

	UID  uint16
	Size uint32

	AccessTimeRaw       uint32
	ChangeTimeRaw       uint32
	ModificationTimeRaw uint32
	DeletionTimeRaw     uint32

	GID        uint16
	LinksCount uint16

	// SectorsCount is the raw i_blocks field, counted in 512-byte
	// sectors regardless of the volume block size.
	SectorsCount uint32

	Flags uint32
	OSD1  uint32

	// Block holds the 15 raw block-pointer slots. Only direct use is
	// made of them; a zero slot terminates iteration. For a fast symlink
	// the same 60 bytes store the target path instead.
	Block [15]uint32

	Generation uint32
	FileACL    uint32
	DirACL     uint32
	FragAddr   uint32
	OSD2       [12]int8

	// AllocatedBlocks is SectorsCount converted to volume blocks using
	// the superblock's log block size.
	AllocatedBlocks uint32
}

// ParseInode decodes an inode record from buf, which must be exactly
// InodeRecordSize bytes, using logBlockSize from the superblock to derive
// the allocated block count.
func ParseInode(buf []byte, logBlockSize uint32) (*Inode, error) {
	r, err := binread.New(buf, InodeRecordSize)
	if err != nil {
		return nil, err
	}

	in := &Inode{
		Mode:                uint16(r.Int16()),
		UID:                 uint16(r.Int16()),
		Size:                r.Uint32(),
		AccessTimeRaw:       r.Uint32(),
		ChangeTimeRaw:       r.Uint32(),
		ModificationTimeRaw: r.Uint32(),
		DeletionTimeRaw:     r.Uint32(),
		GID:                 uint16(r.Int16()),
		LinksCount:          uint16(r.Int16()),
		SectorsCount:        r.Uint32(),
		Flags:               r.Uint32(),
		OSD1:                r.Uint32(),
	}
	copy(in.Block[:], r.Uint32s(15))
	in.Generation = r.Uint32()
	in.FileACL = r.Uint32()
	in.DirACL = r.Uint32()
	in.FragAddr = r.Uint32()
	copy(in.OSD2[:], r.Int8s(12))

	in.AllocatedBlocks = in.SectorsCount / (1 << logBlockSize)
	return in, nil
}

// fileType returns the type sub-field of the mode. Type classification
// compares for equality rather than testing individual bits: several type
// codes share bits (e.g. symlink 0xA000 contains the regular file bit),
// so an any-bit-set test would misclassify them.
func (in *Inode) fileType() uint16 {
	return in.Mode & FileTypeMask
}

// IsRegular returns whether the inode is a regular file.
func (in *Inode) IsRegular() bool {
	return in.fileType() == ModeRegular
}

// IsDirectory returns whether the inode is a directory.
func (in *Inode) IsDirectory() bool {
	return in.fileType() == ModeDirectory
}

// IsSymlink returns whether the inode is a symbolic link.
func (in *Inode) IsSymlink() bool {
	return in.fileType() == ModeSymlink
}

// Permissions returns the permission bits of the mode.
func (in *Inode) Permissions() uint16 {
	return in.Mode &^ FileTypeMask
}

// AccessTime returns the last access time, or false if it was never set.
func (in *Inode) AccessTime() (time.Time, bool) {
	return timestamp(in.AccessTimeRaw)
}

// ChangeTime returns the last attribute change time, or false if it was
// never set.
func (in *Inode) ChangeTime() (time.Time, bool) {
	return timestamp(in.ChangeTimeRaw)
}

// ModificationTime returns the last content modification time, or false
// if it was never set.
func (in *Inode) ModificationTime() (time.Time, bool) {
	return timestamp(in.ModificationTimeRaw)
}

// DeletionTime returns the deletion time, or false if it was never set.
func (in *Inode) DeletionTime() (time.Time, bool) {
	return timestamp(in.DeletionTimeRaw)
}

func timestamp(raw uint32) (time.Time, bool) {
	if raw == 0 {
		return time.Time{}, false
	}
	return time.Unix(int64(raw), 0).UTC(), true
}

// SymlinkTarget decodes the target path of a fast symlink: the 15
// block-pointer slots reinterpreted as a raw byte string, truncated at
// the first NUL. A target that fills all 60 bytes without a terminator is
// rejected.
func (in *Inode) SymlinkTarget() (string, error) {
	var raw [fastSymlinkSize]byte
	for i, slot := range in.Block {
		binary.LittleEndian.PutUint32(raw[i*4:], slot)
	}
	n := bytes.IndexByte(raw[:], 0)
	if n < 0 {
		return "", fmt.Errorf("no NUL terminator within %d inline target bytes: %w", fastSymlinkSize, ErrBrokenSymlink)
	}
	return string(raw[:n]), nil
}
