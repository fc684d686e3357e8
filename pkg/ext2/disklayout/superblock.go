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

// SuperBlock represents the ext2 superblock, decoded from the fixed
// 1024-byte record at byte offset 1024. It emulates Linux's
// ext2_super_block struct up through the "Other options" section. Fields
// that this reader never consults are still decoded so the cursor stays
// aligned with the on-disk layout, and are retained for informational use.
//
// Immutable after ParseSuperBlock.
type SuperBlock struct {
	InodesCount         uint32
	BlocksCount         uint32
	ReservedBlocksCount uint32
	FreeBlocksCount     uint32
	FreeInodesCount     uint32
	FirstDataBlock      uint32
	LogBlockSize        uint32
	LogFragSize         uint32
	BlocksPerGroup      uint32
	FragsPerGroup       uint32
	InodesPerGroup      uint32
	MountTime           uint32
	WriteTime           uint32
	MountCount          int16
	MaxMountCount       int16
	Magic               int16
	State               int16
	Errors              int16
	MinorRevLevel       int16
	LastCheck           uint32
	CheckInterval       uint32
	CreatorOS           uint32
	RevLevel            uint32
	DefaultResUID       int16
	DefaultResGID       int16

	// EXT2_DYNAMIC_REV fields.

	// FirstInode is the first ordinarily-allocatable inode number.
	// Inodes below it, except the fixed root inode, are reserved for
	// special use.
	FirstInode      uint32
	InodeRecordSize int16
	BlockGroupNr    int16
	FeatureCompat   uint32
	FeatureIncompat uint32
	FeatureROCompat uint32
	UUID            [16]byte
	VolumeName      [16]byte
	LastMounted     [64]byte
	AlgoBitmap      uint32

	// Performance hints.
	PreallocBlocks    int8
	PreallocDirBlocks int8

	// Journaling support.
	JournalUUID  [16]byte
	JournalInode uint32
	JournalDev   uint32
	LastOrphan   uint32

	// Directory indexing support.
	HashSeed           [4]uint32
	DefaultHashVersion int8

	// Other options.
	DefaultMountOptions uint32
	FirstMetaBlockGroup uint32
}

// ParseSuperBlock decodes a superblock from buf, which must be exactly
// SuperBlockSize bytes read from SuperBlockOffset.
func ParseSuperBlock(buf []byte) (*SuperBlock, error) {
	r, err := binread.New(buf, SuperBlockSize)
	if err != nil {
		return nil, err
	}

	sb := &SuperBlock{
		InodesCount:         r.Uint32(),
		BlocksCount:         r.Uint32(),
		ReservedBlocksCount: r.Uint32(),
		FreeBlocksCount:     r.Uint32(),
		FreeInodesCount:     r.Uint32(),
		FirstDataBlock:      r.Uint32(),
		LogBlockSize:        r.Uint32(),
		LogFragSize:         r.Uint32(),
		BlocksPerGroup:      r.Uint32(),
		FragsPerGroup:       r.Uint32(),
		InodesPerGroup:      r.Uint32(),
		MountTime:           r.Uint32(),
		WriteTime:           r.Uint32(),
		MountCount:          r.Int16(),
		MaxMountCount:       r.Int16(),
		Magic:               r.Int16(),
		State:               r.Int16(),
		Errors:              r.Int16(),
		MinorRevLevel:       r.Int16(),
		LastCheck:           r.Uint32(),
		CheckInterval:       r.Uint32(),
		CreatorOS:           r.Uint32(),
		RevLevel:            r.Uint32(),
		DefaultResUID:       r.Int16(),
		DefaultResGID:       r.Int16(),
	}

	// EXT2_DYNAMIC_REV specific.
	sb.FirstInode = r.Uint32()
	sb.InodeRecordSize = r.Int16()
	sb.BlockGroupNr = r.Int16()
	sb.FeatureCompat = r.Uint32()
	sb.FeatureIncompat = r.Uint32()
	sb.FeatureROCompat = r.Uint32()
	copy(sb.UUID[:], r.Bytes(16))
	copy(sb.VolumeName[:], r.Bytes(16))
	copy(sb.LastMounted[:], r.Bytes(64))
	sb.AlgoBitmap = r.Uint32()

	// Performance hints.
	sb.PreallocBlocks = r.Int8()
	sb.PreallocDirBlocks = r.Int8()
	r.Bytes(2) // alignment

	// Journaling support.
	copy(sb.JournalUUID[:], r.Bytes(16))
	sb.JournalInode = r.Uint32()
	sb.JournalDev = r.Uint32()
	sb.LastOrphan = r.Uint32()

	// Directory indexing support.
	copy(sb.HashSeed[:], r.Uint32s(4))
	sb.DefaultHashVersion = r.Int8()
	r.Bytes(3) // padding

	// Other options.
	sb.DefaultMountOptions = r.Uint32()
	sb.FirstMetaBlockGroup = r.Uint32()

	return sb, nil
}

// BlockSize returns the volume block size in bytes.
func (sb *SuperBlock) BlockSize() uint64 {
	return 1024 << sb.LogBlockSize
}

// InodesPerBlock returns the number of inode-table slots per block.
func (sb *SuperBlock) InodesPerBlock() uint32 {
	return uint32(sb.BlockSize()) / uint32(sb.InodeRecordSize)
}

// InodeTableBlocks returns the length of a group's inode table in blocks.
func (sb *SuperBlock) InodeTableBlocks() uint32 {
	return sb.InodesPerGroup / sb.InodesPerBlock()
}

// BlockGroupCount returns the number of block groups on the volume.
func (sb *SuperBlock) BlockGroupCount() uint32 {
	return (sb.BlocksCount + sb.BlocksPerGroup - 1) / sb.BlocksPerGroup
}
