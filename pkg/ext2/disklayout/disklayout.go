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

// Package disklayout provides Go implementations of the on-disk data
// structures of an ext2 volume: the superblock, the block group
// descriptor, the allocation bitmaps, the inode record and the directory
// entry. All structures are fixed-layout little-endian records; decoding
// consumes every field in strict on-disk order.
package disklayout

const (
	// SuperBlockOffset is the absolute byte offset of the superblock on
	// the volume. The first 1024 bytes are reserved for the boot record.
	SuperBlockOffset = 1024

	// SuperBlockSize is the on-disk size of the superblock record.
	SuperBlockSize = 1024

	// BlockGroupDescSize is the on-disk size of one block group
	// descriptor. The descriptor table begins in the block immediately
	// following the superblock's block, i.e. at byte offset = block size.
	BlockGroupDescSize = 32

	// InodeRecordSize is the on-disk size of the ext2 inode record. The
	// superblock may declare a larger per-slot stride; only the first 128
	// bytes carry the record decoded here.
	InodeRecordSize = 128

	// RootDirInode is the fixed inode number of the root directory.
	RootDirInode = 2

	// MaxFileName is the maximum length of a directory entry name.
	MaxFileName = 255

	// DirentHeaderSize is the size of the fixed directory entry header
	// that precedes the name bytes.
	DirentHeaderSize = 8

	// MaxDirentSize bounds a directory entry's declared record length:
	// header, maximum name, and one byte of slack. Anything larger is
	// treated as corruption rather than scanned.
	MaxDirentSize = DirentHeaderSize + MaxFileName + 1
)
