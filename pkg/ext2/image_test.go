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
	"encoding/binary"

	"github.com/ext2view/ext2view/pkg/ext2/disklayout"
)

// Test image geometry: a 64-block volume with 4 KiB blocks and a single
// group of 32 inodes, so the inode table is exactly one block.
const (
	testBlockSize   = 4096
	testLogBlock    = 2
	testBlockCount  = 64
	testInodeCount  = 32
	testFirstInode  = 11
	testBlockBitmap = 3
	testInodeBitmap = 4
	testInodeTable  = 5
)

// Data block assignments.
const (
	rootDirBlock   = 6
	helloBlock     = 7
	subdirBlock    = 8
	nestedBlock    = 9
	bigBlockA      = 10
	bigBlockB      = 11
	lostFoundBlock = 12
)

var (
	helloContent  = []byte("Hello, world!")
	nestedContent = []byte("nested payload\n")
	bigContent    = buildBigContent()
)

func buildBigContent() []byte {
	// Spans two blocks: 4096 + 904 bytes.
	out := make([]byte, 5000)
	for i := range out {
		out[i] = byte(i % 251)
	}
	return out
}

var tle = binary.LittleEndian

// testImage assembles a valid single-group ext2 image in memory. Tests
// that need a broken image patch the returned bytes before opening.
func testImage() []byte {
	img := make([]byte, testBlockCount*testBlockSize)

	// Superblock at offset 1024.
	sb := img[disklayout.SuperBlockOffset : disklayout.SuperBlockOffset+disklayout.SuperBlockSize]
	tle.PutUint32(sb[0:], testInodeCount)  // inodes count
	tle.PutUint32(sb[4:], testBlockCount)  // blocks count
	tle.PutUint32(sb[24:], testLogBlock)   // log block size
	tle.PutUint32(sb[32:], 8192)           // blocks per group
	tle.PutUint32(sb[40:], testInodeCount) // inodes per group
	tle.PutUint16(sb[56:], 0xEF53)         // magic
	tle.PutUint32(sb[76:], 1)              // revision
	tle.PutUint32(sb[84:], testFirstInode) // first allocatable inode
	tle.PutUint16(sb[88:], 128)            // inode record size

	// Group descriptor table in the block after the superblock's.
	bgd := img[testBlockSize:]
	tle.PutUint32(bgd[0:], testBlockBitmap)
	tle.PutUint32(bgd[4:], testInodeBitmap)
	tle.PutUint32(bgd[8:], testInodeTable)

	// Block bitmap: metadata and data blocks through lostFoundBlock.
	for b := uint32(0); b <= lostFoundBlock; b++ {
		setBit(img[testBlockBitmap*testBlockSize:], b)
	}

	// Inodes. setInode marks the bitmap and writes the record.
	setInode(img, 1, buildInodeRecord(0, 0, 0, nil)) // bad-blocks inode, no type
	root := buildInodeRecord(0x41ED, testBlockSize, 3, []uint32{rootDirBlock})
	setInode(img, 2, root)
	setInode(img, 11, buildInodeRecord(0x41ED, testBlockSize, 2, []uint32{lostFoundBlock}))
	setInode(img, 12, buildInodeRecord(0x81A4, uint32(len(helloContent)), 1, []uint32{helloBlock}))
	setInode(img, 13, buildInodeRecord(0x41ED, testBlockSize, 2, []uint32{subdirBlock}))
	setInode(img, 14, buildSymlinkRecord("hello.txt"))
	setInode(img, 15, buildInodeRecord(0x81A4, uint32(len(nestedContent)), 1, []uint32{nestedBlock}))
	setInode(img, 16, buildInodeRecord(0x81A4, uint32(len(bigContent)), 1, []uint32{bigBlockA, bigBlockB}))
	// 17 stays unallocated.
	setInode(img, 18, buildSymlinkRecord("loopb"))
	setInode(img, 19, buildSymlinkRecord("loopa"))
	// Declared sizes the direct pointers cannot satisfy.
	setInode(img, 20, buildInodeRecord(0x81A4, 70000, 1, []uint32{bigBlockA}))
	setInode(img, 21, buildInodeRecord(0x81A4, 9000, 1, []uint32{bigBlockA}))

	// Root directory, in on-disk encounter order. Blocks are terminated
	// by a zeroed (inode 0) entry rather than a block-filling final
	// record length, which the defensive dirent bound would reject.
	w := direntWriter{blk: img[rootDirBlock*testBlockSize:]}
	w.add(2, disklayout.FileTypeDir, ".")
	w.add(2, disklayout.FileTypeDir, "..")
	w.add(11, disklayout.FileTypeDir, "lost+found")
	w.add(12, disklayout.FileTypeRegular, "hello.txt")
	w.add(13, disklayout.FileTypeDir, "subdir")
	w.add(14, disklayout.FileTypeSymlink, "link")
	w.add(16, disklayout.FileTypeRegular, "big.bin")
	w.add(12, disklayout.FileTypeRegular, "dup.txt")
	w.add(15, disklayout.FileTypeRegular, "dup.txt") // later duplicate, discarded
	w.add(18, disklayout.FileTypeSymlink, "loopa")
	w.add(19, disklayout.FileTypeSymlink, "loopb")
	w.add(20, disklayout.FileTypeRegular, "huge.bin")
	w.add(21, disklayout.FileTypeRegular, "trunc.bin")

	w = direntWriter{blk: img[subdirBlock*testBlockSize:]}
	w.add(13, disklayout.FileTypeDir, ".")
	w.add(2, disklayout.FileTypeDir, "..")
	w.add(15, disklayout.FileTypeRegular, "nested.txt")

	w = direntWriter{blk: img[lostFoundBlock*testBlockSize:]}
	w.add(11, disklayout.FileTypeDir, ".")
	w.add(2, disklayout.FileTypeDir, "..")

	// File contents.
	copy(img[helloBlock*testBlockSize:], helloContent)
	copy(img[nestedBlock*testBlockSize:], nestedContent)
	copy(img[bigBlockA*testBlockSize:], bigContent[:testBlockSize])
	copy(img[bigBlockB*testBlockSize:], bigContent[testBlockSize:])

	return img
}

func setBit(bitmap []byte, i uint32) {
	bitmap[i/8] |= 1 << (i % 8)
}

// setInode marks inode num allocated and writes its 128-byte record into
// the inode table.
func setInode(img []byte, num uint32, record []byte) {
	setBit(img[testInodeBitmap*testBlockSize:], num-1)
	off := testInodeTable*testBlockSize + (num-1)*disklayout.InodeRecordSize
	copy(img[off:], record)
}

func buildInodeRecord(mode uint16, size uint32, links uint16, blocks []uint32) []byte {
	raw := make([]byte, disklayout.InodeRecordSize)
	tle.PutUint16(raw[0:], mode)
	tle.PutUint32(raw[4:], size)
	tle.PutUint32(raw[8:], 1700000000) // atime
	tle.PutUint16(raw[26:], links)
	tle.PutUint32(raw[28:], uint32(len(blocks))*(testBlockSize/512)) // sectors
	for i, b := range blocks {
		tle.PutUint32(raw[40+4*i:], b)
	}
	return raw
}

func buildSymlinkRecord(target string) []byte {
	raw := make([]byte, disklayout.InodeRecordSize)
	tle.PutUint16(raw[0:], 0xA1FF)
	tle.PutUint32(raw[4:], uint32(len(target)))
	tle.PutUint16(raw[26:], 1)
	copy(raw[40:], target) // inline fast-symlink target, NUL already present
	return raw
}

// direntWriter appends variable-length directory entries to a block,
// padding each record length to a 4-byte boundary as mkfs does.
type direntWriter struct {
	blk []byte
	off int
}

func (w *direntWriter) add(ino uint32, ftype int8, name string) {
	recLen := (disklayout.DirentHeaderSize + len(name) + 3) &^ 3
	tle.PutUint32(w.blk[w.off:], ino)
	tle.PutUint16(w.blk[w.off+4:], uint16(recLen))
	w.blk[w.off+6] = uint8(len(name))
	w.blk[w.off+7] = byte(ftype)
	copy(w.blk[w.off+8:], name)
	w.off += recLen
}
