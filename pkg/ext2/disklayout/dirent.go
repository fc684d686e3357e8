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

// Directory entry type tags, stored in the header's file type byte.
const (
	FileTypeUnknown  int8 = 0
	FileTypeRegular  int8 = 1
	FileTypeDir      int8 = 2
	FileTypeCharDev  int8 = 3
	FileTypeBlockDev int8 = 4
	FileTypeFIFO     int8 = 5
	FileTypeSocket   int8 = 6
	FileTypeSymlink  int8 = 7
)

// DirentHeader is the fixed 8-byte header of a variable-length directory
// entry, immediately followed on disk by NameLength raw name bytes. An
// entry with inode number 0 terminates a block's entry list. The cursor
// advances by RecordLength, not by header plus name, matching on-disk
// padding.
type DirentHeader struct {
	Inode        uint32
	RecordLength uint16
	NameLength   uint8
	FileType     int8
}

// ParseDirentHeader decodes a directory entry header from the first
// DirentHeaderSize bytes of buf.
func ParseDirentHeader(buf []byte) DirentHeader {
	return DirentHeader{
		Inode:        binread.LittleEndian.Uint32(buf[0:4]),
		RecordLength: binread.LittleEndian.Uint16(buf[4:6]),
		NameLength:   buf[6],
		FileType:     int8(buf[7]),
	}
}
