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

// Bitmap is an allocation bitmap read off disk: one bit per block or per
// inode, with little-endian bit ordering within each byte. Inode and
// block numbering is 1-based while bitmap indexing is 0-based, so slot N
// is tested at index N-1.
//
// Immutable.
type Bitmap struct {
	data []byte
}

// NewBitmap returns a Bitmap over data. The caller passes exactly one
// block of bitmap data.
func NewBitmap(data []byte) Bitmap {
	return Bitmap{data: data}
}

// IsSet returns whether bit i is set.
func (b Bitmap) IsSet(i uint32) bool {
	return b.data[i/8]&(1<<(i%8)) != 0
}

// Len returns the number of bits in the bitmap.
func (b Bitmap) Len() uint32 {
	return uint32(len(b.data)) * 8
}
