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

// Package binread reads fixed-layout little-endian records field by field.
//
// A Reader is constructed over a fully-buffered record of a known size and
// exposes positional reads which consume and advance an internal cursor.
// Callers must issue reads in the exact on-disk field order; the Reader
// never looks ahead of or behind the cursor.
package binread

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrMalformedRecord is returned when a record buffer does not have the
// exact size its layout declares.
var ErrMalformedRecord = errors.New("malformed record")

// LittleEndian is the same as encoding/binary.LittleEndian.
//
// It is included here as a convenience. Every on-disk ext2 field is
// little-endian.
var LittleEndian = binary.LittleEndian

// Reader decodes a fixed-layout record. The zero value is not usable; use
// New.
type Reader struct {
	buf []byte
	off int
}

// New returns a Reader over buf, which must be exactly size bytes long.
func New(buf []byte, size int) (*Reader, error) {
	if len(buf) != size {
		return nil, fmt.Errorf("record buffer is %d bytes, want exactly %d: %w", len(buf), size, ErrMalformedRecord)
	}
	return &Reader{buf: buf}, nil
}

// advance returns the next n bytes of the record and moves the cursor past
// them. Reading past the end of the record is a caller bug: every field of
// a fixed-layout record is mandatory, so a correctly ordered sequence of
// reads can never overrun.
func (r *Reader) advance(n int) []byte {
	if r.off+n > len(r.buf) {
		panic(fmt.Sprintf("read of %d bytes at offset %d overruns %d byte record", n, r.off, len(r.buf)))
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b
}

// Uint32 reads a single unsigned 32-bit integer.
func (r *Reader) Uint32() uint32 {
	return LittleEndian.Uint32(r.advance(4))
}

// Uint32s reads n consecutive unsigned 32-bit integers.
func (r *Reader) Uint32s(n int) []uint32 {
	out := make([]uint32, n)
	for i := range out {
		out[i] = r.Uint32()
	}
	return out
}

// Int32 reads a single signed 32-bit integer.
func (r *Reader) Int32() int32 {
	return int32(r.Uint32())
}

// Int32s reads n consecutive signed 32-bit integers.
func (r *Reader) Int32s(n int) []int32 {
	out := make([]int32, n)
	for i := range out {
		out[i] = r.Int32()
	}
	return out
}

// Int16 reads a single signed 16-bit integer.
func (r *Reader) Int16() int16 {
	return int16(LittleEndian.Uint16(r.advance(2)))
}

// Int16s reads n consecutive signed 16-bit integers.
func (r *Reader) Int16s(n int) []int16 {
	out := make([]int16, n)
	for i := range out {
		out[i] = r.Int16()
	}
	return out
}

// Int8 reads a single signed 8-bit integer.
func (r *Reader) Int8() int8 {
	return int8(r.advance(1)[0])
}

// Int8s reads n consecutive signed 8-bit integers.
func (r *Reader) Int8s(n int) []int8 {
	out := make([]int8, n)
	for i := range out {
		out[i] = r.Int8()
	}
	return out
}

// Bytes reads a fixed-length raw byte string. The returned slice is a view
// into the record buffer.
func (r *Reader) Bytes(n int) []byte {
	return r.advance(n)
}
