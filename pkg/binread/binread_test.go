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

package binread

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewSizeMismatch(t *testing.T) {
	tests := []struct {
		name    string
		buf     []byte
		size    int
		wantErr bool
	}{
		{"exact", make([]byte, 32), 32, false},
		{"short", make([]byte, 31), 32, true},
		{"long", make([]byte, 33), 32, true},
		{"empty", nil, 0, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := New(test.buf, test.size)
			if got := err != nil; got != test.wantErr {
				t.Fatalf("New(len %d, size %d) error = %v, wantErr = %t", len(test.buf), test.size, err, test.wantErr)
			}
			if err != nil && !errors.Is(err, ErrMalformedRecord) {
				t.Errorf("error %v is not ErrMalformedRecord", err)
			}
		})
	}
}

func TestSequentialReads(t *testing.T) {
	// A record with one field of each supported shape, in order.
	buf := []byte{
		0x78, 0x56, 0x34, 0x12, // Uint32: 0x12345678
		0xff, 0xff, 0xff, 0xff, // Int32: -1
		0xfe, 0xff, // Int16: -2
		0x80,             // Int8: -128
		'e', 'x', 't', 0, // Bytes(4)
		0x01, 0x00, 0x00, 0x00, // Uint32s(2)[0]
		0x02, 0x00, 0x00, 0x00, // Uint32s(2)[1]
	}

	r, err := New(buf, len(buf))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if got, want := r.Uint32(), uint32(0x12345678); got != want {
		t.Errorf("Uint32() = %#x, want %#x", got, want)
	}
	if got, want := r.Int32(), int32(-1); got != want {
		t.Errorf("Int32() = %d, want %d", got, want)
	}
	if got, want := r.Int16(), int16(-2); got != want {
		t.Errorf("Int16() = %d, want %d", got, want)
	}
	if got, want := r.Int8(), int8(-128); got != want {
		t.Errorf("Int8() = %d, want %d", got, want)
	}
	if diff := cmp.Diff([]byte{'e', 'x', 't', 0}, r.Bytes(4)); diff != "" {
		t.Errorf("Bytes(4) mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]uint32{1, 2}, r.Uint32s(2)); diff != "" {
		t.Errorf("Uint32s(2) mismatch (-want +got):\n%s", diff)
	}
}

func TestRepeatedSignedReads(t *testing.T) {
	buf := []byte{
		0xff, 0xff, 0xff, 0x7f, // Int32s[0]: MaxInt32
		0x00, 0x00, 0x00, 0x80, // Int32s[1]: MinInt32
		0x01, 0x00, // Int16s[0]: 1
		0xff, 0x7f, // Int16s[1]: MaxInt16
		0x7f, 0x80, 0x00, // Int8s: 127, -128, 0
	}

	r, err := New(buf, len(buf))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if diff := cmp.Diff([]int32{1<<31 - 1, -1 << 31}, r.Int32s(2)); diff != "" {
		t.Errorf("Int32s(2) mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int16{1, 1<<15 - 1}, r.Int16s(2)); diff != "" {
		t.Errorf("Int16s(2) mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int8{127, -128, 0}, r.Int8s(3)); diff != "" {
		t.Errorf("Int8s(3) mismatch (-want +got):\n%s", diff)
	}
}

func TestOverrunPanics(t *testing.T) {
	r, err := New(make([]byte, 6), 6)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	r.Uint32()

	defer func() {
		if recover() == nil {
			t.Errorf("reading past the end of the record did not panic")
		}
	}()
	r.Uint32() // only 2 bytes left
}
