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
	"github.com/ext2view/ext2view/pkg/ext2/disklayout"
)

// DirEntry is one child binding within a directory: the child's inode
// number and its type tag. The child's name is the key of the directory's
// child map, not stored redundantly here.
type DirEntry struct {
	Ino  uint32
	Type int8
}

// Inode is a materialized inode: the decoded on-disk record plus, for
// directories, the parsed child bindings. Inodes are owned by their group
// and live for the volume's lifetime.
type Inode struct {
	num  uint32
	disk *disklayout.Inode

	// children maps child name to its directory entry, built once when
	// the directory's blocks are parsed and never mutated afterwards.
	// nil for non-directories and for directories whose contents have
	// not been parsed yet. Guarded by the volume's mu until populated.
	children map[string]DirEntry

	// childNames preserves on-disk encounter order, which the map
	// cannot.
	childNames []string
}

// Number returns the 1-based inode number.
func (in *Inode) Number() uint32 {
	return in.num
}

// DiskInode returns the decoded on-disk record.
func (in *Inode) DiskInode() *disklayout.Inode {
	return in.disk
}

// IsDir returns whether the inode is a directory.
func (in *Inode) IsDir() bool {
	return in.disk.IsDirectory()
}

// IsRegular returns whether the inode is a regular file.
func (in *Inode) IsRegular() bool {
	return in.disk.IsRegular()
}

// IsSymlink returns whether the inode is a symbolic link.
func (in *Inode) IsSymlink() bool {
	return in.disk.IsSymlink()
}

// Lookup returns the directory entry bound to name. It only consults
// already-parsed contents; resolution through the volume parses lazily.
func (in *Inode) Lookup(name string) (DirEntry, bool) {
	ent, ok := in.children[name]
	return ent, ok
}

// ChildNames returns the directory's child names in on-disk encounter
// order. Empty for non-directories and unparsed directories.
func (in *Inode) ChildNames() []string {
	return append([]string(nil), in.childNames...)
}

// Children returns a copy of the directory's child map.
func (in *Inode) Children() map[string]DirEntry {
	if in.children == nil {
		return nil
	}
	out := make(map[string]DirEntry, len(in.children))
	for name, ent := range in.children {
		out[name] = ent
	}
	return out
}
