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
	"time"
)

// InodeInfo is the full metadata report for one inode. Timestamps that
// were never set on disk (raw value 0) are absent (nil).
type InodeInfo struct {
	Number      uint32 `json:"inode"`
	Mode        uint16 `json:"mode"`
	Permissions uint16 `json:"permissions"`

	IsRegular bool `json:"is_regular"`
	IsDir     bool `json:"is_dir"`
	IsSymlink bool `json:"is_symlink"`

	UID             uint16 `json:"uid"`
	GID             uint16 `json:"gid"`
	Size            uint32 `json:"size"`
	LinksCount      uint16 `json:"links"`
	Flags           uint32 `json:"flags"`
	AllocatedBlocks uint32 `json:"allocated_blocks"`

	BlockPointers [15]uint32 `json:"block_pointers"`

	AccessTime       *time.Time `json:"access_time,omitempty"`
	ChangeTime       *time.Time `json:"change_time,omitempty"`
	ModificationTime *time.Time `json:"modification_time,omitempty"`
	DeletionTime     *time.Time `json:"deletion_time,omitempty"`

	// Children is set only for directories: child name to entry, in no
	// particular order. ChildNames preserves on-disk encounter order.
	Children   map[string]DirEntry `json:"children,omitempty"`
	ChildNames []string            `json:"child_names,omitempty"`

	// SymlinkTarget is set only for symbolic links.
	SymlinkTarget string `json:"symlink_target,omitempty"`
}

// Stat assembles the metadata report for in. Directory contents are
// parsed lazily if needed; a symlink's inline target is decoded and may
// fail with ErrBrokenSymlink.
func (v *Volume) Stat(in *Inode) (*InodeInfo, error) {
	disk := in.disk
	info := &InodeInfo{
		Number:          in.num,
		Mode:            disk.Mode,
		Permissions:     disk.Permissions(),
		IsRegular:       disk.IsRegular(),
		IsDir:           disk.IsDirectory(),
		IsSymlink:       disk.IsSymlink(),
		UID:             disk.UID,
		GID:             disk.GID,
		Size:            disk.Size,
		LinksCount:      disk.LinksCount,
		Flags:           disk.Flags,
		AllocatedBlocks: disk.AllocatedBlocks,
		BlockPointers:   disk.Block,
	}

	info.AccessTime = optionalTime(disk.AccessTime())
	info.ChangeTime = optionalTime(disk.ChangeTime())
	info.ModificationTime = optionalTime(disk.ModificationTime())
	info.DeletionTime = optionalTime(disk.DeletionTime())

	switch {
	case info.IsDir:
		v.mu.Lock()
		err := parseDirectory(v.dev, v.sb, in)
		v.mu.Unlock()
		if err != nil {
			return nil, fmt.Errorf("inode %d: %w", in.num, err)
		}
		info.Children = in.Children()
		info.ChildNames = in.ChildNames()
	case info.IsSymlink:
		target, err := disk.SymlinkTarget()
		if err != nil {
			return nil, fmt.Errorf("inode %d: %w", in.num, err)
		}
		info.SymlinkTarget = target
	}

	return info, nil
}

func optionalTime(t time.Time, ok bool) *time.Time {
	if !ok {
		return nil
	}
	return &t
}
