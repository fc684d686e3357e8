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
	"strings"
)

// maxSymlinkHops bounds symlink substitution during one resolution,
// matching the usual POSIX SYMLOOP limit. Without it a self-referential
// link chain would recurse until the stack ran out.
const maxSymlinkHops = 40

// Resolve walks path from the root directory and returns the terminal
// inode. A single leading separator is stripped; an empty or "/" path
// returns the root directly. When followLinks is set, a symbolic link
// encountered at any component is substituted by resolving its decoded
// target from the link's parent directory before continuing.
func (v *Volume) Resolve(path string, followLinks bool) (*Inode, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.resolveLocked(v.root, path, followLinks, 0)
}

// resolveLocked resolves path starting from start.
//
// Preconditions: v.mu is held.
func (v *Volume) resolveLocked(start *Inode, path string, followLinks bool, hops int) (*Inode, error) {
	path = strings.TrimPrefix(path, "/")

	components := strings.Split(path, "/")
	empty := true
	for _, c := range components {
		if c != "" {
			empty = false
			break
		}
	}
	if empty {
		return start, nil
	}

	cur := start
	for _, name := range components {
		if !cur.IsDir() {
			return nil, fmt.Errorf("cannot look up %q in inode %d: %w", name, cur.num, ErrNotADirectory)
		}
		if err := parseDirectory(v.dev, v.sb, cur); err != nil {
			return nil, fmt.Errorf("inode %d: %w", cur.num, err)
		}

		ent, ok := cur.children[name]
		if !ok {
			return nil, fmt.Errorf("component %q not found (directory inode %d contains: %s): %w",
				name, cur.num, strings.Join(cur.childNames, ", "), ErrNotFound)
		}

		next, err := v.Inode(ent.Ino)
		if err != nil {
			return nil, fmt.Errorf("component %q: %w", name, err)
		}

		if next.IsSymlink() && followLinks {
			hops++
			if hops > maxSymlinkHops {
				return nil, fmt.Errorf("resolving %q: %w", name, ErrSymlinkLoop)
			}
			target, err := next.disk.SymlinkTarget()
			if err != nil {
				return nil, fmt.Errorf("symlink inode %d: %w", next.num, err)
			}
			// The link target resolves from the parent directory, the
			// inode just before the link.
			next, err = v.resolveLocked(cur, target, followLinks, hops)
			if err != nil {
				return nil, fmt.Errorf("following symlink %q -> %q: %w", name, target, err)
			}
		}

		cur = next
	}

	return cur, nil
}

// List resolves path (following symlinks) and returns the directory's
// child names in on-disk encounter order, with later duplicates
// suppressed. Fails with ErrNotADirectory if the terminal inode is not a
// directory.
func (v *Volume) List(path string) ([]string, error) {
	in, err := v.Resolve(path, true)
	if err != nil {
		return nil, err
	}
	if !in.IsDir() {
		return nil, fmt.Errorf("%q (inode %d): %w", path, in.num, ErrNotADirectory)
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if err := parseDirectory(v.dev, v.sb, in); err != nil {
		return nil, fmt.Errorf("inode %d: %w", in.num, err)
	}
	return append([]string(nil), in.childNames...), nil
}
