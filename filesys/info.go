// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package filesys

import (
	"io/fs"
	"strings"
	"time"
)

// Attributes select which parts of [Info] a query fills in.
type Attributes uint32

const (
	// AttrStandard is the name, display name, type and the hidden,
	// backup and symlink flags. It is always included.
	AttrStandard Attributes = 1 << iota

	// AttrSize is the size in bytes.
	AttrSize

	// AttrModTime is the modification time and mode.
	AttrModTime

	// AttrContentType is the content type, which may require
	// reading the start of the file.
	AttrContentType

	// AttrAll is all attributes.
	AttrAll = AttrStandard | AttrSize | AttrModTime | AttrContentType
)

// Has returns whether all of the given attributes are set.
func (a Attributes) Has(attr Attributes) bool {
	return a&attr == attr
}

func (a Attributes) String() string {
	var names []string
	for _, n := range []struct {
		a    Attributes
		name string
	}{{AttrStandard, "standard"}, {AttrSize, "size"}, {AttrModTime, "time"}, {AttrContentType, "content-type"}} {
		if a.Has(n.a) {
			names = append(names, n.name)
		}
	}
	return strings.Join(names, ",")
}

// FileType is the type of a file.
type FileType int32

const (
	TypeUnknown FileType = iota
	TypeRegular
	TypeDirectory
	TypeSymlink
	TypeSpecial

	// TypeShortcut is an entry that points to another location,
	// such as a bookmark of a virtual file system.
	TypeShortcut

	// TypeMountable is an entry that can be mounted to browse it,
	// such as a network share or a drive.
	TypeMountable
)

func (t FileType) String() string {
	switch t {
	case TypeRegular:
		return "regular"
	case TypeDirectory:
		return "directory"
	case TypeSymlink:
		return "symlink"
	case TypeSpecial:
		return "special"
	case TypeShortcut:
		return "shortcut"
	case TypeMountable:
		return "mountable"
	}
	return "unknown"
}

// Info is the information known about a file, as filled in by a
// query for some [Attributes].
type Info struct {
	// Name is the name of the file in its directory.
	Name string

	// DisplayName is Name as valid UTF-8, for showing to users.
	DisplayName string

	// Type is the type of the file. For a symlink that can be
	// resolved it is the type of the target.
	Type FileType

	// IsSymlink is whether the file is a symbolic link.
	IsSymlink bool

	// IsHidden is whether the file is hidden: its name starts with a dot.
	IsHidden bool

	// IsBackup is whether the file is a backup: its name ends with a tilde.
	IsBackup bool

	// ContentType is the MIME type of the contents of the file.
	ContentType string

	Size    int64
	Mode    fs.FileMode
	ModTime time.Time
}

// NewInfo returns the standard information for a file of the given
// name and type, with the hidden and backup flags derived from the name.
func NewInfo(name string, typ FileType) *Info {
	return &Info{
		Name:        name,
		DisplayName: strings.ToValidUTF8(name, "�"),
		Type:        typ,
		IsHidden:    strings.HasPrefix(name, "."),
		IsBackup:    strings.HasSuffix(name, "~"),
	}
}

// IsDir returns whether the file is a directory.
func (i *Info) IsDir() bool {
	return i.Type == TypeDirectory
}

// MimeType returns the MIME type of the file, without parameters.
func (i *Info) MimeType() string {
	mt, _, _ := strings.Cut(i.ContentType, ";")
	return strings.TrimSpace(mt)
}

// Clone returns a copy of the info.
func (i *Info) Clone() *Info {
	c := *i
	return &c
}

// ConsiderAsDirectory returns whether the file should be shown and
// filtered as a directory. Shortcuts and mountable entries lead to
// more files, so they count as directories too.
func ConsiderAsDirectory(info *Info) bool {
	if info == nil {
		return false
	}
	switch info.Type {
	case TypeDirectory, TypeShortcut, TypeMountable:
		return true
	}
	return false
}
