// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package filemodel

import (
	"cmp"

	"cogentcore.org/treemodel/filesys"
	"cogentcore.org/treemodel/treedata"
	"cogentcore.org/treemodel/treemodel"
)

// infoCompare returns a comparison function for a [Model] that
// orders files by their info with fun. Rows without info sort first.
func infoCompare(fun func(a, b *filesys.Info) int) treemodel.CompareFunc {
	return func(tm treemodel.Model, a, b treemodel.Iter) int {
		m, ok := tm.(*Model)
		if !ok {
			return 0
		}
		ia, ib := m.Info(a), m.Info(b)
		switch {
		case ia == nil && ib == nil:
			return 0
		case ia == nil:
			return -1
		case ib == nil:
			return 1
		}
		return fun(ia, ib)
	}
}

// CompareName orders the files of a [Model] by collated display name.
var CompareName = infoCompare(func(a, b *filesys.Info) int {
	return treedata.CompareStrings(a.DisplayName, b.DisplayName)
})

// CompareSize orders the files of a [Model] by size, then by name.
var CompareSize = infoCompare(func(a, b *filesys.Info) int {
	if c := cmp.Compare(a.Size, b.Size); c != 0 {
		return c
	}
	return treedata.CompareStrings(a.DisplayName, b.DisplayName)
})

// CompareModTime orders the files of a [Model] by modification
// time, then by name.
var CompareModTime = infoCompare(func(a, b *filesys.Info) int {
	if c := a.ModTime.Compare(b.ModTime); c != 0 {
		return c
	}
	return treedata.CompareStrings(a.DisplayName, b.DisplayName)
})
