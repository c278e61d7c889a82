// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package filemodel

import (
	"slices"
	"sort"

	"cogentcore.org/treemodel/base/errors"
	"cogentcore.org/treemodel/base/slicesx"
	"cogentcore.org/treemodel/filesys"
	"cogentcore.org/treemodel/treemodel"
)

// compareFunc returns the active comparison function, inverted for
// a descending sort, or nil if the model is not sorted.
func (m *Model) compareFunc() treemodel.CompareFunc {
	var fun treemodel.CompareFunc
	switch m.sortColumnID {
	case treemodel.UnsortedSortColumnID:
		return nil
	case treemodel.DefaultSortColumnID:
		fun = m.defaultSort
	default:
		if h := m.headers.Lookup(m.sortColumnID); h != nil {
			fun = h.Func
		}
	}
	if fun == nil {
		return nil
	}
	if m.sortOrder == treemodel.Descending {
		return treemodel.Inverted(fun)
	}
	return fun
}

// rowsReordered renumbers the rows after the nodes moved and emits
// RowsReordered if there are visible rows. Unless always is set, it
// is not emitted if the visible rows kept their order. Row numbers
// must have been valid for all nodes before the move.
func (m *Model) rowsReordered(always bool) {
	clear(m.lookup)
	newOrder := make([]int, 0, m.files[len(m.files)-1].row)
	for _, n := range m.files {
		if n.visible {
			newOrder = append(newOrder, n.row-1)
		}
	}
	m.nValid = 0
	m.validateRows(noBound, noBound)
	if len(newOrder) == 0 || (!always && slicesx.IsIdentity(newOrder)) {
		return
	}
	m.notifier.RowsReordered(treemodel.Path{}, nil, newOrder)
}

// sort sorts all files, or defers doing so until thawed. The
// editable node stays first.
func (m *Model) sort() {
	if m.frozen > 0 {
		m.sortOnThaw = true
		return
	}
	m.sortOnThaw = false
	fun := m.compareFunc()
	if fun == nil || len(m.files) <= 2 {
		return
	}
	m.validateRows(noBound, noBound)
	// sort node indexes so that the comparison sees the nodes
	// where iterators expect them
	ids := slicesx.Identity(len(m.files))
	slices.SortStableFunc(ids[1:], func(a, b int) int {
		return fun(m, m.iterOf(a), m.iterOf(b))
	})
	m.files = slicesx.Permute(m.files, ids)
	m.rowsReordered(true)
}

// sortNode moves the node at id to its sorted position among the
// other files, or defers a full sort until thawed.
func (m *Model) sortNode(id int) {
	if m.frozen > 0 {
		m.sortOnThaw = true
		return
	}
	fun := m.compareFunc()
	if fun == nil || len(m.files) <= 2 {
		return
	}
	cmp := func(a, b int) int {
		return fun(m, m.iterOf(a), m.iterOf(b))
	}
	if (id <= 1 || cmp(id-1, id) <= 0) && (id+1 >= len(m.files) || cmp(id, id+1) <= 0) {
		return
	}
	m.validateRows(noBound, noBound)
	// others is the number of files other than the node; k indexes
	// them in order, skipping id
	others := len(m.files) - 2
	other := func(k int) int {
		if 1+k < id {
			return 1 + k
		}
		return 2 + k
	}
	k := sort.Search(others, func(k int) bool {
		return cmp(id, other(k)) < 0
	})
	m.files = slicesx.Move(m.files, id, 1+k)
	m.rowsReordered(false)
}

//////// Sortable

var _ treemodel.Sortable = (*Model)(nil)

// SortColumnID returns the sort column id and order. It returns false
// if the model is unsorted or sorted by the default function.
func (m *Model) SortColumnID() (int, treemodel.SortType, bool) {
	special := m.sortColumnID == treemodel.DefaultSortColumnID || m.sortColumnID == treemodel.UnsortedSortColumnID
	return m.sortColumnID, m.sortOrder, !special
}

// SetSortColumnID sorts the model by the function of the given sort
// column id, which must have one, in the given order.
func (m *Model) SetSortColumnID(id int, order treemodel.SortType) {
	if m.sortColumnID == id && m.sortOrder == order {
		return
	}
	switch id {
	case treemodel.UnsortedSortColumnID:
	case treemodel.DefaultSortColumnID:
		if m.defaultSort == nil {
			errors.Precondition("filemodel.SetSortColumnID", "no default sort function")
			return
		}
	default:
		if h := m.headers.Lookup(id); h == nil || h.Func == nil {
			errors.Precondition("filemodel.SetSortColumnID", "no sort function for column", "id", id)
			return
		}
	}
	m.sortColumnID = id
	m.sortOrder = order
	m.notifier.SortColumnChanged()
	m.sort()
}

// SetSortFunc sets the comparison function of a sort column id,
// resorting if the id is active.
func (m *Model) SetSortFunc(id int, fun treemodel.CompareFunc, destroy func()) {
	m.headers.Set(id, fun, destroy)
	if m.sortColumnID == id {
		m.sort()
	}
}

// SetDefaultSortFunc sets the default comparison function,
// resorting if the default sort is active.
func (m *Model) SetDefaultSortFunc(fun treemodel.CompareFunc, destroy func()) {
	if m.defaultDestroy != nil {
		d := m.defaultDestroy
		m.defaultDestroy = nil
		d()
	}
	m.defaultSort = fun
	m.defaultDestroy = destroy
	if m.sortColumnID == treemodel.DefaultSortColumnID {
		m.sort()
	}
}

func (m *Model) HasDefaultSortFunc() bool {
	return m.defaultSort != nil
}

// FoldersFirst returns a comparison function for a [Model] that puts
// folders before other files and orders the rest with fun. It can be
// used with the other models too, where it is the same as fun.
func FoldersFirst(fun treemodel.CompareFunc) treemodel.CompareFunc {
	return func(tm treemodel.Model, a, b treemodel.Iter) int {
		if m, ok := tm.(*Model); ok {
			da := filesys.ConsiderAsDirectory(m.Info(a))
			db := filesys.ConsiderAsDirectory(m.Info(b))
			if da != db {
				if da {
					return -1
				}
				return 1
			}
		}
		return fun(tm, a, b)
	}
}
