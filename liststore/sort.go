// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package liststore

import (
	"slices"
	"sort"

	"cogentcore.org/treemodel/base/errors"
	"cogentcore.org/treemodel/treemodel"
)

func (s *ListStore) isSorted() bool {
	return s.sortColumnID != treemodel.UnsortedSortColumnID
}

// compareFunc returns the active comparison function, inverted for
// a descending sort, or nil if the store is not sorted.
func (s *ListStore) compareFunc() treemodel.CompareFunc {
	var fun treemodel.CompareFunc
	switch s.sortColumnID {
	case treemodel.UnsortedSortColumnID:
		return nil
	case treemodel.DefaultSortColumnID:
		fun = s.defaultSort
	default:
		if h := s.headers.Lookup(s.sortColumnID); h != nil {
			fun = h.Func
		}
	}
	if fun == nil {
		return nil
	}
	if s.sortOrder == treemodel.Descending {
		return treemodel.Inverted(fun)
	}
	return fun
}

func (s *ListStore) rowCompare() func(a, b *row) int {
	fun := s.compareFunc()
	return func(a, b *row) int {
		return fun(s, s.iterOf(a), s.iterOf(b))
	}
}

// needsSort returns whether changing the given columns can move a
// row of the sorted store.
func (s *ListStore) needsSort(cols []int) bool {
	if !s.isSorted() {
		return false
	}
	if s.sortColumnID == treemodel.DefaultSortColumnID {
		return s.defaultSort != nil
	}
	h := s.headers.Lookup(s.sortColumnID)
	if h == nil || h.Func == nil {
		return false
	}
	return slices.ContainsFunc(cols, h.Participates)
}

// sort sorts all rows, emitting RowsReordered.
func (s *ListStore) sort() {
	if s.Len() <= 1 || s.compareFunc() == nil {
		return
	}
	slices.SortStableFunc(s.rows(), s.rowCompare())
	s.notifier.RowsReordered(treemodel.Path{}, nil, s.newOrder())
}

// rowIsSorted returns whether r is in order with its neighbors.
func (s *ListStore) rowIsSorted(r *row) bool {
	cmp := s.rowCompare()
	rows, pos := s.rows(), s.pos(r)
	if pos > 0 && cmp(rows[pos-1], r) > 0 {
		return false
	}
	if pos+1 < len(rows) && cmp(r, rows[pos+1]) > 0 {
		return false
	}
	return true
}

// reposition moves r to its sorted position among the other rows
// by binary search, after the rows that compare equal to it. Row
// positions are left as they were before the move.
func (s *ListStore) reposition(r *row) {
	cmp := s.rowCompare()
	rows, from := s.rows(), s.pos(r)
	// i indexes the other rows, skipping r
	to := sort.Search(len(rows)-1, func(i int) bool {
		if i >= from {
			i++
		}
		return cmp(r, rows[i]) < 0
	})
	shift(rows, from, to)
}

// sortRowChanged emits RowChanged for r and then moves it to its
// sorted position if needed, emitting RowsReordered if it moved.
func (s *ListStore) sortRowChanged(r *row) {
	s.notifier.RowChanged(treemodel.Path{s.pos(r)}, s.iterOf(r))
	if s.rowIsSorted(r) {
		return
	}
	s.reposition(r)
	s.notifier.RowsReordered(treemodel.Path{}, nil, s.newOrder())
}

//////// Sortable

// SortColumnID returns the sort column id and order. It returns false
// if the store is unsorted or sorted by the default function.
func (s *ListStore) SortColumnID() (int, treemodel.SortType, bool) {
	special := s.sortColumnID == treemodel.DefaultSortColumnID || s.sortColumnID == treemodel.UnsortedSortColumnID
	return s.sortColumnID, s.sortOrder, !special
}

// SetSortColumnID sorts the store by the function of the given sort
// column id, which must have one, in the given order.
func (s *ListStore) SetSortColumnID(id int, order treemodel.SortType) {
	if s.sortColumnID == id && s.sortOrder == order {
		return
	}
	switch id {
	case treemodel.UnsortedSortColumnID:
	case treemodel.DefaultSortColumnID:
		if s.defaultSort == nil {
			errors.Precondition("liststore.SetSortColumnID", "no default sort function")
			return
		}
	default:
		if h := s.headers.Lookup(id); h == nil || h.Func == nil {
			errors.Precondition("liststore.SetSortColumnID", "no sort function for column", "id", id)
			return
		}
	}
	s.sortColumnID = id
	s.sortOrder = order
	s.notifier.SortColumnChanged()
	s.sort()
}

// SetSortFunc sets the comparison function of a sort column id,
// resorting if the id is active.
func (s *ListStore) SetSortFunc(id int, fun treemodel.CompareFunc, destroy func()) {
	s.headers.Set(id, fun, destroy)
	if s.sortColumnID == id {
		s.sort()
	}
}

// SetDefaultSortFunc sets the default comparison function,
// resorting if the default sort is active.
func (s *ListStore) SetDefaultSortFunc(fun treemodel.CompareFunc, destroy func()) {
	if s.defaultDestroy != nil {
		d := s.defaultDestroy
		s.defaultDestroy = nil
		d()
	}
	s.defaultSort = fun
	s.defaultDestroy = destroy
	if s.sortColumnID == treemodel.DefaultSortColumnID {
		s.sort()
	}
}

func (s *ListStore) HasDefaultSortFunc() bool {
	return s.defaultSort != nil
}
