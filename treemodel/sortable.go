// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package treemodel

import (
	"log/slog"

	"cogentcore.org/treemodel/treedata"
)

const (
	// DefaultSortColumnID is the sort column id that selects the
	// default comparison function of a sortable model.
	DefaultSortColumnID = -1

	// UnsortedSortColumnID is the sort column id of a model that
	// is not sorted.
	UnsortedSortColumnID = -2
)

// SortType is the direction of a sort.
type SortType int32

const (
	Ascending SortType = iota
	Descending
)

func (s SortType) String() string {
	if s == Descending {
		return "Descending"
	}
	return "Ascending"
}

// CompareFunc returns a negative number if row a sorts before row b,
// zero if they are equal and a positive number otherwise.
type CompareFunc func(m Model, a, b Iter) int

// Sortable is a model that can sort its rows by a column.
type Sortable interface {
	Model

	// SortColumnID returns the active sort column id and order. The
	// result is false if the id is DefaultSortColumnID or
	// UnsortedSortColumnID.
	SortColumnID() (id int, order SortType, ok bool)

	// SetSortColumnID sorts the model by the comparison function
	// registered for id, emitting SortColumnChanged.
	SetSortColumnID(id int, order SortType)

	// SetSortFunc sets the comparison function for a sort column id.
	// destroy, if non-nil, is called when the function is replaced
	// or the model is destroyed.
	SetSortFunc(id int, fun CompareFunc, destroy func())

	// SetDefaultSortFunc sets the comparison function used for
	// DefaultSortColumnID. A nil fun means the model cannot be put
	// in the default sort.
	SetDefaultSortFunc(fun CompareFunc, destroy func())

	// HasDefaultSortFunc returns whether a default comparison
	// function is set.
	HasDefaultSortFunc() bool
}

// SortHeader is the comparison function of one sort column id.
type SortHeader struct {
	ID   int
	Func CompareFunc

	// Column is the model column that Func compares, or -1 if Func
	// is a custom function that may depend on any column.
	Column int

	destroy func()
}

// SortHeaders are the comparison functions of a sortable model,
// by sort column id.
type SortHeaders struct {
	headers []*SortHeader
}

// NewSortHeaders returns headers with the default comparison
// function of each of the first n columns, by column id.
func NewSortHeaders(n int) *SortHeaders {
	hs := &SortHeaders{headers: make([]*SortHeader, n)}
	for i := range n {
		hs.headers[i] = &SortHeader{ID: i, Func: CompareColumn(i), Column: i}
	}
	return hs
}

// Lookup returns the header for the sort column id, or nil.
func (hs *SortHeaders) Lookup(id int) *SortHeader {
	for _, h := range hs.headers {
		if h.ID == id {
			return h
		}
	}
	return nil
}

// Set sets the comparison function for the sort column id, calling
// the destroy function of the function it replaces.
func (hs *SortHeaders) Set(id int, fun CompareFunc, destroy func()) {
	h := hs.Lookup(id)
	if h == nil {
		h = &SortHeader{ID: id}
		hs.headers = append(hs.headers, h)
	} else if h.destroy != nil {
		d := h.destroy
		h.destroy = nil
		d()
	}
	h.Func = fun
	h.Column = -1
	h.destroy = destroy
}

// Free calls the destroy functions of all headers and removes them.
func (hs *SortHeaders) Free() {
	for _, h := range hs.headers {
		if h.destroy != nil {
			d := h.destroy
			h.destroy = nil
			d()
		}
	}
	hs.headers = nil
}

// Participates returns whether changing column col can change the
// order of rows sorted by the header.
func (h *SortHeader) Participates(col int) bool {
	return h.Column < 0 || h.Column == col
}

// CompareColumn returns a comparison function that orders rows by
// the values of column col using [treedata.Compare]. Rows with
// values that have no order compare equal.
func CompareColumn(col int) CompareFunc {
	warned := false
	return func(m Model, a, b Iter) int {
		va := m.Value(a, col)
		vb := m.Value(b, col)
		defer treedata.Release(va)
		defer treedata.Release(vb)
		c, ok := treedata.Compare(va, vb)
		if !ok && !warned {
			warned = true
			slog.Warn("treemodel.CompareColumn: sorting on a column without an order", "column", col, "kind", va.Kind())
		}
		return c
	}
}

// Inverted returns a comparison function for the reverse order of fun.
func Inverted(fun CompareFunc) CompareFunc {
	return func(m Model, a, b Iter) int {
		return -fun(m, a, b)
	}
}
