// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package filemodel provides [Model], a flat list model of the files
// of a directory with per-file visibility, filtering, sorting and
// lazily computed column values. A model can be filled by hand or
// kept in sync with a directory of a [filesys.FileSystem] through
// [NewForDirectory].
package filemodel

import (
	"log/slog"
	"sync/atomic"

	"cogentcore.org/treemodel/base/errors"
	"cogentcore.org/treemodel/filefilter"
	"cogentcore.org/treemodel/filesys"
	"cogentcore.org/treemodel/treedata"
	"cogentcore.org/treemodel/treemodel"
)

// ValueFunc computes the value of a column for a file. For the
// editable row, file is zero and info is nil. It returns false if
// the file has no value for the column, which makes the column read
// as the zero value of its type.
type ValueFunc func(m *Model, file filesys.File, info *filesys.Info, col int) (treedata.Value, bool)

var lastStamp atomic.Int64

// Model is a flat [treemodel.Model] of files. Rows are the visible
// files in the current order, optionally preceded by an editable row
// that has no file. Iterators refer to node positions, so they are
// only meaningful until the next insertion, removal or reorder.
// A Model must only be used from one goroutine.
type Model struct {
	notifier treemodel.Notifier

	types     []treedata.Type
	valueFunc ValueFunc

	// files has the editable node at index 0, then the files.
	files []*node

	// nValid is the number of nodes from the start that have a
	// valid row number.
	nValid int

	// lookup maps files to node indexes. It always has the nodes
	// from index 1 to len(lookup) and is extended on demand.
	lookup map[filesys.File]int

	stamp int

	filter        *filefilter.Filter
	showHidden    bool
	showFolders   bool
	showFiles     bool
	filterFolders bool

	frozen       int
	frozenAdds   int
	filterOnThaw bool
	sortOnThaw   bool

	sortColumnID   int
	sortOrder      treemodel.SortType
	headers        *treemodel.SortHeaders
	defaultSort    treemodel.CompareFunc
	defaultDestroy func()

	// loader populates the model from a directory, if any.
	loader *loader

	finishedListeners []func(err error)
}

// New returns a new empty model with the given column types, whose
// values are computed by fn.
func New(fn ValueFunc, types ...treedata.Type) *Model {
	m := &Model{
		valueFunc:    fn,
		lookup:       map[filesys.File]int{},
		stamp:        int(lastStamp.Add(1)),
		showFolders:  true,
		showFiles:    true,
		sortColumnID: treemodel.UnsortedSortColumnID,
	}
	for i, t := range types {
		if !treedata.CheckType(t) {
			slog.Error("filemodel.New: invalid column type", "column", i, "type", t)
			t = treedata.TypeOf(treedata.Invalid)
		}
		m.types = append(m.types, t)
	}
	m.headers = treemodel.NewSortHeaders(len(m.types))
	m.files = append(m.files, &node{})
	return m
}

// Destroy stops loading, releases all cached values and calls the
// destroy functions of the sort functions.
func (m *Model) Destroy() {
	m.Close()
	for _, n := range m.files {
		n.clearValues(0, len(m.types))
	}
	m.headers.Free()
	if m.defaultDestroy != nil {
		d := m.defaultDestroy
		m.defaultDestroy = nil
		d()
	}
	m.defaultSort = nil
}

// Len returns the number of files, visible or not.
func (m *Model) Len() int {
	return len(m.files) - 1
}

func (m *Model) iterOf(id int) treemodel.Iter {
	return treemodel.Iter{Stamp: m.stamp, Index: id}
}

// IterIsValid returns whether it refers to a node of the model.
func (m *Model) IterIsValid(it treemodel.Iter) bool {
	return it.Stamp == m.stamp && it.Index >= 0 && it.Index < len(m.files)
}

func (m *Model) validNode(op string, it treemodel.Iter) *node {
	if !m.IterIsValid(it) {
		errors.Precondition(op, "invalid iterator", "iter", it)
		return nil
	}
	return m.files[it.Index]
}

func (m *Model) validColumn(op string, col int) bool {
	if col < 0 || col >= len(m.types) {
		return errors.Precondition(op, "invalid column", "column", col, "columns", len(m.types))
	}
	return true
}

func pathOf(row int) treemodel.Path {
	return treemodel.Path{row}
}

//////// Model

func (m *Model) Flags() treemodel.Flags {
	return treemodel.ListOnly
}

func (m *Model) NColumns() int {
	return len(m.types)
}

func (m *Model) ColumnType(col int) treedata.Type {
	if !m.validColumn("filemodel.ColumnType", col) {
		return treedata.Type{}
	}
	return m.types[col]
}

func (m *Model) Notifier() *treemodel.Notifier {
	return &m.notifier
}

func (m *Model) Iter(p treemodel.Path) (treemodel.Iter, bool) {
	if len(p) != 1 {
		return treemodel.Iter{}, false
	}
	return m.NthChild(nil, p[0])
}

// Path returns the path of the row of it, or nil if the node of it
// is not visible.
func (m *Model) Path(it treemodel.Iter) treemodel.Path {
	n := m.validNode("filemodel.Path", it)
	if n == nil || !n.visible {
		return nil
	}
	return pathOf(m.treeRow(it.Index))
}

func (m *Model) Value(it treemodel.Iter, col int) treedata.Value {
	if m.validNode("filemodel.Value", it) == nil || !m.validColumn("filemodel.Value", col) {
		return treedata.Value{}
	}
	v, ok := m.RawValue(it, col)
	if !ok {
		return treedata.Zero(m.types[col])
	}
	return treedata.Copy(v)
}

func (m *Model) Next(it treemodel.Iter) (treemodel.Iter, bool) {
	if m.validNode("filemodel.Next", it) == nil {
		return treemodel.Iter{}, false
	}
	for i := it.Index + 1; i < len(m.files); i++ {
		if m.files[i].visible {
			return m.iterOf(i), true
		}
	}
	return treemodel.Iter{}, false
}

func (m *Model) Children(parent *treemodel.Iter) (treemodel.Iter, bool) {
	return m.NthChild(parent, 0)
}

func (m *Model) HasChild(it treemodel.Iter) bool {
	return false
}

func (m *Model) NChildren(parent *treemodel.Iter) int {
	if parent != nil {
		return 0
	}
	return m.treeRow(len(m.files)-1) + 1
}

func (m *Model) NthChild(parent *treemodel.Iter, n int) (treemodel.Iter, bool) {
	if parent != nil || n < 0 {
		return treemodel.Iter{}, false
	}
	row := n + 1
	var id int
	if m.nValid > 0 && m.files[m.nValid-1].row >= row {
		// the first node reaching the row is the visible one
		lo, hi := 0, m.nValid-1
		for lo < hi {
			mid := (lo + hi) / 2
			if m.files[mid].row < row {
				lo = mid + 1
			} else {
				hi = mid
			}
		}
		id = lo
	} else {
		m.validateRows(noBound, n)
		id = m.nValid - 1
		if id < 0 || m.files[id].row != row {
			return treemodel.Iter{}, false
		}
	}
	return m.iterOf(id), true
}

func (m *Model) Parent(child treemodel.Iter) (treemodel.Iter, bool) {
	return treemodel.Iter{}, false
}

//////// Values

// RawValue returns the cached value of a column of the node of it,
// computing it first if needed, without copying it. It returns false
// if the node has no value for the column.
func (m *Model) RawValue(it treemodel.Iter, col int) (treedata.Value, bool) {
	n := m.validNode("filemodel.RawValue", it)
	if n == nil || !m.validColumn("filemodel.RawValue", col) {
		return treedata.Value{}, false
	}
	if n.values == nil {
		n.values = make([]treedata.Value, len(m.types))
	}
	if v := n.values[col]; v.IsValid() {
		return v, true
	}
	if m.valueFunc == nil {
		return treedata.Value{}, false
	}
	v, ok := m.valueFunc(m, n.file, n.info, col)
	if !ok || !v.IsValid() {
		return treedata.Value{}, false
	}
	cv, err := treedata.Convert(v, m.types[col])
	if err != nil {
		slog.Error("filemodel.RawValue: value does not fit the column", "column", col, "file", n.file, "err", err)
		treedata.Release(v)
		return treedata.Value{}, false
	}
	n.values[col] = cv
	return cv, true
}

// ClearCache drops the cached values of a column, or of all columns
// if col is -1, emitting RowChanged for the visible rows that had any.
func (m *Model) ClearCache(col int) {
	if col != -1 && !m.validColumn("filemodel.ClearCache", col) {
		return
	}
	start, end := col, col+1
	if col == -1 {
		start, end = 0, len(m.types)
	}
	for i, n := range m.files {
		if n.clearValues(start, end) && n.visible {
			m.emitRowChanged(i)
		}
	}
}

//////// Nodes

// Info returns the info of the node of it, which is nil for the
// editable row and for files whose info is not known yet.
func (m *Model) Info(it treemodel.Iter) *filesys.Info {
	n := m.validNode("filemodel.Info", it)
	if n == nil {
		return nil
	}
	return n.info
}

// File returns the file of the node of it, which is zero for the
// editable row.
func (m *Model) File(it treemodel.Iter) filesys.File {
	n := m.validNode("filemodel.File", it)
	if n == nil {
		return filesys.File{}
	}
	return n.file
}

// IterForFile returns an iterator for the node of file, whether it
// is visible or not.
func (m *Model) IterForFile(file filesys.File) (treemodel.Iter, bool) {
	id := m.nodeForFile(file)
	if id == 0 {
		return treemodel.Iter{}, false
	}
	return m.iterOf(id), true
}

// IterIsVisible returns whether the node of it is a row of the model.
func (m *Model) IterIsVisible(it treemodel.Iter) bool {
	n := m.validNode("filemodel.IterIsVisible", it)
	return n != nil && n.visible
}

// IterIsFilteredOut returns whether the filter rejects the node of it.
// Folders can be filtered out and still be visible.
func (m *Model) IterIsFilteredOut(it treemodel.Iter) bool {
	n := m.validNode("filemodel.IterIsFilteredOut", it)
	return n != nil && n.filteredOut
}

//////// Mutation

// Add adds a file with its info, which may be nil if it is not
// known yet. Files added while the model is frozen stay invisible
// until it is thawed.
func (m *Model) Add(file filesys.File, info *filesys.Info) {
	if file.IsZero() {
		errors.Precondition("filemodel.Add", "zero file")
		return
	}
	if m.nodeForFile(file) != 0 {
		errors.Precondition("filemodel.Add", "file already in model", "file", file)
		return
	}
	m.add(file, info)
}

func (m *Model) add(file filesys.File, info *filesys.Info) {
	n := &node{file: file, info: info, frozenAdd: m.frozen > 0}
	if n.frozenAdd {
		m.frozenAdds++
	}
	m.files = append(m.files, n)
	id := len(m.files) - 1
	if !n.frozenAdd {
		m.computeVisibilityAndFilters(id)
	}
	m.sortNode(id)
}

// Remove removes the node of a file, emitting RowDeleted if it was
// visible. It does nothing if the file is not in the model.
func (m *Model) Remove(file filesys.File) {
	id := m.nodeForFile(file)
	if id == 0 {
		return
	}
	n := m.files[id]
	row := m.treeRow(id)
	m.invalidateIndex(id)
	delete(m.lookup, file)
	m.adjustLookup(id, -1)
	m.files = append(m.files[:id], m.files[id+1:]...)
	if n.frozenAdd {
		m.frozenAdds--
	}
	n.clearValues(0, len(m.types))
	if n.visible {
		m.emitRowDeleted(row)
	}
}

// UpdateFile replaces the info of a file, adding the file if it is
// not in the model yet. Cached values of the file are dropped, its
// visibility is recomputed and it is moved to its sorted position.
func (m *Model) UpdateFile(file filesys.File, info *filesys.Info) {
	if file.IsZero() {
		errors.Precondition("filemodel.UpdateFile", "zero file")
		return
	}
	id := m.nodeForFile(file)
	if id == 0 {
		m.add(file, info)
		return
	}
	n := m.files[id]
	n.info = info
	n.clearValues(0, len(m.types))
	if n.visible {
		m.emitRowChanged(id)
	}
	if !n.frozenAdd {
		m.computeVisibilityAndFilters(id)
	}
	m.sortNode(id)
}

// Freeze defers sorting, refiltering and making added files visible
// until the matching call to [Model.Thaw]. Calls nest.
func (m *Model) Freeze() {
	m.frozen++
}

// Thaw ends one [Model.Freeze]. Ending the last one applies the
// deferred refilter and sort and then makes the files added in
// between visible, in order.
func (m *Model) Thaw() {
	if m.frozen == 0 {
		errors.Precondition("filemodel.Thaw", "model is not frozen")
		return
	}
	m.frozen--
	if m.frozen > 0 {
		return
	}
	if m.filterOnThaw {
		m.refilterAll()
	}
	if m.sortOnThaw {
		m.sort()
	}
	if m.frozenAdds == 0 {
		return
	}
	for i := 1; i < len(m.files); i++ {
		n := m.files[i]
		if !n.frozenAdd {
			continue
		}
		n.frozenAdd = false
		m.frozenAdds--
		m.computeVisibilityAndFilters(i)
	}
}

// AddEditable shows the editable row as the first row and freezes
// the model until [Model.RemoveEditable], so that the row stays put.
func (m *Model) AddEditable() treemodel.Iter {
	if m.files[0].visible {
		errors.Precondition("filemodel.AddEditable", "editable row already shown")
		return m.iterOf(0)
	}
	m.setVisibleAndFilteredOut(0, true, false)
	m.Freeze()
	return m.iterOf(0)
}

// RemoveEditable hides the editable row shown by [Model.AddEditable].
func (m *Model) RemoveEditable() {
	if !m.files[0].visible {
		errors.Precondition("filemodel.RemoveEditable", "editable row not shown")
		return
	}
	m.Thaw()
	m.setVisibleAndFilteredOut(0, false, false)
	m.files[0].clearValues(0, len(m.types))
}

//////// Visibility

// SetShowHidden sets whether hidden and backup files are visible.
func (m *Model) SetShowHidden(show bool) {
	if m.showHidden == show {
		return
	}
	m.showHidden = show
	m.refilterAll()
}

// SetShowFolders sets whether folders are visible.
func (m *Model) SetShowFolders(show bool) {
	if m.showFolders == show {
		return
	}
	m.showFolders = show
	m.refilterAll()
}

// SetShowFiles sets whether files other than folders are visible.
func (m *Model) SetShowFiles(show bool) {
	if m.showFiles == show {
		return
	}
	m.showFiles = show
	m.refilterAll()
}

// SetFilterFolders sets whether the filter also hides folders.
func (m *Model) SetFilterFolders(filter bool) {
	if m.filterFolders == filter {
		return
	}
	m.filterFolders = filter
	m.refilterAll()
}

// SetFilter sets the filter that files must pass to be visible,
// or removes it if nil. Setting the current filter again applies
// the rules added to it since.
func (m *Model) SetFilter(f *filefilter.Filter) {
	m.filter = f
	m.refilterAll()
}

// Filter returns the current filter.
func (m *Model) Filter() *filefilter.Filter {
	return m.filter
}
