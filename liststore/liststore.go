// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package liststore provides [ListStore], an ordered list model
// whose rows hold typed column values, with optional sorting.
package liststore

import (
	"log/slog"
	"slices"

	"cogentcore.org/treemodel/base/errors"
	"cogentcore.org/treemodel/base/slicesx"
	"cogentcore.org/treemodel/treedata"
	"cogentcore.org/treemodel/treemodel"
)

// row is one row of the store. idx is its index in the row buffer
// and slot its index in the slot arena.
type row struct {
	cells treedata.List
	idx   int
	slot  int
}

// slot is an arena entry. gen is bumped every time the slot is
// freed, invalidating iterators to the row it held.
type slot struct {
	gen uint32
	row *row
}

// ListStore is a flat [treemodel.Model] of rows in a caller defined
// order, which can also be kept sorted through [treemodel.Sortable].
// Iterators stay valid until their row is removed or the store is
// cleared. A ListStore must only be used from one goroutine.
type ListStore struct {
	notifier treemodel.Notifier

	types []treedata.Type

	// slots is the arena of rows, with free listing the indexes
	// of unused slots.
	slots []slot
	free  []int

	// buf has the rows in position order in buf[head:tail], with
	// room left at both ends so that rows can be added or removed
	// by shifting the shorter side. The position of a row is its
	// idx minus head.
	buf  []*row
	head int
	tail int

	stamp int

	// columnsDirty is set once a row has been added, after which
	// the column types can no longer change.
	columnsDirty bool

	sortColumnID   int
	sortOrder      treemodel.SortType
	headers        *treemodel.SortHeaders
	defaultSort    treemodel.CompareFunc
	defaultDestroy func()
}

// New returns a new list store with the given column types.
func New(types ...treedata.Type) *ListStore {
	s := &ListStore{stamp: 1, sortColumnID: treemodel.UnsortedSortColumnID}
	s.SetColumnTypes(types...)
	return s
}

// NewKinds returns a new list store with unrestricted columns of
// the given kinds.
func NewKinds(kinds ...treedata.Kind) *ListStore {
	return New(treedata.Types(kinds...)...)
}

// SetColumnTypes sets the column types of the store. It only works
// before any row has been added, and returns whether it succeeded.
func (s *ListStore) SetColumnTypes(types ...treedata.Type) bool {
	if s.columnsDirty {
		return errors.Precondition("liststore.SetColumnTypes", "store already has rows")
	}
	for i, t := range types {
		if !treedata.CheckType(t) {
			return errors.Precondition("liststore.SetColumnTypes", "invalid column type", "column", i, "type", t)
		}
	}
	s.types = append([]treedata.Type(nil), types...)
	if s.headers != nil {
		s.headers.Free()
	}
	s.headers = treemodel.NewSortHeaders(len(types))
	return true
}

// Destroy releases all rows and calls the destroy functions of the
// sort functions. The store must not be used afterwards.
func (s *ListStore) Destroy() {
	for _, r := range s.rows() {
		r.cells.Free()
	}
	s.buf, s.head, s.tail = nil, 0, 0
	s.slots = nil
	s.free = nil
	s.headers.Free()
	if s.defaultDestroy != nil {
		d := s.defaultDestroy
		s.defaultDestroy = nil
		d()
	}
	s.defaultSort = nil
}

// Len returns the number of rows.
func (s *ListStore) Len() int {
	return s.tail - s.head
}

// rows returns the rows in position order.
func (s *ListStore) rows() []*row {
	return s.buf[s.head:s.tail]
}

func (s *ListStore) pos(r *row) int {
	return r.idx - s.head
}

// IterIsValid returns whether it refers to a row of the store.
func (s *ListStore) IterIsValid(it treemodel.Iter) bool {
	return s.rowOf(it) != nil
}

func (s *ListStore) rowOf(it treemodel.Iter) *row {
	if it.Stamp != s.stamp || it.Index < 0 || it.Index >= len(s.slots) {
		return nil
	}
	sl := s.slots[it.Index]
	if sl.gen != it.Gen {
		return nil
	}
	return sl.row
}

func (s *ListStore) iterOf(r *row) treemodel.Iter {
	return treemodel.Iter{Stamp: s.stamp, Index: r.slot, Gen: s.slots[r.slot].gen}
}

func (s *ListStore) validRow(op string, it treemodel.Iter) *row {
	r := s.rowOf(it)
	if r == nil {
		errors.Precondition(op, "invalid iterator", "iter", it)
	}
	return r
}

func (s *ListStore) validColumn(op string, col int) bool {
	if col < 0 || col >= len(s.types) {
		return errors.Precondition(op, "invalid column", "column", col, "columns", len(s.types))
	}
	return true
}

func (s *ListStore) newRow() *row {
	r := &row{}
	if n := len(s.free); n > 0 {
		r.slot = s.free[n-1]
		s.free = s.free[:n-1]
		s.slots[r.slot].row = r
	} else {
		r.slot = len(s.slots)
		s.slots = append(s.slots, slot{row: r})
	}
	return r
}

func (s *ListStore) freeRow(r *row) {
	r.cells.Free()
	sl := &s.slots[r.slot]
	sl.row = nil
	sl.gen++
	s.free = append(s.free, r.slot)
}

// renumber updates the buffer indexes of all rows after they were
// moved around in place.
func (s *ListStore) renumber() {
	for i, r := range s.rows() {
		r.idx = s.head + i
	}
}

// newOrder returns the reorder permutation of the current order,
// using the positions the rows had before it changed, and then
// renumbers the rows.
func (s *ListStore) newOrder() []int {
	rows := s.rows()
	order := make([]int, len(rows))
	for i, r := range rows {
		order[i] = s.pos(r)
	}
	s.renumber()
	return order
}

// grow moves the rows to the middle of a new buffer with room for
// as many rows again on both sides.
func (s *ListStore) grow() {
	n := s.Len()
	buf := make([]*row, 3*n+8)
	head := (len(buf) - n) / 2
	copy(buf[head:], s.rows())
	s.buf, s.head, s.tail = buf, head, head+n
	s.renumber()
}

// insertAt puts r at position pos, shifting the rows before or
// after it, whichever are fewer.
func (s *ListStore) insertAt(pos int, r *row) {
	n := s.Len()
	front := pos < n-pos
	if front && s.head == 0 || !front && s.tail == len(s.buf) {
		if s.head == 0 && s.tail == len(s.buf) {
			s.grow()
		} else {
			front = !front
		}
	}
	at := s.head + pos
	if front {
		s.head--
		at--
		copy(s.buf[s.head:at], s.buf[s.head+1:at+1])
		for _, m := range s.buf[s.head:at] {
			m.idx--
		}
	} else {
		copy(s.buf[at+1:s.tail+1], s.buf[at:s.tail])
		s.tail++
		for _, m := range s.buf[at+1 : s.tail] {
			m.idx++
		}
	}
	s.buf[at] = r
	r.idx = at
}

// removeAt takes the row at position pos out of the buffer,
// shifting the rows before or after it, whichever are fewer.
func (s *ListStore) removeAt(pos int) {
	n := s.Len()
	at := s.head + pos
	if pos < n-1-pos {
		copy(s.buf[s.head+1:at+1], s.buf[s.head:at])
		s.buf[s.head] = nil
		s.head++
		for _, m := range s.buf[s.head : at+1] {
			m.idx++
		}
	} else {
		copy(s.buf[at:s.tail-1], s.buf[at+1:s.tail])
		s.tail--
		s.buf[s.tail] = nil
		for _, m := range s.buf[at:s.tail] {
			m.idx--
		}
	}
}

// shift moves the row at position from to position to in place,
// without renumbering.
func shift(rows []*row, from, to int) {
	r := rows[from]
	if to > from {
		copy(rows[from:to], rows[from+1:to+1])
	} else {
		copy(rows[to+1:from+1], rows[to:from])
	}
	rows[to] = r
}

//////// Model

func (s *ListStore) Flags() treemodel.Flags {
	return treemodel.ItersPersist | treemodel.ListOnly
}

func (s *ListStore) NColumns() int {
	return len(s.types)
}

func (s *ListStore) ColumnType(col int) treedata.Type {
	if !s.validColumn("liststore.ColumnType", col) {
		return treedata.Type{}
	}
	return s.types[col]
}

func (s *ListStore) Notifier() *treemodel.Notifier {
	return &s.notifier
}

func (s *ListStore) Iter(p treemodel.Path) (treemodel.Iter, bool) {
	if len(p) != 1 {
		return treemodel.Iter{}, false
	}
	return s.NthChild(nil, p[0])
}

func (s *ListStore) Path(it treemodel.Iter) treemodel.Path {
	r := s.validRow("liststore.Path", it)
	if r == nil {
		return nil
	}
	return treemodel.Path{s.pos(r)}
}

func (s *ListStore) Value(it treemodel.Iter, col int) treedata.Value {
	r := s.validRow("liststore.Value", it)
	if r == nil || !s.validColumn("liststore.Value", col) {
		return treedata.Value{}
	}
	return r.cells.Value(col, s.types[col])
}

func (s *ListStore) Next(it treemodel.Iter) (treemodel.Iter, bool) {
	r := s.validRow("liststore.Next", it)
	if r == nil {
		return treemodel.Iter{}, false
	}
	return s.NthChild(nil, s.pos(r)+1)
}

func (s *ListStore) Children(parent *treemodel.Iter) (treemodel.Iter, bool) {
	return s.NthChild(parent, 0)
}

func (s *ListStore) HasChild(it treemodel.Iter) bool {
	return false
}

func (s *ListStore) NChildren(parent *treemodel.Iter) int {
	if parent != nil {
		return 0
	}
	return s.Len()
}

func (s *ListStore) NthChild(parent *treemodel.Iter, n int) (treemodel.Iter, bool) {
	if parent != nil || n < 0 || n >= s.Len() {
		return treemodel.Iter{}, false
	}
	return s.iterOf(s.buf[s.head+n]), true
}

func (s *ListStore) Parent(child treemodel.Iter) (treemodel.Iter, bool) {
	return treemodel.Iter{}, false
}

//////// Mutation

// insertRow adds a new empty row at position pos without
// notifying anyone.
func (s *ListStore) insertRow(pos int) *row {
	pos = min(max(pos, 0), s.Len())
	s.columnsDirty = true
	r := s.newRow()
	s.insertAt(pos, r)
	return r
}

func (s *ListStore) emitInserted(r *row) treemodel.Iter {
	it := s.iterOf(r)
	s.notifier.RowInserted(treemodel.Path{s.pos(r)}, it)
	return it
}

// Insert adds a new empty row at the given position, which is
// clamped to the valid range, and returns it.
func (s *ListStore) Insert(position int) treemodel.Iter {
	return s.emitInserted(s.insertRow(position))
}

// InsertBefore adds a new empty row before sibling, or at the end
// if sibling is nil.
func (s *ListStore) InsertBefore(sibling *treemodel.Iter) treemodel.Iter {
	if sibling == nil {
		return s.Append()
	}
	r := s.validRow("liststore.InsertBefore", *sibling)
	if r == nil {
		return treemodel.Iter{}
	}
	return s.Insert(s.pos(r))
}

// InsertAfter adds a new empty row after sibling, or at the start
// if sibling is nil.
func (s *ListStore) InsertAfter(sibling *treemodel.Iter) treemodel.Iter {
	if sibling == nil {
		return s.Prepend()
	}
	r := s.validRow("liststore.InsertAfter", *sibling)
	if r == nil {
		return treemodel.Iter{}
	}
	return s.Insert(s.pos(r) + 1)
}

// Prepend adds a new empty row at the start.
func (s *ListStore) Prepend() treemodel.Iter {
	return s.Insert(0)
}

// Append adds a new empty row at the end.
func (s *ListStore) Append() treemodel.Iter {
	return s.Insert(s.Len())
}

// InsertWithValues adds a new row at position filled with the given
// values of the given columns. If the store is sorted the row is
// placed at its sorted position instead. Only RowInserted is emitted.
func (s *ListStore) InsertWithValues(position int, cols []int, vals []treedata.Value) treemodel.Iter {
	if len(cols) != len(vals) {
		errors.Precondition("liststore.InsertWithValues", "columns and values differ in length", "columns", len(cols), "values", len(vals))
		return treemodel.Iter{}
	}
	r := s.insertRow(position)
	s.setValues("liststore.InsertWithValues", r, cols, vals)
	if s.needsSort(cols) {
		s.reposition(r)
		s.renumber()
	}
	return s.emitInserted(r)
}

// Remove removes the row of it. It returns the row that followed it,
// or false if it was the last row or it is invalid.
func (s *ListStore) Remove(it treemodel.Iter) (treemodel.Iter, bool) {
	r := s.validRow("liststore.Remove", it)
	if r == nil {
		return treemodel.Iter{}, false
	}
	pos := s.pos(r)
	s.removeAt(pos)
	s.freeRow(r)
	s.notifier.RowDeleted(treemodel.Path{pos})
	if pos < s.Len() {
		return s.iterOf(s.buf[s.head+pos]), true
	}
	return treemodel.Iter{}, false
}

// Clear removes all rows from the first on, emitting RowDeleted for
// each, and invalidates every outstanding iterator.
func (s *ListStore) Clear() {
	for s.Len() > 0 {
		r := s.buf[s.head]
		s.removeAt(0)
		s.freeRow(r)
		s.notifier.RowDeleted(treemodel.Path{0})
	}
	s.buf, s.head, s.tail = nil, 0, 0
	s.slots = nil
	s.free = nil
	s.stamp++
}

// SetValue sets the value of a column of the row, converting it to
// the column type. A value that cannot be converted is logged and
// not stored. RowChanged is emitted, followed by RowsReordered if
// the store is sorted and the row moved as a result.
func (s *ListStore) SetValue(it treemodel.Iter, col int, v treedata.Value) bool {
	return s.Set(it, []int{col}, []treedata.Value{v})
}

// Set sets the values of several columns of the row at once, with
// a single RowChanged and at most one reorder. It returns whether
// any value was stored.
func (s *ListStore) Set(it treemodel.Iter, cols []int, vals []treedata.Value) bool {
	r := s.validRow("liststore.Set", it)
	if r == nil {
		return false
	}
	if len(cols) != len(vals) {
		return errors.Precondition("liststore.Set", "columns and values differ in length", "columns", len(cols), "values", len(vals))
	}
	if !s.setValues("liststore.Set", r, cols, vals) {
		return false
	}
	if s.needsSort(cols) {
		s.sortRowChanged(r)
	} else {
		s.notifier.RowChanged(treemodel.Path{s.pos(r)}, it)
	}
	return true
}

func (s *ListStore) setValues(op string, r *row, cols []int, vals []treedata.Value) bool {
	changed := false
	for i, col := range cols {
		if !s.validColumn(op, col) {
			continue
		}
		v, err := treedata.Convert(vals[i], s.types[col])
		if err != nil {
			slog.Error(op+": unable to convert value", "column", col, "err", err)
			continue
		}
		r.cells.Set(col, treedata.Copy(v))
		changed = true
	}
	return changed
}

//////// Reordering

func (s *ListStore) checkUnsorted(op string) bool {
	if s.isSorted() {
		return errors.Precondition(op, "store is sorted")
	}
	return true
}

// Reorder reorders the rows so that the row at position
// newOrder[i] moves to position i. It only works on unsorted stores.
func (s *ListStore) Reorder(newOrder []int) bool {
	if !s.checkUnsorted("liststore.Reorder") {
		return false
	}
	if len(newOrder) != s.Len() || !slicesx.IsPermutation(newOrder) {
		return errors.Precondition("liststore.Reorder", "new order is not a permutation of the rows", "rows", s.Len())
	}
	rows := s.rows()
	old := slices.Clone(rows)
	for i, o := range newOrder {
		rows[i] = old[o]
	}
	s.renumber()
	s.notifier.RowsReordered(treemodel.Path{}, nil, append([]int(nil), newOrder...))
	return true
}

// Swap exchanges the positions of two rows of an unsorted store.
func (s *ListStore) Swap(a, b treemodel.Iter) bool {
	if !s.checkUnsorted("liststore.Swap") {
		return false
	}
	ra := s.validRow("liststore.Swap", a)
	rb := s.validRow("liststore.Swap", b)
	if ra == nil || rb == nil {
		return false
	}
	if ra == rb {
		return true
	}
	rows := s.rows()
	rows[s.pos(ra)], rows[s.pos(rb)] = rb, ra
	s.notifier.RowsReordered(treemodel.Path{}, nil, s.newOrder())
	return true
}

// MoveBefore moves the row of it to just before position, or to the
// end if position is nil. It only works on unsorted stores.
func (s *ListStore) MoveBefore(it treemodel.Iter, position *treemodel.Iter) bool {
	return s.move("liststore.MoveBefore", it, position, 0, s.Len())
}

// MoveAfter moves the row of it to just after position, or to the
// start if position is nil. It only works on unsorted stores.
func (s *ListStore) MoveAfter(it treemodel.Iter, position *treemodel.Iter) bool {
	return s.move("liststore.MoveAfter", it, position, 1, 0)
}

// move moves the row of it in front of the row at position+offset,
// or the row at dflt if position is nil.
func (s *ListStore) move(op string, it treemodel.Iter, position *treemodel.Iter, offset, dflt int) bool {
	if !s.checkUnsorted(op) {
		return false
	}
	r := s.validRow(op, it)
	if r == nil {
		return false
	}
	before := dflt
	if position != nil {
		pr := s.validRow(op, *position)
		if pr == nil {
			return false
		}
		before = s.pos(pr) + offset
	}
	from := s.pos(r)
	to := before
	if to > from {
		to--
	}
	shift(s.rows(), from, to)
	s.notifier.RowsReordered(treemodel.Path{}, nil, s.newOrder())
	return true
}

var _ treemodel.Sortable = (*ListStore)(nil)
