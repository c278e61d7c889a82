// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package treemodel

import (
	"cogentcore.org/treemodel/treedata"
)

// Flags are the capabilities a [Model] declares.
type Flags int32

const (
	// ItersPersist means that iterators stay valid for as long as
	// their row exists, across insertions, deletions and reorders
	// of other rows.
	ItersPersist Flags = 1 << iota

	// ListOnly means that the model is flat: no row has children.
	ListOnly
)

// Has returns whether all of the given flags are set.
func (f Flags) Has(flag Flags) bool {
	return f&flag == flag
}

// Iter refers to a row of a model. Iters are cheap values that a
// model fills in and interprets; Stamp identifies the generation of
// the model that produced it, so that a model can reject iterators
// that were invalidated in bulk. Index and Gen locate the row.
type Iter struct {
	Stamp int
	Index int
	Gen   uint32
}

// Model is a table of rows with typed columns, optionally arranged
// as a tree, that views read through iterators and paths. Models
// report every structural change through their [Notifier].
type Model interface {
	// Flags returns the capabilities of the model.
	Flags() Flags

	// NColumns returns the number of columns.
	NColumns() int

	// ColumnType returns the declared type of a column.
	ColumnType(col int) treedata.Type

	// Iter returns an iterator for the row at the given path.
	Iter(p Path) (Iter, bool)

	// Path returns the path of the row of it, or nil if it is invalid.
	Path(it Iter) Path

	// Value returns a copy of the value of a column of the row.
	// The caller should release it with [treedata.Release].
	Value(it Iter, col int) treedata.Value

	// Next returns the next sibling of the row.
	Next(it Iter) (Iter, bool)

	// Children returns the first child of parent, or the first top
	// level row if parent is nil.
	Children(parent *Iter) (Iter, bool)

	// HasChild returns whether the row has children.
	HasChild(it Iter) bool

	// NChildren returns the number of children of parent, or the
	// number of top level rows if parent is nil.
	NChildren(parent *Iter) int

	// NthChild returns child n of parent, or top level row n if
	// parent is nil.
	NthChild(parent *Iter, n int) (Iter, bool)

	// Parent returns the parent of the row.
	Parent(child Iter) (Iter, bool)

	// Notifier returns the notifier through which the model
	// reports changes.
	Notifier() *Notifier
}

// NodeReffer is implemented by models that want to know which rows
// are held by a [RowReference], such as models that cache row data.
type NodeReffer interface {
	RefNode(it Iter)
	UnrefNode(it Iter)
}

// IterFirst returns the first top level row of the model.
func IterFirst(m Model) (Iter, bool) {
	return m.Iter(NewFirstPath())
}

// IterFromString returns the row at the path written as in
// [Path.String].
func IterFromString(m Model, s string) (Iter, bool) {
	p, err := ParsePath(s)
	if err != nil {
		return Iter{}, false
	}
	return m.Iter(p)
}

// StringFromIter returns the path of the row as a string.
func StringFromIter(m Model, it Iter) string {
	p := m.Path(it)
	if p == nil {
		return ""
	}
	return p.String()
}

// Get returns copies of the values of the given columns of the row.
func Get(m Model, it Iter, cols ...int) []treedata.Value {
	vals := make([]treedata.Value, len(cols))
	for i, col := range cols {
		vals[i] = m.Value(it, col)
	}
	return vals
}

// Foreach calls fun for every row of the model in depth-first order,
// stopping as soon as fun returns true. The path passed to fun is
// reused between calls and must be copied to be kept.
func Foreach(m Model, fun func(m Model, p Path, it Iter) bool) {
	it, ok := m.Children(nil)
	if !ok {
		return
	}
	foreach(m, NewFirstPath(), it, fun)
}

func foreach(m Model, p Path, it Iter, fun func(m Model, p Path, it Iter) bool) bool {
	for {
		if fun(m, p, it) {
			return true
		}
		if child, ok := m.Children(&it); ok {
			p.Down()
			if foreach(m, p, child, fun) {
				return true
			}
			p.Up()
		}
		next, ok := m.Next(it)
		if !ok {
			return false
		}
		it = next
		p.Next()
	}
}
