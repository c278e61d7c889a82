// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package treemodel

import (
	"slices"

	"cogentcore.org/treemodel/base/slicesx"
)

// RowReference tracks a row of a model across insertions, deletions
// and reorders of the model, keeping its path up to date. It becomes
// invalid when its row is deleted. References must be freed with
// [RowReference.Free] when no longer needed.
type RowReference struct {
	model Model

	// path is nil once the row has been deleted.
	path Path
}

// NewRowReference returns a reference to the row of m at path p,
// or nil if there is no such row.
func NewRowReference(m Model, p Path) *RowReference {
	if len(p) == 0 {
		return nil
	}
	if _, ok := m.Iter(p); !ok {
		return nil
	}
	r := &RowReference{model: m, path: p.Copy()}
	r.refNodes(true)
	n := m.Notifier()
	n.refs = append(n.refs, r)
	return r
}

// Path returns the current path of the row, or nil if the
// reference is invalid.
func (r *RowReference) Path() Path {
	if r == nil || r.path == nil {
		return nil
	}
	if _, ok := r.model.Iter(r.path); !ok {
		return nil
	}
	return r.path.Copy()
}

// Valid returns whether the referenced row still exists.
func (r *RowReference) Valid() bool {
	return r.Path() != nil
}

// Model returns the model of the reference.
func (r *RowReference) Model() Model {
	if r == nil {
		return nil
	}
	return r.model
}

// Iter returns an iterator for the referenced row.
func (r *RowReference) Iter() (Iter, bool) {
	p := r.Path()
	if p == nil {
		return Iter{}, false
	}
	return r.model.Iter(p)
}

// Copy returns a new reference to the same row, or nil if the
// reference is invalid.
func (r *RowReference) Copy() *RowReference {
	p := r.Path()
	if p == nil {
		return nil
	}
	return NewRowReference(r.model, p)
}

// Free stops tracking the row. It is safe to call on a nil
// or already freed reference.
func (r *RowReference) Free() {
	if r == nil || r.model == nil {
		return
	}
	n := r.model.Notifier()
	n.refs = slices.DeleteFunc(n.refs, func(o *RowReference) bool { return o == r })
	if r.path != nil {
		r.refNodes(false)
	}
	r.path = nil
	r.model = nil
}

// refNodes references or unreferences every row along the path
// for models that track held rows.
func (r *RowReference) refNodes(ref bool) {
	nr, ok := r.model.(NodeReffer)
	if !ok {
		return
	}
	for d := 1; d <= len(r.path); d++ {
		it, ok := r.model.Iter(r.path[:d])
		if !ok {
			return
		}
		if ref {
			nr.RefNode(it)
		} else {
			nr.UnrefNode(it)
		}
	}
}

// refsInserted shifts references to rows at or after p among the
// siblings of the inserted row, and their descendants.
func (n *Notifier) refsInserted(p Path) {
	if len(p) == 0 {
		return
	}
	d := len(p) - 1
	for _, r := range n.refs {
		rp := r.path
		if len(rp) <= d || !slices.Equal(rp[:d], p[:d]) {
			continue
		}
		if rp[d] >= p[d] {
			rp[d]++
		}
	}
}

// refsDeleted invalidates references to the deleted row and its
// descendants, and shifts references to its later siblings.
func (n *Notifier) refsDeleted(p Path) {
	if len(p) == 0 {
		return
	}
	d := len(p) - 1
	for _, r := range n.refs {
		rp := r.path
		if len(rp) <= d || !slices.Equal(rp[:d], p[:d]) {
			continue
		}
		switch {
		case rp[d] == p[d]:
			// the row is gone; nothing is left to unref
			r.path = nil
		case rp[d] > p[d]:
			rp[d]--
		}
	}
}

// refsReordered moves references to children of parent to their
// new positions.
func (n *Notifier) refsReordered(parent Path, newOrder []int) {
	if len(n.refs) == 0 || len(newOrder) == 0 {
		return
	}
	d := len(parent)
	var inverse []int
	for _, r := range n.refs {
		rp := r.path
		if len(rp) <= d || !slices.Equal(rp[:d], parent) {
			continue
		}
		if inverse == nil {
			inverse = slicesx.Inverse(newOrder)
		}
		if rp[d] < len(inverse) {
			rp[d] = inverse[rp[d]]
		}
	}
}
