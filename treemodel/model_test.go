// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package treemodel

import (
	"slices"
	"testing"

	"cogentcore.org/treemodel/base/slicesx"
	"cogentcore.org/treemodel/treedata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flatModel is a minimal flat model of strings.
type flatModel struct {
	notifier Notifier
	rows     []string
	refs     map[string]int
}

func newFlatModel(rows ...string) *flatModel {
	return &flatModel{rows: rows, refs: map[string]int{}}
}

func (m *flatModel) Flags() Flags                     { return ListOnly }
func (m *flatModel) NColumns() int                    { return 1 }
func (m *flatModel) ColumnType(col int) treedata.Type { return treedata.TypeOf(treedata.String) }
func (m *flatModel) Notifier() *Notifier              { return &m.notifier }
func (m *flatModel) HasChild(it Iter) bool            { return false }
func (m *flatModel) Parent(child Iter) (Iter, bool)   { return Iter{}, false }
func (m *flatModel) Path(it Iter) Path                { return Path{it.Index} }
func (m *flatModel) Value(it Iter, col int) treedata.Value {
	return treedata.NewString(m.rows[it.Index])
}

func (m *flatModel) Iter(p Path) (Iter, bool) {
	if len(p) != 1 {
		return Iter{}, false
	}
	return m.NthChild(nil, p[0])
}

func (m *flatModel) Next(it Iter) (Iter, bool) {
	return m.NthChild(nil, it.Index+1)
}

func (m *flatModel) Children(parent *Iter) (Iter, bool) {
	return m.NthChild(parent, 0)
}

func (m *flatModel) NChildren(parent *Iter) int {
	if parent != nil {
		return 0
	}
	return len(m.rows)
}

func (m *flatModel) NthChild(parent *Iter, n int) (Iter, bool) {
	if parent != nil || n < 0 || n >= len(m.rows) {
		return Iter{}, false
	}
	return Iter{Index: n}, true
}

func (m *flatModel) RefNode(it Iter)   { m.refs[m.rows[it.Index]]++ }
func (m *flatModel) UnrefNode(it Iter) { m.refs[m.rows[it.Index]]-- }

func (m *flatModel) insert(i int, s string) {
	m.rows = slices.Insert(m.rows, i, s)
	m.notifier.RowInserted(Path{i}, Iter{Index: i})
}

func (m *flatModel) remove(i int) {
	m.rows = slices.Delete(m.rows, i, i+1)
	m.notifier.RowDeleted(Path{i})
}

func (m *flatModel) reorder(newOrder []int) {
	m.rows = slicesx.Permute(m.rows, newOrder)
	m.notifier.RowsReordered(Path{}, nil, newOrder)
}

func (m *flatModel) at(r *RowReference) string {
	it, ok := r.Iter()
	if !ok {
		return ""
	}
	return m.rows[it.Index]
}

func TestRowReference(t *testing.T) {
	m := newFlatModel("A", "B", "C")
	b := NewRowReference(m, Path{1})
	require.NotNil(t, b)
	assert.Equal(t, 1, m.refs["B"])

	m.insert(0, "D")
	assert.Equal(t, Path{2}, b.Path())
	m.remove(1)
	assert.Equal(t, Path{1}, b.Path())
	assert.Equal(t, "B", m.at(b))

	// [D B C] -> [C D B]
	m.reorder([]int{2, 0, 1})
	assert.Equal(t, Path{2}, b.Path())
	assert.Equal(t, "B", m.at(b))

	c := b.Copy()
	assert.Equal(t, 2, m.refs["B"])
	m.remove(2)
	assert.False(t, b.Valid())
	assert.Nil(t, b.Path())
	assert.Nil(t, c.Path())

	b.Free()
	c.Free()
	b.Free()
	assert.Empty(t, m.notifier.refs)
	assert.Nil(t, NewRowReference(m, Path{5}))
	assert.Nil(t, NewRowReference(m, nil))
}

func TestRowReferenceFree(t *testing.T) {
	m := newFlatModel("A", "B")
	r := NewRowReference(m, Path{0})
	assert.Equal(t, 1, m.refs["A"])
	r.Free()
	assert.Equal(t, 0, m.refs["A"])
	assert.Nil(t, r.Model())
	assert.Nil(t, r.Copy())
}

func TestNotifierOrder(t *testing.T) {
	m := newFlatModel("A", "B")
	ref := NewRowReference(m, Path{1})
	var seen []string
	m.notifier.OnRowInserted(func(p Path, it Iter) {
		// references are already updated
		seen = append(seen, "first:"+ref.Path().String())
	})
	id := m.notifier.OnRowInserted(func(p Path, it Iter) {
		seen = append(seen, "second:"+p.String())
	})
	m.insert(0, "Z")
	assert.Equal(t, []string{"first:2", "second:0"}, seen)

	assert.True(t, m.notifier.Disconnect(id))
	assert.False(t, m.notifier.Disconnect(id))
	assert.Equal(t, 1, m.notifier.NListeners(RowInserted))
	seen = nil
	m.insert(0, "Y")
	assert.Equal(t, []string{"first:3"}, seen)

	var order []int
	m.notifier.OnRowsReordered(func(p Path, parent *Iter, newOrder []int) {
		assert.Nil(t, parent)
		order = newOrder
	})
	m.reorder([]int{1, 0, 2, 3})
	assert.Equal(t, []int{1, 0, 2, 3}, order)
	ref.Free()
}

func TestHelpers(t *testing.T) {
	m := newFlatModel("A", "B", "C")
	it, ok := IterFirst(m)
	require.True(t, ok)
	assert.Equal(t, 0, it.Index)
	it, ok = IterFromString(m, "2")
	require.True(t, ok)
	assert.Equal(t, "2", StringFromIter(m, it))
	_, ok = IterFromString(m, "x")
	assert.False(t, ok)
	assert.Equal(t, "C", Get(m, it, 0)[0].Str())

	var visited []string
	Foreach(m, func(m Model, p Path, it Iter) bool {
		visited = append(visited, p.String()+"="+m.Value(it, 0).Str())
		return p[0] == 1
	})
	assert.Equal(t, []string{"0=A", "1=B"}, visited)
}

func TestSortHeaders(t *testing.T) {
	m := newFlatModel("b", "a")
	hs := NewSortHeaders(1)
	h := hs.Lookup(0)
	require.NotNil(t, h)
	assert.True(t, h.Participates(0))
	assert.False(t, h.Participates(1))
	assert.Equal(t, 1, h.Func(m, Iter{Index: 0}, Iter{Index: 1}))
	assert.Equal(t, -1, Inverted(h.Func)(m, Iter{Index: 0}, Iter{Index: 1}))

	destroyed := 0
	hs.Set(0, func(m Model, a, b Iter) int { return 0 }, func() { destroyed++ })
	assert.True(t, hs.Lookup(0).Participates(1))
	hs.Set(0, func(m Model, a, b Iter) int { return 0 }, nil)
	assert.Equal(t, 1, destroyed)
	hs.Set(5, func(m Model, a, b Iter) int { return 0 }, func() { destroyed++ })
	assert.NotNil(t, hs.Lookup(5))
	hs.Free()
	assert.Equal(t, 2, destroyed)
	assert.Nil(t, hs.Lookup(0))
}
