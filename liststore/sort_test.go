// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package liststore

import (
	"testing"

	"cogentcore.org/treemodel/base/slicesx"
	"cogentcore.org/treemodel/treedata"
	"cogentcore.org/treemodel/treemodel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSort(t *testing.T) {
	s, _ := newNames(t, "c", "a", "b")
	rc := record(s)
	changed := 0
	s.Notifier().OnSortColumnChanged(func() { changed++ })

	s.SetSortColumnID(0, treemodel.Ascending)
	assert.Equal(t, "a b c", names(s))
	assert.Equal(t, []string{"reordered [1 2 0]"}, rc.take())
	assert.Equal(t, 1, changed)
	id, order, ok := s.SortColumnID()
	assert.Equal(t, 0, id)
	assert.Equal(t, treemodel.Ascending, order)
	assert.True(t, ok)

	// setting the same column and order again does nothing
	s.SetSortColumnID(0, treemodel.Ascending)
	assert.Equal(t, 1, changed)
	assert.Empty(t, rc.take())

	s.SetSortColumnID(0, treemodel.Descending)
	assert.Equal(t, "c b a", names(s))
	assert.Equal(t, []string{"reordered [2 1 0]"}, rc.take())

	s.SetSortColumnID(treemodel.UnsortedSortColumnID, treemodel.Ascending)
	_, _, ok = s.SortColumnID()
	assert.False(t, ok)
	assert.Equal(t, "c b a", names(s))

	// no default function yet
	s.SetSortColumnID(treemodel.DefaultSortColumnID, treemodel.Ascending)
	id, _, _ = s.SortColumnID()
	assert.Equal(t, treemodel.UnsortedSortColumnID, id)
	s.SetSortColumnID(42, treemodel.Ascending)
	id, _, _ = s.SortColumnID()
	assert.Equal(t, treemodel.UnsortedSortColumnID, id)
}

func TestSortStable(t *testing.T) {
	s := NewKinds(treedata.Int, treedata.String)
	for i, key := range []int{2, 1, 2, 1, 2} {
		it := s.Append()
		s.Set(it, []int{0, 1}, []treedata.Value{treedata.NewInt(key), treedata.NewString(string(rune('a' + i)))})
	}
	rc := record(s)
	s.SetSortColumnID(0, treemodel.Ascending)
	ev := rc.take()
	require.Len(t, ev, 1)
	assert.Equal(t, "reordered [1 3 0 2 4]", ev[0])

	var got []string
	treemodel.Foreach(s, func(m treemodel.Model, p treemodel.Path, it treemodel.Iter) bool {
		got = append(got, m.Value(it, 1).Str())
		return false
	})
	assert.Equal(t, []string{"b", "d", "a", "c", "e"}, got)

	s.SetSortColumnID(0, treemodel.Descending)
	got = got[:0]
	treemodel.Foreach(s, func(m treemodel.Model, p treemodel.Path, it treemodel.Iter) bool {
		got = append(got, m.Value(it, 1).Str())
		return false
	})
	assert.Equal(t, []string{"a", "c", "e", "b", "d"}, got)
}

func TestIncrementalSort(t *testing.T) {
	s, its := newNames(t, "b", "d", "f", "h")
	s.SetSortColumnID(0, treemodel.Ascending)
	rc := record(s)

	// stays in place
	s.SetValue(its[1], 0, treedata.NewString("e"))
	assert.Equal(t, []string{"changed 1"}, rc.take())

	// moves from the front to the back
	s.SetValue(its[0], 0, treedata.NewString("z"))
	assert.Equal(t, []string{"changed 0", "reordered [1 2 3 0]"}, rc.take())
	assert.Equal(t, "e f h z", names(s))
	assert.Equal(t, treemodel.Path{3}, s.Path(its[0]))

	// moves to the middle
	s.SetValue(its[0], 0, treedata.NewString("g"))
	assert.Equal(t, []string{"changed 3", "reordered [0 1 3 2]"}, rc.take())
	assert.Equal(t, "e f g h", names(s))

	// columns that are not sorted on never reorder
	s.SetValue(its[3], 1, treedata.NewInt(1))
	assert.Equal(t, []string{"changed 3"}, rc.take())
}

func TestCustomSortFunc(t *testing.T) {
	s := NewKinds(treedata.String, treedata.Int)
	for i, n := range []string{"x", "y", "z"} {
		s.InsertWithValues(-1, []int{0, 1}, []treedata.Value{treedata.NewString(n), treedata.NewInt(i)})
	}
	// negative positions are clamped to the start
	assert.Equal(t, "z y x", names(s))

	destroyed := false
	byInt := func(m treemodel.Model, a, b treemodel.Iter) int {
		return m.Value(a, 1).Int() - m.Value(b, 1).Int()
	}
	s.SetSortFunc(5, byInt, func() { destroyed = true })
	s.SetSortColumnID(5, treemodel.Ascending)
	assert.Equal(t, "x y z", names(s))

	rc := record(s)
	it, _ := s.Iter(treemodel.Path{0})
	// custom functions may use any column
	s.SetValue(it, 1, treedata.NewInt(10))
	assert.Equal(t, []string{"changed 0", "reordered [1 2 0]"}, rc.take())

	s.SetSortFunc(5, func(m treemodel.Model, a, b treemodel.Iter) int { return byInt(m, b, a) }, nil)
	assert.True(t, destroyed)
	assert.Equal(t, "x z y", names(s))
	rc.take()

	assert.False(t, s.HasDefaultSortFunc())
	defaultDestroyed := false
	s.SetDefaultSortFunc(treemodel.CompareColumn(0), func() { defaultDestroyed = true })
	assert.True(t, s.HasDefaultSortFunc())
	s.SetSortColumnID(treemodel.DefaultSortColumnID, treemodel.Ascending)
	assert.Equal(t, "x y z", names(s))
	id, _, ok := s.SortColumnID()
	assert.Equal(t, treemodel.DefaultSortColumnID, id)
	assert.False(t, ok)

	s.Destroy()
	assert.True(t, defaultDestroyed)
}

func TestInsertWithValuesSorted(t *testing.T) {
	s, _ := newNames(t, "b", "d")
	s.SetSortColumnID(0, treemodel.Ascending)
	rc := record(s)
	it := s.InsertWithValues(0, []int{0}, []treedata.Value{treedata.NewString("c")})
	assert.Equal(t, []string{"inserted 1"}, rc.take())
	assert.Equal(t, treemodel.Path{1}, s.Path(it))
	assert.Equal(t, "b c d", names(s))

	assert.False(t, s.IterIsValid(s.InsertWithValues(0, []int{0}, nil)))
}

func TestReorderUnsortedOnly(t *testing.T) {
	s, its := newNames(t, "a", "b", "c")
	rc := record(s)

	require.True(t, s.Reorder([]int{2, 0, 1}))
	assert.Equal(t, "c a b", names(s))
	assert.Equal(t, []string{"reordered [2 0 1]"}, rc.take())
	assert.False(t, s.Reorder([]int{0, 1}))

	require.True(t, s.Swap(its[0], its[2]))
	assert.Equal(t, "a c b", names(s))
	assert.Equal(t, []string{"reordered [1 0 2]"}, rc.take())

	require.True(t, s.MoveBefore(its[1], &its[2]))
	assert.Equal(t, "a b c", names(s))
	require.True(t, s.MoveAfter(its[0], &its[2]))
	assert.Equal(t, "b c a", names(s))
	require.True(t, s.MoveAfter(its[0], nil))
	assert.Equal(t, "a b c", names(s))
	require.True(t, s.MoveBefore(its[0], nil))
	assert.Equal(t, "b c a", names(s))
	ev := rc.take()
	assert.Equal(t, []string{
		"reordered [0 2 1]", "reordered [1 2 0]", "reordered [2 0 1]", "reordered [1 2 0]",
	}, ev)

	s.SetSortColumnID(0, treemodel.Ascending)
	rc.take()
	assert.False(t, s.Reorder([]int{0, 1, 2}))
	assert.False(t, s.Swap(its[0], its[1]))
	assert.False(t, s.MoveBefore(its[0], nil))
	assert.Empty(t, rc.take())
}

// TestReorderPermutation checks that applying each emitted order to the
// previous row order gives the new row order.
func TestReorderPermutation(t *testing.T) {
	s, _ := newNames(t, "m", "c", "x", "a", "q", "c")
	var orders [][]int
	s.Notifier().OnRowsReordered(func(p treemodel.Path, parent *treemodel.Iter, newOrder []int) {
		orders = append(orders, newOrder)
	})
	before := []string{"m", "c", "x", "a", "q", "c"}
	s.SetSortColumnID(0, treemodel.Ascending)
	require.Len(t, orders, 1)
	assert.True(t, slicesx.IsPermutation(orders[0]))
	assert.Equal(t, []string{"a", "c", "c", "m", "q", "x"}, slicesx.Permute(before, orders[0]))
}
