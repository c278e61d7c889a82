// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package filemodel

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"

	"cogentcore.org/treemodel/base/slicesx"
	"cogentcore.org/treemodel/filefilter"
	"cogentcore.org/treemodel/filesys"
	"cogentcore.org/treemodel/treedata"
	"cogentcore.org/treemodel/treemodel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func init() {
	treedata.SetCollationLanguage(language.English)
}

var testTypes = []treedata.Type{treedata.TypeOf(treedata.String), treedata.TypeOf(treedata.Int64)}

// nameSize has the display name in column 0 and the size in column 1.
func nameSize(m *Model, file filesys.File, info *filesys.Info, col int) (treedata.Value, bool) {
	if info == nil {
		return treedata.Value{}, false
	}
	switch col {
	case 0:
		return treedata.NewString(info.DisplayName), true
	case 1:
		return treedata.NewInt64(info.Size), true
	}
	return treedata.Value{}, false
}

func newModel() *Model {
	return New(nameSize, testTypes...)
}

func file(name string) filesys.File {
	return filesys.MemFile("/dir/" + name)
}

func regular(name string, size int64) *filesys.Info {
	info := filesys.NewInfo(name, filesys.TypeRegular)
	info.Size = size
	return info
}

func folder(name string) *filesys.Info {
	return filesys.NewInfo(name, filesys.TypeDirectory)
}

func addFiles(m *Model, names ...string) {
	for i, name := range names {
		m.Add(file(name), regular(name, int64(i)))
	}
}

type recorder struct {
	events []string
}

func record(m treemodel.Model) *recorder {
	rc := &recorder{}
	n := m.Notifier()
	n.OnRowChanged(func(p treemodel.Path, it treemodel.Iter) {
		rc.events = append(rc.events, "changed "+p.String())
	})
	n.OnRowInserted(func(p treemodel.Path, it treemodel.Iter) {
		rc.events = append(rc.events, "inserted "+p.String())
	})
	n.OnRowDeleted(func(p treemodel.Path) {
		rc.events = append(rc.events, "deleted "+p.String())
	})
	n.OnRowsReordered(func(p treemodel.Path, parent *treemodel.Iter, newOrder []int) {
		rc.events = append(rc.events, fmt.Sprint("reordered ", newOrder))
	})
	return rc
}

func (rc *recorder) take() []string {
	ev := rc.events
	rc.events = nil
	return ev
}

// names returns column 0 of all rows.
func names(m treemodel.Model) string {
	var b []string
	treemodel.Foreach(m, func(m treemodel.Model, p treemodel.Path, it treemodel.Iter) bool {
		b = append(b, m.Value(it, 0).Str())
		return false
	})
	return strings.Join(b, " ")
}

func TestAdd(t *testing.T) {
	m := newModel()
	rc := record(m)
	m.Add(file("b"), regular("b", 2))
	m.Add(file("a"), regular("a", 1))
	m.Add(file(".h"), regular(".h", 0))
	m.Add(file("d"), folder("d"))
	assert.Equal(t, []string{"inserted 0", "inserted 1", "inserted 2"}, rc.take())
	assert.Equal(t, "b a d", names(m))
	assert.Equal(t, 3, m.NChildren(nil))
	assert.Equal(t, 4, m.Len())
	assert.Equal(t, treemodel.ListOnly, m.Flags())

	h, ok := m.IterForFile(file(".h"))
	require.True(t, ok)
	assert.False(t, m.IterIsVisible(h))
	assert.Nil(t, m.Path(h))
	assert.Equal(t, file(".h"), m.File(h))
	assert.Equal(t, ".h", m.Info(h).Name)

	m.SetShowHidden(true)
	assert.Equal(t, []string{"inserted 2"}, rc.take())
	assert.Equal(t, "b a .h d", names(m))

	it, ok := m.NthChild(nil, 1)
	require.True(t, ok)
	assert.Equal(t, int64(1), m.Value(it, 1).Int64())
	assert.Equal(t, treemodel.Path{1}, m.Path(it))
	next, ok := m.Next(it)
	require.True(t, ok)
	assert.Equal(t, h, next)
	_, ok = m.NthChild(nil, 4)
	assert.False(t, ok)
	assert.False(t, m.HasChild(it))

	// duplicates are refused
	m.Add(file("a"), regular("a", 1))
	assert.Equal(t, 4, m.Len())
	assert.Empty(t, rc.take())
}

func TestRemove(t *testing.T) {
	m := newModel()
	addFiles(m, "a", "b", "c")
	rc := record(m)

	m.Remove(file("b"))
	assert.Equal(t, []string{"deleted 1"}, rc.take())
	assert.Equal(t, "a c", names(m))
	it, ok := m.IterForFile(file("c"))
	require.True(t, ok)
	assert.Equal(t, 2, it.Index)
	assert.Equal(t, treemodel.Path{1}, m.Path(it))

	m.Remove(file("b"))
	m.Remove(file("zz"))
	assert.Empty(t, rc.take())

	m.SetShowFiles(false)
	assert.Equal(t, []string{"deleted 0", "deleted 0"}, rc.take())
	m.Remove(file("a"))
	assert.Empty(t, rc.take())
	assert.Equal(t, 1, m.Len())
}

func TestSort(t *testing.T) {
	m := newModel()
	addFiles(m, "c", "a", "b")
	rc := record(m)
	changes := 0
	m.Notifier().OnSortColumnChanged(func() { changes++ })

	m.SetSortColumnID(0, treemodel.Ascending)
	assert.Equal(t, 1, changes)
	assert.Equal(t, []string{"reordered [1 2 0]"}, rc.take())
	assert.Equal(t, "a b c", names(m))
	id, order, ok := m.SortColumnID()
	assert.Equal(t, 0, id)
	assert.Equal(t, treemodel.Ascending, order)
	assert.True(t, ok)

	// added files are inserted at the end and then moved
	m.Add(file("bb"), regular("bb", 0))
	assert.Equal(t, []string{"inserted 3", "reordered [0 1 3 2]"}, rc.take())
	assert.Equal(t, "a b bb c", names(m))

	// updated files are moved if their key changed
	m.UpdateFile(file("a"), regular("z", 1))
	assert.Equal(t, []string{"changed 0", "reordered [1 2 3 0]"}, rc.take())
	assert.Equal(t, "b bb c z", names(m))

	m.UpdateFile(file("b"), regular("b", 7))
	assert.Equal(t, []string{"changed 0"}, rc.take())

	m.SetSortColumnID(0, treemodel.Descending)
	assert.Equal(t, []string{"reordered [3 2 1 0]"}, rc.take())
	assert.Equal(t, "z c bb b", names(m))

	m.SetSortColumnID(1, treemodel.Ascending)
	assert.Equal(t, "c bb z b", names(m))
	rc.take()

	m.SetSortColumnID(treemodel.UnsortedSortColumnID, treemodel.Ascending)
	assert.Empty(t, rc.take())
	m.Add(file("e"), regular("e", 0))
	assert.Equal(t, []string{"inserted 4"}, rc.take())
}

func TestSortFuncs(t *testing.T) {
	m := newModel()
	m.Add(file("b"), regular("b", 0))
	m.Add(file("d"), folder("d"))
	m.Add(file("a"), regular("a", 0))
	m.Add(file("c"), folder("c"))

	destroyed := 0
	assert.False(t, m.HasDefaultSortFunc())
	m.SetDefaultSortFunc(FoldersFirst(treemodel.CompareColumn(0)), func() { destroyed++ })
	assert.True(t, m.HasDefaultSortFunc())
	m.SetSortColumnID(treemodel.DefaultSortColumnID, treemodel.Ascending)
	assert.Equal(t, "c d a b", names(m))
	_, _, ok := m.SortColumnID()
	assert.False(t, ok)

	m.Add(file("e"), folder("e"))
	assert.Equal(t, "c d e a b", names(m))

	m.SetSortFunc(5, treemodel.Inverted(treemodel.CompareColumn(0)), nil)
	m.SetSortColumnID(5, treemodel.Ascending)
	assert.Equal(t, "e d c b a", names(m))

	m.Destroy()
	assert.Equal(t, 1, destroyed)
}

// checkRows verifies the lazily validated rows against the visible
// nodes, querying the rows in a random order.
func checkRows(t *testing.T, m *Model, rnd *rand.Rand) {
	t.Helper()
	var visible []int
	for i, n := range m.files {
		if n.visible {
			visible = append(visible, i)
		}
	}
	for _, r := range rnd.Perm(len(visible)) {
		it, ok := m.NthChild(nil, r)
		require.True(t, ok)
		require.Equal(t, visible[r], it.Index)
		require.Equal(t, treemodel.Path{r}, m.Path(m.iterOf(visible[r])))
	}
	_, ok := m.NthChild(nil, len(visible))
	require.False(t, ok)
	require.Equal(t, len(visible), m.NChildren(nil))
}

func TestLazyRows(t *testing.T) {
	rnd := rand.New(rand.NewPCG(1, 2))
	m := newModel()
	var present []string
	count := 0
	for range 500 {
		switch op := rnd.IntN(10); {
		case op < 5:
			name := fmt.Sprintf("f%d", count)
			if rnd.IntN(3) == 0 {
				name = "." + name
			}
			count++
			m.Add(file(name), regular(name, int64(rnd.IntN(100))))
			present = append(present, name)
		case op < 7 && len(present) > 0:
			i := rnd.IntN(len(present))
			m.Remove(file(present[i]))
			present = slicesx.Move(present, i, len(present)-1)
			present = present[:len(present)-1]
		case op < 8:
			m.SetShowHidden(!m.showHidden)
		case op < 9 && len(present) > 0:
			name := present[rnd.IntN(len(present))]
			m.UpdateFile(file(name), regular(name, int64(rnd.IntN(100))))
		default:
			m.SetSortColumnID(rnd.IntN(2), treemodel.SortType(rnd.IntN(2)))
		}
		checkRows(t, m, rnd)
	}
}

func TestLookup(t *testing.T) {
	m := newModel()
	m.Freeze()
	for i := range 20 {
		name := fmt.Sprintf("f%02d", 19-i)
		m.Add(file(name), regular(name, 0))
	}
	m.SetSortColumnID(0, treemodel.Ascending)
	m.Thaw()
	assert.Empty(t, m.lookup)

	it, ok := m.IterForFile(file("f15"))
	require.True(t, ok)
	assert.Equal(t, 16, it.Index)
	assert.GreaterOrEqual(t, len(m.lookup), it.Index)
	again, ok := m.IterForFile(file("f15"))
	require.True(t, ok)
	assert.Equal(t, it, again)

	m.Remove(file("f03"))
	for i := 1; i < len(m.files); i++ {
		it, ok := m.IterForFile(m.files[i].file)
		require.True(t, ok)
		assert.Equal(t, i, it.Index)
	}
	assert.Len(t, m.lookup, 19)
}

func TestResortPermutation(t *testing.T) {
	rnd := rand.New(rand.NewPCG(3, 4))
	m := newModel()
	for i := range 50 {
		name := fmt.Sprintf("f%d", rnd.IntN(1000))
		if _, ok := m.IterForFile(file(name)); ok {
			continue
		}
		if i%5 == 0 {
			name = "." + name
		}
		m.Add(file(name), regular(name, int64(rnd.IntN(10))))
	}
	var orders [][]int
	m.Notifier().OnRowsReordered(func(p treemodel.Path, parent *treemodel.Iter, newOrder []int) {
		orders = append(orders, newOrder)
	})
	for _, col := range []int{0, 1, 0} {
		for _, order := range []treemodel.SortType{treemodel.Ascending, treemodel.Descending} {
			before := strings.Fields(names(m))
			orders = nil
			m.SetSortColumnID(col, order)
			after := strings.Fields(names(m))
			require.Len(t, orders, 1)
			assert.True(t, slicesx.IsPermutation(orders[0]))
			assert.Equal(t, after, slicesx.Permute(before, orders[0]))
		}
	}
}

func TestFreezeThaw(t *testing.T) {
	files := []string{"c", "a", "e", "b", "d"}

	m := newModel()
	m.SetSortColumnID(0, treemodel.Ascending)
	rc := record(m)
	m.Freeze()
	m.Freeze()
	addFiles(m, files...)
	assert.Equal(t, 0, m.NChildren(nil))
	m.SetShowHidden(true)
	m.Thaw()
	assert.Equal(t, 0, m.NChildren(nil))
	assert.Empty(t, rc.take())
	m.Thaw()
	assert.Equal(t, []string{"inserted 0", "inserted 1", "inserted 2", "inserted 3", "inserted 4"}, rc.take())
	assert.Equal(t, "a b c d e", names(m))

	direct := newModel()
	direct.SetSortColumnID(0, treemodel.Ascending)
	addFiles(direct, files...)
	assert.Equal(t, names(direct), names(m))

	// unbalanced thaws are refused
	m.Thaw()
	assert.Equal(t, 0, m.frozen)
}

func TestEditable(t *testing.T) {
	m := newModel()
	addFiles(m, "a", "b")
	rc := record(m)

	it := m.AddEditable()
	assert.Equal(t, []string{"inserted 0"}, rc.take())
	assert.Equal(t, 1, m.frozen)

	// the editable row is only added once
	assert.Equal(t, it, m.AddEditable())
	assert.Empty(t, rc.take())
	assert.Equal(t, 1, m.frozen)
	assert.Equal(t, 3, m.NChildren(nil))
	first, ok := treemodel.IterFirst(m)
	require.True(t, ok)
	assert.Equal(t, it, first)
	assert.True(t, m.File(it).IsZero())
	assert.Nil(t, m.Info(it))
	assert.Equal(t, treedata.NewString(""), m.Value(it, 0))

	m.Add(file("c"), regular("c", 0))
	assert.Empty(t, rc.take())
	assert.Equal(t, 3, m.NChildren(nil))

	m.RemoveEditable()
	assert.Equal(t, []string{"inserted 3", "deleted 0"}, rc.take())
	assert.Equal(t, "a b c", names(m))

	m.RemoveEditable()
	assert.Empty(t, rc.take())
}

func TestFilter(t *testing.T) {
	m := newModel()
	m.Add(file("d"), folder("d"))
	m.Add(file("x.txt"), regular("x.txt", 0))
	m.Add(file("y.go"), regular("y.go", 0))
	rc := record(m)

	f := filefilter.New("text")
	require.True(t, f.AddPattern("*.txt"))
	m.SetFilter(f)
	assert.Equal(t, f, m.Filter())
	assert.Equal(t, []string{"changed 0", "deleted 2"}, rc.take())
	assert.Equal(t, "d x.txt", names(m))

	d, _ := m.IterForFile(file("d"))
	y, _ := m.IterForFile(file("y.go"))
	x, _ := m.IterForFile(file("x.txt"))
	assert.True(t, m.IterIsVisible(d))
	assert.True(t, m.IterIsFilteredOut(d))
	assert.False(t, m.IterIsVisible(y))
	assert.True(t, m.IterIsFilteredOut(y))
	assert.True(t, m.IterIsVisible(x))
	assert.False(t, m.IterIsFilteredOut(x))

	m.SetFilterFolders(true)
	assert.Equal(t, []string{"deleted 0"}, rc.take())
	assert.Equal(t, "x.txt", names(m))

	m.SetFilterFolders(false)
	m.SetShowFolders(false)
	assert.Equal(t, []string{"inserted 0", "deleted 0"}, rc.take())

	m.SetFilter(nil)
	assert.Equal(t, "x.txt y.go", names(m))
	assert.False(t, m.IterIsFilteredOut(y))
}

func TestSetSameFilter(t *testing.T) {
	m := newModel()
	m.Add(file("x.txt"), regular("x.txt", 0))
	m.Add(file("y.go"), regular("y.go", 0))
	rc := record(m)

	f := filefilter.New("sources")
	require.True(t, f.AddPattern("*.txt"))
	m.SetFilter(f)
	assert.Equal(t, []string{"deleted 1"}, rc.take())
	assert.Equal(t, "x.txt", names(m))

	require.True(t, f.AddPattern("*.go"))
	m.SetFilter(f)
	assert.Equal(t, []string{"inserted 1"}, rc.take())
	assert.Equal(t, "x.txt y.go", names(m))
}

func TestFolderLikeTypes(t *testing.T) {
	m := newModel()
	m.Add(file("share"), filesys.NewInfo("share", filesys.TypeMountable))
	m.Add(file("bookmark"), filesys.NewInfo("bookmark", filesys.TypeShortcut))
	m.Add(file("x.txt"), regular("x.txt", 0))

	f := filefilter.New("text")
	require.True(t, f.AddPattern("*.txt"))
	m.SetFilter(f)
	assert.Equal(t, "share bookmark x.txt", names(m))

	m.SetShowFolders(false)
	assert.Equal(t, "x.txt", names(m))
}

func TestFilterMimeType(t *testing.T) {
	m := newModel()
	img := regular("p.png", 0)
	img.ContentType = "image/png"
	m.Add(file("p.png"), img)
	m.Add(file("x.txt"), regular("x.txt", 0))
	m.Add(file("unknown"), nil)

	f := filefilter.New("images")
	f.AddMimeType("image/*")
	m.SetFilter(f)
	assert.Equal(t, "p.png", names(m))

	u, ok := m.IterForFile(file("unknown"))
	require.True(t, ok)
	assert.False(t, m.IterIsVisible(u))
	assert.False(t, m.IterIsFilteredOut(u))

	m.UpdateFile(file("unknown"), img.Clone())
	assert.Equal(t, "p.png p.png", names(m))
}

func TestValues(t *testing.T) {
	m := New(nameSize, treedata.TypeOf(treedata.String), treedata.TypeOf(treedata.Int))
	addFiles(m, "a", "b")
	rc := record(m)

	b, _ := m.IterForFile(file("b"))
	assert.Equal(t, 1, m.Value(b, 1).Int())
	v, ok := m.RawValue(b, 0)
	require.True(t, ok)
	assert.Equal(t, "b", v.Str())

	m.ClearCache(0)
	assert.Equal(t, []string{"changed 1"}, rc.take())
	m.ClearCache(0)
	assert.Empty(t, rc.take())
	m.ClearCache(-1)
	assert.Equal(t, []string{"changed 1"}, rc.take())

	assert.Equal(t, treedata.Value{}, m.Value(b, 2))
	assert.Equal(t, treedata.Value{}, m.Value(treemodel.Iter{Index: 1}, 0))
	assert.Equal(t, 2, m.NColumns())
	assert.Equal(t, treedata.TypeOf(treedata.Int), m.ColumnType(1))
}
