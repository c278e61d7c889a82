// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package filemodel

import (
	"math"

	"cogentcore.org/treemodel/filefilter"
	"cogentcore.org/treemodel/filesys"
	"cogentcore.org/treemodel/treedata"
)

// noBound is passed to validateRows for a bound that does not apply.
const noBound = math.MaxInt

// node is one entry of the model. Node 0 is the editable row,
// which has no file.
type node struct {
	file filesys.File
	info *filesys.Info

	// row is the number of visible nodes up to and including this
	// one. It is only valid for nodes before Model.nValid.
	row int

	visible bool

	// filteredOut is whether the filter rejects the node, whether
	// or not that makes it invisible.
	filteredOut bool

	// frozenAdd marks a node added while the model was frozen,
	// which stays invisible until the model is thawed.
	frozenAdd bool

	// values caches the values of the columns, by column.
	values []treedata.Value
}

// clearValues releases the cached values of columns [start, end)
// and returns whether any were cached.
func (n *node) clearValues(start, end int) bool {
	changed := false
	for col := start; col < end && col < len(n.values); col++ {
		if !n.values[col].IsValid() {
			continue
		}
		treedata.Release(n.values[col])
		n.values[col] = treedata.Value{}
		changed = true
	}
	return changed
}

// validateRows computes the row numbers of nodes from the valid
// watermark on, up to and including node upToIndex and until the row
// number upToRow has been exceeded, whichever comes first.
func (m *Model) validateRows(upToIndex, upToRow int) {
	if len(m.files) == 0 {
		return
	}
	upToIndex = min(upToIndex, len(m.files)-1)
	i := m.nValid
	row := 0
	if i > 0 {
		row = m.files[i-1].row
	}
	for i <= upToIndex && row <= upToRow {
		n := m.files[i]
		if n.visible {
			row++
		}
		n.row = row
		i++
	}
	m.nValid = i
}

// treeRow returns the 0-based view row of the node at index.
// For an invisible node it is the row of the last visible node
// before it.
func (m *Model) treeRow(index int) int {
	if m.nValid <= index {
		m.validateRows(index, noBound)
	}
	return m.files[index].row - 1
}

func (m *Model) invalidateIndex(id int) {
	m.nValid = min(m.nValid, id)
}

func (m *Model) emitRowInserted(id int) {
	m.notifier.RowInserted(pathOf(m.treeRow(id)), m.iterOf(id))
}

func (m *Model) emitRowChanged(id int) {
	m.notifier.RowChanged(pathOf(m.treeRow(id)), m.iterOf(id))
}

func (m *Model) emitRowDeleted(row int) {
	m.notifier.RowDeleted(pathOf(row))
}

func (m *Model) setVisibleAndFilteredOut(id int, visible, filteredOut bool) {
	n := m.files[id]
	if n.filteredOut != filteredOut {
		n.filteredOut = filteredOut
		if n.visible && visible {
			m.emitRowChanged(id)
		}
	}
	if n.visible == visible || n.frozenAdd {
		return
	}
	if visible {
		n.visible = true
		m.invalidateIndex(id)
		m.emitRowInserted(id)
		return
	}
	row := m.treeRow(id)
	n.visible = false
	m.invalidateIndex(id)
	m.emitRowDeleted(row)
}

// shouldBeFilteredOut returns whether the filter rejects the node.
// Nodes without info and models without filter never reject.
func (m *Model) shouldBeFilteredOut(id int) bool {
	n := m.files[id]
	if n.info == nil || m.filter == nil {
		return false
	}
	needed := m.filter.Needed()
	fi := &filefilter.Info{
		Contains:    filefilter.NeedsDisplayName,
		DisplayName: n.info.DisplayName,
	}
	if needed.Has(filefilter.NeedsMimeType) {
		if mt := n.info.MimeType(); mt != "" {
			fi.MimeType = mt
			fi.Contains |= filefilter.NeedsMimeType
		}
	}
	if needed.Has(filefilter.NeedsFilename) {
		if p := n.file.Path(); p != "" {
			fi.Filename = p
			fi.Contains |= filefilter.NeedsFilename
		}
	}
	if needed.Has(filefilter.NeedsURI) {
		fi.URI = n.file.URI()
		fi.Contains |= filefilter.NeedsURI
	}
	return !m.filter.Filter(fi)
}

func (m *Model) shouldBeVisible(id int, filteredOut bool) bool {
	n := m.files[id]
	if n.info == nil {
		return false
	}
	if !m.showHidden && (n.info.IsHidden || n.info.IsBackup) {
		return false
	}
	if filesys.ConsiderAsDirectory(n.info) {
		if !m.showFolders {
			return false
		}
		if !m.filterFolders {
			return true
		}
	} else if !m.showFiles {
		return false
	}
	return !filteredOut
}

func (m *Model) computeVisibilityAndFilters(id int) {
	filteredOut := m.shouldBeFilteredOut(id)
	visible := m.shouldBeVisible(id, filteredOut)
	m.setVisibleAndFilteredOut(id, visible, filteredOut)
}

// nodeForFile returns the index of the node of file, or 0 if there
// is none. Nodes before index len(lookup)+1 are always in lookup;
// a miss extends it by scanning forward from there.
func (m *Model) nodeForFile(file filesys.File) int {
	if id, ok := m.lookup[file]; ok {
		return id
	}
	for i := len(m.lookup) + 1; i < len(m.files); i++ {
		n := m.files[i]
		m.lookup[n.file] = i
		if n.file == file {
			return i
		}
	}
	return 0
}

// adjustLookup adds increment to every lookup index at or after id.
func (m *Model) adjustLookup(id, increment int) {
	for f, i := range m.lookup {
		if i >= id {
			m.lookup[f] = i + increment
		}
	}
}

// refilterAll recomputes the visibility of every node but the
// editable one, or defers doing so until thawed.
func (m *Model) refilterAll() {
	if m.frozen > 0 {
		m.filterOnThaw = true
		return
	}
	m.Freeze()
	for i := 1; i < len(m.files); i++ {
		m.computeVisibilityAndFilters(i)
	}
	m.filterOnThaw = false
	m.Thaw()
}
