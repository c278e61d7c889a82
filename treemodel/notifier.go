// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package treemodel

import "slices"

// Signals are the kinds of change that a model reports.
type Signals int32

const (
	// RowChanged is sent when values of an existing row change.
	RowChanged Signals = iota

	// RowInserted is sent after a row has been inserted.
	RowInserted

	// RowDeleted is sent after a row has been removed. The event
	// has no iterator, as the row no longer exists.
	RowDeleted

	// RowHasChildToggled is sent when a row gains its first child
	// or loses its last one.
	RowHasChildToggled

	// RowsReordered is sent after the children of a row, or the top
	// level rows, have been reordered.
	RowsReordered

	// SortColumnChanged is sent by sortable models when the sort
	// column or order changes.
	SortColumnChanged

	signalsN
)

// Event is a change reported by a model.
type Event struct {
	Signal Signals

	// Path is the path of the changed row; for RowsReordered it is
	// the path of the parent, which is empty for top level rows.
	Path Path

	// Iter is the changed row, or the parent for RowsReordered.
	// It is only meaningful if HasIter is set.
	Iter    Iter
	HasIter bool

	// NewOrder is set for RowsReordered so that NewOrder[newPos] is
	// the position the row had before the reorder.
	NewOrder []int
}

type listener struct {
	id  int
	fun func(e *Event)
}

// Notifier delivers the changes of a model. Emission has two phases:
// first every live [RowReference] of the model is updated, and then
// the listeners of the signal are called in the order they were
// added. Listeners thus always see up to date row references.
//
// The zero Notifier is ready to use. Models embed one and return it
// from [Model.Notifier]. A Notifier is only used from the goroutine
// that owns its model.
type Notifier struct {
	refs      []*RowReference
	listeners [signalsN][]listener
	lastID    int
}

// On adds a listener for the given signal and returns its id
// for [Notifier.Disconnect].
func (n *Notifier) On(sig Signals, fun func(e *Event)) int {
	n.lastID++
	n.listeners[sig] = append(n.listeners[sig], listener{id: n.lastID, fun: fun})
	return n.lastID
}

// OnRowChanged adds a listener for [RowChanged].
func (n *Notifier) OnRowChanged(fun func(p Path, it Iter)) int {
	return n.On(RowChanged, func(e *Event) { fun(e.Path, e.Iter) })
}

// OnRowInserted adds a listener for [RowInserted].
func (n *Notifier) OnRowInserted(fun func(p Path, it Iter)) int {
	return n.On(RowInserted, func(e *Event) { fun(e.Path, e.Iter) })
}

// OnRowDeleted adds a listener for [RowDeleted].
func (n *Notifier) OnRowDeleted(fun func(p Path)) int {
	return n.On(RowDeleted, func(e *Event) { fun(e.Path) })
}

// OnRowHasChildToggled adds a listener for [RowHasChildToggled].
func (n *Notifier) OnRowHasChildToggled(fun func(p Path, it Iter)) int {
	return n.On(RowHasChildToggled, func(e *Event) { fun(e.Path, e.Iter) })
}

// OnRowsReordered adds a listener for [RowsReordered]. parent is
// nil for the top level rows.
func (n *Notifier) OnRowsReordered(fun func(p Path, parent *Iter, newOrder []int)) int {
	return n.On(RowsReordered, func(e *Event) {
		var parent *Iter
		if e.HasIter {
			parent = &e.Iter
		}
		fun(e.Path, parent, e.NewOrder)
	})
}

// OnSortColumnChanged adds a listener for [SortColumnChanged].
func (n *Notifier) OnSortColumnChanged(fun func()) int {
	return n.On(SortColumnChanged, func(e *Event) { fun() })
}

// Disconnect removes the listener with the given id, returning
// whether it existed. A listener removed during an emission is
// still called for that emission if it had not been reached yet.
func (n *Notifier) Disconnect(id int) bool {
	for sig := range n.listeners {
		ls := n.listeners[sig]
		if i := slices.IndexFunc(ls, func(l listener) bool { return l.id == id }); i >= 0 {
			n.listeners[sig] = slices.Delete(slices.Clone(ls), i, i+1)
			return true
		}
	}
	return false
}

// NListeners returns the number of listeners for the signal.
func (n *Notifier) NListeners(sig Signals) int {
	return len(n.listeners[sig])
}

// Emit delivers the event, first to row references and then to
// listeners.
func (n *Notifier) Emit(e *Event) {
	switch e.Signal {
	case RowInserted:
		n.refsInserted(e.Path)
	case RowDeleted:
		n.refsDeleted(e.Path)
	case RowsReordered:
		n.refsReordered(e.Path, e.NewOrder)
	}
	// listeners added or removed by a listener take effect
	// from the next emission
	for _, l := range n.listeners[e.Signal] {
		l.fun(e)
	}
}

// RowChanged emits [RowChanged].
func (n *Notifier) RowChanged(p Path, it Iter) {
	n.Emit(&Event{Signal: RowChanged, Path: p, Iter: it, HasIter: true})
}

// RowInserted emits [RowInserted].
func (n *Notifier) RowInserted(p Path, it Iter) {
	n.Emit(&Event{Signal: RowInserted, Path: p, Iter: it, HasIter: true})
}

// RowDeleted emits [RowDeleted].
func (n *Notifier) RowDeleted(p Path) {
	n.Emit(&Event{Signal: RowDeleted, Path: p})
}

// RowHasChildToggled emits [RowHasChildToggled].
func (n *Notifier) RowHasChildToggled(p Path, it Iter) {
	n.Emit(&Event{Signal: RowHasChildToggled, Path: p, Iter: it, HasIter: true})
}

// RowsReordered emits [RowsReordered] for the children of parent,
// or for the top level rows if parent is nil.
func (n *Notifier) RowsReordered(p Path, parent *Iter, newOrder []int) {
	e := &Event{Signal: RowsReordered, Path: p, NewOrder: newOrder}
	if parent != nil {
		e.Iter = *parent
		e.HasIter = true
	}
	n.Emit(e)
}

// SortColumnChanged emits [SortColumnChanged].
func (n *Notifier) SortColumnChanged() {
	n.Emit(&Event{Signal: SortColumnChanged})
}
