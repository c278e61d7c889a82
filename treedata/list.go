// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package treedata

// List holds the cells of one row as a singly linked list indexed
// by column. Cells are only allocated up to the highest column that
// has been set; later columns read as the default of their type.
// The zero List is an empty row ready to use.
type List struct {
	head *cell
	n    int
}

type cell struct {
	value Value
	next  *cell
}

// Len returns the number of allocated cells.
func (l *List) Len() int {
	return l.n
}

func (l *List) cell(col int) *cell {
	c := l.head
	for i := 0; i < col && c != nil; i++ {
		c = c.next
	}
	return c
}

// Get returns the value stored for column col, or the default value
// of t if the column has never been set. The value is still owned by
// the list; see [List.Value] for a copy.
func (l *List) Get(col int, t Type) Value {
	if col < 0 || col >= l.n {
		return Zero(t)
	}
	c := l.cell(col)
	if !c.value.IsValid() {
		return Zero(t)
	}
	return c.value
}

// Value returns a copy of the value of column col, which the caller
// owns and should pass to [Release].
func (l *List) Value(col int, t Type) Value {
	return Copy(l.Get(col, t))
}

// Set stores v in column col, taking ownership of it and releasing
// the previous value of the column.
func (l *List) Set(col int, v Value) {
	if col < 0 {
		return
	}
	if l.head == nil {
		l.head = &cell{}
		l.n = 1
	}
	c := l.head
	for i := 0; i < col; i++ {
		if c.next == nil {
			c.next = &cell{}
			l.n++
		}
		c = c.next
	}
	Release(c.value)
	c.value = v
}

// Clone returns a copy of the list with every value copied.
func (l *List) Clone() *List {
	nl := &List{n: l.n}
	tail := &nl.head
	for c := l.head; c != nil; c = c.next {
		nc := &cell{value: Copy(c.value)}
		*tail = nc
		tail = &nc.next
	}
	return nl
}

// Free releases every value in the list and empties it.
func (l *List) Free() {
	for c := l.head; c != nil; c = c.next {
		Release(c.value)
	}
	l.head = nil
	l.n = 0
}
