// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package treemodel

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Path is the position of a row in a model, as the index of the row
// among its siblings at each depth, starting with the top level.
// The rows of flat models have paths of depth 1.
type Path []int

// NewPath returns a new path with the given indices.
func NewPath(indices ...int) Path {
	return slices.Clone(Path(indices))
}

// NewFirstPath returns the path of the first top level row.
func NewFirstPath() Path {
	return Path{0}
}

// ParsePath parses a path in the form returned by [Path.String],
// such as "10:4:0". Every index must be a non-negative integer.
func ParsePath(s string) (Path, error) {
	if s == "" {
		return nil, fmt.Errorf("treemodel.ParsePath: empty path")
	}
	fields := strings.Split(s, ":")
	p := make(Path, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("treemodel.ParsePath: invalid index %q in %q", f, s)
		}
		p[i] = n
	}
	return p, nil
}

// String returns the indices of the path separated by colons.
func (p Path) String() string {
	var b strings.Builder
	for i, idx := range p {
		if i > 0 {
			b.WriteByte(':')
		}
		b.WriteString(strconv.Itoa(idx))
	}
	return b.String()
}

// Depth returns the number of indices in the path.
func (p Path) Depth() int {
	return len(p)
}

// Indices returns the indices of the path, which must not be modified.
func (p Path) Indices() []int {
	return p
}

// Copy returns a copy of the path.
func (p Path) Copy() Path {
	return slices.Clone(p)
}

// Compare compares two paths, returning -1 if p comes before b
// in a depth-first walk, 0 if they are equal and +1 otherwise.
// An ancestor comes before its descendants.
func (p Path) Compare(b Path) int {
	return slices.Compare(p, b)
}

// IsAncestor returns whether p is a strict ancestor of desc.
func (p Path) IsAncestor(desc Path) bool {
	return len(desc) > len(p) && slices.Equal(p, desc[:len(p)])
}

// IsDescendant returns whether p is a strict descendant of anc.
func (p Path) IsDescendant(anc Path) bool {
	return anc.IsAncestor(p)
}

// AppendIndex adds a new deepest index to the path.
func (p *Path) AppendIndex(index int) {
	*p = append(*p, index)
}

// PrependIndex adds a new top level index to the path.
func (p *Path) PrependIndex(index int) {
	*p = slices.Insert(*p, 0, index)
}

// Next moves the path to the next sibling. The result may not
// denote an existing row.
func (p *Path) Next() {
	if len(*p) == 0 {
		return
	}
	(*p)[len(*p)-1]++
}

// Prev moves the path to the previous sibling, returning false if
// there is none.
func (p *Path) Prev() bool {
	if len(*p) == 0 || (*p)[len(*p)-1] == 0 {
		return false
	}
	(*p)[len(*p)-1]--
	return true
}

// Up moves the path to its parent, returning false if it has none.
func (p *Path) Up() bool {
	if len(*p) == 0 {
		return false
	}
	*p = (*p)[:len(*p)-1]
	return len(*p) > 0
}

// Down moves the path to its first child.
func (p *Path) Down() {
	p.AppendIndex(0)
}
