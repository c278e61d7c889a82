// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package treemodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePath(t *testing.T) {
	p, err := ParsePath("10:4:0")
	require.NoError(t, err)
	assert.Equal(t, Path{10, 4, 0}, p)
	assert.Equal(t, "10:4:0", p.String())
	assert.Equal(t, 3, p.Depth())
	assert.Equal(t, []int{10, 4, 0}, p.Indices())

	for _, s := range []string{"", "a", "1::2", "-1", "1:"} {
		_, err := ParsePath(s)
		assert.Error(t, err, s)
	}
}

func TestPathNavigation(t *testing.T) {
	p := NewPath(1, 2)
	p.Next()
	assert.Equal(t, "1:3", p.String())
	assert.True(t, p.Prev())
	p.Down()
	assert.Equal(t, "1:2:0", p.String())
	assert.False(t, p.Prev())
	assert.True(t, p.Up())
	assert.True(t, p.Up())
	assert.Equal(t, Path{1}, p)
	assert.False(t, p.Up())
	p.PrependIndex(7)
	p.AppendIndex(8)
	assert.Equal(t, Path{7, 8}, p)
}

func TestPathCompare(t *testing.T) {
	a := NewPath(1, 2)
	assert.Equal(t, 0, a.Compare(NewPath(1, 2)))
	assert.Equal(t, -1, a.Compare(NewPath(1, 3)))
	assert.Equal(t, 1, a.Compare(NewPath(0, 9, 9)))
	assert.Equal(t, -1, NewPath(1).Compare(a))

	assert.True(t, NewPath(1).IsAncestor(a))
	assert.False(t, a.IsAncestor(a))
	assert.True(t, a.IsDescendant(NewPath(1)))
	assert.False(t, NewPath(2).IsAncestor(a))

	c := a.Copy()
	c.Next()
	assert.Equal(t, Path{1, 2}, a)
}
