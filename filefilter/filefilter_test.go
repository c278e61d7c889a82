// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package filefilter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func nameInfo(name string) *Info {
	return &Info{Contains: NeedsDisplayName, DisplayName: name}
}

func TestEmptyFilter(t *testing.T) {
	f := New("none")
	assert.False(t, f.Filter(nameInfo("a.go")))
	assert.Equal(t, Needs(0), f.Needed())
}

func TestPattern(t *testing.T) {
	f := New("go")
	assert.True(t, f.AddPattern("*.go"))
	assert.True(t, f.AddPattern("{Makefile,*.mk}"))
	assert.False(t, f.AddPattern("[a-"))

	assert.True(t, f.Filter(nameInfo("main.go")))
	assert.True(t, f.Filter(nameInfo("Makefile")))
	assert.True(t, f.Filter(nameInfo("rules.mk")))
	assert.False(t, f.Filter(nameInfo("main.go.orig")))
	assert.Equal(t, NeedsDisplayName, f.Needed())
	assert.Equal(t, []string{"*.go", "{Makefile,*.mk}"}, f.Patterns())

	// the name was not supplied
	assert.False(t, f.Filter(&Info{DisplayName: "main.go"}))
}

func TestMimeType(t *testing.T) {
	f := New("images")
	f.AddMimeType("image/*")
	f.AddMimeType("application/pdf")
	info := func(mt string) *Info {
		return &Info{Contains: NeedsMimeType, MimeType: mt}
	}
	assert.True(t, f.Filter(info("image/png")))
	assert.True(t, f.Filter(info("Application/PDF; q=1")))
	assert.False(t, f.Filter(info("text/plain")))
	assert.False(t, f.Filter(info("")))
	assert.Equal(t, NeedsMimeType, f.Needed())

	assert.True(t, MimeTypeMatches("*", "a/b"))
	assert.False(t, MimeTypeMatches("image", "image/png"))
}

func TestCustom(t *testing.T) {
	f := New("uri")
	f.AddCustom(NeedsURI|NeedsFilename, func(info *Info) bool {
		return strings.HasPrefix(info.URI, "file:") && strings.HasSuffix(info.Filename, ".txt")
	})
	f.AddPattern("*.md")
	assert.Equal(t, NeedsURI|NeedsFilename|NeedsDisplayName, f.Needed())

	all := &Info{Contains: f.Needed(), URI: "file:///x/a.txt", Filename: "/x/a.txt", DisplayName: "a.txt"}
	assert.True(t, f.Filter(all))
	all.URI = "mem:///a.txt"
	assert.False(t, f.Filter(all))
	all.DisplayName = "a.md"
	assert.True(t, f.Filter(all))
}
