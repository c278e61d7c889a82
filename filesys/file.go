// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package filesys provides the file system abstraction that file
// models are populated from: file identities, file information,
// asynchronous directory enumeration and directory monitoring,
// with an implementation for the local operating system.
package filesys

import (
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"
)

// File identifies a file by its URI. Files are comparable values,
// so they can be used directly as map keys. The zero File is no file.
type File struct {
	uri string
}

// NewFileForPath returns the File for a local path, which is made
// absolute.
func NewFileForPath(p string) File {
	if abs, err := filepath.Abs(p); err == nil {
		p = abs
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(filepath.Clean(p))}
	return File{uri: u.String()}
}

// NewFileForURI returns the File for a URI such as "file:///tmp/x"
// or "mem:///a/b". Trailing slashes and dot segments of the path
// are removed.
func NewFileForURI(uri string) (File, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return File{}, fmt.Errorf("filesys: invalid URI %q: %w", uri, err)
	}
	if u.Scheme == "" {
		return File{}, fmt.Errorf("filesys: URI %q has no scheme", uri)
	}
	if u.Path == "" {
		u.Path = "/"
	}
	u.Path = path.Clean(u.Path)
	return File{uri: u.String()}, nil
}

func (f File) parse() *url.URL {
	u, err := url.Parse(f.uri)
	if err != nil {
		return &url.URL{}
	}
	return u
}

// IsZero returns whether f is the zero File.
func (f File) IsZero() bool {
	return f.uri == ""
}

// URI returns the URI of the file.
func (f File) URI() string {
	return f.uri
}

// String returns the URI of the file.
func (f File) String() string {
	return f.uri
}

// Scheme returns the URI scheme of the file.
func (f File) Scheme() string {
	return f.parse().Scheme
}

// IsNative returns whether the file is on the local file system.
func (f File) IsNative() bool {
	return strings.HasPrefix(f.uri, "file:")
}

// Path returns the local path of a native file, or "" for
// other files.
func (f File) Path() string {
	if !f.IsNative() {
		return ""
	}
	return filepath.FromSlash(f.parse().Path)
}

// Basename returns the last element of the path of the file.
func (f File) Basename() string {
	if f.IsZero() {
		return ""
	}
	return path.Base(f.parse().Path)
}

// Child returns the file with the given name inside f.
func (f File) Child(name string) File {
	u := f.parse()
	u.Path = path.Join(u.Path, name)
	return File{uri: u.String()}
}

// Parent returns the directory containing f, or false if f is
// the root.
func (f File) Parent() (File, bool) {
	u := f.parse()
	if u.Path == "/" || u.Path == "" {
		return File{}, false
	}
	u.Path = path.Dir(u.Path)
	return File{uri: u.String()}, true
}

// HasParent returns whether dir is the directory containing f.
func (f File) HasParent(dir File) bool {
	p, ok := f.Parent()
	return ok && p == dir
}
