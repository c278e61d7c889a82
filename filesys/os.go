// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package filesys

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// OS is the [FileSystem] of the local operating system. It only
// handles native files.
type OS struct{}

func nativePath(f File) (string, error) {
	if !f.IsNative() {
		return "", fmt.Errorf("%w: %s is not a local file", ErrNotSupported, f)
	}
	return f.Path(), nil
}

func (OS) EnumerateChildren(ctx context.Context, dir File, attrs Attributes) (Enumerator, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p, err := nativePath(dir)
	if err != nil {
		return nil, err
	}
	d, err := os.Open(p)
	if err != nil {
		return nil, err
	}
	return &osEnumerator{dir: dir, path: p, d: d, attrs: attrs}, nil
}

func (OS) QueryInfo(ctx context.Context, f File, attrs Attributes) (*Info, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p, err := nativePath(f)
	if err != nil {
		return nil, err
	}
	fi, err := os.Lstat(p)
	if err != nil {
		return nil, err
	}
	return statInfo(p, fi, attrs), nil
}

func (OS) Watch(ctx context.Context, dir File) (Monitor, error) {
	p, err := nativePath(dir)
	if err != nil {
		return nil, err
	}
	return watchDir(ctx, dir, p)
}

type osEnumerator struct {
	dir   File
	path  string
	d     *os.File
	attrs Attributes
}

func (e *osEnumerator) NextBatch(ctx context.Context, max int) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if e.d == nil {
		return nil, fs.ErrClosed
	}
	des, err := e.d.ReadDir(max)
	if err == io.EOF {
		return nil, nil
	}
	if err != nil && len(des) == 0 {
		return nil, err
	}
	entries := make([]Entry, 0, len(des))
	for _, de := range des {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p := filepath.Join(e.path, de.Name())
		fi, err := de.Info()
		if err != nil {
			// removed since the directory was read
			continue
		}
		entries = append(entries, Entry{File: e.dir.Child(de.Name()), Info: statInfo(p, fi, e.attrs)})
	}
	return entries, nil
}

func (e *osEnumerator) Close() error {
	if e.d == nil {
		return nil
	}
	err := e.d.Close()
	e.d = nil
	return err
}

func fileType(mode fs.FileMode) FileType {
	switch {
	case mode.IsRegular():
		return TypeRegular
	case mode.IsDir():
		return TypeDirectory
	case mode&fs.ModeSymlink != 0:
		return TypeSymlink
	}
	return TypeSpecial
}

// statInfo returns the info of the file at path from its Lstat
// result. Symlinks are followed when their target exists.
func statInfo(path string, fi fs.FileInfo, attrs Attributes) *Info {
	info := NewInfo(fi.Name(), fileType(fi.Mode()))
	if info.Type == TypeSymlink {
		info.IsSymlink = true
		if tfi, err := os.Stat(path); err == nil {
			fi = tfi
			info.Type = fileType(fi.Mode())
		}
	}
	if attrs.Has(AttrSize) {
		info.Size = fi.Size()
	}
	if attrs.Has(AttrModTime) {
		info.ModTime = fi.ModTime()
		info.Mode = fi.Mode()
	}
	if attrs.Has(AttrContentType) {
		info.ContentType = contentType(path, info)
	}
	return info
}
