// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"text/tabwriter"

	"github.com/mitchellh/go-homedir"
	"github.com/muesli/termenv"

	"cogentcore.org/treemodel/base/errors"
	"cogentcore.org/treemodel/config"
	"cogentcore.org/treemodel/filemodel"
	"cogentcore.org/treemodel/filesys"
	"cogentcore.org/treemodel/mainloop"
	"cogentcore.org/treemodel/treedata"
	"cogentcore.org/treemodel/treemodel"
)

// Columns of the listing model.
const (
	columnName = iota
	columnSize
	columnType
)

// folderType is the type column of folders.
const folderType = "folder"

var columnTypes = []treedata.Type{
	treedata.TypeOf(treedata.String),
	treedata.TypeOf(treedata.Int64),
	treedata.TypeOf(treedata.String),
}

func rowValue(m *filemodel.Model, file filesys.File, info *filesys.Info, col int) (treedata.Value, bool) {
	if info == nil {
		return treedata.Value{}, false
	}
	switch col {
	case columnName:
		return treedata.NewString(info.DisplayName), true
	case columnSize:
		return treedata.NewInt64(info.Size), true
	case columnType:
		if info.IsDir() {
			return treedata.NewString(folderType), true
		}
		return treedata.NewString(info.MimeType()), true
	}
	return treedata.Value{}, false
}

// list loads dir and prints its rows, and then its changes until
// ctx is done if watch is set.
func list(ctx context.Context, w io.Writer, dir string, s *config.Settings, watch bool) error {
	dir, err := homedir.Expand(dir)
	if err != nil {
		return err
	}
	dir, err = filepath.Abs(dir)
	if err != nil {
		return err
	}
	loop := mainloop.New()
	env := filemodel.Env{Loop: loop, FS: filesys.OS{}, Options: s.LoaderOptions()}
	m := filemodel.NewForDirectory(env, filesys.NewFileForPath(dir), filesys.AttrAll, rowValue, columnTypes...)
	defer m.Destroy()
	s.Apply(m)

	finished := false
	var loadErr error
	m.OnFinishedLoading(func(err error) {
		finished = true
		loadErr = err
	})
	if err := loop.RunUntil(ctx, func() bool { return finished }); err != nil {
		return err
	}
	if loadErr != nil {
		return loadErr
	}
	if err := printRows(w, m); err != nil || !watch {
		return err
	}
	printChanges(w, m)
	if err := loop.Run(ctx); !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// printRows prints the size, type and name of every row, with the
// names of folders highlighted on terminals.
func printRows(w io.Writer, m treemodel.Model) error {
	out := termenv.NewOutput(w)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	treemodel.Foreach(m, func(m treemodel.Model, p treemodel.Path, it treemodel.Iter) bool {
		vs := treemodel.Get(m, it, columnName, columnSize, columnType)
		name := vs[0].Str()
		if vs[2].Str() == folderType {
			name = out.String(name).Bold().Foreground(out.Color("12")).String()
		}
		fmt.Fprintf(tw, "%d\t%s\t %s\n", vs[1].Int64(), vs[2].Str(), name)
		return false
	})
	return tw.Flush()
}

func rowName(m treemodel.Model, it treemodel.Iter) string {
	v := m.Value(it, columnName)
	defer treedata.Release(v)
	return v.Str()
}

// printChanges prints the changes of the rows of m as they happen.
func printChanges(w io.Writer, m treemodel.Model) {
	n := m.Notifier()
	n.OnRowInserted(func(p treemodel.Path, it treemodel.Iter) {
		fmt.Fprintf(w, "+ %s %s\n", p, rowName(m, it))
	})
	n.OnRowChanged(func(p treemodel.Path, it treemodel.Iter) {
		fmt.Fprintf(w, "~ %s %s\n", p, rowName(m, it))
	})
	n.OnRowDeleted(func(p treemodel.Path) {
		fmt.Fprintf(w, "- %s\n", p)
	})
	n.OnRowsReordered(func(p treemodel.Path, parent *treemodel.Iter, newOrder []int) {
		fmt.Fprintf(w, "reordered %v\n", newOrder)
	})
}
