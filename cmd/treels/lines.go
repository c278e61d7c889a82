// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"cogentcore.org/treemodel/liststore"
	"cogentcore.org/treemodel/treedata"
	"cogentcore.org/treemodel/treemodel"
)

func newLinesCmd() *cobra.Command {
	var desc bool
	cmd := &cobra.Command{
		Use:   "lines",
		Short: "Sort the lines of the standard input in collation order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return sortLines(cmd.InOrStdin(), cmd.OutOrStdout(), desc)
		},
	}
	cmd.Flags().BoolVar(&desc, "desc", false, "sort in descending order")
	return cmd
}

func sortLines(r io.Reader, w io.Writer, desc bool) error {
	s := liststore.NewKinds(treedata.String)
	defer s.Destroy()
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		s.InsertWithValues(s.Len(), []int{0}, []treedata.Value{treedata.NewString(sc.Text())})
	}
	if err := sc.Err(); err != nil {
		return err
	}
	order := treemodel.Ascending
	if desc {
		order = treemodel.Descending
	}
	s.SetSortColumnID(0, order)
	bw := bufio.NewWriter(w)
	treemodel.Foreach(s, func(m treemodel.Model, p treemodel.Path, it treemodel.Iter) bool {
		fmt.Fprintln(bw, m.Value(it, 0).Str())
		return false
	})
	return bw.Flush()
}
