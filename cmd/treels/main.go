// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command treels lists a directory through a file model, optionally
// following its changes.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"cogentcore.org/treemodel/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

type options struct {
	config        string
	hidden        bool
	noFolders     bool
	noFiles       bool
	filterFolders bool
	patterns      []string
	mimeTypes     []string
	sort          string
	desc          bool
	watch         bool
}

func newRootCmd() *cobra.Command {
	var o options
	cmd := &cobra.Command{
		Use:   "treels [dir]",
		Short: "List a directory through a file model",
		Long: `treels lists the visible files of a directory, by default the current one,
after loading it the way a file chooser does. With --watch it then prints
the changes of the rows until interrupted.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			s, err := o.settings(cmd)
			if err != nil {
				return err
			}
			return list(cmd.Context(), cmd.OutOrStdout(), dir, s, o.watch)
		},
	}
	f := cmd.Flags()
	f.StringVar(&o.config, "config", "", "settings file to start from")
	f.BoolVar(&o.hidden, "hidden", false, "show hidden and backup files")
	f.BoolVar(&o.noFolders, "no-folders", false, "hide folders")
	f.BoolVar(&o.noFiles, "no-files", false, "hide files other than folders")
	f.BoolVar(&o.filterFolders, "filter-folders", false, "apply the patterns and MIME types to folders too")
	f.StringArrayVar(&o.patterns, "pattern", nil, "show only files matching the pattern, such as *.go")
	f.StringArrayVar(&o.mimeTypes, "mime", nil, "show only files of the MIME type, such as image/*")
	f.StringVar(&o.sort, "sort", "name", "sort key: name, size, mtime or none")
	f.BoolVar(&o.desc, "desc", false, "sort in descending order")
	f.BoolVar(&o.watch, "watch", false, "print changes until interrupted")
	cmd.AddCommand(newLinesCmd())
	return cmd
}

// settings returns the settings of the config file, or the default
// ones, overridden by the flags that were set.
func (o *options) settings(cmd *cobra.Command) (*config.Settings, error) {
	s := config.Default()
	if o.config != "" {
		var err error
		s, err = config.Open(o.config)
		if err != nil {
			return nil, err
		}
	}
	f := cmd.Flags()
	if f.Changed("hidden") {
		s.ShowHidden = o.hidden
	}
	if f.Changed("no-folders") {
		s.ShowFolders = !o.noFolders
	}
	if f.Changed("no-files") {
		s.ShowFiles = !o.noFiles
	}
	if f.Changed("filter-folders") {
		s.FilterFolders = o.filterFolders
	}
	if f.Changed("pattern") {
		s.Patterns = o.patterns
	}
	if f.Changed("mime") {
		s.MimeTypes = o.mimeTypes
	}
	if f.Changed("sort") {
		s.Sort = o.sort
	}
	if f.Changed("desc") {
		s.Descending = o.desc
	}
	s.Loader.Monitor = o.watch
	return s, s.Validate()
}
