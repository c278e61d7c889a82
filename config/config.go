// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config provides [Settings], the user settings of file
// models, which are stored as TOML, or as YAML for files with a
// .yaml or .yml extension.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/gobwas/glob"
	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"cogentcore.org/treemodel/filefilter"
	"cogentcore.org/treemodel/filemodel"
	"cogentcore.org/treemodel/treedata"
	"cogentcore.org/treemodel/treemodel"
)

// Sorts are the valid values of [Settings.Sort].
var Sorts = []string{"name", "size", "mtime", "none"}

// Duration is a [time.Duration] stored as a string such as "50ms".
type Duration time.Duration

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Settings are the settings of a file model.
type Settings struct {

	// ShowHidden is whether hidden and backup files are shown.
	ShowHidden bool `toml:"show_hidden" yaml:"show_hidden"`

	// ShowFolders is whether folders are shown.
	ShowFolders bool `toml:"show_folders" yaml:"show_folders"`

	// ShowFiles is whether files other than folders are shown.
	ShowFiles bool `toml:"show_files" yaml:"show_files"`

	// FilterFolders is whether the filter also applies to folders.
	FilterFolders bool `toml:"filter_folders" yaml:"filter_folders"`

	// Sort is the sort key: one of [Sorts].
	Sort string `toml:"sort" yaml:"sort"`

	// Descending reverses the sort.
	Descending bool `toml:"descending" yaml:"descending"`

	// FoldersFirst sorts folders before other files.
	FoldersFirst bool `toml:"folders_first" yaml:"folders_first"`

	// Patterns are shell style patterns of the names of the files
	// to show. Files match if they match any pattern or MIME type.
	Patterns []string `toml:"patterns,omitempty" yaml:"patterns,omitempty"`

	// MimeTypes are the MIME types of the files to show, such as
	// "image/*".
	MimeTypes []string `toml:"mime_types,omitempty" yaml:"mime_types,omitempty"`

	// Language is the BCP 47 language used to sort names, instead
	// of that of the user.
	Language string `toml:"language,omitempty" yaml:"language,omitempty"`

	Loader LoaderSettings `toml:"loader" yaml:"loader"`
}

// LoaderSettings are the settings of directory loading.
type LoaderSettings struct {
	BatchSize       int      `toml:"batch_size" yaml:"batch_size"`
	RemoteBatchSize int      `toml:"remote_batch_size" yaml:"remote_batch_size"`
	ThawDelay       Duration `toml:"thaw_delay" yaml:"thaw_delay"`

	// Monitor is whether directories are watched for changes.
	Monitor bool `toml:"monitor" yaml:"monitor"`
}

// Default returns the default settings.
func Default() *Settings {
	opts := filemodel.DefaultOptions()
	return &Settings{
		ShowFolders:  true,
		ShowFiles:    true,
		Sort:         "name",
		FoldersFirst: true,
		Loader: LoaderSettings{
			BatchSize:       opts.BatchSize,
			RemoteBatchSize: opts.RemoteBatchSize,
			ThawDelay:       Duration(opts.ThawDelay),
			Monitor:         true,
		},
	}
}

// Open reads settings from a TOML file, starting from [Default]
// for the values it does not set. A leading ~ in filename is the
// home directory.
func Open(filename string) (*Settings, error) {
	filename, err := homedir.Expand(filename)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	s := Default()
	if isYAML(filename) {
		err = yaml.Unmarshal(b, s)
	} else {
		err = toml.Unmarshal(b, s)
	}
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", filename, err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", filename, err)
	}
	return s, nil
}

// Save writes the settings to a TOML file, creating its directory
// if needed. A leading ~ in filename is the home directory.
func (s *Settings) Save(filename string) error {
	filename, err := homedir.Expand(filename)
	if err != nil {
		return err
	}
	var b []byte
	if isYAML(filename) {
		b, err = yaml.Marshal(s)
	} else {
		b, err = toml.Marshal(s)
	}
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0o644)
}

func isYAML(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return ext == ".yaml" || ext == ".yml"
}

// Validate returns an error if a setting has an invalid value.
func (s *Settings) Validate() error {
	if !slices.Contains(Sorts, s.Sort) {
		return fmt.Errorf("invalid sort %q, must be one of %v", s.Sort, Sorts)
	}
	for _, p := range s.Patterns {
		if _, err := glob.Compile(p); err != nil {
			return fmt.Errorf("invalid pattern %q: %w", p, err)
		}
	}
	if s.Language != "" {
		if _, err := language.Parse(s.Language); err != nil {
			return fmt.Errorf("invalid language %q: %w", s.Language, err)
		}
	}
	return nil
}

// Filter returns the filter of the patterns and MIME types, or nil
// if there are none.
func (s *Settings) Filter() *filefilter.Filter {
	if len(s.Patterns) == 0 && len(s.MimeTypes) == 0 {
		return nil
	}
	f := filefilter.New("settings")
	for _, p := range s.Patterns {
		f.AddPattern(p)
	}
	for _, mt := range s.MimeTypes {
		f.AddMimeType(mt)
	}
	return f
}

// CompareFunc returns the comparison function of the sort key,
// or nil if the files are not sorted.
func (s *Settings) CompareFunc() treemodel.CompareFunc {
	var fun treemodel.CompareFunc
	switch s.Sort {
	case "name":
		fun = filemodel.CompareName
	case "size":
		fun = filemodel.CompareSize
	case "mtime":
		fun = filemodel.CompareModTime
	default:
		return nil
	}
	if s.FoldersFirst {
		fun = filemodel.FoldersFirst(fun)
	}
	return fun
}

// Apply configures m with the settings. The sort is installed as
// the default sort function of m.
func (s *Settings) Apply(m *filemodel.Model) {
	if s.Language != "" {
		if tag, err := language.Parse(s.Language); err == nil {
			treedata.SetCollationLanguage(tag)
		}
	}
	m.Freeze()
	m.SetShowHidden(s.ShowHidden)
	m.SetShowFolders(s.ShowFolders)
	m.SetShowFiles(s.ShowFiles)
	m.SetFilterFolders(s.FilterFolders)
	m.SetFilter(s.Filter())
	order := treemodel.Ascending
	if s.Descending {
		order = treemodel.Descending
	}
	if fun := s.CompareFunc(); fun != nil {
		m.SetDefaultSortFunc(fun, nil)
		m.SetSortColumnID(treemodel.DefaultSortColumnID, order)
	} else {
		m.SetSortColumnID(treemodel.UnsortedSortColumnID, order)
	}
	m.Thaw()
}

// LoaderOptions returns the options for loading directories.
func (s *Settings) LoaderOptions() filemodel.Options {
	return filemodel.Options{
		BatchSize:       s.Loader.BatchSize,
		RemoteBatchSize: s.Loader.RemoteBatchSize,
		ThawDelay:       time.Duration(s.Loader.ThawDelay),
		NoMonitor:       !s.Loader.Monitor,
	}
}
