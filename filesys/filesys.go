// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package filesys

import (
	"context"

	"cogentcore.org/treemodel/base/errors"
)

// ErrNotSupported is returned by a [FileSystem] for operations it
// cannot perform on a file, such as watching a directory.
var ErrNotSupported = errors.New("filesys: operation not supported")

// FileSystem is a source of files. Its methods may block and are
// called from background goroutines; a cancelled context makes them
// return an error satisfying errors.Is(err, context.Canceled).
type FileSystem interface {
	// EnumerateChildren starts listing the files of directory dir.
	EnumerateChildren(ctx context.Context, dir File, attrs Attributes) (Enumerator, error)

	// QueryInfo returns the information of a single file.
	QueryInfo(ctx context.Context, f File, attrs Attributes) (*Info, error)

	// Watch starts monitoring directory dir for changes. It returns
	// an error wrapping [ErrNotSupported] if that is not possible.
	Watch(ctx context.Context, dir File) (Monitor, error)
}

// Entry is a file returned by an [Enumerator].
type Entry struct {
	File File
	Info *Info
}

// Enumerator lists the files of a directory in batches.
type Enumerator interface {
	// NextBatch returns up to max more files. It returns no files
	// and a nil error once all files have been returned.
	NextBatch(ctx context.Context, max int) ([]Entry, error)

	// Close releases the enumerator.
	Close() error
}

// ChangeType is the kind of a [ChangeEvent].
type ChangeType int32

const (
	// Created is a new file in the directory.
	Created ChangeType = iota

	// Changed is a change to the contents of a file.
	Changed

	// AttributeChanged is a change to the metadata of a file.
	AttributeChanged

	// Deleted is a file removed from the directory.
	Deleted

	// Other is any other event, which is ignored.
	Other
)

func (t ChangeType) String() string {
	switch t {
	case Created:
		return "created"
	case Changed:
		return "changed"
	case AttributeChanged:
		return "attribute-changed"
	case Deleted:
		return "deleted"
	}
	return "other"
}

// ChangeEvent is a change to a file in a monitored directory.
type ChangeEvent struct {
	Type ChangeType
	File File
}

// Monitor delivers the changes to a directory.
type Monitor interface {
	// Events returns the channel of changes, which is closed when
	// the monitor is closed or its context is done.
	Events() <-chan ChangeEvent

	// Close stops monitoring.
	Close() error
}
