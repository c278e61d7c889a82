// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package filesys

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// osMonitor turns the fsnotify events of one directory into
// [ChangeEvent]s.
type osMonitor struct {
	dir     File
	watcher *fsnotify.Watcher
	events  chan ChangeEvent
	done    chan struct{}
	once    sync.Once
}

func watchDir(ctx context.Context, dir File, path string) (Monitor, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotSupported, err)
	}
	if err := watcher.Add(path); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("%w: %w", ErrNotSupported, err)
	}
	m := &osMonitor{
		dir:     dir,
		watcher: watcher,
		events:  make(chan ChangeEvent),
		done:    make(chan struct{}),
	}
	go m.watch(ctx)
	return m, nil
}

func (m *osMonitor) Events() <-chan ChangeEvent {
	return m.events
}

func (m *osMonitor) Close() error {
	var err error
	m.once.Do(func() {
		close(m.done)
		err = m.watcher.Close()
	})
	return err
}

// changeType maps an fsnotify operation onto a change type.
// Renames are seen from the old name, which no longer exists.
func changeType(op fsnotify.Op) ChangeType {
	switch {
	case op&fsnotify.Create == fsnotify.Create:
		return Created
	case op&fsnotify.Remove == fsnotify.Remove,
		op&fsnotify.Rename == fsnotify.Rename:
		return Deleted
	case op&fsnotify.Write == fsnotify.Write:
		return Changed
	case op&fsnotify.Chmod == fsnotify.Chmod:
		return AttributeChanged
	}
	return Other
}

func (m *osMonitor) watch(ctx context.Context) {
	defer close(m.events)
	defer m.Close()
	for {
		select {
		case <-ctx.Done():
			return
		case <-m.done:
			return
		case event, ok := <-m.watcher.Events:
			if !ok {
				return
			}
			ce := ChangeEvent{Type: changeType(event.Op), File: m.dir.Child(filepath.Base(event.Name))}
			select {
			case m.events <- ce:
			case <-ctx.Done():
				return
			case <-m.done:
				return
			}
		case err, ok := <-m.watcher.Errors:
			if !ok {
				return
			}
			slog.Debug("filesys: directory monitor error", "dir", m.dir, "err", err)
		}
	}
}
