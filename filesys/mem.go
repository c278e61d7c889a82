// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package filesys

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"slices"
	"strings"
	"sync"
)

// Mem is an in-memory [FileSystem] for files of any URI scheme,
// mostly for tests and for models of virtual locations. Every
// change made through it is reported to its monitors. It is safe
// for concurrent use.
type Mem struct {
	mu       sync.Mutex
	files    map[File]*Info
	errs     map[File]error
	monitors map[File][]*memMonitor
}

// NewMem returns a new empty in-memory file system.
func NewMem() *Mem {
	return &Mem{
		files:    map[File]*Info{},
		errs:     map[File]error{},
		monitors: map[File][]*memMonitor{},
	}
}

// MemFile returns the file "mem:///" followed by the given path.
func MemFile(path string) File {
	return File{uri: "mem:///" + strings.TrimPrefix(path, "/")}
}

// Add adds or replaces a file with a copy of the given info,
// whose Name is set from the file.
func (m *Mem) Add(f File, info *Info) {
	info = info.Clone()
	info.Name = f.Basename()
	if info.DisplayName == "" {
		info.DisplayName = info.Name
	}
	m.mu.Lock()
	_, existed := m.files[f]
	m.files[f] = info
	m.mu.Unlock()
	if existed {
		m.notify(ChangeEvent{Type: Changed, File: f})
	} else {
		m.notify(ChangeEvent{Type: Created, File: f})
	}
}

// AddDir adds a directory.
func (m *Mem) AddDir(f File) {
	info := NewInfo(f.Basename(), TypeDirectory)
	info.ContentType = mimeDirectory
	m.Add(f, info)
}

// AddFile adds a regular file of the given size, with a content
// type guessed from its name.
func (m *Mem) AddFile(f File, size int64) {
	info := NewInfo(f.Basename(), TypeRegular)
	info.Size = size
	info.ContentType = ContentTypeForName(info.Name)
	if info.ContentType == "" {
		info.ContentType = mimeBinary
	}
	m.Add(f, info)
}

// Remove removes a file.
func (m *Mem) Remove(f File) {
	m.mu.Lock()
	_, existed := m.files[f]
	delete(m.files, f)
	m.mu.Unlock()
	if existed {
		m.notify(ChangeEvent{Type: Deleted, File: f})
	}
}

// SetError makes enumerating or querying f fail with err,
// or succeed again if err is nil.
func (m *Mem) SetError(f File, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.errs, f)
		return
	}
	m.errs[f] = err
}

func (m *Mem) notify(ev ChangeEvent) {
	dir, ok := ev.File.Parent()
	if !ok {
		return
	}
	m.mu.Lock()
	mons := slices.Clone(m.monitors[dir])
	m.mu.Unlock()
	for _, mon := range mons {
		mon.send(ev)
	}
}

func (m *Mem) EnumerateChildren(ctx context.Context, dir File, attrs Attributes) (Enumerator, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.errs[dir]; err != nil {
		return nil, err
	}
	if info, ok := m.files[dir]; !ok || !info.IsDir() {
		return nil, fmt.Errorf("filesys: enumerate %s: %w", dir, fs.ErrNotExist)
	}
	var entries []Entry
	for f, info := range m.files {
		if f.HasParent(dir) {
			entries = append(entries, Entry{File: f, Info: info.Clone()})
		}
	}
	slices.SortFunc(entries, func(a, b Entry) int {
		return strings.Compare(a.File.uri, b.File.uri)
	})
	return &memEnumerator{entries: entries}, nil
}

func (m *Mem) QueryInfo(ctx context.Context, f File, attrs Attributes) (*Info, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.errs[f]; err != nil {
		return nil, err
	}
	info, ok := m.files[f]
	if !ok {
		return nil, fmt.Errorf("filesys: query %s: %w", f, fs.ErrNotExist)
	}
	return info.Clone(), nil
}

func (m *Mem) Watch(ctx context.Context, dir File) (Monitor, error) {
	mon := &memMonitor{fs: m, dir: dir, events: make(chan ChangeEvent, 256)}
	m.mu.Lock()
	m.monitors[dir] = append(m.monitors[dir], mon)
	m.mu.Unlock()
	context.AfterFunc(ctx, func() { mon.Close() })
	return mon, nil
}

type memEnumerator struct {
	entries []Entry
	closed  bool
}

func (e *memEnumerator) NextBatch(ctx context.Context, max int) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if e.closed {
		return nil, fs.ErrClosed
	}
	n := min(max, len(e.entries))
	batch := e.entries[:n]
	e.entries = e.entries[n:]
	return batch, nil
}

func (e *memEnumerator) Close() error {
	e.closed = true
	return nil
}

type memMonitor struct {
	fs     *Mem
	dir    File
	mu     sync.Mutex
	events chan ChangeEvent
	closed bool
}

func (mm *memMonitor) Events() <-chan ChangeEvent {
	return mm.events
}

func (mm *memMonitor) send(ev ChangeEvent) {
	mm.mu.Lock()
	defer mm.mu.Unlock()
	if mm.closed {
		return
	}
	select {
	case mm.events <- ev:
	default:
		slog.Warn("filesys.Mem: dropping change event for slow monitor", "file", ev.File, "type", ev.Type)
	}
}

func (mm *memMonitor) Close() error {
	mm.mu.Lock()
	defer mm.mu.Unlock()
	if mm.closed {
		return nil
	}
	mm.closed = true
	close(mm.events)
	mm.fs.mu.Lock()
	mm.fs.monitors[mm.dir] = slices.DeleteFunc(mm.fs.monitors[mm.dir], func(o *memMonitor) bool { return o == mm })
	mm.fs.mu.Unlock()
	return nil
}
