// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package filemodel

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"cogentcore.org/treemodel/base/errors"
	"cogentcore.org/treemodel/filesys"
	"cogentcore.org/treemodel/mainloop"
	"cogentcore.org/treemodel/treedata"
)

// Options configure how a [Model] is loaded from a directory.
type Options struct {

	// BatchSize is the number of files requested at a time from
	// a native directory.
	BatchSize int

	// RemoteBatchSize is the number of files requested at a time
	// from a directory that is not native.
	RemoteBatchSize int

	// ThawDelay is how long files are collected before they are
	// shown, while loading.
	ThawDelay time.Duration

	// NoMonitor disables watching the directory for changes once
	// it has been enumerated.
	NoMonitor bool
}

// DefaultOptions returns the default loading options.
func DefaultOptions() Options {
	return Options{
		BatchSize:       5000,
		RemoteBatchSize: 100,
		ThawDelay:       50 * time.Millisecond,
	}
}

// Env is what a [Model] needs to load files in the background.
// The model is only touched by tasks posted to Loop, which must be
// run by the goroutine that uses the model.
type Env struct {
	Loop    *mainloop.Loop
	FS      filesys.FileSystem
	Options Options
}

// loader loads and monitors the files of a directory. Its goroutines
// never touch the model; they post tasks that check the context
// first, so that nothing is applied once the loader is closed.
type loader struct {
	m     *Model
	env   Env
	dir   filesys.File
	attrs filesys.Attributes

	ctx    context.Context
	cancel context.CancelFunc
	group  *errgroup.Group

	// thaw is the pending thaw of the loading freeze, if any.
	thaw *mainloop.Timer
}

// NewForDirectory returns a new model with the given column types,
// whose values are computed by fn, that lists the files of dir with
// the given attributes and then follows its changes. Loading runs in
// the background and the model is updated by tasks posted to
// env.Loop. Zero fields of env.Options take their default values.
func NewForDirectory(env Env, dir filesys.File, attrs filesys.Attributes, fn ValueFunc, types ...treedata.Type) *Model {
	m := New(fn, types...)
	m.startLoader(env, dir, attrs)
	m.loader.start()
	return m
}

// NewWithEnv returns a new model that is filled by hand, but that can
// also query files in the background with [Model.AddAndQueryFile].
func NewWithEnv(env Env, fn ValueFunc, types ...treedata.Type) *Model {
	m := New(fn, types...)
	m.startLoader(env, filesys.File{}, filesys.AttrAll)
	return m
}

func (m *Model) startLoader(env Env, dir filesys.File, attrs filesys.Attributes) {
	def := DefaultOptions()
	if env.Options.BatchSize <= 0 {
		env.Options.BatchSize = def.BatchSize
	}
	if env.Options.RemoteBatchSize <= 0 {
		env.Options.RemoteBatchSize = def.RemoteBatchSize
	}
	if env.Options.ThawDelay <= 0 {
		env.Options.ThawDelay = def.ThawDelay
	}
	l := &loader{m: m, env: env, dir: dir, attrs: attrs}
	l.ctx, l.cancel = context.WithCancel(context.Background())
	l.group, l.ctx = errgroup.WithContext(l.ctx)
	m.loader = l
}

// Dir returns the directory the model lists, which is zero for
// models filled by hand.
func (m *Model) Dir() filesys.File {
	if m.loader == nil {
		return filesys.File{}
	}
	return m.loader.dir
}

// OnFinishedLoading adds a function called once the directory has
// been enumerated, with the error that stopped it, if any. It is not
// called if the model is closed first.
func (m *Model) OnFinishedLoading(fun func(err error)) {
	m.finishedListeners = append(m.finishedListeners, fun)
}

// AddAndQueryFile queries the info of file in the background and
// then adds or updates it. Query errors are dropped.
func (m *Model) AddAndQueryFile(file filesys.File, attrs filesys.Attributes) {
	l := m.loader
	if l == nil || l.env.FS == nil || l.env.Loop == nil {
		errors.Precondition("filemodel.AddAndQueryFile", "model has no file system")
		return
	}
	l.group.Go(func() error {
		l.query(file, attrs)
		return nil
	})
}

// Close stops loading and monitoring and waits for the background
// goroutines to exit. It must be called on the goroutine that uses
// the model, which stays usable.
func (m *Model) Close() {
	l := m.loader
	if l == nil {
		return
	}
	l.cancel()
	if l.thaw.Stop() {
		m.Thaw()
	}
	l.thaw = nil
	errors.Log(l.group.Wait())
}

// post runs fn on the owner goroutine unless the loader is closed.
func (l *loader) post(fn func()) {
	l.env.Loop.Post(func() {
		if l.ctx.Err() != nil {
			return
		}
		fn()
	})
}

func (l *loader) batchSize() int {
	if l.dir.IsNative() {
		return l.env.Options.BatchSize
	}
	return l.env.Options.RemoteBatchSize
}

func (l *loader) start() {
	if l.env.FS == nil || l.env.Loop == nil {
		errors.Precondition("filemodel.NewForDirectory", "env needs a loop and a file system")
		return
	}
	l.group.Go(l.enumerate)
}

// enumerate lists the directory in batches, handing each batch to the
// owner goroutine and waiting for it to be added before the next one.
func (l *loader) enumerate() error {
	en, err := l.env.FS.EnumerateChildren(l.ctx, l.dir, l.attrs)
	if err != nil {
		if l.ctx.Err() == nil {
			l.post(func() { l.finished(err) })
		}
		return nil
	}
	defer en.Close()
	if !l.env.Options.NoMonitor {
		l.monitor()
	}
	size := l.batchSize()
	for {
		batch, err := en.NextBatch(l.ctx, size)
		if l.ctx.Err() != nil {
			return nil
		}
		if err != nil || len(batch) == 0 {
			l.post(func() { l.finished(err) })
			return nil
		}
		done := make(chan struct{})
		l.post(func() {
			l.gotFiles(batch)
			close(done)
		})
		select {
		case <-done:
		case <-l.ctx.Done():
			return nil
		}
	}
}

// gotFiles adds a batch of files, freezing the model until the thaw
// delay has elapsed so that views get the files in bulk.
func (l *loader) gotFiles(batch []filesys.Entry) {
	m := l.m
	if l.thaw == nil {
		m.Freeze()
		l.thaw = l.env.Loop.AfterFunc(l.env.Options.ThawDelay, func() {
			if l.ctx.Err() != nil {
				return
			}
			l.thaw = nil
			m.Thaw()
		})
	}
	for _, e := range batch {
		if e.Info == nil || e.Info.Name == "" {
			continue
		}
		if m.nodeForFile(e.File) != 0 {
			m.UpdateFile(e.File, e.Info)
			continue
		}
		m.add(e.File, e.Info)
	}
}

func (l *loader) finished(err error) {
	m := l.m
	if l.thaw.Stop() {
		m.Thaw()
	}
	l.thaw = nil
	if err != nil {
		slog.Debug("filemodel: enumeration failed", "dir", l.dir, "err", err)
	}
	for _, fun := range m.finishedListeners {
		fun(err)
	}
}

// monitor starts watching the directory, following its changes in
// a new goroutine until the loader is closed.
func (l *loader) monitor() {
	mon, err := l.env.FS.Watch(l.ctx, l.dir)
	if err != nil {
		if !errors.Is(err, filesys.ErrNotSupported) && l.ctx.Err() == nil {
			slog.Warn("filemodel: cannot monitor directory", "dir", l.dir, "err", err)
		}
		return
	}
	l.group.Go(func() error {
		defer mon.Close()
		for {
			select {
			case <-l.ctx.Done():
				return nil
			case ev, ok := <-mon.Events():
				if !ok {
					return nil
				}
				l.changed(ev)
			}
		}
	})
}

func (l *loader) changed(ev filesys.ChangeEvent) {
	switch ev.Type {
	case filesys.Created, filesys.Changed, filesys.AttributeChanged:
		l.query(ev.File, l.attrs)
	case filesys.Deleted:
		l.post(func() { l.m.Remove(ev.File) })
	}
}

// query gets the info of file and posts adding or updating it.
func (l *loader) query(file filesys.File, attrs filesys.Attributes) {
	info, err := l.env.FS.QueryInfo(l.ctx, file, attrs)
	if err != nil {
		if l.ctx.Err() == nil {
			slog.Debug("filemodel: dropping file", "file", file, "err", err)
		}
		return
	}
	l.post(func() { l.m.UpdateFile(file, info) })
}
