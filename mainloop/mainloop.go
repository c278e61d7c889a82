// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mainloop provides [Loop], which runs tasks posted from any
// goroutine on the single goroutine that owns some state, such as a
// model and its views.
package mainloop

import (
	"context"
	"time"
)

// Loop is a queue of tasks that are run in the order they were
// posted by the goroutine that calls [Loop.Run], [Loop.RunUntil] or
// [Loop.RunPending]: the owner goroutine. Only one goroutine may
// run a loop at a time.
type Loop struct {
	tasks queue
	wake  chan struct{}
}

// New returns a new empty loop.
func New() *Loop {
	l := &Loop{wake: make(chan struct{}, 1)}
	l.tasks.init()
	return l
}

// Post adds fn to the end of the queue. It may be called from
// any goroutine.
func (l *Loop) Post(fn func()) {
	l.tasks.push(fn)
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Len returns the number of queued tasks.
func (l *Loop) Len() int {
	return int(l.tasks.len.Load())
}

// RunPending runs queued tasks until the queue is empty, including
// tasks posted by those tasks, and returns how many it ran.
func (l *Loop) RunPending() int {
	n := 0
	for {
		fn := l.tasks.pop()
		if fn == nil {
			return n
		}
		fn()
		n++
	}
}

// Run runs tasks as they are posted until ctx is done, returning
// the error of ctx.
func (l *Loop) Run(ctx context.Context) error {
	return l.RunUntil(ctx, func() bool { return false })
}

// RunUntil runs tasks as they are posted until done returns true,
// which is checked after every batch of tasks, or until ctx is done,
// in which case it returns the error of ctx.
func (l *Loop) RunUntil(ctx context.Context, done func() bool) error {
	for {
		l.RunPending()
		if done() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		}
	}
}

// Timer is a task scheduled with [Loop.AfterFunc].
type Timer struct {
	timer *time.Timer

	// stopped and fired are only used on the owner goroutine.
	stopped bool
	fired   bool
}

// AfterFunc posts fn to the loop once d has elapsed.
func (l *Loop) AfterFunc(d time.Duration, fn func()) *Timer {
	t := &Timer{}
	t.timer = time.AfterFunc(d, func() {
		l.Post(func() {
			if t.stopped {
				return
			}
			t.fired = true
			fn()
		})
	})
	return t
}

// Stop prevents the task from running, returning false if it has
// already run or been stopped. It must be called on the owner
// goroutine; after it returns the task is guaranteed not to run.
func (t *Timer) Stop() bool {
	if t == nil || t.stopped || t.fired {
		return false
	}
	t.stopped = true
	t.timer.Stop()
	return true
}
