// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mainloop

import "sync/atomic"

// queue is a lock-free FIFO queue of tasks, safe for any number
// of producers and one consumer. It must be initialized using
// [queue.init] before use.
type queue struct {
	head atomic.Pointer[queueTask]
	tail atomic.Pointer[queueTask]
	len  atomic.Int64
}

type queueTask struct {
	next atomic.Pointer[queueTask]
	fn   func()
}

func (q *queue) init() {
	head := &queueTask{}
	q.head.Store(head)
	q.tail.Store(head)
}

// pop removes and returns the next task in the queue.
// It returns nil if the queue is empty.
func (q *queue) pop() func() {
	var first, last, firstnext *queueTask
	for {
		first = q.head.Load()
		last = q.tail.Load()
		firstnext = first.next.Load()
		if first == q.head.Load() {
			if first == last {
				if firstnext == nil {
					return nil
				}
				q.tail.CompareAndSwap(last, firstnext)
			} else {
				fn := firstnext.fn
				if q.head.CompareAndSwap(first, firstnext) {
					// firstnext is the new sentinel
					firstnext.fn = nil
					q.len.Add(-1)
					return fn
				}
			}
		}
	}
}

// push adds a task to the end of the queue. The length is counted
// before the task is linked so that a concurrent pop never takes
// it below zero.
func (q *queue) push(fn func()) {
	t := &queueTask{fn: fn}
	q.len.Add(1)
	var last, lastnext *queueTask
	for {
		last = q.tail.Load()
		lastnext = last.next.Load()
		if q.tail.Load() == last {
			if lastnext == nil {
				if last.next.CompareAndSwap(lastnext, t) {
					q.tail.CompareAndSwap(last, t)
					return
				}
			} else {
				q.tail.CompareAndSwap(last, lastnext)
			}
		}
	}
}
