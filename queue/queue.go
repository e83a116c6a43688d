// SPDX-License-Identifier: EPL-2.0

// Package queue carries note events from one producer goroutine to the
// audio thread without locks.
//
// Queue is a bounded ring with exactly the requested capacity. A push onto
// a full queue fails and the new event is dropped (reject-newest); queued
// events are never overwritten. Events carry no timestamp and take effect
// at the start of the next period that drains them.
package queue

import (
	"errors"
	"sync/atomic"
)

var ErrInvalidCapacity = errors.New("queue capacity must be at least 1")

// NoteEvent asks for the sample mapped to Note to start.
type NoteEvent struct {
	Note uint8
}

// Queue is a single-producer, single-consumer ring of NoteEvents.
//
// tail and head only ever grow. The producer writes the slot before it
// stores tail; the consumer loads tail before it reads the slot, so every
// event it sees is complete.
//
// TryPush belongs to the producer. DrainInto, Discard belong to the
// consumer. Len and Cap may be called from either side.
type Queue struct {
	tail  atomic.Uint64 // written by the producer
	_pad1 [56]byte
	head  atomic.Uint64 // written by the consumer
	_pad2 [56]byte

	slots []NoteEvent
	size  uint64
}

func New(capacity int) (*Queue, error) {
	if capacity < 1 {
		return nil, ErrInvalidCapacity
	}
	return &Queue{
		slots: make([]NoteEvent, capacity),
		size:  uint64(capacity),
	}, nil
}

// TryPush enqueues ev and reports whether there was room. It never blocks.
func (q *Queue) TryPush(ev NoteEvent) bool {
	t := q.tail.Load()
	if t-q.head.Load() == q.size {
		return false
	}
	q.slots[t%q.size] = ev
	q.tail.Store(t + 1)
	return true
}

// DrainInto calls fn for every event queued when it starts, oldest first,
// and returns how many it handled. Events pushed while it runs are left for
// the next call. It never blocks and returns 0 on an empty queue.
func (q *Queue) DrainInto(fn func(NoteEvent)) int {
	h := q.head.Load()
	t := q.tail.Load()
	for i := h; i != t; i++ {
		fn(q.slots[i%q.size])
		// release the slot as soon as it has been read
		q.head.Store(i + 1)
	}
	return int(t - h)
}

// Discard drops every queued event and returns how many there were.
func (q *Queue) Discard() int {
	h := q.head.Load()
	t := q.tail.Load()
	q.head.Store(t)
	return int(t - h)
}

// Len is a snapshot of the number of queued events.
func (q *Queue) Len() int {
	h := q.head.Load()
	return int(q.tail.Load() - h)
}

func (q *Queue) Cap() int { return int(q.size) }
