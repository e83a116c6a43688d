// SPDX-License-Identifier: EPL-2.0

// Package engine renders triggered samples into fixed-size periods.
//
// Two goroutines share an Engine. One producer calls Trigger; the audio
// thread calls Process once per period. The only state they share is the
// event queue and a set of atomic counters. Process does not lock, block,
// allocate or log.
package engine

import (
	"fmt"
	"sync/atomic"

	"github.com/ik5/notetrig/queue"
	"github.com/ik5/notetrig/samples"
	"github.com/ik5/notetrig/utils"
	"github.com/ik5/notetrig/voice"
)

// Stats is a snapshot of the engine counters. Drops are counted, never
// reported as errors.
type Stats struct {
	Triggered      uint64 // events accepted by the queue
	QueueFullDrops uint64 // triggers refused because the queue was full
	PolyphonyDrops uint64 // events drained while every voice was playing
	UnknownNotes   uint64 // events for notes without a sample
	Periods        uint64 // completed Process calls
	ActiveVoices   int    // voices playing after the last period
}

type Engine struct {
	store  *samples.Store
	pool   *voice.Pool
	events *queue.Queue

	channels   int
	sampleRate int
	clip       bool

	// e.handle, bound once in New
	onEvent func(queue.NoteEvent)

	stopped atomic.Bool

	triggered      atomic.Uint64
	queueFullDrops atomic.Uint64
	polyphonyDrops atomic.Uint64
	unknownNotes   atomic.Uint64
	periods        atomic.Uint64
	activeVoices   atomic.Int64
}

// New builds an engine over store. Every allocation the engine will ever
// make happens here.
//
// The output rate and channel count default to those shared by every
// buffer in store, or to DefaultSampleRate and DefaultChannels for an
// empty store. A store whose buffers disagree fails with ErrMixedFormat
// unless both WithSampleRate and WithChannels are given.
func New(store *samples.Store, opts ...Option) (*Engine, error) {
	if store == nil {
		return nil, ErrNilStore
	}

	cfg := config{
		polyphony:     DefaultPolyphony,
		queueCapacity: DefaultQueueCapacity,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if !cfg.sampleRateSet || !cfg.channelsSet {
		rate, channels, err := store.Format()
		switch {
		case store.Len() == 0:
			rate, channels = DefaultSampleRate, DefaultChannels
		case err != nil:
			return nil, fmt.Errorf("%w: %w", ErrMixedFormat, err)
		}
		if !cfg.sampleRateSet {
			cfg.sampleRate = rate
		}
		if !cfg.channelsSet {
			cfg.channels = channels
		}
	}

	switch {
	case cfg.channels < 1:
		return nil, fmt.Errorf("%w: channels %d", ErrInvalidSetting, cfg.channels)
	case cfg.sampleRate < 1:
		return nil, fmt.Errorf("%w: sample rate %d", ErrInvalidSetting, cfg.sampleRate)
	}

	pool, err := voice.NewPool(cfg.polyphony)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSetting, err)
	}
	events, err := queue.New(cfg.queueCapacity)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSetting, err)
	}

	e := &Engine{
		store:      store,
		pool:       pool,
		events:     events,
		channels:   cfg.channels,
		sampleRate: cfg.sampleRate,
		clip:       cfg.clip,
	}
	e.onEvent = e.handle
	return e, nil
}

// Trigger queues note for the next period. It never blocks and reports
// false when the queue is full or the engine is stopped. Only one
// goroutine may call Trigger.
func (e *Engine) Trigger(note uint8) bool {
	if e.stopped.Load() {
		return false
	}
	if !e.events.TryPush(queue.NoteEvent{Note: note}) {
		e.queueFullDrops.Add(1)
		return false
	}
	e.triggered.Add(1)
	return true
}

// Process renders one period into dst, which holds interleaved frames of
// Channels() samples each. A trailing partial frame is zeroed. Only the
// audio thread may call Process.
func (e *Engine) Process(dst []float32) {
	if e.stopped.Load() {
		e.pool.Reset()
		e.events.Discard()
		e.activeVoices.Store(0)
		clear(dst)
		return
	}

	e.events.DrainInto(e.onEvent)

	clear(dst)
	frames := len(dst) / e.channels
	e.pool.AdvanceAll(dst, e.channels, frames)

	if e.clip {
		for i, s := range dst {
			dst[i] = utils.Clamp(s)
		}
	}

	e.activeVoices.Store(int64(e.pool.Playing()))
	e.periods.Add(1)
}

func (e *Engine) handle(ev queue.NoteEvent) {
	b, ok := e.store.Lookup(ev.Note)
	if !ok {
		e.unknownNotes.Add(1)
		return
	}
	h, ok := e.pool.Acquire()
	if !ok {
		e.polyphonyDrops.Add(1)
		return
	}
	e.pool.Activate(h, ev.Note, b)
}

// Stop ends playback. Later triggers are refused; the audio thread
// silences every voice and discards queued events on its next period.
// Stop may be called from any goroutine.
func (e *Engine) Stop() { e.stopped.Store(true) }

func (e *Engine) Stopped() bool { return e.stopped.Load() }

// Stats may be called from any goroutine.
func (e *Engine) Stats() Stats {
	return Stats{
		Triggered:      e.triggered.Load(),
		QueueFullDrops: e.queueFullDrops.Load(),
		PolyphonyDrops: e.polyphonyDrops.Load(),
		UnknownNotes:   e.unknownNotes.Load(),
		Periods:        e.periods.Load(),
		ActiveVoices:   int(e.activeVoices.Load()),
	}
}

func (e *Engine) SampleRate() int    { return e.sampleRate }
func (e *Engine) Channels() int      { return e.channels }
func (e *Engine) Polyphony() int     { return e.pool.Cap() }
func (e *Engine) QueueCapacity() int { return e.events.Cap() }
func (e *Engine) Store() *samples.Store {
	return e.store
}
