// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"errors"
	"math/rand/v2"
	"slices"
	"sync"
	"testing"

	"github.com/ik5/notetrig/samples"
	"github.com/ik5/notetrig/voice"
)

func mono(t testing.TB, data ...float32) *samples.Buffer {
	t.Helper()

	b, err := samples.NewBuffer(data, 1, 48000)
	if err != nil {
		t.Fatalf("NewBuffer() error = %v", err)
	}
	return b
}

func newStore(t testing.TB, buffers map[uint8]*samples.Buffer) *samples.Store {
	t.Helper()

	s, err := samples.NewStore(buffers)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	return s
}

func newEngine(t testing.TB, store *samples.Store, opts ...Option) *Engine {
	t.Helper()

	e, err := New(store, opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return e
}

func assertPeriod(t *testing.T, period int, got, want []float32) {
	t.Helper()

	if !slices.Equal(got, want) {
		t.Errorf("period %d = %v, want %v", period, got, want)
	}
}

func TestNew_Defaults(t *testing.T) {
	t.Parallel()

	e := newEngine(t, newStore(t, map[uint8]*samples.Buffer{36: mono(t, 1)}))
	if e.Channels() != 1 || e.SampleRate() != 48000 {
		t.Errorf("format = %d ch @ %d, want the store's 1 ch @ 48000", e.Channels(), e.SampleRate())
	}
	if e.Polyphony() != DefaultPolyphony || e.QueueCapacity() != DefaultQueueCapacity {
		t.Errorf("Polyphony() = %d, QueueCapacity() = %d", e.Polyphony(), e.QueueCapacity())
	}

	empty := newEngine(t, newStore(t, nil))
	if empty.Channels() != DefaultChannels || empty.SampleRate() != DefaultSampleRate {
		t.Errorf("empty store format = %d ch @ %d", empty.Channels(), empty.SampleRate())
	}
}

func TestNew_Errors(t *testing.T) {
	t.Parallel()

	store := newStore(t, nil)
	tests := []struct {
		name    string
		store   *samples.Store
		opts    []Option
		wantErr error
	}{
		{"nil store", nil, nil, ErrNilStore},
		{"zero polyphony", store, []Option{WithPolyphony(0)}, ErrInvalidSetting},
		{"zero queue", store, []Option{WithQueueCapacity(0)}, ErrInvalidSetting},
		{"zero channels", store, []Option{WithChannels(0)}, ErrInvalidSetting},
		{"negative rate", store, []Option{WithSampleRate(-1)}, ErrInvalidSetting},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := New(tt.store, tt.opts...); !errors.Is(err, tt.wantErr) {
				t.Fatalf("New() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNew_MixedStoreFormat(t *testing.T) {
	t.Parallel()

	stereo, err := samples.NewBuffer([]float32{1, 1}, 2, 44100)
	if err != nil {
		t.Fatal(err)
	}
	store := newStore(t, map[uint8]*samples.Buffer{36: mono(t, 1), 38: stereo})

	tests := []struct {
		name    string
		opts    []Option
		wantErr error
	}{
		{"no overrides", nil, ErrMixedFormat},
		{"rate only", []Option{WithSampleRate(48000)}, ErrMixedFormat},
		{"channels only", []Option{WithChannels(2)}, ErrMixedFormat},
		{"both overrides", []Option{WithSampleRate(48000), WithChannels(2)}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e, err := New(store, tt.opts...)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("New() error = %v, want %v", err, tt.wantErr)
			}
			if err == nil && (e.SampleRate() != 48000 || e.Channels() != 2) {
				t.Errorf("format = %d Hz / %d ch, want 48000 / 2", e.SampleRate(), e.Channels())
			}
		})
	}
}

func TestEngine_TwoVoicesAcrossPeriods(t *testing.T) {
	t.Parallel()

	store := newStore(t, map[uint8]*samples.Buffer{
		36: mono(t, 1, 2, 3, 4),
		38: mono(t, 10, 20),
	})
	e := newEngine(t, store, WithPolyphony(2))

	e.Trigger(36)
	e.Trigger(38)

	out := make([]float32, 3)
	e.Process(out)
	assertPeriod(t, 1, out, []float32{11, 22, 3})
	if e.pool.State(1) != voice.Finished {
		t.Errorf("voice for note 38 = %v, want finished", e.pool.State(1))
	}

	e.Process(out)
	assertPeriod(t, 2, out, []float32{4, 0, 0})
	if e.pool.State(0) != voice.Finished {
		t.Errorf("voice for note 36 = %v, want finished", e.pool.State(0))
	}

	e.Process(out)
	assertPeriod(t, 3, out, []float32{0, 0, 0})

	st := e.Stats()
	if st.Triggered != 2 || st.Periods != 3 || st.ActiveVoices != 0 {
		t.Errorf("Stats() = %+v", st)
	}
}

func TestEngine_PolyphonyCeiling(t *testing.T) {
	t.Parallel()

	e := newEngine(t, newStore(t, map[uint8]*samples.Buffer{36: mono(t, 1, 1, 1, 1)}),
		WithPolyphony(1))

	e.Trigger(36)
	e.Trigger(36)

	out := make([]float32, 2)
	e.Process(out)
	assertPeriod(t, 1, out, []float32{1, 1})

	st := e.Stats()
	if st.ActiveVoices != 1 {
		t.Errorf("ActiveVoices = %d, want 1", st.ActiveVoices)
	}
	if st.PolyphonyDrops != 1 {
		t.Errorf("PolyphonyDrops = %d, want 1", st.PolyphonyDrops)
	}
}

func TestEngine_UnknownNoteIgnored(t *testing.T) {
	t.Parallel()

	e := newEngine(t, newStore(t, map[uint8]*samples.Buffer{36: mono(t, 1)}))
	if !e.Trigger(99) {
		t.Fatal("Trigger(99) = false, unknown notes still queue")
	}

	out := make([]float32, 4)
	e.Process(out)
	assertPeriod(t, 1, out, []float32{0, 0, 0, 0})
	if st := e.Stats(); st.UnknownNotes != 1 || st.ActiveVoices != 0 {
		t.Errorf("Stats() = %+v", st)
	}
}

func TestEngine_QueueFull(t *testing.T) {
	t.Parallel()

	e := newEngine(t, newStore(t, map[uint8]*samples.Buffer{36: mono(t, 1)}),
		WithQueueCapacity(2))

	if !e.Trigger(36) || !e.Trigger(36) {
		t.Fatal("Trigger() within capacity = false")
	}
	if e.Trigger(36) {
		t.Fatal("Trigger() on a full queue = true")
	}
	if st := e.Stats(); st.QueueFullDrops != 1 || st.Triggered != 2 {
		t.Errorf("Stats() = %+v", st)
	}

	e.Process(make([]float32, 2))
	if !e.Trigger(36) {
		t.Error("Trigger() after a drain = false")
	}
}

func TestEngine_OutputIsSilentWithoutVoices(t *testing.T) {
	t.Parallel()

	e := newEngine(t, newStore(t, nil))
	out := []float32{1, 2, 3, 4, 5}
	e.Process(out)
	// two stereo frames plus a dangling sample
	assertPeriod(t, 1, out, []float32{0, 0, 0, 0, 0})
}

func TestEngine_MonoSampleOnStereoOutput(t *testing.T) {
	t.Parallel()

	e := newEngine(t, newStore(t, map[uint8]*samples.Buffer{36: mono(t, 0.5, -0.5)}),
		WithChannels(2))
	e.Trigger(36)

	out := make([]float32, 6)
	e.Process(out)
	assertPeriod(t, 1, out, []float32{0.5, 0.5, -0.5, -0.5, 0, 0})
}

func TestEngine_Clipping(t *testing.T) {
	t.Parallel()

	store := newStore(t, map[uint8]*samples.Buffer{
		36: mono(t, 0.75, -0.75),
		38: mono(t, 0.75, -0.75),
	})

	tests := []struct {
		name string
		clip bool
		want []float32
	}{
		{"sums unclamped by default", false, []float32{1.5, -1.5}},
		{"clamps when enabled", true, []float32{1, -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e := newEngine(t, store, WithClipping(tt.clip))
			e.Trigger(36)
			e.Trigger(38)

			out := make([]float32, 2)
			e.Process(out)
			assertPeriod(t, 1, out, tt.want)
		})
	}
}

func TestEngine_RoundTripFinish(t *testing.T) {
	t.Parallel()

	const period = 4
	for _, frames := range []int{1, 3, 4, 5, 8, 13} {
		data := make([]float32, frames)
		for i := range data {
			data[i] = 1
		}
		e := newEngine(t, newStore(t, map[uint8]*samples.Buffer{60: mono(t, data...)}))
		e.Trigger(60)

		want := (frames + period - 1) / period
		out := make([]float32, period)
		consumed := 0
		for cb := 1; cb <= want+2; cb++ {
			e.Process(out)
			for _, s := range out {
				if s != 0 {
					consumed++
				}
			}
			finished := e.pool.State(0) == voice.Finished
			switch {
			case cb < want && finished:
				t.Fatalf("frames %d: finished at callback %d, want %d", frames, cb, want)
			case cb >= want && !finished:
				t.Fatalf("frames %d: not finished at callback %d", frames, cb)
			}
		}
		if consumed != frames {
			t.Errorf("frames %d: produced %d non-zero frames", frames, consumed)
		}
	}
}

func TestEngine_Deterministic(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(7, 11))
	buffers := map[uint8]*samples.Buffer{}
	for _, note := range []uint8{36, 38, 42, 46} {
		data := make([]float32, 2*(10+rng.IntN(200)))
		for i := range data {
			data[i] = rng.Float32()*2 - 1
		}
		b, err := samples.NewBuffer(data, 2, 48000)
		if err != nil {
			t.Fatal(err)
		}
		buffers[note] = b
	}
	store := newStore(t, buffers)

	// per period, the notes pushed before it
	script := make([][]uint8, 200)
	for i := range script {
		for range rng.IntN(4) {
			script[i] = append(script[i], []uint8{36, 38, 42, 46, 99}[rng.IntN(5)])
		}
	}

	run := func() []float32 {
		e := newEngine(t, store, WithPolyphony(3), WithQueueCapacity(4))
		var out []float32
		period := make([]float32, 2*32)
		for _, notes := range script {
			for _, n := range notes {
				e.Trigger(n)
			}
			e.Process(period)
			out = append(out, period...)
		}
		return out
	}

	if a, b := run(), run(); !slices.Equal(a, b) {
		t.Fatal("identical trigger scripts rendered different output")
	}
}

func TestEngine_Stop(t *testing.T) {
	t.Parallel()

	e := newEngine(t, newStore(t, map[uint8]*samples.Buffer{36: mono(t, 1, 1, 1, 1, 1, 1)}))
	e.Trigger(36)
	e.Process(make([]float32, 2))

	e.Trigger(36)
	e.Stop()
	if !e.Stopped() {
		t.Fatal("Stopped() = false after Stop")
	}
	if e.Trigger(36) {
		t.Fatal("Trigger() after Stop = true")
	}

	out := []float32{9, 9}
	e.Process(out)
	assertPeriod(t, 2, out, []float32{0, 0})
	if e.pool.Playing() != 0 || e.events.Len() != 0 {
		t.Errorf("after stop: %d playing, %d queued", e.pool.Playing(), e.events.Len())
	}
	if st := e.Stats(); st.ActiveVoices != 0 {
		t.Errorf("ActiveVoices = %d after stop", st.ActiveVoices)
	}
}

func TestEngine_ConcurrentTrigger(t *testing.T) {
	t.Parallel()

	e := newEngine(t, newStore(t, map[uint8]*samples.Buffer{36: mono(t, 0.001)}),
		WithPolyphony(4), WithQueueCapacity(8))

	const triggers = 10_000
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for range triggers {
			e.Trigger(36)
		}
	}()

	out := make([]float32, 64)
	for {
		e.Process(out)
		st := e.Stats()
		if st.Triggered+st.QueueFullDrops == triggers && e.events.Len() == 0 {
			break
		}
	}
	wg.Wait()

	st := e.Stats()
	if st.Triggered+st.QueueFullDrops != triggers {
		t.Errorf("triggered %d + dropped %d != %d", st.Triggered, st.QueueFullDrops, triggers)
	}
}

func TestEngine_ProcessDoesNotAllocate(t *testing.T) {
	data := make([]float32, 2*1<<14)
	b, _ := samples.NewBuffer(data, 2, 48000)
	e := newEngine(t, newStore(t, map[uint8]*samples.Buffer{36: b, 38: b}),
		WithPolyphony(8), WithClipping(true))
	out := make([]float32, 2*128)

	allocs := testing.AllocsPerRun(200, func() {
		e.Trigger(36)
		e.Trigger(38)
		e.Trigger(99)
		e.Process(out)
	})
	if allocs != 0 {
		t.Errorf("Process allocated %v times per run, want 0", allocs)
	}
}

func BenchmarkEngine_Process(b *testing.B) {
	data := make([]float32, 2*48000)
	buf, _ := samples.NewBuffer(data, 2, 48000)
	e := newEngine(b, newStore(b, map[uint8]*samples.Buffer{36: buf}), WithPolyphony(32))
	out := make([]float32, 2*256)

	b.ReportAllocs()
	for b.Loop() {
		e.Trigger(36)
		e.Process(out)
	}
}
