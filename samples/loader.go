// SPDX-License-Identifier: EPL-2.0

package samples

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/ik5/notetrig/audio"
	"github.com/ik5/notetrig/internal/log"
)

// Mapping assigns the sample file at Path to a note.
type Mapping struct {
	Note int
	Path string
}

// Loader decodes a set of mappings into a Store. Every sample is conformed
// to SampleRate and Channels so the render path never converts formats.
// A zero SampleRate or Channels keeps what the file has.
type Loader struct {
	Registry    *audio.Registry
	SampleRate  int
	Channels    int
	Concurrency int // parallel decodes, 0 = GOMAXPROCS
	BufSize     int // read size while draining decoders, 0 = 4096

	// Open defaults to os.Open.
	Open func(path string) (io.ReadCloser, error)
	Log  *log.Logger
}

// Load decodes every mapping. The first failure cancels the remaining
// decodes and is returned as a *LoadError.
func (l *Loader) Load(ctx context.Context, mappings []Mapping) (*Store, error) {
	seen := make(map[int]string, len(mappings))
	for _, m := range mappings {
		if m.Note < 0 || m.Note > MaxNote {
			return nil, &LoadError{Note: clampNote(m.Note), Path: m.Path, Err: ErrNoteOutOfRange}
		}
		if prev, ok := seen[m.Note]; ok {
			return nil, &LoadError{
				Note: uint8(m.Note),
				Path: m.Path,
				Err:  fmt.Errorf("%w (already %q)", ErrDuplicateNote, prev),
			}
		}
		seen[m.Note] = m.Path
	}

	limit := l.Concurrency
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	buffers := make([]*Buffer, len(mappings))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, m := range mappings {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return &LoadError{Note: uint8(m.Note), Path: m.Path, Err: err}
			}
			b, err := l.loadOne(m.Path)
			if err != nil {
				return &LoadError{Note: uint8(m.Note), Path: m.Path, Err: err}
			}
			buffers[i] = b
			l.Log.With("note", m.Note).With("path", m.Path).Debugf("%d frames, %d ch @ %d Hz",
				b.Frames(), b.Channels(), b.SampleRate())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byNote := make(map[uint8]*Buffer, len(mappings))
	for i, m := range mappings {
		byNote[uint8(m.Note)] = buffers[i]
	}
	store, err := NewStore(byNote)
	if err != nil {
		return nil, err
	}

	l.Log.Infof("loaded %d samples", store.Len())
	return store, nil
}

func (l *Loader) loadOne(path string) (*Buffer, error) {
	if l.Registry == nil {
		return nil, ErrUnknownFormat
	}
	dec, ok := l.Registry.Lookup(path)
	if !ok {
		return nil, ErrUnknownFormat
	}

	open := l.Open
	if open == nil {
		open = func(p string) (io.ReadCloser, error) { return os.Open(p) }
	}
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	src, err := dec.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding: %w", err)
	}
	defer src.Close()

	if src.Channels() <= 0 {
		return nil, ErrNoChannels
	}

	rate, channels := l.SampleRate, l.Channels
	if rate <= 0 {
		rate = src.SampleRate()
	}
	if channels <= 0 {
		channels = src.Channels()
	}

	conformed, err := audio.Conform(src, rate, channels)
	if err != nil {
		return nil, err
	}

	bufSize := l.BufSize
	if bufSize <= 0 {
		bufSize = 4096
	}
	pcm, err := audio.ReadAll(conformed, bufSize)
	if err != nil {
		return nil, err
	}

	return NewBuffer(pcm, channels, rate)
}

func clampNote(n int) uint8 {
	if n < 0 {
		return 0
	}
	if n > 255 {
		return 255
	}
	return uint8(n)
}
