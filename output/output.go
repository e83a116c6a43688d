// SPDX-License-Identifier: EPL-2.0

// Package output drives a Renderer from an audio device or an offline
// scheduler.
//
// Every driver calls Process with the same fixed period, whatever buffer
// sizes the device asks for, so the renderer sees one call per period.
package output

import (
	"encoding/binary"
	"errors"
	"math"
)

var ErrInvalidPeriod = errors.New("period and channel count must be positive")

// Renderer fills one period of interleaved float32 samples.
// *engine.Engine satisfies it.
type Renderer interface {
	Process(dst []float32)
}

// StreamReader turns periodic Process calls into a float32 little-endian
// byte stream, the format oto plays. Reads that end mid-period keep the
// rest of the period for the next Read. All memory is allocated up front
// and Read takes no locks; only one goroutine may read.
type StreamReader struct {
	r      Renderer
	period []float32
	pos    int // next unread sample in period
}

func NewStreamReader(r Renderer, channels, periodFrames int) (*StreamReader, error) {
	if channels < 1 || periodFrames < 1 {
		return nil, ErrInvalidPeriod
	}
	period := make([]float32, channels*periodFrames)
	return &StreamReader{
		r:      r,
		period: period,
		pos:    len(period),
	}, nil
}

// Read fills p with whole samples and never fails.
func (s *StreamReader) Read(p []byte) (int, error) {
	n := 0
	for len(p)-n >= 4 {
		if s.pos == len(s.period) {
			s.r.Process(s.period)
			s.pos = 0
		}
		k := min(len(s.period)-s.pos, (len(p)-n)/4)
		for _, v := range s.period[s.pos : s.pos+k] {
			binary.LittleEndian.PutUint32(p[n:], math.Float32bits(v))
			n += 4
		}
		s.pos += k
	}
	return n, nil
}

// PeriodSamples is the number of float32 values per Process call.
func (s *StreamReader) PeriodSamples() int { return len(s.period) }

// RendererFunc adapts a function to Renderer.
type RendererFunc func(dst []float32)

func (f RendererFunc) Process(dst []float32) { f(dst) }
