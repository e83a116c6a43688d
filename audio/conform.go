// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
)

// maxStalls bounds how many empty, error-free reads a source may return in
// a row before it is treated as stuck.
const maxStalls = 64

// Conform returns src adapted to the given rate and channel count. Stages
// are only added where the source differs. Channel reduction runs before
// resampling so the interpolator works on fewer channels.
func Conform(src Source, rate, channels int) (Source, error) {
	if rate <= 0 {
		return nil, ErrInvalidRate
	}
	if src.SampleRate() <= 0 {
		return nil, fmt.Errorf("source rate %d: %w", src.SampleRate(), ErrInvalidRate)
	}

	out := src
	mix := func() error {
		if out.Channels() == channels {
			return nil
		}
		m, err := NewChannelMixer(out, channels)
		if err != nil {
			return err
		}
		out = m
		return nil
	}

	if src.Channels() > channels {
		if err := mix(); err != nil {
			return nil, err
		}
	}
	if out.SampleRate() != rate {
		out = NewResampler(out, rate)
	}
	if err := mix(); err != nil {
		return nil, err
	}

	return out, nil
}

// ReadAll drains src into a single interleaved slice, reading bufSize
// samples at a time. A clean end of stream returns a nil error.
func ReadAll(src Source, bufSize int) ([]float32, error) {
	channels := src.Channels()
	if channels <= 0 {
		return nil, ErrUnsupportedChannelLayout
	}
	if bufSize < channels {
		bufSize = 4096
	}
	bufSize -= bufSize % channels

	out := make([]float32, 0, bufSize)
	buf := make([]float32, bufSize)
	stalls := 0

	for {
		n, err := src.ReadSamples(buf)
		if n > 0 {
			out = append(out, buf[:n]...)
			stalls = 0
		} else if err == nil {
			stalls++
			if stalls == maxStalls {
				return nil, ErrNoProgress
			}
		}

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading source: %w", err)
		}
	}

	// drop a trailing partial frame
	return out[:len(out)-len(out)%channels], nil
}
