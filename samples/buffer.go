// SPDX-License-Identifier: EPL-2.0

package samples

// Buffer is a decoded sample: interleaved float32 frames at a fixed rate
// and channel count. A Buffer is never modified after construction, so any
// number of voices may read it concurrently.
type Buffer struct {
	data       []float32
	channels   int
	sampleRate int
}

// NewBuffer validates data and takes ownership of it. Callers must not
// modify data afterwards.
func NewBuffer(data []float32, channels, sampleRate int) (*Buffer, error) {
	switch {
	case channels <= 0:
		return nil, ErrNoChannels
	case sampleRate <= 0:
		return nil, ErrInvalidRate
	case len(data) == 0:
		return nil, ErrEmptySample
	case len(data)%channels != 0:
		return nil, ErrPartialFrame
	}

	return &Buffer{
		data:       data,
		channels:   channels,
		sampleRate: sampleRate,
	}, nil
}

// Frames is the number of whole frames in the buffer.
func (b *Buffer) Frames() int { return len(b.data) / b.channels }

func (b *Buffer) Channels() int   { return b.channels }
func (b *Buffer) SampleRate() int { return b.sampleRate }

// Data exposes the interleaved samples. The slice is shared; treat it as
// read-only.
func (b *Buffer) Data() []float32 { return b.data }
