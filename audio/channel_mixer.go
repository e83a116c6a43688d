// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// ChannelMixer conforms a source to a target channel count. Many channels
// fold down to mono by averaging. Widening repeats the source channels in
// order, so output channel c carries source channel c modulo the source
// count; mono fans out to every output. Matching counts pass straight
// through. Folding down to anything but mono is not supported.
type ChannelMixer struct {
	src      Source
	channels int
	tmp      []float32
}

func NewChannelMixer(src Source, channels int) (*ChannelMixer, error) {
	in := src.Channels()
	if channels <= 0 || in <= 0 {
		return nil, ErrUnsupportedChannelLayout
	}
	if in > channels && channels != 1 {
		return nil, fmt.Errorf("%d -> %d channels: %w", in, channels, ErrUnsupportedChannelLayout)
	}

	return &ChannelMixer{
		src:      src,
		channels: channels,
		tmp:      make([]float32, 8192),
	}, nil
}

func (m *ChannelMixer) SampleRate() int { return m.src.SampleRate() }
func (m *ChannelMixer) Channels() int   { return m.channels }
func (m *ChannelMixer) BufSize() int    { return m.src.BufSize() }

func (m *ChannelMixer) Close() error {
	if err := m.src.Close(); err != nil {
		return fmt.Errorf("closing mixer source: %w", err)
	}
	return nil
}

func (m *ChannelMixer) ReadSamples(dst []float32) (int, error) {
	if len(dst)%m.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if len(dst) == 0 {
		return 0, nil
	}

	in := m.src.Channels()
	if in == m.channels {
		return m.src.ReadSamples(dst)
	}

	frames := len(dst) / m.channels
	need := frames * in
	if cap(m.tmp) < need {
		m.tmp = make([]float32, need)
	}
	m.tmp = m.tmp[:need]

	n, err := m.src.ReadSamples(m.tmp)
	got := n / in

	if m.channels == 1 {
		inv := 1 / float32(in)
		for f := range got {
			var sum float32
			for _, s := range m.tmp[f*in : (f+1)*in] {
				sum += s
			}
			dst[f] = sum * inv
		}
		return got, err
	}

	for f := range got {
		frame := m.tmp[f*in : (f+1)*in]
		out := dst[f*m.channels : (f+1)*m.channels]
		for c := range out {
			out[c] = frame[c%in]
		}
	}
	return got * m.channels, err
}
