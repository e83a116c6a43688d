// SPDX-License-Identifier: EPL-2.0

package voice

import "github.com/ik5/notetrig/samples"

type State uint8

const (
	Idle State = iota
	Playing
	Finished
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Playing:
		return "playing"
	case Finished:
		return "finished"
	default:
		return "unknown"
	}
}

// Voice is one playback of a sample. The zero value is Idle.
type Voice struct {
	buf   *samples.Buffer
	pos   int // next frame to read
	note  uint8
	state State
}

// Start rewinds the voice onto b and marks it Playing.
func (v *Voice) Start(note uint8, b *samples.Buffer) {
	v.buf = b
	v.note = note
	v.pos = 0
	v.state = Playing
}

// Stop returns the voice to Idle and drops its sample reference.
func (v *Voice) Stop() {
	v.buf = nil
	v.pos = 0
	v.state = Idle
}

func (v *Voice) State() State  { return v.state }
func (v *Voice) Note() uint8   { return v.note }
func (v *Voice) Position() int { return v.pos }

// Mix adds up to frames frames of the sample into dst, which holds
// interleaved frames of the given channel count, and returns the number of
// frames consumed. Output channel c reads sample channel c modulo the
// sample's channel count. The voice becomes Finished in the same call that
// consumes its last frame and contributes nothing afterwards.
func (v *Voice) Mix(dst []float32, channels, frames int) int {
	if v.state != Playing {
		return 0
	}

	src := v.buf.Data()
	srcCh := v.buf.Channels()
	n := min(frames, v.buf.Frames()-v.pos, len(dst)/channels)
	if n < 0 {
		n = 0
	}

	if srcCh == channels {
		in := src[v.pos*srcCh : (v.pos+n)*srcCh]
		out := dst[:len(in)]
		for i, s := range in {
			out[i] += s
		}
	} else {
		for f := range n {
			in := src[(v.pos+f)*srcCh : (v.pos+f+1)*srcCh]
			out := dst[f*channels : (f+1)*channels]
			for c := range out {
				out[c] += in[c%srcCh]
			}
		}
	}

	v.pos += n
	if v.pos == v.buf.Frames() {
		v.state = Finished
	}
	return n
}
