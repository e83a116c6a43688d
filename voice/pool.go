// SPDX-License-Identifier: EPL-2.0

package voice

import (
	"errors"

	"github.com/ik5/notetrig/samples"
)

var ErrInvalidCapacity = errors.New("voice pool capacity must be at least 1")

// Handle identifies a slot in a Pool.
type Handle int

// Pool holds a fixed number of voices. Free slots are handed out lowest
// index first, so the same trigger sequence always lands on the same slots.
type Pool struct {
	voices  []Voice
	playing int
}

func NewPool(capacity int) (*Pool, error) {
	if capacity < 1 {
		return nil, ErrInvalidCapacity
	}
	return &Pool{voices: make([]Voice, capacity)}, nil
}

// Acquire returns the lowest Idle or Finished slot. It reports false when
// every voice is Playing.
func (p *Pool) Acquire() (Handle, bool) {
	if p.playing == len(p.voices) {
		return -1, false
	}
	for i := range p.voices {
		if p.voices[i].state != Playing {
			return Handle(i), true
		}
	}
	return -1, false
}

// Activate starts b on the slot h from position 0.
func (p *Pool) Activate(h Handle, note uint8, b *samples.Buffer) {
	v := &p.voices[h]
	if v.state != Playing {
		p.playing++
	}
	v.Start(note, b)
}

// AdvanceAll mixes frames frames of every Playing voice into dst.
func (p *Pool) AdvanceAll(dst []float32, channels, frames int) {
	if p.playing == 0 {
		return
	}
	for i := range p.voices {
		v := &p.voices[i]
		if v.state != Playing {
			continue
		}
		v.Mix(dst, channels, frames)
		if v.state == Finished {
			p.playing--
		}
	}
}

// Reset stops every voice.
func (p *Pool) Reset() {
	for i := range p.voices {
		p.voices[i].Stop()
	}
	p.playing = 0
}

func (p *Pool) Playing() int { return p.playing }
func (p *Pool) Cap() int     { return len(p.voices) }

func (p *Pool) State(h Handle) State { return p.voices[h].state }
