// SPDX-License-Identifier: EPL-2.0

package samples

import "fmt"

// MaxNote is the highest MIDI note number a Store holds.
const MaxNote = 127

// Store maps note numbers to buffers. It is built once, before the audio
// thread starts, and offers no way to change it afterwards, so lookups
// from the render path need no synchronization.
type Store struct {
	slots [MaxNote + 1]*Buffer
	count int
}

// NewStore builds a Store from already decoded buffers.
func NewStore(buffers map[uint8]*Buffer) (*Store, error) {
	s := &Store{}
	for note, b := range buffers {
		if note > MaxNote {
			return nil, &LoadError{Note: note, Err: ErrNoteOutOfRange}
		}
		if b == nil {
			return nil, &LoadError{Note: note, Err: ErrEmptySample}
		}
		s.slots[note] = b
		s.count++
	}
	return s, nil
}

// Lookup returns the buffer for note. Unmapped notes, including anything
// above MaxNote, report false.
func (s *Store) Lookup(note uint8) (*Buffer, bool) {
	if note > MaxNote {
		return nil, false
	}
	b := s.slots[note]
	return b, b != nil
}

// Len is the number of mapped notes.
func (s *Store) Len() int { return s.count }

// Notes lists the mapped notes in ascending order.
func (s *Store) Notes() []uint8 {
	out := make([]uint8, 0, s.count)
	for n, b := range s.slots {
		if b != nil {
			out = append(out, uint8(n))
		}
	}
	return out
}

// Format reports the common rate and channel count of every buffer. It
// fails when buffers disagree or the store is empty.
func (s *Store) Format() (sampleRate, channels int, err error) {
	for n, b := range s.slots {
		if b == nil {
			continue
		}
		if sampleRate == 0 {
			sampleRate, channels = b.sampleRate, b.channels
			continue
		}
		if b.sampleRate != sampleRate || b.channels != channels {
			return 0, 0, fmt.Errorf("note %d is %d Hz / %d ch, store is %d Hz / %d ch",
				n, b.sampleRate, b.channels, sampleRate, channels)
		}
	}
	if sampleRate == 0 {
		return 0, 0, ErrEmptySample
	}
	return sampleRate, channels, nil
}
