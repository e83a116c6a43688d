// SPDX-License-Identifier: EPL-2.0

package samples

import (
	"errors"
	"fmt"
)

var (
	ErrEmptySample    = errors.New("sample decoded to zero frames")
	ErrNoChannels     = errors.New("sample has no channels")
	ErrPartialFrame   = errors.New("sample data is not a whole number of frames")
	ErrInvalidRate    = errors.New("sample rate must be positive")
	ErrUnknownFormat  = errors.New("no decoder for file extension")
	ErrNoteOutOfRange = errors.New("note must be between 0 and 127")
	ErrDuplicateNote  = errors.New("note is mapped more than once")
)

// LoadError reports which mapping failed while building a Store. It is
// only produced before playback starts.
type LoadError struct {
	Note uint8
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("loading note %d: %v", e.Note, e.Err)
	}
	return fmt.Sprintf("loading note %d from %q: %v", e.Note, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }
