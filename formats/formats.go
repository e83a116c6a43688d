// SPDX-License-Identifier: EPL-2.0

// Package formats wires every bundled decoder into one registry.
package formats

import (
	"github.com/ik5/notetrig/audio"
	"github.com/ik5/notetrig/formats/aiff"
	"github.com/ik5/notetrig/formats/mp3"
	"github.com/ik5/notetrig/formats/vorbis"
	"github.com/ik5/notetrig/formats/wav"
)

// Registry returns a registry keyed by the file extensions each bundled
// decoder accepts.
func Registry() *audio.Registry {
	r := audio.NewRegistry()
	r.Register("wav", wav.Decoder{})
	r.Register("wave", wav.Decoder{})
	r.Register("aif", aiff.Decoder{})
	r.Register("aiff", aiff.Decoder{})
	r.Register("mp3", mp3.Decoder{})
	r.Register("ogg", vorbis.Decoder{})
	r.Register("oga", vorbis.Decoder{})
	return r
}
