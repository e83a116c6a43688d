// SPDX-License-Identifier: EPL-2.0

// Package audio provides the decode-side primitives used while samples are
// loaded, before any real-time playback starts.
//
// # Source Interface
//
// Every decoder and processing stage implements Source:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// Samples are interleaved float32 values in [-1.0, 1.0]. ReadSamples
// returns io.EOF once the stream is exhausted.
//
// # Conforming Samples
//
// The render engine mixes at one fixed rate and channel count, so each
// decoded sample is conformed once at load time:
//
//	src, _ := wav.Decoder{}.Decode(file)
//	conformed, err := audio.Conform(src, 48000, 2)
//	pcm, err := audio.ReadAll(conformed, 4096)
//
// Conform chains a Resampler (cubic interpolation) and a ChannelMixer
// (fold-down to mono, or mono fan-out) only where they are needed.
//
// # Format Registry
//
// Registry maps file extensions to decoders:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	decoder, ok := registry.Lookup("samples/kick.WAV")
//
// Keys are case-insensitive and a leading dot is ignored. The registry is
// safe for the concurrent lookups done by the parallel sample loader.
package audio
