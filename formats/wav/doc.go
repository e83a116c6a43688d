// SPDX-License-Identifier: EPL-2.0

// Package wav decodes WAV samples and writes 16-bit PCM WAV files.
//
// Decoding is done by github.com/go-audio/wav. Integer PCM at 16, 24 and
// 32 bits is accepted, with any channel count and sample rate, including
// WAVE_FORMAT_EXTENSIBLE headers. IEEE float WAV is rejected with
// ErrUnsupportedEncoding.
//
//	src, err := wav.Decoder{}.Decode(file)
//
// Inputs that cannot seek are buffered in memory first, since the decoder
// has to move between RIFF chunks.
//
// WriteWAV16 writes interleaved 16-bit PCM, which is what offline renders
// produce:
//
//	err := wav.WriteWAV16(file, 48000, 2, pcm16)
package wav
