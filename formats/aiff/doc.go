// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF samples through github.com/go-audio/aiff.
//
// Big-endian integer PCM at 16, 24 and 32 bits is supported. The decoder
// returns an audio.Source producing normalized float32:
//
//	src, err := aiff.Decoder{}.Decode(file)
package aiff
