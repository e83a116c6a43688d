// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 samples through github.com/hajimehoshi/go-mp3.
//
// The decoder always yields two interleaved channels at the file's sample
// rate. Mono MP3s are duplicated onto both channels by go-mp3 itself, and
// audio.Conform folds them back down when the engine runs in mono.
package mp3
