// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis samples through
// github.com/jfreymuth/oggvorbis. Vorbis decodes to float natively, so
// values pass through unchanged.
package vorbis
