// SPDX-License-Identifier: EPL-2.0

// Package samples holds decoded audio keyed by MIDI note.
//
// A Store is built once by a Loader, before playback starts, and is then
// read-only. The render path looks buffers up without locks and never
// decodes, resamples or allocates.
package samples
