// SPDX-License-Identifier: EPL-2.0

// Package voice plays samples back frame by frame.
//
// A Voice is a read cursor into a samples.Buffer. A Pool is a fixed set of
// voices that caps polyphony. Both are owned by the audio thread: nothing
// here locks, blocks or allocates after NewPool returns.
package voice
