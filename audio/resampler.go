// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/notetrig/utils"
)

// Resampler streams src at a new sample rate using cubic interpolation.
// Works on interleaved samples and preserves the channel count. A one-pole
// low-pass runs on the input when downsampling.
type Resampler struct {
	src      Source
	dstRate  int
	ratio    float64 // source frames per output frame
	channels int

	// hist[0] = t-1, hist[1] = t0, hist[2] = t+1, hist[3] = t+2
	hist  [4][]float32
	valid [4]bool
	pos   float64 // fractional position between hist[1] and hist[2]

	primed bool
	done   bool

	// chunked reads from src
	srcBuf []float32
	srcPos int
	srcLen int
	srcEOF bool

	useFilter   bool
	filterAlpha float32
	filterState []float32
	filterInit  bool
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()
	ratio := float64(src.SampleRate()) / float64(dstRate)

	chunk := src.BufSize()
	if chunk < channels {
		chunk = 4096
	}
	chunk -= chunk % channels

	r := &Resampler{
		src:         src,
		dstRate:     dstRate,
		ratio:       ratio,
		channels:    channels,
		srcBuf:      make([]float32, chunk),
		useFilter:   ratio > 1.0,
		filterAlpha: 0.5,
		filterState: make([]float32, channels),
	}
	for i := range r.hist {
		r.hist[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("closing resampler source: %w", err)
	}
	return nil
}

// readFrame copies the next source frame into dst. It returns false once
// the source is exhausted.
func (r *Resampler) readFrame(dst []float32) (bool, error) {
	stalls := 0
	for r.srcLen-r.srcPos < r.channels {
		if r.srcEOF {
			return false, nil
		}
		if stalls == maxStalls {
			return false, ErrNoProgress
		}
		// keep any partial frame at the front
		rest := copy(r.srcBuf, r.srcBuf[r.srcPos:r.srcLen])
		r.srcPos, r.srcLen = 0, rest

		n, err := r.src.ReadSamples(r.srcBuf[rest:])
		r.srcLen += n
		if n == 0 {
			stalls++
		}
		if err == io.EOF {
			r.srcEOF = true
		} else if err != nil {
			return false, fmt.Errorf("reading resampler source: %w", err)
		}
	}

	copy(dst, r.srcBuf[r.srcPos:r.srcPos+r.channels])
	r.srcPos += r.channels

	if r.useFilter {
		if !r.filterInit {
			copy(r.filterState, dst)
			r.filterInit = true
		}
		for c := range r.channels {
			dst[c] = r.filterAlpha*dst[c] + (1-r.filterAlpha)*r.filterState[c]
			r.filterState[c] = dst[c]
		}
	}

	return true, nil
}

// shift drops hist[0] and reads a new frame into hist[3].
func (r *Resampler) shift() error {
	first := r.hist[0]
	copy(r.hist[:], r.hist[1:])
	copy(r.valid[:], r.valid[1:])
	r.hist[3] = first

	ok, err := r.readFrame(r.hist[3])
	r.valid[3] = ok
	return err
}

func (r *Resampler) prime() error {
	r.primed = true
	for i := 1; i < 4; i++ {
		ok, err := r.readFrame(r.hist[i])
		if err != nil {
			return err
		}
		r.valid[i] = ok
		if !ok {
			break
		}
	}
	if !r.valid[1] {
		r.done = true
	}
	return nil
}

// ReadSamples produces interleaved samples at the destination rate.
// len(dst) must be a multiple of the channel count.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	frames := len(dst) / r.channels
	written := 0

	for written < frames {
		for r.pos >= 1.0 && !r.done {
			r.pos -= 1.0
			if err := r.shift(); err != nil {
				return written * r.channels, err
			}
			if !r.valid[1] {
				r.done = true
			}
		}
		// the last real frame is only emitted on an exact hit
		if r.done || (!r.valid[2] && r.pos > 0) {
			r.done = true
			break
		}

		y1 := r.hist[1]
		y0, y2, y3 := y1, y1, y1
		if r.valid[0] {
			y0 = r.hist[0]
		}
		if r.valid[2] {
			y2 = r.hist[2]
			y3 = y2
		}
		if r.valid[3] {
			y3 = r.hist[3]
		}

		alpha := float32(r.pos)
		out := dst[written*r.channels : (written+1)*r.channels]
		for c := range out {
			out[c] = utils.CubicInterpolate(y0[c], y1[c], y2[c], y3[c], alpha)
		}

		written++
		r.pos += r.ratio
	}

	if r.done {
		return written * r.channels, io.EOF
	}
	return written * r.channels, nil
}
