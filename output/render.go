// SPDX-License-Identifier: EPL-2.0

package output

// Render runs r for the given number of periods and returns everything it
// produced. When before is set it is called ahead of each period with the
// period index, which is where offline callers push their triggers. The
// result is the same for the same renderer state and hook.
func Render(r Renderer, channels, periodFrames, periods int, before func(period int)) ([]float32, error) {
	if channels < 1 || periodFrames < 1 {
		return nil, ErrInvalidPeriod
	}
	if periods < 0 {
		periods = 0
	}

	size := channels * periodFrames
	out := make([]float32, size*periods)
	for i := range periods {
		if before != nil {
			before(i)
		}
		r.Process(out[i*size : (i+1)*size])
	}
	return out, nil
}
