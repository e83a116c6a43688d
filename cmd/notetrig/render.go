// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ik5/notetrig"
	"github.com/ik5/notetrig/config"
	"github.com/ik5/notetrig/formats/wav"
	"github.com/ik5/notetrig/internal/log"
	"github.com/ik5/notetrig/output"
	"github.com/ik5/notetrig/utils"
)

func parseNotes(s string) ([]uint8, error) {
	var notes []uint8
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		n, err := strconv.ParseUint(f, 10, 8)
		if err != nil || n > 127 {
			return nil, fmt.Errorf("invalid note %q", f)
		}
		notes = append(notes, uint8(n))
	}
	return notes, nil
}

// schedule returns, per period, the notes due at its start. Note i is due
// at i*step.
func schedule(notes []uint8, step time.Duration, sampleRate, periodFrames, periods int) [][]uint8 {
	out := make([][]uint8, periods)
	for i, n := range notes {
		frame := int64(time.Duration(i)*step) * int64(sampleRate) / int64(time.Second)
		p := int(frame / int64(periodFrames))
		if p >= periods {
			break
		}
		out[p] = append(out[p], n)
	}
	return out
}

func renderOffline(s *notetrig.Sampler, cfg *config.Config, o options, logger *log.Logger) error {
	notes, err := parseNotes(o.notes)
	if err != nil {
		return err
	}
	if len(notes) == 0 {
		notes = s.Store.Notes()
	}

	eng := s.Engine
	rate, channels := eng.SampleRate(), eng.Channels()
	periods := int(math.Ceil(o.seconds * float64(rate) / float64(cfg.PeriodFrames)))
	due := schedule(notes, o.step, rate, cfg.PeriodFrames, periods)

	pcm, err := output.Render(eng, channels, cfg.PeriodFrames, periods, func(p int) {
		for _, n := range due[p] {
			eng.Trigger(n)
		}
	})
	if err != nil {
		return err
	}

	ints := make([]int16, len(pcm))
	for i, v := range pcm {
		ints[i] = utils.Float32ToInt16(v)
	}

	f, err := os.Create(o.renderPath)
	if err != nil {
		return err
	}
	if err := wav.WriteWAV16(f, rate, channels, ints); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", o.renderPath, err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	logger.Infof("rendered %d notes, %d periods to %s", len(notes), periods, o.renderPath)
	logStats(logger, s)
	return nil
}
