// SPDX-License-Identifier: EPL-2.0

// Package config reads the JSON file that maps notes to sample files.
//
//	{
//	  "samples_descr": [
//	    {"path": "kick.wav", "note": 36},
//	    {"path": "snare.wav", "note": 38}
//	  ],
//	  "sample_rate": 48000,
//	  "polyphony": 16
//	}
//
// Everything except samples_descr is optional. Relative sample paths are
// resolved against the directory of the config file.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ik5/notetrig/samples"
)

var (
	ErrNoSamples      = errors.New("config maps no samples")
	ErrInvalidNote    = errors.New("sample note must be between 0 and 127")
	ErrInvalidSetting = errors.New("invalid config setting")
)

// SampleDescr maps one sample file to a note.
type SampleDescr struct {
	Path string `json:"path"`
	Note int    `json:"note"`
}

type Config struct {
	Samples []SampleDescr `json:"samples_descr"`

	SampleRate    int  `json:"sample_rate,omitempty"`
	Channels      int  `json:"channels,omitempty"`
	PeriodFrames  int  `json:"period_frames,omitempty"`
	Polyphony     int  `json:"polyphony,omitempty"`
	QueueCapacity int  `json:"queue_capacity,omitempty"`
	Clip          bool `json:"clip,omitempty"`

	MIDIPort    string `json:"midi_port,omitempty"`
	MIDIChannel *int   `json:"midi_channel,omitempty"` // nil or -1 = every channel
}

// Default returns the engine settings used when the file leaves them out.
func Default() *Config {
	return &Config{
		SampleRate:    48000,
		Channels:      2,
		PeriodFrames:  256,
		Polyphony:     16,
		QueueCapacity: 64,
	}
}

// Load reads and validates the config at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return Parse(data, filepath.Dir(path))
}

// Parse decodes data over Default and validates the result. Relative
// sample paths are joined to baseDir.
func Parse(data []byte, baseDir string) (*Config, error) {
	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	for i, s := range cfg.Samples {
		if s.Path != "" && !filepath.IsAbs(s.Path) && baseDir != "" {
			cfg.Samples[i].Path = filepath.Join(baseDir, s.Path)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if len(c.Samples) == 0 {
		return ErrNoSamples
	}
	for i, s := range c.Samples {
		if s.Note < 0 || s.Note > samples.MaxNote {
			return fmt.Errorf("samples_descr[%d]: note %d: %w", i, s.Note, ErrInvalidNote)
		}
		if s.Path == "" {
			return fmt.Errorf("samples_descr[%d]: empty path: %w", i, ErrInvalidSetting)
		}
	}

	positive := []struct {
		name  string
		value int
	}{
		{"sample_rate", c.SampleRate},
		{"channels", c.Channels},
		{"period_frames", c.PeriodFrames},
		{"polyphony", c.Polyphony},
		{"queue_capacity", c.QueueCapacity},
	}
	for _, p := range positive {
		if p.value < 1 {
			return fmt.Errorf("%s = %d: %w", p.name, p.value, ErrInvalidSetting)
		}
	}

	if ch := c.Channel(); ch < -1 || ch > 15 {
		return fmt.Errorf("midi_channel = %d: %w", ch, ErrInvalidSetting)
	}
	return nil
}

// Channel is the 0-based MIDI channel to listen on, -1 for all.
func (c *Config) Channel() int {
	if c.MIDIChannel == nil {
		return -1
	}
	return *c.MIDIChannel
}

// Mappings converts the sample list for samples.Loader.
func (c *Config) Mappings() []samples.Mapping {
	out := make([]samples.Mapping, len(c.Samples))
	for i, s := range c.Samples {
		out[i] = samples.Mapping{Note: s.Note, Path: s.Path}
	}
	return out
}
