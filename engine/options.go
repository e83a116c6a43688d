// SPDX-License-Identifier: EPL-2.0

package engine

type Option func(*config)

type config struct {
	polyphony     int
	queueCapacity int
	channels      int
	sampleRate    int
	clip          bool

	channelsSet   bool
	sampleRateSet bool
}

const (
	DefaultPolyphony     = 16
	DefaultQueueCapacity = 64
	DefaultChannels      = 2
	DefaultSampleRate    = 48000
)

// WithPolyphony sets how many voices may play at once.
func WithPolyphony(n int) Option {
	return func(cfg *config) {
		cfg.polyphony = n
	}
}

// WithQueueCapacity sets how many triggers may wait between two periods.
func WithQueueCapacity(n int) Option {
	return func(cfg *config) {
		cfg.queueCapacity = n
	}
}

// WithChannels sets the interleaved channel count of the output. It
// defaults to the channel count of the store.
func WithChannels(n int) Option {
	return func(cfg *config) {
		cfg.channels = n
		cfg.channelsSet = true
	}
}

// WithSampleRate records the output rate. The engine does not resample;
// it defaults to the rate of the store.
func WithSampleRate(hz int) Option {
	return func(cfg *config) {
		cfg.sampleRate = hz
		cfg.sampleRateSet = true
	}
}

// WithClipping clamps the mixed output to [-1, 1]. Off by default, so
// overlapping voices sum without limiting.
func WithClipping(enabled bool) Option {
	return func(cfg *config) {
		cfg.clip = enabled
	}
}
