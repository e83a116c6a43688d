// SPDX-License-Identifier: EPL-2.0

//go:build !headless

package output

import (
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// oto allows one context per process.
var (
	contextOnce     sync.Once
	sharedContext   *oto.Context
	contextErr      error
	contextRate     int
	contextChannels int
)

func otoContext(sampleRate, channels int, buffer time.Duration) (*oto.Context, error) {
	contextOnce.Do(func() {
		ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: channels,
			Format:       oto.FormatFloat32LE,
			BufferSize:   buffer,
		})
		if err != nil {
			contextErr = err
			return
		}
		<-ready
		sharedContext = ctx
		contextRate, contextChannels = sampleRate, channels
	})
	if contextErr != nil {
		return nil, contextErr
	}
	if contextRate != sampleRate || contextChannels != channels {
		return nil, fmt.Errorf("audio device already open at %d Hz / %d ch (requested %d Hz / %d ch)",
			contextRate, contextChannels, sampleRate, channels)
	}
	return sharedContext, nil
}

// Player plays a Renderer on the default audio device.
type Player struct {
	player *oto.Player
	reader *StreamReader

	mu      sync.Mutex
	started bool
}

// NewPlayer opens the device at sampleRate with channels channels. The
// device buffer is sized to two periods.
func NewPlayer(sampleRate, channels, periodFrames int, r Renderer) (*Player, error) {
	reader, err := NewStreamReader(r, channels, periodFrames)
	if err != nil {
		return nil, err
	}
	if sampleRate < 1 {
		return nil, ErrInvalidPeriod
	}

	period := time.Duration(periodFrames) * time.Second / time.Duration(sampleRate)
	ctx, err := otoContext(sampleRate, channels, 2*period)
	if err != nil {
		return nil, fmt.Errorf("opening audio device: %w", err)
	}

	pl := ctx.NewPlayer(reader)
	pl.SetBufferSize(2 * reader.PeriodSamples() * 4)

	return &Player{
		player: pl,
		reader: reader,
	}, nil
}

func (p *Player) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		p.player.Play()
		p.started = true
	}
}

func (p *Player) IsStarted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.started
}

// Err reports a device error, if any.
func (p *Player) Err() error { return p.player.Err() }

func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.started = false
	if err := p.player.Close(); err != nil {
		return fmt.Errorf("closing audio player: %w", err)
	}
	return nil
}
