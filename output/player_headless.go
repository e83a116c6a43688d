// SPDX-License-Identifier: EPL-2.0

//go:build headless

package output

import (
	"sync"
	"time"
)

// Player drives a Renderer from a ticker and throws the audio away. It
// keeps the real-time call pattern on machines without a sound device.
type Player struct {
	reader *StreamReader
	period time.Duration
	scrap  []byte

	mu      sync.Mutex
	started bool
	done    chan struct{}
	wg      sync.WaitGroup
}

func NewPlayer(sampleRate, channels, periodFrames int, r Renderer) (*Player, error) {
	reader, err := NewStreamReader(r, channels, periodFrames)
	if err != nil {
		return nil, err
	}
	if sampleRate < 1 {
		return nil, ErrInvalidPeriod
	}

	return &Player{
		reader: reader,
		period: time.Duration(periodFrames) * time.Second / time.Duration(sampleRate),
		scrap:  make([]byte, reader.PeriodSamples()*4),
	}, nil
}

func (p *Player) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return
	}
	p.started = true
	p.done = make(chan struct{})

	p.wg.Add(1)
	go p.run(p.done)
}

func (p *Player) run(done <-chan struct{}) {
	defer p.wg.Done()

	t := time.NewTicker(p.period)
	defer t.Stop()

	for {
		select {
		case <-done:
			return
		case <-t.C:
			p.reader.Read(p.scrap)
		}
	}
}

func (p *Player) IsStarted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.started
}

func (p *Player) Err() error { return nil }

func (p *Player) Close() error {
	p.mu.Lock()
	if p.started {
		close(p.done)
		p.started = false
	}
	p.mu.Unlock()

	p.wg.Wait()
	return nil
}
