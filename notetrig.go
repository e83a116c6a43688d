// SPDX-License-Identifier: EPL-2.0

package notetrig

import (
	"context"
	"fmt"
	"time"

	"github.com/ik5/notetrig/config"
	"github.com/ik5/notetrig/engine"
	"github.com/ik5/notetrig/formats"
	"github.com/ik5/notetrig/internal/log"
	"github.com/ik5/notetrig/samples"
)

// Sampler is a loaded sample store and the engine playing it.
type Sampler struct {
	Store  *samples.Store
	Engine *engine.Engine
}

// Open decodes every sample in cfg and builds an engine for it.
func Open(ctx context.Context, cfg *config.Config, logger *log.Logger) (*Sampler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	loader := &samples.Loader{
		Registry:   formats.Registry(),
		SampleRate: cfg.SampleRate,
		Channels:   cfg.Channels,
		Log:        logger,
	}
	store, err := loader.Load(ctx, cfg.Mappings())
	if err != nil {
		return nil, err
	}
	logger.Debugf("decoded %d samples in %s", store.Len(), time.Since(start).Round(time.Millisecond))

	eng, err := engine.New(store,
		engine.WithSampleRate(cfg.SampleRate),
		engine.WithChannels(cfg.Channels),
		engine.WithPolyphony(cfg.Polyphony),
		engine.WithQueueCapacity(cfg.QueueCapacity),
		engine.WithClipping(cfg.Clip),
	)
	if err != nil {
		return nil, fmt.Errorf("creating engine: %w", err)
	}

	return &Sampler{Store: store, Engine: eng}, nil
}

// Trigger queues note for the next period. See engine.Engine.Trigger.
func (s *Sampler) Trigger(note uint8) bool { return s.Engine.Trigger(note) }

// Process renders one period. See engine.Engine.Process.
func (s *Sampler) Process(dst []float32) { s.Engine.Process(dst) }

func (s *Sampler) Stop() { s.Engine.Stop() }
