// SPDX-License-Identifier: EPL-2.0

// Command notetrig plays samples from a JSON kit when MIDI notes arrive.
//
//	notetrig -config kit.json               # play until Enter
//	notetrig -config kit.json -tui          # same, with a status view
//	notetrig -list-ports
//	notetrig -config kit.json -render out.wav -notes 36,38,42 -step 250ms
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ik5/notetrig"
	"github.com/ik5/notetrig/config"
	"github.com/ik5/notetrig/internal/log"
	"github.com/ik5/notetrig/internal/monitor"
	"github.com/ik5/notetrig/midiin"
	"github.com/ik5/notetrig/output"
)

type options struct {
	configPath string
	port       string
	listPorts  bool
	tui        bool
	logLevel   string

	renderPath string
	notes      string
	step       time.Duration
	seconds    float64
}

func parseFlags() options {
	var o options
	flag.StringVar(&o.configPath, "config", "config.json", "path to the JSON sample map")
	flag.StringVar(&o.port, "port", "", "MIDI input port (substring match, overrides midi_port)")
	flag.BoolVar(&o.listPorts, "list-ports", false, "list MIDI input ports and exit")
	flag.BoolVar(&o.tui, "tui", false, "show a live status view")
	flag.StringVar(&o.logLevel, "log-level", "info", "debug, info, warn, error or none")
	flag.StringVar(&o.renderPath, "render", "", "render offline to this WAV file instead of playing")
	flag.StringVar(&o.notes, "notes", "", "comma separated notes to trigger when rendering")
	flag.DurationVar(&o.step, "step", 250*time.Millisecond, "time between rendered notes")
	flag.Float64Var(&o.seconds, "seconds", 2, "length of the render")
	flag.Parse()
	return o
}

func main() {
	o := parseFlags()
	logger := log.New(os.Stderr, log.LevelFromString(o.logLevel))

	if err := run(o, logger); err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
}

func run(o options, logger *log.Logger) error {
	if o.listPorts {
		return listPorts()
	}

	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	if o.port != "" {
		cfg.MIDIPort = o.port
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := notetrig.Open(ctx, cfg, logger)
	if err != nil {
		return err
	}

	if o.renderPath != "" {
		return renderOffline(s, cfg, o, logger)
	}
	return live(ctx, s, cfg, o, logger)
}

func listPorts() error {
	ports, err := midiin.Ports()
	if err != nil {
		return err
	}
	if len(ports) == 0 {
		fmt.Println("no MIDI input ports")
		return nil
	}
	for i, p := range ports {
		fmt.Printf("%d: %s\n", i, p)
	}
	return nil
}

func live(ctx context.Context, s *notetrig.Sampler, cfg *config.Config, o options, logger *log.Logger) error {
	eng := s.Engine

	player, err := output.NewPlayer(eng.SampleRate(), eng.Channels(), cfg.PeriodFrames, eng)
	if err != nil {
		return err
	}
	player.Start()
	logger.Infof("audio running: %d Hz, %d ch, %d frames per period, %d voices",
		eng.SampleRate(), eng.Channels(), cfg.PeriodFrames, eng.Polyphony())

	in, err := midiin.Open(cfg.MIDIPort, midiin.Options{Channel: cfg.Channel()}, eng.Trigger, logger)
	switch {
	case errors.Is(err, midiin.ErrNoPorts), errors.Is(err, midiin.ErrPortNotFound):
		logger.Warnf("no MIDI input: %v", err)
		err = nil
	case err != nil:
		player.Close()
		return err
	}

	if o.tui {
		err = monitor.Run(eng, "notetrig "+o.configPath, s.Store.Notes())
	} else {
		fmt.Fprintln(os.Stderr, "press Enter to quit")
		waitForEnter(ctx)
	}

	// the audio thread silences voices and drops queued events on its next period
	s.Stop()
	time.Sleep(2 * periodDuration(eng.SampleRate(), cfg.PeriodFrames))

	if in != nil {
		if cerr := in.Close(); cerr != nil {
			logger.Warnf("%v", cerr)
		}
	}
	if cerr := player.Close(); cerr != nil {
		logger.Warnf("%v", cerr)
	}

	logStats(logger, s)
	return err
}

func waitForEnter(ctx context.Context) {
	done := make(chan struct{})
	go func() {
		bufio.NewReader(os.Stdin).ReadString('\n')
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
	}
}

func periodDuration(sampleRate, frames int) time.Duration {
	return time.Duration(frames) * time.Second / time.Duration(sampleRate)
}

func logStats(logger *log.Logger, s *notetrig.Sampler) {
	st := s.Engine.Stats()
	logger.Infof("triggered %d, queue full %d, polyphony drops %d, unknown notes %d, periods %d",
		st.Triggered, st.QueueFullDrops, st.PolyphonyDrops, st.UnknownNotes, st.Periods)
}
