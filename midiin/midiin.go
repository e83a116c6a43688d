// SPDX-License-Identifier: EPL-2.0

// Package midiin forwards note-on messages from a MIDI input port to a
// trigger function.
//
// Samples are one-shot, so only note-on with a non-zero velocity triggers.
// Note-off, and note-on with velocity 0, are ignored. The listener runs on
// the MIDI driver's goroutine, which makes it the single producer of the
// engine's event queue.
//
// No driver is registered here; commands import one, for example
// gitlab.com/gomidi/midi/v2/drivers/rtmididrv.
package midiin

import (
	"errors"
	"fmt"
	"strings"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"

	"github.com/ik5/notetrig/internal/log"
)

var (
	ErrNoPorts      = errors.New("no MIDI input ports")
	ErrPortNotFound = errors.New("MIDI input port not found")
	ErrPortsTimeout = errors.New("timed out listing MIDI ports")
)

// Omni accepts notes on every channel.
const Omni = -1

// portsTimeout bounds port enumeration; some drivers hang on it.
const portsTimeout = 3 * time.Second

type Options struct {
	// Channel is the 0-based MIDI channel to listen on, or Omni.
	Channel int
}

// TriggerFunc starts a note and reports whether it was accepted.
type TriggerFunc func(note uint8) bool

type Input struct {
	port drivers.In
	stop func()
}

func inPorts() ([]drivers.In, error) {
	ch := make(chan []drivers.In, 1)
	go func() {
		ch <- gomidi.GetInPorts()
	}()

	select {
	case ins := <-ch:
		return ins, nil
	case <-time.After(portsTimeout):
		return nil, ErrPortsTimeout
	}
}

// Ports lists the names of the available input ports.
func Ports() ([]string, error) {
	ins, err := inPorts()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(ins))
	for _, p := range ins {
		names = append(names, p.String())
	}
	return names, nil
}

// FindPort returns the first input port whose name contains name, ignoring
// case. An empty name selects the first port.
func FindPort(name string) (drivers.In, error) {
	ins, err := inPorts()
	if err != nil {
		return nil, err
	}
	if len(ins) == 0 {
		return nil, ErrNoPorts
	}
	if name == "" {
		return ins[0], nil
	}

	want := strings.ToLower(name)
	for _, p := range ins {
		if strings.Contains(strings.ToLower(p.String()), want) {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrPortNotFound, name)
}

// Open finds the port matching name and listens on it.
func Open(name string, opts Options, trigger TriggerFunc, logger *log.Logger) (*Input, error) {
	port, err := FindPort(name)
	if err != nil {
		return nil, err
	}
	return OpenPort(port, opts, trigger, logger)
}

// OpenPort listens on port until Close.
func OpenPort(port drivers.In, opts Options, trigger TriggerFunc, logger *log.Logger) (*Input, error) {
	stop, err := gomidi.ListenTo(port, NoteHandler(opts, trigger, logger))
	if err != nil {
		return nil, fmt.Errorf("listening on %q: %w", port.String(), err)
	}
	logger.Infof("listening on MIDI port %q", port.String())

	return &Input{port: port, stop: stop}, nil
}

// NoteHandler returns the message callback used by OpenPort.
func NoteHandler(opts Options, trigger TriggerFunc, logger *log.Logger) func(gomidi.Message, int32) {
	return func(msg gomidi.Message, _ int32) {
		var channel, note, velocity uint8
		if !msg.GetNoteOn(&channel, &note, &velocity) || velocity == 0 {
			return
		}
		if opts.Channel != Omni && int(channel) != opts.Channel {
			return
		}
		if !trigger(note) {
			logger.Debugf("note %d dropped: event queue full", note)
		}
	}
}

func (in *Input) Port() string { return in.port.String() }

func (in *Input) Close() error {
	if in.stop != nil {
		in.stop()
		in.stop = nil
	}
	if err := in.port.Close(); err != nil {
		return fmt.Errorf("closing MIDI port: %w", err)
	}
	return nil
}
