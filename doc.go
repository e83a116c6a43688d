// SPDX-License-Identifier: EPL-2.0

// Package notetrig plays pre-loaded samples when notes arrive.
//
// Samples are decoded once at startup and kept in memory. Each note-on
// starts a voice on the sample mapped to that note; voices are mixed into
// fixed-size periods by a render callback that never locks, blocks or
// allocates.
//
// # Supported Formats
//
// Samples may be any format with a bundled decoder:
//   - WAV (PCM 16, 24 and 32-bit) via formats/wav
//   - AIFF (PCM 16, 24 and 32-bit) via formats/aiff
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//
// Every sample is converted to the engine's rate and channel count while
// loading, so playback never resamples.
//
// # Quick Start
//
//	cfg, _ := config.Load("kit.json")
//	s, _ := notetrig.Open(ctx, cfg, log.Discard())
//
//	player, _ := output.NewPlayer(s.Engine.SampleRate(), s.Engine.Channels(),
//		cfg.PeriodFrames, s.Engine)
//	player.Start()
//
//	s.Trigger(36)
//
// # Threads
//
// Two goroutines touch an engine. One producer, usually the MIDI listener
// from package midiin, calls Trigger. The audio device, through package
// output, calls Process once per period. They meet only in a bounded
// lock-free queue; a trigger that finds it full is dropped and counted.
//
// # Offline Rendering
//
// output.Render drives Process without a device, which makes renders
// repeatable. The result can be written with wav.WriteWAV16.
//
// See the individual subpackages for more detailed documentation.
package notetrig
