// SPDX-License-Identifier: EPL-2.0

package audio_test

import (
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/ik5/notetrig/audio"
)

type namedDecoder struct{ name string }

func (d *namedDecoder) Decode(io.Reader) (audio.Source, error) {
	return nil, errors.New(d.name)
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	t.Parallel()

	registry := audio.NewRegistry()
	dec := &namedDecoder{name: "wav"}
	registry.Register("wav", dec)

	got, ok := registry.Get("wav")
	if !ok {
		t.Fatal("Get() failed to retrieve registered decoder")
	}
	if got != dec {
		t.Error("Get() returned a different decoder instance")
	}
}

func TestRegistry_KeyNormalization(t *testing.T) {
	t.Parallel()

	registry := audio.NewRegistry()
	dec := &namedDecoder{name: "ogg"}
	registry.Register(".OGG", dec)

	for _, key := range []string{"ogg", ".ogg", "OGG", ".Ogg"} {
		if got, ok := registry.Get(key); !ok || got != dec {
			t.Errorf("Get(%q) = %v, %v; want registered decoder", key, got, ok)
		}
	}
}

func TestRegistry_Lookup(t *testing.T) {
	t.Parallel()

	registry := audio.NewRegistry()
	wavDec := &namedDecoder{name: "wav"}
	mp3Dec := &namedDecoder{name: "mp3"}
	registry.Register("wav", wavDec)
	registry.Register("mp3", mp3Dec)

	tests := []struct {
		path   string
		want   audio.Decoder
		wantOK bool
	}{
		{"kick.wav", wavDec, true},
		{"/kits/808/SNARE.WAV", wavDec, true},
		{"hat.mp3", mp3Dec, true},
		{"pad.flac", nil, false},
		{"noext", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			got, ok := registry.Lookup(tt.path)
			if ok != tt.wantOK {
				t.Fatalf("Lookup(%q) ok = %v, want %v", tt.path, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("Lookup(%q) returned wrong decoder", tt.path)
			}
		})
	}
}

func TestRegistry_Formats(t *testing.T) {
	t.Parallel()

	registry := audio.NewRegistry()
	registry.Register("wav", &namedDecoder{})
	registry.Register("aiff", &namedDecoder{})
	registry.Register("mp3", &namedDecoder{})

	got := registry.Formats()
	want := []string{"aiff", "mp3", "wav"}
	if len(got) != len(want) {
		t.Fatalf("Formats() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Formats()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	registry := audio.NewRegistry()
	registry.Register("wav", &namedDecoder{})

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%4 == 0 {
				registry.Register("mp3", &namedDecoder{})
				return
			}
			if _, ok := registry.Lookup("x.wav"); !ok {
				t.Error("Lookup() lost a registered decoder")
			}
		}()
	}
	wg.Wait()
}
