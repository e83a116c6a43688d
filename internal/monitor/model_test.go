// SPDX-License-Identifier: EPL-2.0

package monitor

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ik5/notetrig/engine"
)

type fakeSource struct {
	stats engine.Stats
}

func (f *fakeSource) Stats() engine.Stats { return f.stats }
func (f *fakeSource) Polyphony() int      { return 4 }
func (f *fakeSource) SampleRate() int     { return 48000 }
func (f *fakeSource) Channels() int       { return 2 }

func TestModel_TickRefreshesStats(t *testing.T) {
	t.Parallel()

	src := &fakeSource{}
	m := NewModel(src, "kit", []uint8{36, 38})

	src.stats = engine.Stats{Triggered: 7, ActiveVoices: 3, PolyphonyDrops: 2}
	next, cmd := m.Update(TickMsg(time.Now()))
	if cmd == nil {
		t.Fatal("tick returned no follow-up command")
	}

	view := next.View()
	for _, want := range []string{"kit", "48000 Hz", "2 notes", "3/4", "triggered", "7", "polyphony drops"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}
}

func TestModel_Quit(t *testing.T) {
	t.Parallel()

	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune("q")},
		{Type: tea.KeyEnter},
		{Type: tea.KeyCtrlC},
	} {
		m := NewModel(&fakeSource{}, "kit", nil)
		next, cmd := m.Update(key)
		if cmd == nil {
			t.Fatalf("%q: no command", key.String())
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%q: command is not quit", key.String())
		}
		if next.View() != "" {
			t.Errorf("%q: View() after quit = %q", key.String(), next.View())
		}
	}
}

func TestModel_IgnoresOtherKeys(t *testing.T) {
	t.Parallel()

	m := NewModel(&fakeSource{}, "kit", nil)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	if cmd != nil {
		t.Error("unbound key returned a command")
	}
}
