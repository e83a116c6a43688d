// SPDX-License-Identifier: EPL-2.0

package output

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"
)

// counter writes the call index into every sample of the period.
type counter struct {
	calls int
	sizes []int
}

func (c *counter) Process(dst []float32) {
	c.calls++
	c.sizes = append(c.sizes, len(dst))
	for i := range dst {
		dst[i] = float32(c.calls) + float32(i)/100
	}
}

func decode(p []byte) []float32 {
	out := make([]float32, len(p)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(p[i*4:]))
	}
	return out
}

func TestNewStreamReader_Invalid(t *testing.T) {
	t.Parallel()

	for _, tc := range [][2]int{{0, 64}, {2, 0}, {-1, -1}} {
		if _, err := NewStreamReader(&counter{}, tc[0], tc[1]); !errors.Is(err, ErrInvalidPeriod) {
			t.Errorf("NewStreamReader(%d, %d) error = %v", tc[0], tc[1], err)
		}
	}
}

func TestStreamReader_FixedPeriods(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		readBytes []int
		wantCalls int
	}{
		{"exact period", []int{16}, 1},
		{"two periods at once", []int{32}, 2},
		{"split across reads", []int{8, 8, 8}, 2},
		{"uneven reads", []int{12, 12, 12}, 3},
		{"trailing partial sample", []int{10}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := &counter{}
			s, err := NewStreamReader(c, 2, 2) // 4 samples, 16 bytes
			if err != nil {
				t.Fatal(err)
			}

			var got []float32
			for _, size := range tt.readBytes {
				p := make([]byte, size)
				n, err := s.Read(p)
				if err != nil {
					t.Fatalf("Read() error = %v", err)
				}
				if n != size-size%4 {
					t.Fatalf("Read(%d) = %d, want whole samples only", size, n)
				}
				got = append(got, decode(p[:n])...)
			}

			if c.calls != tt.wantCalls {
				t.Errorf("Process called %d times, want %d", c.calls, tt.wantCalls)
			}
			for _, size := range c.sizes {
				if size != 4 {
					t.Errorf("Process got %d samples, want 4", size)
				}
			}
			// the stream is the concatenation of the periods
			for i, v := range got {
				want := float32(i/4+1) + float32(i%4)/100
				if v != want {
					t.Errorf("sample %d = %v, want %v", i, v, want)
				}
			}
		})
	}
}

func TestStreamReader_DoesNotAllocate(t *testing.T) {
	s, _ := NewStreamReader(RendererFunc(func(dst []float32) { clear(dst) }), 2, 64)
	p := make([]byte, 1000)

	allocs := testing.AllocsPerRun(100, func() {
		s.Read(p)
	})
	if allocs != 0 {
		t.Errorf("Read allocated %v times per run, want 0", allocs)
	}
}

func TestRender(t *testing.T) {
	t.Parallel()

	c := &counter{}
	var hooks []int
	out, err := Render(c, 1, 3, 4, func(i int) { hooks = append(hooks, i) })
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if len(out) != 12 {
		t.Fatalf("len(out) = %d, want 12", len(out))
	}
	if c.calls != 4 || len(hooks) != 4 || hooks[3] != 3 {
		t.Fatalf("calls = %d, hooks = %v", c.calls, hooks)
	}
	if out[3] != 2 || out[11] != float32(4)+float32(2)/100 {
		t.Errorf("out = %v", out)
	}

	if _, err := Render(c, 0, 3, 1, nil); !errors.Is(err, ErrInvalidPeriod) {
		t.Errorf("Render() with no channels error = %v", err)
	}
	if out, err := Render(c, 1, 3, 0, nil); err != nil || len(out) != 0 {
		t.Errorf("Render() zero periods = %v, %v", out, err)
	}
}
