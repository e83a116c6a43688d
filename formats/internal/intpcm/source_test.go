// SPDX-License-Identifier: EPL-2.0

package intpcm

import (
	"bytes"
	"errors"
	"io"
	"testing"

	goaudio "github.com/go-audio/audio"
)

type mockReader struct {
	samples []int
	offset  int
	err     error
}

func (m *mockReader) Format() *goaudio.Format {
	return &goaudio.Format{SampleRate: 8000, NumChannels: 1}
}

func (m *mockReader) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	n := copy(buf.Data, m.samples[m.offset:])
	m.offset += n
	return n, nil
}

func TestSource_Normalization(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		bitDepth int
		in       int
		want     float32
	}{
		{"16-bit half", 16, 16384, 0.5},
		{"24-bit half", 24, 4194304, 0.5},
		{"32-bit negative full", 32, -2147483648, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := NewSource(&mockReader{samples: []int{tt.in}}, 8000, 1, tt.bitDepth)
			buf := make([]float32, 1)
			n, err := src.ReadSamples(buf)
			if n != 1 || err != nil {
				t.Fatalf("ReadSamples() = %d, %v; want 1, nil", n, err)
			}
			if buf[0] != tt.want {
				t.Errorf("sample = %v, want %v", buf[0], tt.want)
			}
		})
	}
}

func TestSource_ShortReadIsEOF(t *testing.T) {
	t.Parallel()

	src := NewSource(&mockReader{samples: []int{1, 2, 3}}, 8000, 1, 16)
	buf := make([]float32, 8)

	n, err := src.ReadSamples(buf)
	if n != 3 || !errors.Is(err, io.EOF) {
		t.Fatalf("ReadSamples() = %d, %v; want 3, EOF", n, err)
	}

	n, err = src.ReadSamples(buf)
	if n != 0 || !errors.Is(err, io.EOF) {
		t.Errorf("ReadSamples() at end = %d, %v; want 0, EOF", n, err)
	}
}

func TestSource_DecodeError(t *testing.T) {
	t.Parallel()

	src := NewSource(&mockReader{err: io.ErrUnexpectedEOF}, 8000, 1, 16)
	if _, err := src.ReadSamples(make([]float32, 4)); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("ReadSamples() error = %v, want ErrUnexpectedEOF", err)
	}
}

func TestSeekable(t *testing.T) {
	t.Parallel()

	br := bytes.NewReader([]byte("abc"))
	rs, err := Seekable(br)
	if err != nil || rs != io.ReadSeeker(br) {
		t.Errorf("Seekable(seeker) = %v, %v; want the same reader", rs, err)
	}

	rs, err = Seekable(io.LimitReader(bytes.NewReader([]byte("abcdef")), 4))
	if err != nil {
		t.Fatalf("Seekable() error = %v", err)
	}
	if _, err := rs.Seek(2, io.SeekStart); err != nil {
		t.Fatalf("Seek() error = %v", err)
	}
	rest, _ := io.ReadAll(rs)
	if string(rest) != "cd" {
		t.Errorf("read after seek = %q, want %q", rest, "cd")
	}
}
