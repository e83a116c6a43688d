// SPDX-License-Identifier: EPL-2.0

package main

import (
	"slices"
	"testing"
	"time"
)

func TestParseNotes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    []uint8
		wantErr bool
	}{
		{"", nil, false},
		{"36", []uint8{36}, false},
		{"36, 38 ,42", []uint8{36, 38, 42}, false},
		{"36,,38", []uint8{36, 38}, false},
		{"128", nil, true},
		{"-1", nil, true},
		{"kick", nil, true},
	}
	for _, tt := range tests {
		got, err := parseNotes(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseNotes(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !slices.Equal(got, tt.want) {
			t.Errorf("parseNotes(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSchedule(t *testing.T) {
	t.Parallel()

	// 1000 Hz, 100 frame periods: one period every 100ms
	due := schedule([]uint8{1, 2, 3, 4}, 50*time.Millisecond, 1000, 100, 2)

	if len(due) != 2 {
		t.Fatalf("len(due) = %d, want 2", len(due))
	}
	if !slices.Equal(due[0], []uint8{1, 2}) || !slices.Equal(due[1], []uint8{3, 4}) {
		t.Errorf("due = %v, want [[1 2] [3 4]]", due)
	}

	late := schedule([]uint8{1, 2}, time.Second, 1000, 100, 2)
	if !slices.Equal(late[0], []uint8{1}) || len(late[1]) != 0 {
		t.Errorf("notes past the end were scheduled: %v", late)
	}
}
