package date

import (
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{in: "2025-07-01", want: New(2025, time.July, 1)},
		{in: "2025-7-1", want: New(2025, time.July, 1)},
		{in: "not-a-date", wantErr: true},
		{in: "2025-13-40", wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := Parse(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) expected an error, got %v", tc.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) returned unexpected error: %v", tc.in, err)
			}
			if got != tc.want {
				t.Errorf("Parse(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestStartEndOf(t *testing.T) {
	// 2025-07-16 is a Wednesday.
	d := New(2025, time.July, 16)

	testCases := []struct {
		name      string
		period    Period
		wantStart Date
		wantEnd   Date
	}{
		{"daily", Daily, d, d},
		{"weekly", Weekly, New(2025, time.July, 14), New(2025, time.July, 20)},
		{"monthly", Monthly, New(2025, time.July, 1), New(2025, time.July, 31)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := d.StartOf(tc.period); got != tc.wantStart {
				t.Errorf("StartOf(%v) = %v, want %v", tc.period, got, tc.wantStart)
			}
			if got := d.EndOf(tc.period); got != tc.wantEnd {
				t.Errorf("EndOf(%v) = %v, want %v", tc.period, got, tc.wantEnd)
			}
		})
	}
}

func TestRangeContains(t *testing.T) {
	r := Range{From: New(2025, time.July, 1), To: New(2025, time.July, 31)}

	if !r.Contains(New(2025, time.July, 1)) || !r.Contains(New(2025, time.July, 31)) {
		t.Error("Contains() should include both boundaries")
	}
	if r.Contains(New(2025, time.June, 30)) || r.Contains(New(2025, time.August, 1)) {
		t.Error("Contains() should exclude dates outside the range")
	}

	var unbounded Range
	if !unbounded.Contains(New(1999, time.January, 1)) {
		t.Error("the zero Range should contain every date")
	}
}

func TestRangeIdentifier(t *testing.T) {
	testCases := []struct {
		name string
		r    Range
		want string
	}{
		{"day", NewRange(New(2025, time.July, 16), Daily), "2025-07-16"},
		{"week", NewRange(New(2025, time.July, 16), Weekly), "2025-W29"},
		{"month", NewRange(New(2025, time.July, 16), Monthly), "2025-07"},
		{"special", Range{From: New(2025, time.July, 2), To: New(2025, time.July, 9)}, "2025-07-02_2025-07-09"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.r.Identifier(); got != tc.want {
				t.Errorf("Identifier() = %q, want %q", got, tc.want)
			}
		})
	}
}
