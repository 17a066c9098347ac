package cli

import (
	"testing"
	"time"
)

func TestFormatTokens(t *testing.T) {
	cases := map[int64]string{
		0:          "0",
		999:        "999",
		1234:       "1.2K",
		1234567:    "1.2M",
		1234567890: "1.2B",
		-1234:      "-1.2K",
	}
	for in, want := range cases {
		if got := FormatTokens(in); got != want {
			t.Errorf("FormatTokens(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	cases := map[int64]string{
		0:        "0",
		999:      "999",
		1000:     "1,000",
		1234567:  "1,234,567",
		-1234567: "-1,234,567",
	}
	for in, want := range cases {
		if got := FormatNumber(in); got != want {
			t.Errorf("FormatNumber(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatCost(t *testing.T) {
	cases := map[float64]string{
		0.5:    "$0.50",
		9.99:   "$9.99",
		12.3:   "$12.3",
		150:    "$150",
		2500.4: "$2,500",
	}
	for in, want := range cases {
		if got := FormatCost(in); got != want {
			t.Errorf("FormatCost(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatDurationMs(t *testing.T) {
	cases := map[int64]string{
		0:       "0s",
		-5:      "0s",
		45000:   "45s",
		125000:  "2m 5s",
		3725000: "1h 2m",
	}
	for in, want := range cases {
		if got := FormatDurationMs(in); got != want {
			t.Errorf("FormatDurationMs(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatRelative(t *testing.T) {
	now := time.Date(2026, 2, 11, 15, 0, 0, 0, time.UTC)
	cases := []struct {
		at   time.Time
		want string
	}{
		{now.Add(-10 * time.Second), "just now"},
		{now.Add(-5 * time.Minute), "5m ago"},
		{now.Add(-3 * time.Hour), "3h ago"},
		{now.Add(-49 * time.Hour), "2d ago"},
		{time.Time{}, "never"},
	}
	for _, tc := range cases {
		if got := FormatRelative(tc.at, now); got != tc.want {
			t.Errorf("FormatRelative(%v) = %q, want %q", tc.at, got, tc.want)
		}
	}
}
