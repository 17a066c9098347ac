package components

import (
	"strings"
	"testing"
)

func TestLayoutRowSumsExactly(t *testing.T) {
	for _, tc := range []struct{ total, n int }{
		{100, 3}, {80, 4}, {7, 3}, {1, 1},
	} {
		widths := LayoutRow(tc.total, tc.n)
		if len(widths) != tc.n {
			t.Fatalf("LayoutRow(%d, %d) returned %d widths", tc.total, tc.n, len(widths))
		}
		sum := 0
		for _, w := range widths {
			sum += w
		}
		if sum != tc.total {
			t.Errorf("LayoutRow(%d, %d) sums to %d", tc.total, tc.n, sum)
		}
	}
}

func TestLayoutRowZero(t *testing.T) {
	if got := LayoutRow(100, 0); got != nil {
		t.Errorf("LayoutRow(100, 0) = %v, want nil", got)
	}
}

func TestSparklineLength(t *testing.T) {
	out := Sparkline([]float64{0, 1, 2, 3}, "#4385BE")
	if out == "" {
		t.Fatal("empty sparkline")
	}
	// Four block runes regardless of styling escape codes.
	count := 0
	for _, r := range out {
		if r >= '▁' && r <= '█' {
			count++
		}
	}
	if count != 4 {
		t.Errorf("sparkline has %d block runes, want 4", count)
	}
}

func TestSparklineAllZero(t *testing.T) {
	out := Sparkline([]float64{0, 0, 0}, "#4385BE")
	if !strings.Contains(out, "▁") {
		t.Error("all-zero sparkline should render minimum blocks")
	}
}

func TestAxisLabelsSkipsOverlaps(t *testing.T) {
	out := axisLabels([]string{"02-10", "02-11", "02-12"}, 2, 1, 9)
	if !strings.HasPrefix(out, "02-10") {
		t.Errorf("first label missing: %q", out)
	}
	if strings.Contains(out, "02-11") {
		t.Errorf("overlapping label should be skipped: %q", out)
	}
}

func TestTabIdxByKey(t *testing.T) {
	if idx := TabIdxByKey('s'); idx < 0 || Tabs[idx].Name != "Sessions" {
		t.Errorf("TabIdxByKey('s') = %d", idx)
	}
	if idx := TabIdxByKey('z'); idx != -1 {
		t.Errorf("TabIdxByKey('z') = %d, want -1", idx)
	}
}
