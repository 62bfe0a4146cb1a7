package schedule

import (
	"testing"
	"time"

	"github.com/DriveFleet/DriveFleet/internal/common/apperr"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	tm, err := time.Parse(time.RFC3339, s+"T00:00:00Z")
	if err != nil {
		t.Fatalf("parse %s: %v", s, err)
	}
	return tm
}

func iv(t *testing.T, startDay, endDay string) Interval {
	t.Helper()
	in, err := NewInterval("v1", day(t, startDay), day(t, endDay))
	if err != nil {
		t.Fatalf("NewInterval: %v", err)
	}
	return in
}

func TestOverlaps(t *testing.T) {
	base := iv(t, "2026-01-10", "2026-01-12")

	cases := []struct {
		name  string
		other Interval
		want  bool
	}{
		{"disjoint before", iv(t, "2026-01-01", "2026-01-05"), false},
		{"disjoint after", iv(t, "2026-01-13", "2026-01-20"), false},
		{"touching at start", iv(t, "2026-01-05", "2026-01-10"), true}, // 闭区间，端点相接算冲突
		{"touching at end", iv(t, "2026-01-12", "2026-01-20"), true},
		{"partial overlap left", iv(t, "2026-01-08", "2026-01-11"), true},
		{"partial overlap right", iv(t, "2026-01-11", "2026-01-15"), true},
		{"contained", iv(t, "2026-01-11", "2026-01-11"), true},
		{"containing", iv(t, "2026-01-01", "2026-01-31"), true},
		{"identical", iv(t, "2026-01-10", "2026-01-12"), true},
	}
	for _, tc := range cases {
		if got := base.Overlaps(tc.other); got != tc.want {
			t.Fatalf("%s: Overlaps = %v, want %v", tc.name, got, tc.want)
		}
		// 相交是对称关系
		if got := tc.other.Overlaps(base); got != tc.want {
			t.Fatalf("%s (reversed): Overlaps = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestContains(t *testing.T) {
	in := iv(t, "2026-01-10", "2026-01-12")

	if !in.Contains(day(t, "2026-01-10")) {
		t.Fatal("start endpoint should be inside")
	}
	if !in.Contains(day(t, "2026-01-12")) {
		t.Fatal("end endpoint should be inside")
	}
	if !in.Contains(day(t, "2026-01-11")) {
		t.Fatal("midpoint should be inside")
	}
	if in.Contains(day(t, "2026-01-09")) || in.Contains(day(t, "2026-01-13")) {
		t.Fatal("points outside the interval should not be inside")
	}
}

func TestNewIntervalValidation(t *testing.T) {
	start := day(t, "2026-01-10")
	end := day(t, "2026-01-12")

	if _, err := NewInterval("", start, end); apperr.CodeOf(err) != apperr.CodeInvalid {
		t.Fatalf("empty vehicle id: code = %s, want %s", apperr.CodeOf(err), apperr.CodeInvalid)
	}
	if _, err := NewInterval("v1", end, start); apperr.CodeOf(err) != apperr.CodeInvalid {
		t.Fatalf("start after end: code = %s, want %s", apperr.CodeOf(err), apperr.CodeInvalid)
	}
	if _, err := NewInterval("v1", time.Time{}, end); apperr.CodeOf(err) != apperr.CodeInvalid {
		t.Fatalf("zero start: code = %s, want %s", apperr.CodeOf(err), apperr.CodeInvalid)
	}

	// 单点区间合法（当天取还车）
	if _, err := NewInterval("v1", start, start); err != nil {
		t.Fatalf("single-point interval should be valid: %v", err)
	}
}
