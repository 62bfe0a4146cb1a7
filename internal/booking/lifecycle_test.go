package booking

import (
	"testing"
	"time"
)

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	tm, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatalf("parse %s: %v", s, err)
	}
	return tm
}

func TestStatusAt(t *testing.T) {
	start := mustTime(t, "2026-01-10T00:00:00Z")
	end := mustTime(t, "2026-01-12T00:00:00Z")

	cases := []struct {
		name    string
		current Status
		now     string
		want    Status
	}{
		{"before start", StatusReserved, "2026-01-09T23:59:59Z", StatusReserved},
		{"at start", StatusReserved, "2026-01-10T00:00:00Z", StatusActive},
		{"inside", StatusReserved, "2026-01-11T12:00:00Z", StatusActive},
		{"at end", StatusActive, "2026-01-12T00:00:00Z", StatusActive}, // 闭区间，还车日仍在租期内
		{"after end", StatusActive, "2026-01-12T00:00:01Z", StatusCompleted},
		{"reserved straight to completed", StatusReserved, "2026-02-01T00:00:00Z", StatusCompleted},
		{"canceled stays canceled", StatusCanceled, "2026-01-11T00:00:00Z", StatusCanceled},
		{"completed stays completed", StatusCompleted, "2026-01-11T00:00:00Z", StatusCompleted},
	}
	for _, tc := range cases {
		if got := StatusAt(tc.current, start, end, mustTime(t, tc.now)); got != tc.want {
			t.Fatalf("%s: StatusAt = %s, want %s", tc.name, got, tc.want)
		}
	}
}

func TestStatusAtIdempotent(t *testing.T) {
	start := mustTime(t, "2026-01-10T00:00:00Z")
	end := mustTime(t, "2026-01-12T00:00:00Z")
	now := mustTime(t, "2026-01-11T00:00:00Z")

	first := StatusAt(StatusReserved, start, end, now)
	second := StatusAt(first, start, end, now)
	if first != second {
		t.Fatalf("StatusAt not idempotent: %s then %s", first, second)
	}
}
