package schedule

import (
	"context"
	"strings"
	"testing"

	"github.com/DriveFleet/DriveFleet/internal/common/apperr"
)

// fakeSource 固定返回一组区间，并按 statuses 过滤。
type fakeSource struct {
	intervals []Interval
}

func (f *fakeSource) BlockingIntervals(ctx context.Context, vehicleID string, statuses []string) ([]Interval, error) {
	allowed := make(map[string]bool, len(statuses))
	for _, s := range statuses {
		allowed[s] = true
	}
	var out []Interval
	for _, in := range f.intervals {
		if in.VehicleID == vehicleID && allowed[in.Status] {
			out = append(out, in)
		}
	}
	return out, nil
}

func TestFindConflict(t *testing.T) {
	existing := Interval{
		VehicleID: "v1", RefID: "b1", Kind: KindBooking, Status: "RESERVED",
		Start: day(t, "2026-01-10"), End: day(t, "2026-01-12"),
	}
	checker := NewChecker(&fakeSource{intervals: []Interval{existing}}, &fakeSource{})

	// 候选区间只碰到已有区间的一天，也算冲突
	conflict, err := checker.FindConflict(context.Background(), "v1", iv(t, "2026-01-11", "2026-01-15"))
	if err != nil {
		t.Fatalf("FindConflict: %v", err)
	}
	if conflict == nil || conflict.RefID != "b1" {
		t.Fatalf("conflict = %+v, want booking b1", conflict)
	}

	// 另一辆车不受影响
	conflict, err = checker.FindConflict(context.Background(), "v2", iv2(t, "v2", "2026-01-11", "2026-01-15"))
	if err != nil {
		t.Fatalf("FindConflict: %v", err)
	}
	if conflict != nil {
		t.Fatalf("unexpected conflict on another vehicle: %+v", conflict)
	}
}

func TestFindConflictIgnoresTerminal(t *testing.T) {
	canceled := Interval{
		VehicleID: "v1", RefID: "b1", Kind: KindBooking, Status: "CANCELED",
		Start: day(t, "2026-01-10"), End: day(t, "2026-01-12"),
	}
	completed := Interval{
		VehicleID: "v1", RefID: "m1", Kind: KindService, Status: "COMPLETED",
		Start: day(t, "2026-01-10"), End: day(t, "2026-01-12"),
	}
	checker := NewChecker(
		&fakeSource{intervals: []Interval{canceled}},
		&fakeSource{intervals: []Interval{completed}},
	)

	conflict, err := checker.FindConflict(context.Background(), "v1", iv(t, "2026-01-10", "2026-01-12"))
	if err != nil {
		t.Fatalf("FindConflict: %v", err)
	}
	if conflict != nil {
		t.Fatalf("terminal intervals should not block: %+v", conflict)
	}
}

func TestFindConflictAcrossKinds(t *testing.T) {
	service := Interval{
		VehicleID: "v1", RefID: "m1", Kind: KindService, Status: "ACTIVE",
		Start: day(t, "2026-01-10"), End: day(t, "2026-01-12"),
	}
	checker := NewChecker(&fakeSource{}, &fakeSource{intervals: []Interval{service}})

	// 订单候选区间被进行中的保养挡住
	conflict, err := checker.FindConflict(context.Background(), "v1", iv(t, "2026-01-12", "2026-01-14"))
	if err != nil {
		t.Fatalf("FindConflict: %v", err)
	}
	if conflict == nil || conflict.Kind != KindService {
		t.Fatalf("conflict = %+v, want service m1", conflict)
	}
}

func TestFindConflictExcluding(t *testing.T) {
	own := Interval{
		VehicleID: "v1", RefID: "b1", Kind: KindBooking, Status: "RESERVED",
		Start: day(t, "2026-01-10"), End: day(t, "2026-01-12"),
	}
	checker := NewChecker(&fakeSource{intervals: []Interval{own}}, &fakeSource{})

	// 改期时跳过自己的旧区间
	conflict, err := checker.FindConflictExcluding(context.Background(), "v1",
		iv(t, "2026-01-11", "2026-01-13"), KindBooking, "b1")
	if err != nil {
		t.Fatalf("FindConflictExcluding: %v", err)
	}
	if conflict != nil {
		t.Fatalf("own interval should be skipped: %+v", conflict)
	}
}

func TestCheckAvailabilityNamesConflict(t *testing.T) {
	existing := Interval{
		VehicleID: "v1", RefID: "b1", Kind: KindBooking, Status: "ACTIVE",
		Start: day(t, "2026-01-10"), End: day(t, "2026-01-12"),
	}
	checker := NewChecker(&fakeSource{intervals: []Interval{existing}}, &fakeSource{})

	err := checker.CheckAvailability(context.Background(), "v1", iv(t, "2026-01-11", "2026-01-11"), KindBooking)
	if apperr.CodeOf(err) != apperr.CodeNotAvailable {
		t.Fatalf("code = %s, want %s", apperr.CodeOf(err), apperr.CodeNotAvailable)
	}
	// 错误信息必须能定位到具体冲突区间
	if !strings.Contains(err.Error(), "b1") {
		t.Fatalf("error should name the conflicting interval: %v", err)
	}
}

func iv2(t *testing.T, vehicleID, startDay, endDay string) Interval {
	t.Helper()
	in, err := NewInterval(vehicleID, day(t, startDay), day(t, endDay))
	if err != nil {
		t.Fatalf("NewInterval: %v", err)
	}
	return in
}
