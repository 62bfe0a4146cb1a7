package staff

import "testing"

func TestPositionGates(t *testing.T) {
	cases := []struct {
		position       Position
		canBook        bool
		canRegisterSvc bool
	}{
		{PositionManager, true, true},
		{PositionAdmin, true, true},
		{PositionTechnician, false, true},
		{PositionSalesRep, true, false},
		{Position("INTERN"), false, false}, // 非法岗位一律拒绝
	}

	for _, tc := range cases {
		if got := tc.position.CanCreateBooking(); got != tc.canBook {
			t.Fatalf("%s CanCreateBooking = %v, want %v", tc.position, got, tc.canBook)
		}
		if got := tc.position.CanRegisterService(); got != tc.canRegisterSvc {
			t.Fatalf("%s CanRegisterService = %v, want %v", tc.position, got, tc.canRegisterSvc)
		}
	}
}
