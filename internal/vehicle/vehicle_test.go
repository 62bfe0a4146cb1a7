package vehicle

import "testing"

func TestProjectStatus(t *testing.T) {
	cases := []struct {
		name      string
		current   Status
		rented    bool
		inService bool
		want      Status
	}{
		{"idle", StatusAvailable, false, false, StatusAvailable},
		{"rented", StatusAvailable, true, false, StatusRented},
		{"in service", StatusAvailable, false, true, StatusInService},
		{"booking wins over service", StatusAvailable, true, true, StatusRented},
		{"rental ended", StatusRented, false, false, StatusAvailable},
		{"service ended", StatusInService, false, false, StatusAvailable},
		{"out of order stays put", StatusOutOfOrder, false, false, StatusOutOfOrder},
		{"out of order ignores occupancy", StatusOutOfOrder, true, true, StatusOutOfOrder},
		{"manual reserve overwritten when occupied", StatusReserved, true, false, StatusRented},
	}
	for _, tc := range cases {
		if got := ProjectStatus(tc.current, tc.rented, tc.inService); got != tc.want {
			t.Fatalf("%s: ProjectStatus = %s, want %s", tc.name, got, tc.want)
		}
	}
}
