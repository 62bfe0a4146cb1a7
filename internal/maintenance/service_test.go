package maintenance

import (
	"testing"

	"github.com/DriveFleet/DriveFleet/internal/common/apperr"
	"github.com/DriveFleet/DriveFleet/internal/staff"
)

func TestGuardRegister(t *testing.T) {
	in := RegisterInput{VehicleID: "v1", StaffID: "s1", Description: "oil change"}
	technician := &staff.Staff{ID: "s1", Position: staff.PositionTechnician}
	sales := &staff.Staff{ID: "s1", Position: staff.PositionSalesRep}

	cases := []struct {
		name   string
		member *staff.Staff
		dup    bool
		want   apperr.Code
	}{
		{"staff missing", nil, false, apperr.CodeNotFound},
		{"sales rep blocked", sales, false, apperr.CodePositionNotAllowed},
		{"exact duplicate", technician, true, apperr.CodeAlreadyExists},
		{"technician ok", technician, false, ""},
	}
	for _, tc := range cases {
		err := guardRegister(tc.member, tc.dup, in)
		if tc.want == "" {
			if err != nil {
				t.Fatalf("%s: unexpected error %v", tc.name, err)
			}
			continue
		}
		if apperr.CodeOf(err) != tc.want {
			t.Fatalf("%s: code = %s, want %s (err=%v)", tc.name, apperr.CodeOf(err), tc.want, err)
		}
	}
}
