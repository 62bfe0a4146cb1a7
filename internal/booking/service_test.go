package booking

import (
	"testing"

	"github.com/DriveFleet/DriveFleet/internal/common/apperr"
	"github.com/DriveFleet/DriveFleet/internal/customer"
	"github.com/DriveFleet/DriveFleet/internal/staff"
)

func TestGuardCreate(t *testing.T) {
	in := CreateInput{VehicleID: "v1", CustomerID: "c1", StaffID: "s1"}
	manager := &staff.Staff{ID: "s1", Position: staff.PositionManager}
	technician := &staff.Staff{ID: "s1", Position: staff.PositionTechnician}
	cust := &customer.Customer{ID: "c1"}

	cases := []struct {
		name   string
		member *staff.Staff
		cust   *customer.Customer
		dup    bool
		want   apperr.Code
	}{
		{"staff missing", nil, cust, false, apperr.CodeNotFound},
		{"technician blocked", technician, cust, false, apperr.CodePositionNotAllowed},
		{"customer missing", manager, nil, false, apperr.CodeNotFound},
		{"exact duplicate", manager, cust, true, apperr.CodeAlreadyExists},
		{"ok", manager, cust, false, ""},
	}
	for _, tc := range cases {
		err := guardCreate(tc.member, tc.cust, tc.dup, in)
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

// 岗位拦截必须发生在客户存在性检查之前：技师 + 不存在的客户
// 应报 POSITION_NOT_ALLOWED 而不是 NOT_FOUND。
func TestGuardCreateOrder(t *testing.T) {
	in := CreateInput{VehicleID: "v1", CustomerID: "missing", StaffID: "s1"}
	technician := &staff.Staff{ID: "s1", Position: staff.PositionTechnician}

	err := guardCreate(technician, nil, true, in)
	if apperr.CodeOf(err) != apperr.CodePositionNotAllowed {
		t.Fatalf("code = %s, want %s", apperr.CodeOf(err), apperr.CodePositionNotAllowed)
	}
}
