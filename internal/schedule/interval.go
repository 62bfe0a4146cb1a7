package schedule

import (
	"fmt"
	"time"

	"github.com/DriveFleet/DriveFleet/internal/common/apperr"
)

// Kind 区间所属的业务类型。
type Kind string

const (
	KindBooking Kind = "booking" // 租车订单
	KindService Kind = "service" // 维修保养
)

// Interval 车辆占用区间的统一表示（订单与保养共用）。
// 端点为闭区间、UTC；Start <= End 在创建时保证。
type Interval struct {
	VehicleID string
	RefID     string // 所属订单/保养记录 ID，用于冲突定位
	Kind      Kind
	Status    string
	Start     time.Time
	End       time.Time
}

// NewInterval 创建区间；start > end 视为入参非法。
func NewInterval(vehicleID string, start, end time.Time) (Interval, error) {
	if vehicleID == "" {
		return Interval{}, apperr.New(apperr.CodeInvalid, "vehicle id required")
	}
	if start.IsZero() || end.IsZero() {
		return Interval{}, apperr.New(apperr.CodeInvalid, "start and end required")
	}
	if start.After(end) {
		return Interval{}, apperr.New(apperr.CodeInvalid, "start must not be after end")
	}
	return Interval{
		VehicleID: vehicleID,
		Start:     start.UTC(),
		End:       end.UTC(),
	}, nil
}

// Overlaps 规范的闭区间相交判定：s1 <= e2 && e1 >= s2。
// 端点相接（e1 == s2）也算冲突。全系统只允许用这一个判定。
func (iv Interval) Overlaps(other Interval) bool {
	return !iv.Start.After(other.End) && !iv.End.Before(other.Start)
}

// Contains 判断时刻 t 是否落在区间内（含端点）。
func (iv Interval) Contains(t time.Time) bool {
	return !t.Before(iv.Start) && !t.After(iv.End)
}

// String 用于冲突提示与日志。
func (iv Interval) String() string {
	return fmt.Sprintf("%s %s [%s, %s] status=%s",
		iv.Kind, iv.RefID,
		iv.Start.Format(time.RFC3339), iv.End.Format(time.RFC3339),
		iv.Status)
}
