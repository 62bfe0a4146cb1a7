package booking

import (
	"time"

	"github.com/DriveFleet/DriveFleet/internal/schedule"
	"gorm.io/gorm"
)

// Status 订单状态（持久化为字符串）。
type Status string

const (
	StatusReserved  Status = "RESERVED"  // 已预订，未到取车时间
	StatusActive    Status = "ACTIVE"    // 租赁进行中
	StatusCompleted Status = "COMPLETED" // 已完成（终态）
	StatusCanceled  Status = "CANCELED"  // 已取消（终态，仅运营操作可进入）
)

// Terminal 终态不再参与自动流转：取消/完成的订单不会被对账复活。
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCanceled
}

// Booking 是 bookings 表的 GORM 模型。
// 车辆/客户/员工都是弱引用（只存 id）；创建后这三个关联不可变，
// status 只允许对账和显式取消修改。
type Booking struct {
	ID         string         `gorm:"primaryKey;size:36"`
	VehicleID  string         `gorm:"index;size:36;not null"`
	CustomerID string         `gorm:"index;size:36;not null"`
	StaffID    string         `gorm:"index;size:36;not null"`     // 经办员工
	Start      time.Time      `gorm:"column:start_time;not null"` // 闭区间端点，UTC
	End        time.Time      `gorm:"column:end_time;not null"`
	Status     Status         `gorm:"type:varchar(16);index;not null"`
	CostCents  int64          `gorm:"not null;default:0"`
	CreatedAt  time.Time      `gorm:"autoCreateTime"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime"`
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

// Interval 转为统一的占用区间表示。
func (b *Booking) Interval() schedule.Interval {
	return schedule.Interval{
		VehicleID: b.VehicleID,
		RefID:     b.ID,
		Kind:      schedule.KindBooking,
		Status:    string(b.Status),
		Start:     b.Start,
		End:       b.End,
	}
}
