package maintenance

import (
	"time"

	"github.com/DriveFleet/DriveFleet/internal/schedule"
	"gorm.io/gorm"
)

// Status 保养记录状态，流转规则与订单一致。
type Status string

const (
	StatusReserved  Status = "RESERVED"
	StatusActive    Status = "ACTIVE"
	StatusCompleted Status = "COMPLETED"
	StatusCanceled  Status = "CANCELED"
)

func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCanceled
}

// Record 是 car_services 表的 GORM 模型（一次维修/保养安排）。
type Record struct {
	ID          string         `gorm:"primaryKey;size:36"`
	VehicleID   string         `gorm:"index;size:36;not null"`
	StaffID     string         `gorm:"index;size:36;not null"`     // 负责技师
	Description string         `gorm:"size:255;not null"`
	Start       time.Time      `gorm:"column:start_time;not null"` // 闭区间端点，UTC
	End         time.Time      `gorm:"column:end_time;not null"`
	Status      Status         `gorm:"type:varchar(16);index;not null"`
	CostCents   int64          `gorm:"not null;default:0"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (Record) TableName() string {
	return "car_services"
}

// Interval 转为统一的占用区间表示。
func (rec *Record) Interval() schedule.Interval {
	return schedule.Interval{
		VehicleID: rec.VehicleID,
		RefID:     rec.ID,
		Kind:      schedule.KindService,
		Status:    string(rec.Status),
		Start:     rec.Start,
		End:       rec.End,
	}
}
