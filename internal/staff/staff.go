package staff

import (
	"time"

	"gorm.io/gorm"
)

// Position 员工岗位（持久化为字符串）。
// 岗位决定能执行哪些影响车辆生命周期的操作。
type Position string

const (
	PositionManager    Position = "MANAGER"              // 运营经理
	PositionTechnician Position = "TECHNICIAN"           // 技师，负责维修保养
	PositionSalesRep   Position = "SALES_REPRESENTATIVE" // 销售，负责客户与订单
	PositionAdmin      Position = "ADMINISTRATOR"        // 管理员
)

// Valid 判断岗位取值是否合法。
func (p Position) Valid() bool {
	switch p {
	case PositionManager, PositionTechnician, PositionSalesRep, PositionAdmin:
		return true
	}
	return false
}

// CanCreateBooking 技师不能创建订单。
func (p Position) CanCreateBooking() bool {
	return p.Valid() && p != PositionTechnician
}

// CanRegisterService 销售不能登记保养。
func (p Position) CanRegisterService() bool {
	return p.Valid() && p != PositionSalesRep
}

// Staff 是 staff_members 表的 GORM 模型。
type Staff struct {
	ID        string         `gorm:"primaryKey;size:36"`
	FirstName string         `gorm:"size:64;not null"`
	LastName  string         `gorm:"size:64;not null"`
	Phone     string         `gorm:"size:32"`
	Email     string         `gorm:"size:128"`
	Position  Position       `gorm:"type:varchar(24);index;not null"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Staff) TableName() string {
	return "staff_members"
}
