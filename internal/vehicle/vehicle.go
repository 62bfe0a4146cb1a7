package vehicle

import (
	"time"

	"gorm.io/gorm"
)

// Status 车辆状态（持久化为字符串）。
//
// status 是派生缓存字段：权威数据是车上挂着的订单/保养区间，
// 由状态对账（reconcile）统一重算。OUT_OF_ORDER 是唯一的人工状态，
// 只能由运营设置/解除，对账不会碰它。
type Status string

const (
	StatusAvailable  Status = "AVAILABLE"    // 可租
	StatusRented     Status = "RENTED"       // 租出（存在进行中的订单）
	StatusInService  Status = "IN_SERVICE"   // 保养中
	StatusReserved   Status = "RESERVED"     // 运营预留（人工设置，投影不会产生）
	StatusOutOfOrder Status = "OUT_OF_ORDER" // 故障停用（人工状态，对账不清除）
)

// Vehicle 是 vehicles 表的 GORM 模型。
type Vehicle struct {
	ID              string         `gorm:"primaryKey;size:36"`
	Plate           string         `gorm:"uniqueIndex;size:32;not null"` // 车牌
	VIN             string         `gorm:"size:64"`
	Brand           string         `gorm:"size:64"`
	Model           string         `gorm:"size:64"`
	Year            int            `gorm:"not null;default:0"`
	DailyPriceCents int64          `gorm:"not null;default:0"` // 日租价（分）
	Status          Status         `gorm:"type:varchar(16);index;not null"`
	CreatedAt       time.Time      `gorm:"autoCreateTime"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime"`
	DeletedAt       gorm.DeletedAt `gorm:"index"` // 逻辑删除，查询自动过滤
}

// ProjectStatus 车辆状态投影（纯函数）：
// - OUT_OF_ORDER 原样保留
// - 有进行中的订单 → RENTED（订单优先于保养：两者同时占用本身违反
//   创建期的冲突检查，这里只做兜底排序）
// - 有进行中的保养 → IN_SERVICE
// - 否则 → AVAILABLE
func ProjectStatus(current Status, rentedNow, inServiceNow bool) Status {
	if current == StatusOutOfOrder {
		return StatusOutOfOrder
	}
	if rentedNow {
		return StatusRented
	}
	if inServiceNow {
		return StatusInService
	}
	return StatusAvailable
}
