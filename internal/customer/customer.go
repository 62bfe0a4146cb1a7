package customer

import (
	"time"

	"gorm.io/gorm"
)

// Customer 是 customers 表的 GORM 模型。
type Customer struct {
	ID            string         `gorm:"primaryKey;size:36"`
	FirstName     string         `gorm:"size:64;not null"`
	LastName      string         `gorm:"size:64;not null"`
	Phone         string         `gorm:"size:32"`
	Email         string         `gorm:"size:128"`
	LicenseNumber string         `gorm:"uniqueIndex;size:32;not null"` // 驾照号
	CreatedAt     time.Time      `gorm:"autoCreateTime"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime"`
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}
