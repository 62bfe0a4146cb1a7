package user

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// User 是 users 表的 GORM 模型：后台操作人员的登录账号。
// 可选关联一条员工记录（staff_id），岗位守卫用的是员工表，
// 这里只管认证和角色。
type User struct {
	ID           string         `gorm:"primaryKey;size:36"`
	Username     string         `gorm:"uniqueIndex;size:64;not null"`
	PasswordHash string         `gorm:"size:128;not null"`
	PasswordSalt string         `gorm:"size:64;not null"`
	StaffID      string         `gorm:"index;size:36"` // 关联员工，可为空
	Email        string         `gorm:"size:128"`
	Roles        string         `gorm:"size:256;not null"` // 逗号分隔，例如 "staff,admin"
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime"`
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

// RolesSlice 拆出角色列表（去空白、去空项），签发 token 时用。
func (u User) RolesSlice() []string {
	if strings.TrimSpace(u.Roles) == "" {
		return nil
	}
	parts := strings.Split(u.Roles, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

func RolesJoin(roles []string) string {
	if len(roles) == 0 {
		return ""
	}
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		out = append(out, r)
	}
	return strings.Join(out, ",")
}
