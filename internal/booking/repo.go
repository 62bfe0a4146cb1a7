package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/DriveFleet/DriveFleet/internal/schedule"
	"gorm.io/gorm"
)

type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) withCtx(ctx context.Context) *gorm.DB {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.WithContext(ctx)
}

func (r *Repo) Create(ctx context.Context, b *Booking) error {
	db := r.withCtx(ctx)
	if db == nil {
		return fmt.Errorf("repo db is nil")
	}
	return db.Create(b).Error
}

func (r *Repo) Save(ctx context.Context, b *Booking) error {
	db := r.withCtx(ctx)
	if db == nil {
		return fmt.Errorf("repo db is nil")
	}
	return db.Save(b).Error
}

func (r *Repo) GetByID(ctx context.Context, id string) (*Booking, error) {
	db := r.withCtx(ctx)
	if db == nil {
		return nil, fmt.Errorf("repo db is nil")
	}
	var b Booking
	if err := db.Where("id = ?", id).First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// ExistsExact 判断同车同起止的订单是否已存在（任意状态，含终态）。
// 用于创建期的精确去重。
func (r *Repo) ExistsExact(ctx context.Context, vehicleID string, start, end time.Time) (bool, error) {
	db := r.withCtx(ctx)
	if db == nil {
		return false, fmt.Errorf("repo db is nil")
	}
	var count int64
	err := db.Model(&Booking{}).
		Where("vehicle_id = ? AND start_time = ? AND end_time = ?", vehicleID, start.UTC(), end.UTC()).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// List 按可选条件分页列出订单。
func (r *Repo) List(ctx context.Context, vehicleID string, status Status, offset, limit int) ([]Booking, int64, error) {
	db := r.withCtx(ctx)
	if db == nil {
		return nil, 0, fmt.Errorf("repo db is nil")
	}
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	q := db.Model(&Booking{})
	if vehicleID != "" {
		q = q.Where("vehicle_id = ?", vehicleID)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var bookings []Booking
	if err := q.Order("start_time DESC").Offset(offset).Limit(limit).Find(&bookings).Error; err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

// ListOpen 列出所有非终态订单，供对账扫描。
func (r *Repo) ListOpen(ctx context.Context) ([]Booking, error) {
	db := r.withCtx(ctx)
	if db == nil {
		return nil, fmt.Errorf("repo db is nil")
	}
	var bookings []Booking
	err := db.Where("status IN ?", []Status{StatusReserved, StatusActive}).Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// BlockingIntervals 实现 schedule.IntervalSource。
func (r *Repo) BlockingIntervals(ctx context.Context, vehicleID string, statuses []string) ([]schedule.Interval, error) {
	db := r.withCtx(ctx)
	if db == nil {
		return nil, fmt.Errorf("repo db is nil")
	}
	var bookings []Booking
	err := db.Where("vehicle_id = ? AND status IN ?", vehicleID, statuses).Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	intervals := make([]schedule.Interval, 0, len(bookings))
	for i := range bookings {
		intervals = append(intervals, bookings[i].Interval())
	}
	return intervals, nil
}
