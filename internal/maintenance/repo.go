package maintenance

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

func (r *Repo) Create(ctx context.Context, rec *Record) error {
	db := r.withCtx(ctx)
	if db == nil {
		return fmt.Errorf("repo db is nil")
	}
	return db.Create(rec).Error
}

func (r *Repo) Save(ctx context.Context, rec *Record) error {
	db := r.withCtx(ctx)
	if db == nil {
		return fmt.Errorf("repo db is nil")
	}
	return db.Save(rec).Error
}

func (r *Repo) GetByID(ctx context.Context, id string) (*Record, error) {
	db := r.withCtx(ctx)
	if db == nil {
		return nil, fmt.Errorf("repo db is nil")
	}
	var rec Record
	if err := db.Where("id = ?", id).First(&rec).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

// ExistsExact 精确去重：同车、同起止、同描述视为重复登记。
func (r *Repo) ExistsExact(ctx context.Context, vehicleID string, start, end time.Time, description string) (bool, error) {
	db := r.withCtx(ctx)
	if db == nil {
		return false, fmt.Errorf("repo db is nil")
	}
	var count int64
	err := db.Model(&Record{}).
		Where("vehicle_id = ? AND start_time = ? AND end_time = ? AND description = ?",
			vehicleID, start.UTC(), end.UTC(), description).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// List 按可选条件分页列出保养记录。
func (r *Repo) List(ctx context.Context, vehicleID string, status Status, offset, limit int) ([]Record, int64, error) {
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

	q := db.Model(&Record{})
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
	var records []Record
	if err := q.Order("start_time DESC").Offset(offset).Limit(limit).Find(&records).Error; err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// ListOpen 列出所有非终态保养记录，供对账扫描。
func (r *Repo) ListOpen(ctx context.Context) ([]Record, error) {
	db := r.withCtx(ctx)
	if db == nil {
		return nil, fmt.Errorf("repo db is nil")
	}
	var records []Record
	err := db.Where("status IN ?", []Status{StatusReserved, StatusActive}).Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// BlockingIntervals 实现 schedule.IntervalSource。
func (r *Repo) BlockingIntervals(ctx context.Context, vehicleID string, statuses []string) ([]schedule.Interval, error) {
	db := r.withCtx(ctx)
	if db == nil {
		return nil, fmt.Errorf("repo db is nil")
	}
	var records []Record
	err := db.Where("vehicle_id = ? AND status IN ?", vehicleID, statuses).Find(&records).Error
	if err != nil {
		return nil, err
	}
	intervals := make([]schedule.Interval, 0, len(records))
	for i := range records {
		intervals = append(intervals, records[i].Interval())
	}
	return intervals, nil
}
