package schedule

import (
	"context"
	"fmt"

	"github.com/DriveFleet/DriveFleet/internal/common/apperr"
)

// 占用态（blocking status）：处于这些状态的区间参与冲突判定。
// 终态 COMPLETED / CANCELED 不占用车辆。
var (
	BookingBlocking = []string{"RESERVED", "ACTIVE"}
	ServiceBlocking = []string{"RESERVED", "ACTIVE"}
)

// IntervalSource 提供某辆车上处于指定状态的未删除区间。
// 由订单/保养的存储层实现；Checker 本身是纯读组件。
type IntervalSource interface {
	BlockingIntervals(ctx context.Context, vehicleID string, statuses []string) ([]Interval, error)
}

// Checker 判定候选区间是否与车辆上已有的订单/保养区间冲突。
type Checker struct {
	bookings IntervalSource
	services IntervalSource
}

func NewChecker(bookings, services IntervalSource) *Checker {
	return &Checker{bookings: bookings, services: services}
}

// FindConflict 返回第一个与候选区间相交的已有区间；没有冲突返回 nil。
// 订单和保养统一用 Interval.Overlaps 判定（历史实现里两边用过不同的
// 比较组合，属于缺陷，这里不保留）。
func (c *Checker) FindConflict(ctx context.Context, vehicleID string, candidate Interval) (*Interval, error) {
	return c.FindConflictExcluding(ctx, vehicleID, candidate, "", "")
}

// FindConflictExcluding 同 FindConflict，但跳过指定的区间本身——
// 改期时不能把旧区间算作自己的冲突。
func (c *Checker) FindConflictExcluding(ctx context.Context, vehicleID string, candidate Interval, excludeKind Kind, excludeRefID string) (*Interval, error) {
	if c == nil || c.bookings == nil || c.services == nil {
		return nil, fmt.Errorf("checker not initialized")
	}

	// 先查订单再查保养；两类都可能挡住任意一类的新请求
	found, err := c.scan(ctx, c.bookings, vehicleID, BookingBlocking, candidate, KindBooking, excludeKind, excludeRefID)
	if err != nil || found != nil {
		return found, err
	}
	return c.scan(ctx, c.services, vehicleID, ServiceBlocking, candidate, KindService, excludeKind, excludeRefID)
}

func (c *Checker) scan(ctx context.Context, src IntervalSource, vehicleID string, blocking []string, candidate Interval, kind, excludeKind Kind, excludeRefID string) (*Interval, error) {
	existing, err := src.BlockingIntervals(ctx, vehicleID, blocking)
	if err != nil {
		return nil, fmt.Errorf("load %s intervals: %w", kind, err)
	}
	for i := range existing {
		if kind == excludeKind && existing[i].RefID == excludeRefID {
			continue
		}
		if candidate.Overlaps(existing[i]) {
			hit := existing[i]
			return &hit, nil
		}
	}
	return nil, nil
}

// CheckAvailability 对外的可用性检查：区间可用返回 nil，
// 冲突返回带冲突区间信息的 NOT_AVAILABLE 业务错误。
func (c *Checker) CheckAvailability(ctx context.Context, vehicleID string, candidate Interval, kind Kind) error {
	conflict, err := c.FindConflict(ctx, vehicleID, candidate)
	if err != nil {
		return err
	}
	if conflict != nil {
		return apperr.New(apperr.CodeNotAvailable,
			"vehicle %s is not available for %s: conflicts with %s", vehicleID, kind, conflict)
	}
	return nil
}
