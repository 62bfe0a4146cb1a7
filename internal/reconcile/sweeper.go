package reconcile

import (
	"context"
	"fmt"
	"time"

	"github.com/DriveFleet/DriveFleet/internal/booking"
	"github.com/DriveFleet/DriveFleet/internal/common/cache"
	"github.com/DriveFleet/DriveFleet/internal/common/logger"
	"github.com/DriveFleet/DriveFleet/internal/maintenance"
	"github.com/DriveFleet/DriveFleet/internal/vehicle"
)

// Sweeper 全量状态对账：
//  1. 把所有非终态订单/保养按 now 推到应处状态
//  2. 按推导后的占用情况重新投影每辆车的状态
//
// 整个过程是纯推导 + 一次事务写回，幂等：同一 now 跑多少遍结果一样。
type Sweeper struct {
	store Store
	cache *cache.Cache
	log   logger.Logger
}

func NewSweeper(store Store, c *cache.Cache, log logger.Logger) *Sweeper {
	return &Sweeper{store: store, cache: c, log: log}
}

func (s *Sweeper) Reconcile(ctx context.Context, now time.Time) error {
	if s == nil || s.store == nil {
		return fmt.Errorf("sweeper not initialized")
	}
	now = now.UTC()

	openBookings, err := s.store.ListOpenBookings(ctx)
	if err != nil {
		return fmt.Errorf("list open bookings: %w", err)
	}
	openServices, err := s.store.ListOpenServices(ctx)
	if err != nil {
		return fmt.Errorf("list open services: %w", err)
	}
	vehicles, err := s.store.ListVehicles(ctx)
	if err != nil {
		return fmt.Errorf("list vehicles: %w", err)
	}

	var ch Changes

	// 占用按流转后的状态统计，避免同一轮内先推订单再投影车辆时用到旧状态
	rented := make(map[string]bool)
	for i := range openBookings {
		b := openBookings[i]
		next := booking.StatusAt(b.Status, b.Start, b.End, now)
		if next == booking.StatusActive {
			rented[b.VehicleID] = true
		}
		if next != b.Status {
			b.Status = next
			ch.Bookings = append(ch.Bookings, b)
		}
	}

	inService := make(map[string]bool)
	for i := range openServices {
		rec := openServices[i]
		next := maintenance.StatusAt(rec.Status, rec.Start, rec.End, now)
		if next == maintenance.StatusActive {
			inService[rec.VehicleID] = true
		}
		if next != rec.Status {
			rec.Status = next
			ch.Services = append(ch.Services, rec)
		}
	}

	for i := range vehicles {
		v := vehicles[i]
		next := vehicle.ProjectStatus(v.Status, rented[v.ID], inService[v.ID])
		if next != v.Status {
			v.Status = next
			ch.Vehicles = append(ch.Vehicles, v)
		}
	}

	if ch.Empty() {
		return nil
	}
	if err := s.store.Apply(ctx, ch); err != nil {
		return fmt.Errorf("apply changes: %w", err)
	}
	for i := range ch.Vehicles {
		s.cache.Del(ctx, vehicle.CacheKey(ch.Vehicles[i].ID))
	}

	s.log.WithFields(map[string]interface{}{
		"bookings": len(ch.Bookings),
		"services": len(ch.Services),
		"vehicles": len(ch.Vehicles),
		"now":      now.Format(time.RFC3339),
	}).Info("reconcile applied")
	return nil
}
