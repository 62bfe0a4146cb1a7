package reconcile

import (
	"context"
	"fmt"

	"github.com/DriveFleet/DriveFleet/internal/booking"
	"github.com/DriveFleet/DriveFleet/internal/maintenance"
	"github.com/DriveFleet/DriveFleet/internal/vehicle"
	"gorm.io/gorm"
)

// Changes 一轮对账算出的全部状态变更。
type Changes struct {
	Bookings []booking.Booking
	Services []maintenance.Record
	Vehicles []vehicle.Vehicle
}

func (ch Changes) Empty() bool {
	return len(ch.Bookings) == 0 && len(ch.Services) == 0 && len(ch.Vehicles) == 0
}

// Store 对账需要的持久化能力。读出全部待流转实体，
// 变更在一个事务里落库。单测用内存实现替换。
type Store interface {
	ListOpenBookings(ctx context.Context) ([]booking.Booking, error)
	ListOpenServices(ctx context.Context) ([]maintenance.Record, error)
	ListVehicles(ctx context.Context) ([]vehicle.Vehicle, error)
	Apply(ctx context.Context, ch Changes) error
}

type gormStore struct {
	db       *gorm.DB
	bookings *booking.Repo
	services *maintenance.Repo
	vehicles *vehicle.Repo
}

func NewStore(db *gorm.DB) Store {
	return &gormStore{
		db:       db,
		bookings: booking.NewRepo(db),
		services: maintenance.NewRepo(db),
		vehicles: vehicle.NewRepo(db),
	}
}

func (s *gormStore) ListOpenBookings(ctx context.Context) ([]booking.Booking, error) {
	return s.bookings.ListOpen(ctx)
}

func (s *gormStore) ListOpenServices(ctx context.Context) ([]maintenance.Record, error) {
	return s.services.ListOpen(ctx)
}

func (s *gormStore) ListVehicles(ctx context.Context) ([]vehicle.Vehicle, error) {
	return s.vehicles.ListAll(ctx)
}

// Apply 在一个事务里写回所有变更：要么整轮生效，要么整轮重来。
func (s *gormStore) Apply(ctx context.Context, ch Changes) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("store db is nil")
	}
	if ch.Empty() {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range ch.Bookings {
			if err := tx.Save(&ch.Bookings[i]).Error; err != nil {
				return err
			}
		}
		for i := range ch.Services {
			if err := tx.Save(&ch.Services[i]).Error; err != nil {
				return err
			}
		}
		for i := range ch.Vehicles {
			if err := tx.Save(&ch.Vehicles[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
