package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/DriveFleet/DriveFleet/internal/common/apperr"
	"github.com/DriveFleet/DriveFleet/internal/common/cache"
	"github.com/DriveFleet/DriveFleet/internal/common/logger"
	"github.com/DriveFleet/DriveFleet/internal/customer"
	"github.com/DriveFleet/DriveFleet/internal/schedule"
	"github.com/DriveFleet/DriveFleet/internal/staff"
	"github.com/DriveFleet/DriveFleet/internal/vehicle"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service 订单用例层。创建走“锁车辆行 -> 守卫 -> 冲突检查 -> 插入”
// 的固定顺序；status 字段只在这里（取消）和对账里被写。
type Service struct {
	db        *gorm.DB
	repo      *Repo
	vehicles  *vehicle.Repo
	customers *customer.Repo
	staff     *staff.Repo
	checker   *schedule.Checker
	cache     *cache.Cache
	log       logger.Logger
	now       func() time.Time
}

func NewService(db *gorm.DB, repo *Repo, vehicles *vehicle.Repo, customers *customer.Repo,
	staffRepo *staff.Repo, checker *schedule.Checker, c *cache.Cache, log logger.Logger) *Service {
	return &Service{
		db:        db,
		repo:      repo,
		vehicles:  vehicles,
		customers: customers,
		staff:     staffRepo,
		checker:   checker,
		cache:     c,
		log:       log,
		now:       time.Now,
	}
}

// CreateInput 创建订单的入参；Start/End 为闭区间端点。
type CreateInput struct {
	VehicleID  string
	CustomerID string
	StaffID    string
	Start      time.Time
	End        time.Time
	CostCents  int64
}

// guardCreate 创建期守卫，按固定顺序返回第一个失败：
// 员工存在 -> 岗位允许 -> 客户存在 -> 精确去重。
// 抽成纯函数便于单测（查库由调用方完成）。
func guardCreate(member *staff.Staff, cust *customer.Customer, dup bool, in CreateInput) error {
	if member == nil {
		return apperr.New(apperr.CodeNotFound, "staff %s not found", in.StaffID)
	}
	if !member.Position.CanCreateBooking() {
		return apperr.New(apperr.CodePositionNotAllowed,
			"position %s is not allowed to create bookings", member.Position)
	}
	if cust == nil {
		return apperr.New(apperr.CodeNotFound, "customer %s not found", in.CustomerID)
	}
	if dup {
		return apperr.New(apperr.CodeAlreadyExists,
			"booking for vehicle %s with the same period already exists", in.VehicleID)
	}
	return nil
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*Booking, error) {
	if s == nil || s.db == nil || s.repo == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	in.VehicleID = strings.TrimSpace(in.VehicleID)
	in.CustomerID = strings.TrimSpace(in.CustomerID)
	in.StaffID = strings.TrimSpace(in.StaffID)
	if in.CustomerID == "" || in.StaffID == "" {
		return nil, apperr.New(apperr.CodeInvalid, "customer id and staff id required")
	}
	if in.CostCents < 0 {
		return nil, apperr.New(apperr.CodeInvalid, "cost must not be negative")
	}
	candidate, err := schedule.NewInterval(in.VehicleID, in.Start, in.End)
	if err != nil {
		return nil, err
	}

	var created *Booking
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 行锁串行化同一辆车的并发创建。锁内的存在性/冲突读走
		// 连接池（autocommit 快照），读到的必然是持锁前已提交的状态
		if _, err := vehicle.NewRepo(tx).LockByID(ctx, in.VehicleID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.CodeNotFound, "vehicle %s not found", in.VehicleID)
			}
			return err
		}

		member, err := s.staff.FindByID(ctx, in.StaffID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		cust, err := s.customers.FindByID(ctx, in.CustomerID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		dup, err := s.repo.ExistsExact(ctx, in.VehicleID, candidate.Start, candidate.End)
		if err != nil {
			return err
		}
		if err := guardCreate(member, cust, dup, in); err != nil {
			return err
		}

		conflict, err := s.checker.FindConflict(ctx, in.VehicleID, candidate)
		if err != nil {
			return err
		}
		if conflict != nil {
			return apperr.New(apperr.CodeNotAvailable,
				"vehicle %s is not available: conflicts with %s", in.VehicleID, conflict)
		}

		created = &Booking{
			ID:         uuid.NewString(),
			VehicleID:  in.VehicleID,
			CustomerID: in.CustomerID,
			StaffID:    in.StaffID,
			Start:      candidate.Start,
			End:        candidate.End,
			Status:     StatusReserved, // 起始即在当前时刻的情况由下一轮对账推进到 ACTIVE
			CostCents:  in.CostCents,
		}
		return NewRepo(tx).Create(ctx, created)
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(map[string]interface{}{
		"booking_id": created.ID,
		"vehicle_id": created.VehicleID,
		"start":      created.Start.Format(time.RFC3339),
		"end":        created.End.Format(time.RFC3339),
	}).Info("booking created")
	return created, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Booking, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	b, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.CodeNotFound, "booking %s not found", id)
		}
		return nil, err
	}
	return b, nil
}

func (s *Service) List(ctx context.Context, vehicleID string, status Status, offset, limit int) ([]Booking, int64, error) {
	if s == nil || s.repo == nil {
		return nil, 0, fmt.Errorf("service not initialized")
	}
	return s.repo.List(ctx, strings.TrimSpace(vehicleID), status, offset, limit)
}

// Cancel 取消订单。终态不可再取消；车辆状态由下一轮对账回收。
func (s *Service) Cancel(ctx context.Context, id string) (*Booking, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	b, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Status.Terminal() {
		return nil, apperr.New(apperr.CodeInvalid,
			"booking %s is already finalized (%s)", b.ID, b.Status)
	}
	b.Status = StatusCanceled
	if err := s.repo.Save(ctx, b); err != nil {
		return nil, err
	}
	s.log.WithField("booking_id", b.ID).Info("booking canceled")
	return b, nil
}

// UpdateInput 可更新字段；nil 表示不改。
type UpdateInput struct {
	Start     *time.Time
	End       *time.Time
	CostCents *int64
}

// Update 改价/改期。改期要重新过冲突检查（跳过自己），
// 并按当前时刻立即重推导状态，不等下一轮对账。
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*Booking, error) {
	b, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Status.Terminal() {
		return nil, apperr.New(apperr.CodeInvalid,
			"booking %s is already finalized (%s)", b.ID, b.Status)
	}

	if in.CostCents != nil {
		if *in.CostCents < 0 {
			return nil, apperr.New(apperr.CodeInvalid, "cost must not be negative")
		}
		b.CostCents = *in.CostCents
	}

	if in.Start == nil && in.End == nil {
		if err := s.repo.Save(ctx, b); err != nil {
			return nil, err
		}
		return b, nil
	}

	newStart, newEnd := b.Start, b.End
	if in.Start != nil {
		newStart = *in.Start
	}
	if in.End != nil {
		newEnd = *in.End
	}
	candidate, err := schedule.NewInterval(b.VehicleID, newStart, newEnd)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := vehicle.NewRepo(tx).LockByID(ctx, b.VehicleID); err != nil {
			return err
		}
		conflict, err := s.checker.FindConflictExcluding(ctx, b.VehicleID, candidate, schedule.KindBooking, b.ID)
		if err != nil {
			return err
		}
		if conflict != nil {
			return apperr.New(apperr.CodeNotAvailable,
				"vehicle %s is not available: conflicts with %s", b.VehicleID, conflict)
		}
		b.Start = candidate.Start
		b.End = candidate.End
		b.Status = StatusAt(b.Status, b.Start, b.End, s.now().UTC())
		return NewRepo(tx).Save(ctx, b)
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

// CheckAvailability 只读的可用性查询，不落库。kind 只影响错误文案，
// 两类请求走同一套冲突判定。
func (s *Service) CheckAvailability(ctx context.Context, vehicleID string, start, end time.Time, kind schedule.Kind) error {
	if s == nil || s.checker == nil {
		return fmt.Errorf("service not initialized")
	}
	vehicleID = strings.TrimSpace(vehicleID)
	candidate, err := schedule.NewInterval(vehicleID, start, end)
	if err != nil {
		return err
	}
	if _, err := s.vehicles.FindByID(ctx, vehicleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.New(apperr.CodeNotFound, "vehicle %s not found", vehicleID)
		}
		return err
	}
	if kind != schedule.KindService {
		kind = schedule.KindBooking
	}
	return s.checker.CheckAvailability(ctx, vehicleID, candidate, kind)
}
