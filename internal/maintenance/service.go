package maintenance

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/DriveFleet/DriveFleet/internal/common/apperr"
	"github.com/DriveFleet/DriveFleet/internal/common/logger"
	"github.com/DriveFleet/DriveFleet/internal/schedule"
	"github.com/DriveFleet/DriveFleet/internal/staff"
	"github.com/DriveFleet/DriveFleet/internal/vehicle"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service 保养用例层。登记流程与订单创建共用同一套骨架：
// 锁车辆行 -> 守卫 -> 冲突检查 -> 插入。
type Service struct {
	db       *gorm.DB
	repo     *Repo
	vehicles *vehicle.Repo
	staff    *staff.Repo
	checker  *schedule.Checker
	log      logger.Logger
}

func NewService(db *gorm.DB, repo *Repo, vehicles *vehicle.Repo,
	staffRepo *staff.Repo, checker *schedule.Checker, log logger.Logger) *Service {
	return &Service{
		db:       db,
		repo:     repo,
		vehicles: vehicles,
		staff:    staffRepo,
		checker:  checker,
		log:      log,
	}
}

// RegisterInput 登记保养的入参。
type RegisterInput struct {
	VehicleID   string
	StaffID     string
	Description string
	Start       time.Time
	End         time.Time
	CostCents   int64
}

// guardRegister 登记期守卫：员工存在 -> 岗位允许 -> 精确去重。
func guardRegister(member *staff.Staff, dup bool, in RegisterInput) error {
	if member == nil {
		return apperr.New(apperr.CodeNotFound, "staff %s not found", in.StaffID)
	}
	if !member.Position.CanRegisterService() {
		return apperr.New(apperr.CodePositionNotAllowed,
			"position %s is not allowed to register services", member.Position)
	}
	if dup {
		return apperr.New(apperr.CodeAlreadyExists,
			"service for vehicle %s with the same period and description already exists", in.VehicleID)
	}
	return nil
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (*Record, error) {
	if s == nil || s.db == nil || s.repo == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	in.VehicleID = strings.TrimSpace(in.VehicleID)
	in.StaffID = strings.TrimSpace(in.StaffID)
	in.Description = strings.TrimSpace(in.Description)
	if in.StaffID == "" {
		return nil, apperr.New(apperr.CodeInvalid, "staff id required")
	}
	if in.Description == "" {
		return nil, apperr.New(apperr.CodeInvalid, "description required")
	}
	if in.CostCents < 0 {
		return nil, apperr.New(apperr.CodeInvalid, "cost must not be negative")
	}
	candidate, err := schedule.NewInterval(in.VehicleID, in.Start, in.End)
	if err != nil {
		return nil, err
	}

	var created *Record
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 与订单创建竞争同一把车辆行锁，两类写入互相串行
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
		dup, err := s.repo.ExistsExact(ctx, in.VehicleID, candidate.Start, candidate.End, in.Description)
		if err != nil {
			return err
		}
		if err := guardRegister(member, dup, in); err != nil {
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

		created = &Record{
			ID:          uuid.NewString(),
			VehicleID:   in.VehicleID,
			StaffID:     in.StaffID,
			Description: in.Description,
			Start:       candidate.Start,
			End:         candidate.End,
			Status:      StatusReserved,
			CostCents:   in.CostCents,
		}
		return NewRepo(tx).Create(ctx, created)
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(map[string]interface{}{
		"service_id": created.ID,
		"vehicle_id": created.VehicleID,
		"start":      created.Start.Format(time.RFC3339),
		"end":        created.End.Format(time.RFC3339),
	}).Info("service registered")
	return created, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Record, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	rec, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.CodeNotFound, "service %s not found", id)
		}
		return nil, err
	}
	return rec, nil
}

func (s *Service) List(ctx context.Context, vehicleID string, status Status, offset, limit int) ([]Record, int64, error) {
	if s == nil || s.repo == nil {
		return nil, 0, fmt.Errorf("service not initialized")
	}
	return s.repo.List(ctx, strings.TrimSpace(vehicleID), status, offset, limit)
}

// UpdateInput 可更新字段；nil 表示不改。
type UpdateInput struct {
	Start       *time.Time
	End         *time.Time
	CostCents   *int64
	Description *string
}

// Update 改价/改描述/改期。改期要重新过冲突检查（跳过自己），
// 并按当前时刻立即重推导状态。
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*Record, error) {
	rec, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec.Status.Terminal() {
		return nil, apperr.New(apperr.CodeInvalid,
			"service %s is already finalized (%s)", rec.ID, rec.Status)
	}

	if in.CostCents != nil {
		if *in.CostCents < 0 {
			return nil, apperr.New(apperr.CodeInvalid, "cost must not be negative")
		}
		rec.CostCents = *in.CostCents
	}
	if in.Description != nil {
		desc := strings.TrimSpace(*in.Description)
		if desc == "" {
			return nil, apperr.New(apperr.CodeInvalid, "description required")
		}
		rec.Description = desc
	}

	if in.Start == nil && in.End == nil {
		if err := s.repo.Save(ctx, rec); err != nil {
			return nil, err
		}
		return rec, nil
	}

	newStart, newEnd := rec.Start, rec.End
	if in.Start != nil {
		newStart = *in.Start
	}
	if in.End != nil {
		newEnd = *in.End
	}
	candidate, err := schedule.NewInterval(rec.VehicleID, newStart, newEnd)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := vehicle.NewRepo(tx).LockByID(ctx, rec.VehicleID); err != nil {
			return err
		}
		conflict, err := s.checker.FindConflictExcluding(ctx, rec.VehicleID, candidate, schedule.KindService, rec.ID)
		if err != nil {
			return err
		}
		if conflict != nil {
			return apperr.New(apperr.CodeNotAvailable,
				"vehicle %s is not available: conflicts with %s", rec.VehicleID, conflict)
		}
		rec.Start = candidate.Start
		rec.End = candidate.End
		rec.Status = StatusAt(rec.Status, rec.Start, rec.End, time.Now().UTC())
		return NewRepo(tx).Save(ctx, rec)
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// Cancel 取消保养安排。终态不可再取消。
func (s *Service) Cancel(ctx context.Context, id string) (*Record, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	rec, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec.Status.Terminal() {
		return nil, apperr.New(apperr.CodeInvalid,
			"service %s is already finalized (%s)", rec.ID, rec.Status)
	}
	rec.Status = StatusCanceled
	if err := s.repo.Save(ctx, rec); err != nil {
		return nil, err
	}
	s.log.WithField("service_id", rec.ID).Info("service canceled")
	return rec, nil
}
