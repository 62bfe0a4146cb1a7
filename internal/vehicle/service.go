package vehicle

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/DriveFleet/DriveFleet/internal/common/apperr"
	"github.com/DriveFleet/DriveFleet/internal/common/cache"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CacheKey 车辆读缓存的 key；写路径与对账负责失效。
func CacheKey(id string) string {
	return "vehicle:" + id
}

// Service 封装车辆领域的用例（不依赖 HTTP），便于复用和测试。
type Service struct {
	repo  *Repo
	cache *cache.Cache // 可为 nil（未启用 Redis）
}

func NewService(repo *Repo, c *cache.Cache) *Service {
	return &Service{repo: repo, cache: c}
}

// RegisterInput 登记车辆的入参。
type RegisterInput struct {
	Plate           string
	VIN             string
	Brand           string
	Model           string
	Year            int
	DailyPriceCents int64
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (*Vehicle, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	plate := strings.TrimSpace(in.Plate)
	if plate == "" {
		return nil, apperr.New(apperr.CodeInvalid, "plate required")
	}

	exists, err := s.repo.ExistsByPlate(ctx, plate)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.New(apperr.CodeAlreadyExists, "vehicle with plate %s already exists", plate)
	}

	v := &Vehicle{
		ID:              uuid.NewString(),
		Plate:           plate,
		VIN:             strings.TrimSpace(in.VIN),
		Brand:           strings.TrimSpace(in.Brand),
		Model:           strings.TrimSpace(in.Model),
		Year:            in.Year,
		DailyPriceCents: in.DailyPriceCents,
		Status:          StatusAvailable,
	}
	if err := s.repo.Create(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Vehicle, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperr.New(apperr.CodeInvalid, "id required")
	}

	var cached Vehicle
	if s.cache.GetJSON(ctx, CacheKey(id), &cached) {
		return &cached, nil
	}

	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.CodeNotFound, "vehicle %s not found", id)
		}
		return nil, err
	}
	s.cache.SetJSON(ctx, CacheKey(id), v)
	return v, nil
}

func (s *Service) List(ctx context.Context, status Status, offset, limit int) ([]Vehicle, int64, error) {
	if s == nil || s.repo == nil {
		return nil, 0, fmt.Errorf("service not initialized")
	}
	return s.repo.List(ctx, status, offset, limit)
}

// SetOutOfOrder 人工停用/恢复。
// 恢复时先置回 AVAILABLE，下一轮对账会按占用区间重新投影。
func (s *Service) SetOutOfOrder(ctx context.Context, id string, on bool) (*Vehicle, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	v, err := s.repo.FindByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.CodeNotFound, "vehicle %s not found", id)
		}
		return nil, err
	}

	if on {
		v.Status = StatusOutOfOrder
	} else {
		if v.Status != StatusOutOfOrder {
			return v, nil
		}
		v.Status = StatusAvailable
	}
	if err := s.repo.Save(ctx, v); err != nil {
		return nil, err
	}
	s.cache.Del(ctx, CacheKey(v.ID))
	return v, nil
}

// Delete 逻辑删除车辆。
func (s *Service) Delete(ctx context.Context, id string) error {
	if s == nil || s.repo == nil {
		return fmt.Errorf("service not initialized")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return apperr.New(apperr.CodeInvalid, "id required")
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.New(apperr.CodeNotFound, "vehicle %s not found", id)
		}
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Del(ctx, CacheKey(id))
	return nil
}
