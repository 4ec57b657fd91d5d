package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"planetarium-booking/internal/data/entity"
	"planetarium-booking/internal/data/repository"
	"planetarium-booking/internal/dto/request"
	"planetarium-booking/internal/dto/response"
	"planetarium-booking/pkg/redisx"
	"planetarium-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type DomeService interface {
	GetDomes(ctx context.Context) ([]response.DomeResponse, error)
	GetDomeByID(ctx context.Context, domeID string) (*response.DomeResponse, error)
	CreateDome(ctx context.Context, req *request.DomeRequest) (*response.DomeResponse, error)
	UpdateDome(ctx context.Context, domeID string, req *request.DomeUpdateRequest) (*response.DomeResponse, error)
	DeleteDome(ctx context.Context, domeID string) error
}

type domeService struct {
	repo  *repository.Repository
	cache *redisx.Cache
	log   *zap.Logger
}

func NewDomeService(repo *repository.Repository, cache *redisx.Cache, log *zap.Logger) DomeService {
	return &domeService{
		repo:  repo,
		cache: cache,
		log:   log.With(zap.String("service", "dome")),
	}
}

func (s *domeService) GetDomes(ctx context.Context) ([]response.DomeResponse, error) {
	return redisx.GetOrSetJSON(ctx, s.cache, redisx.KeyDomes(), func(ctx context.Context) ([]response.DomeResponse, error) {
		domes, err := s.repo.Dome.FindAll(ctx)
		if err != nil {
			s.log.Error("Failed to get domes", zap.Error(err))
			return nil, fmt.Errorf("get domes: %w", err)
		}

		out := make([]response.DomeResponse, len(domes))
		for i, d := range domes {
			out[i] = response.DomeToResponse(d)
		}
		return out, nil
	})
}

func (s *domeService) GetDomeByID(ctx context.Context, domeID string) (*response.DomeResponse, error) {
	dome, err := s.find(ctx, domeID)
	if err != nil {
		return nil, err
	}

	resp := response.DomeToResponse(dome)
	return &resp, nil
}

func (s *domeService) CreateDome(ctx context.Context, req *request.DomeRequest) (*response.DomeResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create dome validation failed", zap.Any("errors", errs))
		return nil, &ValidationError{Fields: errs}
	}

	dome := &entity.Dome{
		Record:     entity.NewRecord(time.Now()),
		Name:       req.Name,
		Rows:       req.Rows,
		SeatsInRow: req.SeatsInRow,
	}

	if err := s.repo.Dome.Create(ctx, dome); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, &AlreadyExistsError{Resource: "planetarium dome", Field: "name", Value: req.Name}
		}
		return nil, fmt.Errorf("create dome: %w", err)
	}

	s.invalidate(ctx)
	s.log.Info("Dome created",
		zap.String("dome_id", dome.ID.String()),
		zap.Int("capacity", dome.Capacity()),
	)

	resp := response.DomeToResponse(dome)
	return &resp, nil
}

// UpdateDome may shrink the grid under tickets already sold; those tickets
// are left as they are.
func (s *domeService) UpdateDome(ctx context.Context, domeID string, req *request.DomeUpdateRequest) (*response.DomeResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	dome, err := s.find(ctx, domeID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		dome.Name = *req.Name
	}
	if req.Rows != nil {
		dome.Rows = *req.Rows
	}
	if req.SeatsInRow != nil {
		dome.SeatsInRow = *req.SeatsInRow
	}
	dome.Touch(time.Now())

	if err := s.repo.Dome.Update(ctx, dome); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, &AlreadyExistsError{Resource: "planetarium dome", Field: "name", Value: dome.Name}
		}
		return nil, fmt.Errorf("update dome: %w", err)
	}

	s.invalidate(ctx)

	resp := response.DomeToResponse(dome)
	return &resp, nil
}

func (s *domeService) DeleteDome(ctx context.Context, domeID string) error {
	id, err := uuid.Parse(domeID)
	if err != nil {
		return newValidationError("id", "Must be a valid UUID")
	}

	if err := s.repo.Dome.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete dome: %w", err)
	}

	s.invalidate(ctx)
	return nil
}

func (s *domeService) find(ctx context.Context, domeID string) (*entity.Dome, error) {
	id, err := uuid.Parse(domeID)
	if err != nil {
		return nil, newValidationError("id", "Must be a valid UUID")
	}

	dome, err := s.repo.Dome.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find dome: %w", err)
	}
	if dome == nil {
		return nil, fmt.Errorf("planetarium dome %s: %w", domeID, repository.ErrNotFound)
	}

	return dome, nil
}

func (s *domeService) invalidate(ctx context.Context) {
	if err := s.cache.Del(ctx, redisx.KeyDomes()); err != nil {
		s.log.Warn("Failed to invalidate dome cache", zap.Error(err))
	}
}
