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

type ThemeService interface {
	GetThemes(ctx context.Context) ([]response.ShowThemeResponse, error)
	CreateTheme(ctx context.Context, req *request.ShowThemeRequest) (*response.ShowThemeResponse, error)
	DeleteTheme(ctx context.Context, themeID string) error
}

type themeService struct {
	repo  *repository.Repository
	cache *redisx.Cache
	log   *zap.Logger
}

func NewThemeService(repo *repository.Repository, cache *redisx.Cache, log *zap.Logger) ThemeService {
	return &themeService{
		repo:  repo,
		cache: cache,
		log:   log.With(zap.String("service", "show_theme")),
	}
}

func (s *themeService) GetThemes(ctx context.Context) ([]response.ShowThemeResponse, error) {
	return redisx.GetOrSetJSON(ctx, s.cache, redisx.KeyThemes(), func(ctx context.Context) ([]response.ShowThemeResponse, error) {
		themes, err := s.repo.ShowTheme.FindAll(ctx)
		if err != nil {
			s.log.Error("Failed to get show themes", zap.Error(err))
			return nil, fmt.Errorf("get show themes: %w", err)
		}

		out := make([]response.ShowThemeResponse, len(themes))
		for i, t := range themes {
			out[i] = response.ShowThemeToResponse(t)
		}
		return out, nil
	})
}

func (s *themeService) CreateTheme(ctx context.Context, req *request.ShowThemeRequest) (*response.ShowThemeResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	theme := &entity.ShowTheme{
		CreatedRecord: entity.NewCreatedRecord(time.Now()),
		Name:          req.Name,
	}

	if err := s.repo.ShowTheme.Create(ctx, theme); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, &AlreadyExistsError{Resource: "show theme", Field: "name", Value: req.Name}
		}
		return nil, fmt.Errorf("create show theme: %w", err)
	}

	s.invalidate(ctx)
	s.log.Info("Show theme created", zap.String("theme_id", theme.ID.String()), zap.String("name", theme.Name))

	resp := response.ShowThemeToResponse(theme)
	return &resp, nil
}

// DeleteTheme also drops the theme from every show that had it, so cached
// show details are flushed as well.
func (s *themeService) DeleteTheme(ctx context.Context, themeID string) error {
	id, err := uuid.Parse(themeID)
	if err != nil {
		return newValidationError("id", "Must be a valid UUID")
	}

	shows, err := s.repo.AstronomyShow.FindAll(ctx, repository.ShowFilter{ThemeIDs: []uuid.UUID{id}})
	if err != nil {
		return fmt.Errorf("find shows of theme: %w", err)
	}

	if err := s.repo.ShowTheme.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete show theme: %w", err)
	}

	keys := make([]string, len(shows))
	for i, show := range shows {
		keys[i] = redisx.KeyShow(show.ID.String())
	}
	if err := s.cache.Del(ctx, keys...); err != nil {
		s.log.Warn("Failed to invalidate show cache", zap.Error(err))
	}

	s.invalidate(ctx)
	return nil
}

func (s *themeService) invalidate(ctx context.Context) {
	if err := s.cache.Del(ctx, redisx.KeyThemes()); err != nil {
		s.log.Warn("Failed to invalidate theme cache", zap.Error(err))
	}
}
