package usecase

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
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

const showImageDir = "astronomy-shows"

type ShowService interface {
	GetShows(ctx context.Context, title, themes string) ([]response.AstronomyShowResponse, error)
	GetShowByID(ctx context.Context, showID string) (*response.AstronomyShowDetailResponse, error)
	CreateShow(ctx context.Context, req *request.AstronomyShowRequest) (*response.AstronomyShowDetailResponse, error)
	UpdateShow(ctx context.Context, showID string, req *request.AstronomyShowUpdateRequest) (*response.AstronomyShowDetailResponse, error)
	DeleteShow(ctx context.Context, showID string) error
	UploadImage(ctx context.Context, showID string, file multipart.File, header *multipart.FileHeader) (*response.AstronomyShowDetailResponse, error)
}

type showService struct {
	repo   *repository.Repository
	cache  *redisx.Cache
	upload utils.UploadConfig
	log    *zap.Logger
}

func NewShowService(repo *repository.Repository, cache *redisx.Cache, config *utils.Config, log *zap.Logger) ShowService {
	return &showService{
		repo:  repo,
		cache: cache,
		upload: utils.UploadConfig{
			MaxSizeBytes:     config.Upload.MaxSizeBytes,
			AllowedMimeTypes: utils.DefaultImageMimeTypes,
			BasePath:         config.App.MediaPath,
		},
		log: log.With(zap.String("service", "astronomy_show")),
	}
}

// GetShows filters by a case-insensitive title substring and by a comma
// separated list of theme ids; both filters are optional and AND-combined.
func (s *showService) GetShows(ctx context.Context, title, themes string) ([]response.AstronomyShowResponse, error) {
	filter := repository.ShowFilter{Title: title}

	if themes != "" {
		for _, part := range strings.Split(themes, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := uuid.Parse(part)
			if err != nil {
				return nil, newValidationError("show_themes", "Must be a comma separated list of UUIDs")
			}
			filter.ThemeIDs = append(filter.ThemeIDs, id)
		}
	}

	shows, err := s.repo.AstronomyShow.FindAll(ctx, filter)
	if err != nil {
		s.log.Error("Failed to get astronomy shows",
			zap.Error(err),
			zap.String("title", title),
			zap.String("show_themes", themes),
		)
		return nil, fmt.Errorf("get astronomy shows: %w", err)
	}

	themeNames, err := s.themeNames(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]response.AstronomyShowResponse, len(shows))
	for i, show := range shows {
		out[i] = response.AstronomyShowToResponse(show, themeNames)
	}

	return out, nil
}

func (s *showService) GetShowByID(ctx context.Context, showID string) (*response.AstronomyShowDetailResponse, error) {
	id, err := uuid.Parse(showID)
	if err != nil {
		return nil, newValidationError("id", "Must be a valid UUID")
	}

	resp, err := redisx.GetOrSetJSON(ctx, s.cache, redisx.KeyShow(id.String()), func(ctx context.Context) (*response.AstronomyShowDetailResponse, error) {
		show, err := s.find(ctx, id)
		if err != nil {
			return nil, err
		}
		return s.detail(ctx, show)
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}

func (s *showService) CreateShow(ctx context.Context, req *request.AstronomyShowRequest) (*response.AstronomyShowDetailResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create astronomy show validation failed", zap.Any("errors", errs))
		return nil, &ValidationError{Fields: errs}
	}

	themeIDs, err := s.resolveThemes(ctx, req.ShowThemes)
	if err != nil {
		return nil, err
	}

	show := &entity.AstronomyShow{
		Record:      entity.NewRecord(time.Now()),
		Title:       req.Title,
		Description: req.Description,
		ThemeIDs:    themeIDs,
	}

	err = s.repo.UoW.Do(ctx, func(ctx context.Context, tx *repository.Repository, _ func(repository.AfterCommit)) error {
		if err := tx.AstronomyShow.Create(ctx, show); err != nil {
			return err
		}
		return tx.AstronomyShow.ReplaceThemes(ctx, show.ID, themeIDs)
	})
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, &AlreadyExistsError{Resource: "astronomy show", Field: "title", Value: req.Title}
		}
		if errors.Is(err, repository.ErrForeignKey) {
			return nil, &ReferenceError{Field: "show_themes", ID: strings.Join(req.ShowThemes, ",")}
		}
		return nil, fmt.Errorf("create astronomy show: %w", err)
	}

	s.log.Info("Astronomy show created",
		zap.String("show_id", show.ID.String()),
		zap.String("title", show.Title),
		zap.Int("themes", len(themeIDs)),
	)

	return s.detail(ctx, show)
}

func (s *showService) UpdateShow(ctx context.Context, showID string, req *request.AstronomyShowUpdateRequest) (*response.AstronomyShowDetailResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	id, err := uuid.Parse(showID)
	if err != nil {
		return nil, newValidationError("id", "Must be a valid UUID")
	}

	show, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		show.Title = *req.Title
	}
	if req.Description != nil {
		show.Description = *req.Description
	}

	replaceThemes := req.ShowThemes != nil
	if replaceThemes {
		show.ThemeIDs, err = s.resolveThemes(ctx, req.ShowThemes)
		if err != nil {
			return nil, err
		}
	}
	show.Touch(time.Now())

	err = s.repo.UoW.Do(ctx, func(ctx context.Context, tx *repository.Repository, _ func(repository.AfterCommit)) error {
		if err := tx.AstronomyShow.Update(ctx, show); err != nil {
			return err
		}
		if replaceThemes {
			return tx.AstronomyShow.ReplaceThemes(ctx, show.ID, show.ThemeIDs)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, &AlreadyExistsError{Resource: "astronomy show", Field: "title", Value: show.Title}
		}
		return nil, fmt.Errorf("update astronomy show: %w", err)
	}

	s.invalidate(ctx, show.ID)
	return s.detail(ctx, show)
}

// DeleteShow cascades to the show's sessions and their tickets.
func (s *showService) DeleteShow(ctx context.Context, showID string) error {
	id, err := uuid.Parse(showID)
	if err != nil {
		return newValidationError("id", "Must be a valid UUID")
	}

	show, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.AstronomyShow.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete astronomy show: %w", err)
	}

	if show.ImagePath != nil {
		if err := utils.DeleteUpload(s.upload.BasePath, *show.ImagePath); err != nil {
			s.log.Warn("Failed to remove show image", zap.Error(err), zap.String("path", *show.ImagePath))
		}
	}

	s.invalidate(ctx, id)
	return nil
}

// UploadImage stores the file under a slug of the title and replaces the
// previous image, which is removed from disk.
func (s *showService) UploadImage(ctx context.Context, showID string, file multipart.File, header *multipart.FileHeader) (*response.AstronomyShowDetailResponse, error) {
	id, err := uuid.Parse(showID)
	if err != nil {
		return nil, newValidationError("id", "Must be a valid UUID")
	}

	show, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	path, err := utils.SaveUpload(file, header, showImageDir, utils.Slugify(show.Title), s.upload)
	if err != nil {
		if errors.Is(err, utils.ErrFileTooLarge) || errors.Is(err, utils.ErrFileType) {
			return nil, newValidationError("image", err.Error())
		}
		return nil, fmt.Errorf("save show image: %w", err)
	}

	if err := s.repo.AstronomyShow.UpdateImage(ctx, id, path); err != nil {
		_ = utils.DeleteUpload(s.upload.BasePath, path)
		return nil, fmt.Errorf("update show image: %w", err)
	}

	if show.ImagePath != nil && *show.ImagePath != path {
		if err := utils.DeleteUpload(s.upload.BasePath, *show.ImagePath); err != nil {
			s.log.Warn("Failed to remove previous show image", zap.Error(err), zap.String("path", *show.ImagePath))
		}
	}
	show.ImagePath = &path

	s.invalidate(ctx, id)
	s.log.Info("Astronomy show image uploaded", zap.String("show_id", showID), zap.String("path", path))

	return s.detail(ctx, show)
}

func (s *showService) find(ctx context.Context, id uuid.UUID) (*entity.AstronomyShow, error) {
	show, err := s.repo.AstronomyShow.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find astronomy show: %w", err)
	}
	if show == nil {
		return nil, fmt.Errorf("astronomy show %s: %w", id, repository.ErrNotFound)
	}
	return show, nil
}

func (s *showService) detail(ctx context.Context, show *entity.AstronomyShow) (*response.AstronomyShowDetailResponse, error) {
	themes, err := s.repo.ShowTheme.FindByIDs(ctx, show.ThemeIDs)
	if err != nil {
		return nil, fmt.Errorf("load show themes: %w", err)
	}

	resp := response.AstronomyShowToDetailResponse(show, themes)
	return &resp, nil
}

// resolveThemes parses the ids and checks every one of them exists.
func (s *showService) resolveThemes(ctx context.Context, raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	seen := make(map[uuid.UUID]bool, len(raw))
	for i, r := range raw {
		id, err := uuid.Parse(r)
		if err != nil {
			return nil, newValidationError(fmt.Sprintf("show_themes[%d]", i), "Must be a valid UUID")
		}
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	if len(ids) == 0 {
		return ids, nil
	}

	themes, err := s.repo.ShowTheme.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("find show themes: %w", err)
	}

	found := make(map[uuid.UUID]bool, len(themes))
	for _, t := range themes {
		found[t.ID] = true
	}
	for _, id := range ids {
		if !found[id] {
			return nil, &ReferenceError{Field: "show_themes", ID: id.String()}
		}
	}

	return ids, nil
}

func (s *showService) themeNames(ctx context.Context) (map[string]string, error) {
	themes, err := redisx.GetOrSetJSON(ctx, s.cache, redisx.KeyThemes(), func(ctx context.Context) ([]response.ShowThemeResponse, error) {
		all, err := s.repo.ShowTheme.FindAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("get show themes: %w", err)
		}
		out := make([]response.ShowThemeResponse, len(all))
		for i, t := range all {
			out[i] = response.ShowThemeToResponse(t)
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(themes))
	for _, t := range themes {
		names[t.ID] = t.Name
	}
	return names, nil
}

func (s *showService) invalidate(ctx context.Context, id uuid.UUID) {
	if err := s.cache.Del(ctx, redisx.KeyShow(id.String())); err != nil {
		s.log.Warn("Failed to invalidate show cache", zap.Error(err), zap.String("show_id", id.String()))
	}
}
