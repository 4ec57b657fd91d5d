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
	"planetarium-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SessionService interface {
	GetSessions(ctx context.Context, filter *request.ShowSessionFilter) ([]response.ShowSessionListResponse, error)
	GetSessionByID(ctx context.Context, sessionID string) (*response.ShowSessionDetailResponse, error)
	AvailableSeats(ctx context.Context, sessionID string) (int, error)
	CreateSession(ctx context.Context, req *request.ShowSessionRequest) (*response.ShowSessionResponse, error)
	UpdateSession(ctx context.Context, sessionID string, req *request.ShowSessionUpdateRequest) (*response.ShowSessionResponse, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

type sessionService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewSessionService(repo *repository.Repository, log *zap.Logger) SessionService {
	return &sessionService{
		repo: repo,
		log:  log.With(zap.String("service", "show_session")),
	}
}

// GetSessions lists sessions ordered by show time with tickets_available
// computed from the current ticket count.
func (s *sessionService) GetSessions(ctx context.Context, filter *request.ShowSessionFilter) ([]response.ShowSessionListResponse, error) {
	repoFilter, err := parseSessionFilter(filter)
	if err != nil {
		return nil, err
	}

	sessions, err := s.repo.ShowSession.FindAll(ctx, repoFilter)
	if err != nil {
		s.log.Error("Failed to get show sessions",
			zap.Error(err),
			zap.String("date", filter.Date),
			zap.String("astronomy_show", filter.AstronomyShow),
		)
		return nil, fmt.Errorf("get show sessions: %w", err)
	}

	out := make([]response.ShowSessionListResponse, len(sessions))
	for i, v := range sessions {
		out[i] = response.ShowSessionToListResponse(v)
	}

	return out, nil
}

func parseSessionFilter(filter *request.ShowSessionFilter) (repository.SessionFilter, error) {
	var out repository.SessionFilter
	if filter == nil {
		return out, nil
	}

	if errs := utils.ValidateStruct(filter); len(errs) > 0 {
		return out, &ValidationError{Fields: errs}
	}

	if filter.Date != "" {
		date, err := time.Parse("2006-01-02", filter.Date)
		if err != nil {
			return out, newValidationError("date", "Must match the format 2006-01-02")
		}
		out.Date = &date
	}

	if filter.AstronomyShow != "" {
		id, err := uuid.Parse(filter.AstronomyShow)
		if err != nil {
			return out, newValidationError("astronomy_show", "Must be a valid UUID")
		}
		out.AstronomyShowID = &id
	}

	return out, nil
}

func (s *sessionService) GetSessionByID(ctx context.Context, sessionID string) (*response.ShowSessionDetailResponse, error) {
	view, err := s.findView(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	show, err := s.repo.AstronomyShow.FindByID(ctx, view.AstronomyShowID)
	if err != nil || show == nil {
		return nil, fmt.Errorf("load astronomy show of session %s: %w", sessionID, orNotFound(err))
	}

	themes, err := s.repo.ShowTheme.FindByShowID(ctx, show.ID)
	if err != nil {
		return nil, fmt.Errorf("load show themes: %w", err)
	}

	dome, err := s.repo.Dome.FindByID(ctx, view.DomeID)
	if err != nil || dome == nil {
		return nil, fmt.Errorf("load dome of session %s: %w", sessionID, orNotFound(err))
	}

	taken, err := s.repo.ShowSession.TakenPlaces(ctx, view.ID)
	if err != nil {
		return nil, fmt.Errorf("load taken places: %w", err)
	}

	return &response.ShowSessionDetailResponse{
		ID:               view.ID.String(),
		ShowTime:         view.ShowTime,
		AstronomyShow:    response.AstronomyShowToDetailResponse(show, themes),
		Dome:             response.DomeToResponse(dome),
		TakenPlaces:      response.PlacesToResponse(taken),
		TicketsAvailable: view.TicketsAvailable(),
	}, nil
}

// AvailableSeats is capacity(dome) minus the tickets sold, read fresh.
func (s *sessionService) AvailableSeats(ctx context.Context, sessionID string) (int, error) {
	view, err := s.findView(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	return view.TicketsAvailable(), nil
}

func (s *sessionService) CreateSession(ctx context.Context, req *request.ShowSessionRequest) (*response.ShowSessionResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create show session validation failed", zap.Any("errors", errs))
		return nil, &ValidationError{Fields: errs}
	}

	showID, domeID, err := s.resolveRefs(ctx, req.AstronomyShow, req.Dome)
	if err != nil {
		return nil, err
	}

	session := &entity.ShowSession{
		Record:          entity.NewRecord(time.Now()),
		AstronomyShowID: showID,
		DomeID:          domeID,
		ShowTime:        req.ShowTime,
	}

	if err := s.repo.ShowSession.Create(ctx, session); err != nil {
		if errors.Is(err, repository.ErrForeignKey) {
			return nil, &ReferenceError{Field: "astronomy_show or planetarium_dome", ID: req.AstronomyShow + ", " + req.Dome}
		}
		return nil, fmt.Errorf("create show session: %w", err)
	}

	s.log.Info("Show session created",
		zap.String("session_id", session.ID.String()),
		zap.Time("show_time", session.ShowTime),
	)

	resp := response.ShowSessionToResponse(session)
	return &resp, nil
}

// UpdateSession applies the fields present in req. Tickets already sold are
// not re-checked against a different dome.
func (s *sessionService) UpdateSession(ctx context.Context, sessionID string, req *request.ShowSessionUpdateRequest) (*response.ShowSessionResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	id, err := uuid.Parse(sessionID)
	if err != nil {
		return nil, newValidationError("id", "Must be a valid UUID")
	}

	session, err := s.repo.ShowSession.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find show session: %w", err)
	}
	if session == nil {
		return nil, fmt.Errorf("show session %s: %w", sessionID, repository.ErrNotFound)
	}

	showRef, domeRef := session.AstronomyShowID.String(), session.DomeID.String()
	if req.AstronomyShow != nil {
		showRef = *req.AstronomyShow
	}
	if req.Dome != nil {
		domeRef = *req.Dome
	}

	session.AstronomyShowID, session.DomeID, err = s.resolveRefs(ctx, showRef, domeRef)
	if err != nil {
		return nil, err
	}
	if req.ShowTime != nil {
		session.ShowTime = *req.ShowTime
	}
	session.Touch(time.Now())

	if err := s.repo.ShowSession.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("update show session: %w", err)
	}

	resp := response.ShowSessionToResponse(session)
	return &resp, nil
}

func (s *sessionService) DeleteSession(ctx context.Context, sessionID string) error {
	id, err := uuid.Parse(sessionID)
	if err != nil {
		return newValidationError("id", "Must be a valid UUID")
	}

	if err := s.repo.ShowSession.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete show session: %w", err)
	}
	return nil
}

func (s *sessionService) findView(ctx context.Context, sessionID string) (*entity.ShowSessionView, error) {
	id, err := uuid.Parse(sessionID)
	if err != nil {
		return nil, newValidationError("id", "Must be a valid UUID")
	}

	view, err := s.repo.ShowSession.FindViewByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find show session: %w", err)
	}
	if view == nil {
		return nil, fmt.Errorf("show session %s: %w", sessionID, repository.ErrNotFound)
	}

	return view, nil
}

// resolveRefs checks that the show and the dome exist.
func (s *sessionService) resolveRefs(ctx context.Context, showRef, domeRef string) (uuid.UUID, uuid.UUID, error) {
	showID, err := uuid.Parse(showRef)
	if err != nil {
		return uuid.Nil, uuid.Nil, newValidationError("astronomy_show", "Must be a valid UUID")
	}
	domeID, err := uuid.Parse(domeRef)
	if err != nil {
		return uuid.Nil, uuid.Nil, newValidationError("planetarium_dome", "Must be a valid UUID")
	}

	show, err := s.repo.AstronomyShow.FindByID(ctx, showID)
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("find astronomy show: %w", err)
	}
	if show == nil {
		return uuid.Nil, uuid.Nil, &ReferenceError{Field: "astronomy_show", ID: showRef}
	}

	dome, err := s.repo.Dome.FindByID(ctx, domeID)
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("find dome: %w", err)
	}
	if dome == nil {
		return uuid.Nil, uuid.Nil, &ReferenceError{Field: "planetarium_dome", ID: domeRef}
	}

	return showID, domeID, nil
}

func orNotFound(err error) error {
	if err != nil {
		return err
	}
	return repository.ErrNotFound
}
