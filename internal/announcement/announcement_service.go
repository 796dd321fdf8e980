package announcement

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type CreateAnnouncementRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	ValidFrom   string `json:"valid_from"`
	ValidTo     string `json:"valid_to"`
}

type UpdateAnnouncementRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	ValidFrom   *string `json:"valid_from"`
	ValidTo     *string `json:"valid_to"`
}

type Service interface {
	Create(ctx context.Context, creatorID uint, req CreateAnnouncementRequest) (*Announcement, error)
	Update(ctx context.Context, id uint, req UpdateAnnouncementRequest) (*Announcement, error)
	Toggle(ctx context.Context, id uint) (*Announcement, error)
	List(ctx context.Context) ([]Announcement, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository) Service {
	return &service{
		repo:   repo,
		logger: zap.L().Named("announcement.service"),
	}
}

func (s *service) Create(ctx context.Context, creatorID uint, req CreateAnnouncementRequest) (*Announcement, error) {
	a := &Announcement{
		Title:       req.Title,
		Description: req.Description,
		Active:      true,
		CreatedBy:   creatorID,
		ValidFrom:   parseDate(req.ValidFrom),
		ValidTo:     parseDate(req.ValidTo),
	}
	if err := s.repo.Create(ctx, a); err != nil {
		s.logger.Error("create announcement", zap.Error(err))
		return nil, err
	}
	s.logger.Info("announcement created", zap.Uint("id", a.ID), zap.Uint("created_by", creatorID))
	return a, nil
}

func (s *service) Update(ctx context.Context, id uint, req UpdateAnnouncementRequest) (*Announcement, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		a.Title = *req.Title
	}
	if req.Description != nil {
		a.Description = *req.Description
	}
	if req.ValidFrom != nil {
		a.ValidFrom = parseDate(*req.ValidFrom)
	}
	if req.ValidTo != nil {
		a.ValidTo = parseDate(*req.ValidTo)
	}

	if err := s.repo.Update(ctx, a); err != nil {
		s.logger.Error("update announcement", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return a, nil
}

func (s *service) Toggle(ctx context.Context, id uint) (*Announcement, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	a.Active = !a.Active
	if err := s.repo.Update(ctx, a); err != nil {
		s.logger.Error("toggle announcement", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}

	s.logger.Info("announcement toggled", zap.Uint("id", id), zap.Bool("active", a.Active))
	return a, nil
}

func (s *service) List(ctx context.Context) ([]Announcement, error) {
	return s.repo.List(ctx)
}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}
