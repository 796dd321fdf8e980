package holiday

import (
	"context"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"

	"github.com/deke-r/senseHrm/internal/shared/apperror"
)

type CreateHolidayRequest struct {
	Name        string `json:"name" binding:"required"`
	Date        string `json:"date" binding:"required"`
	Description string `json:"description"`
}

type UpdateHolidayRequest struct {
	Name        *string `json:"name"`
	Date        *string `json:"date"`
	Description *string `json:"description"`
}

type Service interface {
	Create(ctx context.Context, req CreateHolidayRequest) (*Holiday, error)
	Update(ctx context.Context, id uint, req UpdateHolidayRequest) (*Holiday, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]Holiday, error)
	Calendar(ctx context.Context) (string, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository) Service {
	return &service{
		repo:   repo,
		logger: zap.L().Named("holiday.service"),
	}
}

func (s *service) Create(ctx context.Context, req CreateHolidayRequest) (*Holiday, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, apperror.InvalidField("date")
	}

	h := &Holiday{
		Name:        req.Name,
		HolidayDate: date,
		Description: req.Description,
	}
	if err := s.repo.Create(ctx, h); err != nil {
		s.logger.Error("create holiday", zap.Error(err))
		return nil, err
	}
	return h, nil
}

func (s *service) Update(ctx context.Context, id uint, req UpdateHolidayRequest) (*Holiday, error) {
	h, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		h.Name = *req.Name
	}
	if req.Date != nil {
		date, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			return nil, apperror.InvalidField("date")
		}
		h.HolidayDate = date
	}
	if req.Description != nil {
		h.Description = *req.Description
	}

	if err := s.repo.Update(ctx, h); err != nil {
		s.logger.Error("update holiday", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return h, nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("holiday deleted", zap.Uint("id", id))
	return nil
}

func (s *service) List(ctx context.Context) ([]Holiday, error) {
	return s.repo.List(ctx)
}

// Calendar renders the holiday list as an iCalendar feed so employees can
// subscribe from their calendar client.
func (s *service) Calendar(ctx context.Context) (string, error) {
	holidays, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("render holiday calendar", zap.Error(err))
		return "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//Sense Projects//HR Portal//EN")
	cal.SetName("Company Holidays")

	for _, h := range holidays {
		event := cal.AddEvent(fmt.Sprintf("holiday-%d@senseprojects.in", h.ID))
		event.SetAllDayStartAt(h.HolidayDate)
		event.SetAllDayEndAt(h.HolidayDate.AddDate(0, 0, 1))
		event.SetSummary(h.Name)
		if h.Description != "" {
			event.SetDescription(h.Description)
		}
		event.SetDtStampTime(h.CreatedAt)
	}

	return cal.Serialize(), nil
}
