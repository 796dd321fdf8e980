package holiday

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"gorm.io/gorm"

	"github.com/deke-r/senseHrm/internal/shared/apperror"
)

var ErrHolidayNotFound = apperror.New(
	apperror.CodeNotFound,
	"Holiday not found",
	http.StatusNotFound,
)

type Repository interface {
	Create(ctx context.Context, h *Holiday) error
	Update(ctx context.Context, h *Holiday) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*Holiday, error)
	List(ctx context.Context) ([]Holiday, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, h *Holiday) error {
	if err := r.db.WithContext(ctx).Create(h).Error; err != nil {
		return fmt.Errorf("create holiday: %w", err)
	}
	return nil
}

func (r *repository) Update(ctx context.Context, h *Holiday) error {
	if err := r.db.WithContext(ctx).Save(h).Error; err != nil {
		return fmt.Errorf("update holiday %d: %w", h.ID, err)
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&Holiday{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete holiday %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrHolidayNotFound
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Holiday, error) {
	var h Holiday
	err := r.db.WithContext(ctx).First(&h, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrHolidayNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get holiday %d: %w", id, err)
	}
	return &h, nil
}

func (r *repository) List(ctx context.Context) ([]Holiday, error) {
	var list []Holiday
	if err := r.db.WithContext(ctx).Order("holiday_date").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list holidays: %w", err)
	}
	return list, nil
}
