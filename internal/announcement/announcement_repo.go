package announcement

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"gorm.io/gorm"

	"github.com/deke-r/senseHrm/internal/shared/apperror"
)

var ErrAnnouncementNotFound = apperror.New(
	apperror.CodeNotFound,
	"Announcement not found",
	http.StatusNotFound,
)

type Repository interface {
	Create(ctx context.Context, a *Announcement) error
	Update(ctx context.Context, a *Announcement) error
	GetByID(ctx context.Context, id uint) (*Announcement, error)
	List(ctx context.Context) ([]Announcement, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, a *Announcement) error {
	if err := r.db.WithContext(ctx).Create(a).Error; err != nil {
		return fmt.Errorf("create announcement: %w", err)
	}
	return nil
}

func (r *repository) Update(ctx context.Context, a *Announcement) error {
	if err := r.db.WithContext(ctx).Save(a).Error; err != nil {
		return fmt.Errorf("update announcement %d: %w", a.ID, err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Announcement, error) {
	var a Announcement
	err := r.db.WithContext(ctx).First(&a, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAnnouncementNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get announcement %d: %w", id, err)
	}
	return &a, nil
}

func (r *repository) List(ctx context.Context) ([]Announcement, error) {
	var list []Announcement
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("list announcements: %w", err)
	}
	return list, nil
}
