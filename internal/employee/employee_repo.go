package employee

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	employeeerrors "github.com/deke-r/senseHrm/internal/employee/errors"
)

type Repository interface {
	List(ctx context.Context) ([]User, error)
	ListActive(ctx context.Context) ([]User, error)
	GetByID(ctx context.Context, id uint) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetBasicBatch(ctx context.Context, ids []uint) ([]User, error)
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
	ListOptions(ctx context.Context) ([]Option, error)
	CountActive(ctx context.Context) (int64, error)
	ListBirthdays(ctx context.Context) ([]time.Time, error)
	CountPendingRequests(ctx context.Context, userID uint) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context) ([]User, error) {
	var users []User
	if err := r.db.WithContext(ctx).Order("name").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	return users, nil
}

func (r *repository) ListActive(ctx context.Context) ([]User, error) {
	var users []User
	err := r.db.WithContext(ctx).
		Where("status = ?", StatusActive).
		Order("id").
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("list active employees: %w", err)
	}
	return users, nil
}

func (r *repository) GetByID(ctx context.Context, id uint) (*User, error) {
	var user User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, employeeerrors.ErrEmployeeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get employee %d: %w", id, err)
	}
	return &user, nil
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, employeeerrors.ErrEmployeeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get employee by email: %w", err)
	}
	return &user, nil
}

func (r *repository) GetBasicBatch(ctx context.Context, ids []uint) ([]User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var users []User
	err := r.db.WithContext(ctx).
		Select("id", "name", "email").
		Where("id IN ?", ids).
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("batch get employees: %w", err)
	}
	return users, nil
}

func (r *repository) Create(ctx context.Context, user *User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("create employee: %w", err)
	}
	return nil
}

func (r *repository) Update(ctx context.Context, user *User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return fmt.Errorf("update employee %d: %w", user.ID, err)
	}
	return nil
}

func (r *repository) ListOptions(ctx context.Context) ([]Option, error) {
	var options []Option
	err := r.db.WithContext(ctx).
		Model(&User{}).
		Select("id", "name").
		Where("status = ?", StatusActive).
		Order("name").
		Scan(&options).Error
	if err != nil {
		return nil, fmt.Errorf("list employee options: %w", err)
	}
	return options, nil
}

func (r *repository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&User{}).
		Where("status = ?", StatusActive).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count active employees: %w", err)
	}
	return count, nil
}

func (r *repository) ListBirthdays(ctx context.Context) ([]time.Time, error) {
	var users []User
	err := r.db.WithContext(ctx).
		Select("date_of_birth").
		Where("status = ? AND date_of_birth IS NOT NULL", StatusActive).
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("list birthdays: %w", err)
	}
	dates := make([]time.Time, 0, len(users))
	for _, u := range users {
		if u.DateOfBirth != nil {
			dates = append(dates, *u.DateOfBirth)
		}
	}
	return dates, nil
}

func (r *repository) CountPendingRequests(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			(SELECT COUNT(*) FROM employee_leaves WHERE user_id = ? AND status = 'pending') +
			(SELECT COUNT(*) FROM wfh_requests WHERE user_id = ? AND status = 'pending') +
			(SELECT COUNT(*) FROM partial_day_requests WHERE user_id = ? AND status = 'pending')`,
		userID, userID, userID,
	).Scan(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count pending requests: %w", err)
	}
	return count, nil
}
