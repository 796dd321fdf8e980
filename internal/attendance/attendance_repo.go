package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	GetForDay(ctx context.Context, userID uint, day time.Time) (*Record, error)
	Create(ctx context.Context, record *Record) error
	Update(ctx context.Context, record *Record) error
	ListByUser(ctx context.Context, userID uint, from, to time.Time) ([]Record, error)
	ListForExport(ctx context.Context, from, to time.Time) ([]ExportRow, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetForDay(ctx context.Context, userID uint, day time.Time) (*Record, error) {
	var record Record
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND attendance_date = ?", userID, day).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get attendance for day: %w", err)
	}
	return &record, nil
}

func (r *repository) Create(ctx context.Context, record *Record) error {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("create attendance record: %w", err)
	}
	return nil
}

func (r *repository) Update(ctx context.Context, record *Record) error {
	if err := r.db.WithContext(ctx).Save(record).Error; err != nil {
		return fmt.Errorf("update attendance record %d: %w", record.ID, err)
	}
	return nil
}

func (r *repository) ListByUser(ctx context.Context, userID uint, from, to time.Time) ([]Record, error) {
	var records []Record
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND attendance_date BETWEEN ? AND ?", userID, from, to).
		Order("attendance_date DESC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	return records, nil
}

func (r *repository) ListForExport(ctx context.Context, from, to time.Time) ([]ExportRow, error) {
	var rows []ExportRow
	err := r.db.WithContext(ctx).
		Table("attendance").
		Select("users.name AS employee_name, users.email AS employee_email, attendance.attendance_date, attendance.check_in, attendance.check_out").
		Joins("JOIN users ON users.id = attendance.user_id").
		Where("attendance.attendance_date BETWEEN ? AND ?", from, to).
		Order("users.name, attendance.attendance_date").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list attendance for export: %w", err)
	}
	return rows, nil
}
