package attendance

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	attendanceerrors "github.com/deke-r/senseHrm/internal/attendance/errors"
)

type Service interface {
	CheckIn(ctx context.Context, userID uint) (*Record, error)
	CheckOut(ctx context.Context, userID uint) (*Record, error)
	ListOwn(ctx context.Context, userID uint, month string) ([]Record, error)
	ExportMonth(ctx context.Context, month string) (*bytes.Buffer, string, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	return &service{repo: repo, logger: l}
}

func today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// CheckIn records the first check-in of the day; repeating it returns the
// existing record. A concurrent duplicate insert is resolved through the
// (user, day) unique constraint rather than a lock.
func (s *service) CheckIn(ctx context.Context, userID uint) (*Record, error) {
	day := today()

	existing, err := s.repo.GetForDay(ctx, userID, day)
	if err != nil {
		s.logger.Error("get attendance", zap.Uint("user_id", userID), zap.Error(err))
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	now := time.Now()
	record := &Record{
		UserID:         userID,
		AttendanceDate: day,
		CheckIn:        &now,
	}
	if err := s.repo.Create(ctx, record); err != nil {
		if isUniqueViolation(err) {
			// Lost the race against another check-in of the same user.
			return s.repo.GetForDay(ctx, userID, day)
		}
		s.logger.Error("create attendance", zap.Uint("user_id", userID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("checked in", zap.Uint("user_id", userID))
	return record, nil
}

func (s *service) CheckOut(ctx context.Context, userID uint) (*Record, error) {
	day := today()

	record, err := s.repo.GetForDay(ctx, userID, day)
	if err != nil {
		s.logger.Error("get attendance", zap.Uint("user_id", userID), zap.Error(err))
		return nil, err
	}
	if record == nil || record.CheckIn == nil {
		return nil, attendanceerrors.ErrNotCheckedIn
	}
	if record.CheckOut != nil {
		return nil, attendanceerrors.ErrAlreadyCheckedOut
	}

	now := time.Now()
	record.CheckOut = &now
	if err := s.repo.Update(ctx, record); err != nil {
		s.logger.Error("update attendance", zap.Uint("user_id", userID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("checked out", zap.Uint("user_id", userID))
	return record, nil
}

func (s *service) ListOwn(ctx context.Context, userID uint, month string) ([]Record, error) {
	from, to, err := monthBounds(month)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByUser(ctx, userID, from, to)
}

// ExportMonth renders the month's attendance as an xlsx workbook.
func (s *service) ExportMonth(ctx context.Context, month string) (*bytes.Buffer, string, error) {
	from, to, err := monthBounds(month)
	if err != nil {
		return nil, "", err
	}

	rows, err := s.repo.ListForExport(ctx, from, to)
	if err != nil {
		s.logger.Error("export attendance", zap.String("month", month), zap.Error(err))
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	headers := []string{"Employee", "Email", "Date", "Check In", "Check Out"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, "", fmt.Errorf("write export header: %w", err)
		}
	}

	for i, row := range rows {
		values := []any{
			row.EmployeeName,
			row.EmployeeEmail,
			row.AttendanceDate.Format("02 Jan 2006"),
			formatClock(row.CheckIn),
			formatClock(row.CheckOut),
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, "", fmt.Errorf("write export row: %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("render export workbook: %w", err)
	}

	filename := fmt.Sprintf("attendance-%s.xlsx", from.Format("2006-01"))
	return buf, filename, nil
}

// monthBounds parses "YYYY-MM" into the month's first and last day,
// defaulting to the current month.
func monthBounds(month string) (time.Time, time.Time, error) {
	var from time.Time
	if month == "" {
		now := time.Now()
		from = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	} else {
		parsed, err := time.Parse("2006-01", month)
		if err != nil {
			return time.Time{}, time.Time{}, attendanceerrors.ErrInvalidMonth
		}
		from = parsed
	}
	return from, from.AddDate(0, 1, -1), nil
}

func formatClock(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("03:04 PM")
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
