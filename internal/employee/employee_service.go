package employee

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/singleflight"

	employeeerrors "github.com/deke-r/senseHrm/internal/employee/errors"
)

const (
	optionsCacheKey = "employees:options"
	optionsCacheTTL = 5 * time.Minute

	uniqueViolationCode = "23505"
)

type Service interface {
	List(ctx context.Context) ([]User, error)
	Get(ctx context.Context, id, actorID uint, actorRole string) (*User, error)
	Create(ctx context.Context, req CreateEmployeeRequest) (*User, error)
	Update(ctx context.Context, id uint, req UpdateEmployeeRequest) (*User, error)
	Options(ctx context.Context) ([]Option, error)
	DashboardStats(ctx context.Context, userID uint) (*DashboardStats, error)
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	group  singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	return &service{
		repo:   repo,
		rdb:    rdb,
		logger: l,
	}
}

func (s *service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

func (s *service) Get(ctx context.Context, id, actorID uint, actorRole string) (*User, error) {
	if id != actorID && actorRole != RoleHR && actorRole != RoleAdmin {
		return nil, employeeerrors.ErrNotOwnProfile
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("hash password", zap.Error(err))
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = RoleEmployee
	}

	user := &User{
		Name:               req.Name,
		Email:              req.Email,
		Password:           string(hash),
		Phone:              req.Phone,
		Designation:        req.Designation,
		Department:         req.Department,
		Role:               role,
		Status:             StatusActive,
		ReportingManagerID: req.ReportingManagerID,
		ProfileImage:       req.ProfileImage,
	}
	if req.DateOfBirth != "" {
		if dob, err := time.Parse("2006-01-02", req.DateOfBirth); err == nil {
			user.DateOfBirth = &dob
		}
	}
	if req.DateOfJoining != "" {
		if doj, err := time.Parse("2006-01-02", req.DateOfJoining); err == nil {
			user.DateOfJoining = &doj
		}
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if isUniqueViolation(err) {
			return nil, employeeerrors.ErrEmailTaken
		}
		s.logger.Error("create employee", zap.String("email", req.Email), zap.Error(err))
		return nil, err
	}

	s.invalidateOptions(ctx)
	s.logger.Info("employee created", zap.Uint("id", user.ID), zap.String("role", user.Role))
	return user, nil
}

func (s *service) Update(ctx context.Context, id uint, req UpdateEmployeeRequest) (*User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Designation != nil {
		user.Designation = *req.Designation
	}
	if req.Department != nil {
		user.Department = *req.Department
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.Status != nil {
		user.Status = *req.Status
	}
	if req.ReportingManagerID != nil {
		user.ReportingManagerID = req.ReportingManagerID
	}
	if req.DateOfBirth != nil {
		if dob, err := time.Parse("2006-01-02", *req.DateOfBirth); err == nil {
			user.DateOfBirth = &dob
		}
	}
	if req.DateOfJoining != nil {
		if doj, err := time.Parse("2006-01-02", *req.DateOfJoining); err == nil {
			user.DateOfJoining = &doj
		}
	}
	if req.ProfileImage != nil {
		user.ProfileImage = *req.ProfileImage
	}

	if err := s.repo.Update(ctx, user); err != nil {
		s.logger.Error("update employee", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}

	s.invalidateOptions(ctx)
	return user, nil
}

// Options serves the picker list from redis; cache misses are collapsed so
// a burst of requests produces one database read.
func (s *service) Options(ctx context.Context) ([]Option, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, optionsCacheKey).Result(); err == nil {
			var options []Option
			if err := json.Unmarshal([]byte(cached), &options); err == nil {
				return options, nil
			}
		}
	}

	v, err, _ := s.group.Do(optionsCacheKey, func() (any, error) {
		options, err := s.repo.ListOptions(ctx)
		if err != nil {
			return nil, err
		}
		if s.rdb != nil {
			if payload, err := json.Marshal(options); err == nil {
				if err := s.rdb.Set(ctx, optionsCacheKey, payload, optionsCacheTTL).Err(); err != nil {
					s.logger.Warn("cache employee options", zap.Error(err))
				}
			}
		}
		return options, nil
	})
	if err != nil {
		s.logger.Error("list employee options", zap.Error(err))
		return nil, err
	}
	return v.([]Option), nil
}

func (s *service) DashboardStats(ctx context.Context, userID uint) (*DashboardStats, error) {
	headcount, err := s.repo.CountActive(ctx)
	if err != nil {
		s.logger.Error("count headcount", zap.Error(err))
		return nil, err
	}

	birthdays, err := s.repo.ListBirthdays(ctx)
	if err != nil {
		s.logger.Error("list birthdays", zap.Error(err))
		return nil, err
	}

	pending, err := s.repo.CountPendingRequests(ctx, userID)
	if err != nil {
		s.logger.Error("count pending requests", zap.Uint("user_id", userID), zap.Error(err))
		return nil, err
	}

	return &DashboardStats{
		Headcount:         headcount,
		UpcomingBirthdays: upcomingBirthdays(birthdays, time.Now(), 7),
		MyPendingRequests: pending,
	}, nil
}

// upcomingBirthdays counts dates whose month/day falls within the next
// `days` days of `now`, ignoring the birth year.
func upcomingBirthdays(dates []time.Time, now time.Time, days int) int64 {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	var count int64
	for _, dob := range dates {
		next := time.Date(today.Year(), dob.Month(), dob.Day(), 0, 0, 0, 0, time.UTC)
		if next.Before(today) {
			next = next.AddDate(1, 0, 0)
		}
		if diff := next.Sub(today).Hours() / 24; diff >= 0 && diff < float64(days) {
			count++
		}
	}
	return count
}

func (s *service) invalidateOptions(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, optionsCacheKey).Err(); err != nil {
		s.logger.Warn("invalidate employee options cache", zap.Error(err))
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
