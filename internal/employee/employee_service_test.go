package employee_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"github.com/deke-r/senseHrm/internal/employee"
	employeeerrors "github.com/deke-r/senseHrm/internal/employee/errors"
)

type fakeRepo struct {
	ListFn                 func(ctx context.Context) ([]employee.User, error)
	ListActiveFn           func(ctx context.Context) ([]employee.User, error)
	GetByIDFn              func(ctx context.Context, id uint) (*employee.User, error)
	GetByEmailFn           func(ctx context.Context, email string) (*employee.User, error)
	GetBasicBatchFn        func(ctx context.Context, ids []uint) ([]employee.User, error)
	CreateFn               func(ctx context.Context, user *employee.User) error
	UpdateFn               func(ctx context.Context, user *employee.User) error
	ListOptionsFn          func(ctx context.Context) ([]employee.Option, error)
	CountActiveFn          func(ctx context.Context) (int64, error)
	ListBirthdaysFn        func(ctx context.Context) ([]time.Time, error)
	CountPendingRequestsFn func(ctx context.Context, userID uint) (int64, error)
}

func (f *fakeRepo) List(ctx context.Context) ([]employee.User, error) { return f.ListFn(ctx) }
func (f *fakeRepo) ListActive(ctx context.Context) ([]employee.User, error) {
	return f.ListActiveFn(ctx)
}
func (f *fakeRepo) GetByID(ctx context.Context, id uint) (*employee.User, error) {
	return f.GetByIDFn(ctx, id)
}
func (f *fakeRepo) GetByEmail(ctx context.Context, email string) (*employee.User, error) {
	return f.GetByEmailFn(ctx, email)
}
func (f *fakeRepo) GetBasicBatch(ctx context.Context, ids []uint) ([]employee.User, error) {
	return f.GetBasicBatchFn(ctx, ids)
}
func (f *fakeRepo) Create(ctx context.Context, user *employee.User) error {
	return f.CreateFn(ctx, user)
}
func (f *fakeRepo) Update(ctx context.Context, user *employee.User) error {
	return f.UpdateFn(ctx, user)
}
func (f *fakeRepo) ListOptions(ctx context.Context) ([]employee.Option, error) {
	return f.ListOptionsFn(ctx)
}
func (f *fakeRepo) CountActive(ctx context.Context) (int64, error) { return f.CountActiveFn(ctx) }
func (f *fakeRepo) ListBirthdays(ctx context.Context) ([]time.Time, error) {
	return f.ListBirthdaysFn(ctx)
}
func (f *fakeRepo) CountPendingRequests(ctx context.Context, userID uint) (int64, error) {
	return f.CountPendingRequestsFn(ctx, userID)
}

func TestCreateHashesPasswordAndDefaultsRole(t *testing.T) {
	var created *employee.User
	repo := &fakeRepo{
		CreateFn: func(ctx context.Context, user *employee.User) error {
			user.ID = 11
			created = user
			return nil
		},
	}
	svc := employee.NewService(repo, nil)

	user, err := svc.Create(context.Background(), employee.CreateEmployeeRequest{
		Name:     "Asha Verma",
		Email:    "asha@senseprojects.in",
		Password: "s3cret-pass",
	})

	assert.NoError(t, err)
	assert.Equal(t, uint(11), user.ID)
	assert.Equal(t, employee.RoleEmployee, created.Role)
	assert.Equal(t, employee.StatusActive, created.Status)
	assert.NotEqual(t, "s3cret-pass", created.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("s3cret-pass")))
}

func TestCreateDuplicateEmail(t *testing.T) {
	repo := &fakeRepo{
		CreateFn: func(ctx context.Context, user *employee.User) error {
			return &pgconn.PgError{Code: "23505"}
		},
	}
	svc := employee.NewService(repo, nil)

	_, err := svc.Create(context.Background(), employee.CreateEmployeeRequest{
		Name:     "Asha Verma",
		Email:    "asha@senseprojects.in",
		Password: "s3cret-pass",
	})

	assert.ErrorIs(t, err, employeeerrors.ErrEmailTaken)
}

func TestGetOwnProfileAllowed(t *testing.T) {
	repo := &fakeRepo{
		GetByIDFn: func(ctx context.Context, id uint) (*employee.User, error) {
			return &employee.User{ID: id, Name: "Asha"}, nil
		},
	}
	svc := employee.NewService(repo, nil)

	user, err := svc.Get(context.Background(), 7, 7, employee.RoleEmployee)

	assert.NoError(t, err)
	assert.Equal(t, uint(7), user.ID)
}

func TestGetOtherProfileForbiddenForEmployees(t *testing.T) {
	svc := employee.NewService(&fakeRepo{}, nil)

	_, err := svc.Get(context.Background(), 7, 9, employee.RoleEmployee)

	assert.ErrorIs(t, err, employeeerrors.ErrNotOwnProfile)
}

func TestGetOtherProfileAllowedForHR(t *testing.T) {
	repo := &fakeRepo{
		GetByIDFn: func(ctx context.Context, id uint) (*employee.User, error) {
			return &employee.User{ID: id}, nil
		},
	}
	svc := employee.NewService(repo, nil)

	_, err := svc.Get(context.Background(), 7, 9, employee.RoleHR)

	assert.NoError(t, err)
}

func TestOptionsServedFromCache(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	cached := []employee.Option{{ID: 1, Name: "Asha"}}
	payload, _ := json.Marshal(cached)
	mock.ExpectGet("employees:options").SetVal(string(payload))

	repoCalled := false
	repo := &fakeRepo{
		ListOptionsFn: func(ctx context.Context) ([]employee.Option, error) {
			repoCalled = true
			return nil, nil
		},
	}
	svc := employee.NewService(repo, rdb)

	options, err := svc.Options(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, cached, options)
	assert.False(t, repoCalled)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOptionsCacheMissFillsCache(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	options := []employee.Option{{ID: 1, Name: "Asha"}, {ID: 2, Name: "Rohan"}}
	payload, _ := json.Marshal(options)

	mock.ExpectGet("employees:options").RedisNil()
	mock.ExpectSet("employees:options", payload, 5*time.Minute).SetVal("OK")

	repo := &fakeRepo{
		ListOptionsFn: func(ctx context.Context) ([]employee.Option, error) {
			return options, nil
		},
	}
	svc := employee.NewService(repo, rdb)

	got, err := svc.Options(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, options, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDashboardStatsCountsUpcomingBirthdays(t *testing.T) {
	now := time.Now()
	soon := now.AddDate(-30, 0, 2)  // birthday in 2 days
	later := now.AddDate(-25, 0, 30) // outside the 7-day window

	repo := &fakeRepo{
		CountActiveFn: func(ctx context.Context) (int64, error) { return 12, nil },
		ListBirthdaysFn: func(ctx context.Context) ([]time.Time, error) {
			return []time.Time{soon, later}, nil
		},
		CountPendingRequestsFn: func(ctx context.Context, userID uint) (int64, error) {
			assert.Equal(t, uint(7), userID)
			return 3, nil
		},
	}
	svc := employee.NewService(repo, nil)

	stats, err := svc.DashboardStats(context.Background(), 7)

	assert.NoError(t, err)
	assert.Equal(t, int64(12), stats.Headcount)
	assert.Equal(t, int64(1), stats.UpcomingBirthdays)
	assert.Equal(t, int64(3), stats.MyPendingRequests)
}
