package timeoff_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"github.com/deke-r/senseHrm/internal/events"
	"github.com/deke-r/senseHrm/internal/notification"
	"github.com/deke-r/senseHrm/internal/timeoff"
	timeofferrors "github.com/deke-r/senseHrm/internal/timeoff/errors"
)

type fakeRepo struct {
	InsertFn           func(ctx context.Context, req *timeoff.Request) error
	GetByIDFn          func(ctx context.Context, kind timeoff.Kind, id uint) (*timeoff.Request, error)
	ExistsForUserFn    func(ctx context.Context, kind timeoff.Kind, id, userID uint) (bool, error)
	ExistsByIDFn       func(ctx context.Context, kind timeoff.Kind, id uint) (bool, error)
	CancelIfPendingFn  func(ctx context.Context, kind timeoff.Kind, id, userID uint, reason string) (bool, error)
	ResolveIfPendingFn func(ctx context.Context, kind timeoff.Kind, id uint, status, reason string) (bool, error)
	ListByUserFn       func(ctx context.Context, userID uint) ([]timeoff.Request, error)
	ListAllFn          func(ctx context.Context) ([]timeoff.Request, error)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) timeoff.Repository { return f }
func (f *fakeRepo) Insert(ctx context.Context, req *timeoff.Request) error {
	return f.InsertFn(ctx, req)
}
func (f *fakeRepo) GetByID(ctx context.Context, kind timeoff.Kind, id uint) (*timeoff.Request, error) {
	return f.GetByIDFn(ctx, kind, id)
}
func (f *fakeRepo) ExistsForUser(ctx context.Context, kind timeoff.Kind, id, userID uint) (bool, error) {
	return f.ExistsForUserFn(ctx, kind, id, userID)
}
func (f *fakeRepo) ExistsByID(ctx context.Context, kind timeoff.Kind, id uint) (bool, error) {
	return f.ExistsByIDFn(ctx, kind, id)
}
func (f *fakeRepo) CancelIfPending(ctx context.Context, kind timeoff.Kind, id, userID uint, reason string) (bool, error) {
	return f.CancelIfPendingFn(ctx, kind, id, userID, reason)
}
func (f *fakeRepo) ResolveIfPending(ctx context.Context, kind timeoff.Kind, id uint, status, reason string) (bool, error) {
	return f.ResolveIfPendingFn(ctx, kind, id, status, reason)
}
func (f *fakeRepo) ListByUser(ctx context.Context, userID uint) ([]timeoff.Request, error) {
	return f.ListByUserFn(ctx, userID)
}
func (f *fakeRepo) ListAll(ctx context.Context) ([]timeoff.Request, error) {
	return f.ListAllFn(ctx)
}

type fakeDirectory struct {
	users map[uint]timeoff.DirectoryUser
}

func (f *fakeDirectory) GetBasic(ctx context.Context, id uint) (*timeoff.DirectoryUser, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, errors.New("user not found")
	}
	return &u, nil
}

func (f *fakeDirectory) GetBasicBatch(ctx context.Context, ids []uint) (map[uint]timeoff.DirectoryUser, error) {
	out := make(map[uint]timeoff.DirectoryUser)
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

type fakeNotifier struct {
	sent []events.EmailRequested
	err  error
}

func (f *fakeNotifier) WithTx(tx *sql.Tx) notification.Notifier { return f }
func (f *fakeNotifier) Enqueue(ctx context.Context, aggregateType string, aggregateID uint, email events.EmailRequested) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, email)
	return nil
}

func newTestDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func defaultDirectory() *fakeDirectory {
	return &fakeDirectory{users: map[uint]timeoff.DirectoryUser{
		7: {ID: 7, Name: "Asha Verma", Email: "asha@senseprojects.in"},
		9: {ID: 9, Name: "Rohan Gupta", Email: "rohan@senseprojects.in"},
	}}
}

const hrMailbox = "hr@senseprojects.in"

func TestApplyCreatesPendingAndEnqueuesTwoEmails(t *testing.T) {
	db, mock := newTestDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	repo := &fakeRepo{
		InsertFn: func(ctx context.Context, req *timeoff.Request) error {
			req.ID = 42
			req.CreatedAt = time.Now()
			return nil
		},
	}
	notifier := &fakeNotifier{}
	svc := timeoff.NewService(db, repo, defaultDirectory(), notifier, hrMailbox)

	id, err := svc.Apply(context.Background(), 7, timeoff.ApplyInput{
		Kind:          timeoff.KindLeave,
		LeaveCategory: "Casual Leave",
		LeaveType:     "Full Day",
		FromDate:      time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
		ToDate:        time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC),
		TotalDays:     3,
		Note:          "family event",
	})

	assert.NoError(t, err)
	assert.Equal(t, uint(42), id)
	assert.Len(t, notifier.sent, 2)
	assert.Equal(t, "asha@senseprojects.in", notifier.sent[0].To)
	assert.Equal(t, hrMailbox, notifier.sent[1].To)
	assert.Equal(t, "Leave Request Submitted", notifier.sent[0].Subject)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyRejectsInvertedDateRange(t *testing.T) {
	db, _ := newTestDB(t)
	notifier := &fakeNotifier{}
	svc := timeoff.NewService(db, &fakeRepo{}, defaultDirectory(), notifier, hrMailbox)

	_, err := svc.Apply(context.Background(), 7, timeoff.ApplyInput{
		Kind:      timeoff.KindWFH,
		FromDate:  time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		ToDate:    time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC),
		TotalDays: 3,
		Note:      "notes",
	})

	assert.ErrorIs(t, err, timeofferrors.ErrInvalidDateRange)
	assert.Empty(t, notifier.sent)
}

func TestApplyRollsBackWhenEnqueueFails(t *testing.T) {
	db, mock := newTestDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	repo := &fakeRepo{
		InsertFn: func(ctx context.Context, req *timeoff.Request) error {
			req.ID = 5
			return nil
		},
	}
	notifier := &fakeNotifier{err: errors.New("outbox unavailable")}
	svc := timeoff.NewService(db, repo, defaultDirectory(), notifier, hrMailbox)

	_, err := svc.Apply(context.Background(), 7, timeoff.ApplyInput{
		Kind:      timeoff.KindLeave,
		FromDate:  time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
		ToDate:    time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
		TotalDays: 1,
		Note:      "n",
	})

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelHappyPath(t *testing.T) {
	db, mock := newTestDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	reason := "plans changed"
	repo := &fakeRepo{
		CancelIfPendingFn: func(ctx context.Context, kind timeoff.Kind, id, userID uint, r string) (bool, error) {
			assert.Equal(t, timeoff.KindLeave, kind)
			assert.Equal(t, uint(42), id)
			assert.Equal(t, uint(7), userID)
			assert.Equal(t, reason, r)
			return true, nil
		},
		GetByIDFn: func(ctx context.Context, kind timeoff.Kind, id uint) (*timeoff.Request, error) {
			return &timeoff.Request{
				ID: 42, UserID: 7, Kind: timeoff.KindLeave,
				FromDate: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
				ToDate:   time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC),
				Status:   timeoff.StatusCancelled,
			}, nil
		},
	}
	notifier := &fakeNotifier{}
	svc := timeoff.NewService(db, repo, defaultDirectory(), notifier, hrMailbox)

	err := svc.Cancel(context.Background(), 7, timeoff.KindLeave, 42, reason)

	assert.NoError(t, err)
	assert.Len(t, notifier.sent, 2)
	assert.Equal(t, "Leave Request Cancelled", notifier.sent[0].Subject)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelNotFoundWhenOwnedByAnotherUser(t *testing.T) {
	db, mock := newTestDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	repo := &fakeRepo{
		CancelIfPendingFn: func(ctx context.Context, kind timeoff.Kind, id, userID uint, reason string) (bool, error) {
			return false, nil
		},
		ExistsForUserFn: func(ctx context.Context, kind timeoff.Kind, id, userID uint) (bool, error) {
			// The row exists, but under a different owner.
			return false, nil
		},
	}
	notifier := &fakeNotifier{}
	svc := timeoff.NewService(db, repo, defaultDirectory(), notifier, hrMailbox)

	err := svc.Cancel(context.Background(), 7, timeoff.KindLeave, 42, "reason")

	assert.ErrorIs(t, err, timeofferrors.ErrRequestNotFound)
	assert.Empty(t, notifier.sent)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSecondCancelFailsWithInvalidState(t *testing.T) {
	db, mock := newTestDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	repo := &fakeRepo{
		CancelIfPendingFn: func(ctx context.Context, kind timeoff.Kind, id, userID uint, reason string) (bool, error) {
			return false, nil
		},
		ExistsForUserFn: func(ctx context.Context, kind timeoff.Kind, id, userID uint) (bool, error) {
			return true, nil
		},
	}
	notifier := &fakeNotifier{}
	svc := timeoff.NewService(db, repo, defaultDirectory(), notifier, hrMailbox)

	err := svc.Cancel(context.Background(), 7, timeoff.KindLeave, 42, "again")

	assert.ErrorIs(t, err, timeofferrors.ErrNotPendingCancel)
	assert.Empty(t, notifier.sent)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHistoryMergesAndSortsDescending(t *testing.T) {
	db, _ := newTestDB(t)

	base := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)
	repo := &fakeRepo{
		ListByUserFn: func(ctx context.Context, userID uint) ([]timeoff.Request, error) {
			return []timeoff.Request{
				{ID: 1, UserID: 7, Kind: timeoff.KindLeave, LeaveCategory: "Casual Leave",
					FromDate: base, ToDate: base.AddDate(0, 0, 2), TotalDays: 3,
					Status: timeoff.StatusPending, CreatedAt: base},
				{ID: 2, UserID: 7, Kind: timeoff.KindWFH,
					FromDate: base, ToDate: base, TotalDays: 1,
					Status: timeoff.StatusApproved, CreatedAt: base.Add(48 * time.Hour)},
				{ID: 3, UserID: 7, Kind: timeoff.KindPartialDay,
					RequestDate: base, Half: timeoff.HalfFirst, TotalDays: 0.5,
					Status: timeoff.StatusPending, CreatedAt: base.Add(24 * time.Hour)},
			}, nil
		},
	}
	svc := timeoff.NewService(db, repo, defaultDirectory(), &fakeNotifier{}, hrMailbox)

	entries, err := svc.History(context.Background(), 7)

	assert.NoError(t, err)
	assert.Len(t, entries, 3)
	for i := 1; i < len(entries); i++ {
		assert.False(t, entries[i-1].ActionOn.Before(entries[i].ActionOn))
	}
	assert.Equal(t, uint(2), entries[0].ID)
	assert.Equal(t, "WFH Request", entries[0].Type)
	assert.Equal(t, "Partial Day (First Half)", entries[1].Type)
	assert.Equal(t, "01 Feb 2025 (First Half)", entries[1].Date)
	assert.Equal(t, "01 Feb 2025 - 03 Feb 2025", entries[2].Date)
	assert.Equal(t, "Self", entries[0].RequestedBy)
}

func TestListAllResolvesEmployeesAndFormatsAppliedOn(t *testing.T) {
	db, _ := newTestDB(t)

	created := time.Date(2025, 2, 1, 15, 4, 0, 0, time.UTC)
	repo := &fakeRepo{
		ListAllFn: func(ctx context.Context) ([]timeoff.Request, error) {
			return []timeoff.Request{
				{ID: 1, UserID: 7, Kind: timeoff.KindLeave, LeaveCategory: "Sick Leave",
					FromDate: created, ToDate: created, TotalDays: 1,
					Status: timeoff.StatusPending, CreatedAt: created},
				{ID: 2, UserID: 9, Kind: timeoff.KindWFH,
					FromDate: created, ToDate: created, TotalDays: 1,
					Status: timeoff.StatusPending, CreatedAt: created.Add(time.Hour)},
			}, nil
		},
	}
	svc := timeoff.NewService(db, repo, defaultDirectory(), &fakeNotifier{}, hrMailbox)

	entries, err := svc.ListAll(context.Background())

	assert.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, "Rohan Gupta", entries[0].EmployeeName)
	assert.Equal(t, "Asha Verma", entries[1].EmployeeName)
	assert.Equal(t, "01 Feb 2025 03:04 PM", entries[1].AppliedOn)
}

func TestUpdateStatusApproveEnqueuesExactlyTwoEmails(t *testing.T) {
	db, mock := newTestDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	repo := &fakeRepo{
		ResolveIfPendingFn: func(ctx context.Context, kind timeoff.Kind, id uint, status, reason string) (bool, error) {
			assert.Equal(t, timeoff.StatusApproved, status)
			return true, nil
		},
		GetByIDFn: func(ctx context.Context, kind timeoff.Kind, id uint) (*timeoff.Request, error) {
			return &timeoff.Request{
				ID: 42, UserID: 7, Kind: timeoff.KindLeave, LeaveCategory: "Casual Leave",
				FromDate: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
				ToDate:   time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC),
				Status:   timeoff.StatusApproved, TotalDays: 3,
			}, nil
		},
	}
	notifier := &fakeNotifier{}
	svc := timeoff.NewService(db, repo, defaultDirectory(), notifier, hrMailbox)

	err := svc.UpdateStatus(context.Background(), 9, timeoff.KindLeave, 42, timeoff.StatusApproved, "")

	assert.NoError(t, err)
	assert.Len(t, notifier.sent, 2)
	assert.Equal(t, "Leave Request approved", notifier.sent[0].Subject)
	assert.Equal(t, "Leave Request approved", notifier.sent[1].Subject)
	assert.Equal(t, "asha@senseprojects.in", notifier.sent[0].To)
	assert.Equal(t, hrMailbox, notifier.sent[1].To)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusOnResolvedRequestFailsWithInvalidState(t *testing.T) {
	db, mock := newTestDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	repo := &fakeRepo{
		ResolveIfPendingFn: func(ctx context.Context, kind timeoff.Kind, id uint, status, reason string) (bool, error) {
			return false, nil
		},
		ExistsByIDFn: func(ctx context.Context, kind timeoff.Kind, id uint) (bool, error) {
			return true, nil
		},
	}
	notifier := &fakeNotifier{}
	svc := timeoff.NewService(db, repo, defaultDirectory(), notifier, hrMailbox)

	err := svc.UpdateStatus(context.Background(), 9, timeoff.KindLeave, 42, timeoff.StatusRejected, "late")

	assert.ErrorIs(t, err, timeofferrors.ErrNotPendingUpdate)
	assert.Empty(t, notifier.sent)
	assert.NoError(t, mock.ExpectationsWereMet())
}
