package timeoff

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/deke-r/senseHrm/internal/events"
	"github.com/deke-r/senseHrm/internal/notification"
	timeofferrors "github.com/deke-r/senseHrm/internal/timeoff/errors"
)

// Directory resolves employee names and emails for notifications and the
// adjudication queue.
type Directory interface {
	GetBasic(ctx context.Context, id uint) (*DirectoryUser, error)
	GetBasicBatch(ctx context.Context, ids []uint) (map[uint]DirectoryUser, error)
}

type DirectoryUser struct {
	ID    uint
	Name  string
	Email string
}

type Service interface {
	Apply(ctx context.Context, ownerID uint, input ApplyInput) (uint, error)
	Cancel(ctx context.Context, ownerID uint, kind Kind, id uint, reason string) error
	History(ctx context.Context, ownerID uint) ([]HistoryEntry, error)
	ListAll(ctx context.Context) ([]QueueEntry, error)
	UpdateStatus(ctx context.Context, actorID uint, kind Kind, id uint, status, reason string) error
}

type service struct {
	db        *sql.DB
	repo      Repository
	directory Directory
	notifier  notification.Notifier
	hrEmail   string
	logger    *zap.Logger
}

func NewService(db *sql.DB, repo Repository, directory Directory, notifier notification.Notifier, hrEmail string, logger ...*zap.Logger) Service {
	l := zap.L().Named("timeoff.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	return &service{
		db:        db,
		repo:      repo,
		directory: directory,
		notifier:  notifier,
		hrEmail:   hrEmail,
		logger:    l,
	}
}

func (s *service) Apply(ctx context.Context, ownerID uint, input ApplyInput) (uint, error) {
	s.logger.Debug("apply request", zap.Uint("user_id", ownerID), zap.String("kind", string(input.Kind)))

	if input.Kind != KindPartialDay && input.ToDate.Before(input.FromDate) {
		return 0, timeofferrors.ErrInvalidDateRange
	}

	owner, err := s.directory.GetBasic(ctx, ownerID)
	if err != nil {
		s.logger.Error("resolve requester", zap.Uint("user_id", ownerID), zap.Error(err))
		return 0, err
	}

	req := &Request{
		UserID:        ownerID,
		Kind:          input.Kind,
		LeaveCategory: input.LeaveCategory,
		LeaveType:     input.LeaveType,
		HalfDay:       input.HalfDay,
		FromDate:      input.FromDate,
		ToDate:        input.ToDate,
		HalfType:      input.HalfType,
		RequestDate:   input.RequestDate,
		Half:          input.Half,
		TotalDays:     input.TotalDays,
		Note:          input.Note,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	ntx := s.notifier.WithTx(tx)

	if err := qtx.Insert(ctx, req); err != nil {
		s.logger.Error("insert request", zap.String("kind", string(input.Kind)), zap.Error(err))
		return 0, err
	}
	req.Status = StatusPending

	title := req.Kind.Title()
	summary := requestSummary(req)

	err = ntx.Enqueue(ctx, string(req.Kind), req.ID, events.EmailRequested{
		To:      owner.Email,
		Subject: title + " Request Submitted",
		Heading: title + " Request Submitted",
		Message: fmt.Sprintf("Hi %s, your %s request has been submitted and is pending approval.", owner.Name, title),
		Summary: summary,
	})
	if err != nil {
		return 0, err
	}

	err = ntx.Enqueue(ctx, string(req.Kind), req.ID, events.EmailRequested{
		To:      s.hrEmail,
		Subject: fmt.Sprintf("New %s Request from %s", title, owner.Name),
		Heading: "New " + title + " Request",
		Message: fmt.Sprintf("%s (%s) has submitted a %s request.", owner.Name, owner.Email, title),
		Summary: summary,
	})
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit tx: %w", err)
	}

	s.logger.Info("request created",
		zap.String("kind", string(req.Kind)),
		zap.Uint("request_id", req.ID),
		zap.Uint("user_id", ownerID),
	)
	return req.ID, nil
}

func (s *service) Cancel(ctx context.Context, ownerID uint, kind Kind, id uint, reason string) error {
	s.logger.Debug("cancel request",
		zap.String("kind", string(kind)),
		zap.Uint("request_id", id),
		zap.Uint("user_id", ownerID),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	ntx := s.notifier.WithTx(tx)

	updated, err := qtx.CancelIfPending(ctx, kind, id, ownerID, reason)
	if err != nil {
		s.logger.Error("cancel request", zap.Uint("request_id", id), zap.Error(err))
		return err
	}
	if !updated {
		exists, err := qtx.ExistsForUser(ctx, kind, id, ownerID)
		if err != nil {
			return err
		}
		if !exists {
			s.logger.Warn("cancel: request not found",
				zap.String("kind", string(kind)),
				zap.Uint("request_id", id),
				zap.Uint("user_id", ownerID),
			)
			return timeofferrors.ErrRequestNotFound
		}
		s.logger.Warn("cancel: request not pending",
			zap.String("kind", string(kind)),
			zap.Uint("request_id", id),
		)
		return timeofferrors.ErrNotPendingCancel
	}

	req, err := qtx.GetByID(ctx, kind, id)
	if err != nil {
		return err
	}
	owner, err := s.directory.GetBasic(ctx, ownerID)
	if err != nil {
		s.logger.Error("resolve requester", zap.Uint("user_id", ownerID), zap.Error(err))
		return err
	}

	title := kind.Title()
	summary := []events.SummaryRow{
		{Label: "Request Type", Value: kind.Category()},
		{Label: "Request ID", Value: fmt.Sprintf("%d", id)},
		{Label: "Date Range", Value: summaryDates(req)},
		{Label: "Status", Value: StatusCancelled},
		{Label: "Reason", Value: reason},
	}

	err = ntx.Enqueue(ctx, string(kind), id, events.EmailRequested{
		To:      owner.Email,
		Subject: title + " Request Cancelled",
		Heading: title + " Request Cancelled",
		Message: fmt.Sprintf("Hi %s, your %s request has been cancelled.", owner.Name, title),
		Summary: summary,
	})
	if err != nil {
		return err
	}

	err = ntx.Enqueue(ctx, string(kind), id, events.EmailRequested{
		To:      s.hrEmail,
		Subject: fmt.Sprintf("%s Request Cancelled by %s", title, owner.Name),
		Heading: title + " Request Cancelled",
		Message: fmt.Sprintf("%s (%s) has cancelled their %s request.", owner.Name, owner.Email, title),
		Summary: summary,
	})
	if err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	s.logger.Info("request cancelled",
		zap.String("kind", string(kind)),
		zap.Uint("request_id", id),
		zap.Uint("user_id", ownerID),
	)
	return nil
}

func (s *service) History(ctx context.Context, ownerID uint) ([]HistoryEntry, error) {
	reqs, err := s.repo.ListByUser(ctx, ownerID)
	if err != nil {
		s.logger.Error("list history", zap.Uint("user_id", ownerID), zap.Error(err))
		return nil, err
	}

	entries := make([]HistoryEntry, 0, len(reqs))
	for i := range reqs {
		req := &reqs[i]
		entries = append(entries, HistoryEntry{
			Category:    req.Kind.Category(),
			ID:          req.ID,
			Date:        dateLabel(req),
			Type:        typeLabel(req),
			Status:      req.Status,
			Note:        req.Note,
			ActionOn:    req.CreatedAt,
			RequestedBy: "Self",
			Reason:      req.ResolutionReason(),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].ActionOn.After(entries[j].ActionOn)
	})
	return entries, nil
}

func (s *service) ListAll(ctx context.Context) ([]QueueEntry, error) {
	reqs, err := s.repo.ListAll(ctx)
	if err != nil {
		s.logger.Error("list all requests", zap.Error(err))
		return nil, err
	}

	// One batch lookup over the distinct owners instead of a query per row.
	seen := make(map[uint]struct{}, len(reqs))
	ids := make([]uint, 0, len(reqs))
	for i := range reqs {
		if _, ok := seen[reqs[i].UserID]; !ok {
			seen[reqs[i].UserID] = struct{}{}
			ids = append(ids, reqs[i].UserID)
		}
	}
	users, err := s.directory.GetBasicBatch(ctx, ids)
	if err != nil {
		s.logger.Error("resolve request owners", zap.Error(err))
		return nil, err
	}

	entries := make([]QueueEntry, 0, len(reqs))
	for i := range reqs {
		req := &reqs[i]
		user := users[req.UserID]
		entries = append(entries, QueueEntry{
			ID:            req.ID,
			Type:          req.Kind.Category(),
			EmployeeName:  user.Name,
			EmployeeEmail: user.Email,
			Date:          dateLabel(req),
			TotalDays:     req.TotalDays,
			Status:        req.Status,
			Note:          req.Note,
			AppliedOn:     appliedOn(req.CreatedAt),
			AppliedAt:     req.CreatedAt,
			Reason:        req.ResolutionReason(),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].AppliedAt.After(entries[j].AppliedAt)
	})
	return entries, nil
}

func (s *service) UpdateStatus(ctx context.Context, actorID uint, kind Kind, id uint, status, reason string) error {
	s.logger.Debug("update request status",
		zap.String("kind", string(kind)),
		zap.Uint("request_id", id),
		zap.String("status", status),
		zap.Uint("actor_id", actorID),
	)

	if status != StatusApproved && status != StatusRejected {
		return timeofferrors.ErrInvalidStatus
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	ntx := s.notifier.WithTx(tx)

	updated, err := qtx.ResolveIfPending(ctx, kind, id, status, reason)
	if err != nil {
		s.logger.Error("update request status", zap.Uint("request_id", id), zap.Error(err))
		return err
	}
	if !updated {
		exists, err := qtx.ExistsByID(ctx, kind, id)
		if err != nil {
			return err
		}
		if !exists {
			return timeofferrors.ErrRequestNotFound
		}
		s.logger.Warn("update status: request not pending",
			zap.String("kind", string(kind)),
			zap.Uint("request_id", id),
		)
		return timeofferrors.ErrNotPendingUpdate
	}

	req, err := qtx.GetByID(ctx, kind, id)
	if err != nil {
		return err
	}
	owner, err := s.directory.GetBasic(ctx, req.UserID)
	if err != nil {
		s.logger.Error("resolve request owner", zap.Uint("user_id", req.UserID), zap.Error(err))
		return err
	}

	subject := fmt.Sprintf("%s Request %s", kind.Title(), status)
	summary := requestSummary(req)
	if status == StatusRejected && reason != "" {
		summary = append(summary, events.SummaryRow{Label: "Reason", Value: reason})
	}

	err = ntx.Enqueue(ctx, string(kind), id, events.EmailRequested{
		To:      owner.Email,
		Subject: subject,
		Heading: subject,
		Message: fmt.Sprintf("Hi %s, your %s request has been %s.", owner.Name, kind.Title(), status),
		Summary: summary,
	})
	if err != nil {
		return err
	}

	err = ntx.Enqueue(ctx, string(kind), id, events.EmailRequested{
		To:      s.hrEmail,
		Subject: subject,
		Heading: subject,
		Message: fmt.Sprintf("The %s request of %s (%s) has been %s.", kind.Title(), owner.Name, owner.Email, status),
		Summary: summary,
	})
	if err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	s.logger.Info("request status updated",
		zap.String("kind", string(kind)),
		zap.Uint("request_id", id),
		zap.String("status", status),
		zap.Uint("actor_id", actorID),
	)
	return nil
}
