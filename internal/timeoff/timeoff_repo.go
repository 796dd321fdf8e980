package timeoff

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository bridges the three kind tables behind a single interface. Table
// names are resolved from the Kind enum only, never from request input.
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	Insert(ctx context.Context, req *Request) error
	GetByID(ctx context.Context, kind Kind, id uint) (*Request, error)
	ExistsForUser(ctx context.Context, kind Kind, id, userID uint) (bool, error)
	ExistsByID(ctx context.Context, kind Kind, id uint) (bool, error)

	// CancelIfPending flips a pending request owned by userID to cancelled
	// in one statement and reports whether a row was updated.
	CancelIfPending(ctx context.Context, kind Kind, id, userID uint, reason string) (bool, error)

	// ResolveIfPending flips a pending request to approved or rejected in
	// one statement; a rejection reason is stored only on reject.
	ResolveIfPending(ctx context.Context, kind Kind, id uint, status, reason string) (bool, error)

	ListByUser(ctx context.Context, userID uint) ([]Request, error)
	ListAll(ctx context.Context) ([]Request, error)
}

type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type repository struct {
	db dbtx
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: tx}
}

func tableFor(kind Kind) string {
	switch kind {
	case KindLeave:
		return "employee_leaves"
	case KindWFH:
		return "wfh_requests"
	case KindPartialDay:
		return "partial_day_requests"
	}
	// Unreachable when Kind came through ParseKind.
	panic(fmt.Sprintf("timeoff: unknown kind %q", kind))
}

func (r *repository) Insert(ctx context.Context, req *Request) error {
	var row *sql.Row

	switch req.Kind {
	case KindLeave:
		row = r.db.QueryRowContext(ctx, `
			INSERT INTO employee_leaves
				(user_id, leave_category, leave_type, half_day, from_date, to_date, total_days, note, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id, created_at`,
			req.UserID, req.LeaveCategory, req.LeaveType, nullIfEmpty(req.HalfDay),
			req.FromDate, req.ToDate, req.TotalDays, req.Note, StatusPending,
		)
	case KindWFH:
		row = r.db.QueryRowContext(ctx, `
			INSERT INTO wfh_requests
				(user_id, from_date, to_date, total_days, half_type, note, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, created_at`,
			req.UserID, req.FromDate, req.ToDate, req.TotalDays,
			nullIfEmpty(req.HalfType), req.Note, StatusPending,
		)
	case KindPartialDay:
		row = r.db.QueryRowContext(ctx, `
			INSERT INTO partial_day_requests
				(user_id, request_date, half, note, status)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, created_at`,
			req.UserID, req.RequestDate, req.Half, req.Note, StatusPending,
		)
	default:
		panic(fmt.Sprintf("timeoff: unknown kind %q", req.Kind))
	}

	if err := row.Scan(&req.ID, &req.CreatedAt); err != nil {
		return fmt.Errorf("insert %s request: %w", req.Kind, err)
	}
	req.Status = StatusPending
	return nil
}

func (r *repository) GetByID(ctx context.Context, kind Kind, id uint) (*Request, error) {
	rows, err := r.db.QueryContext(ctx, selectFor(kind)+` WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get %s request: %w", kind, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, sql.ErrNoRows
	}
	req, err := scanRequest(rows, kind)
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (r *repository) ExistsForUser(ctx context.Context, kind Kind, id, userID uint) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM `+tableFor(kind)+` WHERE id = $1 AND user_id = $2)`,
		id, userID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check %s request ownership: %w", kind, err)
	}
	return exists, nil
}

func (r *repository) ExistsByID(ctx context.Context, kind Kind, id uint) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM `+tableFor(kind)+` WHERE id = $1)`,
		id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check %s request: %w", kind, err)
	}
	return exists, nil
}

func (r *repository) CancelIfPending(ctx context.Context, kind Kind, id, userID uint, reason string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE `+tableFor(kind)+`
		SET status = $1, cancellation_reason = $2
		WHERE id = $3 AND user_id = $4 AND status = $5`,
		StatusCancelled, reason, id, userID, StatusPending,
	)
	if err != nil {
		return false, fmt.Errorf("cancel %s request: %w", kind, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *repository) ResolveIfPending(ctx context.Context, kind Kind, id uint, status, reason string) (bool, error) {
	var rejectionReason any
	if status == StatusRejected && reason != "" {
		rejectionReason = reason
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE `+tableFor(kind)+`
		SET status = $1, rejection_reason = $2
		WHERE id = $3 AND status = $4`,
		status, rejectionReason, id, StatusPending,
	)
	if err != nil {
		return false, fmt.Errorf("resolve %s request: %w", kind, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uint) ([]Request, error) {
	var all []Request
	for _, kind := range []Kind{KindLeave, KindWFH, KindPartialDay} {
		reqs, err := r.list(ctx, kind, ` WHERE user_id = $1`, userID)
		if err != nil {
			return nil, err
		}
		all = append(all, reqs...)
	}
	return all, nil
}

func (r *repository) ListAll(ctx context.Context) ([]Request, error) {
	var all []Request
	for _, kind := range []Kind{KindLeave, KindWFH, KindPartialDay} {
		reqs, err := r.list(ctx, kind, ``)
		if err != nil {
			return nil, err
		}
		all = append(all, reqs...)
	}
	return all, nil
}

func (r *repository) list(ctx context.Context, kind Kind, where string, args ...any) ([]Request, error) {
	rows, err := r.db.QueryContext(ctx, selectFor(kind)+where+` ORDER BY created_at DESC`, args...)
	if err != nil {
		return nil, fmt.Errorf("list %s requests: %w", kind, err)
	}
	defer rows.Close()

	var reqs []Request
	for rows.Next() {
		req, err := scanRequest(rows, kind)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, *req)
	}
	return reqs, rows.Err()
}

func selectFor(kind Kind) string {
	switch kind {
	case KindLeave:
		return `SELECT id, user_id, leave_category, leave_type, half_day, from_date, to_date, total_days, note, status, cancellation_reason, rejection_reason, created_at FROM employee_leaves`
	case KindWFH:
		return `SELECT id, user_id, from_date, to_date, total_days, half_type, note, status, cancellation_reason, rejection_reason, created_at FROM wfh_requests`
	case KindPartialDay:
		return `SELECT id, user_id, request_date, half, note, status, cancellation_reason, rejection_reason, created_at FROM partial_day_requests`
	}
	panic(fmt.Sprintf("timeoff: unknown kind %q", kind))
}

func scanRequest(rows *sql.Rows, kind Kind) (*Request, error) {
	req := Request{Kind: kind}
	var err error

	switch kind {
	case KindLeave:
		var halfDay sql.NullString
		err = rows.Scan(
			&req.ID, &req.UserID, &req.LeaveCategory, &req.LeaveType, &halfDay,
			&req.FromDate, &req.ToDate, &req.TotalDays, &req.Note, &req.Status,
			&req.CancellationReason, &req.RejectionReason, &req.CreatedAt,
		)
		req.HalfDay = halfDay.String
	case KindWFH:
		var halfType sql.NullString
		err = rows.Scan(
			&req.ID, &req.UserID, &req.FromDate, &req.ToDate, &req.TotalDays,
			&halfType, &req.Note, &req.Status,
			&req.CancellationReason, &req.RejectionReason, &req.CreatedAt,
		)
		req.HalfType = halfType.String
	case KindPartialDay:
		err = rows.Scan(
			&req.ID, &req.UserID, &req.RequestDate, &req.Half, &req.Note, &req.Status,
			&req.CancellationReason, &req.RejectionReason, &req.CreatedAt,
		)
		req.TotalDays = 0.5
	}
	if err != nil {
		return nil, fmt.Errorf("scan %s request: %w", kind, err)
	}
	return &req, nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
