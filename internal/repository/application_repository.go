package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/iliyamo/lecture-lottery/internal/lottery"
	"github.com/iliyamo/lecture-lottery/internal/model"
)

// ApplicationRepo manages persistence for applications.  It
// implements lottery.ApplicationStore.  Applications are indexed by
// applicant and by session; the (user_id, session_id) pair carries a
// unique key so the duplicate rule holds even if two processes race
// past the service-level check.
type ApplicationRepo struct {
	db *sql.DB
}

// NewApplicationRepo returns a new ApplicationRepo bound to the given database.
func NewApplicationRepo(db *sql.DB) *ApplicationRepo { return &ApplicationRepo{db: db} }

// Create inserts an application and increments the session's
// applicant counter inside one transaction, so the denormalized
// counter can never drift from the inserted rows.  The generated ID
// is populated on the given record.  A duplicate (user, session)
// pair surfaces as lottery.ErrAlreadyApplied.
func (r *ApplicationRepo) Create(ctx context.Context, app *model.Application) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	const ins = `INSERT INTO applications (user_id, session_id, applied_at, status) VALUES (?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, ins, app.UserID, app.SessionID, app.AppliedAt.UTC(), string(app.Status))
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return lottery.ErrAlreadyApplied
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	app.ID = uint64(id)
	const bump = `UPDATE sessions SET current_applicants = current_applicants + 1 WHERE id = ?`
	upd, err := tx.ExecContext(ctx, bump, app.SessionID)
	if err != nil {
		return err
	}
	n, err := upd.RowsAffected()
	if err != nil {
		return err
	}
	if n != 1 {
		return lottery.ErrSessionNotFound
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// ListByApplicant returns the applicant's full application set
// joined with each session's time window.  One query yields one
// consistent snapshot for the admissibility checks.
func (r *ApplicationRepo) ListByApplicant(ctx context.Context, applicantID uint64) ([]lottery.HeldApplication, error) {
	const q = `SELECT a.session_id, s.starts_at, s.ends_at
	           FROM applications a
	           JOIN sessions s ON s.id = a.session_id
	           WHERE a.user_id = ?`
	rows, err := r.db.QueryContext(ctx, q, applicantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	held := make([]lottery.HeldApplication, 0)
	for rows.Next() {
		var h lottery.HeldApplication
		if err := rows.Scan(&h.SessionID, &h.StartsAt, &h.EndsAt); err != nil {
			return nil, err
		}
		held = append(held, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return held, nil
}

// ListViewsByApplicant returns the applicant's applications with
// lecture details, ordered by submission time ascending (oldest
// first).
func (r *ApplicationRepo) ListViewsByApplicant(ctx context.Context, applicantID uint64) ([]lottery.ApplicationView, error) {
	const q = `SELECT a.id, a.session_id, l.id, l.title, s.starts_at, s.ends_at, a.status, a.applied_at
	           FROM applications a
	           JOIN sessions s ON s.id = a.session_id
	           JOIN lectures l ON l.id = s.lecture_id
	           WHERE a.user_id = ?
	           ORDER BY a.applied_at ASC, a.id ASC`
	rows, err := r.db.QueryContext(ctx, q, applicantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	views := make([]lottery.ApplicationView, 0)
	for rows.Next() {
		var v lottery.ApplicationView
		var status string
		if err := rows.Scan(&v.ApplicationID, &v.SessionID, &v.LectureID, &v.LectureTitle,
			&v.StartsAt, &v.EndsAt, &status, &v.AppliedAt); err != nil {
			return nil, err
		}
		v.Status = model.ApplicationStatus(status)
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return views, nil
}

// ListPendingBySession returns the applied-status applications of a
// session, the exact input set for one allocation run.
func (r *ApplicationRepo) ListPendingBySession(ctx context.Context, sessionID uint64) ([]model.Application, error) {
	const q = `SELECT id, user_id, session_id, applied_at, status, created_at, updated_at
	           FROM applications WHERE session_id = ? AND status = 'applied'`
	rows, err := r.db.QueryContext(ctx, q, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	apps := make([]model.Application, 0)
	for rows.Next() {
		var a model.Application
		var status string
		if err := rows.Scan(&a.ID, &a.UserID, &a.SessionID, &a.AppliedAt, &status, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		a.Status = model.ApplicationStatus(status)
		apps = append(apps, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return apps, nil
}

// ApplyAllocation commits one session's lottery results as a single
// transaction.  Only rows still in applied status transition; if the
// affected row counts differ from the engine's selection the whole
// batch rolls back and lottery.ErrBatchIncomplete is returned, so
// readers never observe a half-allocated session.
func (r *ApplicationRepo) ApplyAllocation(ctx context.Context, sessionID uint64, confirmedIDs, waitlistedIDs []uint64) error {
	if len(confirmedIDs) == 0 && len(waitlistedIDs) == 0 {
		return nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err := r.transitionTx(ctx, tx, sessionID, confirmedIDs, model.StatusConfirmed); err != nil {
		return err
	}
	if err := r.transitionTx(ctx, tx, sessionID, waitlistedIDs, model.StatusWaitlisted); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// transitionTx moves the given applications of one session to the
// target status in a single statement and verifies the row count.
func (r *ApplicationRepo) transitionTx(ctx context.Context, tx *sql.Tx, sessionID uint64, ids []uint64, to model.ApplicationStatus) error {
	if len(ids) == 0 {
		return nil
	}
	placeholders := make([]string, 0, len(ids))
	args := make([]interface{}, 0, len(ids)+2)
	args = append(args, string(to), sessionID)
	for _, id := range ids {
		placeholders = append(placeholders, "?")
		args = append(args, id)
	}
	q := `UPDATE applications SET status = ? WHERE session_id = ? AND status = 'applied' AND id IN (` +
		strings.Join(placeholders, ",") + `)`
	res, err := tx.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n != int64(len(ids)) {
		return fmt.Errorf("session %d: %d of %d rows moved to %s: %w",
			sessionID, n, len(ids), to, lottery.ErrBatchIncomplete)
	}
	return nil
}
