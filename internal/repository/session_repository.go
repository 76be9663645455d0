package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/lecture-lottery/internal/lottery"
	"github.com/iliyamo/lecture-lottery/internal/model"
)

// SessionRepo manages persistence for sessions.  It implements
// lottery.SessionStore.
type SessionRepo struct {
	db *sql.DB
}

// NewSessionRepo returns a new SessionRepo bound to the given database.
func NewSessionRepo(db *sql.DB) *SessionRepo { return &SessionRepo{db: db} }

// GetByID loads one session.  lottery.ErrSessionNotFound is returned
// when no row exists, so the engine and handlers share a single
// sentinel for the missing-session case.
func (r *SessionRepo) GetByID(ctx context.Context, id uint64) (*model.Session, error) {
	const q = `SELECT id, lecture_id, starts_at, ends_at, deadline, capacity, current_applicants, created_at, updated_at
	           FROM sessions WHERE id = ?`
	var s model.Session
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&s.ID, &s.LectureID, &s.StartsAt, &s.EndsAt, &s.Deadline,
		&s.Capacity, &s.CurrentApplicants, &s.CreatedAt, &s.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, lottery.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ListClosedWithPending returns the sessions eligible for an
// allocation sweep at the given instant: deadline at or before now
// and at least one applied-status application remaining.  Sessions
// already fully processed never match, which is what makes the
// sweep idempotent.
func (r *SessionRepo) ListClosedWithPending(ctx context.Context, now time.Time) ([]model.Session, error) {
	const q = `SELECT s.id, s.lecture_id, s.starts_at, s.ends_at, s.deadline, s.capacity, s.current_applicants, s.created_at, s.updated_at
	           FROM sessions s
	           WHERE s.deadline <= ?
	             AND EXISTS (SELECT 1 FROM applications a WHERE a.session_id = s.id AND a.status = 'applied')
	           ORDER BY s.id`
	rows, err := r.db.QueryContext(ctx, q, now.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	sessions := make([]model.Session, 0)
	for rows.Next() {
		var s model.Session
		if err := rows.Scan(
			&s.ID, &s.LectureID, &s.StartsAt, &s.EndsAt, &s.Deadline,
			&s.Capacity, &s.CurrentApplicants, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}

// VerifyCounter compares a session's denormalized applicant counter
// against the actual application count.  A mismatch is an invariant
// violation; callers should surface it loudly rather than correct
// it silently.
func (r *SessionRepo) VerifyCounter(ctx context.Context, sessionID uint64) (counter, actual uint32, err error) {
	const q = `SELECT s.current_applicants,
	                  (SELECT COUNT(*) FROM applications a WHERE a.session_id = s.id)
	           FROM sessions s WHERE s.id = ?`
	err = r.db.QueryRowContext(ctx, q, sessionID).Scan(&counter, &actual)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, 0, lottery.ErrSessionNotFound
	}
	return counter, actual, err
}
