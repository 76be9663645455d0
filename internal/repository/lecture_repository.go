// Package repository contains data access logic for the lecture
// browsing endpoints. Lectures are read-only from the HTTP surface;
// rows are seeded by operations tooling. The aggregate applied
// counts shown in listings are computed from the sessions table's
// denormalized current_applicants counters.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/lecture-lottery/internal/model"
)

// LectureRepo manages persistence for lectures and their sessions.
type LectureRepo struct {
	db *sql.DB
}

// NewLectureRepo returns a new LectureRepo bound to the given database.
func NewLectureRepo(db *sql.DB) *LectureRepo { return &LectureRepo{db: db} }

// LectureSummary is the listing projection: lecture metadata plus
// the total number of applications across its sessions.
type LectureSummary struct {
	ID          uint64  `json:"id"`
	Title       string  `json:"title"`
	TeacherName string  `json:"teacher_name"`
	Capacity    uint32  `json:"capacity"`
	Applied     uint32  `json:"applied"`
	PDFURL      *string `json:"pdf_url"`
}

// ListSummaries returns every lecture with its aggregate applied
// count.  Lectures with no sessions report zero applications.
func (r *LectureRepo) ListSummaries(ctx context.Context) ([]LectureSummary, error) {
	const q = `SELECT l.id, l.title, l.teacher_name, l.max_capacity, l.pdf_url,
	                  COALESCE(SUM(s.current_applicants), 0)
	           FROM lectures l
	           LEFT JOIN sessions s ON s.lecture_id = l.id
	           GROUP BY l.id, l.title, l.teacher_name, l.max_capacity, l.pdf_url
	           ORDER BY l.id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	summaries := make([]LectureSummary, 0)
	for rows.Next() {
		var s LectureSummary
		var pdf sql.NullString
		if err := rows.Scan(&s.ID, &s.Title, &s.TeacherName, &s.Capacity, &pdf, &s.Applied); err != nil {
			return nil, err
		}
		if pdf.Valid {
			p := pdf.String
			s.PDFURL = &p
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return summaries, nil
}

// GetByID returns a single lecture.  ErrLectureNotFound is returned
// when no lecture exists with the given ID.
func (r *LectureRepo) GetByID(ctx context.Context, id uint64) (*model.Lecture, error) {
	const q = `SELECT id, title, description, teacher_name, location_name, pdf_url, max_capacity, created_at, updated_at
	           FROM lectures WHERE id = ?`
	var l model.Lecture
	var pdf sql.NullString
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&l.ID, &l.Title, &l.Description, &l.TeacherName, &l.LocationName,
		&pdf, &l.MaxCapacity, &l.CreatedAt, &l.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrLectureNotFound
	}
	if err != nil {
		return nil, err
	}
	if pdf.Valid {
		p := pdf.String
		l.PDFURL = &p
	}
	return &l, nil
}

// AppliedCount sums the applicant counters of a lecture's sessions.
func (r *LectureRepo) AppliedCount(ctx context.Context, lectureID uint64) (uint32, error) {
	var n uint32
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(current_applicants), 0) FROM sessions WHERE lecture_id = ?",
		lectureID).Scan(&n)
	return n, err
}

// SessionInfo is the per-session projection shown under a lecture,
// including whether the application window is still open at the
// given reference time.
type SessionInfo struct {
	ID                uint64    `json:"session_id"`
	StartsAt          time.Time `json:"starts_at"`
	EndsAt            time.Time `json:"ends_at"`
	Deadline          time.Time `json:"deadline"`
	Capacity          uint32    `json:"capacity"`
	CurrentApplicants uint32    `json:"current_applicants"`
	Open              bool      `json:"open"`
}

// ListSessions returns the sessions of a lecture ordered by start
// time.  It returns ErrLectureNotFound when the lecture itself does
// not exist, so callers can distinguish "no sessions" from a bad ID.
func (r *LectureRepo) ListSessions(ctx context.Context, lectureID uint64, now time.Time) ([]SessionInfo, error) {
	var exists bool
	if err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM lectures WHERE id = ?)", lectureID).Scan(&exists); err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrLectureNotFound
	}
	const q = `SELECT id, starts_at, ends_at, deadline, capacity, current_applicants
	           FROM sessions WHERE lecture_id = ? ORDER BY starts_at`
	rows, err := r.db.QueryContext(ctx, q, lectureID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	infos := make([]SessionInfo, 0)
	for rows.Next() {
		var s SessionInfo
		if err := rows.Scan(&s.ID, &s.StartsAt, &s.EndsAt, &s.Deadline, &s.Capacity, &s.CurrentApplicants); err != nil {
			return nil, err
		}
		s.Open = !now.After(s.Deadline)
		infos = append(infos, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return infos, nil
}
