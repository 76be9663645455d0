package lottery

import (
    "time"

    "github.com/iliyamo/lecture-lottery/internal/model"
)

// HeldApplication is the slice of an existing application the
// admissibility rules need: which session it targets and that
// session's time window.  The status of the application is
// deliberately absent — the duplicate, overlap and daily-cap rules
// all count applications of any status, including ones already
// waitlisted by a previous lottery.
type HeldApplication struct {
    SessionID uint64
    StartsAt  time.Time
    EndsAt    time.Time
}

// MaxPerDay is the maximum number of applications a student may hold
// for sessions falling on the same calendar day.
const MaxPerDay = 2

// CanApply decides whether a student may submit a new application
// for the candidate session.  held must be the student's complete
// set of existing applications across all sessions, read as one
// consistent snapshot.  loc supplies the calendar-day reference for
// the daily cap (year/month/day are compared in that location, not
// in UTC).
//
// The checks run in a fixed order and each failure is terminal:
//
//  1. deadline   – now must not be after the session's deadline.
//  2. duplicate  – no existing application may target this session.
//  3. overlap    – the candidate's [start, end) window must not
//                  overlap any held session's window.
//  4. daily cap  – at most MaxPerDay applications per calendar day.
//
// A nil return means the application is admissible.
func CanApply(now time.Time, session *model.Session, held []HeldApplication, loc *time.Location) error {
    if now.After(session.Deadline) {
        return ErrPastDeadline
    }
    for _, h := range held {
        if h.SessionID == session.ID {
            return ErrAlreadyApplied
        }
    }
    for _, h := range held {
        if overlaps(h.StartsAt, h.EndsAt, session.StartsAt, session.EndsAt) {
            return ErrTimeConflict
        }
    }
    dayCount := 0
    for _, h := range held {
        if sameDay(h.StartsAt, session.StartsAt, loc) {
            dayCount++
        }
    }
    if dayCount >= MaxPerDay {
        return ErrDailyLimit
    }
    return nil
}

// overlaps reports whether the half-open intervals [aStart, aEnd)
// and [bStart, bEnd) intersect.  Back-to-back sessions (one ending
// exactly when the other starts) do not overlap.
func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
    return aStart.Before(bEnd) && aEnd.After(bStart)
}

// sameDay reports whether two instants fall on the same calendar day
// in the given location.
func sameDay(a, b time.Time, loc *time.Location) bool {
    y1, m1, d1 := a.In(loc).Date()
    y2, m2, d2 := b.In(loc).Date()
    return y1 == y2 && m1 == m2 && d1 == d2
}
