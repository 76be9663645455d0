package model

import "time"

// ApplicationStatus enumerates the lifecycle states of an
// application.  A new application always starts as applied and
// transitions exactly once, at lottery time, to confirmed or
// waitlisted.  Applications are never deleted and never revert.
type ApplicationStatus string

const (
    StatusApplied    ApplicationStatus = "applied"
    StatusConfirmed  ApplicationStatus = "confirmed"
    StatusWaitlisted ApplicationStatus = "waitlisted"
)

// Application records a student's request to attend one session.
// At most one application may exist per (user, session) pair; the
// database enforces this with a unique key and the service layer
// rejects duplicates before they reach the insert.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – student who applied.
//  SessionID – session being applied to.
//  AppliedAt – submission instant.
//  Status    – applied, confirmed or waitlisted.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Application struct {
    ID        uint64            // applications.id
    UserID    uint64            // applications.user_id
    SessionID uint64            // applications.session_id
    AppliedAt time.Time         // applications.applied_at
    Status    ApplicationStatus // applications.status
    CreatedAt time.Time         // applications.created_at
    UpdatedAt time.Time         // applications.updated_at
}
