// Package lottery implements the application and allocation engine:
// the admissibility rules that decide whether a new application may
// be accepted, and the capacity-bounded random selection that turns
// pending applications into confirmed or waitlisted outcomes once a
// session's deadline has passed.  The package is storage-agnostic;
// it operates on the store interfaces declared in service.go.
package lottery

import "errors"

// ErrSessionNotFound is returned when the candidate session does not
// exist.  This is a caller mistake, not a policy rejection, and
// handlers should translate it into an HTTP 404 response.
var ErrSessionNotFound = errors.New("session not found")

// Policy rejections.  These are expected business outcomes rather
// than failures; each one maps to a distinct reason so the caller
// can render the exact cause to the student.
var (
    // ErrPastDeadline – the session's application deadline has passed.
    ErrPastDeadline = errors.New("past deadline")
    // ErrAlreadyApplied – the student already holds an application for
    // this session, regardless of that application's status.
    ErrAlreadyApplied = errors.New("already applied")
    // ErrTimeConflict – the session overlaps another session the
    // student has applied to.
    ErrTimeConflict = errors.New("time conflict")
    // ErrDailyLimit – the student already holds two applications for
    // sessions on the same calendar day.
    ErrDailyLimit = errors.New("daily limit reached")
)

// ErrBatchIncomplete signals that an allocation batch did not apply
// cleanly: the number of rows transitioned in the store differs from
// the number the engine selected.  It marks an invariant violation
// for that session's unit of work; the sweep aborts the session and
// reports the fault instead of committing a partial batch.
var ErrBatchIncomplete = errors.New("allocation batch incomplete")
