package model

import "time"

// Session represents one scheduled time slot of a lecture with its
// own capacity and application deadline.  Students apply to
// sessions, not lectures.  CurrentApplicants is a denormalized
// counter that must always equal the number of applications
// referencing this session; it is maintained inside the same
// transaction that inserts an application.
//
// Fields:
//  ID                – primary key identifier.
//  LectureID         – lecture this session belongs to.
//  StartsAt          – when the session begins.
//  EndsAt            – when the session ends (must be after StartsAt).
//  Deadline          – last instant at which applications are accepted;
//                      may precede or follow StartsAt.
//  Capacity          – number of seats awarded by the lottery (positive).
//  CurrentApplicants – count of applications for this session.
//  CreatedAt         – creation timestamp.
//  UpdatedAt         – last update timestamp.
type Session struct {
    ID                uint64    // sessions.id
    LectureID         uint64    // sessions.lecture_id
    StartsAt          time.Time // sessions.starts_at
    EndsAt            time.Time // sessions.ends_at
    Deadline          time.Time // sessions.deadline
    Capacity          uint32    // sessions.capacity
    CurrentApplicants uint32    // sessions.current_applicants
    CreatedAt         time.Time // sessions.created_at
    UpdatedAt         time.Time // sessions.updated_at
}
