// Package queue defines message payloads exchanged over the message broker.
package queue

// SessionOutcome describes a single applicant's result within an
// allocation run. Result is either "win" or "lose".
type SessionOutcome struct {
    ApplicationID uint64 `json:"application_id"`
    UserID        uint64 `json:"user_id"`
    Result        string `json:"result"`
}

// AllocationCompletedEvent is published after the lottery has been drawn
// for one session. It carries enough information for downstream consumers
// to log or notify applicants without querying the primary database.
type AllocationCompletedEvent struct {
    SweepID      string           `json:"sweep_id"`
    SessionID    uint64           `json:"session_id"`
    LectureTitle string           `json:"lecture_title"`
    Capacity     uint32           `json:"capacity"`
    Confirmed    int              `json:"confirmed"`
    Waitlisted   int              `json:"waitlisted"`
    Outcomes     []SessionOutcome `json:"outcomes"`
    RanAt        string           `json:"ran_at"`
}
