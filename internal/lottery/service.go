package lottery

import (
    "context"
    "log/slog"
    "sync"
    "time"

    "github.com/jonboulle/clockwork"

    "github.com/iliyamo/lecture-lottery/internal/model"
)

// SessionStore is the read surface the service needs over session
// records.  Implementations must return ErrSessionNotFound from
// GetByID when no session exists with the given ID.
type SessionStore interface {
    // GetByID loads a single session.
    GetByID(ctx context.Context, id uint64) (*model.Session, error)
    // ListClosedWithPending returns every session whose deadline is at
    // or before now and which still has at least one applied-status
    // application.
    ListClosedWithPending(ctx context.Context, now time.Time) ([]model.Session, error)
}

// ApplicationStore is the write and read surface over application
// records.  Create must insert the application and increment the
// session's applicant counter as one atomic unit.  ApplyAllocation
// must commit a whole session's status transitions as one unit and
// return ErrBatchIncomplete (possibly wrapped) when the number of
// transitioned rows does not match the request.
type ApplicationStore interface {
    Create(ctx context.Context, app *model.Application) error
    // ListByApplicant returns the applicant's complete application set
    // joined with each session's time window, as a single consistent
    // snapshot.
    ListByApplicant(ctx context.Context, applicantID uint64) ([]HeldApplication, error)
    // ListViewsByApplicant returns the applicant's applications with
    // lecture details, ordered by submission time ascending.
    ListViewsByApplicant(ctx context.Context, applicantID uint64) ([]ApplicationView, error)
    // ListPendingBySession returns the applied-status applications of
    // one session.
    ListPendingBySession(ctx context.Context, sessionID uint64) ([]model.Application, error)
    // ApplyAllocation transitions the given applications to confirmed
    // and waitlisted respectively, atomically for the whole session.
    ApplyAllocation(ctx context.Context, sessionID uint64, confirmedIDs, waitlistedIDs []uint64) error
}

// ApplicationView is the read-only projection returned to the
// "my applications" listing.  It carries no decision logic.
type ApplicationView struct {
    ApplicationID uint64                  `json:"application_id"`
    SessionID     uint64                  `json:"session_id"`
    LectureID     uint64                  `json:"lecture_id"`
    LectureTitle  string                  `json:"lecture_title"`
    StartsAt      time.Time               `json:"starts_at"`
    EndsAt        time.Time               `json:"ends_at"`
    Status        model.ApplicationStatus `json:"status"`
    AppliedAt     time.Time               `json:"applied_at"`
}

// OutcomeResult labels one side of a lottery decision.
type OutcomeResult string

const (
    ResultWin  OutcomeResult = "win"
    ResultLose OutcomeResult = "lose"
)

// Outcome reports one application's transition from a sweep, in a
// form suitable for audit logs and downstream notification.
type Outcome struct {
    SessionID     uint64        `json:"session_id"`
    ApplicationID uint64        `json:"application_id"`
    UserID        uint64        `json:"user_id"`
    Result        OutcomeResult `json:"result"`
}

// applicantStripes is the number of mutexes submissions are
// distributed over.  Two submissions by the same applicant always
// hash to the same stripe, so their admissibility checks are
// serialized against a consistent snapshot.
const applicantStripes = 64

// Service orchestrates application submission and the allocation
// sweep against the stores.  It owns the write path exclusively:
// handlers never touch the stores directly for mutations.
type Service struct {
    sessions SessionStore
    apps     ApplicationStore
    engine   *Engine
    clock    clockwork.Clock
    loc      *time.Location
    locks    [applicantStripes]sync.Mutex
}

// NewService builds a Service.  loc is the calendar-day reference
// used by the daily cap; clock supplies the submission instant and
// is injected so the engine stays deterministic under test.
func NewService(sessions SessionStore, apps ApplicationStore, engine *Engine, clock clockwork.Clock, loc *time.Location) *Service {
    if sessions == nil || apps == nil || engine == nil || clock == nil || loc == nil {
        panic("nil dependency passed to lottery.NewService")
    }
    return &Service{sessions: sessions, apps: apps, engine: engine, clock: clock, loc: loc}
}

// SubmitApplication runs the admissibility checks for one student
// and session and, when they pass, records the application with
// status applied and bumps the session's applicant counter in the
// same store transaction.  On rejection nothing is written and the
// specific policy error is returned.
func (s *Service) SubmitApplication(ctx context.Context, applicantID, sessionID uint64) (*model.Application, error) {
    session, err := s.sessions.GetByID(ctx, sessionID)
    if err != nil {
        return nil, err
    }

    // Serialize concurrent submissions by the same applicant so the
    // duplicate/overlap/daily-cap checks never race a stale snapshot.
    mu := &s.locks[applicantID%applicantStripes]
    mu.Lock()
    defer mu.Unlock()

    held, err := s.apps.ListByApplicant(ctx, applicantID)
    if err != nil {
        return nil, err
    }
    now := s.clock.Now()
    if err := CanApply(now, session, held, s.loc); err != nil {
        return nil, err
    }
    app := &model.Application{
        UserID:    applicantID,
        SessionID: sessionID,
        AppliedAt: now,
        Status:    model.StatusApplied,
    }
    if err := s.apps.Create(ctx, app); err != nil {
        return nil, err
    }
    return app, nil
}

// ListApplications returns the student's applications with lecture
// and time details, oldest first.
func (s *Service) ListApplications(ctx context.Context, applicantID uint64) ([]ApplicationView, error) {
    return s.apps.ListViewsByApplicant(ctx, applicantID)
}

// RunAllocationSweep runs the lottery for every session whose
// deadline is at or before now and which still has pending
// applications.  Sessions are processed independently: a failure in
// one is logged and reported per session but never blocks the
// others, and a session's batch either commits in full or not at
// all.  Cancellation of ctx is honored between sessions, never in
// the middle of a batch.  Re-running the sweep with the same now is
// a no-op because fully processed sessions have no applied-status
// applications left to select.
func (s *Service) RunAllocationSweep(ctx context.Context, now time.Time) ([]Outcome, error) {
    sessions, err := s.sessions.ListClosedWithPending(ctx, now)
    if err != nil {
        return nil, err
    }
    var outcomes []Outcome
    for i := range sessions {
        if err := ctx.Err(); err != nil {
            return outcomes, err
        }
        session := &sessions[i]
        pending, err := s.apps.ListPendingBySession(ctx, session.ID)
        if err != nil {
            slog.Error("sweep: loading pending applications failed", "session_id", session.ID, "error", err)
            continue
        }
        if len(pending) == 0 {
            // Already fully processed; never re-shuffle.
            continue
        }
        confirmed, waitlisted := s.engine.Allocate(session.Capacity, pending)
        if err := s.apps.ApplyAllocation(ctx, session.ID, applicationIDs(confirmed), applicationIDs(waitlisted)); err != nil {
            slog.Error("sweep: allocation batch failed", "session_id", session.ID, "error", err)
            continue
        }
        for _, a := range confirmed {
            outcomes = append(outcomes, Outcome{SessionID: session.ID, ApplicationID: a.ID, UserID: a.UserID, Result: ResultWin})
        }
        for _, a := range waitlisted {
            outcomes = append(outcomes, Outcome{SessionID: session.ID, ApplicationID: a.ID, UserID: a.UserID, Result: ResultLose})
        }
        slog.Info("sweep: session allocated",
            "session_id", session.ID,
            "confirmed", len(confirmed),
            "waitlisted", len(waitlisted))
    }
    return outcomes, nil
}

func applicationIDs(apps []model.Application) []uint64 {
    ids := make([]uint64, 0, len(apps))
    for _, a := range apps {
        ids = append(ids, a.ID)
    }
    return ids
}
