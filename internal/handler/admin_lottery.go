package handler

import (
    "context"
    "log/slog"
    "net/http"
    "time"

    "github.com/google/uuid"
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/lecture-lottery/internal/lottery"
    "github.com/iliyamo/lecture-lottery/internal/queue"
    "github.com/iliyamo/lecture-lottery/internal/repository"
    queue_publisher "github.com/iliyamo/lecture-lottery/internal/service"
)

// AdminHandler serves administrative endpoints. Currently that is the
// lottery trigger, which draws all sessions whose deadline has passed
// and still have undecided applications.
type AdminHandler struct {
    Svc         *lottery.Service
    SessionRepo *repository.SessionRepo
    LectureRepo *repository.LectureRepo
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(svc *lottery.Service, sessions *repository.SessionRepo, lectures *repository.LectureRepo) *AdminHandler {
    if svc == nil || sessions == nil || lectures == nil {
        panic("nil dependency passed to NewAdminHandler")
    }
    return &AdminHandler{Svc: svc, SessionRepo: sessions, LectureRepo: lectures}
}

// RunLottery handles POST /v1/admin/lottery. The sweep itself is
// idempotent, so repeated calls after a partial failure simply finish
// the remaining sessions. Result events are published per session;
// publish failures are logged and do not fail the request, because
// the database already holds the authoritative outcome.
func (h *AdminHandler) RunLottery(c echo.Context) error {
    ctx := c.Request().Context()
    ranAt := time.Now().UTC()
    sweepID := uuid.NewString()

    outcomes, err := h.Svc.RunAllocationSweep(ctx, ranAt)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "lottery sweep failed"})
    }

    bySession := make(map[uint64][]lottery.Outcome)
    var order []uint64
    for _, o := range outcomes {
        if _, seen := bySession[o.SessionID]; !seen {
            order = append(order, o.SessionID)
        }
        bySession[o.SessionID] = append(bySession[o.SessionID], o)
    }

    for _, sessionID := range order {
        h.auditSession(ctx, sweepID, sessionID, bySession[sessionID], ranAt)
    }

    return c.JSON(http.StatusOK, echo.Map{
        "sweep_id":          sweepID,
        "sessions_allocated": len(order),
        "outcomes":          outcomes,
        "ran_at":            ranAt,
    })
}

// auditSession verifies the denormalized applicant counter of an
// allocated session and publishes its result event. Both steps are
// best-effort; the allocation has already been committed.
func (h *AdminHandler) auditSession(ctx context.Context, sweepID string, sessionID uint64, outs []lottery.Outcome, ranAt time.Time) {
    counter, actual, err := h.SessionRepo.VerifyCounter(ctx, sessionID)
    if err != nil {
        slog.Error("counter verification failed", "session_id", sessionID, "error", err)
    } else if counter != actual {
        slog.Error("applicant counter drift detected",
            "session_id", sessionID, "counter", counter, "actual", actual)
    }

    ev := queue.AllocationCompletedEvent{
        SweepID:   sweepID,
        SessionID: sessionID,
        RanAt:     ranAt.Format(time.RFC3339),
    }
    if session, err := h.SessionRepo.GetByID(ctx, sessionID); err == nil {
        ev.Capacity = session.Capacity
        if lec, err := h.LectureRepo.GetByID(ctx, session.LectureID); err == nil {
            ev.LectureTitle = lec.Title
        }
    }
    for _, o := range outs {
        ev.Outcomes = append(ev.Outcomes, queue.SessionOutcome{
            ApplicationID: o.ApplicationID,
            UserID:        o.UserID,
            Result:        string(o.Result),
        })
        if o.Result == lottery.ResultWin {
            ev.Confirmed++
        } else {
            ev.Waitlisted++
        }
    }

    if err := queue_publisher.PublishAllocationCompleted(ctx, ev); err != nil {
        slog.Error("result event publish failed", "session_id", sessionID, "error", err)
    }
}
