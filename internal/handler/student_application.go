package handler

import (
    "errors"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/lecture-lottery/internal/lottery"
)

// ApplicationHandler serves the student-facing application endpoints.
// All admissibility rules live in the lottery service; this layer only
// translates between HTTP and the service's domain errors.
type ApplicationHandler struct {
    Svc *lottery.Service
}

// NewApplicationHandler constructs an ApplicationHandler.
func NewApplicationHandler(svc *lottery.Service) *ApplicationHandler {
    if svc == nil {
        panic("nil service passed to NewApplicationHandler")
    }
    return &ApplicationHandler{Svc: svc}
}

// applyReq is the request body for submitting an application.
type applyReq struct {
    SessionID uint64 `json:"session_id"`
}

// Apply handles POST /v1/applications. The response distinguishes the
// rejection reasons so the client can show a meaningful message.
func (h *ApplicationHandler) Apply(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
    }

    var req applyReq
    if err := c.Bind(&req); err != nil || req.SessionID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "session_id is required"})
    }

    app, err := h.Svc.SubmitApplication(c.Request().Context(), userID, req.SessionID)
    if err != nil {
        switch {
        case errors.Is(err, lottery.ErrSessionNotFound):
            return c.JSON(http.StatusNotFound, echo.Map{"error": "session not found"})
        case errors.Is(err, lottery.ErrAlreadyApplied):
            return c.JSON(http.StatusConflict, echo.Map{"error": "already applied to this session"})
        case errors.Is(err, lottery.ErrPastDeadline):
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "application deadline has passed"})
        case errors.Is(err, lottery.ErrTimeConflict):
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "session overlaps an existing application"})
        case errors.Is(err, lottery.ErrDailyLimit):
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "daily application limit reached"})
        default:
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not submit application"})
        }
    }

    return c.JSON(http.StatusCreated, echo.Map{
        "id":         app.ID,
        "session_id": app.SessionID,
        "status":     app.Status,
        "applied_at": app.AppliedAt,
    })
}

// MyApplications handles GET /v1/my-applications. Results are ordered
// by submission time so the list is stable across calls.
func (h *ApplicationHandler) MyApplications(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
    }

    views, err := h.Svc.ListApplications(c.Request().Context(), userID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not list applications"})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": views})
}
