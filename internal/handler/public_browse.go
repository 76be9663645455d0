// Package handler exposes HTTP handlers for both authenticated and public
// endpoints. This file defines handlers for the public browsing API. These
// routes allow unauthenticated users to browse lectures and their sessions
// before deciding to register and apply. Only safe fields are exposed.
package handler

import (
    "errors"
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/lecture-lottery/internal/repository"
)

// PublicHandler aggregates repositories needed for unauthenticated browsing.
// It produces sanitized responses suitable for public consumption.
type PublicHandler struct {
    LectureRepo *repository.LectureRepo // provides access to lecture and session data
}

// NewPublicHandler constructs a PublicHandler.
func NewPublicHandler(lectureRepo *repository.LectureRepo) *PublicHandler {
    if lectureRepo == nil {
        panic("nil repository passed to NewPublicHandler")
    }
    return &PublicHandler{LectureRepo: lectureRepo}
}

// publicLectureDetail is the detailed lecture response including the
// aggregate number of applications across its sessions.
type publicLectureDetail struct {
    ID          uint64  `json:"id"`
    Title       string  `json:"title"`
    Description string  `json:"description"`
    TeacherName string  `json:"teacher_name"`
    Location    string  `json:"location"`
    Capacity    uint32  `json:"capacity"`
    Applied     uint32  `json:"applied"`
    PDFURL      *string `json:"pdf_url"`
}

// GetLectures returns all lectures with their aggregate applied counts.
func (h *PublicHandler) GetLectures(c echo.Context) error {
    ctx := c.Request().Context()
    items, err := h.LectureRepo.ListSummaries(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetLecture returns the detail of a single lecture.
func (h *PublicHandler) GetLecture(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid lecture id"})
    }
    ctx := c.Request().Context()
    lec, err := h.LectureRepo.GetByID(ctx, id)
    if err != nil {
        if errors.Is(err, repository.ErrLectureNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "lecture not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    applied, err := h.LectureRepo.AppliedCount(ctx, id)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, publicLectureDetail{
        ID:          lec.ID,
        Title:       lec.Title,
        Description: lec.Description,
        TeacherName: lec.TeacherName,
        Location:    lec.LocationName,
        Capacity:    lec.MaxCapacity,
        Applied:     applied,
        PDFURL:      lec.PDFURL,
    })
}

// GetLectureSessions lists the sessions of a lecture with their
// capacities, applicant counts and whether the application window is
// still open at the time of the request.
func (h *PublicHandler) GetLectureSessions(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid lecture id"})
    }
    ctx := c.Request().Context()
    sessions, err := h.LectureRepo.ListSessions(ctx, id, time.Now().UTC())
    if err != nil {
        if errors.Is(err, repository.ErrLectureNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "lecture not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": sessions})
}
