package handler

import (
    "context"
    "math/rand"
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"
    "time"

    "github.com/jonboulle/clockwork"
    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/lecture-lottery/internal/lottery"
    "github.com/iliyamo/lecture-lottery/internal/model"
)

type sessionStoreStub struct {
    session *model.Session
    err     error
}

func (s *sessionStoreStub) GetByID(context.Context, uint64) (*model.Session, error) {
    return s.session, s.err
}

func (s *sessionStoreStub) ListClosedWithPending(context.Context, time.Time) ([]model.Session, error) {
    return nil, nil
}

type appStoreStub struct {
    held      []lottery.HeldApplication
    views     []lottery.ApplicationView
    createErr error
}

func (s *appStoreStub) Create(_ context.Context, app *model.Application) error {
    if s.createErr != nil {
        return s.createErr
    }
    app.ID = 1
    return nil
}

func (s *appStoreStub) ListByApplicant(context.Context, uint64) ([]lottery.HeldApplication, error) {
    return s.held, nil
}

func (s *appStoreStub) ListViewsByApplicant(context.Context, uint64) ([]lottery.ApplicationView, error) {
    return s.views, nil
}

func (s *appStoreStub) ListPendingBySession(context.Context, uint64) ([]model.Application, error) {
    return nil, nil
}

func (s *appStoreStub) ApplyAllocation(context.Context, uint64, []uint64, []uint64) error {
    return nil
}

func newStubService(t *testing.T, sessions lottery.SessionStore, apps lottery.ApplicationStore, now time.Time) *lottery.Service {
    t.Helper()
    return lottery.NewService(sessions, apps, lottery.NewEngine(rand.NewSource(1)), clockwork.NewFakeClockAt(now), time.UTC)
}

func applyRequest(t *testing.T, h *ApplicationHandler, body string) *httptest.ResponseRecorder {
    t.Helper()
    e := echo.New()
    req := httptest.NewRequest(http.MethodPost, "/v1/applications", strings.NewReader(body))
    req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)
    c.Set("user_id", uint64(42))
    c.Set("role", "STUDENT")
    require.NoError(t, h.Apply(c))
    return rec
}

func TestApply_Created(t *testing.T) {
    now := time.Date(2025, 12, 19, 8, 0, 0, 0, time.UTC)
    session := &model.Session{
        ID:       5,
        StartsAt: now.Add(24 * time.Hour),
        EndsAt:   now.Add(25 * time.Hour),
        Deadline: now.Add(12 * time.Hour),
        Capacity: 10,
    }
    svc := newStubService(t, &sessionStoreStub{session: session}, &appStoreStub{}, now)
    h := NewApplicationHandler(svc)

    rec := applyRequest(t, h, `{"session_id":5}`)
    assert.Equal(t, http.StatusCreated, rec.Code)
    assert.Contains(t, rec.Body.String(), `"status":"applied"`)
}

func TestApply_MissingSessionID(t *testing.T) {
    svc := newStubService(t, &sessionStoreStub{}, &appStoreStub{}, time.Now())
    h := NewApplicationHandler(svc)

    rec := applyRequest(t, h, `{}`)
    assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestApply_ErrorMapping(t *testing.T) {
    now := time.Date(2025, 12, 19, 8, 0, 0, 0, time.UTC)
    open := func() *model.Session {
        return &model.Session{
            ID:       5,
            StartsAt: now.Add(24 * time.Hour),
            EndsAt:   now.Add(25 * time.Hour),
            Deadline: now.Add(12 * time.Hour),
            Capacity: 10,
        }
    }

    cases := []struct {
        name     string
        sessions *sessionStoreStub
        apps     *appStoreStub
        wantCode int
        wantMsg  string
    }{
        {
            name:     "session not found",
            sessions: &sessionStoreStub{err: lottery.ErrSessionNotFound},
            apps:     &appStoreStub{},
            wantCode: http.StatusNotFound,
            wantMsg:  "session not found",
        },
        {
            name: "past deadline",
            sessions: &sessionStoreStub{session: &model.Session{
                ID:       5,
                StartsAt: now.Add(time.Hour),
                EndsAt:   now.Add(2 * time.Hour),
                Deadline: now.Add(-time.Minute),
            }},
            apps:     &appStoreStub{},
            wantCode: http.StatusBadRequest,
            wantMsg:  "deadline",
        },
        {
            name:     "duplicate",
            sessions: &sessionStoreStub{session: open()},
            apps: &appStoreStub{held: []lottery.HeldApplication{
                {SessionID: 5, StartsAt: now.Add(24 * time.Hour), EndsAt: now.Add(25 * time.Hour)},
            }},
            wantCode: http.StatusConflict,
            wantMsg:  "already applied",
        },
        {
            name:     "time conflict",
            sessions: &sessionStoreStub{session: open()},
            apps: &appStoreStub{held: []lottery.HeldApplication{
                {SessionID: 9, StartsAt: now.Add(24*time.Hour + 30*time.Minute), EndsAt: now.Add(26 * time.Hour)},
            }},
            wantCode: http.StatusBadRequest,
            wantMsg:  "overlaps",
        },
        {
            name:     "daily limit",
            sessions: &sessionStoreStub{session: open()},
            apps: &appStoreStub{held: []lottery.HeldApplication{
                {SessionID: 8, StartsAt: now.Add(20 * time.Hour), EndsAt: now.Add(21 * time.Hour)},
                {SessionID: 9, StartsAt: now.Add(22 * time.Hour), EndsAt: now.Add(23 * time.Hour)},
            }},
            wantCode: http.StatusBadRequest,
            wantMsg:  "daily",
        },
    }

    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            svc := newStubService(t, tc.sessions, tc.apps, now)
            h := NewApplicationHandler(svc)

            rec := applyRequest(t, h, `{"session_id":5}`)
            assert.Equal(t, tc.wantCode, rec.Code)
            assert.Contains(t, rec.Body.String(), tc.wantMsg)
        })
    }
}

func TestMyApplications_ReturnsItems(t *testing.T) {
    now := time.Date(2025, 12, 19, 8, 0, 0, 0, time.UTC)
    views := []lottery.ApplicationView{
        {ApplicationID: 1, SessionID: 5, LectureID: 2, LectureTitle: "Calculus II", Status: model.StatusApplied},
    }
    svc := newStubService(t, &sessionStoreStub{}, &appStoreStub{views: views}, now)
    h := NewApplicationHandler(svc)

    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, "/v1/my-applications", nil)
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)
    c.Set("user_id", uint64(42))

    require.NoError(t, h.MyApplications(c))
    assert.Equal(t, http.StatusOK, rec.Code)
    assert.Contains(t, rec.Body.String(), "Calculus II")
}

func TestApply_Unauthenticated(t *testing.T) {
    svc := newStubService(t, &sessionStoreStub{}, &appStoreStub{}, time.Now())
    h := NewApplicationHandler(svc)

    e := echo.New()
    req := httptest.NewRequest(http.MethodPost, "/v1/applications", strings.NewReader(`{"session_id":5}`))
    req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)

    require.NoError(t, h.Apply(c))
    assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
