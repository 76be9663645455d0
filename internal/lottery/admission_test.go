package lottery

import (
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/lecture-lottery/internal/model"
)

var jst = time.FixedZone("JST", 9*60*60)

// at builds an instant on 2025-12-20 in JST at the given clock time.
func at(hour, min int) time.Time {
    return time.Date(2025, 12, 20, hour, min, 0, 0, jst)
}

func testSession(id uint64, start, end, deadline time.Time) *model.Session {
    return &model.Session{
        ID:       id,
        StartsAt: start,
        EndsAt:   end,
        Deadline: deadline,
        Capacity: 10,
    }
}

func TestCanApply_Admissible(t *testing.T) {
    session := testSession(1, at(10, 0), at(10, 50), at(9, 0))
    err := CanApply(at(8, 0), session, nil, jst)
    assert.NoError(t, err)
}

func TestCanApply_DeadlineBoundary(t *testing.T) {
    session := testSession(1, at(10, 0), at(10, 50), at(9, 0))

    // Exactly at the deadline is still admissible.
    assert.NoError(t, CanApply(at(9, 0), session, nil, jst))
    // One nanosecond past is not.
    assert.ErrorIs(t, CanApply(at(9, 0).Add(time.Nanosecond), session, nil, jst), ErrPastDeadline)
}

func TestCanApply_Duplicate(t *testing.T) {
    session := testSession(1, at(10, 0), at(10, 50), at(9, 0))
    held := []HeldApplication{{SessionID: 1, StartsAt: at(10, 0), EndsAt: at(10, 50)}}

    assert.ErrorIs(t, CanApply(at(8, 0), session, held, jst), ErrAlreadyApplied)
}

func TestCanApply_TimeConflict(t *testing.T) {
    // Candidate 10:30–11:20 overlaps a held 10:00–10:50 application.
    session := testSession(2, at(10, 30), at(11, 20), at(9, 0))
    held := []HeldApplication{{SessionID: 1, StartsAt: at(10, 0), EndsAt: at(10, 50)}}

    assert.ErrorIs(t, CanApply(at(8, 0), session, held, jst), ErrTimeConflict)
}

func TestCanApply_BackToBackSessionsDoNotConflict(t *testing.T) {
    // Held session ends exactly when the candidate starts.
    session := testSession(2, at(10, 50), at(11, 40), at(9, 0))
    held := []HeldApplication{{SessionID: 1, StartsAt: at(10, 0), EndsAt: at(10, 50)}}

    assert.NoError(t, CanApply(at(8, 0), session, held, jst))
}

func TestCanApply_DailyLimit(t *testing.T) {
    // Two held applications on 2025-12-20 exhaust the daily cap for a
    // third session that day, even with no time overlap.
    session := testSession(3, at(15, 0), at(15, 50), at(9, 0))
    held := []HeldApplication{
        {SessionID: 1, StartsAt: at(10, 0), EndsAt: at(10, 50)},
        {SessionID: 2, StartsAt: at(12, 0), EndsAt: at(12, 50)},
    }

    assert.ErrorIs(t, CanApply(at(8, 0), session, held, jst), ErrDailyLimit)
}

func TestCanApply_DailyLimitOtherDayUnaffected(t *testing.T) {
    nextDay := time.Date(2025, 12, 21, 10, 0, 0, 0, jst)
    session := testSession(3, nextDay, nextDay.Add(50*time.Minute), at(9, 0))
    held := []HeldApplication{
        {SessionID: 1, StartsAt: at(10, 0), EndsAt: at(10, 50)},
        {SessionID: 2, StartsAt: at(12, 0), EndsAt: at(12, 50)},
    }

    assert.NoError(t, CanApply(at(8, 0), session, held, jst))
}

func TestCanApply_DayBoundaryInLocalZone(t *testing.T) {
    // 2025-12-20 23:30 JST and 2025-12-21 00:30 JST are different
    // calendar days locally even though both fall on 2025-12-20 in UTC.
    late := time.Date(2025, 12, 20, 23, 30, 0, 0, jst)
    early := time.Date(2025, 12, 21, 0, 30, 0, 0, jst)
    require.Equal(t, late.UTC().Day(), early.UTC().Day())

    session := testSession(3, early, early.Add(50*time.Minute), early)
    held := []HeldApplication{
        {SessionID: 1, StartsAt: late, EndsAt: late.Add(20 * time.Minute)},
        {SessionID: 2, StartsAt: late.Add(-2 * time.Hour), EndsAt: late.Add(-70 * time.Minute)},
    }

    assert.NoError(t, CanApply(late, session, held, jst))
}

func TestCanApply_CheckOrder(t *testing.T) {
    // When several rules would reject, the earlier check wins: a
    // duplicate past the deadline reports the deadline, and a
    // duplicate that also overlaps reports the duplicate.
    session := testSession(1, at(10, 0), at(10, 50), at(9, 0))
    held := []HeldApplication{{SessionID: 1, StartsAt: at(10, 0), EndsAt: at(10, 50)}}

    assert.ErrorIs(t, CanApply(at(9, 30), session, held, jst), ErrPastDeadline)
    assert.ErrorIs(t, CanApply(at(8, 0), session, held, jst), ErrAlreadyApplied)
}
