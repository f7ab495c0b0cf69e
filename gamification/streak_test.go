package gamification

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/moecode-c/mohammedcourseswebsite-sub000/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(day int, hour int) time.Time {
	return time.Date(2026, time.March, day, hour, 0, 0, 0, time.Local)
}

func TestUpdateStreakFirstActivity(t *testing.T) {
	user := &models.User{}

	changed := UpdateStreak(user, at(10, 9))
	assert.True(t, changed)
	assert.Equal(t, 1, user.StreakCount)
	require.NotNil(t, user.LastActiveAt)
}

func TestUpdateStreakSameDay(t *testing.T) {
	user := &models.User{}
	UpdateStreak(user, at(10, 9))

	changed := UpdateStreak(user, at(10, 23))
	assert.False(t, changed)
	assert.Equal(t, 1, user.StreakCount)
}

func TestUpdateStreakConsecutiveDays(t *testing.T) {
	user := &models.User{}
	UpdateStreak(user, at(10, 22))

	// Late evening to early morning still counts as the next day.
	changed := UpdateStreak(user, at(11, 1))
	assert.True(t, changed)
	assert.Equal(t, 2, user.StreakCount)

	changed = UpdateStreak(user, at(12, 12))
	assert.True(t, changed)
	assert.Equal(t, 3, user.StreakCount)
}

func TestUpdateStreakGapResets(t *testing.T) {
	user := &models.User{}
	UpdateStreak(user, at(10, 9))
	UpdateStreak(user, at(11, 9))
	assert.Equal(t, 2, user.StreakCount)

	changed := UpdateStreak(user, at(14, 9))
	assert.True(t, changed)
	assert.Equal(t, 1, user.StreakCount)
}

func TestUpdateStreakAcrossDSTShortDay(t *testing.T) {
	// US spring-forward (March 8, 2026) makes a 23-hour local day. Noon to
	// noon across it is still exactly one calendar day.
	nyc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	restore := time.Local
	time.Local = nyc
	defer func() { time.Local = restore }()

	last := time.Date(2026, time.March, 8, 12, 0, 0, 0, nyc)
	user := &models.User{StreakCount: 3, LastActiveAt: &last}

	changed := UpdateStreak(user, time.Date(2026, time.March, 9, 12, 0, 0, 0, nyc))
	assert.True(t, changed)
	assert.Equal(t, 4, user.StreakCount)
}

func TestUpdateStreakZeroCountRestarts(t *testing.T) {
	last := at(10, 9)
	user := &models.User{StreakCount: 0, LastActiveAt: &last}

	changed := UpdateStreak(user, at(10, 10))
	assert.True(t, changed)
	assert.Equal(t, 1, user.StreakCount)
}

func TestRefreshStreakPersists(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db)

	refreshed, err := RefreshStreak(db, user.ID, at(10, 9))
	require.NoError(t, err)
	assert.Equal(t, 1, refreshed.StreakCount)

	refreshed, err = RefreshStreak(db, user.ID, at(11, 9))
	require.NoError(t, err)
	assert.Equal(t, 2, refreshed.StreakCount)

	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.Equal(t, 2, stored.StreakCount)
	require.NotNil(t, stored.LastActiveAt)
}

func TestRefreshStreakSameDayNoWrite(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db)

	first, err := RefreshStreak(db, user.ID, at(10, 9))
	require.NoError(t, err)

	second, err := RefreshStreak(db, user.ID, at(10, 18))
	require.NoError(t, err)
	assert.Equal(t, first.StreakCount, second.StreakCount)
	assert.True(t, second.LastActiveAt.Equal(*first.LastActiveAt))
}

func TestSetStreak(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db)

	updated, err := SetStreak(db, user.ID, 30, at(10, 9))
	require.NoError(t, err)
	assert.Equal(t, 30, updated.StreakCount)

	// The override counts as activity: the next day continues from it.
	refreshed, err := RefreshStreak(db, user.ID, at(11, 9))
	require.NoError(t, err)
	assert.Equal(t, 31, refreshed.StreakCount)
}
