package lifecycle

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dmaslov/habitgoals-api/internal/models"
	"github.com/dmaslov/habitgoals-api/internal/store"
)

var baseTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time {
	return c.now
}

func newTestEngine(t *testing.T) (*Engine, *store.GoalStore, *testClock) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.Goal{}))

	goals := store.NewGoalStore(db)
	clock := &testClock{now: baseTime}
	engine := NewEngine(goals, zerolog.Nop())
	engine.now = clock.Now
	return engine, goals, clock
}

func seedGoal(t *testing.T, goals *store.GoalStore, goal models.Goal) {
	t.Helper()
	if goal.Title == "" {
		goal.Title = "Пить воду"
	}
	if goal.Points == 0 {
		goal.Points = 10
	}
	if goal.Description == "" {
		goal.Description = "Два литра в день"
	}
	require.NoError(t, goals.Upsert(context.Background(), &goal))
}

func TestSetStatusStartDateIdempotent(t *testing.T) {
	engine, goals, clock := newTestEngine(t)
	ctx := context.Background()
	seedGoal(t, goals, models.Goal{ID: "g1", UserID: "u1", Status: models.StatusNotStarted})

	first, err := engine.SetStatus(ctx, "u1", "g1", models.StatusInProgress)
	require.NoError(t, err)
	require.NotNil(t, first.StartDate)
	assert.True(t, first.StartDate.Equal(baseTime))

	clock.now = baseTime.Add(10 * time.Second)
	second, err := engine.SetStatus(ctx, "u1", "g1", models.StatusInProgress)
	require.NoError(t, err)
	require.NotNil(t, second.StartDate)
	assert.True(t, second.StartDate.Equal(baseTime), "re-entry must not restart the timer")
}

func TestSetStatusCompletedIncrementsProgress(t *testing.T) {
	engine, goals, clock := newTestEngine(t)
	ctx := context.Background()
	seedGoal(t, goals, models.Goal{ID: "g1", UserID: "u1", Status: models.StatusNotStarted})

	first, err := engine.SetStatus(ctx, "u1", "g1", models.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Progress)
	require.NotNil(t, first.CompletionDate)
	assert.True(t, first.CompletionDate.Equal(baseTime))

	clock.now = baseTime.Add(5 * time.Second)
	second, err := engine.SetStatus(ctx, "u1", "g1", models.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, 2, second.Progress, "every completion call counts")
	require.NotNil(t, second.CompletionDate)
	assert.True(t, second.CompletionDate.Equal(clock.now), "completion timestamp is refreshed every call")
}

func TestSetStatusNotStartedKeepsTimestamps(t *testing.T) {
	engine, goals, _ := newTestEngine(t)
	ctx := context.Background()
	start := baseTime.Add(-time.Minute)
	seedGoal(t, goals, models.Goal{ID: "g1", UserID: "u1", Status: models.StatusInProgress, StartDate: &start})

	goal, err := engine.SetStatus(ctx, "u1", "g1", models.StatusNotStarted)
	require.NoError(t, err)
	assert.Equal(t, models.StatusNotStarted, goal.Status)
	require.NotNil(t, goal.StartDate)
	assert.True(t, goal.StartDate.Equal(start), "only the sweep clears timestamps")
}

func TestSetStatusUnknownGoal(t *testing.T) {
	engine, goals, _ := newTestEngine(t)
	ctx := context.Background()
	seedGoal(t, goals, models.Goal{ID: "g1", UserID: "u1", Status: models.StatusNotStarted})

	_, err := engine.SetStatus(ctx, "u1", "missing", models.StatusInProgress)
	assert.ErrorIs(t, err, ErrGoalNotFound)

	// Another user's goal looks exactly like a missing one.
	_, err = engine.SetStatus(ctx, "u2", "g1", models.StatusInProgress)
	assert.ErrorIs(t, err, ErrGoalNotFound)
}

func TestSetStatusRejectsUnknownStatus(t *testing.T) {
	engine, goals, _ := newTestEngine(t)
	ctx := context.Background()
	seedGoal(t, goals, models.Goal{ID: "g1", UserID: "u1", Status: models.StatusNotStarted})

	for _, status := range []string{"done", "paused", ""} {
		_, err := engine.SetStatus(ctx, "u1", "g1", status)
		assert.ErrorIs(t, err, ErrInvalidStatus, "status %q", status)
	}
}

func TestSweepRevertsStaleInProgress(t *testing.T) {
	engine, goals, clock := newTestEngine(t)
	ctx := context.Background()
	start := baseTime
	seedGoal(t, goals, models.Goal{ID: "g1", UserID: "u1", Status: models.StatusInProgress, StartDate: &start})

	clock.now = baseTime.Add(InProgressTTL)
	swept, err := engine.Sweep(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, swept, 1)
	assert.Equal(t, models.StatusNotStarted, swept[0].Status)
	assert.Nil(t, swept[0].StartDate)
	assert.Nil(t, swept[0].CompletionDate)

	// The revert is persisted, not just reflected in the response.
	stored, err := goals.Get(ctx, "u1", "g1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusNotStarted, stored.Status)
	assert.Nil(t, stored.StartDate)
}

func TestSweepKeepsFreshInProgress(t *testing.T) {
	engine, goals, clock := newTestEngine(t)
	ctx := context.Background()
	start := baseTime
	seedGoal(t, goals, models.Goal{ID: "g1", UserID: "u1", Status: models.StatusInProgress, StartDate: &start})

	clock.now = baseTime.Add(InProgressTTL - time.Second)
	swept, err := engine.Sweep(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, swept, 1)
	assert.Equal(t, models.StatusInProgress, swept[0].Status)
	require.NotNil(t, swept[0].StartDate)
	assert.True(t, swept[0].StartDate.Equal(start))
}

func TestSweepRevertsStaleCompleted(t *testing.T) {
	engine, goals, clock := newTestEngine(t)
	ctx := context.Background()
	done := baseTime
	seedGoal(t, goals, models.Goal{ID: "g1", UserID: "u1", Status: models.StatusCompleted, CompletionDate: &done})

	clock.now = baseTime.Add(CompletedTTL)
	swept, err := engine.Sweep(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, swept, 1)
	assert.Equal(t, models.StatusNotStarted, swept[0].Status)
	assert.Nil(t, swept[0].CompletionDate)
}

func TestSweepKeepsFreshCompleted(t *testing.T) {
	engine, goals, clock := newTestEngine(t)
	ctx := context.Background()
	done := baseTime
	seedGoal(t, goals, models.Goal{ID: "g1", UserID: "u1", Status: models.StatusCompleted, CompletionDate: &done})

	clock.now = baseTime.Add(CompletedTTL - time.Second)
	swept, err := engine.Sweep(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, swept, 1)
	assert.Equal(t, models.StatusCompleted, swept[0].Status)
}

func TestSweepReturnsFullList(t *testing.T) {
	engine, goals, clock := newTestEngine(t)
	ctx := context.Background()
	stale := baseTime
	fresh := baseTime.Add(25 * time.Second)
	seedGoal(t, goals, models.Goal{ID: "stale", UserID: "u1", Status: models.StatusInProgress, StartDate: &stale})
	seedGoal(t, goals, models.Goal{ID: "fresh", UserID: "u1", Status: models.StatusInProgress, StartDate: &fresh})
	seedGoal(t, goals, models.Goal{ID: "idle", UserID: "u1", Status: models.StatusNotStarted})

	clock.now = baseTime.Add(30 * time.Second)
	swept, err := engine.Sweep(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, swept, 3)

	byID := make(map[string]models.Goal, len(swept))
	for _, g := range swept {
		byID[g.ID] = g
	}
	assert.Equal(t, models.StatusNotStarted, byID["stale"].Status)
	assert.Equal(t, models.StatusInProgress, byID["fresh"].Status)
	assert.Equal(t, models.StatusNotStarted, byID["idle"].Status)
}

func TestSweepIgnoresOtherUsers(t *testing.T) {
	engine, goals, clock := newTestEngine(t)
	ctx := context.Background()
	start := baseTime
	seedGoal(t, goals, models.Goal{ID: "g1", UserID: "u2", Status: models.StatusInProgress, StartDate: &start})

	clock.now = baseTime.Add(time.Minute)
	swept, err := engine.Sweep(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, swept)

	stored, err := goals.Get(ctx, "u2", "g1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, stored.Status)
}
