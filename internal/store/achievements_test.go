package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dmaslov/habitgoals-api/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.Goal{}, &models.Achievement{}))
	return db
}

func TestCreateIfAbsentIdempotentByTitle(t *testing.T) {
	achievements := NewAchievementStore(newTestDB(t))
	ctx := context.Background()

	first, err := achievements.CreateIfAbsent(ctx, &models.Achievement{
		UserID:      "u1",
		Title:       "Первая цель",
		Description: "Выполни свою первую цель",
		Status:      models.AchievementLocked,
		Points:      50,
	})
	require.NoError(t, err)

	// Same title, different payload: the original record wins.
	second, err := achievements.CreateIfAbsent(ctx, &models.Achievement{
		UserID:      "u1",
		Title:       "Первая цель",
		Description: "совсем другое описание",
		Status:      models.AchievementUnlocked,
		Points:      999,
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Выполни свою первую цель", second.Description)
	assert.Equal(t, models.AchievementLocked, second.Status)
	assert.Equal(t, 50, second.Points)

	list, err := achievements.ListByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestCreateIfAbsentScopedToUser(t *testing.T) {
	achievements := NewAchievementStore(newTestDB(t))
	ctx := context.Background()

	a, err := achievements.CreateIfAbsent(ctx, &models.Achievement{UserID: "u1", Title: "Стрик"})
	require.NoError(t, err)
	b, err := achievements.CreateIfAbsent(ctx, &models.Achievement{UserID: "u2", Title: "Стрик"})
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID, "titles are only unique per user")
}

func TestDeleteByUser(t *testing.T) {
	achievements := NewAchievementStore(newTestDB(t))
	ctx := context.Background()

	_, err := achievements.CreateIfAbsent(ctx, &models.Achievement{UserID: "u1", Title: "Стрик"})
	require.NoError(t, err)
	_, err = achievements.CreateIfAbsent(ctx, &models.Achievement{UserID: "u2", Title: "Стрик"})
	require.NoError(t, err)

	require.NoError(t, achievements.DeleteByUser(ctx, "u1"))

	gone, err := achievements.ListByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, gone)

	kept, err := achievements.ListByUser(ctx, "u2")
	require.NoError(t, err)
	assert.Len(t, kept, 1)
}

func TestGoalUpsertPreservesProgress(t *testing.T) {
	goals := NewGoalStore(newTestDB(t))
	ctx := context.Background()

	goal := &models.Goal{ID: "g1", UserID: "u1", Title: "Читать", Points: 10, Description: "30 минут", Status: models.StatusNotStarted}
	require.NoError(t, goals.Upsert(ctx, goal))

	stored, err := goals.Get(ctx, "u1", "g1")
	require.NoError(t, err)
	stored.Progress = 3
	require.NoError(t, goals.Save(ctx, stored))

	// Re-initialization refreshes the definition but not the counter.
	require.NoError(t, goals.Upsert(ctx, &models.Goal{
		ID: "g1", UserID: "u1", Title: "Читать книги", Points: 20, Description: "45 минут", Status: models.StatusNotStarted,
	}))

	after, err := goals.Get(ctx, "u1", "g1")
	require.NoError(t, err)
	assert.Equal(t, "Читать книги", after.Title)
	assert.Equal(t, 20, after.Points)
	assert.Equal(t, 3, after.Progress)
}
