package store

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dmaslov/habitgoals-api/internal/models"
)

type GoalStore struct {
	db *gorm.DB
}

func NewGoalStore(db *gorm.DB) *GoalStore {
	return &GoalStore{db: db}
}

func (s *GoalStore) ListByUser(ctx context.Context, userID string) ([]models.Goal, error) {
	var goals []models.Goal
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at").
		Find(&goals).Error
	return goals, err
}

func (s *GoalStore) Get(ctx context.Context, userID, goalID string) (*models.Goal, error) {
	var goal models.Goal
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", goalID, userID).
		First(&goal).Error
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

func (s *GoalStore) Save(ctx context.Context, goal *models.Goal) error {
	return s.db.WithContext(ctx).Save(goal).Error
}

// Upsert creates or refreshes a goal keyed by (user_id, id). Progress
// is left alone on conflict so re-initializing goals never resets a
// user's completion counter.
func (s *GoalStore) Upsert(ctx context.Context, goal *models.Goal) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"title", "points", "status", "description",
			"start_date", "completion_date", "updated_at",
		}),
	}).Create(goal).Error
}
