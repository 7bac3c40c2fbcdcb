package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/dmaslov/habitgoals-api/internal/models"
)

type AchievementStore struct {
	db *gorm.DB
}

func NewAchievementStore(db *gorm.DB) *AchievementStore {
	return &AchievementStore{db: db}
}

func (s *AchievementStore) ListByUser(ctx context.Context, userID string) ([]models.Achievement, error) {
	var achievements []models.Achievement
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at").
		Find(&achievements).Error
	return achievements, err
}

func (s *AchievementStore) Get(ctx context.Context, userID, id string) (*models.Achievement, error) {
	var achievement models.Achievement
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&achievement).Error
	if err != nil {
		return nil, err
	}
	return &achievement, nil
}

// CreateIfAbsent inserts the achievement unless the user already has
// one with the same title, in which case the stored record is returned
// unmodified.
func (s *AchievementStore) CreateIfAbsent(ctx context.Context, achievement *models.Achievement) (*models.Achievement, error) {
	var existing models.Achievement
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND title = ?", achievement.UserID, achievement.Title).
		First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Create(achievement).Error; err != nil {
		return nil, err
	}
	return achievement, nil
}

func (s *AchievementStore) Save(ctx context.Context, achievement *models.Achievement) error {
	return s.db.WithContext(ctx).Save(achievement).Error
}

func (s *AchievementStore) DeleteByUser(ctx context.Context, userID string) error {
	return s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.Achievement{}).Error
}
