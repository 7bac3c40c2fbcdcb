package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	AchievementLocked   = "locked"
	AchievementUnlocked = "unlocked"
)

func ValidAchievementStatus(s string) bool {
	return s == AchievementLocked || s == AchievementUnlocked
}

// Achievement is unique per (user, title): resubmitting a title the
// user already has returns the stored record untouched.
type Achievement struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID      string    `json:"userId" gorm:"not null;uniqueIndex:idx_achievements_user_title"`
	Title       string    `json:"title" gorm:"not null;uniqueIndex:idx_achievements_user_title"`
	Description string    `json:"description"`
	Requirement string    `json:"requirement"`
	Status      string    `json:"status" gorm:"not null;default:'locked'"`
	ImageURL    string    `json:"imageUrl"`
	Points      int       `json:"points"`
	Type        string    `json:"type"`
	GoalIDs     []string  `json:"goalIds" gorm:"serializer:json"`
	Target      int       `json:"target"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (a *Achievement) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

type AchievementInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Requirement string   `json:"requirement"`
	Status      string   `json:"status"`
	ImageURL    string   `json:"imageUrl"`
	Points      int      `json:"points"`
	Type        string   `json:"type"`
	GoalIDs     []string `json:"goalIds"`
	Target      int      `json:"target"`
}

type UpdateAchievementStatusRequest struct {
	Status string `json:"status"`
}
