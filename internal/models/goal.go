package models

import "time"

// Goal statuses form a closed set. Older clients sent "done" for a
// finished goal; anything outside these three values is rejected at
// the boundary.
const (
	StatusNotStarted = "not_started"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

func ValidStatus(s string) bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Goal is keyed by (user_id, id) where id is the client-supplied goal
// id, so two users can reuse the same id without colliding.
type Goal struct {
	ID             string     `json:"id" gorm:"primaryKey"`
	UserID         string     `json:"userId" gorm:"primaryKey"`
	Title          string     `json:"title" gorm:"not null"`
	Points         int        `json:"points"`
	Description    string     `json:"description"`
	Status         string     `json:"status" gorm:"not null;default:'not_started'"`
	Progress       int        `json:"progress" gorm:"default:0"`
	StartDate      *time.Time `json:"startDate"`
	CompletionDate *time.Time `json:"completionDate"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

type GoalInput struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Points         int        `json:"points"`
	Status         string     `json:"status"`
	Description    string     `json:"description"`
	StartDate      *time.Time `json:"startDate"`
	CompletionDate *time.Time `json:"completionDate"`
}

type InitializeGoalsRequest struct {
	GoalsArray []GoalInput `json:"goalsArray"`
}

type UpdateGoalStatusRequest struct {
	NewStatus string `json:"newStatus"`
}
