// Package lifecycle owns the goal status state machine and the
// time-based auto-expiry sweep.
package lifecycle

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/dmaslov/habitgoals-api/internal/models"
	"github.com/dmaslov/habitgoals-api/internal/store"
)

// Stale in_progress goals revert after 30 seconds, stale completed
// goals after 20. The short fixed windows drive the timer mechanic in
// the mini-app; they are not an SLA and are not per-goal configurable.
const (
	InProgressTTL = 30 * time.Second
	CompletedTTL  = 20 * time.Second
)

var (
	ErrGoalNotFound  = errors.New("goal not found")
	ErrInvalidStatus = errors.New("invalid status")
)

type Engine struct {
	goals *store.GoalStore
	log   zerolog.Logger
	now   func() time.Time
}

func NewEngine(goals *store.GoalStore, log zerolog.Logger) *Engine {
	return &Engine{goals: goals, log: log, now: time.Now}
}

// SetStatus moves a goal to newStatus and applies the timestamp and
// progress side effects of the transition. Ownership mismatches are
// indistinguishable from a missing goal.
func (e *Engine) SetStatus(ctx context.Context, userID, goalID, newStatus string) (*models.Goal, error) {
	if !models.ValidStatus(newStatus) {
		return nil, ErrInvalidStatus
	}

	goal, err := e.goals.Get(ctx, userID, goalID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrGoalNotFound
	}
	if err != nil {
		return nil, err
	}

	now := e.now()
	switch newStatus {
	case models.StatusInProgress:
		// Re-entering in_progress must not restart the timer.
		if goal.StartDate == nil {
			goal.StartDate = &now
		}
	case models.StatusCompleted:
		goal.CompletionDate = &now
		goal.Progress++
	}
	goal.Status = newStatus

	if err := e.goals.Save(ctx, goal); err != nil {
		return nil, err
	}
	return goal, nil
}

// Sweep reverts stale goals back to not_started and returns the full
// post-sweep list, reverted and untouched records alike. Each revert
// is persisted individually; a store failure aborts the sweep.
func (e *Engine) Sweep(ctx context.Context, userID string) ([]models.Goal, error) {
	goals, err := e.goals.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := e.now()
	for i := range goals {
		goal := &goals[i]
		if !expired(goal, now) {
			continue
		}

		goal.Status = models.StatusNotStarted
		goal.StartDate = nil
		goal.CompletionDate = nil
		if err := e.goals.Save(ctx, goal); err != nil {
			return nil, err
		}
		e.log.Info().
			Str("userId", userID).
			Str("goalId", goal.ID).
			Msg("reverted stale goal")
	}
	return goals, nil
}

func expired(goal *models.Goal, now time.Time) bool {
	switch goal.Status {
	case models.StatusInProgress:
		return goal.StartDate != nil && now.Sub(*goal.StartDate) >= InProgressTTL
	case models.StatusCompleted:
		return goal.CompletionDate != nil && now.Sub(*goal.CompletionDate) >= CompletedTTL
	}
	return false
}
