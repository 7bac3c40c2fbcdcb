package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/dmaslov/habitgoals-api/internal/lifecycle"
	"github.com/dmaslov/habitgoals-api/internal/models"
	"github.com/dmaslov/habitgoals-api/internal/store"
)

type Goals struct {
	goals  *store.GoalStore
	engine *lifecycle.Engine
	log    zerolog.Logger
}

func NewGoals(goals *store.GoalStore, engine *lifecycle.Engine, log zerolog.Logger) *Goals {
	return &Goals{goals: goals, engine: engine, log: log}
}

func (h *Goals) List(c *fiber.Ctx) error {
	goals, err := h.goals.ListByUser(c.Context(), c.Params("userId"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if goals == nil {
		goals = []models.Goal{}
	}
	return c.JSON(goals)
}

// Initialize bulk-upserts the user's goal set. The whole batch is
// validated before anything is written.
func (h *Goals) Initialize(c *fiber.Ctx) error {
	userID := c.Params("userId")

	var req models.InitializeGoalsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "goalsArray must be an array",
		})
	}
	if req.GoalsArray == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "goalsArray must be an array",
		})
	}

	for _, in := range req.GoalsArray {
		if in.ID == "" || in.Title == "" || in.Description == "" || in.Points <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid goal data: id, title, points and description are required",
			})
		}
		if !models.ValidStatus(in.Status) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid goal status: " + in.Status,
			})
		}
	}

	for _, in := range req.GoalsArray {
		goal := &models.Goal{
			ID:             in.ID,
			UserID:         userID,
			Title:          in.Title,
			Points:         in.Points,
			Description:    in.Description,
			Status:         in.Status,
			StartDate:      in.StartDate,
			CompletionDate: in.CompletionDate,
		}
		if err := h.goals.Upsert(c.Context(), goal); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
	}

	return c.JSON(fiber.Map{"message": "Goals initialized"})
}

func (h *Goals) UpdateStatus(c *fiber.Ctx) error {
	var req models.UpdateGoalStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.NewStatus == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "newStatus is required",
		})
	}

	goal, err := h.engine.SetStatus(c.Context(), c.Params("userId"), c.Params("goalId"), req.NewStatus)
	if errors.Is(err, lifecycle.ErrInvalidStatus) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid goal status: " + req.NewStatus,
		})
	}
	if errors.Is(err, lifecycle.ErrGoalNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Goal not found",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(goal)
}

func (h *Goals) CheckCompletion(c *fiber.Ctx) error {
	goals, err := h.engine.Sweep(c.Context(), c.Params("userId"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if goals == nil {
		goals = []models.Goal{}
	}
	return c.JSON(goals)
}
