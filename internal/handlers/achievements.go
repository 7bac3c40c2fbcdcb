package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/dmaslov/habitgoals-api/internal/models"
	"github.com/dmaslov/habitgoals-api/internal/share"
	"github.com/dmaslov/habitgoals-api/internal/store"
)

type Achievements struct {
	achievements *store.AchievementStore
	renderer     *share.Renderer
	log          zerolog.Logger
}

func NewAchievements(achievements *store.AchievementStore, renderer *share.Renderer, log zerolog.Logger) *Achievements {
	return &Achievements{achievements: achievements, renderer: renderer, log: log}
}

// Submit upserts a batch of achievements, idempotent by title: a title
// the user already holds returns the stored record, whatever the
// resubmitted payload says.
func (h *Achievements) Submit(c *fiber.Ctx) error {
	var inputs []models.AchievementInput
	if err := c.BodyParser(&inputs); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "achievements must be an array",
		})
	}

	for _, in := range inputs {
		if in.Title == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "achievement title is required",
			})
		}
		if in.Status != "" && !models.ValidAchievementStatus(in.Status) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid achievement status: " + in.Status,
			})
		}
	}

	userID := c.Params("userId")
	results := make([]models.Achievement, 0, len(inputs))
	for _, in := range inputs {
		status := in.Status
		if status == "" {
			status = models.AchievementLocked
		}
		achievement := &models.Achievement{
			UserID:      userID,
			Title:       in.Title,
			Description: in.Description,
			Requirement: in.Requirement,
			Status:      status,
			ImageURL:    in.ImageURL,
			Points:      in.Points,
			Type:        in.Type,
			GoalIDs:     in.GoalIDs,
			Target:      in.Target,
		}
		stored, err := h.achievements.CreateIfAbsent(c.Context(), achievement)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		results = append(results, *stored)
	}

	return c.JSON(results)
}

func (h *Achievements) List(c *fiber.Ctx) error {
	achievements, err := h.achievements.ListByUser(c.Context(), c.Params("userId"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if achievements == nil {
		achievements = []models.Achievement{}
	}
	return c.JSON(achievements)
}

func (h *Achievements) UpdateStatus(c *fiber.Ctx) error {
	var req models.UpdateAchievementStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "status is required",
		})
	}
	if !models.ValidAchievementStatus(req.Status) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid achievement status: " + req.Status,
		})
	}

	achievement, err := h.achievements.Get(c.Context(), c.Params("userId"), c.Params("achievementId"))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Achievement not found",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	achievement.Status = req.Status
	if err := h.achievements.Save(c.Context(), achievement); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(achievement)
}

// Share renders the achievement card image and returns it inline as a
// data URI so the client never needs a second fetch.
func (h *Achievements) Share(c *fiber.Ctx) error {
	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.Title == "" || req.Description == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "title and description are required",
		})
	}

	url, err := h.renderer.Render(req.Title, req.Description)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"url":     url,
	})
}
