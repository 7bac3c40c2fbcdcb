package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dmaslov/habitgoals-api/internal/report"
)

type Reports struct{}

func NewReports() *Reports {
	return &Reports{}
}

func (h *Reports) Generate(c *fiber.Ctx) error {
	var req struct {
		Goals []report.GoalSnapshot `json:"goals"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if len(req.Goals) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "goals must be a non-empty array",
		})
	}

	return c.JSON(fiber.Map{
		"message": report.Compose(req.Goals, time.Now()),
		"success": true,
	})
}
