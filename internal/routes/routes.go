package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dmaslov/habitgoals-api/internal/handlers"
)

type Handlers struct {
	Users        *handlers.Users
	Goals        *handlers.Goals
	Achievements *handlers.Achievements
	Reports      *handlers.Reports
}

func Setup(app *fiber.App, h Handlers) {
	app.Get("/test", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "Server is running"})
	})

	api := app.Group("/api")

	api.Post("/users", h.Users.SyncProfile)
	api.Get("/users", h.Users.ListProfiles)
	api.Get("/users/:telegramId", h.Users.GetProfile)
	api.Post("/users/:telegramId/completed-dates", h.Users.AddCompletedDate)
	api.Get("/users/:telegramId/completed-dates", h.Users.ListCompletedDates)
	api.Post("/users/:id/pts/increment", h.Users.IncrementPts)

	api.Get("/goals/:userId", h.Goals.List)
	api.Post("/initialize-goals/:userId", h.Goals.Initialize)
	api.Put("/goals/:userId/:goalId", h.Goals.UpdateStatus)
	api.Post("/check-completion/:userId", h.Goals.CheckCompletion)

	api.Post("/generate-report", h.Reports.Generate)

	api.Post("/users/:userId/achievements", h.Achievements.Submit)
	api.Get("/users/:userId/achievements", h.Achievements.List)
	api.Put("/users/:userId/achievements/:achievementId/status", h.Achievements.UpdateStatus)
	api.Post("/achievement/share", h.Achievements.Share)
}
