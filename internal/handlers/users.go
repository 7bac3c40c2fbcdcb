package handlers

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/dmaslov/habitgoals-api/internal/models"
	"github.com/dmaslov/habitgoals-api/internal/store"
)

// UserStore is the slice of the profile store the user handlers need.
type UserStore interface {
	FindByTelegramID(ctx context.Context, telegramID string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Insert(ctx context.Context, user *models.User) error
	UpdateProfile(ctx context.Context, telegramID string, req models.ProfileRequest) (*models.User, error)
	Delete(ctx context.Context, telegramID string) error
	IncrementPts(ctx context.Context, telegramID string, amount int) (*models.User, error)
	AppendCompletedDate(ctx context.Context, telegramID, date string) (*models.User, error)
}

type Users struct {
	users        UserStore
	achievements *store.AchievementStore
	log          zerolog.Logger
}

func NewUsers(users UserStore, achievements *store.AchievementStore, log zerolog.Logger) *Users {
	return &Users{users: users, achievements: achievements, log: log}
}

// SyncProfile creates or refreshes a profile. A record without a
// registration timestamp is an abandoned partial registration and is
// torn down and recreated; nothing else ever takes that path.
func (h *Users) SyncProfile(c *fiber.Ctx) error {
	var req models.ProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.TelegramID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "telegramId is required",
		})
	}

	ctx := c.Context()
	user, err := h.users.FindByTelegramID(ctx, req.TelegramID)
	switch {
	case err == nil && user.RegisteredAt == nil:
		user, err = h.repair(ctx, req)
	case err == nil:
		user, err = h.users.UpdateProfile(ctx, req.TelegramID, req)
	case errors.Is(err, store.ErrUserNotFound):
		user, err = h.register(ctx, req)
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(user)
}

func (h *Users) repair(ctx context.Context, req models.ProfileRequest) (*models.User, error) {
	h.log.Warn().
		Str("telegramId", req.TelegramID).
		Msg("stale registration detected, recreating profile")

	if err := h.achievements.DeleteByUser(ctx, req.TelegramID); err != nil {
		return nil, err
	}
	if err := h.users.Delete(ctx, req.TelegramID); err != nil {
		return nil, err
	}
	return h.register(ctx, req)
}

func (h *Users) register(ctx context.Context, req models.ProfileRequest) (*models.User, error) {
	now := time.Now()
	user := &models.User{
		TelegramID:     req.TelegramID,
		FirstName:      req.FirstName,
		Username:       req.Username,
		PhotoURL:       req.PhotoURL,
		RegisteredAt:   &now,
		CompletedDates: []string{},
	}
	if err := h.users.Insert(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (h *Users) ListProfiles(c *fiber.Ctx) error {
	users, err := h.users.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if users == nil {
		users = []models.User{}
	}
	return c.JSON(users)
}

func (h *Users) GetProfile(c *fiber.Ctx) error {
	user, err := h.users.FindByTelegramID(c.Context(), c.Params("telegramId"))
	if errors.Is(err, store.ErrUserNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(user)
}

func (h *Users) AddCompletedDate(c *fiber.Ctx) error {
	var req struct {
		Date string `json:"date"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.Date == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "date is required",
		})
	}

	user, err := h.users.AppendCompletedDate(c.Context(), c.Params("telegramId"), req.Date)
	if errors.Is(err, store.ErrUserNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(user)
}

func (h *Users) ListCompletedDates(c *fiber.Ctx) error {
	user, err := h.users.FindByTelegramID(c.Context(), c.Params("telegramId"))
	if errors.Is(err, store.ErrUserNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	dates := user.CompletedDates
	if dates == nil {
		dates = []string{}
	}
	return c.JSON(dates)
}

// IncrementPts adds a positive integer amount to the pts counter. The
// response echoes identity fields and the new total only.
func (h *Users) IncrementPts(c *fiber.Ctx) error {
	telegramID := c.Params("id")
	if telegramID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "user id is required",
		})
	}

	var req struct {
		Amount float64 `json:"amount"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.Amount <= 0 || req.Amount != math.Trunc(req.Amount) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "amount must be a positive integer",
		})
	}

	user, err := h.users.IncrementPts(c.Context(), telegramID, int(req.Amount))
	if errors.Is(err, store.ErrUserNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user": fiber.Map{
			"id":         user.ID,
			"telegramId": user.TelegramID,
			"pts":        user.Pts,
		},
	})
}
