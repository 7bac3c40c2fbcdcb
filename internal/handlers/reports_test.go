package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReportsApp() *fiber.App {
	app := fiber.New()
	app.Post("/api/generate-report", NewReports().Generate)
	return app
}

func TestGenerateReport(t *testing.T) {
	app := newReportsApp()

	resp, payload := doJSON(t, app, "POST", "/api/generate-report", fiber.Map{
		"goals": []fiber.Map{
			{"title": "Зарядка", "status": "completed"},
			{"title": "Чтение", "status": "completed"},
		},
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Message string `json:"message"`
		Success bool   `json:"success"`
	}
	require.NoError(t, json.Unmarshal(payload, &body))
	assert.True(t, body.Success)
	assert.Contains(t, body.Message, "справился со всеми задачами")
	assert.Contains(t, body.Message, "✅ Зарядка")
}

func TestGenerateReportRequiresGoals(t *testing.T) {
	app := newReportsApp()

	resp, _ := doJSON(t, app, "POST", "/api/generate-report", fiber.Map{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, app, "POST", "/api/generate-report", fiber.Map{"goals": []fiber.Map{}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
