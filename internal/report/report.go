// Package report builds the shareable daily summary text. It is a
// pure function of the goal snapshot list and never touches a store.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmaslov/habitgoals-api/internal/models"
)

type GoalSnapshot struct {
	Title  string `json:"title"`
	Status string `json:"status"`
}

const (
	doneGlyph    = "✅"
	pendingGlyph = "⬜"
	hashtags     = "#цели #прогресс"
)

var months = [...]string{
	"января", "февраля", "марта", "апреля", "мая", "июня",
	"июля", "августа", "сентября", "октября", "ноября", "декабря",
}

// Compose renders the daily report: a dated heading with the fixed
// hashtags, one glyph-prefixed line per goal, and an encouragement
// note picked by completion ratio.
func Compose(goals []GoalSnapshot, now time.Time) string {
	completed := 0
	lines := make([]string, 0, len(goals))
	for _, g := range goals {
		glyph := pendingGlyph
		if g.Status == models.StatusCompleted {
			glyph = doneGlyph
			completed++
		}
		lines = append(lines, glyph+" "+normalizeTitle(g.Title))
	}

	parts := []string{
		heading(now),
		strings.Join(lines, "\n\n"),
		note(completed, len(goals)),
	}
	return strings.TrimRight(strings.Join(parts, "\n\n"), " \t\n")
}

func heading(now time.Time) string {
	return fmt.Sprintf("Мои цели на %d %s %d\n%s",
		now.Day(), months[now.Month()-1], now.Year(), hashtags)
}

func note(completed, total int) string {
	ratio := float64(completed) / float64(total)
	switch {
	case ratio >= 1.0:
		return "Я справился со всеми задачами! Так держать! 💪"
	case ratio >= 0.8:
		return "Почти у цели — выполнено больше 80% задач!"
	case ratio >= 0.5:
		return "Больше половины позади, продолжаю в том же духе!"
	case completed > 0:
		return "Начало положено, завтра сделаю больше!"
	default:
		return "Сегодня без отметок, но я не сдаюсь! 🔥"
	}
}

// Titles arrive from Telegram clients with non-breaking spaces and
// stray padding; collapse them before rendering.
func normalizeTitle(title string) string {
	return strings.TrimSpace(strings.ReplaceAll(title, " ", " "))
}
