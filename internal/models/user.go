package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User lives in the profile store. A nil RegisteredAt marks an
// abandoned partial registration and triggers the repair path on the
// next profile sync.
type User struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	TelegramID     string             `json:"telegramId" bson:"telegramId"`
	FirstName      string             `json:"firstName" bson:"firstName"`
	Username       string             `json:"username" bson:"username"`
	PhotoURL       string             `json:"photoUrl" bson:"photoUrl"`
	Pts            int                `json:"pts" bson:"pts"`
	RegisteredAt   *time.Time         `json:"registeredAt" bson:"registeredAt,omitempty"`
	CompletedDates []string           `json:"completedDates" bson:"completedDates"`
}

type ProfileRequest struct {
	TelegramID string `json:"telegramId"`
	FirstName  string `json:"firstName"`
	Username   string `json:"username"`
	PhotoURL   string `json:"photoUrl"`
}
