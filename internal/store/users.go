package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dmaslov/habitgoals-api/internal/models"
)

var ErrUserNotFound = errors.New("user not found")

// UserStore wraps the users collection in the profile database.
type UserStore struct {
	users *mongo.Collection
}

func NewUserStore(db *mongo.Database) *UserStore {
	return &UserStore{users: db.Collection("users")}
}

func (s *UserStore) FindByTelegramID(ctx context.Context, telegramID string) (*models.User, error) {
	var user models.User
	err := s.users.FindOne(ctx, bson.M{"telegramId": telegramID}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) List(ctx context.Context) ([]models.User, error) {
	cursor, err := s.users.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *UserStore) Insert(ctx context.Context, user *models.User) error {
	result, err := s.users.InsertOne(ctx, user)
	if err != nil {
		return err
	}
	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		user.ID = id
	}
	return nil
}

func (s *UserStore) UpdateProfile(ctx context.Context, telegramID string, req models.ProfileRequest) (*models.User, error) {
	var user models.User
	err := s.users.FindOneAndUpdate(ctx,
		bson.M{"telegramId": telegramID},
		bson.M{"$set": bson.M{
			"firstName": req.FirstName,
			"username":  req.Username,
			"photoUrl":  req.PhotoURL,
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) Delete(ctx context.Context, telegramID string) error {
	_, err := s.users.DeleteOne(ctx, bson.M{"telegramId": telegramID})
	return err
}

// IncrementPts applies the increment server-side with $inc, so
// concurrent increments never lose updates.
func (s *UserStore) IncrementPts(ctx context.Context, telegramID string, amount int) (*models.User, error) {
	var user models.User
	err := s.users.FindOneAndUpdate(ctx,
		bson.M{"telegramId": telegramID},
		bson.M{"$inc": bson.M{"pts": amount}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// AppendCompletedDate pushes the date onto the log. The log is
// append-only and duplicates are allowed.
func (s *UserStore) AppendCompletedDate(ctx context.Context, telegramID, date string) (*models.User, error) {
	var user models.User
	err := s.users.FindOneAndUpdate(ctx,
		bson.M{"telegramId": telegramID},
		bson.M{"$push": bson.M{"completedDates": date}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ResetAllPts zeroes every user's pts counter and reports how many
// documents changed.
func (s *UserStore) ResetAllPts(ctx context.Context) (int64, error) {
	result, err := s.users.UpdateMany(ctx, bson.M{}, bson.M{"$set": bson.M{"pts": 0}})
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}
