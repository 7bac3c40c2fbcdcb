// Command ptsreset zeroes the pts counter for every user. Run it after
// a promo campaign to restart the leaderboard.
package main

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/dmaslov/habitgoals-api/internal/config"
	"github.com/dmaslov/habitgoals-api/internal/database"
	"github.com/dmaslov/habitgoals-api/internal/store"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := database.ConnectMongo(ctx, cfg.MongoURL)
	if err != nil {
		log.Fatal().Err(err).Msg("user database connection failed")
	}
	defer func() {
		_ = client.Disconnect(ctx)
	}()

	users := store.NewUserStore(client.Database(cfg.MongoDatabase))
	count, err := users.ResetAllPts(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("pts reset failed")
	}
	log.Info().Int64("updated", count).Msg("pts reset to zero for all users")
}
