package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"

	"github.com/dmaslov/habitgoals-api/internal/config"
	"github.com/dmaslov/habitgoals-api/internal/database"
	"github.com/dmaslov/habitgoals-api/internal/handlers"
	"github.com/dmaslov/habitgoals-api/internal/lifecycle"
	"github.com/dmaslov/habitgoals-api/internal/routes"
	"github.com/dmaslov/habitgoals-api/internal/share"
	"github.com/dmaslov/habitgoals-api/internal/store"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("goal database connection failed")
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("goal database migration failed")
	}

	mongoClient, err := database.ConnectMongo(context.Background(), cfg.MongoURL)
	if err != nil {
		log.Fatal().Err(err).Msg("user database connection failed")
	}

	goalStore := store.NewGoalStore(db)
	achievementStore := store.NewAchievementStore(db)
	userStore := store.NewUserStore(mongoClient.Database(cfg.MongoDatabase))

	engine := lifecycle.NewEngine(goalStore, log)

	app := fiber.New(fiber.Config{AppName: "habitgoals-api"})
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,OPTIONS",
		AllowHeaders: "Content-Type,Authorization,Accept,ngrok-skip-browser-warning",
	}))

	routes.Setup(app, routes.Handlers{
		Users:        handlers.NewUsers(userStore, achievementStore, log),
		Goals:        handlers.NewGoals(goalStore, engine, log),
		Achievements: handlers.NewAchievements(achievementStore, share.NewRenderer(), log),
		Reports:      handlers.NewReports(),
	})

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Info().Msg("shutting down")
		_ = app.Shutdown()
	}()

	log.Info().Str("port", cfg.Port).Msg("server listening")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := mongoClient.Disconnect(ctx); err != nil {
		log.Error().Err(err).Msg("user database disconnect failed")
	}
}
