package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/fairdesk/fairdesk-go/internal/config"
	"github.com/fairdesk/fairdesk-go/internal/handler"
	"github.com/fairdesk/fairdesk-go/internal/repository"
	"github.com/fairdesk/fairdesk-go/internal/server"
	"github.com/fairdesk/fairdesk-go/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.LoadExhibition()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := repository.NewDB(ctx, cfg.DatabaseDSN)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := repository.RunMigrations(db, repository.ExhibitionMigrations); err != nil {
		slog.Error("database migration failed", "error", err)
		os.Exit(1)
	}

	exhibitionService := service.NewExhibitionService(repository.NewExhibitionRepository(db))
	exhibitionHandler := handler.NewExhibitionHandler(exhibitionService)

	r := server.NewRouter(cfg.Server)
	r.Route("/api/exhibitions", exhibitionHandler.Routes)

	if err := server.Run("exhibition-service", cfg.Server, r); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
