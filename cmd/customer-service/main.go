package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/fairdesk/fairdesk-go/internal/config"
	"github.com/fairdesk/fairdesk-go/internal/handler"
	"github.com/fairdesk/fairdesk-go/internal/middleware"
	"github.com/fairdesk/fairdesk-go/internal/repository"
	"github.com/fairdesk/fairdesk-go/internal/server"
	"github.com/fairdesk/fairdesk-go/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.LoadCustomer()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := repository.NewDB(ctx, cfg.DatabaseDSN)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := repository.RunMigrations(db, repository.CustomerMigrations); err != nil {
		slog.Error("database migration failed", "error", err)
		os.Exit(1)
	}

	customerService := service.NewCustomerService(repository.NewCustomerRepository(db))
	if cfg.SeedDefaults {
		if err := customerService.SeedDefaults(ctx); err != nil {
			slog.Error("seeding default customer failed", "error", err)
			os.Exit(1)
		}
	}
	customerHandler := handler.NewCustomerHandler(customerService)

	r := server.NewRouter(cfg.Server)
	r.Route("/api/customers", func(r chi.Router) {
		customerHandler.Routes(r, middleware.ServiceAuth(cfg.ServiceSecret))
	})

	if err := server.Run("customer-service", cfg.Server, r); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
