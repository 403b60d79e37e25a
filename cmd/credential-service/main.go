package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/fairdesk/fairdesk-go/internal/auth"
	"github.com/fairdesk/fairdesk-go/internal/client"
	"github.com/fairdesk/fairdesk-go/internal/config"
	"github.com/fairdesk/fairdesk-go/internal/credential"
	"github.com/fairdesk/fairdesk-go/internal/handler"
	"github.com/fairdesk/fairdesk-go/internal/middleware"
	"github.com/fairdesk/fairdesk-go/internal/server"
	"github.com/fairdesk/fairdesk-go/internal/service"
)

const serviceName = "credential-service"

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.LoadCredential()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tokens := func() (string, error) {
		return auth.GenerateServiceToken(serviceName, cfg.ServiceSecret, cfg.ServiceTokenExpiry)
	}
	customers := client.NewCustomerClient(
		cfg.CustomerServiceURL,
		&http.Client{Timeout: cfg.CustomerServiceTimeout},
		tokens,
	)

	nameSource := service.NameFromStore
	if cfg.NameSource == config.NameSourceRequest {
		nameSource = service.NameFromRequest
	}

	credentialService := service.NewCredentialService(
		credential.NewGenerator(nil),
		credential.NewHasher(cfg.BcryptCost),
		customers,
		nameSource,
		cfg.PasswordLength,
	)
	credentialHandler := handler.NewCredentialHandler(credentialService)

	r := server.NewRouter(cfg.Server)
	r.Route("/api/credentials", func(r chi.Router) {
		credentialHandler.Routes(r, middleware.RateLimit(ctx, cfg.VerifyRateLimitRPS, cfg.VerifyRateLimitBurst))
	})

	slog.Info("credential service configured",
		"customer_service", cfg.CustomerServiceURL,
		"name_source", cfg.NameSource,
		"password_length", cfg.PasswordLength,
		"bcrypt_cost", cfg.BcryptCost,
	)

	if err := server.Run(serviceName, cfg.Server, r); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
