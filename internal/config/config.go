package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

const devServiceSecret = "dev-secret-change-in-production"

// Name sources for credential generation.
const (
	NameSourceStore   = "store"
	NameSourceRequest = "request"
)

// Server holds settings shared by every service binary.
type Server struct {
	Port               string
	Env                string
	CORSAllowedOrigins []string
}

// CustomerConfig configures the customer service.
type CustomerConfig struct {
	Server
	DatabaseDSN   string
	ServiceSecret string
	SeedDefaults  bool
}

// ExhibitionConfig configures the exhibition service.
type ExhibitionConfig struct {
	Server
	DatabaseDSN string
}

// CredentialConfig configures the credential service.
type CredentialConfig struct {
	Server
	CustomerServiceURL     string
	CustomerServiceTimeout time.Duration
	ServiceSecret          string
	ServiceTokenExpiry     time.Duration
	BcryptCost             int
	PasswordLength         int
	NameSource             string
	VerifyRateLimitRPS     float64
	VerifyRateLimitBurst   int
}

func loadServer(defaultPort string) Server {
	return Server{
		Port:               getEnv("PORT", defaultPort),
		Env:                getEnv("ENV", "development"),
		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
	}
}

// LoadCustomer reads the customer service configuration from the environment.
func LoadCustomer() CustomerConfig {
	cfg := CustomerConfig{
		Server:        loadServer("8080"),
		DatabaseDSN:   getEnv("DATABASE_DSN", "root:password@tcp(127.0.0.1:3306)/customers?parseTime=true"),
		ServiceSecret: getEnv("SERVICE_TOKEN_SECRET", devServiceSecret),
		SeedDefaults:  getEnvBool("SEED_DEFAULTS", true),
	}

	requireSecret(cfg.Env, cfg.ServiceSecret)
	return cfg
}

// LoadExhibition reads the exhibition service configuration from the environment.
func LoadExhibition() ExhibitionConfig {
	return ExhibitionConfig{
		Server:      loadServer("8081"),
		DatabaseDSN: getEnv("DATABASE_DSN", "root:password@tcp(127.0.0.1:3306)/exhibitions?parseTime=true"),
	}
}

// LoadCredential reads the credential service configuration from the environment.
func LoadCredential() CredentialConfig {
	cfg := CredentialConfig{
		Server:                 loadServer("8082"),
		CustomerServiceURL:     strings.TrimRight(getEnv("CUSTOMER_SERVICE_URL", "http://customer-service:8080/api"), "/"),
		CustomerServiceTimeout: getEnvDuration("CUSTOMER_SERVICE_TIMEOUT", 10*time.Second),
		ServiceSecret:          getEnv("SERVICE_TOKEN_SECRET", devServiceSecret),
		ServiceTokenExpiry:     getEnvDuration("SERVICE_TOKEN_EXPIRY", 5*time.Minute),
		BcryptCost:             getEnvInt("BCRYPT_COST", 10),
		PasswordLength:         getEnvInt("PASSWORD_LENGTH", 8),
		NameSource:             getEnv("CREDENTIAL_NAME_SOURCE", NameSourceStore),
		VerifyRateLimitRPS:     getEnvFloat("VERIFY_RATE_LIMIT_RPS", 5),
		VerifyRateLimitBurst:   getEnvInt("VERIFY_RATE_LIMIT_BURST", 10),
	}

	if cfg.NameSource != NameSourceStore && cfg.NameSource != NameSourceRequest {
		slog.Error("CREDENTIAL_NAME_SOURCE must be \"store\" or \"request\"", "value", cfg.NameSource)
		os.Exit(1)
	}
	if cfg.PasswordLength <= 0 {
		slog.Error("PASSWORD_LENGTH must be positive", "value", cfg.PasswordLength)
		os.Exit(1)
	}

	requireSecret(cfg.Env, cfg.ServiceSecret)
	return cfg
}

func requireSecret(env, secret string) {
	if env == "production" && secret == devServiceSecret {
		slog.Error("SERVICE_TOKEN_SECRET must be set in production environment")
		os.Exit(1)
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("invalid integer in environment, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}

func getEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		slog.Warn("invalid number in environment, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return f
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid boolean in environment, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return b
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("invalid duration in environment, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return d
}

func getEnvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
