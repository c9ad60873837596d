package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	AppMode string
	Port    string
	Lending LendingConfig
	JWT     JWTConfig
	Admin   AdminConfig
}

// LendingConfig holds the lending policy constants. These are fixed
// configuration, never negotiable per transaction.
type LendingConfig struct {
	LoanPeriodDays         int
	FinePerDay             int
	MaxReservationsPerCopy int
	MaxIssuancesPerMember  int
	MembershipDays         int
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	RefreshSecret    string
	AccessTokenMins  int
	RefreshTokenDays int
}

// AdminConfig holds the seeded admin account credentials
type AdminConfig struct {
	Username string
	Password string
}

// Global config instance
var AppConfig *Config

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	config := &Config{
		AppMode: appMode,
		Port:    getEnv("PORT", "3000"),
		Lending: loadLendingConfig(),
		JWT:     loadJWTConfig(),
		Admin: AdminConfig{
			Username: getEnv("ADMIN_USERNAME", "admin"),
			Password: getEnv("ADMIN_PASSWORD", "admin123456"),
		},
	}

	if err := config.Lending.validate(); err != nil {
		return nil, err
	}

	// Set global config
	AppConfig = config

	log.Printf("✅ Configuration loaded successfully [MODE: %s]", appMode)
	return config, nil
}

// loadLendingConfig loads the lending policy constants
func loadLendingConfig() LendingConfig {
	return LendingConfig{
		LoanPeriodDays:         getEnvInt("LOAN_PERIOD_DAYS", 10),
		FinePerDay:             getEnvInt("FINE_PER_DAY", 5),
		MaxReservationsPerCopy: getEnvInt("MAX_RESERVATIONS_PER_COPY", 3),
		MaxIssuancesPerMember:  getEnvInt("MAX_ISSUANCES_PER_MEMBER", 5),
		MembershipDays:         getEnvInt("MEMBERSHIP_DAYS", 365),
	}
}

// loadJWTConfig loads JWT config
func loadJWTConfig() JWTConfig {
	return JWTConfig{
		Secret:           getEnv("JWT_SECRET", "default_secret"),
		RefreshSecret:    getEnv("JWT_REFRESH_SECRET", "default_refresh_secret"),
		AccessTokenMins:  getEnvInt("ACCESS_TOKEN_MINUTES", 15),
		RefreshTokenDays: getEnvInt("REFRESH_TOKEN_DAYS", 7),
	}
}

func (c LendingConfig) validate() error {
	checks := map[string]int{
		"LOAN_PERIOD_DAYS":          c.LoanPeriodDays,
		"MAX_RESERVATIONS_PER_COPY": c.MaxReservationsPerCopy,
		"MAX_ISSUANCES_PER_MEMBER":  c.MaxIssuancesPerMember,
		"MEMBERSHIP_DAYS":           c.MembershipDays,
	}
	for name, value := range checks {
		if value <= 0 {
			return fmt.Errorf("invalid %s: must be positive, got %d", name, value)
		}
	}
	if c.FinePerDay < 0 {
		return fmt.Errorf("invalid FINE_PER_DAY: must not be negative, got %d", c.FinePerDay)
	}
	return nil
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer environment variable with default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		log.Printf("Warning: invalid %s=%q, using default %d", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" && c.IsDev() {
		return "*"
	}
	return origins
}
