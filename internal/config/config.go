package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Fallback values accepted only in dev mode. The JWT fallback is a known
// weakness and is surfaced to operators at startup, never silently applied.
const (
	DevFallbackJWTSecret     = "default_secret"
	DevFallbackAdminPassword = "admin123"
)

// Config holds all configuration for the application
type Config struct {
	AppMode  string
	Port     string
	Database DatabaseConfig
	JWT      JWTConfig
	Cookie   CookieConfig
	Admin    AdminConfig
	External ExternalConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// JWTConfig holds session token configuration
type JWTConfig struct {
	Secret       string
	TokenTTLMins int
}

// CookieConfig holds cookie configuration
type CookieConfig struct {
	Secure   bool
	SameSite string
	Domain   string
}

// AdminConfig holds back-office credentials
type AdminConfig struct {
	Username string
	Password string
}

// ExternalConfig holds third-party API configuration
type ExternalConfig struct {
	GeocodeBaseURL     string
	TextGenBaseURL     string
	TextGenAPIKey      string
	TextGenModel       string
	SecurityWebhookURL string
}

// Global config instance
var AppConfig *Config

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	// Get APP_MODE (default to "dev") - trim spaces for Windows compatibility
	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	config := &Config{
		AppMode:  appMode,
		Port:     getEnv("PORT", "3000"),
		Database: loadDatabaseConfig(appMode),
		JWT:      loadJWTConfig(appMode),
		Cookie:   loadCookieConfig(appMode),
		Admin:    loadAdminConfig(),
		External: loadExternalConfig(),
	}

	// Fail fast in production instead of accepting fallback secrets.
	if config.IsProd() {
		if config.JWT.Secret == DevFallbackJWTSecret {
			return nil, fmt.Errorf("JWT_SECRET must be set in prod mode (fallback secret rejected)")
		}
		if config.Admin.Password == DevFallbackAdminPassword {
			return nil, fmt.Errorf("ADMIN_PASSWORD must be set in prod mode (fallback password rejected)")
		}
	} else {
		if config.JWT.Secret == DevFallbackJWTSecret {
			log.Println("⚠️ JWT_SECRET not set: using the dev fallback secret. Tokens signed with it are forgeable.")
		}
		if config.Admin.Password == DevFallbackAdminPassword {
			log.Println("⚠️ ADMIN_PASSWORD not set: using the dev fallback admin credential.")
		}
	}

	// Set global config
	AppConfig = config

	log.Printf("✅ Configuration loaded successfully [MODE: %s]", appMode)
	return config, nil
}

// loadDatabaseConfig loads database config based on mode
func loadDatabaseConfig(mode string) DatabaseConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	return DatabaseConfig{
		Host:     getEnv(prefix+"DB_HOST", "localhost"),
		Port:     getEnv(prefix+"DB_PORT", "3306"),
		User:     getEnv(prefix+"DB_USER", "root"),
		Password: getEnv(prefix+"DB_PASS", ""),
		DBName:   getEnv(prefix+"DB_NAME", "gensuite"),
	}
}

// loadJWTConfig loads session token config based on mode
func loadJWTConfig(mode string) JWTConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	ttlMins, _ := strconv.Atoi(getEnv("TOKEN_TTL_MINUTES", "60"))

	return JWTConfig{
		Secret:       getEnv(prefix+"JWT_SECRET", DevFallbackJWTSecret),
		TokenTTLMins: ttlMins,
	}
}

// loadCookieConfig loads cookie config based on mode
func loadCookieConfig(mode string) CookieConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	secure, _ := strconv.ParseBool(getEnv(prefix+"COOKIE_SECURE", "false"))

	return CookieConfig{
		Secure:   secure,
		SameSite: getEnv("COOKIE_SAMESITE", "lax"),
		Domain:   getEnv("COOKIE_DOMAIN", ""),
	}
}

// loadAdminConfig loads back-office credentials
func loadAdminConfig() AdminConfig {
	return AdminConfig{
		Username: getEnv("ADMIN_USERNAME", "admin"),
		Password: getEnv("ADMIN_PASSWORD", DevFallbackAdminPassword),
	}
}

// loadExternalConfig loads third-party API configuration
func loadExternalConfig() ExternalConfig {
	return ExternalConfig{
		GeocodeBaseURL:     getEnv("GEOCODE_BASE_URL", "http://ip-api.com"),
		TextGenBaseURL:     getEnv("TEXTGEN_BASE_URL", ""),
		TextGenAPIKey:      getEnv("TEXTGEN_API_KEY", ""),
		TextGenModel:       getEnv("TEXTGEN_MODEL", "gpt-4o-mini"),
		SecurityWebhookURL: getEnv("SECURITY_WEBHOOK_URL", ""),
	}
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
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
	if origins == "" {
		if c.IsDev() {
			return "*"
		}
		// Default production origins
		return "https://app.gensuite.dev"
	}
	return origins
}
