// Package config provides configuration for the application
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Database  DatabaseConfig
	Server    ServerConfig
	Logging   LoggingConfig
	CORS      CORSConfig
	JWT       JWTConfig
	SMTP      SMTPConfig
	Geocoding GeocodingConfig
	Uploads   UploadsConfig
	// AppBaseURL is the externally visible base URL of this API,
	// used to build email confirmation links.
	AppBaseURL string
	// FrontendBaseURL is the base URL of the browser client,
	// used to build password reset links.
	FrontendBaseURL string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

// ServerConfig holds server settings
type ServerConfig struct {
	Port int
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level string
}

// CORSConfig holds CORS settings
type CORSConfig struct {
	AllowedOrigins []string
}

// JWTConfig holds JWT token configuration
type JWTConfig struct {
	Secret string
	// AccessTokenExpiry bounds the lifetime of session tokens.
	AccessTokenExpiry time.Duration
	// EmailTokenExpiry bounds the lifetime of email confirmation
	// and password reset tokens.
	EmailTokenExpiry time.Duration
}

// SMTPConfig holds SMTP server configuration
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// GeocodingConfig holds reverse geocoding adapter settings
type GeocodingConfig struct {
	BaseURL  string
	CacheTTL time.Duration
}

// UploadsConfig holds uploaded photo storage settings
type UploadsConfig struct {
	// Dir is the local directory where uploaded photos are written.
	Dir string
	// BaseURL is the public path prefix the photos are served from.
	BaseURL string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	godotenv.Load()

	cfg := &Config{}

	// Database configuration
	dbHost := os.Getenv("DB_HOST")
	if dbHost == "" {
		return nil, fmt.Errorf("DB_HOST is required")
	}
	cfg.Database.Host = dbHost

	dbPortStr := os.Getenv("DB_PORT")
	if dbPortStr == "" {
		return nil, fmt.Errorf("DB_PORT is required")
	}
	dbPort, err := strconv.Atoi(dbPortStr)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	cfg.Database.Port = dbPort

	dbUser := os.Getenv("DB_USER")
	if dbUser == "" {
		return nil, fmt.Errorf("DB_USER is required")
	}
	cfg.Database.User = dbUser

	dbPassword := os.Getenv("DB_PASSWORD")
	if dbPassword == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required")
	}
	cfg.Database.Password = dbPassword

	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		return nil, fmt.Errorf("DB_NAME is required")
	}
	cfg.Database.DBName = dbName

	// Server configuration
	serverPortStr := os.Getenv("SERVER_PORT")
	if serverPortStr == "" {
		serverPortStr = "8080" // default port
	}
	serverPort, err := strconv.Atoi(serverPortStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}
	cfg.Server.Port = serverPort

	// Logging configuration
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info" // default level
	}
	cfg.Logging.Level = logLevel

	// CORS configuration
	corsOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
	if corsOrigins == "" {
		// Default to allow all origins if not specified (for development)
		cfg.CORS.AllowedOrigins = []string{"*"}
	} else {
		// Parse comma-separated origins
		origins := strings.Split(corsOrigins, ",")
		cfg.CORS.AllowedOrigins = make([]string, 0, len(origins))
		for _, origin := range origins {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				cfg.CORS.AllowedOrigins = append(cfg.CORS.AllowedOrigins, origin)
			}
		}
		// If no valid origins found, default to allow all
		if len(cfg.CORS.AllowedOrigins) == 0 {
			cfg.CORS.AllowedOrigins = []string{"*"}
		}
	}

	// JWT configuration
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	cfg.JWT.Secret = jwtSecret

	// Access token expiry (default: 1 hour)
	accessExpiryStr := os.Getenv("JWT_ACCESS_TOKEN_EXPIRY")
	if accessExpiryStr == "" {
		accessExpiryStr = "1h"
	}
	accessExpiry, err := time.ParseDuration(accessExpiryStr)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_TOKEN_EXPIRY: %w", err)
	}
	cfg.JWT.AccessTokenExpiry = accessExpiry

	// Email confirmation / password reset token expiry (default: 1 hour)
	emailExpiryStr := os.Getenv("JWT_EMAIL_TOKEN_EXPIRY")
	if emailExpiryStr == "" {
		emailExpiryStr = "1h"
	}
	emailExpiry, err := time.ParseDuration(emailExpiryStr)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EMAIL_TOKEN_EXPIRY: %w", err)
	}
	cfg.JWT.EmailTokenExpiry = emailExpiry

	// SMTP configuration (optional, falls back to local relay defaults)
	smtpHost := os.Getenv("SMTP_HOST")
	if smtpHost == "" {
		smtpHost = "localhost" // default
	}
	cfg.SMTP.Host = smtpHost

	smtpPortStr := os.Getenv("SMTP_PORT")
	if smtpPortStr == "" {
		smtpPortStr = "587" // default
	}
	smtpPort, err := strconv.Atoi(smtpPortStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}
	cfg.SMTP.Port = smtpPort

	cfg.SMTP.Username = os.Getenv("SMTP_USERNAME") // optional
	cfg.SMTP.Password = os.Getenv("SMTP_PASSWORD") // optional

	smtpFrom := os.Getenv("SMTP_FROM")
	if smtpFrom == "" {
		smtpFrom = "noreply@restaurantapp.com" // default
	}
	cfg.SMTP.From = smtpFrom

	// Geocoding configuration
	geoBaseURL := os.Getenv("GEOCODING_BASE_URL")
	if geoBaseURL == "" {
		geoBaseURL = "https://nominatim.openstreetmap.org" // default
	}
	cfg.Geocoding.BaseURL = geoBaseURL

	geoCacheTTLStr := os.Getenv("GEOCODING_CACHE_TTL")
	if geoCacheTTLStr == "" {
		geoCacheTTLStr = "1h"
	}
	geoCacheTTL, err := time.ParseDuration(geoCacheTTLStr)
	if err != nil {
		return nil, fmt.Errorf("invalid GEOCODING_CACHE_TTL: %w", err)
	}
	cfg.Geocoding.CacheTTL = geoCacheTTL

	// Uploads configuration
	uploadsDir := os.Getenv("UPLOADS_DIR")
	if uploadsDir == "" {
		uploadsDir = "uploads" // default
	}
	cfg.Uploads.Dir = uploadsDir

	uploadsBaseURL := os.Getenv("UPLOADS_BASE_URL")
	if uploadsBaseURL == "" {
		uploadsBaseURL = "/uploads"
	}
	cfg.Uploads.BaseURL = uploadsBaseURL

	// Base URLs for email links
	appBaseURL := os.Getenv("APP_BASE_URL")
	if appBaseURL == "" {
		appBaseURL = fmt.Sprintf("http://localhost:%d", cfg.Server.Port)
	}
	cfg.AppBaseURL = appBaseURL

	frontendBaseURL := os.Getenv("FRONTEND_BASE_URL")
	if frontendBaseURL == "" {
		frontendBaseURL = "http://localhost:3000"
	}
	cfg.FrontendBaseURL = frontendBaseURL

	return cfg, nil
}

// DSN returns the database connection string. clientFoundRows makes
// UPDATE report matched rows rather than changed rows, so repository
// RowsAffected checks treat a no-op update of an existing row as found.
func (c *Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&clientFoundRows=true",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
	)
}
