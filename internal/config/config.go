package config

import (
	"fmt"
	"time"

	"hospitality_backend/pkg/utils"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Postgres PostgresConfig
	JWT      JWTConfig
	Logger   LoggerConfig
	CORS     CORSConfig
	Carwash  CarwashConfig
}

type ServerConfig struct {
	AppEnv string
	Port   string
}

type PostgresConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	AutoMigrate     bool
}

type JWTConfig struct {
	SecretKey string
	TTL       time.Duration
}

type LoggerConfig struct {
	Level  string
	Format string
	Dir    string
}

type CORSConfig struct {
	AllowedOrigins []string
}

// CarwashConfig lists the accepted carwash service types (CARWASH_SERVICE_TYPES).
// While the list is empty every income entry is rejected. TimeZone
// (CARWASH_TIMEZONE) is an IANA name used to read and display income dates.
type CarwashConfig struct {
	ServiceTypes []string
	TimeZone     string
}

// Location resolves TimeZone, falling back to time.Local when it is unknown.
func (c *CarwashConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.Local
	}
	return loc
}

// Load reads .env (when present) and the process environment.
func Load() *Config {
	// A missing .env is normal outside development.
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			AppEnv: utils.Getenv("APP_ENV", "development"),
			Port:   utils.Getenv("PORT", "8080"),
		},
		Postgres: PostgresConfig{
			Host:            utils.Getenv("DB_HOST", "localhost"),
			Port:            utils.Getenv("DB_PORT", "5432"),
			User:            utils.Getenv("DB_USER", "hospitality"),
			Password:        utils.Getenv("DB_PASSWORD", "hospitality"),
			DBName:          utils.Getenv("DB_NAME", "hospitality_db"),
			SSLMode:         utils.Getenv("DB_SSLMODE", "disable"),
			MaxOpenConns:    utils.GetenvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    utils.GetenvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: utils.GetenvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
			AutoMigrate:     utils.GetenvBool("DB_AUTO_MIGRATE", false),
		},
		JWT: JWTConfig{
			SecretKey: utils.Getenv("JWT_SECRET_KEY", ""),
			TTL:       utils.GetenvDuration("JWT_TTL", utils.AccessTokenTTL),
		},
		Logger: LoggerConfig{
			Level:  utils.Getenv("LOG_LEVEL", "info"),
			Format: utils.Getenv("LOG_FORMAT", "console"),
			Dir:    utils.Getenv("LOG_DIR", "logs"),
		},
		CORS: CORSConfig{
			AllowedOrigins: utils.GetenvSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://127.0.0.1:3000"}),
		},
		Carwash: CarwashConfig{
			ServiceTypes: utils.GetenvSlice("CARWASH_SERVICE_TYPES", []string{}),
			TimeZone:     utils.Getenv("CARWASH_TIMEZONE", "Local"),
		},
	}
}

// Validate reports settings the server cannot start without.
func (c *Config) Validate() error {
	if c.JWT.SecretKey == "" {
		return fmt.Errorf("JWT_SECRET_KEY must be set")
	}
	if _, err := time.LoadLocation(c.Carwash.TimeZone); err != nil {
		return fmt.Errorf("CARWASH_TIMEZONE: %w", err)
	}
	return nil
}

// IsProduction reports whether the app runs with APP_ENV=production.
func (c *Config) IsProduction() bool {
	return c.Server.AppEnv == "production"
}

// DSN returns the lib/pq connection string.
func (c *PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}
