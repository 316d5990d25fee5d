package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultSecretKey is only acceptable outside production.
const DefaultSecretKey = "ama-impact-dev-secret-change-in-production"

// Config holds the application settings resolved from defaults, the .env file
// and the process environment (in increasing order of precedence).
type Config struct {
	AppEnv string
	Debug  bool
	Port   string

	DatabaseDriver string
	DatabaseFile   string
	DatabaseURL    string

	SecretKey   string
	TokenExpiry time.Duration

	AdminEmail    string
	AdminPassword string
	AdminFullName string

	CORSOrigins []string
	FrontendURL string

	SendgridAPIKey string
	EmailFrom      string
	EmailFromName  string

	RollbarToken string

	NotificationRetentionDays int
}

// IsProduction reports whether the app runs with production settings.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

// Validate rejects settings that would be unsafe or unusable at runtime.
func (c *Config) Validate() error {
	switch c.DatabaseDriver {
	case "sqlite":
		if c.DatabaseFile == "" {
			return errors.New("DATABASE_FILE is required for the sqlite driver")
		}
	case "postgres", "mysql":
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the %s driver", c.DatabaseDriver)
		}
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q", c.DatabaseDriver)
	}

	if c.IsProduction() && c.SecretKey == DefaultSecretKey {
		return errors.New("SECRET_KEY must be set in production")
	}
	if c.TokenExpiry <= 0 {
		return errors.New("ACCESS_TOKEN_EXPIRE_MINUTES must be positive")
	}
	return nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("DEBUG", true)
	v.SetDefault("PORT", "8000")
	v.SetDefault("DATABASE_DRIVER", "sqlite")
	v.SetDefault("DATABASE_FILE", "ama_impact.db")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("SECRET_KEY", DefaultSecretKey)
	v.SetDefault("ACCESS_TOKEN_EXPIRE_MINUTES", 480)
	v.SetDefault("ADMIN_EMAIL", "admin@ama-impact.local")
	v.SetDefault("ADMIN_PASSWORD", "changeme123")
	v.SetDefault("ADMIN_FULL_NAME", "System Administrator")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("FRONTEND_URL", "http://localhost:3000")
	v.SetDefault("SENDGRID_API_KEY", "")
	v.SetDefault("EMAIL_FROM", "noreply@ama-impact.local")
	v.SetDefault("EMAIL_FROM_NAME", "AMA-IMPACT")
	v.SetDefault("ROLLBAR_TOKEN", "")
	v.SetDefault("NOTIFICATION_RETENTION_DAYS", 90)

	v.AutomaticEnv()
	return v
}

// Load reads the .env file named by AMA_ENV_FILE (default ".env") if it
// exists, then resolves every setting through viper.
func Load() (*Config, error) {
	envFile := os.Getenv("AMA_ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("loading %s: %w", envFile, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("stat %s: %w", envFile, err)
	}

	return fromViper(newViper())
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		AppEnv:                    v.GetString("APP_ENV"),
		Debug:                     v.GetBool("DEBUG"),
		Port:                      v.GetString("PORT"),
		DatabaseDriver:            strings.ToLower(v.GetString("DATABASE_DRIVER")),
		DatabaseFile:              v.GetString("DATABASE_FILE"),
		DatabaseURL:               v.GetString("DATABASE_URL"),
		SecretKey:                 v.GetString("SECRET_KEY"),
		TokenExpiry:               time.Duration(v.GetInt("ACCESS_TOKEN_EXPIRE_MINUTES")) * time.Minute,
		AdminEmail:                v.GetString("ADMIN_EMAIL"),
		AdminPassword:             v.GetString("ADMIN_PASSWORD"),
		AdminFullName:             v.GetString("ADMIN_FULL_NAME"),
		CORSOrigins:               splitList(v.GetString("CORS_ORIGINS")),
		FrontendURL:               strings.TrimRight(v.GetString("FRONTEND_URL"), "/"),
		SendgridAPIKey:            v.GetString("SENDGRID_API_KEY"),
		EmailFrom:                 v.GetString("EMAIL_FROM"),
		EmailFromName:             v.GetString("EMAIL_FROM_NAME"),
		RollbarToken:              v.GetString("ROLLBAR_TOKEN"),
		NotificationRetentionDays: v.GetInt("NOTIFICATION_RETENTION_DAYS"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
