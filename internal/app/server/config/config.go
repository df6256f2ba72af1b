package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"

	appconfig "liquidtrack/internal/config"
)

type Config struct {
	Env    string
	DB     DB
	Server Server
	Logger Logger
	Auth   Auth
	Azure  Azure
}

type DB struct {
	DatabaseURI string
	Migrations  string
}

type Server struct {
	RunAddress      string
	PublicAPIKey    string
	ShutdownTimeout time.Duration
}

type Logger struct {
	LogLevel string
}

type Auth struct {
	SessionTTL      time.Duration
	CleanupInterval time.Duration
}

// Azure - параметры входа через Microsoft. Пустой ClientID отключает вход.
type Azure struct {
	ClientID     string
	ClientSecret string
	Tenant       string
	RedirectURL  string
}

func (a Azure) Enabled() bool {
	return a.ClientID != "" && a.ClientSecret != "" && a.RedirectURL != ""
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("run_address", ":8080")
	v.SetDefault("migrations_path", "migrations")
	v.SetDefault("log_level", "")
	v.SetDefault("app_env", appconfig.EnvLocal)
	v.SetDefault("session_ttl", "24h")
	v.SetDefault("session_cleanup_interval", "1h")
	v.SetDefault("shutdown_timeout", "10s")
	v.SetDefault("azure_tenant", "common")
}

// Load читает конфигурацию из окружения и .env.
func Load() (*Config, error) {
	if path, err := appconfig.LoadDotenv(); err != nil {
		log.Printf("failed to load .env: %v", err)
	} else if path == "" {
		log.Println("No .env file found, relying on environment variables")
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	return fromViper(v)
}

// MustLoad завершает процесс при некорректной конфигурации.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	return cfg
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Env: appconfig.NormalizeEnv(v.GetString("app_env")),
		DB: DB{
			DatabaseURI: v.GetString("database_uri"),
			Migrations:  v.GetString("migrations_path"),
		},
		Server: Server{
			RunAddress:      v.GetString("run_address"),
			PublicAPIKey:    v.GetString("public_api_key"),
			ShutdownTimeout: v.GetDuration("shutdown_timeout"),
		},
		Logger: Logger{LogLevel: v.GetString("log_level")},
		Auth: Auth{
			SessionTTL:      v.GetDuration("session_ttl"),
			CleanupInterval: v.GetDuration("session_cleanup_interval"),
		},
		Azure: Azure{
			ClientID:     v.GetString("azure_client_id"),
			ClientSecret: v.GetString("azure_client_secret"),
			Tenant:       v.GetString("azure_tenant"),
			RedirectURL:  v.GetString("azure_redirect_url"),
		},
	}

	if strings.TrimSpace(cfg.DB.DatabaseURI) == "" {
		return nil, fmt.Errorf("DATABASE_URI is required")
	}
	if cfg.Auth.SessionTTL <= 0 {
		return nil, fmt.Errorf("SESSION_TTL must be positive, got %s", cfg.Auth.SessionTTL)
	}

	return cfg, nil
}
