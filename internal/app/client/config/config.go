package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	appconfig "liquidtrack/internal/config"
)

const (
	defaultEnv         = appconfig.EnvLocal
	defaultConfigDir   = ".liquidtrack"
	defaultLLMProvider = "gemini"
	defaultLLMModel    = "gemini-2.5-flash"
	defaultLanguage    = "ru"
	defaultDebounceMS  = 150
	defaultTimeout     = 30 * time.Second
)

type Config struct {
	Env       string
	LogLevel  string
	LogFile   string
	ConfigDir string
	DataPath  string
	KeyPath   string
	Language  string

	Store StoreConfig
	LLM   LLMConfig

	RealtimeDebounce time.Duration
}

// StoreConfig - адрес и публичный ключ службы хранения.
type StoreConfig struct {
	URL     string
	APIKey  string
	Timeout time.Duration
}

// Configured сообщает, заданы ли оба параметра подключения.
func (s StoreConfig) Configured() bool {
	return s.URL != "" && s.APIKey != ""
}

type LLMConfig struct {
	Provider string
	APIKey   string
	Model    string
	BaseURL  string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_env", defaultEnv)
	v.SetDefault("log_level", "")
	v.SetDefault("config_dir", "")
	v.SetDefault("language", defaultLanguage)
	v.SetDefault("llm_provider", defaultLLMProvider)
	v.SetDefault("llm_model", "")
	v.SetDefault("realtime_debounce_ms", defaultDebounceMS)
	v.SetDefault("store_timeout", defaultTimeout)
}

// Load читает .env, переменные окружения и необязательный config.yaml из каталога
// конфигурации. Отсутствие адреса хранилища ошибкой не считается: клиент покажет
// экран настройки.
func Load() (*Config, error) {
	if _, err := appconfig.LoadDotenv(); err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка загрузки .env файла: %v\n", err)
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	dir := resolveConfigDir(v.GetString("config_dir"))
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	return fromViper(v, dir)
}

// MustLoad загружает конфигурацию клиента
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("Ошибка конфигурации: %v", err))
	}
	return cfg
}

func fromViper(v *viper.Viper, dir string) (*Config, error) {
	cfg := &Config{
		Env:       appconfig.NormalizeEnv(v.GetString("app_env")),
		LogLevel:  v.GetString("log_level"),
		ConfigDir: dir,
		DataPath:  filepath.Join(dir, "state.db"),
		KeyPath:   filepath.Join(dir, "device.key"),
		Language:  strings.ToLower(v.GetString("language")),
		Store: StoreConfig{
			URL:     strings.TrimRight(firstNonEmpty(v.GetString("store_url"), v.GetString("supabase_url")), "/"),
			APIKey:  firstNonEmpty(v.GetString("store_api_key"), v.GetString("supabase_anon_key")),
			Timeout: v.GetDuration("store_timeout"),
		},
		LLM: LLMConfig{
			Provider: strings.ToLower(v.GetString("llm_provider")),
			APIKey:   firstNonEmpty(v.GetString("llm_api_key"), v.GetString("api_key")),
			Model:    v.GetString("llm_model"),
			BaseURL:  v.GetString("llm_base_url"),
		},
		RealtimeDebounce: time.Duration(v.GetInt("realtime_debounce_ms")) * time.Millisecond,
	}

	cfg.LogFile = v.GetString("log_file")
	if cfg.LogFile == "" {
		cfg.LogFile = filepath.Join(dir, "client.log")
	}
	if cfg.LLM.Model == "" && cfg.LLM.Provider == defaultLLMProvider {
		cfg.LLM.Model = defaultLLMModel
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Language {
	case "ru", "en":
	default:
		return fmt.Errorf("language must be ru or en, got %q", c.Language)
	}
	switch c.LLM.Provider {
	case "gemini", "anthropic":
	default:
		return fmt.Errorf("llm_provider must be gemini or anthropic, got %q", c.LLM.Provider)
	}
	if c.RealtimeDebounce < 0 {
		return fmt.Errorf("realtime_debounce_ms не может быть отрицательным")
	}
	return nil
}

// EnsureDir создает каталог конфигурации.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.ConfigDir, 0o700)
}

// IsProd проверяет, prod ли окружение
func (c *Config) IsProd() bool {
	return c.Env == appconfig.EnvProd
}

func resolveConfigDir(dir string) string {
	if dir != "" {
		return dir
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	return filepath.Join(homeDir, defaultConfigDir)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
