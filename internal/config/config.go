package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

// DefaultEnvFiles - пути, в которых ищется .env (от корня репозитория и от cmd/*).
var DefaultEnvFiles = []string{".env", "../../.env"}

// LoadDotenv загружает первый найденный .env. Переменные окружения процесса
// не перезаписываются. Возвращает путь загруженного файла или пустую строку.
func LoadDotenv(paths ...string) (string, error) {
	if len(paths) == 0 {
		paths = DefaultEnvFiles
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return "", err
		}
		if err := godotenv.Load(p); err != nil {
			return "", err
		}
		return p, nil
	}
	return "", nil
}

// NormalizeEnv приводит APP_ENV к одному из известных значений, по умолчанию local.
func NormalizeEnv(env string) string {
	switch env {
	case EnvLocal, EnvDev, EnvProd:
		return env
	case "production":
		return EnvProd
	case "development":
		return EnvDev
	default:
		return EnvLocal
	}
}
