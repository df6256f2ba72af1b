package logger

import (
	"io"
	"os"
	"strings"

	"golang.org/x/exp/slog"
	"gopkg.in/natefinch/lumberjack.v2"

	"liquidtrack/internal/config"
)

// New создает логгер в stdout: local - текстовый debug, dev - json debug, prod - json info.
func New(env string) *slog.Logger {
	return NewWriter(env, os.Stdout, "")
}

// NewWriter создает логгер с явным приемником записей. Непустой level
// (debug, info, warn, error) переопределяет уровень окружения.
func NewWriter(env string, w io.Writer, level string) *slog.Logger {
	var log *slog.Logger

	switch config.NormalizeEnv(env) {
	case config.EnvLocal:
		log = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: levelOr(level, slog.LevelDebug)}))
	case config.EnvDev:
		log = slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: levelOr(level, slog.LevelDebug)}))
	default:
		log = slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: levelOr(level, slog.LevelInfo)}))
	}

	return log
}

// NewFile пишет в файл с ротацией. Используется в клиенте, чтобы не мешать
// выводу терминального интерфейса. Пустой path отключает логирование.
func NewFile(env, path, level string) *slog.Logger {
	if path == "" {
		return Discard()
	}
	return NewWriter(env, &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     14,
		Compress:   true,
	}, level)
}

func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupPrettySlog() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func levelOr(raw string, def slog.Level) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return def
	}
}
