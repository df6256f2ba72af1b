// Package advice формирует краткий совет по логистической проблеме через LLM.
package advice

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/exp/slog"

	"liquidtrack/internal/app/client/config"
	"liquidtrack/internal/app/client/i18n"
)

const (
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
)

// Generator возвращает совет, никогда не завершаясь ошибкой: при любой
// неудаче возвращается локализованная заглушка.
type Generator interface {
	Generate(ctx context.Context, title, description string, lang i18n.Lang) string
}

type fallback int

const (
	missingKey fallback = iota
	unavailable
	empty
)

var fallbacks = map[fallback]map[i18n.Lang]string{
	missingKey:  {i18n.EN: "API Key configuration required.", i18n.RU: "Требуется настройка ключа API."},
	unavailable: {i18n.EN: "AI Service unavailable at the moment.", i18n.RU: "Сервис AI временно недоступен."},
	empty:       {i18n.EN: "No analysis available.", i18n.RU: "Нет анализа."},
}

func (f fallback) text(lang i18n.Lang) string {
	if lang == i18n.EN {
		return fallbacks[f][i18n.EN]
	}
	return fallbacks[f][i18n.RU]
}

// Prompt собирает запрос к модели.
func Prompt(title, description string, lang i18n.Lang) string {
	var b strings.Builder
	b.WriteString("You are a logistics and supply chain expert assistant.\n")
	b.WriteString("Analyze the following issue briefly and suggest a 1-sentence immediate action plan.\n\n")
	fmt.Fprintf(&b, "IMPORTANT: Answer in %s language.\n", lang.Upper())
	b.WriteString("Keep it professional and concise.\n\n")
	fmt.Fprintf(&b, "Issue Title: %s\n", title)
	fmt.Fprintf(&b, "Issue Description: %s\n", description)
	return b.String()
}

// completer - один запрос к провайдеру.
type completer interface {
	complete(ctx context.Context, prompt string) (string, error)
}

type generator struct {
	provider string
	c        completer
	log      *slog.Logger
}

func (g *generator) Generate(ctx context.Context, title, description string, lang i18n.Lang) string {
	text, err := g.c.complete(ctx, Prompt(title, description, lang))
	if err != nil {
		g.log.Error("Ошибка LLM", "provider", g.provider, "error", err)
		return unavailable.text(lang)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return empty.text(lang)
	}
	return text
}

// Unconfigured отвечает заглушкой об отсутствии ключа.
type Unconfigured struct{}

func (Unconfigured) Generate(_ context.Context, _, _ string, lang i18n.Lang) string {
	return missingKey.text(lang)
}

// New выбирает провайдера по конфигурации. Без ключа возвращается Unconfigured.
func New(cfg config.LLMConfig, log *slog.Logger) Generator {
	log = log.With(slog.String("component", "advice"))
	if cfg.APIKey == "" {
		log.Warn("Ключ LLM не задан, советы недоступны")
		return Unconfigured{}
	}

	var c completer
	switch cfg.Provider {
	case ProviderAnthropic:
		c = newAnthropic(cfg)
	default:
		c = newGemini(cfg)
	}
	return &generator{provider: cfg.Provider, c: c, log: log}
}
