package advice

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"liquidtrack/internal/app/client/config"
	"liquidtrack/internal/app/client/i18n"
	"liquidtrack/internal/utils/logger"
)

func TestPrompt(t *testing.T) {
	p := Prompt("Delayed container", "Stuck at port", i18n.RU)
	assert.Contains(t, p, "logistics and supply chain expert")
	assert.Contains(t, p, "1-sentence immediate action plan")
	assert.Contains(t, p, "Answer in RUSSIAN language")
	assert.Contains(t, p, "Issue Title: Delayed container")
	assert.Contains(t, p, "Issue Description: Stuck at port")

	assert.Contains(t, Prompt("a", "b", i18n.EN), "Answer in ENGLISH language")
}

func TestNew_Unconfigured(t *testing.T) {
	g := New(config.LLMConfig{Provider: ProviderGemini}, logger.Discard())
	require.IsType(t, Unconfigured{}, g)

	ctx := context.Background()
	assert.Equal(t, "Требуется настройка ключа API.", g.Generate(ctx, "t", "d", i18n.RU))
	assert.Equal(t, "API Key configuration required.", g.Generate(ctx, "t", "d", i18n.EN))
}

func geminiServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/models/gemini-2.5-flash:generateContent", r.URL.Path)
		assert.Equal(t, "gk", r.Header.Get("x-goog-api-key"))

		var req geminiRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if assert.Len(t, req.Contents, 1) && assert.Len(t, req.Contents[0].Parts, 1) {
			assert.Contains(t, req.Contents[0].Parts[0].Text, "Issue Title: Late truck")
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGemini(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		lang   i18n.Lang
		want   string
	}{
		{
			name:   "answer",
			status: http.StatusOK,
			body:   `{"candidates":[{"content":{"parts":[{"text":" Call the carrier. "}]}}]}`,
			lang:   i18n.EN,
			want:   "Call the carrier.",
		},
		{
			name:   "empty",
			status: http.StatusOK,
			body:   `{"candidates":[]}`,
			lang:   i18n.RU,
			want:   "Нет анализа.",
		},
		{
			name:   "upstream error",
			status: http.StatusTooManyRequests,
			body:   `{"error":{"code":429,"message":"quota","status":"RESOURCE_EXHAUSTED"}}`,
			lang:   i18n.EN,
			want:   "AI Service unavailable at the moment.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := geminiServer(t, tt.status, tt.body)
			g := New(config.LLMConfig{Provider: ProviderGemini, APIKey: "gk", BaseURL: srv.URL}, logger.Discard())
			assert.Equal(t, tt.want, g.Generate(context.Background(), "Late truck", "No driver", tt.lang))
		})
	}
}

func TestGemini_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	g := New(config.LLMConfig{Provider: ProviderGemini, APIKey: "gk", BaseURL: url}, logger.Discard())
	assert.Equal(t, "Сервис AI временно недоступен.", g.Generate(context.Background(), "t", "d", i18n.RU))
}

func TestAnthropic(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "ak", r.Header.Get("x-api-key"))

		var req map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, anthropicDefaultModel, req["model"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "msg_1",
			"type": "message",
			"role": "assistant",
			"model": "claude-3-5-haiku-latest",
			"content": [{"type": "text", "text": "Свяжитесь с перевозчиком."}],
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 10, "output_tokens": 5}
		}`))
	}))
	t.Cleanup(srv.Close)

	g := New(config.LLMConfig{Provider: ProviderAnthropic, APIKey: "ak", BaseURL: srv.URL}, logger.Discard())
	assert.Equal(t, "Свяжитесь с перевозчиком.", g.Generate(context.Background(), "Late truck", "d", i18n.RU))
}
