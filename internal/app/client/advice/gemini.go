package advice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"liquidtrack/internal/app/client/config"
)

const (
	geminiBaseURL      = "https://generativelanguage.googleapis.com"
	geminiDefaultModel = "gemini-2.5-flash"
	requestTimeout     = 60 * time.Second
)

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

type geminiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

type gemini struct {
	client *resty.Client
	model  string
}

func newGemini(cfg config.LLMConfig) *gemini {
	base := cfg.BaseURL
	if base == "" {
		base = geminiBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = geminiDefaultModel
	}
	return &gemini{
		client: resty.New().
			SetBaseURL(base).
			SetTimeout(requestTimeout).
			SetHeader("x-goog-api-key", cfg.APIKey),
		model: model,
	}
}

func (g *gemini) complete(ctx context.Context, prompt string) (string, error) {
	var out geminiResponse
	resp, err := g.client.R().
		SetContext(ctx).
		SetBody(geminiRequest{Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}}}).
		SetResult(&out).
		SetError(&geminiError{}).
		SetPathParam("model", g.model).
		Post("/v1beta/models/{model}:generateContent")
	if err != nil {
		return "", fmt.Errorf("gemini request: %w", err)
	}
	if resp.IsError() {
		msg := resp.Status()
		if e, ok := resp.Error().(*geminiError); ok && e.Error.Message != "" {
			msg = e.Error.Message
		}
		return "", fmt.Errorf("gemini: status %d: %s", resp.StatusCode(), msg)
	}

	var b strings.Builder
	for _, c := range out.Candidates {
		for _, p := range c.Content.Parts {
			b.WriteString(p.Text)
		}
		if b.Len() > 0 {
			break
		}
	}
	return b.String(), nil
}
