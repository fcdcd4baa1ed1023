package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/ZaguanLabs/linguachain"
	"github.com/sashabaranov/go-openai"
)

// OpenAIProvider is the last-resort tier: an OpenAI-compatible chat
// completions endpoint asked for a plain translation. The chain performs the
// call, so the go-openai client is not used; only its wire types are.
type OpenAIProvider struct {
	baseURL     string
	apiKey      string
	model       string
	temperature float32
}

// OpenAIConfig holds configuration for the OpenAI provider.
type OpenAIConfig struct {
	APIKey      string  // Required; the provider is not registered without one
	Model       string  // Model to use (default: "gpt-4o-mini")
	Temperature float32 // Temperature for generation (default: 0.3)
	BaseURL     string  // Custom base URL (default: the OpenAI v1 API)
}

// NewOpenAIProvider creates a new OpenAI provider.
func NewOpenAIProvider(cfg OpenAIConfig) *OpenAIProvider {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = openai.DefaultConfig("").BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = openai.GPT4oMini
	}

	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 0.3
	}

	return &OpenAIProvider{
		baseURL:     strings.TrimRight(base, "/"),
		apiKey:      cfg.APIKey,
		model:       model,
		temperature: temperature,
	}
}

func (p *OpenAIProvider) Name() string { return "openai:" + p.model }

func (p *OpenAIProvider) Tier() linguachain.Tier { return linguachain.TierFallback }

func (p *OpenAIProvider) BuildRequest(ctx context.Context, req Request) (*http.Request, error) {
	body, err := json.Marshal(openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt(req.TargetLang)},
			{Role: openai.ChatMessageRoleUser, Content: req.Text},
		},
		Temperature: p.temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	return httpReq, nil
}

func systemPrompt(targetLang string) string {
	return fmt.Sprintf("Translate the user's text to %s (%s). "+
		"Reply with the translation only: no quotes, notes or transliteration.",
		linguachain.GetLanguageName(targetLang), targetLang)
}

func (p *OpenAIProvider) Extract(resp *Response) Outcome {
	if !resp.OK() {
		return p.apiFailure(resp)
	}

	var completion openai.ChatCompletionResponse
	if err := json.Unmarshal(resp.Body, &completion); err != nil {
		return linguachain.SoftFail(linguachain.FailureParse, "invalid completion body", err)
	}
	if len(completion.Choices) == 0 {
		return linguachain.SoftFail(linguachain.FailureEmpty, "no choices in completion", nil)
	}

	return linguachain.Succeeded(unquote(completion.Choices[0].Message.Content), "")
}

func (p *OpenAIProvider) apiFailure(resp *Response) Outcome {
	kind := linguachain.FailureProtocol
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusTooManyRequests {
		kind = linguachain.FailureQuota
	}

	msg := fmt.Sprintf("unexpected status %d", resp.StatusCode)
	var errResp openai.ErrorResponse
	if err := json.Unmarshal(resp.Body, &errResp); err == nil && errResp.Error != nil && errResp.Error.Message != "" {
		msg += ": " + errResp.Error.Message
	}
	return linguachain.SoftFail(kind, msg, nil)
}

// unquote strips one layer of matching quotes that chat models like to add.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			return strings.TrimSpace(s[1 : len(s)-1])
		}
	}
	return s
}

var _ Provider = (*OpenAIProvider)(nil)
