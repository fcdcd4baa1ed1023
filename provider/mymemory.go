package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ZaguanLabs/linguachain"
)

// MyMemoryProvider queries the MyMemory translation memory. It needs an
// explicit source language, unlike the other providers.
type MyMemoryProvider struct {
	baseURL    string
	sourceLang string
	email      string
}

// MyMemoryConfig holds configuration for the MyMemory provider.
type MyMemoryConfig struct {
	BaseURL    string // default: DefaultMyMemoryURL
	SourceLang string // default: "en"
	Email      string // Optional contact address for a larger quota
}

// NewMyMemoryProvider creates the tertiary provider.
func NewMyMemoryProvider(cfg MyMemoryConfig) *MyMemoryProvider {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = DefaultMyMemoryURL
	}
	source := strings.TrimSpace(cfg.SourceLang)
	if source == "" {
		source = "en"
	}
	return &MyMemoryProvider{
		baseURL:    strings.TrimRight(base, "/"),
		sourceLang: source,
		email:      cfg.Email,
	}
}

func (p *MyMemoryProvider) Name() string { return "mymemory" }

func (p *MyMemoryProvider) Tier() linguachain.Tier { return linguachain.TierTertiary }

func (p *MyMemoryProvider) BuildRequest(ctx context.Context, req Request) (*http.Request, error) {
	q := url.Values{}
	q.Set("q", req.Text)
	q.Set("langpair", p.sourceLang+"|"+req.TargetLang)
	if p.email != "" {
		q.Set("de", p.email)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/get?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	return httpReq, nil
}

func (p *MyMemoryProvider) Extract(resp *Response) Outcome {
	if !resp.OK() {
		return linguachain.SoftFail(linguachain.FailureProtocol, fmt.Sprintf("unexpected status %d", resp.StatusCode), nil)
	}
	if QuotaExceeded(resp.Body) {
		return linguachain.SoftFail(linguachain.FailureQuota, "daily quota exhausted", nil)
	}

	translation, ok := ExtractEnvelope(resp.Body)
	if !ok {
		return linguachain.SoftFail(linguachain.FailureEmpty, "no usable translation or match", nil)
	}
	return linguachain.Succeeded(translation, "")
}

var _ Provider = (*MyMemoryProvider)(nil)
