package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/ZaguanLabs/linguachain"
	"github.com/ZaguanLabs/linguachain/transliterate"
)

// LibreTranslateProvider calls one LibreTranslate instance. Public instances
// come and go, so several are usually chained.
type LibreTranslateProvider struct {
	baseURL string
	apiKey  string
	name    string
}

// LibreTranslateConfig holds configuration for one instance.
type LibreTranslateConfig struct {
	BaseURL string // Instance root, e.g. https://libretranslate.com
	APIKey  string // Optional; sent as api_key when set
}

// NewLibreTranslateProvider creates a secondary provider.
func NewLibreTranslateProvider(cfg LibreTranslateConfig) *LibreTranslateProvider {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	return &LibreTranslateProvider{
		baseURL: base,
		apiKey:  cfg.APIKey,
		name:    "libretranslate:" + hostOf(base),
	}
}

// translateRequest represents a LibreTranslate API request.
type translateRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
	APIKey string `json:"api_key,omitempty"`
}

func (p *LibreTranslateProvider) Name() string { return p.name }

func (p *LibreTranslateProvider) Tier() linguachain.Tier { return linguachain.TierSecondary }

// BuildRequest posts the text with source detection. Instances only know
// base language codes, so regional tags are reduced ("pt-BR" becomes "pt").
func (p *LibreTranslateProvider) BuildRequest(ctx context.Context, req Request) (*http.Request, error) {
	payload := translateRequest{
		Q:      req.Text,
		Source: "auto",
		Target: transliterate.BaseLanguage(req.TargetLang),
		Format: "text",
		APIKey: p.apiKey,
	}

	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(&payload); err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/translate", buf)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	return httpReq, nil
}

// Extract checks for the key-required reply before looking at the status,
// since some instances send it with 200 and others with 400 or 403.
func (p *LibreTranslateProvider) Extract(resp *Response) Outcome {
	if RequiresAPIKey(resp.Body) {
		return linguachain.SoftFail(linguachain.FailureQuota, "instance requires an API key", nil)
	}
	if !resp.OK() {
		return linguachain.SoftFail(linguachain.FailureProtocol, fmt.Sprintf("unexpected status %d", resp.StatusCode), nil)
	}

	translation, ok := ExtractFlat(resp.Body)
	if !ok {
		return linguachain.SoftFail(linguachain.FailureParse, "no translatedText in reply", nil)
	}
	return linguachain.Succeeded(translation, "")
}

var _ Provider = (*LibreTranslateProvider)(nil)
