package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ZaguanLabs/linguachain"
)

// GoogleProvider calls the keyless web translate endpoint. It is the only
// provider that can return a native romanization alongside the translation.
type GoogleProvider struct {
	baseURL string
}

// NewGoogleProvider creates the primary provider. An empty baseURL uses
// DefaultGoogleURL.
func NewGoogleProvider(baseURL string) *GoogleProvider {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultGoogleURL
	}
	return &GoogleProvider{baseURL: strings.TrimRight(baseURL, "/")}
}

func (p *GoogleProvider) Name() string { return "google" }

func (p *GoogleProvider) Tier() linguachain.Tier { return linguachain.TierPrimary }

// BuildRequest asks for the translation (dt=t) and the romanization (dt=rm).
func (p *GoogleProvider) BuildRequest(ctx context.Context, req Request) (*http.Request, error) {
	q := url.Values{}
	q.Set("client", "gtx")
	q.Set("sl", "auto")
	q.Set("tl", req.TargetLang)
	q.Add("dt", "t")
	q.Add("dt", "rm")
	q.Set("q", req.Text)

	return http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/translate_a/single?"+q.Encode(), nil)
}

// Extract accepts only HTTP 200.
func (p *GoogleProvider) Extract(resp *Response) Outcome {
	if resp.StatusCode != http.StatusOK {
		return linguachain.SoftFail(linguachain.FailureProtocol, fmt.Sprintf("unexpected status %d", resp.StatusCode), nil)
	}

	translation, ok := ExtractNested(resp.Body)
	if !ok {
		return linguachain.SoftFail(linguachain.FailureParse, "no translated segments", nil)
	}

	pronunciation, _ := ExtractNestedPronunciation(resp.Body)
	return linguachain.Succeeded(translation, pronunciation)
}

var _ Provider = (*GoogleProvider)(nil)
