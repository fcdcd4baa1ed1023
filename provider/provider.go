// Package provider implements the translation backends of the fallback chain
// and the pure extractors that read their replies.
package provider

import (
	"strings"

	"github.com/ZaguanLabs/linguachain"
)

// Provider is an alias to the main package interface for convenience.
type Provider = linguachain.Provider

// Request is an alias to the main package type.
type Request = linguachain.Request

// Response is an alias to the main package type.
type Response = linguachain.Response

// Outcome is an alias to the main package type.
type Outcome = linguachain.Outcome

// Default endpoints.
const (
	DefaultGoogleURL   = "https://translate.googleapis.com"
	DefaultMyMemoryURL = "https://api.mymemory.translated.net"
)

// DefaultLibreTranslateURLs are the public instances tried in order.
var DefaultLibreTranslateURLs = []string{
	"https://libretranslate.com",
	"https://translate.argosopentech.com",
	"https://libretranslate.de",
}

// Config describes the provider chain.
type Config struct {
	GoogleURL          string   // Primary endpoint (default: DefaultGoogleURL)
	LibreTranslateURLs []string // Secondary instances in order (default: DefaultLibreTranslateURLs)
	LibreTranslateKey  string   // Optional api_key sent to every instance
	MyMemoryURL        string   // Tertiary endpoint (default: DefaultMyMemoryURL)
	MyMemorySource     string   // Source half of langpair (default: "en")
	MyMemoryEmail      string   // Optional "de" parameter raising the daily quota
	OpenAI             OpenAIConfig
	DisableGoogle      bool
	DisableMyMemory    bool
}

// NewChainProviders builds the provider list in priority order: the Google
// web endpoint, each LibreTranslate instance, MyMemory, then the
// OpenAI-compatible fallback when an API key is set.
func NewChainProviders(cfg Config) []Provider {
	var providers []Provider

	if !cfg.DisableGoogle {
		providers = append(providers, NewGoogleProvider(cfg.GoogleURL))
	}

	urls := cfg.LibreTranslateURLs
	if len(urls) == 0 {
		urls = DefaultLibreTranslateURLs
	}
	for _, u := range urls {
		if strings.TrimSpace(u) == "" {
			continue
		}
		providers = append(providers, NewLibreTranslateProvider(LibreTranslateConfig{
			BaseURL: u,
			APIKey:  cfg.LibreTranslateKey,
		}))
	}

	if !cfg.DisableMyMemory {
		providers = append(providers, NewMyMemoryProvider(MyMemoryConfig{
			BaseURL:    cfg.MyMemoryURL,
			SourceLang: cfg.MyMemorySource,
			Email:      cfg.MyMemoryEmail,
		}))
	}

	if strings.TrimSpace(cfg.OpenAI.APIKey) != "" {
		providers = append(providers, NewOpenAIProvider(cfg.OpenAI))
	}

	return providers
}

// hostOf returns the host part of a base URL for provider names.
func hostOf(base string) string {
	s := strings.TrimPrefix(strings.TrimPrefix(base, "https://"), "http://")
	if i := strings.IndexByte(s, '/'); i >= 0 {
		s = s[:i]
	}
	return s
}
