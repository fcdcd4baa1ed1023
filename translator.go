package linguachain

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/ZaguanLabs/linguachain/transliterate"
	"github.com/sirupsen/logrus"
)

// Translator is the entry point for callers. It validates input, runs the
// provider chain and attaches a pronunciation for romanizable targets.
type Translator struct {
	client         *http.Client
	logger         *logrus.Logger
	attemptTimeout time.Duration
	cache          TranslationCache
	processors     map[string]ContentProcessor
	concurrency    int
	chain          *Chain
}

// TranslationCache is the interface for translation caching.
type TranslationCache interface {
	Get(key string) (string, bool)
	Set(key string, value string) error
}

// ContentProcessor is the interface for content processing.
type ContentProcessor interface {
	Extract(content string) (interface{}, []TextNode, error)
	Apply(parsed interface{}, nodes []TextNode, translations map[string]string) (string, error)
	ContentType() string
}

// TranslatorOption is a functional option for configuring the Translator.
type TranslatorOption func(*Translator)

// WithHTTPClient sets the client shared by all provider calls.
func WithHTTPClient(client *http.Client) TranslatorOption {
	return func(t *Translator) {
		t.client = client
	}
}

// WithLogger sets the logger.
func WithLogger(logger *logrus.Logger) TranslatorOption {
	return func(t *Translator) {
		t.logger = logger
	}
}

// WithAttemptTimeout bounds each provider attempt.
func WithAttemptTimeout(d time.Duration) TranslatorOption {
	return func(t *Translator) {
		if d > 0 {
			t.attemptTimeout = d
		}
	}
}

// WithCache sets a result cache. Without one, every call walks the chain
// from the first provider.
func WithCache(cache TranslationCache) TranslatorOption {
	return func(t *Translator) {
		t.cache = cache
	}
}

// WithProcessor registers a content processor.
func WithProcessor(processor ContentProcessor) TranslatorOption {
	return func(t *Translator) {
		t.processors[processor.ContentType()] = processor
	}
}

// WithConcurrency sets how many texts TranslateBatch works on at once.
func WithConcurrency(n int) TranslatorOption {
	return func(t *Translator) {
		if n > 0 {
			t.concurrency = n
		}
	}
}

// NewTranslator creates a Translator over providers, tried in the given order.
func NewTranslator(providers []Provider, opts ...TranslatorOption) *Translator {
	t := &Translator{
		attemptTimeout: DefaultAttemptTimeout,
		processors:     make(map[string]ContentProcessor),
		concurrency:    4,
	}

	for _, opt := range opts {
		opt(t)
	}

	if t.logger == nil {
		t.logger = logrus.New()
	}
	if t.client == nil {
		t.client = NewHTTPClient(HTTPConfig{RequestTimeout: t.attemptTimeout})
	}

	t.chain = NewChain(t.client, t.logger, providers...)
	t.chain.attemptTimeout = t.attemptTimeout

	return t
}

// Translate translates text into targetLang.
//
// Errors are *ValidationError for blank input (no provider is contacted),
// *NoProviderAvailableError or *ProviderTransportError when the chain is
// exhausted, or the context error if ctx is cancelled.
func (t *Translator) Translate(ctx context.Context, text, targetLang string) (*Result, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &ValidationError{Reason: "empty text"}
	}
	lang := strings.TrimSpace(targetLang)
	if lang == "" {
		return nil, &ValidationError{Reason: "empty target language"}
	}

	cacheKey := CacheKey(HashText(text), lang)
	if cached, ok := t.cacheGet(cacheKey); ok {
		return cached, nil
	}

	out, err := t.chain.Run(ctx, Request{Text: text, TargetLang: lang})
	if err != nil {
		t.logger.WithError(err).WithField("target_lang", lang).Error("Translation failed")
		return nil, err
	}

	result := &Result{
		TranslatedText: out.Translation,
		Pronunciation:  pronounce(out, lang),
		Provider:       out.Provider,
	}

	t.cacheSet(cacheKey, result)
	return result, nil
}

// pronounce picks the provider's romanization or derives one. Targets the
// engine cannot romanize never get a pronunciation.
func pronounce(out Outcome, lang string) *string {
	if !transliterate.Supported(lang) {
		return nil
	}
	if out.Pronunciation != "" {
		p := out.Pronunciation
		return &p
	}
	if p, ok := transliterate.Romanize(out.Translation, lang); ok {
		return &p
	}
	return nil
}

func (t *Translator) cacheGet(key string) (*Result, bool) {
	if t.cache == nil {
		return nil, false
	}
	raw, ok := t.cache.Get(key)
	if !ok {
		return nil, false
	}

	var result Result
	if err := json.Unmarshal([]byte(raw), &result); err != nil || strings.TrimSpace(result.TranslatedText) == "" {
		t.logger.WithField("key", key).Debug("Ignoring unreadable cache entry")
		return nil, false
	}
	return &result, true
}

func (t *Translator) cacheSet(key string, result *Result) {
	if t.cache == nil {
		return
	}
	data, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := t.cache.Set(key, string(data)); err != nil {
		t.logger.WithError(&CacheError{Message: "store translation", Cause: err}).Warn("Cache write failed")
	}
}

// TranslateHTML translates the text nodes of an HTML document or fragment.
// Nodes whose translation fails keep their original text and are counted in
// FailedCount; the call only fails if no node could be translated.
func (t *Translator) TranslateHTML(ctx context.Context, content, targetLang string) (*ProcessedContent, error) {
	return t.Process(ctx, content, "html", targetLang)
}

// Process translates content of the specified type.
func (t *Translator) Process(ctx context.Context, content, contentType, targetLang string) (*ProcessedContent, error) {
	lang := strings.TrimSpace(targetLang)
	if lang == "" {
		return nil, &ValidationError{Reason: "empty target language"}
	}

	processor, ok := t.processors[contentType]
	if !ok {
		return nil, &ProcessorError{
			Message:     "no processor registered for content type",
			ContentType: contentType,
		}
	}

	parsed, nodes, err := processor.Extract(content)
	if err != nil {
		return nil, err
	}

	if len(nodes) == 0 {
		return &ProcessedContent{Content: content}, nil
	}

	texts := make([]string, len(nodes))
	for i, node := range nodes {
		texts[i] = node.Text
	}

	translations := make(map[string]string, len(nodes))
	var firstErr error
	failed := 0
	for _, item := range t.TranslateBatch(ctx, texts, lang) {
		if item.Err != nil {
			failed++
			if firstErr == nil {
				firstErr = item.Err
			}
			continue
		}
		translations[nodes[item.Index].Hash] = item.Result.TranslatedText
	}

	if len(translations) == 0 {
		return nil, firstErr
	}

	result, err := processor.Apply(parsed, nodes, translations)
	if err != nil {
		return nil, err
	}

	if contentType == "html" && isHTMLDocument(result) {
		result = setHTMLAttributes(result, lang)
	}

	return &ProcessedContent{
		Content:         result,
		TranslatedCount: len(translations),
		FailedCount:     failed,
		TotalNodes:      len(nodes),
	}, nil
}

// isHTMLDocument reports whether content has its own <html> element.
// Fragments are returned without one.
func isHTMLDocument(content string) bool {
	return strings.Contains(strings.ToLower(content), "<html")
}

// setHTMLAttributes sets lang and dir attributes on the <html> tag.
func setHTMLAttributes(html, lang string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return html
	}

	htmlTag := doc.Find("html")
	if htmlTag.Length() > 0 {
		htmlTag.SetAttr("lang", ToHTMLLang(lang))
		htmlTag.SetAttr("dir", GetDirection(lang))
	}

	result, err := doc.Html()
	if err != nil {
		return html
	}

	return result
}

// Providers returns the provider chain in priority order.
func (t *Translator) Providers() []Provider {
	return t.chain.Providers()
}
