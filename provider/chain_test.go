package provider

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/ZaguanLabs/linguachain"
	"github.com/sirupsen/logrus"
)

const (
	keyRequiredBody = `{"error":"Visit https://portal.libretranslate.com to get an API key"}`
	emptyMatchBody  = `{"responseData":{"translatedText":""},"matches":[]}`
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func testConfig() Config {
	return Config{
		GoogleURL:          "http://google.test",
		LibreTranslateURLs: []string{"http://lt1.test", "http://lt2.test"},
		MyMemoryURL:        "http://mm.test",
	}
}

func newTestTranslator(stub *StubTransport, opts ...linguachain.TranslatorOption) *linguachain.Translator {
	opts = append([]linguachain.TranslatorOption{
		linguachain.WithHTTPClient(stub.Client()),
		linguachain.WithLogger(quietLogger()),
	}, opts...)
	return linguachain.NewTranslator(NewChainProviders(testConfig()), opts...)
}

func equalHosts(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestChain_FallsThroughToSecondary(t *testing.T) {
	stub := NewStubTransport(map[string]StubReply{
		"google.test": {Err: errors.New("i/o timeout")},
		"lt1.test":    {Status: 400, Body: keyRequiredBody},
		"lt2.test":    {Body: `{"translatedText":"Hola"}`},
		"mm.test":     {Body: `{"responseData":{"translatedText":"NO"}}`},
	})

	result, err := newTestTranslator(stub).Translate(context.Background(), "Hello", "es")
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if result.TranslatedText != "Hola" {
		t.Errorf("TranslatedText = %q, want %q", result.TranslatedText, "Hola")
	}
	if result.Provider != "libretranslate:lt2.test" {
		t.Errorf("Provider = %q", result.Provider)
	}
	if result.Pronunciation != nil {
		t.Errorf("Pronunciation = %q, want nil for es", *result.Pronunciation)
	}

	want := []string{"google.test", "lt1.test", "lt2.test"}
	if got := stub.Hosts(); !equalHosts(got, want) {
		t.Errorf("hosts = %v, want %v", got, want)
	}
}

func TestChain_PrimaryWins(t *testing.T) {
	stub := NewStubTransport(map[string]StubReply{
		"google.test": {Body: `[[["Hola","Hello",null,null,10]],null,"en"]`},
	})

	result, err := newTestTranslator(stub).Translate(context.Background(), "Hello", "es")
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if result.TranslatedText != "Hola" || result.Provider != "google" {
		t.Errorf("result = %+v", result)
	}
	if got := stub.Hosts(); len(got) != 1 {
		t.Errorf("hosts = %v, want only the primary", got)
	}
}

func TestChain_TeluguPronunciation(t *testing.T) {
	stub := NewStubTransport(map[string]StubReply{
		"google.test": {Body: `[[["హలో","Hello",null,null,10]],null,"en"]`},
	})

	result, err := newTestTranslator(stub).Translate(context.Background(), "Hello", "te")
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if result.TranslatedText != "హలో" {
		t.Errorf("TranslatedText = %q", result.TranslatedText)
	}
	if result.Pronunciation == nil || *result.Pronunciation != "halo" {
		t.Errorf("Pronunciation = %v, want %q", result.Pronunciation, "halo")
	}
}

func TestChain_ProviderPronunciationPreferred(t *testing.T) {
	stub := NewStubTransport(map[string]StubReply{
		"google.test": {Body: `[[["నమస్తే","Hello",null,null,10],[null,null,"namastē"]],null,"en"]`},
	})

	result, err := newTestTranslator(stub).Translate(context.Background(), "Hello", "te")
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if result.Pronunciation == nil || *result.Pronunciation != "namastē" {
		t.Errorf("Pronunciation = %v, want %q", result.Pronunciation, "namastē")
	}
}

func TestChain_UnsupportedLanguageDropsPronunciation(t *testing.T) {
	stub := NewStubTransport(map[string]StubReply{
		"google.test": {Body: `[[["Привет","Hello",null,null,10],[null,null,"Privet"]],null,"en"]`},
	})

	result, err := newTestTranslator(stub).Translate(context.Background(), "Hello", "ru")
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if result.Pronunciation != nil {
		t.Errorf("Pronunciation = %q, want nil for ru", *result.Pronunciation)
	}
}

func TestChain_SecondaryTeluguGetsRomanized(t *testing.T) {
	stub := NewStubTransport(map[string]StubReply{
		"google.test": {Status: 503},
		"lt1.test":    {Body: `{"translatedText":"నమస్తే"}`},
	})

	result, err := newTestTranslator(stub).Translate(context.Background(), "Hello", "te")
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if result.Pronunciation == nil || *result.Pronunciation != "namaste" {
		t.Errorf("Pronunciation = %v, want %q", result.Pronunciation, "namaste")
	}
}

func TestChain_TertiaryBestMatch(t *testing.T) {
	stub := NewStubTransport(map[string]StubReply{
		"google.test": {Status: 429},
		"lt1.test":    {Body: keyRequiredBody},
		"lt2.test":    {Status: 502},
		"mm.test": {Body: `{"responseData":{"translatedText":""},"matches":[` +
			`{"translation":"a","quality":"50"},{"translation":"b","quality":"90"},{"translation":"c","quality":"90"}]}`},
	})

	result, err := newTestTranslator(stub).Translate(context.Background(), "Hello", "es")
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if result.TranslatedText != "b" || result.Provider != "mymemory" {
		t.Errorf("result = %+v, want b from mymemory", result)
	}
}

func TestChain_MarkerWordsInTranslationsStillSucceed(t *testing.T) {
	stub := NewStubTransport(map[string]StubReply{
		"google.test": {Status: 500},
		"lt1.test":    {Status: 500},
		"lt2.test":    {Body: `{"translatedText":"Get an API key from your admin"}`},
		"mm.test":     {Body: `{"responseData":{"translatedText":"NO"}}`},
	})

	result, err := newTestTranslator(stub).Translate(context.Background(), "Ask your admin for a key", "en")
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if result.Provider != "libretranslate:lt2.test" {
		t.Errorf("Provider = %q, a translation mentioning an API key is still a translation", result.Provider)
	}

	stub = NewStubTransport(map[string]StubReply{
		"google.test": {Status: 500},
		"lt1.test":    {Status: 500},
		"lt2.test":    {Status: 500},
		"mm.test":     {Body: `{"responseData":{"translatedText":"Hola"},"matches":[{"translation":"mymemory warning demo","quality":0.1}]}`},
	})

	result, err = newTestTranslator(stub).Translate(context.Background(), "Hello", "es")
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if result.TranslatedText != "Hola" || result.Provider != "mymemory" {
		t.Errorf("result = %+v, want Hola from mymemory", result)
	}
}

func TestChain_Exhausted(t *testing.T) {
	stub := NewStubTransport(map[string]StubReply{
		"google.test": {Err: errors.New("i/o timeout")},
		"lt1.test":    {Body: keyRequiredBody},
		"lt2.test":    {Status: 403, Body: keyRequiredBody},
		"mm.test":     {Body: emptyMatchBody},
	})

	_, err := newTestTranslator(stub).Translate(context.Background(), "Hello", "es")

	var noProvider *linguachain.NoProviderAvailableError
	if !errors.As(err, &noProvider) {
		t.Fatalf("error = %v, want NoProviderAvailableError", err)
	}
	var transport *linguachain.ProviderTransportError
	if errors.As(err, &transport) {
		t.Error("mixed failures should not be reported as a transport error")
	}

	wantKinds := []linguachain.FailureKind{
		linguachain.FailureTransport,
		linguachain.FailureQuota,
		linguachain.FailureQuota,
		linguachain.FailureEmpty,
	}
	if len(noProvider.Attempts) != len(wantKinds) {
		t.Fatalf("attempts = %d, want %d", len(noProvider.Attempts), len(wantKinds))
	}
	for i, a := range noProvider.Attempts {
		if a.Err.Kind != wantKinds[i] {
			t.Errorf("attempt %d (%s) kind = %q, want %q", i, a.Provider, a.Err.Kind, wantKinds[i])
		}
	}
}

func TestChain_AllTransportFailures(t *testing.T) {
	stub := NewStubTransport(nil)

	_, err := newTestTranslator(stub).Translate(context.Background(), "Hello", "es")

	var transport *linguachain.ProviderTransportError
	if !errors.As(err, &transport) {
		t.Fatalf("error = %v, want ProviderTransportError", err)
	}
	var noProvider *linguachain.NoProviderAvailableError
	if !errors.As(err, &noProvider) {
		t.Error("ProviderTransportError should unwrap to NoProviderAvailableError")
	}
	if len(stub.Hosts()) != 4 {
		t.Errorf("hosts = %v, want every provider tried", stub.Hosts())
	}
}

func TestChain_AttemptTimeout(t *testing.T) {
	stub := NewStubTransport(map[string]StubReply{
		"google.test": {Delay: time.Second, Body: `[[["tarde","late"]]]`},
		"lt1.test":    {Body: `{"translatedText":"Hola"}`},
	})

	tr := newTestTranslator(stub, linguachain.WithAttemptTimeout(50*time.Millisecond))
	result, err := tr.Translate(context.Background(), "Hello", "es")
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if result.TranslatedText != "Hola" {
		t.Errorf("TranslatedText = %q, want the secondary's answer", result.TranslatedText)
	}
}

func TestChain_CallerCancellation(t *testing.T) {
	stub := NewStubTransport(map[string]StubReply{
		"google.test": {Delay: time.Second},
		"lt1.test":    {Body: `{"translatedText":"Hola"}`},
	})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err := newTestTranslator(stub).Translate(ctx, "Hello", "es")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("error = %v, want context deadline", err)
	}
	if got := stub.Hosts(); len(got) != 1 {
		t.Errorf("hosts = %v, want the chain to stop after cancellation", got)
	}
}

func TestChain_ValidationSkipsNetwork(t *testing.T) {
	stub := NewStubTransport(nil)
	tr := newTestTranslator(stub)

	for _, tc := range []struct{ text, lang string }{{"", "es"}, {"   ", "es"}, {"Hello", ""}, {"Hello", "  "}} {
		_, err := tr.Translate(context.Background(), tc.text, tc.lang)
		var verr *linguachain.ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("Translate(%q, %q) error = %v, want ValidationError", tc.text, tc.lang, err)
		}
	}
	if len(stub.Hosts()) != 0 {
		t.Errorf("hosts = %v, want no network calls", stub.Hosts())
	}
}

func TestMockProvider_WithStub(t *testing.T) {
	stub := NewStubTransport(map[string]StubReply{
		"a.test": {Status: 500},
		"b.test": {Body: `{"translation":["Hallo"]}`},
	})
	a := NewMockProvider("a", "a.test")
	b := NewMockProvider("b", "b.test")

	chain := linguachain.NewChain(stub.Client(), quietLogger(), a, b)
	out, err := chain.Run(context.Background(), Request{Text: "Hello", TargetLang: "de"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if out.Translation != "Hallo" || out.Provider != "b" {
		t.Errorf("outcome = %+v", out)
	}
	if len(a.Requests()) != 1 || len(b.Requests()) != 1 {
		t.Errorf("requests = %d, %d; want one each", len(a.Requests()), len(b.Requests()))
	}

	a.Reset()
	if len(a.Requests()) != 0 {
		t.Error("Reset() should clear recorded requests")
	}
}
