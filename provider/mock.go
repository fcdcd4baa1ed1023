package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/ZaguanLabs/linguachain"
)

// MockProvider is a provider for testing. It sends a GET to
// http://{Host}/translate and reads a flat {"translatedText": ...} reply, so
// it pairs with StubTransport.
type MockProvider struct {
	ProviderName string
	Host         string
	ProviderTier linguachain.Tier

	mu       sync.Mutex
	requests []Request
}

// NewMockProvider creates a mock provider answering on host.
func NewMockProvider(name, host string) *MockProvider {
	return &MockProvider{
		ProviderName: name,
		Host:         host,
		ProviderTier: linguachain.TierSecondary,
	}
}

func (m *MockProvider) Name() string { return m.ProviderName }

func (m *MockProvider) Tier() linguachain.Tier { return m.ProviderTier }

func (m *MockProvider) BuildRequest(ctx context.Context, req Request) (*http.Request, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	q := url.Values{}
	q.Set("q", req.Text)
	q.Set("target", req.TargetLang)
	return http.NewRequestWithContext(ctx, http.MethodGet, "http://"+m.Host+"/translate?"+q.Encode(), nil)
}

func (m *MockProvider) Extract(resp *Response) Outcome {
	if !resp.OK() {
		return linguachain.SoftFail(linguachain.FailureProtocol, fmt.Sprintf("unexpected status %d", resp.StatusCode), nil)
	}
	translation, ok := ExtractFlat(resp.Body)
	if !ok {
		return linguachain.SoftFail(linguachain.FailureParse, "no translation", nil)
	}
	return linguachain.Succeeded(translation, "")
}

// Requests returns the requests built so far.
func (m *MockProvider) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Request, len(m.requests))
	copy(out, m.requests)
	return out
}

// Reset clears the recorded requests.
func (m *MockProvider) Reset() {
	m.mu.Lock()
	m.requests = nil
	m.mu.Unlock()
}

// StubReply is the canned answer for one host.
type StubReply struct {
	Status int           // default: 200
	Body   string
	Err    error         // returned instead of a response when set
	Delay  time.Duration // wait before answering; honours request cancellation
}

// StubTransport is an http.RoundTripper answering from canned replies keyed
// by host. Hosts without a reply fail like an unreachable server.
type StubTransport struct {
	Replies map[string]StubReply

	mu    sync.Mutex
	hosts []string
}

// NewStubTransport creates a transport with the given replies.
func NewStubTransport(replies map[string]StubReply) *StubTransport {
	return &StubTransport{Replies: replies}
}

// Client returns an *http.Client using the stub.
func (s *StubTransport) Client() *http.Client {
	return &http.Client{Transport: s}
}

func (s *StubTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	s.mu.Lock()
	s.hosts = append(s.hosts, req.URL.Host)
	reply, ok := s.Replies[req.URL.Host]
	s.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("dial tcp %s: connection refused", req.URL.Host)
	}

	if reply.Delay > 0 {
		timer := time.NewTimer(reply.Delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-req.Context().Done():
			return nil, req.Context().Err()
		}
	}

	if reply.Err != nil {
		return nil, reply.Err
	}

	status := reply.Status
	if status == 0 {
		status = http.StatusOK
	}
	return &http.Response{
		StatusCode: status,
		Status:     fmt.Sprintf("%d %s", status, http.StatusText(status)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(reply.Body)),
		Request:    req,
	}, nil
}

// Hosts returns the hosts contacted so far, in call order.
func (s *StubTransport) Hosts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.hosts))
	copy(out, s.hosts)
	return out
}

var _ Provider = (*MockProvider)(nil)
var _ http.RoundTripper = (*StubTransport)(nil)
