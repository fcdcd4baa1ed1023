package linguachain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// fakeProvider answers on http://{host}/ with a plain-text body. A
// Romanization response header is read as the provider's pronunciation.
type fakeProvider struct {
	name string
	host string
	tier Tier
}

func newFakeProvider(name string) *fakeProvider {
	return &fakeProvider{name: name, host: name + ".test", tier: TierSecondary}
}

func (p *fakeProvider) Name() string { return p.name }
func (p *fakeProvider) Tier() Tier   { return p.tier }

func (p *fakeProvider) BuildRequest(ctx context.Context, req Request) (*http.Request, error) {
	if req.Text == "unbuildable" {
		return nil, errors.New("cannot encode")
	}
	return http.NewRequestWithContext(ctx, http.MethodPost, "http://"+p.host+"/", strings.NewReader(req.Text))
}

func (p *fakeProvider) Extract(resp *Response) Outcome {
	if !resp.OK() {
		return SoftFail(FailureProtocol, fmt.Sprintf("unexpected status %d", resp.StatusCode), nil)
	}
	return Succeeded(string(resp.Body), resp.Header.Get("Romanization"))
}

// reply is the canned answer of one fake host. Body may contain %s, which is
// replaced by the request text.
type reply struct {
	status int
	body   string
	pron   string
	err    error
	delay  time.Duration
}

// hostTransport answers from canned replies keyed by host and counts calls.
type hostTransport struct {
	mu      sync.Mutex
	replies map[string]reply
	calls   []string
	texts   []string
}

func newHostTransport(replies map[string]reply) *hostTransport {
	return &hostTransport{replies: replies}
}

func (h *hostTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	var text string
	if req.Body != nil {
		data, _ := io.ReadAll(req.Body)
		text = string(data)
	}

	h.mu.Lock()
	h.calls = append(h.calls, req.URL.Host)
	h.texts = append(h.texts, text)
	r, ok := h.replies[req.URL.Host]
	h.mu.Unlock()

	if !ok {
		return nil, errors.New("connection refused")
	}
	if r.delay > 0 {
		select {
		case <-time.After(r.delay):
		case <-req.Context().Done():
			return nil, req.Context().Err()
		}
	}
	if r.err != nil {
		return nil, r.err
	}

	status := r.status
	if status == 0 {
		status = http.StatusOK
	}
	body := r.body
	if strings.Contains(body, "%s") {
		body = fmt.Sprintf(body, text)
	}
	header := http.Header{}
	if r.pron != "" {
		header.Set("Romanization", r.pron)
	}
	return &http.Response{
		StatusCode: status,
		Header:     header,
		Body:       io.NopCloser(strings.NewReader(body)),
		Request:    req,
	}, nil
}

func (h *hostTransport) client() *http.Client {
	return &http.Client{Transport: h}
}

func (h *hostTransport) hosts() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.calls))
	copy(out, h.calls)
	return out
}

func (h *hostTransport) callCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.calls)
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// mockCache is a map-backed TranslationCache.
type mockCache struct {
	mu   sync.Mutex
	data map[string]string
	err  error
}

func newMockCache() *mockCache {
	return &mockCache{data: make(map[string]string)}
}

func (c *mockCache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	return v, ok
}

func (c *mockCache) Set(key, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.data[key] = value
	return nil
}
