package linguachain

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// DefaultAttemptTimeout bounds a single provider call, body included.
	DefaultAttemptTimeout = 10 * time.Second

	// maxResponseBytes caps how much of a provider body is read.
	maxResponseBytes = 1 << 20
)

// Provider is one entry in the fallback chain. Implementations build the
// outbound request and interpret the reply; the chain performs the call.
type Provider interface {
	// Name identifies the provider in logs and errors.
	Name() string

	// Tier reports the provider's rank. It is informational; the chain only
	// follows list order.
	Tier() Tier

	// BuildRequest creates the HTTP request for req. It must not perform I/O.
	BuildRequest(ctx context.Context, req Request) (*http.Request, error)

	// Extract interprets a raw response. It must not panic on malformed input.
	Extract(resp *Response) Outcome
}

// Chain tries providers strictly in order and stops at the first success.
type Chain struct {
	providers      []Provider
	client         *http.Client
	logger         *logrus.Logger
	attemptTimeout time.Duration
}

// NewChain creates a chain over a copy of providers. A nil client gets
// NewHTTPClient(HTTPConfig{}); a nil logger gets logrus.New().
func NewChain(client *http.Client, logger *logrus.Logger, providers ...Provider) *Chain {
	if client == nil {
		client = NewHTTPClient(HTTPConfig{})
	}
	if logger == nil {
		logger = logrus.New()
	}

	list := make([]Provider, len(providers))
	copy(list, providers)

	return &Chain{
		providers:      list,
		client:         client,
		logger:         logger,
		attemptTimeout: DefaultAttemptTimeout,
	}
}

// Providers returns the provider list in priority order.
func (c *Chain) Providers() []Provider {
	list := make([]Provider, len(c.providers))
	copy(list, c.providers)
	return list
}

// Run executes the chain for req. On success the returned outcome carries the
// provider name. When every provider fails the error is a
// *NoProviderAvailableError, or a *ProviderTransportError if all of them
// failed at the network level. Cancellation of ctx aborts the chain with the
// context error.
func (c *Chain) Run(ctx context.Context, req Request) (Outcome, error) {
	attempts := make([]Attempt, 0, len(c.providers))

	for _, p := range c.providers {
		if err := ctx.Err(); err != nil {
			return Outcome{}, err
		}

		log := c.logger.WithFields(logrus.Fields{
			"provider":    p.Name(),
			"tier":        p.Tier().String(),
			"target_lang": req.TargetLang,
		})
		log.Debug("Trying translation provider")

		start := time.Now()
		out := c.attempt(ctx, p, req)
		elapsed := time.Since(start)

		switch out.Status {
		case OutcomeSuccess:
			out.Provider = p.Name()
			log.WithField("duration_ms", elapsed.Milliseconds()).Info("Translation provider succeeded")
			return out, nil

		case OutcomeHardFailure:
			log.WithError(out.Err).Debug("Translation chain aborted")
			return Outcome{}, out.Err

		default:
			perr := &ProviderError{
				Provider: p.Name(),
				Kind:     out.Kind,
				Message:  out.Message,
				Cause:    out.Err,
			}
			attempts = append(attempts, Attempt{Provider: p.Name(), Tier: p.Tier(), Err: perr})

			entry := log.WithFields(logrus.Fields{
				"kind":        out.Kind,
				"duration_ms": elapsed.Milliseconds(),
			})
			if out.Err != nil {
				entry = entry.WithError(out.Err)
			}
			entry.Warn("Translation provider failed, falling through: " + out.Message)
		}
	}

	return Outcome{}, exhausted(attempts)
}

// attempt performs exactly one outbound call for p.
func (c *Chain) attempt(ctx context.Context, p Provider, req Request) Outcome {
	attemptCtx, cancel := context.WithTimeout(ctx, c.attemptTimeout)
	defer cancel()

	httpReq, err := p.BuildRequest(attemptCtx, req)
	if err != nil {
		return SoftFail(FailureProtocol, "build request", err)
	}
	if httpReq.Header.Get("User-Agent") == "" {
		httpReq.Header.Set("User-Agent", UserAgent())
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return hardFail(ctx.Err())
		}
		return SoftFail(FailureTransport, "request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		if ctx.Err() != nil {
			return hardFail(ctx.Err())
		}
		return SoftFail(FailureTransport, "read body", err)
	}

	out := p.Extract(&Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	})

	// A provider that reports success must still hand back real text.
	if out.Status == OutcomeSuccess && strings.TrimSpace(out.Translation) == "" {
		return SoftFail(FailureEmpty, "blank translation", nil)
	}
	return out
}

func exhausted(attempts []Attempt) error {
	if len(attempts) == 0 {
		return &NoProviderAvailableError{}
	}
	for _, a := range attempts {
		if a.Err == nil || a.Err.Kind != FailureTransport {
			return &NoProviderAvailableError{Attempts: attempts}
		}
	}
	return &ProviderTransportError{Attempts: attempts}
}
