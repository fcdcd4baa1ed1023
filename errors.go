package linguachain

import (
	"fmt"
	"strings"
)

// ValidationError indicates the request was rejected before any provider was
// contacted.
type ValidationError struct {
	Reason string // "empty text" or "empty target language"
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s", e.Reason)
}

// FailureKind classifies why a single provider attempt did not produce a
// translation.
type FailureKind string

const (
	// FailureTransport covers timeouts, refused connections and TLS errors.
	FailureTransport FailureKind = "transport"
	// FailureProtocol covers unexpected HTTP status codes.
	FailureProtocol FailureKind = "protocol"
	// FailureQuota covers "API key required" and quota-exhausted bodies.
	FailureQuota FailureKind = "quota"
	// FailureParse covers bodies the extractor could not understand.
	FailureParse FailureKind = "parse"
	// FailureEmpty covers well-formed bodies with a blank translation.
	FailureEmpty FailureKind = "empty"
)

// ProviderError describes a failed attempt against one provider.
// It is recorded in the attempt list and never returned on its own.
type ProviderError struct {
	Provider string
	Kind     FailureKind
	Message  string
	Cause    error
}

func (e *ProviderError) Error() string {
	msg := fmt.Sprintf("provider error (%s, %s): %s", e.Provider, e.Kind, e.Message)
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// Attempt records the outcome of one provider call within a chain run.
type Attempt struct {
	Provider string
	Tier     Tier
	Err      *ProviderError
}

// NoProviderAvailableError is returned when every provider in the chain was
// tried and none produced a usable translation.
type NoProviderAvailableError struct {
	Attempts []Attempt
}

func (e *NoProviderAvailableError) Error() string {
	if len(e.Attempts) == 0 {
		return "no provider available: chain is empty"
	}
	return "no provider available: " + summarize(e.Attempts)
}

// ProviderTransportError is the form exhaustion takes when every attempt
// failed at the network level. It unwraps to *NoProviderAvailableError.
type ProviderTransportError struct {
	Attempts []Attempt
}

func (e *ProviderTransportError) Error() string {
	return "provider transport error: " + summarize(e.Attempts)
}

func (e *ProviderTransportError) Unwrap() error {
	return &NoProviderAvailableError{Attempts: e.Attempts}
}

func summarize(attempts []Attempt) string {
	parts := make([]string, 0, len(attempts))
	for _, a := range attempts {
		if a.Err == nil {
			parts = append(parts, a.Provider)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s (%s)", a.Provider, a.Err.Kind))
	}
	return strings.Join(parts, ", ")
}

// CacheError indicates a cache operation failure.
type CacheError struct {
	Message string
	Cause   error
}

func (e *CacheError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("cache error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("cache error: %s", e.Message)
}

func (e *CacheError) Unwrap() error {
	return e.Cause
}

// ProcessorError indicates a content processing failure (parse error, etc.).
type ProcessorError struct {
	Message     string
	Cause       error
	ContentType string // The type of content that failed to process
}

func (e *ProcessorError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("processor error (%s): %s: %v", e.ContentType, e.Message, e.Cause)
	}
	return fmt.Sprintf("processor error (%s): %s", e.ContentType, e.Message)
}

func (e *ProcessorError) Unwrap() error {
	return e.Cause
}
