package linguachain

import (
	"net/http"
	"strings"
)

// OutcomeStatus tells the chain what to do after an attempt.
type OutcomeStatus int

const (
	// OutcomeSuccess stops the chain and returns the translation.
	OutcomeSuccess OutcomeStatus = iota
	// OutcomeSoftFailure moves on to the next provider.
	OutcomeSoftFailure
	// OutcomeHardFailure aborts the chain (the caller went away).
	OutcomeHardFailure
)

func (s OutcomeStatus) String() string {
	switch s {
	case OutcomeSuccess:
		return "success"
	case OutcomeSoftFailure:
		return "soft_failure"
	case OutcomeHardFailure:
		return "hard_failure"
	default:
		return "unknown"
	}
}

// Response is the raw reply handed to a provider's extractor.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// OK reports whether the status code is 2xx.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Outcome is the explicit result of one provider attempt.
type Outcome struct {
	Status        OutcomeStatus
	Translation   string
	Pronunciation string // native romanization, if the provider returned one
	Provider      string // set by the chain on success

	// Failure details, set for soft and hard failures.
	Kind    FailureKind
	Message string
	Err     error
}

// Succeeded builds a success outcome. A blank translation is not a success
// and is turned into an empty-result soft failure.
func Succeeded(translation, pronunciation string) Outcome {
	translation = strings.TrimSpace(translation)
	if translation == "" {
		return SoftFail(FailureEmpty, "blank translation", nil)
	}
	return Outcome{
		Status:        OutcomeSuccess,
		Translation:   translation,
		Pronunciation: strings.TrimSpace(pronunciation),
	}
}

// SoftFail builds an outcome that lets the chain fall through.
func SoftFail(kind FailureKind, message string, cause error) Outcome {
	return Outcome{
		Status:  OutcomeSoftFailure,
		Kind:    kind,
		Message: message,
		Err:     cause,
	}
}

func hardFail(cause error) Outcome {
	return Outcome{
		Status:  OutcomeHardFailure,
		Message: "caller cancelled",
		Err:     cause,
	}
}
