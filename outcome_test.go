package linguachain

import (
	"errors"
	"testing"
)

func TestSucceeded(t *testing.T) {
	out := Succeeded("  Hola \n", " ola ")
	if out.Status != OutcomeSuccess || out.Translation != "Hola" || out.Pronunciation != "ola" {
		t.Errorf("Succeeded() = %+v", out)
	}

	blank := Succeeded(" \t", "ola")
	if blank.Status != OutcomeSoftFailure || blank.Kind != FailureEmpty {
		t.Errorf("Succeeded(blank) = %+v, want empty soft failure", blank)
	}
}

func TestSoftFail(t *testing.T) {
	cause := errors.New("boom")
	out := SoftFail(FailureParse, "bad body", cause)
	if out.Status != OutcomeSoftFailure || out.Kind != FailureParse || out.Message != "bad body" || out.Err != cause {
		t.Errorf("SoftFail() = %+v", out)
	}
}

func TestOutcomeStatus_String(t *testing.T) {
	tests := []struct {
		status OutcomeStatus
		want   string
	}{
		{OutcomeSuccess, "success"},
		{OutcomeSoftFailure, "soft_failure"},
		{OutcomeHardFailure, "hard_failure"},
		{OutcomeStatus(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("OutcomeStatus(%d).String() = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestResponse_OK(t *testing.T) {
	tests := []struct {
		code int
		want bool
	}{
		{200, true},
		{204, true},
		{299, true},
		{301, false},
		{403, false},
		{500, false},
	}
	for _, tt := range tests {
		if got := (&Response{StatusCode: tt.code}).OK(); got != tt.want {
			t.Errorf("Response{%d}.OK() = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestTier_String(t *testing.T) {
	tests := []struct {
		tier Tier
		want string
	}{
		{TierPrimary, "primary"},
		{TierSecondary, "secondary"},
		{TierTertiary, "tertiary"},
		{TierFallback, "fallback"},
	}
	for _, tt := range tests {
		if got := tt.tier.String(); got != tt.want {
			t.Errorf("Tier(%d).String() = %q, want %q", tt.tier, got, tt.want)
		}
	}
}
