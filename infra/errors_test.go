package infra

import (
	"context"
	"errors"
	"testing"
)

func TestIsRetriable(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil", nil, false},
		{"timeout", NewTimeoutError(context.DeadlineExceeded), true},
		{"network", NewNetworkError(errors.New("connection refused")), true},
		{"other", errors.New("message too large"), false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsRetriable(tc.err); got != tc.expected {
				t.Fatalf("expected %v, got %v", tc.expected, got)
			}
		})
	}
}

func TestClassifiedErrorsKeepCause(t *testing.T) {
	err := NewTimeoutError(context.DeadlineExceeded)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected cause to be kept, got %v", err)
	}
	if err.Error() != "broker timed out: context deadline exceeded" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}
