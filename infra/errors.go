package infra

import (
	"errors"
	"fmt"
)

// Broker failures worth another publish attempt. Anything else is final.
var (
	ErrTimeout = errors.New("broker timed out")
	ErrNetwork = errors.New("broker unreachable")
)

// NewTimeoutError tags cause as a timeout. The cause stays reachable through errors.As.
func NewTimeoutError(cause error) error {
	return fmt.Errorf("%w: %w", ErrTimeout, cause)
}

func NewNetworkError(cause error) error {
	return fmt.Errorf("%w: %w", ErrNetwork, cause)
}

func IsRetriable(err error) bool {
	return errors.Is(err, ErrTimeout) || errors.Is(err, ErrNetwork)
}
