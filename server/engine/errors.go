package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrInsufficientBalance is returned by any bet-increasing action the
	// balance gateway cannot cover. No state is mutated.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrInvalidAction is returned when an action's preconditions (phase,
	// card count, matching ranks, split cap, seat capacity) do not hold.
	// No state is mutated.
	ErrInvalidAction = errors.New("invalid action")

	// ErrGateway wraps a failed balance or history call. The action that
	// triggered it is treated as not having happened, except at
	// settlement where computed outcomes stand and reconciliation is the
	// caller's problem.
	ErrGateway = errors.New("gateway failure")
)

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidAction}, args...)...)
}

// gatewayErr classifies an error coming back from a gateway call:
// insufficient funds passes through as-is, anything else is a gateway
// failure.
func gatewayErr(err error) error {
	if errors.Is(err, ErrInsufficientBalance) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrGateway, err)
}
