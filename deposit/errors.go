package deposit

import "errors"

// =============================================================================
// SENTINEL ERRORS - use with errors.Is()
// =============================================================================

var (
	// ErrUserNotFound is returned when the referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrDepositNotFound is returned when a referenced deposit does not exist.
	ErrDepositNotFound = errors.New("fixed deposit not found")

	// ErrDepositNotActive is returned when a lifecycle transition is applied
	// to a deposit that is not ACTIVE.
	ErrDepositNotActive = errors.New("fixed deposit is not active")

	// ErrNotYetMatured is returned when maturing a deposit before its
	// maturity date.
	ErrNotYetMatured = errors.New("fixed deposit has not reached maturity")

	// ErrInvalidAmount is returned for amounts below the booking minimum.
	ErrInvalidAmount = errors.New("invalid deposit amount")

	// ErrInvalidTenure is returned for a tenure below one month.
	ErrInvalidTenure = errors.New("invalid tenure")
)

// IsNotFound returns true if the error indicates a missing user or deposit.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrDepositNotFound)
}

// IsClientError returns true if the error is due to invalid client input or
// an impossible state transition, as opposed to an infrastructure failure.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrInvalidTenure) ||
		errors.Is(err, ErrDepositNotActive) ||
		errors.Is(err, ErrNotYetMatured)
}
