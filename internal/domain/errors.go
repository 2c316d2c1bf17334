package domain

import "github.com/pkg/errors"

// Error kinds returned by core operations. Callers classify with errors.Is.
var (
	// ErrInvalidParameter non-positive price, jitter, quantity or amount.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrUnknownCommodity name is not offered this turn or not held.
	ErrUnknownCommodity = errors.New("unknown commodity")
	// ErrInsufficientQuantity requested quantity exceeds what is available.
	ErrInsufficientQuantity = errors.New("insufficient quantity")
	// ErrInsufficientFunds purchase exceeds wallet balance.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrDepositBelowMinimum first deposit is under the bank's threshold.
	ErrDepositBelowMinimum = errors.New("deposit below minimum")
)
