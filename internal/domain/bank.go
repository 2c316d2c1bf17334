package domain

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// BankSpec catalog entry for a bank.
type BankSpec struct {
	Name         string
	InterestRate decimal.Decimal
	// MinimumFirstDeposit zero means no minimum.
	MinimumFirstDeposit int
}

// Validate checks 0 < rate < 1 and a non-negative minimum.
func (s BankSpec) Validate() error {
	if s.Name == "" {
		return errors.Wrap(ErrInvalidParameter, "bank name is required")
	}
	if s.InterestRate.LessThanOrEqual(decimal.Zero) || s.InterestRate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return errors.Wrapf(ErrInvalidParameter, "%s: interest rate must be in (0, 1), got %s", s.Name, s.InterestRate.String())
	}
	if s.MinimumFirstDeposit < 0 {
		return errors.Wrapf(ErrInvalidParameter, "%s: minimum deposit must not be negative, got %d", s.Name, s.MinimumFirstDeposit)
	}
	return nil
}

// DepositStatus outcome of a deposit attempt.
type DepositStatus string

const (
	// DepositAccepted funds were credited.
	DepositAccepted DepositStatus = "accepted"
	// DepositBelowMinimum first deposit was declined.
	DepositBelowMinimum DepositStatus = "below_minimum"
)

// DepositResult is returned for every well-formed deposit attempt.
type DepositResult struct {
	Status  DepositStatus
	Amount  int
	Balance int
	Minimum int
}

// Accepted reports whether the deposit was credited.
func (r DepositResult) Accepted() bool {
	return r.Status == DepositAccepted
}

// Err returns ErrDepositBelowMinimum for a declined deposit, nil otherwise.
func (r DepositResult) Err() error {
	if r.Status == DepositBelowMinimum {
		return errors.Wrapf(ErrDepositBelowMinimum, "amount %d is under the first deposit minimum %d", r.Amount, r.Minimum)
	}
	return nil
}

// Bank holds deposited money for a single venue across the whole game.
type Bank struct {
	name                 string
	interestRate         decimal.Decimal
	balance              int
	minimumFirstDeposit  int
	hasTakenFirstDeposit bool
}

// NewBank creates an empty bank from its catalog entry.
func NewBank(spec BankSpec) (*Bank, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &Bank{
		name:                spec.Name,
		interestRate:        spec.InterestRate,
		minimumFirstDeposit: spec.MinimumFirstDeposit,
	}, nil
}

// String returns a human-readable string representation.
func (b *Bank) String() string {
	return fmt.Sprintf("%s (%s%%)", b.name, b.interestRate.Mul(decimal.NewFromInt(100)).String())
}

// Name returns the bank name.
func (b *Bank) Name() string { return b.name }

// Balance returns deposited funds.
func (b *Bank) Balance() int { return b.balance }

// InterestRate returns the per-turn rate.
func (b *Bank) InterestRate() decimal.Decimal { return b.interestRate }

// MinimumFirstDeposit returns the configured threshold, zero when none.
func (b *Bank) MinimumFirstDeposit() int { return b.minimumFirstDeposit }

// HasTakenFirstDeposit reports whether the minimum no longer applies.
func (b *Bank) HasTakenFirstDeposit() bool { return b.hasTakenFirstDeposit }

// Deposit credits amount. The first deposit must meet the minimum; once it
// has, later deposits of any size are accepted.
func (b *Bank) Deposit(amount int) (DepositResult, error) {
	if amount <= 0 {
		return DepositResult{}, errors.Wrapf(ErrInvalidParameter, "deposit amount must be positive, got %d", amount)
	}
	if !b.hasTakenFirstDeposit && b.minimumFirstDeposit > 0 && amount < b.minimumFirstDeposit {
		return DepositResult{
			Status:  DepositBelowMinimum,
			Amount:  amount,
			Balance: b.balance,
			Minimum: b.minimumFirstDeposit,
		}, nil
	}

	b.hasTakenFirstDeposit = true
	b.balance += amount

	return DepositResult{
		Status:  DepositAccepted,
		Amount:  amount,
		Balance: b.balance,
		Minimum: b.minimumFirstDeposit,
	}, nil
}

// Withdraw removes amount and returns it. Zero means the withdrawal was refused.
func (b *Bank) Withdraw(amount int) int {
	if amount <= 0 || amount > b.balance {
		return 0
	}
	b.balance -= amount
	return amount
}

// CompoundInterest adds floor(balance × rate) and returns the interest paid.
func (b *Bank) CompoundInterest() int {
	interest := decimal.NewFromInt(int64(b.balance)).Mul(b.interestRate).Floor().IntPart()
	b.balance += int(interest)
	return int(interest)
}
