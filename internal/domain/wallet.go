package domain

import "github.com/pkg/errors"

// Wallet player cash. Balance never goes below zero.
type Wallet struct {
	balance int
}

// NewWallet creates a wallet with the given opening balance.
func NewWallet(balance int) (*Wallet, error) {
	if balance < 0 {
		return nil, errors.Wrapf(ErrInvalidParameter, "opening balance must not be negative, got %d", balance)
	}
	return &Wallet{balance: balance}, nil
}

// Balance returns current cash.
func (w *Wallet) Balance() int {
	return w.balance
}

// Credit adds amount.
func (w *Wallet) Credit(amount int) error {
	if amount < 0 {
		return errors.Wrapf(ErrInvalidParameter, "credit amount must not be negative, got %d", amount)
	}
	w.balance += amount
	return nil
}

// Debit subtracts amount, failing without mutation if it exceeds the balance.
func (w *Wallet) Debit(amount int) error {
	if amount < 0 {
		return errors.Wrapf(ErrInvalidParameter, "debit amount must not be negative, got %d", amount)
	}
	if amount > w.balance {
		return errors.Wrapf(ErrInsufficientFunds, "have %d need %d", w.balance, amount)
	}
	w.balance -= amount
	return nil
}

// CanAfford reports whether amount can be debited.
func (w *Wallet) CanAfford(amount int) bool {
	return amount >= 0 && amount <= w.balance
}

// SetBalance overwrites the balance. Negative values are rejected and leave
// the balance unchanged.
func (w *Wallet) SetBalance(balance int) error {
	if balance < 0 {
		return errors.Wrapf(ErrInvalidParameter, "balance must not be negative, got %d", balance)
	}
	w.balance = balance
	return nil
}
