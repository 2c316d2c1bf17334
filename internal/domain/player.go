package domain

import (
	"fmt"

	"github.com/pkg/errors"
)

// Player cash, inventory and at most one held weapon.
type Player struct {
	Name   string
	Wallet *Wallet
	Ledger *InventoryLedger
	Weapon *Weapon
}

// NewPlayer creates a player with an empty inventory.
func NewPlayer(name string, cash int) (*Player, error) {
	wallet, err := NewWallet(cash)
	if err != nil {
		return nil, errors.Wrap(err, "create wallet")
	}
	return &Player{
		Name:   name,
		Wallet: wallet,
		Ledger: NewInventoryLedger(),
	}, nil
}

// String returns a human-readable string representation.
func (p *Player) String() string {
	return fmt.Sprintf("%s: %d", p.Name, p.Wallet.Balance())
}

// Arm replaces the held weapon.
func (p *Player) Arm(w Weapon) {
	p.Weapon = &w
}

// Disarm drops the held weapon and returns it.
func (p *Player) Disarm() *Weapon {
	w := p.Weapon
	p.Weapon = nil
	return w
}
