package domain

import (
	"fmt"

	"github.com/pkg/errors"
)

// InventoryLine player-held quantity of one commodity.
type InventoryLine struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// String returns a human-readable string representation.
func (l InventoryLine) String() string {
	return fmt.Sprintf("%s: %d", l.Name, l.Quantity)
}

// InventoryLedger tracks what the player carries. Lines keep insertion order
// and a line never survives with zero quantity.
type InventoryLedger struct {
	lines []InventoryLine
}

// NewInventoryLedger creates an empty ledger.
func NewInventoryLedger() *InventoryLedger {
	return &InventoryLedger{lines: make([]InventoryLine, 0)}
}

func (l *InventoryLedger) index(name string) int {
	for i := range l.lines {
		if l.lines[i].Name == name {
			return i
		}
	}
	return -1
}

// Add merges qty into the named line, creating it if needed.
func (l *InventoryLedger) Add(name string, qty int) error {
	if qty <= 0 {
		return errors.Wrapf(ErrInvalidParameter, "add %s: quantity must be positive, got %d", name, qty)
	}
	if i := l.index(name); i >= 0 {
		l.lines[i].Quantity += qty
		return nil
	}
	l.lines = append(l.lines, InventoryLine{Name: name, Quantity: qty})
	return nil
}

// Remove takes qty units of name at unitPrice each and returns the proceeds.
// A zero unit price is accepted for forced removals. Nothing changes on error.
func (l *InventoryLedger) Remove(name string, qty, unitPrice int) (int, error) {
	i := l.index(name)
	if i < 0 {
		return 0, errors.Wrapf(ErrUnknownCommodity, "%s is not in inventory", name)
	}
	if qty <= 0 || qty > l.lines[i].Quantity {
		return 0, errors.Wrapf(ErrInsufficientQuantity, "remove %s: requested %d, held %d", name, qty, l.lines[i].Quantity)
	}
	if unitPrice < 0 {
		return 0, errors.Wrapf(ErrInvalidParameter, "remove %s: negative unit price %d", name, unitPrice)
	}

	l.lines[i].Quantity -= qty
	if l.lines[i].Quantity == 0 {
		l.lines = append(l.lines[:i], l.lines[i+1:]...)
	}
	return qty * unitPrice, nil
}

// Confiscate removes qty units without proceeds.
func (l *InventoryLedger) Confiscate(name string, qty int) error {
	_, err := l.Remove(name, qty, 0)
	return err
}

// Quantity returns the held quantity of name, zero when absent.
func (l *InventoryLedger) Quantity(name string) int {
	if i := l.index(name); i >= 0 {
		return l.lines[i].Quantity
	}
	return 0
}

// Has reports whether name is held.
func (l *InventoryLedger) Has(name string) bool {
	return l.index(name) >= 0
}

// Lines returns a copy of all lines in insertion order.
func (l *InventoryLedger) Lines() []InventoryLine {
	out := make([]InventoryLine, len(l.lines))
	copy(out, l.lines)
	return out
}

// Len number of held lines.
func (l *InventoryLedger) Len() int {
	return len(l.lines)
}

// IsEmpty checks if nothing is held.
func (l *InventoryLedger) IsEmpty() bool {
	return len(l.lines) == 0
}
