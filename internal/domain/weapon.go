package domain

import (
	"slices"

	"github.com/pkg/errors"
)

// Weapon single-use countermeasure against some encounter kinds.
type Weapon struct {
	Name     string
	Price    int
	Counters []EncounterKind
}

// Validate checks the weapon has a name, a positive price and valid counters.
func (w Weapon) Validate() error {
	if w.Name == "" {
		return errors.Wrap(ErrInvalidParameter, "weapon name is required")
	}
	if w.Price <= 0 {
		return errors.Wrapf(ErrInvalidParameter, "%s: price must be positive, got %d", w.Name, w.Price)
	}
	for _, k := range w.Counters {
		if !k.IsValid() {
			return errors.Wrapf(ErrInvalidParameter, "%s: unknown encounter kind %q", w.Name, k)
		}
	}
	return nil
}

// Defeats reports whether the weapon neutralizes kind.
func (w *Weapon) Defeats(kind EncounterKind) bool {
	if w == nil {
		return false
	}
	return slices.Contains(w.Counters, kind)
}
