// Package domain defines core data structures used throughout the game engine.
package domain

import (
	"fmt"

	"github.com/pkg/errors"
)

// priceFloorPercent price never drops below this share of the base price.
const priceFloorPercent = 15

// Surge skews a commodity's price and availability for a single turn.
type Surge string

const (
	// SurgeNone regular market.
	SurgeNone Surge = "none"
	// SurgeHigh prices spike, supply dries up.
	SurgeHigh Surge = "high"
	// SurgeLow prices crash, supply floods in.
	SurgeLow Surge = "low"
)

// String returns the string representation.
func (s Surge) String() string {
	return string(s)
}

// CommodityArchetype static parameters a commodity is generated from each turn.
type CommodityArchetype struct {
	Name      string `yaml:"name"`
	BasePrice int    `yaml:"base_price"`
	Jitter    int    `yaml:"jitter"`
}

// Validate checks the archetype can be used for generation.
func (a CommodityArchetype) Validate() error {
	if a.Name == "" {
		return errors.Wrap(ErrInvalidParameter, "commodity name is required")
	}
	if a.BasePrice <= 0 || a.Jitter <= 0 {
		return errors.Wrapf(ErrInvalidParameter, "%s: base price and jitter must be positive, got %d and %d",
			a.Name, a.BasePrice, a.Jitter)
	}
	return nil
}

// PriceFloor returns max(1, floor(0.15 × base price)).
func (a CommodityArchetype) PriceFloor() int {
	floor := a.BasePrice * priceFloorPercent / 100
	if floor < 1 {
		return 1
	}
	return floor
}

// Commodity one good offered in a city for the current turn.
// Only Quantity changes after generation.
type Commodity struct {
	Name      string
	BasePrice int
	Jitter    int
	Surge     Surge
	Price     int
	Quantity  int
}

// String returns a human-readable string representation.
func (c *Commodity) String() string {
	return fmt.Sprintf("%s price: %d", c.Name, c.Price)
}

// Take removes qty units from the offer.
func (c *Commodity) Take(qty int) error {
	if qty <= 0 || qty > c.Quantity {
		return errors.Wrapf(ErrInsufficientQuantity, "%s: requested %d, offered %d", c.Name, qty, c.Quantity)
	}
	c.Quantity -= qty
	return nil
}
