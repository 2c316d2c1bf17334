package domain

import (
	"fmt"

	"github.com/pkg/errors"
)

// CitySpec catalog entry for a city. Bank and Store may be empty.
type CitySpec struct {
	Name string
	// Bank name of the BankSpec located here.
	Bank string
	// Store display name of the weapon shop, e.g. "Walmart".
	Store string
	// Weapons names of WeaponSpecs sold by the store.
	Weapons []string
}

// Catalog static tables the game is built from.
type Catalog struct {
	Commodities []CommodityArchetype
	Banks       []BankSpec
	Weapons     []Weapon
	Cities      []CitySpec
	Encounters  []EncounterWeight
}

// Validate checks every table entry and every cross reference.
func (c Catalog) Validate() error {
	if len(c.Commodities) == 0 {
		return errors.Wrap(ErrInvalidParameter, "catalog has no commodities")
	}
	if len(c.Cities) < 2 {
		return errors.Wrap(ErrInvalidParameter, "catalog needs at least two cities")
	}

	seen := make(map[string]bool, len(c.Commodities))
	for _, a := range c.Commodities {
		if err := a.Validate(); err != nil {
			return err
		}
		if seen[a.Name] {
			return errors.Wrapf(ErrInvalidParameter, "duplicate commodity %q", a.Name)
		}
		seen[a.Name] = true
	}

	for _, b := range c.Banks {
		if err := b.Validate(); err != nil {
			return err
		}
	}
	for _, w := range c.Weapons {
		if err := w.Validate(); err != nil {
			return err
		}
	}

	cities := make(map[string]bool, len(c.Cities))
	for _, city := range c.Cities {
		if city.Name == "" {
			return errors.Wrap(ErrInvalidParameter, "city name is required")
		}
		if cities[city.Name] {
			return errors.Wrapf(ErrInvalidParameter, "duplicate city %q", city.Name)
		}
		cities[city.Name] = true
		if city.Bank != "" {
			if _, ok := c.Bank(city.Bank); !ok {
				return errors.Wrapf(ErrInvalidParameter, "city %s references unknown bank %q", city.Name, city.Bank)
			}
		}
		for _, name := range city.Weapons {
			if _, ok := c.Weapon(name); !ok {
				return errors.Wrapf(ErrInvalidParameter, "city %s sells unknown weapon %q", city.Name, name)
			}
		}
	}

	for _, e := range c.Encounters {
		if !e.Kind.IsValid() {
			return errors.Wrapf(ErrInvalidParameter, "unknown encounter kind %q", e.Kind)
		}
		if e.Weight < 1 {
			return errors.Wrapf(ErrInvalidParameter, "encounter %s: weight must be >= 1, got %d", e.Kind, e.Weight)
		}
	}

	return nil
}

// Bank looks up a bank spec by name.
func (c Catalog) Bank(name string) (BankSpec, bool) {
	for _, b := range c.Banks {
		if b.Name == name {
			return b, true
		}
	}
	return BankSpec{}, false
}

// Weapon looks up a weapon by name.
func (c Catalog) Weapon(name string) (Weapon, bool) {
	for _, w := range c.Weapons {
		if w.Name == name {
			return w, true
		}
	}
	return Weapon{}, false
}

// City looks up a city by name.
func (c Catalog) City(name string) (CitySpec, bool) {
	for _, city := range c.Cities {
		if city.Name == name {
			return city, true
		}
	}
	return CitySpec{}, false
}

// String returns a human-readable string representation.
func (c CitySpec) String() string {
	switch {
	case c.Bank != "":
		return fmt.Sprintf("%s (bank: %s)", c.Name, c.Bank)
	case c.Store != "":
		return fmt.Sprintf("%s (store: %s)", c.Name, c.Store)
	default:
		return c.Name
	}
}
