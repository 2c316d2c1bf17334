// Package market generates the commodities offered in a city each turn.
package market

import (
	"github.com/vadiminshakov/dopewars/internal/domain"
	"github.com/vadiminshakov/dopewars/pkg/dice"
)

const (
	surgeHighFrom = 81
	surgeLowFrom  = 61

	// high surge multiplies the base price by 1.5-3.0 (tenths)
	highMinTenths = 15
	highMaxTenths = 30
	// low surge multiplies the base price by 0.33-0.67 (hundredths)
	lowMinHundredths = 33
	lowMaxHundredths = 67

	minBaseQuantity   = 5
	maxBaseQuantity   = 100
	highSurgeQtyFloor = 8
	lowSurgeQtyFactor = 3
	highSurgeQtyDiv   = 3
)

// RollSurge draws the surge state from a 1-100 roll.
func RollSurge(src dice.Source) domain.Surge {
	roll := dice.Between(src, 1, 100)
	switch {
	case roll >= surgeHighFrom:
		return domain.SurgeHigh
	case roll >= surgeLowFrom:
		return domain.SurgeLow
	default:
		return domain.SurgeNone
	}
}

// Generate builds today's offer for one archetype. Draw order is surge,
// surge multiplier (if any), jitter, quantity.
func Generate(src dice.Source, a domain.CommodityArchetype) (*domain.Commodity, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	surge := RollSurge(src)

	return &domain.Commodity{
		Name:      a.Name,
		BasePrice: a.BasePrice,
		Jitter:    a.Jitter,
		Surge:     surge,
		Price:     price(src, a, surge),
		Quantity:  quantity(src, surge),
	}, nil
}

func price(src dice.Source, a domain.CommodityArchetype, surge domain.Surge) int {
	base := a.BasePrice
	switch surge {
	case domain.SurgeHigh:
		base = a.BasePrice * dice.Between(src, highMinTenths, highMaxTenths) / 10
	case domain.SurgeLow:
		base = a.BasePrice * dice.Between(src, lowMinHundredths, lowMaxHundredths) / 100
	}

	p := base + dice.Between(src, -a.Jitter, a.Jitter)
	return max(p, a.PriceFloor())
}

func quantity(src dice.Source, surge domain.Surge) int {
	base := dice.Between(src, minBaseQuantity, maxBaseQuantity)
	switch surge {
	case domain.SurgeHigh:
		return max(base/highSurgeQtyDiv, highSurgeQtyFloor)
	case domain.SurgeLow:
		return base * lowSurgeQtyFactor
	default:
		return base
	}
}

// GenerateAll builds one offer per archetype, preserving catalog order.
func GenerateAll(src dice.Source, archetypes []domain.CommodityArchetype) ([]*domain.Commodity, error) {
	out := make([]*domain.Commodity, 0, len(archetypes))
	for _, a := range archetypes {
		c, err := Generate(src, a)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
