package domain

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() Catalog {
	return Catalog{
		Commodities: []CommodityArchetype{{Name: "Soma", BasePrice: 100, Jitter: 12}},
		Banks:       []BankSpec{{Name: "Texas Midland Bank", InterestRate: decimal.RequireFromString("0.01")}},
		Weapons:     []Weapon{{Name: "Knife", Price: 20, Counters: []EncounterKind{EncounterRobber}}},
		Cities: []CitySpec{
			{Name: "Atlanta", Bank: "Texas Midland Bank"},
			{Name: "LA", Store: "Walmart", Weapons: []string{"Knife"}},
		},
		Encounters: DefaultEncounterWeights(),
	}
}

func TestCatalog_Validate(t *testing.T) {
	require.NoError(t, testCatalog().Validate())

	c := testCatalog()
	c.Cities[0].Bank = "Nope"
	assert.True(t, errors.Is(c.Validate(), ErrInvalidParameter))

	c = testCatalog()
	c.Cities[1].Weapons = []string{"Bazooka"}
	assert.True(t, errors.Is(c.Validate(), ErrInvalidParameter))

	c = testCatalog()
	c.Commodities = append(c.Commodities, c.Commodities[0])
	assert.True(t, errors.Is(c.Validate(), ErrInvalidParameter))

	c = testCatalog()
	c.Commodities[0].Jitter = 0
	assert.True(t, errors.Is(c.Validate(), ErrInvalidParameter))

	c = testCatalog()
	c.Encounters[0].Weight = 0
	assert.True(t, errors.Is(c.Validate(), ErrInvalidParameter))
}

func TestCommodityArchetype_PriceFloor(t *testing.T) {
	assert.Equal(t, 15, CommodityArchetype{BasePrice: 100}.PriceFloor())
	assert.Equal(t, 1, CommodityArchetype{BasePrice: 5}.PriceFloor())
	assert.Equal(t, 5, CommodityArchetype{BasePrice: 35}.PriceFloor())
}

func TestWeapon_Defeats(t *testing.T) {
	gun := &Weapon{Name: "Glock", Price: 500, Counters: []EncounterKind{EncounterRobber, EncounterCorruptCop}}
	assert.True(t, gun.Defeats(EncounterRobber))
	assert.True(t, gun.Defeats(EncounterCorruptCop))
	assert.False(t, gun.Defeats(EncounterUntouchableCop))

	var none *Weapon
	assert.False(t, none.Defeats(EncounterRobber))
}

func TestCommodity_Take(t *testing.T) {
	c := &Commodity{Name: "Soma", Price: 10, Quantity: 3}
	assert.True(t, errors.Is(c.Take(4), ErrInsufficientQuantity))
	assert.True(t, errors.Is(c.Take(0), ErrInsufficientQuantity))
	require.NoError(t, c.Take(3))
	assert.Equal(t, 0, c.Quantity)
}
