package tui

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vadiminshakov/dopewars/internal/domain"
	"github.com/vadiminshakov/dopewars/internal/game"
	"github.com/vadiminshakov/dopewars/internal/services/market"
	"github.com/vadiminshakov/dopewars/pkg/dice"
)

func TestRenderStatus(t *testing.T) {
	out := RenderStatus(Status{
		Day:         3,
		Days:        30,
		City:        "Miami",
		Cash:        12500,
		Weapon:      "Glock",
		Bank:        "BoA Constrictor",
		BankBalance: 50000,
	})

	assert.Contains(t, out, "Day 3 of 30")
	assert.Contains(t, out, "Miami")
	assert.Contains(t, out, "$12,500")
	assert.Contains(t, out, "Carrying: Glock")
	assert.Contains(t, out, "$50,000 on deposit")
	assert.NotContains(t, out, "Store:")
}

func TestRenderInventory(t *testing.T) {
	assert.Contains(t, RenderInventory(nil), "(empty)")

	out := RenderInventory([]domain.InventoryLine{{Name: "Weed", Quantity: 12}, {Name: "Acid", Quantity: 3}})
	assert.Contains(t, out, "Weed")
	assert.Contains(t, out, "12")
	assert.Contains(t, out, "Acid")
}

func TestRenderOffers(t *testing.T) {
	offers := []domain.Commodity{
		{Name: "Weed", Price: 612, Quantity: 40},
		{Name: "Cocaine", Price: 21000, Quantity: 8},
	}
	trend := func(name string) market.Trend {
		if name == "Weed" {
			return market.TrendCheap
		}
		return market.TrendUnknown
	}

	out := RenderOffers(offers, trend)
	assert.Contains(t, out, "$612")
	assert.Contains(t, out, "$21,000")
	assert.Contains(t, out, "cheap")
	assert.Contains(t, out, "Today's market")

	assert.NotContains(t, RenderOffers(offers, nil), "cheap")
}

func TestRenderEncounter(t *testing.T) {
	assert.Empty(t, RenderEncounter(domain.EncounterOutcome{Kind: domain.EncounterNone}))

	out := RenderEncounter(domain.EncounterOutcome{Kind: domain.EncounterUntouchableCop, EndsGame: true, Message: "Busted! GAME OVER."})
	assert.Contains(t, out, "GAME OVER")

	out = RenderEncounter(domain.EncounterOutcome{Kind: domain.EncounterRobber, Amount: 5, Message: "You were mugged!"})
	assert.Contains(t, out, "mugged")
}

func TestRenderScores(t *testing.T) {
	assert.Contains(t, RenderScores(nil), "No scores yet")

	out := RenderScores([]domain.ScoreRecord{{Score: 1200000, Name: "al", Turns: 30}, {Score: 520, Name: "bob", Turns: 2}})
	assert.Contains(t, out, "$1,200,000")
	assert.Contains(t, out, "al")
	assert.Contains(t, out, "bob")
	assert.Contains(t, out, "$520")
}

func TestRenderFinal(t *testing.T) {
	assert.Contains(t, RenderFinal("busted", 4, 0), "Busted on day 4")
	assert.Contains(t, RenderFinal("finished", 30, 1500), "$1,500")
	assert.Contains(t, RenderFinal("quit", 2, 0), "walked away")
}

func TestRenderEvents(t *testing.T) {
	assert.Contains(t, RenderEvents(nil, 5), "Nothing happened")

	records := []domain.GameEventRecord{
		{Index: 1, Event: domain.GameEvent{Kind: domain.EventDayStart, Day: 1, City: "Miami"}},
		{Index: 2, Event: domain.GameEvent{Kind: domain.EventTrade, Day: 1, City: "Miami", Action: "buy", Item: "Weed", Quantity: 2, Amount: 200}},
		{Index: 3, Event: domain.GameEvent{Kind: domain.EventTravel, Day: 2, City: "Atlanta"}},
	}
	out := RenderEvents(records, 2)
	assert.NotContains(t, out, "quiet day")
	assert.Contains(t, out, "buy 2 Weed for $200")
	assert.Contains(t, out, "travelled to Atlanta")
}

func TestRenderError(t *testing.T) {
	assert.Contains(t, RenderError(errors.Wrap(domain.ErrInsufficientFunds, "buy 3 Acid")), "buy 3 Acid: insufficient funds")
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		limit   int
		want    int
		wantErr bool
	}{
		{in: "12", want: 12},
		{in: " 1,000 ", want: 1000},
		{in: "0", wantErr: true},
		{in: "-3", wantErr: true},
		{in: "lots", wantErr: true},
		{in: "5", limit: 4, wantErr: true},
		{in: "4", limit: 4, want: 4},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseAmount(tt.in, tt.limit)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPlayOptions(t *testing.T) {
	values := func(city domain.CitySpec) []action {
		var out []action
		for _, o := range playOptions(city) {
			out = append(out, o.Value)
		}
		return out
	}

	assert.Equal(t,
		[]action{actionBuy, actionSell, actionBank, actionTravel, actionEvents, actionQuit},
		values(domain.CitySpec{Name: "Miami", Bank: "BoA Constrictor"}))
	assert.Equal(t,
		[]action{actionBuy, actionSell, actionStore, actionTravel, actionEvents, actionQuit},
		values(domain.CitySpec{Name: "LA", Store: "Walmart"}))
}

func TestStatusOf(t *testing.T) {
	catalog := domain.Catalog{
		Commodities: []domain.CommodityArchetype{{Name: "Weed", BasePrice: 100, Jitter: 12}},
		Banks:       []domain.BankSpec{{Name: "Texas Midland Bank", InterestRate: decimal.RequireFromString("0.01")}},
		Cities: []domain.CitySpec{
			{Name: "Atlanta", Bank: "Texas Midland Bank"},
			{Name: "LA", Store: "Walmart"},
		},
	}
	g, err := game.New(catalog, game.Settings{Days: 5, StartingCash: 700, StartCity: "Atlanta"},
		game.WithSource(dice.NewSequence(49, 12, 0, 0, 1)))
	require.NoError(t, err)
	_, err = g.Start()
	require.NoError(t, err)
	_, err = g.Deposit(200)
	require.NoError(t, err)

	s := statusOf(g)
	assert.Equal(t, Status{Day: 1, Days: 5, City: "Atlanta", Cash: 500, Bank: "Texas Midland Bank", BankBalance: 200}, s)
	assert.Contains(t, playScreen(g), "Today's market")
}
