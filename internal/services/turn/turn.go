// Package turn holds the state of a single day in a single city: the offers
// generated on arrival, the encounter that greeted the player and the trades
// made against those offers.
package turn

import (
	"github.com/pkg/errors"
	"github.com/vadiminshakov/dopewars/internal/domain"
	"github.com/vadiminshakov/dopewars/internal/services/market"
	"github.com/vadiminshakov/dopewars/pkg/dice"
	"go.uber.org/zap"
)

// EncounterResolver resolves the start-of-turn event against the player.
type EncounterResolver interface {
	Resolve(p *domain.Player) (domain.EncounterOutcome, error)
}

// Turn is one day in one city.
type Turn struct {
	city    string
	player  *domain.Player
	offers  []*domain.Commodity
	outcome domain.EncounterOutcome
	l       *zap.Logger
}

// New generates one offer per archetype in catalog order and resolves the
// encounter exactly once.
func New(
	city string,
	player *domain.Player,
	archetypes []domain.CommodityArchetype,
	resolver EncounterResolver,
	src dice.Source,
	l *zap.Logger,
) (*Turn, error) {
	if player == nil {
		return nil, errors.Wrap(domain.ErrInvalidParameter, "player is required")
	}
	if resolver == nil {
		return nil, errors.Wrap(domain.ErrInvalidParameter, "encounter resolver is required")
	}
	if src == nil {
		return nil, errors.Wrap(domain.ErrInvalidParameter, "random source is required")
	}
	if l == nil {
		l = zap.NewNop()
	}

	offers, err := market.GenerateAll(src, archetypes)
	if err != nil {
		return nil, errors.Wrapf(err, "generate offers in %s", city)
	}

	outcome, err := resolver.Resolve(player)
	if err != nil {
		return nil, errors.Wrapf(err, "resolve encounter in %s", city)
	}

	l.Debug("turn started",
		zap.String("city", city),
		zap.Int("offers", len(offers)),
		zap.String("encounter", outcome.Kind.String()))

	return &Turn{
		city:    city,
		player:  player,
		offers:  offers,
		outcome: outcome,
		l:       l,
	}, nil
}

// City where the turn takes place.
func (t *Turn) City() string {
	return t.city
}

// Outcome returns the encounter resolved when the turn started.
func (t *Turn) Outcome() domain.EncounterOutcome {
	return t.outcome
}

func (t *Turn) offer(name string) (*domain.Commodity, error) {
	for _, c := range t.offers {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, errors.Wrapf(domain.ErrUnknownCommodity, "%s is not offered in %s", name, t.city)
}

// Offer returns a copy of today's offer for name.
func (t *Turn) Offer(name string) (domain.Commodity, error) {
	c, err := t.offer(name)
	if err != nil {
		return domain.Commodity{}, err
	}
	return *c, nil
}

// Offers returns copies of all offers in catalog order.
func (t *Turn) Offers() []domain.Commodity {
	out := make([]domain.Commodity, 0, len(t.offers))
	for _, c := range t.offers {
		out = append(out, *c)
	}
	return out
}

// Buy purchases qty units of name at today's price and returns the cost.
// Either the offer, the wallet and the ledger all change or none does.
func (t *Turn) Buy(name string, qty int) (int, error) {
	c, err := t.offer(name)
	if err != nil {
		return 0, err
	}
	if qty <= 0 || qty > c.Quantity {
		return 0, errors.Wrapf(domain.ErrInsufficientQuantity, "buy %s: requested %d, offered %d", name, qty, c.Quantity)
	}

	cost := qty * c.Price
	if !t.player.Wallet.CanAfford(cost) {
		return 0, errors.Wrapf(domain.ErrInsufficientFunds, "buy %d %s costs %s, have %s",
			qty, name, domain.FormatMoney(cost), domain.FormatMoney(t.player.Wallet.Balance()))
	}

	if err := t.player.Wallet.Debit(cost); err != nil {
		return 0, errors.Wrap(err, "debit wallet")
	}
	if err := c.Take(qty); err != nil {
		_ = t.player.Wallet.Credit(cost)
		return 0, err
	}
	if err := t.player.Ledger.Add(name, qty); err != nil {
		c.Quantity += qty
		_ = t.player.Wallet.Credit(cost)
		return 0, errors.Wrap(err, "add to inventory")
	}

	t.l.Info("bought",
		zap.String("city", t.city),
		zap.String("commodity", name),
		zap.Int("qty", qty),
		zap.Int("price", c.Price),
		zap.Int("cost", cost))
	return cost, nil
}

// Sell sells qty held units of name at today's offer price and returns the
// proceeds. Commodities without an offer today cannot be sold.
func (t *Turn) Sell(name string, qty int) (int, error) {
	c, err := t.offer(name)
	if err != nil {
		return 0, err
	}

	proceeds, err := t.player.Ledger.Remove(name, qty, c.Price)
	if err != nil {
		return 0, errors.Wrapf(err, "sell %s", name)
	}
	if err := t.player.Wallet.Credit(proceeds); err != nil {
		return 0, errors.Wrap(err, "credit wallet")
	}

	t.l.Info("sold",
		zap.String("city", t.city),
		zap.String("commodity", name),
		zap.Int("qty", qty),
		zap.Int("price", c.Price),
		zap.Int("proceeds", proceeds))
	return proceeds, nil
}

// MaxAffordable how many units of name the player can buy right now.
func (t *Turn) MaxAffordable(name string) int {
	c, err := t.offer(name)
	if err != nil || c.Price <= 0 {
		return 0
	}
	return min(c.Quantity, t.player.Wallet.Balance()/c.Price)
}
