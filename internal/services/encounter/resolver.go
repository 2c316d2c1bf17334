// Package encounter resolves the adverse event that may greet the player at
// the start of a turn.
package encounter

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/vadiminshakov/dopewars/internal/domain"
	"github.com/vadiminshakov/dopewars/pkg/dice"
	"go.uber.org/zap"
)

const (
	robberMinPercent = 5
	robberMaxPercent = 15
	// corrupt cops take a quarter of the line, at least one unit
	confiscateDivisor = 4
)

// Resolver picks at most one encounter per turn and applies its effect.
type Resolver struct {
	src     dice.Source
	weights []domain.EncounterWeight
	l       *zap.Logger
}

// NewResolver creates a resolver over the given candidate table. An empty
// table uses domain.DefaultEncounterWeights.
func NewResolver(src dice.Source, weights []domain.EncounterWeight, l *zap.Logger) (*Resolver, error) {
	if src == nil {
		return nil, errors.New("random source is required for Resolver")
	}
	if l == nil {
		l = zap.NewNop()
	}
	if len(weights) == 0 {
		weights = domain.DefaultEncounterWeights()
	}
	for _, w := range weights {
		if !w.Kind.IsValid() || w.Weight < 1 {
			return nil, errors.Wrapf(domain.ErrInvalidParameter, "bad encounter weight %s=%d", w.Kind, w.Weight)
		}
	}

	return &Resolver{
		src:     src,
		weights: append([]domain.EncounterWeight(nil), weights...),
		l:       l,
	}, nil
}

// Roll runs the two-stage selection: a kind is chosen uniformly, then it fires
// only on a 1 out of its weight.
func (r *Resolver) Roll() domain.EncounterKind {
	candidate := r.weights[r.src.IntN(len(r.weights))]
	if dice.Between(r.src, 1, candidate.Weight) != 1 {
		return domain.EncounterNone
	}
	return candidate.Kind
}

// Resolve rolls for an encounter and applies it to the player.
func (r *Resolver) Resolve(p *domain.Player) (domain.EncounterOutcome, error) {
	return r.Apply(r.Roll(), p)
}

// Apply resolves a known encounter kind against the player. A held weapon that
// counters the kind is consumed and the effect is suppressed.
func (r *Resolver) Apply(kind domain.EncounterKind, p *domain.Player) (domain.EncounterOutcome, error) {
	if kind == domain.EncounterNone || kind == "" {
		return domain.EncounterOutcome{Kind: domain.EncounterNone}, nil
	}

	if p.Weapon.Defeats(kind) {
		w := p.Disarm()
		out := domain.EncounterOutcome{
			Kind:     kind,
			Defended: true,
			Weapon:   w.Name,
			Message:  defendedMessage(kind, w.Name),
		}
		r.l.Info("encounter defended", zap.String("kind", kind.String()), zap.String("weapon", w.Name))
		return out, nil
	}

	var (
		out domain.EncounterOutcome
		err error
	)
	switch kind {
	case domain.EncounterRobber:
		out, err = r.rob(p)
	case domain.EncounterCorruptCop:
		out, err = r.confiscate(p)
	case domain.EncounterUntouchableCop:
		out = r.arrest(p)
	default:
		return domain.EncounterOutcome{}, fmt.Errorf("unknown encounter kind: %s", kind)
	}
	if err != nil {
		return domain.EncounterOutcome{}, err
	}

	r.l.Info("encounter resolved",
		zap.String("kind", kind.String()),
		zap.Int("amount", out.Amount),
		zap.String("commodity", out.Commodity),
		zap.Bool("ends_game", out.EndsGame))
	return out, nil
}

func (r *Resolver) rob(p *domain.Player) (domain.EncounterOutcome, error) {
	percent := dice.Between(r.src, robberMinPercent, robberMaxPercent)
	amount := p.Wallet.Balance() * percent / 100

	out := domain.EncounterOutcome{Kind: domain.EncounterRobber}
	if amount == 0 {
		out.Message = "A robber tried to mug you, but you had nothing worth taking."
		return out, nil
	}
	if err := p.Wallet.Debit(amount); err != nil {
		return domain.EncounterOutcome{}, errors.Wrap(err, "robber debit")
	}

	out.Amount = amount
	out.Message = fmt.Sprintf("You were mugged! The robber got away with %s.", domain.FormatMoney(amount))
	return out, nil
}

func (r *Resolver) confiscate(p *domain.Player) (domain.EncounterOutcome, error) {
	out := domain.EncounterOutcome{Kind: domain.EncounterCorruptCop}
	lines := p.Ledger.Lines()
	if len(lines) == 0 {
		out.Message = "A corrupt cop frisked you, found nothing and walked off."
		return out, nil
	}

	line := lines[r.src.IntN(len(lines))]
	qty := max(1, line.Quantity/confiscateDivisor)
	if err := p.Ledger.Confiscate(line.Name, qty); err != nil {
		return domain.EncounterOutcome{}, errors.Wrap(err, "corrupt cop confiscation")
	}

	out.Amount = qty
	out.Commodity = line.Name
	out.Message = fmt.Sprintf("A corrupt cop shook you down and took %d units of %s.", qty, line.Name)
	return out, nil
}

func (r *Resolver) arrest(p *domain.Player) domain.EncounterOutcome {
	out := domain.EncounterOutcome{Kind: domain.EncounterUntouchableCop}
	if p.Ledger.IsEmpty() {
		out.Message = "A boy scout cop searched you, found nothing and let you go."
		return out
	}

	out.EndsGame = true
	out.Message = "Busted! An untouchable cop caught you holding. You're going away for a long time. GAME OVER."
	return out
}

func defendedMessage(kind domain.EncounterKind, weapon string) string {
	switch kind {
	case domain.EncounterRobber:
		return fmt.Sprintf("A robber jumped you, but your %s scared them off. It's gone now.", weapon)
	case domain.EncounterCorruptCop:
		return fmt.Sprintf("A corrupt cop tried to shake you down. Your %s changed their mind. It's gone now.", weapon)
	case domain.EncounterUntouchableCop:
		return fmt.Sprintf("An untouchable cop stopped you. The %s made the problem go away.", weapon)
	default:
		return fmt.Sprintf("Your %s got you out of trouble.", weapon)
	}
}
