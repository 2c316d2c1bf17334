package encounter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vadiminshakov/dopewars/internal/domain"
	"github.com/vadiminshakov/dopewars/pkg/dice"
)

func newPlayer(t *testing.T, cash int) *domain.Player {
	t.Helper()
	p, err := domain.NewPlayer("tester", cash)
	require.NoError(t, err)
	return p
}

func newResolver(t *testing.T, src dice.Source) *Resolver {
	t.Helper()
	r, err := NewResolver(src, nil, nil)
	require.NoError(t, err)
	return r
}

func TestNewResolver_Validation(t *testing.T) {
	_, err := NewResolver(nil, nil, nil)
	require.Error(t, err)

	_, err = NewResolver(dice.NewSequence(), []domain.EncounterWeight{{Kind: domain.EncounterRobber, Weight: 0}}, nil)
	require.ErrorIs(t, err, domain.ErrInvalidParameter)

	_, err = NewResolver(dice.NewSequence(), []domain.EncounterWeight{{Kind: "alien", Weight: 3}}, nil)
	require.ErrorIs(t, err, domain.ErrInvalidParameter)
}

func TestResolver_Roll(t *testing.T) {
	tests := []struct {
		name  string
		draws []int
		want  domain.EncounterKind
	}{
		{name: "robber fires on one", draws: []int{0, 0}, want: domain.EncounterRobber},
		{name: "robber misses", draws: []int{0, 1}, want: domain.EncounterNone},
		{name: "corrupt cop fires", draws: []int{1, 0}, want: domain.EncounterCorruptCop},
		{name: "corrupt cop misses", draws: []int{1, 4}, want: domain.EncounterNone},
		{name: "untouchable fires", draws: []int{2, 0}, want: domain.EncounterUntouchableCop},
		{name: "untouchable misses", draws: []int{2, 49}, want: domain.EncounterNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newResolver(t, dice.NewSequence(tt.draws...))
			assert.Equal(t, tt.want, r.Roll())
		})
	}
}

func TestResolver_RobberTakesShareOfWallet(t *testing.T) {
	p := newPlayer(t, 500)
	// robber selected, fires, then 5+5 = 10 percent
	r := newResolver(t, dice.NewSequence(0, 0, 5))

	out, err := r.Resolve(p)
	require.NoError(t, err)

	assert.Equal(t, domain.EncounterRobber, out.Kind)
	assert.Equal(t, 50, out.Amount)
	assert.Equal(t, 450, p.Wallet.Balance())
	assert.False(t, out.EndsGame)
	assert.Contains(t, out.Message, "$50")
}

func TestResolver_RobberWithEmptyPocketsFails(t *testing.T) {
	p := newPlayer(t, 6)
	r := newResolver(t, dice.NewSequence(0))

	out, err := r.Apply(domain.EncounterRobber, p)
	require.NoError(t, err)

	assert.True(t, out.Happened())
	assert.Zero(t, out.Amount)
	assert.Equal(t, 6, p.Wallet.Balance())
	assert.Contains(t, out.Message, "tried")
}

func TestResolver_CorruptCopConfiscatesQuarter(t *testing.T) {
	p := newPlayer(t, 100)
	require.NoError(t, p.Ledger.Add("Weed", 10))
	require.NoError(t, p.Ledger.Add("Acid", 40))
	r := newResolver(t, dice.NewSequence(1))

	out, err := r.Apply(domain.EncounterCorruptCop, p)
	require.NoError(t, err)

	assert.Equal(t, "Acid", out.Commodity)
	assert.Equal(t, 10, out.Amount)
	assert.Equal(t, 30, p.Ledger.Quantity("Acid"))
	assert.Equal(t, 10, p.Ledger.Quantity("Weed"))
	assert.Equal(t, 100, p.Wallet.Balance(), "confiscation pays nothing")
}

func TestResolver_CorruptCopTakesAtLeastOne(t *testing.T) {
	p := newPlayer(t, 100)
	require.NoError(t, p.Ledger.Add("Ludes", 1))
	r := newResolver(t, dice.NewSequence(0))

	out, err := r.Apply(domain.EncounterCorruptCop, p)
	require.NoError(t, err)

	assert.Equal(t, 1, out.Amount)
	assert.False(t, p.Ledger.Has("Ludes"))
	assert.True(t, p.Ledger.IsEmpty())
}

func TestResolver_CorruptCopWithEmptyInventory(t *testing.T) {
	p := newPlayer(t, 100)
	r := newResolver(t, dice.NewSequence())

	out, err := r.Apply(domain.EncounterCorruptCop, p)
	require.NoError(t, err)

	assert.Zero(t, out.Amount)
	assert.Empty(t, out.Commodity)
	assert.Equal(t, 100, p.Wallet.Balance())
}

func TestResolver_UntouchableCop(t *testing.T) {
	t.Run("empty inventory lets you go", func(t *testing.T) {
		p := newPlayer(t, 100)
		r := newResolver(t, dice.NewSequence())

		out, err := r.Apply(domain.EncounterUntouchableCop, p)
		require.NoError(t, err)
		assert.False(t, out.EndsGame)
	})

	t.Run("holding ends the game", func(t *testing.T) {
		p := newPlayer(t, 100)
		require.NoError(t, p.Ledger.Add("Speed", 1))
		r := newResolver(t, dice.NewSequence())

		out, err := r.Apply(domain.EncounterUntouchableCop, p)
		require.NoError(t, err)
		assert.True(t, out.EndsGame)
		assert.Contains(t, out.Message, "GAME OVER")
	})
}

func TestResolver_WeaponDefendsAndIsConsumed(t *testing.T) {
	p := newPlayer(t, 500)
	require.NoError(t, p.Ledger.Add("Weed", 8))
	p.Arm(domain.Weapon{
		Name:     "Glock",
		Price:    500,
		Counters: []domain.EncounterKind{domain.EncounterRobber, domain.EncounterCorruptCop},
	})
	r := newResolver(t, dice.NewSequence())

	out, err := r.Apply(domain.EncounterRobber, p)
	require.NoError(t, err)

	assert.True(t, out.Defended)
	assert.Equal(t, "Glock", out.Weapon)
	assert.Nil(t, p.Weapon)
	assert.Equal(t, 500, p.Wallet.Balance())

	// unarmed now, so the next cop takes his cut
	out, err = r.Apply(domain.EncounterCorruptCop, p)
	require.NoError(t, err)
	assert.False(t, out.Defended)
	assert.Equal(t, 6, p.Ledger.Quantity("Weed"))
}

func TestResolver_WeaponIgnoresUncounteredKind(t *testing.T) {
	p := newPlayer(t, 100)
	require.NoError(t, p.Ledger.Add("Heroin", 2))
	p.Arm(domain.Weapon{Name: "Knife", Price: 20, Counters: []domain.EncounterKind{domain.EncounterRobber}})
	r := newResolver(t, dice.NewSequence())

	out, err := r.Apply(domain.EncounterUntouchableCop, p)
	require.NoError(t, err)

	assert.True(t, out.EndsGame)
	assert.False(t, out.Defended)
	require.NotNil(t, p.Weapon, "knife is kept")
}

func TestResolver_EncounterFrequency(t *testing.T) {
	const turns = 500
	r := newResolver(t, dice.NewSeeded(20240601))

	fired := 0
	for i := 0; i < turns; i++ {
		if r.Roll() != domain.EncounterNone {
			fired++
		}
	}

	expected := (1.0/3 + 1.0/5 + 1.0/50) / 3
	assert.InDelta(t, expected, float64(fired)/turns, 0.08)
}
